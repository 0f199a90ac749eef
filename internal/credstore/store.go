// Package credstore manages the flat credential file backing login and the
// admin console. The file is TOML shaped as
// credentials.usernames.<username>.{name,email,password} with a top-level
// admin_users allow-list; it is read wholesale and rewritten wholesale on
// every mutation.
package credstore

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"github.com/trendlens/youtube-trending-go/internal/model"
)

const (
	usersKey  = "credentials.usernames"
	adminsKey = "admin_users"
)

var (
	// ErrUserExists is returned by AddUser for a taken username.
	ErrUserExists = errors.New("user already exists")
	// ErrUnknownUser is returned by ChangePassword for an unknown username.
	ErrUnknownUser = errors.New("user does not exist")
)

// UserRecord is one stored user. Password always holds a bcrypt hash after
// the migration pass; plaintext is never compared directly.
type UserRecord struct {
	Name     string `mapstructure:"name"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// Store is the in-memory view of the credential file.
type Store struct {
	mu       sync.RWMutex
	path     string
	users    map[string]UserRecord
	admins   []string
	writable bool
}

// Load reads the credential file at path. A missing file yields (nil, nil)
// so callers can distinguish "not configured" from a corrupt file.
func Load(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &model.PersistenceError{Path: path, Err: err}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to parse credential file %s: %w", path, err)
	}

	users := make(map[string]UserRecord)
	for username := range v.GetStringMap(usersKey) {
		var rec UserRecord
		if err := v.UnmarshalKey(usersKey+"."+username, &rec); err != nil {
			return nil, fmt.Errorf("failed to parse credential record %q: %w", username, err)
		}
		users[username] = rec
	}

	return &Store{
		path:     path,
		users:    users,
		admins:   v.GetStringSlice(adminsKey),
		writable: true,
	}, nil
}

// Save rewrites the credential file wholesale. On failure the store marks
// itself read-only so the admin console can be withheld instead of erroring.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	v := viper.New()
	v.SetConfigType("toml")
	v.Set(adminsKey, s.admins)
	for username, rec := range s.users {
		v.Set(usersKey+"."+username, map[string]string{
			"name":     rec.Name,
			"email":    rec.Email,
			"password": rec.Password,
		})
	}

	if err := v.WriteConfigAs(s.path); err != nil {
		s.writable = false
		return &model.PersistenceError{Path: s.path, Err: err}
	}
	s.writable = true
	return nil
}

// AddUser hashes the password and inserts a new record, then persists.
func (s *Store) AddUser(username, displayName, email, plaintext string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return fmt.Errorf("%q: %w", username, ErrUserExists)
	}

	hash, err := hashPassword(plaintext)
	if err != nil {
		return err
	}

	s.users[username] = UserRecord{Name: displayName, Email: email, Password: hash}
	return s.saveLocked()
}

// ChangePassword replaces the stored hash for an existing user, then persists.
func (s *Store) ChangePassword(username, newPlaintext string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, exists := s.users[username]
	if !exists {
		return fmt.Errorf("%q: %w", username, ErrUnknownUser)
	}

	hash, err := hashPassword(newPlaintext)
	if err != nil {
		return err
	}

	rec.Password = hash
	s.users[username] = rec
	return s.saveLocked()
}

// VerifyPassword checks a submitted plaintext against the stored hash.
// Verification is always a hash comparison, never plaintext equality.
func (s *Store) VerifyPassword(username, plaintext string) bool {
	s.mu.RLock()
	rec, exists := s.users[username]
	s.mu.RUnlock()
	if !exists {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(rec.Password), []byte(plaintext)) == nil
}

// User returns the stored record for username.
func (s *Store) User(username string) (UserRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[username]
	return rec, ok
}

// Usernames returns all usernames in sorted order.
func (s *Store) Usernames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.users))
	for u := range s.users {
		names = append(names, u)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of stored users.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// IsAdmin reports whether username is on the file's admin allow-list.
func (s *Store) IsAdmin(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.admins {
		if u == username {
			return true
		}
	}
	return false
}

// Writable reports whether the last persistence attempt succeeded. Read-only
// deployments flip this to false on the first failed save.
func (s *Store) Writable() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writable
}

// MigratePlaintext rehashes any password not already in bcrypt form and
// persists the store once if anything changed. Running it again on a migrated
// store performs no writes; the upgrade is idempotent.
func (s *Store) MigratePlaintext() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	migrated := 0
	for username, rec := range s.users {
		if isBcryptHash(rec.Password) {
			continue
		}
		hash, err := hashPassword(rec.Password)
		if err != nil {
			return migrated, err
		}
		rec.Password = hash
		s.users[username] = rec
		migrated++
	}

	if migrated == 0 {
		return 0, nil
	}
	return migrated, s.saveLocked()
}

func hashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// isBcryptHash recognizes the standard bcrypt prefixes.
func isBcryptHash(s string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
