package credstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func tempStorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "credentials.toml")
}

func newEmptyStore(t *testing.T) *Store {
	t.Helper()
	return &Store{
		path:     tempStorePath(t),
		users:    make(map[string]UserRecord),
		writable: true,
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	store, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Nil(t, store, "missing file yields (nil, nil), not an error")
}

func TestLoadParsesFile(t *testing.T) {
	t.Parallel()

	path := tempStorePath(t)
	content := `admin_users = ["alice"]

[credentials.usernames.alice]
name = "Alice"
email = "alice@example.com"
password = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

[credentials.usernames.bob]
name = "Bob"
email = "bob@example.com"
password = "still-plaintext"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	store, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, store)

	assert.Equal(t, 2, store.Len())
	assert.Equal(t, []string{"alice", "bob"}, store.Usernames())

	alice, ok := store.User("alice")
	require.True(t, ok)
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, "alice@example.com", alice.Email)

	assert.True(t, store.IsAdmin("alice"))
	assert.False(t, store.IsAdmin("bob"))
	assert.True(t, store.Writable())
}

func TestAddUserRoundTrip(t *testing.T) {
	t.Parallel()

	store := newEmptyStore(t)
	require.NoError(t, store.AddUser("bob", "Bob", "b@x.com", "pw123"))

	// Reload from disk and verify the persisted hash.
	reloaded, err := Load(store.path)
	require.NoError(t, err)
	require.NotNil(t, reloaded)

	rec, ok := reloaded.User("bob")
	require.True(t, ok)
	assert.NotEqual(t, "pw123", rec.Password, "plaintext must never be stored")
	assert.True(t, isBcryptHash(rec.Password))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(rec.Password), []byte("pw123")))
	assert.True(t, reloaded.VerifyPassword("bob", "pw123"))

	assert.Equal(t, "Bob", rec.Name)
	assert.Equal(t, "b@x.com", rec.Email)
}

func TestAddUserConflict(t *testing.T) {
	t.Parallel()

	store := newEmptyStore(t)
	require.NoError(t, store.AddUser("bob", "Bob", "b@x.com", "pw123"))

	err := store.AddUser("bob", "Other Bob", "b2@x.com", "pw999")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	store := newEmptyStore(t)
	require.NoError(t, store.AddUser("bob", "Bob", "b@x.com", "pw123"))
	require.NoError(t, store.ChangePassword("bob", "pw456"))

	reloaded, err := Load(store.path)
	require.NoError(t, err)
	require.NotNil(t, reloaded)

	assert.True(t, reloaded.VerifyPassword("bob", "pw456"))
	assert.False(t, reloaded.VerifyPassword("bob", "pw123"), "old password must no longer verify")
}

func TestChangePasswordMissingUser(t *testing.T) {
	t.Parallel()

	store := newEmptyStore(t)

	err := store.ChangePassword("ghost", "pw")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	store := newEmptyStore(t)
	require.NoError(t, store.AddUser("bob", "Bob", "b@x.com", "pw123"))

	assert.True(t, store.VerifyPassword("bob", "pw123"))
	assert.False(t, store.VerifyPassword("bob", "wrong"))
	assert.False(t, store.VerifyPassword("ghost", "pw123"))
}

func TestMigratePlaintext(t *testing.T) {
	t.Parallel()

	path := tempStorePath(t)
	content := `admin_users = []

[credentials.usernames.old]
name = "Old User"
email = "old@example.com"
password = "plainpw"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	store, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, store)

	migrated, err := store.MigratePlaintext()
	require.NoError(t, err)
	assert.Equal(t, 1, migrated)
	assert.True(t, store.VerifyPassword("old", "plainpw"), "migrated hash verifies the original plaintext")

	rec, _ := store.User("old")
	firstHash := rec.Password
	info, err := os.Stat(path)
	require.NoError(t, err)
	firstMod := info.ModTime()

	// Second run: no rewrites, no functional change.
	migrated, err = store.MigratePlaintext()
	require.NoError(t, err)
	assert.Equal(t, 0, migrated)

	rec, _ = store.User("old")
	assert.Equal(t, firstHash, rec.Password, "already-migrated hash is untouched")

	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, firstMod, info.ModTime(), "idempotent migration performs no further writes")
}

func TestSaveFailureMarksReadOnly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := &Store{
		// Directory path cannot be written as a file.
		path:     dir,
		users:    map[string]UserRecord{},
		writable: true,
	}

	err := store.Save()
	require.Error(t, err)
	assert.False(t, store.Writable(), "failed save disables the writable flag")
}
