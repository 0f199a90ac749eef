package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one authenticated (or anonymous) user session. Sessions live in
// memory only; a restart destroys them unless a remember-me cookie is enabled.
type Session struct {
	ID            string
	Username      string
	DisplayName   string
	Authenticated bool
	CreatedAt     time.Time
}

// Anonymous is the always-authenticated session used when login is disabled.
func Anonymous() *Session {
	return &Session{Authenticated: true, CreatedAt: time.Now()}
}

// Manager issues, resolves and revokes sessions backed by signed cookies.
type Manager struct {
	mu         sync.RWMutex
	sessions   map[string]*Session
	revoked    map[string]time.Time
	cookieKey  []byte
	cookieName string
	maxAge     time.Duration
	rememberMe bool
}

// sessionTokenTTL is the cookie lifetime when remember-me is disabled; the
// registry entry, not the cookie, is the session's real boundary then.
const sessionTokenTTL = 24 * time.Hour

// NewManager creates a session manager. A positive maxAge enables remember-me:
// a still-valid cookie can re-establish a session after a restart.
func NewManager(cookieName string, cookieKey []byte, maxAge time.Duration) *Manager {
	return &Manager{
		sessions:   make(map[string]*Session),
		revoked:    make(map[string]time.Time),
		cookieKey:  cookieKey,
		cookieName: cookieName,
		maxAge:     maxAge,
		rememberMe: maxAge > 0,
	}
}

// CookieName returns the configured session cookie name.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// CookieMaxAge returns the cookie max-age in seconds, 0 for session cookies.
func (m *Manager) CookieMaxAge() int {
	return int(m.maxAge.Seconds())
}

// Issue registers a new authenticated session and returns its signed cookie
// token.
func (m *Manager) Issue(username, displayName string) (*Session, string, error) {
	session := &Session{
		ID:            uuid.NewString(),
		Username:      username,
		DisplayName:   displayName,
		Authenticated: true,
		CreatedAt:     time.Now(),
	}

	ttl := m.maxAge
	if ttl <= 0 {
		ttl = sessionTokenTTL
	}
	token, err := SignSessionToken(m.cookieKey, session.ID, username, displayName, ttl)
	if err != nil {
		return nil, "", err
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	return session, token, nil
}

// Resolve maps a cookie token back to a live session. With remember-me
// enabled, a valid token whose registry entry was lost to a restart recreates
// the session.
func (m *Manager) Resolve(token string) (*Session, bool) {
	claims, err := ParseSessionToken(m.cookieKey, token)
	if err != nil {
		return nil, false
	}

	m.mu.RLock()
	session, ok := m.sessions[claims.SessionID]
	m.mu.RUnlock()
	if ok {
		return session, true
	}

	if !m.rememberMe {
		return nil, false
	}

	// A revoked ID stays dead for the remaining cookie lifetime; only a
	// restart may re-establish a session from a still-valid token.
	m.mu.RLock()
	_, dead := m.revoked[claims.SessionID]
	m.mu.RUnlock()
	if dead {
		return nil, false
	}

	session = &Session{
		ID:            claims.SessionID,
		Username:      claims.Username,
		DisplayName:   claims.DisplayName,
		Authenticated: true,
		CreatedAt:     time.Now(),
	}
	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()
	return session, true
}

// Revoke destroys a session. Under remember-me the ID is also tombstoned so
// the still-valid cookie cannot recreate it; tombstones are pruned once the
// token they block must have expired.
func (m *Manager) Revoke(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionID)
	if !m.rememberMe {
		return
	}

	now := time.Now()
	for id, expiry := range m.revoked {
		if now.After(expiry) {
			delete(m.revoked, id)
		}
	}
	m.revoked[sessionID] = now.Add(m.maxAge)
}
