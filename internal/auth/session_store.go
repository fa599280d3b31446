package auth

import (
	"context"
	"fmt"
	"time"

	"goldcosmetics/internal/cache"
)

const (
	sessionKeyPrefix = "session:user:"

	// SessionCookieName is the cookie carrying the session token.
	SessionCookieName = "gc_session"
)

// SessionStoreInterface defines the interface for session storage operations.
// Each account holds at most one session id; storing a new one replaces the
// previous session (last write wins).
type SessionStoreInterface interface {
	Put(ctx context.Context, userID uint, sessionID string, ttl time.Duration) error
	Current(ctx context.Context, userID uint) (string, error)
	Delete(ctx context.Context, userID uint) error
}

// SessionStore keeps the current session id per account in Redis.
type SessionStore struct {
	cache *cache.Client
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

func sessionKey(userID uint) string {
	return fmt.Sprintf("%s%d", sessionKeyPrefix, userID)
}

// Put records sessionID as the account's only live session with a TTL.
// Overwriting an existing value invalidates the older session.
func (s *SessionStore) Put(ctx context.Context, userID uint, sessionID string, ttl time.Duration) error {
	return s.cache.Set(ctx, sessionKey(userID), []byte(sessionID), ttl)
}

// Current returns the account's live session id, or empty when no session
// exists.
func (s *SessionStore) Current(ctx context.Context, userID uint) (string, error) {
	data, err := s.cache.Get(ctx, sessionKey(userID))
	if err != nil || data == nil {
		return "", nil
	}
	return string(data), nil
}

// Delete ends the account's session.
func (s *SessionStore) Delete(ctx context.Context, userID uint) error {
	return s.cache.Delete(ctx, sessionKey(userID))
}
