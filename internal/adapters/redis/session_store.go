// Package redis holds the Redis-backed adapters: console sessions and the search result cache.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/target/marketplace-console/internal/data/cryptoutil"
	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	"github.com/target/marketplace-console/internal/ports"
)

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = ports.ErrSessionNotFound

const defaultSessionPrefix = "session:"

// SessionStore keeps sessions (and the backend tokens they carry) in Redis with TTL = ExpiresAt - now.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
	sealer cryptoutil.Sealer
}

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStoreOption customises a SessionStore.
type SessionStoreOption func(*SessionStore)

// WithSessionPrefix overrides the "session:" key prefix.
func WithSessionPrefix(prefix string) SessionStoreOption {
	return func(s *SessionStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithSessionClock overrides the clock used for TTLs.
func WithSessionClock(now func() time.Time) SessionStoreOption {
	return func(s *SessionStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSessionSealer encrypts stored sessions.
func WithSessionSealer(sealer cryptoutil.Sealer) SessionStoreOption {
	return func(s *SessionStore) {
		if sealer != nil {
			s.sealer = sealer
		}
	}
}

// NewSessionStore creates a Redis-backed session store.
func NewSessionStore(client redis.UniversalClient, opts ...SessionStoreOption) *SessionStore {
	s := &SessionStore{client: client, prefix: defaultSessionPrefix, now: time.Now, sealer: cryptoutil.Plain{}}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Save writes the session. Already-expired sessions are rejected.
func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return errors.New("session is expired")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if data, err = s.sealer.Seal(data); err != nil {
		return fmt.Errorf("seal session: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+sess.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

// Get loads a session. Missing and expired sessions return ErrNotFound; expired ones are removed.
func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return domainauth.Session{}, ErrNotFound
	}
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("redis get session: %w", err)
	}

	if data, err = s.sealer.Open(data); err != nil {
		return domainauth.Session{}, fmt.Errorf("open session: %w", err)
	}
	var sess domainauth.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}

	if sess.Expired(s.now()) {
		if err := s.Delete(ctx, id); err != nil {
			return domainauth.Session{}, fmt.Errorf("cleanup expired session: %w", err)
		}
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

// Delete removes the session, and with it every backend token it held.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.prefix+id).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}
