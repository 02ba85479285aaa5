// Package session implements the session/auth gate: server-side sessions held
// in Redis under an opaque id, with the cookie value sealed as a signed token
// so tampered cookies are rejected before a Redis round-trip.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rentledger/deposit-system/internal/core/domain"
	"github.com/rentledger/deposit-system/internal/core/ports"
)

// Manager is the Redis-backed ports.SessionManager implementation.
// Key format: session:<uuid>
type Manager struct {
	client *redis.Client
	secret []byte
	ttl    time.Duration
}

// NewManager creates a Manager wrapping the given Redis client.
func NewManager(client *redis.Client, secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{client: client, secret: []byte(secret), ttl: ttl}
}

// Issue persists the identity under a fresh session id and returns the sealed
// token for the cookie.
func (m *Manager) Issue(ctx context.Context, identity ports.Identity) (string, error) {
	payload, err := json.Marshal(identity)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}

	sid := uuid.NewString()
	if err := m.client.Set(ctx, m.key(sid), payload, m.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return sealToken(m.secret, sid, m.ttl)
}

// Resolve unseals the token and loads the identity it refers to. Any failure
// along the way is reported as domain.ErrSessionNotFound; the caller cannot
// distinguish a forged cookie from an expired session.
func (m *Manager) Resolve(ctx context.Context, token string) (*ports.Identity, error) {
	sid, err := openToken(m.secret, token)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}

	payload, err := m.client.Get(ctx, m.key(sid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var identity ports.Identity
	if err := json.Unmarshal(payload, &identity); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &identity, nil
}

// Revoke deletes the session the token refers to. Revoking an already absent
// session is not an error.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	sid, err := openToken(m.secret, token)
	if err != nil {
		return domain.ErrSessionNotFound
	}
	return m.client.Del(ctx, m.key(sid)).Err()
}

func (m *Manager) key(sid string) string {
	return "session:" + sid
}
