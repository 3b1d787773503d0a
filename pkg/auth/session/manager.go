package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ideabank/ideabank-backend/pkg/config"
)

// Manager tracks active access sessions in process memory, keyed by
// the JWT jti. A revoked or expired jti fails the middleware session
// check even when the token itself is still valid.
type Manager struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]time.Time
	now      func() time.Time
}

// AccessSessionChecker exposes the read-only surface needed by middleware.
type AccessSessionChecker interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
}

// NewManager constructs an in-memory session manager whose entries live
// as long as the access tokens they back.
func NewManager(cfg config.JWTConfig) (*Manager, error) {
	ttl := time.Duration(cfg.ExpirationMinutes) * time.Minute
	if ttl <= 0 {
		return nil, fmt.Errorf("access token ttl must be positive")
	}
	return &Manager{
		ttl:      ttl,
		sessions: make(map[string]time.Time),
		now:      time.Now,
	}, nil
}

// Generate registers the provided access ID as an active session.
func (m *Manager) Generate(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return fmt.Errorf("access id is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[accessID] = m.now().Add(m.ttl)
	return nil
}

// Revoke removes the session tied to the access identifier.
func (m *Manager) Revoke(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return fmt.Errorf("access id is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, accessID)
	return nil
}

// HasSession reports whether the provided access ID still has an active
// session. Expired entries are dropped lazily on lookup.
func (m *Manager) HasSession(ctx context.Context, accessID string) (bool, error) {
	if strings.TrimSpace(accessID) == "" {
		return false, fmt.Errorf("access id is required")
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	expiry, ok := m.sessions[accessID]
	if !ok {
		return false, nil
	}
	if m.now().After(expiry) {
		delete(m.sessions, accessID)
		return false, nil
	}
	return true, nil
}

// NewAccessID produces a stable identifier used as the JWT jti and session key.
func NewAccessID() string {
	return uuid.NewString()
}
