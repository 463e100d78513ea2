package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/interfaces"
)

const sessionKeyPrefix = "session:offline:"

// SessionStore сессии магазинов поверх CachePort
type SessionStore struct {
	cache interfaces.CachePort
	ttl   time.Duration
}

// NewSessionStore создает новый экземпляр SessionStore. ttl = 0 - без срока действия.
func NewSessionStore(cache interfaces.CachePort, ttl time.Duration) *SessionStore {
	return &SessionStore{cache: cache, ttl: ttl}
}

func sessionKey(shop string) string {
	return sessionKeyPrefix + strings.ToLower(strings.TrimSpace(shop))
}

// Get реализация cache.SessionStore
func (s *SessionStore) Get(ctx context.Context, shop string) (*models.Session, error) {
	raw, err := s.cache.Get(ctx, sessionKey(shop))
	if err != nil {
		if errors.Is(err, interfaces.ErrCacheMiss) {
			return nil, fmt.Errorf("%w: %s", models.ErrSessionNotFound, shop)
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

// Save реализация cache.SessionStore
func (s *SessionStore) Save(ctx context.Context, session *models.Session) error {
	if session == nil || session.Shop == "" || session.AccessToken == "" {
		return fmt.Errorf("%w: session requires shop and access token", models.ErrValidation)
	}

	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return s.cache.Set(ctx, sessionKey(session.Shop), raw, s.ttl)
}

// Delete реализация cache.SessionStore
func (s *SessionStore) Delete(ctx context.Context, shop string) error {
	return s.cache.Delete(ctx, sessionKey(shop))
}
