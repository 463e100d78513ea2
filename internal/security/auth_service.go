package security

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/infrastructure/cache"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/interfaces"
)

// AuthServiceInterface defines the contract for authentication operations.
type AuthServiceInterface interface {
	// Authenticate проверяет заголовок Authorization и возвращает офлайн-сессию магазина
	Authenticate(ctx context.Context, authorization string) (*models.Session, error)
}

// AuthService проверяет сессионный токен и находит сессию магазина
type AuthService struct {
	tokens   interfaces.AuthPort
	sessions cache.SessionStore
	logger   interfaces.LoggerPort
}

func NewAuthService(tokens interfaces.AuthPort, sessions cache.SessionStore, logger interfaces.LoggerPort) *AuthService {
	return &AuthService{
		tokens:   tokens,
		sessions: sessions,
		logger:   logger,
	}
}

func (s *AuthService) Authenticate(ctx context.Context, authorization string) (*models.Session, error) {
	token, ok := bearerToken(authorization)
	if !ok {
		return nil, fmt.Errorf("%w: missing bearer token", models.ErrUnauthorized)
	}

	shop, err := s.tokens.ValidateToken(ctx, token)
	if err != nil {
		s.logger.DebugWithContext(ctx, "Сессионный токен отклонен",
			interfaces.LogField{Key: "error", Value: err.Error()},
		)
		return nil, fmt.Errorf("%w: %v", models.ErrUnauthorized, err)
	}

	session, err := s.sessions.Get(ctx, shop)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load session for %s: %w", shop, err)
	}

	return session, nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// PlaceholderAuthService всегда возвращает одну и ту же сессию.
// Используется при auth.enabled=false.
type PlaceholderAuthService struct {
	session models.Session
}

func NewPlaceholderAuthService(session models.Session) *PlaceholderAuthService {
	return &PlaceholderAuthService{session: session}
}

func (s *PlaceholderAuthService) Authenticate(context.Context, string) (*models.Session, error) {
	session := s.session
	return &session, nil
}
