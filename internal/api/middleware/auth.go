package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/security"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/interfaces"
)

type sessionKeyType struct{}

var sessionKey = sessionKeyType{}

// WithSession кладет сессию магазина в контекст
func WithSession(ctx context.Context, session *models.Session) context.Context {
	ctx = context.WithValue(ctx, sessionKey, session)
	return context.WithValue(ctx, interfaces.ShopKey, session.Shop)
}

// SessionFromContext возвращает сессию, положенную Auth
func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*models.Session)
	return session, ok && session != nil
}

// Auth проверяет сессионный токен платформы и находит офлайн-сессию магазина
func Auth(auth security.AuthServiceInterface, logger interfaces.LoggerPort) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := auth.Authenticate(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				switch {
				case errors.Is(err, models.ErrUnauthorized):
					writeError(w, r, http.StatusUnauthorized, "Требуется авторизация", "")
				case errors.Is(err, models.ErrSessionNotFound):
					writeError(w, r, http.StatusUnauthorized, "Сессия магазина не найдена", "")
				default:
					logger.ErrorWithContext(r.Context(), "Ошибка проверки сессии",
						interfaces.LogField{Key: "error", Value: err.Error()},
					)
					writeError(w, r, http.StatusInternalServerError, "Ошибка проверки сессии", "")
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}
