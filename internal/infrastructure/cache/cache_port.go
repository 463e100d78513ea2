package cache

import (
	"context"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
)

// SessionStore хранилище офлайн-сессий магазинов.
// Сессии записывает процесс установки приложения.
type SessionStore interface {
	// Get возвращает сессию магазина или models.ErrSessionNotFound
	Get(ctx context.Context, shop string) (*models.Session, error)

	// Save сохраняет сессию магазина
	Save(ctx context.Context, session *models.Session) error

	// Delete удаляет сессию магазина
	Delete(ctx context.Context, shop string) error
}
