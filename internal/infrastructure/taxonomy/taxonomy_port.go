package taxonomy

import (
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
)

// Source источник плоского списка категорий
type Source interface {
	// Load возвращает записи таксономии. Ошибок не возвращает: при недоступности
	// источника используется встроенный список.
	Load() []models.TaxonomyEntry
}
