package postgres

import (
	"context"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/interfaces"
)

// JournalStorage журнал выполненных массовых правок
type JournalStorage interface {
	// SaveBatch сохраняет заголовок пакета
	SaveBatch(ctx context.Context, record *models.BatchRecord) error

	// SaveOutcomes сохраняет результаты по товарам пакета
	SaveOutcomes(ctx context.Context, batchID string, outcomes []models.ProductOutcome) error

	// GetBatch получает пакет вместе с результатами
	// Возвращает models.ErrNotFound, если пакета нет
	GetBatch(ctx context.Context, shop, batchID string) (*models.BatchRecord, error)

	// ListBatches возвращает пакеты магазина, новые первыми, без результатов по товарам
	ListBatches(ctx context.Context, shop string, page, pageSize int) ([]*models.BatchRecord, int, error)
}

// Port хранилище журнала вместе с управлением соединением
type Port interface {
	JournalStorage
	interfaces.StoragePort
}
