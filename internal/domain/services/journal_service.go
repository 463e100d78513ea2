package services

import (
	"context"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/infrastructure/postgres"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/utils"
)

// JournalService чтение журнала массовых правок
type JournalService struct {
	storage postgres.JournalStorage
}

// NewJournalService создает новый экземпляр JournalService
func NewJournalService(storage postgres.JournalStorage) *JournalService {
	return &JournalService{storage: storage}
}

// ListBatches возвращает страницу пакетов магазина
func (s *JournalService) ListBatches(ctx context.Context, shop string, page, pageSize int) (*utils.PagedResult, error) {
	pagination := utils.NewPagination(page, pageSize)

	records, total, err := s.storage.ListBatches(ctx, shop, pagination.Page, pagination.PageSize)
	if err != nil {
		return nil, err
	}
	pagination.SetTotal(int64(total))

	return utils.NewPagedResult(records, pagination), nil
}

// GetBatch возвращает пакет с результатами по товарам
func (s *JournalService) GetBatch(ctx context.Context, shop, batchID string) (*models.BatchRecord, error) {
	return s.storage.GetBatch(ctx, shop, batchID)
}
