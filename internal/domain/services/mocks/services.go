package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/utils"
)

// MockFilterService мок services.FilterServiceInterface
type MockFilterService struct {
	mock.Mock
}

func (m *MockFilterService) Preview(ctx context.Context, session models.Session, rule models.FilterRule) ([]models.Product, error) {
	args := m.Called(ctx, session, rule)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

// MockBulkEditService мок services.BulkEditServiceInterface
type MockBulkEditService struct {
	mock.Mock
}

func (m *MockBulkEditService) report(args mock.Arguments) (*models.BatchReport, error) {
	report, _ := args.Get(0).(*models.BatchReport)
	return report, args.Error(1)
}

func (m *MockBulkEditService) EditTitles(ctx context.Context, session models.Session, productIDs []string, edit models.TitleEdit) (*models.BatchReport, error) {
	return m.report(m.Called(ctx, session, productIDs, edit))
}

func (m *MockBulkEditService) EditStatus(ctx context.Context, session models.Session, productIDs []string, edit models.StatusEdit) (*models.BatchReport, error) {
	return m.report(m.Called(ctx, session, productIDs, edit))
}

func (m *MockBulkEditService) EditProductType(ctx context.Context, session models.Session, productIDs []string, edit models.ProductTypeEdit) (*models.BatchReport, error) {
	return m.report(m.Called(ctx, session, productIDs, edit))
}

func (m *MockBulkEditService) EditTags(ctx context.Context, session models.Session, productIDs []string, edit models.TagsEdit) (*models.BatchReport, error) {
	return m.report(m.Called(ctx, session, productIDs, edit))
}

func (m *MockBulkEditService) EditSKUs(ctx context.Context, session models.Session, productIDs []string, edit models.SKUEdit) (*models.BatchReport, error) {
	return m.report(m.Called(ctx, session, productIDs, edit))
}

func (m *MockBulkEditService) EditWeights(ctx context.Context, session models.Session, productIDs []string, edit models.WeightEdit) (*models.BatchReport, error) {
	return m.report(m.Called(ctx, session, productIDs, edit))
}

// MockJournalService мок services.JournalServiceInterface
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) ListBatches(ctx context.Context, shop string, page, pageSize int) (*utils.PagedResult, error) {
	args := m.Called(ctx, shop, page, pageSize)
	result, _ := args.Get(0).(*utils.PagedResult)
	return result, args.Error(1)
}

func (m *MockJournalService) GetBatch(ctx context.Context, shop, batchID string) (*models.BatchRecord, error) {
	args := m.Called(ctx, shop, batchID)
	record, _ := args.Get(0).(*models.BatchRecord)
	return record, args.Error(1)
}
