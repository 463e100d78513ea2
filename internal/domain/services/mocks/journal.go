package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/interfaces"
)

// MockBatchRecorder мок services.BatchRecorder
type MockBatchRecorder struct {
	mock.Mock
}

func (m *MockBatchRecorder) Record(ctx context.Context, record *models.BatchRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// MockJournalStorage мок postgres.JournalStorage
type MockJournalStorage struct {
	mock.Mock
}

func (m *MockJournalStorage) SaveBatch(ctx context.Context, record *models.BatchRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockJournalStorage) SaveOutcomes(ctx context.Context, batchID string, outcomes []models.ProductOutcome) error {
	args := m.Called(ctx, batchID, outcomes)
	return args.Error(0)
}

func (m *MockJournalStorage) GetBatch(ctx context.Context, shop, batchID string) (*models.BatchRecord, error) {
	args := m.Called(ctx, shop, batchID)
	record, _ := args.Get(0).(*models.BatchRecord)
	return record, args.Error(1)
}

func (m *MockJournalStorage) ListBatches(ctx context.Context, shop string, page, pageSize int) ([]*models.BatchRecord, int, error) {
	args := m.Called(ctx, shop, page, pageSize)
	records, _ := args.Get(0).([]*models.BatchRecord)
	return records, args.Int(1), args.Error(2)
}

// MockTxManager выполняет fn без реальной транзакции; ошибка из On("Do") возвращается вместо вызова fn
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

// MockMessaging мок interfaces.MessagingPort
type MockMessaging struct {
	mock.Mock
}

func (m *MockMessaging) Publish(ctx context.Context, topic, key string, message []byte) error {
	args := m.Called(ctx, topic, key, message)
	return args.Error(0)
}

func (m *MockMessaging) Subscribe(ctx context.Context, topic string, handler interfaces.MessageHandler) (func() error, error) {
	args := m.Called(ctx, topic, handler)
	unsubscribe, _ := args.Get(0).(func() error)
	return unsubscribe, args.Error(1)
}

func (m *MockMessaging) Close() error {
	return m.Called().Error(0)
}
