package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/infrastructure/postgres"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/interfaces"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/tx"
)

// BatchRecorder фиксирует завершенный пакет правок
type BatchRecorder interface {
	Record(ctx context.Context, record *models.BatchRecord) error
}

// JournalRecorder пишет пакет и результаты в журнал одной транзакцией
type JournalRecorder struct {
	txManager tx.TxManager
	storage   postgres.JournalStorage
}

// NewJournalRecorder создает новый экземпляр JournalRecorder
func NewJournalRecorder(txManager tx.TxManager, storage postgres.JournalStorage) *JournalRecorder {
	return &JournalRecorder{txManager: txManager, storage: storage}
}

// Record реализация BatchRecorder
func (r *JournalRecorder) Record(ctx context.Context, record *models.BatchRecord) error {
	return r.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := r.storage.SaveBatch(txCtx, record); err != nil {
			return err
		}
		return r.storage.SaveOutcomes(txCtx, record.ID, record.Results)
	})
}

// EventRecorder публикует пакет в Kafka, журнал пишет воркер
type EventRecorder struct {
	publisher interfaces.MessagingPort
	topic     string
}

// NewEventRecorder создает новый экземпляр EventRecorder
func NewEventRecorder(publisher interfaces.MessagingPort, topic string) *EventRecorder {
	return &EventRecorder{publisher: publisher, topic: topic}
}

// Record реализация BatchRecorder
func (r *EventRecorder) Record(ctx context.Context, record *models.BatchRecord) error {
	payload, err := json.Marshal(models.BatchEvent{
		EventID:    uuid.New().String(),
		EventType:  models.BatchCompletedEvent,
		OccurredAt: time.Now().UTC(),
		Batch:      record,
	})
	if err != nil {
		return fmt.Errorf("failed to encode batch event: %w", err)
	}

	return r.publisher.Publish(ctx, r.topic, record.Shop, payload)
}

// NoopRecorder ничего не сохраняет
type NoopRecorder struct{}

// Record реализация BatchRecorder
func (NoopRecorder) Record(context.Context, *models.BatchRecord) error {
	return nil
}
