package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/services/mocks"
)

func fakeBatchRecord() *models.BatchRecord {
	return &models.BatchRecord{
		ID:      gofakeit.UUID(),
		Shop:    gofakeit.DomainName(),
		Action:  models.ActionTitle,
		Verdict: models.VerdictOK,
		Stats:   models.Stats{Total: 1, Updated: 1},
		Results: []models.ProductOutcome{
			{ProductID: gofakeit.Numerify("########"), Original: "a", New: "A"},
		},
		StartedAt:  time.Now().UTC(),
		FinishedAt: time.Now().UTC(),
	}
}

func TestJournalRecorder_Record(t *testing.T) {
	t.Parallel()

	t.Run("saves batch and outcomes in one transaction", func(t *testing.T) {
		t.Parallel()

		txManager := &mocks.MockTxManager{}
		storage := &mocks.MockJournalStorage{}
		record := fakeBatchRecord()

		txManager.On("Do", mock.Anything).Return(nil).Once()
		storage.On("SaveBatch", mock.Anything, record).Return(nil).Once()
		storage.On("SaveOutcomes", mock.Anything, record.ID, record.Results).Return(nil).Once()

		err := NewJournalRecorder(txManager, storage).Record(context.Background(), record)
		require.NoError(t, err)

		txManager.AssertExpectations(t)
		storage.AssertExpectations(t)
	})

	t.Run("outcomes skipped when batch fails", func(t *testing.T) {
		t.Parallel()

		txManager := &mocks.MockTxManager{}
		storage := &mocks.MockJournalStorage{}
		record := fakeBatchRecord()
		saveErr := errors.New("duplicate key")

		txManager.On("Do", mock.Anything).Return(nil).Once()
		storage.On("SaveBatch", mock.Anything, record).Return(saveErr).Once()

		err := NewJournalRecorder(txManager, storage).Record(context.Background(), record)
		require.ErrorIs(t, err, saveErr)
		storage.AssertNotCalled(t, "SaveOutcomes", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEventRecorder_Record(t *testing.T) {
	t.Parallel()

	publisher := &mocks.MockMessaging{}
	record := fakeBatchRecord()

	var payload []byte
	publisher.On("Publish", mock.Anything, "bulk-edit-batches", record.Shop, mock.Anything).
		Run(func(args mock.Arguments) {
			payload = args.Get(3).([]byte)
		}).
		Return(nil).Once()

	err := NewEventRecorder(publisher, "bulk-edit-batches").Record(context.Background(), record)
	require.NoError(t, err)
	publisher.AssertExpectations(t)

	var event models.BatchEvent
	require.NoError(t, json.Unmarshal(payload, &event))
	assert.Equal(t, models.BatchCompletedEvent, event.EventType)
	assert.NotEmpty(t, event.EventID)
	require.NotNil(t, event.Batch)
	assert.Equal(t, record.ID, event.Batch.ID)
	assert.Equal(t, record.Stats, event.Batch.Stats)
}
