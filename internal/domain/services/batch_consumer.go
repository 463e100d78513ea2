package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/interfaces"
)

// NewBatchEventHandler обработчик событий о пакетах правок: запись пакета в журнал.
// Битые и чужие сообщения подтверждаются без записи, ошибка журнала оставляет сообщение в теме.
func NewBatchEventHandler(recorder BatchRecorder, logger interfaces.LoggerPort) interfaces.MessageHandler {
	return func(ctx context.Context, msg *interfaces.Message) error {
		var event models.BatchEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.ErrorWithContext(ctx, "Ошибка декодирования события",
				interfaces.LogField{Key: "message_id", Value: msg.ID},
				interfaces.LogField{Key: "error", Value: err.Error()},
			)
			return nil
		}

		if event.EventType != models.BatchCompletedEvent || event.Batch == nil {
			logger.WarnWithContext(ctx, "Неизвестный тип события",
				interfaces.LogField{Key: "event_type", Value: event.EventType},
				interfaces.LogField{Key: "message_id", Value: msg.ID},
			)
			return nil
		}

		ctx = context.WithValue(ctx, interfaces.ShopKey, event.Batch.Shop)
		ctx = context.WithValue(ctx, interfaces.BatchIDKey, event.Batch.ID)

		if err := recorder.Record(ctx, event.Batch); err != nil {
			return fmt.Errorf("failed to record batch %s: %w", event.Batch.ID, err)
		}

		logger.InfoWithContext(ctx, "Пакет записан в журнал",
			interfaces.LogField{Key: "action", Value: event.Batch.Action},
			interfaces.LogField{Key: "verdict", Value: event.Batch.Verdict},
		)
		return nil
	}
}
