package models

import "time"

// BatchEventType тип события журнала правок
type BatchEventType string

const (
	BatchCompletedEvent BatchEventType = "bulk_edit_batch_completed"
)

// BatchEvent событие о завершенной массовой правке. Ключ сообщения - домен магазина.
type BatchEvent struct {
	EventID    string         `json:"event_id"`
	EventType  BatchEventType `json:"event_type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Batch      *BatchRecord   `json:"batch"`
}
