package interfaces

import (
	"context"
	"time"
)

// Message представляет сообщение в системе
type Message struct {
	ID          string            `json:"id"`           // Уникальный ID сообщения
	Topic       string            `json:"topic"`        // Тема сообщения
	Key         string            `json:"key"`          // Ключ сообщения (опционально)
	Value       []byte            `json:"value"`        // Содержимое сообщения
	Headers     map[string]string `json:"headers"`      // Заголовки сообщения
	Shop        string            `json:"shop"`         // Домен магазина, если задан
	PublishedAt time.Time         `json:"published_at"` // Время публикации
}

// MessageHandler определяет функцию обработчика сообщений
type MessageHandler func(ctx context.Context, msg *Message) error

// ConsumerConfig содержит настройки для подписчика на сообщения
type ConsumerConfig struct {
	GroupID            string        // ID группы потребителей
	AutoCommit         bool          // Автоматически подтверждать полученные сообщения
	AutoCommitInterval time.Duration // Интервал автоматического подтверждения
	PollTimeout        time.Duration // Таймаут для опроса новых сообщений
	OffsetReset        string        // earliest или latest
}

// ProducerConfig содержит настройки для отправителя сообщений
type ProducerConfig struct {
	ClientID     string        // client.id продюсера
	LingerMs     time.Duration // Время ожидания заполнения пакета
	Compression  string        // Тип сжатия (none, gzip, snappy, lz4, zstd)
	RequiredAcks string        // Требуемые подтверждения (all, 1, 0)
	RetryBackoff time.Duration // Время между повторными попытками
	MaxRetries   int           // Максимальное число повторных попыток
}

// MessagingPort отправка и получение сообщений брокера
type MessagingPort interface {
	// Publish публикует сообщение, key определяет партицию
	Publish(ctx context.Context, topic, key string, message []byte) error

	// Subscribe запускает обработку сообщений темы, возвращает функцию отписки
	Subscribe(ctx context.Context, topic string, handler MessageHandler) (func() error, error)

	Close() error
}
