package messaging

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/google/uuid"

	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/interfaces"
)

const shopHeader = "shop"

// KafkaMessaging реализация MessagingPort с использованием Kafka
type KafkaMessaging struct {
	producer       *kafka.Producer
	consumers      map[string]*kafka.Consumer
	consumersMutex sync.RWMutex
	brokers        string
	groupID        string
	logger         interfaces.LoggerPort
	done           chan struct{}
}

// DefaultProducerConfig настройки продюсера по умолчанию
func DefaultProducerConfig() interfaces.ProducerConfig {
	return interfaces.ProducerConfig{
		ClientID:     "catalog-admin-producer",
		LingerMs:     10 * time.Millisecond,
		Compression:  "snappy",
		RequiredAcks: "all",
		RetryBackoff: 500 * time.Millisecond,
		MaxRetries:   5,
	}
}

// NewKafkaMessaging создает новый экземпляр KafkaMessaging
func NewKafkaMessaging(brokers []string, groupID string, cfg interfaces.ProducerConfig, logger interfaces.LoggerPort) (*KafkaMessaging, error) {
	if len(brokers) == 0 {
		return nil, errors.New("список брокеров Kafka пуст")
	}
	servers := strings.Join(brokers, ",")

	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":            servers,
		"client.id":                    cfg.ClientID,
		"acks":                         cfg.RequiredAcks,
		"retries":                      cfg.MaxRetries,
		"retry.backoff.ms":             int(cfg.RetryBackoff.Milliseconds()),
		"compression.type":             cfg.Compression,
		"linger.ms":                    int(cfg.LingerMs.Milliseconds()),
		"message.max.bytes":            1000000,
		"queue.buffering.max.messages": 100000,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Kafka producer: %w", err)
	}

	k := &KafkaMessaging{
		producer:  producer,
		consumers: make(map[string]*kafka.Consumer),
		brokers:   servers,
		groupID:   groupID,
		logger:    logger,
		done:      make(chan struct{}),
	}

	go k.deliveryReports()

	return k, nil
}

// deliveryReports логирует ошибки доставки, о которых Produce не сообщает синхронно
func (k *KafkaMessaging) deliveryReports() {
	for {
		select {
		case <-k.done:
			return
		case ev, ok := <-k.producer.Events():
			if !ok {
				return
			}
			if m, ok := ev.(*kafka.Message); ok && m.TopicPartition.Error != nil {
				k.logger.Error("Ошибка доставки сообщения Kafka",
					interfaces.LogField{Key: "topic", Value: *m.TopicPartition.Topic},
					interfaces.LogField{Key: "error", Value: m.TopicPartition.Error.Error()},
				)
			}
		}
	}
}

// messageToKafkaMessage преобразует сообщение в kafka.Message
func messageToKafkaMessage(topic, key string, message []byte, headers map[string]string) *kafka.Message {
	var kafkaHeaders []kafka.Header
	for k, v := range headers {
		kafkaHeaders = append(kafkaHeaders, kafka.Header{
			Key:   k,
			Value: []byte(v),
		})
	}

	// Добавляем служебные заголовки
	kafkaHeaders = append(kafkaHeaders,
		kafka.Header{Key: "message_id", Value: []byte(uuid.New().String())},
		kafka.Header{Key: "timestamp", Value: []byte(strconv.FormatInt(time.Now().UnixNano(), 10))},
	)

	var keyBytes []byte
	if key != "" {
		keyBytes = []byte(key)
	}

	return &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          message,
		Key:            keyBytes,
		Headers:        kafkaHeaders,
	}
}

// kafkaMessageToMessage преобразует kafka.Message в Message
func kafkaMessageToMessage(msg *kafka.Message) *interfaces.Message {
	headers := make(map[string]string)
	for _, header := range msg.Headers {
		headers[header.Key] = string(header.Value)
	}

	publishedAt := msg.Timestamp
	if tsStr, ok := headers["timestamp"]; ok {
		if ns, err := strconv.ParseInt(tsStr, 10, 64); err == nil {
			publishedAt = time.Unix(0, ns).UTC()
		}
	}

	var topic string
	if msg.TopicPartition.Topic != nil {
		topic = *msg.TopicPartition.Topic
	}

	return &interfaces.Message{
		ID:          headers["message_id"],
		Topic:       topic,
		Key:         string(msg.Key),
		Value:       msg.Value,
		Headers:     headers,
		Shop:        headers[shopHeader],
		PublishedAt: publishedAt,
	}
}

// Publish публикует сообщение в указанную тему. Ключ дублируется в заголовок shop.
func (k *KafkaMessaging) Publish(ctx context.Context, topic, key string, message []byte) error {
	var headers map[string]string
	if key != "" {
		headers = map[string]string{shopHeader: key}
	}
	if err := k.producer.Produce(messageToKafkaMessage(topic, key, message, headers), nil); err != nil {
		return fmt.Errorf("ошибка публикации в %s: %w", topic, err)
	}
	return nil
}

// Subscribe подписывается на тему с ручным подтверждением после успешной обработки
func (k *KafkaMessaging) Subscribe(ctx context.Context, topic string, handler interfaces.MessageHandler) (func() error, error) {
	config := &interfaces.ConsumerConfig{
		GroupID:     k.groupID,
		AutoCommit:  false,
		PollTimeout: 100 * time.Millisecond,
		OffsetReset: "earliest",
	}
	return k.SubscribeWithConfig(ctx, topic, handler, config)
}

// SubscribeWithConfig подписывается на указанную тему с дополнительными настройками
func (k *KafkaMessaging) SubscribeWithConfig(ctx context.Context, topic string, handler interfaces.MessageHandler, config *interfaces.ConsumerConfig) (func() error, error) {
	handlerID := uuid.New().String()

	kafkaConfig := &kafka.ConfigMap{
		"bootstrap.servers":     k.brokers,
		"group.id":              config.GroupID,
		"auto.offset.reset":     config.OffsetReset,
		"enable.auto.commit":    config.AutoCommit,
		"session.timeout.ms":    30000,
		"max.poll.interval.ms":  300000,
		"heartbeat.interval.ms": 3000,
		"fetch.min.bytes":       1,
		"fetch.wait.max.ms":     500,
	}
	if config.AutoCommit {
		_ = kafkaConfig.SetKey("auto.commit.interval.ms", int(config.AutoCommitInterval.Milliseconds()))
	}

	consumer, err := kafka.NewConsumer(kafkaConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Kafka consumer: %w", err)
	}

	if err := consumer.Subscribe(topic, nil); err != nil {
		consumer.Close()
		return nil, fmt.Errorf("ошибка подписки на топик %s: %w", topic, err)
	}

	k.consumersMutex.Lock()
	k.consumers[handlerID] = consumer
	k.consumersMutex.Unlock()

	subCtx, cancel := context.WithCancel(ctx)
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		k.consumeMessages(subCtx, consumer, handler, config)
	}()

	unsubscribe := func() error {
		cancel()
		<-stopped

		k.consumersMutex.Lock()
		c := k.consumers[handlerID]
		delete(k.consumers, handlerID)
		k.consumersMutex.Unlock()

		if c != nil {
			return c.Close()
		}
		return nil
	}

	return unsubscribe, nil
}

// consumeMessages обрабатывает сообщения из Kafka
func (k *KafkaMessaging) consumeMessages(ctx context.Context, consumer *kafka.Consumer, handler interfaces.MessageHandler, config *interfaces.ConsumerConfig) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		ev := consumer.Poll(int(config.PollTimeout.Milliseconds()))
		if ev == nil {
			continue
		}

		switch e := ev.(type) {
		case *kafka.Message:
			msg := kafkaMessageToMessage(e)

			if err := handler(ctx, msg); err != nil {
				// Без коммита сообщение будет прочитано повторно после ребалансировки
				k.logger.ErrorWithContext(ctx, "Ошибка обработки сообщения",
					interfaces.LogField{Key: "topic", Value: msg.Topic},
					interfaces.LogField{Key: "message_id", Value: msg.ID},
					interfaces.LogField{Key: "error", Value: err.Error()},
				)
				continue
			}

			if !config.AutoCommit {
				if _, err := consumer.CommitMessage(e); err != nil {
					k.logger.WarnWithContext(ctx, "Ошибка подтверждения сообщения",
						interfaces.LogField{Key: "message_id", Value: msg.ID},
						interfaces.LogField{Key: "error", Value: err.Error()},
					)
				}
			}

		case kafka.Error:
			k.logger.ErrorWithContext(ctx, "Ошибка Kafka",
				interfaces.LogField{Key: "code", Value: e.Code().String()},
				interfaces.LogField{Key: "error", Value: e.Error()},
			)
			if e.Code() == kafka.ErrAllBrokersDown {
				return
			}

		case kafka.PartitionEOF:
			k.logger.DebugWithContext(ctx, "Достигнут конец партиции",
				interfaces.LogField{Key: "partition", Value: e.String()},
			)
		}
	}
}

// CreateTopic создает тему, если ее еще нет
func (k *KafkaMessaging) CreateTopic(ctx context.Context, topic string, partitions int, replicationFactor int) error {
	adminClient, err := kafka.NewAdminClientFromProducer(k.producer)
	if err != nil {
		return fmt.Errorf("ошибка создания Kafka admin client: %w", err)
	}
	defer adminClient.Close()

	topicConfig := []kafka.TopicSpecification{
		{
			Topic:             topic,
			NumPartitions:     partitions,
			ReplicationFactor: replicationFactor,
		},
	}

	result, err := adminClient.CreateTopics(ctx, topicConfig, kafka.SetAdminOperationTimeout(30*time.Second))
	if err != nil {
		return fmt.Errorf("ошибка создания топика %s: %w", topic, err)
	}

	for _, r := range result {
		if code := r.Error.Code(); code != kafka.ErrNoError && code != kafka.ErrTopicAlreadyExists {
			return fmt.Errorf("ошибка создания топика %s: %s", r.Topic, r.Error.String())
		}
	}

	return nil
}

// Close закрывает соединение с системой обмена сообщениями
func (k *KafkaMessaging) Close() error {
	k.consumersMutex.Lock()
	for id, consumer := range k.consumers {
		_ = consumer.Close()
		delete(k.consumers, id)
	}
	k.consumersMutex.Unlock()

	// Ждем до 15 секунд для отправки всех сообщений
	if left := k.producer.Flush(15 * 1000); left > 0 {
		k.logger.Warn("Не все сообщения Kafka отправлены",
			interfaces.LogField{Key: "pending", Value: left},
		)
	}
	close(k.done)
	k.producer.Close()

	return nil
}
