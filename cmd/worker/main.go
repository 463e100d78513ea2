package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/athebyme/gomarket-platform/catalog-admin/config"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/adapters/logger"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/adapters/messaging"
	postgres "github.com/athebyme/gomarket-platform/catalog-admin/internal/adapters/storage"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/services"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/interfaces"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/tx"
)

// Метрики для Prometheus
var (
	messagesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "worker_messages_processed_total",
		Help: "Общее количество обработанных сообщений",
	}, []string{"topic", "status"})

	messageProcessingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "worker_message_processing_duration_seconds",
		Help:    "Длительность обработки сообщений",
		Buckets: prometheus.DefBuckets,
	}, []string{"topic"})

	activeWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "worker_active_goroutines",
		Help: "Количество активных горутин-обработчиков",
	})
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log, err := logger.NewZapLogger(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		fmt.Printf("Ошибка инициализации логгера: %v\n", err)
		os.Exit(1)
	}
	log.Info("Инициализация воркера",
		interfaces.LogField{Key: "app_name", Value: cfg.AppName + "-worker"},
		interfaces.LogField{Key: "version", Value: cfg.Version},
		interfaces.LogField{Key: "env", Value: cfg.ENV},
	)

	if !cfg.Kafka.Enabled {
		log.Fatal("Воркеру нужен kafka.enabled=true")
	}

	// Запускаем HTTP сервер для метрик если они включены
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Endpoint, promhttp.Handler())
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("OK"))
		})

		metricsServer = &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Info("Запуск HTTP сервера для метрик", interfaces.LogField{Key: "addr", Value: metricsServer.Addr})
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Ошибка запуска HTTP сервера для метрик", interfaces.LogField{Key: "error", Value: err.Error()})
			}
		}()
	}

	dsn, err := cfg.PostgresDSN()
	if err != nil {
		log.Fatal("Ошибка генерации строки подключения к PostgreSQL", interfaces.LogField{Key: "error", Value: err.Error()})
	}

	// Инициализируем хранилище
	repo, err := postgres.NewPostgresStorage(ctx, dsn)
	if err != nil {
		log.Fatal("Ошибка инициализации хранилища", interfaces.LogField{Key: "error", Value: err.Error()})
	}
	defer repo.Close()
	log.Info("Хранилище инициализировано")

	// Инициализируем систему обмена сообщениями
	messagingClient, err := messaging.NewKafkaMessaging(
		cfg.Kafka.Brokers,
		cfg.Kafka.GroupID,
		messaging.DefaultProducerConfig(),
		log,
	)
	if err != nil {
		log.Fatal("Ошибка инициализации системы обмена сообщениями", interfaces.LogField{Key: "error", Value: err.Error()})
	}
	defer messagingClient.Close()
	log.Info("Система обмена сообщениями инициализирована")

	recorder := services.NewJournalRecorder(tx.NewTxManager(repo.Pool(), log), repo)
	handler := instrument(services.NewBatchEventHandler(recorder, log))

	// Каналы для сигналов и завершения
	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup
	subscribeToBatchEvents(ctx, messagingClient, cfg.Kafka.BatchTopic, handler, log, &wg)

	// Обработка сигналов завершения
	go func() {
		<-quit
		log.Info("Получен сигнал завершения, выполняется graceful shutdown...")
		cancel()
		wg.Wait()

		if metricsServer != nil {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			_ = metricsServer.Shutdown(shutdownCtx)
			shutdownCancel()
		}
		close(done)
	}()

	log.Info("Воркер запущен и готов к обработке сообщений")
	<-done
	log.Info("Воркер корректно завершил работу")
}

// instrument добавляет метрики обработки к обработчику сообщений
func instrument(next interfaces.MessageHandler) interfaces.MessageHandler {
	return func(ctx context.Context, msg *interfaces.Message) error {
		startTime := time.Now()
		activeWorkers.Inc()
		defer activeWorkers.Dec()

		err := next(ctx, msg)

		messageProcessingDuration.WithLabelValues(msg.Topic).Observe(time.Since(startTime).Seconds())
		if err != nil {
			messagesProcessed.WithLabelValues(msg.Topic, "error").Inc()
			return err
		}
		messagesProcessed.WithLabelValues(msg.Topic, "success").Inc()
		return nil
	}
}

// Подписка на события о пакетах правок
func subscribeToBatchEvents(ctx context.Context, messagingClient interfaces.MessagingPort, topic string,
	handler interfaces.MessageHandler, logger interfaces.LoggerPort, wg *sync.WaitGroup) {

	wg.Add(1)

	go func() {
		defer wg.Done()

		unsubscribe, err := messagingClient.Subscribe(ctx, topic, handler)
		if err != nil {
			logger.Error("Ошибка подписки на события пакетов",
				interfaces.LogField{Key: "topic", Value: topic},
				interfaces.LogField{Key: "error", Value: err.Error()})
			return
		}
		defer func() {
			if err := unsubscribe(); err != nil {
				logger.Warn("Ошибка отписки", interfaces.LogField{Key: "error", Value: err.Error()})
			}
		}()

		logger.Info("Подписка на события пакетов установлена", interfaces.LogField{Key: "topic", Value: topic})

		<-ctx.Done()
		logger.Info("Отмена подписки на события пакетов")
	}()
}
