package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/athebyme/gomarket-platform/catalog-admin/config"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/adapters/cache"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/adapters/logger"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/adapters/messaging"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/adapters/shopify"
	postgres "github.com/athebyme/gomarket-platform/catalog-admin/internal/adapters/storage"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/adapters/taxonomy"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/api"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/api/handlers"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/services"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/security"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/interfaces"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/tx"
)

// sessionCache кэш сессий с проверкой доступности для /health
type sessionCache interface {
	interfaces.CachePort
	Ping(ctx context.Context) error
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Некорректная конфигурация: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log, err := logger.NewZapLogger(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		fmt.Printf("Ошибка инициализации логгера: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Инициализация сервиса",
		interfaces.LogField{Key: "app_name", Value: cfg.AppName},
		interfaces.LogField{Key: "version", Value: cfg.Version},
		interfaces.LogField{Key: "env", Value: cfg.ENV},
	)

	healthChecks := make(map[string]handlers.Pinger)

	// Хранилище офлайн-сессий магазинов
	sessionsCache, err := newSessionCache(ctx, cfg)
	if err != nil {
		log.Fatal("Ошибка инициализации хранилища сессий", interfaces.LogField{Key: "error", Value: err.Error()})
	}
	defer sessionsCache.Close()
	healthChecks["sessions"] = sessionsCache
	log.Info("Хранилище сессий инициализировано", interfaces.LogField{Key: "driver", Value: cfg.Sessions.Driver})

	sessions := cache.NewSessionStore(sessionsCache, cfg.Sessions.TTL)
	if cfg.Auth.DevShop != "" && cfg.Auth.DevAccessToken != "" {
		devSession := cfg.DevSession()
		if err := sessions.Save(ctx, &devSession); err != nil {
			log.Fatal("Ошибка сохранения сессии разработчика", interfaces.LogField{Key: "error", Value: err.Error()})
		}
		log.Info("Сессия разработчика сохранена", interfaces.LogField{Key: "shop", Value: devSession.Shop})
	}

	var authService security.AuthServiceInterface
	if cfg.Auth.Enabled {
		jwtManager, err := security.NewJWTManager(cfg.Platform.APIKey, cfg.Platform.APISecret, cfg.Auth.Leeway)
		if err != nil {
			log.Fatal("Ошибка инициализации проверки токенов", interfaces.LogField{Key: "error", Value: err.Error()})
		}
		authService = security.NewAuthService(jwtManager, sessions, log)
	} else {
		log.Warn("Авторизация выключена, все запросы выполняются от сессии разработчика",
			interfaces.LogField{Key: "shop", Value: cfg.Auth.DevShop})
		authService = security.NewPlaceholderAuthService(cfg.DevSession())
	}

	// Журнал правок
	var (
		journalStorage *postgres.JournalStorage
		journalService services.JournalServiceInterface
	)
	if cfg.Journal.Enabled {
		dsn, err := cfg.PostgresDSN()
		if err != nil {
			log.Fatal("Ошибка инициализации строки подключения базы", interfaces.LogField{Key: "error", Value: err.Error()})
		}

		journalStorage, err = postgres.NewPostgresStorage(ctx, dsn)
		if err != nil {
			log.Fatal("Ошибка инициализации хранилища", interfaces.LogField{Key: "error", Value: err.Error()})
		}
		defer journalStorage.Close()

		pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
		err = journalStorage.Ping(pingCtx)
		pingCancel()
		if err != nil {
			log.Fatal("Ошибка подключения к PostgreSQL", interfaces.LogField{Key: "error", Value: err.Error()})
		}

		journalService = services.NewJournalService(journalStorage)
		healthChecks["postgres"] = journalStorage
		log.Info("Журнал правок инициализирован")
	}

	var (
		recorder        services.BatchRecorder = services.NoopRecorder{}
		messagingClient *messaging.KafkaMessaging
	)
	switch {
	case cfg.Kafka.Enabled:
		messagingClient, err = messaging.NewKafkaMessaging(
			cfg.Kafka.Brokers,
			cfg.Kafka.GroupID,
			messaging.DefaultProducerConfig(),
			log,
		)
		if err != nil {
			log.Fatal("Ошибка инициализации системы обмена сообщениями", interfaces.LogField{Key: "error", Value: err.Error()})
		}
		defer messagingClient.Close()

		topicCtx, topicCancel := context.WithTimeout(ctx, 30*time.Second)
		err = messagingClient.CreateTopic(topicCtx, cfg.Kafka.BatchTopic, cfg.Kafka.Partitions, cfg.Kafka.ReplicationFactor)
		topicCancel()
		if err != nil {
			log.Warn("Не удалось создать топик пакетов", interfaces.LogField{Key: "error", Value: err.Error()})
		}

		recorder = services.NewEventRecorder(messagingClient, cfg.Kafka.BatchTopic)
		log.Info("Пакеты правок публикуются в Kafka", interfaces.LogField{Key: "topic", Value: cfg.Kafka.BatchTopic})

	case journalStorage != nil:
		recorder = services.NewJournalRecorder(tx.NewTxManager(journalStorage.Pool(), log), journalStorage)
		log.Info("Пакеты правок пишутся в журнал напрямую")
	}

	clients := shopify.NewFactory(cfg.Platform.ClientConfig(), log)

	filterService := services.NewFilterService(clients, log)
	bulkEditService := services.NewBulkEditService(clients, recorder, log)

	taxonomyService := services.NewTaxonomyService(
		taxonomy.NewFileLoader(cfg.Taxonomy.Path, cfg.Taxonomy.LegacyPath, log),
		log,
	)
	log.Info("Справочник категорий загружен", interfaces.LogField{Key: "categories", Value: len(taxonomyService.FlatList())})

	router := api.SetupRouter(api.RouterConfig{
		Filter:             filterService,
		Bulk:               bulkEditService,
		Taxonomy:           taxonomyService,
		Journal:            journalService,
		Auth:               authService,
		Logger:             log,
		Version:            cfg.Version,
		HealthChecks:       healthChecks,
		CORSAllowedOrigins: cfg.Security.CORSAllowOrigins,
		RequestTimeout:     cfg.Server.RequestTimeout,
		MetricsEnabled:     cfg.Metrics.Enabled,
		MetricsEndpoint:    cfg.Metrics.Endpoint,
	})
	log.Info("Маршрутизатор настроен")

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Сервер запущен", interfaces.LogField{Key: "address", Value: server.Addr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Ошибка запуска сервера", interfaces.LogField{Key: "error", Value: err.Error()})
		}
	}()

	go func() {
		<-quit
		log.Info("Получен сигнал завершения, выполняется graceful shutdown...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("Ошибка при graceful shutdown", interfaces.LogField{Key: "error", Value: err.Error()})
		}
		log.Info("HTTP сервер остановлен")

		cancel()
		close(done)
	}()

	<-done
	log.Info("Сервер корректно завершил работу")
}

func newSessionCache(ctx context.Context, cfg *config.Config) (sessionCache, error) {
	switch cfg.Sessions.Driver {
	case "redis":
		return cache.NewRedisCache(ctx, cfg.RedisConfig())
	default:
		return cache.NewMemoryCache(10 * time.Minute), nil
	}
}
