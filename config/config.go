package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config содержит все настройки сервиса
type Config struct {
	AppName  string
	Version  string
	LogLevel string
	ENV      string

	Server struct {
		Host            string
		Port            int
		ReadTimeout     time.Duration
		WriteTimeout    time.Duration
		ShutdownTimeout time.Duration
		RequestTimeout  time.Duration
	}

	Platform PlatformConfig

	Auth struct {
		Enabled        bool
		DevShop        string
		DevAccessToken string
		Leeway         time.Duration
	}

	Sessions struct {
		Driver string // memory | redis
		TTL    time.Duration
	}

	Postgres struct {
		Host     string
		Port     int
		User     string
		Password string
		DBName   string
		SSLMode  string
		Timeout  time.Duration
		PoolSize int // размер пула соединений
	}

	Redis struct {
		Host      string
		Port      int
		Password  string
		DB        int
		KeyPrefix string
	}

	Kafka struct {
		Enabled           bool
		Brokers           []string
		GroupID           string
		BatchTopic        string
		Partitions        int
		ReplicationFactor int
	}

	Journal struct {
		Enabled bool
	}

	Taxonomy struct {
		Path       string
		LegacyPath string
	}

	Metrics struct {
		Enabled  bool
		Endpoint string
		Port     int // порт метрик воркера
	}

	Security struct {
		CORSAllowOrigins []string
	}
}

// Load загружает конфигурацию из .env, файла и переменных окружения
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("ошибка чтения .env: %w", err)
	}

	configFile := "config"
	if configPath != "" {
		configFile = configPath
	}

	v := viper.New()
	v.SetConfigName(configFile)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")
	v.AddConfigPath("../../config")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
		}
		// Файла нет, работаем на значениях по умолчанию и переменных окружения
	}

	setDefaults(v)
	if err := bindEnvVariables(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка десериализации конфигурации: %w", err)
	}

	if cfg.ENV == "" {
		cfg.ENV = "development"
		if envVar := os.Getenv("APP_ENV"); envVar != "" {
			cfg.ENV = envVar
		}
	}

	return &cfg, nil
}

// IsProduction true для боевого окружения
func (c *Config) IsProduction() bool {
	return c.ENV == "production"
}

// Validate проверяет настройки, нужные API-серверу
func (c *Config) Validate() error {
	var errs []error

	switch c.Sessions.Driver {
	case "memory", "redis":
	default:
		errs = append(errs, fmt.Errorf("sessions.driver: неизвестный драйвер %q", c.Sessions.Driver))
	}

	if c.Auth.Enabled {
		if c.Platform.APIKey == "" || c.Platform.APISecret == "" {
			errs = append(errs, errors.New("platform.apiKey и platform.apiSecret обязательны при auth.enabled"))
		}
	} else if c.Auth.DevShop == "" {
		errs = append(errs, errors.New("auth.devShop обязателен при выключенной авторизации"))
	}

	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		errs = append(errs, errors.New("kafka.brokers пуст"))
	}

	if c.Platform.APIVersion == "" {
		errs = append(errs, errors.New("platform.apiVersion обязателен"))
	}

	return errors.Join(errs...)
}

// setDefaults устанавливает значения по умолчанию
func setDefaults(v *viper.Viper) {
	// Основные настройки
	v.SetDefault("appName", "catalog-admin")
	v.SetDefault("version", "1.0.0")
	v.SetDefault("logLevel", "info")
	v.SetDefault("env", "development")

	// Настройки сервера
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", "10s")
	v.SetDefault("server.writeTimeout", "60s")
	v.SetDefault("server.shutdownTimeout", "10s")
	v.SetDefault("server.requestTimeout", "55s")

	// Admin API платформы
	v.SetDefault("platform.apiVersion", "2024-10")
	v.SetDefault("platform.timeout", "30s")

	// Авторизация
	v.SetDefault("auth.enabled", true)
	v.SetDefault("auth.leeway", "5s")

	// Хранилище сессий
	v.SetDefault("sessions.driver", "memory")
	v.SetDefault("sessions.ttl", "0s")

	// Настройки Postgres
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "postgres")
	v.SetDefault("postgres.dbname", "catalog_admin")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.timeout", "5s")
	v.SetDefault("postgres.poolSize", 10)

	// Настройки Redis
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.keyPrefix", "catalog-admin")

	// Настройки Kafka
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.groupID", "catalog-admin-journal")
	v.SetDefault("kafka.batchTopic", "bulk-edit-batches")
	v.SetDefault("kafka.partitions", 3)
	v.SetDefault("kafka.replicationFactor", 1)

	v.SetDefault("journal.enabled", false)

	// Справочник категорий
	v.SetDefault("taxonomy.path", "data/taxonomy/categories.txt")
	v.SetDefault("taxonomy.legacyPath", "data/taxonomy.txt")

	// Настройки метрик
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.endpoint", "/metrics")
	v.SetDefault("metrics.port", 9091)

	// Настройки безопасности
	v.SetDefault("security.corsAllowOrigins", []string{"*"})
}

// bindEnvVariables привязывает переменные окружения к конфигурации
func bindEnvVariables(v *viper.Viper) error {
	bindings := map[string]string{
		// Основные настройки
		"appName":  "APP_NAME",
		"version":  "APP_VERSION",
		"logLevel": "LOG_LEVEL",
		"env":      "APP_ENV",

		// Настройки сервера
		"server.host":            "SERVER_HOST",
		"server.port":            "SERVER_PORT",
		"server.readTimeout":     "SERVER_READ_TIMEOUT",
		"server.writeTimeout":    "SERVER_WRITE_TIMEOUT",
		"server.shutdownTimeout": "SERVER_SHUTDOWN_TIMEOUT",
		"server.requestTimeout":  "SERVER_REQUEST_TIMEOUT",

		// Admin API платформы
		"platform.apiVersion": "PLATFORM_API_VERSION",
		"platform.timeout":    "PLATFORM_TIMEOUT",
		"platform.apiKey":     "PLATFORM_API_KEY",
		"platform.apiSecret":  "PLATFORM_API_SECRET",
		"platform.baseURL":    "PLATFORM_BASE_URL",

		// Авторизация
		"auth.enabled":        "AUTH_ENABLED",
		"auth.devShop":        "AUTH_DEV_SHOP",
		"auth.devAccessToken": "AUTH_DEV_ACCESS_TOKEN",
		"auth.leeway":         "AUTH_LEEWAY",

		"sessions.driver": "SESSIONS_DRIVER",
		"sessions.ttl":    "SESSIONS_TTL",

		// Настройки Postgres
		"postgres.host":     "POSTGRES_HOST",
		"postgres.port":     "POSTGRES_PORT",
		"postgres.user":     "POSTGRES_USER",
		"postgres.password": "POSTGRES_PASSWORD",
		"postgres.dbname":   "POSTGRES_DBNAME",
		"postgres.sslmode":  "POSTGRES_SSLMODE",
		"postgres.timeout":  "POSTGRES_TIMEOUT",
		"postgres.poolSize": "POSTGRES_POOL_SIZE",

		// Настройки Redis
		"redis.host":      "REDIS_HOST",
		"redis.port":      "REDIS_PORT",
		"redis.password":  "REDIS_PASSWORD",
		"redis.db":        "REDIS_DB",
		"redis.keyPrefix": "REDIS_KEY_PREFIX",

		// Настройки Kafka
		"kafka.enabled":           "KAFKA_ENABLED",
		"kafka.brokers":           "KAFKA_BROKERS",
		"kafka.groupID":           "KAFKA_GROUP_ID",
		"kafka.batchTopic":        "KAFKA_BATCH_TOPIC",
		"kafka.partitions":        "KAFKA_PARTITIONS",
		"kafka.replicationFactor": "KAFKA_REPLICATION_FACTOR",

		"journal.enabled": "JOURNAL_ENABLED",

		"taxonomy.path":       "TAXONOMY_PATH",
		"taxonomy.legacyPath": "TAXONOMY_LEGACY_PATH",

		// Настройки метрик
		"metrics.enabled":  "METRICS_ENABLED",
		"metrics.endpoint": "METRICS_ENDPOINT",
		"metrics.port":     "METRICS_PORT",

		// Настройки безопасности
		"security.corsAllowOrigins": "CORS_ALLOW_ORIGINS",
	}

	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("ошибка привязки %s: %w", env, err)
		}
	}
	return nil
}
