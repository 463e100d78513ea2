package config

import (
	"time"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/adapters/cache"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/adapters/shopify"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/utils"
)

// PlatformConfig настройки приложения на платформе магазинов
type PlatformConfig struct {
	APIVersion string        `mapstructure:"apiVersion"`
	Timeout    time.Duration `mapstructure:"timeout"`
	APIKey     string        `mapstructure:"apiKey"`
	APISecret  string        `mapstructure:"apiSecret"`
	BaseURL    string        `mapstructure:"baseURL"`
}

// ClientConfig возвращает конфигурацию для shopify.Factory
func (p PlatformConfig) ClientConfig() shopify.Config {
	return shopify.Config{
		APIVersion: p.APIVersion,
		Timeout:    p.Timeout,
		BaseURL:    p.BaseURL,
	}
}

// DevSession сессия, которая используется при выключенной авторизации
func (c *Config) DevSession() models.Session {
	return models.Session{
		Shop:        c.Auth.DevShop,
		AccessToken: c.Auth.DevAccessToken,
	}
}

// RedisConfig возвращает конфигурацию для cache.NewRedisCache
func (c *Config) RedisConfig() cache.RedisConfig {
	return cache.RedisConfig{
		Host:      c.Redis.Host,
		Port:      c.Redis.Port,
		Password:  c.Redis.Password,
		DB:        c.Redis.DB,
		KeyPrefix: c.Redis.KeyPrefix,
	}
}

// PostgresDSN строка подключения к журналу правок
func (c *Config) PostgresDSN() (string, error) {
	return utils.GenerateConnectionString(
		c.Postgres.Host,
		c.Postgres.User,
		c.Postgres.Password,
		c.Postgres.DBName,
		c.Postgres.SSLMode,
		c.Postgres.Port,
		c.Postgres.PoolSize,
		c.Postgres.Timeout,
	)
}
