package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/interfaces"
)

// MemoryCache кэш в памяти процесса для локального запуска и тестов
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache создает кэш с периодической очисткой просроченных ключей
func NewMemoryCache(cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		store: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.store.Get(key)
	if !ok {
		return nil, interfaces.ErrCacheMiss
	}
	return v.([]byte), nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value []byte, expiration time.Duration) error {
	if expiration <= 0 {
		expiration = gocache.NoExpiration
	}
	m.store.Set(key, value, expiration)
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.store.Delete(key)
	return nil
}

// Ping всегда успешен
func (m *MemoryCache) Ping(context.Context) error {
	return nil
}

func (m *MemoryCache) Close() error {
	m.store.Flush()
	return nil
}
