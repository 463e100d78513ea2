package interfaces

import (
	"context"
)

// StoragePort определяет интерфейс для работы с постоянным хранилищем данных
// Реализация может использовать любую базу данных (PostgreSQL, MySQL, MongoDB и т.д.)
type StoragePort interface {
	// Ping проверяет соединение с хранилищем
	Ping(ctx context.Context) error

	// Close закрывает соединение с хранилищем
	Close() error
}
