package interfaces

import (
	"context"
)

// AuthPort определяет интерфейс проверки сессионного токена платформы
type AuthPort interface {
	// ValidateToken проверяет токен и возвращает домен магазина, для которого он выпущен
	ValidateToken(ctx context.Context, token string) (string, error)
}
