package platform

import (
	"context"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
)

// AdminAPI операции Admin API платформы, доступные в рамках одной сессии магазина
type AdminAPI interface {
	// SearchProducts возвращает первую страницу товаров по поисковому запросу платформы
	SearchProducts(ctx context.Context, query string, first int) ([]models.Product, error)

	// GetProduct получает товар вместе с вариантами
	// Возвращает models.ErrNotFound, если товара нет
	GetProduct(ctx context.Context, productID string) (*models.Product, error)

	// UpdateProduct применяет изменения товара.
	// Ошибки валидации платформы возвращаются отдельно от ошибки вызова.
	UpdateProduct(ctx context.Context, update models.ProductUpdate) ([]models.FieldError, error)

	// UpdateVariants массово обновляет варианты одного товара
	UpdateVariants(ctx context.Context, productID string, updates []models.VariantUpdate) ([]models.FieldError, error)

	// UpdateVariantSKU обновляет артикул варианта через REST
	UpdateVariantSKU(ctx context.Context, variantID, sku string) error
}

// ClientFactory создает клиент Admin API для сессии магазина
type ClientFactory interface {
	ForSession(session models.Session) AdminAPI
}
