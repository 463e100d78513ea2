package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/infrastructure/platform"
)

// MockAdminAPI мок platform.AdminAPI
type MockAdminAPI struct {
	mock.Mock
}

func (m *MockAdminAPI) SearchProducts(ctx context.Context, query string, first int) ([]models.Product, error) {
	args := m.Called(ctx, query, first)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

func (m *MockAdminAPI) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	args := m.Called(ctx, productID)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *MockAdminAPI) UpdateProduct(ctx context.Context, update models.ProductUpdate) ([]models.FieldError, error) {
	args := m.Called(ctx, update)
	fieldErrs, _ := args.Get(0).([]models.FieldError)
	return fieldErrs, args.Error(1)
}

func (m *MockAdminAPI) UpdateVariants(ctx context.Context, productID string, updates []models.VariantUpdate) ([]models.FieldError, error) {
	args := m.Called(ctx, productID, updates)
	fieldErrs, _ := args.Get(0).([]models.FieldError)
	return fieldErrs, args.Error(1)
}

func (m *MockAdminAPI) UpdateVariantSKU(ctx context.Context, variantID, sku string) error {
	args := m.Called(ctx, variantID, sku)
	return args.Error(0)
}

// ClientFactory возвращает один и тот же клиент для любой сессии
type ClientFactory struct {
	API      platform.AdminAPI
	Sessions []models.Session
}

func (f *ClientFactory) ForSession(session models.Session) platform.AdminAPI {
	f.Sessions = append(f.Sessions, session)
	return f.API
}
