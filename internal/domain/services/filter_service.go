package services

import (
	"context"

	"github.com/samber/lo"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/infrastructure/platform"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/interfaces"
)

// PreviewPageSize размер единственной запрашиваемой страницы
const PreviewPageSize = 50

// FilterService предпросмотр товаров по правилу фильтрации
type FilterService struct {
	clients platform.ClientFactory
	logger  interfaces.LoggerPort
}

// NewFilterService создает новый экземпляр FilterService
func NewFilterService(clients platform.ClientFactory, logger interfaces.LoggerPort) *FilterService {
	return &FilterService{
		clients: clients,
		logger:  logger,
	}
}

// Preview возвращает товары первой страницы, подходящие под правило.
// Товары за пределами первой страницы не рассматриваются.
func (s *FilterService) Preview(ctx context.Context, session models.Session, rule models.FilterRule) ([]models.Product, error) {
	query, err := BuildQuery(rule)
	if err != nil {
		return nil, err
	}

	products, err := s.clients.ForSession(session).SearchProducts(ctx, query, PreviewPageSize)
	if err != nil {
		s.logger.ErrorWithContext(ctx, "Ошибка поиска товаров",
			interfaces.LogField{Key: "query", Value: query},
			interfaces.LogField{Key: "error", Value: err.Error()},
		)
		return nil, err
	}

	matched := lo.Filter(products, func(p models.Product, _ int) bool {
		return MatchRule(p, rule)
	})

	s.logger.InfoWithContext(ctx, "Предпросмотр фильтра",
		interfaces.LogField{Key: "field", Value: rule.Field},
		interfaces.LogField{Key: "condition", Value: rule.Condition},
		interfaces.LogField{Key: "fetched", Value: len(products)},
		interfaces.LogField{Key: "matched", Value: len(matched)},
	)

	return matched, nil
}
