package services

import (
	"context"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/utils"
)

// FilterServiceInterface предпросмотр каталога по правилу
type FilterServiceInterface interface {
	Preview(ctx context.Context, session models.Session, rule models.FilterRule) ([]models.Product, error)
}

// BulkEditServiceInterface массовые правки
type BulkEditServiceInterface interface {
	EditTitles(ctx context.Context, session models.Session, productIDs []string, edit models.TitleEdit) (*models.BatchReport, error)
	EditStatus(ctx context.Context, session models.Session, productIDs []string, edit models.StatusEdit) (*models.BatchReport, error)
	EditProductType(ctx context.Context, session models.Session, productIDs []string, edit models.ProductTypeEdit) (*models.BatchReport, error)
	EditTags(ctx context.Context, session models.Session, productIDs []string, edit models.TagsEdit) (*models.BatchReport, error)
	EditSKUs(ctx context.Context, session models.Session, productIDs []string, edit models.SKUEdit) (*models.BatchReport, error)
	EditWeights(ctx context.Context, session models.Session, productIDs []string, edit models.WeightEdit) (*models.BatchReport, error)
}

// TaxonomyServiceInterface справочник категорий
type TaxonomyServiceInterface interface {
	Tree() []*models.TaxonomyNode
	FlatList() []models.TaxonomyOption
	Search(query string, limit int) []models.TaxonomyOption
}

// JournalServiceInterface чтение журнала правок
type JournalServiceInterface interface {
	ListBatches(ctx context.Context, shop string, page, pageSize int) (*utils.PagedResult, error)
	GetBatch(ctx context.Context, shop, batchID string) (*models.BatchRecord, error)
}

var (
	_ FilterServiceInterface   = (*FilterService)(nil)
	_ BulkEditServiceInterface = (*BulkEditService)(nil)
	_ TaxonomyServiceInterface = (*TaxonomyService)(nil)
	_ JournalServiceInterface  = (*JournalService)(nil)
)
