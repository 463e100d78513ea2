package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/edits"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/infrastructure/platform"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/interfaces"
)

// BulkEditService массовые правки товаров и вариантов
type BulkEditService struct {
	clients  platform.ClientFactory
	recorder BatchRecorder
	logger   interfaces.LoggerPort
}

// NewBulkEditService создает новый экземпляр BulkEditService
func NewBulkEditService(clients platform.ClientFactory, recorder BatchRecorder, logger interfaces.LoggerPort) *BulkEditService {
	if recorder == nil {
		recorder = NoopRecorder{}
	}
	return &BulkEditService{
		clients:  clients,
		recorder: recorder,
		logger:   logger,
	}
}

// EditTitles применяет правку названия к товарам
func (s *BulkEditService) EditTitles(ctx context.Context, session models.Session, productIDs []string, edit models.TitleEdit) (*models.BatchReport, error) {
	if err := edits.ValidateTitle(edit); err != nil {
		return nil, err
	}

	return s.run(ctx, session, models.ActionTitle, productIDs, edit, func(ctx context.Context, api platform.AdminAPI, id string) models.ProductOutcome {
		return s.editProduct(ctx, api, id, func(p *models.Product) (productChange, error) {
			title := edits.ApplyTitle(p.Title, edit)
			if title != p.Title && strings.TrimSpace(title) == "" {
				return productChange{}, fmt.Errorf("%w: title can't be blank", models.ErrValidation)
			}
			return productChange{
				original:  p.Title,
				updated:   title,
				unchanged: title == p.Title,
				update:    models.ProductUpdate{ID: p.ID, Title: &title},
			}, nil
		})
	})
}

// EditStatus меняет статус товаров
func (s *BulkEditService) EditStatus(ctx context.Context, session models.Session, productIDs []string, edit models.StatusEdit) (*models.BatchReport, error) {
	if err := edits.ValidateStatus(edit); err != nil {
		return nil, err
	}
	status, _ := models.ParseProductStatus(string(edit.Status))
	edit.Status = status

	return s.run(ctx, session, models.ActionStatus, productIDs, edit, func(ctx context.Context, api platform.AdminAPI, id string) models.ProductOutcome {
		return s.editProduct(ctx, api, id, func(p *models.Product) (productChange, error) {
			return productChange{
				original:  p.Status,
				updated:   status,
				unchanged: p.Status == status,
				update:    models.ProductUpdate{ID: p.ID, Status: &status},
			}, nil
		})
	})
}

// EditProductType применяет правку типа товара
func (s *BulkEditService) EditProductType(ctx context.Context, session models.Session, productIDs []string, edit models.ProductTypeEdit) (*models.BatchReport, error) {
	if err := edits.ValidateProductType(edit); err != nil {
		return nil, err
	}

	return s.run(ctx, session, models.ActionProductType, productIDs, edit, func(ctx context.Context, api platform.AdminAPI, id string) models.ProductOutcome {
		return s.editProduct(ctx, api, id, func(p *models.Product) (productChange, error) {
			productType := edits.ApplyProductType(p.ProductType, edit)
			return productChange{
				original:  p.ProductType,
				updated:   productType,
				unchanged: productType == p.ProductType,
				update:    models.ProductUpdate{ID: p.ID, ProductType: &productType},
			}, nil
		})
	})
}

// EditTags применяет правку тегов. Теги сравниваются как множества.
func (s *BulkEditService) EditTags(ctx context.Context, session models.Session, productIDs []string, edit models.TagsEdit) (*models.BatchReport, error) {
	if err := edits.ValidateTags(edit); err != nil {
		return nil, err
	}

	return s.run(ctx, session, models.ActionTags, productIDs, edit, func(ctx context.Context, api platform.AdminAPI, id string) models.ProductOutcome {
		return s.editProduct(ctx, api, id, func(p *models.Product) (productChange, error) {
			tags := edits.ApplyTags(p.Tags, edit)
			return productChange{
				original:  p.Tags,
				updated:   tags,
				unchanged: edits.SameTags(p.Tags, tags),
				update:    models.ProductUpdate{ID: p.ID, Tags: tags, SetTags: true},
			}, nil
		})
	})
}

// EditSKUs применяет правку артикулов ко всем вариантам товаров
func (s *BulkEditService) EditSKUs(ctx context.Context, session models.Session, productIDs []string, edit models.SKUEdit) (*models.BatchReport, error) {
	if err := edits.ValidateSKU(edit); err != nil {
		return nil, err
	}

	return s.run(ctx, session, models.ActionSKU, productIDs, edit, func(ctx context.Context, api platform.AdminAPI, id string) models.ProductOutcome {
		return s.editVariants(ctx, api, id,
			func(v models.Variant) variantChange {
				sku := edits.ApplySKU(v.SKU, edit)
				return variantChange{
					original:  v.SKU,
					updated:   sku,
					unchanged: sku == v.SKU,
					update:    models.VariantUpdate{ID: v.ID, SKU: &sku},
				}
			},
			s.writeSKUs,
		)
	})
}

// EditWeights применяет правку веса ко всем вариантам товаров
func (s *BulkEditService) EditWeights(ctx context.Context, session models.Session, productIDs []string, edit models.WeightEdit) (*models.BatchReport, error) {
	if err := edits.ValidateWeight(edit); err != nil {
		return nil, err
	}

	return s.run(ctx, session, models.ActionWeight, productIDs, edit, func(ctx context.Context, api platform.AdminAPI, id string) models.ProductOutcome {
		return s.editVariants(ctx, api, id,
			func(v models.Variant) variantChange {
				weight, unit := edits.ApplyWeight(v.Weight, v.WeightUnit, edit)
				return variantChange{
					original:  formatWeight(v.Weight.String(), v.WeightUnit),
					updated:   formatWeight(weight.String(), unit),
					unchanged: edits.SameWeight(v.Weight, v.WeightUnit, weight, unit),
					update:    models.VariantUpdate{ID: v.ID, Weight: &weight, WeightUnit: &unit},
				}
			},
			s.writeVariants,
		)
	})
}

func formatWeight(value string, unit models.WeightUnit) string {
	if unit == "" {
		return value
	}
	return value + " " + string(unit)
}

type editFunc func(ctx context.Context, api platform.AdminAPI, productID string) models.ProductOutcome

// run общий цикл пакета: по горутине на товар, ошибки каждого товара остаются в его результате
func (s *BulkEditService) run(ctx context.Context, session models.Session, action models.Action, productIDs []string, edit any, fn editFunc) (*models.BatchReport, error) {
	ids := normalizeIDs(productIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: productIds", models.ErrMissingField)
	}

	startedAt := time.Now().UTC()
	api := s.clients.ForSession(session)
	results := make([]models.ProductOutcome, len(ids))

	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					s.logger.ErrorWithContext(ctx, "Паника при обработке товара",
						interfaces.LogField{Key: "product_id", Value: id},
						interfaces.LogField{Key: "panic", Value: fmt.Sprint(r)},
					)
					results[i] = failedOutcome(id, fmt.Errorf("internal error"))
				}
			}()
			results[i] = fn(ctx, api, id)
			return nil
		})
	}
	_ = g.Wait()

	report := models.NewBatchReport(action, results, startedAt)
	observeReport(report)

	s.logger.InfoWithContext(ctx, "Массовая правка завершена",
		interfaces.LogField{Key: "action", Value: action},
		interfaces.LogField{Key: "total", Value: report.Stats.Total},
		interfaces.LogField{Key: "updated", Value: report.Stats.Updated},
		interfaces.LogField{Key: "skipped", Value: report.Stats.Skipped},
		interfaces.LogField{Key: "failed", Value: report.Stats.Failed},
		interfaces.LogField{Key: "verdict", Value: report.Verdict()},
	)

	record := &models.BatchRecord{
		ID:         uuid.New().String(),
		Shop:       session.Shop,
		Action:     action,
		Edit:       edit,
		Verdict:    report.Verdict(),
		Stats:      report.Stats,
		Results:    report.Results,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
	}
	if err := s.recorder.Record(ctx, record); err != nil {
		s.logger.WarnWithContext(ctx, "Не удалось сохранить пакет в журнал",
			interfaces.LogField{Key: "batch_id", Value: record.ID},
			interfaces.LogField{Key: "error", Value: err.Error()},
		)
	}

	return report, nil
}

func normalizeIDs(ids []string) []string {
	trimmed := lo.FilterMap(ids, func(id string, _ int) (string, bool) {
		id = strings.TrimSpace(id)
		return id, id != ""
	})
	return lo.Uniq(trimmed)
}

func failedOutcome(productID string, err error) models.ProductOutcome {
	return models.ProductOutcome{
		ProductID: productID,
		Errors:    []models.FieldError{{Message: err.Error()}},
	}
}

type productChange struct {
	original  any
	updated   any
	unchanged bool
	update    models.ProductUpdate
}

// editProduct читает товар, вычисляет изменение и пишет его, если значение изменилось
func (s *BulkEditService) editProduct(ctx context.Context, api platform.AdminAPI, id string, change func(p *models.Product) (productChange, error)) models.ProductOutcome {
	product, err := api.GetProduct(ctx, id)
	if err != nil {
		return failedOutcome(id, err)
	}

	c, err := change(product)
	if err != nil {
		outcome := failedOutcome(id, err)
		outcome.Title = product.Title
		return outcome
	}

	outcome := models.ProductOutcome{
		ProductID: id,
		Title:     product.Title,
		Original:  c.original,
		New:       c.updated,
	}
	if c.unchanged {
		outcome.Skipped = true
		return outcome
	}

	fieldErrs, err := api.UpdateProduct(ctx, c.update)
	switch {
	case err != nil:
		outcome.Errors = []models.FieldError{{Message: err.Error()}}
	case len(fieldErrs) > 0:
		outcome.Errors = fieldErrs
	}

	return outcome
}

type variantChange struct {
	original  string
	updated   string
	unchanged bool
	update    models.VariantUpdate
}

// variantWriter пишет изменения вариантов одного товара и заполняет ошибки в outcomes.
// outcomes[i] соответствует updates[i].
type variantWriter func(ctx context.Context, api platform.AdminAPI, productID string, updates []models.VariantUpdate, outcomes []*models.VariantOutcome) []models.FieldError

// editVariants применяет изменение к каждому варианту товара и пишет измененные одним запросом
func (s *BulkEditService) editVariants(ctx context.Context, api platform.AdminAPI, id string, change func(v models.Variant) variantChange, write variantWriter) models.ProductOutcome {
	product, err := api.GetProduct(ctx, id)
	if err != nil {
		return failedOutcome(id, err)
	}

	outcome := models.ProductOutcome{
		ProductID: id,
		Title:     product.Title,
		Variants:  make([]models.VariantOutcome, len(product.Variants)),
	}

	var (
		updates []models.VariantUpdate
		pending []*models.VariantOutcome
	)
	for i, v := range product.Variants {
		c := change(v)
		outcome.Variants[i] = models.VariantOutcome{
			VariantID: v.ID,
			Original:  c.original,
			New:       c.updated,
			Skipped:   c.unchanged,
		}
		if !c.unchanged {
			updates = append(updates, c.update)
			pending = append(pending, &outcome.Variants[i])
		}
	}

	if len(updates) == 0 {
		outcome.Skipped = true
		return outcome
	}

	outcome.Errors = write(ctx, api, product.ID, updates, pending)
	return outcome
}

// writeVariants пишет варианты через productVariantsBulkUpdate
func (s *BulkEditService) writeVariants(ctx context.Context, api platform.AdminAPI, productID string, updates []models.VariantUpdate, outcomes []*models.VariantOutcome) []models.FieldError {
	fieldErrs, err := api.UpdateVariants(ctx, productID, updates)
	if err != nil {
		for _, o := range outcomes {
			o.Errors = []models.FieldError{{Message: err.Error()}}
		}
		return nil
	}

	var productErrs []models.FieldError
	for _, fe := range fieldErrs {
		if idx, ok := variantIndex(fe, len(outcomes)); ok {
			outcomes[idx].Errors = append(outcomes[idx].Errors, fe)
			continue
		}
		productErrs = append(productErrs, fe)
	}
	return productErrs
}

// writeSKUs пишет артикулы через GraphQL, а при ошибке вызова или ошибках
// по полю sku один раз повторяет запись этих вариантов через REST
func (s *BulkEditService) writeSKUs(ctx context.Context, api platform.AdminAPI, productID string, updates []models.VariantUpdate, outcomes []*models.VariantOutcome) []models.FieldError {
	fieldErrs, err := api.UpdateVariants(ctx, productID, updates)

	fallback := make(map[int]bool)
	var productErrs []models.FieldError

	if err != nil {
		s.logger.WarnWithContext(ctx, "Массовое обновление артикулов не удалось, используется REST",
			interfaces.LogField{Key: "product_id", Value: productID},
			interfaces.LogField{Key: "error", Value: err.Error()},
		)
		for i := range updates {
			fallback[i] = true
		}
	}

	for _, fe := range fieldErrs {
		idx, indexed := variantIndex(fe, len(outcomes))
		switch {
		case isSKUError(fe) && indexed:
			fallback[idx] = true
		case isSKUError(fe):
			for i := range updates {
				fallback[i] = true
			}
		case indexed:
			outcomes[idx].Errors = append(outcomes[idx].Errors, fe)
		default:
			productErrs = append(productErrs, fe)
		}
	}

	for i := range updates {
		if !fallback[i] {
			continue
		}
		if restErr := api.UpdateVariantSKU(ctx, updates[i].ID, *updates[i].SKU); restErr != nil {
			outcomes[i].Errors = append(outcomes[i].Errors, models.FieldError{
				Field:   []string{"sku"},
				Message: restErr.Error(),
			})
		}
	}

	return productErrs
}

// variantIndex извлекает индекс варианта из пути ошибки вида ["variants", "0", "sku"]
func variantIndex(fe models.FieldError, n int) (int, bool) {
	if len(fe.Field) < 2 || fe.Field[0] != "variants" {
		return 0, false
	}
	idx, err := strconv.Atoi(fe.Field[1])
	if err != nil || idx < 0 || idx >= n {
		return 0, false
	}
	return idx, true
}

func isSKUError(fe models.FieldError) bool {
	return lo.Contains(fe.Field, "sku")
}
