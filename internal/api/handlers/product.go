package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/api/middleware"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/services"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/interfaces"
)

// Значения actionType единой формы массовых правок
const (
	ActionFilterProducts    = "filterProducts"
	ActionUpdateTitles      = "updateTitles"
	ActionUpdateStatus      = "updateStatus"
	ActionUpdateProductType = "updateProductType"
	ActionUpdateTags        = "updateTags"
	ActionUpdateSkus        = "updateSkus"
	ActionUpdateWeights     = "updateWeights"
)

// ProductHandler обработчик запросов для товаров
type ProductHandler struct {
	filter services.FilterServiceInterface
	bulk   services.BulkEditServiceInterface
	logger interfaces.LoggerPort
}

// NewProductHandler создает новый обработчик товаров
func NewProductHandler(filter services.FilterServiceInterface, bulk services.BulkEditServiceInterface, logger interfaces.LoggerPort) *ProductHandler {
	return &ProductHandler{
		filter: filter,
		bulk:   bulk,
		logger: logger,
	}
}

type previewRequest struct {
	Field     string `form:"field" validate:"required"`
	Condition string `form:"condition" validate:"required"`
	Value     string `form:"value"`
}

type previewResponse struct {
	Success  bool             `json:"success"`
	Products []models.Product `json:"products"`
	Count    int              `json:"count"`
}

type titleRequest struct {
	ProductIDs []string `form:"productIds" validate:"required"`
	Op         string   `form:"op" validate:"required"`
	Text       string   `form:"text"`
	Find       string   `form:"find"`
	Replace    string   `form:"replace"`
	Value      string   `form:"value"`
	CaseType   string   `form:"caseType" validate:"omitempty,oneof=title uppercase lowercase first_letter"`
	Length     int      `form:"length"`
}

type statusRequest struct {
	ProductIDs []string `form:"productIds" validate:"required"`
	Status     string   `form:"status" validate:"required"`
}

type productTypeRequest struct {
	ProductIDs []string `form:"productIds" validate:"required"`
	Op         string   `form:"op" validate:"required"`
	Value      string   `form:"value"`
	Find       string   `form:"find"`
	Replace    string   `form:"replace"`
}

type tagsRequest struct {
	ProductIDs   []string `form:"productIds" validate:"required"`
	Op           string   `form:"op" validate:"required"`
	Tags         []string `form:"tags"`
	TagsToRemove []string `form:"tagsToRemove"`
	Find         string   `form:"find"`
	Replace      string   `form:"replace"`
}

type skuRequest struct {
	ProductIDs []string `form:"productIds" validate:"required"`
	Op         string   `form:"op" validate:"required"`
	Value      string   `form:"value"`
	Find       string   `form:"find"`
	Replace    string   `form:"replace"`
	Prefix     string   `form:"prefix"`
	Suffix     string   `form:"suffix"`
}

type weightRequest struct {
	ProductIDs []string `form:"productIds" validate:"required"`
	Op         string   `form:"op" validate:"required"`
	Weight     string   `form:"weight"`
	Unit       string   `form:"unit"`
}

// session достает сессию магазина, положенную middleware.Auth
func (h *ProductHandler) session(w http.ResponseWriter, r *http.Request) (models.Session, bool) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		renderError(w, r, h.logger, fmt.Errorf("%w: no shop session", models.ErrUnauthorized))
		return models.Session{}, false
	}
	return *session, true
}

// Preview обрабатывает запрос на предпросмотр товаров по правилу фильтра
// @Summary Предпросмотр товаров
// @Tags products
// @Accept x-www-form-urlencoded
// @Produce json
// @Param field formData string true "Поле" Enums(title, description, productId, collection, price)
// @Param condition formData string true "Условие"
// @Param value formData string false "Значение"
// @Success 200 {object} previewResponse
// @Failure 400 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /api/v1/products/preview [post]
func (h *ProductHandler) Preview(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := parseForm(r); err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	req := previewRequest{
		Field:     strings.TrimSpace(r.FormValue("field")),
		Condition: strings.TrimSpace(r.FormValue("condition")),
		Value:     r.FormValue("value"),
	}
	if err := validateStruct(req); err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	products, err := h.filter.Preview(r.Context(), session, models.FilterRule{
		Field:     models.FilterField(req.Field),
		Condition: models.FilterCondition(req.Condition),
		Value:     req.Value,
	})
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	if products == nil {
		products = []models.Product{}
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, previewResponse{
		Success:  true,
		Products: products,
		Count:    len(products),
	})
}

// Bulk единая форма: действие выбирается полем actionType
// @Summary Массовая правка по actionType
// @Tags products
// @Accept x-www-form-urlencoded
// @Produce json
// @Param actionType formData string true "Действие" Enums(filterProducts, updateTitles, updateStatus, updateProductType, updateTags, updateSkus, updateWeights)
// @Success 200 {object} okResponse
// @Failure 400 {object} errorResponse
// @Failure 422 {object} failedResponse
// @Router /api/v1/products/bulk [post]
func (h *ProductHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	switch action := r.FormValue("actionType"); action {
	case ActionFilterProducts:
		h.Preview(w, r)
	case ActionUpdateTitles:
		h.BulkTitle(w, r)
	case ActionUpdateStatus:
		h.BulkStatus(w, r)
	case ActionUpdateProductType:
		h.BulkProductType(w, r)
	case ActionUpdateTags:
		h.BulkTags(w, r)
	case ActionUpdateSkus:
		h.BulkSKU(w, r)
	case ActionUpdateWeights:
		h.BulkWeight(w, r)
	case "":
		renderError(w, r, h.logger, fmt.Errorf("%w: actionType", models.ErrMissingField))
	default:
		renderError(w, r, h.logger, fmt.Errorf("%w: unknown actionType %q", models.ErrValidation, action))
	}
}

type bulkFunc func(ctx context.Context, session models.Session) (*models.BatchReport, error)

// runBulk общий хвост всех массовых правок
func (h *ProductHandler) runBulk(w http.ResponseWriter, r *http.Request, session models.Session, run bulkFunc) {
	report, err := run(r.Context(), session)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	renderReport(w, r, report)
}

// prepare разбирает форму и заполняет запрос. fill возвращает ошибку разбора отдельных полей.
func (h *ProductHandler) prepare(w http.ResponseWriter, r *http.Request, req any, fill func() error) (models.Session, bool) {
	session, ok := h.session(w, r)
	if !ok {
		return models.Session{}, false
	}
	if err := parseForm(r); err != nil {
		renderError(w, r, h.logger, err)
		return models.Session{}, false
	}
	if err := fill(); err != nil {
		renderError(w, r, h.logger, err)
		return models.Session{}, false
	}
	if err := validateStruct(req); err != nil {
		renderError(w, r, h.logger, err)
		return models.Session{}, false
	}
	return session, true
}

// BulkTitle обрабатывает массовую правку названий
// @Summary Массовая правка названий
// @Tags products
// @Accept x-www-form-urlencoded
// @Produce json
// @Param productIds formData string true "JSON-массив идентификаторов"
// @Param op formData string true "Операция" Enums(add_text_start, add_text_end, remove_text, find_replace, replace, capitalize, truncate)
// @Param caseType formData string false "Регистр" Enums(title, uppercase, lowercase, first_letter)
// @Param length formData int false "Длина для truncate"
// @Success 200 {object} partialResponse
// @Failure 400 {object} errorResponse
// @Failure 422 {object} failedResponse
// @Router /api/v1/products/bulk/title [post]
func (h *ProductHandler) BulkTitle(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	session, ok := h.prepare(w, r, &req, func() (err error) {
		if req.ProductIDs, err = formList(r, "productIds"); err != nil {
			return err
		}
		if req.Length, err = formInt(r, "length"); err != nil {
			return err
		}
		req.Op = r.FormValue("op")
		req.Text = r.FormValue("text")
		req.Find = r.FormValue("find")
		req.Replace = r.FormValue("replace")
		req.Value = r.FormValue("value")
		req.CaseType = firstValue(r, "caseType", "type")
		return nil
	})
	if !ok {
		return
	}

	edit := models.TitleEdit{
		Op:       models.NormalizeOp(req.Op),
		Text:     req.Text,
		Find:     req.Find,
		Replace:  req.Replace,
		Value:    req.Value,
		CaseType: models.CaseType(req.CaseType),
		Length:   req.Length,
	}
	h.runBulk(w, r, session, func(ctx context.Context, session models.Session) (*models.BatchReport, error) {
		return h.bulk.EditTitles(ctx, session, req.ProductIDs, edit)
	})
}

// BulkStatus обрабатывает массовую смену статуса
// @Summary Массовая смена статуса
// @Tags products
// @Accept x-www-form-urlencoded
// @Produce json
// @Param productIds formData string true "JSON-массив идентификаторов"
// @Param status formData string true "Статус" Enums(ACTIVE, DRAFT, ARCHIVED)
// @Success 200 {object} okResponse
// @Failure 400 {object} errorResponse
// @Router /api/v1/products/bulk/status [post]
func (h *ProductHandler) BulkStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	session, ok := h.prepare(w, r, &req, func() (err error) {
		req.ProductIDs, err = formList(r, "productIds")
		req.Status = strings.TrimSpace(r.FormValue("status"))
		return err
	})
	if !ok {
		return
	}

	edit := models.StatusEdit{Status: models.ProductStatus(req.Status)}
	h.runBulk(w, r, session, func(ctx context.Context, session models.Session) (*models.BatchReport, error) {
		return h.bulk.EditStatus(ctx, session, req.ProductIDs, edit)
	})
}

// BulkProductType обрабатывает массовую правку типа товара
// @Summary Массовая правка типа товара
// @Tags products
// @Accept x-www-form-urlencoded
// @Produce json
// @Param productIds formData string true "JSON-массив идентификаторов"
// @Param op formData string true "Операция" Enums(replace, find_replace, clear)
// @Success 200 {object} okResponse
// @Failure 400 {object} errorResponse
// @Router /api/v1/products/bulk/product-type [post]
func (h *ProductHandler) BulkProductType(w http.ResponseWriter, r *http.Request) {
	var req productTypeRequest
	session, ok := h.prepare(w, r, &req, func() (err error) {
		req.ProductIDs, err = formList(r, "productIds")
		req.Op = r.FormValue("op")
		req.Value = r.FormValue("value")
		req.Find = r.FormValue("find")
		req.Replace = r.FormValue("replace")
		return err
	})
	if !ok {
		return
	}

	edit := models.ProductTypeEdit{
		Op:      models.NormalizeOp(req.Op),
		Value:   req.Value,
		Find:    req.Find,
		Replace: req.Replace,
	}
	h.runBulk(w, r, session, func(ctx context.Context, session models.Session) (*models.BatchReport, error) {
		return h.bulk.EditProductType(ctx, session, req.ProductIDs, edit)
	})
}

// BulkTags обрабатывает массовую правку тегов
// @Summary Массовая правка тегов
// @Tags products
// @Accept x-www-form-urlencoded
// @Produce json
// @Param productIds formData string true "JSON-массив идентификаторов"
// @Param op formData string true "Операция" Enums(add_tags, remove_tags, replace_tags, find_replace)
// @Param tags formData string false "JSON-массив тегов"
// @Param tagsToRemove formData string false "JSON-массив тегов для удаления"
// @Success 200 {object} okResponse
// @Failure 400 {object} errorResponse
// @Router /api/v1/products/bulk/tags [post]
func (h *ProductHandler) BulkTags(w http.ResponseWriter, r *http.Request) {
	var req tagsRequest
	session, ok := h.prepare(w, r, &req, func() (err error) {
		if req.ProductIDs, err = formList(r, "productIds"); err != nil {
			return err
		}
		if req.Tags, err = formList(r, "tags"); err != nil {
			return err
		}
		if req.TagsToRemove, err = formList(r, "tagsToRemove"); err != nil {
			return err
		}
		req.Op = r.FormValue("op")
		req.Find = r.FormValue("find")
		req.Replace = r.FormValue("replace")
		return nil
	})
	if !ok {
		return
	}

	edit := models.TagsEdit{
		Op:           models.NormalizeOp(req.Op),
		Tags:         req.Tags,
		TagsToRemove: req.TagsToRemove,
		Find:         req.Find,
		Replace:      req.Replace,
	}
	h.runBulk(w, r, session, func(ctx context.Context, session models.Session) (*models.BatchReport, error) {
		return h.bulk.EditTags(ctx, session, req.ProductIDs, edit)
	})
}

// BulkSKU обрабатывает массовую правку артикулов
// @Summary Массовая правка артикулов
// @Tags products
// @Accept x-www-form-urlencoded
// @Produce json
// @Param productIds formData string true "JSON-массив идентификаторов"
// @Param op formData string true "Операция" Enums(replace, find_replace, add_prefix, add_suffix)
// @Success 200 {object} okResponse
// @Failure 400 {object} errorResponse
// @Router /api/v1/products/bulk/sku [post]
func (h *ProductHandler) BulkSKU(w http.ResponseWriter, r *http.Request) {
	var req skuRequest
	session, ok := h.prepare(w, r, &req, func() (err error) {
		req.ProductIDs, err = formList(r, "productIds")
		req.Op = r.FormValue("op")
		req.Value = r.FormValue("value")
		req.Find = r.FormValue("find")
		req.Replace = r.FormValue("replace")
		req.Prefix = r.FormValue("prefix")
		req.Suffix = r.FormValue("suffix")
		return err
	})
	if !ok {
		return
	}

	edit := models.SKUEdit{
		Op:      models.NormalizeOp(req.Op),
		Value:   req.Value,
		Find:    req.Find,
		Replace: req.Replace,
		Prefix:  req.Prefix,
		Suffix:  req.Suffix,
	}
	h.runBulk(w, r, session, func(ctx context.Context, session models.Session) (*models.BatchReport, error) {
		return h.bulk.EditSKUs(ctx, session, req.ProductIDs, edit)
	})
}

// BulkWeight обрабатывает массовую правку веса
// @Summary Массовая правка веса
// @Tags products
// @Accept x-www-form-urlencoded
// @Produce json
// @Param productIds formData string true "JSON-массив идентификаторов"
// @Param op formData string true "Операция" Enums(set, set_unit, convert_unit)
// @Param weight formData number false "Вес"
// @Param unit formData string false "Единица" Enums(g, kg, lb, oz)
// @Success 200 {object} okResponse
// @Failure 400 {object} errorResponse
// @Router /api/v1/products/bulk/weight [post]
func (h *ProductHandler) BulkWeight(w http.ResponseWriter, r *http.Request) {
	var req weightRequest
	session, ok := h.prepare(w, r, &req, func() (err error) {
		req.ProductIDs, err = formList(r, "productIds")
		req.Op = r.FormValue("op")
		req.Weight = r.FormValue("weight")
		req.Unit = strings.TrimSpace(r.FormValue("unit"))
		return err
	})
	if !ok {
		return
	}

	weight, err := formDecimal(r, "weight")
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}
	op := models.NormalizeOp(req.Op)
	if op == models.OpSetWeight && weight == nil {
		renderError(w, r, h.logger, fmt.Errorf("%w: weight", models.ErrMissingField))
		return
	}

	unit, known := models.ParseWeightUnit(req.Unit)
	if !known {
		unit = models.WeightUnit(req.Unit)
	}

	edit := models.WeightEdit{
		Op:     op,
		Weight: weight,
		Unit:   unit,
	}
	h.runBulk(w, r, session, func(ctx context.Context, session models.Session) (*models.BatchReport, error) {
		return h.bulk.EditWeights(ctx, session, req.ProductIDs, edit)
	})
}
