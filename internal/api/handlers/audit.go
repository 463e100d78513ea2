package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/api/middleware"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/services"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/interfaces"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/utils"
)

// AuditHandler чтение журнала массовых правок магазина
type AuditHandler struct {
	journal services.JournalServiceInterface
	logger  interfaces.LoggerPort
}

func NewAuditHandler(journal services.JournalServiceInterface, logger interfaces.LoggerPort) *AuditHandler {
	return &AuditHandler{
		journal: journal,
		logger:  logger,
	}
}

// List возвращает пакеты правок текущего магазина
// @Summary Журнал массовых правок
// @Tags audit
// @Produce json
// @Param page query int false "Страница"
// @Param page_size query int false "Размер страницы"
// @Success 200 {object} response
// @Failure 401 {object} errorResponse
// @Router /api/v1/audit/batches [get]
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		renderError(w, r, h.logger, models.ErrUnauthorized)
		return
	}

	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", utils.DefaultPageSize)

	result, err := h.journal.ListBatches(r.Context(), session.Shop, page, pageSize)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response{
		Success: true,
		Data:    result.Items,
		Meta: map[string]interface{}{
			"pagination": result.Pagination,
		},
	})
}

// Get возвращает пакет вместе с результатами по товарам
// @Summary Пакет массовой правки
// @Tags audit
// @Produce json
// @Param id path string true "ID пакета"
// @Success 200 {object} response
// @Failure 404 {object} errorResponse
// @Router /api/v1/audit/batches/{id} [get]
func (h *AuditHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		renderError(w, r, h.logger, models.ErrUnauthorized)
		return
	}

	batchID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(batchID); err != nil {
		renderError(w, r, h.logger, models.ErrNotFound)
		return
	}

	record, err := h.journal.GetBatch(r.Context(), session.Shop, batchID)
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response{
		Success: true,
		Data:    record,
	})
}
