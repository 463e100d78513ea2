package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/services"
)

// TaxonomyHandler отдает справочник категорий
type TaxonomyHandler struct {
	taxonomy services.TaxonomyServiceInterface
}

func NewTaxonomyHandler(taxonomy services.TaxonomyServiceInterface) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomy: taxonomy}
}

// Tree возвращает дерево категорий
// @Summary Дерево категорий
// @Tags taxonomy
// @Produce json
// @Success 200 {object} response
// @Router /api/v1/taxonomy/tree [get]
func (h *TaxonomyHandler) Tree(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, response{
		Success: true,
		Data:    h.taxonomy.Tree(),
	})
}

// Options возвращает плоский список категорий для автокомплита
// @Summary Поиск категорий
// @Tags taxonomy
// @Produce json
// @Param q query string false "Подстрока пути"
// @Param limit query int false "Максимум результатов"
// @Success 200 {object} response
// @Router /api/v1/taxonomy/options [get]
func (h *TaxonomyHandler) Options(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	options := h.taxonomy.Search(query, queryInt(r, "limit", 0))

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response{
		Success: true,
		Data:    options,
		Meta:    map[string]interface{}{"count": len(options)},
	})
}
