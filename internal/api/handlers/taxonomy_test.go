package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/adapters/logger"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/adapters/taxonomy"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/services"
)

func newTaxonomyHandler(t *testing.T) *TaxonomyHandler {
	t.Helper()

	loader := taxonomy.NewFileLoader(t.TempDir()+"/missing.txt", "", logger.NewNopLogger())
	return NewTaxonomyHandler(services.NewTaxonomyService(loader, logger.NewNopLogger()))
}

func TestTaxonomyHandler_Tree(t *testing.T) {
	t.Parallel()

	h := newTaxonomyHandler(t)
	rec := httptest.NewRecorder()
	h.Tree(rec, httptest.NewRequest(http.MethodGet, "/api/v1/taxonomy/tree", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	roots, ok := body["data"].([]any)
	require.True(t, ok)
	assert.NotEmpty(t, roots)
}

func TestTaxonomyHandler_Options(t *testing.T) {
	t.Parallel()

	h := newTaxonomyHandler(t)
	rec := httptest.NewRecorder()
	h.Options(rec, httptest.NewRequest(http.MethodGet, "/api/v1/taxonomy/options?q=bird&limit=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	options := body["data"].([]any)
	require.NotEmpty(t, options)
	assert.LessOrEqual(t, len(options), 5)
	for _, o := range options {
		label, _ := o.(map[string]any)["label"].(string)
		assert.Contains(t, strings.ToLower(label), "bird")
	}
}
