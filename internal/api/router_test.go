package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/adapters/cache"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/adapters/logger"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/adapters/taxonomy"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/services"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/services/mocks"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/security"
)

func newTestRouter(t *testing.T, auth security.AuthServiceInterface, journal services.JournalServiceInterface) http.Handler {
	t.Helper()

	log := logger.NewNopLogger()
	loader := taxonomy.NewFileLoader("", "", log)

	return SetupRouter(RouterConfig{
		Filter:             &mocks.MockFilterService{},
		Bulk:               &mocks.MockBulkEditService{},
		Taxonomy:           services.NewTaxonomyService(loader, log),
		Journal:            journal,
		Auth:               auth,
		Logger:             log,
		Version:            "test",
		CORSAllowedOrigins: []string{"https://admin.example.com"},
		RequestTimeout:     5 * time.Second,
	})
}

func TestRouter_PublicRoutes(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, security.NewPlaceholderAuthService(models.Session{Shop: "demo.myshopify.com"}), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRouter_Auth(t *testing.T) {
	t.Parallel()

	jwt, err := security.NewJWTManager("api-key", "api-secret", 0)
	require.NoError(t, err)

	store := cache.NewSessionStore(cache.NewMemoryCache(time.Minute), time.Hour)
	require.NoError(t, store.Save(t.Context(), &models.Session{Shop: "demo.myshopify.com", AccessToken: "shpat_x"}))

	auth := security.NewAuthService(jwt, store, logger.NewNopLogger())
	router := newTestRouter(t, auth, nil)

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/taxonomy/tree", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token for installed shop", func(t *testing.T) {
		token, err := jwt.Generate("demo.myshopify.com", time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/taxonomy/tree", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("valid token for unknown shop", func(t *testing.T) {
		token, err := jwt.Generate("other.myshopify.com", time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/taxonomy/tree", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRouter_AuditRoutesFollowJournal(t *testing.T) {
	t.Parallel()

	auth := security.NewPlaceholderAuthService(models.Session{Shop: "demo.myshopify.com", AccessToken: "shpat_x"})

	rec := httptest.NewRecorder()
	newTestRouter(t, auth, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/audit/batches", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
