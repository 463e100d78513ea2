package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/adapters/logger"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/api/middleware"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/services/mocks"
)

type productDeps struct {
	filter *mocks.MockFilterService
	bulk   *mocks.MockBulkEditService
}

func newProductHandler(t *testing.T) (*ProductHandler, productDeps) {
	t.Helper()

	d := productDeps{
		filter: &mocks.MockFilterService{},
		bulk:   &mocks.MockBulkEditService{},
	}
	t.Cleanup(func() {
		d.filter.AssertExpectations(t)
		d.bulk.AssertExpectations(t)
	})

	return NewProductHandler(d.filter, d.bulk, logger.NewNopLogger()), d
}

var testSession = models.Session{Shop: "demo.myshopify.com", AccessToken: "shpat_test"}

func formRequest(path string, form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	session := testSession
	return r.WithContext(middleware.WithSession(r.Context(), &session))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func okReport(action models.Action, ids ...string) *models.BatchReport {
	results := make([]models.ProductOutcome, 0, len(ids))
	for _, id := range ids {
		results = append(results, models.ProductOutcome{ProductID: id, Original: "a", New: "b"})
	}
	return models.NewBatchReport(action, results, gofakeit.Date())
}

func TestProductHandler_Preview(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name       string
		form       url.Values
		noSession  bool
		setup      func(d productDeps)
		wantStatus int
		assert     func(t *testing.T, body map[string]any)
	}

	tests := []testCase{
		{
			name: "matching products are returned with count",
			form: url.Values{"field": {"title"}, "condition": {"contains"}, "value": {"shirt"}},
			setup: func(d productDeps) {
				rule := models.FilterRule{Field: models.FieldTitle, Condition: models.CondContains, Value: "shirt"}
				d.filter.On("Preview", mock.Anything, testSession, rule).Return([]models.Product{
					{ID: "gid://shopify/Product/1", Title: "Blue Shirt"},
					{ID: "gid://shopify/Product/2", Title: "Red Shirt"},
				}, nil).Once()
			},
			wantStatus: http.StatusOK,
			assert: func(t *testing.T, body map[string]any) {
				assert.Equal(t, true, body["success"])
				assert.EqualValues(t, 2, body["count"])
				assert.Len(t, body["products"], 2)
			},
		},
		{
			name: "empty result is an empty array",
			form: url.Values{"field": {"title"}, "condition": {"is"}, "value": {"nothing"}},
			setup: func(d productDeps) {
				d.filter.On("Preview", mock.Anything, testSession, mock.Anything).Return(nil, nil).Once()
			},
			wantStatus: http.StatusOK,
			assert: func(t *testing.T, body map[string]any) {
				assert.Equal(t, []any{}, body["products"])
				assert.EqualValues(t, 0, body["count"])
			},
		},
		{
			name:       "missing condition names the field",
			form:       url.Values{"field": {"title"}},
			wantStatus: http.StatusBadRequest,
			assert: func(t *testing.T, body map[string]any) {
				assert.Equal(t, false, body["success"])
				assert.Contains(t, body["details"], "condition")
			},
		},
		{
			name: "invalid rule from service is a bad request",
			form: url.Values{"field": {"description"}, "condition": {"is"}, "value": {"x"}},
			setup: func(d productDeps) {
				d.filter.On("Preview", mock.Anything, testSession, mock.Anything).
					Return(nil, models.ErrValidation).Once()
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "upstream failure is a bad gateway",
			form: url.Values{"field": {"title"}, "condition": {"contains"}, "value": {"x"}},
			setup: func(d productDeps) {
				d.filter.On("Preview", mock.Anything, testSession, mock.Anything).
					Return(nil, errors.Join(models.ErrUpstream, errors.New("Throttled"))).Once()
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "request without session is unauthorized",
			form:       url.Values{"field": {"title"}, "condition": {"contains"}},
			noSession:  true,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, d := newProductHandler(t)
			if tt.setup != nil {
				tt.setup(d)
			}

			r := formRequest("/api/v1/products/preview", tt.form)
			if tt.noSession {
				r = httptest.NewRequest(http.MethodPost, "/api/v1/products/preview", strings.NewReader(tt.form.Encode()))
				r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			}
			rec := httptest.NewRecorder()

			h.Preview(rec, r)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.assert != nil {
				tt.assert(t, decodeBody(t, rec))
			}
		})
	}
}

func TestProductHandler_Bulk(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name       string
		form       url.Values
		setup      func(d productDeps)
		wantStatus int
		assert     func(t *testing.T, body map[string]any)
	}

	tests := []testCase{
		{
			name: "updateTitles decodes JSON ids and legacy op names",
			form: url.Values{
				"actionType": {ActionUpdateTitles},
				"productIds": {`["1","2"]`},
				"op":         {"addTextStart"},
				"text":       {"New "},
			},
			setup: func(d productDeps) {
				edit := models.TitleEdit{Op: models.OpAddTextStart, Text: "New "}
				d.bulk.On("EditTitles", mock.Anything, testSession, []string{"1", "2"}, edit).
					Return(okReport(models.ActionTitle, "1", "2"), nil).Once()
			},
			wantStatus: http.StatusOK,
			assert: func(t *testing.T, body map[string]any) {
				assert.Equal(t, true, body["success"])
				assert.Nil(t, body["partial"])
				assert.Contains(t, body["message"], "Обновлено: 2")
				assert.Len(t, body["results"], 2)
			},
		},
		{
			name: "capitalize reads case from legacy type field",
			form: url.Values{
				"actionType": {ActionUpdateTitles},
				"productIds": {"1"},
				"op":         {"capitalize"},
				"type":       {"uppercase"},
			},
			setup: func(d productDeps) {
				edit := models.TitleEdit{Op: models.OpCapitalize, CaseType: models.CaseUpper}
				d.bulk.On("EditTitles", mock.Anything, testSession, []string{"1"}, edit).
					Return(okReport(models.ActionTitle, "1"), nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "unknown case type is rejected before the service",
			form: url.Values{
				"actionType": {ActionUpdateTitles},
				"productIds": {"1"},
				"op":         {"capitalize"},
				"caseType":   {"sarcastic"},
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "updateTags splits comma separated tags",
			form: url.Values{
				"actionType": {ActionUpdateTags},
				"productIds": {"1"},
				"op":         {"add_tags"},
				"tags":       {"summer, sale"},
			},
			setup: func(d productDeps) {
				edit := models.TagsEdit{Op: models.OpAddTags, Tags: []string{"summer", "sale"}}
				d.bulk.On("EditTags", mock.Anything, testSession, []string{"1"}, edit).
					Return(okReport(models.ActionTags, "1"), nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "replace_tags with an empty JSON array clears tags",
			form: url.Values{
				"actionType": {ActionUpdateTags},
				"productIds": {"1"},
				"op":         {"replace_tags"},
				"tags":       {"[]"},
			},
			setup: func(d productDeps) {
				edit := models.TagsEdit{Op: models.OpReplaceTags, Tags: []string{}}
				d.bulk.On("EditTags", mock.Anything, testSession, []string{"1"}, edit).
					Return(okReport(models.ActionTags, "1"), nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "replace_tags without tags field",
			form: url.Values{
				"actionType": {ActionUpdateTags},
				"productIds": {"1"},
				"op":         {"replace_tags"},
			},
			setup: func(d productDeps) {
				d.bulk.On("EditTags", mock.Anything, testSession, []string{"1"}, mock.MatchedBy(func(e models.TagsEdit) bool {
					return e.Op == models.OpReplaceTags && e.Tags == nil
				})).Return(nil, fmt.Errorf("%w: tags", models.ErrMissingField)).Once()
			},
			wantStatus: http.StatusBadRequest,
			assert: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body["details"], "tags")
			},
		},
		{
			name: "updateWeights accepts platform unit names",
			form: url.Values{
				"actionType": {ActionUpdateWeights},
				"productIds": {"1"},
				"op":         {"set"},
				"weight":     {"1.5"},
				"unit":       {"KILOGRAMS"},
			},
			setup: func(d productDeps) {
				d.bulk.On("EditWeights", mock.Anything, testSession, []string{"1"}, mock.MatchedBy(func(e models.WeightEdit) bool {
					return e.Op == models.OpSetWeight && e.Unit == models.UnitKilograms &&
						e.Weight != nil && e.Weight.Equal(decimal.RequireFromString("1.5"))
				})).Return(okReport(models.ActionWeight, "1"), nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "set without weight names the missing field",
			form: url.Values{
				"actionType": {ActionUpdateWeights},
				"productIds": {"1"},
				"op":         {"set"},
				"unit":       {"kg"},
			},
			wantStatus: http.StatusBadRequest,
			assert: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body["details"], "weight")
			},
		},
		{
			name: "blank weight is treated as missing",
			form: url.Values{
				"actionType": {ActionUpdateWeights},
				"productIds": {"1"},
				"op":         {"set"},
				"weight":     {"  "},
				"unit":       {"g"},
			},
			wantStatus: http.StatusBadRequest,
			assert: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body["details"], "weight")
			},
		},
		{
			name: "convert_unit does not need weight",
			form: url.Values{
				"actionType": {ActionUpdateWeights},
				"productIds": {"1"},
				"op":         {"convert_unit"},
				"unit":       {"lb"},
			},
			setup: func(d productDeps) {
				d.bulk.On("EditWeights", mock.Anything, testSession, []string{"1"}, mock.MatchedBy(func(e models.WeightEdit) bool {
					return e.Op == models.OpConvertUnit && e.Unit == models.UnitPounds && e.Weight == nil
				})).Return(okReport(models.ActionWeight, "1"), nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "non numeric weight is a bad request",
			form: url.Values{
				"actionType": {ActionUpdateWeights},
				"productIds": {"1"},
				"op":         {"set"},
				"weight":     {"heavy"},
				"unit":       {"kg"},
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "partial failure keeps success and lists errors",
			form: url.Values{
				"actionType": {ActionUpdateStatus},
				"productIds": {"1,2"},
				"status":     {"DRAFT"},
			},
			setup: func(d productDeps) {
				report := models.NewBatchReport(models.ActionStatus, []models.ProductOutcome{
					{ProductID: "1", Original: models.StatusActive, New: models.StatusDraft},
					{ProductID: "2", Errors: []models.FieldError{{Message: "Product not found"}}},
				}, gofakeit.Date())
				d.bulk.On("EditStatus", mock.Anything, testSession, []string{"1", "2"}, models.StatusEdit{Status: models.StatusDraft}).
					Return(report, nil).Once()
			},
			wantStatus: http.StatusOK,
			assert: func(t *testing.T, body map[string]any) {
				assert.Equal(t, true, body["success"])
				assert.Equal(t, true, body["partial"])
				assert.Len(t, body["errors"], 1)
				stats := body["stats"].(map[string]any)
				assert.EqualValues(t, 1, stats["failed"])
			},
		},
		{
			name: "batch where every product failed is unprocessable",
			form: url.Values{
				"actionType": {ActionUpdateSkus},
				"productIds": {"1"},
				"op":         {"replace"},
				"value":      {"X"},
			},
			setup: func(d productDeps) {
				report := models.NewBatchReport(models.ActionSKU, []models.ProductOutcome{
					{ProductID: "1", Errors: []models.FieldError{{Message: "boom"}}},
				}, gofakeit.Date())
				d.bulk.On("EditSKUs", mock.Anything, testSession, []string{"1"}, models.SKUEdit{Op: models.OpReplace, Value: "X"}).
					Return(report, nil).Once()
			},
			wantStatus: http.StatusUnprocessableEntity,
			assert: func(t *testing.T, body map[string]any) {
				assert.Equal(t, false, body["success"])
				assert.Equal(t, "boom", body["details"])
			},
		},
		{
			name: "missing productIds names the field",
			form: url.Values{
				"actionType": {ActionUpdateProductType},
				"op":         {"replace"},
				"value":      {"Shoes"},
			},
			wantStatus: http.StatusBadRequest,
			assert: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body["details"], "productIds")
			},
		},
		{
			name: "validation error from service is a bad request",
			form: url.Values{
				"actionType": {ActionUpdateTitles},
				"productIds": {"1"},
				"op":         {"truncate"},
				"length":     {"0"},
			},
			setup: func(d productDeps) {
				d.bulk.On("EditTitles", mock.Anything, testSession, []string{"1"}, mock.Anything).
					Return(nil, errors.Join(models.ErrValidation, errors.New("length must be positive"))).Once()
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed ids array is a bad request",
			form:       url.Values{"actionType": {ActionUpdateTitles}, "productIds": {`["1",`}, "op": {"replace"}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown action type",
			form:       url.Values{"actionType": {"deleteEverything"}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing action type",
			form:       url.Values{},
			wantStatus: http.StatusBadRequest,
			assert: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body["details"], "actionType")
			},
		},
		{
			name: "filterProducts runs preview",
			form: url.Values{"actionType": {ActionFilterProducts}, "field": {"price"}, "condition": {"greaterThan"}, "value": {"10"}},
			setup: func(d productDeps) {
				d.filter.On("Preview", mock.Anything, testSession, mock.Anything).Return([]models.Product{{ID: "1"}}, nil).Once()
			},
			wantStatus: http.StatusOK,
			assert: func(t *testing.T, body map[string]any) {
				assert.EqualValues(t, 1, body["count"])
			},
		},
		{
			name: "unexpected service error hides details",
			form: url.Values{"actionType": {ActionUpdateStatus}, "productIds": {"1"}, "status": {"ACTIVE"}},
			setup: func(d productDeps) {
				d.bulk.On("EditStatus", mock.Anything, testSession, []string{"1"}, mock.Anything).
					Return(nil, errors.New("connection reset")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			assert: func(t *testing.T, body map[string]any) {
				assert.NotContains(t, body["error"], "connection reset")
				assert.Nil(t, body["details"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, d := newProductHandler(t)
			if tt.setup != nil {
				tt.setup(d)
			}

			rec := httptest.NewRecorder()
			h.Bulk(rec, formRequest("/api/v1/products/bulk", tt.form))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.assert != nil {
				tt.assert(t, decodeBody(t, rec))
			}
		})
	}
}

func TestProductHandler_BulkSKU_Multipart(t *testing.T) {
	t.Parallel()

	h, d := newProductHandler(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("productIds", `["gid://shopify/Product/1"]`))
	require.NoError(t, mw.WriteField("op", "addPrefix"))
	require.NoError(t, mw.WriteField("prefix", "NEW-"))
	require.NoError(t, mw.Close())

	edit := models.SKUEdit{Op: models.OpAddPrefix, Prefix: "NEW-"}
	d.bulk.On("EditSKUs", mock.Anything, testSession, []string{"gid://shopify/Product/1"}, edit).
		Return(okReport(models.ActionSKU, "gid://shopify/Product/1"), nil).Once()

	r := httptest.NewRequest(http.MethodPost, "/api/v1/products/bulk/sku", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	session := testSession
	r = r.WithContext(middleware.WithSession(r.Context(), &session))
	rec := httptest.NewRecorder()

	h.BulkSKU(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])
}
