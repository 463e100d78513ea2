package services

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/adapters/logger"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/services/mocks"
)

type bulkDeps struct {
	api      *mocks.MockAdminAPI
	recorder *mocks.MockBatchRecorder
}

func newBulkEditService(t *testing.T) (*BulkEditService, bulkDeps) {
	t.Helper()

	d := bulkDeps{
		api:      &mocks.MockAdminAPI{},
		recorder: &mocks.MockBatchRecorder{},
	}
	t.Cleanup(func() {
		d.api.AssertExpectations(t)
		d.recorder.AssertExpectations(t)
	})

	svc := NewBulkEditService(&mocks.ClientFactory{API: d.api}, d.recorder, logger.NewNopLogger())
	return svc, d
}

func testSession() models.Session {
	return models.Session{Shop: "demo.myshopify.com", AccessToken: gofakeit.UUID()}
}

func productUpdateWithTitle(id, title string) any {
	return mock.MatchedBy(func(u models.ProductUpdate) bool {
		return u.ID == id && u.Title != nil && *u.Title == title
	})
}

func TestBulkEditService_EditTitles(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name    string
		ids     []string
		edit    models.TitleEdit
		setup   func(d bulkDeps)
		wantErr error
		assert  func(t *testing.T, report *models.BatchReport, d bulkDeps)
	}

	uppercase := models.TitleEdit{Op: models.OpCapitalize, CaseType: models.CaseUpper}

	tests := []testCase{
		{
			name: "uppercase writes changed title",
			ids:  []string{"1"},
			edit: uppercase,
			setup: func(d bulkDeps) {
				d.api.On("GetProduct", mock.Anything, "1").
					Return(&models.Product{ID: "1", Title: "wireless mouse"}, nil).Once()
				d.api.On("UpdateProduct", mock.Anything, productUpdateWithTitle("1", "WIRELESS MOUSE")).
					Return(nil, nil).Once()
				d.recorder.On("Record", mock.Anything, mock.Anything).Return(nil).Once()
			},
			assert: func(t *testing.T, report *models.BatchReport, d bulkDeps) {
				require.Len(t, report.Results, 1)
				res := report.Results[0]
				assert.Equal(t, "wireless mouse", res.Original)
				assert.Equal(t, "WIRELESS MOUSE", res.New)
				assert.False(t, res.Skipped)
				assert.Equal(t, models.Stats{Total: 1, Updated: 1}, report.Stats)
				assert.Equal(t, models.VerdictOK, report.Verdict())
			},
		},
		{
			name: "already uppercase title is skipped without write",
			ids:  []string{"1"},
			edit: uppercase,
			setup: func(d bulkDeps) {
				d.api.On("GetProduct", mock.Anything, "1").
					Return(&models.Product{ID: "1", Title: "WIRELESS MOUSE"}, nil).Once()
				d.recorder.On("Record", mock.Anything, mock.Anything).Return(nil).Once()
			},
			assert: func(t *testing.T, report *models.BatchReport, d bulkDeps) {
				require.Len(t, report.Results, 1)
				assert.True(t, report.Results[0].Skipped)
				assert.Equal(t, models.Stats{Total: 1, Skipped: 1}, report.Stats)
				d.api.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything)
			},
		},
		{
			name: "missing product ids",
			ids:  []string{" ", ""},
			edit: uppercase,
			setup: func(d bulkDeps) {
			},
			wantErr: models.ErrMissingField,
		},
		{
			name: "invalid truncate length rejected before any call",
			ids:  []string{"1"},
			edit: models.TitleEdit{Op: models.OpTruncate, Length: 0},
			setup: func(d bulkDeps) {
			},
			wantErr: models.ErrValidation,
		},
		{
			name: "one failed product gives partial verdict",
			ids:  []string{"1", "2"},
			edit: models.TitleEdit{Op: models.OpAddTextEnd, Text: " - Sale"},
			setup: func(d bulkDeps) {
				d.api.On("GetProduct", mock.Anything, "1").
					Return(&models.Product{ID: "1", Title: "Shirt"}, nil).Once()
				d.api.On("UpdateProduct", mock.Anything, productUpdateWithTitle("1", "Shirt - Sale")).
					Return(nil, nil).Once()
				d.api.On("GetProduct", mock.Anything, "2").
					Return(nil, errors.New("connection reset")).Once()
				d.recorder.On("Record", mock.Anything, mock.Anything).Return(nil).Once()
			},
			assert: func(t *testing.T, report *models.BatchReport, d bulkDeps) {
				assert.Equal(t, models.Stats{Total: 2, Updated: 1, Failed: 1}, report.Stats)
				assert.Equal(t, models.VerdictPartial, report.Verdict())

				failed := report.FailedResults()
				require.Len(t, failed, 1)
				assert.Equal(t, "2", failed[0].ProductID)
				assert.Contains(t, failed[0].Errors[0].Message, "connection reset")
			},
		},
		{
			name: "user errors fail the product",
			ids:  []string{"1"},
			edit: models.TitleEdit{Op: models.OpReplace, Value: "Hoodie"},
			setup: func(d bulkDeps) {
				d.api.On("GetProduct", mock.Anything, "1").
					Return(&models.Product{ID: "1", Title: "Shirt"}, nil).Once()
				d.api.On("UpdateProduct", mock.Anything, productUpdateWithTitle("1", "Hoodie")).
					Return([]models.FieldError{{Field: []string{"title"}, Message: "Title is invalid"}}, nil).Once()
				d.recorder.On("Record", mock.Anything, mock.Anything).Return(nil).Once()
			},
			assert: func(t *testing.T, report *models.BatchReport, d bulkDeps) {
				assert.Equal(t, models.VerdictFailed, report.Verdict())
				assert.Equal(t, []string{"title"}, report.Results[0].Errors[0].Field)
			},
		},
		{
			name: "blank result is a per product error",
			ids:  []string{"1"},
			edit: models.TitleEdit{Op: models.OpRemoveText, Text: "Shirt"},
			setup: func(d bulkDeps) {
				d.api.On("GetProduct", mock.Anything, "1").
					Return(&models.Product{ID: "1", Title: "Shirt"}, nil).Once()
				d.recorder.On("Record", mock.Anything, mock.Anything).Return(nil).Once()
			},
			assert: func(t *testing.T, report *models.BatchReport, d bulkDeps) {
				require.True(t, report.Results[0].Failed())
				assert.Equal(t, "Shirt", report.Results[0].Title)
				d.api.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything)
			},
		},
		{
			name: "duplicate ids processed once",
			ids:  []string{"1", " 1 ", "1"},
			edit: uppercase,
			setup: func(d bulkDeps) {
				d.api.On("GetProduct", mock.Anything, "1").
					Return(&models.Product{ID: "1", Title: "MOUSE"}, nil).Once()
				d.recorder.On("Record", mock.Anything, mock.Anything).Return(nil).Once()
			},
			assert: func(t *testing.T, report *models.BatchReport, d bulkDeps) {
				assert.Equal(t, 1, report.Stats.Total)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, d := newBulkEditService(t)
			tt.setup(d)

			report, err := svc.EditTitles(context.Background(), testSession(), tt.ids, tt.edit)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, report)
				d.api.AssertNotCalled(t, "GetProduct", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			tt.assert(t, report, d)
		})
	}
}

func TestBulkEditService_RecorderFailureDoesNotFailBatch(t *testing.T) {
	t.Parallel()

	svc, d := newBulkEditService(t)
	session := testSession()

	d.api.On("GetProduct", mock.Anything, "1").
		Return(&models.Product{ID: "1", Status: models.StatusDraft}, nil).Once()
	d.api.On("UpdateProduct", mock.Anything, mock.MatchedBy(func(u models.ProductUpdate) bool {
		return u.Status != nil && *u.Status == models.StatusActive
	})).Return(nil, nil).Once()
	d.recorder.On("Record", mock.Anything, mock.MatchedBy(func(r *models.BatchRecord) bool {
		return r.Shop == session.Shop && r.Action == models.ActionStatus && r.Verdict == models.VerdictOK && r.ID != ""
	})).Return(errors.New("journal is down")).Once()

	report, err := svc.EditStatus(context.Background(), session, []string{"1"}, models.StatusEdit{Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, models.Stats{Total: 1, Updated: 1}, report.Stats)
}

func TestBulkEditService_EditTags_SetEquality(t *testing.T) {
	t.Parallel()

	svc, d := newBulkEditService(t)

	d.api.On("GetProduct", mock.Anything, "1").
		Return(&models.Product{ID: "1", Tags: []string{"Summer", "sale"}}, nil).Once()
	d.api.On("GetProduct", mock.Anything, "2").
		Return(&models.Product{ID: "2", Tags: []string{"winter"}}, nil).Once()
	d.api.On("UpdateProduct", mock.Anything, mock.MatchedBy(func(u models.ProductUpdate) bool {
		return u.ID == "2" && u.SetTags
	})).Return(nil, nil).Once()
	d.recorder.On("Record", mock.Anything, mock.Anything).Return(nil).Once()

	report, err := svc.EditTags(context.Background(), testSession(), []string{"1", "2"},
		models.TagsEdit{Op: models.OpAddTags, Tags: []string{"summer"}})
	require.NoError(t, err)

	assert.True(t, report.Results[0].Skipped)
	assert.Equal(t, []string{"winter", "summer"}, report.Results[1].New)
	assert.Equal(t, models.Stats{Total: 2, Updated: 1, Skipped: 1}, report.Stats)
}

func TestBulkEditService_EditSKUs(t *testing.T) {
	t.Parallel()

	prefix := models.SKUEdit{Op: models.OpAddPrefix, Prefix: "NEW-"}

	skuUpdates := func(want ...string) any {
		return mock.MatchedBy(func(updates []models.VariantUpdate) bool {
			if len(updates) != len(want) {
				return false
			}
			for i, u := range updates {
				if u.SKU == nil || *u.SKU != want[i] {
					return false
				}
			}
			return true
		})
	}

	twoVariants := &models.Product{ID: "1", Variants: []models.Variant{
		{ID: "11", SKU: "ABC123"},
		{ID: "12", SKU: "XYZ"},
	}}

	tests := []struct {
		name   string
		edit   models.SKUEdit
		setup  func(d bulkDeps)
		assert func(t *testing.T, report *models.BatchReport, d bulkDeps)
	}{
		{
			name: "prefix is written through bulk update",
			edit: prefix,
			setup: func(d bulkDeps) {
				d.api.On("GetProduct", mock.Anything, "1").
					Return(&models.Product{ID: "1", Variants: []models.Variant{{ID: "11", SKU: "ABC123"}}}, nil).Once()
				d.api.On("UpdateVariants", mock.Anything, "1", skuUpdates("NEW-ABC123")).Return(nil, nil).Once()
			},
			assert: func(t *testing.T, report *models.BatchReport, d bulkDeps) {
				v := report.Results[0].Variants[0]
				assert.Equal(t, "ABC123", v.Original)
				assert.Equal(t, "NEW-ABC123", v.New)
				assert.Equal(t, 1, report.Stats.VariantsUpdated)
				d.api.AssertNotCalled(t, "UpdateVariantSKU", mock.Anything, mock.Anything, mock.Anything)
			},
		},
		{
			name: "prefix applied again on second run",
			edit: prefix,
			setup: func(d bulkDeps) {
				d.api.On("GetProduct", mock.Anything, "1").
					Return(&models.Product{ID: "1", Variants: []models.Variant{{ID: "11", SKU: "NEW-ABC123"}}}, nil).Once()
				d.api.On("UpdateVariants", mock.Anything, "1", skuUpdates("NEW-NEW-ABC123")).Return(nil, nil).Once()
			},
			assert: func(t *testing.T, report *models.BatchReport, d bulkDeps) {
				assert.Equal(t, "NEW-NEW-ABC123", report.Results[0].Variants[0].New)
			},
		},
		{
			name: "transport error falls back to rest for every variant",
			edit: prefix,
			setup: func(d bulkDeps) {
				d.api.On("GetProduct", mock.Anything, "1").Return(twoVariants, nil).Once()
				d.api.On("UpdateVariants", mock.Anything, "1", skuUpdates("NEW-ABC123", "NEW-XYZ")).
					Return(nil, errors.New("timeout")).Once()
				d.api.On("UpdateVariantSKU", mock.Anything, "11", "NEW-ABC123").Return(nil).Once()
				d.api.On("UpdateVariantSKU", mock.Anything, "12", "NEW-XYZ").Return(nil).Once()
			},
			assert: func(t *testing.T, report *models.BatchReport, d bulkDeps) {
				assert.Equal(t, models.VerdictOK, report.Verdict())
				assert.Equal(t, 2, report.Stats.VariantsUpdated)
			},
		},
		{
			name: "indexed sku error retries only that variant",
			edit: prefix,
			setup: func(d bulkDeps) {
				d.api.On("GetProduct", mock.Anything, "1").Return(twoVariants, nil).Once()
				d.api.On("UpdateVariants", mock.Anything, "1", skuUpdates("NEW-ABC123", "NEW-XYZ")).
					Return([]models.FieldError{{Field: []string{"variants", "1", "sku"}, Message: "sku not writable"}}, nil).Once()
				d.api.On("UpdateVariantSKU", mock.Anything, "12", "NEW-XYZ").
					Return(errors.New("forbidden")).Once()
			},
			assert: func(t *testing.T, report *models.BatchReport, d bulkDeps) {
				res := report.Results[0]
				assert.Empty(t, res.Variants[0].Errors)
				require.Len(t, res.Variants[1].Errors, 1)
				assert.Equal(t, []string{"sku"}, res.Variants[1].Errors[0].Field)
				assert.Equal(t, 1, report.Stats.VariantsFailed)
				assert.Equal(t, models.VerdictFailed, report.Verdict())
				d.api.AssertNotCalled(t, "UpdateVariantSKU", mock.Anything, "11", mock.Anything)
			},
		},
		{
			name: "unchanged variants are skipped",
			edit: models.SKUEdit{Op: models.OpReplace, Value: "ABC"},
			setup: func(d bulkDeps) {
				d.api.On("GetProduct", mock.Anything, "1").
					Return(&models.Product{ID: "1", Variants: []models.Variant{{ID: "11", SKU: "ABC"}}}, nil).Once()
			},
			assert: func(t *testing.T, report *models.BatchReport, d bulkDeps) {
				assert.True(t, report.Results[0].Skipped)
				d.api.AssertNotCalled(t, "UpdateVariants", mock.Anything, mock.Anything, mock.Anything)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, d := newBulkEditService(t)
			tt.setup(d)
			d.recorder.On("Record", mock.Anything, mock.Anything).Return(nil).Once()

			report, err := svc.EditSKUs(context.Background(), testSession(), []string{"1"}, tt.edit)
			require.NoError(t, err)
			tt.assert(t, report, d)
		})
	}
}

func TestBulkEditService_EditWeights_Convert(t *testing.T) {
	t.Parallel()

	svc, d := newBulkEditService(t)

	d.api.On("GetProduct", mock.Anything, "1").Return(&models.Product{ID: "1", Variants: []models.Variant{
		{ID: "11", Weight: decimal.NewFromInt(1), WeightUnit: models.UnitKilograms},
		{ID: "12", Weight: decimal.NewFromInt(3), WeightUnit: models.UnitPounds},
	}}, nil).Once()
	d.api.On("UpdateVariants", mock.Anything, "1", mock.MatchedBy(func(updates []models.VariantUpdate) bool {
		return len(updates) == 1 &&
			updates[0].ID == "11" &&
			updates[0].Weight.Equal(decimal.RequireFromString("2.205")) &&
			*updates[0].WeightUnit == models.UnitPounds
	})).Return(nil, nil).Once()
	d.recorder.On("Record", mock.Anything, mock.Anything).Return(nil).Once()

	report, err := svc.EditWeights(context.Background(), testSession(), []string{"1"},
		models.WeightEdit{Op: models.OpConvertUnit, Unit: models.UnitPounds})
	require.NoError(t, err)

	res := report.Results[0]
	assert.Equal(t, "1 kg", res.Variants[0].Original)
	assert.Equal(t, "2.205 lb", res.Variants[0].New)
	assert.True(t, res.Variants[1].Skipped)
	assert.Equal(t, 1, report.Stats.VariantsUpdated)
	assert.Equal(t, 1, report.Stats.VariantsSkipped)
}

func TestBulkEditService_EditWeights_UserErrorMappedToVariant(t *testing.T) {
	t.Parallel()

	svc, d := newBulkEditService(t)

	d.api.On("GetProduct", mock.Anything, "1").Return(&models.Product{ID: "1", Variants: []models.Variant{
		{ID: "11", Weight: decimal.NewFromInt(1), WeightUnit: models.UnitGrams},
	}}, nil).Once()
	d.api.On("UpdateVariants", mock.Anything, "1", mock.Anything).
		Return([]models.FieldError{{Field: []string{"variants", "0", "weight"}, Message: "must be positive"}}, nil).Once()
	d.recorder.On("Record", mock.Anything, mock.Anything).Return(nil).Once()

	five := decimal.NewFromInt(5)
	report, err := svc.EditWeights(context.Background(), testSession(), []string{"1"},
		models.WeightEdit{Op: models.OpSetWeight, Weight: &five, Unit: models.UnitGrams})
	require.NoError(t, err)

	require.Len(t, report.Results[0].Variants[0].Errors, 1)
	assert.Empty(t, report.Results[0].Errors)
	assert.Equal(t, models.VerdictFailed, report.Verdict())
}

func TestBulkEditService_EditWeights_RejectedVariantDoesNotFailSiblings(t *testing.T) {
	t.Parallel()

	svc, d := newBulkEditService(t)

	d.api.On("GetProduct", mock.Anything, "1").Return(&models.Product{ID: "1", Variants: []models.Variant{
		{ID: "11", Weight: decimal.NewFromInt(1), WeightUnit: models.UnitGrams},
		{ID: "12", Weight: decimal.NewFromInt(2), WeightUnit: models.UnitGrams},
	}}, nil).Once()
	d.api.On("UpdateVariants", mock.Anything, "1", mock.MatchedBy(func(updates []models.VariantUpdate) bool {
		return len(updates) == 2
	})).Return([]models.FieldError{{Field: []string{"variants", "0", "weight"}, Message: "is invalid"}}, nil).Once()
	d.recorder.On("Record", mock.Anything, mock.Anything).Return(nil).Once()

	seven := decimal.NewFromInt(7)
	report, err := svc.EditWeights(context.Background(), testSession(), []string{"1"},
		models.WeightEdit{Op: models.OpSetWeight, Weight: &seven, Unit: models.UnitGrams})
	require.NoError(t, err)

	variants := report.Results[0].Variants
	require.Len(t, variants, 2)
	assert.Len(t, variants[0].Errors, 1)
	assert.Empty(t, variants[1].Errors)
	assert.Equal(t, 1, report.Stats.VariantsUpdated)
	assert.Equal(t, 1, report.Stats.VariantsFailed)
}

func TestBulkEditService_EditWeights_MissingWeight(t *testing.T) {
	t.Parallel()

	svc, d := newBulkEditService(t)

	_, err := svc.EditWeights(context.Background(), testSession(), []string{"1"},
		models.WeightEdit{Op: models.OpSetWeight, Unit: models.UnitKilograms})
	require.ErrorIs(t, err, models.ErrMissingField)
	assert.Contains(t, err.Error(), "weight")
	d.api.AssertNotCalled(t, "GetProduct", mock.Anything, mock.Anything)
}

func TestBulkEditService_PanicBecomesFailedOutcome(t *testing.T) {
	t.Parallel()

	svc, d := newBulkEditService(t)

	d.api.On("GetProduct", mock.Anything, "1").Run(func(mock.Arguments) {
		panic("boom")
	}).Return(nil, nil).Once()
	d.recorder.On("Record", mock.Anything, mock.Anything).Return(nil).Once()

	report, err := svc.EditProductType(context.Background(), testSession(), []string{"1"},
		models.ProductTypeEdit{Op: models.OpClear})
	require.NoError(t, err)
	assert.Equal(t, models.VerdictFailed, report.Verdict())
}
