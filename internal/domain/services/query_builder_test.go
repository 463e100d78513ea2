package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
)

func TestBuildQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rule    models.FilterRule
		want    string
		wantErr bool
	}{
		{
			name: "title contains uses wildcard",
			rule: models.FilterRule{Field: models.FieldTitle, Condition: models.CondContains, Value: "shirt"},
			want: "title:*shirt*",
		},
		{
			name: "title is uses quoted term",
			rule: models.FilterRule{Field: models.FieldTitle, Condition: models.CondIs, Value: `Blue "Shirt"`},
			want: `title:"Blue \"Shirt\""`,
		},
		{
			name: "title does not contain is negated",
			rule: models.FilterRule{Field: models.FieldTitle, Condition: models.CondDoesNotContain, Value: "hat"},
			want: "-title:*hat*",
		},
		{
			name: "spaces escaped in bare term",
			rule: models.FilterRule{Field: models.FieldTitle, Condition: models.CondStartsWith, Value: "red hat"},
			want: `title:*red\ hat*`,
		},
		{
			name: "description contains is full text",
			rule: models.FilterRule{Field: models.FieldDescription, Condition: models.CondContains, Value: "cotton"},
			want: "cotton",
		},
		{
			name: "description does not contain is checked locally",
			rule: models.FilterRule{Field: models.FieldDescription, Condition: models.CondDoesNotContain, Value: "cotton"},
			want: "",
		},
		{
			name: "product id from gid",
			rule: models.FilterRule{Field: models.FieldProductID, Condition: models.CondIs, Value: "gid://shopify/Product/123"},
			want: "id:123",
		},
		{
			name: "collection id",
			rule: models.FilterRule{Field: models.FieldCollection, Condition: models.CondIs, Value: "987"},
			want: "collection_id:987",
		},
		{
			name:    "non numeric collection",
			rule:    models.FilterRule{Field: models.FieldCollection, Condition: models.CondIs, Value: "summer"},
			wantErr: true,
		},
		{
			name: "price greater than",
			rule: models.FilterRule{Field: models.FieldPrice, Condition: models.CondGreaterThan, Value: "10.50"},
			want: "price:>10.5",
		},
		{
			name: "price less than",
			rule: models.FilterRule{Field: models.FieldPrice, Condition: models.CondLessThan, Value: "20"},
			want: "price:<20",
		},
		{
			name:    "price must be a number",
			rule:    models.FilterRule{Field: models.FieldPrice, Condition: models.CondIs, Value: "cheap"},
			wantErr: true,
		},
		{
			name: "empty value is unfiltered",
			rule: models.FilterRule{Field: models.FieldTitle, Condition: models.CondContains, Value: "  "},
			want: "",
		},
		{
			name:    "condition not allowed for field",
			rule:    models.FilterRule{Field: models.FieldPrice, Condition: models.CondContains, Value: "1"},
			wantErr: true,
		},
		{
			name:    "unknown field",
			rule:    models.FilterRule{Field: "vendor", Condition: models.CondIs, Value: "acme"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := BuildQuery(tt.rule)
			if tt.wantErr {
				require.ErrorIs(t, err, models.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchRule(t *testing.T) {
	t.Parallel()

	p := models.Product{Title: "Blue Shirt", Description: "Soft cotton"}

	tests := []struct {
		name string
		rule models.FilterRule
		want bool
	}{
		{"contains ignores case", models.FilterRule{Field: models.FieldTitle, Condition: models.CondContains, Value: "SHIRT"}, true},
		{"starts with", models.FilterRule{Field: models.FieldTitle, Condition: models.CondStartsWith, Value: "blue"}, true},
		{"starts with mismatch", models.FilterRule{Field: models.FieldTitle, Condition: models.CondStartsWith, Value: "shirt"}, false},
		{"ends with", models.FilterRule{Field: models.FieldTitle, Condition: models.CondEndsWith, Value: "shirt"}, true},
		{"is exact", models.FilterRule{Field: models.FieldTitle, Condition: models.CondIs, Value: "blue shirt"}, true},
		{"is partial", models.FilterRule{Field: models.FieldTitle, Condition: models.CondIs, Value: "blue"}, false},
		{"description does not contain", models.FilterRule{Field: models.FieldDescription, Condition: models.CondDoesNotContain, Value: "wool"}, true},
		{"empty", models.FilterRule{Field: models.FieldDescription, Condition: models.CondEmpty}, false},
		{"price is not checked locally", models.FilterRule{Field: models.FieldPrice, Condition: models.CondGreaterThan, Value: "1000"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MatchRule(p, tt.rule))
		})
	}
}
