package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FilterField поле товара, по которому строится фильтр
type FilterField string

const (
	FieldTitle       FilterField = "title"
	FieldDescription FilterField = "description"
	FieldProductID   FilterField = "productId"
	FieldCollection  FilterField = "collection"
	FieldPrice       FilterField = "price"
)

// FilterCondition условие сравнения
type FilterCondition string

const (
	CondIs             FilterCondition = "is"
	CondContains       FilterCondition = "contains"
	CondDoesNotContain FilterCondition = "doesNotContain"
	CondStartsWith     FilterCondition = "startsWith"
	CondEndsWith       FilterCondition = "endsWith"
	CondEmpty          FilterCondition = "empty"
	CondGreaterThan    FilterCondition = "greaterThan"
	CondLessThan       FilterCondition = "lessThan"
)

// allowedConditions матрица допустимых условий для каждого поля
var allowedConditions = map[FilterField][]FilterCondition{
	FieldTitle:       {CondIs, CondContains, CondDoesNotContain, CondStartsWith, CondEndsWith, CondEmpty},
	FieldDescription: {CondContains, CondDoesNotContain, CondStartsWith, CondEndsWith, CondEmpty},
	FieldProductID:   {CondIs},
	FieldCollection:  {CondIs},
	FieldPrice:       {CondIs, CondGreaterThan, CondLessThan},
}

// FilterRule правило фильтрации каталога. Живет только в рамках одного запроса.
type FilterRule struct {
	Field     FilterField     `json:"field"`
	Condition FilterCondition `json:"condition"`
	Value     string          `json:"value"`
}

// ConditionsFor возвращает условия, доступные для поля
func ConditionsFor(field FilterField) []FilterCondition {
	return allowedConditions[field]
}

// IsUnfiltered true, если правило не ограничивает выборку
func (r FilterRule) IsUnfiltered() bool {
	return r.Condition != CondEmpty && strings.TrimSpace(r.Value) == ""
}

// Validate проверяет сочетание поля и условия
func (r FilterRule) Validate() error {
	conds, ok := allowedConditions[r.Field]
	if !ok {
		return fmt.Errorf("%w: unknown field %q", ErrValidation, r.Field)
	}

	allowed := false
	for _, c := range conds {
		if c == r.Condition {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: condition %q is not available for field %q", ErrValidation, r.Condition, r.Field)
	}

	if r.Field == FieldPrice && !r.IsUnfiltered() {
		if _, err := decimal.NewFromString(strings.TrimSpace(r.Value)); err != nil {
			return fmt.Errorf("%w: price must be a number", ErrValidation)
		}
	}

	return nil
}
