package edits

import (
	"github.com/shopspring/decimal"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
)

// weightPrecision знаков после запятой при конвертации
const weightPrecision = 3

// gramsPer вес одной единицы в граммах
var gramsPer = map[models.WeightUnit]decimal.Decimal{
	models.UnitGrams:     decimal.NewFromInt(1),
	models.UnitKilograms: decimal.NewFromInt(1000),
	models.UnitOunces:    decimal.RequireFromString("28.349523125"),
	models.UnitPounds:    decimal.RequireFromString("453.59237"),
}

// ValidateWeight проверяет правку веса
func ValidateWeight(e models.WeightEdit) error {
	if _, ok := gramsPer[e.Unit]; !ok {
		return invalid("unknown weight unit %q", e.Unit)
	}

	switch e.Op {
	case models.OpSetWeight:
		if e.Weight == nil {
			return missing("weight")
		}
		if e.Weight.IsNegative() {
			return invalid("weight must not be negative")
		}
	case models.OpSetUnit, models.OpConvertUnit:
	default:
		return unknownOp(e.Op)
	}
	return nil
}

// ApplyWeight вычисляет новый вес и единицу варианта.
// Вариант без единицы считается заданным в граммах.
func ApplyWeight(weight decimal.Decimal, unit models.WeightUnit, e models.WeightEdit) (decimal.Decimal, models.WeightUnit) {
	switch e.Op {
	case models.OpSetWeight:
		if e.Weight == nil {
			return weight, unit
		}
		return *e.Weight, e.Unit
	case models.OpSetUnit:
		return weight, e.Unit
	case models.OpConvertUnit:
		return ConvertWeight(weight, unit, e.Unit), e.Unit
	}
	return weight, unit
}

// ConvertWeight переводит вес между единицами с округлением до трех знаков
func ConvertWeight(weight decimal.Decimal, from, to models.WeightUnit) decimal.Decimal {
	if from == "" {
		from = models.UnitGrams
	}
	if from == to {
		return weight
	}
	src, ok := gramsPer[from]
	if !ok {
		return weight
	}
	dst, ok := gramsPer[to]
	if !ok {
		return weight
	}
	return weight.Mul(src).Div(dst).Round(weightPrecision)
}

// SameWeight true, если вес и единица не изменились
func SameWeight(w1 decimal.Decimal, u1 models.WeightUnit, w2 decimal.Decimal, u2 models.WeightUnit) bool {
	return w1.Equal(w2) && u1 == u2
}
