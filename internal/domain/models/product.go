package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ProductStatus статус товара на платформе
type ProductStatus string

const (
	StatusActive   ProductStatus = "ACTIVE"
	StatusDraft    ProductStatus = "DRAFT"
	StatusArchived ProductStatus = "ARCHIVED"
)

// ParseProductStatus разбирает статус без учета регистра
func ParseProductStatus(s string) (ProductStatus, bool) {
	switch ProductStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusActive:
		return StatusActive, true
	case StatusDraft:
		return StatusDraft, true
	case StatusArchived:
		return StatusArchived, true
	}
	return "", false
}

// WeightUnit единица измерения веса варианта
type WeightUnit string

const (
	UnitGrams     WeightUnit = "g"
	UnitKilograms WeightUnit = "kg"
	UnitOunces    WeightUnit = "oz"
	UnitPounds    WeightUnit = "lb"
)

var platformUnits = map[WeightUnit]string{
	UnitGrams:     "GRAMS",
	UnitKilograms: "KILOGRAMS",
	UnitOunces:    "OUNCES",
	UnitPounds:    "POUNDS",
}

// ParseWeightUnit принимает как короткую форму (kg), так и форму платформы (KILOGRAMS)
func ParseWeightUnit(s string) (WeightUnit, bool) {
	s = strings.TrimSpace(s)
	for unit, platform := range platformUnits {
		if strings.EqualFold(s, string(unit)) || strings.EqualFold(s, platform) {
			return unit, true
		}
	}
	return "", false
}

// PlatformName возвращает название единицы в API платформы
func (u WeightUnit) PlatformName() string {
	return platformUnits[u]
}

// PriceRange диапазон цен по вариантам товара
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// Product товар на стороне платформы. Локально не хранится.
type Product struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	ProductType string        `json:"productType"`
	Vendor      string        `json:"vendor,omitempty"`
	Status      ProductStatus `json:"status"`
	PriceRange  PriceRange    `json:"priceRange"`
	Tags        []string      `json:"tags"`
	Variants    []Variant     `json:"variants,omitempty"`
}

// Variant вариант товара
type Variant struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"productId"`
	Title      string          `json:"title,omitempty"`
	SKU        string          `json:"sku"`
	Weight     decimal.Decimal `json:"weight"`
	WeightUnit WeightUnit      `json:"weightUnit"`
}

// ProductUpdate изменяемые поля товара. nil означает "не менять".
type ProductUpdate struct {
	ID          string
	Title       *string
	Status      *ProductStatus
	ProductType *string
	Tags        []string
	SetTags     bool
}

// VariantUpdate изменяемые поля варианта
type VariantUpdate struct {
	ID         string
	SKU        *string
	Weight     *decimal.Decimal
	WeightUnit *WeightUnit
}

// FieldError ошибка валидации поля, возвращенная платформой
type FieldError struct {
	Field   []string `json:"field,omitempty"`
	Message string   `json:"message"`
}

// NumericID возвращает числовую часть gid://shopify/Product/123
func NumericID(gid string) string {
	if i := strings.LastIndex(gid, "/"); i >= 0 {
		return gid[i+1:]
	}
	return gid
}
