package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
)

var searchEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`:`, `\:`,
	`(`, `\(`,
	`)`, `\)`,
	`*`, `\*`,
)

// escapeTerm экранирует спецсимволы поискового синтаксиса платформы
func escapeTerm(v string) string {
	return searchEscaper.Replace(v)
}

// escapeBare дополнительно экранирует пробелы для терма без кавычек
func escapeBare(v string) string {
	return strings.ReplaceAll(escapeTerm(v), " ", `\ `)
}

// BuildQuery переводит правило в поисковый запрос платформы.
// Пустая строка означает запрос без условий.
func BuildQuery(rule models.FilterRule) (string, error) {
	if err := rule.Validate(); err != nil {
		return "", err
	}
	if rule.IsUnfiltered() {
		return "", nil
	}

	value := strings.TrimSpace(rule.Value)

	switch rule.Field {
	case models.FieldTitle, models.FieldDescription:
		return textQuery(rule.Field, rule.Condition, value), nil

	case models.FieldProductID:
		id, err := numericValue(value, "productId")
		if err != nil {
			return "", err
		}
		return "id:" + id, nil

	case models.FieldCollection:
		id, err := numericValue(value, "collection")
		if err != nil {
			return "", err
		}
		return "collection_id:" + id, nil

	case models.FieldPrice:
		price := decimal.RequireFromString(value).String()
		switch rule.Condition {
		case models.CondGreaterThan:
			return "price:>" + price, nil
		case models.CondLessThan:
			return "price:<" + price, nil
		default:
			return "price:" + price, nil
		}
	}

	return "", fmt.Errorf("%w: unknown field %q", models.ErrValidation, rule.Field)
}

// textQuery для title используется поле title, описание ищется полнотекстом
func textQuery(field models.FilterField, cond models.FilterCondition, value string) string {
	prefix := ""
	if field == models.FieldTitle {
		prefix = "title:"
	}

	switch cond {
	case models.CondIs:
		return prefix + `"` + escapeTerm(value) + `"`
	case models.CondContains, models.CondStartsWith, models.CondEndsWith:
		if prefix == "" {
			return escapeBare(value)
		}
		return prefix + "*" + escapeBare(value) + "*"
	case models.CondDoesNotContain:
		if prefix == "" {
			return ""
		}
		return "-" + prefix + "*" + escapeBare(value) + "*"
	}

	return ""
}

func numericValue(v, field string) (string, error) {
	id := models.NumericID(v)
	if id == "" || strings.IndexFunc(id, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return "", fmt.Errorf("%w: %s must be a numeric id or gid", models.ErrValidation, field)
	}
	return id, nil
}

// MatchRule проверяет товар на стороне клиента. Поиск платформы токенизирует текст,
// поэтому текстовые условия перепроверяются точно и без учета регистра.
func MatchRule(p models.Product, rule models.FilterRule) bool {
	if rule.IsUnfiltered() {
		return true
	}

	var text string
	switch rule.Field {
	case models.FieldTitle:
		text = p.Title
	case models.FieldDescription:
		text = p.Description
	default:
		return true
	}

	text = strings.ToLower(strings.TrimSpace(text))
	value := strings.ToLower(strings.TrimSpace(rule.Value))

	switch rule.Condition {
	case models.CondIs:
		return text == value
	case models.CondContains:
		return strings.Contains(text, value)
	case models.CondDoesNotContain:
		return !strings.Contains(text, value)
	case models.CondStartsWith:
		return strings.HasPrefix(text, value)
	case models.CondEndsWith:
		return strings.HasSuffix(text, value)
	case models.CondEmpty:
		return text == ""
	}
	return true
}
