package edits

import (
	"strings"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
)

// ValidateSKU проверяет правку артикула
func ValidateSKU(e models.SKUEdit) error {
	switch e.Op {
	case models.OpReplace:
		if strings.TrimSpace(e.Value) == "" {
			return invalid("value is required for replace")
		}
	case models.OpFindReplace:
		if e.Find == "" {
			return invalid("find is required for find_replace")
		}
	case models.OpAddPrefix:
		if e.Prefix == "" {
			return invalid("prefix is required for add_prefix")
		}
	case models.OpAddSuffix:
		if e.Suffix == "" {
			return invalid("suffix is required for add_suffix")
		}
	default:
		return unknownOp(e.Op)
	}
	return nil
}

// ApplySKU вычисляет новый артикул. Префикс и суффикс добавляются
// без проверки, был ли он уже добавлен ранее.
func ApplySKU(current string, e models.SKUEdit) string {
	switch e.Op {
	case models.OpReplace:
		return strings.TrimSpace(e.Value)
	case models.OpFindReplace:
		return replaceLiteral(current, e.Find, e.Replace)
	case models.OpAddPrefix:
		return e.Prefix + current
	case models.OpAddSuffix:
		return current + e.Suffix
	}
	return current
}
