package edits

import (
	"strings"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
)

// ValidateStatus проверяет целевой статус
func ValidateStatus(e models.StatusEdit) error {
	if _, ok := models.ParseProductStatus(string(e.Status)); !ok {
		return invalid("unknown status %q", e.Status)
	}
	return nil
}

// ValidateProductType проверяет правку типа товара
func ValidateProductType(e models.ProductTypeEdit) error {
	switch e.Op {
	case models.OpReplace:
		if strings.TrimSpace(e.Value) == "" {
			return invalid("value is required for replace, use clear to remove the product type")
		}
	case models.OpFindReplace:
		if e.Find == "" {
			return invalid("find is required for find_replace")
		}
	case models.OpClear:
	default:
		return unknownOp(e.Op)
	}
	return nil
}

// ApplyProductType вычисляет новый тип товара
func ApplyProductType(current string, e models.ProductTypeEdit) string {
	switch e.Op {
	case models.OpReplace:
		return strings.TrimSpace(e.Value)
	case models.OpFindReplace:
		return strings.TrimSpace(replaceLiteral(current, e.Find, e.Replace))
	case models.OpClear:
		return ""
	}
	return current
}
