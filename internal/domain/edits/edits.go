// Package edits содержит чистые функции массовых правок: новое значение
// вычисляется только из текущего значения и описания правки.
package edits

import (
	"fmt"
	"strings"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", models.ErrValidation, fmt.Sprintf(format, args...))
}

func missing(field string) error {
	return fmt.Errorf("%w: %s", models.ErrMissingField, field)
}

func unknownOp(op models.EditOp) error {
	return invalid("unknown operation %q", op)
}

// replaceLiteral заменяет все вхождения find как обычной подстроки, без регулярных выражений
func replaceLiteral(s, find, replace string) string {
	if find == "" {
		return s
	}
	return strings.ReplaceAll(s, find, replace)
}
