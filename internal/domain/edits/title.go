package edits

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
)

// ValidateTitle проверяет правку названия до обращения к платформе
func ValidateTitle(e models.TitleEdit) error {
	switch e.Op {
	case models.OpAddTextStart, models.OpAddTextEnd, models.OpRemoveText:
		if e.Text == "" {
			return invalid("text is required for %s", e.Op)
		}
	case models.OpFindReplace:
		if e.Find == "" {
			return invalid("find is required for find_replace")
		}
	case models.OpReplace:
		if strings.TrimSpace(e.Value) == "" {
			return invalid("value is required for replace")
		}
	case models.OpCapitalize:
		switch e.CaseType {
		case models.CaseTitle, models.CaseUpper, models.CaseLower, models.CaseFirstLetter:
		default:
			return invalid("unknown case type %q", e.CaseType)
		}
	case models.OpTruncate:
		if e.Length <= 0 {
			return invalid("length must be greater than zero")
		}
	default:
		return unknownOp(e.Op)
	}
	return nil
}

// ApplyTitle вычисляет новое название
func ApplyTitle(current string, e models.TitleEdit) string {
	switch e.Op {
	case models.OpAddTextStart:
		return e.Text + current
	case models.OpAddTextEnd:
		return current + e.Text
	case models.OpRemoveText:
		return strings.Join(strings.Fields(replaceLiteral(current, e.Text, "")), " ")
	case models.OpFindReplace:
		return replaceLiteral(current, e.Find, e.Replace)
	case models.OpReplace:
		return strings.TrimSpace(e.Value)
	case models.OpCapitalize:
		return changeCase(current, e.CaseType)
	case models.OpTruncate:
		return truncate(current, e.Length)
	}
	return current
}

func changeCase(s string, ct models.CaseType) string {
	switch ct {
	case models.CaseTitle:
		return cases.Title(language.Und).String(s)
	case models.CaseUpper:
		return cases.Upper(language.Und).String(s)
	case models.CaseLower:
		return cases.Lower(language.Und).String(s)
	case models.CaseFirstLetter:
		lower := cases.Lower(language.Und).String(s)
		r, size := utf8.DecodeRuneInString(lower)
		if r == utf8.RuneError {
			return lower
		}
		return string(unicode.ToUpper(r)) + lower[size:]
	}
	return s
}

// truncate обрезает по рунам, хвостовые пробелы отбрасываются
func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimRightFunc(string(runes[:n]), unicode.IsSpace)
}
