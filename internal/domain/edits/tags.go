package edits

import (
	"strings"

	"github.com/samber/lo"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
)

// ValidateTags проверяет правку тегов
func ValidateTags(e models.TagsEdit) error {
	switch e.Op {
	case models.OpAddTags:
		if len(NormalizeTags(e.Tags)) == 0 {
			return invalid("tags are required for add_tags")
		}
	case models.OpRemoveTags:
		if len(NormalizeTags(e.TagsToRemove)) == 0 {
			return invalid("tagsToRemove is required for remove_tags")
		}
	case models.OpReplaceTags:
		// Пустой список очищает теги, отсутствие поля считается ошибкой запроса
		if e.Tags == nil {
			return missing("tags")
		}
	case models.OpFindReplace:
		if e.Find == "" {
			return invalid("find is required for find_replace")
		}
	default:
		return unknownOp(e.Op)
	}
	return nil
}

// NormalizeTags обрезает пробелы, выкидывает пустые и дубликаты.
// Теги на платформе сравниваются без учета регистра, остается первое написание.
func NormalizeTags(tags []string) []string {
	trimmed := lo.FilterMap(tags, func(t string, _ int) (string, bool) {
		t = strings.TrimSpace(t)
		return t, t != ""
	})
	return lo.UniqBy(trimmed, strings.ToLower)
}

// ApplyTags вычисляет новый набор тегов
func ApplyTags(current []string, e models.TagsEdit) []string {
	current = NormalizeTags(current)

	switch e.Op {
	case models.OpAddTags:
		return NormalizeTags(append(current, e.Tags...))
	case models.OpRemoveTags:
		drop := lo.SliceToMap(NormalizeTags(e.TagsToRemove), func(t string) (string, struct{}) {
			return strings.ToLower(t), struct{}{}
		})
		return lo.Reject(current, func(t string, _ int) bool {
			_, ok := drop[strings.ToLower(t)]
			return ok
		})
	case models.OpReplaceTags:
		return NormalizeTags(e.Tags)
	case models.OpFindReplace:
		return NormalizeTags(lo.Map(current, func(t string, _ int) string {
			return replaceLiteral(t, e.Find, e.Replace)
		}))
	}
	return current
}

// SameTags сравнивает наборы тегов как множества
func SameTags(a, b []string) bool {
	left := lo.Map(NormalizeTags(a), func(t string, _ int) string { return strings.ToLower(t) })
	right := lo.Map(NormalizeTags(b), func(t string, _ int) string { return strings.ToLower(t) })
	return len(left) == len(right) && lo.Every(left, right)
}
