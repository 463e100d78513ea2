package models

import "github.com/shopspring/decimal"

// EditOp операция массового редактирования
type EditOp string

const (
	OpAddTextStart EditOp = "add_text_start"
	OpAddTextEnd   EditOp = "add_text_end"
	OpRemoveText   EditOp = "remove_text"
	OpFindReplace  EditOp = "find_replace"
	OpReplace      EditOp = "replace"
	OpCapitalize   EditOp = "capitalize"
	OpTruncate     EditOp = "truncate"
	OpClear        EditOp = "clear"

	OpAddTags     EditOp = "add_tags"
	OpRemoveTags  EditOp = "remove_tags"
	OpReplaceTags EditOp = "replace_tags"

	OpAddPrefix EditOp = "add_prefix"
	OpAddSuffix EditOp = "add_suffix"

	OpSetWeight   EditOp = "set"
	OpSetUnit     EditOp = "set_unit"
	OpConvertUnit EditOp = "convert_unit"
)

// opAliases camelCase-имена, которые присылают старые формы
var opAliases = map[string]EditOp{
	"addTextStart": OpAddTextStart,
	"addTextEnd":   OpAddTextEnd,
	"removeText":   OpRemoveText,
	"findReplace":  OpFindReplace,
	"addTags":      OpAddTags,
	"removeTags":   OpRemoveTags,
	"replaceTags":  OpReplaceTags,
	"addPrefix":    OpAddPrefix,
	"addSuffix":    OpAddSuffix,
}

// NormalizeOp приводит имя операции к каноническому виду
func NormalizeOp(op string) EditOp {
	if canonical, ok := opAliases[op]; ok {
		return canonical
	}
	return EditOp(op)
}

// CaseType вариант смены регистра
type CaseType string

const (
	CaseTitle       CaseType = "title"
	CaseUpper       CaseType = "uppercase"
	CaseLower       CaseType = "lowercase"
	CaseFirstLetter CaseType = "first_letter"
)

// TitleEdit правка названия товара
type TitleEdit struct {
	Op       EditOp   `json:"op"`
	Text     string   `json:"text,omitempty"`
	Find     string   `json:"find,omitempty"`
	Replace  string   `json:"replace,omitempty"`
	Value    string   `json:"value,omitempty"`
	CaseType CaseType `json:"caseType,omitempty"`
	Length   int      `json:"length,omitempty"`
}

// StatusEdit смена статуса
type StatusEdit struct {
	Status ProductStatus `json:"status"`
}

// ProductTypeEdit правка типа товара
type ProductTypeEdit struct {
	Op      EditOp `json:"op"`
	Value   string `json:"value,omitempty"`
	Find    string `json:"find,omitempty"`
	Replace string `json:"replace,omitempty"`
}

// TagsEdit правка тегов
type TagsEdit struct {
	Op           EditOp   `json:"op"`
	Tags         []string `json:"tags,omitempty"`
	TagsToRemove []string `json:"tagsToRemove,omitempty"`
	Find         string   `json:"find,omitempty"`
	Replace      string   `json:"replace,omitempty"`
}

// SKUEdit правка артикулов вариантов
type SKUEdit struct {
	Op      EditOp `json:"op"`
	Value   string `json:"value,omitempty"`
	Find    string `json:"find,omitempty"`
	Replace string `json:"replace,omitempty"`
	Prefix  string `json:"prefix,omitempty"`
	Suffix  string `json:"suffix,omitempty"`
}

// WeightEdit правка веса вариантов
type WeightEdit struct {
	Op     EditOp           `json:"op"`
	Weight *decimal.Decimal `json:"weight,omitempty"` // nil, если поле не передано
	Unit   WeightUnit       `json:"unit"`
}
