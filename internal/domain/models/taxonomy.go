package models

// TaxonomyEntry строка файла таксономии: "<id> : A > B > C"
type TaxonomyEntry struct {
	ID       string
	FullPath string
}

// TaxonomyNode узел дерева категорий
type TaxonomyNode struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	FullPath string          `json:"fullPath"`
	Level    int             `json:"level"`
	Children []*TaxonomyNode `json:"children"`
}

// TaxonomyOption плоский вариант для автокомплита
type TaxonomyOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
