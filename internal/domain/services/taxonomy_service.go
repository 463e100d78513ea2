package services

import (
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/infrastructure/taxonomy"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/interfaces"
)

const (
	pathSeparator      = " > "
	defaultSearchLimit = 20
)

// TaxonomyService дерево категорий и плоский список для автокомплита.
// Строится один раз при первом обращении и не инвалидируется до перезапуска.
type TaxonomyService struct {
	source taxonomy.Source
	logger interfaces.LoggerPort

	once sync.Once
	tree []*models.TaxonomyNode
	flat []models.TaxonomyOption
}

// NewTaxonomyService создает новый экземпляр TaxonomyService
func NewTaxonomyService(source taxonomy.Source, logger interfaces.LoggerPort) *TaxonomyService {
	return &TaxonomyService{
		source: source,
		logger: logger,
	}
}

func (s *TaxonomyService) load() {
	s.once.Do(func() {
		roots, orphans := BuildTree(s.source.Load())
		if orphans > 0 {
			s.logger.Debug("Узлы без родителя исключены из дерева",
				interfaces.LogField{Key: "orphans", Value: orphans},
			)
		}
		s.tree = roots
		s.flat = Flatten(roots)
	})
}

// Tree возвращает корни дерева категорий
func (s *TaxonomyService) Tree() []*models.TaxonomyNode {
	s.load()
	return s.tree
}

// FlatList возвращает все категории в порядке обхода дерева
func (s *TaxonomyService) FlatList() []models.TaxonomyOption {
	s.load()
	return s.flat
}

// Search ищет категории по подстроке пути без учета регистра
func (s *TaxonomyService) Search(query string, limit int) []models.TaxonomyOption {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	query = strings.ToLower(strings.TrimSpace(query))
	options := s.FlatList()
	if query != "" {
		options = lo.Filter(options, func(o models.TaxonomyOption, _ int) bool {
			return strings.Contains(strings.ToLower(o.Label), query)
		})
	}

	if len(options) > limit {
		options = options[:limit]
	}
	return options
}

// BuildTree строит дерево в два прохода: узел на каждый путь, затем привязка к родителю.
// Узлы, родительского пути которых нет, в дерево не попадают; их число возвращается вторым значением.
func BuildTree(entries []models.TaxonomyEntry) ([]*models.TaxonomyNode, int) {
	byPath := make(map[string]*models.TaxonomyNode, len(entries))
	order := make([]*models.TaxonomyNode, 0, len(entries))
	var roots []*models.TaxonomyNode

	for _, e := range entries {
		if _, exists := byPath[e.FullPath]; exists {
			continue
		}
		segments := strings.Split(e.FullPath, pathSeparator)
		node := &models.TaxonomyNode{
			ID:       e.ID,
			Name:     segments[len(segments)-1],
			FullPath: e.FullPath,
			Level:    len(segments) - 1,
			Children: []*models.TaxonomyNode{},
		}
		byPath[e.FullPath] = node
		order = append(order, node)
		if node.Level == 0 {
			roots = append(roots, node)
		}
	}

	orphans := 0
	for _, node := range order {
		if node.Level == 0 {
			continue
		}
		parentPath := node.FullPath[:strings.LastIndex(node.FullPath, pathSeparator)]
		parent, ok := byPath[parentPath]
		if !ok {
			orphans++
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	sortNodes(roots)
	return roots, orphans
}

func sortNodes(nodes []*models.TaxonomyNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Name < nodes[j].Name
	})
	for _, n := range nodes {
		sortNodes(n.Children)
	}
}

// Flatten обходит дерево в прямом порядке
func Flatten(roots []*models.TaxonomyNode) []models.TaxonomyOption {
	var options []models.TaxonomyOption
	var walk func(nodes []*models.TaxonomyNode)
	walk = func(nodes []*models.TaxonomyNode) {
		for _, n := range nodes {
			options = append(options, models.TaxonomyOption{Label: n.FullPath, Value: n.ID})
			walk(n.Children)
		}
	}
	walk(roots)
	return options
}
