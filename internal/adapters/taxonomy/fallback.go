package taxonomy

import (
	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
)

const gidPrefix = "gid://shopify/TaxonomyCategory/"

var fallback = []struct{ id, path string }{
	{"ap", "Animals & Pet Supplies"},
	{"ap-1", "Animals & Pet Supplies > Live Animals"},
	{"ap-2", "Animals & Pet Supplies > Pet Supplies"},
	{"ap-2-1", "Animals & Pet Supplies > Pet Supplies > Bird Supplies"},
	{"ap-2-2", "Animals & Pet Supplies > Pet Supplies > Cat Supplies"},
	{"ap-2-3", "Animals & Pet Supplies > Pet Supplies > Dog Supplies"},
	{"ap-2-4", "Animals & Pet Supplies > Pet Supplies > Fish Supplies"},
	{"aa", "Apparel & Accessories"},
	{"aa-1", "Apparel & Accessories > Clothing"},
	{"aa-1-1", "Apparel & Accessories > Clothing > Activewear"},
	{"aa-1-13", "Apparel & Accessories > Clothing > Shirts & Tops"},
	{"aa-1-12", "Apparel & Accessories > Clothing > Pants"},
	{"aa-2", "Apparel & Accessories > Clothing Accessories"},
	{"aa-2-17", "Apparel & Accessories > Clothing Accessories > Hats"},
	{"aa-8", "Apparel & Accessories > Shoes"},
	{"el", "Electronics"},
	{"el-4", "Electronics > Computers"},
	{"el-4-1", "Electronics > Computers > Computer Accessories"},
	{"el-4-1-1", "Electronics > Computers > Computer Accessories > Mice & Trackballs"},
	{"el-4-1-2", "Electronics > Computers > Computer Accessories > Keyboards"},
	{"el-2", "Electronics > Audio"},
	{"el-2-3", "Electronics > Audio > Headphones"},
	{"hg", "Home & Garden"},
	{"hg-7", "Home & Garden > Kitchen & Dining"},
	{"hg-7-1", "Home & Garden > Kitchen & Dining > Cookware"},
	{"hg-3", "Home & Garden > Decor"},
	{"hg-11", "Home & Garden > Lawn & Garden"},
	{"sg", "Sporting Goods"},
	{"sg-4", "Sporting Goods > Outdoor Recreation"},
	{"sg-4-2", "Sporting Goods > Outdoor Recreation > Camping & Hiking"},
	{"tg", "Toys & Games"},
	{"tg-5", "Toys & Games > Toys"},
	{"hb", "Health & Beauty"},
	{"hb-3", "Health & Beauty > Personal Care"},
	{"na", "Uncategorized"},
}

// Fallback встроенный минимальный список категорий
func Fallback() []models.TaxonomyEntry {
	entries := make([]models.TaxonomyEntry, 0, len(fallback))
	for _, f := range fallback {
		entries = append(entries, models.TaxonomyEntry{ID: gidPrefix + f.id, FullPath: f.path})
	}
	return entries
}
