package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/athebyme/gomarket-platform/catalog-admin/internal/domain/models"
	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/interfaces"
)

// SearchProducts реализация platform.AdminAPI
func (c *Client) SearchProducts(ctx context.Context, query string, first int) ([]models.Product, error) {
	vars := map[string]any{"first": first}
	if query != "" {
		vars["query"] = query
	}

	data, err := graphQL[productsData](ctx, c, searchProductsQuery, vars)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(data.Products.Nodes))
	for _, node := range data.Products.Nodes {
		products = append(products, node.toModel())
	}

	c.logger.DebugWithContext(ctx, "Поиск товаров выполнен",
		interfaces.LogField{Key: "query", Value: query},
		interfaces.LogField{Key: "count", Value: len(products)},
	)

	return products, nil
}

// GetProduct реализация platform.AdminAPI
func (c *Client) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	data, err := graphQL[productData](ctx, c, getProductQuery, map[string]any{"id": productGID(productID)})
	if err != nil {
		return nil, err
	}
	if data.Product == nil {
		return nil, fmt.Errorf("%w: product %s", models.ErrNotFound, productID)
	}

	// Правка вариантов должна видеть все варианты товара, а не первую страницу
	page := data.Product.Variants.PageInfo
	for page.HasNextPage && page.EndCursor != "" {
		next, err := graphQL[productData](ctx, c, productVariantsQuery, map[string]any{
			"id":    productGID(productID),
			"after": page.EndCursor,
		})
		if err != nil {
			return nil, err
		}
		if next.Product == nil {
			return nil, fmt.Errorf("%w: product %s", models.ErrNotFound, productID)
		}
		data.Product.Variants.Nodes = append(data.Product.Variants.Nodes, next.Product.Variants.Nodes...)
		page = next.Product.Variants.PageInfo
	}

	product := data.Product.toModel()
	return &product, nil
}

// UpdateProduct реализация platform.AdminAPI
func (c *Client) UpdateProduct(ctx context.Context, update models.ProductUpdate) ([]models.FieldError, error) {
	input := map[string]any{"id": productGID(update.ID)}
	if update.Title != nil {
		input["title"] = *update.Title
	}
	if update.Status != nil {
		input["status"] = string(*update.Status)
	}
	if update.ProductType != nil {
		input["productType"] = *update.ProductType
	}
	if update.SetTags {
		tags := update.Tags
		if tags == nil {
			tags = []string{}
		}
		input["tags"] = tags
	}

	data, err := graphQL[productUpdateData](ctx, c, productUpdateMutation, map[string]any{"input": input})
	if err != nil {
		return nil, err
	}

	return toFieldErrors(data.ProductUpdate.UserErrors), nil
}

// UpdateVariants реализация platform.AdminAPI
func (c *Client) UpdateVariants(ctx context.Context, productID string, updates []models.VariantUpdate) ([]models.FieldError, error) {
	variants := make([]map[string]any, 0, len(updates))
	for _, u := range updates {
		item := map[string]any{}
		if u.SKU != nil {
			item["sku"] = *u.SKU
		}
		if u.Weight != nil || u.WeightUnit != nil {
			weight := map[string]any{}
			if u.Weight != nil {
				weight["value"] = json.Number(u.Weight.String())
			}
			if u.WeightUnit != nil {
				weight["unit"] = u.WeightUnit.PlatformName()
			}
			item["measurement"] = map[string]any{"weight": weight}
		}
		variants = append(variants, map[string]any{
			"id":            variantGID(u.ID),
			"inventoryItem": item,
		})
	}

	data, err := graphQL[variantsBulkUpdateData](ctx, c, variantsBulkUpdateMutation, map[string]any{
		"productId":           productGID(productID),
		"variants":            variants,
		"allowPartialUpdates": true,
	})
	if err != nil {
		return nil, err
	}

	return toFieldErrors(data.ProductVariantsBulkUpdate.UserErrors), nil
}

// UpdateVariantSKU реализация platform.AdminAPI. PUT /variants/{id}.json
func (c *Client) UpdateVariantSKU(ctx context.Context, variantID, sku string) error {
	numeric := models.NumericID(variantID)
	id, err := strconv.ParseInt(numeric, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid variant id %q", models.ErrValidation, variantID)
	}

	payload := restVariantPayload{Variant: restVariant{ID: id, SKU: sku}}
	return c.doJSON(ctx, http.MethodPut, c.endpoint("variants/"+numeric+".json"), payload, nil)
}

func (p productDTO) toModel() models.Product {
	product := models.Product{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		ProductType: p.ProductType,
		Vendor:      p.Vendor,
		Status:      models.ProductStatus(p.Status),
		Tags:        p.Tags,
	}
	if p.PriceRangeV2 != nil {
		product.PriceRange = models.PriceRange{
			Min: p.PriceRangeV2.MinVariantPrice.Amount,
			Max: p.PriceRangeV2.MaxVariantPrice.Amount,
		}
	}

	for _, v := range p.Variants.Nodes {
		variant := models.Variant{
			ID:        v.ID,
			ProductID: p.ID,
			Title:     v.Title,
			SKU:       v.SKU,
		}
		if v.InventoryItem != nil {
			if variant.SKU == "" {
				variant.SKU = v.InventoryItem.SKU
			}
			if m := v.InventoryItem.Measurement; m != nil && m.Weight != nil {
				variant.Weight = m.Weight.Value
				if unit, ok := models.ParseWeightUnit(m.Weight.Unit); ok {
					variant.WeightUnit = unit
				}
			}
		}
		product.Variants = append(product.Variants, variant)
	}

	return product
}

func productGID(id string) string {
	return toGID("Product", id)
}

func variantGID(id string) string {
	return toGID("ProductVariant", id)
}

// toGID принимает как числовой id, так и gid://shopify/<Type>/<id>
func toGID(kind, id string) string {
	if _, err := strconv.ParseInt(id, 10, 64); err == nil {
		return "gid://shopify/" + kind + "/" + id
	}
	return id
}
