package shopify

import (
	"github.com/shopspring/decimal"
)

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse[T any] struct {
	Data   T              `json:"data"`
	Errors []graphQLError `json:"errors,omitempty"`
}

type graphQLError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

type userError struct {
	Field   []string `json:"field,omitempty"`
	Message string   `json:"message"`
}

type moneyV2 struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode,omitempty"`
}

type priceRangeV2 struct {
	MinVariantPrice moneyV2 `json:"minVariantPrice"`
	MaxVariantPrice moneyV2 `json:"maxVariantPrice"`
}

type weightDTO struct {
	Value decimal.Decimal `json:"value"`
	Unit  string          `json:"unit"`
}

type inventoryItemDTO struct {
	SKU         string `json:"sku"`
	Measurement *struct {
		Weight *weightDTO `json:"weight"`
	} `json:"measurement"`
}

type variantDTO struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	SKU           string            `json:"sku"`
	InventoryItem *inventoryItemDTO `json:"inventoryItem"`
}

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type variantConnection struct {
	Nodes    []variantDTO `json:"nodes"`
	PageInfo pageInfo     `json:"pageInfo"`
}

type productDTO struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	ProductType  string            `json:"productType"`
	Vendor       string            `json:"vendor"`
	Status       string            `json:"status"`
	Tags         []string          `json:"tags"`
	PriceRangeV2 *priceRangeV2     `json:"priceRangeV2"`
	Variants     variantConnection `json:"variants"`
}

type productsData struct {
	Products struct {
		Nodes []productDTO `json:"nodes"`
	} `json:"products"`
}

type productData struct {
	Product *productDTO `json:"product"`
}

type productUpdateData struct {
	ProductUpdate struct {
		Product    *struct{ ID string } `json:"product"`
		UserErrors []userError          `json:"userErrors"`
	} `json:"productUpdate"`
}

type variantsBulkUpdateData struct {
	ProductVariantsBulkUpdate struct {
		UserErrors []userError `json:"userErrors"`
	} `json:"productVariantsBulkUpdate"`
}

type restVariantPayload struct {
	Variant restVariant `json:"variant"`
}

type restVariant struct {
	ID  int64  `json:"id"`
	SKU string `json:"sku"`
}

type restErrorBody struct {
	Errors any `json:"errors"`
}
