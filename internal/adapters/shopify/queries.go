package shopify

const productFields = `
	id
	title
	description
	productType
	vendor
	status
	tags
	priceRangeV2 {
		minVariantPrice { amount currencyCode }
		maxVariantPrice { amount currencyCode }
	}`

// variantFields страница вариантов; платформа отдает не больше 250 за запрос
const variantFields = `
			nodes {
				id
				title
				sku
				inventoryItem {
					sku
					measurement { weight { value unit } }
				}
			}
			pageInfo { hasNextPage endCursor }`

const searchProductsQuery = `query SearchProducts($first: Int!, $query: String) {
	products(first: $first, query: $query) {
		nodes {` + productFields + `
		}
	}
}`

const getProductQuery = `query GetProduct($id: ID!) {
	product(id: $id) {` + productFields + `
		variants(first: 250) {` + variantFields + `
		}
	}
}`

const productVariantsQuery = `query ProductVariants($id: ID!, $after: String!) {
	product(id: $id) {
		variants(first: 250, after: $after) {` + variantFields + `
		}
	}
}`

const productUpdateMutation = `mutation ProductUpdate($input: ProductInput!) {
	productUpdate(input: $input) {
		product { id }
		userErrors { field message }
	}
}`

const variantsBulkUpdateMutation = `mutation VariantsBulkUpdate($productId: ID!, $variants: [ProductVariantsBulkInput!]!, $allowPartialUpdates: Boolean) {
	productVariantsBulkUpdate(productId: $productId, variants: $variants, allowPartialUpdates: $allowPartialUpdates) {
		productVariants { id }
		userErrors { field message }
	}
}`
