// Package docs описание HTTP API для swagger UI
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "SessionToken": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "security": [{"SessionToken": []}],
    "paths": {
        "/api/v1/products/preview": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Предпросмотр товаров",
                "parameters": [
                    {"type": "string", "name": "field", "in": "formData", "required": true,
                     "enum": ["title", "description", "productId", "collection", "price"]},
                    {"type": "string", "name": "condition", "in": "formData", "required": true,
                     "enum": ["is", "contains", "doesNotContain", "startsWith", "endsWith", "empty", "greaterThan", "lessThan"]},
                    {"type": "string", "name": "value", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "502": {"description": "Bad Gateway"}
                }
            }
        },
        "/api/v1/products/bulk": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Массовая правка по actionType",
                "parameters": [
                    {"type": "string", "name": "actionType", "in": "formData", "required": true,
                     "enum": ["filterProducts", "updateTitles", "updateStatus", "updateProductType", "updateTags", "updateSkus", "updateWeights"]}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/api/v1/products/bulk/title": {
            "post": {
                "tags": ["products"],
                "summary": "Массовая правка названий",
                "parameters": [
                    {"type": "string", "name": "productIds", "in": "formData", "required": true},
                    {"type": "string", "name": "op", "in": "formData", "required": true,
                     "enum": ["add_text_start", "add_text_end", "remove_text", "find_replace", "replace", "capitalize", "truncate"]},
                    {"type": "string", "name": "text", "in": "formData"},
                    {"type": "string", "name": "find", "in": "formData"},
                    {"type": "string", "name": "replace", "in": "formData"},
                    {"type": "string", "name": "value", "in": "formData"},
                    {"type": "string", "name": "caseType", "in": "formData", "enum": ["title", "uppercase", "lowercase", "first_letter"]},
                    {"type": "integer", "name": "length", "in": "formData"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/api/v1/products/bulk/status": {
            "post": {
                "tags": ["products"],
                "summary": "Массовая смена статуса",
                "parameters": [
                    {"type": "string", "name": "productIds", "in": "formData", "required": true},
                    {"type": "string", "name": "status", "in": "formData", "required": true, "enum": ["ACTIVE", "DRAFT", "ARCHIVED"]}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/products/bulk/product-type": {
            "post": {
                "tags": ["products"],
                "summary": "Массовая правка типа товара",
                "parameters": [
                    {"type": "string", "name": "productIds", "in": "formData", "required": true},
                    {"type": "string", "name": "op", "in": "formData", "required": true, "enum": ["replace", "find_replace", "clear"]},
                    {"type": "string", "name": "value", "in": "formData"},
                    {"type": "string", "name": "find", "in": "formData"},
                    {"type": "string", "name": "replace", "in": "formData"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/products/bulk/tags": {
            "post": {
                "tags": ["products"],
                "summary": "Массовая правка тегов",
                "parameters": [
                    {"type": "string", "name": "productIds", "in": "formData", "required": true},
                    {"type": "string", "name": "op", "in": "formData", "required": true, "enum": ["add_tags", "remove_tags", "replace_tags", "find_replace"]},
                    {"type": "string", "name": "tags", "in": "formData"},
                    {"type": "string", "name": "tagsToRemove", "in": "formData"},
                    {"type": "string", "name": "find", "in": "formData"},
                    {"type": "string", "name": "replace", "in": "formData"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/products/bulk/sku": {
            "post": {
                "tags": ["products"],
                "summary": "Массовая правка артикулов",
                "parameters": [
                    {"type": "string", "name": "productIds", "in": "formData", "required": true},
                    {"type": "string", "name": "op", "in": "formData", "required": true, "enum": ["replace", "find_replace", "add_prefix", "add_suffix"]},
                    {"type": "string", "name": "value", "in": "formData"},
                    {"type": "string", "name": "find", "in": "formData"},
                    {"type": "string", "name": "replace", "in": "formData"},
                    {"type": "string", "name": "prefix", "in": "formData"},
                    {"type": "string", "name": "suffix", "in": "formData"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/products/bulk/weight": {
            "post": {
                "tags": ["products"],
                "summary": "Массовая правка веса",
                "parameters": [
                    {"type": "string", "name": "productIds", "in": "formData", "required": true},
                    {"type": "string", "name": "op", "in": "formData", "required": true, "enum": ["set", "set_unit", "convert_unit"]},
                    {"type": "number", "name": "weight", "in": "formData"},
                    {"type": "string", "name": "unit", "in": "formData", "enum": ["g", "kg", "lb", "oz"]}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/taxonomy/tree": {
            "get": {"tags": ["taxonomy"], "summary": "Дерево категорий", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/taxonomy/options": {
            "get": {
                "tags": ["taxonomy"],
                "summary": "Поиск категорий",
                "parameters": [
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/audit/batches": {
            "get": {
                "tags": ["audit"],
                "summary": "Журнал массовых правок",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/v1/audit/batches/{id}": {
            "get": {
                "tags": ["audit"],
                "summary": "Пакет массовой правки",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        }
    }
}`

// SwaggerInfo метаданные, которые можно переопределить при старте
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Catalog Admin API",
	Description:      "Фильтрация каталога магазина и массовые правки товаров",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
