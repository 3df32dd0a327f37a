package dto

import "github.com/shopspring/decimal"

// ProductFilter is bound from the query string of GET /v1/products.
type ProductFilter struct {
	Search     string `form:"search"`      // matches name, code, brand or application
	CategoryID string `form:"category_id"`
	Stock      string `form:"stock"`  // all | low | out | ok
	Active     string `form:"active"` // "false" = inactive, "all" = everything, default active
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CreateProductRequest struct {
	Code          string          `json:"code"           validate:"required"`
	Name          string          `json:"name"           validate:"required,min=2"`
	Description   *string         `json:"description"`
	CategoryID    *string         `json:"category_id"    validate:"omitempty,uuid"`
	CostPrice     decimal.Decimal `json:"cost_price"     validate:"min=0"`
	SalePrice     decimal.Decimal `json:"sale_price"     validate:"required,gt=0"`
	StockQuantity int             `json:"stock_quantity" validate:"min=0"`
	MinStock      int             `json:"min_stock"      validate:"min=0"`
	Unit          string          `json:"unit"`
	Brand         *string         `json:"brand"`
	Application   *string         `json:"application"`
	IsActive      *bool           `json:"is_active"`
}

// UpdateProductRequest is a full-record overwrite — whatever the editing form
// carries wins, there is no partial-patch semantics.
type UpdateProductRequest = CreateProductRequest

type ProductResponse struct {
	ID            string            `json:"id"`
	Code          string            `json:"code"`
	Name          string            `json:"name"`
	Description   *string           `json:"description"`
	CategoryID    *string           `json:"category_id"`
	Category      *CategoryResponse `json:"category,omitempty"`
	CostPrice     decimal.Decimal   `json:"cost_price"`
	SalePrice     decimal.Decimal   `json:"sale_price"`
	StockQuantity int               `json:"stock_quantity"`
	MinStock      int               `json:"min_stock"`
	Unit          string            `json:"unit"`
	Brand         *string           `json:"brand"`
	Application   *string           `json:"application"`
	Photo1URL     *string           `json:"photo1_url"`
	Photo2URL     *string           `json:"photo2_url"`
	Photo3URL     *string           `json:"photo3_url"`
	IsActive      bool              `json:"is_active"`
	CreatedAt     string            `json:"created_at"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// PhotoUploadResponse is returned by POST /v1/products/{id}/photos.
type PhotoUploadResponse struct {
	Slot int    `json:"slot"`
	URL  string `json:"url"`
}
