package dto

import "github.com/shopspring/decimal"

// CatalogFilter is bound from the public catalog query string.
type CatalogFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"` // category slug
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=24" validate:"min=1,max=100"`
}

// CatalogProductResponse is the public projection of a product: no cost
// price, no stock quantity — only an in-stock flag.
type CatalogProductResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Category    *string         `json:"category,omitempty"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	Unit        string          `json:"unit"`
	Brand       *string         `json:"brand"`
	Application *string         `json:"application"`
	Photo1URL   *string         `json:"photo1_url"`
	Photo2URL   *string         `json:"photo2_url"`
	Photo3URL   *string         `json:"photo3_url"`
	InStock     bool            `json:"in_stock"`
}

type CatalogListResponse struct {
	Data  []CatalogProductResponse `json:"data"`
	Total int64                    `json:"total"`
	Page  int                      `json:"page"`
	Limit int                      `json:"limit"`
}
