package dto

import "github.com/shopspring/decimal"

type PurchaseItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity"   validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required"`
}

type CreatePurchaseRequest struct {
	SupplierID    *string               `json:"supplier_id" validate:"omitempty,uuid"`
	Items         []PurchaseItemRequest `json:"items"       validate:"required,min=1,dive"`
	InvoiceNumber *string               `json:"invoice_number"`
	Notes         *string               `json:"notes"`
}

type PurchaseItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type PurchaseResponse struct {
	ID             string                 `json:"id"`
	PurchaseNumber int                    `json:"purchase_number"`
	SupplierID     *string                `json:"supplier_id"`
	SupplierName   *string                `json:"supplier_name,omitempty"`
	Subtotal       decimal.Decimal        `json:"subtotal"`
	Total          decimal.Decimal        `json:"total"`
	Status         string                 `json:"status"`
	InvoiceNumber  *string                `json:"invoice_number"`
	Items          []PurchaseItemResponse `json:"items"`
	CreatedAt      string                 `json:"created_at"`
}

type PurchaseFilter struct {
	Page  int `form:"page,default=1"   validate:"min=1"`
	Limit int `form:"limit,default=50" validate:"min=1,max=200"`
}

type PurchaseListResponse struct {
	Data  []PurchaseResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
