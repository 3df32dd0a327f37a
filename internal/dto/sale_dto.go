package dto

import "github.com/shopspring/decimal"

// ─── Cart ────────────────────────────────────────────────────────────────────

type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

type ChangeCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Delta     int    `json:"delta"      validate:"required"`
}

type CartItemResponse struct {
	ProductID string          `json:"product_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type CartResponse struct {
	Items    []CartItemResponse `json:"items"`
	Subtotal decimal.Decimal    `json:"subtotal"`
}

// ─── Checkout ────────────────────────────────────────────────────────────────

type CheckoutRequest struct {
	CustomerID    *string         `json:"customer_id" validate:"omitempty,uuid"`
	Discount      decimal.Decimal `json:"discount"    validate:"min=0"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=cash credit debit pix transfer boleto"`
	Notes         *string         `json:"notes"`
}

type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type SaleResponse struct {
	ID            string             `json:"id"`
	SaleNumber    int                `json:"sale_number"`
	CustomerID    *string            `json:"customer_id"`
	CustomerName  *string            `json:"customer_name,omitempty"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Discount      decimal.Decimal    `json:"discount"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	Status        string             `json:"status"`
	Items         []SaleItemResponse `json:"items"`
	CreatedAt     string             `json:"created_at"`
}

// ─── History ─────────────────────────────────────────────────────────────────

type SaleFilter struct {
	Date   string `form:"date"`                     // YYYY-MM-DD; empty = all
	Status string `form:"status,default=completed"` // pending | completed | cancelled | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

type CancelSaleRequest struct {
	Reason string `json:"reason" validate:"required,min=5"`
}
