package dto

// AdjustStockRequest applies a signed delta to a product's stock. Positive =
// stock in, negative = stock out; zero is rejected as a no-op.
type AdjustStockRequest struct {
	Quantity int     `json:"quantity" validate:"required"`
	Notes    *string `json:"notes"`
}

type MovementResponse struct {
	ID            string  `json:"id"`
	ProductID     string  `json:"product_id"`
	ProductName   string  `json:"product_name"`
	ProductCode   string  `json:"product_code"`
	Type          string  `json:"type"`
	Quantity      int     `json:"quantity"`
	ReferenceType *string `json:"reference_type"`
	Notes         *string `json:"notes"`
	CreatedAt     string  `json:"created_at"`
}

type MovementFilter struct {
	ProductID string `form:"product_id" validate:"omitempty,uuid"`
	Limit     int    `form:"limit,default=100" validate:"min=1,max=500"`
}
