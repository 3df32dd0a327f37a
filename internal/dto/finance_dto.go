package dto

import "github.com/shopspring/decimal"

// CreateTransactionRequest is a manual ledger entry. Category must belong to
// the closed list for the chosen type (validated in the service, where the
// lists live).
type CreateTransactionRequest struct {
	Type            string          `json:"type"           validate:"required,oneof=income expense"`
	Category        string          `json:"category"       validate:"required"`
	Description     string          `json:"description"    validate:"required"`
	Amount          decimal.Decimal `json:"amount"         validate:"required"`
	PaymentMethod   string          `json:"payment_method" validate:"required,oneof=cash credit debit pix transfer boleto"`
	TransactionDate string          `json:"transaction_date" validate:"omitempty,datetime=2006-01-02"`
}

// TransactionFilter is bound from the query string of GET /v1/transactions.
type TransactionFilter struct {
	Period string `form:"period,default=month"` // today | week | month | year | all
	Type   string `form:"type"`                 // income | expense | all
	Search string `form:"search"`
	Page   int    `form:"page,default=1"    validate:"min=1"`
	Limit  int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type TransactionResponse struct {
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   *string         `json:"payment_method"`
	ReferenceType   *string         `json:"reference_type"`
	ReferenceID     *string         `json:"reference_id"`
	TransactionDate string          `json:"transaction_date"`
	CreatedAt       string          `json:"created_at"`
}

// FinanceSummary aggregates the filtered period: Σ income, Σ expense, balance.
type FinanceSummary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

type TransactionListResponse struct {
	Data    []TransactionResponse `json:"data"`
	Summary FinanceSummary        `json:"summary"`
	Total   int64                 `json:"total"`
	Page    int                   `json:"page"`
	Limit   int                   `json:"limit"`
}
