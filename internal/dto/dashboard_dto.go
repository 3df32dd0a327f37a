package dto

import "github.com/shopspring/decimal"

// DashboardResponse backs the sistema landing page cards.
type DashboardResponse struct {
	PendingQuotes int64           `json:"pending_quotes"`
	TotalProducts int64           `json:"total_products"`
	LowStockCount int64           `json:"low_stock_count"`
	TodayRevenue  decimal.Decimal `json:"today_revenue"`
	TodayIncome   decimal.Decimal `json:"today_income"`
	TodayExpense  decimal.Decimal `json:"today_expense"`
	RecentQuotes  []QuoteResponse `json:"recent_quotes"`
}
