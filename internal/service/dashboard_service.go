package service

import (
	"context"
	"time"

	"github.com/pedroluizchagas/thv/internal/dto"
	"github.com/pedroluizchagas/thv/internal/model"
	"github.com/pedroluizchagas/thv/internal/repository"
)

const recentQuotesLimit = 5

type DashboardService interface {
	Summary(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	productRepo     repository.ProductRepository
	quoteRepo       repository.QuoteRepository
	saleRepo        repository.SaleRepository
	transactionRepo repository.TransactionRepository
	now             func() time.Time
}

func NewDashboardService(
	productRepo repository.ProductRepository,
	quoteRepo repository.QuoteRepository,
	saleRepo repository.SaleRepository,
	transactionRepo repository.TransactionRepository,
) DashboardService {
	return &dashboardService{
		productRepo:     productRepo,
		quoteRepo:       quoteRepo,
		saleRepo:        saleRepo,
		transactionRepo: transactionRepo,
		now:             time.Now,
	}
}

// Summary assembles the back-office landing page cards in one call. Each
// aggregate is read independently; there is no cross-query consistency
// requirement for a status panel.
func (s *dashboardService) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	resp := &dto.DashboardResponse{
		RecentQuotes: []dto.QuoteResponse{},
	}

	pending, err := s.quoteRepo.CountByStatus(ctx, model.QuoteStatusPending)
	if err != nil {
		return nil, err
	}
	resp.PendingQuotes = pending

	totalProducts, err := s.productRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	resp.TotalProducts = totalProducts

	lowStock, err := s.productRepo.CountLowStock(ctx)
	if err != nil {
		return nil, err
	}
	resp.LowStockCount = lowStock

	revenue, _, err := s.saleRepo.SumCompletedTotalByDate(ctx, s.now())
	if err != nil {
		return nil, err
	}
	resp.TodayRevenue = revenue

	today := s.now().Format("2006-01-02")
	income, expense, err := s.transactionRepo.Summarize(ctx, today, today)
	if err != nil {
		return nil, err
	}
	resp.TodayIncome = income
	resp.TodayExpense = expense

	recent, err := s.quoteRepo.ListRecent(ctx, recentQuotesLimit)
	if err != nil {
		return nil, err
	}
	for i := range recent {
		resp.RecentQuotes = append(resp.RecentQuotes, *quoteSummary(&recent[i]))
	}
	return resp, nil
}

// quoteSummary is the dashboard projection: no outbound deep links.
func quoteSummary(q *model.QuoteRequest) *dto.QuoteResponse {
	resp := &dto.QuoteResponse{
		ID:          q.ID.String(),
		Name:        q.Name,
		Email:       q.Email,
		Phone:       q.Phone,
		Message:     q.Message,
		ProductName: q.ProductName,
		Status:      q.Status,
		Notes:       q.Notes,
		CreatedAt:   q.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if q.ProductID != nil {
		pid := q.ProductID.String()
		resp.ProductID = &pid
	}
	return resp
}
