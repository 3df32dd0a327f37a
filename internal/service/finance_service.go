package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pedroluizchagas/thv/internal/dto"
	"github.com/pedroluizchagas/thv/internal/model"
	"github.com/pedroluizchagas/thv/internal/repository"

	"github.com/google/uuid"
)

// Closed category lists per transaction type. A manual entry whose category
// is not in the list for its type is rejected.
var (
	incomeCategories = []string{
		"Venda", "Serviço", "Outros Recebimentos",
	}
	expenseCategories = []string{
		"Compra", "Fornecedor", "Aluguel", "Energia", "Água", "Internet",
		"Telefone", "Salários", "Impostos", "Manutenção", "Combustível",
		"Material de Escritório", "Marketing", "Outros Gastos",
	}
)

type FinanceService interface {
	CreateTransaction(ctx context.Context, userID uuid.UUID, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error)
	ListTransactions(ctx context.Context, filter dto.TransactionFilter) (*dto.TransactionListResponse, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	Categories() map[string][]string
}

type financeService struct {
	repo repository.TransactionRepository
	now  func() time.Time
}

func NewFinanceService(repo repository.TransactionRepository) FinanceService {
	return &financeService{repo: repo, now: time.Now}
}

func (s *financeService) CreateTransaction(ctx context.Context, userID uuid.UUID, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if !categoryAllowed(req.Type, req.Category) {
		return nil, fmt.Errorf("categoria %q inválida para o tipo %s", req.Category, req.Type)
	}
	if !req.Amount.IsPositive() {
		return nil, errors.New("o valor deve ser maior que zero")
	}

	date := req.TransactionDate
	if date == "" {
		date = s.now().Format("2006-01-02")
	}

	ref := model.RefManual
	payment := req.PaymentMethod
	entry := &model.FinancialTransaction{
		Type:            req.Type,
		Category:        req.Category,
		Description:     req.Description,
		Amount:          req.Amount,
		PaymentMethod:   &payment,
		ReferenceType:   &ref,
		UserID:          &userID,
		TransactionDate: date,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return transactionToResponse(entry), nil
}

func (s *financeService) ListTransactions(ctx context.Context, filter dto.TransactionFilter) (*dto.TransactionListResponse, error) {
	from, to := periodBounds(filter.Period, s.now())

	entries, total, err := s.repo.List(ctx, filter, from, to)
	if err != nil {
		return nil, err
	}
	income, expense, err := s.repo.Summarize(ctx, from, to)
	if err != nil {
		return nil, err
	}

	resp := &dto.TransactionListResponse{
		Data: make([]dto.TransactionResponse, 0, len(entries)),
		Summary: dto.FinanceSummary{
			Income:  income,
			Expense: expense,
			Balance: income.Sub(expense),
		},
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range entries {
		resp.Data = append(resp.Data, *transactionToResponse(&entries[i]))
	}
	return resp, nil
}

// DeleteTransaction hard-deletes a MANUAL entry. Entries referencing a sale
// or purchase belong to those flows and are refused here; cancelling the
// sale is the only way to compensate them.
func (s *financeService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("lançamento não encontrado")
	}
	if entry.ReferenceType != nil && *entry.ReferenceType != model.RefManual {
		return errors.New("lançamentos vinculados a vendas ou compras não podem ser excluídos")
	}
	return s.repo.Delete(ctx, id)
}

func (s *financeService) Categories() map[string][]string {
	return map[string][]string{
		"income":  incomeCategories,
		"expense": expenseCategories,
	}
}

func categoryAllowed(txType, category string) bool {
	var list []string
	switch txType {
	case "income":
		list = incomeCategories
	case "expense":
		list = expenseCategories
	default:
		return false
	}
	for _, c := range list {
		if c == category {
			return true
		}
	}
	return false
}

// periodBounds resolves a named period into inclusive YYYY-MM-DD bounds.
// "week" is a rolling last-7-days window; week/month/year have no upper
// bound, so future-dated manual entries still show. "all" returns open
// bounds.
func periodBounds(period string, now time.Time) (from, to string) {
	today := now.Format("2006-01-02")
	switch period {
	case "today":
		return today, today
	case "week":
		start := now.AddDate(0, 0, -7)
		return start.Format("2006-01-02"), ""
	case "month":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start.Format("2006-01-02"), ""
	case "year":
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return start.Format("2006-01-02"), ""
	default: // "all"
		return "", ""
	}
}

func todayDate() string { return time.Now().Format("2006-01-02") }

func transactionToResponse(t *model.FinancialTransaction) *dto.TransactionResponse {
	resp := &dto.TransactionResponse{
		ID:              t.ID.String(),
		Type:            t.Type,
		Category:        t.Category,
		Description:     t.Description,
		Amount:          t.Amount,
		PaymentMethod:   t.PaymentMethod,
		ReferenceType:   t.ReferenceType,
		TransactionDate: t.TransactionDate,
		CreatedAt:       t.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if t.ReferenceID != nil {
		rid := t.ReferenceID.String()
		resp.ReferenceID = &rid
	}
	return resp
}
