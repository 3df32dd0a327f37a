package repository

import (
	"context"

	"github.com/pedroluizchagas/thv/internal/dto"
	"github.com/pedroluizchagas/thv/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(ctx context.Context, t *model.FinancialTransaction) error
	CreateTx(tx *gorm.DB, t *model.FinancialTransaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.FinancialTransaction, error)
	// List and Summarize take pre-resolved date bounds; empty strings mean
	// no bound on that side. Dates compare inclusively as YYYY-MM-DD.
	List(ctx context.Context, filter dto.TransactionFilter, from, to string) ([]model.FinancialTransaction, int64, error)
	Summarize(ctx context.Context, from, to string) (income, expense decimal.Decimal, err error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type transactionRepo struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) TransactionRepository { return &transactionRepo{db: db} }

func (r *transactionRepo) Create(ctx context.Context, t *model.FinancialTransaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *transactionRepo) CreateTx(tx *gorm.DB, t *model.FinancialTransaction) error {
	return tx.Create(t).Error
}

func (r *transactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.FinancialTransaction, error) {
	var t model.FinancialTransaction
	err := r.db.WithContext(ctx).First(&t, id).Error
	return &t, err
}

func (r *transactionRepo) List(ctx context.Context, filter dto.TransactionFilter, from, to string) ([]model.FinancialTransaction, int64, error) {
	var entries []model.FinancialTransaction
	var total int64

	q := r.db.WithContext(ctx).Model(&model.FinancialTransaction{})
	q = applyDateBounds(q, from, to)

	if filter.Type == "income" || filter.Type == "expense" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		q = q.Where("description ILIKE ? OR category ILIKE ?", term, term)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("transaction_date DESC, created_at DESC").
		Limit(filter.Limit).Offset(offset).Find(&entries).Error
	return entries, total, err
}

// Summarize totals income and expense over the period regardless of the
// type/search filters, so the header cards always show the whole period.
func (r *transactionRepo) Summarize(ctx context.Context, from, to string) (decimal.Decimal, decimal.Decimal, error) {
	var rows []struct {
		Type  string
		Total decimal.Decimal
	}
	q := r.db.WithContext(ctx).Model(&model.FinancialTransaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Group("type")
	q = applyDateBounds(q, from, to)

	if err := q.Scan(&rows).Error; err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	income, expense := decimal.Zero, decimal.Zero
	for _, row := range rows {
		switch row.Type {
		case "income":
			income = row.Total
		case "expense":
			expense = row.Total
		}
	}
	return income, expense, nil
}

func (r *transactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.FinancialTransaction{}, id).Error
}

func applyDateBounds(q *gorm.DB, from, to string) *gorm.DB {
	if from != "" {
		q = q.Where("transaction_date >= ?", from)
	}
	if to != "" {
		q = q.Where("transaction_date <= ?", to)
	}
	return q
}
