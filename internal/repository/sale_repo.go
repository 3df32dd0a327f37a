package repository

import (
	"context"
	"time"

	"github.com/pedroluizchagas/thv/internal/dto"
	"github.com/pedroluizchagas/thv/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleRepository interface {
	// CreateTx persists the sale header and its items within the caller's
	// transaction. Checkout never writes outside a transaction.
	CreateTx(tx *gorm.DB, s *model.Sale) error
	NextSaleNumber(tx *gorm.DB) (int, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error
	SumCompletedTotalByDate(ctx context.Context, date time.Time) (decimal.Decimal, int64, error)
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

// NextSaleNumber takes the next value from a dedicated sequence, so numbers
// are gap-tolerant but never duplicated under concurrent checkouts.
func (r *saleRepo) NextSaleNumber(tx *gorm.DB) (int, error) {
	var n int
	err := tx.Raw("SELECT nextval('sales_sale_number_seq')").Scan(&n).Error
	return n, err
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Customer").
		Preload("User").
		First(&s, id).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Sale{})
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Date != "" {
		q = q.Where("created_at::date = ?", filter.Date)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").Preload("Customer").
		Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error {
	return tx.Model(&model.Sale{}).Where("id = ?", id).Update("status", status).Error
}

// SumCompletedTotalByDate feeds the dashboard's "vendas do dia" card.
func (r *saleRepo) SumCompletedTotalByDate(ctx context.Context, date time.Time) (decimal.Decimal, int64, error) {
	var row struct {
		Total decimal.Decimal
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("COALESCE(SUM(total), 0) AS total, COUNT(*) AS count").
		Where("status = ? AND created_at::date = ?", "completed", date.Format("2006-01-02")).
		Scan(&row).Error
	return row.Total, row.Count, err
}

func (r *saleRepo) DB() *gorm.DB { return r.db }
