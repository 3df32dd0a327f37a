package repository

import (
	"context"

	"github.com/pedroluizchagas/thv/internal/dto"
	"github.com/pedroluizchagas/thv/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuoteRepository interface {
	Create(ctx context.Context, q *model.QuoteRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.QuoteRequest, error)
	List(ctx context.Context, filter dto.QuoteFilter) ([]model.QuoteRequest, int64, error)
	Update(ctx context.Context, q *model.QuoteRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, status string) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]model.QuoteRequest, error)
}

type quoteRepo struct{ db *gorm.DB }

func NewQuoteRepository(db *gorm.DB) QuoteRepository { return &quoteRepo{db: db} }

func (r *quoteRepo) Create(ctx context.Context, q *model.QuoteRequest) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *quoteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.QuoteRequest, error) {
	var q model.QuoteRequest
	err := r.db.WithContext(ctx).First(&q, id).Error
	return &q, err
}

func (r *quoteRepo) List(ctx context.Context, filter dto.QuoteFilter) ([]model.QuoteRequest, int64, error) {
	var quotes []model.QuoteRequest
	var total int64

	q := r.db.WithContext(ctx).Model(&model.QuoteRequest{})
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		q = q.Where("name ILIKE ? OR email ILIKE ? OR product_name ILIKE ?",
			term, term, term)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&quotes).Error
	return quotes, total, err
}

func (r *quoteRepo) Update(ctx context.Context, q *model.QuoteRequest) error {
	return r.db.WithContext(ctx).Save(q).Error
}

func (r *quoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.QuoteRequest{}, id).Error
}

func (r *quoteRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.QuoteRequest{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

func (r *quoteRepo) ListRecent(ctx context.Context, limit int) ([]model.QuoteRequest, error) {
	var quotes []model.QuoteRequest
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&quotes).Error
	return quotes, err
}
