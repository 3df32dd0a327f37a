package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pedroluizchagas/thv/internal/dto"
	"github.com/pedroluizchagas/thv/internal/model"
	"github.com/pedroluizchagas/thv/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockService interface {
	AdjustStock(ctx context.Context, productID uuid.UUID, userID uuid.UUID, req dto.AdjustStockRequest) (*dto.ProductResponse, error)
	ListMovements(ctx context.Context, filter dto.MovementFilter) ([]dto.MovementResponse, error)
}

type stockService struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
}

func NewStockService(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) StockService {
	return &stockService{productRepo: productRepo, movementRepo: movementRepo}
}

// AdjustStock applies a signed delta as an atomic in-place increment and
// records an "adjustment" movement, both in one transaction. Negative
// resulting stock is allowed: adjustments are trusted manual corrections.
func (s *stockService) AdjustStock(ctx context.Context, productID uuid.UUID, userID uuid.UUID, req dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	if req.Quantity == 0 {
		return nil, errors.New("a quantidade do ajuste não pode ser zero")
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("produto %s não encontrado", productID)
	}

	adjRef := "adjustment"
	txErr := runTx(ctx, s.productRepo.DB(), func(tx *gorm.DB) error {
		if err := s.productRepo.AdjustStockTx(tx, productID, req.Quantity); err != nil {
			return err
		}
		mov := &model.StockMovement{
			ProductID:     productID,
			Type:          model.MovementAdjustment,
			Quantity:      req.Quantity,
			ReferenceType: &adjRef,
			Notes:         req.Notes,
			UserID:        &userID,
		}
		return s.movementRepo.CreateTx(tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	p, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *stockService) ListMovements(ctx context.Context, filter dto.MovementFilter) ([]dto.MovementResponse, error) {
	movements, err := s.movementRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		resp := dto.MovementResponse{
			ID:            m.ID.String(),
			ProductID:     m.ProductID.String(),
			Type:          m.Type,
			Quantity:      m.Quantity,
			ReferenceType: m.ReferenceType,
			Notes:         m.Notes,
			CreatedAt:     m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if m.Product != nil {
			resp.ProductName = m.Product.Name
			resp.ProductCode = m.Product.Code
		}
		out = append(out, resp)
	}
	return out, nil
}
