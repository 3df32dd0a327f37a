package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pedroluizchagas/thv/internal/dto"
	"github.com/pedroluizchagas/thv/internal/model"
	"github.com/pedroluizchagas/thv/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseService interface {
	RegisterPurchase(ctx context.Context, userID uuid.UUID, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error)
	ListPurchases(ctx context.Context, filter dto.PurchaseFilter) (*dto.PurchaseListResponse, error)
	GetPurchase(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error)
}

type purchaseService struct {
	repo            repository.PurchaseRepository
	productRepo     repository.ProductRepository
	movementRepo    repository.MovementRepository
	transactionRepo repository.TransactionRepository
}

func NewPurchaseService(
	repo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	transactionRepo repository.TransactionRepository,
) PurchaseService {
	return &purchaseService{
		repo:            repo,
		productRepo:     productRepo,
		movementRepo:    movementRepo,
		transactionRepo: transactionRepo,
	}
}

// RegisterPurchase mirrors checkout in the opposite direction: one
// transaction creates the purchase with its items, increments stock per
// line with "in" movements, and appends an expense ledger entry.
func (s *purchaseService) RegisterPurchase(ctx context.Context, userID uuid.UUID, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	var supplierID *uuid.UUID
	if req.SupplierID != nil && *req.SupplierID != "" {
		sid, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			return nil, fmt.Errorf("supplier_id inválido: %w", err)
		}
		supplierID = &sid
	}

	type resolvedItem struct {
		productID uuid.UUID
		name      string
		quantity  int
		unitPrice decimal.Decimal
		lineTotal decimal.Decimal
	}

	var resolved []resolvedItem
	subtotal := decimal.Zero
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product_id inválido: %w", err)
		}
		if !item.UnitPrice.IsPositive() {
			return nil, errors.New("o preço unitário deve ser maior que zero")
		}
		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("produto %s não encontrado", item.ProductID)
		}
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		resolved = append(resolved, resolvedItem{
			productID: p.ID,
			name:      p.Name,
			quantity:  item.Quantity,
			unitPrice: item.UnitPrice,
			lineTotal: lineTotal,
		})
	}

	var purchase model.Purchase
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		number, err := s.repo.NextPurchaseNumber(tx)
		if err != nil {
			return err
		}

		purchase = model.Purchase{
			PurchaseNumber: number,
			SupplierID:     supplierID,
			UserID:         userID,
			Subtotal:       subtotal,
			Total:          subtotal,
			Status:         "completed",
			InvoiceNumber:  req.InvoiceNumber,
			Notes:          req.Notes,
		}
		for _, r := range resolved {
			purchase.Items = append(purchase.Items, model.PurchaseItem{
				ProductID:   r.productID,
				ProductName: r.name,
				Quantity:    r.quantity,
				UnitPrice:   r.unitPrice,
				TotalPrice:  r.lineTotal,
			})
		}
		if err := s.repo.CreateTx(tx, &purchase); err != nil {
			return err
		}

		purchaseRef := model.RefPurchase
		for _, r := range resolved {
			if err := s.productRepo.AdjustStockTx(tx, r.productID, r.quantity); err != nil {
				return fmt.Errorf("erro ao entrar estoque de %s: %w", r.name, err)
			}
			notes := fmt.Sprintf("Compra #%d", number)
			mov := &model.StockMovement{
				ProductID:     r.productID,
				Type:          model.MovementIn,
				Quantity:      r.quantity,
				ReferenceType: &purchaseRef,
				ReferenceID:   &purchase.ID,
				Notes:         &notes,
				UserID:        &purchase.UserID,
			}
			if err := s.movementRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}

		entry := &model.FinancialTransaction{
			Type:            "expense",
			Category:        "Compra",
			Description:     fmt.Sprintf("Compra #%d", number),
			Amount:          purchase.Total,
			ReferenceType:   &purchaseRef,
			ReferenceID:     &purchase.ID,
			UserID:          &purchase.UserID,
			TransactionDate: todayDate(),
		}
		return s.transactionRepo.CreateTx(tx, entry)
	})
	if txErr != nil {
		return nil, txErr
	}

	return purchaseToResponse(&purchase), nil
}

func (s *purchaseService) ListPurchases(ctx context.Context, filter dto.PurchaseFilter) (*dto.PurchaseListResponse, error) {
	purchases, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.PurchaseListResponse{
		Data:  make([]dto.PurchaseResponse, 0, len(purchases)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range purchases {
		resp.Data = append(resp.Data, *purchaseToResponse(&purchases[i]))
	}
	return resp, nil
}

func (s *purchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error) {
	purchase, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("compra não encontrada")
	}
	return purchaseToResponse(purchase), nil
}

func purchaseToResponse(p *model.Purchase) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:             p.ID.String(),
		PurchaseNumber: p.PurchaseNumber,
		Subtotal:       p.Subtotal,
		Total:          p.Total,
		Status:         p.Status,
		InvoiceNumber:  p.InvoiceNumber,
		Items:          make([]dto.PurchaseItemResponse, 0, len(p.Items)),
		CreatedAt:      p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if p.SupplierID != nil {
		sid := p.SupplierID.String()
		resp.SupplierID = &sid
	}
	if p.Supplier != nil {
		name := p.Supplier.Name
		resp.SupplierName = &name
	}
	for _, item := range p.Items {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
	return resp
}
