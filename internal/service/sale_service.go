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

type SaleService interface {
	Checkout(ctx context.Context, userID uuid.UUID, req dto.CheckoutRequest) (*dto.SaleResponse, error)
	CancelSale(ctx context.Context, id uuid.UUID, userID uuid.UUID, reason string) error
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
	GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	// ReceiptData returns the full sale aggregate for PDF rendering.
	ReceiptData(ctx context.Context, id uuid.UUID) (*model.Sale, error)
}

type saleService struct {
	repo            repository.SaleRepository
	productRepo     repository.ProductRepository
	movementRepo    repository.MovementRepository
	transactionRepo repository.TransactionRepository
	cartStore       CartStore
}

func NewSaleService(
	repo repository.SaleRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	transactionRepo repository.TransactionRepository,
	cartStore CartStore,
) SaleService {
	return &saleService{
		repo:            repo,
		productRepo:     productRepo,
		movementRepo:    movementRepo,
		transactionRepo: transactionRepo,
		cartStore:       cartStore,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// Checkout commits the session cart as one atomic transaction:
//  1. sequential sale number
//  2. sale header + items, with name and price re-read at commit time
//  3. atomic stock decrement per line
//  4. one "out" stock movement per line
//  5. one income ledger entry for the sale total
//
// If any step fails the whole transaction rolls back and the cart is kept.
// Checkout is NOT idempotent: two calls with matching carts produce two sales.
func (s *saleService) Checkout(ctx context.Context, userID uuid.UUID, req dto.CheckoutRequest) (*dto.SaleResponse, error) {
	c, err := s.cartStore.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, ErrCartEmpty
	}

	var customerID *uuid.UUID
	if req.CustomerID != nil && *req.CustomerID != "" {
		cid, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("customer_id inválido: %w", err)
		}
		customerID = &cid
	}

	var sale model.Sale
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		saleNumber, err := s.repo.NextSaleNumber(tx)
		if err != nil {
			return err
		}

		// Re-read every product inside the transaction. The committed sale
		// snapshots the CURRENT name and price, not the values frozen in the
		// cart; the cart's stock snapshot plays no role here.
		subtotal := decimal.Zero
		var items []model.SaleItem
		for _, line := range c.Items {
			p, err := s.productRepo.FindByIDTx(tx, line.ProductID)
			if err != nil {
				return fmt.Errorf("produto %s não encontrado", line.ProductID)
			}
			lineTotal := p.SalePrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
			subtotal = subtotal.Add(lineTotal)
			items = append(items, model.SaleItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    line.Quantity,
				UnitPrice:   p.SalePrice,
				TotalPrice:  lineTotal,
			})
		}

		discount := req.Discount
		if discount.IsNegative() {
			discount = decimal.Zero
		}
		if discount.GreaterThan(subtotal) {
			discount = subtotal
		}

		sale = model.Sale{
			SaleNumber:    saleNumber,
			CustomerID:    customerID,
			UserID:        userID,
			Subtotal:      subtotal,
			Discount:      discount,
			Total:         subtotal.Sub(discount),
			PaymentMethod: req.PaymentMethod,
			Status:        "completed",
			Notes:         req.Notes,
			Items:         items,
		}
		if err := s.repo.CreateTx(tx, &sale); err != nil {
			return err
		}

		saleRef := model.RefSale
		for _, item := range sale.Items {
			if err := s.productRepo.AdjustStockTx(tx, item.ProductID, -item.Quantity); err != nil {
				return fmt.Errorf("erro ao baixar estoque de %s: %w", item.ProductName, err)
			}
			notes := fmt.Sprintf("Venda #%d", saleNumber)
			mov := &model.StockMovement{
				ProductID:     item.ProductID,
				Type:          model.MovementOut,
				Quantity:      -item.Quantity,
				ReferenceType: &saleRef,
				ReferenceID:   &sale.ID,
				Notes:         &notes,
				UserID:        &sale.UserID,
			}
			if err := s.movementRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}

		payment := sale.PaymentMethod
		entry := &model.FinancialTransaction{
			Type:            "income",
			Category:        "Venda",
			Description:     fmt.Sprintf("Venda #%d", saleNumber),
			Amount:          sale.Total,
			PaymentMethod:   &payment,
			ReferenceType:   &saleRef,
			ReferenceID:     &sale.ID,
			UserID:          &sale.UserID,
			TransactionDate: todayDate(),
		}
		return s.transactionRepo.CreateTx(tx, entry)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Commit succeeded — drop the cart. A failure here leaves a stale cart
	// behind, never an inconsistent sale.
	_ = s.cartStore.Clear(ctx, userID)

	return saleToResponse(&sale), nil
}

// CancelSale flips a completed sale to cancelled, restores the sold stock
// with "in" movements and appends a compensating expense ledger entry. The
// original sale rows are never deleted.
func (s *saleService) CancelSale(ctx context.Context, id uuid.UUID, userID uuid.UUID, reason string) error {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("venda não encontrada")
	}
	if sale.Status == "cancelled" {
		return errors.New("a venda já está cancelada")
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateStatusTx(tx, id, "cancelled"); err != nil {
			return err
		}

		saleRef := model.RefSale
		for _, item := range sale.Items {
			if err := s.productRepo.AdjustStockTx(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
			notes := fmt.Sprintf("Cancelamento da venda #%d: %s", sale.SaleNumber, reason)
			mov := &model.StockMovement{
				ProductID:     item.ProductID,
				Type:          model.MovementIn,
				Quantity:      item.Quantity,
				ReferenceType: &saleRef,
				ReferenceID:   &sale.ID,
				Notes:         &notes,
				UserID:        &userID,
			}
			if err := s.movementRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}

		entry := &model.FinancialTransaction{
			Type:            "expense",
			Category:        "Outros Gastos",
			Description:     fmt.Sprintf("Estorno da venda #%d: %s", sale.SaleNumber, reason),
			Amount:          sale.Total,
			ReferenceType:   &saleRef,
			ReferenceID:     &sale.ID,
			UserID:          &userID,
			TransactionDate: todayDate(),
		}
		return s.transactionRepo.CreateTx(tx, entry)
	})
}

func (s *saleService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.SaleListResponse{
		Data:  make([]dto.SaleResponse, 0, len(sales)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range sales {
		resp.Data = append(resp.Data, *saleToResponse(&sales[i]))
	}
	return resp, nil
}

func (s *saleService) GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("venda não encontrada")
	}
	return saleToResponse(sale), nil
}

func (s *saleService) ReceiptData(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("venda não encontrada")
	}
	return sale, nil
}

func saleToResponse(sale *model.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            sale.ID.String(),
		SaleNumber:    sale.SaleNumber,
		Subtotal:      sale.Subtotal,
		Discount:      sale.Discount,
		Total:         sale.Total,
		PaymentMethod: sale.PaymentMethod,
		Status:        sale.Status,
		Items:         make([]dto.SaleItemResponse, 0, len(sale.Items)),
		CreatedAt:     sale.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if sale.CustomerID != nil {
		cid := sale.CustomerID.String()
		resp.CustomerID = &cid
	}
	if sale.Customer != nil {
		name := sale.Customer.Name
		resp.CustomerName = &name
	}
	for _, item := range sale.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
	return resp
}
