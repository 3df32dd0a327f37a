package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pedroluizchagas/thv/internal/cart"
	"github.com/pedroluizchagas/thv/internal/dto"
	"github.com/pedroluizchagas/thv/internal/repository"

	"github.com/google/uuid"
)

// ErrCartEmpty is returned by checkout paths when the session cart holds no
// lines.
var ErrCartEmpty = errors.New("O carrinho está vazio")

// CartStore persists one cart per authenticated user. The Redis
// implementation lives in infra; tests plug an in-memory map.
type CartStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*cart.Cart, error)
	Save(ctx context.Context, userID uuid.UUID, c *cart.Cart) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*dto.CartResponse, error)
	AddItem(ctx context.Context, userID uuid.UUID, req dto.AddCartItemRequest) (*dto.CartResponse, error)
	ChangeItem(ctx context.Context, userID uuid.UUID, req dto.ChangeCartItemRequest) (*dto.CartResponse, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*dto.CartResponse, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	store       CartStore
	productRepo repository.ProductRepository
}

func NewCartService(store CartStore, productRepo repository.ProductRepository) CartService {
	return &cartService{store: store, productRepo: productRepo}
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*dto.CartResponse, error) {
	c, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return cartToResponse(c), nil
}

// AddItem looks the product up once and freezes its name, price and stock
// into the cart line. Later product edits do not touch lines already added.
func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req dto.AddCartItemRequest) (*dto.CartResponse, error) {
	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product_id inválido: %w", err)
	}

	c, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if c.Has(pid) {
		// Existing line: increment against the frozen snapshot, no fresh
		// lookup. Hitting the snapshot ceiling is a silent no-op.
		if c.Increment(pid) {
			if err := s.store.Save(ctx, userID, c); err != nil {
				return nil, err
			}
		}
		return cartToResponse(c), nil
	}

	// New line: resolve the product and freeze its current state.
	p, err := s.productRepo.FindByID(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("produto %s não encontrado", req.ProductID)
	}
	if !p.IsActive {
		return nil, fmt.Errorf("produto %s está inativo e não pode ser vendido", p.Name)
	}
	if p.StockQuantity < 1 {
		return nil, fmt.Errorf("produto %s sem estoque disponível", p.Name)
	}

	c.Add(p.ID, p.Code, p.Name, p.SalePrice, p.StockQuantity)
	if err := s.store.Save(ctx, userID, c); err != nil {
		return nil, err
	}
	return cartToResponse(c), nil
}

func (s *cartService) ChangeItem(ctx context.Context, userID uuid.UUID, req dto.ChangeCartItemRequest) (*dto.CartResponse, error) {
	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product_id inválido: %w", err)
	}

	c, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.ChangeQuantity(pid, req.Delta)
	if err := s.store.Save(ctx, userID, c); err != nil {
		return nil, err
	}
	return cartToResponse(c), nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*dto.CartResponse, error) {
	c, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.Remove(productID)
	if err := s.store.Save(ctx, userID, c); err != nil {
		return nil, err
	}
	return cartToResponse(c), nil
}

func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return s.store.Clear(ctx, userID)
}

func cartToResponse(c *cart.Cart) *dto.CartResponse {
	resp := &dto.CartResponse{
		Items:    make([]dto.CartItemResponse, 0, len(c.Items)),
		Subtotal: c.Subtotal(),
	}
	for _, it := range c.Items {
		resp.Items = append(resp.Items, dto.CartItemResponse{
			ProductID: it.ProductID.String(),
			Code:      it.Code,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal(),
		})
	}
	return resp
}
