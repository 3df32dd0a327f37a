package service

import (
	"context"
	"testing"

	"github.com/pedroluizchagas/thv/internal/dto"
	"github.com/pedroluizchagas/thv/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSaleSvc() (SaleService, *stubSaleRepo, *stubProductRepo, *stubMovementRepo, *stubTransactionRepo, *stubCartStore) {
	productRepo := newStubProductRepo()
	saleRepo := newStubSaleRepo()
	movementRepo := &stubMovementRepo{}
	transactionRepo := newStubTransactionRepo()
	store := newStubCartStore()

	svc := NewSaleService(saleRepo, productRepo, movementRepo, transactionRepo, store)
	return svc, saleRepo, productRepo, movementRepo, transactionRepo, store
}

func TestCheckout_CarrinhoVazio(t *testing.T) {
	svc, _, _, _, _, _ := buildSaleSvc()

	_, err := svc.Checkout(context.Background(), uuid.New(), dto.CheckoutRequest{
		PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestCheckout_Completo(t *testing.T) {
	svc, saleRepo, productRepo, movementRepo, transactionRepo, store := buildSaleSvc()
	p := seedProduct(productRepo, "MB-250", "Mangueira trançada 1/4", 45.90, 10)
	userID := uuid.New()

	c, _ := store.Get(context.Background(), userID)
	c.Add(p.ID, p.Code, p.Name, p.SalePrice, p.StockQuantity)
	c.ChangeQuantity(p.ID, 2) // quantity 3
	require.NoError(t, store.Save(context.Background(), userID, c))

	resp, err := svc.Checkout(context.Background(), userID, dto.CheckoutRequest{
		PaymentMethod: "pix",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.SaleNumber)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, "137.7", resp.Total.String()) // 45.90 × 3

	// Stock decremented
	assert.Equal(t, 7, productRepo.products[p.ID].StockQuantity)

	// One "out" movement with negative quantity
	require.Len(t, movementRepo.movements, 1)
	assert.Equal(t, model.MovementOut, movementRepo.movements[0].Type)
	assert.Equal(t, -3, movementRepo.movements[0].Quantity)

	// One income ledger entry referencing the sale
	require.Len(t, transactionRepo.entries, 1)
	for _, entry := range transactionRepo.entries {
		assert.Equal(t, "income", entry.Type)
		assert.Equal(t, "Venda", entry.Category)
		require.NotNil(t, entry.ReferenceType)
		assert.Equal(t, model.RefSale, *entry.ReferenceType)
	}

	// Cart cleared after commit
	c, _ = store.Get(context.Background(), userID)
	assert.True(t, c.IsEmpty())

	stored, err := saleRepo.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Len(t, stored.Items, 1)
}

func TestCheckout_SnapshotDePrecoAtual(t *testing.T) {
	// The committed sale uses the product's current price, not the one frozen
	// in the cart when the line was added.
	svc, _, productRepo, _, _, store := buildSaleSvc()
	p := seedProduct(productRepo, "VR-100", "Válvula de retenção", 100.00, 5)
	userID := uuid.New()

	c, _ := store.Get(context.Background(), userID)
	c.Add(p.ID, p.Code, p.Name, p.SalePrice, p.StockQuantity)
	require.NoError(t, store.Save(context.Background(), userID, c))

	// Price changes between add and checkout
	p.SalePrice = decimal.NewFromFloat(120.00)

	resp, err := svc.Checkout(context.Background(), userID, dto.CheckoutRequest{PaymentMethod: "cash"})
	require.NoError(t, err)
	assert.Equal(t, "120", resp.Total.String())
	assert.Equal(t, "120", resp.Items[0].UnitPrice.String())
}

func TestCheckout_DescontoClampado(t *testing.T) {
	svc, _, productRepo, _, _, store := buildSaleSvc()
	p := seedProduct(productRepo, "EN-010", "Engate rápido", 50.00, 5)
	userID := uuid.New()

	c, _ := store.Get(context.Background(), userID)
	c.Add(p.ID, p.Code, p.Name, p.SalePrice, p.StockQuantity)
	require.NoError(t, store.Save(context.Background(), userID, c))

	// Discount bigger than the subtotal clamps to the subtotal
	resp, err := svc.Checkout(context.Background(), userID, dto.CheckoutRequest{
		PaymentMethod: "cash",
		Discount:      decimal.NewFromFloat(200.00),
	})
	require.NoError(t, err)
	assert.Equal(t, "50", resp.Discount.String())
	assert.True(t, resp.Total.IsZero())
}

func TestCheckout_NaoIdempotente(t *testing.T) {
	// Two checkouts of identical carts are two distinct sales.
	svc, saleRepo, productRepo, _, _, store := buildSaleSvc()
	p := seedProduct(productRepo, "TH-330", "Terminal hidráulico", 30.00, 10)
	userID := uuid.New()

	for i := 0; i < 2; i++ {
		c, _ := store.Get(context.Background(), userID)
		c.Add(p.ID, p.Code, p.Name, p.SalePrice, p.StockQuantity)
		require.NoError(t, store.Save(context.Background(), userID, c))

		_, err := svc.Checkout(context.Background(), userID, dto.CheckoutRequest{PaymentMethod: "cash"})
		require.NoError(t, err)
	}

	assert.Len(t, saleRepo.sales, 2)
	assert.Equal(t, 8, productRepo.products[p.ID].StockQuantity)
}

func TestCancelSale_RestauraEstoque(t *testing.T) {
	svc, saleRepo, productRepo, movementRepo, transactionRepo, store := buildSaleSvc()
	p := seedProduct(productRepo, "BH-500", "Bomba hidráulica 500cc", 800.00, 4)
	userID := uuid.New()

	c, _ := store.Get(context.Background(), userID)
	c.Add(p.ID, p.Code, p.Name, p.SalePrice, p.StockQuantity)
	c.ChangeQuantity(p.ID, 1) // quantity 2
	require.NoError(t, store.Save(context.Background(), userID, c))

	resp, err := svc.Checkout(context.Background(), userID, dto.CheckoutRequest{PaymentMethod: "credit"})
	require.NoError(t, err)
	assert.Equal(t, 2, productRepo.products[p.ID].StockQuantity)

	err = svc.CancelSale(context.Background(), uuid.MustParse(resp.ID), userID, "erro de preço")
	require.NoError(t, err)

	// Stock restored, status flipped, rows kept
	assert.Equal(t, 4, productRepo.products[p.ID].StockQuantity)
	stored, _ := saleRepo.FindByID(context.Background(), uuid.MustParse(resp.ID))
	assert.Equal(t, "cancelled", stored.Status)
	assert.Len(t, stored.Items, 1)

	// An "in" movement compensates the original "out"
	var hasRestore bool
	for _, m := range movementRepo.movements {
		if m.Type == model.MovementIn {
			hasRestore = true
			assert.Equal(t, 2, m.Quantity)
		}
	}
	assert.True(t, hasRestore)

	// A compensating expense entry was appended — the income entry survives
	var incomes, expenses int
	for _, entry := range transactionRepo.entries {
		switch entry.Type {
		case "income":
			incomes++
		case "expense":
			expenses++
			assert.Equal(t, "Outros Gastos", entry.Category)
			assert.Contains(t, entry.Description, "Estorno da venda #1")
		}
	}
	assert.Equal(t, 1, incomes)
	assert.Equal(t, 1, expenses)
}

func TestCancelSale_JaCancelada(t *testing.T) {
	svc, saleRepo, _, _, _, _ := buildSaleSvc()
	sale := &model.Sale{SaleNumber: 9, UserID: uuid.New(), Status: "cancelled"}
	require.NoError(t, saleRepo.CreateTx(nil, sale))

	err := svc.CancelSale(context.Background(), sale.ID, uuid.New(), "duplicada")
	assert.ErrorContains(t, err, "já está cancelada")
}
