package service

import (
	"context"
	"testing"

	"github.com/pedroluizchagas/thv/internal/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCartSvc() (CartService, *stubProductRepo, *stubCartStore) {
	productRepo := newStubProductRepo()
	store := newStubCartStore()
	return NewCartService(store, productRepo), productRepo, store
}

func TestAddItem_NovaLinha(t *testing.T) {
	svc, productRepo, _ := buildCartSvc()
	p := seedProduct(productRepo, "FH-220", "Filtro hidráulico", 35.50, 8)
	userID := uuid.New()

	resp, err := svc.AddItem(context.Background(), userID, dto.AddCartItemRequest{ProductID: p.ID.String()})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 1, resp.Items[0].Quantity)
	assert.Equal(t, "FH-220", resp.Items[0].Code)
	assert.Equal(t, "35.5", resp.Subtotal.String())
}

func TestAddItem_IncrementaLinhaExistente(t *testing.T) {
	svc, productRepo, _ := buildCartSvc()
	p := seedProduct(productRepo, "FH-220", "Filtro hidráulico", 35.50, 8)
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := svc.AddItem(context.Background(), userID, dto.AddCartItemRequest{ProductID: p.ID.String()})
		require.NoError(t, err)
	}

	resp, err := svc.GetCart(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 3, resp.Items[0].Quantity)
	assert.Equal(t, "106.5", resp.Subtotal.String())
}

func TestAddItem_ClampSilenciosoNoSnapshot(t *testing.T) {
	// Adding past the frozen stock snapshot is a silent no-op, never an error.
	svc, productRepo, _ := buildCartSvc()
	p := seedProduct(productRepo, "OR-055", "O-ring 55mm", 2.00, 2)
	userID := uuid.New()

	for i := 0; i < 5; i++ {
		_, err := svc.AddItem(context.Background(), userID, dto.AddCartItemRequest{ProductID: p.ID.String()})
		require.NoError(t, err)
	}

	resp, _ := svc.GetCart(context.Background(), userID)
	assert.Equal(t, 2, resp.Items[0].Quantity)
}

func TestAddItem_SnapshotCongelado(t *testing.T) {
	// Product edits after the line was added do not change the cart.
	svc, productRepo, _ := buildCartSvc()
	p := seedProduct(productRepo, "CJ-700", "Cilindro de avanço", 450.00, 6)
	userID := uuid.New()

	_, err := svc.AddItem(context.Background(), userID, dto.AddCartItemRequest{ProductID: p.ID.String()})
	require.NoError(t, err)

	p.SalePrice = decimal.NewFromFloat(999.00)
	p.Name = "Cilindro renomeado"

	resp, _ := svc.GetCart(context.Background(), userID)
	assert.Equal(t, "Cilindro de avanço", resp.Items[0].Name)
	assert.Equal(t, "450", resp.Items[0].UnitPrice.String())
}

func TestAddItem_ProdutoInativo(t *testing.T) {
	svc, productRepo, _ := buildCartSvc()
	p := seedProduct(productRepo, "AX-001", "Adaptador descontinuado", 10.00, 5)
	p.IsActive = false

	_, err := svc.AddItem(context.Background(), uuid.New(), dto.AddCartItemRequest{ProductID: p.ID.String()})
	assert.ErrorContains(t, err, "inativo")
}

func TestAddItem_SemEstoque(t *testing.T) {
	svc, productRepo, _ := buildCartSvc()
	p := seedProduct(productRepo, "AX-002", "Adaptador esgotado", 10.00, 0)

	_, err := svc.AddItem(context.Background(), uuid.New(), dto.AddCartItemRequest{ProductID: p.ID.String()})
	assert.ErrorContains(t, err, "sem estoque")
}

func TestChangeItem_DeltaNegativoRemoveNaRaiz(t *testing.T) {
	svc, productRepo, _ := buildCartSvc()
	p := seedProduct(productRepo, "FH-220", "Filtro hidráulico", 35.50, 8)
	userID := uuid.New()

	_, err := svc.AddItem(context.Background(), userID, dto.AddCartItemRequest{ProductID: p.ID.String()})
	require.NoError(t, err)

	// Quantity 1 - 1 = 0 → line removed
	resp, err := svc.ChangeItem(context.Background(), userID, dto.ChangeCartItemRequest{
		ProductID: p.ID.String(),
		Delta:     -1,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

func TestRemoveItem_EClearCart(t *testing.T) {
	svc, productRepo, store := buildCartSvc()
	p1 := seedProduct(productRepo, "P-001", "Peça um", 10.00, 5)
	p2 := seedProduct(productRepo, "P-002", "Peça dois", 20.00, 5)
	userID := uuid.New()

	_, err := svc.AddItem(context.Background(), userID, dto.AddCartItemRequest{ProductID: p1.ID.String()})
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), userID, dto.AddCartItemRequest{ProductID: p2.ID.String()})
	require.NoError(t, err)

	resp, err := svc.RemoveItem(context.Background(), userID, p1.ID)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, p2.ID.String(), resp.Items[0].ProductID)

	require.NoError(t, svc.ClearCart(context.Background(), userID))
	c, _ := store.Get(context.Background(), userID)
	assert.True(t, c.IsEmpty())
}
