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

func buildPurchaseSvc() (PurchaseService, *stubPurchaseRepo, *stubProductRepo, *stubMovementRepo, *stubTransactionRepo) {
	purchaseRepo := newStubPurchaseRepo()
	productRepo := newStubProductRepo()
	movementRepo := &stubMovementRepo{}
	transactionRepo := newStubTransactionRepo()
	svc := NewPurchaseService(purchaseRepo, productRepo, movementRepo, transactionRepo)
	return svc, purchaseRepo, productRepo, movementRepo, transactionRepo
}

func TestRegisterPurchase_Completo(t *testing.T) {
	svc, purchaseRepo, productRepo, movementRepo, transactionRepo := buildPurchaseSvc()
	p1 := seedProduct(productRepo, "VD-040", "Vedação 40mm", 4.00, 10)
	p2 := seedProduct(productRepo, "VD-050", "Vedação 50mm", 5.00, 0)

	resp, err := svc.RegisterPurchase(context.Background(), uuid.New(), dto.CreatePurchaseRequest{
		Items: []dto.PurchaseItemRequest{
			{ProductID: p1.ID.String(), Quantity: 20, UnitPrice: decimal.NewFromFloat(2.50)},
			{ProductID: p2.ID.String(), Quantity: 5, UnitPrice: decimal.NewFromFloat(3.00)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.PurchaseNumber)
	assert.Equal(t, "65", resp.Total.String()) // 20×2.50 + 5×3.00
	assert.Len(t, purchaseRepo.purchases, 1)

	// Stock incremented per line
	assert.Equal(t, 30, productRepo.products[p1.ID].StockQuantity)
	assert.Equal(t, 5, productRepo.products[p2.ID].StockQuantity)

	// One "in" movement per line referencing the purchase
	require.Len(t, movementRepo.movements, 2)
	for _, m := range movementRepo.movements {
		assert.Equal(t, model.MovementIn, m.Type)
		require.NotNil(t, m.ReferenceType)
		assert.Equal(t, model.RefPurchase, *m.ReferenceType)
		assert.Positive(t, m.Quantity)
	}

	// One expense ledger entry for the total
	require.Len(t, transactionRepo.entries, 1)
	for _, entry := range transactionRepo.entries {
		assert.Equal(t, "expense", entry.Type)
		assert.Equal(t, "Compra", entry.Category)
		assert.Equal(t, "65", entry.Amount.String())
	}
}

func TestRegisterPurchase_PrecoUnitarioNaoPositivo(t *testing.T) {
	svc, _, productRepo, _, _ := buildPurchaseSvc()
	p := seedProduct(productRepo, "VD-040", "Vedação 40mm", 4.00, 10)

	_, err := svc.RegisterPurchase(context.Background(), uuid.New(), dto.CreatePurchaseRequest{
		Items: []dto.PurchaseItemRequest{
			{ProductID: p.ID.String(), Quantity: 1, UnitPrice: decimal.Zero},
		},
	})
	assert.ErrorContains(t, err, "preço unitário")
}

func TestRegisterPurchase_ProdutoInexistente(t *testing.T) {
	svc, purchaseRepo, productRepo, _, _ := buildPurchaseSvc()
	seedProduct(productRepo, "VD-040", "Vedação 40mm", 4.00, 10)

	_, err := svc.RegisterPurchase(context.Background(), uuid.New(), dto.CreatePurchaseRequest{
		Items: []dto.PurchaseItemRequest{
			{ProductID: uuid.New().String(), Quantity: 1, UnitPrice: decimal.NewFromFloat(1)},
		},
	})
	assert.ErrorContains(t, err, "não encontrado")
	// Resolution fails before any write
	assert.Empty(t, purchaseRepo.purchases)
}

func TestGetPurchase_NaoEncontrada(t *testing.T) {
	svc, _, _, _, _ := buildPurchaseSvc()

	_, err := svc.GetPurchase(context.Background(), uuid.New())
	assert.ErrorContains(t, err, "compra não encontrada")
}
