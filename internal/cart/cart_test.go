package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestAddNewAndIncrement(t *testing.T) {
	c := New()
	pid := uuid.New()

	require.True(t, c.Add(pid, "BH-001", "Bomba Hidráulica", dec("100.00"), 3))
	require.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.Items[0].Quantity)

	assert.True(t, c.Add(pid, "BH-001", "Bomba Hidráulica", dec("100.00"), 3))
	assert.True(t, c.Add(pid, "BH-001", "Bomba Hidráulica", dec("100.00"), 3))
	assert.Equal(t, 3, c.Items[0].Quantity)

	// Fourth add exceeds the stock snapshot — silent no-op
	assert.False(t, c.Add(pid, "BH-001", "Bomba Hidráulica", dec("100.00"), 3))
	assert.Equal(t, 3, c.Items[0].Quantity)
	require.Len(t, c.Items, 1)
}

func TestAddOutOfStockProduct(t *testing.T) {
	c := New()
	assert.False(t, c.Add(uuid.New(), "CX-002", "Caixa de Direção", dec("50.00"), 0))
	assert.True(t, c.IsEmpty())
}

func TestChangeQuantityClamps(t *testing.T) {
	c := New()
	pid := uuid.New()
	c.Add(pid, "CL-003", "Cilindro", dec("80.00"), 5)

	c.ChangeQuantity(pid, 3)
	assert.Equal(t, 4, c.Items[0].Quantity)

	// Exceeding the snapshot is rejected, entry unchanged
	c.ChangeQuantity(pid, 10)
	assert.Equal(t, 4, c.Items[0].Quantity)

	// Reaching zero or below removes the entry
	c.ChangeQuantity(pid, -4)
	assert.True(t, c.IsEmpty())
}

func TestChangeQuantityUnknownProductNoop(t *testing.T) {
	c := New()
	c.Add(uuid.New(), "KR-004", "Kit de Reparo", dec("25.00"), 2)
	c.ChangeQuantity(uuid.New(), 1)
	assert.Equal(t, 1, c.Items[0].Quantity)
}

func TestRemoveUnconditional(t *testing.T) {
	c := New()
	a, b := uuid.New(), uuid.New()
	c.Add(a, "A", "A", dec("10.00"), 9)
	c.Add(b, "B", "B", dec("20.00"), 9)

	c.Remove(a)
	require.Len(t, c.Items, 1)
	assert.Equal(t, b, c.Items[0].ProductID)
}

func TestSubtotalRecomputed(t *testing.T) {
	c := New()
	a, b := uuid.New(), uuid.New()
	c.Add(a, "A", "Produto A", dec("100.00"), 10)
	c.Add(a, "A", "Produto A", dec("100.00"), 10)
	c.Add(b, "B", "Produto B", dec("50.00"), 10)

	assert.True(t, c.Subtotal().Equal(dec("250.00")))

	c.ChangeQuantity(b, 1)
	assert.True(t, c.Subtotal().Equal(dec("300.00")))

	c.Remove(a)
	assert.True(t, c.Subtotal().Equal(dec("100.00")))
}

func TestDiscountClampAndTotal(t *testing.T) {
	c := New()
	a, b := uuid.New(), uuid.New()
	c.Add(a, "A", "Produto A", dec("100.00"), 10)
	c.Add(a, "A", "Produto A", dec("100.00"), 10)
	c.Add(b, "B", "Produto B", dec("50.00"), 10)

	// Scenario from the PDV: subtotal 250.00, discount 10.00 → total 240.00
	assert.True(t, c.Total(dec("10.00")).Equal(dec("240.00")))

	// Negative discount clamps to zero
	assert.True(t, c.ClampDiscount(dec("-5.00")).IsZero())
	assert.True(t, c.Total(dec("-5.00")).Equal(dec("250.00")))

	// Discount above subtotal clamps to subtotal; total never negative
	assert.True(t, c.ClampDiscount(dec("999.00")).Equal(dec("250.00")))
	assert.True(t, c.Total(dec("999.00")).IsZero())
}
