// Package cart implements the PDV cart accumulator and pricing calculator.
// A Cart is a plain value owned by the session scope (persisted as JSON in
// Redis by the cart service); all update functions are methods with no hidden
// state, and the subtotal is recomputed on every read.
package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is one distinct-by-product cart line. StockSnapshot is the product's
// stock quantity captured when the line was created; quantity changes clamp
// against it without re-validating against the store.
type Item struct {
	ProductID     uuid.UUID       `json:"product_id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int             `json:"quantity"`
	StockSnapshot int             `json:"stock_snapshot"`
}

// LineTotal is unit price × quantity, computed fresh.
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart holds an ordered collection of distinct-by-product items.
type Cart struct {
	Items []Item `json:"items"`
}

// New returns an empty cart.
func New() *Cart { return &Cart{} }

func (c *Cart) find(productID uuid.UUID) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Has reports whether the cart already holds a line for the product.
func (c *Cart) Has(productID uuid.UUID) bool { return c.find(productID) >= 0 }

// Increment bumps an existing line by 1. The increment is a silent no-op when
// it would exceed the stock snapshot or the product is not in the cart.
// Returns true when the cart changed.
func (c *Cart) Increment(productID uuid.UUID) bool {
	idx := c.find(productID)
	if idx < 0 {
		return false
	}
	if c.Items[idx].Quantity+1 > c.Items[idx].StockSnapshot {
		return false
	}
	c.Items[idx].Quantity++
	return true
}

// Add appends a new line with quantity 1, or increments an existing line by 1.
// The increment is a silent no-op when it would exceed the stock snapshot.
// Returns true when the cart changed.
func (c *Cart) Add(productID uuid.UUID, code, name string, unitPrice decimal.Decimal, stockSnapshot int) bool {
	if c.Has(productID) {
		return c.Increment(productID)
	}
	if stockSnapshot < 1 {
		return false
	}
	c.Items = append(c.Items, Item{
		ProductID:     productID,
		Code:          code,
		Name:          name,
		UnitPrice:     unitPrice,
		Quantity:      1,
		StockSnapshot: stockSnapshot,
	})
	return true
}

// ChangeQuantity applies a signed delta to an existing line. A result ≤ 0
// removes the line; a result above the stock snapshot leaves it unchanged.
// Unknown products are a no-op.
func (c *Cart) ChangeQuantity(productID uuid.UUID, delta int) {
	idx := c.find(productID)
	if idx < 0 {
		return
	}
	newQty := c.Items[idx].Quantity + delta
	switch {
	case newQty <= 0:
		c.Remove(productID)
	case newQty > c.Items[idx].StockSnapshot:
		// rejected — entry unchanged
	default:
		c.Items[idx].Quantity = newQty
	}
}

// Remove deletes the line unconditionally.
func (c *Cart) Remove(productID uuid.UUID) {
	idx := c.find(productID)
	if idx < 0 {
		return
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool { return len(c.Items) == 0 }

// Subtotal is Σ(unit price × quantity) over all lines, recomputed on every
// call — never cached.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range c.Items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// ClampDiscount forces a user-entered discount into [0, subtotal].
func (c *Cart) ClampDiscount(discount decimal.Decimal) decimal.Decimal {
	if discount.IsNegative() {
		return decimal.Zero
	}
	if sub := c.Subtotal(); discount.GreaterThan(sub) {
		return sub
	}
	return discount
}

// Total is subtotal − clamped discount; never negative.
func (c *Cart) Total(discount decimal.Decimal) decimal.Decimal {
	return c.Subtotal().Sub(c.ClampDiscount(discount))
}
