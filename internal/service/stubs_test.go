package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pedroluizchagas/thv/internal/cart"
	"github.com/pedroluizchagas/thv/internal/dto"
	"github.com/pedroluizchagas/thv/internal/model"
	"github.com/pedroluizchagas/thv/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func mustParseUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	if err != nil {
		t.Fatalf("uuid inválido %q: %v", s, err)
	}
	return id
}

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubProductRepo is an in-memory ProductRepository. DB() returns nil so
// services run their transactional closures with a nil tx.
type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubProductRepo) FindByCode(_ context.Context, code string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) UpdatePhotoURL(_ context.Context, id uuid.UUID, slot int, url string) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("not found")
	}
	switch slot {
	case 1:
		p.Photo1URL = &url
	case 2:
		p.Photo2URL = &url
	case 3:
		p.Photo3URL = &url
	}
	return nil
}

func (r *stubProductRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, p := range r.products {
		if p.IsActive {
			n++
		}
	}
	return n, nil
}

func (r *stubProductRepo) CountLowStock(_ context.Context) (int64, error) {
	var n int64
	for _, p := range r.products {
		if p.IsActive && p.StockQuantity <= p.MinStock {
			n++
		}
	}
	return n, nil
}

func (r *stubProductRepo) AdjustStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("not found")
	}
	p.StockQuantity += delta
	return nil
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// seedProduct registers an active product with the given stock.
func seedProduct(r *stubProductRepo, code, name string, price float64, stock int) *model.Product {
	p := &model.Product{
		ID:            uuid.New(),
		Code:          code,
		Name:          name,
		SalePrice:     decimal.NewFromFloat(price),
		StockQuantity: stock,
		MinStock:      5,
		Unit:          "un",
		IsActive:      true,
	}
	r.products[p.ID] = p
	return p
}

// stubSaleRepo stores sales keyed by ID with a monotonic sale number.
type stubSaleRepo struct {
	sales   map[uuid.UUID]*model.Sale
	saleSeq int
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	for i := range s.Items {
		if s.Items[i].ID == uuid.Nil {
			s.Items[i].ID = uuid.New()
		}
		s.Items[i].SaleID = s.ID
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) NextSaleNumber(_ *gorm.DB) (int, error) {
	r.saleSeq++
	return r.saleSeq, nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (r *stubSaleRepo) List(_ context.Context, _ dto.SaleFilter) ([]model.Sale, int64, error) {
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status string) error {
	s, ok := r.sales[id]
	if !ok {
		return errors.New("not found")
	}
	s.Status = status
	return nil
}

func (r *stubSaleRepo) SumCompletedTotalByDate(_ context.Context, _ time.Time) (decimal.Decimal, int64, error) {
	sum := decimal.Zero
	var count int64
	for _, s := range r.sales {
		if s.Status == "completed" {
			sum = sum.Add(s.Total)
			count++
		}
	}
	return sum, count, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// stubMovementRepo captures created movements for assertion.
type stubMovementRepo struct {
	movements []model.StockMovement
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context, _ dto.MovementFilter) ([]model.StockMovement, error) {
	return r.movements, nil
}

var _ repository.MovementRepository = (*stubMovementRepo)(nil)

// stubTransactionRepo captures ledger entries for assertion.
type stubTransactionRepo struct {
	entries map[uuid.UUID]*model.FinancialTransaction
}

func newStubTransactionRepo() *stubTransactionRepo {
	return &stubTransactionRepo{entries: make(map[uuid.UUID]*model.FinancialTransaction)}
}

func (r *stubTransactionRepo) Create(_ context.Context, t *model.FinancialTransaction) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.entries[t.ID] = t
	return nil
}

func (r *stubTransactionRepo) CreateTx(_ *gorm.DB, t *model.FinancialTransaction) error {
	return r.Create(context.Background(), t)
}

func (r *stubTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.FinancialTransaction, error) {
	t, ok := r.entries[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return t, nil
}

// inBounds mirrors the inclusive date filter the gorm repository applies;
// empty bounds are open.
func inBounds(date, from, to string) bool {
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}

func (r *stubTransactionRepo) List(_ context.Context, _ dto.TransactionFilter, from, to string) ([]model.FinancialTransaction, int64, error) {
	out := make([]model.FinancialTransaction, 0, len(r.entries))
	for _, t := range r.entries {
		if !inBounds(t.TransactionDate, from, to) {
			continue
		}
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (r *stubTransactionRepo) Summarize(_ context.Context, from, to string) (decimal.Decimal, decimal.Decimal, error) {
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range r.entries {
		if !inBounds(t.TransactionDate, from, to) {
			continue
		}
		switch t.Type {
		case "income":
			income = income.Add(t.Amount)
		case "expense":
			expense = expense.Add(t.Amount)
		}
	}
	return income, expense, nil
}

func (r *stubTransactionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.entries, id)
	return nil
}

var _ repository.TransactionRepository = (*stubTransactionRepo)(nil)

// stubCartStore keeps one cart per user in a map, like the Redis store does.
type stubCartStore struct {
	carts map[uuid.UUID]*cart.Cart
	saves int
}

func newStubCartStore() *stubCartStore {
	return &stubCartStore{carts: make(map[uuid.UUID]*cart.Cart)}
}

func (s *stubCartStore) Get(_ context.Context, userID uuid.UUID) (*cart.Cart, error) {
	if c, ok := s.carts[userID]; ok {
		return c, nil
	}
	return cart.New(), nil
}

func (s *stubCartStore) Save(_ context.Context, userID uuid.UUID, c *cart.Cart) error {
	s.carts[userID] = c
	s.saves++
	return nil
}

func (s *stubCartStore) Clear(_ context.Context, userID uuid.UUID) error {
	delete(s.carts, userID)
	return nil
}

var _ CartStore = (*stubCartStore)(nil)

// stubQuoteRepo is an in-memory QuoteRepository.
type stubQuoteRepo struct {
	quotes map[uuid.UUID]*model.QuoteRequest
}

func newStubQuoteRepo() *stubQuoteRepo {
	return &stubQuoteRepo{quotes: make(map[uuid.UUID]*model.QuoteRequest)}
}

func (r *stubQuoteRepo) Create(_ context.Context, q *model.QuoteRequest) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	r.quotes[q.ID] = q
	return nil
}

func (r *stubQuoteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.QuoteRequest, error) {
	q, ok := r.quotes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return q, nil
}

func (r *stubQuoteRepo) List(_ context.Context, _ dto.QuoteFilter) ([]model.QuoteRequest, int64, error) {
	out := make([]model.QuoteRequest, 0, len(r.quotes))
	for _, q := range r.quotes {
		out = append(out, *q)
	}
	return out, int64(len(out)), nil
}

func (r *stubQuoteRepo) Update(_ context.Context, q *model.QuoteRequest) error {
	r.quotes[q.ID] = q
	return nil
}

func (r *stubQuoteRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.quotes, id)
	return nil
}

func (r *stubQuoteRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, q := range r.quotes {
		if q.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *stubQuoteRepo) ListRecent(_ context.Context, limit int) ([]model.QuoteRequest, error) {
	out := make([]model.QuoteRequest, 0, limit)
	for _, q := range r.quotes {
		if len(out) == limit {
			break
		}
		out = append(out, *q)
	}
	return out, nil
}

var _ repository.QuoteRepository = (*stubQuoteRepo)(nil)

// stubPurchaseRepo stores purchases with a monotonic purchase number.
type stubPurchaseRepo struct {
	purchases   map[uuid.UUID]*model.Purchase
	purchaseSeq int
}

func newStubPurchaseRepo() *stubPurchaseRepo {
	return &stubPurchaseRepo{purchases: make(map[uuid.UUID]*model.Purchase)}
}

func (r *stubPurchaseRepo) CreateTx(_ *gorm.DB, p *model.Purchase) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range p.Items {
		if p.Items[i].ID == uuid.Nil {
			p.Items[i].ID = uuid.New()
		}
		p.Items[i].PurchaseID = p.ID
	}
	r.purchases[p.ID] = p
	return nil
}

func (r *stubPurchaseRepo) NextPurchaseNumber(_ *gorm.DB) (int, error) {
	r.purchaseSeq++
	return r.purchaseSeq, nil
}

func (r *stubPurchaseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Purchase, error) {
	p, ok := r.purchases[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubPurchaseRepo) List(_ context.Context, _ dto.PurchaseFilter) ([]model.Purchase, int64, error) {
	out := make([]model.Purchase, 0, len(r.purchases))
	for _, p := range r.purchases {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPurchaseRepo) DB() *gorm.DB { return nil }

var _ repository.PurchaseRepository = (*stubPurchaseRepo)(nil)

// stubUserRepo is an in-memory UserRepository with an email index.
type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		if u.Active {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return errors.New("not found")
	}
	u.Active = false
	return nil
}

func (r *stubUserRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return errors.New("not found")
	}
	u.Active = true
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)
