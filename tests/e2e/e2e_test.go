//go:build integration

package e2e

// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// Covered flows:
//   - setup admin → login → create product → cart → checkout → stock/ledger side effects
//   - sale cancellation restores stock
//   - public quote intake and staff triage
//   - public catalog hides cost and stock quantities

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pedroluizchagas/thv/internal/config"
	"github.com/pedroluizchagas/thv/internal/infra"
	"github.com/pedroluizchagas/thv/internal/router"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("thv_test"),
		tcPostgres.WithUsername("thv"),
		tcPostgres.WithPassword("thv"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		AdminEmail:         "admin@e2e.test",
		AdminPassword:      "thv-e2e-2026",
		CompanyName:        "THV Hidraulic Parts",
		CompanyWhatsApp:    "5537999220892",
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Object storage stays nil: photo upload is out of scope here.
	r := router.New(cfg, db, rdb, nil)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	// Bootstrap the admin account through the setup endpoint, then log in.
	setupResp := do(t, srv, "POST", "/v1/setup/admin", nil, "")
	require.Equal(t, http.StatusOK, setupResp.StatusCode)
	setupResp.Body.Close()

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"email": cfg.AdminEmail, "password": cfg.AdminPassword}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, token: loginBody.AccessToken}
}

func createProduct(t *testing.T, env *testEnv, code, name string, salePrice float64, stock int) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/products",
		jsonBody(t, map[string]any{
			"code":           code,
			"name":           name,
			"cost_price":     salePrice / 2,
			"sale_price":     salePrice,
			"stock_quantity": stock,
			"min_stock":      2,
		}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &prod)
	return prod.ID
}

func productStock(t *testing.T, env *testEnv, id string) int {
	t.Helper()
	resp := do(t, env.server, "GET", "/v1/products/"+id, nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var prod struct {
		StockQuantity int `json:"stock_quantity"`
	}
	decodeJSON(t, resp, &prod)
	return prod.StockQuantity
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_FullCheckoutCycle(t *testing.T) {
	env := setupTestEnv(t)
	prodID := createProduct(t, env, "MB-250", "Mangueira trançada 1/4", 45.90, 10)

	// Add the product to the cart twice → one line, quantity 2
	for i := 0; i < 2; i++ {
		resp := do(t, env.server, "POST", "/v1/pos/cart/items",
			jsonBody(t, map[string]string{"product_id": prodID}), env.token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	cartResp := do(t, env.server, "GET", "/v1/pos/cart", nil, env.token)
	require.Equal(t, http.StatusOK, cartResp.StatusCode)
	var cartBody struct {
		Items []struct {
			Quantity int `json:"quantity"`
		} `json:"items"`
		Subtotal string `json:"subtotal"`
	}
	decodeJSON(t, cartResp, &cartBody)
	require.Len(t, cartBody.Items, 1)
	assert.Equal(t, 2, cartBody.Items[0].Quantity)

	// Checkout
	checkoutResp := do(t, env.server, "POST", "/v1/pos/checkout",
		jsonBody(t, map[string]any{"payment_method": "pix"}), env.token)
	require.Equal(t, http.StatusCreated, checkoutResp.StatusCode)
	var sale struct {
		ID         string          `json:"id"`
		SaleNumber int             `json:"sale_number"`
		Total      decimal.Decimal `json:"total"`
		Status     string          `json:"status"`
	}
	decodeJSON(t, checkoutResp, &sale)
	assert.Equal(t, 1, sale.SaleNumber)
	assert.Equal(t, "completed", sale.Status)
	assert.True(t, sale.Total.Equal(decimal.NewFromFloat(91.80))) // 45.90 × 2

	// Cart now empty
	cartResp = do(t, env.server, "GET", "/v1/pos/cart", nil, env.token)
	var emptied struct {
		Items []any `json:"items"`
	}
	decodeJSON(t, cartResp, &emptied)
	assert.Empty(t, emptied.Items)

	// Stock decremented 10 → 8
	assert.Equal(t, 8, productStock(t, env, prodID))

	// One "out" movement recorded for the product
	movResp := do(t, env.server, "GET", "/v1/stock/movements?product_id="+prodID, nil, env.token)
	require.Equal(t, http.StatusOK, movResp.StatusCode)
	var movements []struct {
		Type     string `json:"type"`
		Quantity int    `json:"quantity"`
	}
	decodeJSON(t, movResp, &movements)
	require.Len(t, movements, 1)
	assert.Equal(t, "out", movements[0].Type)
	assert.Equal(t, -2, movements[0].Quantity)

	// The sale landed in the ledger as income
	txResp := do(t, env.server, "GET", "/v1/transactions?period=today", nil, env.token)
	require.Equal(t, http.StatusOK, txResp.StatusCode)
	var txBody struct {
		Summary struct {
			Income decimal.Decimal `json:"income"`
		} `json:"summary"`
	}
	decodeJSON(t, txResp, &txBody)
	assert.True(t, txBody.Summary.Income.Equal(decimal.NewFromFloat(91.80)))
}

func TestE2E_CancelSaleRestoresStock(t *testing.T) {
	env := setupTestEnv(t)
	prodID := createProduct(t, env, "BH-500", "Bomba hidráulica 500cc", 800.00, 4)

	resp := do(t, env.server, "POST", "/v1/pos/cart/items",
		jsonBody(t, map[string]string{"product_id": prodID}), env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	checkoutResp := do(t, env.server, "POST", "/v1/pos/checkout",
		jsonBody(t, map[string]any{"payment_method": "credit"}), env.token)
	require.Equal(t, http.StatusCreated, checkoutResp.StatusCode)
	var sale struct {
		ID string `json:"id"`
	}
	decodeJSON(t, checkoutResp, &sale)
	require.Equal(t, 3, productStock(t, env, prodID))

	cancelResp := do(t, env.server, "DELETE", "/v1/sales/"+sale.ID,
		jsonBody(t, map[string]string{"reason": "erro de lançamento"}), env.token)
	require.Equal(t, http.StatusNoContent, cancelResp.StatusCode)

	// Stock restored; the sale survives as cancelled
	assert.Equal(t, 4, productStock(t, env, prodID))
	getResp := do(t, env.server, "GET", "/v1/sales/"+sale.ID, nil, env.token)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	var stored struct {
		Status string `json:"status"`
	}
	decodeJSON(t, getResp, &stored)
	assert.Equal(t, "cancelled", stored.Status)
}

func TestE2E_QuoteIntakeAndTriage(t *testing.T) {
	env := setupTestEnv(t)

	// Public submission, no token
	submitResp := do(t, env.server, "POST", "/v1/quotes",
		jsonBody(t, map[string]any{
			"name":    "João Pereira",
			"email":   "joao@example.com",
			"phone":   "(37) 99911-2233",
			"message": "Preciso de uma bomba para trator",
		}), "")
	require.Equal(t, http.StatusCreated, submitResp.StatusCode)
	var quote struct {
		ID          string  `json:"id"`
		Status      string  `json:"status"`
		WhatsAppURL *string `json:"whatsapp_url"`
	}
	decodeJSON(t, submitResp, &quote)
	assert.Equal(t, "pending", quote.Status)

	// Staff list requires auth
	unauth := do(t, env.server, "GET", "/v1/quotes", nil, "")
	assert.Equal(t, http.StatusUnauthorized, unauth.StatusCode)
	unauth.Body.Close()

	listResp := do(t, env.server, "GET", "/v1/quotes?status=pending", nil, env.token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var listBody struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	decodeJSON(t, listResp, &listBody)
	require.Len(t, listBody.Data, 1)

	// Triage to contacted with a note
	triageResp := do(t, env.server, "PATCH", "/v1/quotes/"+quote.ID,
		jsonBody(t, map[string]string{"status": "contacted", "notes": "respondido por WhatsApp"}), env.token)
	require.Equal(t, http.StatusOK, triageResp.StatusCode)
	var triaged struct {
		Status string  `json:"status"`
		Notes  *string `json:"notes"`
	}
	decodeJSON(t, triageResp, &triaged)
	assert.Equal(t, "contacted", triaged.Status)
	require.NotNil(t, triaged.Notes)
}

func TestE2E_PublicCatalogProjection(t *testing.T) {
	env := setupTestEnv(t)
	createProduct(t, env, "VR-100", "Válvula de retenção", 120.00, 6)

	// Catalog is public and hides cost price and stock counts
	resp := do(t, env.server, "GET", "/v1/catalog/products", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Data []map[string]any `json:"data"`
	}
	decodeJSON(t, resp, &body)
	require.Len(t, body.Data, 1)
	item := body.Data[0]
	assert.Equal(t, true, item["in_stock"])
	assert.NotContains(t, item, "cost_price")
	assert.NotContains(t, item, "stock_quantity")
}
