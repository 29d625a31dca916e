package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/access"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/auth"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/catalog"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/checkout"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/dashboard"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/dto"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/fakes"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/invoice"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/provisioning"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/store"
	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain/entity"
	apphttp "github.com/AppHatchery-01/kirana-pos-easy/internal/interfaces/http"
)

const (
	adminID = "admin-1"
	ownerID = "owner-1"
	storeID = "store-1"
)

type stubPDF struct{}

func (stubPDF) GenerateInvoicePDF(context.Context, dto.InvoiceResponse) ([]byte, error) {
	return []byte("%PDF-1.3 stub"), nil
}

type stubLimiter struct{ allow bool }

func (l stubLimiter) Allow(context.Context, string) (bool, error) { return l.allow, nil }

type env struct {
	app      *fiber.App
	users    *fakes.Users
	roles    *fakes.Roles
	stores   *fakes.Stores
	products *fakes.Products
	sales    *fakes.Sales
}

func newEnv(t *testing.T, limiter apphttp.Limiter) *env {
	t.Helper()
	users := fakes.NewUsers()
	roles := fakes.NewRoles().Grant(adminID, entity.RoleAdmin).Grant(ownerID, entity.RoleStoreOwner)
	stores := fakes.NewStores(&entity.Store{ID: storeID, Name: "Sharma Kirana", OwnerID: ownerID, IsActive: true})
	products := fakes.NewProducts(
		&entity.Product{ID: "rice", StoreID: storeID, Name: "Basmati Rice 1kg", SKU: "RICE-1", Price: decimal.NewFromInt(100), TaxRate: decimal.NewFromInt(5), StockQuantity: 10, MinStockLevel: 2, Unit: "kg", IsActive: true},
		&entity.Product{ID: "salt", StoreID: storeID, Name: "Tata Salt", Price: decimal.NewFromInt(20), StockQuantity: 1, MinStockLevel: 5, Unit: "pack", IsActive: true},
	)
	sales := fakes.NewSales()
	guard := access.NewGuard(roles, stores)
	log := zerolog.Nop()

	authUC := auth.NewAuthUseCase(users, roles, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	deps := apphttp.RouterDeps{
		AuthUC:         authUC,
		CatalogUC:      catalog.NewCatalogUseCase(products, guard),
		CheckoutUC:     checkout.NewCheckoutUseCase(products, sales, guard, &fakes.TxRunner{Sales: sales, Products: products}, nil, log).WithClock(func() time.Time { return time.UnixMilli(1710000000000) }),
		InvoiceUC:      invoice.NewInvoiceUseCase(sales, stores, guard, stubPDF{}),
		StoreUC:        store.NewStoreUseCase(stores, guard, log),
		DashboardUC:    dashboard.NewDashboardUseCase(stores, products, sales, guard),
		ProvisioningUC: provisioning.NewProvisioningUseCase(authUC, stores, roles, nil, log),
		Limiter:        limiter,
		JWTSecret:      testJWTSecret,
		Log:            log,
	}
	app := apphttp.NewApp(apphttp.AppConfig{Name: "kirana-test"}, log)
	apphttp.Router(app, deps)
	return &env{app: app, users: users, roles: roles, stores: stores, products: products, sales: sales}
}

func (e *env) do(t *testing.T, method, path, auth string, body interface{}) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *env) doRaw(t *testing.T, method, path, auth, contentType, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestAuthFlow(t *testing.T) {
	e := newEnv(t, nil)

	resp := e.do(t, http.MethodPost, "/api/auth/signup", "", dto.SignUpRequest{Email: "new@example.com", Password: "secret1", FullName: "New User"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var user dto.UserResponse
	decode(t, resp, &user)
	assert.Equal(t, "new@example.com", user.Email)
	assert.False(t, user.EmailConfirmed)

	resp = e.do(t, http.MethodPost, "/api/auth/signup", "", dto.SignUpRequest{Email: "new@example.com", Password: "secret1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = e.do(t, http.MethodPost, "/api/auth/signin", "", dto.SignInRequest{Email: "new@example.com", Password: "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = e.do(t, http.MethodPost, "/api/auth/signin", "", dto.SignInRequest{Email: "new@example.com", Password: "secret1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var signin dto.SignInResponse
	decode(t, resp, &signin)
	require.NotEmpty(t, signin.Token)

	resp = e.do(t, http.MethodGet, "/api/auth/session", "Bearer "+signin.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var session dto.SessionResponse
	decode(t, resp, &session)
	assert.Equal(t, user.ID, session.User.ID)
	assert.Empty(t, session.Roles)

	resp = e.do(t, http.MethodGet, "/api/auth/session", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestSignIn_RateLimited(t *testing.T) {
	e := newEnv(t, stubLimiter{allow: false})

	resp := e.do(t, http.MethodPost, "/api/auth/signin", "", dto.SignInRequest{Email: "a@example.com", Password: "secret1"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "RATE_LIMITED")
}

func TestCompleteSale(t *testing.T) {
	e := newEnv(t, nil)
	owner := bearer(t, ownerID, entity.RoleStoreOwner)
	path := "/api/stores/" + storeID + "/sales"

	resp := e.do(t, http.MethodPost, path, owner, dto.CompleteSaleRequest{
		Items:         []dto.SaleLineRequest{{ProductID: "rice", Quantity: 2}},
		PaymentMethod: entity.PaymentCash,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sale dto.SaleResponse
	decode(t, resp, &sale)
	assert.Equal(t, "SALE-1710000000000", sale.SaleNumber)
	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(210)))
	assert.Equal(t, 8, e.products.Stock("rice"))

	resp = e.do(t, http.MethodGet, path, owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.SaleListResponse
	decode(t, resp, &list)
	assert.Len(t, list.Items, 1)
}

func TestCompleteSale_ErrorMapping(t *testing.T) {
	e := newEnv(t, nil)
	path := "/api/stores/" + storeID + "/sales"

	cases := []struct {
		name   string
		auth   string
		body   dto.CompleteSaleRequest
		status int
		code   string
	}{
		{"empty cart", bearer(t, ownerID, entity.RoleStoreOwner), dto.CompleteSaleRequest{PaymentMethod: entity.PaymentCash}, http.StatusBadRequest, "EMPTY_CART"},
		{"over stock", bearer(t, ownerID, entity.RoleStoreOwner), dto.CompleteSaleRequest{Items: []dto.SaleLineRequest{{ProductID: "salt", Quantity: 2}}, PaymentMethod: entity.PaymentCash}, http.StatusConflict, "INSUFFICIENT_STOCK"},
		{"bad payment", bearer(t, ownerID, entity.RoleStoreOwner), dto.CompleteSaleRequest{Items: []dto.SaleLineRequest{{ProductID: "rice", Quantity: 1}}, PaymentMethod: "cheque"}, http.StatusBadRequest, "VALIDATION"},
		{"other owner", bearer(t, "owner-2", entity.RoleStoreOwner), dto.CompleteSaleRequest{Items: []dto.SaleLineRequest{{ProductID: "rice", Quantity: 1}}, PaymentMethod: entity.PaymentCash}, http.StatusForbidden, "FORBIDDEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := e.do(t, http.MethodPost, path, tc.auth, tc.body)
			var body dto.ErrorResponse
			decode(t, resp, &body)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, body.Code)
		})
	}
	assert.Equal(t, 0, e.sales.Count())
	assert.Equal(t, 10, e.products.Stock("rice"))
}

func TestProducts(t *testing.T) {
	e := newEnv(t, nil)
	owner := bearer(t, ownerID, entity.RoleStoreOwner)

	resp := e.do(t, http.MethodGet, "/api/stores/"+storeID+"/products?q=rice", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.ProductListResponse
	decode(t, resp, &list)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "rice", list.Items[0].ID)

	resp = e.do(t, http.MethodPost, "/api/stores/"+storeID+"/products/quick", owner, dto.QuickAddProductRequest{
		Name: "Milk 500ml", Price: decimal.NewFromInt(30), StockQuantity: 12,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var quick dto.ProductResponse
	decode(t, resp, &quick)
	assert.Equal(t, "liter", quick.Unit)

	resp = e.do(t, http.MethodPost, "/api/stores/"+storeID+"/products", owner, dto.CreateProductRequest{Name: " ", Price: decimal.NewFromInt(-1)})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	newName := "Basmati Rice 5kg"
	resp = e.do(t, http.MethodPatch, "/api/products/rice", owner, dto.UpdateProductRequest{Name: &newName})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated dto.ProductResponse
	decode(t, resp, &updated)
	assert.Equal(t, newName, updated.Name)

	resp = e.do(t, http.MethodDelete, "/api/products/salt", owner, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = e.do(t, http.MethodGet, "/api/products/salt", owner, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestInvoiceRenderings(t *testing.T) {
	e := newEnv(t, nil)
	owner := bearer(t, ownerID, entity.RoleStoreOwner)

	resp := e.do(t, http.MethodPost, "/api/stores/"+storeID+"/sales", owner, dto.CompleteSaleRequest{
		Items:         []dto.SaleLineRequest{{ProductID: "rice", Quantity: 1}},
		PaymentMethod: entity.PaymentUPI,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sale dto.SaleResponse
	decode(t, resp, &sale)

	resp = e.do(t, http.MethodGet, "/api/sales/"+sale.ID+"/invoice", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var inv dto.InvoiceResponse
	decode(t, resp, &inv)
	assert.Equal(t, "Sharma Kirana", inv.Store.Name)
	assert.Nil(t, inv.Discount)

	resp = e.do(t, http.MethodGet, "/api/sales/"+sale.ID+"/receipt", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain"))
	text, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(text), "Payment: UPI")

	resp = e.do(t, http.MethodGet, "/api/sales/"+sale.ID+"/invoice.pdf", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "SALE-1710000000000.pdf")
	resp.Body.Close()

	resp = e.do(t, http.MethodGet, "/api/sales/missing/invoice", owner, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestStoresAndDashboards(t *testing.T) {
	e := newEnv(t, nil)
	admin := bearer(t, adminID, entity.RoleAdmin)
	owner := bearer(t, ownerID, entity.RoleStoreOwner)

	resp := e.do(t, http.MethodGet, "/api/stores", owner, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = e.do(t, http.MethodGet, "/api/stores", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stores []dto.StoreResponse
	decode(t, resp, &stores)
	assert.Len(t, stores, 1)

	resp = e.do(t, http.MethodGet, "/api/stores/mine", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mine dto.StoreResponse
	decode(t, resp, &mine)
	assert.Equal(t, storeID, mine.ID)

	resp = e.do(t, http.MethodGet, "/api/dashboard/store", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var dash dto.StoreDashboardResponse
	decode(t, resp, &dash)
	assert.Equal(t, 2, dash.TotalProducts)
	assert.Equal(t, 1, dash.LowStockCount)

	resp = e.do(t, http.MethodPatch, "/api/stores/"+storeID+"/deactivate", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = e.do(t, http.MethodGet, "/api/stores/"+storeID+"/products", owner, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = e.do(t, http.MethodGet, "/api/dashboard/admin", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var adminDash dto.AdminDashboardResponse
	decode(t, resp, &adminDash)
	assert.Equal(t, 1, adminDash.TotalStores)
	assert.Equal(t, 0, adminDash.ActiveStores)
}

func TestCreateStoreOwner(t *testing.T) {
	valid := dto.ProvisionStoreOwnerRequest{
		StoreName: "Gupta General", OwnerName: "Ramesh Gupta",
		OwnerEmail: "ramesh@example.com", OwnerPassword: "secret123",
	}

	t.Run("method not allowed", func(t *testing.T) {
		e := newEnv(t, nil)
		resp := e.do(t, http.MethodGet, "/create-store-owner", bearer(t, adminID, entity.RoleAdmin), nil)
		var body map[string]string
		decode(t, resp, &body)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "Method not allowed", body["error"])
	})

	t.Run("missing token", func(t *testing.T) {
		e := newEnv(t, nil)
		resp := e.do(t, http.MethodPost, "/create-store-owner", "", valid)
		var body map[string]string
		decode(t, resp, &body)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Unauthorized", body["error"])
	})

	t.Run("non admin writes nothing", func(t *testing.T) {
		e := newEnv(t, nil)
		resp := e.do(t, http.MethodPost, "/create-store-owner", bearer(t, ownerID, entity.RoleStoreOwner), valid)
		var body map[string]string
		decode(t, resp, &body)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "Forbidden", body["error"])
		assert.Equal(t, 0, e.users.Len())
		assert.Equal(t, 1, e.stores.Len())
	})

	t.Run("non admin with unreadable body is still forbidden", func(t *testing.T) {
		for _, tc := range []struct{ name, contentType, body string }{
			{"malformed json", "application/json", "{not json"},
			{"empty body without content type", "", ""},
		} {
			t.Run(tc.name, func(t *testing.T) {
				e := newEnv(t, nil)
				resp := e.doRaw(t, http.MethodPost, "/create-store-owner", bearer(t, ownerID, entity.RoleStoreOwner), tc.contentType, tc.body)
				var body map[string]string
				decode(t, resp, &body)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
				assert.Equal(t, "Forbidden", body["error"])
				assert.Equal(t, 1, e.roles.HasRoleCalls)
				assert.Equal(t, 0, e.users.Len())
			})
		}
	})

	t.Run("admin with malformed body", func(t *testing.T) {
		e := newEnv(t, nil)
		resp := e.doRaw(t, http.MethodPost, "/create-store-owner", bearer(t, adminID, entity.RoleAdmin), "application/json", "{not json")
		var body map[string]string
		decode(t, resp, &body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid request body", body["error"])
		assert.Equal(t, 1, e.roles.HasRoleCalls)
	})

	t.Run("role check failure", func(t *testing.T) {
		e := newEnv(t, nil)
		e.roles.HasRoleErr = errors.New("connection reset")
		resp := e.do(t, http.MethodPost, "/create-store-owner", bearer(t, adminID, entity.RoleAdmin), valid)
		var body map[string]string
		decode(t, resp, &body)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "Role check failed", body["error"])
	})

	t.Run("missing fields", func(t *testing.T) {
		e := newEnv(t, nil)
		resp := e.do(t, http.MethodPost, "/create-store-owner", bearer(t, adminID, entity.RoleAdmin), dto.ProvisionStoreOwnerRequest{StoreName: "x"})
		var body map[string]string
		decode(t, resp, &body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Missing required fields", body["error"])
	})

	t.Run("store insert failure compensates", func(t *testing.T) {
		e := newEnv(t, nil)
		e.stores.CreateErr = errors.New("stores_name_check violated")
		resp := e.do(t, http.MethodPost, "/create-store-owner", bearer(t, adminID, entity.RoleAdmin), valid)
		var body map[string]string
		decode(t, resp, &body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body["error"], "stores_name_check")
		assert.Equal(t, 0, e.users.Len())
	})

	t.Run("success", func(t *testing.T) {
		e := newEnv(t, nil)
		resp := e.do(t, http.MethodPost, "/create-store-owner", bearer(t, adminID, entity.RoleAdmin), valid)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out dto.ProvisionStoreOwnerResponse
		decode(t, resp, &out)
		assert.True(t, out.Success)
		assert.NotEmpty(t, out.OwnerID)
		assert.Equal(t, 1, e.users.Len())
		assert.Equal(t, 2, e.stores.Len())

		ok, err := e.roles.HasRole(context.Background(), out.OwnerID, entity.RoleStoreOwner)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("rate limited", func(t *testing.T) {
		e := newEnv(t, stubLimiter{allow: false})
		resp := e.do(t, http.MethodPost, "/create-store-owner", bearer(t, adminID, entity.RoleAdmin), valid)
		var body map[string]string
		decode(t, resp, &body)
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
		assert.Equal(t, "Too many requests", body["error"])
	})
}
