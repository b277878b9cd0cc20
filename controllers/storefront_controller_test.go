package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-service/clients"
	"storefront-service/controllers"
	apperrors "storefront-service/errors"
	"storefront-service/logger"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/routes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Mock services ---

type mockCart struct {
	getFn    func(ctx context.Context) (*clients.Response, error)
	addFn    func(ctx context.Context, productID int64, quantity int) (*clients.Response, error)
	deleteFn func(ctx context.Context, id int64) (*clients.Response, error)
	updateFn func(ctx context.Context, id int64, quantity int) (*clients.Response, error)
}

func (m *mockCart) GetCart(ctx context.Context) (*clients.Response, error) { return m.getFn(ctx) }
func (m *mockCart) AddBookToCart(ctx context.Context, productID int64, quantity int) (*clients.Response, error) {
	return m.addFn(ctx, productID, quantity)
}
func (m *mockCart) DeleteCart(ctx context.Context, id int64) (*clients.Response, error) {
	return m.deleteFn(ctx, id)
}
func (m *mockCart) UpdateCartItemQuantity(ctx context.Context, id int64, quantity int) (*clients.Response, error) {
	return m.updateFn(ctx, id, quantity)
}

type mockOrders struct {
	createFn func(ctx context.Context, req models.OrderRequest) (*clients.Response, error)
	payFn    func(ctx context.Context, id int64) (*clients.Response, error)
}

func (m *mockOrders) CreateOrder(ctx context.Context, req models.OrderRequest) (*clients.Response, error) {
	return m.createFn(ctx, req)
}
func (m *mockOrders) PayOrder(ctx context.Context, id int64) (*clients.Response, error) {
	return m.payFn(ctx, id)
}

// --- Helpers ---

func setupRouter(cart controllers.CartService, orders controllers.OrderService) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(apperrors.ErrorMiddleware())
	routes.RegisterRoutes(r, controllers.NewStorefrontController(cart, orders))
	return r
}

func do(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func okResponse(body string) *clients.Response {
	return &clients.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       []byte(body),
	}
}

// --- Tests ---

func TestController_GetCart_RelaysUpstream(t *testing.T) {
	cart := &mockCart{getFn: func(context.Context) (*clients.Response, error) {
		return okResponse(`{"code":200,"message":"ok","data":[]}`), nil
	}}
	r := setupRouter(cart, &mockOrders{})

	w := do(r, http.MethodGet, "/bff/cart", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":200,"message":"ok","data":[]}`, w.Body.String())
}

func TestController_RequiresUser(t *testing.T) {
	r := setupRouter(&mockCart{}, &mockOrders{})

	req, _ := http.NewRequest(http.MethodGet, "/bff/cart", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestController_AddToCart(t *testing.T) {
	var gotProduct int64
	var gotQty int
	cart := &mockCart{addFn: func(_ context.Context, productID int64, quantity int) (*clients.Response, error) {
		gotProduct, gotQty = productID, quantity
		return okResponse(`{"code":200,"message":"added","data":null}`), nil
	}}
	r := setupRouter(cart, &mockOrders{})

	w := do(r, http.MethodPost, "/bff/cart", models.AddCartItemRequest{ProductID: 8, Quantity: 2})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(8), gotProduct)
	assert.Equal(t, 2, gotQty)
}

func TestController_AddToCart_BadBody(t *testing.T) {
	r := setupRouter(&mockCart{}, &mockOrders{})

	w := do(r, http.MethodPost, "/bff/cart", map[string]string{"productId": "x"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestController_AddToCart_UpstreamErrorRelayed(t *testing.T) {
	body := []byte(`{"code":409,"message":"stock exhausted","data":null}`)
	cart := &mockCart{addFn: func(context.Context, int64, int) (*clients.Response, error) {
		return nil, apperrors.FromStatus(http.StatusConflict, "stock exhausted", body)
	}}
	r := setupRouter(cart, &mockOrders{})

	w := do(r, http.MethodPost, "/bff/cart", models.AddCartItemRequest{ProductID: 1, Quantity: 1})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, string(body), w.Body.String())
}

func TestController_RemoveCartItem(t *testing.T) {
	var gotID int64
	cart := &mockCart{deleteFn: func(_ context.Context, id int64) (*clients.Response, error) {
		gotID = id
		return okResponse(`{"code":200,"message":"ok","data":null}`), nil
	}}
	r := setupRouter(cart, &mockOrders{})

	w := do(r, http.MethodDelete, "/bff/cart/31", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(31), gotID)
}

func TestController_InvalidID(t *testing.T) {
	r := setupRouter(&mockCart{}, &mockOrders{})

	w := do(r, http.MethodDelete, "/bff/cart/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/bff/orders/abc/pay", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestController_UpdateCartItem(t *testing.T) {
	var gotID int64
	var gotQty int
	cart := &mockCart{updateFn: func(_ context.Context, id int64, quantity int) (*clients.Response, error) {
		gotID, gotQty = id, quantity
		return okResponse(`{"code":200,"message":"ok","data":null}`), nil
	}}
	r := setupRouter(cart, &mockOrders{})

	w := do(r, http.MethodPatch, "/bff/cart/4", models.UpdateQuantityRequest{Quantity: 6})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(4), gotID)
	assert.Equal(t, 6, gotQty)
}

func TestController_Checkout_TransportFailureIsBadGateway(t *testing.T) {
	orders := &mockOrders{createFn: func(context.Context, models.OrderRequest) (*clients.Response, error) {
		return nil, errors.New("dial tcp: connection refused")
	}}
	r := setupRouter(&mockCart{}, orders)

	w := do(r, http.MethodPost, "/bff/checkout", models.OrderRequest{CartItemIDs: []string{"1"}, PaymentMethod: "ALIPAY"})

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestController_PayOrder(t *testing.T) {
	payload := `{"code":200,"message":"ok","data":{"paymentForm":"<form/>","orderId":"55","totalAmount":"12.00","paymentMethod":"ALIPAY"}}`
	var gotID int64
	orders := &mockOrders{payFn: func(_ context.Context, id int64) (*clients.Response, error) {
		gotID = id
		return okResponse(payload), nil
	}}
	r := setupRouter(&mockCart{}, orders)

	w := do(r, http.MethodPost, "/bff/orders/55/pay", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(55), gotID)
	assert.JSONEq(t, payload, w.Body.String())
}

func TestController_PayOrder_LogsCaller(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })

	orders := &mockOrders{payFn: func(context.Context, int64) (*clients.Response, error) {
		return okResponse(`{"code":200,"message":"ok","data":{"paymentForm":"<form/>","orderId":"55","totalAmount":"12.00","paymentMethod":"ALIPAY"}}`), nil
	}}
	r := setupRouter(&mockCart{}, orders)

	w := do(r, http.MethodPost, "/bff/orders/55/pay", nil)

	require.Equal(t, http.StatusOK, w.Code)
	entries := logs.FilterMessage("payment initiated").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "user-1", fields["user_id"])
	assert.Equal(t, "55", fields["order_id"])
	assert.Equal(t, "ALIPAY", fields["payment_method"])
}

// End to end through the real clients against a fake storefront API.
func TestController_EndToEnd_ForwardsIdentity(t *testing.T) {
	var upstreamPath, upstreamUser, upstreamAuth, upstreamRID string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamPath = r.Method + " " + r.URL.Path
		upstreamUser = r.Header.Get("X-User-ID")
		upstreamAuth = r.Header.Get("Authorization")
		upstreamRID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":200,"message":"ok","data":null}`))
	}))
	defer upstream.Close()

	api := clients.NewRequestClient(upstream.URL, time.Second)
	r := setupRouter(clients.NewCartClient(api, "/api/cart", nil), clients.NewOrderClient(api))

	req, _ := http.NewRequest(http.MethodPatch, "/bff/cart/12", bytes.NewReader([]byte(`{"quantity":3}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-7")
	req.Header.Set("Authorization", "Bearer t")
	req.Header.Set("X-Request-ID", "rid-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "PATCH /api/cart/12", upstreamPath)
	assert.Equal(t, "user-7", upstreamUser)
	assert.Equal(t, "Bearer t", upstreamAuth)
	assert.Equal(t, "rid-1", upstreamRID)
}
