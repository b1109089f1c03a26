package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/brazcamiseteria/storefront/internal/cart"
	"github.com/brazcamiseteria/storefront/internal/catalog"
	"github.com/brazcamiseteria/storefront/internal/checkout"
	"github.com/brazcamiseteria/storefront/internal/domain"
	"github.com/brazcamiseteria/storefront/internal/metrics"
	"github.com/brazcamiseteria/storefront/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSessionID = "sess-1"

// --- Mocks ---

type catalogMock struct {
	menu     *domain.Menu
	index    *domain.IndexPage
	paths    []domain.PathEntry
	category *domain.CategoryPage
	page     *domain.ProductPage
	gallery  *domain.CatalogPage
	products map[string]*domain.Product
	err      error
}

func (m *catalogMock) Menu(context.Context) (*domain.Menu, error) { return m.menu, m.err }

func (m *catalogMock) IndexPage(context.Context) (*domain.IndexPage, error) { return m.index, m.err }

func (m *catalogMock) CategoryPaths(context.Context) ([]domain.PathEntry, error) {
	return m.paths, m.err
}

func (m *catalogMock) CategoryPage(context.Context, string) (*domain.CategoryPage, error) {
	return m.category, m.err
}

func (m *catalogMock) ProductPaths(context.Context) ([]domain.PathEntry, error) {
	return m.paths, m.err
}

func (m *catalogMock) ProductPage(context.Context, string) (*domain.ProductPage, error) {
	return m.page, m.err
}

func (m *catalogMock) CatalogPage(context.Context, string) (*domain.CatalogPage, error) {
	return m.gallery, m.err
}

func (m *catalogMock) Product(_ context.Context, id string) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return p, nil
}

type authMock struct {
	client     *domain.ClientIdentity
	message    string
	err        error
	registered *domain.Registration
}

func (m *authMock) Login(context.Context, string, string) (*domain.ClientIdentity, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	return m.client, m.message, nil
}

func (m *authMock) Register(_ context.Context, reg domain.Registration) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.registered = &reg
	return m.message, nil
}

type ordersMock struct {
	orders        []domain.Order
	order         *domain.Order
	paymentStatus domain.CheckoutPaymentStatus
	details       *domain.PaymentDetails
	err           error
	gotClientID   string
}

func (m *ordersMock) ClientOrders(_ context.Context, clientID string) ([]domain.Order, error) {
	m.gotClientID = clientID
	return m.orders, m.err
}

func (m *ordersMock) Order(context.Context, string) (*domain.Order, domain.CheckoutPaymentStatus, error) {
	return m.order, m.paymentStatus, m.err
}

func (m *ordersMock) PaymentDetails(context.Context, string, string) (*domain.PaymentDetails, error) {
	return m.details, m.err
}

type orderCreatorMock struct {
	mu      sync.Mutex
	calls   int
	last    domain.OrderRequest
	created *domain.OrderCreated
	err     error
}

func (m *orderCreatorMock) CreateOrder(_ context.Context, req domain.OrderRequest) (*domain.OrderCreated, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.last = req
	if m.err != nil {
		return nil, m.err
	}
	return m.created, nil
}

// --- helpers ---

type testEnv struct {
	handler  http.Handler
	carts    *cart.Registry
	sessions *session.MemoryStore
	catalog  *catalogMock
	auth     *authMock
	orders   *ordersMock
	creator  *orderCreatorMock
}

func camiseta() *domain.Product {
	return &domain.Product{
		ID:        "prod-1",
		Name:      "Camisa Polo",
		Thumbnail: "https://img.example.com/polo.png",
		Price:     decimal.RequireFromString("59.90"),
		Category:  &domain.Category{ID: "cat-1", Name: "Polos"},
		Sizes: []domain.Size{
			{ID: "size-m", Label: "M"},
			{ID: "size-g", Label: "G"},
		},
	}
}

func testClient() *domain.ClientIdentity {
	return &domain.ClientIdentity{ID: "client-1", Name: "Maria", Email: "maria@example.com"}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zap.NewNop()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	env := &testEnv{
		carts:    cart.NewRegistry(time.Hour, logger),
		sessions: session.NewMemoryStore(time.Hour),
		catalog:  &catalogMock{products: map[string]*domain.Product{"prod-1": camiseta()}},
		auth:     &authMock{},
		orders:   &ordersMock{},
		creator: &orderCreatorMock{created: &domain.OrderCreated{
			OrderID:     "order-9",
			Message:     "Pedido realizado",
			RedirectURL: "https://pay.example.com/c/9",
		}},
	}

	submitter := checkout.NewSubmitter(env.creator, nil, m, logger)
	env.handler = NewRouter(Handlers{
		Catalog:  NewCatalogHandler(env.catalog, 5*time.Second),
		Session:  NewSessionHandler(env.auth, env.sessions, env.carts, SessionCookie{TTL: time.Hour}, 5*time.Second, logger),
		Cart:     NewCartHandler(env.catalog, env.carts, cart.NewBuilder(), m, 5*time.Second, logger),
		Checkout: NewCheckoutHandler(submitter, env.carts, env.sessions, logger),
		Orders:   NewOrdersHandler(env.orders, env.sessions, 5*time.Second, logger),
		Metrics:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}, RouterConfig{
		RequestTimeout:     5 * time.Second,
		MaxRequestBodySize: 1 << 20,
		Cookie:             SessionCookie{TTL: time.Hour},
	}, logger)

	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return e.doAs(t, testSessionID, method, path, body)
}

func (e *testEnv) doAs(t *testing.T, sessionID, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sessionID})

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	require.NoError(t, e.sessions.Set(context.Background(), testSessionID, testClient()))
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	return nil
}
