package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"checkout-service/internal/metrics"
	"checkout-service/internal/models"
	"checkout-service/internal/service"
	"checkout-service/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() { gin.SetMode(gin.TestMode) }

type stubCatalog struct {
	service.CatalogService
	lastRole service.Role
	sawAuth  bool
}

func (s *stubCatalog) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	s.lastRole, s.sawAuth = service.RoleFromContext(ctx)
	return &models.Product{ID: id, Name: "Mug", Slug: "mug", Price: decimal.RequireFromString("15"), IsActive: true}, nil
}

type stubCart struct{ service.CartService }

func (stubCart) GetCart(ctx context.Context) (*service.CartView, error) {
	if _, ok := service.UserIDFromContext(ctx); !ok {
		return nil, service.ErrUnauthorized
	}
	return &service.CartView{Cart: &models.Cart{ID: uuid.New()}}, nil
}

func newTestRouter(t *testing.T, health func(context.Context) error) (*gin.Engine, *token.HSProvider, *stubCatalog) {
	t.Helper()
	tokens := token.NewHSProvider("secret", "auth", "checkout")
	catalog := &stubCatalog{}
	r := Router(Deps{
		Catalog: catalog,
		Cart:    stubCart{},
		Tokens:  tokens,
		Metrics: metrics.New(),
		Health:  health,
	}, zap.NewNop())
	return r, tokens, catalog
}

func get(r http.Handler, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _, _ := newTestRouter(t, nil)
	w := get(r, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	down, _, _ := newTestRouter(t, func(context.Context) error { return errors.New("db down") })
	w = get(down, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCartRequiresToken(t *testing.T) {
	r, tokens, _ := newTestRouter(t, nil)

	w := get(r, "/api/v1/cart", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	tok, _, err := tokens.SignAccess(uuid.New(), "ROLE_CUSTOMER", "", time.Minute)
	require.NoError(t, err)
	w = get(r, "/api/v1/cart", tok)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestPublicProductSeesOptionalPrincipal(t *testing.T) {
	r, tokens, catalog := newTestRouter(t, nil)
	id := uuid.New()

	w := get(r, "/api/v1/products/"+id.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, catalog.sawAuth)

	tok, _, err := tokens.SignAccess(uuid.New(), "ADMIN", "", time.Minute)
	require.NoError(t, err)
	w = get(r, "/api/v1/products/"+id.String(), tok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, catalog.sawAuth)
	assert.Equal(t, service.RoleAdmin, catalog.lastRole)

	// an invalid token on a public route is ignored
	w = get(r, "/api/v1/products/"+id.String(), "garbage")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsEndpointCountsRequests(t *testing.T) {
	r, _, _ := newTestRouter(t, nil)
	_ = get(r, "/health", "")

	w := get(r, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `handler="/health"`), body)
}
