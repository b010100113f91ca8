package cache

import (
	"context"
	"testing"
	"time"

	"checkout-service/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func setupRedis(t *testing.T) *RedisClient {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	addr, err := ctr.PortEndpoint(ctx, "6379/tcp", "")
	require.NoError(t, err)

	rc, err := NewRedisClient(addr, "", 0, time.Minute, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })
	return rc
}

func TestProductCache_RoundTripAndInvalidate(t *testing.T) {
	rc := setupRedis(t)
	ctx := context.Background()

	sku := "MUG-1"
	p := &models.Product{
		ID:            uuid.New(),
		Name:          "Mug",
		Slug:          "mug",
		SKU:           &sku,
		Price:         decimal.RequireFromString("12.50"),
		DiscountPrice: decimal.NewNullDecimal(decimal.RequireFromString("9.99")),
		TaxPercent:    decimal.RequireFromString("13"),
		Stock:         4,
		IsActive:      true,
	}

	_, ok := rc.GetProduct(ctx, p.ID)
	assert.False(t, ok)

	rc.SetProduct(ctx, p)
	got, ok := rc.GetProduct(ctx, p.ID)
	require.True(t, ok)
	assert.Equal(t, "Mug", got.Name)
	assert.True(t, got.FinalPrice().Equal(decimal.RequireFromString("9.99")))
	assert.Equal(t, "MUG-1", *got.SKU)

	rc.InvalidateProduct(ctx, p.ID, uuid.New())
	_, ok = rc.GetProduct(ctx, p.ID)
	assert.False(t, ok)
}

func TestIdempotency_FirstWriteWins(t *testing.T) {
	rc := setupRedis(t)
	ctx := context.Background()
	user := uuid.New()

	got, err := rc.LookupIdempotent(ctx, user, "k1")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, rc.RememberIdempotent(ctx, user, "k1", IdempotentResponse{Status: 201, Body: []byte(`{"n":1}`)}, time.Minute))
	require.NoError(t, rc.RememberIdempotent(ctx, user, "k1", IdempotentResponse{Status: 201, Body: []byte(`{"n":2}`)}, time.Minute))

	got, err = rc.LookupIdempotent(ctx, user, "k1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 201, got.Status)
	assert.JSONEq(t, `{"n":1}`, string(got.Body))

	other, err := rc.LookupIdempotent(ctx, uuid.New(), "k1")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestIdempotency_ClaimIsExclusiveUntilReleased(t *testing.T) {
	rc := setupRedis(t)
	ctx := context.Background()
	user := uuid.New()

	ok, err := rc.ClaimIdempotent(ctx, user, "k1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = rc.ClaimIdempotent(ctx, user, "k1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = rc.ClaimIdempotent(ctx, uuid.New(), "k1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, rc.ReleaseIdempotent(ctx, user, "k1"))
	ok, err = rc.ClaimIdempotent(ctx, user, "k1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
