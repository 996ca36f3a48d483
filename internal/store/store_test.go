package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Checker-Finance/catalog-api/pkg/model"
)

func newTestStore(t *testing.T) (*HybridStore, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return &HybridStore{redis: rdb, logger: zap.NewNop()}, mr
}

func sampleProduct() model.Product {
	desc := "Wireless"
	return model.Product{
		ID:          uuid.New(),
		Name:        "Mouse",
		Description: &desc,
		Price:       decimal.RequireFromString("120.00"),
		CreatedAt:   time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC),
	}
}

// --- Cache round trip ---

func TestCacheProduct_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)
	defer mr.Close()

	p := sampleProduct()
	store.cacheProduct(ctx, p)

	got := store.cachedProduct(ctx, p.ID)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.Name, got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, *p.Description, *got.Description)
	assert.True(t, p.Price.Equal(got.Price))
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt))
}

func TestCachedProduct_Miss(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)
	defer mr.Close()

	assert.Nil(t, store.cachedProduct(ctx, uuid.New()))
}

func TestCachedProduct_InvalidJSON(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)
	defer mr.Close()

	id := uuid.New()
	require.NoError(t, mr.Set(productKey(id), "not-json"))

	assert.Nil(t, store.cachedProduct(ctx, id))
}

func TestGetProduct_CacheHitSkipsPostgres(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)
	defer mr.Close()

	p := sampleProduct()
	store.cacheProduct(ctx, p)

	// PG is nil; a cache hit must still serve the product.
	got, err := store.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)
}

// --- Nil PG guards ---

func TestInsertProduct_NilPG(t *testing.T) {
	store, mr := newTestStore(t)
	defer mr.Close()

	err := store.InsertProduct(context.Background(), sampleProduct())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "postgres unavailable")
}

func TestListProducts_NilPG(t *testing.T) {
	store, mr := newTestStore(t)
	defer mr.Close()

	items, err := store.ListProducts(context.Background(), 0, 10)
	assert.Nil(t, items)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "postgres unavailable")
}

func TestCountProducts_NilPG(t *testing.T) {
	store, mr := newTestStore(t)
	defer mr.Close()

	_, err := store.CountProducts(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "postgres unavailable")
}

// --- HealthCheck ---

func TestHealthCheck_Success(t *testing.T) {
	store, mr := newTestStore(t)
	defer mr.Close()

	require.NoError(t, store.HealthCheck(context.Background()))
}

func TestHealthCheck_RedisNil(t *testing.T) {
	store := &HybridStore{redis: nil}
	err := store.HealthCheck(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "redis not initialized")
}

func TestHealthCheck_RedisDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := &HybridStore{redis: rdb}

	// Close miniredis to simulate failure
	mr.Close()

	err = store.HealthCheck(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
}

// --- Close ---

func TestClose_RedisOnly(t *testing.T) {
	store, mr := newTestStore(t)
	defer mr.Close()

	require.NoError(t, store.Close())
}

func TestClose_NilComponents(t *testing.T) {
	store := &HybridStore{}
	require.NoError(t, store.Close())
}

// --- Constructor ---

func TestNewHybrid_NilLoggerDefaults(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	st, err := NewHybrid(mr.Addr(), 0, "", PGPoolConfig{}, nil)
	require.NoError(t, err)
	require.NotNil(t, st)
	require.NoError(t, st.Close())
}

func TestNewHybrid_InvalidRedis(t *testing.T) {
	_, err := NewHybrid("localhost:1", 0, "", PGPoolConfig{}, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
}

func TestNewHybrid_InvalidPGURL(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	_, err = NewHybrid(mr.Addr(), 0, "not-a-valid-pg-url", PGPoolConfig{}, zap.NewNop())
	assert.Error(t, err)
}
