package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Checker-Finance/catalog-api/internal/metrics"
	"github.com/Checker-Finance/catalog-api/pkg/model"
)

// Store defines the contract for persisting and reading product records.
type Store interface {
	InsertProduct(ctx context.Context, p model.Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	ListProducts(ctx context.Context, skip, take int) ([]model.Product, error)
	CountProducts(ctx context.Context) (int, error)
	HealthCheck(ctx context.Context) error
	Close() error
}

// Products are immutable once written, so cached entries never go stale.
// The TTL only bounds memory use.
const productCacheTTL = 24 * time.Hour

type HybridStore struct {
	redis  *redis.Client
	PG     *pgxpool.Pool
	logger *zap.Logger
}

type PGPoolConfig struct {
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
}

// NewHybrid creates a Postgres-backed store with a Redis read-through cache
// for point lookups.
func NewHybrid(redisAddr string, redisDB int, pgURL string, pgPoolConfig PGPoolConfig, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
		DB:   redisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	var pgPool *pgxpool.Pool
	if pgURL != "" {
		cfg, err := pgxpool.ParseConfig(pgURL)
		if err != nil {
			return nil, fmt.Errorf("invalid pg config: %w", err)
		}
		if pgPoolConfig.MaxConns > 0 {
			cfg.MaxConns = pgPoolConfig.MaxConns
		}
		if pgPoolConfig.MinConns > 0 {
			cfg.MinConns = pgPoolConfig.MinConns
		}
		if pgPoolConfig.MaxConnLifetime > 0 {
			cfg.MaxConnLifetime = pgPoolConfig.MaxConnLifetime
		}
		if pgPoolConfig.MaxConnIdleTime > 0 {
			cfg.MaxConnIdleTime = pgPoolConfig.MaxConnIdleTime
		}
		if pgPoolConfig.HealthCheckPeriod > 0 {
			cfg.HealthCheckPeriod = pgPoolConfig.HealthCheckPeriod
		}
		pgPool, err = pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
	}

	return &HybridStore{redis: rdb, PG: pgPool, logger: logger}, nil
}

// InsertProduct writes one product row and primes the lookup cache.
func (s *HybridStore) InsertProduct(ctx context.Context, p model.Product) error {
	defer metrics.ObserveStoreCall("insert_product", time.Now())
	if s.PG == nil {
		return fmt.Errorf("postgres unavailable")
	}
	_, err := s.PG.Exec(ctx, `
		INSERT INTO catalog.products (id, name, description, price, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, p.ID, p.Name, p.Description, p.Price, p.CreatedAt)
	if err != nil {
		s.logger.Error("store.pg.insert_product_failed", zap.Error(err))
		return err
	}

	s.cacheProduct(ctx, p)
	return nil
}

// GetProduct returns (nil, nil) when no record matches id.
func (s *HybridStore) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	defer metrics.ObserveStoreCall("get_product", time.Now())
	if p := s.cachedProduct(ctx, id); p != nil {
		return p, nil
	}

	if s.PG == nil {
		return nil, fmt.Errorf("postgres unavailable")
	}

	row := s.PG.QueryRow(ctx, `
		SELECT id, name, description, price, created_at
		FROM catalog.products
		WHERE id = $1;
	`, id)

	var p model.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("GetProduct scan failed: %w", err)
	}

	s.cacheProduct(ctx, p)
	return &p, nil
}

// ListProducts returns one page ordered by creation time ascending.
// The id column breaks ties so pagination stays stable across requests.
func (s *HybridStore) ListProducts(ctx context.Context, skip, take int) ([]model.Product, error) {
	defer metrics.ObserveStoreCall("list_products", time.Now())
	if s.PG == nil {
		return nil, fmt.Errorf("postgres unavailable")
	}
	rows, err := s.PG.Query(ctx, `
		SELECT id, name, description, price, created_at
		FROM catalog.products
		ORDER BY created_at ASC, id ASC
		OFFSET $1 LIMIT $2;
	`, skip, take)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *HybridStore) CountProducts(ctx context.Context) (int, error) {
	defer metrics.ObserveStoreCall("count_products", time.Now())
	if s.PG == nil {
		return 0, fmt.Errorf("postgres unavailable")
	}
	var count int
	if err := s.PG.QueryRow(ctx, `SELECT COUNT(*) FROM catalog.products;`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func productKey(id uuid.UUID) string {
	return fmt.Sprintf("product:%s", id)
}

// cacheProduct is best-effort; a cache write failure never fails the caller.
func (s *HybridStore) cacheProduct(ctx context.Context, p model.Product) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, productKey(p.ID), data, productCacheTTL).Err(); err != nil {
		s.logger.Warn("store.redis.cache_product_failed",
			zap.String("product_id", p.ID.String()),
			zap.Error(err))
	}
}

func (s *HybridStore) cachedProduct(ctx context.Context, id uuid.UUID) *model.Product {
	if s.redis == nil {
		return nil
	}
	data, err := s.redis.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("store.redis.get_product_failed", zap.Error(err))
		}
		return nil
	}

	var p model.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil
	}
	return &p
}

func (s *HybridStore) HealthCheck(ctx context.Context) error {
	if s.redis == nil {
		return fmt.Errorf("redis not initialized")
	}
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	if s.PG != nil {
		if err := s.PG.Ping(ctx); err != nil {
			return fmt.Errorf("postgres ping failed: %w", err)
		}
	}
	return nil
}

func (s *HybridStore) Close() error {
	if s.PG != nil {
		s.PG.Close()
	}
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}
