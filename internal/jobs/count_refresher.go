package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Checker-Finance/catalog-api/internal/metrics"
)

// ProductCounter defines the subset of the store the refresher needs.
type ProductCounter interface {
	CountProducts(ctx context.Context) (int, error)
}

// CountRefresher periodically reads the total product count and exports it
// as a Prometheus gauge, so dashboards don't have to hit the database.
type CountRefresher struct {
	logger   *zap.Logger
	store    ProductCounter
	interval time.Duration
	stopCh   chan struct{}
}

// NewCountRefresher constructs a background job that runs periodically.
func NewCountRefresher(logger *zap.Logger, store ProductCounter, interval time.Duration) *CountRefresher {
	return &CountRefresher{
		logger:   logger,
		store:    store,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start runs the refresh loop until the context is canceled.
func (r *CountRefresher) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("count_refresher.started", zap.Duration("interval", r.interval))
	r.runOnce(ctx)

	for {
		select {
		case <-ticker.C:
			r.runOnce(ctx)
		case <-r.stopCh:
			r.logger.Info("count_refresher.stopped (manual stop)")
			return
		case <-ctx.Done():
			r.logger.Info("count_refresher.stopped (context canceled)")
			return
		}
	}
}

// Stop gracefully halts the refresher.
func (r *CountRefresher) Stop() {
	close(r.stopCh)
}

func (r *CountRefresher) runOnce(ctx context.Context) {
	count, err := r.store.CountProducts(ctx)
	if err != nil {
		r.logger.Warn("count_refresher.count_failed", zap.Error(err))
		return
	}
	metrics.ProductsTotal.Set(float64(count))
}
