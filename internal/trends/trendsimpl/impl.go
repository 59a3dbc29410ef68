package trendsimpl

import (
	"context"
	"fmt"
	"sync"

	"github.com/mention-earth/feed-bot/internal/cache"
	"github.com/mention-earth/feed-bot/internal/datasource"
	"github.com/mention-earth/feed-bot/internal/domain"
	"github.com/mention-earth/feed-bot/internal/trends"
	"github.com/mention-earth/feed-bot/pkg/config"
	"github.com/mention-earth/feed-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Source datasource.Client
	Cache  cache.Store
	Logger logger.Logger
	Config *config.Config
}

type AggregatorImpl struct {
	Source datasource.Client
	Cache  cache.Store
	Logger logger.Logger
	Config *config.Config

	// mu serializes refreshes (last caller wins) and guards current.
	mu      sync.Mutex
	current []domain.Trend
}

func New(opts Opts) *AggregatorImpl {
	return &AggregatorImpl{
		Source: opts.Source,
		Cache:  opts.Cache,
		Logger: opts.Logger.WithComponent("TrendAggregator"),
		Config: opts.Config,
	}
}

var _ trends.Aggregator = (*AggregatorImpl)(nil)

// Refresh fetches raw trend records, normalizes them, replaces the in-memory
// list wholesale and mirrors the snapshot to the cache. A fetch or
// normalization failure is logged and leaves the previous list untouched; a
// cache write failure is logged only, since the in-memory state is already
// consistent.
func (a *AggregatorImpl) Refresh(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	records, err := a.Source.FetchTrends(ctx, trends.Resource)
	if err != nil {
		a.Logger.Error("Failed to fetch trends", "resource", trends.Resource, "error", err)
		return fmt.Errorf("failed to fetch trends: %w", err)
	}

	normalized, err := trends.NormalizeAll(records)
	if err != nil {
		a.Logger.Error("Rejected trend batch", "error", err)
		return err
	}

	a.current = normalized
	a.Logger.Info("Refreshed trends", "count", len(normalized))

	if err := a.Cache.Set(ctx, trends.CacheKey, normalized); err != nil {
		a.Logger.Error("Failed to persist trends to cache", "key", trends.CacheKey, "error", err)
	}

	return nil
}

// Current returns a copy of the latest snapshot.
func (a *AggregatorImpl) Current() []domain.Trend {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]domain.Trend, len(a.current))
	copy(out, a.current)
	return out
}
