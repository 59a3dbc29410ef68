package trends

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/mention-earth/feed-bot/internal/datasource"
	"github.com/mention-earth/feed-bot/internal/domain"
)

// Resource is the feed API resource holding raw trend records.
const Resource = "hashtags"

// CacheKey is the fixed local-cache key for the normalized trend snapshot.
const CacheKey = "trends"

var ErrMalformedRecord = errors.New("malformed trend record")

// Aggregator owns the authoritative trend snapshot: refreshed wholesale from
// the data source and mirrored to the local cache.
type Aggregator interface {
	Refresh(ctx context.Context) error
	Current() []domain.Trend
}

// Normalize converts a raw record into the canonical Trend shape. The score
// becomes a plain numeric string; no thousands-suffix formatting is applied.
// A record without a hashtag or score is a precondition violation and is
// rejected rather than defaulted, so upstream data issues stay visible.
func Normalize(rec datasource.TrendRecord) (domain.Trend, error) {
	if rec.Hashtag == "" {
		return domain.Trend{}, fmt.Errorf("%w: record %q has no hashtag", ErrMalformedRecord, rec.ID)
	}
	if rec.Score == nil {
		return domain.Trend{}, fmt.Errorf("%w: record %q has no score", ErrMalformedRecord, rec.ID)
	}

	return domain.Trend{
		ID:         rec.ID,
		Topic:      rec.Hashtag,
		CountTotal: strconv.FormatInt(*rec.Score, 10),
	}, nil
}

// NormalizeAll normalizes records preserving source order, rejecting the whole
// batch on the first malformed record.
func NormalizeAll(recs []datasource.TrendRecord) ([]domain.Trend, error) {
	normalized := make([]domain.Trend, 0, len(recs))
	for _, rec := range recs {
		trend, err := Normalize(rec)
		if err != nil {
			return nil, err
		}
		normalized = append(normalized, trend)
	}
	return normalized, nil
}
