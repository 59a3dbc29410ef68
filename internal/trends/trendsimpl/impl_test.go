package trendsimpl

import (
	"context"
	"errors"
	"reflect"
	"testing"

	mock_cache "github.com/mention-earth/feed-bot/internal/cache/mocks"
	"github.com/mention-earth/feed-bot/internal/datasource"
	mock_datasource "github.com/mention-earth/feed-bot/internal/datasource/mocks"
	"github.com/mention-earth/feed-bot/internal/domain"
	"github.com/mention-earth/feed-bot/internal/trends"
	"github.com/mention-earth/feed-bot/pkg/config"
	"github.com/mention-earth/feed-bot/pkg/logger"
	"go.uber.org/mock/gomock"
)

func score(v int64) *int64 {
	return &v
}

func newAggregator(t *testing.T) (*AggregatorImpl, *mock_datasource.MockClient, *mock_cache.MockStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	source := mock_datasource.NewMockClient(ctrl)
	store := mock_cache.NewMockStore(ctrl)

	agg := New(Opts{
		Source: source,
		Cache:  store,
		Logger: logger.New(logger.Opts{Env: "development"}),
		Config: &config.Config{},
	})
	return agg, source, store
}

func TestRefresh(t *testing.T) {
	agg, source, store := newAggregator(t)
	ctx := context.Background()

	records := []datasource.TrendRecord{
		{ID: "1", Hashtag: "#Go", Score: score(42)},
		{ID: "2", Hashtag: "#Redis", Score: score(7)},
	}
	want := []domain.Trend{
		{ID: "1", Topic: "#Go", CountTotal: "42"},
		{ID: "2", Topic: "#Redis", CountTotal: "7"},
	}

	source.EXPECT().FetchTrends(ctx, "hashtags").Return(records, nil)
	store.EXPECT().Set(ctx, "trends", want).Return(nil)

	if err := agg.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got := agg.Current(); !reflect.DeepEqual(got, want) {
		t.Errorf("Current = %v, want %v", got, want)
	}
}

func TestRefreshFetchFailureKeepsState(t *testing.T) {
	agg, source, store := newAggregator(t)
	ctx := context.Background()

	source.EXPECT().FetchTrends(ctx, "hashtags").Return(
		[]datasource.TrendRecord{{ID: "1", Hashtag: "#Go", Score: score(42)}}, nil)
	store.EXPECT().Set(ctx, "trends", gomock.Any()).Return(nil)
	if err := agg.Refresh(ctx); err != nil {
		t.Fatalf("seed Refresh: %v", err)
	}
	before := agg.Current()

	// Failed fetch: no mutation and no cache write.
	source.EXPECT().FetchTrends(ctx, "hashtags").Return(nil, errors.New("network down"))

	if err := agg.Refresh(ctx); err == nil {
		t.Fatal("expected error from failed refresh")
	}
	if got := agg.Current(); !reflect.DeepEqual(got, before) {
		t.Errorf("trend list changed on failed refresh: %v", got)
	}
}

func TestRefreshRejectsMalformedBatch(t *testing.T) {
	agg, source, _ := newAggregator(t)
	ctx := context.Background()

	source.EXPECT().FetchTrends(ctx, "hashtags").Return(
		[]datasource.TrendRecord{
			{ID: "1", Hashtag: "#Go", Score: score(42)},
			{ID: "2", Hashtag: "", Score: score(7)},
		}, nil)

	err := agg.Refresh(ctx)
	if !errors.Is(err, trends.ErrMalformedRecord) {
		t.Fatalf("err = %v, want ErrMalformedRecord", err)
	}
	if got := agg.Current(); len(got) != 0 {
		t.Errorf("partial update applied: %v", got)
	}
}

func TestRefreshToleratesCacheFailure(t *testing.T) {
	agg, source, store := newAggregator(t)
	ctx := context.Background()

	source.EXPECT().FetchTrends(ctx, "hashtags").Return(
		[]datasource.TrendRecord{{ID: "1", Hashtag: "#Go", Score: score(42)}}, nil)
	store.EXPECT().Set(ctx, "trends", gomock.Any()).Return(errors.New("redis down"))

	if err := agg.Refresh(ctx); err != nil {
		t.Fatalf("Refresh should succeed despite cache failure: %v", err)
	}
	if got := agg.Current(); len(got) != 1 {
		t.Errorf("in-memory state missing: %v", got)
	}
}

func TestCurrentReturnsCopy(t *testing.T) {
	agg, source, store := newAggregator(t)
	ctx := context.Background()

	source.EXPECT().FetchTrends(ctx, "hashtags").Return(
		[]datasource.TrendRecord{{ID: "1", Hashtag: "#Go", Score: score(42)}}, nil)
	store.EXPECT().Set(ctx, "trends", gomock.Any()).Return(nil)
	if err := agg.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	got := agg.Current()
	got[0].Topic = "#mutated"
	if agg.Current()[0].Topic != "#Go" {
		t.Error("Current exposed internal slice")
	}
}
