package datasource

import "context"

// TrendRecord is the raw shape served by the feed API for the "hashtags"
// resource. Score is a pointer so a missing field is distinguishable from a
// genuine zero.
type TrendRecord struct {
	ID      string `json:"id"`
	Hashtag string `json:"hashtag"`
	Score   *int64 `json:"score"`
}

//go:generate go run go.uber.org/mock/mockgen -source=datasource.go -destination=mocks/mock.go

// Client fetches raw records from the remote feed API, keyed by resource name.
type Client interface {
	FetchTrends(ctx context.Context, resource string) ([]TrendRecord, error)
}
