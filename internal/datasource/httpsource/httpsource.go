package httpsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/mention-earth/feed-bot/internal/datasource"
	"github.com/mention-earth/feed-bot/pkg/config"
	"github.com/mention-earth/feed-bot/pkg/logger"
	"github.com/mention-earth/feed-bot/pkg/retry"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// HTTPSource fetches resources from the feed API as JSON arrays.
type HTTPSource struct {
	baseURL string
	client  *http.Client
	logger  logger.Logger
}

func New(opts Opts) *HTTPSource {
	return &HTTPSource{
		baseURL: strings.TrimRight(opts.Config.Feed.ApiURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  opts.Logger.WithComponent("HTTPSource"),
	}
}

var _ datasource.Client = (*HTTPSource)(nil)

func (s *HTTPSource) FetchTrends(ctx context.Context, resource string) ([]datasource.TrendRecord, error) {
	var records []datasource.TrendRecord

	err := retry.Do(ctx, s.logger, "fetch "+resource, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/"+resource, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
		}
		req.Header.Set("Accept", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to fetch %s: %w", resource, err)
		}
		defer func() {
			if cerr := resp.Body.Close(); cerr != nil {
				s.logger.Error("Error closing response body", "error", cerr)
			}
		}()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			err := fmt.Errorf("unexpected status %d fetching %s: %s", resp.StatusCode, resource, body)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return backoff.Permanent(err)
			}
			return err
		}

		records = records[:0]
		if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode %s response: %w", resource, err))
		}
		return nil
	}, retry.DefaultConfig())

	if err != nil {
		return nil, err
	}

	s.logger.Debug("Fetched records", "resource", resource, "count", len(records))
	return records, nil
}
