package searchindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/mention-earth/feed-bot/internal/domain"
	"github.com/mention-earth/feed-bot/internal/search"
	"github.com/mention-earth/feed-bot/pkg/config"
	"github.com/mention-earth/feed-bot/pkg/logger"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/fx"
)

const indexName = "posts"

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// Index adapts Elasticsearch as a search source over the post feed.
type Index struct {
	client *elasticsearch.Client
	logger logger.Logger
}

func New(opts Opts) (*Index, error) {
	cfg := elasticsearch.Config{}
	if opts.Config.Elastic.Addr != "" {
		cfg.Addresses = []string{opts.Config.Elastic.Addr}
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	return &Index{
		client: client,
		logger: opts.Logger.WithComponent("SearchIndex"),
	}, nil
}

var _ search.Source = (*Index)(nil)

// EnsureIndex creates the posts index if it does not exist yet.
func (idx *Index) EnsureIndex(ctx context.Context) error {
	mapping := `{
		"mappings": {
			"properties": {
				"id": {"type": "keyword"},
				"name": {"type": "text"},
				"avatar": {"type": "keyword"},
				"content": {"type": "text"},
				"time": {"type": "keyword"}
			}
		}
	}`

	req := esapi.IndicesCreateRequest{
		Index: indexName,
		Body:  strings.NewReader(mapping),
	}

	res, err := req.Do(ctx, idx.client)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && !strings.Contains(res.String(), "resource_already_exists_exception") {
		return fmt.Errorf("error creating index: %s", res.String())
	}

	return nil
}

// IndexPost indexes one post document.
func (idx *Index) IndexPost(ctx context.Context, post domain.Post) error {
	doc := map[string]any{
		"id":      post.ID,
		"name":    post.Name,
		"avatar":  post.Avatar,
		"content": post.Content,
		"time":    post.Time,
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      indexName,
		DocumentID: post.ID,
		Body:       bytes.NewReader(docJSON),
		Refresh:    "false",
	}

	res, err := req.Do(ctx, idx.client)
	if err != nil {
		return fmt.Errorf("failed to index post %s: %w", post.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing post %s: %s", post.ID, res.String())
	}

	return nil
}

// ReindexAll indexes the given posts through a small worker pool.
func (idx *Index) ReindexAll(ctx context.Context, posts []domain.Post) error {
	var wg sync.WaitGroup
	pool, err := ants.NewPool(5, ants.WithPreAlloc(true))
	if err != nil {
		return fmt.Errorf("failed to create index pool: %w", err)
	}
	defer pool.Release()

	var mu sync.Mutex
	var failed int

	for _, p := range posts {
		wg.Add(1)
		postToIndex := p

		err := pool.Submit(func() {
			defer wg.Done()
			select {
			case <-ctx.Done():
				return
			default:
				if err := idx.IndexPost(ctx, postToIndex); err != nil {
					idx.logger.Error("Failed to index post", "post_id", postToIndex.ID, "error", err)
					mu.Lock()
					failed++
					mu.Unlock()
				}
			}
		})
		if err != nil {
			wg.Done()
			idx.logger.Error("Failed to submit index job", "post_id", postToIndex.ID, "error", err)
		}
	}

	wg.Wait()

	idx.logger.Info("Reindex completed", "total", len(posts), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("failed to index %d of %d posts", failed, len(posts))
	}
	return nil
}

// Search runs a match query over post content and author name.
func (idx *Index) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	body := map[string]any{
		"size": limit,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"content", "name"},
			},
		},
	}

	bodyJSON, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	res, err := idx.client.Search(
		idx.client.Search.WithContext(ctx),
		idx.client.Search.WithIndex(indexName),
		idx.client.Search.WithBody(bytes.NewReader(bodyJSON)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching posts: %s", res.String())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source struct {
					ID      string `json:"id"`
					Name    string `json:"name"`
					Avatar  string `json:"avatar"`
					Content string `json:"content"`
					Time    string `json:"time"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		results = append(results, domain.SearchResult{
			ID:        hit.Source.ID,
			Name:      hit.Source.Name,
			Avatar:    hit.Source.Avatar,
			Content:   hit.Source.Content,
			Timestamp: hit.Source.Time,
		})
	}

	return results, nil
}
