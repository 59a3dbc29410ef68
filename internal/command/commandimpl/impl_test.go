package commandimpl

import (
	"context"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mention-earth/feed-bot/internal/domain"
	"github.com/mention-earth/feed-bot/internal/repositories/post"
	"github.com/mention-earth/feed-bot/internal/sharing"
	"github.com/mention-earth/feed-bot/pkg/config"
	"github.com/mention-earth/feed-bot/pkg/logger"
)

type fakeTelegram struct {
	messages  []string
	markdowns []string
}

func (f *fakeTelegram) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	ch := make(chan tgbotapi.Update)
	close(ch)
	return ch
}
func (f *fakeTelegram) StopReceivingUpdates() {}
func (f *fakeTelegram) SendMessage(_ int64, text string) (int, error) {
	f.messages = append(f.messages, text)
	return 1, nil
}
func (f *fakeTelegram) SendMarkdown(_ int64, text string) (int, error) {
	f.markdowns = append(f.markdowns, text)
	return 1, nil
}
func (f *fakeTelegram) SendMessageToChannel(string) error { return nil }
func (f *fakeTelegram) SendMessageToUser(string)          {}

type fakeRepo struct {
	posts map[string]domain.Post
}

func (r *fakeRepo) Create(context.Context, domain.Post) error { return nil }
func (r *fakeRepo) GetByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, post.ErrNotFound
	}
	return &p, nil
}
func (r *fakeRepo) List(context.Context, int) ([]domain.Post, error) {
	var out []domain.Post
	for _, p := range r.posts {
		out = append(out, p)
	}
	return out, nil
}
func (r *fakeRepo) Search(context.Context, string, int) ([]domain.SearchResult, error) {
	return nil, nil
}

type fakeAggregator struct {
	trends []domain.Trend
}

func (a *fakeAggregator) Refresh(context.Context) error { return nil }
func (a *fakeAggregator) Current() []domain.Trend       { return a.trends }

type fakeSource struct {
	results []domain.SearchResult
}

func (s *fakeSource) Search(context.Context, string, int) ([]domain.SearchResult, error) {
	return s.results, nil
}

type fakeGateway struct{ available bool }

func (g *fakeGateway) IsAvailable(context.Context) bool { return g.available }
func (g *fakeGateway) Share(context.Context, string, sharing.Options) error {
	return nil
}

func newTestCommand(tg *fakeTelegram) *CommandImpl {
	cfg := &config.Config{}
	cfg.Feed.PageSize = 10

	return New(Opts{
		Telegram: tg,
		PostRepo: &fakeRepo{posts: map[string]domain.Post{
			"1": {ID: "1", Name: "Jane Smith", Username: "@jane", Content: "hello #world", Time: "2h ago", Likes: 5},
		}},
		Trends:  &fakeAggregator{trends: []domain.Trend{{ID: "1", Topic: "#Go", CountTotal: "42"}}},
		Source:  &fakeSource{},
		Gateway: &fakeGateway{},
		Logger:  logger.New(logger.Opts{Env: "development"}),
		Config:  cfg,
	})
}

func TestHandleLikeToggles(t *testing.T) {
	tg := &fakeTelegram{}
	c := newTestCommand(tg)
	ctx := context.Background()

	c.handleLike(ctx, 99, "1")
	c.handleLike(ctx, 99, "1")

	if len(tg.messages) != 2 {
		t.Fatalf("got %d messages", len(tg.messages))
	}
	if !strings.Contains(tg.messages[0], "6 likes") {
		t.Errorf("first toggle reply = %q", tg.messages[0])
	}
	if !strings.Contains(tg.messages[1], "5 likes") {
		t.Errorf("second toggle reply = %q", tg.messages[1])
	}
}

func TestHandleLikeUnknownPost(t *testing.T) {
	tg := &fakeTelegram{}
	c := newTestCommand(tg)

	c.handleLike(context.Background(), 99, "404")

	if len(tg.messages) != 1 || !strings.Contains(tg.messages[0], "does not exist") {
		t.Errorf("messages = %v", tg.messages)
	}
}

func TestHandleShareUnavailableNotice(t *testing.T) {
	tg := &fakeTelegram{}
	c := newTestCommand(tg)

	c.handleShare(context.Background(), 99, "1")

	if len(tg.messages) != 1 || !strings.Contains(tg.messages[0], "Sharing is not available") {
		t.Errorf("messages = %v", tg.messages)
	}
}

func TestHandleTrends(t *testing.T) {
	tg := &fakeTelegram{}
	c := newTestCommand(tg)

	c.handleTrends(99)

	if len(tg.markdowns) != 1 {
		t.Fatalf("got %d markdown messages", len(tg.markdowns))
	}
	if !strings.Contains(tg.markdowns[0], "\\#Go") || !strings.Contains(tg.markdowns[0], "42 Posts") {
		t.Errorf("trends reply = %q", tg.markdowns[0])
	}
}

func TestHandleFilterPremiumGating(t *testing.T) {
	tg := &fakeTelegram{}
	c := newTestCommand(tg)

	c.handleFilter(99, "date on")
	if len(tg.messages) != 1 || !strings.Contains(tg.messages[0], "premium") {
		t.Fatalf("messages = %v", tg.messages)
	}

	c.handleFilter(99, "images off")
	s := c.session(99)
	if s.filters.Facets.ShowImages {
		t.Error("images facet still enabled")
	}
}

func TestHandleSearchAppliesFacets(t *testing.T) {
	tg := &fakeTelegram{}
	c := newTestCommand(tg)
	c.Source = &fakeSource{results: []domain.SearchResult{
		{ID: "1", Name: "A", Content: "an image here"},
		{ID: "2", Name: "B", Content: "plain words"},
	}}

	c.handleFilter(99, "images off")
	tg.messages = nil

	c.handleSearch(context.Background(), 99, "words")

	if len(tg.markdowns) != 1 {
		t.Fatalf("got %d markdown messages: %v", len(tg.markdowns), tg.messages)
	}
	if strings.Contains(tg.markdowns[0], "image") {
		t.Errorf("filtered result leaked: %q", tg.markdowns[0])
	}
}
