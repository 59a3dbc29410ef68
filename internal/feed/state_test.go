package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/mention-earth/feed-bot/internal/domain"
	"github.com/mention-earth/feed-bot/internal/sharing"
	"github.com/mention-earth/feed-bot/pkg/logger"
)

func testLogger() logger.Logger {
	return logger.New(logger.Opts{Env: "development"})
}

func TestToggleLikeRoundTrip(t *testing.T) {
	state := NewState(domain.Post{ID: "1", Likes: 5})

	liked, count := state.ToggleLike()
	if !liked || count != 6 {
		t.Fatalf("first toggle: liked=%v count=%d, want true 6", liked, count)
	}

	liked, count = state.ToggleLike()
	if liked || count != 5 {
		t.Fatalf("second toggle: liked=%v count=%d, want false 5", liked, count)
	}
}

func TestToggleLikeFromZero(t *testing.T) {
	state := NewState(domain.Post{ID: "1"})

	for i := 0; i < 3; i++ {
		if _, count := state.ToggleLike(); count != 1 {
			t.Fatalf("like: count=%d, want 1", count)
		}
		if _, count := state.ToggleLike(); count != 0 {
			t.Fatalf("unlike: count=%d, want 0", count)
		}
	}
}

type fakeGateway struct {
	available bool
	shareErr  error

	sharedURL  string
	sharedOpts sharing.Options
	calls      int
}

func (g *fakeGateway) IsAvailable(context.Context) bool {
	return g.available
}

func (g *fakeGateway) Share(_ context.Context, url string, opts sharing.Options) error {
	g.calls++
	g.sharedURL = url
	g.sharedOpts = opts
	return g.shareErr
}

func TestSharePost(t *testing.T) {
	gw := &fakeGateway{available: true}
	sharer := &Sharer{Gateway: gw, Logger: testLogger()}

	if err := sharer.SharePost(context.Background(), "42"); err != nil {
		t.Fatalf("SharePost: %v", err)
	}

	if gw.sharedURL != "https://mention.earth/post/42" {
		t.Errorf("shared url = %q", gw.sharedURL)
	}
	if gw.sharedOpts.Title != "Share Post" || gw.sharedOpts.MimeType != "text/plain" {
		t.Errorf("shared opts = %+v", gw.sharedOpts)
	}
}

func TestSharePostUnavailable(t *testing.T) {
	gw := &fakeGateway{available: false}
	sharer := &Sharer{Gateway: gw, Logger: testLogger()}

	err := sharer.SharePost(context.Background(), "42")
	if !errors.Is(err, sharing.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if gw.calls != 0 {
		t.Errorf("gateway invoked %d times despite being unavailable", gw.calls)
	}
}

func TestSharePostDoesNotTouchLikeState(t *testing.T) {
	state := NewState(domain.Post{ID: "42", Likes: 7})
	gw := &fakeGateway{available: false}
	sharer := &Sharer{Gateway: gw, Logger: testLogger()}

	_ = sharer.SharePost(context.Background(), state.Post.ID)

	if state.Liked || state.LikeCount != 7 {
		t.Errorf("share mutated like state: liked=%v count=%d", state.Liked, state.LikeCount)
	}
}
