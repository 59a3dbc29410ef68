package feed

import (
	"context"

	"github.com/mention-earth/feed-bot/internal/domain"
	"github.com/mention-earth/feed-bot/internal/sharing"
	"github.com/mention-earth/feed-bot/pkg/logger"
)

const (
	shareTitle    = "Share Post"
	shareMimeType = "text/plain"
)

// PostURL returns the canonical URL of a post.
func PostURL(id string) string {
	return "https://mention.earth/post/" + id
}

// State tracks the viewer-local like toggle for a single post. Counters are
// confined to the one post; there is no cross-post aggregation.
type State struct {
	Post      domain.Post
	Liked     bool
	LikeCount int
}

// NewState snapshots a post with the default not-liked state.
func NewState(post domain.Post) *State {
	return &State{
		Post:      post,
		LikeCount: post.Likes,
	}
}

// ToggleLike flips the liked flag, adjusting the displayed count by one in the
// matching direction. Toggling twice restores the original count.
func (s *State) ToggleLike() (liked bool, count int) {
	if s.Liked {
		s.Liked = false
		s.LikeCount--
	} else {
		s.Liked = true
		s.LikeCount++
	}
	return s.Liked, s.LikeCount
}

// Sharer hands a post's canonical URL to the sharing capability. It is
// independent of the like state: a failed share never touches counters.
type Sharer struct {
	Gateway sharing.Gateway
	Logger  logger.Logger
}

// SharePost shares the post's canonical URL. It returns sharing.ErrUnavailable
// when the capability is missing so the caller can surface a notice; every
// path logs completion.
func (s *Sharer) SharePost(ctx context.Context, postID string) error {
	defer s.Logger.Info("Share flow finished", "post_id", postID)

	if !s.Gateway.IsAvailable(ctx) {
		s.Logger.Warn("Sharing capability unavailable", "post_id", postID)
		return sharing.ErrUnavailable
	}

	if err := s.Gateway.Share(ctx, PostURL(postID), sharing.Options{
		Title:    shareTitle,
		MimeType: shareMimeType,
	}); err != nil {
		s.Logger.Error("Failed to share post", "post_id", postID, "error", err)
		return err
	}

	return nil
}
