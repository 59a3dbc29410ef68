package commandimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mention-earth/feed-bot/internal/domain"
	"github.com/mention-earth/feed-bot/internal/feed"
	"github.com/mention-earth/feed-bot/internal/hashtag"
	"github.com/mention-earth/feed-bot/internal/repositories/post"
	"github.com/mention-earth/feed-bot/internal/sharing"
	"github.com/mention-earth/feed-bot/pkg/formatter"
)

func (c *CommandImpl) handleFeed(ctx context.Context, chatID int64) {
	posts, err := c.PostRepo.List(ctx, c.Config.Feed.PageSize)
	if err != nil {
		c.Logger.Error("Failed to list posts", "error", err)
		c.Telegram.SendMessage(chatID, "Something went wrong, please try again later.")
		return
	}

	if len(posts) == 0 {
		c.Telegram.SendMessage(chatID, "The feed is empty right now.")
		return
	}

	s := c.session(chatID)
	var sb strings.Builder
	for i, p := range posts {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(c.renderPost(p, s))
	}

	if _, err := c.Telegram.SendMarkdown(chatID, sb.String()); err != nil {
		c.Logger.Error("Failed to send feed", "chat_id", chatID, "error", err)
	}
}

func (c *CommandImpl) handlePost(ctx context.Context, chatID int64, args string) {
	id := strings.TrimSpace(args)
	if id == "" {
		c.Telegram.SendMessage(chatID, "Usage: /post <id>")
		return
	}

	p, err := c.PostRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, post.ErrNotFound) {
			c.Telegram.SendMessage(chatID, fmt.Sprintf("Post %s does not exist.", id))
		} else {
			c.Logger.Error("Failed to get post", "post_id", id, "error", err)
			c.Telegram.SendMessage(chatID, "Something went wrong, please try again later.")
		}
		return
	}

	if _, err := c.Telegram.SendMarkdown(chatID, c.renderPost(*p, c.session(chatID))); err != nil {
		c.Logger.Error("Failed to send post", "chat_id", chatID, "error", err)
	}
}

func (c *CommandImpl) handleLike(ctx context.Context, chatID int64, args string) {
	id := strings.TrimSpace(args)
	if id == "" {
		c.Telegram.SendMessage(chatID, "Usage: /like <id>")
		return
	}

	state, err := c.postState(ctx, chatID, id)
	if err != nil {
		if errors.Is(err, post.ErrNotFound) {
			c.Telegram.SendMessage(chatID, fmt.Sprintf("Post %s does not exist.", id))
		} else {
			c.Logger.Error("Failed to load post for like", "post_id", id, "error", err)
			c.Telegram.SendMessage(chatID, "Something went wrong, please try again later.")
		}
		return
	}

	liked, count := state.ToggleLike()
	if liked {
		c.Telegram.SendMessage(chatID, fmt.Sprintf("❤️ Liked. %s likes now.", formatter.FormatNumber(count)))
	} else {
		c.Telegram.SendMessage(chatID, fmt.Sprintf("💔 Unliked. %s likes now.", formatter.FormatNumber(count)))
	}
}

func (c *CommandImpl) handleShare(ctx context.Context, chatID int64, args string) {
	id := strings.TrimSpace(args)
	if id == "" {
		c.Telegram.SendMessage(chatID, "Usage: /share <id>")
		return
	}

	if _, err := c.postState(ctx, chatID, id); err != nil {
		if errors.Is(err, post.ErrNotFound) {
			c.Telegram.SendMessage(chatID, fmt.Sprintf("Post %s does not exist.", id))
		} else {
			c.Logger.Error("Failed to load post for share", "post_id", id, "error", err)
			c.Telegram.SendMessage(chatID, "Something went wrong, please try again later.")
		}
		return
	}

	switch err := c.Sharer.SharePost(ctx, id); {
	case errors.Is(err, sharing.ErrUnavailable):
		c.Telegram.SendMessage(chatID, "Sharing is not available right now.")
	case err != nil:
		c.Telegram.SendMessage(chatID, "Could not share the post, please try again later.")
	default:
		c.Telegram.SendMessage(chatID, "Shared to the channel: "+feed.PostURL(id))
	}
}

// postState returns the chat's interaction state for a post, loading the post
// on first touch.
func (c *CommandImpl) postState(ctx context.Context, chatID int64, postID string) (*feed.State, error) {
	s := c.session(chatID)
	if state, ok := s.posts[postID]; ok {
		return state, nil
	}

	p, err := c.PostRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	state := feed.NewState(*p)
	s.posts[postID] = state
	return state, nil
}

// renderPost formats one post as MarkdownV2, hashtags linked to their pages.
func (c *CommandImpl) renderPost(p domain.Post, s *session) string {
	likes := p.Likes
	likeIcon := "🤍"
	if state, ok := s.posts[p.ID]; ok {
		likes = state.LikeCount
		if state.Liked {
			likeIcon = "❤️"
		}
	}

	var sb strings.Builder
	sb.WriteString("*" + formatter.EscapeMarkdownV2(p.Name) + "* ")
	sb.WriteString(formatter.EscapeMarkdownV2(p.Username))
	if p.Time != "" {
		sb.WriteString(" · " + formatter.EscapeMarkdownV2(p.Time))
	}
	sb.WriteString("\n")
	sb.WriteString(hashtag.RenderMarkdownV2(p.Content))
	sb.WriteString(fmt.Sprintf("\n💬 %s  🔁 %s  %s %s  `/like %s`",
		formatter.EscapeMarkdownV2(formatter.FormatNumber(p.Replies)),
		formatter.EscapeMarkdownV2(formatter.FormatNumber(p.Reposts)),
		likeIcon,
		formatter.EscapeMarkdownV2(formatter.FormatNumber(likes)),
		p.ID,
	))
	return sb.String()
}
