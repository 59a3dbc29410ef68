package commandimpl

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mention-earth/feed-bot/internal/command"
	"github.com/mention-earth/feed-bot/internal/feed"
	"github.com/mention-earth/feed-bot/internal/ratelimit"
	"github.com/mention-earth/feed-bot/internal/repositories/post"
	"github.com/mention-earth/feed-bot/internal/search"
	"github.com/mention-earth/feed-bot/internal/sharing"
	"github.com/mention-earth/feed-bot/internal/telegram"
	"github.com/mention-earth/feed-bot/internal/trends"
	"github.com/mention-earth/feed-bot/pkg/config"
	"github.com/mention-earth/feed-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Telegram telegram.Client
	PostRepo post.Repository
	Trends   trends.Aggregator
	Source   search.Source
	Gateway  sharing.Gateway
	Logger   logger.Logger
	Config   *config.Config
}

type CommandImpl struct {
	Telegram telegram.Client
	PostRepo post.Repository
	Trends   trends.Aggregator
	Source   search.Source
	Sharer   *feed.Sharer
	Logger   logger.Logger
	Config   *config.Config
	Limiter  ratelimit.Limiter

	// sessions are only touched from the update loop goroutine.
	sessions map[int64]*session
}

// session is one chat's view state: its facet selection and its per-post
// interaction state, alive for the lifetime of the process.
type session struct {
	filters *search.FilterState
	posts   map[string]*feed.State
}

func New(opts Opts) *CommandImpl {
	return &CommandImpl{
		Telegram: opts.Telegram,
		PostRepo: opts.PostRepo,
		Trends:   opts.Trends,
		Source:   opts.Source,
		Sharer:   &feed.Sharer{Gateway: opts.Gateway, Logger: opts.Logger},
		Logger:   opts.Logger.WithComponent("Command"),
		Config:   opts.Config,
		Limiter:  ratelimit.NewInMemoryLimiter(1, 2*time.Second, 5),
		sessions: make(map[int64]*session),
	}
}

var _ command.Client = (*CommandImpl)(nil)

// HandleCommands runs the bot update loop until ctx is cancelled. Updates are
// handled sequentially, so session state needs no locking.
func (c *CommandImpl) HandleCommands(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := c.Telegram.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			c.Telegram.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}

			chatID := update.Message.Chat.ID
			if !c.Limiter.Allow(chatID) {
				c.Telegram.SendMessage(chatID, "Too many requests, slow down a little.")
				continue
			}

			c.dispatch(ctx, update.Message)
		}
	}
}

func (c *CommandImpl) dispatch(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	args := msg.CommandArguments()

	c.Logger.Info("Handling command", "chat_id", chatID, "command", msg.Command())

	switch msg.Command() {
	case "start", "help":
		c.handleHelp(chatID)
	case "feed":
		c.handleFeed(ctx, chatID)
	case "post":
		c.handlePost(ctx, chatID, args)
	case "like":
		c.handleLike(ctx, chatID, args)
	case "share":
		c.handleShare(ctx, chatID, args)
	case "trends":
		c.handleTrends(chatID)
	case "search":
		c.handleSearch(ctx, chatID, args)
	case "filter":
		c.handleFilter(chatID, args)
	case "filters":
		c.handleFilters(chatID)
	default:
		c.Telegram.SendMessage(chatID, "Unknown command. Try /help.")
	}
}

func (c *CommandImpl) handleHelp(chatID int64) {
	help := `mention.earth feed bot

/feed - latest posts
/post <id> - one post
/like <id> - toggle like on a post
/share <id> - share a post to the channel
/trends - trending hashtags
/search <query> - search posts
/filter <images|videos|text|date|relevance> <on|off> - tune search facets
/filters - show current facets`
	c.Telegram.SendMessage(chatID, help)
}

// session returns the chat's view state, creating it on first use. Premium
// entitlement is decided externally, from configuration.
func (c *CommandImpl) session(chatID int64) *session {
	s, ok := c.sessions[chatID]
	if !ok {
		s = &session{
			filters: search.NewFilterState(c.Config.IsPremium(chatID)),
			posts:   make(map[string]*feed.State),
		}
		c.sessions[chatID] = s
	}
	return s
}
