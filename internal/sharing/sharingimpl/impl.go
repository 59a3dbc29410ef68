package sharingimpl

import (
	"context"
	"fmt"

	"github.com/mention-earth/feed-bot/internal/sharing"
	"github.com/mention-earth/feed-bot/internal/telegram"
	"github.com/mention-earth/feed-bot/pkg/config"
	"github.com/mention-earth/feed-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Telegram telegram.Client
	Config   *config.Config
	Logger   logger.Logger
}

// ChannelGateway shares posts by publishing them to the configured Telegram
// channel. Only text/plain payloads are supported.
type ChannelGateway struct {
	Telegram telegram.Client
	Config   *config.Config
	Logger   logger.Logger
}

func New(opts Opts) *ChannelGateway {
	return &ChannelGateway{
		Telegram: opts.Telegram,
		Config:   opts.Config,
		Logger:   opts.Logger.WithComponent("ShareGateway"),
	}
}

var _ sharing.Gateway = (*ChannelGateway)(nil)

func (g *ChannelGateway) IsAvailable(context.Context) bool {
	return g.Config.Telegram.Channel != ""
}

func (g *ChannelGateway) Share(_ context.Context, url string, opts sharing.Options) error {
	if opts.MimeType != "" && opts.MimeType != "text/plain" {
		return fmt.Errorf("unsupported mime type %q", opts.MimeType)
	}

	msg := url
	if opts.Title != "" {
		msg = opts.Title + "\n" + url
	}

	if err := g.Telegram.SendMessageToChannel(msg); err != nil {
		return fmt.Errorf("failed to share to channel: %w", err)
	}

	g.Logger.Info("Shared to channel", "url", url)
	return nil
}
