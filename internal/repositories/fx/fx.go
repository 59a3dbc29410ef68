package fx

import (
	"github.com/mention-earth/feed-bot/internal/repositories/post"
	"go.uber.org/fx"
)

var Module = fx.Options(
	post.Module,
)
