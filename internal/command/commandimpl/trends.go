package commandimpl

import (
	"strings"

	"github.com/mention-earth/feed-bot/pkg/formatter"
)

func (c *CommandImpl) handleTrends(chatID int64) {
	current := c.Trends.Current()
	if len(current) == 0 {
		c.Telegram.SendMessage(chatID, "No trends available yet, check back in a bit.")
		return
	}

	var sb strings.Builder
	sb.WriteString("*Trends for you*\n")
	for _, t := range current {
		sb.WriteString("\n" + formatter.EscapeMarkdownV2(t.Topic) +
			" · " + formatter.EscapeMarkdownV2(t.CountTotal) + " Posts")
	}

	if _, err := c.Telegram.SendMarkdown(chatID, sb.String()); err != nil {
		c.Logger.Error("Failed to send trends", "chat_id", chatID, "error", err)
	}
}
