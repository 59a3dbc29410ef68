package commandimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mention-earth/feed-bot/internal/search"
)

// facetNames maps the user-facing toggle names to the facet keys.
var facetNames = map[string]string{
	"images":    search.FacetShowImages,
	"videos":    search.FacetShowVideos,
	"text":      search.FacetShowText,
	"date":      search.FacetSortByDate,
	"relevance": search.FacetSortByRelevance,
}

func (c *CommandImpl) handleSearch(ctx context.Context, chatID int64, args string) {
	query := strings.TrimSpace(args)
	if query == "" {
		c.Telegram.SendMessage(chatID, "Usage: /search <query>")
		return
	}

	results, err := c.Source.Search(ctx, query, c.Config.Feed.PageSize)
	if err != nil {
		c.Logger.Error("Search failed", "query", query, "error", err)
		c.Telegram.SendMessage(chatID, "Search is unavailable right now, please try again later.")
		return
	}

	s := c.session(chatID)
	filtered := search.Apply(results, s.filters.Facets)

	if len(filtered) == 0 {
		c.Telegram.SendMessage(chatID, fmt.Sprintf("No results for %q with the current filters.", query))
		return
	}

	var sb strings.Builder
	for i, r := range filtered {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(c.renderPost(r.AsPost(), s))
	}

	if _, err := c.Telegram.SendMarkdown(chatID, sb.String()); err != nil {
		c.Logger.Error("Failed to send search results", "chat_id", chatID, "error", err)
	}
}

func (c *CommandImpl) handleFilter(chatID int64, args string) {
	fields := strings.Fields(strings.ToLower(args))
	if len(fields) != 2 || (fields[1] != "on" && fields[1] != "off") {
		c.Telegram.SendMessage(chatID, "Usage: /filter <images|videos|text|date|relevance> <on|off>")
		return
	}

	facet, ok := facetNames[fields[0]]
	if !ok {
		c.Telegram.SendMessage(chatID, fmt.Sprintf("Unknown filter %q. Try /filters.", fields[0]))
		return
	}

	s := c.session(chatID)
	switch err := s.filters.Set(facet, fields[1] == "on"); {
	case errors.Is(err, search.ErrPremiumRequired):
		c.Telegram.SendMessage(chatID, "Advanced filters are available for premium accounts only.")
	case err != nil:
		c.Telegram.SendMessage(chatID, fmt.Sprintf("Unknown filter %q. Try /filters.", fields[0]))
	default:
		c.handleFilters(chatID)
	}
}

func (c *CommandImpl) handleFilters(chatID int64) {
	s := c.session(chatID)
	f := s.filters

	onOff := func(v bool) string {
		if v {
			return "on"
		}
		return "off"
	}

	var sb strings.Builder
	sb.WriteString("Filters:\n")
	sb.WriteString(fmt.Sprintf("  images: %s\n", onOff(f.Facets.ShowImages)))
	sb.WriteString(fmt.Sprintf("  videos: %s\n", onOff(f.Facets.ShowVideos)))
	sb.WriteString(fmt.Sprintf("  text: %s\n", onOff(f.Facets.ShowText)))
	sb.WriteString("Advanced (premium):\n")
	sb.WriteString(fmt.Sprintf("  date: %s\n", onOff(f.Advanced.SortByDate)))
	sb.WriteString(fmt.Sprintf("  relevance: %s", onOff(f.Advanced.SortByRelevance)))

	c.Telegram.SendMessage(chatID, sb.String())
}
