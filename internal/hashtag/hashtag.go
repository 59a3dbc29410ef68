package hashtag

import (
	"regexp"
	"strings"

	"github.com/mention-earth/feed-bot/pkg/formatter"
)

// A hashtag is '#' followed by one or more ASCII letters, digits or
// underscores, matched greedily and non-overlapping.
var tagPattern = regexp.MustCompile(`#[a-zA-Z0-9_]+`)

// Segment is a maximal run of post content: either plain text or a single
// hashtag reference. For a hashtag, Text keeps the leading '#' and Tag holds
// the name without it; for plain text Tag is empty.
type Segment struct {
	Text string
	Tag  string
}

func (s Segment) IsTag() bool {
	return s.Tag != ""
}

// Route returns the navigation target for the segment's hashtag.
func (s Segment) Route() string {
	return "/hashtag/" + s.Tag
}

// Split segments content into plain-text and hashtag segments, left to right.
// Segmentation is total and order-preserving: concatenating the Text of all
// segments reproduces the input exactly. Empty input yields no segments.
func Split(content string) []Segment {
	if content == "" {
		return nil
	}

	var segments []Segment
	last := 0
	for _, loc := range tagPattern.FindAllStringIndex(content, -1) {
		if loc[0] > last {
			segments = append(segments, Segment{Text: content[last:loc[0]]})
		}
		match := content[loc[0]:loc[1]]
		segments = append(segments, Segment{Text: match, Tag: match[1:]})
		last = loc[1]
	}
	if last < len(content) {
		segments = append(segments, Segment{Text: content[last:]})
	}

	return segments
}

// Tags returns the hashtag names referenced by content, in order of appearance.
func Tags(content string) []string {
	var tags []string
	for _, seg := range Split(content) {
		if seg.IsTag() {
			tags = append(tags, seg.Tag)
		}
	}
	return tags
}

// RenderMarkdownV2 renders content for Telegram MarkdownV2, escaping plain
// text and linking each hashtag to its mention.earth page.
func RenderMarkdownV2(content string) string {
	var sb strings.Builder
	for _, seg := range Split(content) {
		if seg.IsTag() {
			sb.WriteString("[" + formatter.EscapeMarkdownV2(seg.Text) + "](https://mention.earth/hashtag/" + seg.Tag + ")")
			continue
		}
		sb.WriteString(formatter.EscapeMarkdownV2(seg.Text))
	}
	return sb.String()
}
