package search

import (
	"context"
	"errors"
	"strings"

	"github.com/mention-earth/feed-bot/internal/domain"
)

var (
	ErrUnknownFacet    = errors.New("unknown facet")
	ErrPremiumRequired = errors.New("premium required")
)

// Facet names are fixed and known ahead of time.
const (
	FacetShowImages      = "showImages"
	FacetShowVideos      = "showVideos"
	FacetShowText        = "showText"
	FacetSortByDate      = "sortByDate"
	FacetSortByRelevance = "sortByRelevance"
)

// Facets are the content-type toggles applied to a result set.
type Facets struct {
	ShowImages bool
	ShowVideos bool
	ShowText   bool
}

func DefaultFacets() Facets {
	return Facets{ShowImages: true, ShowVideos: true, ShowText: true}
}

// Advanced are the premium-only sort toggles. No ordering is defined for them:
// result order stays unchanged from the input whichever are enabled.
type Advanced struct {
	SortByDate      bool
	SortByRelevance bool
}

// Content-type detection is a textual heuristic inherited from the feed
// product: a result "is" an image when its content mentions one. Kept behind
// named predicates so structured metadata can replace it in one place.
func mentionsImage(content string) bool { return strings.Contains(content, "image") }
func mentionsVideo(content string) bool { return strings.Contains(content, "video") }
func mentionsText(content string) bool  { return strings.Contains(content, "text") }

// Apply returns the subsequence of results that no disabled facet excludes.
// A result with no type markers is never excluded. Pure and order-preserving.
func Apply(results []domain.SearchResult, f Facets) []domain.SearchResult {
	filtered := make([]domain.SearchResult, 0, len(results))
	for _, r := range results {
		if !f.ShowImages && mentionsImage(r.Content) {
			continue
		}
		if !f.ShowVideos && mentionsVideo(r.Content) {
			continue
		}
		if !f.ShowText && mentionsText(r.Content) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// FilterState is one viewer's facet selection. Advanced facets are only
// settable when the viewer holds the premium flag; Apply itself always honors
// whatever values are present.
type FilterState struct {
	Facets   Facets
	Advanced Advanced
	premium  bool
}

func NewFilterState(premium bool) *FilterState {
	return &FilterState{
		Facets:  DefaultFacets(),
		premium: premium,
	}
}

// Set switches the named facet. Advanced facets require premium.
func (s *FilterState) Set(name string, on bool) error {
	switch name {
	case FacetShowImages:
		s.Facets.ShowImages = on
	case FacetShowVideos:
		s.Facets.ShowVideos = on
	case FacetShowText:
		s.Facets.ShowText = on
	case FacetSortByDate, FacetSortByRelevance:
		if !s.premium {
			return ErrPremiumRequired
		}
		if name == FacetSortByDate {
			s.Advanced.SortByDate = on
		} else {
			s.Advanced.SortByRelevance = on
		}
	default:
		return ErrUnknownFacet
	}
	return nil
}

// Source produces search results for a query; the filter engine is agnostic to
// where they come from.
type Source interface {
	Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)
}
