package search

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mention-earth/feed-bot/internal/domain"
)

func results(contents ...string) []domain.SearchResult {
	rs := make([]domain.SearchResult, len(contents))
	for i, c := range contents {
		rs[i] = domain.SearchResult{ID: string(rune('1' + i)), Content: c}
	}
	return rs
}

func contents(rs []domain.SearchResult) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Content
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		input  []string
		facets Facets
		want   []string
	}{
		{
			name:   "images hidden",
			input:  []string{"an image here", "plain text"},
			facets: Facets{ShowImages: false, ShowVideos: true, ShowText: true},
			want:   []string{"plain text"},
		},
		{
			name:   "all shown",
			input:  []string{"an image here", "a video clip", "some text"},
			facets: DefaultFacets(),
			want:   []string{"an image here", "a video clip", "some text"},
		},
		{
			name:   "videos hidden",
			input:  []string{"a video clip", "morning coffee"},
			facets: Facets{ShowImages: true, ShowVideos: false, ShowText: true},
			want:   []string{"morning coffee"},
		},
		{
			name:   "unmarked results always survive",
			input:  []string{"morning coffee", "sunset walk"},
			facets: Facets{},
			want:   []string{"morning coffee", "sunset walk"},
		},
		{
			name:   "multiple markers all disabled",
			input:  []string{"image and video combo", "hello"},
			facets: Facets{ShowImages: false, ShowVideos: true, ShowText: true},
			want:   []string{"hello"},
		},
		{
			name:   "empty input",
			input:  nil,
			facets: DefaultFacets(),
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := contents(Apply(results(tt.input...), tt.facets))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyIdempotent(t *testing.T) {
	facets := Facets{ShowImages: false, ShowVideos: true, ShowText: true}
	input := results("an image here", "plain words", "a video clip")

	once := Apply(input, facets)
	twice := Apply(once, facets)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Apply not idempotent: %v vs %v", once, twice)
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	input := results("one", "an image", "two", "three")
	got := contents(Apply(input, Facets{ShowImages: false, ShowVideos: true, ShowText: true}))
	want := []string{"one", "two", "three"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order not preserved: %v", got)
	}
}

func TestFilterStateSet(t *testing.T) {
	s := NewFilterState(false)

	if err := s.Set(FacetShowImages, false); err != nil {
		t.Fatalf("Set showImages: %v", err)
	}
	if s.Facets.ShowImages {
		t.Error("showImages still enabled")
	}

	if err := s.Set(FacetSortByDate, true); !errors.Is(err, ErrPremiumRequired) {
		t.Errorf("non-premium sortByDate: err = %v, want ErrPremiumRequired", err)
	}
	if s.Advanced.SortByDate {
		t.Error("advanced facet set without premium")
	}

	if err := s.Set("showMemes", true); !errors.Is(err, ErrUnknownFacet) {
		t.Errorf("unknown facet: err = %v, want ErrUnknownFacet", err)
	}
}

func TestFilterStatePremium(t *testing.T) {
	s := NewFilterState(true)

	if err := s.Set(FacetSortByDate, true); err != nil {
		t.Fatalf("premium sortByDate: %v", err)
	}
	if err := s.Set(FacetSortByRelevance, true); err != nil {
		t.Fatalf("premium sortByRelevance: %v", err)
	}
	if !s.Advanced.SortByDate || !s.Advanced.SortByRelevance {
		t.Error("advanced facets not recorded")
	}

	// The sort toggles define no comparator; order stays as given.
	input := results("b post", "a post")
	got := Apply(input, s.Facets)
	if !reflect.DeepEqual(got, input) {
		t.Errorf("advanced facets changed result order: %v", got)
	}
}
