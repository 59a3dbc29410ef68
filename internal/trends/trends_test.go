package trends

import (
	"errors"
	"testing"

	"github.com/mention-earth/feed-bot/internal/datasource"
	"github.com/mention-earth/feed-bot/internal/domain"
)

func score(v int64) *int64 {
	return &v
}

func TestNormalize(t *testing.T) {
	got, err := Normalize(datasource.TrendRecord{ID: "1", Hashtag: "#Go", Score: score(42)})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	want := domain.Trend{ID: "1", Topic: "#Go", CountTotal: "42"}
	if got != want {
		t.Errorf("Normalize = %+v, want %+v", got, want)
	}
}

func TestNormalizeNoSuffixFormatting(t *testing.T) {
	got, err := Normalize(datasource.TrendRecord{ID: "1", Hashtag: "#Go", Score: score(120000)})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got.CountTotal != "120000" {
		t.Errorf("CountTotal = %q, want plain %q", got.CountTotal, "120000")
	}
}

func TestNormalizeMalformed(t *testing.T) {
	tests := []struct {
		name string
		rec  datasource.TrendRecord
	}{
		{"missing hashtag", datasource.TrendRecord{ID: "1", Score: score(1)}},
		{"missing score", datasource.TrendRecord{ID: "1", Hashtag: "#Go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Normalize(tt.rec); !errors.Is(err, ErrMalformedRecord) {
				t.Errorf("err = %v, want ErrMalformedRecord", err)
			}
		})
	}
}

func TestNormalizeAllPreservesOrder(t *testing.T) {
	recs := []datasource.TrendRecord{
		{ID: "3", Hashtag: "#c", Score: score(1)},
		{ID: "1", Hashtag: "#a", Score: score(3)},
		{ID: "2", Hashtag: "#b", Score: score(2)},
	}

	got, err := NormalizeAll(recs)
	if err != nil {
		t.Fatalf("NormalizeAll: %v", err)
	}
	for i, rec := range recs {
		if got[i].ID != rec.ID {
			t.Errorf("order not preserved at %d: %+v", i, got[i])
		}
	}
}
