package collector

import (
	"testing"
	"time"

	"ExhibitSync/internal/model"
)

func cand(title string, start time.Time, channel string) *model.Candidate {
	return &model.Candidate{Title: title, StartDate: start, Channel: channel}
}

func TestDedup(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	other := time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)

	in := []*model.Candidate{
		cand("Spring Light", start, "blog"),
		cand("spring  light", start, "news"), // same after normalization
		cand("Spring Light", other, "blog"),  // different start date
		cand("Autumn Glow", start, "blog"),
	}

	out := Dedup(in)
	if len(out) != 3 {
		t.Fatalf("len(out) = %d, want 3", len(out))
	}

	// First occurrence wins: the blog copy survives, not the news copy.
	if out[0].Channel != "blog" || out[0].Title != "Spring Light" {
		t.Errorf("out[0] = %q from %s, want blog copy of Spring Light", out[0].Title, out[0].Channel)
	}
}

func TestDedup_Empty(t *testing.T) {
	if out := Dedup(nil); len(out) != 0 {
		t.Errorf("Dedup(nil) = %v, want empty", out)
	}
}
