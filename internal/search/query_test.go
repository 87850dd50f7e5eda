package search

import (
	"strings"
	"testing"
	"time"

	"ExhibitSync/internal/model"
)

func TestBuildQueries(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	venue := &model.Venue{Name: "국립현대미술관"}

	queries := BuildQueries(venue, now, 6)
	if len(queries) != 5 {
		t.Fatalf("len(queries) = %d, want 5 without a secondary name", len(queries))
	}
	if queries[0] != "국립현대미술관 2024년 3월 전시" {
		t.Errorf("queries[0] = %q", queries[0])
	}
	for _, q := range queries {
		if !strings.Contains(q, venue.Name) {
			t.Errorf("query %q does not mention the venue", q)
		}
	}
}

func TestBuildQueries_SecondaryName(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	venue := &model.Venue{Name: "국립현대미술관", NameEn: "MMCA"}

	queries := BuildQueries(venue, now, 6)
	if len(queries) != 6 {
		t.Fatalf("len(queries) = %d, want 6 with a secondary name", len(queries))
	}
	last := queries[len(queries)-1]
	if last != "MMCA exhibition 2024" {
		t.Errorf("last query = %q, want MMCA exhibition 2024", last)
	}
}

func TestBuildQueries_Cap(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	venue := &model.Venue{Name: "리움", NameEn: "Leeum"}

	queries := BuildQueries(venue, now, 3)
	if len(queries) != 3 {
		t.Fatalf("len(queries) = %d, want 3", len(queries))
	}
}
