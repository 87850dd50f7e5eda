package search

import (
	"fmt"
	"time"

	"ExhibitSync/internal/model"
)

// BuildQueries generates the ordered search query set for one venue. Pure:
// no network, no side effects. The list is bounded by max (the collector
// passes the configured cap, default 6).
//
// Always present: the venue name with the current localized month/year, and
// a generic current-exhibitions query. A secondary-name variant is added
// only when the venue has one.
func BuildQueries(venue *model.Venue, now time.Time, max int) []string {
	queries := []string{
		fmt.Sprintf("%s %d년 %d월 전시", venue.Name, now.Year(), int(now.Month())),
		fmt.Sprintf("%s 현재 전시", venue.Name),
		fmt.Sprintf("%s 기획전", venue.Name),
		fmt.Sprintf("%s 특별전", venue.Name),
		fmt.Sprintf("%s %d", venue.Name, now.Year()),
	}
	if venue.NameEn != "" {
		queries = append(queries, fmt.Sprintf("%s exhibition %d", venue.NameEn, now.Year()))
	}

	if max > 0 && len(queries) > max {
		queries = queries[:max]
	}
	return queries
}
