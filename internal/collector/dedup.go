package collector

import (
	"strconv"

	"ExhibitSync/internal/extract"
	"ExhibitSync/internal/model"
)

// Dedup collapses candidates produced across queries and channels for one
// venue into a unique set keyed by (normalized title, start-date epoch).
// First occurrence wins, so channel registration order is the tie-break.
func Dedup(candidates []*model.Candidate) []*model.Candidate {
	if len(candidates) == 0 {
		return candidates
	}

	seen := make(map[string]struct{}, len(candidates))
	unique := make([]*model.Candidate, 0, len(candidates))
	for _, c := range candidates {
		key := dedupKey(c)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, c)
	}
	return unique
}

func dedupKey(c *model.Candidate) string {
	return extract.NormalizeTitle(c.Title) + "_" + strconv.FormatInt(c.StartDate.Unix(), 10)
}
