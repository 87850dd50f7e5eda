package model

import "time"

// RawItem is one unparsed result from a search channel.
type RawItem struct {
	Title     string    // result headline, may contain markup
	Snippet   string    // free text body, may contain markup
	Link      string    // source URL
	Published time.Time // provider publish date, zero if unknown
}

// Candidate is an exhibition record extracted from one raw item. It lives
// only for the duration of a collection run: either promoted into the
// catalog by the reconciler or discarded.
type Candidate struct {
	Title        string
	Description  string
	StartDate    time.Time
	EndDate      time.Time
	Artists      []string
	AdmissionFee *int // won; nil = unknown, 0 = free

	// Provenance, kept for display and audit.
	Channel   string    // which channel produced it
	SourceURL string    // original post or page
	Published time.Time // when the source item was published
}
