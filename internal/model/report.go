package model

import "time"

// Pipeline stages for error attribution.
const (
	StageSearch  = "search"
	StageExtract = "extract"
	StagePersist = "persist"
	StageJob     = "job"
)

// CollectionError records one isolated failure inside a run. Failures are
// data in the run report, not control flow: the run keeps going.
type CollectionError struct {
	Stage string `json:"stage"`
	Venue string `json:"venue,omitempty"`
	Title string `json:"title,omitempty"`
	Err   string `json:"error"`
}

// RunReport aggregates the counts of one collection run.
type RunReport struct {
	Job          string            `json:"job"`
	StartedAt    time.Time         `json:"started_at"`
	Duration     time.Duration     `json:"duration"`
	Collected    int               `json:"collected"`  // candidates surviving extraction
	Saved        int               `json:"saved"`      // new catalog rows
	Updated      int               `json:"updated"`    // merged into existing rows
	Duplicates   int               `json:"duplicates"` // removed by the deduplicator
	VenuesOK     int               `json:"venues_ok"`
	VenuesFailed int               `json:"venues_failed"`
	Errors       []CollectionError `json:"errors,omitempty"`
}

// Failed reports whether the run as a whole should count as failed.
func (r *RunReport) Failed() bool {
	return r.VenuesOK == 0 && r.VenuesFailed > 0
}

// AddError appends one stage failure.
func (r *RunReport) AddError(stage, venue, title string, err error) {
	r.Errors = append(r.Errors, CollectionError{Stage: stage, Venue: venue, Title: title, Err: err.Error()})
}

// ProcessStats accumulates across runs for the lifetime of the process.
type ProcessStats struct {
	TotalRuns      int       `json:"total_runs"`
	SuccessfulRuns int       `json:"successful_runs"`
	FailedRuns     int       `json:"failed_runs"`
	TotalCollected int       `json:"total_collected"`
	LastRun        time.Time `json:"last_run"`
}

// CatalogStats is the snapshot persisted with weekly report artifacts.
type CatalogStats struct {
	TotalExhibitions int64 `json:"total_exhibitions"`
	Upcoming         int64 `json:"upcoming"`
	Ongoing          int64 `json:"ongoing"`
	Ended            int64 `json:"ended"`
	UniqueVenues     int64 `json:"unique_venues"`
}
