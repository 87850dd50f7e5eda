package interfaces

import (
	"context"
	"time"

	"ExhibitSync/internal/model"
)

// QueryChannel is a search-style source driven by generated query strings
// (the provider's blog and news channels).
type QueryChannel interface {
	Name() string
	Search(ctx context.Context, query string) ([]model.RawItem, error)
}

// VenueSource is a source driven by the venue itself rather than a query
// (RSS feeds filtered by venue name, the venue's own exhibition page).
type VenueSource interface {
	Name() string
	FetchVenue(ctx context.Context, venue *model.Venue) ([]model.RawItem, error)
}

// CatalogRepository is the persistence surface the pipeline depends on.
type CatalogRepository interface {
	FindActiveVenues(ctx context.Context, tier int) ([]*model.Venue, error)
	FindVenue(ctx context.Context, id uint64) (*model.Venue, error)
	TouchVenueCrawled(ctx context.Context, venueID uint64, at time.Time) error

	FindExhibition(ctx context.Context, title string, venueID uint64, start time.Time) (*model.Exhibition, error)
	InsertExhibition(ctx context.Context, ex *model.Exhibition) error
	UpdateExhibition(ctx context.Context, id uint64, fields map[string]interface{}) error

	// UpdateStatusBulk reclassifies the whole catalog among
	// upcoming/ongoing/ended for the given day. cancelled and draft rows
	// are left untouched.
	UpdateStatusBulk(ctx context.Context, today time.Time) (int64, error)

	// DeleteUnverifiedOlderThan removes rows created before cutoff that
	// never reached verified status.
	DeleteUnverifiedOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	CountExhibitions(ctx context.Context) (int64, error)
	CollectionStats(ctx context.Context) (*model.CatalogStats, error)
}

// Notifier delivers success/failure/health events. Delivery mechanism is an
// external collaborator; the pipeline only builds payloads.
type Notifier interface {
	Notify(ctx context.Context, eventType string, payload map[string]interface{}) error
}
