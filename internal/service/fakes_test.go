package service

import (
	"context"
	"time"

	"ExhibitSync/internal/model"
)

// fakeRepo is an in-memory CatalogRepository for service tests.
type fakeRepo struct {
	venues      []*model.Venue
	exhibitions []*model.Exhibition

	inserts int
	updates int

	lastUpdateFields map[string]interface{}
	lastCutoff       time.Time
	lastSweepDay     time.Time

	sweepResult   int64
	deleteResult  int64
	count         int64
	findVenuesErr error
	insertErr     error
	sweepErr      error
	deleteErr     error
	countErr      error
}

func (f *fakeRepo) FindActiveVenues(_ context.Context, tier int) ([]*model.Venue, error) {
	if f.findVenuesErr != nil {
		return nil, f.findVenuesErr
	}
	var out []*model.Venue
	for _, v := range f.venues {
		if tier == 0 || v.Tier == tier {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindVenue(_ context.Context, id uint64) (*model.Venue, error) {
	for _, v := range f.venues {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) TouchVenueCrawled(_ context.Context, venueID uint64, at time.Time) error {
	for _, v := range f.venues {
		if v.ID == venueID {
			t := at
			v.LastCrawledAt = &t
		}
	}
	return nil
}

func (f *fakeRepo) FindExhibition(_ context.Context, title string, venueID uint64, start time.Time) (*model.Exhibition, error) {
	for _, ex := range f.exhibitions {
		if ex.Title == title && ex.VenueID == venueID && ex.StartDate.Equal(start) {
			return ex, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) InsertExhibition(_ context.Context, ex *model.Exhibition) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserts++
	ex.ID = uint64(len(f.exhibitions) + 1)
	f.exhibitions = append(f.exhibitions, ex)
	return nil
}

func (f *fakeRepo) UpdateExhibition(_ context.Context, id uint64, fields map[string]interface{}) error {
	f.updates++
	f.lastUpdateFields = fields
	for _, ex := range f.exhibitions {
		if ex.ID == id {
			if v, ok := fields["verification_status"]; ok {
				ex.VerificationStatus = v.(model.VerificationStatus)
			}
			if v, ok := fields["description"]; ok {
				ex.Description = v.(string)
			}
			if v, ok := fields["source_url"]; ok {
				ex.SourceURL = v.(string)
			}
		}
	}
	return nil
}

func (f *fakeRepo) UpdateStatusBulk(_ context.Context, today time.Time) (int64, error) {
	f.lastSweepDay = today
	return f.sweepResult, f.sweepErr
}

func (f *fakeRepo) DeleteUnverifiedOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.lastCutoff = cutoff
	return f.deleteResult, f.deleteErr
}

func (f *fakeRepo) CountExhibitions(_ context.Context) (int64, error) {
	return f.count, f.countErr
}

func (f *fakeRepo) CollectionStats(_ context.Context) (*model.CatalogStats, error) {
	return &model.CatalogStats{TotalExhibitions: int64(len(f.exhibitions))}, nil
}

// recordingNotifier captures delivered events.
type recordingNotifier struct {
	events   []string
	payloads []map[string]interface{}
}

func (n *recordingNotifier) Notify(_ context.Context, eventType string, payload map[string]interface{}) error {
	n.events = append(n.events, eventType)
	n.payloads = append(n.payloads, payload)
	return nil
}
