package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ExhibitSync/internal/extract"
	"ExhibitSync/internal/interfaces"
	"ExhibitSync/internal/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// Outcome says what the reconciler did with a candidate.
type Outcome int

const (
	OutcomeInserted Outcome = iota
	OutcomeUpdated
)

// Reconciler matches candidates against the persisted catalog by
// (title, venueID, startDate) and decides insert vs merge-update. The
// operation is idempotent: an identical re-run creates no extra rows.
type Reconciler struct {
	repo   interfaces.CatalogRepository
	tagger *extract.Tagger
	logger *logrus.Logger
	now    func() time.Time
}

func NewReconciler(repo interfaces.CatalogRepository, tagger *extract.Tagger, logger *logrus.Logger) *Reconciler {
	return &Reconciler{repo: repo, tagger: tagger, logger: logger, now: time.Now}
}

func (r *Reconciler) Reconcile(ctx context.Context, cand *model.Candidate, venue *model.Venue) (Outcome, error) {
	existing, err := r.repo.FindExhibition(ctx, cand.Title, venue.ID, cand.StartDate)
	if err != nil {
		return 0, err
	}

	if existing != nil {
		return OutcomeUpdated, r.merge(ctx, existing, cand)
	}
	return OutcomeInserted, r.insert(ctx, cand, venue)
}

// merge overwrites only fields the new sighting actually carries. A fresh
// external signal sends the row back to pending for re-review; counters
// and curated tags stay untouched.
func (r *Reconciler) merge(ctx context.Context, existing *model.Exhibition, cand *model.Candidate) error {
	fields := map[string]interface{}{
		"verification_status": model.VerificationPending,
		"updated_at":          r.now(),
	}
	if cand.Description != "" {
		fields["description"] = cand.Description
	}
	if cand.SourceURL != "" {
		fields["source_url"] = cand.SourceURL
	}
	if len(cand.Artists) > 0 {
		artists, err := json.Marshal(cand.Artists)
		if err != nil {
			return fmt.Errorf("marshal artists: %w", err)
		}
		fields["artists"] = datatypes.JSON(artists)
	}

	if err := r.repo.UpdateExhibition(ctx, existing.ID, fields); err != nil {
		return err
	}
	r.logger.WithField("title", existing.Title).Debug("merged re-sighted exhibition")
	return nil
}

func (r *Reconciler) insert(ctx context.Context, cand *model.Candidate, venue *model.Venue) error {
	artists := cand.Artists
	if artists == nil {
		artists = []string{}
	}
	artistsJSON, err := json.Marshal(artists)
	if err != nil {
		return fmt.Errorf("marshal artists: %w", err)
	}
	tagsJSON, err := json.Marshal(r.tagger.Tags(cand.Title, cand.Description))
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	ex := &model.Exhibition{
		UUID:               uuid.NewString(),
		Title:              cand.Title,
		Description:        cand.Description,
		VenueID:            venue.ID,
		VenueName:          venue.Name,
		VenueCity:          venue.City,
		VenueCountry:       venue.Country,
		StartDate:          cand.StartDate,
		EndDate:            cand.EndDate,
		Artists:            datatypes.JSON(artistsJSON),
		AdmissionFee:       cand.AdmissionFee,
		Source:             cand.Channel,
		SourceURL:          cand.SourceURL,
		Status:             StatusFor(r.now(), cand.StartDate, cand.EndDate),
		VerificationStatus: model.VerificationPending,
		Tags:               datatypes.JSON(tagsJSON),
		Category:           r.tagger.Category(cand.Title, cand.Description),
	}

	if err := r.repo.InsertExhibition(ctx, ex); err != nil {
		return err
	}
	r.logger.WithField("title", ex.Title).WithField("venue", venue.Name).Info("new exhibition saved")
	return nil
}
