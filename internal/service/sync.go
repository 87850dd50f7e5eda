package service

import (
	"context"
	"fmt"
	"time"

	"ExhibitSync/internal/collector"
	"ExhibitSync/internal/config"
	"ExhibitSync/internal/interfaces"
	"ExhibitSync/internal/model"

	"github.com/sirupsen/logrus"
)

// SyncService runs the collection pipeline end to end: venues of a tier →
// collector → reconciler → catalog, with per-venue failure isolation and a
// run report at the end. It is the unit the scheduler and the HTTP trigger
// surface both call into.
type SyncService struct {
	repo       interfaces.CatalogRepository
	collector  *collector.Collector
	reconciler *Reconciler
	lifecycle  *LifecycleSweeper
	retention  *RetentionSweeper
	reporter   *Reporter
	cfg        *config.CollectorConfig
	logger     *logrus.Logger
	now        func() time.Time
	sleep      func(time.Duration)
}

func NewSyncService(
	repo interfaces.CatalogRepository,
	col *collector.Collector,
	reconciler *Reconciler,
	lifecycle *LifecycleSweeper,
	retention *RetentionSweeper,
	reporter *Reporter,
	cfg *config.CollectorConfig,
	logger *logrus.Logger,
) *SyncService {
	return &SyncService{
		repo:       repo,
		collector:  col,
		reconciler: reconciler,
		lifecycle:  lifecycle,
		retention:  retention,
		reporter:   reporter,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
		sleep:      time.Sleep,
	}
}

// RunTier collects every active venue of one tier sequentially. A venue
// that fails is recorded and skipped; the remaining venues still run. The
// tier-3 run is the heavyweight weekly-class run and persists an artifact.
func (s *SyncService) RunTier(ctx context.Context, tier int) *model.RunReport {
	report := &model.RunReport{
		Job:       fmt.Sprintf("tier-%d-collection", tier),
		StartedAt: s.now(),
	}

	venues, err := s.repo.FindActiveVenues(ctx, tier)
	if err != nil {
		report.AddError(model.StageJob, "", "", err)
		report.VenuesFailed++
		s.reporter.Complete(ctx, report, false)
		return report
	}

	s.logger.Infof("starting %s for %d venues", report.Job, len(venues))

	for i, venue := range venues {
		if i > 0 {
			s.sleep(s.cfg.VenueDelay())
		}
		if err := s.collectVenue(ctx, venue, report); err != nil {
			report.VenuesFailed++
			report.AddError(model.StageJob, venue.Name, "", err)
			s.logger.WithError(err).WithField("venue", venue.Name).Error("venue collection failed, continuing")
			continue
		}
		report.VenuesOK++
	}

	s.reporter.Complete(ctx, report, tier == 3)
	return report
}

// RunVenue collects a single venue on demand, outside its tier schedule.
func (s *SyncService) RunVenue(ctx context.Context, venueID uint64) (*model.RunReport, error) {
	venue, err := s.repo.FindVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	if venue == nil {
		return nil, fmt.Errorf("venue %d not found", venueID)
	}

	report := &model.RunReport{
		Job:       fmt.Sprintf("venue-%d-collection", venueID),
		StartedAt: s.now(),
	}
	if err := s.collectVenue(ctx, venue, report); err != nil {
		report.VenuesFailed++
		report.AddError(model.StageJob, venue.Name, "", err)
	} else {
		report.VenuesOK++
	}
	s.reporter.Complete(ctx, report, false)
	return report, nil
}

// collectVenue processes one venue. A panic anywhere below, channel code
// included, is converted to an error here so it cannot take down the rest
// of the run.
func (s *SyncService) collectVenue(ctx context.Context, venue *model.Venue, report *model.RunReport) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("venue collection panic: %v", r)
		}
	}()

	res := s.collector.CollectVenue(ctx, venue)
	report.Errors = append(report.Errors, res.Errors...)
	report.Duplicates += res.Duplicates
	report.Collected += len(res.Candidates)

	for _, cand := range res.Candidates {
		outcome, err := s.reconciler.Reconcile(ctx, cand, venue)
		if err != nil {
			// Persistence failure for one candidate; the rest still save.
			report.AddError(model.StagePersist, venue.Name, cand.Title, err)
			continue
		}
		switch outcome {
		case OutcomeInserted:
			report.Saved++
		case OutcomeUpdated:
			report.Updated++
		}
	}

	if err := s.repo.TouchVenueCrawled(ctx, venue.ID, s.now()); err != nil {
		s.logger.WithError(err).WithField("venue", venue.Name).Warn("last-crawled update failed")
	}
	return nil
}

// RunSweep reclassifies lifecycle status across the whole catalog.
func (s *SyncService) RunSweep(ctx context.Context) (int64, error) {
	return s.lifecycle.Sweep(ctx)
}

// RunCleanup is the monthly maintenance pass: retention delete followed by
// a full lifecycle sweep, reported as its own run. A failure counts as a
// failed run in process statistics and raises a failure notification.
func (s *SyncService) RunCleanup(ctx context.Context) error {
	removed, err := s.retention.Sweep(ctx)
	if err != nil {
		err = fmt.Errorf("retention sweep: %w", err)
		s.reporter.RecordJobFailure(ctx, "monthly-cleanup", err)
		return err
	}

	updated, err := s.lifecycle.Sweep(ctx)
	if err != nil {
		err = fmt.Errorf("lifecycle sweep: %w", err)
		s.reporter.RecordJobFailure(ctx, "monthly-cleanup", err)
		return err
	}

	s.reporter.Notify(ctx, EventCleanupDone, map[string]interface{}{
		"removed":      removed,
		"reclassified": updated,
	})
	return nil
}

// RunHealthCheck is the hourly liveness probe: an empty catalog is the one
// condition worth waking someone for.
func (s *SyncService) RunHealthCheck(ctx context.Context) error {
	count, err := s.repo.CountExhibitions(ctx)
	if err != nil {
		err = fmt.Errorf("health check: %w", err)
		s.reporter.RecordJobFailure(ctx, "health-check", err)
		return err
	}

	if count == 0 {
		s.logger.Warn("no exhibitions in catalog, collection may be broken")
		s.reporter.Notify(ctx, EventHealthWarning, map[string]interface{}{
			"message": "no exhibitions in catalog",
		})
		return nil
	}

	s.logger.Debugf("catalog healthy, %d exhibitions", count)
	return nil
}

// Stats exposes the process-lifetime run statistics.
func (s *SyncService) Stats() model.ProcessStats {
	return s.reporter.Stats()
}
