package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"ExhibitSync/internal/interfaces"
	"ExhibitSync/internal/model"

	"github.com/sirupsen/logrus"
)

// Notification event types.
const (
	EventRunSuccess    = "run_success"
	EventRunFailure    = "run_failure"
	EventCleanupDone   = "cleanup_done"
	EventHealthWarning = "health_warning"
)

// Reporter owns process-lifetime run statistics, writes the periodic JSON
// report artifact, and builds notification payloads. Delivery is the
// notifier's problem.
type Reporter struct {
	mu       sync.Mutex
	stats    model.ProcessStats
	dir      string
	repo     interfaces.CatalogRepository
	notifier interfaces.Notifier
	logger   *logrus.Logger
	now      func() time.Time
}

func NewReporter(dir string, repo interfaces.CatalogRepository, notifier interfaces.Notifier, logger *logrus.Logger) *Reporter {
	return &Reporter{
		dir:      dir,
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Complete finalizes one run: statistics, summary log, optional artifact
// (the heavyweight weekly-class runs), and a notification.
func (r *Reporter) Complete(ctx context.Context, report *model.RunReport, persistArtifact bool) {
	report.Duration = r.now().Sub(report.StartedAt)

	r.mu.Lock()
	r.stats.TotalRuns++
	if report.Failed() {
		r.stats.FailedRuns++
	} else {
		r.stats.SuccessfulRuns++
	}
	r.stats.TotalCollected += report.Saved
	r.stats.LastRun = r.now()
	stats := r.stats
	r.mu.Unlock()

	r.logger.WithFields(logrus.Fields{
		"job":        report.Job,
		"duration":   report.Duration.Round(time.Millisecond).String(),
		"collected":  report.Collected,
		"saved":      report.Saved,
		"updated":    report.Updated,
		"duplicates": report.Duplicates,
		"errors":     len(report.Errors),
	}).Info("collection run completed")

	if persistArtifact {
		if err := r.writeArtifact(ctx, report, stats); err != nil {
			r.logger.WithError(err).Warn("report artifact write failed")
		}
	}

	event := EventRunSuccess
	if report.Failed() {
		event = EventRunFailure
	}
	r.notify(ctx, event, map[string]interface{}{
		"job":       report.Job,
		"collected": report.Collected,
		"saved":     report.Saved,
		"errors":    len(report.Errors),
		"duration":  report.Duration.String(),
	})
}

// RecordJobFailure marks a run that died before producing a report.
func (r *Reporter) RecordJobFailure(ctx context.Context, job string, err error) {
	r.mu.Lock()
	r.stats.TotalRuns++
	r.stats.FailedRuns++
	r.stats.LastRun = r.now()
	r.mu.Unlock()

	r.logger.WithError(err).WithField("job", job).Error("job failed")
	r.notify(ctx, EventRunFailure, map[string]interface{}{
		"job":   job,
		"error": err.Error(),
	})
}

// Stats returns a copy of the process statistics.
func (r *Reporter) Stats() model.ProcessStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// Notify forwards an event through the configured notifier.
func (r *Reporter) Notify(ctx context.Context, event string, payload map[string]interface{}) {
	r.notify(ctx, event, payload)
}

func (r *Reporter) notify(ctx context.Context, event string, payload map[string]interface{}) {
	if r.notifier == nil {
		return
	}
	if err := r.notifier.Notify(ctx, event, payload); err != nil {
		r.logger.WithError(err).WithField("event", event).Warn("notification delivery failed")
	}
}

// artifact is the shape of the dated JSON summary. It is informational
// only and never read back by the pipeline.
type artifact struct {
	Timestamp time.Time           `json:"timestamp"`
	Report    *model.RunReport    `json:"report"`
	Stats     model.ProcessStats  `json:"stats"`
	Catalog   *model.CatalogStats `json:"catalog,omitempty"`
}

func (r *Reporter) writeArtifact(ctx context.Context, report *model.RunReport, stats model.ProcessStats) error {
	catalog, err := r.repo.CollectionStats(ctx)
	if err != nil {
		r.logger.WithError(err).Warn("catalog stats unavailable for report artifact")
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	path := filepath.Join(r.dir, fmt.Sprintf("report-%s.json", r.now().Format("2006-01-02")))
	data, err := json.MarshalIndent(artifact{
		Timestamp: r.now(),
		Report:    report,
		Stats:     stats,
		Catalog:   catalog,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report artifact: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report artifact: %w", err)
	}
	r.logger.WithField("path", path).Info("report artifact saved")
	return nil
}

// LogNotifier is the default sink: events land in the structured log. Real
// delivery (mail, chat webhook) is an external collaborator implementing
// the same interface.
type LogNotifier struct {
	logger *logrus.Logger
}

func NewLogNotifier(logger *logrus.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, eventType string, payload map[string]interface{}) error {
	n.logger.WithField("event", eventType).WithFields(logrus.Fields(payload)).Info("notification")
	return nil
}
