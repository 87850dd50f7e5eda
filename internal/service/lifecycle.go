package service

import (
	"context"
	"time"

	"ExhibitSync/internal/interfaces"
	"ExhibitSync/internal/model"

	"github.com/sirupsen/logrus"
)

// StatusFor is the pure lifecycle function. Only the calendar date matters;
// times of day are ignored.
//
//	today < start         => upcoming
//	start <= today <= end => ongoing
//	today > end           => ended
func StatusFor(today, start, end time.Time) model.ExhibitionStatus {
	d := dateOnly(today)
	s := dateOnly(start)
	e := dateOnly(end)

	switch {
	case d.Before(s):
		return model.StatusUpcoming
	case d.After(e):
		return model.StatusEnded
	default:
		return model.StatusOngoing
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// LifecycleSweeper periodically reconciles status across the entire
// catalog, independent of ingestion. cancelled and draft rows are sticky
// and excluded at the storage layer.
type LifecycleSweeper struct {
	repo   interfaces.CatalogRepository
	logger *logrus.Logger
	now    func() time.Time
}

func NewLifecycleSweeper(repo interfaces.CatalogRepository, logger *logrus.Logger) *LifecycleSweeper {
	return &LifecycleSweeper{repo: repo, logger: logger, now: time.Now}
}

// Sweep returns the number of rows reclassified.
func (l *LifecycleSweeper) Sweep(ctx context.Context) (int64, error) {
	updated, err := l.repo.UpdateStatusBulk(ctx, l.now())
	if err != nil {
		return 0, err
	}
	if updated > 0 {
		l.logger.Infof("lifecycle sweep reclassified %d exhibitions", updated)
	}
	return updated, nil
}
