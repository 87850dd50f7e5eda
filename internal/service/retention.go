package service

import (
	"context"
	"time"

	"ExhibitSync/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// RetentionSweeper removes catalog rows older than the configured age that
// never reached verified status. Verified rows live forever; venues are
// never deleted by the pipeline.
type RetentionSweeper struct {
	repo       interfaces.CatalogRepository
	maxAgeDays int
	logger     *logrus.Logger
	now        func() time.Time
}

func NewRetentionSweeper(repo interfaces.CatalogRepository, maxAgeDays int, logger *logrus.Logger) *RetentionSweeper {
	return &RetentionSweeper{repo: repo, maxAgeDays: maxAgeDays, logger: logger, now: time.Now}
}

// Sweep returns the number of rows removed.
func (s *RetentionSweeper) Sweep(ctx context.Context) (int64, error) {
	cutoff := s.now().AddDate(0, 0, -s.maxAgeDays)
	removed, err := s.repo.DeleteUnverifiedOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	s.logger.Infof("retention sweep removed %d unverified exhibitions older than %s", removed, cutoff.Format("2006-01-02"))
	return removed, nil
}
