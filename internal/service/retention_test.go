package service

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestRetentionSweeper_Cutoff(t *testing.T) {
	repo := &fakeRepo{deleteResult: 3}
	sweeper := NewRetentionSweeper(repo, 180, logrus.New())

	now := time.Date(2024, time.September, 1, 10, 0, 0, 0, time.UTC)
	sweeper.now = func() time.Time { return now }

	removed, err := sweeper.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}

	want := now.AddDate(0, 0, -180)
	if !repo.lastCutoff.Equal(want) {
		t.Errorf("cutoff = %v, want %v", repo.lastCutoff, want)
	}
}
