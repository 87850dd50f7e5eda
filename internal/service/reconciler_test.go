package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ExhibitSync/internal/extract"
	"ExhibitSync/internal/model"

	"github.com/sirupsen/logrus"
)

func testReconciler(repo *fakeRepo) *Reconciler {
	r := NewReconciler(repo, extract.NewTagger(), logrus.New())
	r.now = func() time.Time { return time.Date(2024, time.April, 1, 12, 0, 0, 0, time.UTC) }
	return r
}

func testCandidate() *model.Candidate {
	return &model.Candidate{
		Title:       "Spring Light",
		Description: "봄의 빛 특별전",
		StartDate:   time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, time.May, 30, 0, 0, 0, 0, time.UTC),
		Artists:     []string{"Kim", "Lee"},
		Channel:     "blog",
		SourceURL:   "https://blog.example.com/1",
	}
}

func TestReconcile_Insert(t *testing.T) {
	repo := &fakeRepo{}
	rec := testReconciler(repo)
	venue := &model.Venue{ID: 1, Name: "시립미술관", City: "서울", Country: "KR"}

	outcome, err := rec.Reconcile(context.Background(), testCandidate(), venue)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if outcome != OutcomeInserted {
		t.Fatalf("outcome = %v, want OutcomeInserted", outcome)
	}
	if repo.inserts != 1 {
		t.Fatalf("inserts = %d, want 1", repo.inserts)
	}

	ex := repo.exhibitions[0]
	if ex.UUID == "" {
		t.Error("UUID not assigned")
	}
	if ex.VenueName != "시립미술관" || ex.VenueCity != "서울" {
		t.Errorf("venue fields not denormalized: %q %q", ex.VenueName, ex.VenueCity)
	}
	if ex.Status != model.StatusOngoing {
		t.Errorf("Status = %s, want ongoing for a run spanning today", ex.Status)
	}
	if ex.VerificationStatus != model.VerificationPending {
		t.Errorf("VerificationStatus = %s, want pending", ex.VerificationStatus)
	}

	var tags []string
	if err := json.Unmarshal(ex.Tags, &tags); err != nil {
		t.Fatalf("unmarshal tags: %v", err)
	}
	if len(tags) < 3 || len(tags) > 6 {
		t.Errorf("len(tags) = %d, want 3..6", len(tags))
	}
}

func TestReconcile_InsertWithoutArtists(t *testing.T) {
	repo := &fakeRepo{}
	rec := testReconciler(repo)

	cand := testCandidate()
	cand.Artists = nil
	if _, err := rec.Reconcile(context.Background(), cand, &model.Venue{ID: 1}); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	// Stored as an empty JSON array, never null.
	if string(repo.exhibitions[0].Artists) != "[]" {
		t.Errorf("Artists JSON = %s, want []", repo.exhibitions[0].Artists)
	}
}

func TestReconcile_MergeResetsVerification(t *testing.T) {
	repo := &fakeRepo{}
	rec := testReconciler(repo)
	venue := &model.Venue{ID: 1, Name: "시립미술관"}

	if _, err := rec.Reconcile(context.Background(), testCandidate(), venue); err != nil {
		t.Fatalf("first Reconcile: %v", err)
	}
	// Moderation verified the row in the meantime.
	repo.exhibitions[0].VerificationStatus = model.VerificationVerified

	cand := testCandidate()
	cand.Description = "업데이트된 설명"
	outcome, err := rec.Reconcile(context.Background(), cand, venue)
	if err != nil {
		t.Fatalf("second Reconcile: %v", err)
	}
	if outcome != OutcomeUpdated {
		t.Fatalf("outcome = %v, want OutcomeUpdated", outcome)
	}
	if repo.inserts != 1 {
		t.Errorf("inserts = %d, want 1 (no duplicate row)", repo.inserts)
	}
	if repo.exhibitions[0].VerificationStatus != model.VerificationPending {
		t.Errorf("VerificationStatus = %s, want pending after re-sighting", repo.exhibitions[0].VerificationStatus)
	}
	if repo.exhibitions[0].Description != "업데이트된 설명" {
		t.Errorf("Description = %q, not merged", repo.exhibitions[0].Description)
	}
}

func TestReconcile_MergeSkipsEmptyFields(t *testing.T) {
	repo := &fakeRepo{}
	rec := testReconciler(repo)
	venue := &model.Venue{ID: 1}

	if _, err := rec.Reconcile(context.Background(), testCandidate(), venue); err != nil {
		t.Fatalf("first Reconcile: %v", err)
	}

	cand := testCandidate()
	cand.Description = ""
	cand.SourceURL = ""
	cand.Artists = nil
	if _, err := rec.Reconcile(context.Background(), cand, venue); err != nil {
		t.Fatalf("second Reconcile: %v", err)
	}

	for _, key := range []string{"description", "source_url", "artists"} {
		if _, ok := repo.lastUpdateFields[key]; ok {
			t.Errorf("merge wrote %q from an empty candidate field", key)
		}
	}
	if _, ok := repo.lastUpdateFields["verification_status"]; !ok {
		t.Error("merge did not reset verification_status")
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	repo := &fakeRepo{}
	rec := testReconciler(repo)
	venue := &model.Venue{ID: 1}

	for i := 0; i < 3; i++ {
		if _, err := rec.Reconcile(context.Background(), testCandidate(), venue); err != nil {
			t.Fatalf("Reconcile #%d: %v", i+1, err)
		}
	}
	if len(repo.exhibitions) != 1 {
		t.Errorf("rows = %d, want 1 after identical re-runs", len(repo.exhibitions))
	}
}
