package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/marcus/bookmodal/internal/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func submission(id string, at time.Time) models.Submission {
	return models.Submission{
		ID:          id,
		SubmittedAt: at,
		Snapshot: models.NewSnapshot(models.BookingDraft{
			Name:           "Jane Doe",
			Email:          "jane@example.com",
			TreatmentID:    "cleaning",
			TreatmentLabel: "Cleaning",
			TimeSlotID:     "morning",
			TimeSlotLabel:  "Morning",
		}),
	}
}

func TestOpenCreatesFile(t *testing.T) {
	dir := t.TempDir()

	db, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(Path(dir)); os.IsNotExist(err) {
		t.Error("Database file not created")
	}
	if db.BaseDir() != dir {
		t.Errorf("BaseDir() = %q, want %q", db.BaseDir(), dir)
	}
}

func TestRecordAndListSubmissions(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	if err := db.RecordSubmission(ctx, submission("first", base)); err != nil {
		t.Fatalf("RecordSubmission failed: %v", err)
	}
	if err := db.RecordSubmission(ctx, submission("second", base.Add(time.Hour))); err != nil {
		t.Fatalf("RecordSubmission failed: %v", err)
	}

	got, err := db.ListSubmissions(ctx, 0)
	if err != nil {
		t.Fatalf("ListSubmissions failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(got))
	}
	if got[0].ID != "second" || got[1].ID != "first" {
		t.Errorf("expected newest first, got %s, %s", got[0].ID, got[1].ID)
	}
	if got[0].TreatmentLabel != "Cleaning" || got[0].Email != "jane@example.com" {
		t.Errorf("values not round-tripped: %+v", got[0])
	}
	if got[0].Phone != "" {
		t.Errorf("empty phone should stay empty, got %q", got[0].Phone)
	}

	limited, err := db.ListSubmissions(ctx, 1)
	if err != nil {
		t.Fatalf("ListSubmissions limit failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit 1 returned %d rows", len(limited))
	}

	n, err := db.CountSubmissions(ctx)
	if err != nil || n != 2 {
		t.Errorf("CountSubmissions = %d, %v", n, err)
	}
}

func TestRecordDuplicateID(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	sub := submission("dup", time.Now())
	if err := db.RecordSubmission(ctx, sub); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if err := db.RecordSubmission(ctx, sub); err == nil {
		t.Error("expected error on duplicate id")
	}
}
