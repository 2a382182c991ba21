package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/viralforge/publish-review-service/internal/domain"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Connect(context.Background(), "file:"+uuid.NewString()+"?mode=memory&cache=shared", 1)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newSubmission(state domain.SubmissionState, createdAt time.Time) domain.Submission {
	return domain.Submission{
		SubmissionID: uuid.NewString(),
		Title:        "clip",
		Visibility:   domain.VisibilityUnlisted,
		State:        state,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

func TestCreateEnforcesSingleActiveSlot(t *testing.T) {
	repos := NewRepositories(testDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	first := newSubmission(domain.StatePublishing, now)
	if err := repos.Submissions.Create(ctx, first); err != nil {
		t.Fatalf("create first: %v", err)
	}

	second := newSubmission(domain.StatePublishing, now.Add(time.Second))
	if err := repos.Submissions.Create(ctx, second); !errors.Is(err, domain.ErrSlotOccupied) {
		t.Fatalf("expected slot occupied, got %v", err)
	}
}

func TestTerminalUpdateReleasesSlot(t *testing.T) {
	repos := NewRepositories(testDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	first := newSubmission(domain.StatePublishing, now)
	if err := repos.Submissions.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}

	first.State = domain.StateFailed
	first.FailureCode = "process_failure"
	first.UpdatedAt = now.Add(time.Second)
	if err := repos.Submissions.Update(ctx, first); err != nil {
		t.Fatalf("update to failed: %v", err)
	}

	// Failed row is retained but no longer blocks the slot.
	stored, err := repos.Submissions.GetByID(ctx, first.SubmissionID)
	if err != nil {
		t.Fatalf("get failed row: %v", err)
	}
	if stored.State != domain.StateFailed || stored.FailureCode != "process_failure" {
		t.Fatalf("unexpected stored row: %+v", stored)
	}

	next := newSubmission(domain.StatePublishing, now.Add(2*time.Second))
	if err := repos.Submissions.Create(ctx, next); err != nil {
		t.Fatalf("create after terminal update: %v", err)
	}
}

func TestLookupAndLatest(t *testing.T) {
	repos := NewRepositories(testDB(t))
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	first := newSubmission(domain.StatePublishing, now)
	if err := repos.Submissions.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	first.PlatformID = "vid-1"
	first.State = domain.StateApproved
	first.UpdatedAt = now.Add(time.Second)
	if err := repos.Submissions.Update(ctx, first); err != nil {
		t.Fatalf("update: %v", err)
	}

	second := newSubmission(domain.StatePendingReview, now.Add(time.Minute))
	second.PlatformID = "vid-2"
	if err := repos.Submissions.Create(ctx, second); err != nil {
		t.Fatalf("create second: %v", err)
	}

	byPlatform, err := repos.Submissions.GetByPlatformID(ctx, "vid-1")
	if err != nil {
		t.Fatalf("get by platform id: %v", err)
	}
	if byPlatform.SubmissionID != first.SubmissionID {
		t.Fatalf("got %s, want %s", byPlatform.SubmissionID, first.SubmissionID)
	}

	latest, err := repos.Submissions.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.SubmissionID != second.SubmissionID {
		t.Fatalf("latest is %s, want %s", latest.SubmissionID, second.SubmissionID)
	}

	approved, err := repos.Submissions.LatestByState(ctx, domain.StateApproved)
	if err != nil {
		t.Fatalf("latest by state: %v", err)
	}
	if approved.SubmissionID != first.SubmissionID {
		t.Fatalf("latest approved is %s, want %s", approved.SubmissionID, first.SubmissionID)
	}

	if _, err := repos.Submissions.LatestByState(ctx, domain.StateFailed); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for absent state, got %v", err)
	}
}

func TestDeleteRemovesRow(t *testing.T) {
	repos := NewRepositories(testDB(t))
	ctx := context.Background()

	sub := newSubmission(domain.StatePendingReview, time.Now().UTC())
	if err := repos.Submissions.Create(ctx, sub); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repos.Submissions.Delete(ctx, sub.SubmissionID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repos.Submissions.GetByID(ctx, sub.SubmissionID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := repos.Submissions.Delete(ctx, sub.SubmissionID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on double delete, got %v", err)
	}

	// Deleting the pending row frees the slot for the next submission.
	if err := repos.Submissions.Create(ctx, newSubmission(domain.StatePublishing, time.Now().UTC())); err != nil {
		t.Fatalf("create after delete: %v", err)
	}
}

func TestUpdateUnknownSubmission(t *testing.T) {
	repos := NewRepositories(testDB(t))
	sub := newSubmission(domain.StatePendingReview, time.Now().UTC())
	if err := repos.Submissions.Update(context.Background(), sub); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
