package ports

import (
	"context"

	"github.com/viralforge/publish-review-service/internal/domain"
)

// SubmissionRepository owns persisted submission state. Create reserves the
// single active slot at insert time: if a non-terminal submission already
// exists, it fails with domain.ErrSlotOccupied and inserts nothing.
type SubmissionRepository interface {
	Create(ctx context.Context, sub domain.Submission) error
	GetByID(ctx context.Context, submissionID string) (domain.Submission, error)
	GetByPlatformID(ctx context.Context, platformID string) (domain.Submission, error)
	Latest(ctx context.Context) (domain.Submission, error)
	LatestByState(ctx context.Context, state domain.SubmissionState) (domain.Submission, error)
	Update(ctx context.Context, sub domain.Submission) error
	Delete(ctx context.Context, submissionID string) error
}
