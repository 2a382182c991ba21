package ports

import (
	"context"
	"time"

	"github.com/viralforge/publish-review-service/internal/domain"
)

// LatestCache holds a short-lived advisory copy of the most recent submission
// for display reads. The store stays the source of truth; a cache miss or
// error always falls through to it.
type LatestCache interface {
	Get(ctx context.Context) (domain.Submission, bool, error)
	Set(ctx context.Context, sub domain.Submission, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}
