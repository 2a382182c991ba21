package ports

import (
	"context"

	"github.com/viralforge/publish-review-service/internal/domain"
)

type PublishRequest struct {
	AssetPath   string
	Title       string
	Description string
	Keywords    string
	Visibility  domain.Visibility
}

type MetadataUpdate struct {
	Title       string
	Description string
	Keywords    string
	Visibility  domain.Visibility
}

// PlatformPublisher is the narrow capability surface onto the external hosting
// platform. Both calls are at-most-once: no retries happen behind this
// interface, and implementations must bound each call with a deadline rather
// than wait indefinitely. Failures come back as *domain.PublishError or
// *domain.VisibilityError.
type PlatformPublisher interface {
	Publish(ctx context.Context, req PublishRequest) (string, error)
	SetVisibility(ctx context.Context, platformID string, update MetadataUpdate) error
}
