package application

import (
	"log/slog"
	"time"

	"github.com/viralforge/publish-review-service/internal/domain"
	"github.com/viralforge/publish-review-service/internal/ports"
)

type Config struct {
	ServiceName    string
	PublishTimeout time.Duration
	LatestCacheTTL time.Duration
}

type SubmitInput struct {
	AssetPath     string
	Title         string
	Description   string
	Keywords      string
	PrivacyStatus string
}

// CurrentQuery selects which submission the review surface sees. With State
// nil it returns the most recent row regardless of state, which is what the
// original review screen relied on; callers that only want reviewable rows
// pass StatePendingReview explicitly.
type CurrentQuery struct {
	State *domain.SubmissionState
}

type ApproveInput struct {
	SubmissionID  string
	PlatformID    string
	Title         string
	Description   string
	Keywords      string
	PrivacyStatus string
}

type RejectInput struct {
	SubmissionID string
	PlatformID   string
}

type Service struct {
	cfg Config

	submissions ports.SubmissionRepository
	publisher   ports.PlatformPublisher
	events      ports.EventPublisher
	cache       ports.LatestCache

	logger *slog.Logger
	nowFn  func() time.Time
}

type Dependencies struct {
	Config Config

	Submissions ports.SubmissionRepository
	Publisher   ports.PlatformPublisher
	Events      ports.EventPublisher
	Cache       ports.LatestCache

	Logger *slog.Logger
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ServiceName == "" {
		cfg.ServiceName = "publish-review-service"
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = 60 * time.Second
	}
	if cfg.LatestCacheTTL <= 0 {
		cfg.LatestCacheTTL = 10 * time.Second
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:         cfg,
		submissions: deps.Submissions,
		publisher:   deps.Publisher,
		events:      deps.Events,
		cache:       deps.Cache,
		logger:      logger,
		nowFn:       func() time.Time { return time.Now().UTC() },
	}
}
