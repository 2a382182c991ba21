package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/viralforge/publish-review-service/internal/contracts"
	"github.com/viralforge/publish-review-service/internal/domain"
	"github.com/viralforge/publish-review-service/internal/ports"
)

const (
	EventSubmissionPublished     = "submission.published"
	EventSubmissionPublishFailed = "submission.publish_failed"
	EventSubmissionApproved      = "submission.approved"
	EventSubmissionRejected      = "submission.rejected"
)

// Submit admits a new submission into the single review slot, publishes the
// staged asset to the external platform and commits exactly one transition:
// pending_review on success, failed on any publish error. The slot is reserved
// by the store at insert time, so a concurrent Submit loses with
// domain.ErrSlotOccupied before anything is written.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (domain.Submission, error) {
	assetPath := strings.TrimSpace(input.AssetPath)
	if assetPath == "" {
		return domain.Submission{}, domain.ErrInvalidInput
	}
	visibility, err := domain.NormalizeVisibility(input.PrivacyStatus)
	if err != nil {
		return domain.Submission{}, err
	}
	meta := domain.Metadata{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Keywords:    strings.TrimSpace(input.Keywords),
		Visibility:  visibility,
	}
	if err := domain.ValidateMetadata(meta); err != nil {
		return domain.Submission{}, err
	}

	now := s.nowFn()
	sub := domain.Submission{
		SubmissionID: uuid.NewString(),
		Title:        meta.Title,
		Description:  meta.Description,
		Keywords:     meta.Keywords,
		Visibility:   meta.Visibility,
		State:        domain.StatePublishing,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.submissions.Create(ctx, sub); err != nil {
		return domain.Submission{}, err
	}
	s.invalidateLatest(ctx)

	publishCtx, cancel := context.WithTimeout(ctx, s.cfg.PublishTimeout)
	platformID, publishErr := s.publisher.Publish(publishCtx, ports.PublishRequest{
		AssetPath:   assetPath,
		Title:       sub.Title,
		Description: sub.Description,
		Keywords:    sub.Keywords,
		Visibility:  sub.Visibility,
	})
	cancel()

	if publishErr != nil {
		sub.State = domain.StateFailed
		sub.FailureCode = failureCode(publishErr)
		sub.UpdatedAt = s.nowFn()
		if storeErr := s.submissions.Update(ctx, sub); storeErr != nil {
			s.logger.ErrorContext(ctx, "failed to persist failed submission",
				"module", "application.service",
				"operation", "submit",
				"outcome", "failure",
				"submission_id", sub.SubmissionID,
				"error", storeErr,
			)
			return domain.Submission{}, storeErr
		}
		s.invalidateLatest(ctx)
		s.emitEvent(ctx, EventSubmissionPublishFailed, sub)
		return sub, publishErr
	}

	sub.PlatformID = platformID
	sub.State = domain.StatePendingReview
	sub.UpdatedAt = s.nowFn()
	if err := s.submissions.Update(ctx, sub); err != nil {
		return domain.Submission{}, err
	}
	s.invalidateLatest(ctx)
	s.emitEvent(ctx, EventSubmissionPublished, sub)
	return sub, nil
}

// Current returns the submission the review surface should display. The
// found flag is false when no matching row exists.
func (s *Service) Current(ctx context.Context, query CurrentQuery) (domain.Submission, bool, error) {
	if query.State != nil {
		sub, err := s.submissions.LatestByState(ctx, *query.State)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Submission{}, false, nil
		}
		if err != nil {
			return domain.Submission{}, false, err
		}
		return sub, true, nil
	}

	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx); err == nil && ok {
			return cached, true, nil
		}
	}
	sub, err := s.submissions.Latest(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Submission{}, false, nil
	}
	if err != nil {
		return domain.Submission{}, false, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, sub, s.cfg.LatestCacheTTL); err != nil {
			s.logger.WarnContext(ctx, "latest cache write failed",
				"module", "application.service",
				"operation", "current",
				"error", err,
			)
		}
	}
	return sub, true, nil
}

// Approve applies the owner's edits, pushes metadata and the chosen visibility
// to the platform, and finalizes the submission. On a platform error nothing
// is persisted and the submission stays pending_review.
func (s *Service) Approve(ctx context.Context, input ApproveInput) (domain.Submission, error) {
	sub, err := s.resolve(ctx, input.SubmissionID, input.PlatformID)
	if err != nil {
		return domain.Submission{}, err
	}
	if !domain.CanTransition(sub.State, domain.StateApproved) {
		return domain.Submission{}, domain.ErrInvalidTransition
	}
	visibility, err := domain.NormalizeVisibility(input.PrivacyStatus)
	if err != nil {
		return domain.Submission{}, err
	}
	meta := domain.Metadata{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Keywords:    strings.TrimSpace(input.Keywords),
		Visibility:  visibility,
	}
	if err := domain.ValidateMetadata(meta); err != nil {
		return domain.Submission{}, err
	}

	updateCtx, cancel := context.WithTimeout(ctx, s.cfg.PublishTimeout)
	err = s.publisher.SetVisibility(updateCtx, sub.PlatformID, ports.MetadataUpdate{
		Title:       meta.Title,
		Description: meta.Description,
		Keywords:    meta.Keywords,
		Visibility:  meta.Visibility,
	})
	cancel()
	if err != nil {
		return domain.Submission{}, err
	}

	sub.Title = meta.Title
	sub.Description = meta.Description
	sub.Keywords = meta.Keywords
	sub.Visibility = meta.Visibility
	sub.State = domain.StateApproved
	sub.UpdatedAt = s.nowFn()
	if err := s.submissions.Update(ctx, sub); err != nil {
		return domain.Submission{}, err
	}
	s.invalidateLatest(ctx)
	s.emitEvent(ctx, EventSubmissionApproved, sub)
	return sub, nil
}

// Reject discards a pending submission entirely. The platform is never
// touched: the uploaded asset stays restricted there and only the local
// record is removed.
func (s *Service) Reject(ctx context.Context, input RejectInput) error {
	sub, err := s.resolve(ctx, input.SubmissionID, input.PlatformID)
	if err != nil {
		return err
	}
	if !domain.CanTransition(sub.State, domain.StateRejected) {
		return domain.ErrInvalidTransition
	}
	if err := s.submissions.Delete(ctx, sub.SubmissionID); err != nil {
		return err
	}
	s.invalidateLatest(ctx)
	sub.State = domain.StateRejected
	s.emitEvent(ctx, EventSubmissionRejected, sub)
	return nil
}

// resolve loads a submission by surrogate id or, failing that, by the
// platform video id the review clients address records with.
func (s *Service) resolve(ctx context.Context, submissionID, platformID string) (domain.Submission, error) {
	submissionID = strings.TrimSpace(submissionID)
	platformID = strings.TrimSpace(platformID)
	if submissionID != "" {
		return s.submissions.GetByID(ctx, submissionID)
	}
	if platformID != "" {
		return s.submissions.GetByPlatformID(ctx, platformID)
	}
	return domain.Submission{}, domain.ErrInvalidInput
}

func (s *Service) invalidateLatest(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.WarnContext(ctx, "latest cache invalidation failed",
			"module", "application.service",
			"error", err,
		)
	}
}

// emitEvent publishes a lifecycle event for a committed transition. Event
// delivery is best effort and never affects the transition itself.
func (s *Service) emitEvent(ctx context.Context, eventType string, sub domain.Submission) {
	if s.events == nil {
		return
	}
	envelope := contracts.EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		OccurredAt:    s.nowFn(),
		PartitionKey:  sub.SubmissionID,
		SourceService: s.cfg.ServiceName,
		SchemaVersion: "1.0",
		Data: contracts.SubmissionEventData{
			SubmissionID:  sub.SubmissionID,
			VideoID:       sub.PlatformID,
			State:         string(sub.State),
			PrivacyStatus: string(sub.Visibility),
			FailureCode:   sub.FailureCode,
		},
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return
	}
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.events.Publish(publishCtx, eventType, payload, sub.SubmissionID); err != nil {
		s.logger.WarnContext(ctx, "lifecycle event publish failed",
			"module", "application.service",
			"event_type", eventType,
			"submission_id", sub.SubmissionID,
			"error", err,
		)
	}
}

func failureCode(err error) string {
	var publishErr *domain.PublishError
	if errors.As(err, &publishErr) {
		return string(publishErr.Reason)
	}
	return "publish_error"
}
