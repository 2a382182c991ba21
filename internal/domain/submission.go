package domain

import (
	"strings"
	"time"
)

type SubmissionState string

type Visibility string

const (
	StatePublishing    SubmissionState = "publishing"
	StatePendingReview SubmissionState = "pending_review"
	StateApproved      SubmissionState = "approved"
	StateRejected      SubmissionState = "rejected"
	StateFailed        SubmissionState = "failed"
)

const (
	VisibilityPublic   Visibility = "public"
	VisibilityPrivate  Visibility = "private"
	VisibilityUnlisted Visibility = "unlisted"
)

// Submission is the single unit of work tracked through the review pipeline:
// a staged asset plus its metadata and lifecycle state. PlatformID is empty
// until the external platform acknowledges the upload and immutable afterwards.
type Submission struct {
	SubmissionID string          `json:"submission_id"`
	PlatformID   string          `json:"platform_id,omitempty"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Keywords     string          `json:"keywords"`
	Visibility   Visibility      `json:"visibility"`
	State        SubmissionState `json:"state"`
	FailureCode  string          `json:"failure_code,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type Metadata struct {
	Title       string
	Description string
	Keywords    string
	Visibility  Visibility
}

func (s SubmissionState) Terminal() bool {
	switch s {
	case StateApproved, StateRejected, StateFailed:
		return true
	default:
		return false
	}
}

// CanTransition reports whether the lifecycle graph admits from → to.
// The graph is monotonic: neither publishing nor pending_review is ever
// re-entered once left.
func CanTransition(from, to SubmissionState) bool {
	switch from {
	case StatePublishing:
		return to == StatePendingReview || to == StateFailed
	case StatePendingReview:
		return to == StateApproved || to == StateRejected
	default:
		return false
	}
}

func ParseState(raw string) (SubmissionState, error) {
	state := SubmissionState(strings.ToLower(strings.TrimSpace(raw)))
	switch state {
	case StatePublishing, StatePendingReview, StateApproved, StateRejected, StateFailed:
		return state, nil
	default:
		return "", ErrInvalidInput
	}
}

// NormalizeVisibility maps user input onto the platform's accepted privacy
// statuses. Empty input defaults to unlisted, matching the uploader's default.
func NormalizeVisibility(raw string) (Visibility, error) {
	value := Visibility(strings.ToLower(strings.TrimSpace(raw)))
	switch value {
	case VisibilityPublic, VisibilityPrivate, VisibilityUnlisted:
		return value, nil
	case "":
		return VisibilityUnlisted, nil
	default:
		return "", ErrInvalidInput
	}
}

func ValidateMetadata(meta Metadata) error {
	if strings.TrimSpace(meta.Title) == "" {
		return ErrInvalidInput
	}
	switch meta.Visibility {
	case VisibilityPublic, VisibilityPrivate, VisibilityUnlisted:
		return nil
	default:
		return ErrInvalidInput
	}
}
