package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrSlotOccupied      = errors.New("a submission is already in flight")
	ErrInvalidTransition = errors.New("submission is not awaiting review")
)

type PublishFailureReason string

const (
	PublishReasonProcessFailure        PublishFailureReason = "process_failure"
	PublishReasonIdentifierUnavailable PublishFailureReason = "identifier_unavailable"
)

// PublishError is the typed outcome of a failed platform upload. ProcessFailure
// carries the external process exit code; IdentifierUnavailable means the
// process finished cleanly but no platform id could be parsed from its output.
type PublishError struct {
	Reason   PublishFailureReason
	ExitCode int
	Detail   string
}

func (e *PublishError) Error() string {
	if e.Reason == PublishReasonIdentifierUnavailable {
		if e.Detail != "" {
			return fmt.Sprintf("publish failed: platform identifier unavailable: %s", e.Detail)
		}
		return "publish failed: platform identifier unavailable"
	}
	if e.Detail != "" {
		return fmt.Sprintf("publish failed: process exited with code %d: %s", e.ExitCode, e.Detail)
	}
	return fmt.Sprintf("publish failed: process exited with code %d", e.ExitCode)
}

// VisibilityError is the typed outcome of a failed remote metadata/visibility
// update during approval.
type VisibilityError struct {
	ExitCode int
	Detail   string
}

func (e *VisibilityError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("visibility update failed: process exited with code %d: %s", e.ExitCode, e.Detail)
	}
	return fmt.Sprintf("visibility update failed: process exited with code %d", e.ExitCode)
}
