package postgres

import (
	"time"

	"github.com/viralforge/publish-review-service/internal/domain"
)

const activeSlot = "active"

type submissionModel struct {
	SubmissionID string    `gorm:"column:submission_id;type:varchar(36);primaryKey"`
	PlatformID   string    `gorm:"column:platform_id;index"`
	Title        string    `gorm:"column:title;not null"`
	Description  string    `gorm:"column:description"`
	Keywords     string    `gorm:"column:keywords"`
	Visibility   string    `gorm:"column:visibility;not null"`
	State        string    `gorm:"column:state;not null;index"`
	FailureCode  string    `gorm:"column:failure_code"`
	Slot         *string   `gorm:"column:slot;uniqueIndex:uniq_submissions_active_slot"`
	CreatedAt    time.Time `gorm:"column:created_at;not null;index"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null"`
}

func (submissionModel) TableName() string { return "submissions" }

// slotForState marks non-terminal rows with the reserved sentinel value. The
// unique index on slot admits any number of NULLs but at most one "active"
// row, which is the store-enforced single-slot constraint.
func slotForState(state domain.SubmissionState) *string {
	if state.Terminal() {
		return nil
	}
	sentinel := activeSlot
	return &sentinel
}

func toModel(sub domain.Submission) submissionModel {
	return submissionModel{
		SubmissionID: sub.SubmissionID,
		PlatformID:   sub.PlatformID,
		Title:        sub.Title,
		Description:  sub.Description,
		Keywords:     sub.Keywords,
		Visibility:   string(sub.Visibility),
		State:        string(sub.State),
		FailureCode:  sub.FailureCode,
		Slot:         slotForState(sub.State),
		CreatedAt:    sub.CreatedAt,
		UpdatedAt:    sub.UpdatedAt,
	}
}

func toDomain(rec submissionModel) domain.Submission {
	return domain.Submission{
		SubmissionID: rec.SubmissionID,
		PlatformID:   rec.PlatformID,
		Title:        rec.Title,
		Description:  rec.Description,
		Keywords:     rec.Keywords,
		Visibility:   domain.Visibility(rec.Visibility),
		State:        domain.SubmissionState(rec.State),
		FailureCode:  rec.FailureCode,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}
