package postgres

import (
	"context"
	"errors"

	"github.com/viralforge/publish-review-service/internal/domain"
	"gorm.io/gorm"
)

type submissionRepository struct {
	db *gorm.DB
}

func (r *submissionRepository) Create(ctx context.Context, sub domain.Submission) error {
	rec := toModel(sub)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return domain.ErrSlotOccupied
		}
		return err
	}
	return nil
}

func (r *submissionRepository) GetByID(ctx context.Context, submissionID string) (domain.Submission, error) {
	var rec submissionModel
	if err := r.db.WithContext(ctx).Where("submission_id = ?", submissionID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Submission{}, domain.ErrNotFound
		}
		return domain.Submission{}, err
	}
	return toDomain(rec), nil
}

func (r *submissionRepository) GetByPlatformID(ctx context.Context, platformID string) (domain.Submission, error) {
	var rec submissionModel
	if err := r.db.WithContext(ctx).Where("platform_id = ?", platformID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Submission{}, domain.ErrNotFound
		}
		return domain.Submission{}, err
	}
	return toDomain(rec), nil
}

func (r *submissionRepository) Latest(ctx context.Context) (domain.Submission, error) {
	var rec submissionModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(1).
		Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Submission{}, domain.ErrNotFound
		}
		return domain.Submission{}, err
	}
	return toDomain(rec), nil
}

func (r *submissionRepository) LatestByState(ctx context.Context, state domain.SubmissionState) (domain.Submission, error) {
	var rec submissionModel
	err := r.db.WithContext(ctx).
		Where("state = ?", string(state)).
		Order("created_at DESC").
		Limit(1).
		Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Submission{}, domain.ErrNotFound
		}
		return domain.Submission{}, err
	}
	return toDomain(rec), nil
}

// Update writes the mutable fields in a single row update. The slot column is
// recomputed from the target state so a transition into a terminal state
// releases the active slot in the same statement.
func (r *submissionRepository) Update(ctx context.Context, sub domain.Submission) error {
	updates := map[string]any{
		"platform_id":  sub.PlatformID,
		"title":        sub.Title,
		"description":  sub.Description,
		"keywords":     sub.Keywords,
		"visibility":   string(sub.Visibility),
		"state":        string(sub.State),
		"failure_code": sub.FailureCode,
		"slot":         slotForState(sub.State),
		"updated_at":   sub.UpdatedAt,
	}
	result := r.db.WithContext(ctx).
		Model(&submissionModel{}).
		Where("submission_id = ?", sub.SubmissionID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *submissionRepository) Delete(ctx context.Context, submissionID string) error {
	result := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Delete(&submissionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
