package postgres

import (
	"github.com/viralforge/publish-review-service/internal/ports"
	"gorm.io/gorm"
)

type Repositories struct {
	Submissions ports.SubmissionRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Submissions: &submissionRepository{db: db},
	}
}
