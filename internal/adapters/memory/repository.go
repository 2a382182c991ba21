package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/viralforge/publish-review-service/internal/domain"
)

// SubmissionRepository is an in-memory store with the same slot discipline as
// the database adapter: Create fails with domain.ErrSlotOccupied while a
// non-terminal submission exists. It backs the workflow and HTTP tests.
type SubmissionRepository struct {
	mu      sync.RWMutex
	records map[string]domain.Submission
}

func NewSubmissionRepository() *SubmissionRepository {
	return &SubmissionRepository{records: map[string]domain.Submission{}}
}

func (r *SubmissionRepository) Create(_ context.Context, sub domain.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.records {
		if !existing.State.Terminal() {
			return domain.ErrSlotOccupied
		}
	}
	r.records[sub.SubmissionID] = sub
	return nil
}

func (r *SubmissionRepository) GetByID(_ context.Context, submissionID string) (domain.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.records[submissionID]
	if !ok {
		return domain.Submission{}, domain.ErrNotFound
	}
	return sub, nil
}

func (r *SubmissionRepository) GetByPlatformID(_ context.Context, platformID string) (domain.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, sub := range r.records {
		if sub.PlatformID == platformID && platformID != "" {
			return sub, nil
		}
	}
	return domain.Submission{}, domain.ErrNotFound
}

func (r *SubmissionRepository) Latest(_ context.Context) (domain.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return latestOf(r.sorted(), nil)
}

func (r *SubmissionRepository) LatestByState(_ context.Context, state domain.SubmissionState) (domain.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return latestOf(r.sorted(), &state)
}

func (r *SubmissionRepository) Update(_ context.Context, sub domain.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[sub.SubmissionID]; !ok {
		return domain.ErrNotFound
	}
	r.records[sub.SubmissionID] = sub
	return nil
}

func (r *SubmissionRepository) Delete(_ context.Context, submissionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[submissionID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.records, submissionID)
	return nil
}

func (r *SubmissionRepository) sorted() []domain.Submission {
	out := make([]domain.Submission, 0, len(r.records))
	for _, sub := range r.records {
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].SubmissionID > out[j].SubmissionID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func latestOf(sorted []domain.Submission, state *domain.SubmissionState) (domain.Submission, error) {
	for _, sub := range sorted {
		if state == nil || sub.State == *state {
			return sub, nil
		}
	}
	return domain.Submission{}, domain.ErrNotFound
}
