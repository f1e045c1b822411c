package repository

import (
	"context"
	"sync"

	"storeflow/internal/model"
)

type memoryApprovalRepository struct {
	mu       sync.RWMutex
	requests []model.ApprovalRequest // most recent first
}

// NewMemoryApprovalRepository returns a process-local store. It is the fixture-backed
// backend used for local development and tests.
func NewMemoryApprovalRepository() ApprovalRepository {
	return &memoryApprovalRepository{}
}

func cloneApproval(a model.ApprovalRequest) model.ApprovalRequest {
	c := a
	c.ApprovalComments = make([]model.ApprovalComment, len(a.ApprovalComments))
	copy(c.ApprovalComments, a.ApprovalComments)
	if a.LastUpdateDate != nil {
		t := *a.LastUpdateDate
		c.LastUpdateDate = &t
	}
	return c
}

// Create inserts at the head so that ties on submission date keep the latest insertion first.
func (r *memoryApprovalRepository) Create(_ context.Context, req *model.ApprovalRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests = append([]model.ApprovalRequest{cloneApproval(*req)}, r.requests...)
	r.sortLocked()
	return nil
}

// sortLocked restores submission date ordering after an out-of-order insert (fixtures).
func (r *memoryApprovalRepository) sortLocked() {
	// stable insertion sort: only strictly newer entries move forward
	for i := 1; i < len(r.requests); i++ {
		for j := i; j > 0 && r.requests[j].SubmissionDate.After(r.requests[j-1].SubmissionDate); j-- {
			r.requests[j], r.requests[j-1] = r.requests[j-1], r.requests[j]
		}
	}
}

func (r *memoryApprovalRepository) FindByID(_ context.Context, id string) (*model.ApprovalRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, req := range r.requests {
		if req.ID == id {
			c := cloneApproval(req)
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryApprovalRepository) filter(match func(model.ApprovalRequest) bool) []model.ApprovalRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]model.ApprovalRequest, 0)
	for _, req := range r.requests {
		if match(req) {
			result = append(result, cloneApproval(req))
		}
	}
	return result
}

func (r *memoryApprovalRepository) FindByApprover(_ context.Context, email, status string) ([]model.ApprovalRequest, error) {
	return r.filter(func(req model.ApprovalRequest) bool {
		return req.ApproverEmail == email && (status == "" || req.Status == status)
	}), nil
}

func (r *memoryApprovalRepository) FindByRequestor(_ context.Context, email string) ([]model.ApprovalRequest, error) {
	return r.filter(func(req model.ApprovalRequest) bool {
		return req.RequestorEmail == email
	}), nil
}

func (r *memoryApprovalRepository) UpdateStatus(_ context.Context, req *model.ApprovalRequest, expectedStatus string, comment *model.ApprovalComment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.requests {
		stored := &r.requests[i]
		if stored.ID != req.ID {
			continue
		}
		if stored.Status != expectedStatus {
			return ErrStatusConflict
		}

		stored.Status = req.Status
		if req.LastUpdateDate != nil {
			t := *req.LastUpdateDate
			stored.LastUpdateDate = &t
		}
		if comment != nil {
			c := *comment
			c.ApprovalRequestID = stored.ID
			stored.ApprovalComments = append(stored.ApprovalComments, c)
		}
		return nil
	}
	return ErrNotFound
}

func (r *memoryApprovalRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.requests)), nil
}
