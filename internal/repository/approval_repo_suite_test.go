package repository

import (
	"context"
	"testing"
	"time"

	"storeflow/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApproval(title, requestor, approver string, submitted time.Time) *model.ApprovalRequest {
	return &model.ApprovalRequest{
		ID:                   model.NewID(),
		Title:                title,
		Details:              "details of " + title,
		Status:               model.ApprovalPending,
		RequestorName:        "Requestor",
		RequestorEmail:       requestor,
		ApproverName:         "Approver",
		ApproverEmail:        approver,
		RequestingDepartment: "IT",
		SubmissionDate:       submitted,
		ApprovalComments:     []model.ApprovalComment{},
	}
}

func titles(requests []model.ApprovalRequest) []string {
	out := make([]string, 0, len(requests))
	for _, r := range requests {
		out = append(out, r.Title)
	}
	return out
}

// runApprovalRepositorySuite checks the behaviour every backend must share.
func runApprovalRepositorySuite(t *testing.T, repo ApprovalRepository) {
	ctx := context.Background()
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	older := newApproval("older", "u@x.com", "a@x.com", base.Add(-time.Hour))
	tieFirst := newApproval("tie-first", "u@x.com", "a@x.com", base)
	tieSecond := newApproval("tie-second", "u@x.com", "b@x.com", base)
	newest := newApproval("newest", "o@x.com", "a@x.com", base.Add(time.Hour))

	// inserted out of date order on purpose
	for _, req := range []*model.ApprovalRequest{tieFirst, older, tieSecond, newest} {
		require.NoError(t, repo.Create(ctx, req))
	}

	t.Run("find by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, tieFirst.ID)
		require.NoError(t, err)
		assert.Equal(t, "tie-first", found.Title)
		assert.Equal(t, model.ApprovalPending, found.Status)
		assert.True(t, found.SubmissionDate.Equal(base))
		assert.Nil(t, found.LastUpdateDate)
		assert.Empty(t, found.ApprovalComments)

		_, err = repo.FindByID(ctx, model.NewID())
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = repo.FindByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("requestor list is newest first with insertion tie break", func(t *testing.T) {
		requests, err := repo.FindByRequestor(ctx, "u@x.com")
		require.NoError(t, err)
		assert.Equal(t, []string{"tie-second", "tie-first", "older"}, titles(requests))
	})

	t.Run("approver list filters by status", func(t *testing.T) {
		requests, err := repo.FindByApprover(ctx, "a@x.com", model.ApprovalPending)
		require.NoError(t, err)
		assert.Equal(t, []string{"newest", "tie-first", "older"}, titles(requests))

		requests, err = repo.FindByApprover(ctx, "nobody@x.com", "")
		require.NoError(t, err)
		assert.Empty(t, requests)
	})

	t.Run("status update is a compare and swap", func(t *testing.T) {
		decided := base.Add(2 * time.Hour)
		update := *older
		update.Status = model.ApprovalRejected
		update.LastUpdateDate = &decided
		comment := &model.ApprovalComment{ID: model.NewID(), Text: "no budget", Author: "Approver", AuthorID: "a-1", Timestamp: decided}

		require.NoError(t, repo.UpdateStatus(ctx, &update, model.ApprovalPending, comment))

		stored, err := repo.FindByID(ctx, older.ID)
		require.NoError(t, err)
		assert.Equal(t, model.ApprovalRejected, stored.Status)
		require.NotNil(t, stored.LastUpdateDate)
		assert.True(t, stored.LastUpdateDate.Equal(decided))
		require.Len(t, stored.ApprovalComments, 1)
		assert.Equal(t, "no budget", stored.ApprovalComments[0].Text)
		assert.Equal(t, "a-1", stored.ApprovalComments[0].AuthorID)

		again := update
		again.Status = model.ApprovalApproved
		assert.ErrorIs(t, repo.UpdateStatus(ctx, &again, model.ApprovalPending, nil), ErrStatusConflict)

		stored, err = repo.FindByID(ctx, older.ID)
		require.NoError(t, err)
		assert.Equal(t, model.ApprovalRejected, stored.Status)
		assert.Len(t, stored.ApprovalComments, 1)

		missing := update
		missing.ID = model.NewID()
		assert.ErrorIs(t, repo.UpdateStatus(ctx, &missing, model.ApprovalPending, nil), ErrNotFound)

		pending, err := repo.FindByApprover(ctx, "a@x.com", model.ApprovalPending)
		require.NoError(t, err)
		assert.Equal(t, []string{"newest", "tie-first"}, titles(pending))
	})

	t.Run("count", func(t *testing.T) {
		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})
}
