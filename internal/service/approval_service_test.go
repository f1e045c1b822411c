package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"storeflow/internal/model"
	"storeflow/internal/repository"
	"storeflow/internal/repository/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.Event
}

func (p *recordingPublisher) Publish(event model.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

var (
	requestor = &model.Identity{ID: "u-1", Email: "u@x.com", Name: "U", Role: model.RoleStaff}
	approver  = &model.Identity{ID: "a-1", Email: "a@x.com", Name: "A", Role: model.RoleManager}
	outsider  = &model.Identity{ID: "o-1", Email: "o@x.com", Name: "O", Role: model.RoleAdmin}
)

func budgetRequest() CreateApprovalRequestDTO {
	return CreateApprovalRequestDTO{
		Title:                "Budget",
		Details:              "...",
		ApproverEmail:        "a@x.com",
		ApproverName:         "A",
		RequestingDepartment: "IT",
	}
}

func setupApprovalService(t *testing.T) (*approvalService, *repository.Repos, *recordingPublisher) {
	t.Helper()

	repos := repository.NewMemoryRepos()
	require.NoError(t, repos.Project.Create(context.Background(), &model.Project{
		ID: "proj-1", Name: "Downtown Flagship Launch", Status: model.ProjectInProgress,
	}))

	events := &recordingPublisher{}
	svc := NewApprovalService(repos, NewProjectService(repos.Project), NewDepartmentService([]string{"IT", "Finance", "Real Estate"}), events).(*approvalService)
	return svc, repos, events
}

// rollbackTx stands in for a database transaction manager
type rollbackTx struct{}

func (rollbackTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

func (rollbackTx) Atomic() bool { return true }

// fixedClock returns a clock that only moves when advanced
func fixedClock(start time.Time) (func() time.Time, func(time.Duration)) {
	current := start
	return func() time.Time { return current }, func(d time.Duration) { current = current.Add(d) }
}

func TestCreateApprovalRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending request for the caller", func(t *testing.T) {
		svc, repos, events := setupApprovalService(t)

		approval, err := svc.CreateApprovalRequest(ctx, requestor, budgetRequest())
		require.NoError(t, err)

		assert.NotEmpty(t, approval.ID)
		assert.Equal(t, model.ApprovalPending, approval.Status)
		assert.Equal(t, "u@x.com", approval.RequestorEmail)
		assert.Equal(t, "U", approval.RequestorName)
		assert.Equal(t, "a@x.com", approval.ApproverEmail)
		assert.Equal(t, "IT", approval.RequestingDepartment)
		assert.Nil(t, approval.LastUpdateDate)
		assert.NotNil(t, approval.ApprovalComments)
		assert.Empty(t, approval.ApprovalComments)
		assert.False(t, approval.SubmissionDate.IsZero())

		stored, err := repos.Approval.FindByID(ctx, approval.ID)
		require.NoError(t, err)
		assert.Equal(t, approval.Title, stored.Title)

		logs, total, err := repos.Audit.List(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, model.ActionCreateApprovalRequest, logs[0].Action)
		assert.Equal(t, approval.ID, logs[0].EntityID)

		require.Len(t, events.events, 1)
		assert.Equal(t, model.EventApprovalCreated, events.events[0].Type)
		assert.ElementsMatch(t, []string{"u@x.com", "a@x.com"}, events.events[0].Recipients)
	})

	t.Run("normalizes emails and department spelling", func(t *testing.T) {
		svc, _, _ := setupApprovalService(t)

		req := budgetRequest()
		req.ApproverEmail = "  A@X.com "
		req.RequestingDepartment = "real estate"
		caller := &model.Identity{ID: "u-1", Email: "U@X.COM", Name: "U"}

		approval, err := svc.CreateApprovalRequest(ctx, caller, req)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", approval.ApproverEmail)
		assert.Equal(t, "u@x.com", approval.RequestorEmail)
		assert.Equal(t, "Real Estate", approval.RequestingDepartment)
	})

	t.Run("resolves the project name from the lookup", func(t *testing.T) {
		svc, _, _ := setupApprovalService(t)

		req := budgetRequest()
		req.ProjectID = "proj-1"
		req.ProjectName = "stale name from the client"

		approval, err := svc.CreateApprovalRequest(ctx, requestor, req)
		require.NoError(t, err)
		assert.Equal(t, "proj-1", approval.ProjectID)
		assert.Equal(t, "Downtown Flagship Launch", approval.ProjectName)
	})

	t.Run("requires an identity", func(t *testing.T) {
		svc, repos, _ := setupApprovalService(t)

		_, err := svc.CreateApprovalRequest(ctx, nil, budgetRequest())
		assert.ErrorIs(t, err, ErrUnauthorized)

		_, err = svc.CreateApprovalRequest(ctx, &model.Identity{Name: "nobody"}, budgetRequest())
		assert.ErrorIs(t, err, ErrUnauthorized)

		count, _ := repos.Approval.Count(ctx)
		assert.Zero(t, count)
	})

	invalid := []struct {
		name   string
		mutate func(*CreateApprovalRequestDTO)
		msg    string
	}{
		{"blank title", func(r *CreateApprovalRequestDTO) { r.Title = "   " }, "title is required"},
		{"missing details", func(r *CreateApprovalRequestDTO) { r.Details = "" }, "details is required"},
		{"missing approver email", func(r *CreateApprovalRequestDTO) { r.ApproverEmail = "" }, "approverEmail is required"},
		{"malformed approver email", func(r *CreateApprovalRequestDTO) { r.ApproverEmail = "not-an-email" }, "approverEmail must be a valid email address"},
		{"missing approver name", func(r *CreateApprovalRequestDTO) { r.ApproverName = "" }, "approverName is required"},
		{"missing department", func(r *CreateApprovalRequestDTO) { r.RequestingDepartment = "" }, "requestingDepartment is required"},
		{"unknown department", func(r *CreateApprovalRequestDTO) { r.RequestingDepartment = "Space Program" }, "unknown department"},
		{"unknown project", func(r *CreateApprovalRequestDTO) { r.ProjectID = "proj-404" }, "unknown project"},
	}
	for _, tc := range invalid {
		t.Run("rejects "+tc.name, func(t *testing.T) {
			svc, repos, events := setupApprovalService(t)

			req := budgetRequest()
			tc.mutate(&req)

			approval, err := svc.CreateApprovalRequest(ctx, requestor, req)
			assert.Nil(t, approval)
			require.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tc.msg)

			count, _ := repos.Approval.Count(ctx)
			assert.Zero(t, count)
			assert.Empty(t, events.events)
		})
	}
}

func TestListForUser(t *testing.T) {
	ctx := context.Background()

	t.Run("partitions awaiting and submitted", func(t *testing.T) {
		svc, _, _ := setupApprovalService(t)

		mine, err := svc.CreateApprovalRequest(ctx, requestor, budgetRequest())
		require.NoError(t, err)

		other := budgetRequest()
		other.Title = "For someone else"
		other.ApproverEmail = "o@x.com"
		_, err = svc.CreateApprovalRequest(ctx, requestor, other)
		require.NoError(t, err)

		decided := budgetRequest()
		decided.Title = "Already approved"
		approved, err := svc.CreateApprovalRequest(ctx, outsider, decided)
		require.NoError(t, err)
		_, err = svc.TransitionRequest(ctx, approved.ID, approver, TransitionRequestDTO{Status: model.ApprovalApproved})
		require.NoError(t, err)

		lists, err := svc.ListForUser(ctx, approver)
		require.NoError(t, err)
		require.Len(t, lists.Awaiting, 1)
		assert.Equal(t, mine.ID, lists.Awaiting[0].ID)
		assert.Empty(t, lists.Submitted)

		lists, err = svc.ListForUser(ctx, requestor)
		require.NoError(t, err)
		assert.Empty(t, lists.Awaiting)
		assert.Len(t, lists.Submitted, 2)

		lists, err = svc.ListForUser(ctx, outsider)
		require.NoError(t, err)
		require.Len(t, lists.Awaiting, 1)
		assert.Equal(t, "For someone else", lists.Awaiting[0].Title)
		require.Len(t, lists.Submitted, 1)
		assert.Equal(t, model.ApprovalApproved, lists.Submitted[0].Status)
	})

	t.Run("self approval appears in both lists", func(t *testing.T) {
		svc, _, _ := setupApprovalService(t)

		req := budgetRequest()
		req.ApproverEmail = requestor.Email
		_, err := svc.CreateApprovalRequest(ctx, requestor, req)
		require.NoError(t, err)

		lists, err := svc.ListForUser(ctx, requestor)
		require.NoError(t, err)
		assert.Len(t, lists.Awaiting, 1)
		assert.Len(t, lists.Submitted, 1)
	})

	t.Run("orders newest first and breaks ties by insertion", func(t *testing.T) {
		svc, _, _ := setupApprovalService(t)
		now, advance := fixedClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
		svc.now = now

		titles := []string{"first", "second", "third", "fourth"}
		for i, title := range titles {
			if i == 2 {
				advance(time.Hour)
			}
			req := budgetRequest()
			req.Title = title
			_, err := svc.CreateApprovalRequest(ctx, requestor, req)
			require.NoError(t, err)
		}

		lists, err := svc.ListForUser(ctx, approver)
		require.NoError(t, err)
		got := make([]string, 0, len(lists.Awaiting))
		for _, r := range lists.Awaiting {
			got = append(got, r.Title)
		}
		assert.Equal(t, []string{"fourth", "third", "second", "first"}, got)

		for i := 1; i < len(lists.Awaiting); i++ {
			assert.False(t, lists.Awaiting[i].SubmissionDate.After(lists.Awaiting[i-1].SubmissionDate))
		}
	})

	t.Run("empty lists are not nil", func(t *testing.T) {
		svc, _, _ := setupApprovalService(t)

		lists, err := svc.ListForUser(ctx, approver)
		require.NoError(t, err)
		assert.NotNil(t, lists.Awaiting)
		assert.NotNil(t, lists.Submitted)
	})

	t.Run("requires an identity", func(t *testing.T) {
		svc, _, _ := setupApprovalService(t)

		_, err := svc.ListForUser(ctx, nil)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestTransitionRequest(t *testing.T) {
	ctx := context.Background()

	create := func(t *testing.T, svc *approvalService) *model.ApprovalRequest {
		t.Helper()
		approval, err := svc.CreateApprovalRequest(ctx, requestor, budgetRequest())
		require.NoError(t, err)
		return approval
	}

	t.Run("approve then reject again conflicts", func(t *testing.T) {
		svc, repos, events := setupApprovalService(t)
		approval := create(t, svc)

		updated, err := svc.TransitionRequest(ctx, approval.ID, approver, TransitionRequestDTO{Status: model.ApprovalApproved})
		require.NoError(t, err)
		assert.Equal(t, model.ApprovalApproved, updated.Status)
		require.NotNil(t, updated.LastUpdateDate)
		assert.Empty(t, updated.ApprovalComments)

		_, err = svc.TransitionRequest(ctx, approval.ID, approver, TransitionRequestDTO{Status: model.ApprovalRejected, Comment: "too late"})
		assert.ErrorIs(t, err, ErrConflict)

		stored, err := repos.Approval.FindByID(ctx, approval.ID)
		require.NoError(t, err)
		assert.Equal(t, model.ApprovalApproved, stored.Status)
		assert.Empty(t, stored.ApprovalComments)
		assert.Equal(t, updated.LastUpdateDate.UnixNano(), stored.LastUpdateDate.UnixNano())

		require.Len(t, events.events, 2)
		assert.Equal(t, model.EventApprovalUpdated, events.events[1].Type)
	})

	t.Run("rejecting twice succeeds once", func(t *testing.T) {
		svc, repos, _ := setupApprovalService(t)
		approval := create(t, svc)
		input := TransitionRequestDTO{Status: model.ApprovalRejected, Comment: "over budget"}

		rejected, err := svc.TransitionRequest(ctx, approval.ID, approver, input)
		require.NoError(t, err)
		assert.Equal(t, model.ApprovalRejected, rejected.Status)
		require.Len(t, rejected.ApprovalComments, 1)
		assert.Equal(t, "over budget", rejected.ApprovalComments[0].Text)
		assert.Equal(t, "A", rejected.ApprovalComments[0].Author)
		assert.Equal(t, "a-1", rejected.ApprovalComments[0].AuthorID)

		_, err = svc.TransitionRequest(ctx, approval.ID, approver, input)
		assert.ErrorIs(t, err, ErrConflict)

		stored, _ := repos.Approval.FindByID(ctx, approval.ID)
		assert.Len(t, stored.ApprovalComments, 1)

		logs, _, _ := repos.Audit.List(ctx, 1, 10)
		require.Len(t, logs, 2)
		assert.Equal(t, model.ActionRejectRequest, logs[0].Action)
	})

	t.Run("rejection requires a comment", func(t *testing.T) {
		svc, repos, _ := setupApprovalService(t)
		approval := create(t, svc)

		for _, comment := range []string{"", "   "} {
			_, err := svc.TransitionRequest(ctx, approval.ID, approver, TransitionRequestDTO{Status: model.ApprovalRejected, Comment: comment})
			assert.ErrorIs(t, err, ErrValidation)
		}

		stored, _ := repos.Approval.FindByID(ctx, approval.ID)
		assert.Equal(t, model.ApprovalPending, stored.Status)
		assert.Nil(t, stored.LastUpdateDate)

		_, err := svc.TransitionRequest(ctx, approval.ID, approver, TransitionRequestDTO{Status: model.ApprovalRejected, Comment: "reason"})
		assert.NoError(t, err)
	})

	t.Run("approval comment is kept", func(t *testing.T) {
		svc, _, _ := setupApprovalService(t)
		approval := create(t, svc)

		updated, err := svc.TransitionRequest(ctx, approval.ID, approver, TransitionRequestDTO{Status: model.ApprovalApproved, Comment: "  go ahead "})
		require.NoError(t, err)
		require.Len(t, updated.ApprovalComments, 1)
		assert.Equal(t, "go ahead", updated.ApprovalComments[0].Text)
	})

	t.Run("only the approver may transition", func(t *testing.T) {
		svc, repos, _ := setupApprovalService(t)
		approval := create(t, svc)

		for _, caller := range []*model.Identity{requestor, outsider} {
			for _, status := range []string{model.ApprovalApproved, model.ApprovalRejected, "Bogus"} {
				_, err := svc.TransitionRequest(ctx, approval.ID, caller, TransitionRequestDTO{Status: status, Comment: "x"})
				assert.ErrorIs(t, err, ErrPermission, "caller %s status %s", caller.Email, status)
			}
		}

		stored, _ := repos.Approval.FindByID(ctx, approval.ID)
		assert.Equal(t, model.ApprovalPending, stored.Status)
	})

	t.Run("approver email match ignores case", func(t *testing.T) {
		svc, _, _ := setupApprovalService(t)
		approval := create(t, svc)

		shouting := &model.Identity{ID: "a-1", Email: "A@X.COM", Name: "A"}
		_, err := svc.TransitionRequest(ctx, approval.ID, shouting, TransitionRequestDTO{Status: model.ApprovalApproved})
		assert.NoError(t, err)
	})

	t.Run("errors are reported in precedence order", func(t *testing.T) {
		svc, _, _ := setupApprovalService(t)
		approval := create(t, svc)
		_, err := svc.TransitionRequest(ctx, approval.ID, approver, TransitionRequestDTO{Status: model.ApprovalApproved})
		require.NoError(t, err)

		_, err = svc.TransitionRequest(ctx, approval.ID, nil, TransitionRequestDTO{Status: "Bogus"})
		assert.ErrorIs(t, err, ErrUnauthorized)

		_, err = svc.TransitionRequest(ctx, "missing", outsider, TransitionRequestDTO{Status: "Bogus"})
		assert.ErrorIs(t, err, ErrNotFound)

		// final request, wrong caller: permission wins over conflict
		_, err = svc.TransitionRequest(ctx, approval.ID, outsider, TransitionRequestDTO{Status: "Bogus"})
		assert.ErrorIs(t, err, ErrPermission)

		// final request, right caller, bad status: conflict wins over validation
		_, err = svc.TransitionRequest(ctx, approval.ID, approver, TransitionRequestDTO{Status: "Bogus"})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("rejects statuses other than approved and rejected", func(t *testing.T) {
		svc, _, _ := setupApprovalService(t)
		approval := create(t, svc)

		for _, status := range []string{"", model.ApprovalPending, model.ApprovalWithdrawn, "approved"} {
			_, err := svc.TransitionRequest(ctx, approval.ID, approver, TransitionRequestDTO{Status: status, Comment: "x"})
			assert.ErrorIs(t, err, ErrValidation, "status %q", status)
		}
	})

	t.Run("concurrent transitions finalize once", func(t *testing.T) {
		svc, repos, _ := setupApprovalService(t)
		approval := create(t, svc)

		const workers = 8
		var wg sync.WaitGroup
		errs := make([]error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = svc.TransitionRequest(ctx, approval.ID, approver, TransitionRequestDTO{Status: model.ApprovalRejected, Comment: "no"})
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, ErrConflict)
		}
		assert.Equal(t, 1, succeeded)

		stored, _ := repos.Approval.FindByID(ctx, approval.ID)
		assert.Len(t, stored.ApprovalComments, 1)
	})
}

func TestTransitionRequestStoreFailures(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (ApprovalService, *mock.MockApprovalRepository, *mock.MockAuditRepository) {
		ctrl := gomock.NewController(t)
		mockApproval := mock.NewMockApprovalRepository(ctrl)
		mockAudit := mock.NewMockAuditRepository(ctrl)

		repos := &repository.Repos{
			Approval: mockApproval,
			Audit:    mockAudit,
			Tx:       repository.NewDirectTransactionManager(),
		}
		svc := NewApprovalService(repos, nil, NewDepartmentService([]string{"IT"}), nil)
		return svc, mockApproval, mockAudit
	}

	pending := func() *model.ApprovalRequest {
		return &model.ApprovalRequest{ID: "req-1", Status: model.ApprovalPending, ApproverEmail: "a@x.com", RequestorEmail: "u@x.com"}
	}

	t.Run("lost compare-and-swap is a conflict", func(t *testing.T) {
		svc, mockApproval, _ := setup(t)
		mockApproval.EXPECT().FindByID(gomock.Any(), "req-1").Return(pending(), nil)
		mockApproval.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), model.ApprovalPending, gomock.Nil()).Return(repository.ErrStatusConflict)

		_, err := svc.TransitionRequest(ctx, "req-1", approver, TransitionRequestDTO{Status: model.ApprovalApproved})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("request deleted between read and write", func(t *testing.T) {
		svc, mockApproval, _ := setup(t)
		mockApproval.EXPECT().FindByID(gomock.Any(), "req-1").Return(pending(), nil)
		mockApproval.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), model.ApprovalPending, gomock.Any()).Return(repository.ErrNotFound)

		_, err := svc.TransitionRequest(ctx, "req-1", approver, TransitionRequestDTO{Status: model.ApprovalRejected, Comment: "no"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("storage errors are internal", func(t *testing.T) {
		svc, mockApproval, _ := setup(t)
		dbErr := errors.New("connection reset")
		mockApproval.EXPECT().FindByID(gomock.Any(), "req-1").Return(nil, dbErr)

		_, err := svc.TransitionRequest(ctx, "req-1", approver, TransitionRequestDTO{Status: model.ApprovalApproved})
		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
		for _, kind := range []error{ErrValidation, ErrUnauthorized, ErrPermission, ErrNotFound, ErrConflict} {
			assert.NotErrorIs(t, err, kind)
		}
	})

	t.Run("audit failure after a stored transition is logged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockApproval := mock.NewMockApprovalRepository(ctrl)
		mockAudit := mock.NewMockAuditRepository(ctrl)
		events := &recordingPublisher{}
		svc := NewApprovalService(&repository.Repos{
			Approval: mockApproval,
			Audit:    mockAudit,
			Tx:       repository.NewDirectTransactionManager(),
		}, nil, NewDepartmentService([]string{"IT"}), events)

		mockApproval.EXPECT().FindByID(gomock.Any(), "req-1").Return(pending(), nil)
		mockApproval.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), model.ApprovalPending, gomock.Any()).
			DoAndReturn(func(_ context.Context, req *model.ApprovalRequest, _ string, comment *model.ApprovalComment) error {
				assert.Equal(t, model.ApprovalApproved, req.Status)
				assert.NotNil(t, req.LastUpdateDate)
				assert.Nil(t, comment)
				return nil
			})
		mockAudit.EXPECT().Log(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

		updated, err := svc.TransitionRequest(ctx, "req-1", approver, TransitionRequestDTO{Status: model.ApprovalApproved})
		require.NoError(t, err)
		assert.Equal(t, model.ApprovalApproved, updated.Status)
		require.Len(t, events.events, 1)
		assert.Equal(t, model.EventApprovalUpdated, events.events[0].Type)
	})

	t.Run("audit failure inside an atomic transaction fails the transition", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockApproval := mock.NewMockApprovalRepository(ctrl)
		mockAudit := mock.NewMockAuditRepository(ctrl)
		events := &recordingPublisher{}
		svc := NewApprovalService(&repository.Repos{
			Approval: mockApproval,
			Audit:    mockAudit,
			Tx:       rollbackTx{},
		}, nil, NewDepartmentService([]string{"IT"}), events)

		mockApproval.EXPECT().FindByID(gomock.Any(), "req-1").Return(pending(), nil)
		mockApproval.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), model.ApprovalPending, gomock.Any()).Return(nil)
		mockAudit.EXPECT().Log(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

		_, err := svc.TransitionRequest(ctx, "req-1", approver, TransitionRequestDTO{Status: model.ApprovalApproved})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to write audit log")
		assert.Empty(t, events.events)
	})

	t.Run("list errors are internal", func(t *testing.T) {
		svc, mockApproval, _ := setup(t)
		mockApproval.EXPECT().FindByApprover(gomock.Any(), "a@x.com", model.ApprovalPending).Return(nil, errors.New("timeout"))

		_, err := svc.ListForUser(ctx, approver)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}
