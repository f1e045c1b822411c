package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"storeflow/internal/model"
	"storeflow/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// --- DTOs ---

type CreateApprovalRequestDTO struct {
	Title                string `json:"title" validate:"required"`
	Details              string `json:"details" validate:"required"`
	ApproverEmail        string `json:"approverEmail" validate:"required,email"`
	ApproverName         string `json:"approverName" validate:"required"`
	RequestingDepartment string `json:"requestingDepartment" validate:"required"`
	ProjectID            string `json:"projectId"`
	ProjectName          string `json:"projectName"`
}

type TransitionRequestDTO struct {
	Status  string `json:"status"` // Approved or Rejected
	Comment string `json:"comment"`
}

// ApprovalLists is the per-user view of the approval queue
type ApprovalLists struct {
	Awaiting  []model.ApprovalRequest `json:"awaiting"`
	Submitted []model.ApprovalRequest `json:"submitted"`
}

// --- Collaborators ---

// ProjectLookup resolves a project id; it returns an error matching ErrNotFound for unknown ids.
type ProjectLookup interface {
	GetProject(ctx context.Context, id string) (*model.Project, error)
}

// DepartmentCatalog is the closed list of department names.
type DepartmentCatalog interface {
	Canonical(name string) (string, bool)
}

type EventPublisher interface {
	Publish(event model.Event)
}

// --- Interface ---

type ApprovalService interface {
	CreateApprovalRequest(ctx context.Context, identity *model.Identity, req CreateApprovalRequestDTO) (*model.ApprovalRequest, error)
	ListForUser(ctx context.Context, identity *model.Identity) (*ApprovalLists, error)
	TransitionRequest(ctx context.Context, id string, identity *model.Identity, req TransitionRequestDTO) (*model.ApprovalRequest, error)
}

type approvalService struct {
	repo        repository.ApprovalRepository
	audit       repository.AuditRepository
	txManager   repository.TransactionManager
	projects    ProjectLookup
	departments DepartmentCatalog
	events      EventPublisher // optional
	validate    *validator.Validate
	now         func() time.Time
}

func NewApprovalService(repos *repository.Repos, projects ProjectLookup, departments DepartmentCatalog, events EventPublisher) ApprovalService {
	return &approvalService{
		repo:        repos.Approval,
		audit:       repos.Audit,
		txManager:   repos.Tx,
		projects:    projects,
		departments: departments,
		events:      events,
		validate:    newValidator(),
		now:         time.Now,
	}
}

// --- Implementation ---

func (s *approvalService) CreateApprovalRequest(ctx context.Context, identity *model.Identity, req CreateApprovalRequestDTO) (*model.ApprovalRequest, error) {
	if !authenticated(identity) {
		return nil, newError(ErrUnauthorized, "authentication required")
	}

	req = normalizeCreate(req)
	department, err := s.validateCreate(req)
	if err != nil {
		return nil, err
	}

	projectName := req.ProjectName
	if req.ProjectID != "" && s.projects != nil {
		project, lookupErr := s.projects.GetProject(ctx, req.ProjectID)
		if errors.Is(lookupErr, ErrNotFound) {
			return nil, newError(ErrValidation, "projectId: unknown project %q", req.ProjectID)
		}
		if lookupErr != nil {
			return nil, fmt.Errorf("failed to look up project: %w", lookupErr)
		}
		projectName = project.Name
	}

	approval := &model.ApprovalRequest{
		ID:                   model.NewID(),
		Title:                req.Title,
		Details:              req.Details,
		Status:               model.ApprovalPending,
		RequestorName:        identity.Name,
		RequestorEmail:       normalizeEmail(identity.Email),
		ApproverName:         req.ApproverName,
		ApproverEmail:        req.ApproverEmail,
		RequestingDepartment: department,
		ProjectID:            req.ProjectID,
		ProjectName:          projectName,
		SubmissionDate:       s.now(),
		ApprovalComments:     []model.ApprovalComment{},
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.repo.Create(txCtx, approval); createErr != nil {
			return fmt.Errorf("failed to create approval request: %w", createErr)
		}
		return s.recordAudit(txCtx, identity, model.ActionCreateApprovalRequest, approval, map[string]interface{}{
			"approver_email": approval.ApproverEmail,
			"department":     approval.RequestingDepartment,
			"project_id":     approval.ProjectID,
		})
	})
	if err != nil {
		return nil, err
	}

	s.publish(model.EventApprovalCreated, approval)
	return approval, nil
}

func (s *approvalService) ListForUser(ctx context.Context, identity *model.Identity) (*ApprovalLists, error) {
	if !authenticated(identity) {
		return nil, newError(ErrUnauthorized, "authentication required")
	}
	email := normalizeEmail(identity.Email)

	awaiting, err := s.repo.FindByApprover(ctx, email, model.ApprovalPending)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch awaiting approval requests: %w", err)
	}
	submitted, err := s.repo.FindByRequestor(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submitted approval requests: %w", err)
	}

	return &ApprovalLists{
		Awaiting:  newestFirst(awaiting),
		Submitted: newestFirst(submitted),
	}, nil
}

func (s *approvalService) TransitionRequest(ctx context.Context, id string, identity *model.Identity, req TransitionRequestDTO) (*model.ApprovalRequest, error) {
	if !authenticated(identity) {
		return nil, newError(ErrUnauthorized, "authentication required")
	}

	approval, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(ErrNotFound, "approval request %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load approval request: %w", err)
	}

	if approval.ApproverEmail != normalizeEmail(identity.Email) {
		return nil, newError(ErrPermission, "only the designated approver can update this request")
	}
	if approval.IsFinal() {
		return nil, newError(ErrConflict, "approval request is already %s", approval.Status)
	}

	status := strings.TrimSpace(req.Status)
	if status != model.ApprovalApproved && status != model.ApprovalRejected {
		return nil, newError(ErrValidation, "status must be %s or %s", model.ApprovalApproved, model.ApprovalRejected)
	}
	text := strings.TrimSpace(req.Comment)
	if status == model.ApprovalRejected && text == "" {
		return nil, newError(ErrValidation, "a comment is required when rejecting a request")
	}

	now := s.now()
	approval.Status = status
	approval.LastUpdateDate = &now

	var comment *model.ApprovalComment
	if text != "" {
		author := identity.Name
		if author == "" {
			author = identity.Email
		}
		comment = &model.ApprovalComment{
			ID:        model.NewID(),
			Text:      text,
			Author:    author,
			AuthorID:  identity.ID,
			Timestamp: now,
		}
	}

	action := model.ActionApproveRequest
	if status == model.ApprovalRejected {
		action = model.ActionRejectRequest
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		updateErr := s.repo.UpdateStatus(txCtx, approval, model.ApprovalPending, comment)
		switch {
		case errors.Is(updateErr, repository.ErrStatusConflict):
			return newError(ErrConflict, "approval request was already finalized")
		case errors.Is(updateErr, repository.ErrNotFound):
			return newError(ErrNotFound, "approval request %s not found", id)
		case updateErr != nil:
			return fmt.Errorf("failed to update approval request: %w", updateErr)
		}
		return s.recordAudit(txCtx, identity, action, approval, map[string]interface{}{
			"status":  status,
			"comment": text,
		})
	})
	if err != nil {
		return nil, err
	}

	if approval.ApprovalComments == nil {
		approval.ApprovalComments = []model.ApprovalComment{}
	}
	if comment != nil {
		comment.ApprovalRequestID = approval.ID
		approval.ApprovalComments = append(approval.ApprovalComments, *comment)
	}

	s.publish(model.EventApprovalUpdated, approval)
	return approval, nil
}

// --- Helpers ---

func authenticated(identity *model.Identity) bool {
	return identity != nil && strings.TrimSpace(identity.Email) != ""
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeCreate(req CreateApprovalRequestDTO) CreateApprovalRequestDTO {
	req.Title = strings.TrimSpace(req.Title)
	req.Details = strings.TrimSpace(req.Details)
	req.ApproverEmail = normalizeEmail(req.ApproverEmail)
	req.ApproverName = strings.TrimSpace(req.ApproverName)
	req.RequestingDepartment = strings.TrimSpace(req.RequestingDepartment)
	req.ProjectID = strings.TrimSpace(req.ProjectID)
	req.ProjectName = strings.TrimSpace(req.ProjectName)
	return req
}

// validateCreate checks the payload and returns the canonical department name.
func (s *approvalService) validateCreate(req CreateApprovalRequestDTO) (string, error) {
	if err := validatePayload(s.validate, req); err != nil {
		return "", err
	}

	department, ok := s.departments.Canonical(req.RequestingDepartment)
	if !ok {
		return "", newError(ErrValidation, "requestingDepartment: unknown department %q", req.RequestingDepartment)
	}
	return department, nil
}

// newestFirst orders by submission date descending. The sort is stable, so equal dates keep
// the repository order (latest insertion first).
func newestFirst(requests []model.ApprovalRequest) []model.ApprovalRequest {
	if requests == nil {
		return []model.ApprovalRequest{}
	}
	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].SubmissionDate.After(requests[j].SubmissionDate)
	})
	for i := range requests {
		if requests[i].ApprovalComments == nil {
			requests[i].ApprovalComments = []model.ApprovalComment{}
		}
	}
	return requests
}

// recordAudit fails the surrounding transaction when the audit write fails. Without an atomic
// transaction the approval change is already stored, so the failure is logged and the
// operation completes.
func (s *approvalService) recordAudit(ctx context.Context, identity *model.Identity, action string, approval *model.ApprovalRequest, details map[string]interface{}) error {
	err := s.writeAudit(ctx, identity, action, approval, details)
	if err == nil || s.txManager.Atomic() {
		return err
	}
	log.Error().Err(err).
		Str("action", action).
		Str("approval_id", approval.ID).
		Msg("Audit entry lost after approval change was stored")
	return nil
}

func (s *approvalService) writeAudit(ctx context.Context, identity *model.Identity, action string, approval *model.ApprovalRequest, details map[string]interface{}) error {
	if s.audit == nil {
		return nil
	}

	payload, _ := json.Marshal(details)
	entry := model.AuditLog{
		ID:         model.NewID(),
		UserID:     identity.ID,
		UserName:   identity.Name,
		Action:     action,
		EntityID:   approval.ID,
		EntityName: approval.Title,
		Details:    string(payload),
		CreatedAt:  s.now(),
	}
	if err := s.audit.Log(ctx, &entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

func (s *approvalService) publish(eventType string, approval *model.ApprovalRequest) {
	if s.events == nil {
		return
	}
	s.events.Publish(model.Event{
		Type:       eventType,
		Recipients: []string{approval.RequestorEmail, approval.ApproverEmail},
		Data:       approval,
	})
}
