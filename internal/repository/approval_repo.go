package repository

//go:generate mockgen -source=approval_repo.go -destination=mock/approval_repo_mock.go -package=mock

import (
	"context"
	"errors"

	"storeflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApprovalRepository stores approval requests. Every list method returns the most recent
// request first: submission date descending, later insertion first on equal dates.
type ApprovalRepository interface {
	Create(ctx context.Context, req *model.ApprovalRequest) error
	FindByID(ctx context.Context, id string) (*model.ApprovalRequest, error)
	// FindByApprover filters by approver email and, when status is not empty, by status.
	FindByApprover(ctx context.Context, email, status string) ([]model.ApprovalRequest, error)
	FindByRequestor(ctx context.Context, email string) ([]model.ApprovalRequest, error)
	// UpdateStatus persists req.Status and req.LastUpdateDate only if the stored status still
	// equals expectedStatus, appending comment when it is not nil. It returns
	// ErrStatusConflict when the stored status differs and ErrNotFound for an unknown id.
	UpdateStatus(ctx context.Context, req *model.ApprovalRequest, expectedStatus string, comment *model.ApprovalComment) error
	Count(ctx context.Context) (int64, error)
}

type approvalRepository struct {
	db *gorm.DB
}

func NewApprovalRepository(db *gorm.DB) ApprovalRepository {
	return &approvalRepository{db: db}
}

func orderedComments(db *gorm.DB) *gorm.DB {
	return db.Order(`"timestamp" ASC`)
}

func (r *approvalRepository) Create(ctx context.Context, req *model.ApprovalRequest) error {
	return GetDB(ctx, r.db).Create(req).Error
}

func (r *approvalRepository) FindByID(ctx context.Context, id string) (*model.ApprovalRequest, error) {
	// the column is a uuid; anything else cannot match
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	var req model.ApprovalRequest
	err := GetDB(ctx, r.db).Preload("ApprovalComments", orderedComments).First(&req, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *approvalRepository) FindByApprover(ctx context.Context, email, status string) ([]model.ApprovalRequest, error) {
	query := GetDB(ctx, r.db).Preload("ApprovalComments", orderedComments).Where("approver_email = ?", email)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []model.ApprovalRequest
	if err := query.Order("submission_date DESC, id DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *approvalRepository) FindByRequestor(ctx context.Context, email string) ([]model.ApprovalRequest, error) {
	var requests []model.ApprovalRequest
	if err := GetDB(ctx, r.db).
		Preload("ApprovalComments", orderedComments).
		Where("requestor_email = ?", email).
		Order("submission_date DESC, id DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *approvalRepository) UpdateStatus(ctx context.Context, req *model.ApprovalRequest, expectedStatus string, comment *model.ApprovalComment) error {
	return GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.ApprovalRequest{}).
			Where("id = ? AND status = ?", req.ID, expectedStatus).
			Updates(map[string]interface{}{
				"status":           req.Status,
				"last_update_date": req.LastUpdateDate,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&model.ApprovalRequest{}).Where("id = ?", req.ID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrNotFound
			}
			return ErrStatusConflict
		}

		if comment != nil {
			comment.ApprovalRequestID = req.ID
			if err := tx.Create(comment).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *approvalRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&model.ApprovalRequest{}).Count(&total).Error
	return total, err
}
