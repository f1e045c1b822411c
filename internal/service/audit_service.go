package service

import (
	"context"
	"fmt"

	"storeflow/internal/model"
	"storeflow/internal/repository"
)

type AuditService interface {
	GetAuditLogs(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error)
}

type auditService struct {
	repo repository.AuditRepository
}

// NewAuditService creates a new AuditService instance
func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

// GetAuditLogs returns the approval workflow trail, newest first
func (s *auditService) GetAuditLogs(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	logs, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}
	if logs == nil {
		logs = []model.AuditLog{}
	}
	return logs, total, nil
}
