package service

import (
	"context"
	"errors"
	"fmt"

	"storeflow/internal/model"
	"storeflow/internal/repository"
)

type ProjectService interface {
	ListProjects(ctx context.Context, page, limit int) ([]model.Project, int64, error)
	GetProject(ctx context.Context, id string) (*model.Project, error)
}

type projectService struct {
	repo repository.ProjectRepository
}

func NewProjectService(repo repository.ProjectRepository) ProjectService {
	return &projectService{repo: repo}
}

func (s *projectService) ListProjects(ctx context.Context, page, limit int) ([]model.Project, int64, error) {
	projects, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch projects: %w", err)
	}
	if projects == nil {
		projects = []model.Project{}
	}
	return projects, total, nil
}

// GetProject also serves as the project lookup for approval requests.
func (s *projectService) GetProject(ctx context.Context, id string) (*model.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(ErrNotFound, "project %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}
	return project, nil
}
