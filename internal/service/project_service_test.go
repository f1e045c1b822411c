package service

import (
	"context"
	"testing"
	"time"

	"storeflow/internal/model"
	"storeflow/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryProjectRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"p-1", "p-2", "p-3"} {
		require.NoError(t, repo.Create(ctx, &model.Project{ID: id, Name: "Project " + id, Status: model.ProjectPlanning, CreatedAt: base.Add(time.Duration(i) * time.Hour)}))
	}
	svc := NewProjectService(repo)

	project, err := svc.GetProject(ctx, "p-2")
	require.NoError(t, err)
	assert.Equal(t, "Project p-2", project.Name)

	_, err = svc.GetProject(ctx, "p-404")
	assert.ErrorIs(t, err, ErrNotFound)

	page, total, err := svc.ListProjects(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 2)

	page, _, err = svc.ListProjects(ctx, 5, 2)
	require.NoError(t, err)
	assert.NotNil(t, page)
	assert.Empty(t, page)
}
