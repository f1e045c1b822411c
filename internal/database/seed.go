package database

import (
	"context"
	"fmt"
	"time"

	"storeflow/internal/model"
	"storeflow/internal/repository"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// FixturePassword is the login password of every seeded user
const FixturePassword = "password123"

var fixtureUsers = []model.User{
	{ID: "0192f1a0-0000-7000-8000-000000000001", Name: "Alice Admin", Email: "alice@storeflow.dev", Role: model.RoleAdmin, Department: "Operations"},
	{ID: "0192f1a0-0000-7000-8000-000000000002", Name: "Morgan Manager", Email: "morgan@storeflow.dev", Role: model.RoleManager, Department: "Finance"},
	{ID: "0192f1a0-0000-7000-8000-000000000003", Name: "Sam Staff", Email: "sam@storeflow.dev", Role: model.RoleStaff, Department: "Construction"},
	{ID: "0192f1a0-0000-7000-8000-000000000004", Name: "Riley Staff", Email: "riley@storeflow.dev", Role: model.RoleStaff, Department: "Marketing"},
}

var fixtureProjects = []model.Project{
	{ID: "proj-001", Name: "Downtown Flagship Launch", StoreName: "StoreFlow Downtown", Status: model.ProjectInProgress},
	{ID: "proj-002", Name: "Riverside Mall Opening", StoreName: "StoreFlow Riverside", Status: model.ProjectPlanning},
	{ID: "proj-003", Name: "Airport Kiosk Refit", StoreName: "StoreFlow Airport", Status: model.ProjectOnHold},
}

// Seed loads fixture users, projects and approval requests. Each collection is only seeded
// when it is empty.
func Seed(ctx context.Context, repos *repository.Repos) error {
	if err := seedUsers(ctx, repos.User); err != nil {
		return err
	}
	if err := seedProjects(ctx, repos.Project); err != nil {
		return err
	}
	return seedApprovals(ctx, repos.Approval)
}

func seedUsers(ctx context.Context, repo repository.UserRepository) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(FixturePassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash fixture password: %w", err)
	}
	for _, u := range fixtureUsers {
		user := u
		user.Password = string(hash)
		if err := repo.Create(ctx, &user); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", user.Email, err)
		}
	}
	log.Info().Int("count", len(fixtureUsers)).Msg("Seeded users")
	return nil
}

func seedProjects(ctx context.Context, repo repository.ProjectRepository) error {
	_, total, err := repo.List(ctx, 1, 1)
	if err != nil {
		return fmt.Errorf("failed to count projects: %w", err)
	}
	if total > 0 {
		return nil
	}

	now := time.Now().UTC()
	for i, p := range fixtureProjects {
		project := p
		project.CreatedAt = now.Add(-time.Duration(len(fixtureProjects)-i) * 24 * time.Hour)
		if err := repo.Create(ctx, &project); err != nil {
			return fmt.Errorf("failed to seed project %s: %w", project.ID, err)
		}
	}
	log.Info().Int("count", len(fixtureProjects)).Msg("Seeded projects")
	return nil
}

func seedApprovals(ctx context.Context, repo repository.ApprovalRepository) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count approval requests: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	decided := now.Add(-20 * time.Hour)
	manager, staff, marketer := fixtureUsers[1], fixtureUsers[2], fixtureUsers[3]

	approvals := []model.ApprovalRequest{
		{
			Title:                "Signage budget increase",
			Details:              "Exterior signage quote came in 15% over the approved budget.",
			Status:               model.ApprovalPending,
			RequestorName:        staff.Name,
			RequestorEmail:       staff.Email,
			ApproverName:         manager.Name,
			ApproverEmail:        manager.Email,
			RequestingDepartment: "Construction",
			ProjectID:            fixtureProjects[0].ID,
			ProjectName:          fixtureProjects[0].Name,
			SubmissionDate:       now.Add(-2 * time.Hour),
		},
		{
			Title:                "Grand opening campaign",
			Details:              "Local radio and social media spend for the opening week.",
			Status:               model.ApprovalPending,
			RequestorName:        marketer.Name,
			RequestorEmail:       marketer.Email,
			ApproverName:         manager.Name,
			ApproverEmail:        manager.Email,
			RequestingDepartment: "Marketing",
			ProjectID:            fixtureProjects[1].ID,
			ProjectName:          fixtureProjects[1].Name,
			SubmissionDate:       now.Add(-26 * time.Hour),
		},
		{
			Title:                "Fixture vendor change",
			Details:              "Switch shelving vendor after delivery delays.",
			Status:               model.ApprovalRejected,
			RequestorName:        staff.Name,
			RequestorEmail:       staff.Email,
			ApproverName:         manager.Name,
			ApproverEmail:        manager.Email,
			RequestingDepartment: "Supply Chain",
			ProjectID:            fixtureProjects[0].ID,
			ProjectName:          fixtureProjects[0].Name,
			SubmissionDate:       now.Add(-72 * time.Hour),
			LastUpdateDate:       &decided,
			ApprovalComments: []model.ApprovalComment{{
				ID:        model.NewID(),
				Text:      "Current vendor committed to the new delivery date.",
				Author:    manager.Name,
				AuthorID:  manager.ID,
				Timestamp: decided,
			}},
		},
	}

	// oldest first so that every backend sees them in insertion order
	for i := len(approvals) - 1; i >= 0; i-- {
		approval := approvals[i]
		approval.ID = model.NewID()
		if approval.ApprovalComments == nil {
			approval.ApprovalComments = []model.ApprovalComment{}
		}
		if err := repo.Create(ctx, &approval); err != nil {
			return fmt.Errorf("failed to seed approval request %q: %w", approval.Title, err)
		}
	}
	log.Info().Int("count", len(approvals)).Msg("Seeded approval requests")
	return nil
}
