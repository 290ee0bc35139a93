package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Tibluka/voicetaskapi/models"
	"github.com/google/uuid"
)

// ProjectService maintains the per-project running totals and expense
// history embedded in the user's profile config.
type ProjectService struct {
	profile ProfileStore
	ledger  SpendingStore
}

func NewProjectService(profile ProfileStore, ledger SpendingStore) *ProjectService {
	return &ProjectService{profile: profile, ledger: ledger}
}

// ProjectUpdate carries the mutable project fields; nil means unchanged.
type ProjectUpdate struct {
	ProjectName *string
	Description *string
	TargetValue *float64
	Status      *string
}

// CreateProject adds a project to the user's list, creating the profile
// config first if absent. Names are unique case-insensitively per user.
func (s *ProjectService) CreateProject(ctx context.Context, userID, name, description string, targetValue *float64) (*models.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, models.NewValidationError("projectName")
	}

	cfg, err := s.profile.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range cfg.Projects {
		if strings.EqualFold(cfg.Projects[i].ProjectName, name) {
			return nil, fmt.Errorf("project %q: %w", name, models.ErrAlreadyExists)
		}
	}

	now := time.Now().UTC()
	project := models.Project{
		ProjectID:       uuid.NewString(),
		ProjectName:     name,
		Description:     description,
		TargetValue:     targetValue,
		Status:          models.ProjectActive,
		ExpenseHistory:  []models.ExpenseEntry{},
		DateHourCreated: now,
		DateHourUpdated: now,
	}
	if err := s.profile.AddProject(ctx, userID, project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) GetProjectByID(ctx context.Context, userID, projectID string) (*models.Project, error) {
	cfg, err := s.profile.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		for i := range cfg.Projects {
			if cfg.Projects[i].ProjectID == projectID {
				return &cfg.Projects[i], nil
			}
		}
	}
	return nil, models.NewNotFoundError("project", projectID)
}

// GetProjectByName resolves a project by case-insensitive name match. A miss
// is a NotFoundError, never an implicit creation.
func (s *ProjectService) GetProjectByName(ctx context.Context, userID, name string) (*models.Project, error) {
	cfg, err := s.profile.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		for i := range cfg.Projects {
			if strings.EqualFold(cfg.Projects[i].ProjectName, name) {
				return &cfg.Projects[i], nil
			}
		}
	}
	return nil, models.NewNotFoundError("project", name)
}

// ResolveProject is GetProjectByName with explicit opt-in auto-creation for
// callers that want a name miss to materialize the project.
func (s *ProjectService) ResolveProject(ctx context.Context, userID, name string, autoCreate bool) (*models.Project, error) {
	project, err := s.GetProjectByName(ctx, userID, name)
	if err != nil && models.IsNotFound(err) && autoCreate {
		return s.CreateProject(ctx, userID, name, "", nil)
	}
	return project, err
}

// UpdateProjectSpending applies a signed delta to the project's running
// total and, when an entry is given, appends it to the expense history in
// the same store update.
func (s *ProjectService) UpdateProjectSpending(ctx context.Context, userID, projectID string, delta float64, entry *models.ExpenseEntry) error {
	matched, err := s.profile.ApplyProjectDelta(ctx, userID, projectID, delta, entry)
	if err != nil {
		return err
	}
	if matched == 0 {
		return models.NewNotFoundError("project", projectID)
	}
	return nil
}

func (s *ProjectService) ListProjects(ctx context.Context, userID, status string) ([]models.Project, error) {
	cfg, err := s.profile.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	projects := []models.Project{}
	if cfg == nil {
		return projects, nil
	}
	for _, p := range cfg.Projects {
		if status == "" || p.Status == status {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, userID, projectID string, update ProjectUpdate) (*models.Project, error) {
	fields := map[string]any{}

	if update.ProjectName != nil {
		existing, err := s.GetProjectByName(ctx, userID, *update.ProjectName)
		if err != nil && !models.IsNotFound(err) {
			return nil, err
		}
		if existing != nil && existing.ProjectID != projectID {
			return nil, fmt.Errorf("project %q: %w", *update.ProjectName, models.ErrAlreadyExists)
		}
		fields["projectName"] = *update.ProjectName
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.TargetValue != nil {
		fields["targetValue"] = *update.TargetValue
	}
	if update.Status != nil {
		switch *update.Status {
		case models.ProjectActive, models.ProjectCompleted, models.ProjectPaused:
		default:
			return nil, models.NewValidationError("status")
		}
		fields["status"] = *update.Status
		if *update.Status == models.ProjectCompleted {
			fields["completedAt"] = time.Now().UTC()
		}
	}

	if len(fields) == 0 {
		return nil, models.NewValidationError("updates")
	}

	matched, err := s.profile.UpdateProjectFields(ctx, userID, projectID, fields)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, models.NewNotFoundError("project", projectID)
	}
	return s.GetProjectByID(ctx, userID, projectID)
}

// DeleteProject removes the project from the owning list. Linked spendings
// keep their projectId; referential cleanup is out of scope.
func (s *ProjectService) DeleteProject(ctx context.Context, userID, projectID string) (*models.Project, error) {
	project, err := s.GetProjectByID(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	modified, err := s.profile.RemoveProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if modified == 0 {
		return nil, fmt.Errorf("error deleting project %s: no document modified", projectID)
	}
	return project, nil
}

// GetProjectDetails returns a project with its linked spendings and derived
// statistics.
func (s *ProjectService) GetProjectDetails(ctx context.Context, userID, projectID string) (*models.ProjectDetails, error) {
	project, err := s.GetProjectByID(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	spendings, err := s.ledger.Find(ctx, models.SpendingFilter{
		UserID:         userID,
		ProjectID:      projectID,
		AllRecords:     true,
		SortByDateDesc: true,
	})
	if err != nil {
		return nil, err
	}

	var totalSpent float64
	breakdown := map[string]float64{}
	for _, item := range spendings {
		totalSpent += item.Value
		category := item.Category
		if category == "" {
			category = "OTHER"
		}
		breakdown[category] += item.Value
	}

	stats := models.ProjectStatistics{
		TotalSpent:        totalSpent,
		SpendingCount:     len(spendings),
		CategoryBreakdown: breakdown,
		TargetValue:       project.TargetValue,
	}
	if project.TargetValue != nil && *project.TargetValue > 0 {
		pct := totalSpent / *project.TargetValue * 100
		stats.PercentageComplete = &pct
	}

	recent := spendings
	if len(recent) > 10 {
		recent = recent[:10]
	}

	return &models.ProjectDetails{
		Project:         project,
		Statistics:      stats,
		RecentSpendings: recent,
	}, nil
}
