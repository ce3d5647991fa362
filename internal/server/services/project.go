package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/projecthub/internal/common"
	"github.com/dmitrijs2005/projecthub/internal/dbx"
	"github.com/dmitrijs2005/projecthub/internal/logging"
	"github.com/dmitrijs2005/projecthub/internal/server/models"
	"github.com/dmitrijs2005/projecthub/internal/server/repositories/repomanager"
)

type ProjectService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewProjectService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *ProjectService {
	return &ProjectService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "project_service"),
	}
}

// Create validates and persists a new project with an empty participant set.
// Name and description are trimmed before validation.
func (s *ProjectService) Create(ctx context.Context, name, description string, ownerID int64) (*models.Project, error) {

	project, err := models.NewProject(strings.TrimSpace(name), strings.TrimSpace(description), ownerID)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Projects(s.db)

	project, err = repo.Create(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("error creating project: %w", err)
	}

	s.logger.Info(ctx, "project created", "project_id", project.ID, "owner_id", ownerID)
	return project, nil
}

// Get loads a project with its participants, failing with ErrNotFound when
// the repository reports absence.
func (s *ProjectService) Get(ctx context.Context, projectID int64) (*models.Project, error) {
	repo := s.repomanager.Projects(s.db)

	project, err := repo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error loading project: %w", err)
	}

	return project, nil
}

// GetProjectsForUser lists every project the user owns or participates in.
// No projects is a valid, empty result.
func (s *ProjectService) GetProjectsForUser(ctx context.Context, userID int64) ([]*models.Project, error) {
	repo := s.repomanager.Projects(s.db)

	projects, err := repo.GetForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading projects: %w", err)
	}

	return projects, nil
}

// Update renames and redescribes a project in one unit of work, propagating
// the entity-level no-op and empty-value rejections.
func (s *ProjectService) Update(ctx context.Context, projectID int64, name, description string) (*models.Project, error) {

	var project *models.Project

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Projects(tx)

		var err error
		project, err = repo.GetByID(ctx, projectID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrNotFound
			}
			return fmt.Errorf("error loading project: %w", err)
		}

		if err := project.Rename(strings.TrimSpace(name)); err != nil {
			return err
		}
		if err := project.Redescribe(strings.TrimSpace(description)); err != nil {
			return err
		}

		if err := repo.Update(ctx, project); err != nil {
			return fmt.Errorf("error updating project: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return project, nil
}

// Delete removes a project. Any caller with access rights (owner or
// participant) may delete it.
func (s *ProjectService) Delete(ctx context.Context, projectID, callerID int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Projects(tx)

		project, err := repo.GetByID(ctx, projectID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrNotFound
			}
			return fmt.Errorf("error loading project: %w", err)
		}

		if err := project.RequireAccess(callerID); err != nil {
			return err
		}

		if err := repo.Delete(ctx, projectID); err != nil {
			return fmt.Errorf("error deleting project: %w", err)
		}

		s.logger.Info(ctx, "project deleted", "project_id", projectID, "caller_id", callerID)
		return nil
	})
}

// AddParticipant grants userID access to the project. Only the owner may
// mutate membership. The entity check runs first for an early, cheap
// rejection; the repository insert is the authoritative guard and a lost
// race surfaces as the same ErrAlreadyParticipant.
func (s *ProjectService) AddParticipant(ctx context.Context, projectID, userID, callerID int64) error {
	repo := s.repomanager.Projects(s.db)

	project, err := repo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("error loading project: %w", err)
	}

	if !project.IsOwner(callerID) {
		return common.ErrAccessDenied
	}

	if err := project.AddParticipant(userID); err != nil {
		return err
	}

	if err := repo.AddParticipant(ctx, projectID, userID); err != nil {
		switch {
		case errors.Is(err, common.ErrAlreadyParticipant),
			errors.Is(err, common.ErrOwnerParticipant),
			errors.Is(err, common.ErrNotFound):
			return err
		default:
			return fmt.Errorf("error adding participant: %w", err)
		}
	}

	s.logger.Info(ctx, "participant added", "project_id", projectID, "user_id", userID)
	return nil
}

// RemoveParticipant revokes userID's membership. Only the owner may mutate
// membership.
func (s *ProjectService) RemoveParticipant(ctx context.Context, projectID, userID, callerID int64) error {
	repo := s.repomanager.Projects(s.db)

	project, err := repo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("error loading project: %w", err)
	}

	if !project.IsOwner(callerID) {
		return common.ErrAccessDenied
	}

	if userID <= 0 {
		return common.ErrInvalidUser
	}

	if err := repo.RemoveParticipant(ctx, projectID, userID); err != nil {
		if errors.Is(err, common.ErrNotParticipant) {
			return common.ErrNotParticipant
		}
		return fmt.Errorf("error removing participant: %w", err)
	}

	s.logger.Info(ctx, "participant removed", "project_id", projectID, "user_id", userID)
	return nil
}
