package projects

import (
	"context"

	"github.com/dmitrijs2005/projecthub/internal/server/models"
)

// Repository is the storage contract for projects. GetByID loads the
// participant set eagerly. AddParticipant performs the membership insert as
// a single statement; the primary key on (project_id, user_id) and an
// owner-exclusion guard are the authoritative defense against races, with
// the entity-level check being advisory only.
type Repository interface {
	Create(ctx context.Context, project *models.Project) (*models.Project, error)
	GetByID(ctx context.Context, id int64) (*models.Project, error)
	GetForUser(ctx context.Context, userID int64) ([]*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id int64) error
	AddParticipant(ctx context.Context, projectID, userID int64) error
	RemoveParticipant(ctx context.Context, projectID, userID int64) error
}
