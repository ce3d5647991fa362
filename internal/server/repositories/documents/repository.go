package documents

import (
	"context"

	"github.com/dmitrijs2005/projecthub/internal/server/models"
)

// Repository is the storage contract for document records. The blob content
// itself lives in blob storage; only metadata is persisted here.
type Repository interface {
	Create(ctx context.Context, document *models.Document) (*models.Document, error)
	GetByID(ctx context.Context, id int64) (*models.Document, error)
	GetByProject(ctx context.Context, projectID int64) ([]*models.Document, error)
	Delete(ctx context.Context, id int64) error
}
