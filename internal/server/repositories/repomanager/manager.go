package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/projecthub/internal/dbx"
	"github.com/dmitrijs2005/projecthub/internal/server/repositories/documents"
	"github.com/dmitrijs2005/projecthub/internal/server/repositories/projects"
	"github.com/dmitrijs2005/projecthub/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a DBTX, so a service can
// run several repository calls against one transaction handle.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Projects(db dbx.DBTX) projects.Repository
	Documents(db dbx.DBTX) documents.Repository
}
