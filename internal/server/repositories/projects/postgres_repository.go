package projects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/projecthub/internal/common"
	"github.com/dmitrijs2005/projecthub/internal/dbx"
	"github.com/dmitrijs2005/projecthub/internal/server/models"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, project *models.Project) (*models.Project, error) {

	query :=
		`INSERT INTO projects (name, description, owner_id)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		project.Name, project.Description, project.OwnerID).Scan(&project.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return project, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	query :=
		`SELECT id, name, description, owner_id FROM projects
		 WHERE id = $1
		 `

	project := &models.Project{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&project.ID, &project.Name, &project.Description, &project.OwnerID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	participants, err := r.loadParticipants(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Participants = participants

	return project, nil
}

func (r *PostgresRepository) loadParticipants(ctx context.Context, projectID int64) ([]int64, error) {
	query :=
		`SELECT user_id FROM project_participants
		 WHERE project_id = $1
		 ORDER BY user_id
		 `

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []int64
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		result = append(result, userID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PostgresRepository) GetForUser(ctx context.Context, userID int64) ([]*models.Project, error) {
	query :=
		`SELECT id, name, description, owner_id FROM projects
		 WHERE owner_id = $1
		    OR id IN (SELECT project_id FROM project_participants WHERE user_id = $1)
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Project
	for rows.Next() {
		project := &models.Project{}
		if err := rows.Scan(&project.ID, &project.Name, &project.Description, &project.OwnerID); err != nil {
			return nil, err
		}
		result = append(result, project)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, project := range result {
		participants, err := r.loadParticipants(ctx, project.ID)
		if err != nil {
			return nil, err
		}
		project.Participants = participants
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, project *models.Project) error {
	query :=
		`UPDATE projects SET name = $2, description = $3
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, project.ID, project.Name, project.Description)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM projects WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}

// AddParticipant inserts the membership row in one statement. The SELECT
// guard keeps the owner out of the participant set even when the in-memory
// entity was stale; the composite primary key rejects duplicates, which is
// reported as ErrAlreadyParticipant so a lost race looks like an ordinary
// conflict to the caller.
func (r *PostgresRepository) AddParticipant(ctx context.Context, projectID, userID int64) error {
	query :=
		`INSERT INTO project_participants (project_id, user_id)
		 SELECT p.id, $2 FROM projects p
		 WHERE p.id = $1 AND p.owner_id <> $2
		 `

	res, err := r.db.ExecContext(ctx, query, projectID, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrAlreadyParticipant
		}
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 1 {
		return nil
	}

	// nothing inserted: either the project is gone or userID is the owner
	var ownerID int64
	err = r.db.QueryRowContext(ctx, `SELECT owner_id FROM projects WHERE id = $1`, projectID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	if ownerID == userID {
		return common.ErrOwnerParticipant
	}
	return common.ErrNotFound
}

func (r *PostgresRepository) RemoveParticipant(ctx context.Context, projectID, userID int64) error {
	query :=
		`DELETE FROM project_participants
		 WHERE project_id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, projectID, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotParticipant
	}

	return nil
}
