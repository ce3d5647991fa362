package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/projecthub/internal/common"
	"github.com/dmitrijs2005/projecthub/internal/dbx"
	"github.com/dmitrijs2005/projecthub/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, document *models.Document) (*models.Document, error) {

	query :=
		`INSERT INTO documents (original_filename, generated_filename, storage_key,
		                        file_size, content_type, project_id, uploaded_by, uploaded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		document.OriginalFilename, document.GeneratedFilename, document.StorageKey,
		document.FileSize, document.ContentType, document.ProjectID,
		document.UploadedBy, document.UploadedAt).Scan(&document.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return document, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	query :=
		`SELECT id, original_filename, generated_filename, storage_key,
		        file_size, content_type, project_id, uploaded_by, uploaded_at
		 FROM documents
		 WHERE id = $1
		 `

	document := &models.Document{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&document.ID, &document.OriginalFilename, &document.GeneratedFilename,
		&document.StorageKey, &document.FileSize, &document.ContentType,
		&document.ProjectID, &document.UploadedBy, &document.UploadedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return document, nil
}

func (r *PostgresRepository) GetByProject(ctx context.Context, projectID int64) ([]*models.Document, error) {
	query :=
		`SELECT id, original_filename, generated_filename, storage_key,
		        file_size, content_type, project_id, uploaded_by, uploaded_at
		 FROM documents
		 WHERE project_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Document
	for rows.Next() {
		document := &models.Document{}
		err := rows.Scan(
			&document.ID, &document.OriginalFilename, &document.GeneratedFilename,
			&document.StorageKey, &document.FileSize, &document.ContentType,
			&document.ProjectID, &document.UploadedBy, &document.UploadedAt)
		if err != nil {
			return nil, err
		}
		result = append(result, document)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM documents WHERE id = $1`

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
