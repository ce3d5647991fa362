package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/projecthub/internal/common"
	"github.com/dmitrijs2005/projecthub/internal/dbx"
	"github.com/dmitrijs2005/projecthub/internal/logging"
	"github.com/dmitrijs2005/projecthub/internal/server/blob"
	"github.com/dmitrijs2005/projecthub/internal/server/models"
	"github.com/dmitrijs2005/projecthub/internal/server/repositories/repomanager"
)

type DocumentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       blob.Store
	logger      logging.Logger
}

func NewDocumentService(db *sql.DB, m repomanager.RepositoryManager, store blob.Store, logger logging.Logger) *DocumentService {
	return &DocumentService{
		db:          db,
		repomanager: m,
		store:       store,
		logger:      logger.With("module", "document_service"),
	}
}

// generatedFilename returns a collision-resistant name that keeps the
// original extension so content sniffing downstream stays sane.
func generatedFilename(originalFilename string) string {
	return uuid.New().String() + filepath.Ext(originalFilename)
}

// storageKey shards blobs per project.
func storageKey(projectID int64, generatedName string) string {
	return fmt.Sprintf("projects/%d/%s", projectID, generatedName)
}

// Upload stores the stream in blob storage and persists the document record.
// Validation happens before any write, so a rejected upload never leaves an
// orphan blob. If the record insert fails after the blob write, the blob is
// removed as a compensating action; if that removal fails too, the divergence
// is surfaced as ErrPartialFailure instead of being swallowed.
func (s *DocumentService) Upload(ctx context.Context, r io.Reader, originalFilename, contentType string, projectID, uploaderID int64) (*models.Document, error) {

	if originalFilename == "" {
		return nil, common.ErrFilenameRequired
	}

	generatedName := generatedFilename(originalFilename)
	key := storageKey(projectID, generatedName)

	size, err := s.store.Write(ctx, key, r)
	if err != nil {
		return nil, fmt.Errorf("error writing blob: %w", err)
	}

	document := &models.Document{
		OriginalFilename:  originalFilename,
		GeneratedFilename: generatedName,
		StorageKey:        key,
		FileSize:          size,
		ContentType:       contentType,
		ProjectID:         projectID,
		UploadedBy:        uploaderID,
		UploadedAt:        time.Now().UTC(),
	}

	repo := s.repomanager.Documents(s.db)

	document, err = repo.Create(ctx, document)
	if err != nil {
		createErr := fmt.Errorf("error creating document record: %w", err)

		if removeErr := s.store.Remove(ctx, key); removeErr != nil && !errors.Is(removeErr, common.ErrNotFound) {
			s.logger.Error(ctx, "orphan blob left after failed record insert",
				"storage_key", key, "create_error", err.Error(), "remove_error", removeErr.Error())
			return nil, fmt.Errorf("%w: %v (cleanup: %v)", common.ErrPartialFailure, err, removeErr)
		}

		return nil, createErr
	}

	s.logger.Info(ctx, "document uploaded",
		"document_id", document.ID, "project_id", projectID, "size", size)
	return document, nil
}

// ListForProject returns the project's documents. No documents is a valid,
// empty result.
func (s *DocumentService) ListForProject(ctx context.Context, projectID int64) ([]*models.Document, error) {
	repo := s.repomanager.Documents(s.db)

	documents, err := repo.GetByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("error loading documents: %w", err)
	}

	return documents, nil
}

// Get loads a document record, failing with ErrNotFound when absent.
func (s *DocumentService) Get(ctx context.Context, documentID int64) (*models.Document, error) {
	repo := s.repomanager.Documents(s.db)

	document, err := repo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error loading document: %w", err)
	}

	return document, nil
}

// Download opens the stored content of a document. The caller closes the
// returned reader.
func (s *DocumentService) Download(ctx context.Context, documentID int64) (*models.Document, io.ReadCloser, error) {
	document, err := s.Get(ctx, documentID)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.store.Open(ctx, document.StorageKey)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// record exists but blob is gone: divergence, not a plain 404
			return nil, nil, fmt.Errorf("%w: blob missing for document %d", common.ErrPartialFailure, documentID)
		}
		return nil, nil, fmt.Errorf("error opening blob: %w", err)
	}

	return document, rc, nil
}

// Delete removes the blob and the record as one logical action. Only the
// uploader may delete a document. Blob removal runs inside the unit of work
// before the record delete: a removal failure aborts the transaction, so the
// record never disappears while the blob silently stays behind. A blob that
// is already gone is tolerated.
func (s *DocumentService) Delete(ctx context.Context, documentID, callerID int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Documents(tx)

		document, err := repo.GetByID(ctx, documentID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrNotFound
			}
			return fmt.Errorf("error loading document: %w", err)
		}

		if document.UploadedBy != callerID {
			return common.ErrPermissionDenied
		}

		if err := s.store.Remove(ctx, document.StorageKey); err != nil && !errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("%w: blob removal failed: %v", common.ErrPartialFailure, err)
		}

		if err := repo.Delete(ctx, documentID); err != nil {
			return fmt.Errorf("error deleting document record: %w", err)
		}

		s.logger.Info(ctx, "document deleted", "document_id", documentID, "caller_id", callerID)
		return nil
	})
}
