package documents

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/projecthub/internal/common"
	"github.com/dmitrijs2005/projecthub/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func testDocument() *models.Document {
	return &models.Document{
		OriginalFilename:  "report.pdf",
		GeneratedFilename: "gen.pdf",
		StorageKey:        "projects/1/gen.pdf",
		FileSize:          100,
		ContentType:       "application/pdf",
		ProjectID:         1,
		UploadedBy:        2,
		UploadedAt:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	doc := testDocument()
	rows := sqlmock.NewRows([]string{"id"}).AddRow(int64(11))
	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+documents.*RETURNING\s+id`).
		WithArgs(doc.OriginalFilename, doc.GeneratedFilename, doc.StorageKey,
			doc.FileSize, doc.ContentType, doc.ProjectID, doc.UploadedBy, doc.UploadedAt).
		WillReturnRows(rows)

	got, err := repo.Create(context.Background(), doc)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 11 {
		t.Fatalf("unexpected document: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+documents\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestGetByProject_EmptyIsValid(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	cols := []string{"id", "original_filename", "generated_filename", "storage_key",
		"file_size", "content_type", "project_id", "uploaded_by", "uploaded_at"}
	mock.ExpectQuery(`FROM\s+documents\s+WHERE\s+project_id\s*=\s*\$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(cols))

	got, err := repo.GetByProject(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetByProject error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no documents, got %+v", got)
	}
}

func TestGetByProject_ReturnsRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	uploaded := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cols := []string{"id", "original_filename", "generated_filename", "storage_key",
		"file_size", "content_type", "project_id", "uploaded_by", "uploaded_at"}
	rows := sqlmock.NewRows(cols).
		AddRow(int64(1), "a.txt", "g1.txt", "k1", int64(10), "text/plain", int64(1), int64(2), uploaded).
		AddRow(int64(2), "b.txt", "g2.txt", "k2", int64(20), "text/plain", int64(1), int64(3), uploaded)
	mock.ExpectQuery(`FROM\s+documents\s+WHERE\s+project_id\s*=\s*\$1`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	got, err := repo.GetByProject(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetByProject error: %v", err)
	}
	if len(got) != 2 || got[0].OriginalFilename != "a.txt" || got[1].UploadedBy != 3 {
		t.Fatalf("unexpected documents: %+v", got)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+documents\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), 7); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}
