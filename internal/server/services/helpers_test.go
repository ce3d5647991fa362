package services

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/projecthub/internal/dbx"
	"github.com/dmitrijs2005/projecthub/internal/server/blob"
	"github.com/dmitrijs2005/projecthub/internal/logging"
	"github.com/dmitrijs2005/projecthub/internal/server/models"
	"github.com/dmitrijs2005/projecthub/internal/server/repositories/documents"
	"github.com/dmitrijs2005/projecthub/internal/server/repositories/projects"
	"github.com/dmitrijs2005/projecthub/internal/server/repositories/users"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error initializing sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (nopLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (nopLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (nopLogger) Error(ctx context.Context, msg string, args ...any) {}
func (l nopLogger) With(args ...any) logging.Logger                  { return l }

// fakeUserRepo implements users.Repository with overridable behavior.
type fakeUserRepo struct {
	createFunc     func(ctx context.Context, user *models.User) (*models.User, error)
	getByIDFunc    func(ctx context.Context, id int64) (*models.User, error)
	getByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	updateFunc     func(ctx context.Context, user *models.User) error
	deleteFunc     func(ctx context.Context, id int64) error
	listAllFunc    func(ctx context.Context) ([]*models.User, error)
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	return f.createFunc(ctx, user)
}
func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return f.getByIDFunc(ctx, id)
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.getByEmailFunc(ctx, email)
}
func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	return f.updateFunc(ctx, user)
}
func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	return f.deleteFunc(ctx, id)
}
func (f *fakeUserRepo) ListAll(ctx context.Context) ([]*models.User, error) {
	return f.listAllFunc(ctx)
}

// fakeProjectRepo implements projects.Repository with overridable behavior.
type fakeProjectRepo struct {
	createFunc            func(ctx context.Context, project *models.Project) (*models.Project, error)
	getByIDFunc           func(ctx context.Context, id int64) (*models.Project, error)
	getForUserFunc        func(ctx context.Context, userID int64) ([]*models.Project, error)
	updateFunc            func(ctx context.Context, project *models.Project) error
	deleteFunc            func(ctx context.Context, id int64) error
	addParticipantFunc    func(ctx context.Context, projectID, userID int64) error
	removeParticipantFunc func(ctx context.Context, projectID, userID int64) error
}

func (f *fakeProjectRepo) Create(ctx context.Context, project *models.Project) (*models.Project, error) {
	return f.createFunc(ctx, project)
}
func (f *fakeProjectRepo) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	return f.getByIDFunc(ctx, id)
}
func (f *fakeProjectRepo) GetForUser(ctx context.Context, userID int64) ([]*models.Project, error) {
	return f.getForUserFunc(ctx, userID)
}
func (f *fakeProjectRepo) Update(ctx context.Context, project *models.Project) error {
	return f.updateFunc(ctx, project)
}
func (f *fakeProjectRepo) Delete(ctx context.Context, id int64) error {
	return f.deleteFunc(ctx, id)
}
func (f *fakeProjectRepo) AddParticipant(ctx context.Context, projectID, userID int64) error {
	return f.addParticipantFunc(ctx, projectID, userID)
}
func (f *fakeProjectRepo) RemoveParticipant(ctx context.Context, projectID, userID int64) error {
	return f.removeParticipantFunc(ctx, projectID, userID)
}

// fakeDocumentRepo implements documents.Repository with overridable behavior.
type fakeDocumentRepo struct {
	createFunc       func(ctx context.Context, document *models.Document) (*models.Document, error)
	getByIDFunc      func(ctx context.Context, id int64) (*models.Document, error)
	getByProjectFunc func(ctx context.Context, projectID int64) ([]*models.Document, error)
	deleteFunc       func(ctx context.Context, id int64) error
}

func (f *fakeDocumentRepo) Create(ctx context.Context, document *models.Document) (*models.Document, error) {
	return f.createFunc(ctx, document)
}
func (f *fakeDocumentRepo) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	return f.getByIDFunc(ctx, id)
}
func (f *fakeDocumentRepo) GetByProject(ctx context.Context, projectID int64) ([]*models.Document, error) {
	return f.getByProjectFunc(ctx, projectID)
}
func (f *fakeDocumentRepo) Delete(ctx context.Context, id int64) error {
	return f.deleteFunc(ctx, id)
}

// fakeRepoManager hands out the configured fakes regardless of the DBTX.
type fakeRepoManager struct {
	users     *fakeUserRepo
	projects  *fakeProjectRepo
	documents *fakeDocumentRepo
}

func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository                  { return m.users }
func (m *fakeRepoManager) Projects(db dbx.DBTX) projects.Repository            { return m.projects }
func (m *fakeRepoManager) Documents(db dbx.DBTX) documents.Repository          { return m.documents }

// fakeHasher is a transparent stand-in for bcrypt: the "hash" is the plain
// text with a fixed prefix, so tests can verify which value was stored.
type fakeHasher struct {
	hashErr error
}

func (h *fakeHasher) Hash(plain string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + plain, nil
}

func (h *fakeHasher) Verify(plain, hash string) bool {
	return hash == "hashed:"+plain
}

// fakeStore is an in-memory blob.Store that records writes and removals.
type fakeStore struct {
	objects   map[string][]byte
	writeErr  error
	openErr   error
	removeErr error
	writes    []string
	removals  []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (s *fakeStore) Write(ctx context.Context, key string, r io.Reader) (int64, error) {
	if s.writeErr != nil {
		return 0, s.writeErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	s.objects[key] = b
	s.writes = append(s.writes, key)
	return int64(len(b)), nil
}

func (s *fakeStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	b, ok := s.objects[key]
	if !ok {
		return nil, blob.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (s *fakeStore) Remove(ctx context.Context, key string) error {
	s.removals = append(s.removals, key)
	if s.removeErr != nil {
		return s.removeErr
	}
	if _, ok := s.objects[key]; !ok {
		return blob.ErrNotFound
	}
	delete(s.objects, key)
	return nil
}

func (s *fakeStore) Size(ctx context.Context, key string) (int64, error) {
	b, ok := s.objects[key]
	if !ok {
		return 0, blob.ErrNotFound
	}
	return int64(len(b)), nil
}
