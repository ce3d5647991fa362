// Package services implements the use cases orchestrating entity validation,
// authorization and persistence. Each multi-step mutation runs inside a
// single unit of work (dbx.WithTx); repository failures are wrapped so only
// sentinel errors from internal/common cross the service boundary.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/projecthub/internal/common"
	"github.com/dmitrijs2005/projecthub/internal/dbx"
	"github.com/dmitrijs2005/projecthub/internal/logging"
	"github.com/dmitrijs2005/projecthub/internal/server/config"
	"github.com/dmitrijs2005/projecthub/internal/server/hashing"
	"github.com/dmitrijs2005/projecthub/internal/server/models"
	"github.com/dmitrijs2005/projecthub/internal/server/repositories/repomanager"
)

type UserService struct {
	db             *sql.DB
	repomanager    repomanager.RepositoryManager
	hasher         hashing.PasswordHasher
	minPasswordLen int
	logger         logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher hashing.PasswordHasher, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		db:             db,
		repomanager:    m,
		hasher:         hasher,
		minPasswordLen: cfg.MinPasswordLen,
		logger:         logger.With("module", "user_service"),
	}
}

// Register hashes the raw password and persists a new active user.
func (s *UserService) Register(ctx context.Context, email, rawPassword string) (*models.User, error) {

	if len(rawPassword) < s.minPasswordLen {
		return nil, common.ErrPasswordTooShort
	}

	hash, err := s.hasher.Hash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := models.NewUser(email, hash)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, common.ErrEmailTaken
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// ChangePassword re-hashes the raw password and updates the stored hash.
// The minimum length is checked before any hashing happens, and re-using the
// current password is rejected, so a failed call leaves storage untouched.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, rawPassword string) error {

	if len(rawPassword) < s.minPasswordLen {
		return common.ErrPasswordTooShort
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err := repo.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrNotFound
			}
			return fmt.Errorf("error loading user: %w", err)
		}

		if s.hasher.Verify(rawPassword, user.PasswordHash) {
			return common.ErrSamePassword
		}

		hash, err := s.hasher.Hash(rawPassword)
		if err != nil {
			return fmt.Errorf("error hashing password: %w", err)
		}

		if err := user.ChangePassword(hash); err != nil {
			return err
		}

		if err := repo.Update(ctx, user); err != nil {
			return fmt.Errorf("error updating user: %w", err)
		}

		return nil
	})
}

// Deactivate turns off an active account.
func (s *UserService) Deactivate(ctx context.Context, userID int64) error {
	return s.toggleActive(ctx, userID, func(u *models.User) error { return u.Deactivate() })
}

// Activate turns a deactivated account back on.
func (s *UserService) Activate(ctx context.Context, userID int64) error {
	return s.toggleActive(ctx, userID, func(u *models.User) error { return u.Activate() })
}

func (s *UserService) toggleActive(ctx context.Context, userID int64, mutate func(*models.User) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err := repo.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrNotFound
			}
			return fmt.Errorf("error loading user: %w", err)
		}

		if err := mutate(user); err != nil {
			return err
		}

		if err := repo.Update(ctx, user); err != nil {
			return fmt.Errorf("error updating user: %w", err)
		}

		return nil
	})
}

// GetByID loads a user, failing with ErrNotFound when absent.
func (s *UserService) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	return user, nil
}

// GetByEmail loads a user by email, failing with ErrNotFound when absent.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	return user, nil
}

// Delete removes a user record.
func (s *UserService) Delete(ctx context.Context, userID int64) error {
	repo := s.repomanager.Users(s.db)

	if err := repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("error deleting user: %w", err)
	}

	s.logger.Info(ctx, "user deleted", "user_id", userID)
	return nil
}
