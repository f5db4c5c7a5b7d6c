package postgres

import (
	"context"
	"fmt"
	"time"

	"hirehub/internal/models"

	"github.com/gocraft/dbr/v2"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// uniqueViolation is the Postgres error code raised when a unique index
// rejects an insert.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == uniqueViolation
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.sess.
		InsertInto("users").
		Columns("id", "email", "password_hash", "name", "profile_pic_url", "created_at").
		Values(user.ID, user.Email, user.PasswordHash, user.Name, user.ProfilePicURL, time.Now()).
		ExecContext(ctx)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		s.logger.Error("failed to create user",
			zap.String("email", user.Email),
			zap.Error(err),
		)
		return fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
	)

	return nil
}

func (s *Store) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	err := s.sess.
		Select("*").
		From("users").
		Where("id = ?", userID).
		LoadOneContext(ctx, &user)

	if err == dbr.ErrNotFound {
		return nil, ErrNotFound
	}

	if err != nil {
		s.logger.Error("failed to get user",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	err := s.sess.
		Select("*").
		From("users").
		Where("lower(email) = lower(?)", email).
		LoadOneContext(ctx, &user)

	if err == dbr.ErrNotFound {
		return nil, ErrNotFound
	}

	if err != nil {
		s.logger.Error("failed to get user by email",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}
