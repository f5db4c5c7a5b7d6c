package postgres

import (
	"context"
	"fmt"

	"hirehub/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

// dbr interpolates ? placeholders client-side; $N markers make it bail with
// a placeholder-count error before the query reaches the driver.
const upsertProfileQuery = `
	INSERT INTO profiles (user_id, role, created_at, updated_at)
	VALUES (?, ?, NOW(), NOW())
	ON CONFLICT (user_id) DO UPDATE SET
		role = EXCLUDED.role,
		updated_at = NOW()
`

// UpsertProfile creates the profile on first onboarding and updates the role
// on subsequent choices, in a single statement.
func (s *Store) UpsertProfile(ctx context.Context, userID, role string) error {
	_, err := s.sess.
		InsertBySql(upsertProfileQuery, userID, role).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to upsert profile",
			zap.String("user_id", userID),
			zap.String("role", role),
			zap.Error(err),
		)
		return fmt.Errorf("upsert profile: %w", err)
	}

	s.logger.Info("profile role set",
		zap.String("user_id", userID),
		zap.String("role", role),
	)

	return nil
}

// GetProfile returns nil without error when the user has not onboarded yet;
// callers treat a missing role as the candidate default.
func (s *Store) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile

	err := s.sess.
		Select("*").
		From("profiles").
		Where("user_id = ?", userID).
		LoadOneContext(ctx, &profile)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get profile",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return &profile, nil
}
