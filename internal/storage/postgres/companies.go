package postgres

import (
	"context"
	"fmt"
	"time"

	"hirehub/internal/models"

	"github.com/gocraft/dbr/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *Store) CreateCompany(ctx context.Context, company *models.Company) error {
	_, err := s.sess.
		InsertInto("companies").
		Columns("id", "name", "logo_url", "created_at").
		Values(company.ID, company.Name, company.LogoURL, time.Now()).
		ExecContext(ctx)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrCompanyExists
		}
		s.logger.Error("failed to create company",
			zap.String("name", company.Name),
			zap.Error(err),
		)
		return fmt.Errorf("create company: %w", err)
	}

	s.logger.Info("company created",
		zap.String("company_id", company.ID),
		zap.String("name", company.Name),
	)

	return nil
}

const resolveCompanyQuery = `
	INSERT INTO companies (id, name, created_at)
	VALUES (?, ?, NOW())
	ON CONFLICT (lower(name)) DO NOTHING
`

// ResolveCompany returns the id for the named company, inserting it inside
// the given transaction when it does not exist. The insert-or-reselect pair
// relies on the unique index on lower(name), so two concurrent first-time
// posts of the same name converge on one row.
func (s *Store) ResolveCompany(ctx context.Context, tx *dbr.Tx, name string) (string, error) {
	_, err := tx.
		InsertBySql(resolveCompanyQuery, uuid.NewString(), name).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to resolve company",
			zap.String("name", name),
			zap.Error(err),
		)
		return "", fmt.Errorf("resolve company insert: %w", err)
	}

	var id string
	err = tx.
		Select("id").
		From("companies").
		Where("lower(name) = lower(?)", name).
		LoadOneContext(ctx, &id)

	if err != nil {
		s.logger.Error("failed to load resolved company",
			zap.String("name", name),
			zap.Error(err),
		)
		return "", fmt.Errorf("resolve company select: %w", err)
	}

	return id, nil
}

func (s *Store) ListCompanies(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company

	_, err := s.sess.
		Select("*").
		From("companies").
		OrderBy("name").
		LoadContext(ctx, &companies)

	if err != nil {
		s.logger.Error("failed to list companies", zap.Error(err))
		return nil, fmt.Errorf("list companies: %w", err)
	}

	return companies, nil
}
