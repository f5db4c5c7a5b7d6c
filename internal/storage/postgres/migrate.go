package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		name TEXT NOT NULL,
		profile_pic_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_idx ON users (lower(email))`,

	`CREATE TABLE IF NOT EXISTS profiles (
		user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		role TEXT NOT NULL CHECK (role IN ('candidate', 'recruiter')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS companies (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		logo_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS companies_name_idx ON companies (lower(name))`,

	`CREATE TABLE IF NOT EXISTS jobs (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		location TEXT NOT NULL,
		requirements TEXT NOT NULL DEFAULT '',
		is_open BOOLEAN NOT NULL DEFAULT TRUE,
		company_id UUID NOT NULL REFERENCES companies(id),
		recruiter_id UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS jobs_recruiter_idx ON jobs (recruiter_id)`,
	`CREATE INDEX IF NOT EXISTS jobs_company_idx ON jobs (company_id)`,

	`CREATE TABLE IF NOT EXISTS applications (
		id UUID PRIMARY KEY,
		job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		candidate_id UUID NOT NULL REFERENCES users(id),
		name TEXT NOT NULL,
		education TEXT NOT NULL,
		experience INT NOT NULL DEFAULT 0,
		skills TEXT NOT NULL DEFAULT '',
		resume_url TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'applied',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (candidate_id, job_id)
	)`,

	`CREATE TABLE IF NOT EXISTS saved_jobs (
		id UUID PRIMARY KEY,
		job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		candidate_id UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (candidate_id, job_id)
	)`,
}

// Migrate applies the schema. Statements are idempotent, safe to run at
// every startup.
func (s *Store) Migrate(ctx context.Context) error {
	for i, stmt := range migrations {
		if _, err := s.conn.ExecContext(ctx, stmt); err != nil {
			s.logger.Error("migration failed",
				zap.Int("statement", i),
				zap.Error(err),
			)
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}

	s.logger.Info("migrations applied", zap.Int("statements", len(migrations)))
	return nil
}
