package postgres

import (
	"context"
	"fmt"

	"hirehub/internal/models"

	"go.uber.org/zap"
)

const createApplicationQuery = `
	INSERT INTO applications (
		id, job_id, candidate_id, name, education, experience,
		skills, resume_url, status, created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	ON CONFLICT (candidate_id, job_id) DO NOTHING
`

// CreateApplication inserts the row relying on the (candidate_id, job_id)
// unique constraint. The SPA-era duplicate pre-check is only a fast path;
// this is where doubles are actually stopped.
func (s *Store) CreateApplication(ctx context.Context, app *models.Application) error {
	result, err := s.sess.
		InsertBySql(createApplicationQuery,
			app.ID, app.JobID, app.CandidateID, app.Name, app.Education,
			app.Experience, app.Skills, app.ResumeURL, app.Status,
		).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to create application",
			zap.String("job_id", app.JobID),
			zap.String("candidate_id", app.CandidateID),
			zap.Error(err),
		)
		return fmt.Errorf("create application: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrAlreadyApplied
	}

	s.logger.Info("application created",
		zap.String("application_id", app.ID),
		zap.String("job_id", app.JobID),
		zap.String("candidate_id", app.CandidateID),
	)

	return nil
}

func (s *Store) HasApplied(ctx context.Context, candidateID, jobID string) (bool, error) {
	var count int

	err := s.sess.
		Select("COUNT(*)").
		From("applications").
		Where("candidate_id = ? AND job_id = ?", candidateID, jobID).
		LoadOneContext(ctx, &count)

	if err != nil {
		s.logger.Error("failed to check application",
			zap.String("candidate_id", candidateID),
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return false, fmt.Errorf("has applied: %w", err)
	}

	return count > 0, nil
}

func (s *Store) ListApplicationsByJob(ctx context.Context, jobID string) ([]models.Application, error) {
	var apps []models.Application

	_, err := s.sess.
		Select("*").
		From("applications").
		Where("job_id = ?", jobID).
		OrderBy("created_at DESC").
		LoadContext(ctx, &apps)

	if err != nil {
		s.logger.Error("failed to list applications by job",
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list applications by job: %w", err)
	}

	return apps, nil
}

const listApplicationsByCandidateQuery = `
	SELECT a.*,
		j.title AS job_title, j.location AS job_location,
		c.name AS company_name
	FROM applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN companies c ON c.id = j.company_id
	WHERE a.candidate_id = ?
	ORDER BY a.created_at DESC
`

func (s *Store) ListApplicationsByCandidate(ctx context.Context, candidateID string) ([]models.ApplicationWithJob, error) {
	var apps []models.ApplicationWithJob

	_, err := s.sess.
		SelectBySql(listApplicationsByCandidateQuery, candidateID).
		LoadContext(ctx, &apps)

	if err != nil {
		s.logger.Error("failed to list applications by candidate",
			zap.String("candidate_id", candidateID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list applications by candidate: %w", err)
	}

	return apps, nil
}

// UpdateApplicationStatus is scoped to the recruiter owning the job, so a
// non-owner update touches zero rows and reports ErrNotFound.
func (s *Store) UpdateApplicationStatus(ctx context.Context, appID, recruiterID, status string) error {
	result, err := s.sess.
		Update("applications").
		Set("status", status).
		Where("id = ? AND job_id IN (SELECT id FROM jobs WHERE recruiter_id = ?)", appID, recruiterID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update application status",
			zap.String("application_id", appID),
			zap.String("status", status),
			zap.Error(err),
		)
		return fmt.Errorf("update application status: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}

	s.logger.Info("application status updated",
		zap.String("application_id", appID),
		zap.String("status", status),
	)

	return nil
}
