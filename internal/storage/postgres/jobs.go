package postgres

import (
	"context"
	"fmt"
	"time"

	"hirehub/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

const jobColumns = `
	j.id, j.title, j.description, j.location, j.requirements, j.is_open,
	j.company_id, j.recruiter_id, j.created_at,
	c.name AS company_name, c.logo_url AS company_logo_url,
	(SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id) AS applicant_count
`

func (s *Store) CreateJob(ctx context.Context, tx *dbr.Tx, job *models.Job) error {
	_, err := tx.
		InsertInto("jobs").
		Columns("id", "title", "description", "location", "requirements",
			"is_open", "company_id", "recruiter_id", "created_at").
		Values(job.ID, job.Title, job.Description, job.Location, job.Requirements,
			job.IsOpen, job.CompanyID, job.RecruiterID, time.Now()).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to create job",
			zap.String("title", job.Title),
			zap.String("recruiter_id", job.RecruiterID),
			zap.Error(err),
		)
		return fmt.Errorf("create job: %w", err)
	}

	s.logger.Info("job created",
		zap.String("job_id", job.ID),
		zap.String("title", job.Title),
		zap.String("recruiter_id", job.RecruiterID),
	)

	return nil
}

const listJobsQuery = "SELECT " + jobColumns + `,
	CASE WHEN ? = '' THEN FALSE ELSE EXISTS (
		SELECT 1 FROM saved_jobs sj
		WHERE sj.job_id = j.id AND sj.candidate_id::text = ?
	) END AS saved
	FROM jobs j
	JOIN companies c ON c.id = j.company_id
	WHERE (? = '' OR j.title ILIKE '%' || ? || '%')
	AND (? = '' OR j.location ILIKE '%' || ? || '%')
	AND (? = '' OR c.name = ?)
	AND (? = '' OR j.recruiter_id::text = ?)
	ORDER BY j.created_at DESC
`

// ListJobs applies the whole filter set in one query: case-insensitive
// substring match on title and location, exact match on company name, and
// an optional recruiter restriction for the my-jobs view. When viewerID is
// non-empty each row carries the viewer's saved flag.
func (s *Store) ListJobs(ctx context.Context, filter models.JobFilter, viewerID string) ([]models.JobWithCompany, error) {
	stmt := s.sess.
		SelectBySql(listJobsQuery,
			viewerID, viewerID,
			filter.Title, filter.Title,
			filter.Location, filter.Location,
			filter.Company, filter.Company,
			filter.RecruiterID, filter.RecruiterID,
		)

	var jobs []models.JobWithCompany
	if _, err := stmt.LoadContext(ctx, &jobs); err != nil {
		s.logger.Error("failed to list jobs",
			zap.String("title", filter.Title),
			zap.String("location", filter.Location),
			zap.String("company", filter.Company),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	return jobs, nil
}

const getJobQuery = "SELECT " + jobColumns + `,
	CASE WHEN ? = '' THEN FALSE ELSE EXISTS (
		SELECT 1 FROM saved_jobs sj
		WHERE sj.job_id = j.id AND sj.candidate_id::text = ?
	) END AS saved
	FROM jobs j
	JOIN companies c ON c.id = j.company_id
	WHERE j.id = ?
`

func (s *Store) GetJob(ctx context.Context, jobID, viewerID string) (*models.JobWithCompany, error) {
	var job models.JobWithCompany

	err := s.sess.
		SelectBySql(getJobQuery, viewerID, viewerID, jobID).
		LoadOneContext(ctx, &job)

	if err == dbr.ErrNotFound {
		return nil, ErrNotFound
	}

	if err != nil {
		s.logger.Error("failed to get job",
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get job: %w", err)
	}

	return &job, nil
}

// SetHiringStatus toggles is_open. The recruiter id is part of the WHERE
// clause, so a non-owner update touches zero rows and reports ErrNotOwner.
func (s *Store) SetHiringStatus(ctx context.Context, jobID, recruiterID string, isOpen bool) error {
	result, err := s.sess.
		Update("jobs").
		Set("is_open", isOpen).
		Where("id = ? AND recruiter_id = ?", jobID, recruiterID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to set hiring status",
			zap.String("job_id", jobID),
			zap.Bool("is_open", isOpen),
			zap.Error(err),
		)
		return fmt.Errorf("set hiring status: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotOwner
	}

	s.logger.Info("hiring status updated",
		zap.String("job_id", jobID),
		zap.Bool("is_open", isOpen),
	)

	return nil
}

func (s *Store) DeleteJob(ctx context.Context, jobID, recruiterID string) error {
	result, err := s.sess.
		DeleteFrom("jobs").
		Where("id = ? AND recruiter_id = ?", jobID, recruiterID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to delete job",
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return fmt.Errorf("delete job: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotOwner
	}

	s.logger.Info("job deleted",
		zap.String("job_id", jobID),
		zap.String("recruiter_id", recruiterID),
	)

	return nil
}
