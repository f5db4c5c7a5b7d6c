package postgres

import (
	"context"
	"fmt"

	"hirehub/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const saveJobQuery = `
	INSERT INTO saved_jobs (id, job_id, candidate_id, created_at)
	VALUES (?, ?, ?, NOW())
	ON CONFLICT (candidate_id, job_id) DO NOTHING
`

func (s *Store) SaveJob(ctx context.Context, candidateID, jobID string) error {
	result, err := s.sess.
		InsertBySql(saveJobQuery, uuid.NewString(), jobID, candidateID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to save job",
			zap.String("candidate_id", candidateID),
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return fmt.Errorf("save job: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrAlreadySaved
	}

	return nil
}

func (s *Store) UnsaveJob(ctx context.Context, candidateID, jobID string) error {
	result, err := s.sess.
		DeleteFrom("saved_jobs").
		Where("candidate_id = ? AND job_id = ?", candidateID, jobID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to unsave job",
			zap.String("candidate_id", candidateID),
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return fmt.Errorf("unsave job: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

const listSavedJobsQuery = "SELECT " + jobColumns + `, TRUE AS saved
	FROM saved_jobs sj
	JOIN jobs j ON j.id = sj.job_id
	JOIN companies c ON c.id = j.company_id
	WHERE sj.candidate_id = ?
	ORDER BY sj.created_at DESC
`

func (s *Store) ListSavedJobs(ctx context.Context, candidateID string) ([]models.JobWithCompany, error) {
	var jobs []models.JobWithCompany

	_, err := s.sess.
		SelectBySql(listSavedJobsQuery, candidateID).
		LoadContext(ctx, &jobs)

	if err != nil {
		s.logger.Error("failed to list saved jobs",
			zap.String("candidate_id", candidateID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list saved jobs: %w", err)
	}

	return jobs, nil
}
