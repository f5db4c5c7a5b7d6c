// Package jobs is the business layer for postings, applications and saved
// jobs. It is transport-agnostic: used by the HTTP handlers (server package).
package jobs

import (
	"context"
	"errors"
	"fmt"
	"io"

	"hirehub/internal/models"
	"hirehub/internal/storage/blob"
	"hirehub/internal/storage/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrJobClosed           = errors.New("job is closed for applications")
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrNotOwner            = errors.New("not the owning recruiter")
	ErrAlreadyApplied      = errors.New("already applied to this job")
	ErrCompanyExists       = errors.New("company already exists")
)

type Service struct {
	store  *postgres.Store
	blobs  *blob.Store
	logger *zap.Logger
}

func New(store *postgres.Store, blobs *blob.Store, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		blobs:  blobs,
		logger: logger,
	}
}

// Detail is the job page payload. Applications is populated only for the
// owning recruiter; HasApplied only for a signed-in non-recruiter.
type Detail struct {
	models.JobWithCompany
	HasApplied   bool                 `json:"has_applied"`
	Applications []models.Application `json:"applications,omitempty"`
}

type PostInput struct {
	Title        string
	Description  string
	Location     string
	Company      string
	Requirements string
}

type ApplyInput struct {
	Name       string
	Education  string
	Experience int
	Skills     string
	Resume     io.Reader
}

func (s *Service) List(ctx context.Context, filter models.JobFilter, viewerID string) ([]models.JobWithCompany, error) {
	return s.store.ListJobs(ctx, filter, viewerID)
}

func (s *Service) Get(ctx context.Context, jobID, viewerID string, viewerIsRecruiter bool) (*Detail, error) {
	job, err := s.store.GetJob(ctx, jobID, viewerID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	detail := &Detail{JobWithCompany: *job}

	if viewerID == "" {
		return detail, nil
	}

	if viewerIsRecruiter {
		if job.RecruiterID == viewerID {
			apps, err := s.store.ListApplicationsByJob(ctx, jobID)
			if err != nil {
				return nil, err
			}
			detail.Applications = apps
		}
		return detail, nil
	}

	applied, err := s.store.HasApplied(ctx, viewerID, jobID)
	if err != nil {
		return nil, err
	}
	detail.HasApplied = applied

	return detail, nil
}

// Post resolves the company and inserts the job in one transaction, so a
// half-posted job can never leave a dangling first-time company behind.
func (s *Service) Post(ctx context.Context, recruiterID string, in PostInput) (*models.Job, error) {
	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.RollbackUnlessCommitted()

	companyID, err := s.store.ResolveCompany(ctx, tx, in.Company)
	if err != nil {
		return nil, err
	}

	job := &models.Job{
		ID:           uuid.NewString(),
		Title:        in.Title,
		Description:  in.Description,
		Location:     in.Location,
		Requirements: in.Requirements,
		IsOpen:       true,
		CompanyID:    companyID,
		RecruiterID:  recruiterID,
	}

	if err := s.store.CreateJob(ctx, tx, job); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit post job: %w", err)
	}

	return job, nil
}

// AddCompany stores the logo, then the row. A failed insert deletes the
// uploaded logo again.
func (s *Service) AddCompany(ctx context.Context, recruiterID, name string, logo io.Reader) (*models.Company, error) {
	logoName := blob.LogoName(recruiterID)
	logoURL, err := s.blobs.Save(blob.BucketCompanyLogos, logoName, logo)
	if err != nil {
		return nil, fmt.Errorf("store company logo: %w", err)
	}

	company := &models.Company{
		ID:      uuid.NewString(),
		Name:    name,
		LogoURL: &logoURL,
	}

	if err := s.store.CreateCompany(ctx, company); err != nil {
		if delErr := s.blobs.Delete(blob.BucketCompanyLogos, logoName); delErr != nil {
			s.logger.Warn("failed to clean up company logo",
				zap.String("name", logoName),
				zap.Error(delErr),
			)
		}
		if errors.Is(err, postgres.ErrCompanyExists) {
			return nil, ErrCompanyExists
		}
		return nil, err
	}

	return company, nil
}

func (s *Service) Companies(ctx context.Context) ([]models.Company, error) {
	return s.store.ListCompanies(ctx)
}

// Apply uploads the resume and inserts the application. The unique
// constraint stops a double apply even when two submissions race past the
// has-applied check; the loser's resume upload is deleted.
func (s *Service) Apply(ctx context.Context, candidateID, jobID string, in ApplyInput) (*models.Application, error) {
	job, err := s.store.GetJob(ctx, jobID, candidateID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	if !job.IsOpen {
		return nil, ErrJobClosed
	}

	if !models.IsValidEducation(in.Education) {
		return nil, fmt.Errorf("invalid education: %s", in.Education)
	}

	resumeName := blob.ResumeName(candidateID)
	resumeURL, err := s.blobs.Save(blob.BucketResumes, resumeName, in.Resume)
	if err != nil {
		return nil, fmt.Errorf("store resume: %w", err)
	}

	app := &models.Application{
		ID:          uuid.NewString(),
		JobID:       jobID,
		CandidateID: candidateID,
		Name:        in.Name,
		Education:   in.Education,
		Experience:  in.Experience,
		Skills:      in.Skills,
		ResumeURL:   resumeURL,
		Status:      models.StatusApplied,
	}

	if err := s.store.CreateApplication(ctx, app); err != nil {
		if delErr := s.blobs.Delete(blob.BucketResumes, resumeName); delErr != nil {
			s.logger.Warn("failed to clean up resume",
				zap.String("name", resumeName),
				zap.Error(delErr),
			)
		}
		if errors.Is(err, postgres.ErrAlreadyApplied) {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}

	return app, nil
}

func (s *Service) SetHiringStatus(ctx context.Context, jobID, recruiterID string, isOpen bool) error {
	err := s.store.SetHiringStatus(ctx, jobID, recruiterID, isOpen)
	if errors.Is(err, postgres.ErrNotOwner) {
		return ErrNotOwner
	}
	return err
}

func (s *Service) Delete(ctx context.Context, jobID, recruiterID string) error {
	err := s.store.DeleteJob(ctx, jobID, recruiterID)
	if errors.Is(err, postgres.ErrNotOwner) {
		return ErrNotOwner
	}
	return err
}

// Applications returns the applicants for a job, owner only.
func (s *Service) Applications(ctx context.Context, jobID, recruiterID string) ([]models.Application, error) {
	job, err := s.store.GetJob(ctx, jobID, "")
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	if job.RecruiterID != recruiterID {
		return nil, ErrNotOwner
	}

	return s.store.ListApplicationsByJob(ctx, jobID)
}

// SetApplicationStatus moves an applicant through the pipeline. The store
// query is scoped to the recruiter's own jobs, so a non-owner update finds
// no row.
func (s *Service) SetApplicationStatus(ctx context.Context, appID, recruiterID, status string) error {
	if !models.IsValidStatus(status) {
		return fmt.Errorf("invalid status: %s", status)
	}

	err := s.store.UpdateApplicationStatus(ctx, appID, recruiterID, status)
	if errors.Is(err, postgres.ErrNotFound) {
		return ErrApplicationNotFound
	}
	return err
}

// MyPostings is the recruiter side of the my-jobs view, with the same
// filter set as the public listing.
func (s *Service) MyPostings(ctx context.Context, recruiterID string, filter models.JobFilter) ([]models.JobWithCompany, error) {
	filter.RecruiterID = recruiterID
	return s.store.ListJobs(ctx, filter, "")
}

// MyApplications is the candidate side of the my-jobs view.
func (s *Service) MyApplications(ctx context.Context, candidateID string) ([]models.ApplicationWithJob, error) {
	return s.store.ListApplicationsByCandidate(ctx, candidateID)
}

func (s *Service) Save(ctx context.Context, candidateID, jobID string) error {
	err := s.store.SaveJob(ctx, candidateID, jobID)
	if errors.Is(err, postgres.ErrAlreadySaved) {
		// saving twice is a no-op from the caller's perspective
		return nil
	}
	return err
}

func (s *Service) Unsave(ctx context.Context, candidateID, jobID string) error {
	err := s.store.UnsaveJob(ctx, candidateID, jobID)
	if errors.Is(err, postgres.ErrNotFound) {
		return nil
	}
	return err
}

func (s *Service) SavedJobs(ctx context.Context, candidateID string) ([]models.JobWithCompany, error) {
	return s.store.ListSavedJobs(ctx, candidateID)
}
