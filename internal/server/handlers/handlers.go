package handlers

import (
	"context"
	"io"

	"hirehub/internal/auth"
	"hirehub/internal/jobs"
	"hirehub/internal/models"

	"go.uber.org/zap"
)

// AuthService is the slice of the auth layer the handlers need.
type AuthService interface {
	SignUp(ctx context.Context, in auth.SignUpInput) (*models.User, string, error)
	SignIn(ctx context.Context, email, password string) (*models.User, string, error)
	SignOut(ctx context.Context, token string) error
	SetRole(ctx context.Context, userID, role string) error
}

// JobService is the slice of the jobs layer the handlers need.
type JobService interface {
	List(ctx context.Context, filter models.JobFilter, viewerID string) ([]models.JobWithCompany, error)
	Get(ctx context.Context, jobID, viewerID string, viewerIsRecruiter bool) (*jobs.Detail, error)
	Post(ctx context.Context, recruiterID string, in jobs.PostInput) (*models.Job, error)
	AddCompany(ctx context.Context, recruiterID, name string, logo io.Reader) (*models.Company, error)
	Companies(ctx context.Context) ([]models.Company, error)
	Apply(ctx context.Context, candidateID, jobID string, in jobs.ApplyInput) (*models.Application, error)
	SetHiringStatus(ctx context.Context, jobID, recruiterID string, isOpen bool) error
	SetApplicationStatus(ctx context.Context, appID, recruiterID, status string) error
	Delete(ctx context.Context, jobID, recruiterID string) error
	Applications(ctx context.Context, jobID, recruiterID string) ([]models.Application, error)
	MyPostings(ctx context.Context, recruiterID string, filter models.JobFilter) ([]models.JobWithCompany, error)
	MyApplications(ctx context.Context, candidateID string) ([]models.ApplicationWithJob, error)
	Save(ctx context.Context, candidateID, jobID string) error
	Unsave(ctx context.Context, candidateID, jobID string) error
	SavedJobs(ctx context.Context, candidateID string) ([]models.JobWithCompany, error)
}

type Handler struct {
	auth      AuthService
	jobs      JobService
	maxUpload int64
	logger    *zap.Logger
}

func New(authSvc AuthService, jobSvc JobService, maxUpload int64, logger *zap.Logger) *Handler {
	return &Handler{
		auth:      authSvc,
		jobs:      jobSvc,
		maxUpload: maxUpload,
		logger:    logger,
	}
}
