package models

import "time"

type Application struct {
	ID          string    `db:"id" json:"id"`
	JobID       string    `db:"job_id" json:"job_id"`
	CandidateID string    `db:"candidate_id" json:"candidate_id"`
	Name        string    `db:"name" json:"name"`
	Education   string    `db:"education" json:"education"`
	Experience  int       `db:"experience" json:"experience"`
	Skills      string    `db:"skills" json:"skills"`
	ResumeURL   string    `db:"resume_url" json:"resume_url"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ApplicationWithJob is the candidate "my jobs" row: application columns
// plus the applied-to job and its company.
type ApplicationWithJob struct {
	Application
	JobTitle    string `db:"job_title" json:"job_title"`
	JobLocation string `db:"job_location" json:"job_location"`
	CompanyName string `db:"company_name" json:"company_name"`
}

type SavedJob struct {
	ID          string    `db:"id" json:"id"`
	JobID       string    `db:"job_id" json:"job_id"`
	CandidateID string    `db:"candidate_id" json:"candidate_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

const (
	StatusApplied      = "applied"
	StatusInterviewing = "interviewing"
	StatusHired        = "hired"
	StatusRejected     = "rejected"
)

const (
	EducationIntermediate = "Intermediate"
	EducationGraduate     = "Graduate"
	EducationPostGraduate = "Post-Graduate"
)

func IsValidEducation(education string) bool {
	switch education {
	case EducationIntermediate, EducationGraduate, EducationPostGraduate:
		return true
	}
	return false
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusApplied, StatusInterviewing, StatusHired, StatusRejected:
		return true
	}
	return false
}
