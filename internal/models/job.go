package models

import "time"

type Company struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	LogoURL   *string   `db:"logo_url" json:"logo_url,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Job struct {
	ID           string    `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Description  string    `db:"description" json:"description"`
	Location     string    `db:"location" json:"location"`
	Requirements string    `db:"requirements" json:"requirements"`
	IsOpen       bool      `db:"is_open" json:"is_open"`
	CompanyID    string    `db:"company_id" json:"company_id"`
	RecruiterID  string    `db:"recruiter_id" json:"recruiter_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// JobWithCompany is the listing/detail row: job columns plus the joined
// company and per-viewer signals.
type JobWithCompany struct {
	Job
	CompanyName    string  `db:"company_name" json:"company_name"`
	CompanyLogoURL *string `db:"company_logo_url" json:"company_logo_url,omitempty"`
	ApplicantCount int     `db:"applicant_count" json:"applicant_count"`
	Saved          bool    `db:"saved" json:"saved"`
}

// JobFilter narrows ListJobs. Title and Location are case-insensitive
// substring matches, Company is an exact name match.
type JobFilter struct {
	Title       string
	Location    string
	Company     string
	RecruiterID string
}
