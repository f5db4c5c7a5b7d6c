package models

import "time"

type User struct {
	ID            string    `db:"id" json:"id"`
	Email         string    `db:"email" json:"email"`
	PasswordHash  string    `db:"password_hash" json:"-"`
	Name          string    `db:"name" json:"name"`
	ProfilePicURL *string   `db:"profile_pic_url" json:"profile_pic_url,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Profile holds the role chosen at onboarding, one row per user.
type Profile struct {
	UserID    string    `db:"user_id" json:"user_id"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

const (
	RoleCandidate = "candidate"
	RoleRecruiter = "recruiter"
)

func IsValidRole(role string) bool {
	return role == RoleCandidate || role == RoleRecruiter
}
