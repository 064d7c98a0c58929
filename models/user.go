package models

import "time"

// Role enumerates every role the system knows about. Both the role
// assignment endpoint and the authorization middleware validate against
// this single set.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleCoordinator Role = "coordinator"
	RoleParticipant Role = "participant"
	RoleEvaluator   Role = "evaluator"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCoordinator, RoleParticipant, RoleEvaluator:
		return true
	}
	return false
}

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone,omitempty"`
	CollegeID    *int      `json:"college_id,omitempty"`
	Role         Role      `json:"role"`
	TeamID       *int      `json:"team_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	College *College `json:"college,omitempty"`
	Team    *Team    `json:"team,omitempty"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
