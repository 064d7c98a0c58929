package models

import "time"

// TeamStatus mirrors the ENUM in the teams table.
type TeamStatus string

const (
	TeamStatusPending   TeamStatus = "pending"
	TeamStatusActive    TeamStatus = "active"
	TeamStatusCompleted TeamStatus = "completed"
	TeamStatusInactive  TeamStatus = "inactive"
)

type Team struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Capacity      int        `json:"capacity"`
	CoordinatorID int        `json:"coordinator_id"`
	QuestionID    *int       `json:"question_id,omitempty"`
	RepoURL       string     `json:"repo_url,omitempty"`
	Status        TeamStatus `json:"status"`
	HackathonID   *int       `json:"hackathon_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`

	Coordinator *User     `json:"coordinator,omitempty"`
	Question    *Question `json:"question,omitempty"`
	Members     []User    `json:"members,omitempty"`

	LogoKey *string `json:"-"`
	LogoURL *string `json:"logo_url,omitempty"`
}

// TeamSummary is the read-time join shape returned by team listings:
// references resolved to display fields only, never full records.
type TeamSummary struct {
	ID              int        `json:"id"`
	Name            string     `json:"name"`
	Capacity        int        `json:"capacity"`
	Status          TeamStatus `json:"status"`
	RepoURL         string     `json:"repo_url,omitempty"`
	CoordinatorName string     `json:"coordinator_name"`
	QuestionTitle   string     `json:"question_title,omitempty"`
	MemberNames     []string   `json:"member_names"`
}
