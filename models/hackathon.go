package models

import "time"

type HackathonStatus string

const (
	HackathonStatusUpcoming  HackathonStatus = "upcoming"
	HackathonStatusActive    HackathonStatus = "active"
	HackathonStatusCompleted HackathonStatus = "completed"
)

type Hackathon struct {
	ID                   int             `json:"id"`
	Title                string          `json:"title"`
	StartDate            time.Time       `json:"start_date"`
	EndDate              time.Time       `json:"end_date"`
	RegistrationDeadline time.Time       `json:"registration_deadline"`
	Venue                string          `json:"venue"`
	Status               HackathonStatus `json:"status"`

	FirstPlaceTeamID  *int `json:"first_place_team_id,omitempty"`
	SecondPlaceTeamID *int `json:"second_place_team_id,omitempty"`
	ThirdPlaceTeamID  *int `json:"third_place_team_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	Teams []Team `json:"teams,omitempty"`

	BannerKey *string `json:"-"`
	BannerURL *string `json:"banner_url,omitempty"`
}

// IsOpen reports whether the hackathon still blocks creation of another
// one: its declared status says so, or its dates do and it was never
// closed out.
func (h Hackathon) IsOpen(now time.Time) bool {
	if h.Status == HackathonStatusUpcoming || h.Status == HackathonStatusActive {
		return true
	}
	return h.Status != HackathonStatusCompleted && !h.EndDate.Before(now)
}

// WinnerBoard is the public podium view of a completed hackathon, team
// references already resolved to names.
type WinnerBoard struct {
	HackathonID    int    `json:"hackathon_id"`
	HackathonTitle string `json:"hackathon_title"`
	FirstPlace     string `json:"first_place,omitempty"`
	SecondPlace    string `json:"second_place,omitempty"`
	ThirdPlace     string `json:"third_place,omitempty"`
}
