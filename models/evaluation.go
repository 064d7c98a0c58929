package models

import "time"

type Evaluation struct {
	ID          int `json:"id"`
	TeamID      int `json:"team_id"`
	HackathonID int `json:"hackathon_id"`
	QuestionID  int `json:"question_id"`

	ProblemUnderstanding  int `json:"problem_understanding"`
	DesignApproach        int `json:"design_approach"`
	ImplementationClarity int `json:"implementation_clarity"`
	CodeOrganizing        int `json:"code_organizing"`
	CodeReadability       int `json:"code_readability"`
	Completion            int `json:"completion"`
	Presentation          int `json:"presentation"`
	Usability             int `json:"usability"`

	// TotalScore is derived from the criterion scores, never accepted
	// from a client.
	TotalScore int `json:"total_score"`

	CreatedAt time.Time `json:"created_at"`
}

// Sum adds up the individual criterion scores.
func (e Evaluation) Sum() int {
	return e.ProblemUnderstanding +
		e.DesignApproach +
		e.ImplementationClarity +
		e.CodeOrganizing +
		e.CodeReadability +
		e.Completion +
		e.Presentation +
		e.Usability
}

// WinnerPosition enumerates the podium places.
type WinnerPosition string

const (
	PositionWinner      WinnerPosition = "Winner"
	Position1stRunnerUp WinnerPosition = "1st Runner-Up"
	Position2ndRunnerUp WinnerPosition = "2nd Runner-Up"
)

func (p WinnerPosition) Valid() bool {
	switch p {
	case PositionWinner, Position1stRunnerUp, Position2ndRunnerUp:
		return true
	}
	return false
}

type HackathonWinner struct {
	ID           int            `json:"id"`
	HackathonID  int            `json:"hackathon_id"`
	TeamID       int            `json:"team_id"`
	EvaluationID int            `json:"evaluation_id"`
	Position     WinnerPosition `json:"position"`
	CreatedAt    time.Time      `json:"created_at"`

	Hackathon *Hackathon `json:"hackathon,omitempty"`
	Team      *Team      `json:"team,omitempty"`
}
