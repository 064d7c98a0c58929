package models

import "time"

type Question struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Domain      string    `json:"domain"`
	CreatedAt   time.Time `json:"created_at"`

	Criteria []Criterion `json:"criteria,omitempty"`
}

type Criterion struct {
	ID         int    `json:"id"`
	QuestionID int    `json:"question_id"`
	Name       string `json:"name"`
	MaxScore   int    `json:"max_score"`
}

// DomainGroup is the grouped shape returned by the domain catalogue
// endpoint: one entry per distinct domain label, in first-appearance
// order.
type DomainGroup struct {
	Domain    string     `json:"domain"`
	Questions []Question `json:"questions"`
}
