package models

type College struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	District string `json:"district,omitempty"`
	State    string `json:"state"`
}
