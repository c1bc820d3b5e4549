package models

import "time"

// Note is the single sticky note. Only one row exists; saving replaces it.
type Note struct {
	Body      string    `json:"body"`
	UpdatedAt time.Time `json:"updated_at"`
}
