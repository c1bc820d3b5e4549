package models

import "time"

type Journal struct {
	ID        string    `json:"id"`
	Day       string    `json:"day"` // YYYY-MM-DD
	Title     string    `json:"title,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
