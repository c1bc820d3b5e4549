package models

import "time"

// KcalEntry is one day's calorie intake and optional weight measurement.
type KcalEntry struct {
	ID        string    `json:"id"`
	Day       string    `json:"day"` // YYYY-MM-DD
	Kcal      int       `json:"kcal"`
	WeightKg  float64   `json:"weight_kg,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
