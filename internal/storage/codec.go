package storage

import (
	"encoding/json"
	"fmt"

	"daybook/internal/models"
)

// Recurrence configs and day-key lists are persisted as JSON columns so both
// backends share one document shape with the API.

func encodeConfig(cfg *models.RecurringConfig) (string, error) {
	if cfg == nil {
		return "", nil
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode recurring config: %w", err)
	}
	return string(raw), nil
}

func decodeConfig(raw string) (*models.RecurringConfig, error) {
	if raw == "" || raw == "null" {
		return nil, nil
	}
	var cfg models.RecurringConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode recurring config: %w", err)
	}
	return &cfg, nil
}

func encodeDays(days []string) (string, error) {
	if days == nil {
		days = []string{}
	}
	raw, err := json.Marshal(days)
	if err != nil {
		return "", fmt.Errorf("failed to encode day list: %w", err)
	}
	return string(raw), nil
}

func decodeDays(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var days []string
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		return nil, fmt.Errorf("failed to decode day list: %w", err)
	}
	if len(days) == 0 {
		return nil, nil
	}
	return days, nil
}
