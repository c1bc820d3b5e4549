// Package keyring stores the API access PIN in the OS keyring so it never
// needs to live in shell history or env files.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"daybook/internal/constants"
)

var (
	// ErrNotFound is returned when no PIN is stored in the keyring
	ErrNotFound = errors.New("PIN not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetPin retrieves the access PIN from the OS keyring.
func GetPin() (string, error) {
	pin, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return pin, nil
}

// SetPin stores the access PIN in the OS keyring.
func SetPin(pin string) error {
	if pin == "" {
		return errors.New("PIN cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, pin); err != nil {
		return fmt.Errorf("failed to store PIN in keyring: %w", err)
	}
	return nil
}

// DeletePin removes the access PIN from the OS keyring.
func DeletePin() error {
	err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete PIN from keyring: %w", err)
	}
	return nil
}
