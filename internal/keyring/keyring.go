// Package keyring keeps the PostgreSQL connection string for habitkit's
// remote storage in the OS credential store, so it never has to appear in
// --config or shell history.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/habitkit/internal/constants"
)

var (
	ErrNotFound           = errors.New("no PostgreSQL connection string in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetConnectionString returns the stored connection string. Any failure other
// than a missing entry is reported as ErrKeyringUnavailable.
func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.KeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// SetConnectionString replaces the stored connection string.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.KeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}
	return nil
}

// DeleteConnectionString removes the entry, returning ErrNotFound if there
// was none.
func DeleteConnectionString() error {
	err := keyring.Delete(constants.AppName, constants.KeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}
	return nil
}

// IsAvailable reports whether the OS keyring answers a lookup. A missing
// entry still counts as available.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, constants.KeyringUser)
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
