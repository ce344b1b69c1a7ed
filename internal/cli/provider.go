package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/keyring"
	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/storage"
)

// Backend is a resolved storage provider plus the local directory used for
// logs and backups.
type Backend struct {
	Provider  storage.Provider
	ConfigDir string
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// DefaultConfigDir is where logs and backups live when storage is remote.
func DefaultConfigDir() (string, error) {
	return ExpandPath(filepath.Dir(constants.DefaultConfigPath))
}

// ResolveBackend picks the storage backend for a --config value.
//
// A postgres:// value is used directly and must not carry a password.
// When --config was left at its default, HABITKIT_DB_CONNECTION and then the
// OS keyring may supply a PostgreSQL connection string. Otherwise .db and
// .sqlite paths open SQLite and anything else is a JSON file.
func ResolveBackend(config string) (Backend, error) {
	if storage.IsPostgresConnString(config) {
		if storage.HasEmbeddedCredentials(config) {
			return Backend{}, fmt.Errorf("%w: use %s, the OS keyring ('habitkit keyring set') or .pgpass instead",
				storage.ErrEmbeddedCredentials, constants.EnvDBConnection)
		}
		return postgresBackend(config)
	}

	if config == "" || config == constants.DefaultConfigPath {
		if connStr := os.Getenv(constants.EnvDBConnection); connStr != "" {
			logger.Debug("Using connection string from environment", "var", constants.EnvDBConnection)
			return postgresBackend(connStr)
		}
		connStr, err := keyring.GetConnectionString()
		switch {
		case err == nil:
			logger.Debug("Using connection string from OS keyring")
			return postgresBackend(connStr)
		case errors.Is(err, keyring.ErrNotFound):
		default:
			logger.Debug("Keyring lookup failed", "error", err)
		}
		config = constants.DefaultConfigPath
	}

	path, err := ExpandPath(config)
	if err != nil {
		return Backend{}, err
	}

	var provider storage.Provider
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		provider = storage.NewSQLiteStore(path)
	default:
		provider = storage.NewJSONStore(path)
	}
	return Backend{Provider: provider, ConfigDir: filepath.Dir(path)}, nil
}

func postgresBackend(connStr string) (Backend, error) {
	if !storage.IsPostgresConnString(connStr) && !strings.Contains(connStr, "host=") {
		return Backend{}, storage.ErrInvalidConnectionString
	}
	dir, err := DefaultConfigDir()
	if err != nil {
		return Backend{}, err
	}
	return Backend{Provider: storage.NewPostgresStore(connStr), ConfigDir: dir}, nil
}
