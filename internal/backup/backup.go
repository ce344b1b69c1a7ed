package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/storage"
)

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
	Malformed bool // quarantined unparsable document, not restorable
}

// Manager snapshots the document slot to timestamped files
type Manager struct {
	provider  storage.Provider
	key       string
	backupDir string
}

// NewManager creates a new backup manager writing into backupDir
func NewManager(provider storage.Provider, backupDir string) *Manager {
	return &Manager{
		provider:  provider,
		key:       constants.StorageKey,
		backupDir: backupDir,
	}
}

// DefaultBackupDir returns the backups directory next to a storage file
func DefaultBackupDir(configDir string) string {
	return filepath.Join(configDir, constants.BackupDirName)
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

func (m *Manager) ensureBackupDir() error {
	return os.MkdirAll(m.backupDir, 0700)
}

// CreateBackup writes the current document to a new backup file
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

// skipRotation prevents a restore from rotating away the backup it is
// restoring from
func (m *Manager) createBackup(skipRotation bool) (string, error) {
	raw, err := m.provider.Get(m.key)
	if errors.Is(err, storage.ErrNotFound) {
		return "", fmt.Errorf("no document to back up")
	}
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}

	path, err := m.writeSnapshot(constants.BackupFilePrefix, raw)
	if err != nil {
		return "", err
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	return path, nil
}

// Quarantine keeps a copy of an unparsable document before it is replaced
func (m *Manager) Quarantine(raw string) (string, error) {
	path, err := m.writeSnapshot(constants.MalformedBackupPrefix, raw)
	if err != nil {
		return "", err
	}
	logger.Warn("Quarantined malformed document", "path", path)
	return path, nil
}

func (m *Manager) writeSnapshot(prefix, raw string) (string, error) {
	if err := m.ensureBackupDir(); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path, err := m.uniquePath(prefix)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(raw), 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	return path, nil
}

// uniquePath picks a timestamped name, falling back to seconds precision and
// then a counter when names collide
func (m *Manager) uniquePath(prefix string) (string, error) {
	now := time.Now()
	name := func(ts string) string {
		return filepath.Join(m.backupDir, prefix+ts+constants.BackupFileSuffix)
	}

	path := name(now.Format(constants.BackupTimestampFormat))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}

	timestamp := now.Format(constants.BackupTimestampSeconds)
	path = name(timestamp)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = name(fmt.Sprintf("%s-%d", timestamp, counter))
	}
}

// parseTimestamp extracts the timestamp from a backup file name, ignoring a
// trailing collision counter
func parseTimestamp(stem string) (time.Time, bool) {
	parts := strings.Split(stem, "-")
	if len(parts) > 2 {
		last := parts[len(parts)-1]
		if len(last) != 4 && len(last) != 6 && isDigits(last) {
			stem = strings.Join(parts[:len(parts)-1], "-")
		}
	}

	if t, err := time.ParseInLocation(constants.BackupTimestampFormat, stem, time.Local); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(constants.BackupTimestampSeconds, stem, time.Local); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ListBackups returns all backups, newest first
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, constants.BackupFileSuffix) {
			continue
		}

		var stem string
		malformed := false
		switch {
		case strings.HasPrefix(name, constants.MalformedBackupPrefix):
			stem = strings.TrimPrefix(name, constants.MalformedBackupPrefix)
			malformed = true
		case strings.HasPrefix(name, constants.BackupFilePrefix):
			stem = strings.TrimPrefix(name, constants.BackupFilePrefix)
		default:
			continue
		}
		stem = strings.TrimSuffix(stem, constants.BackupFileSuffix)

		timestamp, ok := parseTimestamp(stem)
		if !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, name),
			Timestamp: timestamp,
			Size:      info.Size(),
			Malformed: malformed,
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// rotateBackups removes regular backups beyond the retention limit.
// Quarantined documents are left for the user to inspect.
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	kept := 0
	for _, b := range backups {
		if b.Malformed {
			continue
		}
		kept++
		if kept <= constants.MaxBackups {
			continue
		}
		if err := os.Remove(b.Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", b.Path, err)
		}
	}

	return nil
}

// RestoreBackup replaces the document with a backup file's contents. The
// current document is backed up first.
func (m *Manager) RestoreBackup(backupPath string) error {
	data, err := os.ReadFile(backupPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	if err := verifyBackup(data); err != nil {
		return fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	if _, err := m.provider.Get(m.key); err == nil {
		current, err := m.createBackup(true)
		if err != nil {
			return fmt.Errorf("failed to backup current document before restore: %w", err)
		}
		logger.Info("Backed up current document before restore", "path", current)
	}

	if err := m.provider.Set(m.key, string(data)); err != nil {
		return fmt.Errorf("failed to restore document: %w", err)
	}

	return nil
}

func verifyBackup(data []byte) error {
	var doc models.AppDocument
	return json.Unmarshal(data, &doc)
}
