package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/storage"
)

const sampleDoc = `{"habits":[{"id":"h1","name":"Read","icon":"📚","createdAt":"2024-01-01T00:00:00Z","completedDates":["2024-01-01"]}],"uniqueId":"u1","username":"Sam","hasCompletedOnboarding":true,"claimedChallenges":[]}`

func setupTestManager(t *testing.T) (*Manager, *storage.JSONStore) {
	t.Helper()
	dir := t.TempDir()
	provider := storage.NewJSONStore(filepath.Join(dir, "habitkit.json"))
	if err := provider.Init(); err != nil {
		t.Fatalf("failed to init provider: %v", err)
	}
	return NewManager(provider, DefaultBackupDir(dir)), provider
}

func TestCreateBackup(t *testing.T) {
	mgr, provider := setupTestManager(t)
	if err := provider.Set(constants.StorageKey, sampleDoc); err != nil {
		t.Fatalf("failed to seed document: %v", err)
	}

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	data, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("backup file was not created: %v", err)
	}
	if string(data) != sampleDoc {
		t.Errorf("backup contents mismatch: %s", data)
	}
	if !strings.HasPrefix(filepath.Base(backupPath), constants.BackupFilePrefix) {
		t.Errorf("unexpected backup name: %s", backupPath)
	}
}

func TestCreateBackupWithoutDocument(t *testing.T) {
	mgr, _ := setupTestManager(t)
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected error backing up an empty slot")
	}
}

func TestCreateBackupNameCollision(t *testing.T) {
	mgr, provider := setupTestManager(t)
	provider.Set(constants.StorageKey, sampleDoc)

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		path, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup %d failed: %v", i, err)
		}
		if seen[path] {
			t.Fatalf("backup path reused: %s", path)
		}
		seen[path] = true
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Errorf("expected 3 backups, got %d", len(backups))
	}
}

func TestListBackupsSorted(t *testing.T) {
	mgr, _ := setupTestManager(t)
	if err := os.MkdirAll(mgr.GetBackupDir(), 0700); err != nil {
		t.Fatalf("failed to create backup dir: %v", err)
	}

	names := []string{
		"habitkit-20240101-0900.json",
		"habitkit-20240103-0900.json",
		"habitkit-20240102-090000-2.json",
		"habitkit-malformed-20240104-1000.json",
		"habitkit-garbage.json",
		"notes.txt",
	}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), n), []byte(sampleDoc), 0600); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 4 {
		t.Fatalf("expected 4 backups, got %d", len(backups))
	}

	want := []string{
		"habitkit-malformed-20240104-1000.json",
		"habitkit-20240103-0900.json",
		"habitkit-20240102-090000-2.json",
		"habitkit-20240101-0900.json",
	}
	for i, b := range backups {
		if filepath.Base(b.Path) != want[i] {
			t.Errorf("backup %d = %s, want %s", i, filepath.Base(b.Path), want[i])
		}
	}
	if !backups[0].Malformed || backups[1].Malformed {
		t.Error("malformed flag not set correctly")
	}
	if backups[2].Timestamp.Day() != 2 {
		t.Errorf("counter suffix not stripped: %v", backups[2].Timestamp)
	}
}

func TestListBackupsMissingDir(t *testing.T) {
	mgr, _ := setupTestManager(t)
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}
}

func TestRotateBackups(t *testing.T) {
	mgr, provider := setupTestManager(t)
	provider.Set(constants.StorageKey, sampleDoc)
	os.MkdirAll(mgr.GetBackupDir(), 0700)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	for i := 0; i < constants.MaxBackups+3; i++ {
		name := constants.BackupFilePrefix + base.AddDate(0, 0, i).Format(constants.BackupTimestampFormat) + constants.BackupFileSuffix
		os.WriteFile(filepath.Join(mgr.GetBackupDir(), name), []byte(sampleDoc), 0600)
	}
	quarantined := filepath.Join(mgr.GetBackupDir(), constants.MalformedBackupPrefix+"20230101-0000.json")
	os.WriteFile(quarantined, []byte("{{"), 0600)

	if err := mgr.rotateBackups(); err != nil {
		t.Fatalf("rotateBackups failed: %v", err)
	}

	backups, _ := mgr.ListBackups()
	regular := 0
	for _, b := range backups {
		if !b.Malformed {
			regular++
		}
	}
	if regular != constants.MaxBackups {
		t.Errorf("expected %d regular backups after rotation, got %d", constants.MaxBackups, regular)
	}
	if _, err := os.Stat(quarantined); err != nil {
		t.Error("rotation must not remove quarantined documents")
	}

	oldest := filepath.Join(mgr.GetBackupDir(), "habitkit-20240101-0000.json")
	if _, err := os.Stat(oldest); !os.IsNotExist(err) {
		t.Error("expected oldest backup to be rotated out")
	}
}

func TestRestoreBackup(t *testing.T) {
	mgr, provider := setupTestManager(t)
	provider.Set(constants.StorageKey, sampleDoc)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	changed := strings.Replace(sampleDoc, `"Sam"`, `"Alex"`, 1)
	provider.Set(constants.StorageKey, changed)

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	got, _ := provider.Get(constants.StorageKey)
	if got != sampleDoc {
		t.Errorf("restored document mismatch: %s", got)
	}

	// The pre-restore document was saved too
	backups, _ := mgr.ListBackups()
	found := false
	for _, b := range backups {
		data, _ := os.ReadFile(b.Path)
		if string(data) == changed {
			found = true
		}
	}
	if !found {
		t.Error("expected a backup of the document that was replaced")
	}
}

func TestRestoreBackupInvalid(t *testing.T) {
	mgr, provider := setupTestManager(t)
	provider.Set(constants.StorageKey, sampleDoc)

	bad := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(bad, []byte("not a document"), 0600)

	if err := mgr.RestoreBackup(bad); err == nil {
		t.Error("expected error restoring invalid backup")
	}
	if err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error restoring missing backup")
	}

	got, _ := provider.Get(constants.StorageKey)
	if got != sampleDoc {
		t.Error("document must be untouched after a failed restore")
	}
}

func TestQuarantine(t *testing.T) {
	mgr, _ := setupTestManager(t)

	path, err := mgr.Quarantine("{{broken")
	if err != nil {
		t.Fatalf("Quarantine failed: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), constants.MalformedBackupPrefix) {
		t.Errorf("unexpected quarantine name: %s", path)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "{{broken" {
		t.Errorf("quarantined contents mismatch: %q", data)
	}
}
