package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sodam-app/sodam/internal/models"
	"github.com/sodam-app/sodam/internal/storage/jsonstore"
	"github.com/sodam-app/sodam/internal/storage/sqlite"
)

// setupTestDB creates an initialized sodam database holding one Hangdam.
func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "sodam.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	if err := store.AddHangdam(models.Hangdam{
		ID:        "11111111-1111-1111-1111-111111111111",
		Name:      "first",
		StartDate: time.Now(),
	}); err != nil {
		t.Fatalf("failed to add hangdam: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	return dbPath
}

func hangdamNames(t *testing.T, dbPath string) []string {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	rows, err := db.Query("SELECT name FROM hangdams ORDER BY seq")
	if err != nil {
		t.Fatalf("failed to query hangdams: %v", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatal(err)
		}
		names = append(names, name)
	}
	return names
}

// steppingClock returns a clock that moves one second per call.
func steppingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)

	mgr := NewManager(dbPath)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Dir(backupPath) != mgr.GetBackupDir() {
		t.Errorf("backup written to %s, want dir %s", backupPath, mgr.GetBackupDir())
	}
	if names := hangdamNames(t, backupPath); len(names) != 1 || names[0] != "first" {
		t.Errorf("unexpected backup content: %v", names)
	}
}

func TestCreateBackup_MissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected error for missing database")
	}
}

func TestCreateBackup_SameSecondGetsCounter(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	fixed := time.Date(2025, 1, 21, 21, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	first, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	second, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatalf("expected distinct backup names, got %s twice", first)
	}
	if filepath.Base(second) != "sodam-20250121-210000-1.db" {
		t.Errorf("unexpected name %s", filepath.Base(second))
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Errorf("expected 2 backups, got %d", len(backups))
	}
}

func TestListBackups(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 0 {
		t.Fatalf("expected no backups, got %d", len(backups))
	}

	mgr.now = steppingClock(time.Date(2025, 1, 21, 9, 0, 0, 0, time.Local))
	for i := 0; i < 3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatal(err)
		}
	}
	// unrelated files are ignored
	if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), "sodam-garbage.db"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if !backups[i-1].Timestamp.After(backups[i].Timestamp) {
			t.Errorf("backups not sorted newest first: %v", backups)
		}
	}
}

func TestRotateBackups(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.keep = 3
	mgr.now = steppingClock(time.Date(2025, 1, 21, 9, 0, 0, 0, time.Local))

	var last string
	for i := 0; i < 5; i++ {
		path, err := mgr.CreateBackup()
		if err != nil {
			t.Fatal(err)
		}
		last = path
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups after rotation, got %d", len(backups))
	}
	if backups[0].Path != last {
		t.Errorf("newest backup should survive rotation, got %s", backups[0].Path)
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2025, 1, 21, 9, 0, 0, 0, time.Local))

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("UPDATE hangdams SET name = 'changed'"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	previous, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if names := hangdamNames(t, dbPath); names[0] != "first" {
		t.Errorf("restore did not bring back the backup, got %v", names)
	}
	if previous == "" {
		t.Fatal("expected a safety backup of the replaced database")
	}
	if names := hangdamNames(t, previous); names[0] != "changed" {
		t.Errorf("safety backup should hold the replaced data, got %v", names)
	}

	// the restored database still loads
	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("restored database does not load: %v", err)
	}
	store.Close()
}

func TestRestoreBackup_Invalid(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	if _, err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("expected error for missing backup")
	}

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(bogus); err == nil {
		t.Error("expected error for corrupted backup")
	}

	// a valid sqlite file without sodam tables is rejected too
	foreign := filepath.Join(t.TempDir(), "foreign.db")
	db, err := sql.Open("sqlite", foreign)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("CREATE TABLE tasks (id TEXT)"); err != nil {
		t.Fatal(err)
	}
	db.Close()
	if _, err := mgr.RestoreBackup(foreign); err == nil {
		t.Error("expected error for a non-sodam database")
	}

	if names := hangdamNames(t, dbPath); names[0] != "first" {
		t.Errorf("failed restores must not touch the database, got %v", names)
	}
}

func TestJSONBackupAndRestore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sodam.json")
	store := jsonstore.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	if err := store.SetSetting("font_name", "MaruBuri"); err != nil {
		t.Fatal(err)
	}

	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2025, 1, 21, 9, 0, 0, 0, time.Local))
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Ext(backupPath) != ".json" {
		t.Errorf("expected a .json backup, got %s", backupPath)
	}

	if err := store.SetSetting("font_name", "System"); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatal(err)
	}

	reloaded := jsonstore.NewStore(dbPath)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}
	font, _, err := reloaded.GetSetting("font_name")
	if err != nil {
		t.Fatal(err)
	}
	if font != "MaruBuri" {
		t.Errorf("expected restored font MaruBuri, got %s", font)
	}
}
