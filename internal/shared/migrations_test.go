package shared

import "testing"

func TestMigrations(t *testing.T) {
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Run("Imports Table Exists", func(t *testing.T) {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='imports'").Scan(&name)
		if err != nil {
			t.Fatalf("expected imports table: %v", err)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		if err := RunMigrations(db); err != nil {
			t.Errorf("expected rerun to succeed, got %v", err)
		}
	})

	t.Run("Rollback", func(t *testing.T) {
		if err := RollbackMigration(db); err != nil {
			t.Fatalf("expected rollback to succeed, got %v", err)
		}

		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='imports'").Scan(&name)
		if err == nil {
			t.Error("expected imports table to be dropped")
		}

		if err := RollbackMigration(db); err == nil {
			t.Error("expected error when nothing to rollback")
		}
	})
}
