package database

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestEnsureSchema_Persistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	// 1. Initialize schema
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("First Open failed: %v", err)
	}

	// 2. Insert a record
	_, err = db.Exec(`INSERT INTO nav_sheets (title, modifiers, angle_unit, distance_unit, time_format) VALUES ('Test Sheet', 'day Open NonTac', 'mils', 'meters', 'minutes')`)
	db.Close()
	if err != nil {
		t.Fatalf("Failed to insert record: %v", err)
	}

	// 3. Initialize schema again (should not drop table)
	db, err = sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	defer db.Close()
	if err := EnsureSchema(db); err != nil {
		t.Fatalf("Second EnsureSchema failed: %v", err)
	}

	// 4. Verify record exists
	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM nav_sheets WHERE title = 'Test Sheet'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query record: %v", err)
	}

	if count != 1 {
		t.Errorf("Expected 1 record, got %d. Data was likely lost due to table drop.", count)
	}
}
