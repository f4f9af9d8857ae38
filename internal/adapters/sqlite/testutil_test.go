// Package sqlite_test contains integration tests for the SQLite adapters.
//
// All test setup goes through db.GetSchemaSQL() so tests always run against
// the authoritative schema. Do not hardcode CREATE TABLE statements here.
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/twodo/internal/db"
	"github.com/example/twodo/internal/ports/secondary"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// testRecord builds a task record for user-1 due at the given offset.
func testRecord(name string, due time.Time) secondary.TaskRecord {
	return secondary.TaskRecord{
		UserID: "user-1",
		Name:   name,
		DueAt:  due,
	}
}
