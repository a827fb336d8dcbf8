package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"minerals/backend/internal/db"
	"minerals/backend/internal/model"
	"minerals/backend/pkg/snowflake"

	_ "modernc.org/sqlite"
)

// snowflakeOnce keeps parallel tests from initializing the node twice.
var snowflakeOnce sync.Once

// NewTestDB opens a migrated in-memory SQLite database private to t.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	snowflakeOnce.Do(func() {
		if err := snowflake.Init(0); err != nil {
			panic("failed to initialize snowflake: " + err.Error())
		}
	})

	// Shared cache lets every pooled connection see the same in-memory database.
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", name, time.Now().UnixNano())
	database, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Migrate(database); err != nil {
		database.Close()
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		database.Close()
	})

	return database
}

// SeedUser inserts a user row and returns its id.
func SeedUser(t *testing.T, db *sql.DB, id string) string {
	t.Helper()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := db.ExecContext(
		context.Background(),
		`INSERT INTO users (id, email, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		id, id+"@example.com", now, now,
	)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return id
}

// SeedTask inserts a finished task for task.UserID and returns its id.
func SeedTask(t *testing.T, db *sql.DB, task model.Task) int64 {
	t.Helper()

	if task.ID == 0 {
		task.ID = snowflake.NextID()
	}
	if task.Name == "" {
		task.Name = "Untitled"
	}
	if task.Category == "" {
		task.Category = model.DefaultCategory
	}
	if task.Timestamp == 0 {
		task.Timestamp = time.Now().UnixMilli()
	}

	_, err := db.ExecContext(
		context.Background(),
		`INSERT INTO task_history (id, user_id, name, category, cost, timestamp, duration, value_earned, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.UserID, task.Name, task.Category, task.Cost, task.Timestamp, task.Duration, task.ValueEarned,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}
	return task.ID
}

// SeedIncome inserts an income entry for entry.UserID and returns its id.
func SeedIncome(t *testing.T, db *sql.DB, entry model.IncomeEntry) int64 {
	t.Helper()

	if entry.ID == 0 {
		entry.ID = snowflake.NextID()
	}
	if entry.Timestamp == 0 {
		entry.Timestamp = time.Now().UnixMilli()
	}

	var note interface{}
	if entry.Note != nil {
		note = *entry.Note
	}
	_, err := db.ExecContext(
		context.Background(),
		`INSERT INTO income_entries (id, user_id, amount, note, timestamp, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.Amount, note, entry.Timestamp, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		t.Fatalf("failed to seed income entry: %v", err)
	}
	return entry.ID
}
