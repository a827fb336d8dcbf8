package db

import (
	"database/sql"
	"fmt"
)

// Owned records use Snowflake IDs (no AUTOINCREMENT). users.id is the
// identity provider subject.
const baseSchema = `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL DEFAULT '',
  name TEXT,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS user_data (
  user_id TEXT PRIMARY KEY,
  hourly_rate REAL NOT NULL DEFAULT 90,
  current_task TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT 'rock',
  timer INTEGER NOT NULL DEFAULT 0,
  timer_start_time INTEGER,
  show_minerals INTEGER NOT NULL DEFAULT 1,
  task_history_minimized INTEGER NOT NULL DEFAULT 0,
  open_loops_minimized INTEGER NOT NULL DEFAULT 0,
  login_streak INTEGER NOT NULL DEFAULT 1,
  last_login_date TEXT,
  goal_target REAL,
  goal_motivation TEXT,
  goal_created_at INTEGER,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS task_history (
  id INTEGER PRIMARY KEY,
  user_id TEXT NOT NULL,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  cost REAL NOT NULL DEFAULT 0,
  timestamp INTEGER NOT NULL,
  duration INTEGER NOT NULL DEFAULT 0,
  value_earned REAL NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL,
  FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_task_history_user_ts ON task_history(user_id, timestamp DESC);

CREATE TABLE IF NOT EXISTS income_entries (
  id INTEGER PRIMARY KEY,
  user_id TEXT NOT NULL,
  amount REAL NOT NULL,
  note TEXT,
  timestamp INTEGER NOT NULL,
  created_at TEXT NOT NULL,
  FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_income_entries_user_ts ON income_entries(user_id, timestamp DESC);

CREATE TABLE IF NOT EXISTS open_loops (
  id INTEGER PRIMARY KEY,
  user_id TEXT NOT NULL,
  name TEXT NOT NULL,
  timer INTEGER NOT NULL DEFAULT 0,
  rate REAL NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 0,
  timer_start_time INTEGER,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_open_loops_user ON open_loops(user_id);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("migrate base schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func runMigrations(db *sql.DB) error {
	// Migration 1: billing tables
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS stripe_customers (
			user_id TEXT PRIMARY KEY,
			stripe_customer_id TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)
	`); err != nil {
		return fmt.Errorf("create stripe_customers table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS subscriptions (
			user_id TEXT PRIMARY KEY,
			stripe_subscription_id TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			plan TEXT NOT NULL,
			current_period_end TEXT,
			cancel_at_period_end INTEGER NOT NULL DEFAULT 0,
			updated_at TEXT NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)
	`); err != nil {
		return fmt.Errorf("create subscriptions table: %w", err)
	}

	// Migration 2: processed webhook events
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS billing_events (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			processed_at TEXT NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("create billing_events table: %w", err)
	}

	// Migration 3: stop older databases losing the goal timestamp
	hasGoalCreatedAt, err := hasColumn(db, "user_data", "goal_created_at")
	if err != nil {
		return fmt.Errorf("check goal_created_at column: %w", err)
	}
	if !hasGoalCreatedAt {
		if _, err := db.Exec(`ALTER TABLE user_data ADD COLUMN goal_created_at INTEGER`); err != nil {
			return fmt.Errorf("add goal_created_at column: %w", err)
		}
	}

	return nil
}

func hasColumn(db *sql.DB, table string, column string) (bool, error) {
	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`,
		table, column,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
