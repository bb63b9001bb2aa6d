package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Sentinel errors returned by the store
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidCriteria = errors.New("invalid criteria")
	ErrDuplicate       = errors.New("already exists")
)

// Store is the entity API over the SQLite database
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open creates the parent directory, opens the database with foreign keys and
// WAL enabled, and runs migrations.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// Open with DSN options for SQLite pragmas
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Debug("database opened", zap.String("path", path))
	return &Store{db: db, logger: logger}, nil
}

// NewStore wraps an already migrated database
func NewStore(db *sql.DB, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, logger: logger}
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RunMigrations creates all necessary tables
func RunMigrations(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		user_type TEXT NOT NULL,
		created_date DATETIME NOT NULL,
		last_active_date DATETIME,
		CHECK(user_type IN ('student', 'alumni', 'parent', 'company', 'admin'))
	);

	CREATE TABLE IF NOT EXISTS student_profiles (
		user_id TEXT PRIMARY KEY,
		major TEXT NOT NULL DEFAULT '',
		minor TEXT NOT NULL DEFAULT '',
		graduation_year INTEGER NOT NULL DEFAULT 0,
		career_interests TEXT NOT NULL DEFAULT '[]',
		looking_for_options TEXT NOT NULL DEFAULT '[]',
		skills TEXT NOT NULL DEFAULT '[]',
		career_preferences TEXT NOT NULL DEFAULT '{}',
		resume_url TEXT NOT NULL DEFAULT '',
		profile_image_url TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS alumni_profiles (
		user_id TEXT PRIMARY KEY,
		graduation_year INTEGER NOT NULL DEFAULT 0,
		current_title TEXT NOT NULL DEFAULT '',
		current_company TEXT NOT NULL DEFAULT '',
		industry TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		expertise TEXT NOT NULL DEFAULT '[]',
		available_for_mentorship BOOLEAN NOT NULL DEFAULT 0,
		response_streak INTEGER NOT NULL DEFAULT 0,
		sessions_held INTEGER NOT NULL DEFAULT 0,
		badges TEXT NOT NULL DEFAULT '[]',
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS company_profiles (
		user_id TEXT PRIMARY KEY,
		company_name TEXT NOT NULL,
		industry TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		company_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		industry TEXT NOT NULL DEFAULT '',
		job_type TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'active',
		created_date DATETIME NOT NULL,
		view_count INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (company_id) REFERENCES users(id) ON DELETE CASCADE,
		CHECK(status IN ('active', 'closed'))
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		done BOOLEAN NOT NULL DEFAULT 0,
		due_date DATETIME,
		created_date DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS messages (
		id TEXT PRIMARY KEY,
		sender_id TEXT NOT NULL,
		recipient_id TEXT NOT NULL,
		body TEXT NOT NULL,
		created_date DATETIME NOT NULL,
		read_at DATETIME,
		FOREIGN KEY (sender_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (recipient_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS sessions (
		slot INTEGER PRIMARY KEY CHECK(slot = 1),
		user_id TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_users_user_type ON users(user_type);
	CREATE INDEX IF NOT EXISTS idx_jobs_company_id ON jobs(company_id);
	CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status);
	CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id);
	CREATE INDEX IF NOT EXISTS idx_messages_recipient_id ON messages(recipient_id);
	`

	_, err := db.Exec(schema)
	return err
}
