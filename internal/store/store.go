package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

// Store wraps the database connection. Same-user write serialization is the
// caller's concern; the store only guarantees per-statement atomicity.
type Store struct {
	*sql.DB
}

// New wraps an existing connection (used by tests with sqlmock)
func New(db *sql.DB) *Store {
	return &Store{db}
}

// NewFromURL opens a Postgres connection from a DATABASE_URL-style string
func NewFromURL(databaseURL string) (*Store, error) {
	sqlDB, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{sqlDB}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.DB.Close()
}

// User represents a user in the database
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         *string
	Language     string
	Gender       string
	City         string
	Points       int
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Report is one persisted symptom submission. Reports are append-only and
// ordered by insertion, not by the date value.
type Report struct {
	ID         int64
	UserID     string
	ReportedOn time.Time
	Symptoms   []string
	CreatedAt  time.Time
}

// Stats summarizes a user's activity
type Stats struct {
	Points      int      `json:"points"`
	Badges      []string `json:"badges"`
	ReportCount int      `json:"report_count"`
}
