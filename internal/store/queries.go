package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// CreateUser creates a new user
func (s *Store) CreateUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (email, password_hash, display_name, preferred_language, gender, city)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, points, created_at, updated_at
	`

	return s.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.Name, user.Language, user.Gender, user.City,
	).Scan(&user.ID, &user.Points, &user.CreatedAt, &user.UpdatedAt)
}

// GetUserByEmail retrieves a user by email
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, email, password_hash, display_name, preferred_language, gender, city, points, is_admin, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return s.scanUser(s.QueryRowContext(ctx, query, email))
}

// GetUserByID retrieves a user by ID
func (s *Store) GetUserByID(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, email, password_hash, display_name, preferred_language, gender, city, points, is_admin, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return s.scanUser(s.QueryRowContext(ctx, query, id))
}

func (s *Store) scanUser(row *sql.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name,
		&user.Language, &user.Gender, &user.City, &user.Points,
		&user.IsAdmin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// AppendReport appends one symptom submission to the user's history
func (s *Store) AppendReport(ctx context.Context, userID string, reportedOn time.Time, symptoms []string) (*Report, error) {
	query := `
		INSERT INTO symptom_reports (user_id, reported_on, symptoms)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, reported_on, symptoms, created_at
	`

	report := &Report{}
	err := s.QueryRowContext(ctx, query, userID, reportedOn, pq.Array(symptoms)).Scan(
		&report.ID, &report.UserID, &report.ReportedOn, pq.Array(&report.Symptoms), &report.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to append report: %w", err)
	}

	return report, nil
}

// RecentReports returns the user's most recent submissions in chronological
// submission order (oldest of the window first)
func (s *Store) RecentReports(ctx context.Context, userID string, limit int) ([]Report, error) {
	query := `
		SELECT id, user_id, reported_on, symptoms, created_at
		FROM (
			SELECT id, user_id, reported_on, symptoms, created_at
			FROM symptom_reports
			WHERE user_id = $1
			ORDER BY id DESC
			LIMIT $2
		) recent
		ORDER BY id ASC
	`

	rows, err := s.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get reports: %w", err)
	}
	defer rows.Close()

	reports := make([]Report, 0)
	for rows.Next() {
		var r Report
		if err := rows.Scan(&r.ID, &r.UserID, &r.ReportedOn, pq.Array(&r.Symptoms), &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}

	return reports, nil
}

// AddPoints applies a points delta and returns the new total
func (s *Store) AddPoints(ctx context.Context, userID string, delta int) (int, error) {
	query := `
		UPDATE users
		SET points = points + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING points
	`

	var total int
	err := s.QueryRowContext(ctx, query, userID, delta).Scan(&total)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to add points: %w", err)
	}

	return total, nil
}

// GrantBadge grants a badge to a user; granting twice is a no-op
func (s *Store) GrantBadge(ctx context.Context, userID, badge string) error {
	query := `
		INSERT INTO user_badges (user_id, badge)
		VALUES ($1, $2)
		ON CONFLICT (user_id, badge) DO NOTHING
	`

	if _, err := s.ExecContext(ctx, query, userID, badge); err != nil {
		return fmt.Errorf("failed to grant badge: %w", err)
	}
	return nil
}

// GetBadges returns the user's badges in grant order
func (s *Store) GetBadges(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT badge
		FROM user_badges
		WHERE user_id = $1
		ORDER BY granted_at ASC
	`

	rows, err := s.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get badges: %w", err)
	}
	defer rows.Close()

	badges := make([]string, 0)
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, fmt.Errorf("failed to scan badge: %w", err)
		}
		badges = append(badges, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate badges: %w", err)
	}

	return badges, nil
}

// GetStats summarizes points, badges and submission count for a user
func (s *Store) GetStats(ctx context.Context, userID string) (*Stats, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	badges, err := s.GetBadges(ctx, userID)
	if err != nil {
		return nil, err
	}

	var count int
	query := `SELECT COUNT(*) FROM symptom_reports WHERE user_id = $1`
	if err := s.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}

	return &Stats{
		Points:      user.Points,
		Badges:      badges,
		ReportCount: count,
	}, nil
}
