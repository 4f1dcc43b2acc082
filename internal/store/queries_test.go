package store

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

const testUserID = "11111111-1111-1111-1111-111111111111"

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func TestGetUserByID(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "found",
			setupMock: func(m sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"id", "email", "password_hash", "display_name", "preferred_language",
					"gender", "city", "points", "is_admin", "created_at", "updated_at",
				}).AddRow(testUserID, "a@b.com", "hash", nil, "en", "female", "Delhi", 30, false, time.Now(), time.Now())
				m.ExpectQuery(`SELECT id, email, password_hash`).WithArgs(testUserID).WillReturnRows(rows)
			},
		},
		{
			name: "not found maps to ErrNotFound",
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(`SELECT id, email, password_hash`).WithArgs(testUserID).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newMockStore(t)
			tt.setupMock(mock)

			user, err := s.GetUserByID(context.Background(), testUserID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetUserByID: %v", err)
			}
			if user.City != "Delhi" || user.Points != 30 {
				t.Errorf("unexpected user: %+v", user)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestAppendReport(t *testing.T) {
	s, mock := newMockStore(t)

	reportedOn := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	symptoms := []string{"fever", "cough"}

	rows := sqlmock.NewRows([]string{"id", "user_id", "reported_on", "symptoms", "created_at"}).
		AddRow(int64(7), testUserID, reportedOn, pq.Array(symptoms), time.Now())
	mock.ExpectQuery(`INSERT INTO symptom_reports`).
		WithArgs(testUserID, reportedOn, pq.Array(symptoms)).
		WillReturnRows(rows)

	report, err := s.AppendReport(context.Background(), testUserID, reportedOn, symptoms)
	if err != nil {
		t.Fatalf("AppendReport: %v", err)
	}
	if report.ID != 7 || !reflect.DeepEqual(report.Symptoms, symptoms) {
		t.Errorf("unexpected report: %+v", report)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecentReportsChronologicalOrder(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "user_id", "reported_on", "symptoms", "created_at"}).
		AddRow(int64(5), testUserID, time.Now(), pq.Array([]string{"fever"}), time.Now()).
		AddRow(int64(6), testUserID, time.Now(), pq.Array([]string{"fever", "cough"}), time.Now()).
		AddRow(int64(7), testUserID, time.Now(), pq.Array([]string{"fever"}), time.Now())
	mock.ExpectQuery(`SELECT id, user_id, reported_on, symptoms, created_at`).
		WithArgs(testUserID, 3).
		WillReturnRows(rows)

	reports, err := s.RecentReports(context.Background(), testUserID, 3)
	if err != nil {
		t.Fatalf("RecentReports: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(reports))
	}
	if reports[0].ID != 5 || reports[2].ID != 7 {
		t.Errorf("expected ascending id order, got %d..%d", reports[0].ID, reports[2].ID)
	}
}

func TestAddPoints(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"points"}).AddRow(35)
	mock.ExpectQuery(`UPDATE users`).WithArgs(testUserID, 5).WillReturnRows(rows)

	total, err := s.AddPoints(context.Background(), testUserID, 5)
	if err != nil {
		t.Fatalf("AddPoints: %v", err)
	}
	if total != 35 {
		t.Errorf("expected total 35, got %d", total)
	}
}

func TestAddPointsUnknownUser(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`UPDATE users`).WithArgs(testUserID, 5).WillReturnError(sql.ErrNoRows)

	if _, err := s.AddPoints(context.Background(), testUserID, 5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGrantBadgeIdempotent(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO user_badges`).
		WithArgs(testUserID, "Health Starter").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO user_badges`).
		WithArgs(testUserID, "Health Starter").
		WillReturnResult(sqlmock.NewResult(0, 0))

	for i := 0; i < 2; i++ {
		if err := s.GrantBadge(context.Background(), testUserID, "Health Starter"); err != nil {
			t.Fatalf("GrantBadge call %d: %v", i, err)
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetStats(t *testing.T) {
	s, mock := newMockStore(t)

	userRows := sqlmock.NewRows([]string{
		"id", "email", "password_hash", "display_name", "preferred_language",
		"gender", "city", "points", "is_admin", "created_at", "updated_at",
	}).AddRow(testUserID, "a@b.com", "hash", nil, "en", "female", "Delhi", 30, false, time.Now(), time.Now())
	mock.ExpectQuery(`SELECT id, email, password_hash`).WithArgs(testUserID).WillReturnRows(userRows)

	badgeRows := sqlmock.NewRows([]string{"badge"}).AddRow("Health Starter")
	mock.ExpectQuery(`SELECT badge`).WithArgs(testUserID).WillReturnRows(badgeRows)

	countRows := sqlmock.NewRows([]string{"count"}).AddRow(6)
	mock.ExpectQuery(`SELECT COUNT`).WithArgs(testUserID).WillReturnRows(countRows)

	stats, err := s.GetStats(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Points != 30 || stats.ReportCount != 6 || len(stats.Badges) != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}
