package checkup

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/healthsetu/healthsetu-be/internal/catalog"
	"github.com/healthsetu/healthsetu-be/internal/environment"
	"github.com/healthsetu/healthsetu-be/internal/extract"
	"github.com/healthsetu/healthsetu-be/internal/language"
	"github.com/healthsetu/healthsetu-be/internal/store"
)

// fakeStore is an in-memory Store for engine tests
type fakeStore struct {
	user    *store.User
	reports []store.Report
	badges  []string
	nextID  int64
}

func newFakeStore(user *store.User) *fakeStore {
	return &fakeStore{user: user}
}

func (f *fakeStore) GetUserByID(_ context.Context, id string) (*store.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, store.ErrNotFound
	}
	u := *f.user
	return &u, nil
}

func (f *fakeStore) AppendReport(_ context.Context, userID string, reportedOn time.Time, symptoms []string) (*store.Report, error) {
	f.nextID++
	r := store.Report{ID: f.nextID, UserID: userID, ReportedOn: reportedOn, Symptoms: symptoms}
	f.reports = append(f.reports, r)
	return &r, nil
}

func (f *fakeStore) RecentReports(_ context.Context, _ string, limit int) ([]store.Report, error) {
	if len(f.reports) <= limit {
		return f.reports, nil
	}
	return f.reports[len(f.reports)-limit:], nil
}

func (f *fakeStore) AddPoints(_ context.Context, _ string, delta int) (int, error) {
	f.user.Points += delta
	return f.user.Points, nil
}

func (f *fakeStore) GrantBadge(_ context.Context, _ string, badge string) error {
	f.badges = append(f.badges, badge)
	return nil
}

// fakeCatalog serves a fixed disease list
type fakeCatalog struct {
	diseases []catalog.Disease
}

func (f *fakeCatalog) Load() ([]catalog.Disease, error) {
	return f.diseases, nil
}

// fixedEnv always returns the same factors
type fixedEnv struct {
	factors environment.Factors
}

func (f fixedEnv) Lookup(string) environment.Factors { return f.factors }

func testEngine(s Store, diseases []catalog.Disease, env environment.Factors) *Engine {
	return NewEngine(
		s,
		&fakeCatalog{diseases: diseases},
		extract.NewPipeline(extract.NewFuzzyStrategy()),
		fixedEnv{factors: env},
		language.NewManager(),
	)
}

func testUser() *store.User {
	return &store.User{
		ID:       "u1",
		Email:    "a@b.com",
		Language: "en",
		Gender:   "female",
		City:     "Delhi",
	}
}

func fluCatalog() []catalog.Disease {
	return []catalog.Disease{
		{Name: "Flu", Symptoms: []string{"fever", "cough"}, Severity: "moderate"},
		{Name: "Cholera", Symptoms: []string{"diarrhea"}, Severity: "severe",
			DoctorRequired: true, Tags: []string{"water-borne"}},
	}
}

func TestProcessUnknownUser(t *testing.T) {
	e := testEngine(newFakeStore(nil), fluCatalog(), environment.Baseline)

	if _, err := e.Process(context.Background(), "missing", []string{"fever"}); err != store.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProcessNoRecognizedSymptoms(t *testing.T) {
	fs := newFakeStore(testUser())
	e := testEngine(fs, fluCatalog(), environment.Baseline)

	outcome, err := e.Process(context.Background(), "u1", []string{"just saying hello"})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(outcome.Symptoms) != 0 || len(outcome.Matches) != 0 {
		t.Errorf("expected empty outcome, got %+v", outcome)
	}
	if outcome.Guidance == "" {
		t.Error("expected guidance for unrecognized report")
	}
	if len(fs.reports) != 0 {
		t.Error("empty submissions must not be appended to history")
	}
	if outcome.PointsEarned != 0 {
		t.Error("empty submissions must not earn points")
	}
}

func TestProcessMatchesAndPersists(t *testing.T) {
	fs := newFakeStore(testUser())
	e := testEngine(fs, fluCatalog(), environment.Baseline)

	outcome, err := e.Process(context.Background(), "u1", []string{"fever and cough since yesterday"})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(outcome.Matches) == 0 || outcome.Matches[0].Disease != "Flu" {
		t.Fatalf("expected Flu match, got %+v", outcome.Matches)
	}
	if outcome.Matches[0].Score != 2 {
		t.Errorf("expected score 2, got %d", outcome.Matches[0].Score)
	}
	if len(fs.reports) != 1 {
		t.Fatalf("expected 1 persisted report, got %d", len(fs.reports))
	}
	if outcome.PointsEarned == 0 || outcome.TotalPoints != fs.user.Points {
		t.Errorf("points not awarded: %+v", outcome)
	}
}

func TestProcessProlongedAlertAfterThreeSubmissions(t *testing.T) {
	fs := newFakeStore(testUser())
	e := testEngine(fs, fluCatalog(), environment.Baseline)

	var outcome *Outcome
	var err error
	for i := 0; i < 3; i++ {
		outcome, err = e.Process(context.Background(), "u1", []string{"fever again"})
		if err != nil {
			t.Fatalf("Process %d: %v", i, err)
		}
	}

	if len(outcome.Alerts) != 1 {
		t.Fatalf("expected 1 alert after 3 submissions, got %v", outcome.Alerts)
	}
	if !strings.Contains(outcome.Alerts[0], "'fever'") {
		t.Errorf("unexpected alert: %s", outcome.Alerts[0])
	}
}

func TestProcessWaterBorneEnvironmentBoost(t *testing.T) {
	fs := newFakeStore(testUser())
	e := testEngine(fs, fluCatalog(), environment.Factors{AQI: 60, WaterQuality: "poor"})

	outcome, err := e.Process(context.Background(), "u1", []string{"diarrhea"})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(outcome.Matches) == 0 || outcome.Matches[0].Disease != "Cholera" {
		t.Fatalf("expected Cholera match, got %+v", outcome.Matches)
	}
	// 1 symptom + 2 water-borne boost
	if outcome.Matches[0].Score != 3 {
		t.Errorf("expected score 3, got %d", outcome.Matches[0].Score)
	}
	if outcome.Guidance == "" {
		t.Error("doctor-required match should carry severe guidance")
	}
}

func TestProcessBadgeGrant(t *testing.T) {
	user := testUser()
	user.Points = 20
	fs := newFakeStore(user)
	e := testEngine(fs, fluCatalog(), environment.Baseline)

	outcome, err := e.Process(context.Background(), "u1", []string{"fever"})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(outcome.NewBadges) != 1 || outcome.NewBadges[0] != "Health Starter" {
		t.Errorf("expected Health Starter badge at 25 points, got %v", outcome.NewBadges)
	}
	if len(fs.badges) != 1 {
		t.Errorf("badge not persisted: %v", fs.badges)
	}
}
