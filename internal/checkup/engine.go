package checkup

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/healthsetu/healthsetu-be/internal/advice"
	"github.com/healthsetu/healthsetu-be/internal/catalog"
	"github.com/healthsetu/healthsetu-be/internal/environment"
	"github.com/healthsetu/healthsetu-be/internal/gamification"
	"github.com/healthsetu/healthsetu-be/internal/history"
	"github.com/healthsetu/healthsetu-be/internal/language"
	"github.com/healthsetu/healthsetu-be/internal/match"
	"github.com/healthsetu/healthsetu-be/internal/store"
)

// historyWindow is how many recent submissions feed prolonged-symptom
// detection
const historyWindow = 10

// Store is the persistence surface the engine needs
type Store interface {
	GetUserByID(ctx context.Context, id string) (*store.User, error)
	AppendReport(ctx context.Context, userID string, reportedOn time.Time, symptoms []string) (*store.Report, error)
	RecentReports(ctx context.Context, userID string, limit int) ([]store.Report, error)
	AddPoints(ctx context.Context, userID string, delta int) (int, error)
	GrantBadge(ctx context.Context, userID, badge string) error
}

// CatalogLoader supplies a fresh disease catalog per request
type CatalogLoader interface {
	Load() ([]catalog.Disease, error)
}

// Normalizer reconciles free text against the vocabulary
type Normalizer interface {
	Normalize(ctx context.Context, texts []string, vocab []string) []string
}

// LanguageValidator validates language codes with fallback
type LanguageValidator interface {
	Validate(code string) language.ValidationResult
}

// Outcome is everything one checkup submission produced
type Outcome struct {
	Symptoms     []string       `json:"symptoms"`
	Matches      []match.Result `json:"matches"`
	Alerts       []string       `json:"alerts"`
	Guidance     string         `json:"guidance,omitempty"`
	PointsEarned int            `json:"points_earned"`
	TotalPoints  int            `json:"total_points"`
	NewBadges    []string       `json:"new_badges"`
}

// Engine runs the checkup flow independent of transport: normalize the
// report, score the catalog, scan history for prolonged symptoms, persist
// the submission and award points.
type Engine struct {
	store       Store
	catalog     CatalogLoader
	normalizer  Normalizer
	environment environment.Provider
	languages   LanguageValidator
}

// NewEngine creates a checkup engine
func NewEngine(s Store, cat CatalogLoader, n Normalizer, env environment.Provider, langs LanguageValidator) *Engine {
	return &Engine{
		store:       s,
		catalog:     cat,
		normalizer:  n,
		environment: env,
		languages:   langs,
	}
}

// Process handles one submission of free-form symptom text for a user.
// A store.ErrNotFound from the user lookup surfaces unchanged so callers
// can map it to a not-found response.
func (e *Engine) Process(ctx context.Context, userID string, texts []string) (*Outcome, error) {
	user, err := e.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	diseases, err := e.catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	vocab := catalog.Vocabulary(diseases)

	symptoms := e.normalizer.Normalize(ctx, texts, vocab)
	log.Printf("Checkup for user=%s: %d input(s), %d symptom(s) recognized", userID, len(texts), len(symptoms))

	lang := e.languages.Validate(user.Language).Code
	outcome := &Outcome{
		Symptoms:  symptoms,
		Matches:   make([]match.Result, 0),
		Alerts:    make([]string, 0),
		NewBadges: make([]string, 0),
	}

	if len(symptoms) == 0 {
		outcome.Guidance = advice.For(advice.KindNoSymptoms, lang)
		outcome.TotalPoints = user.Points
		return outcome, nil
	}

	env := e.environment.Lookup(user.City)
	outcome.Matches = match.Score(diseases, symptoms, match.Attributes{
		Gender:   user.Gender,
		Language: lang,
	}, env)

	if _, err := e.store.AppendReport(ctx, userID, time.Now().UTC(), symptoms); err != nil {
		return nil, fmt.Errorf("failed to append report: %w", err)
	}

	reports, err := e.store.RecentReports(ctx, userID, historyWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	outcome.Alerts = history.DetectProlonged(toRecords(reports))

	total, err := e.store.AddPoints(ctx, userID, gamification.PointsPerCheckup)
	if err != nil {
		return nil, fmt.Errorf("failed to award points: %w", err)
	}
	outcome.PointsEarned = gamification.PointsPerCheckup
	outcome.TotalPoints = total

	for _, badge := range gamification.NewlyEarned(total-gamification.PointsPerCheckup, total) {
		if err := e.store.GrantBadge(ctx, userID, badge); err != nil {
			log.Printf("Warning: failed to grant badge %q to user=%s: %v", badge, userID, err)
			continue
		}
		outcome.NewBadges = append(outcome.NewBadges, badge)
	}

	switch {
	case len(outcome.Matches) == 0:
		outcome.Guidance = advice.For(advice.KindNoMatches, lang)
	case doctorRequired(outcome.Matches):
		outcome.Guidance = advice.For(advice.KindSevere, lang)
	}

	return outcome, nil
}

func doctorRequired(matches []match.Result) bool {
	for _, m := range matches {
		if m.DoctorRequired {
			return true
		}
	}
	return false
}

func toRecords(reports []store.Report) []history.Record {
	records := make([]history.Record, len(reports))
	for i, r := range reports {
		records[i] = history.Record{Date: r.ReportedOn, Symptoms: r.Symptoms}
	}
	return records
}
