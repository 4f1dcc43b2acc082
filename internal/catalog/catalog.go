package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Disease is one entry in the disease catalog. All fields except Name and
// Symptoms are optional; missing values are treated as non-matching by the
// scorer, never as errors.
type Disease struct {
	Name             string            `json:"name"`
	Symptoms         []string          `json:"symptoms"`
	Severity         string            `json:"severity"`
	DoctorRequired   bool              `json:"doctor_required,omitempty"`
	HigherRiskGender string            `json:"higher_risk_gender,omitempty"`
	Tags             []string          `json:"tags,omitempty"`
	Advice           map[string]string `json:"advice,omitempty"`
	Prevention       map[string]string `json:"prevention,omitempty"`
}

// HasTag reports whether the disease carries the given category tag
// (case-insensitive).
func (d Disease) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Loader reads the disease catalog from a JSON file. The file is read fresh
// on every Load call; the catalog may change between requests.
type Loader struct {
	path string
}

// NewLoader creates a catalog loader for the given file path
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and parses the catalog file
func (l *Loader) Load() ([]Disease, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var diseases []Disease
	if err := json.Unmarshal(data, &diseases); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	return diseases, nil
}

// Vocabulary derives the deduplicated set of known symptom strings from the
// catalog, preserving first-seen order. Canonical form is the exact string
// as it appears in the catalog; duplicates are detected case-insensitively.
func Vocabulary(diseases []Disease) []string {
	seen := make(map[string]bool)
	vocab := make([]string, 0)

	for _, d := range diseases {
		for _, s := range d.Symptoms {
			key := strings.ToLower(strings.TrimSpace(s))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			vocab = append(vocab, strings.TrimSpace(s))
		}
	}

	return vocab
}
