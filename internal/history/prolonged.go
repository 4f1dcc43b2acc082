package history

import (
	"fmt"
	"strings"
	"time"
)

// Record is one symptom submission in a user's history, chronological by
// submission order. The symptom set is already deduplicated per submission.
type Record struct {
	Date     time.Time `json:"date"`
	Symptoms []string  `json:"symptoms"`
}

// prolongedWindow is how many consecutive submissions a symptom must span
// before it is flagged
const prolongedWindow = 3

// DetectProlonged scans the most recent submissions for symptoms that
// persist across all of the last three records (by position, not by date
// value) and returns one alert per such symptom. Fewer than three records
// can never produce an alert. Alert order follows first appearance within
// the window, so identical input always yields identical output.
func DetectProlonged(records []Record) []string {
	if len(records) < prolongedWindow {
		return nil
	}

	window := records[len(records)-prolongedWindow:]

	counts := make(map[string]int)
	order := make([]string, 0)

	for _, rec := range window {
		inRecord := make(map[string]bool)
		for _, s := range rec.Symptoms {
			key := strings.ToLower(s)
			if inRecord[key] {
				continue
			}
			inRecord[key] = true
			if counts[key] == 0 {
				order = append(order, s)
			}
			counts[key]++
		}
	}

	alerts := make([]string, 0)
	for _, s := range order {
		if counts[strings.ToLower(s)] >= prolongedWindow {
			alerts = append(alerts, fmt.Sprintf("The symptom '%s' has persisted for 3 days. Please consult a doctor.", s))
		}
	}

	return alerts
}
