package match

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/healthsetu/healthsetu-be/internal/catalog"
	"github.com/healthsetu/healthsetu-be/internal/environment"
)

const (
	tagRespiratory = "respiratory"
	tagWaterBorne  = "water-borne"

	aqiRiskThreshold = 150
	poorWaterQuality = "poor"
)

// Attributes are the user attributes that influence scoring
type Attributes struct {
	Gender   string
	Language string
}

// Result is one scored disease match, produced per request and never persisted
type Result struct {
	Disease         string  `json:"disease"`
	Severity        string  `json:"severity"`
	Score           int     `json:"score"`
	DoctorRequired  bool    `json:"doctor_required"`
	VerificationURL string  `json:"verification_url"`
	Advice          *string `json:"advice"`
	Prevention      *string `json:"prevention"`
}

// Score ranks catalog diseases against the normalized symptoms, user
// attributes and environmental factors. Per disease:
//
//	+1 per overlapping symptom
//	+1 when the higher-risk gender matches the user's
//	+1 when tagged respiratory and AQI > 150
//	+2 when tagged water-borne and water quality is poor
//
// Only diseases scoring above zero are returned, sorted by descending
// score; ties keep catalog order.
func Score(diseases []catalog.Disease, symptoms []string, user Attributes, env environment.Factors) []Result {
	symptomSet := make(map[string]bool, len(symptoms))
	for _, s := range symptoms {
		symptomSet[strings.ToLower(s)] = true
	}

	results := make([]Result, 0)
	for _, d := range diseases {
		score := 0

		for _, s := range d.Symptoms {
			if symptomSet[strings.ToLower(s)] {
				score++
			}
		}

		if d.HigherRiskGender != "" && d.HigherRiskGender == user.Gender {
			score++
		}

		if d.HasTag(tagRespiratory) && env.AQI > aqiRiskThreshold {
			score++
		}

		// Water-borne diseases carry double weight under poor water quality
		if d.HasTag(tagWaterBorne) && env.WaterQuality == poorWaterQuality {
			score += 2
		}

		if score <= 0 {
			continue
		}

		results = append(results, Result{
			Disease:         d.Name,
			Severity:        d.Severity,
			Score:           score,
			DoctorRequired:  d.DoctorRequired,
			VerificationURL: verificationURL(d.Name),
			Advice:          localized(d.Advice, user.Language),
			Prevention:      localized(d.Prevention, user.Language),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

// localized picks the text for the user's language, falling back to English,
// then to nil when neither exists
func localized(texts map[string]string, lang string) *string {
	if texts == nil {
		return nil
	}
	if t, ok := texts[lang]; ok {
		return &t
	}
	if t, ok := texts["en"]; ok {
		return &t
	}
	return nil
}

// verificationURL builds a search link the user can follow to read up on
// the matched disease
func verificationURL(disease string) string {
	return fmt.Sprintf("https://www.google.com/search?q=%s", url.QueryEscape(disease+" disease symptoms"))
}
