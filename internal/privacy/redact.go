package privacy

import (
	"regexp"
)

var (
	// Email pattern
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)

	// Phone patterns (international and 10-digit local)
	phoneRegex = regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]\d{4}|\b\d{10}\b`)

	// Government ID-like digit groups (e.g. 1234-5678-9012)
	idRegex = regexp.MustCompile(`\b\d{4}[-\s]\d{4}[-\s]\d{4}\b`)
)

// RedactSensitiveData removes PII from free-form symptom text
func RedactSensitiveData(text string) string {
	text = emailRegex.ReplaceAllString(text, "[EMAIL]")
	text = phoneRegex.ReplaceAllString(text, "[PHONE]")
	text = idRegex.ReplaceAllString(text, "[ID]")
	return text
}

// SanitizeForAPI removes PII before text leaves the process for an
// external extraction API
func SanitizeForAPI(text string) string {
	return RedactSensitiveData(text)
}

// SanitizeForLogging prepares text for safe logging
func SanitizeForLogging(text string) string {
	redacted := RedactSensitiveData(text)
	if len(redacted) > 200 {
		return redacted[:197] + "..."
	}
	return redacted
}

// ContainsPII checks if text contains potential PII
func ContainsPII(text string) bool {
	return emailRegex.MatchString(text) ||
		phoneRegex.MatchString(text) ||
		idRegex.MatchString(text)
}
