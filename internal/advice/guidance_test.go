package advice

import (
	"strings"
	"testing"
)

func TestForLocalized(t *testing.T) {
	en := For(KindNoMatches, "en")
	hi := For(KindNoMatches, "hi")

	if en == "" || hi == "" {
		t.Fatal("guidance must never be empty")
	}
	if en == hi {
		t.Error("expected distinct localized guidance")
	}
}

func TestForFallsBackToEnglish(t *testing.T) {
	got := For(KindNoSymptoms, "fr")
	if !strings.Contains(got, "recognize") {
		t.Errorf("expected English fallback, got %q", got)
	}
}

func TestForUnknownKind(t *testing.T) {
	if got := For(Kind("bogus"), "en"); got == "" {
		t.Error("unknown kind must still produce guidance")
	}
}
