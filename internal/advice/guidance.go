package advice

// Kind selects which guidance message a checkup response carries when the
// scorer produced nothing actionable
type Kind string

const (
	KindNoSymptoms Kind = "no_symptoms"
	KindNoMatches  Kind = "no_matches"
	KindSevere     Kind = "severe"
)

var (
	englishGuidance = map[Kind]string{
		KindNoSymptoms: "I couldn't recognize any known symptoms in your report. Try describing how you feel in a few plain words, like 'fever and sore throat'.",
		KindNoMatches:  "Your symptoms don't point to a specific condition in our catalog. If they persist or worsen, please consult a doctor.",
		KindSevere:     "Your report mentions severe symptoms. Please contact a doctor or visit the nearest clinic as soon as possible.",
	}

	hindiGuidance = map[Kind]string{
		KindNoSymptoms: "Aapki report mein koi gyaat lakshan nahin mila. Kripya apni takleef saral shabdon mein batayein, jaise 'bukhar aur gale mein dard'.",
		KindNoMatches:  "Aapke lakshan hamari suchi ki kisi bimari se nahin milte. Agar takleef bani rahe to kripya doctor se salah lein.",
		KindSevere:     "Aapki report mein gambhir lakshan hain. Kripya jald se jald doctor se sampark karein.",
	}
)

// For returns the guidance message for the given kind in the user's
// language, falling back to English
func For(kind Kind, language string) string {
	var guidance map[Kind]string

	switch language {
	case "hi":
		guidance = hindiGuidance
	default:
		guidance = englishGuidance
	}

	if msg, ok := guidance[kind]; ok {
		return msg
	}
	return englishGuidance[KindNoMatches]
}
