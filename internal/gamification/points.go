package gamification

// PointsPerCheckup is awarded for every symptom submission
const PointsPerCheckup = 5

// badgeThreshold pairs a cumulative point total with the badge it unlocks
type badgeThreshold struct {
	points int
	name   string
}

// Thresholds are checked in ascending order
var thresholds = []badgeThreshold{
	{25, "Health Starter"},
	{75, "Wellness Tracker"},
	{150, "Health Guardian"},
}

// BadgesFor returns every badge unlocked at the given point total
func BadgesFor(points int) []string {
	badges := make([]string, 0)
	for _, t := range thresholds {
		if points >= t.points {
			badges = append(badges, t.name)
		}
	}
	return badges
}

// NewlyEarned returns the badges unlocked by moving from before to after
// points. The caller applies these as grants; awarding is idempotent since
// thresholds only unlock once on the way up.
func NewlyEarned(before, after int) []string {
	earned := make([]string, 0)
	for _, t := range thresholds {
		if before < t.points && after >= t.points {
			earned = append(earned, t.name)
		}
	}
	return earned
}
