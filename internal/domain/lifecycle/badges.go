// internal/domain/lifecycle/badges.go
package lifecycle

// Badge tiers awarded for overall activity, lowest to highest.
const (
	BadgeBeginner  = "Beginner"
	BadgePerformer = "Performer"
	BadgeProactive = "Proactive"
	BadgeLeader    = "Leader"
)

// BadgeTier maps a student's activity to a badge. Activity is the sum
// of finished submissions and submitted peer reviews.
func BadgeTier(finishedSubmissions, submittedReviews int) string {
	activity := finishedSubmissions + submittedReviews
	switch {
	case activity >= 20:
		return BadgeLeader
	case activity >= 10:
		return BadgeProactive
	case activity >= 5:
		return BadgePerformer
	default:
		return BadgeBeginner
	}
}
