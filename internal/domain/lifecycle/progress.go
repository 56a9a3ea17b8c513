// internal/domain/lifecycle/progress.go
package lifecycle

import (
	"math"

	"github.com/peerloop/peerloop/internal/domain/models"
)

// AssignmentProgress is the share of existing submissions for one
// assignment that have been turned in (SUBMITTED, REVIEWED or
// COMPLETED), as a whole percentage. Students who never started do
// not appear in subs and do not count against the denominator.
func AssignmentProgress(subs []models.Submission) int {
	if len(subs) == 0 {
		return 0
	}
	turnedIn := 0
	for i := range subs {
		if subs[i].TurnedIn() {
			turnedIn++
		}
	}
	return percent(turnedIn, len(subs))
}

// TeamProgress is a team's overall completion across all assignments:
// finished member submissions (REVIEWED or COMPLETED) over the full
// grid of assignmentCount x memberCount expected submissions. Unlike
// AssignmentProgress, work not yet started counts against the team.
func TeamProgress(memberSubs []models.Submission, assignmentCount, memberCount int) int {
	expected := assignmentCount * memberCount
	if expected == 0 {
		return 0
	}
	finished := 0
	for i := range memberSubs {
		if memberSubs[i].Finished() {
			finished++
		}
	}
	return percent(finished, expected)
}

// TeamAssignmentProgress is one team's progress on one assignment:
// turned-in member submissions over the team's member count.
func TeamAssignmentProgress(memberSubs []models.Submission, memberCount int) int {
	if memberCount == 0 {
		return 0
	}
	turnedIn := 0
	for i := range memberSubs {
		if memberSubs[i].TurnedIn() {
			turnedIn++
		}
	}
	return percent(turnedIn, memberCount)
}

// StudentProgress is a student's overall completion: finished
// submissions over the total number of assignments.
func StudentProgress(finished, totalAssignments int) int {
	if totalAssignments == 0 {
		return 0
	}
	return percent(finished, totalAssignments)
}

func percent(num, denom int) int {
	return int(math.Round(float64(num) / float64(denom) * 100))
}
