// internal/domain/lifecycle/rules_test.go
package lifecycle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerloop/peerloop/internal/domain/models"
)

func testAssignment() *models.Assignment {
	return &models.Assignment{
		Rubric: []models.RubricCriterion{
			{ID: "r1", Title: "Clarity", MaxPoints: 10},
			{ID: "r2", Title: "Depth", MaxPoints: 20},
			{ID: "r3", Title: "Originality", MaxPoints: 20},
		},
	}
}

func TestValidateScore(t *testing.T) {
	c := models.RubricCriterion{ID: "r1", MaxPoints: 10}

	tests := []struct {
		name    string
		points  int
		wantErr error
	}{
		{"negative rejected", -1, ErrScoreOutOfRange},
		{"above max rejected", 11, ErrScoreOutOfRange},
		{"zero accepted", 0, nil},
		{"max accepted", 10, nil},
		{"mid accepted", 7, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScore(c, tt.points)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateReviewSubmit(t *testing.T) {
	a := testAssignment()

	t.Run("unscored criterion blocks submit", func(t *testing.T) {
		r := &models.PeerReview{
			Status:   models.ReviewDraft,
			Feedback: strings.Repeat("x", 19),
			Scores:   map[string]int{"r1": 8, "r2": 15},
		}
		assert.ErrorIs(t, ValidateReviewSubmit(a, r), ErrScoresIncomplete)
	})

	t.Run("short feedback blocks submit", func(t *testing.T) {
		r := &models.PeerReview{
			Status:   models.ReviewDraft,
			Feedback: strings.Repeat("x", 19),
			Scores:   map[string]int{"r1": 8, "r2": 15, "r3": 10},
		}
		assert.ErrorIs(t, ValidateReviewSubmit(a, r), ErrFeedbackTooShort)
	})

	t.Run("exactly minimum feedback passes", func(t *testing.T) {
		r := &models.PeerReview{
			Status:   models.ReviewDraft,
			Feedback: strings.Repeat("x", MinFeedbackLength),
			Scores:   map[string]int{"r1": 8, "r2": 15, "r3": 10},
		}
		require.NoError(t, ValidateReviewSubmit(a, r))
	})

	t.Run("zero counts as scored", func(t *testing.T) {
		r := &models.PeerReview{
			Status:   models.ReviewDraft,
			Feedback: strings.Repeat("x", 25),
			Scores:   map[string]int{"r1": 0, "r2": 0, "r3": 0},
		}
		require.NoError(t, ValidateReviewSubmit(a, r))
	})

	t.Run("submitted review cannot resubmit", func(t *testing.T) {
		r := &models.PeerReview{
			Status:   models.ReviewSubmitted,
			Feedback: strings.Repeat("x", 25),
			Scores:   map[string]int{"r1": 1, "r2": 1, "r3": 1},
		}
		assert.ErrorIs(t, ValidateReviewSubmit(a, r), ErrReviewNotDraft)
	})
}

func TestCanComplete(t *testing.T) {
	assert.True(t, CanComplete(&models.Submission{Status: models.SubmissionReviewed}))
	assert.False(t, CanComplete(&models.Submission{Status: models.SubmissionSubmitted}))
	assert.False(t, CanComplete(&models.Submission{Status: models.SubmissionCompleted}))
}

func TestBadgeTier(t *testing.T) {
	tests := []struct {
		subs, reviews int
		want          string
	}{
		{0, 0, BadgeBeginner},
		{4, 0, BadgeBeginner},
		{5, 0, BadgePerformer},
		{9, 1, BadgeProactive},
		{10, 0, BadgeProactive},
		{15, 5, BadgeLeader},
		{20, 0, BadgeLeader},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BadgeTier(tt.subs, tt.reviews),
			"subs=%d reviews=%d", tt.subs, tt.reviews)
	}
}
