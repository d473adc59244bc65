package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SHASHANK8412/Civil-Soul-sub000/internal/models"
	"github.com/SHASHANK8412/Civil-Soul-sub000/internal/scoring"
)

func TestNormalize_TypicalActivity(t *testing.T) {
	activity := models.ActivityRecord{
		VolunteerID:      "vol-001",
		VolunteerName:    "Jane Doe",
		OrganizationName: "Helping Hands",
		ActivityType:     "Community Cleanup",
		HoursLogged:      45,
		FeedbackScores:   []float64{8.5, 9.0, 8.7, 9.2, 8.8},
		AttendanceRate:   0.95,
		OnTimeRate:       0.92,
		LeadershipRoles:  2,
		InitiativesTaken: 3,
	}

	metrics := scoring.Normalize(activity)

	assert.Equal(t, 45.0, metrics.HoursCompleted)
	assert.InDelta(t, 8.84, metrics.TaskQuality, 1e-9)
	assert.InDelta(t, 9.2, metrics.Punctuality, 1e-9)
	// (0.95 + 2*2) * 2 = 9.9, under the cap
	assert.InDelta(t, 9.9, metrics.Teamwork, 1e-9)
	assert.InDelta(t, 6.0, metrics.Initiative, 1e-9)
	assert.InDelta(t, 8.84, metrics.Feedback, 1e-9)
}

func TestNormalize_EmptyFeedbackDefaultsToNeutral(t *testing.T) {
	metrics := scoring.Normalize(models.ActivityRecord{HoursLogged: 30})

	assert.Equal(t, 5.0, metrics.TaskQuality)
	assert.Equal(t, 5.0, metrics.Feedback)
}

func TestNormalize_ClampsBoundedFields(t *testing.T) {
	activity := models.ActivityRecord{
		HoursLogged:      500,
		FeedbackScores:   []float64{10, 10, 10},
		AttendanceRate:   1,
		OnTimeRate:       1.5,
		LeadershipRoles:  100,
		InitiativesTaken: 50,
	}

	metrics := scoring.Normalize(activity)

	// Hours pass through unclamped; every other field caps at 10
	assert.Equal(t, 500.0, metrics.HoursCompleted)
	assert.Equal(t, 10.0, metrics.TaskQuality)
	assert.Equal(t, 10.0, metrics.Punctuality)
	assert.Equal(t, 10.0, metrics.Teamwork)
	assert.Equal(t, 10.0, metrics.Initiative)
	assert.Equal(t, 10.0, metrics.Feedback)
}

func TestNormalize_NegativeInputsClampToZero(t *testing.T) {
	activity := models.ActivityRecord{
		HoursLogged:    -10,
		AttendanceRate: -0.5,
		OnTimeRate:     -1,
	}

	metrics := scoring.Normalize(activity)

	assert.Equal(t, 0.0, metrics.HoursCompleted)
	assert.Equal(t, 0.0, metrics.Punctuality)
	assert.Equal(t, 0.0, metrics.Teamwork)
	assert.Equal(t, 0.0, metrics.Initiative)
}

func TestScore_TypicalActivity(t *testing.T) {
	metrics := models.NormalizedMetrics{
		HoursCompleted: 45,
		TaskQuality:    8.84,
		Punctuality:    9.2,
		Teamwork:       9.9,
		Initiative:     6,
		Feedback:       8.84,
	}

	// (4.5*0.30 + 8.84*0.25 + 9.2*0.15 + 9.9*0.15 + 6*0.10 + 8.84*0.05) * 10
	// = 74.67 -> 75
	assert.Equal(t, 75, scoring.Score(metrics))
}

func TestScore_RangeInvariant(t *testing.T) {
	cases := []models.NormalizedMetrics{
		{},
		{HoursCompleted: 1, TaskQuality: 0.1, Punctuality: 0.1, Teamwork: 0.1, Initiative: 0.1, Feedback: 0.1},
		{HoursCompleted: 100, TaskQuality: 10, Punctuality: 10, Teamwork: 10, Initiative: 10, Feedback: 10},
		{HoursCompleted: 100000, TaskQuality: 10, Punctuality: 10, Teamwork: 10, Initiative: 10, Feedback: 10},
	}

	for _, metrics := range cases {
		score := scoring.Score(metrics)
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
	}

	// Hours cap at 100: more hours cannot push the score past 100
	maxed := models.NormalizedMetrics{HoursCompleted: 100000, TaskQuality: 10, Punctuality: 10, Teamwork: 10, Initiative: 10, Feedback: 10}
	assert.Equal(t, 100, scoring.Score(maxed))
}

func TestScore_Deterministic(t *testing.T) {
	metrics := models.NormalizedMetrics{
		HoursCompleted: 37.5,
		TaskQuality:    7.3,
		Punctuality:    8.1,
		Teamwork:       6.6,
		Initiative:     4,
		Feedback:       7.3,
	}

	first := scoring.Score(metrics)
	second := scoring.Score(metrics)

	assert.Equal(t, first, second)
}

func TestEvaluate_AllRequirementsMet(t *testing.T) {
	metrics := models.NormalizedMetrics{
		HoursCompleted: 45,
		TaskQuality:    8.84,
		Punctuality:    9.2,
		Teamwork:       9.9,
	}

	result := scoring.Evaluate(metrics)

	assert.True(t, result.Eligible)
	assert.Len(t, result.Requirements, 4)
	for name, req := range result.Requirements {
		assert.True(t, req.Met, "requirement %s should be met", name)
	}
}

func TestEvaluate_BoundaryValues(t *testing.T) {
	passing := models.NormalizedMetrics{
		HoursCompleted: 20,
		TaskQuality:    6,
		Punctuality:    7,
		Teamwork:       6,
	}
	assert.True(t, scoring.Evaluate(passing).Eligible, "exact thresholds should pass")

	cases := []struct {
		name        string
		metrics     models.NormalizedMetrics
		requirement string
	}{
		{
			name:        "hours just below threshold",
			metrics:     models.NormalizedMetrics{HoursCompleted: 19, TaskQuality: 6, Punctuality: 7, Teamwork: 6},
			requirement: models.RequirementHours,
		},
		{
			name:        "quality just below threshold",
			metrics:     models.NormalizedMetrics{HoursCompleted: 20, TaskQuality: 5.9, Punctuality: 7, Teamwork: 6},
			requirement: models.RequirementTaskQuality,
		},
		{
			name:        "punctuality just below threshold",
			metrics:     models.NormalizedMetrics{HoursCompleted: 20, TaskQuality: 6, Punctuality: 6.9, Teamwork: 6},
			requirement: models.RequirementPunctuality,
		},
		{
			name:        "teamwork just below threshold",
			metrics:     models.NormalizedMetrics{HoursCompleted: 20, TaskQuality: 6, Punctuality: 7, Teamwork: 5.9},
			requirement: models.RequirementTeamwork,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := scoring.Evaluate(tc.metrics)

			assert.False(t, result.Eligible)
			assert.False(t, result.Requirements[tc.requirement].Met)

			// The other requirements still report met, so the UI can show
			// exactly what remains
			for name, req := range result.Requirements {
				if name != tc.requirement {
					assert.True(t, req.Met, "requirement %s should be met", name)
				}
			}
		})
	}
}

func TestEvaluate_InsufficientHoursWithExcellentMetrics(t *testing.T) {
	activity := models.ActivityRecord{
		HoursLogged:      10,
		FeedbackScores:   []float64{9.5, 9.8, 9.6},
		AttendanceRate:   1,
		OnTimeRate:       0.99,
		LeadershipRoles:  3,
		InitiativesTaken: 4,
	}

	result := scoring.Evaluate(scoring.Normalize(activity))

	assert.False(t, result.Eligible)
	assert.False(t, result.Requirements[models.RequirementHours].Met)
	assert.True(t, result.Requirements[models.RequirementTaskQuality].Met)
	assert.True(t, result.Requirements[models.RequirementPunctuality].Met)
	assert.True(t, result.Requirements[models.RequirementTeamwork].Met)
}

func TestEvaluate_ZeroActivityNeverPanics(t *testing.T) {
	result := scoring.Evaluate(scoring.Normalize(models.ActivityRecord{}))

	assert.False(t, result.Eligible)
	assert.False(t, result.Requirements[models.RequirementHours].Met)
	assert.Len(t, result.Requirements, 4)
}
