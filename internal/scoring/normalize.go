package scoring

import (
	"github.com/SHASHANK8412/Civil-Soul-sub000/internal/models"
)

// neutralTaskQuality is assumed when an activity carries no feedback scores.
const neutralTaskQuality = 5.0

// Normalize converts raw activity-tracking fields into 0-10 scaled
// sub-scores. Pure and total: missing numeric fields default to zero, an
// empty feedback list defaults to the neutral quality, and every bounded
// output is clamped into [0,10].
func Normalize(activity models.ActivityRecord) models.NormalizedMetrics {
	taskQuality := neutralTaskQuality
	if len(activity.FeedbackScores) > 0 {
		sum := 0.0
		for _, score := range activity.FeedbackScores {
			sum += score
		}
		taskQuality = sum / float64(len(activity.FeedbackScores))
	}
	taskQuality = clamp10(taskQuality)

	hours := activity.HoursLogged
	if hours < 0 {
		hours = 0
	}

	return models.NormalizedMetrics{
		HoursCompleted: hours,
		TaskQuality:    taskQuality,
		Punctuality:    clamp10(activity.OnTimeRate * 10),
		Teamwork:       clamp10((activity.AttendanceRate + float64(activity.LeadershipRoles)*2) * 2),
		Initiative:     clamp10(float64(activity.InitiativesTaken) * 2),
		Feedback:       taskQuality,
	}
}

// clamp10 bounds v into [0,10]. The lower bound guards against negative
// rates slipping in from the tracking subsystem.
func clamp10(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
