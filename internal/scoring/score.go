package scoring

import (
	"math"

	"github.com/SHASHANK8412/Civil-Soul-sub000/internal/models"
)

// Performance score weights. They sum to 1.00 exactly.
const (
	weightHours       = 0.30
	weightTaskQuality = 0.25
	weightPunctuality = 0.15
	weightTeamwork    = 0.15
	weightInitiative  = 0.10
	weightFeedback    = 0.05

	// fullMarkHours is the hour count that earns full marks on the hours
	// component; below it the component scales linearly.
	fullMarkHours = 100.0
)

// Score combines the normalized sub-scores into a single 0-100 performance
// score. Deterministic and idempotent: same metrics, same integer.
func Score(metrics models.NormalizedMetrics) int {
	normalizedHours := math.Min(metrics.HoursCompleted/fullMarkHours, 1) * 10

	raw := normalizedHours*weightHours +
		metrics.TaskQuality*weightTaskQuality +
		metrics.Punctuality*weightPunctuality +
		metrics.Teamwork*weightTeamwork +
		metrics.Initiative*weightInitiative +
		metrics.Feedback*weightFeedback

	// raw is a 0-10 weighted average; scale to 0-100.
	return int(math.Round(raw * 10))
}
