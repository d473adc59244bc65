package scoring

import (
	"github.com/SHASHANK8412/Civil-Soul-sub000/internal/models"
)

// Minimum thresholds a volunteer must meet to earn a certificate.
const (
	MinHoursCompleted = 20.0
	MinTaskQuality    = 6.0
	MinPunctuality    = 7.0
	MinTeamwork       = 6.0
)

// Evaluate compares the normalized metrics against the fixed minimum
// thresholds. All four requirements must pass; each Met flag is computed
// independently so callers can render a progress checklist even on failure.
func Evaluate(metrics models.NormalizedMetrics) models.EligibilityResult {
	requirements := map[string]models.Requirement{
		models.RequirementHours:       requirement(MinHoursCompleted, metrics.HoursCompleted),
		models.RequirementTaskQuality: requirement(MinTaskQuality, metrics.TaskQuality),
		models.RequirementPunctuality: requirement(MinPunctuality, metrics.Punctuality),
		models.RequirementTeamwork:    requirement(MinTeamwork, metrics.Teamwork),
	}

	eligible := true
	for _, req := range requirements {
		if !req.Met {
			eligible = false
			break
		}
	}

	return models.EligibilityResult{
		Eligible:     eligible,
		Requirements: requirements,
	}
}

func requirement(required, current float64) models.Requirement {
	return models.Requirement{
		Required: required,
		Current:  current,
		Met:      current >= required,
	}
}
