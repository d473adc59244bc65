package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ActivityRecord represents one volunteer's tracked work on one activity.
// It is supplied by the volunteering/tracking subsystem and is read-only here.
type ActivityRecord struct {
	VolunteerID      string    `json:"volunteerId"`
	VolunteerName    string    `json:"volunteerName"`
	OrganizationName string    `json:"organizationName"`
	ActivityType     string    `json:"activityType"`
	HoursLogged      float64   `json:"hoursLogged"`
	TasksCompleted   int       `json:"tasksCompleted"`
	FeedbackScores   []float64 `json:"feedbackScores"`
	AttendanceRate   float64   `json:"attendanceRate"`
	OnTimeRate       float64   `json:"onTimeRate"`
	LeadershipRoles  int       `json:"leadershipRoles"`
	InitiativesTaken int       `json:"initiativesTaken"`

	// ChainReference is the transaction hash under which the tracking
	// subsystem anchored this activity on chain. Optional; when present it
	// is carried onto the certificate for strict verification.
	ChainReference string `json:"chainReference,omitempty"`
}

// Validate checks the identifying fields. Numeric metric fields are defaulted
// during normalization instead; identifying strings are never defaulted.
func (a *ActivityRecord) Validate() error {
	fields := map[string]string{}

	if strings.TrimSpace(a.VolunteerID) == "" {
		fields["volunteerId"] = "volunteerId is required"
	}
	if strings.TrimSpace(a.VolunteerName) == "" {
		fields["volunteerName"] = "volunteerName is required"
	}
	if strings.TrimSpace(a.OrganizationName) == "" {
		fields["organizationName"] = "organizationName is required"
	}
	if strings.TrimSpace(a.ActivityType) == "" {
		fields["activityType"] = "activityType is required"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidationError carries field-level detail for a malformed ActivityRecord.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid activity record: %s", strings.Join(names, ", "))
}

// NormalizedMetrics holds the 0-10 scaled sub-scores derived from an
// ActivityRecord. Immutable once computed; every bounded field is clamped
// into [0,10].
type NormalizedMetrics struct {
	HoursCompleted float64 `json:"hoursCompleted"`
	TaskQuality    float64 `json:"taskQuality"`
	Punctuality    float64 `json:"punctuality"`
	Teamwork       float64 `json:"teamwork"`
	Initiative     float64 `json:"initiative"`
	Feedback       float64 `json:"feedback"`
}

// Requirement reports one eligibility threshold against the current value.
type Requirement struct {
	Required float64 `json:"required"`
	Current  float64 `json:"current"`
	Met      bool    `json:"met"`
}

// EligibilityResult is the pass/fail decision plus the per-requirement
// breakdown, always populated so the UI can render a progress checklist.
type EligibilityResult struct {
	Eligible     bool                   `json:"eligible"`
	Requirements map[string]Requirement `json:"requirements"`
}

// Requirement names used as keys in EligibilityResult.Requirements
const (
	RequirementHours       = "hoursCompleted"
	RequirementTaskQuality = "taskQuality"
	RequirementPunctuality = "punctuality"
	RequirementTeamwork    = "teamwork"
)

// Certificate statuses
const (
	CertificateStatusPending = "pending"
	CertificateStatusIssued  = "issued"
	CertificateStatusFailed  = "failed"
)

// Issuance outcomes
const (
	IssuanceStatusIssued   = "issued"
	IssuanceStatusRejected = "rejected"
	IssuanceStatusFailed   = "failed"
)

// Certificate is the ledger entry attesting to a volunteer's qualifying
// performance. Immutable after issuance except for status and downloadCount.
type Certificate struct {
	CertificateID    string    `json:"certificateId" dynamodbav:"certificateId"`
	VolunteerID      string    `json:"volunteerId" dynamodbav:"volunteerId"`
	VolunteerName    string    `json:"volunteerName" dynamodbav:"volunteerName"`
	OrganizationName string    `json:"organizationName" dynamodbav:"organizationName"`
	ActivityType     string    `json:"activityType" dynamodbav:"activityType"`
	HoursCompleted   float64   `json:"hoursCompleted" dynamodbav:"hoursCompleted"`
	PerformanceScore int       `json:"performanceScore" dynamodbav:"performanceScore"`
	DateIssued       time.Time `json:"dateIssued" dynamodbav:"dateIssued"`
	LedgerHash       string    `json:"ledgerHash,omitempty" dynamodbav:"ledgerHash"`
	ChainReference   string    `json:"chainReference,omitempty" dynamodbav:"chainReference"`
	Status           string    `json:"status" dynamodbav:"status"`
	IsValid          bool      `json:"isValid" dynamodbav:"isValid"`
	DownloadCount    int       `json:"downloadCount" dynamodbav:"downloadCount"`
	CreatedAt        time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

// LedgerHashLength is the fixed hex length of a well-formed ledger hash,
// simulating a 256-bit digest.
const LedgerHashLength = 64

// IsLedgerHash reports whether s is a well-formed ledger hash: exactly 64
// lowercase hex characters.
func IsLedgerHash(s string) bool {
	if len(s) != LedgerHashLength {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

// Valid re-derives the certificate's validity from its own fields.
func (c *Certificate) Valid() bool {
	return c.Status == CertificateStatusIssued && IsLedgerHash(c.LedgerHash)
}

// GenerateCertificateRequest binds the body of POST /api/certificates/generate.
type GenerateCertificateRequest struct {
	VolunteerID      string    `json:"volunteerId" binding:"required"`
	VolunteerName    string    `json:"volunteerName" binding:"required"`
	OrganizationName string    `json:"organizationName" binding:"required"`
	ActivityType     string    `json:"activityType" binding:"required"`
	HoursLogged      float64   `json:"hoursLogged"`
	TasksCompleted   int       `json:"tasksCompleted"`
	FeedbackScores   []float64 `json:"feedbackScores"`
	AttendanceRate   float64   `json:"attendanceRate"`
	OnTimeRate       float64   `json:"onTimeRate"`
	LeadershipRoles  int       `json:"leadershipRoles"`
	InitiativesTaken int       `json:"initiativesTaken"`
	ChainReference   string    `json:"chainReference,omitempty"`
}

// ActivityRecord converts the request into the engine's input type.
func (r *GenerateCertificateRequest) ActivityRecord() ActivityRecord {
	return ActivityRecord{
		VolunteerID:      r.VolunteerID,
		VolunteerName:    r.VolunteerName,
		OrganizationName: r.OrganizationName,
		ActivityType:     r.ActivityType,
		HoursLogged:      r.HoursLogged,
		TasksCompleted:   r.TasksCompleted,
		FeedbackScores:   r.FeedbackScores,
		AttendanceRate:   r.AttendanceRate,
		OnTimeRate:       r.OnTimeRate,
		LeadershipRoles:  r.LeadershipRoles,
		InitiativesTaken: r.InitiativesTaken,
		ChainReference:   r.ChainReference,
	}
}

// IssuanceResult is the outcome of one issuance attempt: issued, rejected
// (not eligible) or failed (ledger error). One-shot, no further transitions.
type IssuanceResult struct {
	Status           string                 `json:"status"`
	Eligible         bool                   `json:"eligible"`
	PerformanceScore int                    `json:"performanceScore"`
	Requirements     map[string]Requirement `json:"requirements"`
	Certificate      *Certificate           `json:"certificate,omitempty"`
}

// EligibilityPreview is the score + eligibility snapshot returned without
// minting anything, for progress display.
type EligibilityPreview struct {
	PerformanceScore int                    `json:"performanceScore"`
	Eligible         bool                   `json:"eligible"`
	Requirements     map[string]Requirement `json:"requirements"`
	Metrics          NormalizedMetrics      `json:"metrics"`
}

// VerificationResult is the public verification outcome. An unknown
// certificate yields IsValid=false with a nil certificate, never an error.
type VerificationResult struct {
	IsValid     bool         `json:"isValid"`
	Certificate *Certificate `json:"certificate"`
}
