package models

import "time"

// ActivityCompletedEvent is the event received from the volunteering
// subsystem when a volunteer finishes an activity.
type ActivityCompletedEvent struct {
	SchemaVersion    string    `json:"schemaVersion"`
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
	ChainReference   string    `json:"chainReference,omitempty"`
	CompletedAt      time.Time `json:"completedAt"`
}

// ActivityRecord converts the event into the engine's input type.
func (e *ActivityCompletedEvent) ActivityRecord() ActivityRecord {
	return ActivityRecord{
		VolunteerID:      e.VolunteerID,
		VolunteerName:    e.VolunteerName,
		OrganizationName: e.OrganizationName,
		ActivityType:     e.ActivityType,
		HoursLogged:      e.HoursLogged,
		TasksCompleted:   e.TasksCompleted,
		FeedbackScores:   e.FeedbackScores,
		AttendanceRate:   e.AttendanceRate,
		OnTimeRate:       e.OnTimeRate,
		LeadershipRoles:  e.LeadershipRoles,
		InitiativesTaken: e.InitiativesTaken,
		ChainReference:   e.ChainReference,
	}
}

// CertificateIssuedEvent is emitted after a certificate is minted and stored.
type CertificateIssuedEvent struct {
	SchemaVersion string       `json:"schemaVersion"`
	Certificate   *Certificate `json:"certificate"`
	Timestamp     time.Time    `json:"timestamp"`
	CorrelationID string       `json:"correlationId"`
}

// CertificateRejectedEvent is emitted when an activity does not meet the
// eligibility thresholds. Rejection is an expected outcome, not a failure.
type CertificateRejectedEvent struct {
	SchemaVersion    string                 `json:"schemaVersion"`
	VolunteerID      string                 `json:"volunteerId"`
	ActivityType     string                 `json:"activityType"`
	PerformanceScore int                    `json:"performanceScore"`
	Requirements     map[string]Requirement `json:"requirements"`
	Timestamp        time.Time              `json:"timestamp"`
	CorrelationID    string                 `json:"correlationId"`
}

// CertificateFailedEvent is emitted when the ledger write fails.
type CertificateFailedEvent struct {
	SchemaVersion string    `json:"schemaVersion"`
	CertificateID string    `json:"certificateId"`
	VolunteerID   string    `json:"volunteerId"`
	ActivityType  string    `json:"activityType"`
	Error         string    `json:"error"`
	Timestamp     time.Time `json:"timestamp"`
	CorrelationID string    `json:"correlationId"`
}
