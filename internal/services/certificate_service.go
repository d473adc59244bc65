package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SHASHANK8412/Civil-Soul-sub000/internal/ledger"
	"github.com/SHASHANK8412/Civil-Soul-sub000/internal/models"
	"github.com/SHASHANK8412/Civil-Soul-sub000/internal/scoring"
)

const eventSchemaVersion = "1.0"

// CertificateStore is the persistence the service lists and updates
// certificates through. DynamoDBService satisfies it.
type CertificateStore interface {
	SaveCertificate(ctx context.Context, cert *models.Certificate) error
	GetCertificate(ctx context.Context, certificateID string) (*models.Certificate, error)
	ListCertificatesByVolunteer(ctx context.Context, volunteerID string) ([]models.Certificate, error)
	IncrementDownloadCount(ctx context.Context, certificateID string) error
}

// EventPublisher publishes certificate lifecycle events. KafkaService
// satisfies it.
type EventPublisher interface {
	PublishCertificateIssued(ctx context.Context, event *models.CertificateIssuedEvent) error
	PublishCertificateRejected(ctx context.Context, event *models.CertificateRejectedEvent) error
	PublishCertificateFailed(ctx context.Context, event *models.CertificateFailedEvent) error
}

// CertificateService orchestrates certificate issuance and verification:
// normalize metrics, score, evaluate eligibility, mint onto the ledger,
// persist, publish lifecycle events.
type CertificateService struct {
	store     CertificateStore
	ledger    ledger.Ledger
	publisher EventPublisher
	now       func() time.Time
}

// NewCertificateService creates a new CertificateService.
func NewCertificateService(store CertificateStore, ledgerImpl ledger.Ledger, publisher EventPublisher) *CertificateService {
	return &CertificateService{
		store:     store,
		ledger:    ledgerImpl,
		publisher: publisher,
		now:       time.Now,
	}
}

// SetClock overrides the service clock. Intended for tests.
func (cs *CertificateService) SetClock(now func() time.Time) {
	cs.now = now
}

// Preview computes the performance score and eligibility breakdown without
// minting anything.
func (cs *CertificateService) Preview(activity models.ActivityRecord) (*models.EligibilityPreview, error) {
	if err := activity.Validate(); err != nil {
		return nil, err
	}

	metrics := scoring.Normalize(activity)
	eligibility := scoring.Evaluate(metrics)

	return &models.EligibilityPreview{
		PerformanceScore: scoring.Score(metrics),
		Eligible:         eligibility.Eligible,
		Requirements:     eligibility.Requirements,
		Metrics:          metrics,
	}, nil
}

// Issue runs the full issuance flow for one activity record. Ineligible
// activities are rejected without any ledger write. Ledger failures mark the
// certificate failed and are propagated to the caller, never swallowed: a
// silently failed issuance would leave the volunteer believing they hold a
// certificate that does not exist.
func (cs *CertificateService) Issue(ctx context.Context, activity models.ActivityRecord) (*models.IssuanceResult, error) {
	if err := activity.Validate(); err != nil {
		return nil, err
	}

	log.Printf("🔄 Starting issuance for volunteer %s - %s", activity.VolunteerID, activity.ActivityType)

	metrics := scoring.Normalize(activity)
	score := scoring.Score(metrics)
	eligibility := scoring.Evaluate(metrics)

	correlationID := uuid.New().String()

	if !eligibility.Eligible {
		log.Printf("📋 Activity not eligible for volunteer %s (score %d)", activity.VolunteerID, score)

		event := &models.CertificateRejectedEvent{
			SchemaVersion:    eventSchemaVersion,
			VolunteerID:      activity.VolunteerID,
			ActivityType:     activity.ActivityType,
			PerformanceScore: score,
			Requirements:     eligibility.Requirements,
			Timestamp:        cs.now(),
			CorrelationID:    correlationID,
		}
		if err := cs.publisher.PublishCertificateRejected(ctx, event); err != nil {
			log.Printf("⚠️ Failed to publish rejection event: %v", err)
		}

		return &models.IssuanceResult{
			Status:           models.IssuanceStatusRejected,
			Eligible:         false,
			PerformanceScore: score,
			Requirements:     eligibility.Requirements,
		}, nil
	}

	issuedAt := cs.now()
	cert := &models.Certificate{
		CertificateID:    BuildCertificateID(activity.VolunteerName, activity.ActivityType, issuedAt),
		VolunteerID:      activity.VolunteerID,
		VolunteerName:    activity.VolunteerName,
		OrganizationName: activity.OrganizationName,
		ActivityType:     activity.ActivityType,
		HoursCompleted:   metrics.HoursCompleted,
		PerformanceScore: score,
		DateIssued:       issuedAt,
		ChainReference:   activity.ChainReference,
		Status:           models.CertificateStatusPending,
		CreatedAt:        issuedAt,
		UpdatedAt:        issuedAt,
	}

	hash, err := cs.ledger.Issue(ctx, cert)
	if err != nil {
		cert.Status = models.CertificateStatusFailed
		cert.UpdatedAt = cs.now()
		if saveErr := cs.store.SaveCertificate(ctx, cert); saveErr != nil {
			log.Printf("⚠️ Failed to save failed certificate %s: %v", cert.CertificateID, saveErr)
		}

		event := &models.CertificateFailedEvent{
			SchemaVersion: eventSchemaVersion,
			CertificateID: cert.CertificateID,
			VolunteerID:   activity.VolunteerID,
			ActivityType:  activity.ActivityType,
			Error:         err.Error(),
			Timestamp:     cs.now(),
			CorrelationID: correlationID,
		}
		if pubErr := cs.publisher.PublishCertificateFailed(ctx, event); pubErr != nil {
			log.Printf("⚠️ Failed to publish failure event: %v", pubErr)
		}

		return &models.IssuanceResult{
			Status:           models.IssuanceStatusFailed,
			Eligible:         true,
			PerformanceScore: score,
			Requirements:     eligibility.Requirements,
			Certificate:      cert,
		}, fmt.Errorf("failed to issue certificate on ledger: %w", err)
	}

	cert.LedgerHash = hash
	cert.Status = models.CertificateStatusIssued
	cert.IsValid = true
	cert.UpdatedAt = cs.now()

	// The chain ledger persists the record itself through its conditional
	// write, and on a re-issue it hands back the hash of the record it
	// already holds. Saving the draft again in either case would replace
	// the record the hash covers and break verification, so the save only
	// happens when the store has no record carrying the returned hash.
	stored, err := cs.store.GetCertificate(ctx, cert.CertificateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load issued certificate: %w", err)
	}
	if stored != nil && stored.LedgerHash == hash {
		cert = stored
	} else if err := cs.store.SaveCertificate(ctx, cert); err != nil {
		return nil, fmt.Errorf("failed to save issued certificate: %w", err)
	}

	event := &models.CertificateIssuedEvent{
		SchemaVersion: eventSchemaVersion,
		Certificate:   cert,
		Timestamp:     cs.now(),
		CorrelationID: correlationID,
	}
	if err := cs.publisher.PublishCertificateIssued(ctx, event); err != nil {
		log.Printf("⚠️ Failed to publish issuance event: %v", err)
	}

	log.Printf("✅ Certificate issued: %s (score %d)", cert.CertificateID, score)
	return &models.IssuanceResult{
		Status:           models.IssuanceStatusIssued,
		Eligible:         true,
		PerformanceScore: score,
		Requirements:     eligibility.Requirements,
		Certificate:      cert,
	}, nil
}

// Verify looks a certificate up on the ledger and re-derives its validity:
// the ledger check and a structural check of the required fields must both
// pass. Unknown IDs yield isValid=false with a nil certificate, never an
// error.
func (cs *CertificateService) Verify(ctx context.Context, certificateID string) (*models.VerificationResult, error) {
	cert, err := cs.ledger.Get(ctx, certificateID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up certificate: %w", err)
	}

	if cert == nil {
		return &models.VerificationResult{IsValid: false, Certificate: nil}, nil
	}

	ledgerOK, err := cs.ledger.Verify(ctx, certificateID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify certificate: %w", err)
	}

	return &models.VerificationResult{
		IsValid:     ledgerOK && structurallyComplete(cert),
		Certificate: cert,
	}, nil
}

// ListByVolunteer returns one page of a volunteer's certificates.
func (cs *CertificateService) ListByVolunteer(ctx context.Context, volunteerID string, page, limit int) ([]models.Certificate, error) {
	certs, err := cs.store.ListCertificatesByVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list certificates: %w", err)
	}

	offset := (page - 1) * limit
	if offset >= len(certs) {
		return []models.Certificate{}, nil
	}

	end := offset + limit
	if end > len(certs) {
		end = len(certs)
	}

	return certs[offset:end], nil
}

// Download returns the certificate for artifact rendering and bumps its
// download counter. Returns (nil, nil) when the ID is unknown.
func (cs *CertificateService) Download(ctx context.Context, certificateID string) (*models.Certificate, error) {
	cert, err := cs.store.GetCertificate(ctx, certificateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get certificate: %w", err)
	}
	if cert == nil {
		return nil, nil
	}

	if err := cs.store.IncrementDownloadCount(ctx, certificateID); err != nil {
		log.Printf("⚠️ Failed to increment download count for %s: %v", certificateID, err)
	} else {
		cert.DownloadCount++
	}

	return cert, nil
}

// HandleActivityCompleted processes an activity-completed event from the
// volunteering subsystem by running the issuance flow. A rejection is a
// normal outcome and consumes the event successfully.
func (cs *CertificateService) HandleActivityCompleted(ctx context.Context, event *models.ActivityCompletedEvent) error {
	result, err := cs.Issue(ctx, event.ActivityRecord())
	if err != nil {
		return fmt.Errorf("failed to process activity event: %w", err)
	}

	if result.Status == models.IssuanceStatusRejected {
		log.Printf("📋 Activity for volunteer %s not yet eligible", event.VolunteerID)
	}
	return nil
}

// structurallyComplete checks that the fields a verifiable certificate must
// carry are present. The positivity checks on hours and score lean on the
// issuance invariants: an eligible certificate always has hours >= 20 and a
// score well above zero, so a zero here means the record was corrupted.
func structurallyComplete(cert *models.Certificate) bool {
	return cert.VolunteerName != "" &&
		cert.OrganizationName != "" &&
		cert.ActivityType != "" &&
		cert.HoursCompleted > 0 &&
		cert.PerformanceScore > 0 &&
		!cert.DateIssued.IsZero()
}

// BuildCertificateID derives the certificate ID from the volunteer name,
// activity type and issuance timestamp: CERT-<VOLUNTEER>-<ACTIVITY>-<millis>,
// uppercased with whitespace stripped. Two issuances for the same volunteer
// and activity in the same millisecond collide; the ledger's
// insert-if-absent write is what guards against overwrites.
func BuildCertificateID(volunteerName, activityType string, issuedAt time.Time) string {
	return fmt.Sprintf("CERT-%s-%s-%d",
		stripWhitespace(volunteerName),
		stripWhitespace(activityType),
		issuedAt.UnixMilli(),
	)
}

func stripWhitespace(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}
