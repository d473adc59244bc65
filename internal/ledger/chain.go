package ledger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/SHASHANK8412/Civil-Soul-sub000/internal/models"
)

// CertificateStore is the persistence the chain ledger records into. The
// DynamoDB service satisfies it.
type CertificateStore interface {
	PutCertificateIfAbsent(ctx context.Context, cert *models.Certificate) error
	GetCertificate(ctx context.Context, certificateID string) (*models.Certificate, error)
}

// ChainLedger is the production Ledger: certificates are persisted through
// an atomic insert-if-absent write and hashed over their canonical JSON
// payload. In strict mode Verify also confirms the certificate's transaction
// receipt on chain.
type ChainLedger struct {
	client     *ethclient.Client
	store      CertificateStore
	timeout    time.Duration
	maxRetries int
	strict     bool
}

// NewChainLedger connects to the blockchain RPC endpoint and wraps the
// given certificate store.
func NewChainLedger(rpcURL string, store CertificateStore, timeout time.Duration, maxRetries int, strict bool) (*ChainLedger, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to blockchain: %w", err)
	}

	return &ChainLedger{
		client:     client,
		store:      store,
		timeout:    timeout,
		maxRetries: maxRetries,
		strict:     strict,
	}, nil
}

// Issue computes the content hash for the draft and persists it with an
// insert-if-absent write. Re-issuing an existing certificate ID is a no-op
// that returns the stored hash instead of overwriting the record.
func (cl *ChainLedger) Issue(ctx context.Context, draft *models.Certificate) (string, error) {
	hash, err := contentHash(draft)
	if err != nil {
		return "", fmt.Errorf("failed to compute content hash: %w", err)
	}

	record := *draft
	record.LedgerHash = hash
	record.Status = models.CertificateStatusIssued
	record.IsValid = true

	err = cl.store.PutCertificateIfAbsent(ctx, &record)
	if errors.Is(err, ErrAlreadyExists) {
		existing, getErr := cl.store.GetCertificate(ctx, record.CertificateID)
		if getErr != nil {
			return "", fmt.Errorf("failed to load existing certificate: %w", getErr)
		}
		if existing == nil {
			return "", fmt.Errorf("certificate %s vanished after conditional write", record.CertificateID)
		}
		log.Printf("⚠️ Certificate already on ledger, returning stored hash: %s", record.CertificateID)
		return existing.LedgerHash, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to write certificate to ledger: %w", err)
	}

	return hash, nil
}

// Get returns the stored certificate, or (nil, nil) when unknown.
func (cl *ChainLedger) Get(ctx context.Context, certificateID string) (*models.Certificate, error) {
	return cl.store.GetCertificate(ctx, certificateID)
}

// Verify checks that the certificate exists, is issued, carries a
// well-formed hash and that the hash matches its recomputed content hash.
// In strict mode the chain reference must also resolve to a transaction
// receipt.
func (cl *ChainLedger) Verify(ctx context.Context, certificateID string) (bool, error) {
	cert, err := cl.store.GetCertificate(ctx, certificateID)
	if err != nil {
		return false, fmt.Errorf("failed to load certificate: %w", err)
	}
	if cert == nil {
		return false, nil
	}

	if cert.Status != models.CertificateStatusIssued || !models.IsLedgerHash(cert.LedgerHash) {
		return false, nil
	}

	expected, err := contentHash(cert)
	if err != nil {
		return false, fmt.Errorf("failed to recompute content hash: %w", err)
	}
	if expected != cert.LedgerHash {
		log.Printf("⚠️ Hash mismatch for certificate %s: stored=%s recomputed=%s", certificateID, cert.LedgerHash, expected)
		return false, nil
	}

	if cl.strict && cert.ChainReference != "" {
		if err := cl.confirmReceipt(ctx, cert.ChainReference); err != nil {
			log.Printf("⚠️ Chain confirmation failed for certificate %s: %v", certificateID, err)
			return false, nil
		}
	}

	return true, nil
}

// confirmReceipt looks up the transaction receipt with bounded retries.
func (cl *ChainLedger) confirmReceipt(ctx context.Context, chainReference string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, cl.timeout)
	defer cancel()

	txHash := common.HexToHash(chainReference)

	var err error
	for i := 0; i < cl.maxRetries; i++ {
		_, err = cl.client.TransactionReceipt(ctxWithTimeout, txHash)
		if err == nil {
			return nil
		}

		if i < cl.maxRetries-1 {
			time.Sleep(time.Duration(i+1) * time.Second)
		}
	}

	return fmt.Errorf("transaction not found after %d attempts: %w", cl.maxRetries, err)
}

// CheckConnection verifies the blockchain RPC endpoint is reachable.
func (cl *ChainLedger) CheckConnection(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := cl.client.NetworkID(ctxWithTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to blockchain: %w", err)
	}

	log.Println("✅ Blockchain connection verified")
	return nil
}

// Close closes the blockchain client.
func (cl *ChainLedger) Close() {
	if cl.client != nil {
		cl.client.Close()
	}
}

// hashPayload is the canonical certificate content covered by the ledger
// hash. Mutable fields (status, download counter, timestamps of record
// maintenance) are excluded so the hash stays stable for the life of the
// certificate.
type hashPayload struct {
	CertificateID    string  `json:"certificateId"`
	VolunteerID      string  `json:"volunteerId"`
	VolunteerName    string  `json:"volunteerName"`
	OrganizationName string  `json:"organizationName"`
	ActivityType     string  `json:"activityType"`
	HoursCompleted   float64 `json:"hoursCompleted"`
	PerformanceScore int     `json:"performanceScore"`
	DateIssued       string  `json:"dateIssued"`
}

func contentHash(cert *models.Certificate) (string, error) {
	payload := hashPayload{
		CertificateID:    cert.CertificateID,
		VolunteerID:      cert.VolunteerID,
		VolunteerName:    cert.VolunteerName,
		OrganizationName: cert.OrganizationName,
		ActivityType:     cert.ActivityType,
		HoursCompleted:   cert.HoursCompleted,
		PerformanceScore: cert.PerformanceScore,
		DateIssued:       cert.DateIssued.UTC().Format(time.RFC3339Nano),
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal hash payload: %w", err)
	}

	digest := sha256.Sum256(jsonData)
	return hex.EncodeToString(digest[:]), nil
}
