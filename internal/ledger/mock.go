package ledger

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/SHASHANK8412/Civil-Soul-sub000/internal/models"
)

// MockLedger simulates a blockchain ledger with an in-memory map. Writes for
// the same certificate ID are last-write-wins: unlike the chain-backed
// ledger it has no insert-if-absent guard, so a timestamp collision silently
// overwrites the earlier record. Intended for tests and demo deployments.
type MockLedger struct {
	mu           sync.Mutex
	certificates map[string]models.Certificate
}

// NewMockLedger creates an empty in-memory ledger.
func NewMockLedger() *MockLedger {
	return &MockLedger{
		certificates: make(map[string]models.Certificate),
	}
}

// Issue stores the draft under its certificate ID and returns a random
// 64-hex-character hash simulating a 256-bit digest.
func (ml *MockLedger) Issue(ctx context.Context, draft *models.Certificate) (string, error) {
	hash, err := randomLedgerHash()
	if err != nil {
		return "", fmt.Errorf("failed to generate ledger hash: %w", err)
	}

	record := *draft
	record.LedgerHash = hash
	record.Status = models.CertificateStatusIssued
	record.IsValid = true

	ml.mu.Lock()
	ml.certificates[record.CertificateID] = record
	ml.mu.Unlock()

	return hash, nil
}

// Get returns the stored certificate, or (nil, nil) when unknown.
func (ml *MockLedger) Get(ctx context.Context, certificateID string) (*models.Certificate, error) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	record, ok := ml.certificates[certificateID]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Verify reports whether the certificate exists, is issued and carries a
// well-formed hash.
func (ml *MockLedger) Verify(ctx context.Context, certificateID string) (bool, error) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	record, ok := ml.certificates[certificateID]
	if !ok {
		return false, nil
	}
	return record.Status == models.CertificateStatusIssued && models.IsLedgerHash(record.LedgerHash), nil
}

func randomLedgerHash() (string, error) {
	buf := make([]byte, models.LedgerHashLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
