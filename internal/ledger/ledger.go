// Package ledger defines the append-only, tamper-evident store issued
// certificates are minted onto, with a mock implementation for tests and
// demos and a chain-backed implementation for production.
package ledger

import (
	"context"
	"errors"

	"github.com/SHASHANK8412/Civil-Soul-sub000/internal/models"
)

// ErrAlreadyExists is returned by conditional writes when a certificate with
// the same ID is already recorded.
var ErrAlreadyExists = errors.New("certificate already exists")

// Ledger is the tamper-evident store keyed by certificate ID.
//
// Issue accepts a draft certificate without a hash and returns a freshly
// generated ledger hash; it is a single logical attempt and never retries
// internally. Get returns (nil, nil) when the ID is unknown. Verify reports
// whether a record exists, is issued, and carries a well-formed hash.
type Ledger interface {
	Issue(ctx context.Context, draft *models.Certificate) (string, error)
	Get(ctx context.Context, certificateID string) (*models.Certificate, error)
	Verify(ctx context.Context, certificateID string) (bool, error)
}
