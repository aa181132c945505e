// Package store holds the canonical relational records for deeds and the
// verification workflow. The ledger mirrors these records for audit; this
// package is the source of truth the API serves from.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"landregistry/internal/deed/models"
)

// DeedStore persists the canonical deed records. Implementations map storage
// failures to the platform sentinel errors.
type DeedStore interface {
	// Insert stores a new deed. Returns sentinel.ErrConflict when the ID or
	// the deed number is already taken.
	Insert(ctx context.Context, deed models.Deed) error

	FindByID(ctx context.Context, id uuid.UUID) (*models.Deed, error)
	FindByNumber(ctx context.Context, number string) (*models.Deed, error)

	// Update applies the non-nil fields of the update and returns the stored
	// row. Supplying a verifier stamps the verification time.
	Update(ctx context.Context, id uuid.UUID, update models.DeedUpdate) (*models.Deed, error)

	// TransferOwner atomically reassigns ownership. The transfer's FromOwnerID
	// must match the current owner at commit time; a stale expectation returns
	// sentinel.ErrOwnershipMismatch and leaves the row untouched.
	TransferOwner(ctx context.Context, transfer models.Transfer) (*models.Deed, error)

	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Deed, error)
	ListByStatus(ctx context.Context, status models.DeedStatus) ([]models.Deed, error)
}

// VerificationStore persists verification requests and the append-only
// decision log.
type VerificationStore interface {
	// CreateRequest stores a new pending request. Returns sentinel.ErrConflict
	// when a pending request already exists for the same deed and kind.
	CreateRequest(ctx context.Context, req models.VerificationRequest) error

	FindRequest(ctx context.Context, id uuid.UUID) (*models.VerificationRequest, error)

	// ProcessRequest records the decision on a pending request and returns the
	// updated row. A request that is no longer pending returns
	// sentinel.ErrAlreadyProcessed, so concurrent officials cannot both win.
	ProcessRequest(ctx context.Context, id uuid.UUID, decision models.RequestStatus,
		processedBy uuid.UUID, responseDetails string, processedAt time.Time) (*models.VerificationRequest, error)

	ListRequestsByDeed(ctx context.Context, deedID uuid.UUID) ([]models.VerificationRequest, error)

	// AppendLog records one verification decision. Logs are never updated.
	AppendLog(ctx context.Context, entry models.VerificationLog) error
	ListLogsByDeed(ctx context.Context, deedID uuid.UUID) ([]models.VerificationLog, error)
}
