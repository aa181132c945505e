package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, the ledger backends, and
// the document store return these (optionally wrapped) so services can
// translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: record/address does not exist in the backend
// - ErrConflict: uniqueness violated (deed id, deed number, pending request)
// - ErrOwnershipMismatch: transfer precondition failed against current owner
// - ErrInvalidState: record in a terminal state for the requested transition
// - ErrAlreadyProcessed: verification request already decided
// - ErrUnavailable: backend unreachable or timed out
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrOwnershipMismatch = errors.New("ownership mismatch")
	ErrInvalidState      = errors.New("invalid state")
	ErrAlreadyProcessed  = errors.New("already processed")
	ErrUnavailable       = errors.New("unavailable")
)
