// Package ledger is the versioned, append-history record store that mirrors
// each deed for audit and verification purposes, independent of the canonical
// relational store. Two implementations share the contract: a live backend on
// Redis and a deterministic in-process mock used in degraded mode.
package ledger

import (
	"context"

	"github.com/google/uuid"

	"landregistry/internal/deed/models"
)

// Ledger is the deed ledger operation contract. Write operations return the
// backend's commit transaction ID. Stores signal factual states with
// pkg/platform/sentinel errors: ErrConflict for an existing record,
// ErrNotFound for unknown identifiers or numbers, ErrOwnershipMismatch for a
// failed transfer precondition, and ErrUnavailable for connectivity failures.
type Ledger interface {
	// Ping reports backend reachability; the gateway uses it at construction.
	Ping(ctx context.Context) error

	CreateDeed(ctx context.Context, deed models.Deed) (string, error)
	GetDeed(ctx context.Context, id uuid.UUID) (*models.Deed, error)
	GetDeedByNumber(ctx context.Context, number string) (*models.Deed, error)
	UpdateDeed(ctx context.Context, id uuid.UUID, update models.DeedUpdate) (string, error)
	TransferDeed(ctx context.Context, transfer models.Transfer) (string, error)

	// GetDeedHistory returns every committed version oldest-first, or
	// ErrNotFound when the key never existed.
	GetDeedHistory(ctx context.Context, id uuid.UUID) ([]models.HistoryEntry, error)

	QueryDeedsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Deed, error)
	QueryDeedsByStatus(ctx context.Context, status models.DeedStatus) ([]models.Deed, error)
	QueryAllDeeds(ctx context.Context) ([]models.Deed, error)

	// Stats rescans the store at call time; it is not a hot path.
	Stats(ctx context.Context) (models.DeedStats, error)
}
