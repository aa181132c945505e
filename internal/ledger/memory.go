package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"landregistry/internal/deed/models"
	"landregistry/pkg/platform/sentinel"
)

// InMemory is the deterministic mock ledger. It satisfies the full Ledger
// contract without contacting any backend: writes get synthetic, monotonically
// distinguishable transaction IDs, and reads answer only for records the mock
// itself committed.
type InMemory struct {
	mu        sync.RWMutex
	deeds     map[uuid.UUID]models.Deed
	numbers   map[string]uuid.UUID // composite deed-number index
	history   map[uuid.UUID][]models.HistoryEntry
	transfers map[uuid.UUID]models.Transfer
	txSeq     uint64
}

// NewInMemory returns an empty mock ledger.
func NewInMemory() *InMemory {
	return &InMemory{
		deeds:     make(map[uuid.UUID]models.Deed),
		numbers:   make(map[string]uuid.UUID),
		history:   make(map[uuid.UUID][]models.HistoryEntry),
		transfers: make(map[uuid.UUID]models.Transfer),
	}
}

// Ping always succeeds: the mock is in-process.
func (l *InMemory) Ping(context.Context) error { return nil }

// nextTxID must be called with the write lock held.
func (l *InMemory) nextTxID() string {
	l.txSeq++
	return fmt.Sprintf("mocktx-%08d", l.txSeq)
}

// appendHistory must be called with the write lock held.
func (l *InMemory) appendHistory(deed models.Deed, txID string, at time.Time) {
	entries := l.history[deed.ID]
	l.history[deed.ID] = append(entries, models.HistoryEntry{
		DeedID:    deed.ID,
		Sequence:  uint64(len(entries) + 1),
		TxID:      txID,
		Deed:      deed,
		Timestamp: at,
	})
}

func (l *InMemory) CreateDeed(_ context.Context, deed models.Deed) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.deeds[deed.ID]; ok {
		return "", fmt.Errorf("deed %s already exists: %w", deed.ID, sentinel.ErrConflict)
	}
	if _, ok := l.numbers[deed.DeedNumber]; ok {
		return "", fmt.Errorf("deed number %s already indexed: %w", deed.DeedNumber, sentinel.ErrConflict)
	}

	now := time.Now()
	deed.Status = models.DeedStatusPending
	deed.CreatedAt = now
	deed.UpdatedAt = now

	txID := l.nextTxID()
	l.deeds[deed.ID] = deed
	l.numbers[deed.DeedNumber] = deed.ID
	l.appendHistory(deed, txID, now)
	return txID, nil
}

func (l *InMemory) GetDeed(_ context.Context, id uuid.UUID) (*models.Deed, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	deed, ok := l.deeds[id]
	if !ok {
		return nil, fmt.Errorf("deed %s: %w", id, sentinel.ErrNotFound)
	}
	return &deed, nil
}

func (l *InMemory) GetDeedByNumber(ctx context.Context, number string) (*models.Deed, error) {
	l.mu.RLock()
	id, ok := l.numbers[number]
	l.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("deed number %s: %w", number, sentinel.ErrNotFound)
	}
	return l.GetDeed(ctx, id)
}

func (l *InMemory) UpdateDeed(_ context.Context, id uuid.UUID, update models.DeedUpdate) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	deed, ok := l.deeds[id]
	if !ok {
		return "", fmt.Errorf("deed %s: %w", id, sentinel.ErrNotFound)
	}

	now := time.Now()
	if update.Status != nil {
		deed.Status = *update.Status
	}
	if update.VerifiedBy != nil {
		deed.VerifiedBy = update.VerifiedBy
		deed.VerifiedAt = &now
	}
	deed.UpdatedAt = now

	txID := l.nextTxID()
	l.deeds[id] = deed
	l.appendHistory(deed, txID, now)
	return txID, nil
}

func (l *InMemory) TransferDeed(_ context.Context, transfer models.Transfer) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	deed, ok := l.deeds[transfer.DeedID]
	if !ok {
		return "", fmt.Errorf("deed %s: %w", transfer.DeedID, sentinel.ErrNotFound)
	}
	if deed.OwnerID != transfer.FromOwnerID {
		return "", fmt.Errorf("deed %s owned by %s, not %s: %w",
			deed.ID, deed.OwnerID, transfer.FromOwnerID, sentinel.ErrOwnershipMismatch)
	}

	now := time.Now()
	deed.OwnerID = transfer.ToOwnerID
	deed.Status = models.DeedStatusTransferred
	deed.UpdatedAt = now

	if transfer.ID == uuid.Nil {
		transfer.ID = uuid.New()
	}
	transfer.TransferredAt = now

	txID := l.nextTxID()
	l.deeds[deed.ID] = deed
	l.transfers[transfer.ID] = transfer
	l.appendHistory(deed, txID, now)
	return txID, nil
}

func (l *InMemory) GetDeedHistory(_ context.Context, id uuid.UUID) ([]models.HistoryEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, ok := l.deeds[id]; !ok {
		return nil, fmt.Errorf("deed %s: %w", id, sentinel.ErrNotFound)
	}
	entries := l.history[id]
	out := make([]models.HistoryEntry, len(entries))
	copy(out, entries)
	return out, nil
}

func (l *InMemory) QueryDeedsByOwner(_ context.Context, ownerID uuid.UUID) ([]models.Deed, error) {
	return l.snapshot(func(d models.Deed) bool { return d.OwnerID == ownerID }), nil
}

func (l *InMemory) QueryDeedsByStatus(_ context.Context, status models.DeedStatus) ([]models.Deed, error) {
	return l.snapshot(func(d models.Deed) bool { return d.Status == status }), nil
}

func (l *InMemory) QueryAllDeeds(_ context.Context) ([]models.Deed, error) {
	return l.snapshot(func(models.Deed) bool { return true }), nil
}

func (l *InMemory) snapshot(match func(models.Deed) bool) []models.Deed {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.Deed, 0, len(l.deeds))
	for _, deed := range l.deeds {
		if match(deed) {
			out = append(out, deed)
		}
	}
	return out
}

// Stats recounts from a single snapshot so the partitions always sum to the
// total, with one goroutine per known status.
func (l *InMemory) Stats(ctx context.Context) (models.DeedStats, error) {
	all, err := l.QueryAllDeeds(ctx)
	if err != nil {
		return models.DeedStats{}, err
	}
	return countByStatus(ctx, all)
}

func countByStatus(ctx context.Context, deeds []models.Deed) (models.DeedStats, error) {
	stats := models.DeedStats{
		Total:    len(deeds),
		ByStatus: make(map[models.DeedStatus]int, len(models.KnownStatuses)),
	}

	var mu sync.Mutex
	g, _ := errgroup.WithContext(ctx)
	for _, status := range models.KnownStatuses {
		g.Go(func() error {
			n := 0
			for _, d := range deeds {
				if d.Status == status {
					n++
				}
			}
			mu.Lock()
			stats.ByStatus[status] = n
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.DeedStats{}, err
	}
	return stats, nil
}
