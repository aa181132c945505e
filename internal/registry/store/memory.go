package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"landregistry/internal/deed/models"
	"landregistry/pkg/platform/sentinel"
	"landregistry/pkg/requestcontext"
)

// Memory keeps the canonical records in process memory. Used by unit tests
// and by deployments that run without PostgreSQL.
type Memory struct {
	mu       sync.RWMutex
	deeds    map[uuid.UUID]models.Deed
	numbers  map[string]uuid.UUID
	requests map[uuid.UUID]models.VerificationRequest
	logs     map[uuid.UUID][]models.VerificationLog
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		deeds:    make(map[uuid.UUID]models.Deed),
		numbers:  make(map[string]uuid.UUID),
		requests: make(map[uuid.UUID]models.VerificationRequest),
		logs:     make(map[uuid.UUID][]models.VerificationLog),
	}
}

func (m *Memory) Insert(_ context.Context, deed models.Deed) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.deeds[deed.ID]; ok {
		return fmt.Errorf("deed %s already exists: %w", deed.ID, sentinel.ErrConflict)
	}
	if _, ok := m.numbers[deed.DeedNumber]; ok {
		return fmt.Errorf("deed number %s already registered: %w", deed.DeedNumber, sentinel.ErrConflict)
	}
	m.deeds[deed.ID] = deed
	m.numbers[deed.DeedNumber] = deed.ID
	return nil
}

func (m *Memory) FindByID(_ context.Context, id uuid.UUID) (*models.Deed, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	deed, ok := m.deeds[id]
	if !ok {
		return nil, fmt.Errorf("deed %s: %w", id, sentinel.ErrNotFound)
	}
	return &deed, nil
}

func (m *Memory) FindByNumber(ctx context.Context, number string) (*models.Deed, error) {
	m.mu.RLock()
	id, ok := m.numbers[number]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("deed number %s: %w", number, sentinel.ErrNotFound)
	}
	return m.FindByID(ctx, id)
}

func (m *Memory) Update(ctx context.Context, id uuid.UUID, update models.DeedUpdate) (*models.Deed, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	deed, ok := m.deeds[id]
	if !ok {
		return nil, fmt.Errorf("deed %s: %w", id, sentinel.ErrNotFound)
	}

	now := requestcontext.Now(ctx)
	if update.Status != nil {
		// Status changes leave pending exactly once; the recheck under the
		// write lock makes the losing concurrent decision fail.
		if deed.Status != models.DeedStatusPending {
			return nil, fmt.Errorf("deed %s already %s: %w", id, deed.Status, sentinel.ErrInvalidState)
		}
		deed.Status = *update.Status
	}
	if update.VerifiedBy != nil {
		deed.VerifiedBy = update.VerifiedBy
		deed.VerifiedAt = &now
	}
	deed.UpdatedAt = now
	m.deeds[id] = deed
	return &deed, nil
}

func (m *Memory) TransferOwner(ctx context.Context, transfer models.Transfer) (*models.Deed, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	deed, ok := m.deeds[transfer.DeedID]
	if !ok {
		return nil, fmt.Errorf("deed %s: %w", transfer.DeedID, sentinel.ErrNotFound)
	}
	if deed.OwnerID != transfer.FromOwnerID {
		return nil, fmt.Errorf("deed %s owned by %s, not %s: %w",
			deed.ID, deed.OwnerID, transfer.FromOwnerID, sentinel.ErrOwnershipMismatch)
	}

	deed.OwnerID = transfer.ToOwnerID
	deed.Status = models.DeedStatusTransferred
	deed.UpdatedAt = requestcontext.Now(ctx)
	m.deeds[deed.ID] = deed
	return &deed, nil
}

func (m *Memory) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]models.Deed, error) {
	return m.snapshot(func(d models.Deed) bool { return d.OwnerID == ownerID }), nil
}

func (m *Memory) ListByStatus(_ context.Context, status models.DeedStatus) ([]models.Deed, error) {
	return m.snapshot(func(d models.Deed) bool { return d.Status == status }), nil
}

func (m *Memory) snapshot(match func(models.Deed) bool) []models.Deed {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Deed, 0, len(m.deeds))
	for _, deed := range m.deeds {
		if match(deed) {
			out = append(out, deed)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (m *Memory) CreateRequest(_ context.Context, req models.VerificationRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.requests[req.ID]; ok {
		return fmt.Errorf("request %s already exists: %w", req.ID, sentinel.ErrConflict)
	}
	for _, existing := range m.requests {
		if existing.DeedID == req.DeedID && existing.Kind == req.Kind && existing.Status == models.RequestStatusPending {
			return fmt.Errorf("pending %s request already open for deed %s: %w",
				req.Kind, req.DeedID, sentinel.ErrConflict)
		}
	}
	m.requests[req.ID] = req
	return nil
}

func (m *Memory) FindRequest(_ context.Context, id uuid.UUID) (*models.VerificationRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	req, ok := m.requests[id]
	if !ok {
		return nil, fmt.Errorf("verification request %s: %w", id, sentinel.ErrNotFound)
	}
	return &req, nil
}

func (m *Memory) ProcessRequest(_ context.Context, id uuid.UUID, decision models.RequestStatus,
	processedBy uuid.UUID, responseDetails string, processedAt time.Time) (*models.VerificationRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	req, ok := m.requests[id]
	if !ok {
		return nil, fmt.Errorf("verification request %s: %w", id, sentinel.ErrNotFound)
	}
	if req.Status != models.RequestStatusPending {
		return nil, fmt.Errorf("verification request %s already %s: %w",
			id, req.Status, sentinel.ErrAlreadyProcessed)
	}

	req.Status = decision
	req.ProcessedBy = &processedBy
	req.ProcessedAt = &processedAt
	if responseDetails != "" {
		req.ResponseDetails = &responseDetails
	}
	m.requests[id] = req
	return &req, nil
}

func (m *Memory) ListRequestsByDeed(_ context.Context, deedID uuid.UUID) ([]models.VerificationRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.VerificationRequest
	for _, req := range m.requests {
		if req.DeedID == deedID {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) AppendLog(_ context.Context, entry models.VerificationLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs[entry.DeedID] = append(m.logs[entry.DeedID], entry)
	return nil
}

func (m *Memory) ListLogsByDeed(_ context.Context, deedID uuid.UUID) ([]models.VerificationLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := m.logs[deedID]
	out := make([]models.VerificationLog, len(entries))
	copy(out, entries)
	return out, nil
}
