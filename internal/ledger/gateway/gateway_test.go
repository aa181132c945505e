package gateway

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landregistry/internal/deed/models"
	"landregistry/internal/ledger"
	"landregistry/pkg/platform/sentinel"
)

// flakyLedger serves from an in-memory ledger until down is set, after which
// every call reports the backend as unreachable.
type flakyLedger struct {
	*ledger.InMemory
	down bool
}

func (f *flakyLedger) unavailable() error {
	return fmt.Errorf("dial tcp: connection refused: %w", sentinel.ErrUnavailable)
}

func (f *flakyLedger) Ping(ctx context.Context) error {
	if f.down {
		return f.unavailable()
	}
	return f.InMemory.Ping(ctx)
}

func (f *flakyLedger) CreateDeed(ctx context.Context, deed models.Deed) (string, error) {
	if f.down {
		return "", f.unavailable()
	}
	return f.InMemory.CreateDeed(ctx, deed)
}

func (f *flakyLedger) GetDeed(ctx context.Context, id uuid.UUID) (*models.Deed, error) {
	if f.down {
		return nil, f.unavailable()
	}
	return f.InMemory.GetDeed(ctx, id)
}

func newDeed() models.Deed {
	return models.Deed{
		ID:              uuid.New(),
		DeedNumber:      "LD-" + uuid.NewString()[:8],
		OwnerID:         uuid.New(),
		PropertyAddress: "3 Mill Street",
		LandArea:        120,
		LandAreaUnit:    "sqm",
	}
}

func TestGatewayLiveMode(t *testing.T) {
	ctx := context.Background()
	live := &flakyLedger{InMemory: ledger.NewInMemory()}
	g := New(ctx, live)

	require.False(t, g.Degraded())

	deed := newDeed()
	rcpt, err := g.CreateDeed(ctx, deed)
	require.NoError(t, err)
	assert.Equal(t, BackendLive, rcpt.Backend)
	assert.False(t, rcpt.Degraded)
	assert.NotEmpty(t, rcpt.TxID)

	got, rcpt, err := g.GetDeed(ctx, deed.ID)
	require.NoError(t, err)
	assert.False(t, rcpt.Degraded)
	assert.Equal(t, deed.DeedNumber, got.DeedNumber)
}

func TestGatewayStartsDegradedWhenUnreachable(t *testing.T) {
	ctx := context.Background()
	live := &flakyLedger{InMemory: ledger.NewInMemory(), down: true}
	g := New(ctx, live)

	require.True(t, g.Degraded())

	rcpt, err := g.CreateDeed(ctx, newDeed())
	require.NoError(t, err)
	assert.Equal(t, BackendMock, rcpt.Backend)
	assert.True(t, rcpt.Degraded)
}

func TestGatewayNilLiveBackend(t *testing.T) {
	ctx := context.Background()
	g := New(ctx, nil)
	require.True(t, g.Degraded())

	rcpt, err := g.CreateDeed(ctx, newDeed())
	require.NoError(t, err)
	assert.True(t, rcpt.Degraded)
}

func TestGatewayTripsOnMidFlightFailure(t *testing.T) {
	ctx := context.Background()
	live := &flakyLedger{InMemory: ledger.NewInMemory()}
	g := New(ctx, live)

	first := newDeed()
	rcpt, err := g.CreateDeed(ctx, first)
	require.NoError(t, err)
	require.False(t, rcpt.Degraded)

	// Backend dies; the failing call is served by the mock and flagged.
	live.down = true
	second := newDeed()
	rcpt, err = g.CreateDeed(ctx, second)
	require.NoError(t, err)
	assert.True(t, rcpt.Degraded)
	assert.Equal(t, BackendMock, rcpt.Backend)
	assert.True(t, g.Degraded())

	// Mock answers for its own writes, not the live backend's.
	got, rcpt, err := g.GetDeed(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, rcpt.Degraded)
	assert.Equal(t, second.DeedNumber, got.DeedNumber)

	_, _, err = g.GetDeed(ctx, first.ID)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestGatewayDoesNotRetryAutomatically(t *testing.T) {
	ctx := context.Background()
	live := &flakyLedger{InMemory: ledger.NewInMemory()}
	g := New(ctx, live)

	live.down = true
	_, err := g.CreateDeed(ctx, newDeed())
	require.NoError(t, err)
	require.True(t, g.Degraded())

	// Backend recovers, but the gateway stays on the mock until told.
	live.down = false
	rcpt, err := g.CreateDeed(ctx, newDeed())
	require.NoError(t, err)
	assert.True(t, rcpt.Degraded)

	require.NoError(t, g.Reconnect(ctx))
	rcpt, err = g.CreateDeed(ctx, newDeed())
	require.NoError(t, err)
	assert.False(t, rcpt.Degraded)
	assert.Equal(t, BackendLive, rcpt.Backend)
}

func TestGatewayDomainErrorsDoNotTrip(t *testing.T) {
	ctx := context.Background()
	live := &flakyLedger{InMemory: ledger.NewInMemory()}
	g := New(ctx, live)

	deed := newDeed()
	_, err := g.CreateDeed(ctx, deed)
	require.NoError(t, err)

	// A conflict is a domain fact, not a connectivity failure.
	_, err = g.CreateDeed(ctx, deed)
	require.ErrorIs(t, err, sentinel.ErrConflict)
	assert.False(t, g.Degraded())
}
