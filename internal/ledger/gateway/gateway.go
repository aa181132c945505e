// Package gateway presents one stable ledger interface to the coordinator
// regardless of whether the backing ledger is reachable. On a connectivity
// failure it switches to the in-process mock and stays there; it never retries
// the live backend on its own. Every result carries a receipt naming the
// backend that served it.
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"landregistry/internal/deed/models"
	"landregistry/internal/ledger"
	"landregistry/pkg/platform/sentinel"
)

// Backend identifies which implementation served a call.
type Backend string

const (
	BackendLive Backend = "live"
	BackendMock Backend = "mock"
)

// Receipt accompanies every gateway result. Degraded means the mock served
// the call, either because the live backend was down at construction or
// because this call tripped the fallback.
type Receipt struct {
	Backend  Backend
	TxID     string
	Degraded bool
}

// Option configures a Gateway.
type Option func(g *Gateway)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) { g.logger = logger }
}

// Gateway wraps a live ledger with a mock fallback sharing the same contract.
type Gateway struct {
	live ledger.Ledger // nil when no live backend was configured
	mock ledger.Ledger

	mu       sync.RWMutex
	degraded bool

	logger *slog.Logger
}

// New probes the live backend once and selects the starting mode. Passing a
// nil live ledger starts degraded immediately (mock-only deployments).
func New(ctx context.Context, live ledger.Ledger, opts ...Option) *Gateway {
	g := &Gateway{
		live:   live,
		mock:   ledger.NewInMemory(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if live == nil {
		g.degraded = true
		g.logger.Warn("ledger gateway starting in degraded mode: no live backend configured")
		return g
	}
	if err := live.Ping(ctx); err != nil {
		g.degraded = true
		g.logger.Warn("ledger gateway starting in degraded mode: live backend unreachable", "error", err)
	}
	return g
}

// Degraded reports whether calls are currently served by the mock.
func (g *Gateway) Degraded() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.degraded
}

// Reconnect re-probes the live backend. The gateway never does this on its
// own; supervisors above it decide when to retry.
func (g *Gateway) Reconnect(ctx context.Context) error {
	if g.live == nil {
		return sentinel.ErrUnavailable
	}
	if err := g.live.Ping(ctx); err != nil {
		return err
	}
	g.mu.Lock()
	g.degraded = false
	g.mu.Unlock()
	g.logger.Info("ledger gateway reconnected to live backend")
	return nil
}

// backend picks the implementation for this call.
func (g *Gateway) backend() (ledger.Ledger, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.degraded {
		return g.mock, true
	}
	return g.live, false
}

// trip flips to the mock after a live connectivity failure. The failed call
// itself is not retried against the live backend.
func (g *Gateway) trip(err error) {
	g.mu.Lock()
	already := g.degraded
	g.degraded = true
	g.mu.Unlock()
	if !already {
		g.logger.Error("ledger backend unreachable, switching to mock", "error", err)
	}
}

func receipt(txID string, degraded bool) Receipt {
	b := BackendLive
	if degraded {
		b = BackendMock
	}
	return Receipt{Backend: b, TxID: txID, Degraded: degraded}
}

// fellBack reports whether err warrants serving the call from the mock.
func fellBack(err error, degraded bool) bool {
	return err != nil && !degraded && errors.Is(err, sentinel.ErrUnavailable)
}

func (g *Gateway) CreateDeed(ctx context.Context, deed models.Deed) (Receipt, error) {
	l, degraded := g.backend()
	txID, err := l.CreateDeed(ctx, deed)
	if fellBack(err, degraded) {
		g.trip(err)
		txID, err = g.mock.CreateDeed(ctx, deed)
		degraded = true
	}
	if err != nil {
		return receipt("", degraded), err
	}
	return receipt(txID, degraded), nil
}

func (g *Gateway) GetDeed(ctx context.Context, id uuid.UUID) (*models.Deed, Receipt, error) {
	l, degraded := g.backend()
	deed, err := l.GetDeed(ctx, id)
	if fellBack(err, degraded) {
		g.trip(err)
		deed, err = g.mock.GetDeed(ctx, id)
		degraded = true
	}
	return deed, receipt("", degraded), err
}

func (g *Gateway) GetDeedByNumber(ctx context.Context, number string) (*models.Deed, Receipt, error) {
	l, degraded := g.backend()
	deed, err := l.GetDeedByNumber(ctx, number)
	if fellBack(err, degraded) {
		g.trip(err)
		deed, err = g.mock.GetDeedByNumber(ctx, number)
		degraded = true
	}
	return deed, receipt("", degraded), err
}

func (g *Gateway) UpdateDeed(ctx context.Context, id uuid.UUID, update models.DeedUpdate) (Receipt, error) {
	l, degraded := g.backend()
	txID, err := l.UpdateDeed(ctx, id, update)
	if fellBack(err, degraded) {
		g.trip(err)
		txID, err = g.mock.UpdateDeed(ctx, id, update)
		degraded = true
	}
	if err != nil {
		return receipt("", degraded), err
	}
	return receipt(txID, degraded), nil
}

func (g *Gateway) TransferDeed(ctx context.Context, transfer models.Transfer) (Receipt, error) {
	l, degraded := g.backend()
	txID, err := l.TransferDeed(ctx, transfer)
	if fellBack(err, degraded) {
		g.trip(err)
		txID, err = g.mock.TransferDeed(ctx, transfer)
		degraded = true
	}
	if err != nil {
		return receipt("", degraded), err
	}
	return receipt(txID, degraded), nil
}

func (g *Gateway) GetDeedHistory(ctx context.Context, id uuid.UUID) ([]models.HistoryEntry, Receipt, error) {
	l, degraded := g.backend()
	entries, err := l.GetDeedHistory(ctx, id)
	if fellBack(err, degraded) {
		g.trip(err)
		entries, err = g.mock.GetDeedHistory(ctx, id)
		degraded = true
	}
	return entries, receipt("", degraded), err
}

func (g *Gateway) QueryDeedsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Deed, Receipt, error) {
	l, degraded := g.backend()
	deeds, err := l.QueryDeedsByOwner(ctx, ownerID)
	if fellBack(err, degraded) {
		g.trip(err)
		deeds, err = g.mock.QueryDeedsByOwner(ctx, ownerID)
		degraded = true
	}
	return deeds, receipt("", degraded), err
}

func (g *Gateway) QueryDeedsByStatus(ctx context.Context, status models.DeedStatus) ([]models.Deed, Receipt, error) {
	l, degraded := g.backend()
	deeds, err := l.QueryDeedsByStatus(ctx, status)
	if fellBack(err, degraded) {
		g.trip(err)
		deeds, err = g.mock.QueryDeedsByStatus(ctx, status)
		degraded = true
	}
	return deeds, receipt("", degraded), err
}

func (g *Gateway) QueryAllDeeds(ctx context.Context) ([]models.Deed, Receipt, error) {
	l, degraded := g.backend()
	deeds, err := l.QueryAllDeeds(ctx)
	if fellBack(err, degraded) {
		g.trip(err)
		deeds, err = g.mock.QueryAllDeeds(ctx)
		degraded = true
	}
	return deeds, receipt("", degraded), err
}

func (g *Gateway) Stats(ctx context.Context) (models.DeedStats, Receipt, error) {
	l, degraded := g.backend()
	stats, err := l.Stats(ctx)
	if fellBack(err, degraded) {
		g.trip(err)
		stats, err = g.mock.Stats(ctx)
		degraded = true
	}
	return stats, receipt("", degraded), err
}
