// Package docstore persists deed attachments addressed by content. Content
// hashes are always computed locally (pkg/contenthash) before storage, so
// document integrity stays verifiable even when the live backend is down and
// the deterministic mock serves the write.
package docstore

import (
	"context"
	"log/slog"
	"time"
)

// Backend identifies which implementation served a call.
type Backend string

const (
	BackendIPFS   Backend = "ipfs"
	BackendMemory Backend = "memory"
)

// PutResult reports where the bytes landed. Address is an opaque string,
// stable across Put/Get for the backend that produced it.
type PutResult struct {
	Address string
	Size    int64
	Backend Backend
}

// Store is the content-addressed attachment store. Put must be atomic: a
// failed Put leaves nothing observable. Pin and Unpin are advisory retention
// hints; callers treat their failures as warnings, never request failures.
type Store interface {
	Put(ctx context.Context, data []byte) (PutResult, error)
	Get(ctx context.Context, address string) ([]byte, error)
	Pin(ctx context.Context, address string) error
	Unpin(ctx context.Context, address string) error
}

// New selects the backend at process start. The IPFS node is pinged once; a
// node that cannot be reached selects the in-memory store instead of leaving
// every attachment leg degraded.
func New(ctx context.Context, apiURL string, timeout time.Duration, logger *slog.Logger) Store {
	if apiURL == "" {
		logger.Warn("document store: in-memory, attachments do not survive restarts")
		return NewMemory()
	}
	live := NewIPFS(apiURL, timeout)
	if err := live.Ping(ctx); err != nil {
		logger.Warn("document store: ipfs unreachable at start, using in-memory",
			"url", apiURL,
			"error", err,
		)
		return NewMemory()
	}
	logger.Info("document store: ipfs", "url", apiURL)
	return live
}
