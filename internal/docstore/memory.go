package docstore

import (
	"context"
	"fmt"
	"sync"

	"landregistry/pkg/contenthash"
	"landregistry/pkg/platform/sentinel"
)

// Memory is the deterministic mock backend. Addresses are derived from the
// content digest so round-trip tests are backend-agnostic; it answers Get only
// for addresses it produced itself.
type Memory struct {
	mu     sync.RWMutex
	blobs  map[string][]byte
	pinned map[string]bool
}

// NewMemory returns an empty in-process document store.
func NewMemory() *Memory {
	return &Memory{
		blobs:  make(map[string][]byte),
		pinned: make(map[string]bool),
	}
}

// memAddress derives the mock's content address from the digest. The prefix
// keeps mock addresses distinguishable from live backend addresses.
func memAddress(data []byte) string {
	return "mem-" + contenthash.Sum(data)
}

func (m *Memory) Put(_ context.Context, data []byte) (PutResult, error) {
	addr := memAddress(data)
	blob := make([]byte, len(data))
	copy(blob, data)

	m.mu.Lock()
	m.blobs[addr] = blob
	m.mu.Unlock()

	return PutResult{Address: addr, Size: int64(len(data)), Backend: BackendMemory}, nil
}

func (m *Memory) Get(_ context.Context, address string) ([]byte, error) {
	m.mu.RLock()
	blob, ok := m.blobs[address]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("address %s: %w", address, sentinel.ErrNotFound)
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

func (m *Memory) Pin(_ context.Context, address string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blobs[address]; !ok {
		return fmt.Errorf("address %s: %w", address, sentinel.ErrNotFound)
	}
	m.pinned[address] = true
	return nil
}

func (m *Memory) Unpin(_ context.Context, address string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pinned, address)
	return nil
}
