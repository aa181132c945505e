package models

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry is an immutable snapshot of a deed's full state at one
// committed mutation. Keyed by (deed ID, sequence); never rewritten.
type HistoryEntry struct {
	DeedID    uuid.UUID `json:"deedId"`
	Sequence  uint64    `json:"sequence"`
	TxID      string    `json:"txId"`
	Deed      Deed      `json:"deed"`
	Timestamp time.Time `json:"timestamp"`
}
