package audit

import (
	"time"

	"github.com/google/uuid"
)

// Action names the deed operation an event records.
type Action string

const (
	ActionDeedCreated         Action = "deed.created"
	ActionDeedTransferred     Action = "deed.transferred"
	ActionDeedVerified        Action = "deed.verified"
	ActionVerificationOpened  Action = "verification.opened"
	ActionVerificationDecided Action = "verification.decided"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	ActorID   uuid.UUID `json:"actorId"`
	DeedID    uuid.UUID `json:"deedId"`
	Action    Action    `json:"action"`
	TxID      string    `json:"txId,omitempty"`
	Backend   string    `json:"backend,omitempty"`
	Degraded  bool      `json:"degraded,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}
