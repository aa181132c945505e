package models

import (
	"time"

	"github.com/google/uuid"
)

// Transfer records one ownership change. FromOwnerID must equal the deed's
// current owner at commit time or the transfer is rejected.
type Transfer struct {
	ID            uuid.UUID `json:"id"`
	DeedID        uuid.UUID `json:"deedId"`
	FromOwnerID   uuid.UUID `json:"fromOwnerId"`
	ToOwnerID     uuid.UUID `json:"toOwnerId"`
	Reason        string    `json:"reason"`
	TransferredAt time.Time `json:"transferredAt"`
}
