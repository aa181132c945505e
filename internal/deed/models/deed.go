package models

import (
	"time"

	"github.com/google/uuid"
)

// DeedStatus is the lifecycle status of a deed. Transitions happen only
// through the verification workflow or the transfer operation.
type DeedStatus string

const (
	DeedStatusPending     DeedStatus = "pending"
	DeedStatusVerified    DeedStatus = "verified"
	DeedStatusRejected    DeedStatus = "rejected"
	DeedStatusTransferred DeedStatus = "transferred"
)

// KnownStatuses lists every lifecycle status, in the order stats are reported.
var KnownStatuses = []DeedStatus{
	DeedStatusPending,
	DeedStatusVerified,
	DeedStatusRejected,
	DeedStatusTransferred,
}

// Valid reports whether s is one of the closed set of statuses.
func (s DeedStatus) Valid() bool {
	switch s {
	case DeedStatusPending, DeedStatusVerified, DeedStatusRejected, DeedStatusTransferred:
		return true
	}
	return false
}

// Terminal reports whether a deed in this status accepts no further
// verification decision.
func (s DeedStatus) Terminal() bool {
	return s == DeedStatusVerified || s == DeedStatusRejected || s == DeedStatusTransferred
}

// Deed is the authoritative record of a registered land deed. The relational
// store holds the canonical copy; the ledger holds the audit-trail mirror.
type Deed struct {
	ID              uuid.UUID  `json:"id"`
	DeedNumber      string     `json:"deedNumber"`
	OwnerID         uuid.UUID  `json:"ownerId"`
	PropertyAddress string     `json:"propertyAddress"`
	PropertyType    string     `json:"propertyType"`
	LandArea        float64    `json:"landArea"`
	LandAreaUnit    string     `json:"landAreaUnit"`
	SurveyNotes     string     `json:"surveyNotes,omitempty"`
	DocumentHash    string     `json:"documentHash,omitempty"`
	DocumentAddress string     `json:"documentAddress,omitempty"`
	Status          DeedStatus `json:"status"`
	VerifiedBy      *uuid.UUID `json:"verifiedBy,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	VerifiedAt      *time.Time `json:"verifiedAt,omitempty"`
}

// DeedUpdate is a partial update: only non-nil fields are applied. Supplying
// a verifier also stamps the verification time.
type DeedUpdate struct {
	Status     *DeedStatus
	VerifiedBy *uuid.UUID
}

// DeedStats is the administrative count snapshot, recomputed on every call.
type DeedStats struct {
	Total    int                `json:"total"`
	ByStatus map[DeedStatus]int `json:"byStatus"`
}
