package models

import (
	"time"

	"github.com/google/uuid"
)

// VerificationKind is what a request asks to have verified.
type VerificationKind string

const (
	VerificationKindOwnership    VerificationKind = "ownership"
	VerificationKindAuthenticity VerificationKind = "authenticity"
	VerificationKindHistory      VerificationKind = "history"
)

// Valid reports whether k is one of the closed set of kinds.
func (k VerificationKind) Valid() bool {
	switch k {
	case VerificationKindOwnership, VerificationKindAuthenticity, VerificationKindHistory:
		return true
	}
	return false
}

// AffectsDeedStatus reports whether a decision on this kind drives the deed's
// own pending -> verified/rejected transition. History lookups do not.
func (k VerificationKind) AffectsDeedStatus() bool {
	return k == VerificationKindOwnership || k == VerificationKindAuthenticity
}

// RequestStatus is the lifecycle of a verification request. pending is the
// only non-terminal state.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// VerificationRequest asks for a human decision on a deed. At most one
// pending request may exist per (deed, kind) pair.
type VerificationRequest struct {
	ID              uuid.UUID        `json:"id"`
	DeedID          uuid.UUID        `json:"deedId"`
	RequesterID     uuid.UUID        `json:"requesterId"`
	Kind            VerificationKind `json:"kind"`
	Details         string           `json:"details,omitempty"`
	Status          RequestStatus    `json:"status"`
	ResponseDetails *string          `json:"responseDetails,omitempty"`
	ProcessedBy     *uuid.UUID       `json:"processedBy,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	ProcessedAt     *time.Time       `json:"processedAt,omitempty"`
}

// VerificationLog is the append-only audit record of one verification
// decision. Never updated or deleted.
type VerificationLog struct {
	ID         uuid.UUID        `json:"id"`
	DeedID     uuid.UUID        `json:"deedId"`
	VerifierID uuid.UUID        `json:"verifierId"`
	Kind       VerificationKind `json:"kind"`
	Result     RequestStatus    `json:"result"`
	Notes      string           `json:"notes,omitempty"`
	Timestamp  time.Time        `json:"timestamp"`
}
