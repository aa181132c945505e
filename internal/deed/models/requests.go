package models

import (
	"strings"

	"github.com/google/uuid"

	dErrors "landregistry/pkg/domain-errors"
)

// CreateDeedRequest carries the fields needed to register a deed, plus an
// optional attachment payload handed through from the upload transport.
type CreateDeedRequest struct {
	DeedNumber      string    `json:"deedNumber"`
	OwnerID         uuid.UUID `json:"ownerId"`
	PropertyAddress string    `json:"propertyAddress"`
	PropertyType    string    `json:"propertyType"`
	LandArea        float64   `json:"landArea"`
	LandAreaUnit    string    `json:"landAreaUnit"`
	SurveyNotes     string    `json:"surveyNotes,omitempty"`

	// Attachment bytes are optional and never serialized back out.
	Attachment []byte `json:"-"`
}

// Normalize trims free-text fields in place.
func (r *CreateDeedRequest) Normalize() {
	r.DeedNumber = strings.TrimSpace(r.DeedNumber)
	r.PropertyAddress = strings.TrimSpace(r.PropertyAddress)
	r.PropertyType = strings.TrimSpace(r.PropertyType)
	r.LandAreaUnit = strings.TrimSpace(r.LandAreaUnit)
	r.SurveyNotes = strings.TrimSpace(r.SurveyNotes)
}

// Validate checks required fields. Malformed input is never retried, so the
// message names the first missing field for the caller.
func (r *CreateDeedRequest) Validate() error {
	switch {
	case r.DeedNumber == "":
		return dErrors.New(dErrors.CodeValidation, "deed number is required")
	case r.OwnerID == uuid.Nil:
		return dErrors.New(dErrors.CodeValidation, "owner id is required")
	case r.PropertyAddress == "":
		return dErrors.New(dErrors.CodeValidation, "property address is required")
	case r.LandArea <= 0:
		return dErrors.New(dErrors.CodeValidation, "land area must be positive")
	}
	return nil
}

// TransferDeedRequest carries an ownership transfer.
type TransferDeedRequest struct {
	DeedID      uuid.UUID `json:"deedId"`
	FromOwnerID uuid.UUID `json:"fromOwnerId"`
	ToOwnerID   uuid.UUID `json:"toOwnerId"`
	Reason      string    `json:"reason"`
}

func (r *TransferDeedRequest) Normalize() {
	r.Reason = strings.TrimSpace(r.Reason)
}

func (r *TransferDeedRequest) Validate() error {
	switch {
	case r.DeedID == uuid.Nil:
		return dErrors.New(dErrors.CodeValidation, "deed id is required")
	case r.FromOwnerID == uuid.Nil:
		return dErrors.New(dErrors.CodeValidation, "from owner id is required")
	case r.ToOwnerID == uuid.Nil:
		return dErrors.New(dErrors.CodeValidation, "to owner id is required")
	case r.FromOwnerID == r.ToOwnerID:
		return dErrors.New(dErrors.CodeValidation, "transfer must change the owner")
	}
	return nil
}

// CreateVerificationRequest opens a verification request against a deed.
type CreateVerificationRequest struct {
	DeedID  uuid.UUID        `json:"deedId"`
	Kind    VerificationKind `json:"kind"`
	Details string           `json:"details,omitempty"`
}

func (r *CreateVerificationRequest) Normalize() {
	r.Details = strings.TrimSpace(r.Details)
}

func (r *CreateVerificationRequest) Validate() error {
	switch {
	case r.DeedID == uuid.Nil:
		return dErrors.New(dErrors.CodeValidation, "deed id is required")
	case !r.Kind.Valid():
		return dErrors.New(dErrors.CodeValidation, "unknown verification kind")
	}
	return nil
}

// VerifyDeedRequest is a direct verification decision on a deed, without an
// open verification request.
type VerifyDeedRequest struct {
	Decision RequestStatus `json:"decision"`
	Notes    string        `json:"notes,omitempty"`
}

func (r *VerifyDeedRequest) Normalize() {
	r.Notes = strings.TrimSpace(r.Notes)
}

func (r *VerifyDeedRequest) Validate() error {
	if r.Decision != RequestStatusApproved && r.Decision != RequestStatusRejected {
		return dErrors.New(dErrors.CodeValidation, "decision must be approved or rejected")
	}
	return nil
}

// ProcessVerificationRequest decides a pending verification request.
type ProcessVerificationRequest struct {
	RequestID       uuid.UUID     `json:"requestId"`
	Decision        RequestStatus `json:"decision"`
	ResponseDetails string        `json:"responseDetails,omitempty"`
}

func (r *ProcessVerificationRequest) Normalize() {
	r.ResponseDetails = strings.TrimSpace(r.ResponseDetails)
}

func (r *ProcessVerificationRequest) Validate() error {
	switch {
	case r.RequestID == uuid.Nil:
		return dErrors.New(dErrors.CodeValidation, "request id is required")
	case r.Decision != RequestStatusApproved && r.Decision != RequestStatusRejected:
		return dErrors.New(dErrors.CodeValidation, "decision must be approved or rejected")
	}
	return nil
}
