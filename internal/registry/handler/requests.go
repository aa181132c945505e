package handler

import (
	"strings"

	"github.com/google/uuid"

	"landregistry/internal/deed/models"
	dErrors "landregistry/pkg/domain-errors"
)

// CreateDeedRequest is the HTTP body for POST /deeds. Attachment is base64 in
// transit; encoding/json decodes it straight into the byte slice.
type CreateDeedRequest struct {
	DeedNumber      string    `json:"deedNumber"`
	OwnerID         uuid.UUID `json:"ownerId"`
	PropertyAddress string    `json:"propertyAddress"`
	PropertyType    string    `json:"propertyType"`
	LandArea        float64   `json:"landArea"`
	LandAreaUnit    string    `json:"landAreaUnit"`
	SurveyNotes     string    `json:"surveyNotes,omitempty"`
	Attachment      []byte    `json:"attachment,omitempty"`
}

func (r *CreateDeedRequest) Normalize() {
	r.DeedNumber = strings.TrimSpace(r.DeedNumber)
	r.PropertyAddress = strings.TrimSpace(r.PropertyAddress)
	r.PropertyType = strings.TrimSpace(r.PropertyType)
	r.LandAreaUnit = strings.TrimSpace(r.LandAreaUnit)
	r.SurveyNotes = strings.TrimSpace(r.SurveyNotes)
}

func (r *CreateDeedRequest) Validate() error {
	return r.Model().Validate()
}

// Model converts the HTTP body to the domain request.
func (r *CreateDeedRequest) Model() *models.CreateDeedRequest {
	return &models.CreateDeedRequest{
		DeedNumber:      r.DeedNumber,
		OwnerID:         r.OwnerID,
		PropertyAddress: r.PropertyAddress,
		PropertyType:    r.PropertyType,
		LandArea:        r.LandArea,
		LandAreaUnit:    r.LandAreaUnit,
		SurveyNotes:     r.SurveyNotes,
		Attachment:      r.Attachment,
	}
}

// TransferDeedRequest is the HTTP body for POST /deeds/{deedID}/transfer. The
// deed ID comes from the path.
type TransferDeedRequest struct {
	FromOwnerID uuid.UUID `json:"fromOwnerId"`
	ToOwnerID   uuid.UUID `json:"toOwnerId"`
	Reason      string    `json:"reason,omitempty"`
}

func (r *TransferDeedRequest) Normalize() {
	r.Reason = strings.TrimSpace(r.Reason)
}

func (r *TransferDeedRequest) Validate() error {
	switch {
	case r.FromOwnerID == uuid.Nil:
		return dErrors.New(dErrors.CodeValidation, "from owner id is required")
	case r.ToOwnerID == uuid.Nil:
		return dErrors.New(dErrors.CodeValidation, "to owner id is required")
	case r.FromOwnerID == r.ToOwnerID:
		return dErrors.New(dErrors.CodeValidation, "transfer must change the owner")
	}
	return nil
}

// Model builds the domain request for the deed addressed by the path.
func (r *TransferDeedRequest) Model(deedID uuid.UUID) *models.TransferDeedRequest {
	return &models.TransferDeedRequest{
		DeedID:      deedID,
		FromOwnerID: r.FromOwnerID,
		ToOwnerID:   r.ToOwnerID,
		Reason:      r.Reason,
	}
}

// OpenVerificationRequest is the HTTP body for POST /verification-requests.
type OpenVerificationRequest struct {
	DeedID  uuid.UUID               `json:"deedId"`
	Kind    models.VerificationKind `json:"kind"`
	Details string                  `json:"details,omitempty"`
}

func (r *OpenVerificationRequest) Normalize() {
	r.Details = strings.TrimSpace(r.Details)
}

func (r *OpenVerificationRequest) Validate() error {
	return r.Model().Validate()
}

func (r *OpenVerificationRequest) Model() *models.CreateVerificationRequest {
	return &models.CreateVerificationRequest{
		DeedID:  r.DeedID,
		Kind:    r.Kind,
		Details: r.Details,
	}
}

// ProcessRequest is the HTTP body for POST /verification-requests/{requestID}/process.
type ProcessRequest struct {
	Decision        models.RequestStatus `json:"decision"`
	ResponseDetails string               `json:"responseDetails,omitempty"`
}

func (r *ProcessRequest) Normalize() {
	r.ResponseDetails = strings.TrimSpace(r.ResponseDetails)
}

func (r *ProcessRequest) Validate() error {
	if r.Decision != models.RequestStatusApproved && r.Decision != models.RequestStatusRejected {
		return dErrors.New(dErrors.CodeValidation, "decision must be approved or rejected")
	}
	return nil
}

func (r *ProcessRequest) Model(requestID uuid.UUID) *models.ProcessVerificationRequest {
	return &models.ProcessVerificationRequest{
		RequestID:       requestID,
		Decision:        r.Decision,
		ResponseDetails: r.ResponseDetails,
	}
}
