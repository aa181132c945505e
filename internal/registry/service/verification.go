package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"landregistry/internal/audit"
	"landregistry/internal/deed/models"
	dErrors "landregistry/pkg/domain-errors"
	"landregistry/pkg/platform/sentinel"
	"landregistry/pkg/requestcontext"
)

// VerificationStore persists verification requests and the append-only
// decision log.
type VerificationStore interface {
	CreateRequest(ctx context.Context, req models.VerificationRequest) error
	FindRequest(ctx context.Context, id uuid.UUID) (*models.VerificationRequest, error)
	ProcessRequest(ctx context.Context, id uuid.UUID, decision models.RequestStatus,
		processedBy uuid.UUID, responseDetails string, processedAt time.Time) (*models.VerificationRequest, error)
	ListRequestsByDeed(ctx context.Context, deedID uuid.UUID) ([]models.VerificationRequest, error)
	AppendLog(ctx context.Context, entry models.VerificationLog) error
	ListLogsByDeed(ctx context.Context, deedID uuid.UUID) ([]models.VerificationLog, error)
}

// VerificationOutcome is the structured result of a decided request.
type VerificationOutcome struct {
	Request      models.VerificationRequest
	Deed         *models.Deed
	LedgerStatus LegStatus
}

// VerifyDeed applies a direct verification decision to a pending deed. Used
// by officials acting without an open verification request.
func (s *Service) VerifyDeed(ctx context.Context, deedID uuid.UUID, req *models.VerifyDeedRequest) (*DeedResult, error) {
	ctx, span := s.tracer.Start(ctx, "deed.verify")
	defer span.End()

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	role := requestcontext.ActorRole(ctx)
	actor := requestcontext.ActorID(ctx)
	if !role.CanVerify() {
		return nil, dErrors.New(dErrors.CodeForbidden, "role may not verify deeds")
	}

	deed, err := s.deeds.FindByID(ctx, deedID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "deed not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load deed")
	}
	if deed.Status.Terminal() {
		return nil, dErrors.New(dErrors.CodeInvalidState, "deed already left the pending state")
	}

	status := decisionToDeedStatus(req.Decision)
	updated, err := s.deeds.Update(ctx, deedID, models.DeedUpdate{
		Status:     &status,
		VerifiedBy: &actor,
	})
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "deed not found")
		case errors.Is(err, sentinel.ErrInvalidState):
			// Lost the race against a concurrent decision.
			return nil, dErrors.New(dErrors.CodeInvalidState, "deed already left the pending state")
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update deed")
		}
	}

	if err := s.verifications.AppendLog(ctx, models.VerificationLog{
		ID:         uuid.New(),
		DeedID:     deedID,
		VerifierID: actor,
		Kind:       models.VerificationKindAuthenticity,
		Result:     req.Decision,
		Notes:      req.Notes,
		Timestamp:  requestcontext.Now(ctx),
	}); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record verification log")
	}

	ledgerStatus, txID := s.mirrorUpdate(ctx, deedID, models.DeedUpdate{Status: &status, VerifiedBy: &actor})

	s.logAudit(ctx, audit.ActionDeedVerified, deedID, txID, ledgerStatus,
		"decision", string(req.Decision),
	)
	if s.metrics != nil {
		s.metrics.IncrementVerificationsProcessed(string(req.Decision))
		s.countDegraded(ledgerStatus, LegSkipped)
	}

	return &DeedResult{
		Deed:           *updated,
		LedgerStatus:   ledgerStatus,
		DocumentStatus: LegSkipped,
		LedgerTxID:     txID,
	}, nil
}

// CreateVerificationRequest opens a verification request against an existing
// deed. At most one pending request per (deed, kind) pair.
func (s *Service) CreateVerificationRequest(ctx context.Context, req *models.CreateVerificationRequest) (*models.VerificationRequest, error) {
	ctx, span := s.tracer.Start(ctx, "verification.create")
	defer span.End()

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	actor := requestcontext.ActorID(ctx)
	role := requestcontext.ActorRole(ctx)

	deed, err := s.deeds.FindByID(ctx, req.DeedID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "deed not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load deed")
	}
	if deed.OwnerID != actor && !role.Elevated() {
		return nil, dErrors.New(dErrors.CodeForbidden, "only the owner may request verification of this deed")
	}

	request := models.VerificationRequest{
		ID:          uuid.New(),
		DeedID:      req.DeedID,
		RequesterID: actor,
		Kind:        req.Kind,
		Details:     req.Details,
		Status:      models.RequestStatusPending,
		CreatedAt:   requestcontext.Now(ctx),
	}
	if err := s.verifications.CreateRequest(ctx, request); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "a pending request of this kind already exists for the deed")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store verification request")
	}

	s.logAudit(ctx, audit.ActionVerificationOpened, req.DeedID, "", LegSkipped,
		"request_id", request.ID,
		"kind", string(request.Kind),
	)
	return &request, nil
}

// ProcessVerificationRequest decides a pending request. The first decision
// wins; ownership and authenticity decisions also drive the deed's own
// pending to verified or rejected transition.
func (s *Service) ProcessVerificationRequest(ctx context.Context, req *models.ProcessVerificationRequest) (*VerificationOutcome, error) {
	ctx, span := s.tracer.Start(ctx, "verification.process")
	defer span.End()

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	actor := requestcontext.ActorID(ctx)
	role := requestcontext.ActorRole(ctx)
	if !role.CanVerify() {
		return nil, dErrors.New(dErrors.CodeForbidden, "role may not process verification requests")
	}

	pending, err := s.verifications.FindRequest(ctx, req.RequestID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "verification request not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load verification request")
	}

	// A decision that would move the deed must still have a pending deed to
	// move. Checked before the request CAS so the request stays decidable if
	// the caller retries after fixing the state.
	var deed *models.Deed
	if pending.Kind.AffectsDeedStatus() {
		deed, err = s.deeds.FindByID(ctx, pending.DeedID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil, dErrors.New(dErrors.CodeNotFound, "deed not found")
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load deed")
		}
		if deed.Status.Terminal() {
			return nil, dErrors.New(dErrors.CodeInvalidState, "deed already left the pending state")
		}
	}

	now := requestcontext.Now(ctx)
	decided, err := s.verifications.ProcessRequest(ctx, req.RequestID, req.Decision, actor, req.ResponseDetails, now)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrAlreadyProcessed):
			return nil, dErrors.New(dErrors.CodeAlreadyProcessed, "verification request already decided")
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "verification request not found")
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to process verification request")
		}
	}

	ledgerStatus := LegSkipped
	txID := ""
	if decided.Kind.AffectsDeedStatus() {
		status := decisionToDeedStatus(req.Decision)
		deed, err = s.deeds.Update(ctx, decided.DeedID, models.DeedUpdate{
			Status:     &status,
			VerifiedBy: &actor,
		})
		if err != nil {
			if errors.Is(err, sentinel.ErrInvalidState) {
				return nil, dErrors.New(dErrors.CodeInvalidState, "deed already left the pending state")
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "request decided but deed update failed")
		}
		ledgerStatus, txID = s.mirrorUpdate(ctx, decided.DeedID, models.DeedUpdate{Status: &status, VerifiedBy: &actor})
	}

	if err := s.verifications.AppendLog(ctx, models.VerificationLog{
		ID:         uuid.New(),
		DeedID:     decided.DeedID,
		VerifierID: actor,
		Kind:       decided.Kind,
		Result:     req.Decision,
		Notes:      req.ResponseDetails,
		Timestamp:  now,
	}); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record verification log")
	}

	s.logAudit(ctx, audit.ActionVerificationDecided, decided.DeedID, txID, ledgerStatus,
		"request_id", decided.ID,
		"kind", string(decided.Kind),
		"decision", string(req.Decision),
	)
	if s.metrics != nil {
		s.metrics.IncrementVerificationsProcessed(string(req.Decision))
		s.countDegraded(ledgerStatus, LegSkipped)
	}

	return &VerificationOutcome{
		Request:      *decided,
		Deed:         deed,
		LedgerStatus: ledgerStatus,
	}, nil
}

// ListVerificationRequests returns all requests ever opened against a deed.
func (s *Service) ListVerificationRequests(ctx context.Context, deedID uuid.UUID) ([]models.VerificationRequest, error) {
	if err := s.authorizeDeedRead(ctx, deedID); err != nil {
		return nil, err
	}
	requests, err := s.verifications.ListRequestsByDeed(ctx, deedID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list verification requests")
	}
	return requests, nil
}

// ListVerificationLogs returns the append-only decision trail for a deed.
func (s *Service) ListVerificationLogs(ctx context.Context, deedID uuid.UUID) ([]models.VerificationLog, error) {
	if err := s.authorizeDeedRead(ctx, deedID); err != nil {
		return nil, err
	}
	logs, err := s.verifications.ListLogsByDeed(ctx, deedID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list verification logs")
	}
	return logs, nil
}

// authorizeDeedRead allows the deed's owner and any elevated role.
func (s *Service) authorizeDeedRead(ctx context.Context, deedID uuid.UUID) error {
	role := requestcontext.ActorRole(ctx)
	if role.Elevated() {
		return nil
	}
	deed, err := s.deeds.FindByID(ctx, deedID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "deed not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load deed")
	}
	if deed.OwnerID != requestcontext.ActorID(ctx) {
		return dErrors.New(dErrors.CodeForbidden, "deed belongs to another owner")
	}
	return nil
}

func (s *Service) mirrorUpdate(ctx context.Context, deedID uuid.UUID, update models.DeedUpdate) (LegStatus, string) {
	rcpt, err := s.ledger.UpdateDeed(ctx, deedID, update)
	if err != nil {
		s.logger.ErrorContext(ctx, "ledger mirror failed for deed update, reconcile needed",
			"deed_id", deedID,
			"error", err,
		)
		return LegSkipped, ""
	}
	return legFromReceipt(rcpt), rcpt.TxID
}

func decisionToDeedStatus(decision models.RequestStatus) models.DeedStatus {
	if decision == models.RequestStatusApproved {
		return models.DeedStatusVerified
	}
	return models.DeedStatusRejected
}
