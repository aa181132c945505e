// Package service is the single mutation entry point for deed state. The
// relational store is the operation of record; the ledger mirror and the
// document store are best-effort legs whose outcome is reported, never
// silently dropped.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"landregistry/internal/audit"
	"landregistry/internal/deed/models"
	"landregistry/internal/docstore"
	"landregistry/internal/ledger/gateway"
	"landregistry/internal/platform/metrics"
	"landregistry/pkg/attrs"
	"landregistry/pkg/contenthash"
	dErrors "landregistry/pkg/domain-errors"
	"landregistry/pkg/platform/sentinel"
	"landregistry/pkg/requestcontext"
)

// DeedStore is the canonical deed persistence contract.
type DeedStore interface {
	Insert(ctx context.Context, deed models.Deed) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Deed, error)
	FindByNumber(ctx context.Context, number string) (*models.Deed, error)
	Update(ctx context.Context, id uuid.UUID, update models.DeedUpdate) (*models.Deed, error)
	TransferOwner(ctx context.Context, transfer models.Transfer) (*models.Deed, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Deed, error)
}

// LedgerGateway is the audit-trail mirror behind the degraded-mode facade.
type LedgerGateway interface {
	CreateDeed(ctx context.Context, deed models.Deed) (gateway.Receipt, error)
	GetDeed(ctx context.Context, id uuid.UUID) (*models.Deed, gateway.Receipt, error)
	UpdateDeed(ctx context.Context, id uuid.UUID, update models.DeedUpdate) (gateway.Receipt, error)
	TransferDeed(ctx context.Context, transfer models.Transfer) (gateway.Receipt, error)
	GetDeedHistory(ctx context.Context, id uuid.UUID) ([]models.HistoryEntry, gateway.Receipt, error)
	Stats(ctx context.Context) (models.DeedStats, gateway.Receipt, error)
	Degraded() bool
}

// DocumentStore persists deed attachments by content address.
type DocumentStore interface {
	Put(ctx context.Context, data []byte) (docstore.PutResult, error)
	Get(ctx context.Context, address string) ([]byte, error)
	Pin(ctx context.Context, address string) error
}

// AuditPublisher records deed state changes.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// LegStatus reports how one best-effort leg of an operation went.
type LegStatus string

const (
	LegLive     LegStatus = "live"
	LegDegraded LegStatus = "degraded"
	LegSkipped  LegStatus = "skipped"
)

// legFromReceipt maps a gateway receipt onto a leg status.
func legFromReceipt(r gateway.Receipt) LegStatus {
	if r.Degraded {
		return LegDegraded
	}
	return LegLive
}

// DeedResult is the structured outcome of a deed mutation.
type DeedResult struct {
	Deed           models.Deed
	LedgerStatus   LegStatus
	DocumentStatus LegStatus
	LedgerTxID     string
}

// DeedView is a canonical deed read together with the ledger's latest audit
// entry when the mirror has one.
type DeedView struct {
	Deed         models.Deed
	LedgerEntry  *models.HistoryEntry
	LedgerStatus LegStatus
}

// HistoryResult carries ledger history with its serving backend.
type HistoryResult struct {
	Entries      []models.HistoryEntry
	LedgerStatus LegStatus
}

// StatsResult carries ledger stats with its serving backend.
type StatsResult struct {
	Stats        models.DeedStats
	LedgerStatus LegStatus
}

// Service coordinates the relational store, document store, ledger gateway
// and audit trail.
type Service struct {
	deeds         DeedStore
	verifications VerificationStore
	documents     DocumentStore
	ledger        LedgerGateway

	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(deeds DeedStore, verifications VerificationStore, documents DocumentStore, ledger LedgerGateway, opts ...Option) *Service {
	s := &Service{
		deeds:         deeds,
		verifications: verifications,
		documents:     documents,
		ledger:        ledger,
		logger:        slog.Default(),
		tracer:        otel.Tracer("landregistry/registry"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateDeed registers a new deed. The attachment leg and the ledger mirror
// are best-effort; the canonical insert is the operation of record.
func (s *Service) CreateDeed(ctx context.Context, req *models.CreateDeedRequest) (*DeedResult, error) {
	ctx, span := s.tracer.Start(ctx, "deed.create")
	defer span.End()

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	role := requestcontext.ActorRole(ctx)
	actor := requestcontext.ActorID(ctx)
	if !role.CanCreateDeed() {
		return nil, dErrors.New(dErrors.CodeForbidden, "role may not register deeds")
	}
	if !role.Elevated() && req.OwnerID != actor {
		return nil, dErrors.New(dErrors.CodeForbidden, "citizens may only register deeds they own")
	}

	if _, err := s.deeds.FindByNumber(ctx, req.DeedNumber); err == nil {
		return nil, dErrors.New(dErrors.CodeConflict, "deed number already registered")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check deed number")
	}

	now := requestcontext.Now(ctx)
	deed := models.Deed{
		ID:              uuid.New(),
		DeedNumber:      req.DeedNumber,
		OwnerID:         req.OwnerID,
		PropertyAddress: req.PropertyAddress,
		PropertyType:    req.PropertyType,
		LandArea:        req.LandArea,
		LandAreaUnit:    req.LandAreaUnit,
		SurveyNotes:     req.SurveyNotes,
		Status:          models.DeedStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	documentStatus := LegSkipped
	if len(req.Attachment) > 0 {
		// The hash is computed locally and survives even when the backend
		// write does not.
		deed.DocumentHash = contenthash.Sum(req.Attachment)
		res, err := s.documents.Put(ctx, req.Attachment)
		if err != nil {
			documentStatus = LegDegraded
			s.logger.ErrorContext(ctx, "attachment store failed, hash retained for reconcile",
				"deed_number", deed.DeedNumber,
				"document_hash", deed.DocumentHash,
				"error", err,
			)
		} else {
			documentStatus = LegLive
			deed.DocumentAddress = res.Address
			if err := s.documents.Pin(ctx, res.Address); err != nil {
				s.logger.WarnContext(ctx, "attachment pin failed",
					"address", res.Address,
					"error", err,
				)
			}
		}
	}

	if err := s.deeds.Insert(ctx, deed); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "deed number already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store deed")
	}

	ledgerStatus, txID := s.mirrorCreate(ctx, deed)

	s.logAudit(ctx, audit.ActionDeedCreated, deed.ID, txID, ledgerStatus,
		"deed_number", deed.DeedNumber,
		"owner_id", deed.OwnerID,
	)
	if s.metrics != nil {
		s.metrics.IncrementDeedsRegistered()
		s.countDegraded(ledgerStatus, documentStatus)
	}

	return &DeedResult{
		Deed:           deed,
		LedgerStatus:   ledgerStatus,
		DocumentStatus: documentStatus,
		LedgerTxID:     txID,
	}, nil
}

// mirrorCreate pushes the new deed to the ledger. Mirror failures degrade the
// response, they never undo the canonical insert.
func (s *Service) mirrorCreate(ctx context.Context, deed models.Deed) (LegStatus, string) {
	rcpt, err := s.ledger.CreateDeed(ctx, deed)
	if err != nil {
		s.logger.ErrorContext(ctx, "ledger mirror failed for created deed, reconcile needed",
			"deed_id", deed.ID,
			"deed_number", deed.DeedNumber,
			"error", err,
		)
		return LegSkipped, ""
	}
	return legFromReceipt(rcpt), rcpt.TxID
}

// GetDeed resolves a deed by UUID or by deed number, from the canonical store.
// The ledger's latest entry rides along best-effort as an audit anchor.
func (s *Service) GetDeed(ctx context.Context, ref string) (*DeedView, error) {
	ctx, span := s.tracer.Start(ctx, "deed.get")
	defer span.End()

	var deed *models.Deed
	var err error
	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		deed, err = s.deeds.FindByID(ctx, id)
	} else {
		deed, err = s.deeds.FindByNumber(ctx, ref)
	}
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "deed not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load deed")
	}

	view := &DeedView{Deed: *deed, LedgerStatus: LegSkipped}
	entries, rcpt, err := s.ledger.GetDeedHistory(ctx, deed.ID)
	switch {
	case err == nil && len(entries) > 0:
		view.LedgerEntry = &entries[len(entries)-1]
		view.LedgerStatus = legFromReceipt(rcpt)
	case err != nil && !errors.Is(err, sentinel.ErrNotFound):
		s.logger.WarnContext(ctx, "ledger audit entry unavailable for deed read",
			"deed_id", deed.ID,
			"error", err,
		)
	}
	return view, nil
}

// ListDeedsByOwner returns the canonical deeds held by one owner.
func (s *Service) ListDeedsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Deed, error) {
	actor := requestcontext.ActorID(ctx)
	role := requestcontext.ActorRole(ctx)
	if ownerID != actor && !role.Elevated() {
		return nil, dErrors.New(dErrors.CodeForbidden, "citizens may only list their own deeds")
	}

	deeds, err := s.deeds.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list deeds")
	}
	return deeds, nil
}

// TransferDeed changes ownership. When the ledger is live its owner record is
// a hard precondition; in degraded mode the canonical check alone decides and
// the discrepancy risk is flagged instead.
func (s *Service) TransferDeed(ctx context.Context, req *models.TransferDeedRequest) (*DeedResult, error) {
	ctx, span := s.tracer.Start(ctx, "deed.transfer")
	defer span.End()

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	actor := requestcontext.ActorID(ctx)
	role := requestcontext.ActorRole(ctx)
	if actor != req.FromOwnerID && !role.CanTransfer() {
		return nil, dErrors.New(dErrors.CodeForbidden, "only the owner or an authorized role may transfer")
	}

	// Ledger precheck. A live ledger that disagrees on the owner blocks the
	// transfer outright.
	ledgerDeed, rcpt, err := s.ledger.GetDeed(ctx, req.DeedID)
	switch {
	case err == nil && !rcpt.Degraded:
		if ledgerDeed.OwnerID != req.FromOwnerID {
			return nil, dErrors.New(dErrors.CodeOwnershipMismatch, "ledger owner record does not match")
		}
	case err == nil && rcpt.Degraded:
		s.logger.WarnContext(ctx, "transfer precheck served by mock ledger, canonical check decides",
			"deed_id", req.DeedID,
		)
	default:
		s.logger.WarnContext(ctx, "transfer precheck unavailable, canonical check decides",
			"deed_id", req.DeedID,
			"error", err,
		)
	}

	now := requestcontext.Now(ctx)
	transfer := models.Transfer{
		ID:            uuid.New(),
		DeedID:        req.DeedID,
		FromOwnerID:   req.FromOwnerID,
		ToOwnerID:     req.ToOwnerID,
		Reason:        req.Reason,
		TransferredAt: now,
	}

	deed, err := s.deeds.TransferOwner(ctx, transfer)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "deed not found")
		case errors.Is(err, sentinel.ErrOwnershipMismatch):
			return nil, dErrors.New(dErrors.CodeOwnershipMismatch, "from owner does not match current owner")
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to transfer deed")
		}
	}

	ledgerStatus := LegSkipped
	txID := ""
	if rcptTx, err := s.ledger.TransferDeed(ctx, transfer); err != nil {
		s.logger.ErrorContext(ctx, "ledger mirror failed for transfer, reconcile needed",
			"deed_id", deed.ID,
			"transfer_id", transfer.ID,
			"error", err,
		)
	} else {
		ledgerStatus = legFromReceipt(rcptTx)
		txID = rcptTx.TxID
	}

	s.logAudit(ctx, audit.ActionDeedTransferred, deed.ID, txID, ledgerStatus,
		"from_owner_id", transfer.FromOwnerID,
		"to_owner_id", transfer.ToOwnerID,
	)
	if s.metrics != nil {
		s.metrics.IncrementDeedsTransferred()
		s.countDegraded(ledgerStatus, LegSkipped)
	}

	return &DeedResult{
		Deed:           *deed,
		LedgerStatus:   ledgerStatus,
		DocumentStatus: LegSkipped,
		LedgerTxID:     txID,
	}, nil
}

// GetDeedHistory returns the ledger's append-only trail for a deed.
func (s *Service) GetDeedHistory(ctx context.Context, id uuid.UUID) (*HistoryResult, error) {
	ctx, span := s.tracer.Start(ctx, "deed.history")
	defer span.End()

	entries, rcpt, err := s.ledger.GetDeedHistory(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no ledger history for deed")
		}
		if errors.Is(err, sentinel.ErrUnavailable) {
			return nil, dErrors.New(dErrors.CodeUnavailable, "ledger history unavailable")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load deed history")
	}
	return &HistoryResult{Entries: entries, LedgerStatus: legFromReceipt(rcpt)}, nil
}

// GetDeedStats returns the ledger's status partition counts.
func (s *Service) GetDeedStats(ctx context.Context) (*StatsResult, error) {
	ctx, span := s.tracer.Start(ctx, "deed.stats")
	defer span.End()

	role := requestcontext.ActorRole(ctx)
	if !role.Elevated() {
		return nil, dErrors.New(dErrors.CodeForbidden, "stats are restricted to registry staff")
	}

	stats, rcpt, err := s.ledger.Stats(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to compute deed stats")
	}
	return &StatsResult{Stats: stats, LedgerStatus: legFromReceipt(rcpt)}, nil
}

// GetDocument fetches an attachment and verifies its content hash against the
// deed record before returning it.
func (s *Service) GetDocument(ctx context.Context, deedID uuid.UUID) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "deed.document")
	defer span.End()

	deed, err := s.deeds.FindByID(ctx, deedID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "deed not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load deed")
	}
	if deed.DocumentAddress == "" {
		return nil, dErrors.New(dErrors.CodeNotFound, "deed has no stored document")
	}

	data, err := s.documents.Get(ctx, deed.DocumentAddress)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "document not found in store")
		}
		return nil, dErrors.New(dErrors.CodeUnavailable, "document store unavailable")
	}
	if deed.DocumentHash != "" && !contenthash.Verify(data, deed.DocumentHash) {
		return nil, dErrors.New(dErrors.CodeInternal, "document content does not match recorded hash")
	}
	return data, nil
}

func (s *Service) countDegraded(ledgerStatus, documentStatus LegStatus) {
	if ledgerStatus == LegDegraded {
		s.metrics.IncrementLedgerDegraded()
	}
	if documentStatus == LegDegraded {
		s.metrics.IncrementDocstoreDegraded()
	}
}

func (s *Service) logAudit(ctx context.Context, action audit.Action, deedID uuid.UUID, txID string, ledgerStatus LegStatus, attributes ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", string(action), "log_type", "audit")
	s.logger.InfoContext(ctx, string(action), args...)

	if s.auditPublisher == nil {
		return
	}
	detail := attrs.ExtractString(attributes, "deed_number")
	if detail == "" {
		detail = attrs.ExtractString(attributes, "kind")
	}
	_ = s.auditPublisher.Emit(ctx, audit.Event{
		ActorID:  requestcontext.ActorID(ctx),
		DeedID:   deedID,
		Action:   action,
		TxID:     txID,
		Backend:  string(ledgerStatus),
		Degraded: ledgerStatus != LegLive,
		Detail:   detail,
	})
}
