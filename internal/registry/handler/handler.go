// Package handler exposes the deed registry over HTTP. Handlers decode and
// authorize at the edge and delegate every decision to the coordinator.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"landregistry/internal/deed/models"
	"landregistry/internal/registry/service"
	dErrors "landregistry/pkg/domain-errors"
	"landregistry/pkg/platform/httputil"
	"landregistry/pkg/requestcontext"
)

// Service defines the coordinator operations the transport needs.
type Service interface {
	CreateDeed(ctx context.Context, req *models.CreateDeedRequest) (*service.DeedResult, error)
	GetDeed(ctx context.Context, ref string) (*service.DeedView, error)
	ListDeedsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Deed, error)
	TransferDeed(ctx context.Context, req *models.TransferDeedRequest) (*service.DeedResult, error)
	VerifyDeed(ctx context.Context, deedID uuid.UUID, req *models.VerifyDeedRequest) (*service.DeedResult, error)
	GetDeedHistory(ctx context.Context, id uuid.UUID) (*service.HistoryResult, error)
	GetDeedStats(ctx context.Context) (*service.StatsResult, error)
	GetDocument(ctx context.Context, deedID uuid.UUID) ([]byte, error)
	CreateVerificationRequest(ctx context.Context, req *models.CreateVerificationRequest) (*models.VerificationRequest, error)
	ProcessVerificationRequest(ctx context.Context, req *models.ProcessVerificationRequest) (*service.VerificationOutcome, error)
	ListVerificationRequests(ctx context.Context, deedID uuid.UUID) ([]models.VerificationRequest, error)
	ListVerificationLogs(ctx context.Context, deedID uuid.UUID) ([]models.VerificationLog, error)
}

// Handler wires registry endpoints to the coordinator.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a registry handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts registry endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/deeds", func(r chi.Router) {
		r.Post("/", h.HandleCreateDeed)
		r.Get("/stats", h.HandleStats)
		r.Get("/{deedID}", h.HandleGetDeed)
		r.Get("/{deedID}/history", h.HandleHistory)
		r.Get("/{deedID}/document", h.HandleDocument)
		r.Post("/{deedID}/transfer", h.HandleTransfer)
		r.Post("/{deedID}/verify", h.HandleVerify)
		r.Get("/{deedID}/verification-requests", h.HandleListVerificationRequests)
		r.Get("/{deedID}/verification-logs", h.HandleListVerificationLogs)
	})
	r.Route("/verification-requests", func(r chi.Router) {
		r.Post("/", h.HandleOpenVerificationRequest)
		r.Post("/{requestID}/process", h.HandleProcessVerificationRequest)
	})
	r.Get("/owners/{ownerID}/deeds", h.HandleListDeedsByOwner)
}

// actor extracts the authenticated actor, writing a 401 when absent.
func (h *Handler) actor(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	actorID := requestcontext.ActorID(r.Context())
	if actorID == uuid.Nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return uuid.Nil, false
	}
	return actorID, true
}

// pathUUID parses a UUID path parameter, writing a validation error when it
// does not parse.
func (h *Handler) pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, name+" must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}

// HandleCreateDeed handles POST /deeds requests.
func (h *Handler) HandleCreateDeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[CreateDeedRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.CreateDeed(ctx, req.Model())
	if err != nil {
		h.logger.ErrorContext(ctx, "deed registration failed",
			"request_id", requestID,
			"actor_id", actorID,
			"deed_number", req.DeedNumber,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "deed registered",
		"request_id", requestID,
		"actor_id", actorID,
		"deed_id", result.Deed.ID,
		"ledger_status", result.LedgerStatus,
		"document_status", result.DocumentStatus,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, FromDeedResult(result))
}

// HandleGetDeed handles GET /deeds/{deedID}. The parameter is a UUID or a
// deed number.
func (h *Handler) HandleGetDeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := h.actor(w, r); !ok {
		return
	}

	view, err := h.service.GetDeed(ctx, chi.URLParam(r, "deedID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromDeedView(view))
}

// HandleListDeedsByOwner handles GET /owners/{ownerID}/deeds.
func (h *Handler) HandleListDeedsByOwner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := h.actor(w, r); !ok {
		return
	}
	ownerID, ok := h.pathUUID(w, r, "ownerID")
	if !ok {
		return
	}

	deeds, err := h.service.ListDeedsByOwner(ctx, ownerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, deeds)
}

// HandleTransfer handles POST /deeds/{deedID}/transfer requests.
func (h *Handler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}
	deedID, ok := h.pathUUID(w, r, "deedID")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[TransferDeedRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.TransferDeed(ctx, req.Model(deedID))
	if err != nil {
		h.logger.ErrorContext(ctx, "deed transfer failed",
			"request_id", requestID,
			"actor_id", actorID,
			"deed_id", deedID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "deed transferred",
		"request_id", requestID,
		"actor_id", actorID,
		"deed_id", deedID,
		"to_owner_id", req.ToOwnerID,
		"ledger_status", result.LedgerStatus,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromDeedResult(result))
}

// HandleVerify handles POST /deeds/{deedID}/verify requests.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}
	deedID, ok := h.pathUUID(w, r, "deedID")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.VerifyDeedRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.VerifyDeed(ctx, deedID, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "deed verification failed",
			"request_id", requestID,
			"actor_id", actorID,
			"deed_id", deedID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "deed verified",
		"request_id", requestID,
		"actor_id", actorID,
		"deed_id", deedID,
		"decision", req.Decision,
		"ledger_status", result.LedgerStatus,
	)
	httputil.WriteJSON(w, http.StatusOK, FromDeedResult(result))
}

// HandleHistory handles GET /deeds/{deedID}/history requests.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := h.actor(w, r); !ok {
		return
	}
	deedID, ok := h.pathUUID(w, r, "deedID")
	if !ok {
		return
	}

	result, err := h.service.GetDeedHistory(ctx, deedID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &HistoryResponse{
		Entries:      result.Entries,
		LedgerStatus: result.LedgerStatus,
	})
}

// HandleDocument handles GET /deeds/{deedID}/document requests. The payload
// is returned verbatim after the hash check.
func (h *Handler) HandleDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := h.actor(w, r); !ok {
		return
	}
	deedID, ok := h.pathUUID(w, r, "deedID")
	if !ok {
		return
	}

	data, err := h.service.GetDocument(ctx, deedID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// HandleStats handles GET /deeds/stats requests.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := h.actor(w, r); !ok {
		return
	}

	result, err := h.service.GetDeedStats(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &StatsResponse{
		Total:        result.Stats.Total,
		ByStatus:     result.Stats.ByStatus,
		LedgerStatus: result.LedgerStatus,
	})
}

// HandleOpenVerificationRequest handles POST /verification-requests.
func (h *Handler) HandleOpenVerificationRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[OpenVerificationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	created, err := h.service.CreateVerificationRequest(ctx, req.Model())
	if err != nil {
		h.logger.ErrorContext(ctx, "verification request failed",
			"request_id", requestID,
			"actor_id", actorID,
			"deed_id", req.DeedID,
			"kind", req.Kind,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "verification request opened",
		"request_id", requestID,
		"actor_id", actorID,
		"deed_id", req.DeedID,
		"kind", req.Kind,
	)
	httputil.WriteJSON(w, http.StatusCreated, created)
}

// HandleProcessVerificationRequest handles POST /verification-requests/{requestID}/process.
func (h *Handler) HandleProcessVerificationRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}
	verificationID, ok := h.pathUUID(w, r, "requestID")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ProcessRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	outcome, err := h.service.ProcessVerificationRequest(ctx, req.Model(verificationID))
	if err != nil {
		h.logger.ErrorContext(ctx, "verification processing failed",
			"request_id", requestID,
			"actor_id", actorID,
			"verification_id", verificationID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "verification request decided",
		"request_id", requestID,
		"actor_id", actorID,
		"verification_id", verificationID,
		"decision", req.Decision,
		"ledger_status", outcome.LedgerStatus,
	)
	httputil.WriteJSON(w, http.StatusOK, &VerificationOutcomeResponse{
		Request:      outcome.Request,
		Deed:         outcome.Deed,
		LedgerStatus: outcome.LedgerStatus,
	})
}

// HandleListVerificationRequests handles GET /deeds/{deedID}/verification-requests.
func (h *Handler) HandleListVerificationRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := h.actor(w, r); !ok {
		return
	}
	deedID, ok := h.pathUUID(w, r, "deedID")
	if !ok {
		return
	}

	requests, err := h.service.ListVerificationRequests(ctx, deedID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, requests)
}

// HandleListVerificationLogs handles GET /deeds/{deedID}/verification-logs.
func (h *Handler) HandleListVerificationLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := h.actor(w, r); !ok {
		return
	}
	deedID, ok := h.pathUUID(w, r, "deedID")
	if !ok {
		return
	}

	logs, err := h.service.ListVerificationLogs(ctx, deedID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, logs)
}
