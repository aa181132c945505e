package handler

import (
	"landregistry/internal/deed/models"
	"landregistry/internal/registry/service"
)

// DeedResponse is a deed plus the status of the best-effort legs that served
// the mutation.
type DeedResponse struct {
	models.Deed
	LedgerStatus   service.LegStatus `json:"ledgerStatus"`
	DocumentStatus service.LegStatus `json:"documentStatus"`
	LedgerTxID     string            `json:"ledgerTxId,omitempty"`
}

// FromDeedResult converts a coordinator outcome to an HTTP response.
func FromDeedResult(res *service.DeedResult) *DeedResponse {
	return &DeedResponse{
		Deed:           res.Deed,
		LedgerStatus:   res.LedgerStatus,
		DocumentStatus: res.DocumentStatus,
		LedgerTxID:     res.LedgerTxID,
	}
}

// DeedViewResponse is a deed read plus the ledger's latest audit entry when
// the mirror has one.
type DeedViewResponse struct {
	models.Deed
	LedgerEntry  *models.HistoryEntry `json:"ledgerEntry,omitempty"`
	LedgerStatus service.LegStatus    `json:"ledgerStatus"`
}

// FromDeedView converts a coordinator read to an HTTP response.
func FromDeedView(view *service.DeedView) *DeedViewResponse {
	return &DeedViewResponse{
		Deed:         view.Deed,
		LedgerEntry:  view.LedgerEntry,
		LedgerStatus: view.LedgerStatus,
	}
}

// HistoryResponse is the ledger trail for one deed.
type HistoryResponse struct {
	Entries      []models.HistoryEntry `json:"entries"`
	LedgerStatus service.LegStatus     `json:"ledgerStatus"`
}

// StatsResponse is the administrative count snapshot.
type StatsResponse struct {
	Total        int                       `json:"total"`
	ByStatus     map[models.DeedStatus]int `json:"byStatus"`
	LedgerStatus service.LegStatus         `json:"ledgerStatus"`
}

// VerificationOutcomeResponse is a decided request, plus the deed when the
// decision moved it.
type VerificationOutcomeResponse struct {
	Request      models.VerificationRequest `json:"request"`
	Deed         *models.Deed               `json:"deed,omitempty"`
	LedgerStatus service.LegStatus          `json:"ledgerStatus"`
}
