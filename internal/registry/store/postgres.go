package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"landregistry/internal/deed/models"
	"landregistry/pkg/platform/sentinel"
	"landregistry/pkg/requestcontext"
)

// Postgres is the production store, backed by a pgx connection pool. It
// implements both DeedStore and VerificationStore.
type Postgres struct {
	db *pgxpool.Pool
}

// NewPostgres wraps an existing pool. The pool's lifecycle belongs to the
// caller.
func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

const uniqueViolation = "23505"

// pgError folds driver failures into the platform sentinels: no rows is a
// miss, a unique violation is a conflict.
func pgError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, sentinel.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %s: %w", op, pgErr.ConstraintName, sentinel.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

const deedColumns = `id, deed_number, owner_id, property_address, property_type,
	land_area, land_area_unit, survey_notes, document_hash, document_address,
	status, verified_by, created_at, updated_at, verified_at`

func scanDeed(row pgx.Row) (*models.Deed, error) {
	var d models.Deed
	err := row.Scan(&d.ID, &d.DeedNumber, &d.OwnerID, &d.PropertyAddress, &d.PropertyType,
		&d.LandArea, &d.LandAreaUnit, &d.SurveyNotes, &d.DocumentHash, &d.DocumentAddress,
		&d.Status, &d.VerifiedBy, &d.CreatedAt, &d.UpdatedAt, &d.VerifiedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Postgres) Insert(ctx context.Context, deed models.Deed) error {
	_, err := s.db.Exec(ctx, `
INSERT INTO deeds (id, deed_number, owner_id, property_address, property_type,
	land_area, land_area_unit, survey_notes, document_hash, document_address,
	status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`, deed.ID, deed.DeedNumber, deed.OwnerID, deed.PropertyAddress, deed.PropertyType,
		deed.LandArea, deed.LandAreaUnit, deed.SurveyNotes, deed.DocumentHash, deed.DocumentAddress,
		deed.Status, deed.CreatedAt, deed.UpdatedAt)
	if err != nil {
		return pgError("insert deed", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*models.Deed, error) {
	deed, err := scanDeed(s.db.QueryRow(ctx,
		`SELECT `+deedColumns+` FROM deeds WHERE id = $1`, id))
	if err != nil {
		return nil, pgError("find deed by id", err)
	}
	return deed, nil
}

func (s *Postgres) FindByNumber(ctx context.Context, number string) (*models.Deed, error) {
	deed, err := scanDeed(s.db.QueryRow(ctx,
		`SELECT `+deedColumns+` FROM deeds WHERE deed_number = $1`, number))
	if err != nil {
		return nil, pgError("find deed by number", err)
	}
	return deed, nil
}

func (s *Postgres) Update(ctx context.Context, id uuid.UUID, update models.DeedUpdate) (*models.Deed, error) {
	now := requestcontext.Now(ctx)
	var verifiedAt *time.Time
	if update.VerifiedBy != nil {
		verifiedAt = &now
	}

	if update.Status == nil {
		deed, err := scanDeed(s.db.QueryRow(ctx, `
UPDATE deeds SET
	verified_by = COALESCE($2, verified_by),
	verified_at = COALESCE($3, verified_at),
	updated_at  = $4
WHERE id = $1
RETURNING `+deedColumns, id, update.VerifiedBy, verifiedAt, now))
		if err != nil {
			return nil, pgError("update deed", err)
		}
		return deed, nil
	}

	// A status change leaves pending exactly once: the guard in the WHERE
	// clause makes the losing concurrent decision match no row.
	deed, err := scanDeed(s.db.QueryRow(ctx, `
UPDATE deeds SET
	status      = $2,
	verified_by = COALESCE($3, verified_by),
	verified_at = COALESCE($4, verified_at),
	updated_at  = $5
WHERE id = $1 AND status = $6
RETURNING `+deedColumns, id, *update.Status, update.VerifiedBy, verifiedAt, now, models.DeedStatusPending))
	if err == nil {
		return deed, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, pgError("update deed", err)
	}

	// Distinguish a missing deed from one already settled.
	if _, err := s.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("deed %s: %w", id, sentinel.ErrInvalidState)
}

// TransferOwner locks the row, re-checks the expected owner, and applies the
// reassignment in one transaction. Losing a concurrent race surfaces as an
// ownership mismatch, never as a double transfer.
func (s *Postgres) TransferOwner(ctx context.Context, transfer models.Transfer) (*models.Deed, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, pgError("begin transfer", err)
	}
	defer tx.Rollback(ctx)

	var currentOwner uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT owner_id FROM deeds WHERE id = $1 FOR UPDATE`,
		transfer.DeedID).Scan(&currentOwner)
	if err != nil {
		return nil, pgError("lock deed for transfer", err)
	}
	if currentOwner != transfer.FromOwnerID {
		return nil, fmt.Errorf("deed %s owned by %s, not %s: %w",
			transfer.DeedID, currentOwner, transfer.FromOwnerID, sentinel.ErrOwnershipMismatch)
	}

	deed, err := scanDeed(tx.QueryRow(ctx, `
UPDATE deeds SET owner_id = $2, status = $3, updated_at = $4
WHERE id = $1
RETURNING `+deedColumns,
		transfer.DeedID, transfer.ToOwnerID, models.DeedStatusTransferred, requestcontext.Now(ctx)))
	if err != nil {
		return nil, pgError("apply transfer", err)
	}

	_, err = tx.Exec(ctx, `
INSERT INTO deed_transfers (id, deed_id, from_owner_id, to_owner_id, reason, transferred_at)
VALUES ($1, $2, $3, $4, $5, $6)
`, transfer.ID, transfer.DeedID, transfer.FromOwnerID, transfer.ToOwnerID,
		transfer.Reason, transfer.TransferredAt)
	if err != nil {
		return nil, pgError("record transfer", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, pgError("commit transfer", err)
	}
	return deed, nil
}

func (s *Postgres) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Deed, error) {
	return s.list(ctx,
		`SELECT `+deedColumns+` FROM deeds WHERE owner_id = $1 ORDER BY created_at`, ownerID)
}

func (s *Postgres) ListByStatus(ctx context.Context, status models.DeedStatus) ([]models.Deed, error) {
	return s.list(ctx,
		`SELECT `+deedColumns+` FROM deeds WHERE status = $1 ORDER BY created_at`, status)
}

func (s *Postgres) list(ctx context.Context, query string, args ...any) ([]models.Deed, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, pgError("list deeds", err)
	}
	defer rows.Close()

	var out []models.Deed
	for rows.Next() {
		deed, err := scanDeed(rows)
		if err != nil {
			return nil, pgError("scan deed", err)
		}
		out = append(out, *deed)
	}
	if err := rows.Err(); err != nil {
		return nil, pgError("list deeds", err)
	}
	return out, nil
}

const requestColumns = `id, deed_id, requester_id, kind, details, status,
	response_details, processed_by, created_at, processed_at`

func scanRequest(row pgx.Row) (*models.VerificationRequest, error) {
	var r models.VerificationRequest
	err := row.Scan(&r.ID, &r.DeedID, &r.RequesterID, &r.Kind, &r.Details, &r.Status,
		&r.ResponseDetails, &r.ProcessedBy, &r.CreatedAt, &r.ProcessedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateRequest relies on the partial unique index over (deed_id, kind) WHERE
// status = 'pending' to reject duplicate open requests.
func (s *Postgres) CreateRequest(ctx context.Context, req models.VerificationRequest) error {
	_, err := s.db.Exec(ctx, `
INSERT INTO verification_requests (id, deed_id, requester_id, kind, details, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, req.ID, req.DeedID, req.RequesterID, req.Kind, req.Details, req.Status, req.CreatedAt)
	if err != nil {
		return pgError("create verification request", err)
	}
	return nil
}

func (s *Postgres) FindRequest(ctx context.Context, id uuid.UUID) (*models.VerificationRequest, error) {
	req, err := scanRequest(s.db.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM verification_requests WHERE id = $1`, id))
	if err != nil {
		return nil, pgError("find verification request", err)
	}
	return req, nil
}

func (s *Postgres) ProcessRequest(ctx context.Context, id uuid.UUID, decision models.RequestStatus,
	processedBy uuid.UUID, responseDetails string, processedAt time.Time) (*models.VerificationRequest, error) {
	var details *string
	if responseDetails != "" {
		details = &responseDetails
	}

	// The status guard in the WHERE clause makes processing first-wins: the
	// losing concurrent call matches no row.
	req, err := scanRequest(s.db.QueryRow(ctx, `
UPDATE verification_requests
SET status = $2, processed_by = $3, response_details = $4, processed_at = $5
WHERE id = $1 AND status = $6
RETURNING `+requestColumns,
		id, decision, processedBy, details, processedAt, models.RequestStatusPending))
	if err == nil {
		return req, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, pgError("process verification request", err)
	}

	// Distinguish a missing request from one already decided.
	if _, err := s.FindRequest(ctx, id); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("verification request %s: %w", id, sentinel.ErrAlreadyProcessed)
}

func (s *Postgres) ListRequestsByDeed(ctx context.Context, deedID uuid.UUID) ([]models.VerificationRequest, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+requestColumns+` FROM verification_requests WHERE deed_id = $1 ORDER BY created_at`, deedID)
	if err != nil {
		return nil, pgError("list verification requests", err)
	}
	defer rows.Close()

	var out []models.VerificationRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, pgError("scan verification request", err)
		}
		out = append(out, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, pgError("list verification requests", err)
	}
	return out, nil
}

func (s *Postgres) AppendLog(ctx context.Context, entry models.VerificationLog) error {
	_, err := s.db.Exec(ctx, `
INSERT INTO verification_logs (id, deed_id, verifier_id, kind, result, notes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, entry.ID, entry.DeedID, entry.VerifierID, entry.Kind, entry.Result, entry.Notes, entry.Timestamp)
	if err != nil {
		return pgError("append verification log", err)
	}
	return nil
}

func (s *Postgres) ListLogsByDeed(ctx context.Context, deedID uuid.UUID) ([]models.VerificationLog, error) {
	rows, err := s.db.Query(ctx, `
SELECT id, deed_id, verifier_id, kind, result, notes, created_at
FROM verification_logs WHERE deed_id = $1 ORDER BY created_at
`, deedID)
	if err != nil {
		return nil, pgError("list verification logs", err)
	}
	defer rows.Close()

	var out []models.VerificationLog
	for rows.Next() {
		var entry models.VerificationLog
		if err := rows.Scan(&entry.ID, &entry.DeedID, &entry.VerifierID,
			&entry.Kind, &entry.Result, &entry.Notes, &entry.Timestamp); err != nil {
			return nil, pgError("scan verification log", err)
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, pgError("list verification logs", err)
	}
	return out, nil
}
