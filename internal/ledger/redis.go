package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"landregistry/internal/deed/models"
	"landregistry/pkg/platform/sentinel"
)

// Key layout. The primary record, the composite deed-number index, the
// per-key history and the transfer records are distinct keyspaces; "deed:"
// does not prefix-collide with the others under SCAN MATCH.
const (
	deedKeyPrefix     = "deed:"
	numberKeyPrefix   = "deedno:"
	historyKeyPrefix  = "deedhist:"
	transferKeyPrefix = "deedtx:"

	scanBatch = 256
)

// Redis is the live ledger backend. Primary record, composite index and
// history entry are committed in one optimistic transaction so the index can
// never point at a missing record and no record goes unindexed.
type Redis struct {
	rdb *redis.Client
}

// NewRedis wraps an already-connected client.
func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

func deedKey(id uuid.UUID) string     { return deedKeyPrefix + id.String() }
func numberKey(number string) string  { return numberKeyPrefix + number }
func historyKey(id uuid.UUID) string  { return historyKeyPrefix + id.String() }
func transferKey(id uuid.UUID) string { return transferKeyPrefix + id.String() }

// classify maps client errors onto sentinels: redis.Nil is a missing key,
// a failed optimistic transaction is a concurrent-writer conflict, and
// anything else (timeouts included) counts as the backend being unreachable.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sentinel.ErrConflict),
		errors.Is(err, sentinel.ErrNotFound),
		errors.Is(err, sentinel.ErrOwnershipMismatch):
		return err
	case errors.Is(err, redis.Nil):
		return fmt.Errorf("%v: %w", err, sentinel.ErrNotFound)
	case errors.Is(err, redis.TxFailedErr):
		return fmt.Errorf("concurrent ledger write: %w", sentinel.ErrConflict)
	default:
		return fmt.Errorf("ledger backend: %v: %w", err, sentinel.ErrUnavailable)
	}
}

func (l *Redis) Ping(ctx context.Context) error {
	return classify(l.rdb.Ping(ctx).Err())
}

func (l *Redis) CreateDeed(ctx context.Context, deed models.Deed) (string, error) {
	now := time.Now()
	deed.Status = models.DeedStatusPending
	deed.CreatedAt = now
	deed.UpdatedAt = now
	txID := uuid.NewString()

	dKey, nKey := deedKey(deed.ID), numberKey(deed.DeedNumber)

	err := l.rdb.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, dKey, nKey).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("deed %s or number %s already present: %w",
				deed.ID, deed.DeedNumber, sentinel.ErrConflict)
		}
		return l.commit(ctx, tx, deed, txID, 1, now, nil, func(pipe redis.Pipeliner, payload []byte) {
			pipe.Set(ctx, dKey, payload, 0)
			pipe.Set(ctx, nKey, deed.ID.String(), 0)
		})
	}, dKey, nKey)
	if err != nil {
		return "", classify(err)
	}
	return txID, nil
}

// commit writes the primary record, any extra keys, and the history entry in
// a single MULTI/EXEC unit under the surrounding Watch.
func (l *Redis) commit(ctx context.Context, tx *redis.Tx, deed models.Deed, txID string,
	seq uint64, at time.Time, transfer *models.Transfer,
	writes func(pipe redis.Pipeliner, payload []byte)) error {

	payload, err := json.Marshal(deed)
	if err != nil {
		return err
	}
	entry, err := json.Marshal(models.HistoryEntry{
		DeedID:    deed.ID,
		Sequence:  seq,
		TxID:      txID,
		Deed:      deed,
		Timestamp: at,
	})
	if err != nil {
		return err
	}

	_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		writes(pipe, payload)
		if transfer != nil {
			raw, err := json.Marshal(transfer)
			if err != nil {
				return err
			}
			pipe.Set(ctx, transferKey(transfer.ID), raw, 0)
		}
		pipe.RPush(ctx, historyKey(deed.ID), entry)
		return nil
	})
	return err
}

func (l *Redis) getDeed(ctx context.Context, key string) (*models.Deed, error) {
	raw, err := l.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, classify(err)
	}
	var deed models.Deed
	if err := json.Unmarshal(raw, &deed); err != nil {
		return nil, fmt.Errorf("decode ledger record %s: %w", key, err)
	}
	return &deed, nil
}

func (l *Redis) GetDeed(ctx context.Context, id uuid.UUID) (*models.Deed, error) {
	return l.getDeed(ctx, deedKey(id))
}

func (l *Redis) GetDeedByNumber(ctx context.Context, number string) (*models.Deed, error) {
	id, err := l.rdb.Get(ctx, numberKey(number)).Result()
	if err != nil {
		return nil, classify(err)
	}
	return l.getDeed(ctx, deedKeyPrefix+id)
}

func (l *Redis) UpdateDeed(ctx context.Context, id uuid.UUID, update models.DeedUpdate) (string, error) {
	txID := uuid.NewString()
	dKey, hKey := deedKey(id), historyKey(id)

	err := l.rdb.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, dKey).Bytes()
		if err != nil {
			return err
		}
		var deed models.Deed
		if err := json.Unmarshal(raw, &deed); err != nil {
			return err
		}

		now := time.Now()
		if update.Status != nil {
			deed.Status = *update.Status
		}
		if update.VerifiedBy != nil {
			deed.VerifiedBy = update.VerifiedBy
			deed.VerifiedAt = &now
		}
		deed.UpdatedAt = now

		seq, err := tx.LLen(ctx, hKey).Result()
		if err != nil {
			return err
		}
		return l.commit(ctx, tx, deed, txID, uint64(seq)+1, now, nil, func(pipe redis.Pipeliner, payload []byte) {
			pipe.Set(ctx, dKey, payload, 0)
		})
	}, dKey, hKey)
	if err != nil {
		return "", classify(err)
	}
	return txID, nil
}

func (l *Redis) TransferDeed(ctx context.Context, transfer models.Transfer) (string, error) {
	txID := uuid.NewString()
	dKey, hKey := deedKey(transfer.DeedID), historyKey(transfer.DeedID)

	err := l.rdb.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, dKey).Bytes()
		if err != nil {
			return err
		}
		var deed models.Deed
		if err := json.Unmarshal(raw, &deed); err != nil {
			return err
		}
		if deed.OwnerID != transfer.FromOwnerID {
			return fmt.Errorf("deed %s owned by %s, not %s: %w",
				deed.ID, deed.OwnerID, transfer.FromOwnerID, sentinel.ErrOwnershipMismatch)
		}

		now := time.Now()
		deed.OwnerID = transfer.ToOwnerID
		deed.Status = models.DeedStatusTransferred
		deed.UpdatedAt = now

		if transfer.ID == uuid.Nil {
			transfer.ID = uuid.New()
		}
		transfer.TransferredAt = now

		seq, err := tx.LLen(ctx, hKey).Result()
		if err != nil {
			return err
		}
		return l.commit(ctx, tx, deed, txID, uint64(seq)+1, now, &transfer, func(pipe redis.Pipeliner, payload []byte) {
			pipe.Set(ctx, dKey, payload, 0)
		})
	}, dKey, hKey)
	if err != nil {
		return "", classify(err)
	}
	return txID, nil
}

func (l *Redis) GetDeedHistory(ctx context.Context, id uuid.UUID) ([]models.HistoryEntry, error) {
	raws, err := l.rdb.LRange(ctx, historyKey(id), 0, -1).Result()
	if err != nil {
		return nil, classify(err)
	}
	if len(raws) == 0 {
		// Distinguish "never created" from a created deed with, in principle,
		// no history yet.
		n, err := l.rdb.Exists(ctx, deedKey(id)).Result()
		if err != nil {
			return nil, classify(err)
		}
		if n == 0 {
			return nil, fmt.Errorf("deed %s: %w", id, sentinel.ErrNotFound)
		}
		return []models.HistoryEntry{}, nil
	}

	entries := make([]models.HistoryEntry, 0, len(raws))
	for _, raw := range raws {
		var entry models.HistoryEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, fmt.Errorf("decode history entry for deed %s: %w", id, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (l *Redis) QueryDeedsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Deed, error) {
	return l.scan(ctx, func(d models.Deed) bool { return d.OwnerID == ownerID })
}

func (l *Redis) QueryDeedsByStatus(ctx context.Context, status models.DeedStatus) ([]models.Deed, error) {
	return l.scan(ctx, func(d models.Deed) bool { return d.Status == status })
}

func (l *Redis) QueryAllDeeds(ctx context.Context) ([]models.Deed, error) {
	return l.scan(ctx, func(models.Deed) bool { return true })
}

// scan walks the primary keyspace and filters client-side. Stable within one
// execution and restartable by re-invoking; no ordering is promised.
func (l *Redis) scan(ctx context.Context, match func(models.Deed) bool) ([]models.Deed, error) {
	var out []models.Deed
	iter := l.rdb.Scan(ctx, 0, deedKeyPrefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		raw, err := l.rdb.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue // deleted between SCAN and GET
			}
			return nil, classify(err)
		}
		var deed models.Deed
		if err := json.Unmarshal(raw, &deed); err != nil {
			return nil, fmt.Errorf("decode ledger record %s: %w", iter.Val(), err)
		}
		if match(deed) {
			out = append(out, deed)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

func (l *Redis) Stats(ctx context.Context) (models.DeedStats, error) {
	all, err := l.QueryAllDeeds(ctx)
	if err != nil {
		return models.DeedStats{}, err
	}
	return countByStatus(ctx, all)
}
