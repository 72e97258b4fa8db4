package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/million_tracker/internal/apperrors"
	"github.com/SscSPs/million_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/million_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/million_tracker/internal/models"
	"github.com/SscSPs/million_tracker/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxRateHistoryRepository archives rate snapshots in PostgreSQL.
type PgxRateHistoryRepository struct {
	BaseRepository
}

func newPgxRateHistoryRepository(db *pgxpool.Pool) *PgxRateHistoryRepository {
	return &PgxRateHistoryRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.RateHistoryRepository = (*PgxRateHistoryRepository)(nil)

// SaveSnapshot inserts the snapshot header and one entry per currency in a single transaction.
func (r *PgxRateHistoryRepository) SaveSnapshot(ctx context.Context, snapshot domain.RateSnapshot) (string, error) {
	header := models.RateSnapshot{
		SnapshotID: uuid.NewString(),
		FetchedAt:  snapshot.AsOf(),
		CreatedAt:  time.Now(),
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO rate_snapshots (snapshot_id, fetched_at, created_at)
		VALUES ($1, $2, $3)`,
		header.SnapshotID, header.FetchedAt, header.CreatedAt,
	)
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to insert rate snapshot", err)
	}

	batch := &pgx.Batch{}
	for _, e := range mapping.ToModelRateSnapshotEntries(header.SnapshotID, snapshot) {
		batch.Queue(`
			INSERT INTO rate_snapshot_entries (snapshot_id, currency_code, rate)
			VALUES ($1, $2, $3)`,
			e.SnapshotID, e.CurrencyCode, e.Rate,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return "", apperrors.NewAppError(500, "failed to insert rate snapshot entries", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return header.SnapshotID, nil
}

// ListSnapshots returns the newest limit snapshots with their entries.
func (r *PgxRateHistoryRepository) ListSnapshots(ctx context.Context, limit int) ([]domain.ArchivedSnapshot, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT snapshot_id, fetched_at, created_at
		FROM rate_snapshots
		ORDER BY fetched_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list rate snapshots", err)
	}
	headers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.RateSnapshot, error) {
		var m models.RateSnapshot
		err := row.Scan(&m.SnapshotID, &m.FetchedAt, &m.CreatedAt)
		return m, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan rate snapshots", err)
	}
	if len(headers) == 0 {
		return []domain.ArchivedSnapshot{}, nil
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.SnapshotID
	}
	entryRows, err := r.Pool.Query(ctx, `
		SELECT snapshot_id, currency_code, rate
		FROM rate_snapshot_entries
		WHERE snapshot_id = ANY($1)`, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list rate snapshot entries", err)
	}
	entries, err := pgx.CollectRows(entryRows, func(row pgx.CollectableRow) (models.RateSnapshotEntry, error) {
		var e models.RateSnapshotEntry
		err := row.Scan(&e.SnapshotID, &e.CurrencyCode, &e.Rate)
		return e, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan rate snapshot entries", err)
	}

	bySnapshot := make(map[string][]models.RateSnapshotEntry, len(headers))
	for _, e := range entries {
		bySnapshot[e.SnapshotID] = append(bySnapshot[e.SnapshotID], e)
	}

	archived := make([]domain.ArchivedSnapshot, 0, len(headers))
	for _, h := range headers {
		a, err := mapping.ToDomainArchivedSnapshot(h, bySnapshot[h.SnapshotID])
		if err != nil {
			return nil, apperrors.NewAppError(500, "corrupt rate snapshot", err)
		}
		archived = append(archived, a)
	}
	return archived, nil
}
