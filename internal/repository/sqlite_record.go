package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aadhamashraf/intentgen/internal/db"
	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/jmoiron/sqlx"
)

const recordColumns = `id, batch_id, position, intent_type, description, timestamp, priority, network_slice,
	location, technical_complexity, research_context, compliance, parameters, metadata`

// insertChunk keeps a multi-row insert under SQLite's bound-variable limit.
const insertChunk = 500

// SQLiteRecordRepo implements RecordRepo using a SQLite database.
type SQLiteRecordRepo struct {
	db db.DBTX
}

// NewSQLiteRecordRepo creates a new SQLiteRecordRepo.
func NewSQLiteRecordRepo(db db.DBTX) *SQLiteRecordRepo {
	return &SQLiteRecordRepo{db: db}
}

// InsertMany stores records in order under batchID. Run it inside a
// UnitOfWork to make the whole batch atomic.
func (r *SQLiteRecordRepo) InsertMany(ctx context.Context, batchID string, records []domain.Record) error {
	query := `INSERT INTO records (` + recordColumns + `)
		VALUES (:id, :batch_id, :position, :intent_type, :description, :timestamp, :priority, :network_slice,
			:location, :technical_complexity, :research_context, :compliance, :parameters, :metadata)`

	for start := 0; start < len(records); start += insertChunk {
		end := min(start+insertChunk, len(records))
		rows := make([]recordRow, 0, end-start)
		for i := start; i < end; i++ {
			row, err := toRecordRow(batchID, i, records[i])
			if err != nil {
				return err
			}
			rows = append(rows, row)
		}
		if _, err := sqlx.NamedExecContext(ctx, r.db, query, rows); err != nil {
			return fmt.Errorf("inserting records %d..%d: %w", start, end-1, err)
		}
	}
	return nil
}

// GetByID loads one record of a batch. Ids are only unique per batch:
// re-running a seed stores the same ids again under a new batch.
func (r *SQLiteRecordRepo) GetByID(ctx context.Context, batchID, id string) (*domain.Record, error) {
	var row recordRow
	query := `SELECT ` + recordColumns + ` FROM records WHERE batch_id = ? AND id = ?`
	err := sqlx.GetContext(ctx, r.db, &row, query, batchID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("record: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("loading record: %w", err)
	}
	rec, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *SQLiteRecordRepo) ListByBatch(ctx context.Context, batchID string) ([]domain.Record, error) {
	var rows []recordRow
	query := `SELECT ` + recordColumns + ` FROM records WHERE batch_id = ? ORDER BY position`
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, batchID); err != nil {
		return nil, fmt.Errorf("listing records by batch: %w", err)
	}
	records := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *SQLiteRecordRepo) CountByKind(ctx context.Context, batchID string) (map[domain.RecordKind]int, error) {
	var rows []struct {
		Kind  string `db:"intent_type"`
		Count int    `db:"n"`
	}
	query := `SELECT intent_type, COUNT(*) AS n FROM records WHERE batch_id = ? GROUP BY intent_type`
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, batchID); err != nil {
		return nil, fmt.Errorf("counting records by kind: %w", err)
	}
	out := make(map[domain.RecordKind]int, len(rows))
	for _, row := range rows {
		out[domain.RecordKind(row.Kind)] = row.Count
	}
	return out, nil
}
