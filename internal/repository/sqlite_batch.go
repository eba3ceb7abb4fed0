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

const batchColumns = `id, seed, requested, record_count, duplicates_removed, generator_version, session_id, created_at`

// SQLiteBatchRepo implements BatchRepo using a SQLite database.
type SQLiteBatchRepo struct {
	db db.DBTX
}

// NewSQLiteBatchRepo creates a new SQLiteBatchRepo.
func NewSQLiteBatchRepo(db db.DBTX) *SQLiteBatchRepo {
	return &SQLiteBatchRepo{db: db}
}

func (r *SQLiteBatchRepo) Create(ctx context.Context, b *domain.Batch) error {
	query := `INSERT INTO batches (` + batchColumns + `)
		VALUES (:id, :seed, :requested, :record_count, :duplicates_removed, :generator_version, :session_id, :created_at)`
	if _, err := sqlx.NamedExecContext(ctx, r.db, query, toBatchRow(b)); err != nil {
		return fmt.Errorf("inserting batch: %w", err)
	}
	return nil
}

func (r *SQLiteBatchRepo) GetByID(ctx context.Context, id string) (*domain.Batch, error) {
	var row batchRow
	err := sqlx.GetContext(ctx, r.db, &row, `SELECT `+batchColumns+` FROM batches WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("batch: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("loading batch: %w", err)
	}
	return row.toDomain()
}

func (r *SQLiteBatchRepo) List(ctx context.Context) ([]*domain.Batch, error) {
	var rows []batchRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, `SELECT `+batchColumns+` FROM batches ORDER BY created_at DESC, id`); err != nil {
		return nil, fmt.Errorf("listing batches: %w", err)
	}
	batches := make([]*domain.Batch, 0, len(rows))
	for _, row := range rows {
		b, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, nil
}

func (r *SQLiteBatchRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM batches WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting batch: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("batch: %w", ErrNotFound)
	}
	return nil
}
