package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/aadhamashraf/intentgen/internal/db"
	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCascadeDelete_BatchToRecords verifies that deleting a batch removes its records.
func TestCascadeDelete_BatchToRecords(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	batchRepo := NewSQLiteBatchRepo(database)
	recordRepo := NewSQLiteRecordRepo(database)

	b := testutil.NewTestBatch()
	require.NoError(t, batchRepo.Create(ctx, b))
	rec := testutil.NewTestRecord()
	require.NoError(t, recordRepo.InsertMany(ctx, b.ID, []domain.Record{rec}))

	require.NoError(t, batchRepo.Delete(ctx, b.ID))

	_, err := recordRepo.GetByID(ctx, b.ID, rec.ID)
	assert.ErrorIs(t, err, ErrNotFound, "record should be cascade-deleted with its batch")
}

func TestRecordRepo_RequiresExistingBatch(t *testing.T) {
	repo := NewSQLiteRecordRepo(testutil.NewTestDB(t))
	err := repo.InsertMany(context.Background(), "missing-batch", []domain.Record{testutil.NewTestRecord()})
	assert.Error(t, err)
}

// TestUnitOfWork_RollsBackPartialBatch writes a batch row and its records in
// one transaction and fails on the record insert: nothing may remain.
func TestUnitOfWork_RollsBackPartialBatch(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	boom := errors.New("disk full")

	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: boom}
	b := testutil.NewTestBatch()
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := NewSQLiteBatchRepo(tx).Create(ctx, b); err != nil {
			return err
		}
		return NewSQLiteRecordRepo(tx).InsertMany(ctx, b.ID, []domain.Record{testutil.NewTestRecord()})
	})
	require.ErrorIs(t, err, boom)

	_, err = NewSQLiteBatchRepo(database).GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
