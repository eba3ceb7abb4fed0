package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aadhamashraf/intentgen/internal/db"
	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/testutil"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all pooled connections.
func newConcurrentTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "concurrent_test.db"))
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// TestConcurrentAccess_ReadDuringWrite lists batches and records from several
// goroutines while one writer stores batches transactionally.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	uow := db.NewSQLiteUnitOfWork(database)
	batchRepo := NewSQLiteBatchRepo(database)

	const batches = 10

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range batches {
			b := testutil.NewTestBatch(testutil.WithSeed(uint64(i)))
			recs := []domain.Record{
				testutil.NewTestRecord(testutil.WithDescription(fmt.Sprintf("batch %d first", i))),
				testutil.NewTestRecord(testutil.WithDescription(fmt.Sprintf("batch %d second", i))),
			}
			err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				if err := NewSQLiteBatchRepo(tx).Create(ctx, b); err != nil {
					return err
				}
				return NewSQLiteRecordRepo(tx).InsertMany(ctx, b.ID, recs)
			})
			if err != nil {
				t.Errorf("writer: batch %d: %v", i, err)
				return
			}
		}
	}()

	for r := range 5 {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			recordRepo := NewSQLiteRecordRepo(database)
			for range 10 {
				list, err := batchRepo.List(ctx)
				if err != nil {
					t.Errorf("reader %d: list batches: %v", reader, err)
					return
				}
				// A committed batch always carries both of its records.
				for _, b := range list {
					recs, err := recordRepo.ListByBatch(ctx, b.ID)
					if err != nil {
						t.Errorf("reader %d: list records: %v", reader, err)
						return
					}
					if len(recs) != 2 {
						t.Errorf("reader %d: batch %s has %d records", reader, b.ID, len(recs))
					}
				}
			}
		}(r)
	}

	wg.Wait()

	list, err := batchRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, batches)
}
