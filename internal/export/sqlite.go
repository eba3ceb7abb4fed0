package export

import (
	"context"
	"fmt"

	"github.com/aadhamashraf/intentgen/internal/db"
	"github.com/aadhamashraf/intentgen/internal/domain"
	"github.com/aadhamashraf/intentgen/internal/repository"
)

// SQLiteSink stores a batch and its records in one transaction.
type SQLiteSink struct {
	uow db.UnitOfWork
}

func NewSQLiteSink(uow db.UnitOfWork) *SQLiteSink {
	return &SQLiteSink{uow: uow}
}

// Store persists b and records atomically. b.RecordCount is set from records.
func (s *SQLiteSink) Store(ctx context.Context, b *domain.Batch, records []domain.Record) error {
	b.RecordCount = len(records)
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteBatchRepo(tx).Create(ctx, b); err != nil {
			return err
		}
		return repository.NewSQLiteRecordRepo(tx).InsertMany(ctx, b.ID, records)
	})
	if err != nil {
		return fmt.Errorf("storing batch %s: %w", b.ID, err)
	}
	return nil
}
