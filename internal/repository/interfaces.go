package repository

import (
	"context"

	"github.com/aadhamashraf/intentgen/internal/domain"
)

type BatchRepo interface {
	Create(ctx context.Context, b *domain.Batch) error
	GetByID(ctx context.Context, id string) (*domain.Batch, error)
	List(ctx context.Context) ([]*domain.Batch, error)
	Delete(ctx context.Context, id string) error
}

type RecordRepo interface {
	InsertMany(ctx context.Context, batchID string, records []domain.Record) error
	GetByID(ctx context.Context, batchID, id string) (*domain.Record, error)
	ListByBatch(ctx context.Context, batchID string) ([]domain.Record, error)
	CountByKind(ctx context.Context, batchID string) (map[domain.RecordKind]int, error)
}
