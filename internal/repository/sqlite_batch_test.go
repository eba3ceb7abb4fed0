package repository

import (
	"context"
	"testing"
	"time"

	"github.com/aadhamashraf/intentgen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLiteBatchRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	b := testutil.NewTestBatch(testutil.WithSeed(7), testutil.WithSessionID("RESEARCH_1_abc"))
	b.RecordCount = 3
	b.DuplicatesRemoved = 1
	require.NoError(t, repo.Create(ctx, b))

	fetched, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, fetched.ID)
	assert.Equal(t, uint64(7), fetched.Seed)
	assert.Equal(t, 3, fetched.RecordCount)
	assert.Equal(t, 1, fetched.DuplicatesRemoved)
	assert.Equal(t, "RESEARCH_1_abc", fetched.SessionID)
	assert.True(t, b.CreatedAt.Equal(fetched.CreatedAt))
}

func TestBatchRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteBatchRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBatchRepo_ListNewestFirst(t *testing.T) {
	repo := NewSQLiteBatchRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	older := testutil.NewTestBatch(testutil.WithCreatedAt(time.Now().Add(-time.Hour).UTC()))
	newer := testutil.NewTestBatch()
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestBatchRepo_LargeSeedSurvives(t *testing.T) {
	repo := NewSQLiteBatchRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	b := testutil.NewTestBatch(testutil.WithSeed(^uint64(0)))
	require.NoError(t, repo.Create(ctx, b))

	fetched, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, ^uint64(0), fetched.Seed)
}

func TestBatchRepo_Delete(t *testing.T) {
	repo := NewSQLiteBatchRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	b := testutil.NewTestBatch()
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.Delete(ctx, b.ID))

	_, err := repo.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, b.ID), ErrNotFound)
}
