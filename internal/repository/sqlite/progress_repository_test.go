package sqlite

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simtrack/internal/domain"
)

func TestProgressRepository_ListEmpty(t *testing.T) {
	db := openTestDB(t)
	repo := NewProgressRepository(db)

	records, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestProgressRepository_UpsertInsertsThenUpdates(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	repo := NewProgressRepository(db)
	ctx := context.Background()

	userID, err := users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h"})
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(ctx, userID, "negotiation", 1))
	require.NoError(t, repo.Upsert(ctx, userID, "negotiation", 3))

	records, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "negotiation", records[0].SimulationName)
	assert.Equal(t, 3, records[0].Completed)
}

func TestProgressRepository_PairsAreIndependent(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	repo := NewProgressRepository(db)
	ctx := context.Background()

	aliceID, err := users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h"})
	require.NoError(t, err)
	bobID, err := users.Create(ctx, &domain.User{Username: "bob", PasswordHash: "h"})
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(ctx, aliceID, "negotiation", 1))
	require.NoError(t, repo.Upsert(ctx, aliceID, "interview", 2))
	require.NoError(t, repo.Upsert(ctx, bobID, "negotiation", 5))

	aliceRecords, err := repo.ListByUser(ctx, aliceID)
	require.NoError(t, err)
	assert.Len(t, aliceRecords, 2)

	bobRecords, err := repo.ListByUser(ctx, bobID)
	require.NoError(t, err)
	require.Len(t, bobRecords, 1)
	assert.Equal(t, 5, bobRecords[0].Completed)
}

func TestProgressRepository_ConcurrentUpsertsSingleRow(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	repo := NewProgressRepository(db)
	ctx := context.Background()

	userID, err := users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h"})
	require.NoError(t, err)

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(completed int) {
			defer wg.Done()
			errs <- repo.Upsert(ctx, userID, "negotiation", completed)
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	records, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
