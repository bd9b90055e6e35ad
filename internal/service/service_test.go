package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"simtrack/internal/repository"
	"simtrack/internal/repository/sqlite"
)

type testRepos struct {
	users    repository.UserRepository
	progress repository.ProgressRepository
	sessions repository.SessionRepository
}

func openTestRepos(t *testing.T) testRepos {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repos := testRepos{
		users:    sqlite.NewUserRepository(db),
		progress: sqlite.NewProgressRepository(db),
		sessions: sqlite.NewSessionRepository(db),
	}

	ctx := context.Background()
	require.NoError(t, repos.users.Init(ctx))
	require.NoError(t, repos.progress.Init(ctx))
	require.NoError(t, repos.sessions.Init(ctx))

	return repos
}
