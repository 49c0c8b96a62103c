package repository_test

import (
	"context"
	"errors"
	"testing"

	"alcyxob/loadx/internal/domain"
	"alcyxob/loadx/internal/repository"
	"alcyxob/loadx/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyStore fails every Put while failPuts is set.
type flakyStore struct {
	*memory.BlobStore
	failPuts bool
	puts     int
}

func (s *flakyStore) Put(ctx context.Context, key string, data []byte) error {
	if s.failPuts {
		return errors.New("disk full")
	}
	s.puts++
	return s.BlobStore.Put(ctx, key, data)
}

func openRepos(t *testing.T) (*repository.Repositories, *flakyStore) {
	t.Helper()
	store := &flakyStore{BlobStore: memory.NewBlobStore()}
	repos, err := repository.Open(context.Background(), store)
	require.NoError(t, err)
	return repos, store
}

func TestOpen_EmptyStore(t *testing.T) {
	repos, store := openRepos(t)
	ctx := context.Background()

	accounts, err := repos.Accounts.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, accounts)
	assert.Empty(t, accounts)

	entries, err := repos.Logs.List(ctx, "a@x.com", domain.StylePPL)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Zero(t, store.puts, "opening must not write")
}

func TestOpen_CorruptDocument(t *testing.T) {
	store := memory.NewBlobStore()
	require.NoError(t, store.Put(context.Background(), repository.KeyAccounts, []byte(`{not json`)))

	_, err := repository.Open(context.Background(), store)
	assert.ErrorContains(t, err, "unmarshal accounts")
}

func TestOpen_ReloadsPersistedState(t *testing.T) {
	store := memory.NewBlobStore()
	ctx := context.Background()

	repos, err := repository.Open(ctx, store)
	require.NoError(t, err)
	require.NoError(t, repos.Logs.Append(ctx, "a@x.com", domain.StylePPL, domain.LoggedExercise{ID: "1", Name: "Supino"}))

	reopened, err := repository.Open(ctx, store)
	require.NoError(t, err)
	entries, err := reopened.Logs.List(ctx, "a@x.com", domain.StylePPL)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Supino", entries[0].Name)
}

func TestAccountRepository(t *testing.T) {
	repos, _ := openRepos(t)
	ctx := context.Background()

	athlete := domain.Account{Email: "a@x.com", Name: "A", Role: domain.RoleAthlete, SerialNumber: "#AAAAAA"}
	require.NoError(t, repos.Accounts.Create(ctx, athlete))

	err := repos.Accounts.Create(ctx, domain.Account{Email: "a@x.com", Role: domain.RoleCoach, SerialNumber: "#BBBBBB"})
	assert.ErrorIs(t, err, repository.ErrConflict)
	err = repos.Accounts.Create(ctx, domain.Account{Email: "b@x.com", Role: domain.RoleCoach, SerialNumber: "#AAAAAA"})
	assert.ErrorIs(t, err, repository.ErrConflict)

	// email lookups are case-sensitive
	_, err = repos.Accounts.GetByEmail(ctx, "A@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	found, err := repos.Accounts.GetBySerial(ctx, "#AAAAAA")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", found.Email)

	exists, err := repos.Accounts.SerialExists(ctx, "#ZZZZZZ")
	require.NoError(t, err)
	assert.False(t, exists)

	updated, err := repos.Accounts.UpdatePhoto(ctx, "a@x.com", "data:image/png;base64,AA==")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AA==", updated.Photo)
	assert.Equal(t, "#AAAAAA", updated.SerialNumber)

	_, err = repos.Accounts.UpdatePhoto(ctx, "nobody@x.com", "x")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDocument_FailedWriteLeavesStateUnchanged(t *testing.T) {
	repos, store := openRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Logs.Append(ctx, "a@x.com", domain.StylePPL, domain.LoggedExercise{ID: "1"}))

	store.failPuts = true
	err := repos.Logs.Append(ctx, "a@x.com", domain.StylePPL, domain.LoggedExercise{ID: "2"})
	assert.ErrorContains(t, err, "write exercise-logs")

	ok, err := repos.Logs.Update(ctx, "a@x.com", domain.StylePPL, "1", func(e *domain.LoggedExercise) { e.Name = "changed" })
	assert.Error(t, err)
	assert.False(t, ok)

	store.failPuts = false
	entries, err := repos.Logs.List(ctx, "a@x.com", domain.StylePPL)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Name)
}

func TestExerciseLogRepository(t *testing.T) {
	repos, store := openRepos(t)
	ctx := context.Background()
	email, style := "a@x.com", domain.StyleFullBody

	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, repos.Logs.Append(ctx, email, style, domain.LoggedExercise{ID: id}))
	}

	ok, err := repos.Logs.Update(ctx, email, style, "2", func(e *domain.LoggedExercise) { e.MaxWeight = "90" })
	require.NoError(t, err)
	assert.True(t, ok)

	puts := store.puts
	ok, err = repos.Logs.Update(ctx, email, style, "missing", func(e *domain.LoggedExercise) { e.MaxWeight = "1" })
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, puts, store.puts, "a miss must not write")

	ok, err = repos.Logs.Delete(ctx, email, style, "1")
	require.NoError(t, err)
	assert.True(t, ok)

	entries, err := repos.Logs.List(ctx, email, style)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2", entries[0].ID)
	assert.Equal(t, "90", entries[0].MaxWeight)
	assert.Equal(t, "3", entries[1].ID)

	// other styles are untouched
	other, err := repos.Logs.List(ctx, email, domain.StylePPL)
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, repos.Logs.Replace(ctx, email, style, nil))
	entries, err = repos.Logs.List(ctx, email, style)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistoryRepository(t *testing.T) {
	repos, _ := openRepos(t)
	ctx := context.Background()
	email, style := "a@x.com", domain.StylePPL

	require.NoError(t, repos.History.Prepend(ctx, email, style, domain.WorkoutSession{ID: "old"}))
	require.NoError(t, repos.History.Prepend(ctx, email, style, domain.WorkoutSession{ID: "new"}))

	sessions, err := repos.History.List(ctx, email, style)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "new", sessions[0].ID)

	ok, err := repos.History.Delete(ctx, email, style, "old")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repos.History.Delete(ctx, email, style, "old")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repos.History.Clear(ctx, email, style))
	sessions, err = repos.History.List(ctx, email, style)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestRosterRepository(t *testing.T) {
	repos, _ := openRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Rosters.Append(ctx, "c@x.com", domain.RosterEntry{DisplayName: "Rui", SerialNumber: "#AAAAAA"}))
	require.NoError(t, repos.Rosters.Append(ctx, "c@x.com", domain.RosterEntry{DisplayName: "Ana", SerialNumber: "#BBBBBB"}))
	err := repos.Rosters.Append(ctx, "c@x.com", domain.RosterEntry{DisplayName: "Rui again", SerialNumber: "#AAAAAA"})
	assert.ErrorIs(t, err, repository.ErrConflict)

	// the same athlete may be linked by another coach
	require.NoError(t, repos.Rosters.Append(ctx, "other@x.com", domain.RosterEntry{DisplayName: "Rui", SerialNumber: "#AAAAAA"}))

	roster, err := repos.Rosters.List(ctx, "c@x.com")
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "Rui", roster[0].DisplayName)
	assert.Equal(t, "Ana", roster[1].DisplayName)
}

func TestGuidedRepository(t *testing.T) {
	repos, _ := openRepos(t)
	ctx := context.Background()
	athlete := "a@x.com"

	require.NoError(t, repos.Guided.Replace(ctx, athlete, []domain.GuidedExercise{{ID: "1"}, {ID: "2"}}))
	require.NoError(t, repos.Guided.Replace(ctx, athlete, []domain.GuidedExercise{{ID: "3"}}))

	list, err := repos.Guided.List(ctx, athlete)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "3", list[0].ID)

	ok, err := repos.Guided.Update(ctx, athlete, "3", func(g *domain.GuidedExercise) { g.MaxWeight = "120" })
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repos.Guided.Update(ctx, athlete, "1", func(g *domain.GuidedExercise) { g.MaxWeight = "1" })
	require.NoError(t, err)
	assert.False(t, ok)

	list, err = repos.Guided.List(ctx, athlete)
	require.NoError(t, err)
	assert.Equal(t, "120", list[0].MaxWeight)
}

func TestDocument_ContextCancelled(t *testing.T) {
	repos, _ := openRepos(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repos.Rosters.Append(ctx, "c@x.com", domain.RosterEntry{SerialNumber: "#A"})
	assert.ErrorIs(t, err, context.Canceled)
}
