package service

import (
	"context"
	"testing"
	"time"

	"alcyxob/loadx/internal/domain"
	"alcyxob/loadx/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinishWorkout_MovesLogIntoHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	logged := f.logEntries(t, "rui@x.com", domain.StylePPL, "Peito", "Tríceps", "Peito")

	session, err := f.archive.FinishWorkout(ctx, "rui@x.com", domain.StylePPL)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "05/03/2024", session.Date)
	assert.Equal(t, "13:45", session.Time)
	assert.Equal(t, logged, session.Exercises)
	assert.Equal(t, "Peito + Tríceps", session.Title(domain.StylePPL))

	live, err := f.exercises.Entries(ctx, "rui@x.com", domain.StylePPL)
	require.NoError(t, err)
	assert.Empty(t, live)

	history, err := f.archive.History(ctx, "rui@x.com", domain.StylePPL)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, *session, history[0])

	// Nothing logged: no-op.
	again, err := f.archive.FinishWorkout(ctx, "rui@x.com", domain.StylePPL)
	require.NoError(t, err)
	assert.Nil(t, again)
	history, err = f.archive.History(ctx, "rui@x.com", domain.StylePPL)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestFinishWorkout_NewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.logEntries(t, "rui@x.com", domain.StyleFullBody, "Pernas")
	first, err := f.archive.FinishWorkout(ctx, "rui@x.com", domain.StyleFullBody)
	require.NoError(t, err)

	f.now = fixedNow.Add(48 * time.Hour)
	f.logEntries(t, "rui@x.com", domain.StyleFullBody, "Costas", "Ombros")
	second, err := f.archive.FinishWorkout(ctx, "rui@x.com", domain.StyleFullBody)
	require.NoError(t, err)

	history, err := f.archive.History(ctx, "rui@x.com", domain.StyleFullBody)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID)
	assert.Equal(t, first.ID, history[1].ID)
	assert.Equal(t, "07/03/2024", history[0].Date)

	// Archived data no longer follows the live log.
	f.logEntries(t, "rui@x.com", domain.StyleFullBody, "Peito")
	history, err = f.archive.History(ctx, "rui@x.com", domain.StyleFullBody)
	require.NoError(t, err)
	assert.Len(t, history[0].Exercises, 2)
}

func TestFinishWorkout_FailedClearRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	logged := f.logEntries(t, "rui@x.com", domain.StylePPL, "Peito", "Costas")

	f.store.failKey = repository.KeyExerciseLogs
	_, err := f.archive.FinishWorkout(ctx, "rui@x.com", domain.StylePPL)
	require.Error(t, err)

	history, err := f.archive.History(ctx, "rui@x.com", domain.StylePPL)
	require.NoError(t, err)
	assert.Empty(t, history, "session must not stay archived")
	live, err := f.exercises.Entries(ctx, "rui@x.com", domain.StylePPL)
	require.NoError(t, err)
	assert.Equal(t, logged, live)
}

func TestFinishWorkout_FailedArchiveKeepsLog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	logged := f.logEntries(t, "rui@x.com", domain.StylePPL, "Peito")

	f.store.failKey = repository.KeySessionHistory
	_, err := f.archive.FinishWorkout(ctx, "rui@x.com", domain.StylePPL)
	require.Error(t, err)

	live, err := f.exercises.Entries(ctx, "rui@x.com", domain.StylePPL)
	require.NoError(t, err)
	assert.Equal(t, logged, live)
}

func TestFilterByDate(t *testing.T) {
	f := newFixture(t)
	history := []domain.WorkoutSession{
		{ID: "3", Date: "07/03/2024"},
		{ID: "2", Date: "05/03/2024"},
		{ID: "1", Date: "05/03/2024"},
	}

	got := f.archive.FilterByDate(history, time.Date(2024, time.March, 5, 22, 0, 0, 0, brt))
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, "1", got[1].ID)

	// 01:00 UTC on the 8th is still the 7th in BRT.
	got = f.archive.FilterByDate(history, time.Date(2024, time.March, 8, 1, 0, 0, 0, time.UTC))
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)

	got, err := f.archive.FilterByCalendarDate(history, "2024-03-06")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = f.archive.FilterByCalendarDate(history, "06/03/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "InvalidDate", Kind(err))
}

func TestHistoryRemoval_RequiresConfirmation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var sessions []*domain.WorkoutSession
	for i := 0; i < 3; i++ {
		f.logEntries(t, "rui@x.com", domain.StylePPL, "Peito")
		s, err := f.archive.FinishWorkout(ctx, "rui@x.com", domain.StylePPL)
		require.NoError(t, err)
		sessions = append(sessions, s)
	}

	del := f.archive.RequestDeleteSession("rui@x.com", domain.StylePPL, sessions[1].ID)
	history, err := f.archive.History(ctx, "rui@x.com", domain.StylePPL)
	require.NoError(t, err)
	assert.Len(t, history, 3)

	require.NoError(t, f.archive.Confirm(ctx, del.Token))
	history, err = f.archive.History(ctx, "rui@x.com", domain.StylePPL)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, sessions[2].ID, history[0].ID)
	assert.Equal(t, sessions[0].ID, history[1].ID)
	assert.ErrorIs(t, f.archive.Confirm(ctx, del.Token), ErrPendingActionNotFound)

	clearAll := f.archive.RequestClearHistory("rui@x.com", domain.StylePPL)
	require.NoError(t, f.archive.Cancel(clearAll.Token))
	assert.ErrorIs(t, f.archive.Confirm(ctx, clearAll.Token), ErrPendingActionNotFound)

	clearAll = f.archive.RequestClearHistory("rui@x.com", domain.StylePPL)
	assert.Equal(t, ActionClearHistory, clearAll.Kind)
	require.NoError(t, f.archive.Confirm(ctx, clearAll.Token))
	history, err = f.archive.History(ctx, "rui@x.com", domain.StylePPL)
	require.NoError(t, err)
	assert.Empty(t, history)

	// Tokens are not shared between services.
	entryToken := f.exercises.RequestDelete("rui@x.com", domain.StylePPL, "x")
	assert.ErrorIs(t, f.archive.Confirm(ctx, entryToken.Token), ErrPendingActionNotFound)
}

func TestHistoryRemoval_FailedConfirmKeepsToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.logEntries(t, "rui@x.com", domain.StylePPL, "Peito")
	_, err := f.archive.FinishWorkout(ctx, "rui@x.com", domain.StylePPL)
	require.NoError(t, err)

	clearAll := f.archive.RequestClearHistory("rui@x.com", domain.StylePPL)
	f.store.failKey = repository.KeySessionHistory
	require.Error(t, f.archive.Confirm(ctx, clearAll.Token))

	f.store.failKey = ""
	require.NoError(t, f.archive.Confirm(ctx, clearAll.Token))
	history, err := f.archive.History(ctx, "rui@x.com", domain.StylePPL)
	require.NoError(t, err)
	assert.Empty(t, history)
}
