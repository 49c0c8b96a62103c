package repository

import (
	"alcyxob/loadx/internal/domain"
	"context"
)

// Repositories bundles the five document-backed repositories of one BlobStore.
type Repositories struct {
	Accounts AccountRepository
	Logs     ExerciseLogRepository
	History  HistoryRepository
	Rosters  RosterRepository
	Guided   GuidedRepository
}

// Open reads all five documents from store, treating absent keys as empty collections.
func Open(ctx context.Context, store BlobStore) (*Repositories, error) {
	accounts, err := OpenDocument[[]domain.Account](ctx, store, KeyAccounts)
	if err != nil {
		return nil, err
	}
	logs, err := OpenDocument[ExerciseLogs](ctx, store, KeyExerciseLogs)
	if err != nil {
		return nil, err
	}
	history, err := OpenDocument[SessionHistory](ctx, store, KeySessionHistory)
	if err != nil {
		return nil, err
	}
	rosters, err := OpenDocument[CoachRosters](ctx, store, KeyCoachRosters)
	if err != nil {
		return nil, err
	}
	guided, err := OpenDocument[GuidedExercises](ctx, store, KeyGuidedExercises)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		Accounts: NewAccountRepository(accounts),
		Logs:     NewExerciseLogRepository(logs),
		History:  NewHistoryRepository(history),
		Rosters:  NewRosterRepository(rosters),
		Guided:   NewGuidedRepository(guided),
	}, nil
}
