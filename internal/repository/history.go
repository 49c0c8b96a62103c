package repository

import (
	"alcyxob/loadx/internal/domain"
	"context"
)

// documentHistoryRepository implements HistoryRepository over the "session-history" document.
type documentHistoryRepository struct {
	doc *Document[SessionHistory]
}

// NewHistoryRepository creates a HistoryRepository backed by an opened document.
func NewHistoryRepository(doc *Document[SessionHistory]) HistoryRepository {
	return &documentHistoryRepository{doc: doc}
}

func (r *documentHistoryRepository) List(ctx context.Context, email, style string) ([]domain.WorkoutSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	history, err := r.doc.Read()
	if err != nil {
		return nil, err
	}
	sessions := history[email][style]
	if sessions == nil {
		sessions = []domain.WorkoutSession{}
	}
	return sessions, nil
}

// Prepend stores session as the newest entry of the style's history.
func (r *documentHistoryRepository) Prepend(ctx context.Context, email, style string, session domain.WorkoutSession) error {
	return r.doc.Update(ctx, func(history *SessionHistory) error {
		bucket := styleBucket(history, email)
		bucket[style] = append([]domain.WorkoutSession{session}, bucket[style]...)
		return nil
	})
}

func (r *documentHistoryRepository) Delete(ctx context.Context, email, style, id string) (bool, error) {
	err := r.doc.Update(ctx, func(history *SessionHistory) error {
		sessions := (*history)[email][style]
		for i := range sessions {
			if sessions[i].ID == id {
				(*history)[email][style] = append(sessions[:i:i], sessions[i+1:]...)
				return nil
			}
		}
		return errNoChange
	})
	return changed(err)
}

func (r *documentHistoryRepository) Clear(ctx context.Context, email, style string) error {
	return r.doc.Update(ctx, func(history *SessionHistory) error {
		styleBucket(history, email)[style] = []domain.WorkoutSession{}
		return nil
	})
}
