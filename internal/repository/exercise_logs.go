package repository

import (
	"alcyxob/loadx/internal/domain"
	"context"
	"errors"
)

// ExerciseLogs is the shape of the "exercise-logs" document: email → style → entries.
type ExerciseLogs = map[string]map[string][]domain.LoggedExercise

// SessionHistory is the shape of the "session-history" document: email → style → sessions.
type SessionHistory = map[string]map[string][]domain.WorkoutSession

// styleBucket returns the per-style map of owner, creating both levels when missing.
func styleBucket[E any](m *map[string]map[string][]E, owner string) map[string][]E {
	if *m == nil {
		*m = make(map[string]map[string][]E)
	}
	bucket, ok := (*m)[owner]
	if !ok {
		bucket = make(map[string][]E)
		(*m)[owner] = bucket
	}
	return bucket
}

// documentExerciseLogRepository implements ExerciseLogRepository over the "exercise-logs" document.
type documentExerciseLogRepository struct {
	doc *Document[ExerciseLogs]
}

// NewExerciseLogRepository creates an ExerciseLogRepository backed by an opened document.
func NewExerciseLogRepository(doc *Document[ExerciseLogs]) ExerciseLogRepository {
	return &documentExerciseLogRepository{doc: doc}
}

func (r *documentExerciseLogRepository) List(ctx context.Context, email, style string) ([]domain.LoggedExercise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logs, err := r.doc.Read()
	if err != nil {
		return nil, err
	}
	entries := logs[email][style]
	if entries == nil {
		entries = []domain.LoggedExercise{}
	}
	return entries, nil
}

func (r *documentExerciseLogRepository) Append(ctx context.Context, email, style string, entry domain.LoggedExercise) error {
	return r.doc.Update(ctx, func(logs *ExerciseLogs) error {
		bucket := styleBucket(logs, email)
		bucket[style] = append(bucket[style], entry)
		return nil
	})
}

func (r *documentExerciseLogRepository) Update(ctx context.Context, email, style, id string, fn func(*domain.LoggedExercise)) (bool, error) {
	err := r.doc.Update(ctx, func(logs *ExerciseLogs) error {
		entries := (*logs)[email][style]
		for i := range entries {
			if entries[i].ID == id {
				fn(&entries[i])
				return nil
			}
		}
		return errNoChange
	})
	return changed(err)
}

func (r *documentExerciseLogRepository) Delete(ctx context.Context, email, style, id string) (bool, error) {
	err := r.doc.Update(ctx, func(logs *ExerciseLogs) error {
		entries := (*logs)[email][style]
		for i := range entries {
			if entries[i].ID == id {
				(*logs)[email][style] = append(entries[:i:i], entries[i+1:]...)
				return nil
			}
		}
		return errNoChange
	})
	return changed(err)
}

func (r *documentExerciseLogRepository) Replace(ctx context.Context, email, style string, entries []domain.LoggedExercise) error {
	if entries == nil {
		entries = []domain.LoggedExercise{}
	}
	return r.doc.Update(ctx, func(logs *ExerciseLogs) error {
		styleBucket(logs, email)[style] = entries
		return nil
	})
}

// changed turns the outcome of a conditional update into (found, error).
func changed(err error) (bool, error) {
	if errors.Is(err, errNoChange) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
