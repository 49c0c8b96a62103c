package repository

import (
	"alcyxob/loadx/internal/domain"
	"context"
)

// GuidedExercises is the shape of the "guided-exercises" document: athlete email → exercises.
type GuidedExercises = map[string][]domain.GuidedExercise

// documentGuidedRepository implements GuidedRepository over the "guided-exercises" document.
type documentGuidedRepository struct {
	doc *Document[GuidedExercises]
}

// NewGuidedRepository creates a GuidedRepository backed by an opened document.
func NewGuidedRepository(doc *Document[GuidedExercises]) GuidedRepository {
	return &documentGuidedRepository{doc: doc}
}

func (r *documentGuidedRepository) List(ctx context.Context, athleteEmail string) ([]domain.GuidedExercise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	guided, err := r.doc.Read()
	if err != nil {
		return nil, err
	}
	exercises := guided[athleteEmail]
	if exercises == nil {
		exercises = []domain.GuidedExercise{}
	}
	return exercises, nil
}

// Replace overwrites the athlete's whole guided list.
func (r *documentGuidedRepository) Replace(ctx context.Context, athleteEmail string, exercises []domain.GuidedExercise) error {
	if exercises == nil {
		exercises = []domain.GuidedExercise{}
	}
	return r.doc.Update(ctx, func(guided *GuidedExercises) error {
		if *guided == nil {
			*guided = make(GuidedExercises)
		}
		(*guided)[athleteEmail] = exercises
		return nil
	})
}

func (r *documentGuidedRepository) Update(ctx context.Context, athleteEmail, id string, fn func(*domain.GuidedExercise)) (bool, error) {
	err := r.doc.Update(ctx, func(guided *GuidedExercises) error {
		exercises := (*guided)[athleteEmail]
		for i := range exercises {
			if exercises[i].ID == id {
				fn(&exercises[i])
				return nil
			}
		}
		return errNoChange
	})
	return changed(err)
}
