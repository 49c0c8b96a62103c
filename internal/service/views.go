package service

import (
	"alcyxob/loadx/internal/domain"
	"alcyxob/loadx/internal/progression"
)

// ExerciseCard is a logged exercise with its prescribed sets.
type ExerciseCard struct {
	Entry domain.LoggedExercise
	Sets  []progression.PrescribedSet
}

// Groups splits the card's sets into warmup, recognition and work blocks.
func (c ExerciseCard) Groups() []progression.SetGroup {
	return progression.GroupByKind(c.Sets)
}

// BuildCards prescribes the style's scheme for every entry, the first entry getting the
// first-in-cycle scheme.
func BuildCards(style string, entries []domain.LoggedExercise) []ExerciseCard {
	cards := make([]ExerciseCard, len(entries))
	for i, e := range entries {
		steps := progression.For(style, i == 0)
		cards[i] = ExerciseCard{Entry: e, Sets: progression.Prescribe(e.MaxWeight, steps)}
	}
	return cards
}

// GuidedCard is a guided exercise with loads computed from the athlete's max weight.
type GuidedCard struct {
	Exercise domain.GuidedExercise
	Sets     []progression.PrescribedSet
}

// GuidedView is one muscle group of guided cards.
type GuidedView struct {
	MuscleGroup string
	Cards       []GuidedCard
}

// BuildGuidedView groups exercises by muscle group in first-seen order.
func BuildGuidedView(exercises []domain.GuidedExercise) []GuidedView {
	groups := domain.GroupGuidedByMuscle(exercises)
	views := make([]GuidedView, len(groups))
	for i, g := range groups {
		views[i].MuscleGroup = g.MuscleGroup
		for _, ex := range g.Exercises {
			views[i].Cards = append(views[i].Cards, GuidedCard{
				Exercise: ex,
				Sets:     progression.Prescribe(ex.MaxWeight, ex.Progression),
			})
		}
	}
	return views
}
