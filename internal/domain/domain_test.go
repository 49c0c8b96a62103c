package domain_test

import (
	"testing"

	"alcyxob/loadx/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestUniqueMuscleGroups(t *testing.T) {
	entries := []domain.LoggedExercise{
		{MuscleGroup: "Peito"},
		{MuscleGroup: "Costas"},
		{MuscleGroup: "Peito"},
		{MuscleGroup: "Pernas"},
	}
	assert.Equal(t, []string{"Peito", "Costas", "Pernas"}, domain.UniqueMuscleGroups(entries))
	assert.Empty(t, domain.UniqueMuscleGroups(nil))
}

func TestWorkoutSession_Title(t *testing.T) {
	s := domain.WorkoutSession{Exercises: []domain.LoggedExercise{
		{MuscleGroup: "Peito"}, {MuscleGroup: "Tríceps"}, {MuscleGroup: "Peito"},
	}}
	assert.Equal(t, "Peito + Tríceps", s.Title(domain.StylePPL))

	empty := domain.WorkoutSession{}
	assert.Equal(t, domain.StylePPL, empty.Title(domain.StylePPL))
}

func TestGroupGuidedByMuscle(t *testing.T) {
	exercises := []domain.GuidedExercise{
		{ID: "1", MuscleGroup: "Pernas"},
		{ID: "2", MuscleGroup: "Peito"},
		{ID: "3", MuscleGroup: "Pernas"},
	}
	groups := domain.GroupGuidedByMuscle(exercises)
	if assert.Len(t, groups, 2) {
		assert.Equal(t, "Pernas", groups[0].MuscleGroup)
		assert.Equal(t, "1", groups[0].Exercises[0].ID)
		assert.Equal(t, "3", groups[0].Exercises[1].ID)
		assert.Equal(t, "Peito", groups[1].MuscleGroup)
	}
	assert.Empty(t, domain.GroupGuidedByMuscle(nil))
}

func TestAccount_Roles(t *testing.T) {
	coach := domain.Account{Name: "Ana", LastName: "Souza", Role: domain.RoleCoach}
	assert.True(t, coach.IsCoach())
	assert.False(t, coach.IsAthlete())
	assert.Equal(t, "Ana Souza", coach.DisplayName())

	athlete := domain.Account{Name: "Rui", Role: domain.RoleAthlete}
	assert.True(t, athlete.IsAthlete())
	assert.Equal(t, "Rui", athlete.DisplayName())
	assert.True(t, domain.IsStyleKey("PPL"))
	assert.False(t, domain.IsStyleKey("ppl"))
}
