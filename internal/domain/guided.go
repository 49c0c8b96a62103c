package domain

// RosterEntry is a coach's record of one linked athlete.
type RosterEntry struct {
	DisplayName  string `json:"name"`
	SerialNumber string `json:"serialNumber"`
}

// GuidedExercise is an exercise prescribed by a coach to an athlete.
// Only MaxWeight may be changed by the athlete.
type GuidedExercise struct {
	ID          string            `json:"id"`
	MuscleGroup string            `json:"muscleGroup"`
	Name        string            `json:"name"`
	Style       string            `json:"style"`     // Low Volume / Modo Free
	SubModule   string            `json:"subModule"` // e.g. PPL, Full Body, Tradicional
	Progression []ProgressionStep `json:"progression"`
	CoachEmail  string            `json:"coachEmail"`
	MaxWeight   string            `json:"maxWeight,omitempty"`
}

// GuidedGroup is the set of guided exercises of one muscle group, as shown to the athlete.
type GuidedGroup struct {
	MuscleGroup string           `json:"muscleGroup"`
	Exercises   []GuidedExercise `json:"exercises"`
}

// GroupGuidedByMuscle partitions exercises by muscle group, first-seen order.
func GroupGuidedByMuscle(exercises []GuidedExercise) []GuidedGroup {
	index := make(map[string]int)
	var groups []GuidedGroup
	for _, ex := range exercises {
		i, ok := index[ex.MuscleGroup]
		if !ok {
			i = len(groups)
			index[ex.MuscleGroup] = i
			groups = append(groups, GuidedGroup{MuscleGroup: ex.MuscleGroup})
		}
		groups[i].Exercises = append(groups[i].Exercises, ex)
	}
	return groups
}
