package domain

import "strings"

// WorkoutSession is an immutable snapshot of a style's log taken when a workout is finished.
// Exercises keep logging order; sessions themselves are stored newest first.
type WorkoutSession struct {
	ID        string           `json:"id"`
	Date      string           `json:"date"`
	Time      string           `json:"time"`
	Exercises []LoggedExercise `json:"exercises"`
}

// MuscleGroups returns the distinct muscle groups of the session in first-seen order.
func (s *WorkoutSession) MuscleGroups() []string {
	return UniqueMuscleGroups(s.Exercises)
}

// Title names the session after its muscle groups, falling back to the style.
func (s *WorkoutSession) Title(style string) string {
	groups := s.MuscleGroups()
	if len(groups) == 0 {
		return style
	}
	return strings.Join(groups, " + ")
}

// UniqueMuscleGroups returns distinct muscle groups in first-seen order.
func UniqueMuscleGroups(entries []LoggedExercise) []string {
	seen := make(map[string]struct{}, len(entries))
	groups := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.MuscleGroup]; ok {
			continue
		}
		seen[e.MuscleGroup] = struct{}{}
		groups = append(groups, e.MuscleGroup)
	}
	return groups
}
