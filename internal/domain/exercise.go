package domain

// Training style keys used to partition logs and history.
const (
	StyleFullBody     = "Full Body"
	StylePPL          = "PPL"
	StyleUpperLower   = "Upper e Lower"
	StyleTorsoLimbs   = "Torso e Limbs"
	StyleTraditional  = "Tradicional"
	ProgramLowVolume  = "Low Volume"
	ProgramFreeMode   = "Modo Free"
	MuscleGroupOthers = "Outros"
)

// StyleKeys lists the fixed sub-module names an exercise log can be kept under.
var StyleKeys = []string{StyleFullBody, StylePPL, StyleUpperLower, StyleTorsoLimbs, StyleTraditional}

// MuscleGroups is the catalogue offered when logging an exercise.
var MuscleGroups = []string{
	"Peito", "Costas", "Pernas", "Ombros",
	"Bíceps", "Tríceps", "Antebraço", "Abdominais",
	"Cardio", MuscleGroupOthers,
}

// LoggedExercise is one entry in an athlete's free-form log for a training style.
type LoggedExercise struct {
	ID          string `json:"id"`
	MuscleGroup string `json:"muscleGroup"`
	Name        string `json:"name"`
	MaxWeight   string `json:"maxWeight"` // numeric, kept as entered
	Date        string `json:"date"`
	Time        string `json:"time"`
}

// IsStyleKey reports whether style is one of the fixed sub-module names.
func IsStyleKey(style string) bool {
	for _, s := range StyleKeys {
		if s == style {
			return true
		}
	}
	return false
}
