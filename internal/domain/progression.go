package domain

// StepKind categorises a prescribed set.
type StepKind string

const (
	KindWarmup      StepKind = "warmup"
	KindRecognition StepKind = "recognition"
	KindWork        StepKind = "work"
)

// ProgressionStep is one prescribed set: rep range, percentage of max and category.
// Ranges use an en dash, e.g. "8–10" and "65–70%".
type ProgressionStep struct {
	RepRange             string   `json:"repRange"`
	PercentageExpression string   `json:"percentageExpression"`
	Label                string   `json:"label,omitempty"`
	Kind                 StepKind `json:"kind"`
}

// Title is the heading shown above a block of sets of the given kind.
func (k StepKind) Title() string {
	switch k {
	case KindWarmup:
		return "Aquecimento"
	case KindRecognition:
		return "Reconhecimento"
	case KindWork:
		return "Unidades de Trabalho"
	default:
		return string(k)
	}
}
