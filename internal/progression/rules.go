// Package progression holds the prescribed set schemes per training style and the
// load calculation shown next to each prescribed set.
package progression

import (
	"strings"

	"alcyxob/loadx/internal/domain"
)

// Scheme identifies which prescription table applies to a style.
type Scheme int

const (
	SchemeNone Scheme = iota
	SchemeFullBody
	SchemePPL
	SchemeUpperLower
	SchemeTorsoLimbs
)

func (s Scheme) String() string {
	switch s {
	case SchemeFullBody:
		return "full body"
	case SchemePPL:
		return "ppl"
	case SchemeUpperLower:
		return "upper/lower"
	case SchemeTorsoLimbs:
		return "torso/limbs"
	default:
		return "none"
	}
}

type table struct {
	first []domain.ProgressionStep // first exercise of the cycle
	rest  []domain.ProgressionStep
}

func step(reps, pct string, kind domain.StepKind) domain.ProgressionStep {
	return domain.ProgressionStep{RepRange: reps, PercentageExpression: pct, Kind: kind}
}

func labeled(reps, pct, label string, kind domain.StepKind) domain.ProgressionStep {
	return domain.ProgressionStep{RepRange: reps, PercentageExpression: pct, Label: label, Kind: kind}
}

var (
	warmup      = domain.KindWarmup
	recognition = domain.KindRecognition
	work        = domain.KindWork
)

var tables = map[Scheme]table{
	SchemeFullBody: {
		first: []domain.ProgressionStep{
			labeled("10–12", "50%", "Aquecimento", warmup),
			labeled("6–8", "65%", "Reconhecimento", recognition),
			labeled("4–6", "75–80%", "Trabalho", work),
			labeled("4–6", "80–85%", "Trabalho Principal", work),
		},
		rest: []domain.ProgressionStep{
			step("8–12", "60–65%", warmup),
			step("8–12", "65–75%", work),
			step("8–12", "65–75%", work),
		},
	},
	SchemePPL: {
		first: []domain.ProgressionStep{
			step("8–10", "50–55%", warmup),
			step("5–6", "65–70%", recognition),
			step("4–6", "80–85%", work),
			step("3–5", "85–90%", work),
		},
		rest: []domain.ProgressionStep{
			step("8–12", "60–70%", warmup),
			step("8–12", "65–75%", work),
			step("8–12", "65–75%", work),
			step("10–12", "60–70%", work),
		},
	},
	SchemeUpperLower: {
		first: []domain.ProgressionStep{
			step("8–10", "50–55%", warmup),
			step("5–6", "65–70%", recognition),
			step("4–6", "75–85%", work),
			step("4–6", "80–87%", work),
		},
		rest: []domain.ProgressionStep{
			step("8–10", "60–70%", warmup),
			step("8–10", "65–75%", work),
			step("8–10", "65–75%", work),
		},
	},
}

// Torso/Limbs uses the same four sets for every exercise of the cycle.
var torsoLimbs = []domain.ProgressionStep{
	step("10–12", "55–60%", warmup),
	step("8–10", "65–70%", recognition),
	step("8–10", "70–75%", work),
	step("10–12", "60–65%", work),
}

// Classify matches a style name against the known schemes, case-insensitively.
// Precedence matters: "tradicional" wins over everything else.
func Classify(style string) Scheme {
	m := strings.ToLower(style)
	switch {
	case strings.Contains(m, "tradicional"):
		return SchemeNone
	case strings.Contains(m, "full body"):
		return SchemeFullBody
	case strings.Contains(m, "ppl"):
		return SchemePPL
	case strings.Contains(m, "upper"), strings.Contains(m, "lower"):
		return SchemeUpperLower
	case strings.Contains(m, "torso"), strings.Contains(m, "limbs"):
		return SchemeTorsoLimbs
	default:
		return SchemeNone
	}
}

// For returns the prescribed sets for an exercise of the given style. isFirst selects the
// introductory scheme used for the first exercise of a cycle. The returned slice is a copy
// and never nil.
func For(style string, isFirst bool) []domain.ProgressionStep {
	scheme := Classify(style)
	switch scheme {
	case SchemeNone:
		return []domain.ProgressionStep{}
	case SchemeTorsoLimbs:
		return clone(torsoLimbs)
	}

	t := tables[scheme]
	if isFirst {
		return clone(t.first)
	}
	return clone(t.rest)
}

func clone(steps []domain.ProgressionStep) []domain.ProgressionStep {
	out := make([]domain.ProgressionStep, len(steps))
	copy(out, steps)
	return out
}
