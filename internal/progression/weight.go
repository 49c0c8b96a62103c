package progression

import (
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"alcyxob/loadx/internal/domain"
)

// RangeSeparator splits the two bounds of a percentage or rep range.
const RangeSeparator = "–"

// NoData is shown instead of a load when the athlete has not set a max weight.
const NoData = "---"

var leadingFloat = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// parseLeadingFloat reads the longest numeric prefix of s, so "80kg" reads as 80.
func parseLeadingFloat(s string) (float64, bool) {
	m := leadingFloat.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// ParsePercentage splits an expression such as "65–70%" into its numeric components.
// Only a single "%" is stripped and the range must use an en dash.
func ParsePercentage(expr string) ([]float64, bool) {
	parts := strings.Split(strings.Replace(expr, "%", "", 1), RangeSeparator)
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, ok := parseLeadingFloat(p)
		if !ok {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

// DisplayWeight computes the load for a percentage of maxWeight, e.g. "50.0 kg" or
// "65.0 – 70.0 kg". It returns "" when maxWeight is not a positive number or the
// expression cannot be read.
func DisplayWeight(maxWeight, percentageExpression string) string {
	limit, ok := parseLeadingFloat(maxWeight)
	if !ok || limit <= 0 {
		return ""
	}

	pcts, ok := ParsePercentage(percentageExpression)
	if !ok {
		return ""
	}

	switch len(pcts) {
	case 1:
		return fmt.Sprintf("%s kg", load(limit, pcts[0]))
	case 2:
		return fmt.Sprintf("%s %s %s kg", load(limit, pcts[0]), RangeSeparator, load(limit, pcts[1]))
	default:
		return ""
	}
}

// load formats limit*pct/100 with one decimal, rounding the exact binary value once.
// A value sitting exactly on a half rounds away from zero.
func load(limit, pct float64) string {
	v := limit * pct / 100
	if onHalf(v) {
		v = math.Round(v*10) / 10
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// onHalf reports whether v*10 has a fractional part of exactly one half.
func onHalf(v float64) bool {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return false
	}
	t := new(big.Float).SetPrec(128).SetFloat64(v)
	t.Mul(t, big.NewFloat(10))
	whole, _ := t.Int(nil)
	frac := new(big.Float).SetPrec(128).SetInt(whole)
	frac.Sub(t, frac)
	return frac.Abs(frac).Cmp(big.NewFloat(0.5)) == 0
}

// PrescribedSet is a progression step together with the load it works out to.
type PrescribedSet struct {
	Index int // 1-based set number within the exercise
	domain.ProgressionStep
	Load string
}

// Prescribe pairs every step with its computed load. An empty or unusable max weight
// yields NoData for every set.
func Prescribe(maxWeight string, steps []domain.ProgressionStep) []PrescribedSet {
	sets := make([]PrescribedSet, len(steps))
	for i, s := range steps {
		l := DisplayWeight(maxWeight, s.PercentageExpression)
		if l == "" {
			l = NoData
		}
		sets[i] = PrescribedSet{Index: i + 1, ProgressionStep: s, Load: l}
	}
	return sets
}

// SetGroup is a block of consecutive-kind sets as displayed together.
type SetGroup struct {
	Kind domain.StepKind
	Sets []PrescribedSet
}

var kindOrder = []domain.StepKind{domain.KindWarmup, domain.KindRecognition, domain.KindWork}

// GroupByKind groups sets into warmup, recognition and work blocks, keeping set order
// inside a block and omitting empty blocks.
func GroupByKind(sets []PrescribedSet) []SetGroup {
	var groups []SetGroup
	for _, kind := range kindOrder {
		g := SetGroup{Kind: kind}
		for _, s := range sets {
			if s.Kind == kind {
				g.Sets = append(g.Sets, s)
			}
		}
		if len(g.Sets) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}
