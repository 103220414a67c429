package domain

import (
	"fmt"
	"math"
	"sort"
)

// EscalationMethod identifies how a lease's rent grows over time.
type EscalationMethod string

const (
	EscalationNone         EscalationMethod = "none"
	EscalationFixedPercent EscalationMethod = "fixed_percent"
	EscalationCPI          EscalationMethod = "cpi"
	EscalationFixedDollar  EscalationMethod = "fixed_dollar"
	EscalationStepped      EscalationMethod = "stepped"
)

// EscalationStep maps an elapsed-year boundary to an absolute monthly rent.
type EscalationStep struct {
	FromYear int     `json:"from_year" yaml:"from_year"`
	Rent     float64 `json:"rent" yaml:"rent"`
}

// EscalationSpec is a tagged union describing one rent-growth rule.
// Only the fields relevant to Method are read; Validate enforces that the
// relevant ones are present. Escalation resolves at annual granularity:
// elapsed units are whole years since lease start.
type EscalationSpec struct {
	Method EscalationMethod `json:"method" yaml:"method"`

	// FixedPercent
	Rate     float64 `json:"rate,omitempty" yaml:"rate,omitempty"`
	Compound bool    `json:"compound,omitempty" yaml:"compound,omitempty"`

	// CPI: per-elapsed-year growth deltas supplied by the caller, clamped
	// to [Floor, Cap] before compounding. Index[0] is the growth applied
	// for the first elapsed year.
	Index []float64 `json:"index,omitempty" yaml:"index,omitempty"`
	Floor float64   `json:"floor,omitempty" yaml:"floor,omitempty"`
	Cap   float64   `json:"cap,omitempty" yaml:"cap,omitempty"`

	// FixedDollar
	Delta float64 `json:"delta,omitempty" yaml:"delta,omitempty"`

	// Stepped
	Steps []EscalationStep `json:"steps,omitempty" yaml:"steps,omitempty"`
}

// Validate checks that the spec can resolve a rent for every elapsed year
// up to maxYears. An invalid spec is a configuration error in the caller's
// taxonomy; this returns a plain error for the engine to wrap.
func (e EscalationSpec) Validate(maxYears int) error {
	switch e.Method {
	case EscalationNone, "", EscalationFixedDollar:
		return nil
	case EscalationFixedPercent:
		if e.Rate <= -1.0 {
			return fmt.Errorf("fixed percent escalation rate %.4f must be greater than -100%%", e.Rate)
		}
		return nil
	case EscalationCPI:
		if e.Cap < e.Floor {
			return fmt.Errorf("cpi escalation cap %.4f below floor %.4f", e.Cap, e.Floor)
		}
		if len(e.Index) < maxYears {
			return fmt.Errorf("cpi index covers %d years, lease requires %d", len(e.Index), maxYears)
		}
		return nil
	case EscalationStepped:
		if len(e.Steps) == 0 {
			return fmt.Errorf("stepped escalation has an empty step table")
		}
		for _, s := range e.Steps {
			if s.FromYear < 0 {
				return fmt.Errorf("stepped escalation has negative from_year %d", s.FromYear)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown escalation method %q", e.Method)
	}
}

// Apply resolves the escalated monthly rent after elapsedYears whole years.
// rent0 is the rent at lease start. Errors here indicate an unresolvable
// spec, never a silent zero.
func (e EscalationSpec) Apply(rent0 float64, elapsedYears int) (float64, error) {
	if elapsedYears < 0 {
		return 0, fmt.Errorf("negative elapsed years %d", elapsedYears)
	}
	switch e.Method {
	case EscalationNone, "":
		// A lease without an escalation clause holds rent flat.
		return rent0, nil
	case EscalationFixedPercent:
		if e.Compound {
			return rent0 * math.Pow(1.0+e.Rate, float64(elapsedYears)), nil
		}
		return rent0 * (1.0 + e.Rate*float64(elapsedYears)), nil
	case EscalationCPI:
		if elapsedYears > len(e.Index) {
			return 0, fmt.Errorf("cpi index has no entry for elapsed year %d", elapsedYears)
		}
		rent := rent0
		for y := 0; y < elapsedYears; y++ {
			growth := math.Max(e.Floor, math.Min(e.Cap, e.Index[y]))
			rent *= 1.0 + growth
		}
		return rent, nil
	case EscalationFixedDollar:
		return rent0 + e.Delta*float64(elapsedYears), nil
	case EscalationStepped:
		if len(e.Steps) == 0 {
			return 0, fmt.Errorf("stepped escalation has an empty step table")
		}
		steps := make([]EscalationStep, len(e.Steps))
		copy(steps, e.Steps)
		sort.Slice(steps, func(i, j int) bool { return steps[i].FromYear < steps[j].FromYear })
		rent := rent0
		for _, s := range steps {
			if s.FromYear > elapsedYears {
				break
			}
			rent = s.Rent
		}
		// Years beyond the last entry hold the last defined value.
		return rent, nil
	default:
		return 0, fmt.Errorf("unknown escalation method %q", e.Method)
	}
}

// clone deep-copies the spec so perturbed runs never share slices.
func (e EscalationSpec) clone() EscalationSpec {
	out := e
	if e.Index != nil {
		out.Index = make([]float64, len(e.Index))
		copy(out.Index, e.Index)
	}
	if e.Steps != nil {
		out.Steps = make([]EscalationStep, len(e.Steps))
		copy(out.Steps, e.Steps)
	}
	return out
}
