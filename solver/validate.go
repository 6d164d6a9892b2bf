package solver

import (
	"fmt"

	"github.com/panyam/ramtool/core"
)

// ValidationResult is a non-failing checklist of everything that would make
// a solve fail (or be meaningless) for a scenario.
type ValidationResult struct {
	IsValid     bool     `json:"isValid"`
	Errors      []string `json:"errors"`
	ActiveCount int      `json:"activeCount"`
}

// ValidateScenario runs the pre-flight checks a UI shows before solving.
// It never returns an error; problems are listed in the result instead.
func ValidateScenario(scenario *Scenario) ValidationResult {
	errs := []string{}
	active := scenario.ActiveComponents()
	if len(active) == 0 {
		errs = append(errs, "At least one active component is required.")
	}

	for _, c := range active {
		lambda, hasLambda := core.OptionalFinite(c.Distribution.Lambda)
		mtbf, hasMTBF := core.OptionalFinite(c.Distribution.MTBF)
		if !(hasLambda && lambda > 0) && !(hasMTBF && mtbf > 0) {
			errs = append(errs, fmt.Sprintf("Component %q needs lambda > 0 or MTBF > 0.", c.Name))
		}
	}

	switch s := scenario.Structure.(type) {
	case Series, Parallel:
	case KofN:
		if s.K == nil || *s.K < 1 {
			errs = append(errs, "k-of-n needs k >= 1.")
		}
		expectedN := len(active)
		if s.N != nil {
			expectedN = *s.N
		}
		if expectedN != len(active) {
			errs = append(errs, "For k-of-n, n must equal the number of active components.")
		}
		if s.K != nil && *s.K > expectedN {
			errs = append(errs, "For k-of-n, k must be <= n.")
		}
	default:
		errs = append(errs, "Unsupported structure kind.")
	}

	if scenario.PlotSettings.Samples < 2 {
		errs = append(errs, "Samples must be >= 2.")
	}
	if !(scenario.PlotSettings.TMax > 0) {
		errs = append(errs, "tMax must be > 0.")
	}

	errs = core.DedupeStrings(errs)
	return ValidationResult{
		IsValid:     len(errs) == 0,
		Errors:      errs,
		ActiveCount: len(active),
	}
}
