package solver

import (
	"github.com/panyam/ramtool/core"
)

const (
	WarnSingleComponentMarkov = "Transient availability based on 2-state Markov model for a single component (MVP)."
	WarnKofNAvailability      = "k-of-n uses identical-components assumption (MVP)."
	WarnSteadyStateOnly       = "A(t) uses steady-state aggregation; transient effects are not modeled for multi-component systems (MVP)."

	singleMTTRMessage = "Single-component transient A(t) requires MTTR > 0."
)

// SolveAvailabilityScenario computes A(t) and the steady-state availability.
//
// A single active component gets the transient 2-state Markov curve.  With
// more components only the steady state is aggregated through the
// structure and the curve is flat at that value.
func SolveAvailabilityScenario(scenario *Scenario) (*SolveAvailabilityResponse, error) {
	timePoints, err := buildTimeVector(scenario.PlotSettings)
	if err != nil {
		return nil, err
	}
	components, err := activeOrFail(scenario)
	if err != nil {
		return nil, err
	}
	if len(components) == 1 {
		return solveSingleAvailability(components[0], timePoints)
	}

	availabilities, err := componentAvailabilities(components)
	if err != nil {
		return nil, err
	}
	steadyState, warnings, err := ComputeSteadyStateAvailability(scenario.Structure, availabilities, len(components))
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, WarnSteadyStateOnly)

	curve := make([]float64, len(timePoints))
	for i := range curve {
		curve[i] = steadyState
	}
	return availabilityResponse(timePoints, curve, steadyState, warnings), nil
}

func solveSingleAvailability(c Component, timePoints []float64) (*SolveAvailabilityResponse, error) {
	mttr, err := core.EnsurePositive(c.MTTR, singleMTTRMessage)
	if err != nil {
		return nil, err
	}
	lambda, err := core.LambdaFromDistribution(c.Distribution)
	if err != nil {
		return nil, err
	}
	steadyState, curve, err := core.AvailabilitySingle(lambda, mttr, timePoints)
	if err != nil {
		return nil, err
	}
	return availabilityResponse(timePoints, curve, steadyState, []string{WarnSingleComponentMarkov}), nil
}

// componentAvailabilities returns MTBF/(MTBF+MTTR) for each component.
func componentAvailabilities(components []Component) ([]float64, error) {
	out := make([]float64, len(components))
	for i, c := range components {
		mtbf, err := core.MTBFFromDistribution(c.Distribution)
		if err != nil {
			if core.IsRamError(err) {
				return nil, core.NewRamErrorf("Component '%s' requires MTBF > 0.", c.Name)
			}
			return nil, err
		}
		mttr, err := core.EnsurePositive(c.MTTR, "Component '"+c.Name+"' requires MTTR > 0 for availability analysis.")
		if err != nil {
			return nil, err
		}
		out[i] = core.SteadyStateAvailability(mtbf, mttr)
	}
	return out, nil
}

// ComputeSteadyStateAvailability aggregates per-component steady-state
// availabilities through the structure.
func ComputeSteadyStateAvailability(structure Structure, availabilities []float64, componentCount int) (float64, []string, error) {
	switch s := structure.(type) {
	case Series:
		return core.AggregateSeries(availabilities), []string{}, nil
	case Parallel:
		return core.AggregateParallel(availabilities), []string{}, nil
	case KofN:
		k, n, err := ResolveKofN(s, componentCount)
		if err != nil {
			return 0, nil, err
		}
		value, err := core.AggregateKofNIdentical(availabilities, k, n)
		if err != nil {
			return 0, nil, err
		}
		return value, []string{WarnKofNAvailability}, nil
	default:
		return 0, nil, core.NewRamError(unsupportedKindMessage)
	}
}

func availabilityResponse(timePoints, curve []float64, steadyState float64, warnings []string) *SolveAvailabilityResponse {
	last := len(timePoints) - 1
	return &SolveAvailabilityResponse{
		ACurve: AvailabilityCurve{T: timePoints, A: curve},
		Kpis: AvailabilityKpis{
			ASS:   steadyState,
			AT0:   curve[0],
			ATmax: curve[last],
			T0:    timePoints[0],
			Tmax:  timePoints[last],
		},
		Warnings: warnings,
	}
}
