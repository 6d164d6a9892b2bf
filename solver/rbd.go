package solver

import (
	"github.com/panyam/ramtool/core"
)

const (
	noActiveComponentsMessage = "Scenario requires at least one active component."
	unsupportedKindMessage    = "Unsupported structure kind."

	WarnKofNLambdaAverage = "k-of-n uses identical-components MVP assumption (lambda = average)."
)

func buildTimeVector(settings PlotSettings) ([]float64, error) {
	return core.TimeVector(0, settings.TMax, settings.Samples)
}

// activeOrFail returns the enabled components, failing when there are none.
func activeOrFail(scenario *Scenario) ([]Component, error) {
	components := scenario.ActiveComponents()
	if len(components) == 0 {
		return nil, core.NewRamError(noActiveComponentsMessage)
	}
	return components, nil
}

// componentRates resolves lambda for each component, naming the component
// in the error if one cannot be resolved.
func componentRates(components []Component) ([]float64, error) {
	rates := make([]float64, len(components))
	for i, c := range components {
		rate, err := core.LambdaFromDistribution(c.Distribution)
		if err != nil {
			if core.IsRamError(err) {
				return nil, core.NewRamErrorf("Component '%s' requires lambda or MTBF (> 0).", c.Name)
			}
			return nil, err
		}
		rates[i] = rate
	}
	return rates, nil
}

func sum(values []float64) (out float64) {
	for _, v := range values {
		out += v
	}
	return
}

// SolveRbdScenario computes the reliability curve R(t) of a scenario.
//
// Series blocks combine as a single exponential with the summed rate.
// Parallel blocks are combined per sample.  k-of-n treats every component
// as having the average rate, and says so in the warnings.
func SolveRbdScenario(scenario *Scenario) (*SolveRbdResponse, error) {
	timePoints, err := buildTimeVector(scenario.PlotSettings)
	if err != nil {
		return nil, err
	}
	components, err := activeOrFail(scenario)
	if err != nil {
		return nil, err
	}
	rates, err := componentRates(components)
	if err != nil {
		return nil, err
	}

	warnings := []string{}
	rValues := make([]float64, len(timePoints))

	switch structure := scenario.Structure.(type) {
	case Series:
		totalRate := sum(rates)
		for i, t := range timePoints {
			rValues[i] = core.RExp(totalRate, t)
		}
	case Parallel:
		perComponent := make([]float64, len(rates))
		for i, t := range timePoints {
			for j, rate := range rates {
				perComponent[j] = core.RExp(rate, t)
			}
			rValues[i] = core.ReliabilityParallel(perComponent)
		}
	case KofN:
		k, n, err := ResolveKofN(structure, len(components))
		if err != nil {
			return nil, err
		}
		averageRate := core.Mean(rates)
		for i, t := range timePoints {
			rValues[i], err = core.ReliabilityKofNIdentical(core.RExp(averageRate, t), k, n)
			if err != nil {
				return nil, err
			}
		}
		warnings = append(warnings, WarnKofNLambdaAverage)
	default:
		return nil, core.NewRamError(unsupportedKindMessage)
	}

	last := len(timePoints) - 1
	return &SolveRbdResponse{
		RCurve: ReliabilityCurve{T: timePoints, R: rValues},
		Kpis: SolveKpis{
			RT0:   rValues[0],
			T0:    timePoints[0],
			RTmax: rValues[last],
			Tmax:  timePoints[last],
		},
		Warnings: warnings,
		Lambdas:  rates,
	}, nil
}
