package solver

import "github.com/panyam/ramtool/core"

// SolveDistributionReliability evaluates R(t) of a single distribution at
// the given times.
func SolveDistributionReliability(req *DistributionReliabilityRequest) (*DistributionReliabilityResponse, error) {
	if len(req.T) == 0 {
		return nil, core.NewRamError("At least one time value is required.")
	}
	for i := range req.T {
		if _, err := core.EnsureNonNegative(&req.T[i], "Time values must be non-negative."); err != nil {
			return nil, err
		}
	}
	lambda, err := core.LambdaFromDistribution(req.Distribution)
	if err != nil {
		return nil, err
	}
	r := make([]float64, len(req.T))
	for i, t := range req.T {
		r[i] = core.RExp(lambda, t)
	}
	return &DistributionReliabilityResponse{R: r, Notes: "exponential"}, nil
}
