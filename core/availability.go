package core

import "math"

// AvailabilitySingle solves the 2-state (up/down) Markov model of a single
// repairable component that starts up, i.e. A(0) = 1:
//
//	mu   = 1/MTTR
//	A_ss = mu / (lambda + mu)
//	A(t) = A_ss + (1 - A_ss) exp(-(lambda + mu) t)
func AvailabilitySingle(lambda, mttr float64, times []float64) (steadyState float64, curve []float64, err error) {
	if lambda, err = EnsurePositive(&lambda, "Missing lambda and MTBF."); err != nil {
		return
	}
	if mttr, err = EnsurePositive(&mttr, "Single-component transient A(t) requires MTTR > 0."); err != nil {
		return
	}
	mu := 1 / mttr
	totalRate := lambda + mu
	if err = Assert(totalRate > 0, "lambda and MTTR must produce positive rates."); err != nil {
		return
	}
	steadyState = mu / totalRate
	curve = make([]float64, len(times))
	for i, t := range times {
		curve[i] = steadyState + (1-steadyState)*math.Exp(-totalRate*t)
	}
	return
}

// AggregateSeries is the product of component availabilities.
func AggregateSeries(as []float64) float64 {
	return ReliabilitySeries(as)
}

// AggregateParallel is 1 - prod(1 - A_i).
func AggregateParallel(as []float64) float64 {
	return ReliabilityParallel(as)
}

// AggregateKofNIdentical applies the k-of-n binomial sum to the mean of as,
// i.e. it treats every component as having the average availability.
func AggregateKofNIdentical(as []float64, k, n int) (float64, error) {
	return ReliabilityKofNIdentical(Mean(as), k, n)
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
