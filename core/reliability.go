package core

import (
	"math"
	"math/bits"
)

// RExp is the exponential survival function exp(-lambda*t).
// Inputs are not re-validated; callers check t and lambda once up front.
func RExp(lambda, t float64) float64 {
	return math.Exp(-lambda * t)
}

// ReliabilitySeries is the probability that every block survives.
// The empty product is 1.
func ReliabilitySeries(rs []float64) float64 {
	out := 1.0
	for _, r := range rs {
		out *= r
	}
	return out
}

// ReliabilityParallel is the probability that at least one block survives.
func ReliabilityParallel(rs []float64) float64 {
	allFail := 1.0
	for _, r := range rs {
		allFail *= 1 - r
	}
	return 1 - allFail
}

// ReliabilityKofNIdentical is the binomial survival of n identical blocks
// of reliability r where at least k must be up.
func ReliabilityKofNIdentical(r float64, k, n int) (float64, error) {
	if n < 1 {
		return 0, NewRamError("n must be >= 1 for k-of-n.")
	}
	return binomialTail(r, k, n), nil
}

// binomialTail sums C(n,s) p^s (1-p)^(n-s) for s in [k, n].
func binomialTail(p float64, k, n int) float64 {
	if k < 0 {
		k = 0
	}
	cumulative := 0.0
	for s := k; s <= n; s++ {
		cumulative += BinomialCoefficient(n, s) * math.Pow(p, float64(s)) * math.Pow(1-p, float64(n-s))
	}
	return cumulative
}

// BinomialCoefficient returns C(n, k).
//
// It runs the multiplicative recurrence result = result*(n-limit+i)/i,
// limit = min(k, n-k).  Every intermediate stays an integer, so the
// recurrence is carried out in uint64 and is exact for as long as the
// product fits in 64 bits (for every k up to n = 62, and much further for
// small k).  Past that crossover the value comes from log-gamma and is only
// accurate to a few ulps.  Results above 2^53 also lose exactness when
// converted to float64.
func BinomialCoefficient(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k == 0 || k == n {
		return 1
	}
	limit := min(k, n-k)
	var result uint64 = 1
	for i := 1; i <= limit; i++ {
		hi, lo := bits.Mul64(result, uint64(n-limit+i))
		if hi != 0 {
			return binomialLogGamma(n, k)
		}
		result = lo / uint64(i)
	}
	return float64(result)
}

func binomialLogGamma(n, k int) float64 {
	ln, _ := math.Lgamma(float64(n) + 1)
	lk, _ := math.Lgamma(float64(k) + 1)
	lnk, _ := math.Lgamma(float64(n-k) + 1)
	return math.Round(math.Exp(ln - lk - lnk))
}

// TimeVector returns samples evenly spaced points from start to stop,
// both endpoints included.
func TimeVector(start, stop float64, samples int) ([]float64, error) {
	count, err := EnsureIntegerInRange(&samples, "Samples must be >= 2.", AtLeast(2))
	if err != nil {
		return nil, err
	}
	from, err := EnsureNonNegative(&start, "tMax must be >= 0.")
	if err != nil {
		return nil, err
	}
	to, err := EnsureNonNegative(&stop, "tMax must be >= 0.")
	if err != nil {
		return nil, err
	}
	if to < from {
		return nil, NewRamError("tMax must be >= 0.")
	}
	step := 0.0
	if count > 1 {
		step = (to - from) / float64(count-1)
	}
	out := make([]float64, count)
	for i := range out {
		out[i] = from + step*float64(i)
	}
	return out, nil
}
