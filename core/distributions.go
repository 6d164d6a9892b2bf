// ramtool/core/distributions.go
package core

// DistributionType names a failure distribution family.  Only the
// exponential family is modelled.
type DistributionType string

const Exponential DistributionType = "exponential"

// Distribution describes the failure behaviour of a single component.
//
// Lambda and MTBF are reciprocal views of the same exponential parameter
// (lambda = 1/MTBF).  Either may be given; when both are present the
// resolver for the requested view wins and the other is ignored.
type Distribution struct {
	Type   DistributionType `json:"type"`
	Lambda *float64         `json:"lambda,omitempty"`
	MTBF   *float64         `json:"mtbf,omitempty"`
}

// ExponentialLambda builds a distribution from a failure rate.
func ExponentialLambda(lambda float64) Distribution {
	return Distribution{Type: Exponential, Lambda: Ptr(lambda)}
}

// ExponentialMTBF builds a distribution from a mean time between failures.
func ExponentialMTBF(mtbf float64) Distribution {
	return Distribution{Type: Exponential, MTBF: Ptr(mtbf)}
}

const (
	missingLambdaMessage = "Missing lambda and MTBF."
	missingMTBFMessage   = "Missing MTBF and lambda."
)

// LambdaFromDistribution resolves the failure rate of d.
//
// A finite lambda is authoritative and must be > 0.  Otherwise a finite
// MTBF (> 0) is inverted.  Anything else fails with "Missing lambda and MTBF."
func LambdaFromDistribution(d Distribution) (float64, error) {
	if lambda, ok := OptionalFinite(d.Lambda); ok {
		return EnsurePositive(&lambda, missingLambdaMessage)
	}
	if mtbf, ok := OptionalFinite(d.MTBF); ok {
		value, err := EnsurePositive(&mtbf, missingLambdaMessage)
		if err != nil {
			return 0, err
		}
		return 1 / value, nil
	}
	return 0, NewRamError(missingLambdaMessage)
}

// MTBFFromDistribution is the mirror of LambdaFromDistribution, preferring
// MTBF and falling back to 1/lambda.
func MTBFFromDistribution(d Distribution) (float64, error) {
	if mtbf, ok := OptionalFinite(d.MTBF); ok {
		return EnsurePositive(&mtbf, missingMTBFMessage)
	}
	if lambda, ok := OptionalFinite(d.Lambda); ok {
		value, err := EnsurePositive(&lambda, missingMTBFMessage)
		if err != nil {
			return 0, err
		}
		return 1 / value, nil
	}
	return 0, NewRamError(missingMTBFMessage)
}
