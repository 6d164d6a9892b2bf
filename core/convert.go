package core

import "math"

// ConvertRequest carries the raw converter inputs.  All fields are optional.
type ConvertRequest struct {
	MTBF   *float64 `json:"mtbf,omitempty"`
	Lambda *float64 `json:"lambda,omitempty"`
	MTTR   *float64 `json:"mttr,omitempty"`
}

// ConvertResponse is the reconciled lambda/MTBF pair and, when an MTTR was
// given, the steady-state availability.
type ConvertResponse struct {
	MTBF   float64  `json:"mtbf"`
	Lambda float64  `json:"lambda"`
	A      *float64 `json:"A"`
	Notes  string   `json:"notes"`
}

const (
	convertMissingMessage = "Provide either lambda or MTBF (both > 0)."
	convertMTTRMessage    = "MTTR must be > 0."

	// NotesLambdaPrecedence flags a request whose lambda and MTBF disagree.
	NotesLambdaPrecedence = "ok (lambda takes precedence over MTBF)"

	reciprocalTolerance = 1e-9
)

// ConvertMetrics converts between failure rate, MTBF and availability for
// a single component.
//
// A finite lambda is authoritative; otherwise MTBF is.  The other value is
// derived as its reciprocal.  If both are given and disagree, lambda still
// wins and Notes says so.  A nil request is treated as empty.
func ConvertMetrics(req *ConvertRequest) (*ConvertResponse, error) {
	if req == nil {
		return nil, NewRamError(convertMissingMessage)
	}
	lambdaCandidate, hasLambda := OptionalFinite(req.Lambda)
	mtbfCandidate, hasMTBF := OptionalFinite(req.MTBF)
	if !hasLambda && !hasMTBF {
		return nil, NewRamError(convertMissingMessage)
	}

	var lambda, mtbf float64
	var err error
	notes := "ok"
	if hasLambda {
		if lambda, err = EnsurePositive(&lambdaCandidate, convertMissingMessage); err != nil {
			return nil, err
		}
		mtbf = 1 / lambda
		if hasMTBF && math.Abs(lambda*mtbfCandidate-1) > reciprocalTolerance {
			notes = NotesLambdaPrecedence
		}
	} else {
		if mtbf, err = EnsurePositive(&mtbfCandidate, convertMissingMessage); err != nil {
			return nil, err
		}
		lambda = 1 / mtbf
	}

	resp := &ConvertResponse{MTBF: mtbf, Lambda: lambda, Notes: notes}
	if mttrCandidate, ok := OptionalFinite(req.MTTR); ok {
		mttr, err := EnsurePositive(&mttrCandidate, convertMTTRMessage)
		if err != nil {
			return nil, err
		}
		resp.A = Ptr(SteadyStateAvailability(mtbf, mttr))
	}
	return resp, nil
}

// SteadyStateAvailability is MTBF / (MTBF + MTTR).
func SteadyStateAvailability(mtbf, mttr float64) float64 {
	return mtbf / (mtbf + mttr)
}
