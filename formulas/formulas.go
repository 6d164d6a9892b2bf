// Package formulas renders the closed form equations behind a solve as
// LaTeX, both symbolically and with the scenario's numbers substituted.
package formulas

import (
	"fmt"
	"strings"

	"github.com/panyam/ramtool/core"
	"github.com/panyam/ramtool/solver"
)

type ContextKind string

const (
	KindRbd          ContextKind = "rbd"
	KindAvailability ContextKind = "availability"
	KindConverter    ContextKind = "converter"
)

type Equation struct {
	Id              string `json:"id"`
	Title           string `json:"title"`
	LatexGeneral    string `json:"latexGeneral"`
	LatexWithValues string `json:"latexWithValues,omitempty"`
	Note            string `json:"note,omitempty"`
}

// Context is the set of equations explaining one result.
type Context struct {
	Kind      ContextKind          `json:"kind"`
	Structure solver.StructureKind `json:"structure,omitempty"`
	Equations []Equation           `json:"equations"`
}

func lambdaSymbol(index int) string       { return fmt.Sprintf(`\lambda_{%d}`, index+1) }
func availabilitySymbol(index int) string { return fmt.Sprintf("A_{%d}", index+1) }

// lambdaOf and mtbfOf are lenient: a formula is still shown for values the
// solver would have rejected.
func lambdaOf(d core.Distribution) (float64, bool) {
	if lambda, ok := core.OptionalFinite(d.Lambda); ok {
		return lambda, true
	}
	if mtbf, ok := core.OptionalFinite(d.MTBF); ok && mtbf > 0 {
		return 1 / mtbf, true
	}
	return 0, false
}

func mtbfOf(d core.Distribution) (float64, bool) {
	if mtbf, ok := core.OptionalFinite(d.MTBF); ok {
		return mtbf, true
	}
	if lambda, ok := core.OptionalFinite(d.Lambda); ok && lambda > 0 {
		return 1 / lambda, true
	}
	return 0, false
}

// kofnParams mirrors the defaults a UI shows before the solver has checked
// the values: k falls back to 1 and n to the active count.
func kofnParams(s solver.KofN, active int) (k, n int) {
	k, n = 1, active
	if s.K != nil {
		k = *s.K
	}
	if s.N != nil {
		n = *s.N
	}
	return
}

// ForRbd explains a reliability solve.  Returns nil when the response
// carries no resolved rates.
func ForRbd(scenario *solver.Scenario, resp *solver.SolveRbdResponse) *Context {
	if resp == nil || len(resp.Lambdas) == 0 {
		return nil
	}
	lambdas := resp.Lambdas
	switch s := scenario.Structure.(type) {
	case solver.Series:
		return &Context{Kind: KindRbd, Structure: solver.KindSeries, Equations: seriesReliability(lambdas)}
	case solver.Parallel:
		return &Context{Kind: KindRbd, Structure: solver.KindParallel, Equations: parallelReliability(lambdas)}
	case solver.KofN:
		k, n := kofnParams(s, len(scenario.ActiveComponents()))
		return &Context{Kind: KindRbd, Structure: solver.KindKofN, Equations: kofnReliability(lambdas, k, n)}
	default:
		return nil
	}
}

func seriesReliability(lambdas []float64) []Equation {
	total := sum(lambdas)
	totalStr := FormatNumber(total)
	numericSum := joinFormatted(lambdas, " + ")
	symbols := make([]string, len(lambdas))
	for i := range lambdas {
		symbols[i] = lambdaSymbol(i)
	}
	return []Equation{
		{
			Id:              "rbd-series-r",
			Title:           "Series R(t)",
			LatexGeneral:    `R_{\text{sys}}(t)=\prod_{i=1}^{n} e^{-\lambda_i t}=e^{-\left(\sum_{i=1}^{n} \lambda_i\right)t}`,
			LatexWithValues: fmt.Sprintf(`R_{\text{sys}}(t)=e^{-(%s)t}=e^{- %s t}`, numericSum, totalStr),
		},
		{
			Id:              "rbd-series-sum",
			Title:           "Summed lambda",
			LatexGeneral:    `\sum_{i=1}^{n} \lambda_i=\lambda_1+\lambda_2+\dots+\lambda_n`,
			LatexWithValues: fmt.Sprintf("%s=%s=%s", strings.Join(symbols, " + "), numericSum, totalStr),
		},
		{
			Id:              "rbd-series-mtbf",
			Title:           "MTBF_{sys}",
			LatexGeneral:    `\mathrm{MTBF}_{\mathrm{sys}}=\frac{1}{\sum_{i=1}^{n} \lambda_i}`,
			LatexWithValues: fmt.Sprintf(`\mathrm{MTBF}_{\mathrm{sys}}=\frac{1}{%s}=%s`, totalStr, FormatNumber(1/total)),
		},
	}
}

func parallelReliability(lambdas []float64) []Equation {
	var product strings.Builder
	for _, lambda := range lambdas {
		fmt.Fprintf(&product, `\big(1-e^{- %s t}\big)`, FormatNumber(lambda))
	}
	return []Equation{{
		Id:              "rbd-parallel-r",
		Title:           "Parallel R(t)",
		LatexGeneral:    `R_{\text{sys}}(t)=1-\prod_{i=1}^{n}\big(1-e^{-\lambda_i t}\big)`,
		LatexWithValues: `R_{\text{sys}}(t)=1-` + product.String(),
		Note:            `Note: \mathrm{MTBF}_{\mathrm{sys}} \neq 1/\sum \lambda_i (MVP).`,
	}}
}

func kofnReliability(lambdas []float64, k, n int) []Equation {
	average := FormatNumber(sum(lambdas) / float64(len(lambdas)))
	return []Equation{
		{
			Id:              "rbd-kofn-r",
			Title:           fmt.Sprintf("%d-of-%d R(t)", k, n),
			LatexGeneral:    `R(t)=\sum_{i=k}^{n} \binom{n}{i} R_c(t)^i\big(1-R_c(t)\big)^{n-i}`,
			LatexWithValues: fmt.Sprintf(`R(t)=\sum_{i=%d}^{%d} \binom{%d}{i} R_c(t)^i\big(1-R_c(t)\big)^{%d-i}`, k, n, n, n),
			Note:            "Assumes identical components (MVP).",
		},
		{
			Id:              "rbd-kofn-rc",
			Title:           "Single component",
			LatexGeneral:    `R_c(t)=e^{-\bar{\lambda} t}`,
			LatexWithValues: fmt.Sprintf(`R_c(t)=e^{- %s t}`, average),
		},
		{
			Id:              "rbd-kofn-lambda",
			Title:           "Average lambda",
			LatexGeneral:    `\bar{\lambda}=\frac{1}{n}\sum_{i=1}^{n} \lambda_i`,
			LatexWithValues: fmt.Sprintf(`\bar{\lambda}=\frac{1}{%d}(%s)=%s`, n, joinFormatted(lambdas, " + "), average),
		},
	}
}

// ForConverter explains a unit conversion.  The availability equation is
// only present when an MTTR was supplied.
func ForConverter(req *core.ConvertRequest, resp *core.ConvertResponse) *Context {
	mtbf, lambda := FormatNumber(resp.MTBF), FormatNumber(resp.Lambda)
	equations := []Equation{
		{
			Id:              "converter-lambda",
			Title:           "lambda from MTBF",
			LatexGeneral:    `\lambda=\frac{1}{\mathrm{MTBF}}`,
			LatexWithValues: fmt.Sprintf(`\lambda=\frac{1}{%s}=%s`, mtbf, lambda),
		},
		{
			Id:              "converter-mtbf",
			Title:           "MTBF from lambda",
			LatexGeneral:    `\mathrm{MTBF}=\frac{1}{\lambda}`,
			LatexWithValues: fmt.Sprintf(`\mathrm{MTBF}=\frac{1}{%s}=%s`, lambda, mtbf),
		},
	}
	if resp.A != nil && req.MTTR != nil {
		equations = append(equations, Equation{
			Id:              "converter-availability",
			Title:           "Availability",
			LatexGeneral:    `A=\frac{\mathrm{MTBF}}{\mathrm{MTBF}+\mathrm{MTTR}}`,
			LatexWithValues: fmt.Sprintf(`A=\frac{%s}{%s+%s}=%s`, mtbf, mtbf, FormatNumber(*req.MTTR), FormatNumber(*resp.A)),
			Note:            "Steady-state availability (MVP).",
		})
	}
	return &Context{Kind: KindConverter, Equations: equations}
}
