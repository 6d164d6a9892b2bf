package formulas

import (
	"fmt"
	"strings"

	"github.com/panyam/ramtool/solver"
)

const singleAvailabilityGeneral = `A(t)=A_{ss}+(A(0)-A_{ss})e^{-(\lambda+\mu)t}`

const componentAvailabilityGeneral = `A_i=\frac{\mathrm{MTBF}_i}{\mathrm{MTBF}_i+\mathrm{MTTR}_i}`

// ForAvailability explains an availability solve.  A single active
// component gets the transient 2-state equations, larger systems get the
// per component A_i plus the structural aggregate.  Returns nil when nothing
// is active.
func ForAvailability(scenario *solver.Scenario, resp *solver.SolveAvailabilityResponse) *Context {
	active := scenario.ActiveComponents()
	if len(active) == 0 || resp == nil {
		return nil
	}
	if len(active) == 1 {
		return &Context{Kind: KindAvailability, Equations: singleAvailability(active[0], resp)}
	}

	availabilities := componentAvailabilities(active)
	equations := perComponentAvailability(active, availabilities)
	steady := FormatNumber(resp.Kpis.ASS)
	switch s := scenario.Structure.(type) {
	case solver.Series:
		eq := Equation{
			Id:           "availability-series",
			Title:        "Series A_{sys}",
			LatexGeneral: `A_{\text{sys}}=\prod_{i=1}^{n} A_i`,
		}
		if values, ok := allKnown(availabilities); ok {
			eq.LatexWithValues = fmt.Sprintf(`A_{\text{sys}}=%s=%s`, joinFormatted(values, ` \cdot `), steady)
		}
		equations = append(equations, eq)
	case solver.Parallel:
		eq := Equation{
			Id:           "availability-parallel",
			Title:        "Parallel A_{sys}",
			LatexGeneral: `A_{\text{sys}}=1-\prod_{i=1}^{n}(1-A_i)`,
			Note:         "Note: identical assumptions for parallel availability (MVP).",
		}
		if values, ok := allKnown(availabilities); ok {
			var product strings.Builder
			for _, v := range values {
				fmt.Fprintf(&product, `\big(1-%s\big)`, FormatNumber(v))
			}
			eq.LatexWithValues = fmt.Sprintf(`A_{\text{sys}}=1-%s=%s`, product.String(), steady)
		}
		equations = append(equations, eq)
	case solver.KofN:
		k, n := kofnParams(s, len(active))
		equations = append(equations, kofnAvailability(availabilities, k, n)...)
	}
	return &Context{Kind: KindAvailability, Equations: equations}
}

func singleAvailability(c solver.Component, resp *solver.SolveAvailabilityResponse) []Equation {
	if c.MTTR == nil {
		return []Equation{{
			Id:           "availability-single-missing",
			Title:        "A(t)",
			LatexGeneral: singleAvailabilityGeneral,
			Note:         "MTTR is missing for the single component.",
		}}
	}
	lambdaValue, okLambda := lambdaOf(c.Distribution)
	_, okMTBF := mtbfOf(c.Distribution)
	if !okLambda || !okMTBF {
		return []Equation{{
			Id:           "availability-single-missing-lambda",
			Title:        "A(t)",
			LatexGeneral: `A(t)=A_{ss}+(1-A_{ss})e^{-(\lambda+\mu)t}`,
			Note:         "lambda or MTBF is missing (MVP).",
		}}
	}

	muValue := 1 / *c.MTTR
	lambda, mu := FormatNumber(lambdaValue), FormatNumber(muValue)
	steady := FormatNumber(resp.Kpis.ASS)
	return []Equation{
		{
			Id:           "availability-single-A",
			Title:        "A(t)",
			LatexGeneral: singleAvailabilityGeneral,
			LatexWithValues: fmt.Sprintf(`A(t)=%s+(1-%s)e^{-(%s+%s)t}=%s+(1-%s)e^{- %s t}`,
				steady, steady, lambda, mu, steady, steady, FormatNumber(lambdaValue+muValue)),
			Note: "Assumes A(0)=1, 2-state model (MVP).",
		},
		{
			Id:              "availability-single-steady",
			Title:           "A_{ss}",
			LatexGeneral:    `A_{ss}=\frac{\mu}{\lambda+\mu}`,
			LatexWithValues: fmt.Sprintf(`A_{ss}=\frac{%s}{%s+%s}=%s`, mu, lambda, mu, steady),
		},
		{
			Id:              "availability-single-mu",
			Title:           "Repair rate",
			LatexGeneral:    `\mu=\frac{1}{\mathrm{MTTR}}`,
			LatexWithValues: fmt.Sprintf(`\mu=\frac{1}{%s}=%s`, FormatNumber(*c.MTTR), mu),
		},
	}
}

// componentAvailabilities returns A_i per active component, nil where MTBF
// or MTTR is unknown.
func componentAvailabilities(active []solver.Component) []*float64 {
	out := make([]*float64, len(active))
	for i, c := range active {
		mtbf, ok := mtbfOf(c.Distribution)
		if !ok || c.MTTR == nil {
			continue
		}
		a := mtbf / (mtbf + *c.MTTR)
		out[i] = &a
	}
	return out
}

func allKnown(values []*float64) ([]float64, bool) {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v == nil {
			return nil, false
		}
		out = append(out, *v)
	}
	return out, true
}

func perComponentAvailability(active []solver.Component, availabilities []*float64) []Equation {
	out := make([]Equation, 0, len(active))
	for i, c := range active {
		eq := Equation{
			Id:           fmt.Sprintf("availability-component-%d", i),
			Title:        availabilitySymbol(i),
			LatexGeneral: componentAvailabilityGeneral,
		}
		if availabilities[i] == nil {
			eq.Note = "MTBF or MTTR is missing (MVP)."
		} else {
			mtbf, _ := mtbfOf(c.Distribution)
			eq.LatexWithValues = fmt.Sprintf(`A_{%d}=\frac{%s}{%s+%s}=%s`, i+1,
				FormatNumber(mtbf), FormatNumber(mtbf), FormatNumber(*c.MTTR), FormatNumber(*availabilities[i]))
		}
		out = append(out, eq)
	}
	return out
}

func kofnAvailability(availabilities []*float64, k, n int) []Equation {
	known := make([]float64, 0, len(availabilities))
	for _, v := range availabilities {
		if v != nil {
			known = append(known, *v)
		}
	}
	eq := Equation{
		Id:           "availability-kofn",
		Title:        fmt.Sprintf("%d-of-%d A_{sys}", k, n),
		LatexGeneral: `A_{\text{sys}}=\sum_{i=k}^{n} \binom{n}{i} A^i (1-A)^{n-i}`,
		Note:         "Assumes identical availability for all components (MVP).",
	}
	if len(known) == 0 {
		return []Equation{eq}
	}
	average := FormatNumber(sum(known) / float64(len(known)))
	eq.LatexWithValues = fmt.Sprintf(`A_{\text{sys}}=\sum_{i=%d}^{%d} \binom{%d}{i} %s^{\,i}(1-%s)^{%d-i}`,
		k, n, n, average, average, n)
	return []Equation{eq, {
		Id:              "availability-kofn-average",
		Title:           "Average A",
		LatexGeneral:    `A=\frac{1}{n}\sum_{i=1}^{n} A_i`,
		LatexWithValues: fmt.Sprintf(`A=\frac{1}{%d}\sum A_i=%s`, n, average),
	}}
}
