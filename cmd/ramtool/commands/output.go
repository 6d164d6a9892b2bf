package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/panyam/ramtool/core"
	"github.com/panyam/ramtool/formulas"
	"github.com/panyam/ramtool/services"
	"github.com/panyam/ramtool/solver"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	labelColor  = color.New(color.FgHiBlack)
	valueColor  = color.New(color.FgWhite, color.Bold)
	warnColor   = color.New(color.FgYellow)
	okColor     = color.New(color.FgGreen)
	errColor    = color.New(color.FgRed)
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func kv(w io.Writer, label string, value string) {
	labelColor.Fprintf(w, "  %-10s ", label)
	valueColor.Fprintln(w, value)
}

func num(v float64) string { return formulas.FormatNumber(v) }

func printWarnings(w io.Writer, warnings []string) {
	for _, warning := range warnings {
		warnColor.Fprintf(w, "  ⚠️  %s\n", warning)
	}
}

func printRbd(w io.Writer, scenario *solver.Scenario, resp *solver.SolveRbdResponse) {
	headerColor.Fprintf(w, "Reliability of %q (%s)\n", scenario.Id, scenario.Structure.Kind())
	kv(w, "R(t0)", fmt.Sprintf("%s at t=%s", num(resp.Kpis.RT0), num(resp.Kpis.T0)))
	kv(w, "R(tmax)", fmt.Sprintf("%s at t=%s", num(resp.Kpis.RTmax), num(resp.Kpis.Tmax)))
	lambdas := make([]string, len(resp.Lambdas))
	for i, l := range resp.Lambdas {
		lambdas[i] = num(l)
	}
	kv(w, "lambdas", strings.Join(lambdas, ", "))
	printWarnings(w, resp.Warnings)
}

func printAvailability(w io.Writer, scenario *solver.Scenario, resp *solver.SolveAvailabilityResponse) {
	headerColor.Fprintf(w, "Availability of %q (%s)\n", scenario.Id, scenario.Structure.Kind())
	kv(w, "A_ss", num(resp.Kpis.ASS))
	kv(w, "A(t0)", fmt.Sprintf("%s at t=%s", num(resp.Kpis.AT0), num(resp.Kpis.T0)))
	kv(w, "A(tmax)", fmt.Sprintf("%s at t=%s", num(resp.Kpis.ATmax), num(resp.Kpis.Tmax)))
	printWarnings(w, resp.Warnings)
}

func printConvert(w io.Writer, resp *core.ConvertResponse) {
	headerColor.Fprintln(w, "Conversion")
	kv(w, "MTBF", num(resp.MTBF))
	kv(w, "lambda", num(resp.Lambda))
	if resp.A != nil {
		kv(w, "A", num(*resp.A))
	} else {
		kv(w, "A", "n/a (no MTTR)")
	}
	kv(w, "notes", resp.Notes)
}

func printValidation(w io.Writer, result *solver.ValidationResult) {
	if result.IsValid {
		okColor.Fprintf(w, "✅ Scenario is valid (%d active components)\n", result.ActiveCount)
		return
	}
	errColor.Fprintf(w, "❌ Scenario has %d problem(s):\n", len(result.Errors))
	for _, e := range result.Errors {
		errColor.Fprintf(w, "  - %s\n", e)
	}
}

func printFormulas(w io.Writer, ctx *formulas.Context) {
	if ctx == nil {
		warnColor.Fprintln(w, "No formulas for this scenario.")
		return
	}
	for _, eq := range ctx.Equations {
		headerColor.Fprintln(w, eq.Title)
		kv(w, "general", eq.LatexGeneral)
		if eq.LatexWithValues != "" {
			kv(w, "values", eq.LatexWithValues)
		}
		if eq.Note != "" {
			warnColor.Fprintf(w, "  %s\n", eq.Note)
		}
	}
}

func printTemplates(w io.Writer, templates []*services.Template) {
	for _, tpl := range templates {
		headerColor.Fprintf(w, "%-16s", tpl.Name)
		fmt.Fprintf(w, " %s (%s, %d components)\n", tpl.Description, tpl.Scenario.Structure.Kind(), len(tpl.Scenario.Components))
	}
}
