package formulas

import (
	"math"
	"strconv"
	"strings"

	gfn "github.com/panyam/goutils/fn"
)

// FormatNumber prints v with six decimals and drops trailing zeros (and a
// dangling decimal point).  Non-finite values print as Go spells them.
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	fixed := strconv.FormatFloat(v, 'f', 6, 64)
	if strings.Contains(fixed, ".") {
		fixed = strings.TrimRight(fixed, "0")
		fixed = strings.TrimSuffix(fixed, ".")
	}
	return fixed
}

func joinFormatted(values []float64, sep string) string {
	return strings.Join(gfn.Map(values, FormatNumber), sep)
}

func sum(values []float64) (total float64) {
	for _, v := range values {
		total += v
	}
	return
}
