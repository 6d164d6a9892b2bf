package solver

import (
	"math"
	"testing"

	"github.com/panyam/ramtool/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-12

func assertClose(t *testing.T, expected, actual float64, msgAndArgs ...any) {
	t.Helper()
	allowed := math.Max(tolerance, math.Abs(expected)*tolerance)
	assert.InDelta(t, expected, actual, allowed, msgAndArgs...)
}

func assertAllClose(t *testing.T, expected, actual []float64) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		assertClose(t, expected[i], actual[i], "index %d", i)
	}
}

func requireRamError(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	re, ok := core.AsRamError(err)
	require.True(t, ok, "expected a RamError, got %T", err)
	assert.Equal(t, message, re.Message)
	assert.Equal(t, core.DefaultErrorStatus, re.Status)
}

func lambdaComponent(id string, lambda float64) Component {
	return Component{Id: id, Name: id, Distribution: core.ExponentialLambda(lambda), Enabled: true}
}

func repairable(id string, mtbf, mttr float64) Component {
	return Component{Id: id, Name: id, Distribution: core.ExponentialMTBF(mtbf), MTTR: core.Ptr(mttr), Enabled: true}
}

func newScenario(structure Structure, settings PlotSettings, components ...Component) *Scenario {
	return &Scenario{Id: "test", Structure: structure, Components: components, PlotSettings: settings}
}
