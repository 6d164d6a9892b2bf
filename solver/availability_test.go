package solver

import (
	"testing"

	"github.com/panyam/ramtool/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveAvailability_SingleComponent(t *testing.T) {
	c := Component{Id: "pump", Name: "Pump", Distribution: core.ExponentialLambda(0.0025), MTTR: core.Ptr(8.0), Enabled: true}
	resp, err := SolveAvailabilityScenario(newScenario(Series{}, PlotSettings{TMax: 2000, Samples: 5}, c))
	require.NoError(t, err)

	mu := 1 / 8.0
	steady := mu / (0.0025 + mu)
	assertClose(t, steady, resp.Kpis.ASS)
	assert.Equal(t, 1.0, resp.Kpis.AT0)
	assert.Equal(t, 1.0, resp.ACurve.A[0])
	assertClose(t, steady, resp.Kpis.ATmax)
	assert.Equal(t, 2000.0, resp.Kpis.Tmax)
	assert.Equal(t, []string{WarnSingleComponentMarkov}, resp.Warnings)
	assert.Len(t, resp.ACurve.A, 5)
	for i := 1; i < len(resp.ACurve.A); i++ {
		assert.LessOrEqual(t, resp.ACurve.A[i], resp.ACurve.A[i-1])
	}
}

func TestSolveAvailability_SingleRequiresMTTR(t *testing.T) {
	c := lambdaComponent("pump", 0.01)
	_, err := SolveAvailabilityScenario(newScenario(Series{}, PlotSettings{TMax: 10, Samples: 2}, c))
	requireRamError(t, err, "Single-component transient A(t) requires MTTR > 0.")
}

func TestSolveAvailability_MultiComponent(t *testing.T) {
	a := repairable("a", 1000, 10)
	b := repairable("b", 500, 5)
	c := repairable("c", 200, 20)
	aA := 1000.0 / 1010.0
	aB := 500.0 / 505.0
	aC := 200.0 / 220.0
	settings := PlotSettings{TMax: 100, Samples: 4}

	t.Run("series", func(t *testing.T) {
		resp, err := SolveAvailabilityScenario(newScenario(Series{}, settings, a, b, c))
		require.NoError(t, err)
		assertClose(t, aA*aB*aC, resp.Kpis.ASS)
		assert.Equal(t, []string{WarnSteadyStateOnly}, resp.Warnings)
		for _, v := range resp.ACurve.A {
			assert.Equal(t, resp.Kpis.ASS, v, "multi-component curve is flat")
		}
		assertAllClose(t, []float64{0, 100.0 / 3, 200.0 / 3, 100}, resp.ACurve.T)
	})

	t.Run("parallel", func(t *testing.T) {
		resp, err := SolveAvailabilityScenario(newScenario(Parallel{}, settings, a, b, c))
		require.NoError(t, err)
		assertClose(t, 1-(1-aA)*(1-aB)*(1-aC), resp.Kpis.ASS)
		assert.Equal(t, resp.Kpis.ASS, resp.Kpis.AT0)
		assert.Equal(t, resp.Kpis.ASS, resp.Kpis.ATmax)
	})

	t.Run("kofn", func(t *testing.T) {
		resp, err := SolveAvailabilityScenario(newScenario(KofN{K: core.Ptr(2)}, settings, a, b, c))
		require.NoError(t, err)
		avg := (aA + aB + aC) / 3
		assertClose(t, 3*avg*avg*(1-avg)+avg*avg*avg, resp.Kpis.ASS)
		assert.Equal(t, []string{WarnKofNAvailability, WarnSteadyStateOnly}, resp.Warnings)
	})

	t.Run("component missing mttr", func(t *testing.T) {
		noRepair := lambdaComponent("Valve", 0.01)
		_, err := SolveAvailabilityScenario(newScenario(Series{}, settings, a, noRepair))
		requireRamError(t, err, "Component 'Valve' requires MTTR > 0 for availability analysis.")
	})

	t.Run("component missing mtbf", func(t *testing.T) {
		bare := Component{Id: "x", Name: "Sensor", MTTR: core.Ptr(1.0), Enabled: true}
		_, err := SolveAvailabilityScenario(newScenario(Series{}, settings, a, bare))
		requireRamError(t, err, "Component 'Sensor' requires MTBF > 0.")
	})

	t.Run("unsupported kind", func(t *testing.T) {
		_, err := SolveAvailabilityScenario(newScenario(UnsupportedStructure{Tag: "mesh"}, settings, a, b))
		requireRamError(t, err, "Unsupported structure kind.")
	})
}

func TestSolveAvailability_NoActiveComponents(t *testing.T) {
	_, err := SolveAvailabilityScenario(newScenario(Series{}, PlotSettings{TMax: 10, Samples: 2}))
	requireRamError(t, err, "Scenario requires at least one active component.")
}

func TestSolveDistributionReliability(t *testing.T) {
	resp, err := SolveDistributionReliability(&DistributionReliabilityRequest{
		Distribution: core.ExponentialMTBF(100),
		T:            []float64{0, 100, 200},
	})
	require.NoError(t, err)
	assertAllClose(t, []float64{1, core.RExp(0.01, 100), core.RExp(0.01, 200)}, resp.R)
	assert.Equal(t, "exponential", resp.Notes)

	_, err = SolveDistributionReliability(&DistributionReliabilityRequest{
		Distribution: core.ExponentialLambda(0.1),
		T:            []float64{0, -1},
	})
	requireRamError(t, err, "Time values must be non-negative.")

	_, err = SolveDistributionReliability(&DistributionReliabilityRequest{T: []float64{1}})
	requireRamError(t, err, "Missing lambda and MTBF.")

	_, err = SolveDistributionReliability(&DistributionReliabilityRequest{Distribution: core.ExponentialLambda(1)})
	requireRamError(t, err, "At least one time value is required.")
}
