package solver

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kofnScenarioJSON = `{
  "id": "demo",
  "structure": {"kind": "kofn", "k": 2, "n": 3},
  "components": [
    {"id": "c1", "name": "Pump A", "distribution": {"type": "exponential", "lambda": 0.001}, "enabled": true},
    {"id": "c2", "name": "Pump B", "distribution": {"type": "exponential", "mtbf": 500}, "mttr": 4, "enabled": true},
    {"id": "c3", "name": "Pump C", "distribution": {"type": "exponential", "lambda": 0.003}, "enabled": false}
  ],
  "plotSettings": {"tMax": 1000, "samples": 200, "logScale": false}
}`

func TestScenarioJSON_Decode(t *testing.T) {
	var s Scenario
	require.NoError(t, json.Unmarshal([]byte(kofnScenarioJSON), &s))

	assert.Equal(t, "demo", s.Id)
	kofn, ok := s.Structure.(KofN)
	require.True(t, ok, "got %T", s.Structure)
	assert.Equal(t, 2, *kofn.K)
	assert.Equal(t, 3, *kofn.N)
	require.Len(t, s.Components, 3)
	assert.Equal(t, 500.0, *s.Components[1].Distribution.MTBF)
	assert.Nil(t, s.Components[1].Distribution.Lambda)
	assert.Equal(t, 4.0, *s.Components[1].MTTR)
	assert.Len(t, s.ActiveComponents(), 2)
	assert.Equal(t, 200, s.PlotSettings.Samples)
}

func TestScenarioJSON_StructureVariants(t *testing.T) {
	cases := map[string]Structure{
		`{"kind":"series","k":4}`: Series{},
		`{"kind":"parallel"}`:     Parallel{},
		`{"kind":"bridge"}`:       UnsupportedStructure{Tag: "bridge"},
	}
	for raw, expected := range cases {
		got, err := UnmarshalStructure([]byte(raw))
		require.NoError(t, err)
		assert.Equal(t, expected, got, raw)
	}

	// The structure tag survives a round trip through the wire form.
	var s Scenario
	require.NoError(t, json.Unmarshal([]byte(kofnScenarioJSON), &s))
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"structure":{"kind":"kofn","k":2,"n":3}`)
}

func TestScenarioJSON_MissingStructureDefaultsToSeries(t *testing.T) {
	var s Scenario
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","components":[],"plotSettings":{"tMax":1,"samples":2}}`), &s))
	assert.Equal(t, Series{}, s.Structure)
}

func TestScenarioJSON_IntegralNumbers(t *testing.T) {
	var s Scenario
	raw := `{"id":"x","structure":{"kind":"kofn","k":2.0,"n":3.0},"plotSettings":{"tMax":10,"samples":200.0}}`
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	kofn := s.Structure.(KofN)
	assert.Equal(t, 2, *kofn.K)
	assert.Equal(t, 3, *kofn.N)
	assert.Equal(t, 200, s.PlotSettings.Samples)

	cases := map[string]string{
		`{"id":"x","structure":{"kind":"kofn","k":1.5}}`:        "k-of-n requires an integer k >= 1.",
		`{"id":"x","structure":{"kind":"kofn","k":1,"n":2.5}}`:  "k-of-n requires 1 <= k <= n.",
		`{"id":"x","plotSettings":{"tMax":10,"samples":20.5}}`: "Samples must be >= 2.",
	}
	for raw, message := range cases {
		var s Scenario
		requireRamError(t, json.Unmarshal([]byte(raw), &s), message)
	}
}

func TestResponseJSON_Shape(t *testing.T) {
	resp, err := SolveRbdScenario(newScenario(Series{}, PlotSettings{TMax: 10, Samples: 2}, lambdaComponent("a", 0.1)))
	require.NoError(t, err)
	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
	assert.Contains(t, generic, "r_curve")
	assert.Equal(t, []any{}, generic["warnings"])
	kpis := generic["kpis"].(map[string]any)
	for _, key := range []string{"R_t0", "t0", "R_tmax", "tmax"} {
		assert.Contains(t, kpis, key)
	}
}
