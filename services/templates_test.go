package services

import (
	"testing"

	"github.com/panyam/ramtool/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesSolve(t *testing.T) {
	assert.Equal(t, []string{"redundant-pair", "repairable-pump", "series-demo", "two-of-three"}, TemplateNames())

	for _, tpl := range ListTemplates() {
		t.Run(tpl.Name, func(t *testing.T) {
			result := solver.ValidateScenario(tpl.Scenario)
			assert.True(t, result.IsValid, "%v", result.Errors)

			_, err := solver.SolveRbdScenario(tpl.Scenario)
			require.NoError(t, err)
			if tpl.Name != "series-demo" {
				_, err = solver.SolveAvailabilityScenario(tpl.Scenario)
				require.NoError(t, err)
			}
		})
	}
}

func TestGetTemplateReturnsCopies(t *testing.T) {
	a, err := GetTemplate("series-demo")
	require.NoError(t, err)
	a.Scenario.Components[0].Name = "changed"

	b, err := GetTemplate("series-demo")
	require.NoError(t, err)
	assert.Equal(t, "Component 1", b.Scenario.Components[0].Name)

	_, err = GetTemplate("missing")
	requireStatus(t, err, 404, "Unknown template 'missing'.")
}

func TestDefaultScenario(t *testing.T) {
	s := DefaultScenario()
	assert.Equal(t, "demo", s.Id)
	assert.Equal(t, solver.Series{}, s.Structure)
	assert.Equal(t, solver.PlotSettings{TMax: 1000, Samples: 200}, s.PlotSettings)
	assert.Empty(t, s.Components)

	c := NewComponent(3)
	assert.Equal(t, "Component 3", c.Name)
	assert.True(t, c.Enabled)
	assert.Nil(t, c.Distribution.Lambda)
}
