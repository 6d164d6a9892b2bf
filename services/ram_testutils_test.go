package services

import (
	"testing"

	"github.com/panyam/ramtool/core"
	"github.com/panyam/ramtool/solver"
	"github.com/stretchr/testify/require"
)

func seriesScenario(id string, lambdas ...float64) *solver.Scenario {
	s := &solver.Scenario{
		Id:           id,
		Structure:    solver.Series{},
		PlotSettings: solver.PlotSettings{TMax: 100, Samples: 5},
	}
	for i, lambda := range lambdas {
		s.Components = append(s.Components, solver.Component{
			Id:           string(rune('a' + i)),
			Name:         string(rune('A' + i)),
			Distribution: core.ExponentialLambda(lambda),
			MTTR:         core.Ptr(10.0),
			Enabled:      true,
		})
	}
	return s
}

func requireStatus(t *testing.T, err error, status int, message string) {
	t.Helper()
	re, ok := core.AsRamError(err)
	require.True(t, ok, "expected RamError, got %v", err)
	require.Equal(t, status, re.Status)
	require.Equal(t, message, re.Message)
}
