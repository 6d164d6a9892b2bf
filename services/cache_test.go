package services

import (
	"testing"

	"github.com/panyam/ramtool/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioKey(t *testing.T) {
	a, err := ScenarioKey("rbd", seriesScenario("x", 0.1, 0.2))
	require.NoError(t, err)
	b, err := ScenarioKey("rbd", seriesScenario("x", 0.1, 0.2))
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	other, _ := ScenarioKey("availability", seriesScenario("x", 0.1, 0.2))
	assert.NotEqual(t, a, other)
	changed, _ := ScenarioKey("rbd", seriesScenario("x", 0.1, 0.3))
	assert.NotEqual(t, a, changed)
}

func TestResultCache(t *testing.T) {
	cache, err := NewResultCache(2)
	require.NoError(t, err)

	calls := 0
	solve := func(s *solver.Scenario) (*solver.SolveRbdResponse, error) {
		calls++
		return solver.SolveRbdScenario(s)
	}

	first, err := cached(cache, "rbd", seriesScenario("x", 0.1), solve)
	require.NoError(t, err)
	second, err := cached(cache, "rbd", seriesScenario("x", 0.1), solve)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)

	hits, misses := cache.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)

	// Failures are not remembered.
	bad := seriesScenario("bad")
	_, err = cached(cache, "rbd", bad, solve)
	assert.Error(t, err)
	_, err = cached(cache, "rbd", bad, solve)
	assert.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 1, cache.Len())

	// Capacity is bounded.
	for i := 1; i <= 3; i++ {
		_, err = cached(cache, "rbd", seriesScenario("x", float64(i)), solve)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, cache.Len())
}

func TestNilResultCache(t *testing.T) {
	cache, err := NewResultCache(0)
	require.NoError(t, err)
	assert.Nil(t, cache)
	assert.Equal(t, 0, cache.Len())

	calls := 0
	for i := 0; i < 2; i++ {
		_, err := cached(cache, "rbd", seriesScenario("x", 0.1), func(s *solver.Scenario) (*solver.SolveRbdResponse, error) {
			calls++
			return solver.SolveRbdScenario(s)
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
}
