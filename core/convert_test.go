package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertMetrics(t *testing.T) {
	t.Run("from lambda with mttr", func(t *testing.T) {
		resp, err := ConvertMetrics(&ConvertRequest{Lambda: Ptr(0.001), MTTR: Ptr(10.0)})
		require.NoError(t, err)
		assertClose(t, 1000, resp.MTBF)
		assert.Equal(t, 0.001, resp.Lambda)
		require.NotNil(t, resp.A)
		assertClose(t, 1000.0/1010.0, *resp.A)
		assert.Equal(t, "ok", resp.Notes)
	})

	t.Run("from mtbf without mttr", func(t *testing.T) {
		resp, err := ConvertMetrics(&ConvertRequest{MTBF: Ptr(250.0)})
		require.NoError(t, err)
		assert.Equal(t, 250.0, resp.MTBF)
		assert.Equal(t, 0.004, resp.Lambda)
		assert.Nil(t, resp.A)
	})

	t.Run("lambda takes precedence", func(t *testing.T) {
		resp, err := ConvertMetrics(&ConvertRequest{Lambda: Ptr(0.5), MTBF: Ptr(10.0)})
		require.NoError(t, err)
		assert.Equal(t, 0.5, resp.Lambda)
		assert.Equal(t, 2.0, resp.MTBF)
		assert.Equal(t, NotesLambdaPrecedence, resp.Notes)
	})

	t.Run("consistent pair is plain ok", func(t *testing.T) {
		resp, err := ConvertMetrics(&ConvertRequest{Lambda: Ptr(0.5), MTBF: Ptr(2.0)})
		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Notes)
	})

	failures := map[string]struct {
		req     ConvertRequest
		message string
	}{
		"nothing":       {ConvertRequest{}, "Provide either lambda or MTBF (both > 0)."},
		"only mttr":     {ConvertRequest{MTTR: Ptr(3.0)}, "Provide either lambda or MTBF (both > 0)."},
		"zero lambda":   {ConvertRequest{Lambda: Ptr(0.0)}, "Provide either lambda or MTBF (both > 0)."},
		"negative mtbf": {ConvertRequest{MTBF: Ptr(-5.0)}, "Provide either lambda or MTBF (both > 0)."},
		"zero mttr":     {ConvertRequest{MTBF: Ptr(5.0), MTTR: Ptr(0.0)}, "MTTR must be > 0."},
	}
	t.Run("nil request", func(t *testing.T) {
		_, err := ConvertMetrics(nil)
		assert.EqualError(t, err, convertMissingMessage)
	})

	for name, tc := range failures {
		t.Run(name, func(t *testing.T) {
			_, err := ConvertMetrics(&tc.req)
			assert.EqualError(t, err, tc.message)
			assert.True(t, IsRamError(err))
		})
	}
}
