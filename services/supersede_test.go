package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupersede(t *testing.T) {
	var s Supersede
	first := s.Next()
	assert.True(t, s.IsCurrent(first))
	second := s.Next()
	assert.False(t, s.IsCurrent(first))
	assert.True(t, s.IsCurrent(second))

	assert.True(t, s.Observe(10))
	assert.False(t, s.Observe(4))
	assert.True(t, s.Observe(10))
	assert.Equal(t, uint64(11), s.Next())
}

func TestSupersedeConcurrent(t *testing.T) {
	var s Supersede
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Next()
		}()
	}
	wg.Wait()
	assert.True(t, s.IsCurrent(50))
}
