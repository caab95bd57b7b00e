package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStats(t *testing.T) {
	var s Stats
	s.Reset()

	for _, n := range []int{3, 0, 5, 2} {
		s.Add(n)
	}

	assert.Equal(t, 0, s.Min)
	assert.Equal(t, 5, s.Max)
	assert.Equal(t, 4, s.Num)
	assert.Equal(t, 10, s.Total)
	assert.Equal(t, 5, s.Spread())
	assert.InDelta(t, 2.5, s.Mean(), 1e-9)
}

func TestStatsEmpty(t *testing.T) {
	var s Stats
	s.Reset()

	assert.Zero(t, s.Num)
	assert.Zero(t, s.Mean())
}

func TestStatsReset(t *testing.T) {
	var s Stats
	s.Reset()
	s.Add(7)
	s.Reset()

	s.Add(-2)
	assert.Equal(t, -2, s.Min)
	assert.Equal(t, -2, s.Max)
	assert.Equal(t, 1, s.Num)
}
