// Package stats provides a small accumulator for per-tick simulation
// statistics.
package stats

const (
	maxInt = int(^uint(0) >> 1)
	minInt = -maxInt - 1
)

// Stats captures the min, max, count, and total of a series of observations.
type Stats struct {
	Min   int
	Max   int
	Num   int
	Total int
}

// Reset spreads Min and Max to the farthest possible boundary values and
// clears the count and total.
func (s *Stats) Reset() {
	s.Min = maxInt
	s.Max = minInt
	s.Num = 0
	s.Total = 0
}

// Add accounts for one observation, raising the max or lowering the min.
func (s *Stats) Add(n int) {
	if n > s.Max {
		s.Max = n
	}
	if n < s.Min {
		s.Min = n
	}
	s.Num++
	s.Total += n
}

// Spread returns the gap between the highest and lowest observation.
func (s Stats) Spread() int {
	return s.Max - s.Min
}

// Mean returns the average observation, or 0 when nothing was observed.
func (s Stats) Mean() float64 {
	if s.Num == 0 {
		return 0
	}
	return float64(s.Total) / float64(s.Num)
}
