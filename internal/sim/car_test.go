package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fixedSource feeds a constant value to math/rand, pinning Float64 to a known
// result so the random slowdown can be forced on or off.
type fixedSource struct{ v int64 }

func (s fixedSource) Int63() int64 { return s.v }
func (s fixedSource) Seed(int64)   {}

// noSlowdown yields Float64() == 0.75: the slowdown never fires.
func noSlowdown() *rand.Rand { return rand.New(fixedSource{v: 3 << 61}) }

// alwaysSlowdown yields Float64() == 0: the slowdown always fires.
func alwaysSlowdown() *rand.Rand { return rand.New(fixedSource{v: 0}) }

// seqSource cycles through a fixed series of values, scripting one draw per
// car when a whole lane ticks.
type seqSource struct {
	vals []int64
	i    int
}

func (s *seqSource) Int63() int64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func (s *seqSource) Seed(int64) {}

func TestCarAdvance(t *testing.T) {
	tests := []struct {
		name         string
		car          Car
		gap          int
		rng          *rand.Rand
		wantPosition int
		wantVelocity int
	}{
		{
			name:         "accelerates toward the ceiling",
			car:          Car{Position: 0, Velocity: 3},
			gap:          10,
			rng:          noSlowdown(),
			wantPosition: 4,
			wantVelocity: 4,
		},
		{
			name:         "holds the ceiling",
			car:          Car{Position: 0, Velocity: MaxVelocity},
			gap:          10,
			rng:          noSlowdown(),
			wantPosition: 5,
			wantVelocity: MaxVelocity,
		},
		{
			name:         "wraps around the end of the track",
			car:          Car{Position: 19, Velocity: 1},
			gap:          10,
			rng:          noSlowdown(),
			wantPosition: 1,
			wantVelocity: 2,
		},
		{
			name:         "wraps with the random slowdown",
			car:          Car{Position: 19, Velocity: 2},
			gap:          10,
			rng:          alwaysSlowdown(),
			wantPosition: 1,
			wantVelocity: 2,
		},
		{
			name:         "brakes when the gap equals its speed",
			car:          Car{Position: 2, Velocity: 2},
			gap:          3,
			rng:          noSlowdown(),
			wantPosition: 4,
			wantVelocity: 2,
		},
		{
			name:         "brakes to stay behind the car ahead",
			car:          Car{Position: 4, Velocity: 4},
			gap:          2,
			rng:          noSlowdown(),
			wantPosition: 5,
			wantVelocity: 1,
		},
		{
			name:         "clamps at zero when fully boxed in",
			car:          Car{Position: 3, Velocity: 0},
			gap:          0,
			rng:          noSlowdown(),
			wantPosition: 3,
			wantVelocity: 0,
		},
		{
			name:         "random slowdown sheds one unit",
			car:          Car{Position: 0, Velocity: 3},
			gap:          10,
			rng:          alwaysSlowdown(),
			wantPosition: 3,
			wantVelocity: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.car
			c.Advance(tt.gap, 20, tt.rng)
			assert.Equal(t, tt.wantPosition, c.Position, "position")
			assert.Equal(t, tt.wantVelocity, c.Velocity, "velocity")
		})
	}
}

func TestCarCrashImmobilization(t *testing.T) {
	c := Car{Position: 5, Velocity: 3, CrashTimer: CrashDuration}
	rng := noSlowdown()

	for tick := 1; tick <= CrashDuration; tick++ {
		c.Advance(10, 20, rng)
		assert.Equal(t, 0, c.Velocity, "tick %d: crashed car must not move", tick)
		assert.Equal(t, 5, c.Position, "tick %d: crashed car must not move", tick)
		assert.Equal(t, CrashDuration-tick, c.CrashTimer, "tick %d", tick)
	}

	// Tick 31 after injection: the timer has expired and movement resumes.
	c.Advance(10, 20, rng)
	assert.Equal(t, 1, c.Velocity)
	assert.Equal(t, 6, c.Position)
}

func TestCarVelocityBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	c := Car{Position: 0, Velocity: 1}
	for i := 0; i < 1000; i++ {
		c.Advance(rng.Intn(10), 20, rng)
		assert.GreaterOrEqual(t, c.Velocity, 0)
		assert.LessOrEqual(t, c.Velocity, MaxVelocity)
		assert.GreaterOrEqual(t, c.Position, 0)
		assert.Less(t, c.Position, 20)
	}
}

func TestCarAdvanceWithLaneChange(t *testing.T) {
	// Each lane is 20 cells. Side lanes hold a slow car behind at 2 and a car
	// ahead at 15, as seen from a subject at position 10: the gap behind is
	// safe and the space ahead is 5.
	sideLane := func() *Lane {
		return &Lane{Length: 20, Cars: []*Car{{Position: 2}, {Position: 15}}}
	}
	// An unsafe lane: the car behind would reach the subject's cell this tick.
	unsafeLane := func() *Lane {
		return &Lane{Length: 20, Cars: []*Car{{Position: 8, Velocity: 5}, {Position: 15}}}
	}
	// A lane whose resident already occupies the subject's cell.
	occupiedLane := func() *Lane {
		return &Lane{Length: 20, Cars: []*Car{{Position: 2}, {Position: 10}}}
	}

	tests := []struct {
		name        string
		car         Car
		gap         int
		left, right *Lane
		want        Direction
	}{
		{
			name: "three-way tie stays in the current lane",
			car:  Car{Position: 10},
			gap:  5,
			left: sideLane(), right: sideLane(),
			want: Stay,
		},
		{
			name: "equal side spaces prefer right",
			car:  Car{Position: 10},
			gap:  2,
			left: sideLane(), right: sideLane(),
			want: Right,
		},
		{
			name: "left wins when right is unsafe",
			car:  Car{Position: 10},
			gap:  2,
			left: sideLane(), right: unsafeLane(),
			want: Left,
		},
		{
			name: "empty adjacent lane offers a full loop",
			car:  Car{Position: 10},
			gap:  2,
			left: &Lane{Length: 20}, right: nil,
			want: Left,
		},
		{
			name: "occupied destination cell disqualifies the side",
			car:  Car{Position: 10},
			gap:  5,
			left: nil, right: occupiedLane(),
			want: Stay,
		},
		{
			name: "lone level car in the side lane disqualifies it",
			car:  Car{Position: 10},
			gap:  1,
			left: nil, right: &Lane{Length: 20, Cars: []*Car{{Position: 10}}},
			want: Stay,
		},
		{
			name: "edge lane with no neighbours stays",
			car:  Car{Position: 10},
			gap:  1,
			left: nil, right: nil,
			want: Stay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.car
			got := c.AdvanceWithLaneChange(tt.gap, 20, tt.left, tt.right, noSlowdown())
			assert.Equal(t, tt.want, got)
			if got != Stay {
				// A transferring car keeps its position and velocity.
				assert.Equal(t, tt.car.Position, c.Position)
				assert.Equal(t, tt.car.Velocity, c.Velocity)
			}
		})
	}
}

func TestCarAdvanceWithLaneChangeWhileCrashed(t *testing.T) {
	c := Car{Position: 10, Velocity: 4, CrashTimer: 2}
	got := c.AdvanceWithLaneChange(1, 20, &Lane{Length: 20}, &Lane{Length: 20}, noSlowdown())
	assert.Equal(t, Stay, got, "crashed cars never change lanes")
	assert.Equal(t, 0, c.Velocity)
	assert.Equal(t, 10, c.Position)
	assert.Equal(t, 1, c.CrashTimer)
}
