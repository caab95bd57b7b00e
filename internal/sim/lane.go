package sim

import (
	"errors"
	"math/rand"
	"sort"
)

// ErrEmptyLane is returned when a crash is injected into a lane with no cars.
var ErrEmptyLane = errors.New("lane has no cars")

// Lane is an ordered population of cars on one circular track. Cars are kept
// in circularly ascending position order, which makes the next-car-ahead
// lookup for car i a simple (i+1) mod n index. Ticking rotates that order
// (the last car may wrap past the first) but never breaks it; AddCar restores
// a fully sorted order after an arrival.
type Lane struct {
	Length int    `json:"length"`
	Cars   []*Car `json:"cars"`
}

// NewLane creates a lane with numCars cars at distinct random positions and
// random initial velocities in [1, MaxVelocity].
func NewLane(length, numCars int, rng *rand.Rand) *Lane {
	positions := rng.Perm(length)[:numCars]
	sort.Ints(positions)
	cars := make([]*Car, numCars)
	for i, p := range positions {
		cars[i] = &Car{Position: p, Velocity: 1 + rng.Intn(MaxVelocity)}
	}
	return &Lane{Length: length, Cars: cars}
}

// Positions returns the current position of every car, in population order.
func (l *Lane) Positions() []int {
	positions := make([]int, len(l.Cars))
	for i, c := range l.Cars {
		positions[i] = c.Position
	}
	return positions
}

// Velocities returns the current velocity of every car, in population order.
func (l *Lane) Velocities() []int {
	velocities := make([]int, len(l.Cars))
	for i, c := range l.Cars {
		velocities[i] = c.Velocity
	}
	return velocities
}

// Tick advances every car one step with no lane changes permitted. All
// forward gaps are computed from a snapshot of the pre-tick positions so that
// every car conceptually moves simultaneously; reading a just-updated
// neighbour would corrupt the automaton's update semantics.
func (l *Lane) Tick(rng *rand.Rand) {
	n := len(l.Cars)
	if n == 0 {
		return
	}
	positions := l.Positions()
	for i, c := range l.Cars {
		gap := wrap(positions[(i+1)%n]-positions[i], l.Length)
		c.Advance(gap, l.Length, rng)
	}
}

// Departure records a car that decided to leave its lane this tick.
type Departure struct {
	Car *Car
	Dir Direction
}

// TickWithLaneChanges advances every car one step, permitting moves into the
// given adjacent lanes (either may be nil at the road edge). Departing cars
// are removed from this lane in descending index order and returned; the
// caller owns inserting them into their destination lanes once every lane has
// made its per-car decisions.
func (l *Lane) TickWithLaneChanges(left, right *Lane, rng *rand.Rand) []Departure {
	n := len(l.Cars)
	if n == 0 {
		return nil
	}
	positions := l.Positions()

	var (
		departures []Departure
		departing  []int
	)
	for i, c := range l.Cars {
		gap := wrap(positions[(i+1)%n]-positions[i], l.Length)
		dir := c.AdvanceWithLaneChange(gap, l.Length, left, right, rng)
		if dir != Stay {
			departures = append(departures, Departure{Car: c, Dir: dir})
			departing = append(departing, i)
		}
	}
	for j := len(departing) - 1; j >= 0; j-- {
		i := departing[j]
		l.Cars = append(l.Cars[:i], l.Cars[i+1:]...)
	}
	return departures
}

// AddCar inserts an arriving car and restores sorted position order. A full
// re-sort rather than a ranked insert: the resident order may be rotated
// after a tick, so there is no single correct insertion index to search for.
func (l *Lane) AddCar(car *Car) {
	l.Cars = append(l.Cars, car)
	sort.Slice(l.Cars, func(i, j int) bool {
		return l.Cars[i].Position < l.Cars[j].Position
	})
}

// InjectCrash immobilises one uniformly chosen car for CrashDuration ticks
// and returns its position. This models an external disruptive event, not a
// failure of the collision-avoidance rule.
func (l *Lane) InjectCrash(rng *rand.Rand) (int, error) {
	if len(l.Cars) == 0 {
		return 0, ErrEmptyLane
	}
	c := l.Cars[rng.Intn(len(l.Cars))]
	c.CrashTimer = CrashDuration
	return c.Position, nil
}

// occupied reports whether any car in the lane sits at position pos.
func (l *Lane) occupied(pos int) bool {
	for _, c := range l.Cars {
		if c.Position == pos {
			return true
		}
	}
	return false
}
