// Package sim implements a multi-lane traffic cellular automaton in the
// Nagel-Schreckenberg style.
//
// A Road holds parallel circular Lanes of equal length, each populated by
// Cars that advance under a stochastic car-following rule. The simulation
// moves in discrete ticks; within a tick all cars update simultaneously from
// the same pre-tick snapshot. Two tick variants exist: plain car-following,
// and car-following with gap-based lane changes. Each tick may also inject a
// random crash that immobilises one car for a fixed number of ticks.
package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// crashProbability is the per-lane-update chance of a crash being injected
// somewhere on the road.
const crashProbability = 0.01

// EmptyCell marks a snapshot grid cell with no car present.
const EmptyCell = -1

// Grid is a per-tick velocity snapshot: one row per lane, one column per road
// cell. Cell values are EmptyCell or a velocity in [0, MaxVelocity].
type Grid [][]int

// Road is a fixed number of parallel lanes sharing one circular track length.
type Road struct {
	Lanes  []*Lane
	Length int

	// Logger receives a structured record for every injected crash.
	Logger logrus.FieldLogger

	rng *rand.Rand
}

// NewRoad builds a road of numLanes lanes, each length cells long and
// populated with carsPerLane cars at distinct random positions. All
// randomness, during construction and during ticks, is drawn from rng.
func NewRoad(numLanes, length, carsPerLane int, rng *rand.Rand) (*Road, error) {
	var err error
	if numLanes < 1 {
		err = multierr.Append(err, fmt.Errorf("num_lanes must be at least 1, got %d", numLanes))
	}
	if length < 1 {
		err = multierr.Append(err, fmt.Errorf("road length must be at least 1, got %d", length))
	}
	if carsPerLane < 0 {
		err = multierr.Append(err, fmt.Errorf("cars_per_lane must not be negative, got %d", carsPerLane))
	}
	if carsPerLane > length {
		err = multierr.Append(err, fmt.Errorf("cars_per_lane %d exceeds road length %d", carsPerLane, length))
	}
	if err != nil {
		return nil, err
	}

	lanes := make([]*Lane, numLanes)
	for i := range lanes {
		lanes[i] = NewLane(length, carsPerLane, rng)
	}
	return &Road{
		Lanes:  lanes,
		Length: length,
		Logger: logrus.StandardLogger(),
		rng:    rng,
	}, nil
}

// Tick advances the whole road one step with no lane changes.
func (r *Road) Tick() {
	for _, lane := range r.Lanes {
		lane.Tick(r.rng)
		r.maybeInjectCrash()
	}
}

// TickWithLaneChanges advances the whole road one step, permitting cars to
// migrate between adjacent lanes. Each lane only decides and removes its own
// departures; the road performs the actual transfers once every lane has
// finished, so no lane ever mutates another lane's population mid-decision.
func (r *Road) TickWithLaneChanges() {
	type transfer struct {
		car       *Car
		src, dest *Lane
	}
	var transfers []transfer

	for i, lane := range r.Lanes {
		var left, right *Lane
		if i > 0 {
			left = r.Lanes[i-1]
		}
		if i < len(r.Lanes)-1 {
			right = r.Lanes[i+1]
		}
		for _, d := range lane.TickWithLaneChanges(left, right, r.rng) {
			dest := left
			if d.Dir == Right {
				dest = right
			}
			transfers = append(transfers, transfer{car: d.Car, src: lane, dest: dest})
		}
		r.maybeInjectCrash()
	}

	for _, t := range transfers {
		if t.dest.occupied(t.car.Position) {
			// A competing transfer or a destination car claimed the cell
			// after this car decided to move; it stays in its own lane.
			t.src.AddCar(t.car)
			continue
		}
		t.dest.AddCar(t.car)
	}
}

// maybeInjectCrash injects a crash on a uniformly chosen non-empty lane with
// probability crashProbability. The lane choice is independent of whichever
// lane just updated.
func (r *Road) maybeInjectCrash() {
	if r.rng.Float64() >= crashProbability {
		return
	}
	i := r.rng.Intn(len(r.Lanes))
	lane := r.Lanes[i]
	if len(lane.Cars) == 0 {
		return
	}
	pos, err := lane.InjectCrash(r.rng)
	if err != nil {
		return
	}
	r.Logger.WithFields(logrus.Fields{
		"lane":     i,
		"position": pos,
	}).Info("crash injected")
}

// Snapshot returns the velocity grid for the current tick. Every cell without
// a car holds EmptyCell.
func (r *Road) Snapshot() Grid {
	grid := make(Grid, len(r.Lanes))
	for i, lane := range r.Lanes {
		row := make([]int, r.Length)
		for j := range row {
			row[j] = EmptyCell
		}
		for _, c := range lane.Cars {
			row[c.Position] = c.Velocity
		}
		grid[i] = row
	}
	return grid
}

// CarCount returns the total number of cars across all lanes.
func (r *Road) CarCount() int {
	total := 0
	for _, lane := range r.Lanes {
		total += len(lane.Cars)
	}
	return total
}
