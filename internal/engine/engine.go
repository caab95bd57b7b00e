// Package engine drives the traffic automaton for a fixed number of ticks and
// records a per-tick log.
//
// Each log row carries the velocity grid snapshot consumed by external
// renderers (one row per lane, one column per cell, -1 where no car is
// present) plus aggregate velocity statistics. The engine seeds a private
// random number generator from the input so identical inputs replay
// identically.
package engine

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/sirupsen/logrus"

	"github.com/cxd309/nasch-engine/internal/sim"
	"github.com/cxd309/nasch-engine/internal/stats"
	"github.com/cxd309/nasch-engine/internal/xorshift"
)

// Engine holds one simulation run in progress.
type Engine struct {
	meta SimulationMeta
	road *sim.Road
}

// New constructs an Engine from a SimulationInput, building the road and
// placing every car at its initial position. A missing simulation ID is
// filled with a fresh ksuid and a zero seed with a time-derived one; the
// resolved values are reported in the output meta.
func New(input SimulationInput) (*Engine, error) {
	meta := input.Meta
	if meta.SimulationID == "" {
		meta.SimulationID = ksuid.New().String()
	}
	if meta.Seed == 0 {
		meta.Seed = time.Now().UnixNano()
	}
	if meta.Ticks < 0 {
		return nil, fmt.Errorf("ticks must not be negative, got %d", meta.Ticks)
	}

	rng := rand.New(xorshift.New(meta.Seed))
	road, err := sim.NewRoad(meta.NumLanes, meta.RoadLength, meta.CarsPerLane, rng)
	if err != nil {
		return nil, fmt.Errorf("building road: %w", err)
	}
	road.Logger = logrus.WithField("simulation_id", meta.SimulationID)

	return &Engine{meta: meta, road: road}, nil
}

// Road exposes the underlying road, for collaborators that pull extra state
// beyond the log (custom renderers, live viewers).
func (e *Engine) Road() *sim.Road {
	return e.road
}

// Run executes the full simulation and returns the log. The log holds one row
// for the initial state and one per tick.
func (e *Engine) Run() SimulationLog {
	log := SimulationLog{Meta: e.meta}
	log.Output = append(log.Output, e.row(0))
	for t := 1; t <= e.meta.Ticks; t++ {
		if e.meta.LaneChanges {
			e.road.TickWithLaneChanges()
		} else {
			e.road.Tick()
		}
		log.Output = append(log.Output, e.row(t))
	}
	return log
}

// row snapshots the road into a log row for tick t.
func (e *Engine) row(t int) SimulationLogRow {
	grid := e.road.Snapshot()

	var st stats.Stats
	st.Reset()
	stopped := 0
	for _, lane := range grid {
		for _, v := range lane {
			if v == sim.EmptyCell {
				continue
			}
			st.Add(v)
			if v == 0 {
				stopped++
			}
		}
	}

	vs := VelocityStats{Cars: st.Num, Mean: st.Mean(), Stopped: stopped}
	if st.Num > 0 {
		vs.Min = st.Min
		vs.Max = st.Max
	}
	return SimulationLogRow{Tick: t, Grid: grid, Stats: vs}
}

// RunJSON is the primary entry point for both compilation targets (CLI, WASM).
// It accepts a JSON-encoded SimulationInput, runs the simulation, and returns
// a JSON-encoded SimulationLog.
func RunJSON(jsonInput string) (string, error) {
	var input SimulationInput
	if err := json.Unmarshal([]byte(jsonInput), &input); err != nil {
		return "", fmt.Errorf("invalid input JSON: %w", err)
	}

	eng, err := New(input)
	if err != nil {
		return "", err
	}

	out, err := json.Marshal(eng.Run())
	if err != nil {
		return "", fmt.Errorf("marshaling output: %w", err)
	}
	return string(out), nil
}
