package engine

import "github.com/cxd309/nasch-engine/internal/sim"

// SimulationMeta holds the identity and sizing parameters for a simulation run.
type SimulationMeta struct {
	// SimulationID identifies the run; a ksuid is assigned when empty.
	SimulationID string `json:"simulation_id"`
	NumLanes     int    `json:"num_lanes"`
	RoadLength   int    `json:"road_length"` // cells
	CarsPerLane  int    `json:"cars_per_lane"`
	Ticks        int    `json:"ticks"`
	// Seed drives all randomness in the run; 0 selects a time-derived seed.
	// The effective seed is echoed back in the log meta so any run can be
	// replayed.
	Seed int64 `json:"seed,omitempty"`
	// LaneChanges selects the tick variant that lets cars migrate between
	// adjacent lanes.
	LaneChanges bool `json:"lane_changes"`
}

// SimulationInput is the JSON-serialisable input to the engine.
type SimulationInput struct {
	Meta SimulationMeta `json:"simulation_meta"`
}

// VelocityStats summarises the cars on the road at a single tick.
type VelocityStats struct {
	Cars    int     `json:"cars"`
	Mean    float64 `json:"mean_velocity"`
	Min     int     `json:"min_velocity"`
	Max     int     `json:"max_velocity"`
	Stopped int     `json:"stopped"`
}

// SimulationLogRow is the state of the road at a single tick.
type SimulationLogRow struct {
	Tick  int           `json:"tick"`
	Grid  sim.Grid      `json:"grid"`
	Stats VelocityStats `json:"velocity_stats"`
}

// SimulationLog is the complete output of a simulation run.
type SimulationLog struct {
	Meta   SimulationMeta     `json:"simulation_meta"`
	Output []SimulationLogRow `json:"output"`
}
