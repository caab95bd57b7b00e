package sim

import "math/rand"

const (
	// MaxVelocity is the speed ceiling in cells per tick.
	MaxVelocity = 5

	// CrashDuration is the number of ticks a crashed car stays immobilised.
	CrashDuration = 30

	// slowdownProbability is the chance per tick that a moving car sheds one
	// unit of velocity. This models driver imperfection and is what produces
	// the characteristic stop-and-go waves.
	slowdownProbability = 0.5
)

// Direction is the outcome of a lane-change decision.
type Direction int

const (
	// Stay means the car remains in its current lane this tick.
	Stay Direction = iota
	// Left means the car moves to the lane one index lower.
	Left
	// Right means the car moves to the lane one index higher.
	Right
)

// Car is a single vehicle on one circular lane. Position is the occupied cell
// in [0, length), Velocity is in [0, MaxVelocity]. While CrashTimer is
// positive the car is immobilised and the timer counts down one per tick.
type Car struct {
	Position   int `json:"position"`
	Velocity   int `json:"velocity"`
	CrashTimer int `json:"crash_timer,omitempty"`
}

// Advance applies the no-lane-change update rule. gap is the circular
// distance to the next car ahead on the same lane, taken from the pre-tick
// position snapshot.
func (c *Car) Advance(gap, roadLength int, rng *rand.Rand) {
	if c.CrashTimer > 0 {
		c.Velocity = 0
		c.CrashTimer--
		return
	}
	if c.Velocity < MaxVelocity {
		c.Velocity++
	}
	if gap <= c.Velocity {
		// Stop strictly short of the leader's snapshot cell: the leader may
		// itself slow to a halt this same tick, so entering that cell is
		// never safe. The clamp covers a lone car, whose gap to itself is 0.
		c.Velocity = gap - 1
		if c.Velocity < 0 {
			c.Velocity = 0
		}
	}
	if c.Velocity > 0 && rng.Float64() < slowdownProbability {
		c.Velocity--
	}
	c.Position = (c.Position + c.Velocity) % roadLength
}

// AdvanceWithLaneChange applies the lane-change variant of the update rule.
// The car compares its forward gap against the clear space available in the
// adjacent lanes and either runs the normal rule in place (returning Stay) or
// signals the caller to transfer it; a transferring car keeps its position and
// velocity for this tick. Ties favour the current lane, then right, then left.
func (c *Car) AdvanceWithLaneChange(gap, roadLength int, left, right *Lane, rng *rand.Rand) Direction {
	if c.CrashTimer > 0 {
		c.Velocity = 0
		c.CrashTimer--
		return Stay
	}

	mSpace := wrap(gap, roadLength)
	lSpace, rSpace := -1, -1
	if left != nil {
		lSpace = c.sideSpace(left, roadLength)
	}
	if right != nil {
		rSpace = c.sideSpace(right, roadLength)
	}

	if mSpace >= rSpace && mSpace >= lSpace {
		c.Advance(mSpace, roadLength, rng)
		return Stay
	}
	if rSpace >= lSpace {
		return Right
	}
	return Left
}

// sideSpace returns the clear distance ahead of the car were it to move into
// adj, or -1 if moving there now would risk a collision: the nearest car
// behind in adj could reach this cell within one tick, or the cell itself is
// already taken.
func (c *Car) sideSpace(adj *Lane, roadLength int) int {
	// Checked first: the neighbour search only sees strictly positive
	// distances, so a car sitting level with the subject is invisible to it.
	if adj.occupied(c.Position) {
		return -1
	}
	behind, ahead := FindNeighbors(c.Position, adj)
	if behind == nil || ahead == nil {
		// Empty adjacent lane: a full loop of clear track.
		return roadLength
	}
	if wrap(behind.Position+behind.Velocity+1, roadLength) >= c.Position {
		return -1
	}
	return wrap(ahead.Position-c.Position, roadLength)
}

// wrap reduces d to the canonical circular distance in [0, length).
func wrap(d, length int) int {
	d %= length
	if d < 0 {
		d += length
	}
	return d
}
