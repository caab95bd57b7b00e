package sim

// FindNeighbors returns the nearest car circularly behind pos and the nearest
// car circularly ahead of pos in lane. Distances are strictly positive, so a
// car sitting exactly at pos is never its own neighbour; when the queried lane
// is the subject's own lane this is what excludes the subject itself. Both
// results are nil when the lane is empty.
func FindNeighbors(pos int, lane *Lane) (behind, ahead *Car) {
	minBehind := lane.Length
	minAhead := lane.Length
	for _, c := range lane.Cars {
		if d := wrap(pos-c.Position, lane.Length); d > 0 && d < minBehind {
			minBehind = d
			behind = c
		}
		if d := wrap(c.Position-pos, lane.Length); d > 0 && d < minAhead {
			minAhead = d
			ahead = c
		}
	}
	return behind, ahead
}
