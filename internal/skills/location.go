package skills

// Location is a point in a named world plus a look direction.
type Location struct {
	World string
	X     float64
	Y     float64
	Z     float64
	Yaw   float32
	Pitch float32
}

// DistanceSquared ignores worlds; callers compare World first.
func (l Location) DistanceSquared(o Location) float64 {
	dx, dy, dz := l.X-o.X, l.Y-o.Y, l.Z-o.Z
	return dx*dx + dy*dy + dz*dz
}

// IsNear reports whether o is in the same world and strictly within radius.
func (l Location) IsNear(o Location, radius float64) bool {
	return l.World == o.World && l.DistanceSquared(o) < radius*radius
}
