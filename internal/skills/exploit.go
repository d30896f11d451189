package skills

// exploitGuard is the per-player suspicion state for fall-damage farming.
// Repeated falls near the previous one raise tries; any fall elsewhere lowers
// it by one. A player who legitimately falls in one spot will be flagged too.
type exploitGuard struct {
	tries   int
	last    Location
	hasLast bool
}

// check updates the counter for a fall at loc and reports whether it is
// above maxTries. The location is recorded unconditionally.
func (g *exploitGuard) check(loc Location, radius float64, maxTries int) bool {
	if g.hasLast && g.last.IsNear(loc, radius) {
		g.tries++
	} else if g.tries > 0 {
		g.tries--
	}
	g.recordFall(loc)
	return g.tries > maxTries
}

func (g *exploitGuard) recordFall(loc Location) {
	g.last = loc
	g.hasLast = true
}
