package chaintime

// Tick is a discrete unit of chain time, advanced by the external block
// driver. All durations and expiries in the core are expressed in ticks.
type Tick uint64

// Period is a span of chain time measured in ticks.
type Period = Tick

// Before reports whether t is strictly before u.
func (t Tick) Before(u Tick) bool {
	return t < u
}

// After reports whether t is strictly after u.
func (t Tick) After(u Tick) bool {
	return t > u
}

// Since returns the number of ticks elapsed from u to t.
// The driver only moves time forward, so u never exceeds t on valid input;
// the zero span is returned otherwise.
func (t Tick) Since(u Tick) Tick {
	if u > t {
		return 0
	}
	return t - u
}

// OnBoundary reports whether the span t lands exactly on a multiple of the
// period p. A zero period has no boundaries.
func (t Tick) OnBoundary(p Period) bool {
	if p == 0 {
		return false
	}
	return t%p == 0
}
