package timeline

// Loop holds the A/B repeat markers. Each marker is set independently to the
// playback position of the moment; the loop only takes effect once both are
// set and B lies after A. Markers are always cleared together.
type Loop struct {
	a, b float64
	aSet bool
	bSet bool
}

// SetA places the loop start marker at t.
func (l *Loop) SetA(t float64) {
	l.a = t
	l.aSet = true
}

// SetB places the loop end marker at t.
func (l *Loop) SetB(t float64) {
	l.b = t
	l.bSet = true
}

// Clear removes both markers.
func (l *Loop) Clear() {
	*l = Loop{}
}

// A returns the loop start marker and whether it is set.
func (l *Loop) A() (float64, bool) { return l.a, l.aSet }

// B returns the loop end marker and whether it is set.
func (l *Loop) B() (float64, bool) { return l.b, l.bSet }

// Active reports whether looping is in effect: both markers set and B after A.
func (l *Loop) Active() bool {
	return l.aSet && l.bSet && l.b > l.a
}

// Wrap reports whether playback at time t has crossed the loop end, meaning
// the player should seek back to A. Always false while the loop is inactive.
func (l *Loop) Wrap(t float64) (float64, bool) {
	if !l.Active() || t < l.b {
		return 0, false
	}
	return l.a, true
}
