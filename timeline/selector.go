package timeline

import "time"

// DefaultOverrideExpiry is how long a manual selection suppresses automatic
// resolution before the playback clock takes over again.
const DefaultOverrideExpiry = time.Second

// Selector resolves the active segment index, layering a short-lived manual
// override on top of the automatic time-based rule. A click pins the chosen
// line; roughly a second later automatic resolution resumes from wherever
// playback has moved to.
//
// Selector is not safe for concurrent use; the owning session serializes
// access.
type Selector struct {
	expiry time.Duration
	now    func() time.Time

	override      int
	overrideUntil time.Time
}

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithOverrideExpiry sets how long a manual selection stays pinned.
func WithOverrideExpiry(d time.Duration) SelectorOption {
	return func(s *Selector) { s.expiry = d }
}

// WithClock sets the time source, used by tests to control expiry.
func WithClock(now func() time.Time) SelectorOption {
	return func(s *Selector) { s.now = now }
}

// NewSelector creates a Selector with the default one-second override expiry.
func NewSelector(opts ...SelectorOption) *Selector {
	s := &Selector{
		expiry:   DefaultOverrideExpiry,
		now:      time.Now,
		override: NoActive,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select pins index as the active segment and schedules the pin to expire.
// The pinned index is returned by Resolve regardless of playback time until
// then.
func (s *Selector) Select(index int) {
	s.override = index
	s.overrideUntil = s.now().Add(s.expiry)
}

// ClearOverride drops any manual pin immediately.
func (s *Selector) ClearOverride() {
	s.override = NoActive
	s.overrideUntil = time.Time{}
}

// Overridden reports whether a manual pin is currently in effect.
func (s *Selector) Overridden() bool {
	return s.override != NoActive && s.now().Before(s.overrideUntil)
}

// Resolve returns the active index for playback time t. A live manual pin
// wins outright; otherwise the automatic rules of ResolveActive apply. An
// expired pin is cleared as a side effect, so resolution never consults more
// state than the pin and the current time.
func (s *Selector) Resolve(t float64, segments []Segment) int {
	if s.override != NoActive {
		if s.now().Before(s.overrideUntil) {
			return s.override
		}
		s.ClearOverride()
	}
	return ResolveActive(t, segments)
}
