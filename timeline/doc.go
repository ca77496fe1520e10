// Package timeline implements the synchronized-lyric data model: ordered
// time-ranged segments, active-line resolution against a playback clock,
// manual selection with timed expiry, line editing with lenient clock
// parsing, and A/B loop markers.
//
// The model is presentation-free. Callers feed it playback time updates and
// user intents; it answers "which line is active now" and keeps the segment
// list consistent under insert, delete, and edit.
//
// # Active resolution
//
// A line is active while the clock sits inside its interval. In the gaps the
// previous line stays active until the next one begins, so brief silences do
// not drop the highlight. See ResolveActive for the exact rules.
package timeline
