package timeline

// NoActive is the sentinel index returned when no segment is active.
const NoActive = -1

// ResolveActive returns the index of the segment considered active at
// playback time t, or NoActive.
//
// Rules, in order:
//
//  1. The first segment (list order) whose interval contains t wins, bounds
//     inclusive. Overlaps are allowed; position breaks the tie.
//  2. Otherwise the last segment whose start precedes t wins: a line stays
//     highlighted through gaps until the next line begins, and past the end
//     of the final line.
//  3. NoActive when t precedes the first segment's start, or the list is
//     empty.
//
// Resolution is stateless: it depends only on t and the current segment
// list, never on a previous result. Degenerate segments (start > end) cannot
// match rule 1 but still anchor rule 2 by their start time.
func ResolveActive(t float64, segments []Segment) int {
	for i, seg := range segments {
		if seg.Contains(t) {
			return i
		}
	}

	last := NoActive
	for i, seg := range segments {
		if seg.Start <= t {
			last = i
		}
	}
	return last
}
