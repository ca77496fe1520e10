// Package lrc writes timelines as LRC timed-lyric files: one
// "[mm:ss.cc]text" line per segment, optionally preceded by ID tag headers
// (title, artist, album, tool).
package lrc
