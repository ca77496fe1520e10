// Package session owns the per-session lyric state and the intent loop
// that mutates it. Each session holds one audio file, its timeline, the
// edit buffer, the A/B loop and the manual-selection state. All intents
// against a session run to completion under a single mutex, so handlers
// never observe a half-applied mutation.
//
// Slow work (transcription, translation) runs on background goroutines
// that re-enter the lock to apply their result. Results are tagged with
// a request ID; a result whose ID no longer matches the session's
// current one is discarded, so a stale transcription can never
// overwrite a newer timeline.
package session
