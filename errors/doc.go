// Package errors provides the unified application error type for lyricsync.
// Every failure crossing the adapter boundary is converted to an AppError
// carrying a machine-readable code, a user-facing message, and an HTTP status
// mapping, so nothing backend-shaped ever leaks raw to the presentation
// layer.
package errors
