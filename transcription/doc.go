// Package transcription defines the transcription provider interface and
// common types for interacting with speech-to-text backends.
//
// Backends are registered through the provider registry and selected by
// name at startup. The whisperapi subpackage implements the interface
// against the HTTP transcription service.
package transcription
