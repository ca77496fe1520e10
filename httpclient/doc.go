// Package httpclient is the outbound HTTP plumbing for the backend adapters:
// a configurable client with JSON and multipart/form-data bodies, and a
// classified error type that separates timeouts, connection failures, and
// status-code errors so the adapter layer can map them to distinct
// user-facing messages.
//
// Retry, backoff, and circuit breaking are deliberately absent: the consumer
// surfaces failures to the user immediately and lets them retry.
package httpclient
