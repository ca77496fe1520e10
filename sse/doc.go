// Package sse streams session events to connected clients over
// Server-Sent Events.
//
// The Hub routes events to clients by glob pattern on the client ID.
// Session event streams use IDs of the form "session:<id>:<client>", so
// publishing to "session:<id>:*" reaches every viewer of that session.
//
//	hub := sse.NewHub()
//	go hub.Run()
//	manager := session.NewManager(tr, log, session.WithPublisher(sse.NewPublisher(hub)))
package sse
