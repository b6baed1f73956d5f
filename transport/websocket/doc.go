// Package websocket provides the WebSocket transport for rover mission
// control.
//
// The websocket package implements:
//   - Real-time rover status broadcasting
//   - Session-aware WebSocket connections
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a pair of
// goroutines that manage reading, writing, and cleanup.
//
// Message Protocol:
//
// Messages are JSON-encoded. After every landing or command execution the
// hub pushes a status_update message carrying the session's StatusReport to
// every client watching that session. Incoming client messages are ignored;
// driving happens over the REST API, the socket is telemetry only.
//
// Session Integration:
//
// Clients specify their session ID via query parameter (?session=abc1) when
// establishing the connection. Status updates are broadcast only to clients
// connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// inside an HTTP handler, after validating the session:
//	hub.ServeWS(w, r, sessionID)
package websocket
