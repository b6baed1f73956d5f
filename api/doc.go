// Package api provides HTTP REST API handlers for rover mission control.
//
// The api package implements:
//   - RESTful endpoints for rover operations
//   - Session management endpoints
//   - Mission configuration listing and creation
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session
//   - GET /api/sessions - List all sessions (sortable, limitable)
//   - GET /api/sessions/fleet - Aggregated fleet view across sessions
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Rover Operations:
//   - POST /api/sessions/{id}/land - Land the rover at x, y facing a direction
//   - POST /api/sessions/{id}/execute - Interpret a command string
//   - GET /api/sessions/{id}/status - Current rover status report
//   - GET /api/sessions/{id}/log - Command log with pagination
//
// Configuration:
//   - GET /api/configs - List available mission configurations
//   - POST /api/configs - Save a new mission configuration
//   - GET /api/configs/{name} - Fetch one mission configuration
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Landing requests look like:
//
//	{"x": 0, "y": 0, "direction": "EAST"}
//
// and execution requests carry the raw command string:
//
//	{"commands": "FFRFF"}
//
// A halted command string is a successful HTTP request; the halt shows up in
// the response body as stopped=true with a halt_reason code. Only calls that
// cannot be interpreted at all (unknown session, rover not landed, bad
// direction name) map to error status codes.
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
