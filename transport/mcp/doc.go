// Package mcp provides the Model Context Protocol interface for rover
// mission control.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for rover operations
//   - Session-aware command execution
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - rover_status: Current rover status with a local terrain window
//   - land: Put the rover on the ground at a position and heading
//   - execute_commands: Interpret a command string, one character per command
//   - command_log: Retrieve past command strings with pagination
//   - create_session: Create a new session with mission selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - list_configs: List available mission configurations
//   - describe_terrain: Full terrain map for a mission configuration
//   - mission_instructions: Operating manual for driving the rover
//
// Architecture:
//
// The client is a thin proxy: every tool call is translated into a request
// against the REST API and the JSON response is rendered as text for the
// agent. Running the MCP surface in a separate process keeps rover state in
// exactly one place, the API server.
//
// Session Management:
//
// All rover tools take a session_id parameter. Each session drives an
// independent rover on its own mission, so agents can run several rovers
// concurrently.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
