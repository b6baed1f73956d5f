package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/roverops/mission-control/rover/mission"
	"github.com/roverops/mission-control/rover/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Rover Mission Control",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Rover Mission Control - MCP Interface

This is a thin client that proxies all requests to the REST API server.

MISSION MODEL:
Each session drives one rover on a mission. A mission defines the terrain,
the command alphabet, and the nominal landing site. Land the rover first,
then drive it with command strings.

AVAILABLE TOOLS:
- rover_status: Current position, heading and a 3x3 terrain window
- land: Put the rover on the ground at (x, y) facing a direction
- execute_commands: Run a command string, one character per command
- command_log: View past command strings
- create_session: Create a new session
- get_session: Get session details
- list_sessions: List all active sessions
- list_configs: List available mission configurations
- describe_terrain: Full terrain map for a mission configuration
- mission_instructions: Operating manual for driving the rover

NOTE: The 'intent' parameter on execute_commands serves as rubber duck
debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new rover session with optional mission selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the mission configuration to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active rover sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Rover operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "rover_status",
		Description: "Get the current rover status, including a 3x3 local terrain window and the mission's command alphabet",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleRoverStatus)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "land",
		Description: "Land the rover at a position and heading. Must be done once before executing commands. Landing again relocates the rover and clears a stopped state.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate of the landing site",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate of the landing site",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"NORTH", "EAST", "SOUTH", "WEST"},
					"description": "Initial heading",
				},
			},
			Required: []string{"session_id", "x", "y", "direction"},
		},
	}, c.handleLand)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "execute_commands",
		Description: "Execute a command string, one character per command. Interpretation halts at the first unknown character or dangerous move; the rest of the string is discarded and the rover reports 'stopped' until it executes a safe command string again.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"commands": map[string]interface{}{
					"type":        "string",
					"description": "Command string, e.g. \"FFRFF\"",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this command string (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "commands"},
		},
	}, c.handleExecuteCommands)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "command_log",
		Description: "Get the command log for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleCommandLog)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available mission configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_terrain",
		Description: "Get the full terrain map of a mission configuration, including hazards, bounds and the nominal landing site",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the mission configuration",
				},
			},
			Required: []string{"config_id"},
		},
	}, c.handleDescribeTerrain)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "mission_instructions",
		Description: "Get the operating manual for driving the rover",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleMissionInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nMission: %s\nRover: %s\n",
		session.ID, session.ConfigName, session.Rover.Display)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Mission: %s, Rover: %s, Created: %s)\n",
			s.ID, s.ConfigName, s.Rover.Display, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRoverStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var report service.StatusReport
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/status", sessionID), nil, &report)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatStatusReport(&report)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleLand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)

	x, okX := args["x"].(float64)
	y, okY := args["y"].(float64)
	if !okX || !okY {
		return mcp.NewToolResultError("x and y must be integers"), nil
	}

	body := map[string]interface{}{
		"x":         int(x),
		"y":         int(y),
		"direction": direction,
	}

	var report service.StatusReport
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/land", sessionID), body, &report)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Rover landed.\n\n" + formatStatusReport(&report)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleExecuteCommands(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	commands, _ := args["commands"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]string{
		"commands": commands,
	}

	var result service.ExecuteResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/execute", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatExecuteResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleCommandLog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var log service.LogResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/log%s", sessionID, params), nil, &log)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatCommandLog(&log)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Missions:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Terrain: %dx%d, Hazards: %d, Commands: %s\n\n",
			config.Name, config.ConfigID, config.Description,
			config.Width, config.Height, config.Hazards,
			strings.Join(config.Commands, " "))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleDescribeTerrain(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configID, _ := args["config_id"].(string)

	var mis mission.Mission
	err := c.apiCall("GET", fmt.Sprintf("/api/configs/%s", configID), nil, &mis)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatTerrain(&mis)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMissionInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🛰️ Rover Mission Control - Operating Manual

MISSION MODEL:
Each session drives one rover on a mission. A mission defines the terrain
map, the command alphabet, and the nominal landing site. The rover does
nothing until it lands.

COORDINATES AND HEADINGS:
• Positions are integer (x, y) pairs; x grows to the EAST, y grows to the NORTH
• Headings: NORTH, EAST, SOUTH, WEST
• Rotating right cycles NORTH → EAST → SOUTH → WEST → NORTH

DRIVING:
1. Land the rover with the 'land' tool (position + heading)
2. Drive with 'execute_commands' - one character per command
3. Check 'rover_status' between runs for position and local terrain

COMMAND ALPHABET:
Each mission maps single characters to actions. The usual alphabet:
• F - move forward one cell (heading unchanged)
• B - move backward one cell (heading unchanged)
• L - rotate 90° left in place
• R - rotate 90° right in place
Missions may define extra characters, including composite commands that run
several actions in sequence. Use 'rover_status' or 'list_configs' to see the
alphabet before driving.

HALTING (MOST COMMON FAILURE POINT):
Command strings are interpreted strictly left to right and halt at the
first problem:
• An unknown character halts interpretation immediately
• A move into a hazard or off the mission bounds is refused and halts
  interpretation - the rover does NOT enter the dangerous cell
Everything after the halting character is discarded. The rover then reports
'stopped' until a later command string executes fully. Landing again also
clears the stopped state.

⚠️ A halted run is NOT an error. The execute_commands response tells you
how many commands ran, which character halted, and why (unknown_command or
dangerous_field). Read it before sending the next string.

TERRAIN WINDOW:
'rover_status' includes a 3x3 window around the rover, rows printed north
to south:
• '.' - safe cell
• '#' - hazard or out of bounds
• ^ > v < - the rover, pointing along its heading

🤖 AI AGENTS - SUCCESS STRATEGIES:
• Send short command strings and check status often; long blind strings
  waste commands after a halt
• Before moving forward, check the cell ahead in the 3x3 window
• Remember B moves backward WITHOUT changing heading - useful for backing
  out of dead ends
• Track your own map of discovered hazards; the rover only sees 3x3
• If a run halts on dangerous_field, the rover is still on the safe side -
  rotate and try another route

SESSION MANAGEMENT:
- Multiple sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions maintain independent rover state and mission
- Use session-specific tools for multi-rover coordination

Good luck on the surface! 🛰️`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nMission: %s\nCreated: %s\nRover: %s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		session.Rover.Display)
}

func formatStatusReport(report *service.StatusReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Rover: %s\n", report.Rover.Display))
	if report.Rover.Landed {
		b.WriteString(fmt.Sprintf("Position: (%d, %d) | Heading: %s\n",
			report.Rover.X, report.Rover.Y, report.Rover.Heading))
		if report.Rover.Stopped {
			b.WriteString("⚠️ Rover is STOPPED - last command string halted\n")
		}
	} else {
		b.WriteString("Rover has not landed yet. Use the land tool first.\n")
	}

	if len(report.LocalView) == 3 {
		b.WriteString("\nLocal 3x3 (north at top):\n")
		for _, row := range report.LocalView {
			b.WriteString(row + "\n")
		}
	}

	if len(report.Commands) > 0 {
		b.WriteString(fmt.Sprintf("\nCommand alphabet: %s\n", strings.Join(report.Commands, " ")))
	}

	return b.String()
}

func formatExecuteResult(result *service.ExecuteResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Executed %d/%d commands\n", result.Executed, result.Requested))
	if result.Truncated {
		b.WriteString(fmt.Sprintf("⚠️ Command string truncated to %d characters\n", result.Limit))
	}

	if result.Stopped {
		switch result.HaltReason {
		case service.HaltUnknownCommand:
			b.WriteString(fmt.Sprintf("✗ Halted at command %d (%q): unknown command\n",
				result.HaltIndex, result.HaltCommand))
		case service.HaltDangerousField:
			b.WriteString(fmt.Sprintf("✗ Halted at command %d (%q): dangerous field ahead, move refused\n",
				result.HaltIndex, result.HaltCommand))
		default:
			b.WriteString("✗ Halted\n")
		}
	} else {
		b.WriteString("✓ Command string completed\n")
	}

	// Per-command trace
	if len(result.Steps) > 0 {
		b.WriteString("\nSteps:\n")
		for _, s := range result.Steps {
			status := "✓"
			if s.Stopped {
				status = "✗"
			}
			b.WriteString(fmt.Sprintf("%d. %s %s → %s %s\n", s.Idx, s.Command, s.From, s.To, status))
		}
	}

	b.WriteString(fmt.Sprintf("\nStart: %s\nEnd:   %s\n", result.Start.Display, result.Rover.Display))
	return b.String()
}

func formatTerrain(mis *mission.Mission) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Mission: %s\n%s\n\n", mis.Name, mis.Description))

	rows := mis.Terrain.Layout
	maxY := mis.Terrain.Origin.Y + len(rows) - 1
	b.WriteString(fmt.Sprintf("Terrain (rows north to south, top-left cell is (%d, %d)):\n",
		mis.Terrain.Origin.X, maxY))
	for i, row := range rows {
		y := maxY - i
		if y == mis.Landing.Y {
			col := mis.Landing.X - mis.Terrain.Origin.X
			if col >= 0 && col < len(row) {
				marker := headingMarkers[mis.Landing.Direction]
				if marker == 0 {
					marker = '@'
				}
				row = row[:col] + string(marker) + row[col+1:]
			}
		}
		b.WriteString(row + "\n")
	}

	hazards := 0
	for _, row := range rows {
		hazards += strings.Count(row, "#")
	}
	b.WriteString(fmt.Sprintf("\nHazards: %d\n", hazards))

	if mis.Bounds != nil {
		b.WriteString(fmt.Sprintf("Bounds: x in [%d, %d], y in [%d, %d]\n",
			mis.Bounds.MinX, mis.Bounds.MaxX, mis.Bounds.MinY, mis.Bounds.MaxY))
	}

	b.WriteString(fmt.Sprintf("Landing: (%d, %d) facing %s\n",
		mis.Landing.X, mis.Landing.Y, mis.Landing.Direction))

	if len(mis.Commands) > 0 {
		names := make([]string, 0, len(mis.Commands))
		for name := range mis.Commands {
			names = append(names, name)
		}
		sort.Strings(names)
		b.WriteString(fmt.Sprintf("Command alphabet: %s\n", strings.Join(names, " ")))
	}

	return b.String()
}

var headingMarkers = map[string]byte{
	"NORTH": '^',
	"EAST":  '>',
	"SOUTH": 'v',
	"WEST":  '<',
}

func formatCommandLog(log *service.LogResponse) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Command Log (Page %d/%d) — Total: %d\n\n",
		log.Page, log.TotalPages, log.Total))

	if len(log.Records) == 0 {
		b.WriteString("(no command strings yet)")
		return b.String()
	}

	for _, rec := range log.Records {
		status := "✓"
		if rec.Stopped {
			status = fmt.Sprintf("✗ %s", rec.HaltReason)
		}
		b.WriteString(fmt.Sprintf("%d. %q exec=%d %s → %s %s\n",
			rec.Seq, rec.Commands, rec.Executed, rec.Before, rec.After, status))
	}

	return b.String()
}
