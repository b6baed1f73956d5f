// Command drive is an autonomous exploration client. It connects to a
// mission control server over the REST API, lands a rover, and drives it
// around the mission terrain until coverage stops improving or a command
// budget runs out.
//
// The rover only ever sees a 3x3 window around itself, so the explorer
// builds its own map as it goes: it tracks visited cells and discovered
// hazards and always prefers a safe neighbor it has not seen yet.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/roverops/mission-control/rover/service"
)

// Client is a small REST client for the mission control API.
type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) post(path string, body interface{}, result interface{}) error {
	var reqBody []byte
	var err error
	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	resp, err := c.client.Post(c.baseURL+path, "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s: %s - %s", path, resp.Status, string(data))
	}
	if result != nil {
		return json.Unmarshal(data, result)
	}
	return nil
}

func (c *Client) get(path string, result interface{}) error {
	resp, err := c.client.Get(c.baseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s: %s - %s", path, resp.Status, string(data))
	}
	return json.Unmarshal(data, result)
}

func (c *Client) CreateSession(configID string) (*service.SessionInfo, error) {
	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var info service.SessionInfo
	if err := c.post("/api/sessions", body, &info); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	c.sessionID = info.ID
	return &info, nil
}

func (c *Client) GetSession() (*service.SessionInfo, error) {
	var info service.SessionInfo
	if err := c.get(fmt.Sprintf("/api/sessions/%s", c.sessionID), &info); err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &info, nil
}

func (c *Client) Land(x, y int, direction string) (*service.StatusReport, error) {
	body := map[string]interface{}{"x": x, "y": y, "direction": direction}

	var report service.StatusReport
	if err := c.post(fmt.Sprintf("/api/sessions/%s/land", c.sessionID), body, &report); err != nil {
		return nil, fmt.Errorf("land: %w", err)
	}
	return &report, nil
}

func (c *Client) Execute(commands string) (*service.ExecuteResult, error) {
	body := map[string]string{"commands": commands}

	var result service.ExecuteResult
	if err := c.post(fmt.Sprintf("/api/sessions/%s/execute", c.sessionID), body, &result); err != nil {
		return nil, fmt.Errorf("execute: %w", err)
	}
	return &result, nil
}

func (c *Client) Status() (*service.StatusReport, error) {
	var report service.StatusReport
	if err := c.get(fmt.Sprintf("/api/sessions/%s/status", c.sessionID), &report); err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	return &report, nil
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Mission control server URL")
	configID := flag.String("config", "", "Mission configuration ID (empty = server default)")
	continueSession := flag.String("continue", "", "Resume driving an existing session by ID")
	maxCommands := flag.Int("max-commands", 2000, "Command budget for the run")
	stallLimit := flag.Int("stall-limit", 200, "Stop after this many commands without new coverage")
	verbose := flag.Bool("v", false, "Verbose output")
	delayMs := flag.Int("delay", 0, "Delay between command strings in milliseconds (0 = no delay)")
	flag.Parse()

	log.Printf("Connecting to mission control at %s", *serverURL)
	client := NewClient(*serverURL)

	// Check for saved session ID
	sessionFile := ".session"
	savedSessionID := *continueSession
	if savedSessionID == "" {
		if data, err := os.ReadFile(sessionFile); err == nil {
			savedSessionID = string(bytes.TrimSpace(data))
		}
	}

	var info *service.SessionInfo
	var err error

	if savedSessionID != "" {
		client.sessionID = savedSessionID
		log.Printf("Resuming session: %s", client.sessionID)
		info, err = client.GetSession()
		if err != nil {
			log.Printf("Failed to resume session (may be expired): %v", err)
			savedSessionID = ""
		}
	}

	if savedSessionID == "" {
		info, err = client.CreateSession(*configID)
		if err != nil {
			log.Fatalf("Failed to create session: %v", err)
		}
		log.Printf("Session created: %s (mission: %s)", client.sessionID, info.ConfigName)

		if err := os.WriteFile(sessionFile, []byte(client.sessionID), 0644); err != nil {
			log.Printf("Warning: Failed to save session ID: %v", err)
		}
	}

	if info.Mission == nil {
		log.Fatalf("Session carries no mission definition")
	}

	// Land at the mission's nominal site. Landing again also clears any
	// stopped state from a previous run.
	site, dir, err := info.Mission.LandingSite()
	if err != nil {
		log.Fatalf("Mission has no usable landing site: %v", err)
	}
	report, err := client.Land(site.X, site.Y, dir.String())
	if err != nil {
		log.Fatalf("Failed to land: %v", err)
	}
	log.Printf("Landed: %s", report.Rover.Display)

	alphabet, err := AlphabetFromMission(info.Mission)
	if err != nil {
		log.Fatalf("Mission alphabet unusable for exploration: %v", err)
	}

	explorer := NewExplorer(alphabet)
	explorer.Observe(report)

	commandsUsed := 0
	lastCoverage := 0
	stalled := 0

	for commandsUsed < *maxCommands && stalled < *stallLimit {
		commands := explorer.NextCommands(report)
		if commands == "" {
			log.Printf("Explorer has no safe moves left")
			break
		}

		result, err := client.Execute(commands)
		if err != nil {
			log.Fatalf("Execute failed: %v", err)
		}
		commandsUsed += result.Executed
		if result.Stopped {
			// Count the refused command too; it spent budget.
			commandsUsed++
			explorer.RecordHalt(result)
			if *verbose {
				log.Printf("Halted (%s) after %q, rover: %s",
					result.HaltReason, commands, result.Rover.Display)
			}
		}

		report, err = client.Status()
		if err != nil {
			log.Fatalf("Status failed: %v", err)
		}
		explorer.Observe(report)

		coverage := explorer.Coverage()
		if coverage > lastCoverage {
			lastCoverage = coverage
			stalled = 0
		} else {
			stalled += len(commands)
		}

		if *verbose {
			log.Printf("%q → %s (coverage: %d cells)", commands, report.Rover.Display, coverage)
		}

		if *delayMs > 0 {
			time.Sleep(time.Duration(*delayMs) * time.Millisecond)
		}
	}

	log.Printf("Run complete: %d commands, %d cells visited, %d hazards discovered",
		commandsUsed, explorer.Coverage(), explorer.HazardsFound())
	log.Printf("Final position: %s", report.Rover.Display)
	log.Printf("Session: %s", client.sessionID)
}
