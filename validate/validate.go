// Command validate provides a small CLI that validates mission configuration
// JSON files in a configs directory. It checks:
//   - JSON structure and required fields
//   - Terrain consistency and allowed characters (. and #)
//   - Command alphabet (non-empty, single-character, known actions)
//   - Landing site safety (on the map, inside bounds, not a hazard)
//   - Connectivity: how much of the safe terrain is reachable from the
//     landing site via 4-directional movement
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/roverops/mission-control/rover/mission"
	"github.com/roverops/mission-control/rover/sensors"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateMissionFile loads and validates a single mission JSON file.
// It performs structural checks via the mission package, then runs a
// reachability analysis from the landing site.
func validateMissionFile(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var mis mission.Mission
	if err := json.Unmarshal(data, &mis); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := mission.Validate(&mis); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	terrain, err := mis.BuildTerrain()
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Terrain: %v", err))
		return result
	}

	connectivity := validateConnectivity(&mis, terrain)
	result.Errors = append(result.Errors, connectivity.Errors...)
	if !connectivity.Valid {
		result.Valid = false
	}

	if result.Valid {
		width, height := terrain.Size()
		site, dir, _ := mis.LandingSite()

		commands := make([]string, 0, len(mis.Commands))
		for name := range mis.Commands {
			commands = append(commands, name)
		}
		sort.Strings(commands)

		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", mis.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Terrain: %dx%d, %d hazards", width, height, terrain.HazardCount()))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Commands: %s", strings.Join(commands, " ")))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Landing: %s facing %s", site, dir))
		if mis.Bounds != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Bounds: x [%d, %d], y [%d, %d]",
				mis.Bounds.MinX, mis.Bounds.MaxX, mis.Bounds.MinY, mis.Bounds.MaxY))
		}
	}

	return result
}

// validateConnectivity flood-fills the safe cells reachable from the landing
// site using 4-directional movement and reports any safe cells the rover can
// never drive to. Unreachable safe cells are a warning sign for mission
// design, not a hard failure unless nothing is reachable at all.
func validateConnectivity(mis *mission.Mission, terrain *sensors.Terrain) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	site, _, err := mis.LandingSite()
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot validate connectivity: %v", err))
		return result
	}

	safe := func(x, y int) bool {
		if !terrain.Contains(x, y) || !terrain.IsSafe(x, y) {
			return false
		}
		if mis.Bounds != nil && !mis.Bounds.IsSafe(x, y) {
			return false
		}
		return true
	}

	// Count drivable cells on the map
	origin := terrain.Origin()
	width, height := terrain.Size()
	totalSafe := 0
	for y := origin.Y; y < origin.Y+height; y++ {
		for x := origin.X; x < origin.X+width; x++ {
			if safe(x, y) {
				totalSafe++
			}
		}
	}

	// Flood fill from the landing site
	type point struct{ x, y int }
	visited := make(map[point]bool)
	queue := []point{{site.X, site.Y}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, d := range []point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			next := point{current.x + d.x, current.y + d.y}
			if !visited[next] && safe(next.x, next.y) {
				queue = append(queue, next)
			}
		}
	}

	reachable := len(visited)
	if reachable == 0 || !safe(site.X, site.Y) {
		result.Valid = false
		result.Errors = append(result.Errors, "Connectivity failure: landing site is not drivable")
		return result
	}

	if reachable < totalSafe {
		result.Errors = append(result.Errors,
			fmt.Sprintf("⚠ Connectivity: %d/%d safe cells reachable from landing site (%d isolated)",
				reachable, totalSafe, totalSafe-reachable))
	} else {
		result.Errors = append(result.Errors,
			fmt.Sprintf("✓ Connectivity: all %d safe cells reachable from landing site", totalSafe))
	}

	return result
}

// main scans the configs directory for *.json files and validates each one,
// printing a concise report and exiting with non-zero status if any are
// invalid.
func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No config files found in %s\n", configDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateMissionFile(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
