// Command analyze prints quick, human-readable heuristics about mission
// configuration files in the configs directory. It summarizes terrain
// dimensions, hazard density, connected safe regions, and how far the
// landing site sits from the nearest hazard.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/roverops/mission-control/rover/mission"
	"github.com/roverops/mission-control/rover/sensors"
)

type point struct {
	X, Y int
}

func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil || len(files) == 0 {
		fmt.Printf("No config files found in %s\n", configDir)
		os.Exit(1)
	}

	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		analyzeMission(file)
	}
}

func analyzeMission(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var mis mission.Mission
	if err := json.Unmarshal(data, &mis); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	terrain, err := mis.BuildTerrain()
	if err != nil {
		fmt.Printf("Error building terrain: %v\n", err)
		return
	}

	width, height := terrain.Size()
	total := width * height
	hazards := terrain.HazardCount()

	fmt.Printf("Name: %s\n", mis.Name)
	fmt.Printf("Terrain: %d x %d (%d cells)\n", width, height, total)
	fmt.Printf("Hazards: %d (%.1f%% density)\n", hazards, 100*float64(hazards)/float64(total))
	fmt.Printf("Commands: %d\n", len(mis.Commands))

	site, dir, err := mis.LandingSite()
	if err != nil {
		fmt.Printf("Landing: invalid (%v)\n", err)
		return
	}
	fmt.Printf("Landing: %s facing %s\n", site, dir)

	drivable := func(x, y int) bool {
		if !terrain.Contains(x, y) || !terrain.IsSafe(x, y) {
			return false
		}
		if mis.Bounds != nil && !mis.Bounds.IsSafe(x, y) {
			return false
		}
		return true
	}

	regions := safeRegions(terrain, drivable)
	fmt.Printf("Safe regions: %d\n", len(regions))
	if len(regions) > 0 {
		largest := 0
		landingRegion := -1
		for i, region := range regions {
			if len(region) > len(regions[largest]) {
				largest = i
			}
			if region[point{site.X, site.Y}] {
				landingRegion = i
			}
		}
		fmt.Printf("Largest region: %d cells\n", len(regions[largest]))

		if landingRegion == -1 {
			fmt.Printf("⚠️  WARNING: landing site is not on drivable terrain!\n")
		} else if landingRegion != largest {
			fmt.Printf("⚠️  WARNING: landing site region has %d cells; %d cells are unreachable\n",
				len(regions[landingRegion]), len(regions[largest]))
		} else {
			fmt.Printf("✅ Landing site sits in the largest safe region\n")
		}
	}

	if d, ok := nearestHazardDistance(terrain, site.X, site.Y); ok {
		fmt.Printf("Nearest hazard: %d cells from landing site\n", d)
		if d <= 1 {
			fmt.Printf("⚠️  Landing site is adjacent to a hazard - early moves are risky\n")
		}
	} else {
		fmt.Printf("No hazards on this terrain\n")
	}
}

// safeRegions partitions the drivable cells into 4-connected regions.
func safeRegions(terrain *sensors.Terrain, drivable func(x, y int) bool) []map[point]bool {
	origin := terrain.Origin()
	width, height := terrain.Size()

	seen := make(map[point]bool)
	var regions []map[point]bool

	for y := origin.Y; y < origin.Y+height; y++ {
		for x := origin.X; x < origin.X+width; x++ {
			start := point{x, y}
			if seen[start] || !drivable(x, y) {
				continue
			}

			region := make(map[point]bool)
			queue := []point{start}
			for len(queue) > 0 {
				p := queue[0]
				queue = queue[1:]
				if region[p] {
					continue
				}
				region[p] = true
				seen[p] = true

				for _, d := range []point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
					next := point{p.X + d.X, p.Y + d.Y}
					if !region[next] && drivable(next.X, next.Y) {
						queue = append(queue, next)
					}
				}
			}
			regions = append(regions, region)
		}
	}

	return regions
}

// nearestHazardDistance returns the Manhattan distance from (x, y) to the
// closest hazard cell on the map, or false if there are none.
func nearestHazardDistance(terrain *sensors.Terrain, x, y int) (int, bool) {
	origin := terrain.Origin()
	width, height := terrain.Size()

	best := -1
	for cy := origin.Y; cy < origin.Y+height; cy++ {
		for cx := origin.X; cx < origin.X+width; cx++ {
			if terrain.IsSafe(cx, cy) {
				continue
			}
			d := abs(cx-x) + abs(cy-y)
			if best == -1 || d < best {
				best = d
			}
		}
	}
	return best, best != -1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
