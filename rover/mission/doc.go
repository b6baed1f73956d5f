// Package mission defines the mission configuration for a rover deployment:
// the terrain hazard map, the operating bounds, the command vocabulary, and
// the default landing site.
//
// A Mission is loaded from JSON, validated, and then compiled into a rover
// via Build, which programs the command table and wires the configured
// sensors. The engine itself never sees mission files; this package is the
// bridge between configuration and the core.
package mission
