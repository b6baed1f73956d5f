// Package service provides the business logic layer for rover mission control.
//
// The service package implements:
//   - Multi-session rover management
//   - Mission configuration loading
//   - Landing and command-string execution
//   - Session lifecycle management
//   - Command log tracking
//
// Core Interfaces:
//
// RoverService is the main service interface providing high-level rover
// operations. SessionManager handles session creation, retrieval, and
// lifecycle. ConfigManager manages mission configuration loading.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the rover engine, providing session isolation, mission management, and
// orchestration. Each session maintains its own rover instance built from a
// mission configuration, with independent position and sensors.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr := config.NewManager("configs")
//	roverService := service.NewRoverService(sessionMgr, configMgr)
//
//	// Create a new session
//	sessionInfo, err := roverService.CreateSession(ctx, "training")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Land and drive
//	_, err = roverService.Land(ctx, sessionInfo.ID, 0, 0, "EAST")
//	result, err := roverService.Execute(ctx, sessionInfo.ID, "FFRFF")
//
// Session Management:
//
// Sessions are identified by unique 4-character IDs and maintain independent
// rover state. Multiple sessions can run concurrently with different mission
// configurations. Sessions track creation time, last access time, and the
// command log for debugging.
package service
