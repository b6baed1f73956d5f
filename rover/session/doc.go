// Package session manages rover session lifecycle and persistence.
//
// A session pairs a rover instance with the mission configuration it was
// built from. The Manager keeps sessions in memory behind a mutex, keyed by
// case-insensitive 4-character IDs, and optionally writes them through to a
// SessionPersistence backend so rovers survive process restarts.
//
// Persisted sessions store only the rover's state snapshot and the command
// log; the command table and sensors are rebuilt from the mission config on
// load. This keeps session files small and lets mission files evolve
// independently of live sessions.
package session
