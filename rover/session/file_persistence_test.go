package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/roverops/mission-control/rover/engine"
	"github.com/roverops/mission-control/rover/mission"
	"github.com/roverops/mission-control/rover/service"
)

// stubConfigManager serves the test mission under a fixed config ID
type stubConfigManager struct {
	mis *mission.Mission
}

func newStubConfigManager() *stubConfigManager {
	return &stubConfigManager{mis: createTestMission()}
}

func (s *stubConfigManager) LoadConfig(name string) (*mission.Mission, error) {
	if name != "test" {
		return nil, errors.New("configuration not found")
	}
	return s.mis, nil
}

func (s *stubConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	return []*service.ConfigInfo{
		{Filename: "test.json", ConfigID: "test", Name: s.mis.Name, Description: s.mis.Description},
	}, nil
}

func (s *stubConfigManager) GetDefault() *mission.Mission {
	return s.mis
}

func (s *stubConfigManager) SaveConfig(name string, m *mission.Mission) error {
	return nil
}

func newTestPersistence(t *testing.T) *FilePersistence {
	t.Helper()
	fp, err := NewFilePersistence(t.TempDir(), newStubConfigManager())
	if err != nil {
		t.Fatalf("NewFilePersistence failed: %v", err)
	}
	return fp
}

func drivenSession(t *testing.T, id string) *service.Session {
	t.Helper()
	mis := createTestMission()
	rover, err := mis.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	rover.Land(engine.Coordinates{X: 0, Y: 0}, engine.East)
	if err := rover.Execute("FR"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	return &service.Session{
		ID:      id,
		Rover:   rover,
		Mission: mis,
		Log: []service.CommandRecord{
			{Seq: 1, Commands: "FR", Executed: 2, Before: "(0, 0) EAST", After: "(1, 0) SOUTH", Timestamp: time.Now()},
		},
		CreatedAt:      time.Now().Add(-time.Minute),
		LastAccessedAt: time.Now(),
	}
}

func TestFilePersistence_SaveLoad(t *testing.T) {
	fp := newTestPersistence(t)
	sess := drivenSession(t, "pers")

	if err := fp.Save(sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !fp.Exists("pers") {
		t.Fatal("Exists reported false after save")
	}

	loaded, err := fp.Load("pers")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.ID != "pers" {
		t.Errorf("ID = %q, want %q", loaded.ID, "pers")
	}
	if got := loaded.Rover.String(); got != "(1, 0) SOUTH" {
		t.Errorf("restored rover = %q, want %q", got, "(1, 0) SOUTH")
	}
	if len(loaded.Log) != 1 || loaded.Log[0].Commands != "FR" {
		t.Errorf("restored log = %+v, want the saved record", loaded.Log)
	}

	// The restored rover keeps driving with the mission's command table and
	// sensors intact.
	if err := loaded.Rover.Execute("F"); err != nil {
		t.Fatalf("Execute on restored rover failed: %v", err)
	}
	if got := loaded.Rover.String(); got != "(1, -1) SOUTH" {
		t.Errorf("after driving restored rover: %q, want %q", got, "(1, -1) SOUTH")
	}
}

func TestFilePersistence_LoadUnlanded(t *testing.T) {
	fp := newTestPersistence(t)
	mis := createTestMission()
	rover, err := mis.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	sess := &service.Session{
		ID:             "idle",
		Rover:          rover,
		Mission:        mis,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
	if err := fp.Save(sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := fp.Load("idle")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Rover.Landed() {
		t.Error("restored rover should not be landed")
	}
	if got := loaded.Rover.String(); got != "unknown" {
		t.Errorf("restored rover = %q, want %q", got, "unknown")
	}
}

func TestFilePersistence_Delete(t *testing.T) {
	fp := newTestPersistence(t)
	sess := drivenSession(t, "gone")

	if err := fp.Save(sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := fp.Delete("gone"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if fp.Exists("gone") {
		t.Error("Exists reported true after delete")
	}
	if err := fp.Delete("gone"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second delete: err = %v, want ErrSessionNotFound", err)
	}
}

func TestFilePersistence_ListAll(t *testing.T) {
	fp := newTestPersistence(t)

	for _, id := range []string{"aaaa", "bbbb"} {
		if err := fp.Save(drivenSession(t, id)); err != nil {
			t.Fatalf("Save(%s) failed: %v", id, err)
		}
	}

	ids, err := fp.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("ListAll returned %d IDs, want 2", len(ids))
	}
}

func TestFilePersistence_FileStructure(t *testing.T) {
	dir := t.TempDir()
	fp, err := NewFilePersistence(dir, newStubConfigManager())
	if err != nil {
		t.Fatalf("NewFilePersistence failed: %v", err)
	}

	if err := fp.Save(drivenSession(t, "file")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "file.json"))
	if err != nil {
		t.Fatalf("session file missing: %v", err)
	}

	var data PersistedSessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("session file is not valid JSON: %v", err)
	}
	if data.ConfigName != "test" {
		t.Errorf("ConfigName = %q, want config ID %q", data.ConfigName, "test")
	}
	if !data.Rover.Landed || data.Rover.Display != "(1, 0) SOUTH" {
		t.Errorf("persisted rover = %+v", data.Rover)
	}
}

func TestManagerWithPersistence(t *testing.T) {
	dir := t.TempDir()
	configs := newStubConfigManager()

	fp, err := NewFilePersistence(dir, configs)
	if err != nil {
		t.Fatalf("NewFilePersistence failed: %v", err)
	}

	manager := NewManagerWithPersistence(fp)
	sess, err := manager.Create("warm", configs.GetDefault())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	sess.Rover.Land(engine.Coordinates{X: 1, Y: 1}, engine.West)
	if err := manager.Save("warm"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// A fresh manager backed by the same directory picks the session up
	// from disk.
	cold := NewManagerWithPersistence(fp)
	restored, err := cold.Get("warm")
	if err != nil {
		t.Fatalf("Get from persistence failed: %v", err)
	}
	if got := restored.Rover.String(); got != "(1, 1) WEST" {
		t.Errorf("restored rover = %q, want %q", got, "(1, 1) WEST")
	}

	// LoadPersistedSessions is a no-op for sessions already in memory.
	if err := cold.LoadPersistedSessions(); err != nil {
		t.Fatalf("LoadPersistedSessions failed: %v", err)
	}
	if cold.Count() != 1 {
		t.Errorf("Count = %d, want 1", cold.Count())
	}

	// Delete removes both the in-memory and the on-disk copy.
	if err := cold.Delete("warm"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if fp.Exists("warm") {
		t.Error("session file survived Delete")
	}
}
