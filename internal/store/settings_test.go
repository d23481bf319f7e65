package store

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"watchboard/internal/models"
	"watchboard/internal/testutil"
)

func TestSettingsStore_DefaultsWhenMissing(t *testing.T) {
	s := NewSettingsStore(filepath.Join(t.TempDir(), "settings.json"))
	got := s.Load()
	if got.RefreshInterval != models.DefaultRefreshInterval {
		t.Errorf("expected default interval, got %d", got.RefreshInterval)
	}
	if got.TagColors == nil || len(got.TagColors) != 0 {
		t.Errorf("expected empty tag colors, got %v", got.TagColors)
	}
}

func TestSettingsStore_DefaultsWhenCorrupt(t *testing.T) {
	path := testutil.WriteFile(t, "settings.json", `{oops`)
	got := NewSettingsStore(path).Load()
	if got.RefreshInterval != models.DefaultRefreshInterval {
		t.Errorf("expected default interval, got %d", got.RefreshInterval)
	}
}

func TestSettingsStore_PartialFile(t *testing.T) {
	path := testutil.WriteFile(t, "settings.json", `{"tag_colors": {"ai": "#ff0000"}}`)
	got := NewSettingsStore(path).Load()
	if got.RefreshInterval != models.DefaultRefreshInterval {
		t.Errorf("missing interval should default, got %d", got.RefreshInterval)
	}
	if got.TagColors["ai"] != "#ff0000" {
		t.Errorf("expected ai color, got %v", got.TagColors)
	}
}

func TestSettingsStore_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s := NewSettingsStore(path)

	settings := s.Load()
	settings.RefreshInterval = 0
	settings.TagColors["etf"] = "#00ff00"
	s.Save(settings)

	var onDisk map[string]interface{}
	if err := json.Unmarshal([]byte(testutil.ReadFile(t, path)), &onDisk); err != nil {
		t.Fatalf("settings file should be JSON: %v", err)
	}
	if onDisk["refresh_interval"] != float64(0) {
		t.Errorf("expected refresh_interval 0 on disk, got %v", onDisk["refresh_interval"])
	}

	reloaded := NewSettingsStore(path).Load()
	if reloaded.RefreshInterval != 0 || reloaded.TagColors["etf"] != "#00ff00" {
		t.Errorf("unexpected reloaded settings %+v", reloaded)
	}
}

func TestSettingsStore_SaveFailureKeepsMemoryCopy(t *testing.T) {
	s := NewSettingsStore(filepath.Join(t.TempDir(), "missing-dir", "settings.json"))
	settings := s.Load()
	settings.RefreshInterval = 300
	s.Save(settings)

	if got := s.Load(); got.RefreshInterval != 300 {
		t.Errorf("expected in-memory interval 300, got %d", got.RefreshInterval)
	}
}

func TestSettingsStore_LoadReturnsCopy(t *testing.T) {
	s := NewSettingsStore(filepath.Join(t.TempDir(), "settings.json"))
	first := s.Load()
	first.TagColors["leak"] = "#000"
	if _, ok := s.Load().TagColors["leak"]; ok {
		t.Error("mutating a loaded copy should not change the store")
	}
}
