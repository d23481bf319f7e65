package store

import (
	"encoding/json"
	"os"
	"sync"

	"watchboard/internal/logger"
	"watchboard/internal/models"
)

// SettingsStore keeps settings.json. The first Load reads the file and later
// calls are served from memory; I/O failures fall back to defaults and are
// only logged.
type SettingsStore struct {
	path   string
	mu     sync.Mutex
	cached *models.Settings
}

// NewSettingsStore creates a SettingsStore backed by path.
func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path}
}

// settingsFile mirrors settings.json with optional fields so that missing
// keys fall back to defaults.
type settingsFile struct {
	RefreshInterval *int              `json:"refresh_interval"`
	TagColors       map[string]string `json:"tag_colors"`
}

// Load returns the current settings.
func (s *SettingsStore) Load() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached == nil {
		loaded := s.read()
		s.cached = &loaded
	}
	return copySettings(*s.cached)
}

// Save replaces the settings. The in-memory copy is updated even when the
// file cannot be written.
func (s *SettingsStore) Save(settings models.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings = copySettings(settings)
	s.cached = &settings

	raw, err := json.Marshal(settings)
	if err != nil {
		logger.Get().Warnw("encoding settings failed", "error", err)
		return
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		logger.Get().Warnw("writing settings file failed", "path", s.path, "error", err)
	}
}

func (s *SettingsStore) read() models.Settings {
	settings := models.DefaultSettings()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return settings
	}
	var f settingsFile
	if err := json.Unmarshal(raw, &f); err != nil {
		logger.Get().Debugw("settings file unreadable, using defaults", "path", s.path, "error", err)
		return settings
	}
	if f.RefreshInterval != nil {
		settings.RefreshInterval = *f.RefreshInterval
	}
	for tag, color := range f.TagColors {
		settings.TagColors[tag] = color
	}
	return settings
}

func copySettings(in models.Settings) models.Settings {
	out := models.Settings{
		RefreshInterval: in.RefreshInterval,
		TagColors:       make(map[string]string, len(in.TagColors)),
	}
	for k, v := range in.TagColors {
		out.TagColors[k] = v
	}
	return out
}
