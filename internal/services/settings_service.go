package services

import (
	"fmt"
	"strings"

	apperrors "watchboard/internal/errors"
	"watchboard/internal/models"
)

// SettingsRepository persists the settings document.
type SettingsRepository interface {
	Load() models.Settings
	Save(settings models.Settings)
}

type settingsService struct {
	repo SettingsRepository
}

// NewSettingsService creates a new SettingsServicer.
func NewSettingsService(repo SettingsRepository) SettingsServicer {
	return &settingsService{repo: repo}
}

// Get returns the current settings.
func (s *settingsService) Get() models.Settings {
	return s.repo.Load()
}

// Update changes the refresh interval and, when tagColors is non-nil,
// replaces the custom tag colours. Nil arguments leave a field unchanged.
func (s *settingsService) Update(refreshInterval *int, tagColors map[string]string) (models.Settings, error) {
	settings := s.repo.Load()

	if refreshInterval != nil {
		if !models.ValidRefreshInterval(*refreshInterval) {
			return settings, apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("Refresh interval must be one of %v", models.RefreshIntervals))
		}
		settings.RefreshInterval = *refreshInterval
	}

	if tagColors != nil {
		colors := make(map[string]string, len(tagColors))
		for tag, color := range tagColors {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				return settings, apperrors.WithMessage(apperrors.ErrInvalidInput, "Tag name is required")
			}
			if !models.ValidHexColor(color) {
				return settings, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("Invalid colour %q for tag %q", color, tag))
			}
			colors[tag] = color
		}
		settings.TagColors = colors
	}

	s.repo.Save(settings)
	return settings, nil
}

// SetTagColor sets the custom colour of tag. An empty colour removes the
// custom colour so the generated one is used again.
func (s *settingsService) SetTagColor(tag, color string) (models.Settings, error) {
	settings := s.repo.Load()

	tag = strings.TrimSpace(tag)
	if tag == "" {
		return settings, apperrors.WithMessage(apperrors.ErrInvalidInput, "Tag name is required")
	}
	if color == "" {
		delete(settings.TagColors, tag)
	} else {
		if !models.ValidHexColor(color) {
			return settings, apperrors.WithMessage(apperrors.ErrInvalidInput, "Colour must be #rgb or #rrggbb")
		}
		settings.TagColors[tag] = color
	}

	s.repo.Save(settings)
	return settings, nil
}
