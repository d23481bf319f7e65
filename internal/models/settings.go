package models

import "regexp"

// DefaultRefreshInterval is the auto-refresh interval in seconds used when no
// settings file exists.
const DefaultRefreshInterval = 60

// RefreshIntervals are the accepted auto-refresh intervals in seconds; 0
// disables auto refresh.
var RefreshIntervals = []int{0, 30, 60, 300}

// Settings is the persisted dashboard preference document (settings.json).
type Settings struct {
	RefreshInterval int               `json:"refresh_interval"`
	TagColors       map[string]string `json:"tag_colors"`
}

// DefaultSettings returns the settings used when none are stored.
func DefaultSettings() Settings {
	return Settings{
		RefreshInterval: DefaultRefreshInterval,
		TagColors:       map[string]string{},
	}
}

// ValidRefreshInterval reports whether seconds is one of RefreshIntervals.
func ValidRefreshInterval(seconds int) bool {
	for _, v := range RefreshIntervals {
		if v == seconds {
			return true
		}
	}
	return false
}

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidHexColor reports whether color is a #rgb or #rrggbb colour.
func ValidHexColor(color string) bool {
	return hexColorRe.MatchString(color)
}
