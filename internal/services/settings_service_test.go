package services

import (
	"path/filepath"
	"testing"

	"watchboard/internal/models"
	"watchboard/internal/store"
	"watchboard/internal/testutil"
)

func TestSettingsService_Get(t *testing.T) {
	svc := newTestSettings(t)
	got := svc.Get()
	if got.RefreshInterval != models.DefaultRefreshInterval || len(got.TagColors) != 0 {
		t.Errorf("expected defaults, got %+v", got)
	}
}

func TestSettingsService_Update(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	svc := NewSettingsService(store.NewSettingsStore(path))

	t.Run("refresh_interval", func(t *testing.T) {
		interval := 300
		got, err := svc.Update(&interval, nil)
		testutil.AssertNoError(t, err)
		if got.RefreshInterval != 300 {
			t.Errorf("expected 300, got %d", got.RefreshInterval)
		}
	})

	t.Run("invalid_interval", func(t *testing.T) {
		interval := 45
		_, err := svc.Update(&interval, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		if svc.Get().RefreshInterval != 300 {
			t.Error("invalid update should not change settings")
		}
	})

	t.Run("tag_colors_replaced", func(t *testing.T) {
		got, err := svc.Update(nil, map[string]string{"ai": "#ff0000"})
		testutil.AssertNoError(t, err)
		if got.TagColors["ai"] != "#ff0000" || got.RefreshInterval != 300 {
			t.Errorf("unexpected settings %+v", got)
		}
	})

	t.Run("invalid_color", func(t *testing.T) {
		_, err := svc.Update(nil, map[string]string{"ai": "red"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("persisted", func(t *testing.T) {
		reloaded := NewSettingsService(store.NewSettingsStore(path)).Get()
		if reloaded.RefreshInterval != 300 || reloaded.TagColors["ai"] != "#ff0000" {
			t.Errorf("settings not persisted: %+v", reloaded)
		}
	})
}

func TestSettingsService_SetTagColor(t *testing.T) {
	svc := newTestSettings(t)

	got, err := svc.SetTagColor(" semis ", "#0f0")
	testutil.AssertNoError(t, err)
	if got.TagColors["semis"] != "#0f0" {
		t.Errorf("expected colour set, got %+v", got.TagColors)
	}

	got, err = svc.SetTagColor("semis", "")
	testutil.AssertNoError(t, err)
	if _, ok := got.TagColors["semis"]; ok {
		t.Error("expected empty colour to reset the tag")
	}

	_, err = svc.SetTagColor("", "#fff")
	testutil.AssertAppError(t, err, "INVALID_INPUT")
	_, err = svc.SetTagColor("semis", "hsl(1, 60%, 25%)")
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}
