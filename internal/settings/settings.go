// Package settings holds the user preferences of the new tab page.
package settings

import (
	"aggregat4/gonewtab/internal/domain"
	"aggregat4/gonewtab/internal/repository"
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"sync"
)

// DefaultSettings returns the settings used when nothing (or nothing readable) is persisted.
func DefaultSettings() domain.Settings {
	return domain.Settings{
		Name:               "User",
		WelcomeMessage:     nil,
		SelectedWallpaper:  domain.WallpaperDefault,
		CustomWallpaperURL: "",
		ShowClock:          true,
		Use24HourFormat:    false,
		ShowDate:           true,
		ShowBookmarks:      true,
	}
}

type Store struct {
	mu       sync.Mutex
	kv       repository.KeyValueStore
	settings domain.Settings
}

// Load reads the persisted settings. It never fails: a missing record, a malformed record and a
// storage error all yield the defaults.
func Load(kv repository.KeyValueStore) *Store {
	return &Store{kv: kv, settings: read(kv)}
}

func read(kv repository.KeyValueStore) domain.Settings {
	raw, ok, err := kv.Get(repository.SettingsKey)
	if err != nil {
		log.Printf("Error reading settings, using defaults: %v", err)
		return DefaultSettings()
	}
	if !ok || raw == "" {
		return DefaultSettings()
	}
	// start from the defaults so fields missing from older records keep a sane value
	settings := DefaultSettings()
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		log.Printf("Ignoring malformed settings record: %v", err)
		return DefaultSettings()
	}
	return settings
}

func (s *Store) Current() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySettings(s.settings)
}

// Update merges the given fields into the current settings, persists the result and returns it.
// Keys are the JSON field names of domain.Settings. Values of the wrong type and unknown
// wallpaper names are skipped, a nil welcomeMessage clears the message. When persisting fails the current settings are kept.
func (s *Store) Update(data map[string]any) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := merge(copySettings(s.settings), data)
	raw, err := json.Marshal(updated)
	if err != nil {
		return copySettings(s.settings), fmt.Errorf("encoding settings: %w", err)
	}
	if err := s.kv.Set(repository.SettingsKey, string(raw)); err != nil {
		return copySettings(s.settings), fmt.Errorf("persisting settings: %w", err)
	}
	s.settings = updated
	return copySettings(updated), nil
}

func merge(current domain.Settings, data map[string]any) domain.Settings {
	if val, ok := data["name"]; ok {
		if name, ok := val.(string); ok {
			current.Name = name
		}
	}

	if val, ok := data["welcomeMessage"]; ok {
		switch message := val.(type) {
		case nil:
			current.WelcomeMessage = nil
		case string:
			current.WelcomeMessage = &message
		case *string:
			if message == nil {
				current.WelcomeMessage = nil
			} else {
				m := *message
				current.WelcomeMessage = &m
			}
		}
	}

	if val, ok := data["selectedWallpaper"]; ok {
		var wallpaper domain.Wallpaper
		switch w := val.(type) {
		case string:
			wallpaper = domain.Wallpaper(w)
		case domain.Wallpaper:
			wallpaper = w
		}
		// unknown names are skipped like values of the wrong type
		if slices.Contains(domain.Wallpapers, wallpaper) {
			current.SelectedWallpaper = wallpaper
		}
	}

	if val, ok := data["customWallpaperUrl"]; ok {
		if url, ok := val.(string); ok {
			current.CustomWallpaperURL = url
		}
	}

	if val, ok := data["showClock"]; ok {
		if show, ok := val.(bool); ok {
			current.ShowClock = show
		}
	}

	if val, ok := data["use24HourFormat"]; ok {
		if use24, ok := val.(bool); ok {
			current.Use24HourFormat = use24
		}
	}

	if val, ok := data["showDate"]; ok {
		if show, ok := val.(bool); ok {
			current.ShowDate = show
		}
	}

	if val, ok := data["showBookmarks"]; ok {
		if show, ok := val.(bool); ok {
			current.ShowBookmarks = show
		}
	}

	return current
}

// copySettings detaches the welcome message pointer so callers cannot mutate store state.
func copySettings(settings domain.Settings) domain.Settings {
	if settings.WelcomeMessage != nil {
		message := *settings.WelcomeMessage
		settings.WelcomeMessage = &message
	}
	return settings
}
