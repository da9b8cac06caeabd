package settings

import (
	"aggregat4/gonewtab/internal/domain"
	"aggregat4/gonewtab/internal/repository"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutRecordReturnsDefaults(t *testing.T) {
	store := Load(repository.NewMemoryStore())

	settings := store.Current()
	assert.Equal(t, "User", settings.Name)
	assert.True(t, settings.ShowClock)
	assert.False(t, settings.Use24HourFormat)
	assert.True(t, settings.ShowDate)
	assert.True(t, settings.ShowBookmarks)
	assert.Nil(t, settings.WelcomeMessage)
	assert.Equal(t, domain.WallpaperDefault, settings.SelectedWallpaper)
	assert.Empty(t, settings.CustomWallpaperURL)
}

func TestLoadWithMalformedRecordReturnsDefaults(t *testing.T) {
	kv := repository.NewMemoryStore()
	require.NoError(t, kv.Set(repository.SettingsKey, "{not json"))

	assert.Equal(t, DefaultSettings(), Load(kv).Current())
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	kv := repository.NewMemoryStore()
	require.NoError(t, kv.Set(repository.SettingsKey, `{"name":"Grace","showClock":false}`))

	settings := Load(kv).Current()
	assert.Equal(t, "Grace", settings.Name)
	assert.False(t, settings.ShowClock)
	assert.True(t, settings.ShowBookmarks)
	assert.Equal(t, domain.WallpaperDefault, settings.SelectedWallpaper)
}

func TestUpdateIsShallowMerge(t *testing.T) {
	store := Load(repository.NewMemoryStore())

	updated, err := store.Update(map[string]any{"name": "Ada", "use24HourFormat": true})
	require.NoError(t, err)

	assert.Equal(t, "Ada", updated.Name)
	assert.True(t, updated.Use24HourFormat)
	// untouched fields keep their previous value
	assert.True(t, updated.ShowClock)
	assert.True(t, updated.ShowDate)
	assert.Equal(t, updated, store.Current())
}

func TestUpdateIgnoresWrongTypes(t *testing.T) {
	store := Load(repository.NewMemoryStore())

	updated, err := store.Update(map[string]any{"showClock": "yes", "name": 42, "unknown": true})
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), updated)
}

func TestUpdateWelcomeMessageSetAndClear(t *testing.T) {
	store := Load(repository.NewMemoryStore())

	updated, err := store.Update(map[string]any{"welcomeMessage": "Good morning"})
	require.NoError(t, err)
	require.NotNil(t, updated.WelcomeMessage)
	assert.Equal(t, "Good morning", *updated.WelcomeMessage)

	updated, err = store.Update(map[string]any{"welcomeMessage": nil})
	require.NoError(t, err)
	assert.Nil(t, updated.WelcomeMessage)
}

func TestCurrentReturnsDetachedCopy(t *testing.T) {
	store := Load(repository.NewMemoryStore())
	_, err := store.Update(map[string]any{"welcomeMessage": "hello"})
	require.NoError(t, err)

	settings := store.Current()
	*settings.WelcomeMessage = "changed"

	assert.Equal(t, "hello", *store.Current().WelcomeMessage)
}

func TestUpdateRoundTripsThroughPersistence(t *testing.T) {
	kv := repository.NewMemoryStore()
	store := Load(kv)

	updated, err := store.Update(map[string]any{
		"name":               "Linus",
		"welcomeMessage":     "Ship it",
		"selectedWallpaper":  "custom",
		"customWallpaperUrl": "https://img.test/bg.jpg",
		"showClock":          false,
		"use24HourFormat":    true,
		"showDate":           false,
		"showBookmarks":      false,
	})
	require.NoError(t, err)

	reloaded := Load(kv).Current()
	assert.Equal(t, updated, reloaded)
	assert.Equal(t, domain.WallpaperCustom, reloaded.SelectedWallpaper)
}

func TestUpdateKeepsStateWhenPersistFails(t *testing.T) {
	kv := repository.NewMemoryStore()
	store := Load(kv)
	kv.FailWrites = assert.AnError

	returned, err := store.Update(map[string]any{"name": "Nobody"})
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, "User", returned.Name)
	assert.Equal(t, "User", store.Current().Name)
}

func TestUpdateIgnoresUnknownWallpaper(t *testing.T) {
	store := Load(repository.NewMemoryStore())

	updated, err := store.Update(map[string]any{"selectedWallpaper": domain.WallpaperOcean})
	require.NoError(t, err)
	assert.Equal(t, domain.WallpaperOcean, updated.SelectedWallpaper)

	updated, err = store.Update(map[string]any{"selectedWallpaper": "volcano"})
	require.NoError(t, err)
	assert.Equal(t, domain.WallpaperOcean, updated.SelectedWallpaper)
}
