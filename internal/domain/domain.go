package domain

import (
	"time"
)

type Bookmark struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	IsPdf     bool      `json:"isPdf"`
	LocalPath string    `json:"localPath,omitempty"`
	DateAdded time.Time `json:"dateAdded"`
	FolderID  string    `json:"folderId"`
	Favicon   string    `json:"favicon,omitempty"`
}

type BookmarkFolder struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Bookmarks     []Bookmark `json:"bookmarks"`
	DateAdded     time.Time  `json:"dateAdded"`
	IsLocalFolder bool       `json:"isLocalFolder,omitempty"`
	LocalPath     string     `json:"localPath,omitempty"`
}

type Wallpaper string

const (
	WallpaperDefault   Wallpaper = "default"
	WallpaperMountains Wallpaper = "mountains"
	WallpaperOcean     Wallpaper = "ocean"
	WallpaperForest    Wallpaper = "forest"
	WallpaperAurora    Wallpaper = "aurora"
	// WallpaperCustom marks that CustomWallpaperURL holds the image to show
	WallpaperCustom Wallpaper = "custom"
)

var Wallpapers = []Wallpaper{WallpaperDefault, WallpaperMountains, WallpaperOcean, WallpaperForest, WallpaperAurora, WallpaperCustom}

type Settings struct {
	Name               string    `json:"name"`
	WelcomeMessage     *string   `json:"welcomeMessage"`
	SelectedWallpaper  Wallpaper `json:"selectedWallpaper"`
	CustomWallpaperURL string    `json:"customWallpaperUrl"`
	ShowClock          bool      `json:"showClock"`
	Use24HourFormat    bool      `json:"use24HourFormat"`
	ShowDate           bool      `json:"showDate"`
	ShowBookmarks      bool      `json:"showBookmarks"`
}

type Configuration struct {
	DatabaseFilename          string
	ServerPort                int
	ServerReadTimeoutSeconds  int
	ServerWriteTimeoutSeconds int
	SessionCookieSecretKey    string
	SearchUrl                 string
	BaseUrl                   string
	MaxUploadSizeBytes        int
}

// PageState is everything the new tab page renders from.
type PageState struct {
	Settings   Settings
	Folders    []BookmarkFolder
	CurrentPdf string
	PdfTitle   string
	Flashes    []string
	Now        time.Time
}
