// Package importer turns exported bookmark files into bookmark folders.
package importer

import (
	"aggregat4/gonewtab/internal/bookmarks"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

type Format string

const (
	FormatPinboard Format = "json"
	FormatNetscape Format = "html"
)

// DefaultFolderName receives bookmarks that have no folder of their own in the import file.
const DefaultFolderName = "Imported"

var ErrUnknownFormat = errors.New("unknown import format")

// Folder is one parsed folder, ready to be created in the bookmark store.
type Folder struct {
	Name    string
	Entries []bookmarks.Entry
}

type Summary struct {
	Folders   int
	Bookmarks int
}

type PinboardBookmark []struct {
	Href        string    `json:"href"`
	Description string    `json:"description"`
	Extended    string    `json:"extended"`
	Meta        string    `json:"meta"`
	Hash        string    `json:"hash"`
	Time        time.Time `json:"time"`
	Shared      string    `json:"shared"`
	Toread      string    `json:"toread"`
	Tags        string    `json:"tags"`
}

var textPolicy = bluemonday.StrictPolicy()

// cleanText strips any markup from s and returns plain, unescaped text.
func cleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

// FormatFromFilename guesses the import format from the file extension.
func FormatFromFilename(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return FormatPinboard, nil
	case ".html", ".htm":
		return FormatNetscape, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, filename)
}

// Parse reads an export in the given format. defaultFolder names the folder for bookmarks that
// are not in any folder; when empty DefaultFolderName is used.
func Parse(r io.Reader, format Format, defaultFolder string) ([]Folder, error) {
	if strings.TrimSpace(defaultFolder) == "" {
		defaultFolder = DefaultFolderName
	}
	switch format {
	case FormatPinboard:
		return ParsePinboard(r, defaultFolder)
	case FormatNetscape:
		return ParseNetscape(r, defaultFolder)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// ParsePinboard groups a Pinboard JSON export by the first tag of each bookmark. Untagged bookmarks
// go to defaultFolder. Folders keep the order in which their first bookmark appears.
func ParsePinboard(r io.Reader, defaultFolder string) ([]Folder, error) {
	var pinboardBookmarks = make(PinboardBookmark, 0)
	if err := json.NewDecoder(r).Decode(&pinboardBookmarks); err != nil {
		return nil, fmt.Errorf("decoding pinboard export: %w", err)
	}
	folders := newFolderList()
	for _, b := range pinboardBookmarks {
		name := defaultFolder
		if tags := strings.Fields(b.Tags); len(tags) > 0 {
			name = tags[0]
		}
		folders.add(name, bookmarks.Entry{
			Title: cleanText(b.Description),
			URL:   strings.TrimSpace(b.Href),
		})
	}
	return folders.result(), nil
}

// Import creates one bookmark folder per parsed folder. Folders without bookmarks are skipped.
func Import(store *bookmarks.Store, folders []Folder) (Summary, error) {
	var summary Summary
	for _, f := range folders {
		if len(f.Entries) == 0 {
			continue
		}
		created, err := store.CreateFolderWithBookmarks(f.Name, f.Entries)
		if err != nil {
			return summary, fmt.Errorf("importing folder %q: %w", f.Name, err)
		}
		summary.Folders++
		summary.Bookmarks += len(created.Bookmarks)
	}
	log.Println("Imported", summary.Bookmarks, "bookmarks into", summary.Folders, "folders")
	return summary, nil
}

// ImportFile parses importFile and imports it into store. An empty format is derived from the
// file extension.
func ImportFile(store *bookmarks.Store, importFile string, format Format, defaultFolder string) (Summary, error) {
	if format == "" {
		var err error
		if format, err = FormatFromFilename(importFile); err != nil {
			return Summary{}, err
		}
	}
	file, err := os.Open(importFile)
	if err != nil {
		return Summary{}, err
	}
	defer file.Close()
	folders, err := Parse(file, format, defaultFolder)
	if err != nil {
		return Summary{}, err
	}
	return Import(store, folders)
}

// folderList collects entries per folder name and remembers first-seen order.
type folderList struct {
	order []string
	byKey map[string]*Folder
}

func newFolderList() *folderList {
	return &folderList{byKey: map[string]*Folder{}}
}

func (l *folderList) add(name string, entry bookmarks.Entry) {
	if entry.URL == "" {
		return
	}
	f, ok := l.byKey[name]
	if !ok {
		f = &Folder{Name: name}
		l.byKey[name] = f
		l.order = append(l.order, name)
	}
	f.Entries = append(f.Entries, entry)
}

func (l *folderList) result() []Folder {
	folders := make([]Folder, 0, len(l.order))
	for _, name := range l.order {
		folders = append(folders, *l.byKey[name])
	}
	return folders
}
