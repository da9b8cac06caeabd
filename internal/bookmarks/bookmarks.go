// Package bookmarks keeps the ordered bookmark folders of the new tab page and persists them as
// one snapshot after every change.
package bookmarks

import (
	"aggregat4/gonewtab/internal/domain"
	"aggregat4/gonewtab/internal/repository"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Store struct {
	mu      sync.Mutex
	kv      repository.KeyValueStore
	scanner Scanner
	folders []domain.BookmarkFolder
	// raw is the persisted record folders was decoded from or last written as.
	raw string
}

// Entry is a bookmark to be created together with its folder.
type Entry struct {
	Title   string
	URL     string
	Favicon string
}

// Load reads the persisted folders. A missing or malformed record, or a storage read error, yields
// an empty collection. A nil scanner means PlaceholderScanner.
func Load(kv repository.KeyValueStore, scanner Scanner) *Store {
	if scanner == nil {
		scanner = PlaceholderScanner{}
	}
	s := &Store{kv: kv, scanner: scanner, folders: []domain.BookmarkFolder{}}
	raw, _, err := kv.Get(repository.BookmarksKey)
	if err != nil {
		log.Printf("Error reading bookmarks, starting empty: %v", err)
		return s
	}
	s.raw = raw
	s.folders = decode(raw)
	return s
}

// refresh picks up a record written through another handle on the same database, such as the
// command line importer, so the next copy-on-write starts from what is on disk. A read error keeps
// the state in memory. Callers hold s.mu.
func (s *Store) refresh() {
	raw, _, err := s.kv.Get(repository.BookmarksKey)
	if err != nil {
		log.Printf("Error re-reading bookmarks, keeping current state: %v", err)
		return
	}
	if raw == s.raw {
		return
	}
	s.raw = raw
	s.folders = decode(raw)
}

func decode(raw string) []domain.BookmarkFolder {
	if raw == "" {
		return []domain.BookmarkFolder{}
	}
	var folders []domain.BookmarkFolder
	if err := json.Unmarshal([]byte(raw), &folders); err != nil {
		log.Printf("Ignoring malformed bookmarks record: %v", err)
		return []domain.BookmarkFolder{}
	}
	for i := range folders {
		if folders[i].Bookmarks == nil {
			folders[i].Bookmarks = []domain.Bookmark{}
		}
	}
	if folders == nil {
		folders = []domain.BookmarkFolder{}
	}
	return folders
}

// Folders returns a copy of all folders in display order.
func (s *Store) Folders() []domain.BookmarkFolder {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh()
	return copyFolders(s.folders)
}

func (s *Store) FindFolder(folderId string) (domain.BookmarkFolder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh()
	i := indexOfFolder(s.folders, folderId)
	if i < 0 {
		return domain.BookmarkFolder{}, false
	}
	return copyFolder(s.folders[i]), true
}

// CreateFolder appends a new empty folder. A blank name is rejected with ErrInvalidInput.
func (s *Store) CreateFolder(name string) (domain.BookmarkFolder, error) {
	return s.CreateFolderWithBookmarks(name, nil)
}

// CreateFolderWithBookmarks appends a new folder already holding one bookmark per entry and
// persists once. Entries without a URL are skipped, entries without a title use the URL as title.
func (s *Store) CreateFolderWithBookmarks(name string, entries []Entry) (domain.BookmarkFolder, error) {
	if isBlank(name) {
		return domain.BookmarkFolder{}, newValidationError("create folder", "name")
	}
	folder := domain.BookmarkFolder{
		ID:        newId("folder"),
		Name:      name,
		Bookmarks: make([]domain.Bookmark, 0, len(entries)),
		DateAdded: now(),
	}
	for _, e := range entries {
		if isBlank(e.URL) {
			continue
		}
		title := e.Title
		if isBlank(title) {
			title = e.URL
		}
		folder.Bookmarks = append(folder.Bookmarks, newBookmark(title, e.URL, folder.ID, e.Favicon))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh()
	if err := s.replace(append(copyFolders(s.folders), folder)); err != nil {
		return domain.BookmarkFolder{}, err
	}
	return copyFolder(folder), nil
}

// AddBookmark appends a bookmark to the end of the folder with folderId. Blank title, url or
// folderId yield ErrInvalidInput, an unknown folder ErrFolderNotFound; in both cases nothing
// changes. Without an explicit favicon one is derived from the URL unless the bookmark is a PDF.
func (s *Store) AddBookmark(title, url, folderId, favicon string) (domain.Bookmark, error) {
	switch {
	case isBlank(title):
		return domain.Bookmark{}, newValidationError("add bookmark", "title")
	case isBlank(url):
		return domain.Bookmark{}, newValidationError("add bookmark", "url")
	case isBlank(folderId):
		return domain.Bookmark{}, newValidationError("add bookmark", "folder")
	}
	bookmark := newBookmark(title, url, folderId, favicon)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh()
	i := indexOfFolder(s.folders, folderId)
	if i < 0 {
		return domain.Bookmark{}, fmt.Errorf("add bookmark to %q: %w", folderId, ErrFolderNotFound)
	}
	folders := copyFolders(s.folders)
	folders[i].Bookmarks = append(folders[i].Bookmarks, bookmark)
	if err := s.replace(folders); err != nil {
		return domain.Bookmark{}, err
	}
	return bookmark, nil
}

// RemoveBookmark deletes the bookmark with bookmarkId from whichever folder holds it. Unknown ids
// are ignored.
func (s *Store) RemoveBookmark(bookmarkId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh()
	folders := copyFolders(s.folders)
	found := false
	for i := range folders {
		kept := folders[i].Bookmarks[:0]
		for _, b := range folders[i].Bookmarks {
			if b.ID == bookmarkId {
				found = true
				continue
			}
			kept = append(kept, b)
		}
		folders[i].Bookmarks = kept
	}
	if !found {
		return nil
	}
	return s.replace(folders)
}

// RemoveFolder deletes a folder together with its bookmarks. Unknown ids are ignored.
func (s *Store) RemoveFolder(folderId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh()
	i := indexOfFolder(s.folders, folderId)
	if i < 0 {
		return nil
	}
	folders := copyFolders(s.folders)
	return s.replace(append(folders[:i], folders[i+1:]...))
}

// ImportLocalFolder creates a folder flagged as local whose bookmarks are the PDF files the
// scanner reports for path. The scan runs before any state is touched, so a cancelled or failed
// scan leaves the folders unchanged.
func (s *Store) ImportLocalFolder(ctx context.Context, name, path string) (domain.BookmarkFolder, error) {
	if isBlank(name) {
		return domain.BookmarkFolder{}, newValidationError("import folder", "name")
	}
	if isBlank(path) {
		return domain.BookmarkFolder{}, newValidationError("import folder", "path")
	}
	files, err := s.scanner.Scan(ctx, path)
	if err != nil {
		return domain.BookmarkFolder{}, fmt.Errorf("scanning %s: %w", path, err)
	}

	folder := domain.BookmarkFolder{
		ID:            newId("folder"),
		Name:          name,
		Bookmarks:     make([]domain.Bookmark, 0, len(files)),
		DateAdded:     now(),
		IsLocalFolder: true,
		LocalPath:     path,
	}
	for _, file := range files {
		folder.Bookmarks = append(folder.Bookmarks, domain.Bookmark{
			ID:        newId("bookmark"),
			Title:     file.Name,
			URL:       file.Path,
			IsPdf:     true,
			LocalPath: file.Path,
			DateAdded: now(),
			FolderID:  folder.ID,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh()
	if err := s.replace(append(copyFolders(s.folders), folder)); err != nil {
		return domain.BookmarkFolder{}, err
	}
	log.Printf("Imported local folder %s with %d files", path, len(files))
	return copyFolder(folder), nil
}

// replace persists folders and only then makes them the current state. Callers hold s.mu.
func (s *Store) replace(folders []domain.BookmarkFolder) error {
	raw, err := json.Marshal(folders)
	if err != nil {
		return fmt.Errorf("encoding bookmarks: %w", err)
	}
	if err := s.kv.Set(repository.BookmarksKey, string(raw)); err != nil {
		return fmt.Errorf("persisting bookmarks: %w", err)
	}
	s.folders = folders
	s.raw = string(raw)
	return nil
}

func newBookmark(title, url, folderId, favicon string) domain.Bookmark {
	isPdf := IsPdf(url)
	if favicon == "" && !isPdf {
		favicon = Favicon(url)
	}
	return domain.Bookmark{
		ID:        newId("bookmark"),
		Title:     title,
		URL:       url,
		IsPdf:     isPdf,
		DateAdded: now(),
		FolderID:  folderId,
		Favicon:   favicon,
	}
}

func indexOfFolder(folders []domain.BookmarkFolder, folderId string) int {
	for i, f := range folders {
		if f.ID == folderId {
			return i
		}
	}
	return -1
}

func copyFolder(folder domain.BookmarkFolder) domain.BookmarkFolder {
	bookmarks := make([]domain.Bookmark, len(folder.Bookmarks))
	copy(bookmarks, folder.Bookmarks)
	folder.Bookmarks = bookmarks
	return folder
}

func copyFolders(folders []domain.BookmarkFolder) []domain.BookmarkFolder {
	result := make([]domain.BookmarkFolder, len(folders))
	for i, f := range folders {
		result[i] = copyFolder(f)
	}
	return result
}

func newId(prefix string) string {
	return prefix + "-" + uuid.New().String()
}

func now() time.Time {
	return time.Now().UTC()
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
