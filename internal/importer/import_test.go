package importer

import (
	"aggregat4/gonewtab/internal/bookmarks"
	"aggregat4/gonewtab/internal/repository"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestdata(t *testing.T, name string) *os.File {
	file, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })
	return file
}

func TestParseNetscape(t *testing.T) {
	folders, err := ParseNetscape(openTestdata(t, "bookmarks.html"), DefaultFolderName)
	require.NoError(t, err)

	require.Len(t, folders, 3)

	assert.Equal(t, "Work", folders[0].Name)
	require.Len(t, folders[0].Entries, 3)
	assert.Equal(t, bookmarks.Entry{Title: "Go documentation", URL: "https://go.dev/doc/"}, folders[0].Entries[0])
	assert.Equal(t, "HTTP Semantics", folders[0].Entries[1].Title)
	assert.Equal(t, "CI", folders[0].Entries[2].Title)

	assert.Equal(t, "Reading", folders[1].Name)
	require.Len(t, folders[1].Entries, 1)
	assert.Equal(t, "Tom & Jerry's blog", folders[1].Entries[0].Title)

	// loose links land in the default folder, links without href are dropped
	assert.Equal(t, DefaultFolderName, folders[2].Name)
	require.Len(t, folders[2].Entries, 1)
	assert.Equal(t, "https://news.test/", folders[2].Entries[0].URL)
}

func TestParseNetscapeWithoutFolders(t *testing.T) {
	folders, err := ParseNetscape(strings.NewReader(`<DL><p><DT><A HREF="https://a.test">A</A><DT><A HREF="https://b.test">B</A></DL>`), "Loose")
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, "Loose", folders[0].Name)
	assert.Len(t, folders[0].Entries, 2)
}

func TestParsePinboard(t *testing.T) {
	folders, err := ParsePinboard(openTestdata(t, "pinboard.json"), "Pinboard")
	require.NoError(t, err)

	require.Len(t, folders, 3)
	assert.Equal(t, "golang", folders[0].Name)
	require.Len(t, folders[0].Entries, 2)
	assert.Equal(t, "The Go Programming Language", folders[0].Entries[0].Title)
	assert.Equal(t, "https://pkg.go.dev/", folders[0].Entries[1].URL)

	assert.Equal(t, "databases", folders[1].Name)
	assert.Equal(t, "SQL As Understood By SQLite", folders[1].Entries[0].Title)

	assert.Equal(t, "Pinboard", folders[2].Name)
	assert.Equal(t, "https://untagged.test/", folders[2].Entries[0].URL)
}

func TestParsePinboardMalformed(t *testing.T) {
	_, err := ParsePinboard(strings.NewReader(`{"href": `), DefaultFolderName)
	assert.Error(t, err)
}

func TestParseUnknownFormat(t *testing.T) {
	_, err := Parse(strings.NewReader(""), Format("xml"), "")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParseUsesDefaultFolderName(t *testing.T) {
	folders, err := Parse(strings.NewReader(`[{"href": "https://a.test", "description": "A", "tags": ""}]`), FormatPinboard, " ")
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, DefaultFolderName, folders[0].Name)
}

func TestFormatFromFilename(t *testing.T) {
	format, err := FormatFromFilename("/home/me/pinboard.JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatPinboard, format)

	format, err = FormatFromFilename("bookmarks_2024.htm")
	require.NoError(t, err)
	assert.Equal(t, FormatNetscape, format)

	_, err = FormatFromFilename("bookmarks.csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestImportFile(t *testing.T) {
	store := bookmarks.Load(repository.NewMemoryStore(), nil)

	summary, err := ImportFile(store, filepath.Join("testdata", "bookmarks.html"), "", "")
	require.NoError(t, err)
	assert.Equal(t, Summary{Folders: 3, Bookmarks: 5}, summary)

	folders := store.Folders()
	require.Len(t, folders, 3)
	assert.Equal(t, "Work", folders[0].Name)
	assert.True(t, folders[0].Bookmarks[1].IsPdf)
	assert.Equal(t, "https://go.dev/favicon.ico", folders[0].Bookmarks[0].Favicon)
}

func TestImportSkipsEmptyFolders(t *testing.T) {
	store := bookmarks.Load(repository.NewMemoryStore(), nil)

	summary, err := Import(store, []Folder{{Name: "Nothing"}, {Name: "Something", Entries: []bookmarks.Entry{{Title: "a", URL: "https://a.test"}}}})
	require.NoError(t, err)
	assert.Equal(t, Summary{Folders: 1, Bookmarks: 1}, summary)
	assert.Len(t, store.Folders(), 1)
}

func TestImportStopsOnPersistFailure(t *testing.T) {
	kv := repository.NewMemoryStore()
	store := bookmarks.Load(kv, nil)
	kv.FailWrites = assert.AnError

	_, err := ImportFile(store, filepath.Join("testdata", "pinboard.json"), FormatPinboard, "")
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, store.Folders())
}

func TestImportMissingFile(t *testing.T) {
	store := bookmarks.Load(repository.NewMemoryStore(), nil)
	_, err := ImportFile(store, filepath.Join(t.TempDir(), "missing.json"), "", "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestImportWhileServerHoldsDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "newtab.sqlite")
	var serverDb, importerDb repository.Store
	require.NoError(t, serverDb.InitAndVerifyDb(dbPath))
	defer serverDb.Close()
	require.NoError(t, importerDb.InitAndVerifyDb(dbPath))
	defer importerDb.Close()

	server := bookmarks.Load(&serverDb, nil)

	summary, err := ImportFile(bookmarks.Load(&importerDb, nil), filepath.Join("testdata", "bookmarks.html"), "", "")
	require.NoError(t, err)
	require.Equal(t, 3, summary.Folders)

	_, err = server.CreateFolder("Work")
	require.NoError(t, err)

	onDisk := bookmarks.Load(&importerDb, nil).Folders()
	require.Len(t, onDisk, 4)
	assert.Equal(t, "Work", onDisk[0].Name)
	assert.Len(t, onDisk[0].Bookmarks, 3)
	assert.Equal(t, "Work", onDisk[3].Name)
	assert.Empty(t, onDisk[3].Bookmarks)
	assert.Len(t, server.Folders(), 4)
}
