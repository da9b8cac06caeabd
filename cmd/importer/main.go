package main

import (
	"aggregat4/gonewtab/internal/bookmarks"
	"aggregat4/gonewtab/internal/importer"
	"aggregat4/gonewtab/internal/repository"
	"flag"
	"log"
	"strings"

	"github.com/aggregat4/go-baselib/env"
	"github.com/joho/godotenv"
)

func main() {
	// the database location follows the server configuration unless given explicitly
	_ = godotenv.Load()

	var importFile string
	flag.StringVar(&importFile, "importFile", "", "A bookmarks.html or Pinboard JSON file to import in the database")
	var format string
	flag.StringVar(&format, "format", "", "The format of the import file, 'html' or 'json'. Derived from the file extension when empty")
	var folder string
	flag.StringVar(&folder, "folder", importer.DefaultFolderName, "The folder for bookmarks that are not in any folder")
	var dbFilename string
	flag.StringVar(&dbFilename, "db", env.GetStringFromEnv("NEWTAB_DB_FILENAME", "newtab.sqlite"), "The sqlite database to import into")

	flag.Parse()

	if strings.TrimSpace(importFile) == "" {
		log.Fatalf("require importFile parameter when importing")
	}
	var store repository.Store
	if err := store.InitAndVerifyDb(dbFilename); err != nil {
		log.Fatalf("Error opening database %s: %s", dbFilename, err)
	}
	defer store.Close()

	summary, err := importer.ImportFile(bookmarks.Load(&store, nil), importFile, importer.Format(format), folder)
	if err != nil {
		log.Fatalf("Error importing bookmarks: %s", err)
	}
	log.Printf("Imported %d bookmarks into %d folders from %s", summary.Bookmarks, summary.Folders, importFile)
}
