package main

import (
	"aggregat4/gonewtab/internal/bookmarks"
	"aggregat4/gonewtab/internal/domain"
	"aggregat4/gonewtab/internal/pdfsession"
	"aggregat4/gonewtab/internal/repository"
	"aggregat4/gonewtab/internal/server"
	"aggregat4/gonewtab/internal/settings"
	"log"

	"github.com/aggregat4/go-baselib/env"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("No .env file loaded, using the environment only: %s", err)
	}
	// Get and init config
	config := domain.Configuration{
		DatabaseFilename:          env.GetStringFromEnv("NEWTAB_DB_FILENAME", "newtab.sqlite"),
		ServerPort:                env.GetIntFromEnv("NEWTAB_SERVER_PORT", 1323),
		ServerReadTimeoutSeconds:  env.GetIntFromEnv("NEWTAB_SERVER_READ_TIMEOUT_SECONDS", 5),
		ServerWriteTimeoutSeconds: env.GetIntFromEnv("NEWTAB_SERVER_WRITE_TIMEOUT_SECONDS", 10),
		SessionCookieSecretKey:    env.GetStringFromEnv("NEWTAB_SESSION_COOKIE_SECRET_KEY", uuid.New().String()),
		SearchUrl:                 env.GetStringFromEnv("NEWTAB_SEARCH_URL", "https://www.google.com/search"),
		BaseUrl:                   env.GetStringFromEnv("NEWTAB_BASE_URL", "http://localhost:1323"),
		MaxUploadSizeBytes:        env.GetIntFromEnv("NEWTAB_MAX_UPLOAD_SIZE_BYTES", 2*1024*1024),
	}
	var store repository.Store
	err = store.InitAndVerifyDb(config.DatabaseFilename)
	if err != nil {
		panic(err)
	}
	defer store.Close()
	// Start the server
	server.RunServer(server.Controller{
		Store:     &store,
		Settings:  settings.Load(&store),
		Bookmarks: bookmarks.Load(&store, bookmarks.PlaceholderScanner{}),
		Pdf:       pdfsession.New(),
		Config:    config,
	})
}
