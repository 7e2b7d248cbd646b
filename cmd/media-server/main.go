package main

import (
	"context"
	"log"
	"net/http"

	"guestbook/internal/config"
	"guestbook/internal/dbmongo"
	"guestbook/internal/media"
)

func main() {
	cfg := config.LoadConfig()

	mongoClient, err := dbmongo.NewMongoConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Close(context.Background())

	storage := dbmongo.NewMediaStorage(mongoClient, cfg.Server.MediaBaseURL)
	mediaServer := media.NewHTTPServer(storage)

	log.Printf("🚀 Media HTTP Server starting on port %s", cfg.Server.MediaPort)
	log.Printf("📂 Serving files at: %s/{path}", cfg.Server.MediaBaseURL)

	if err := http.ListenAndServe(":"+cfg.Server.MediaPort, mediaServer); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
