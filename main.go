package main

import (
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/gianmaria/reddit-image-downloader/cmd"
)

func main() {
	// API credentials (IMGUR_CLIENT_ID) live in a local .env file; absence
	// only degrades imgur posts, so a missing file is fine.
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found")
	}

	cmd.Execute()
}
