package main

import (
	"learnhub_backend/internal/app"
	"learnhub_backend/internal/logger"
)

func main() {
	if err := app.Run(); err != nil {
		logger.Fatal("application failed to start", "error", err.Error())
	}
}
