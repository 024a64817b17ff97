package main

import (
	"log/slog"
	"os"

	"github.com/lite-lake/mijnhost-dns/internal/infrastructure/logger"
	"github.com/lite-lake/mijnhost-dns/internal/interfaces/cli"
)

func main() {
	logLevel := slog.LevelWarn
	if os.Getenv("MIJNHOST_DEBUG") != "" {
		logLevel = slog.LevelDebug
	}

	logFormat := os.Getenv("MIJNHOST_LOG_FORMAT")

	logger.Init(&logger.Config{
		Level:     logLevel,
		Format:    logFormat,
		AddSource: os.Getenv("MIJNHOST_DEBUG") != "",
	})

	cli.Execute()
}
