package graph

import (
	"log/slog"
	"os"
	"strings"
)

var graphLogLevel = func() slog.Level {
	switch strings.ToLower(os.Getenv("SCROLL_GRAPH_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}()

var graphLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: graphLogLevel}))
