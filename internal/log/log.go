// Package log wires the process-wide slog default to a rotating debug log.
package log

import (
	"log/slog"
	"path/filepath"

	charmlog "github.com/charmbracelet/log/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup routes slog output to a rotating file under dataDir. The TUI owns
// stdout and stderr, so logs never go to the terminal.
func Setup(dataDir string, debug bool) {
	writer := &lumberjack.Logger{
		Filename:   filepath.Join(dataDir, "logs", "vista.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
		Compress:   true,
	}

	level := charmlog.InfoLevel
	if debug {
		level = charmlog.DebugLevel
	}
	logger := charmlog.NewWithOptions(writer, charmlog.Options{
		Level:           level,
		ReportTimestamp: true,
		ReportCaller:    debug,
	})
	slog.SetDefault(slog.New(logger))
}
