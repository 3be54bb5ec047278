// Package logging provides diagnostics logging for kintrack components.
// Logs are written to a session-specific file under ~/.kintrack/logs/ so
// they never interleave with the terminal UI.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global session ID for the current execution
	sessionID     string
	sessionIDOnce sync.Once

	// logDir is the directory where log files are stored
	logDir string

	// initOnce ensures directory initialization happens once
	initOnce sync.Once
	initErr  error
)

// getSessionID returns or creates the session ID for this execution.
func getSessionID() string {
	sessionIDOnce.Do(func() {
		sessionID = uuid.New().String()
	})
	return sessionID
}

// initLogDirectory ensures the log directory exists.
func initLogDirectory() error {
	initOnce.Do(func() {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			initErr = fmt.Errorf("failed to get home directory: %w", err)
			return
		}

		logDir = filepath.Join(homeDir, ".kintrack", "logs")
		if err := os.MkdirAll(logDir, 0750); err != nil {
			initErr = fmt.Errorf("failed to create log directory: %w", err)
			return
		}
	})
	return initErr
}

// NewLogger creates a logger for a specific component, writing to
// ~/.kintrack/logs/<session-id>-kintrack.log. If the file cannot be opened
// the returned logger discards everything along with the error, so callers
// can always log unconditionally.
func NewLogger(component string) (*zap.Logger, error) {
	if err := initLogDirectory(); err != nil {
		return zap.NewNop(), err
	}

	logPath := filepath.Join(logDir, fmt.Sprintf("%s-kintrack.log", getSessionID()))

	// Append mode: multiple components share the session file
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return zap.NewNop(), fmt.Errorf("failed to open log file: %w", err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(file),
		zapcore.DebugLevel,
	)

	return zap.New(core).Named(component).With(
		zap.String("session", getSessionID()),
	), nil
}
