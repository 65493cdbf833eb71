// Package debug provides debug logging infrastructure for typeahead.
// Logging is only enabled when --debug flag is passed at startup.
// Logs are written to ~/.typeahead/debug.log, truncated on each launch.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"
)

const (
	// LogFileName is the name of the debug log file.
	LogFileName = "debug.log"
	// LogDirName is the name of the directory containing the log file.
	LogDirName = ".typeahead"
)

var (
	mu      sync.RWMutex
	enabled bool
	logger  *clog.Logger
	logFile *os.File
	level   = clog.DebugLevel

	// getLogPath is a function variable to allow overriding in tests.
	getLogPath = defaultGetLogPath
)

// Init initializes the debug logging system.
// If enable is false, all logging operations become no-ops.
// If enable is true, the log file is created/truncated at ~/.typeahead/debug.log.
func Init(enable bool) error {
	mu.Lock()
	defer mu.Unlock()

	enabled = enable
	if !enable {
		logger = clog.New(io.Discard)
		return nil
	}

	logPath, err := getLogPath()
	if err != nil {
		return fmt.Errorf("determine log path: %w", err)
	}

	dir := filepath.Dir(logPath)
	//nolint:gosec // G301: User config directory needs standard permissions
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	//nolint:gosec // G304: Log path is computed from user home, not user input
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logFile = f

	logger = clog.NewWithOptions(f, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05.000000",
		Formatter:       clog.LogfmtFormatter,
		Level:           level,
	})
	logger.Info("typeahead debug log started", "at", time.Now().Format(time.RFC3339))

	return nil
}

// SetLevel changes the minimum level recorded. Unknown names are rejected.
func SetLevel(name string) error {
	lvl, err := clog.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", name, err)
	}
	mu.Lock()
	defer mu.Unlock()
	level = lvl
	if logger != nil {
		logger.SetLevel(lvl)
	}
	return nil
}

// Close closes the debug log file if open.
// Safe to call even if logging is disabled.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// Log writes a debug message with optional key/value pairs.
func Log(msg string, keyvals ...any) {
	withLogger(func(l *clog.Logger) { l.Debug(msg, keyvals...) })
}

// Logf writes a formatted debug message if debug logging is enabled.
// Arguments are handled in the manner of fmt.Printf.
func Logf(format string, v ...any) {
	withLogger(func(l *clog.Logger) { l.Debugf(format, v...) })
}

// Warn records a condition worth noticing that did not fail anything.
func Warn(msg string, keyvals ...any) {
	withLogger(func(l *clog.Logger) { l.Warn(msg, keyvals...) })
}

// Error records a failure that was handled locally.
func Error(msg string, keyvals ...any) {
	withLogger(func(l *clog.Logger) { l.Error(msg, keyvals...) })
}

// Enabled returns whether debug logging is currently enabled.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

func withLogger(fn func(*clog.Logger)) {
	mu.RLock()
	defer mu.RUnlock()

	if !enabled || logger == nil {
		return
	}
	fn(logger)
}

// defaultGetLogPath returns the path to the debug log file.
func defaultGetLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, LogDirName, LogFileName), nil
}

// GetLogPath returns the path to the debug log file.
// Exported for use by other packages that need to know where logs are.
func GetLogPath() (string, error) {
	return getLogPath()
}
