// pkg/logging/logging.go - timestamped logging for the VSCode4z provisioning tools.
//
// Provides leveled console output plus a per-session log file under the
// workspace's logs directory (logs/YYYY-MM-DD-HHMMss/setup.log). The console
// keeps the interactive feel of the original scripts; the file keeps a full
// record of every run for later inspection.

package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogLevel represents the severity of the log message.
type LogLevel int

const (
	LevelError LogLevel = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// String returns the string representation of the LogLevel.
func (ll LogLevel) String() string {
	switch ll {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// Config holds the configurable options for the logger.
type Config struct {
	BaseDir       string   // base logging directory; empty disables the log file
	Level         LogLevel // maximum level written
	EnableConsole bool
}

// Logger writes leveled messages to the console and a session log file.
type Logger struct {
	mu       sync.Mutex
	logger   *log.Logger
	logLevel LogLevel
	logFile  *os.File
	console  bool
	logDir   string
}

// singleton instance and sync.Once for thread-safe initialization
var (
	instance *Logger
	once     sync.Once
)

// Init initializes the singleton Logger. It must be called before any of the
// package-level logging functions are used.
func Init(cfg Config) error {
	var initErr error
	once.Do(func() {
		instance, initErr = newLogger(cfg)
	})
	return initErr
}

func newLogger(cfg Config) (*Logger, error) {
	l := &Logger{
		logLevel: cfg.Level,
		console:  cfg.EnableConsole,
	}

	if cfg.BaseDir != "" {
		// Session directories are timestamped so consecutive runs never clobber
		// each other's logs.
		logDir := filepath.Join(cfg.BaseDir, time.Now().Format("2006-01-02-150405"))
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
		}
		f, err := os.OpenFile(filepath.Join(logDir, "setup.log"),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l.logFile = f
		l.logDir = logDir
		l.logger = log.New(f, "", 0)
	}

	return l, nil
}

// CloseLogger closes the underlying log file, if any.
func CloseLogger() {
	if instance == nil || instance.logFile == nil {
		return
	}
	instance.mu.Lock()
	defer instance.mu.Unlock()
	if err := instance.logFile.Close(); err != nil {
		fmt.Printf("Failed to close log file: %v\n", err)
	}
	instance.logFile = nil
	instance.logger = nil
}

// CurrentLogDir returns the session's timestamped log directory.
func CurrentLogDir() string {
	if instance == nil {
		return ""
	}
	return instance.logDir
}

// logMessage is the core logging method that writes to all configured outputs.
func (l *Logger) logMessage(level LogLevel, message string, keyValues ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level > l.logLevel {
		return
	}

	ts := time.Now().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("[%s] %-5s %s", ts, level.String(), message)
	for i := 0; i+1 < len(keyValues); i += 2 {
		line += fmt.Sprintf(" %v=%v", keyValues[i], keyValues[i+1])
	}

	if l.console {
		out := os.Stdout
		if level == LevelError {
			out = os.Stderr
		}
		fmt.Fprintln(out, colorize(level, line))
	}
	if l.logger != nil {
		l.logger.Println(line)
		l.logFile.Sync()
	}
}

// ANSI color codes for console output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

func colorize(level LogLevel, line string) string {
	switch level {
	case LevelError:
		return colorRed + line + colorReset
	case LevelWarn:
		return colorYellow + line + colorReset
	case LevelDebug:
		return colorGray + line + colorReset
	default:
		return line
	}
}

// Package-level convenience functions. Messages carry optional key-value
// pairs appended as key=value.

// Info logs a message at INFO level.
func Info(message string, keyValues ...interface{}) {
	if instance == nil {
		fmt.Println(message)
		return
	}
	instance.logMessage(LevelInfo, message, keyValues...)
}

// Debug logs a message at DEBUG level.
func Debug(message string, keyValues ...interface{}) {
	if instance == nil {
		return
	}
	instance.logMessage(LevelDebug, message, keyValues...)
}

// Warn logs a message at WARN level.
func Warn(message string, keyValues ...interface{}) {
	if instance == nil {
		fmt.Println(message)
		return
	}
	instance.logMessage(LevelWarn, message, keyValues...)
}

// Error logs a message at ERROR level.
func Error(message string, keyValues ...interface{}) {
	if instance == nil {
		fmt.Fprintln(os.Stderr, message)
		return
	}
	instance.logMessage(LevelError, message, keyValues...)
}

// Fatal logs a message at ERROR level and exits with a nonzero status.
func Fatal(message string, keyValues ...interface{}) {
	Error(message, keyValues...)
	CloseLogger()
	os.Exit(1)
}
