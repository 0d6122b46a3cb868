// Package output provides logging and terminal output utilities.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the global logger instance.
var Logger *log.Logger

// Stdout receives command output printed with Println.
var Stdout io.Writer = os.Stdout

func init() {
	Logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
}

// LogConfig configures the global logger.
type LogConfig struct {
	// Verbose enables debug level and caller reporting.
	Verbose bool
	// Timestamps enables timestamps. Nil means enabled only when verbose.
	Timestamps *bool
	// Writer overrides the destination, stderr by default.
	Writer io.Writer
}

// SetupLogging configures the logger based on cfg.
func SetupLogging(cfg LogConfig) {
	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}

	timestamps := cfg.Verbose
	if cfg.Timestamps != nil {
		timestamps = *cfg.Timestamps
	}

	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	Logger = log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: timestamps,
		ReportCaller:    cfg.Verbose,
	})
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...any) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg string, keyvals ...any) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...any) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message.
func Error(msg string, keyvals ...any) {
	Logger.Error(msg, keyvals...)
}

// Println prints a message to stdout with a newline.
func Println(msg string) {
	_, _ = io.WriteString(Stdout, msg+"\n")
}
