// Package logger is the panel's process-wide logger. It writes leveled
// records to stderr and, when the log folder is writable, to a log file.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dukcapil-minsel/suket/config"

	"github.com/op/go-logging"
)

const (
	module      = "suket"
	logFileName = "suket.log"
	timeFormat  = "2006/01/02 15:04:05"
)

var (
	logger  = logging.MustGetLogger(module)
	logFile *os.File
)

func init() {
	// Until InitLogger runs, only warnings and above reach stderr.
	backend := logging.AddModuleLevel(logging.NewBackendFormatter(
		logging.NewLogBackend(os.Stderr, "", 0), newFormatter(true)))
	backend.SetLevel(logging.WARNING, module)
	logger.SetBackend(backend)
}

// ParseLevel maps the configured level onto go-logging's levels.
func ParseLevel(level config.LogLevel) (logging.Level, error) {
	switch level {
	case config.Debug:
		return logging.DEBUG, nil
	case config.Info:
		return logging.INFO, nil
	case config.Notice:
		return logging.NOTICE, nil
	case config.Warn:
		return logging.WARNING, nil
	case config.Error:
		return logging.ERROR, nil
	}
	return logging.INFO, fmt.Errorf("unknown log level: %s", level)
}

// InitLogger installs the console backend at level and a DEBUG file backend
// in the configured log folder.
func InitLogger(level logging.Level) {
	backends := make([]logging.Backend, 0, 2)

	console := logging.AddModuleLevel(logging.NewBackendFormatter(
		logging.NewLogBackend(os.Stderr, "", 0), newFormatter(true)))
	console.SetLevel(level, module)
	backends = append(backends, console)

	if fileBackend := initFileBackend(); fileBackend != nil {
		leveled := logging.AddModuleLevel(fileBackend)
		leveled.SetLevel(logging.DEBUG, module)
		backends = append(backends, leveled)
	}

	logger.SetBackend(logging.MultiLogger(backends...))
}

// InitWriter sends every record at level to w. Tests use it to capture output.
func InitWriter(w io.Writer, level logging.Level) {
	backend := logging.AddModuleLevel(logging.NewBackendFormatter(
		logging.NewLogBackend(w, "", 0), newFormatter(false)))
	backend.SetLevel(level, module)
	logger.SetBackend(backend)
}

func initFileBackend() logging.Backend {
	logDir := config.GetLogFolder()
	if err := os.MkdirAll(logDir, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log folder %s: %v\n", logDir, err)
		return nil
	}

	logPath := GetLogPath()
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", logPath, err)
		return nil
	}

	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = file

	return logging.NewBackendFormatter(logging.NewLogBackend(file, "", 0), newFormatter(true))
}

func newFormatter(withTime bool) logging.Formatter {
	format := `%{level} - %{message}`
	if withTime {
		format = `%{time:` + timeFormat + `} %{level} - %{message}`
	}
	return logging.MustStringFormatter(format)
}

// GetLogPath returns the file the file backend writes to.
func GetLogPath() string {
	return filepath.Join(config.GetLogFolder(), logFileName)
}

// CloseLogger closes the log file, if one is open.
func CloseLogger() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

func Debug(args ...any) {
	logger.Debug(args...)
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func Info(args ...any) {
	logger.Info(args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Warning(args ...any) {
	logger.Warning(args...)
}

func Warningf(format string, args ...any) {
	logger.Warningf(format, args...)
}

func Error(args ...any) {
	logger.Error(args...)
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}
