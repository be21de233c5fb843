// Package logger exposes package-level printf-style logging helpers backed by zap.
// Until Init is called every helper writes to a no-op logger.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.RWMutex
	log     = zap.NewNop().Sugar()
	level   = zap.NewAtomicLevelAt(zap.InfoLevel)
	logFile *os.File
)

// Init opens the application log file and configures the level.
// Errors always go to stderr as well; if the file cannot be opened, file output is discarded.
func Init(logPath, lvl string) error {
	parsed, err := ParseLevel(lvl)
	if err != nil {
		return err
	}
	level.SetLevel(parsed)

	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = log.Sync()
		logFile.Close()
		logFile = nil
	}

	stderrCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stderr),
		zap.ErrorLevel,
	)
	cores := []zapcore.Core{stderrCore}

	actualPath := "(discarded)"
	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0750); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create log directory %s: %v. File logs will be discarded.\n", filepath.Dir(logPath), err)
		} else if f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v. File logs will be discarded.\n", logPath, err)
		} else {
			logFile = f
			actualPath = logPath
			cores = append(cores, zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(f),
				level,
			))
		}
	}

	log = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
	log.Infof("Logger initialized. Log level: %s. Output file: %s", parsed.CapitalString(), actualPath)
	return nil
}

// ParseLevel accepts DEBUG, INFO, WARN, ERROR in any case. An empty string means INFO.
func ParseLevel(lvl string) (zapcore.Level, error) {
	if strings.TrimSpace(lvl) == "" {
		return zap.InfoLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(lvl)))); err != nil {
		return zap.InfoLevel, fmt.Errorf("invalid log level %q: %w", lvl, err)
	}
	return l, nil
}

// Use replaces the underlying logger. Tests use it with zaptest/observer.
func Use(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func Info(format string, v ...interface{}) {
	current().Infof(format, v...)
}

func Debug(format string, v ...interface{}) {
	current().Debugf(format, v...)
}

func Warn(format string, v ...interface{}) {
	current().Warnf(format, v...)
}

func Error(format string, v ...interface{}) {
	current().Errorf(format, v...)
}

func Fatal(format string, v ...interface{}) {
	current().Fatalf(format, v...)
}

// Close flushes buffered entries and closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	_ = log.Sync()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	log = zap.NewNop().Sugar()
}
