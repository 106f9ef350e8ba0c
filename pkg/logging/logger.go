/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger.go
Description: Logging system for the chroma classifier. Wraps logrus with a validated
configuration, JSON/text/custom formats, an optional timestamped log file and helpers
for the classifier's own events (rule bases, classifications, evaluations, sweeps).
*/

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// LogLevel represents the logging level
type LogLevel string

const (
	LogLevelDebug   LogLevel = "debug"
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warn"
	LogLevelError   LogLevel = "error"
)

// LogFormat represents the logging format
type LogFormat string

const (
	LogFormatJSON   LogFormat = "json"
	LogFormatText   LogFormat = "text"
	LogFormatCustom LogFormat = "custom"
)

const filePrefix = "chroma_"

// LoggerConfig holds the configuration for the logger.
// An empty OutputDir logs to stderr only.
type LoggerConfig struct {
	Level     LogLevel  `json:"level" mapstructure:"level"`
	Format    LogFormat `json:"format" mapstructure:"format"`
	OutputDir string    `json:"output_dir" mapstructure:"output_dir"`
	MaxFiles  int       `json:"max_files" mapstructure:"max_files"`
	Timestamp bool      `json:"timestamp" mapstructure:"timestamp"`
	Caller    bool      `json:"caller" mapstructure:"caller"`
	Colors    bool      `json:"colors" mapstructure:"colors"`
}

// DefaultConfig logs at info level in the custom format, to stderr only.
func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:     LogLevelInfo,
		Format:    LogFormatCustom,
		MaxFiles:  10,
		Timestamp: true,
		Colors:    true,
	}
}

// Validate checks the LoggerConfig for invalid or missing values.
func (c *LoggerConfig) Validate() error {
	if c.OutputDir != "" && c.MaxFiles <= 0 {
		return fmt.Errorf("max_files must be positive when output_dir is set")
	}
	switch c.Format {
	case LogFormatJSON, LogFormatText, LogFormatCustom:
		// ok
	default:
		return fmt.Errorf("unsupported log format: %s", c.Format)
	}
	switch c.Level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError:
		// ok
	default:
		return fmt.Errorf("unsupported log level: %s", c.Level)
	}
	return nil
}

type logEntry struct {
	level  logrus.Level
	msg    string
	fields logrus.Fields
}

// Logger is the application logger. Messages sent through Debug/Info/Warning/Error are
// queued and written by a background goroutine; Close flushes the queue.
type Logger struct {
	config     *LoggerConfig
	logger     *logrus.Logger
	fileHandle *os.File
	logFile    string
	startTime  time.Time

	logQueue chan logEntry
	done     chan struct{}
	mu       sync.RWMutex
	closed   bool
}

// NewLogger creates a new logger instance. A nil config selects DefaultConfig.
func NewLogger(config *LoggerConfig) (*Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logger config: %w", err)
	}

	l := &Logger{
		config:    config,
		logger:    logrus.New(),
		startTime: time.Now(),
		logQueue:  make(chan logEntry, 1024),
		done:      make(chan struct{}),
	}

	if err := l.setup(); err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	go l.runLogQueue()

	return l, nil
}

// setup configures the logger with the given configuration
func (l *Logger) setup() error {
	level, err := logrus.ParseLevel(string(l.config.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.logger.SetLevel(level)
	l.logger.SetReportCaller(l.config.Caller)
	l.logger.SetOutput(os.Stderr)

	if err := l.setFormatter(); err != nil {
		return err
	}
	return l.setupFileOutput()
}

// setFormatter configures the log formatter
func (l *Logger) setFormatter() error {
	callerPrettyfier := func(f *runtime.Frame) (string, string) {
		return "", fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
	}

	switch l.config.Format {
	case LogFormatJSON:
		l.logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat:  time.RFC3339,
			DisableTimestamp: !l.config.Timestamp,
			CallerPrettyfier: callerPrettyfier,
		})

	case LogFormatText:
		l.logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    l.config.Timestamp,
			DisableTimestamp: !l.config.Timestamp,
			TimestampFormat:  time.RFC3339,
			ForceColors:      l.config.Colors,
			DisableColors:    !l.config.Colors,
			CallerPrettyfier: callerPrettyfier,
		})

	case LogFormatCustom:
		l.logger.SetFormatter(&ChromaFormatter{
			CustomFormatter: CustomFormatter{
				Timestamp: l.config.Timestamp,
				Caller:    l.config.Caller,
				Colors:    l.config.Colors,
			},
		})

	default:
		return fmt.Errorf("unsupported log format: %s", l.config.Format)
	}

	return nil
}

// setupFileOutput adds a timestamped log file next to stderr when OutputDir is set.
func (l *Logger) setupFileOutput() error {
	if l.config.OutputDir == "" {
		return nil
	}

	if err := os.MkdirAll(l.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := l.startTime.Format("2006-01-02_15-04-05")
	path := filepath.Join(l.config.OutputDir, fmt.Sprintf("%s%s.log", filePrefix, timestamp))

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	l.fileHandle = file
	l.logFile = path
	l.logger.SetOutput(io.MultiWriter(os.Stderr, file))

	l.logger.WithFields(logrus.Fields{
		"start_time": l.startTime.Format(time.RFC3339),
		"log_file":   path,
		"level":      l.config.Level,
		"format":     l.config.Format,
	}).Debug("Logging system initialized")

	return nil
}

// cleanup removes the oldest log files beyond MaxFiles.
func (l *Logger) cleanup() error {
	if l.config.OutputDir == "" {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(l.config.OutputDir, filePrefix+"*.log"))
	if err != nil {
		return err
	}
	if len(files) <= l.config.MaxFiles {
		return nil
	}

	modTime := make(map[string]time.Time, len(files))
	for _, f := range files {
		if st, err := os.Stat(f); err == nil {
			modTime[f] = st.ModTime()
		}
	}
	sort.Slice(files, func(i, j int) bool {
		return modTime[files[i]].Before(modTime[files[j]])
	})

	for _, f := range files[:len(files)-l.config.MaxFiles] {
		if f == l.logFile {
			continue
		}
		os.Remove(f)
	}
	return nil
}

// runLogQueue writes queued entries until the queue is closed.
func (l *Logger) runLogQueue() {
	defer close(l.done)
	for entry := range l.logQueue {
		l.logger.WithFields(entry.fields).Log(entry.level, entry.msg)
	}
}

func (l *Logger) enqueue(level logrus.Level, msg string, fields map[string]interface{}) {
	if !l.logger.IsLevelEnabled(level) {
		return
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return
	}
	l.logQueue <- logEntry{level: level, msg: msg, fields: fields}
}

// Classifier-specific logging methods

// LogRuleBase logs a configured rule base.
func (l *Logger) LogRuleBase(engineID, name string, inputs, outputs, rules int) {
	l.enqueue(logrus.InfoLevel, "Rule base loaded", map[string]interface{}{
		"engine_id": engineID,
		"rule_base": name,
		"inputs":    inputs,
		"outputs":   outputs,
		"rules":     rules,
	})
}

// LogClassification logs one colour classification.
func (l *Logger) LogClassification(engineID string, channels [3]float64, color, luminosity string, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["engine_id"] = engineID
	fields["red"] = channels[0]
	fields["green"] = channels[1]
	fields["blue"] = channels[2]
	fields["color"] = color
	fields["luminosity"] = luminosity
	l.enqueue(logrus.InfoLevel, "Color classified", fields)
}

// LogEvaluation logs one numeric evaluation.
func (l *Logger) LogEvaluation(engineID string, x, y, result float64) {
	l.enqueue(logrus.InfoLevel, "Evaluation completed", map[string]interface{}{
		"engine_id": engineID,
		"x":         x,
		"y":         y,
		"result":    result,
	})
}

// LogSweep logs a finished colour-cube sweep.
func (l *Logger) LogSweep(reportID string, samples int, duration time.Duration, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["report_id"] = reportID
	fields["samples"] = samples
	fields["duration"] = duration
	fields["uptime"] = time.Since(l.startTime)
	l.enqueue(logrus.InfoLevel, "Sweep completed", fields)
}

// Close flushes queued entries, closes the log file and prunes old files.
// Entries logged after Close are dropped.
func (l *Logger) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	close(l.logQueue)
	l.mu.Unlock()

	<-l.done
	if l.fileHandle != nil {
		l.fileHandle.Close()
	}
	if err := l.cleanup(); err != nil {
		return fmt.Errorf("failed to cleanup log files: %w", err)
	}
	return nil
}

// GetLogger returns the underlying logrus logger, for components that take one.
func (l *Logger) GetLogger() *logrus.Logger {
	return l.logger
}

// LogFile is the path of the current log file, empty when logging to stderr only.
func (l *Logger) LogFile() string {
	return l.logFile
}

// Debug logs a debug message (async)
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.enqueue(logrus.DebugLevel, msg, fields)
}

// Info logs an info message (async)
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.enqueue(logrus.InfoLevel, msg, fields)
}

// Warning logs a warning message (async)
func (l *Logger) Warning(msg string, fields map[string]interface{}) {
	l.enqueue(logrus.WarnLevel, msg, fields)
}

// Error logs an error message (async)
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.enqueue(logrus.ErrorLevel, msg, fields)
}
