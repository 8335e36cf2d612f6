package logger

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Component constants for consistent labeling
const (
	ComponentConfig    = "configuration"
	ComponentResolver  = "endpoint_resolver"
	ComponentAnnotator = "source_annotator"
)

// Category constants for log classification
const (
	CategoryLoad           = "load"
	CategorySave           = "save"
	CategoryResolution     = "resolution"
	CategoryTransformation = "transformation"
	CategoryWarning        = "warning"
	CategoryError          = "error"
)

// std is the process-wide logger used by the library packages. It writes to
// stderr so the annotator's stdout transcript stays clean.
var std = newStd()

func newStd() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Component returns an entry tagged with the given component name.
func Component(name string) *logrus.Entry {
	return std.WithField("component", name)
}

// SetLevel adjusts the minimum level of the process-wide logger.
func SetLevel(level logrus.Level) {
	std.SetLevel(level)
}

// MaskKey masks an API key for safe logging
func MaskKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return "***"
	}
	return apiKey[:4] + "..." + apiKey[len(apiKey)-4:]
}

// FileLogger provides structured JSONL logging suitable for log shippers
type FileLogger struct {
	logger *logrus.Logger
	file   *os.File
}

// NewFileLogger creates a structured logger writing JSONL under logDir
func NewFileLogger(logDir string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, err
	}

	logPath := filepath.Join(logDir, "custom-api-config.jsonl")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(file)
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	logger.SetLevel(logrus.InfoLevel)

	logger = logger.WithField("service", "custom-api-config").Logger

	return &FileLogger{
		logger: logger,
		file:   file,
	}, nil
}

// Close closes the log file
func (f *FileLogger) Close() error {
	if f.file != nil {
		return f.file.Close()
	}
	return nil
}

// createEntry creates a logrus entry with standard fields
func (f *FileLogger) createEntry(component, category, requestID string, fields map[string]interface{}) *logrus.Entry {
	entry := f.logger.WithFields(logrus.Fields{
		"component": component,
		"category":  category,
	})

	if requestID != "" {
		entry = entry.WithField("request_id", requestID)
	}

	if fields != nil {
		entry = entry.WithFields(fields)
	}

	return entry
}

// Debug logs a debug message
func (f *FileLogger) Debug(component, category, requestID, message string, fields map[string]interface{}) {
	f.createEntry(component, category, requestID, fields).Debug(message)
}

// Info logs an info message
func (f *FileLogger) Info(component, category, requestID, message string, fields map[string]interface{}) {
	f.createEntry(component, category, requestID, fields).Info(message)
}

// Warn logs a warning message
func (f *FileLogger) Warn(component, category, requestID, message string, fields map[string]interface{}) {
	f.createEntry(component, category, requestID, fields).Warn(message)
}

// Error logs an error message
func (f *FileLogger) Error(component, category, requestID, message string, fields map[string]interface{}) {
	f.createEntry(component, category, requestID, fields).Error(message)
}
