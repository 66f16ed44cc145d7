// Package log is chardash's structured logger. It wraps logrus with the
// small API the rest of the code uses: package-level helpers backed by a
// global logger, and field-carrying child loggers built with F.
package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"chardash/internal/errors"

	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02 15:04:05"

var (
	isDebug atomic.Bool
	logger  = NewLogger()
)

// Field is a single structured key/value pair.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger writes leveled, structured log lines.
type Logger struct {
	base  *logrus.Logger
	entry *logrus.Entry
	file  *os.File
}

// Option configures a Logger.
type Option func(*Logger)

// WithOutput sends log lines to w.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.base.SetOutput(w)
	}
}

// WithJSON switches to one JSON object per line.
func WithJSON() Option {
	return func(l *Logger) {
		l.base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	}
}

// WithFile appends log lines to the file at path. If the file cannot be
// opened the logger keeps its previous output.
func WithFile(path string) Option {
	return func(l *Logger) {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return
		}
		l.file = f
		l.base.SetOutput(f)
	}
}

// NewLogger creates a logger writing text lines to stdout unless
// overridden by opts.
func NewLogger(opts ...Option) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stdout)
	base.SetFormatter(textFormatter{})
	base.SetLevel(logrus.DebugLevel)

	l := &Logger{base: base}
	for _, opt := range opts {
		opt(l)
	}
	l.entry = logrus.NewEntry(base)
	return l
}

// Configure replaces the global logger.
func Configure(opts ...Option) {
	logger.Close()
	logger = NewLogger(opts...)
}

// SetDebug enables or disables debug lines on every logger.
func SetDebug(debug bool) {
	isDebug.Store(debug)
}

// SetOutput redirects the global logger.
func SetOutput(w io.Writer) {
	logger.base.SetOutput(w)
}

// Close releases a log file opened by WithFile.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// With returns a child logger that adds fields to every line.
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{base: l.base, entry: l.entry.WithFields(data), file: l.file}
}

func (l *Logger) Info(msg string)                           { l.log(logrus.InfoLevel, msg) }
func (l *Logger) Infof(format string, args ...interface{})  { l.log(logrus.InfoLevel, fmt.Sprintf(format, args...)) }
func (l *Logger) Warn(msg string)                           { l.log(logrus.WarnLevel, msg) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.log(logrus.WarnLevel, fmt.Sprintf(format, args...)) }
func (l *Logger) Error(msg string)                          { l.log(logrus.ErrorLevel, msg) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.log(logrus.ErrorLevel, fmt.Sprintf(format, args...)) }

// Debug logs only when SetDebug(true) is in effect.
func (l *Logger) Debug(msg string) {
	if isDebug.Load() {
		l.log(logrus.DebugLevel, msg)
	}
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	if isDebug.Load() {
		l.log(logrus.DebugLevel, fmt.Sprintf(format, args...))
	}
}

func (l *Logger) log(level logrus.Level, msg string) {
	entry := l.entry
	if _, file, line, ok := runtime.Caller(2); ok {
		entry = entry.WithField("caller", fmt.Sprintf("%s:%d", filepath.Base(file), line))
	}
	entry.Log(level, msg)
}

// LogWithFields returns the global logger with fields attached.
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError returns the global logger annotated with err and, for
// application errors, its kind and identifying detail.
func LogWithError(err error) *Logger {
	return logger.With(errorFields(err)...)
}

// LogError logs err at error level with msg.
func LogError(err error, msg string) {
	LogWithError(err).Error(msg)
}

func errorFields(err error) []Field {
	if err == nil {
		return []Field{F("error", "<nil>")}
	}
	fields := []Field{F("error", err.Error())}

	var kinded interface{ Kind() errors.ErrorKind }
	if errors.As(err, &kinded) {
		fields = append(fields, F("error_kind", int(kinded.Kind())))
	}

	var fetchErr *errors.RemoteFetchError
	if errors.As(err, &fetchErr) {
		fields = append(fields, F("url", fetchErr.URL()), F("status", fetchErr.StatusCode()))
	}
	var configErr *errors.ConfigError
	if errors.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}
	var exportErr *errors.ExportError
	if errors.As(err, &exportErr) && exportErr.Path() != "" {
		fields = append(fields, F("path", exportErr.Path()))
	}
	return fields
}

func Info(msg string)                           { logger.log(logrus.InfoLevel, msg) }
func Infof(format string, args ...interface{})  { logger.log(logrus.InfoLevel, fmt.Sprintf(format, args...)) }
func Warn(msg string)                           { logger.log(logrus.WarnLevel, msg) }
func Warnf(format string, args ...interface{})  { logger.log(logrus.WarnLevel, fmt.Sprintf(format, args...)) }
func Error(msg string)                          { logger.log(logrus.ErrorLevel, msg) }
func Errorf(format string, args ...interface{}) { logger.log(logrus.ErrorLevel, fmt.Sprintf(format, args...)) }

// Debug logs a debug message on the global logger
func Debug(msg string) {
	if isDebug.Load() {
		logger.log(logrus.DebugLevel, msg)
	}
}

// Debugf logs a formatted debug message on the global logger
func Debugf(format string, args ...interface{}) {
	if isDebug.Load() {
		logger.log(logrus.DebugLevel, fmt.Sprintf(format, args...))
	}
}

func levelName(level logrus.Level) string {
	if level == logrus.WarnLevel {
		return "WARN"
	}
	return strings.ToUpper(level.String())
}

// textFormatter renders "[ts] LEVEL: message key=value ...".
type textFormatter struct{}

func (textFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "[%s] %s: %s", e.Time.Format(timestampFormat), levelName(e.Level), e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}
