package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Level represents log severity
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a string to a Level. Unknown values fall back to INFO.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// F is a shorthand for creating a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Config holds logger configuration
type Config struct {
	Level      Level  // Minimum log level
	FilePath   string // Path to log file, empty disables file output
	MaxSizeMB  int    // Megabytes before rotation
	MaxAgeDays int    // Days to keep rotated files
	MaxBackups int    // Rotated files to keep
	Console    bool   // Also write to stderr
}

// DefaultConfig returns default logger configuration
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	logPath := ""
	if home != "" {
		logPath = filepath.Join(home, ".angple", "logs", "angple.log")
	}

	return Config{
		Level:      INFO,
		FilePath:   logPath,
		MaxSizeMB:  10,
		MaxAgeDays: 7,
		MaxBackups: 5,
		Console:    false, // keeps the TUI clean
	}
}

// Logger writes leveled entries with preset fields to one or more outputs.
type Logger struct {
	config  Config
	mu      *sync.Mutex
	fields  []Field
	writers []io.Writer
	closers []io.Closer
}

var (
	globalLogger *Logger
	once         sync.Once
)

// Init initializes the global logger
func Init(config Config) error {
	var err error
	once.Do(func() {
		globalLogger, err = New(config)
	})
	return err
}

// SetDefault replaces the global logger.
func SetDefault(l *Logger) {
	globalLogger = l
}

// New creates a new logger instance
func New(config Config) (*Logger, error) {
	l := &Logger{
		config: config,
		mu:     &sync.Mutex{},
	}

	if config.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(config.FilePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		rotator := &lumberjack.Logger{
			Filename:   config.FilePath,
			MaxSize:    config.MaxSizeMB,
			MaxAge:     config.MaxAgeDays,
			MaxBackups: config.MaxBackups,
		}
		l.writers = append(l.writers, rotator)
		l.closers = append(l.closers, rotator)
	}

	if config.Console {
		l.writers = append(l.writers, os.Stderr)
	}

	return l, nil
}

// NewWithWriter creates a logger that writes only to w.
func NewWithWriter(level Level, w io.Writer) *Logger {
	return &Logger{
		config:  Config{Level: level},
		mu:      &sync.Mutex{},
		writers: []io.Writer{w},
	}
}

// emit writes one entry. skip counts the frames between emit and the
// code that logged.
func (l *Logger) emit(skip int, level Level, msg string, fields []Field) {
	if level < l.config.Level || len(l.writers) == 0 {
		return
	}

	caller := "???"
	if _, file, line, ok := runtime.Caller(skip); ok {
		caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s %s: %s",
		time.Now().Format("2006-01-02 15:04:05.000"), level, caller, msg)

	all := append(append([]Field{}, l.fields...), fields...)
	if len(all) > 0 {
		b.WriteString(" |")
		for _, f := range all {
			fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
		}
	}
	b.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, w := range l.writers {
		_, _ = io.WriteString(w, b.String())
	}
}

// WithFields returns a child logger that prepends fields to every entry.
// The child shares outputs with its parent.
func (l *Logger) WithFields(fields ...Field) *Logger {
	child := *l
	child.fields = append(append([]Field{}, l.fields...), fields...)
	child.closers = nil
	return &child
}

func (l *Logger) Debug(msg string, fields ...Field) { l.emit(2, DEBUG, msg, fields) }
func (l *Logger) Info(msg string, fields ...Field) { l.emit(2, INFO, msg, fields) }
func (l *Logger) Warn(msg string, fields ...Field) { l.emit(2, WARN, msg, fields) }
func (l *Logger) Error(msg string, fields ...Field) { l.emit(2, ERROR, msg, fields) }

// Close closes file outputs
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var firstErr error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

var discard = NewWithWriter(ERROR+1, io.Discard)

// std is the global logger, or a discarding one before Init
func std() *Logger {
	if globalLogger != nil {
		return globalLogger
	}
	return discard
}

func Debug(msg string, fields ...Field) { std().emit(2, DEBUG, msg, fields) }
func Info(msg string, fields ...Field) { std().emit(2, INFO, msg, fields) }
func Warn(msg string, fields ...Field) { std().emit(2, WARN, msg, fields) }
func Error(msg string, fields ...Field) { std().emit(2, ERROR, msg, fields) }

// WithFields derives from the global logger
func WithFields(fields ...Field) *Logger {
	return std().WithFields(fields...)
}

// Close closes the global logger
func Close() error {
	return std().Close()
}
