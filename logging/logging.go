// Package logging holds the process wide leveled logger and the slog setup
// shared by the server and the CLI.
package logging

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelOff
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// SlogLevel maps the level onto log/slog.  Off maps above Error so nothing
// passes.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelError + 4
	}
}

// ParseLogLevel parses a string into a LogLevel
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LogLevelDebug, nil
	case "INFO":
		return LogLevelInfo, nil
	case "WARN", "WARNING":
		return LogLevelWarn, nil
	case "ERROR":
		return LogLevelError, nil
	case "OFF", "NONE":
		return LogLevelOff, nil
	default:
		return LogLevelInfo, fmt.Errorf("unknown log level: %s", s)
	}
}

// Logger is a printf style leveled logger.  Console output with emoji
// prefixes goes through Event.
type Logger struct {
	mu        sync.RWMutex
	level     LogLevel
	useEmojis bool
	logger    *log.Logger
}

func NewLogger(output io.Writer, level LogLevel) *Logger {
	return &Logger{
		level:     level,
		useEmojis: true,
		logger:    log.New(output, "", log.LstdFlags),
	}
}

func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) GetLevel() LogLevel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

func (l *Logger) SetUseEmojis(use bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.useEmojis = use
}

func (l *Logger) log(level LogLevel, format string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if level < l.level || l.level == LogLevelOff {
		return
	}
	l.logger.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...any) { l.log(LogLevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.log(LogLevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.log(LogLevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...any) { l.log(LogLevelError, format, args...) }

// Event logs at info level with an optional emoji prefix.
func (l *Logger) Event(emoji, format string, args ...any) {
	l.mu.RLock()
	prefix := ""
	if l.useEmojis && emoji != "" {
		prefix = emoji + " "
	}
	l.mu.RUnlock()
	l.Info("%s%s", prefix, fmt.Sprintf(format, args...))
}

var global = NewLogger(os.Stderr, LogLevelInfo)

// Default returns the process wide logger.
func Default() *Logger { return global }

func SetLogLevel(level LogLevel) { global.SetLevel(level) }
func GetLogLevel() LogLevel      { return global.GetLevel() }

func Debug(format string, args ...any) { global.Debug(format, args...) }
func Info(format string, args ...any)  { global.Info(format, args...) }
func Warn(format string, args ...any)  { global.Warn(format, args...) }
func Error(format string, args ...any) { global.Error(format, args...) }

func Start(format string, args ...any)   { global.Event("🚀", format, args...) }
func Stop(format string, args ...any)    { global.Event("🛑", format, args...) }
func Success(format string, args ...any) { global.Event("✅", format, args...) }
func Failure(format string, args ...any) { global.Event("❌", format, args...) }

// NewSlogHandler builds the structured handler used by stores and HTTP
// middleware: colored tint output for dev, plain text otherwise.
func NewSlogHandler(w io.Writer, dev bool, level LogLevel) slog.Handler {
	if dev {
		return tint.NewHandler(w, &tint.Options{Level: level.SlogLevel(), TimeFormat: time.Kitchen})
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level.SlogLevel()})
}

// Setup applies a level to both loggers and installs the slog default.
func Setup(dev bool, level LogLevel) {
	SetLogLevel(level)
	slog.SetDefault(slog.New(NewSlogHandler(os.Stderr, dev, level)))
}

func init() {
	if levelStr := os.Getenv("RAMTOOL_LOG_LEVEL"); levelStr != "" {
		if level, err := ParseLogLevel(levelStr); err == nil {
			SetLogLevel(level)
		}
	}

	// Tests only see errors.
	if strings.HasSuffix(os.Args[0], ".test") {
		SetLogLevel(LogLevelError)
	}
}
