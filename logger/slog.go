package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/phsym/console-slog"
)

// Format selects the slog handler used by SlogLogger.
type Format string

const (
	// FormatJSON writes one JSON object per record.
	FormatJSON Format = "json"
	// FormatConsole writes human friendly, colorized records.
	FormatConsole Format = "console"
)

// ParseFormat converts a format name into a Format. An empty name selects FormatJSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatConsole:
		return FormatConsole, nil
	default:
		return FormatJSON, fmt.Errorf("unknown log format %q", s)
	}
}

// Options configures NewSlogWithOptions.
type Options struct {
	// Level is the minimum enabled level.
	Level Level
	// Format selects the handler. The console handler is always used when the ENV
	// environment variable is "development".
	Format Format
	// Output is where records are written, os.Stderr when nil.
	Output io.Writer
	// AddSource adds the source file and line to each record.
	AddSource bool
}

type SlogLogger struct {
	mu     sync.Mutex
	logger *slog.Logger
	level  *slog.LevelVar
}

var _ Logger = (*SlogLogger)(nil)

// NewSlog creates a JSON slog logger writing to stderr.
func NewSlog(level Level, addSource bool) Logger {
	return NewSlogWithOptions(Options{Level: level, AddSource: addSource})
}

// NewSlogWithOptions creates a slog logger configured by opts.
func NewSlogWithOptions(opts Options) Logger {
	inst := &SlogLogger{level: &slog.LevelVar{}}
	inst.level.Set(toSlogLevel(opts.Level))

	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	var handler slog.Handler
	if opts.Format == FormatConsole || os.Getenv("ENV") == "development" {
		handler = console.NewHandler(output, &console.HandlerOptions{
			AddSource: opts.AddSource,
			Level:     inst.level,
		})
	} else {
		handler = slog.NewJSONHandler(output, &slog.HandlerOptions{
			AddSource: opts.AddSource,
			Level:     inst.level,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					a.Key = "ts"
				}
				return a
			},
		})
	}
	inst.logger = slog.New(handler)

	return inst
}

func (l *SlogLogger) Debug(msg string, keysAndValues ...any) {
	l.log(context.Background(), slog.LevelDebug, msg, keysAndValues...)
}

func (l *SlogLogger) Info(msg string, keysAndValues ...any) {
	l.log(context.Background(), slog.LevelInfo, msg, keysAndValues...)
}

func (l *SlogLogger) Warn(msg string, keysAndValues ...any) {
	l.log(context.Background(), slog.LevelWarn, msg, keysAndValues...)
}

func (l *SlogLogger) Error(msg string, keysAndValues ...any) {
	l.log(context.Background(), slog.LevelError, msg, keysAndValues...)
}

func (l *SlogLogger) Fatal(msg string, keysAndValues ...any) {
	l.log(context.Background(), slog.LevelError, msg, keysAndValues...)
	os.Exit(1)
}

func (l *SlogLogger) With(keyValues ...any) Logger {
	return &SlogLogger{
		logger: l.logger.With(keyValues...),
		level:  l.level,
	}
}

func (l *SlogLogger) Level() Level {
	switch lv := l.level.Level(); {
	case lv <= slog.LevelDebug:
		return DebugLevel
	case lv <= slog.LevelInfo:
		return InfoLevel
	case lv <= slog.LevelWarn:
		return WarnLevel
	default:
		return ErrorLevel
	}
}

func (l *SlogLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.level.Set(toSlogLevel(level))
}

// log is the low-level logging method for methods that take ...any.
// It must always be called directly by an exported logging method
// or function, because it uses a fixed call depth to obtain the pc.
func (l *SlogLogger) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if !l.logger.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	// skip [runtime.Callers, this function, this function's caller]
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(args...)
	_ = l.logger.Handler().Handle(ctx, r)
}

func toSlogLevel(level Level) slog.Level {
	switch level {
	case DebugLevel:
		return slog.LevelDebug
	case InfoLevel:
		return slog.LevelInfo
	case WarnLevel:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
