package formatter

import (
	"slices"

	"github.com/arloliu/go-edifmt/logger"
	"github.com/arloliu/go-edifmt/segment"
)

// Config holds the settings of a formatting pass.
//
// A Config is built by NewConfig from a list of options; the zero value is not valid.
type Config struct {
	// logger receives diagnostics, the global logger by default.
	logger logger.Logger

	// strictMarker rejects headers which don't start with "UNA".
	//
	// Defaults to false.
	strictMarker bool

	// defaultHeader allows documents without UNA header, the default header is inserted for them.
	//
	// Defaults to false.
	defaultHeader bool

	// rejectTruncated turns a final segment without terminator into an error.
	//
	// Defaults to false.
	rejectTruncated bool

	// lineBreaks are the bytes absorbed on segment boundaries and removed inside segments.
	//
	// Defaults to segment.DefaultLineBreaks.
	lineBreaks []byte
}

// NewConfig creates a formatting configuration with default values and applies opts on top of it.
func NewConfig(opts ...Option) *Config {
	cfg := &Config{
		logger:     logger.GetLogger(),
		lineBreaks: segment.DefaultLineBreaks,
	}

	for _, opt := range opts {
		opt.apply(cfg)
	}

	return cfg
}

// Logger returns the logger used for diagnostics.
func (cfg *Config) Logger() logger.Logger {
	return cfg.logger
}

// LineBreaks returns the configured line-break bytes.
func (cfg *Config) LineBreaks() []byte {
	return slices.Clone(cfg.lineBreaks)
}

// Option represents a functional option for configuring a formatting pass.
type Option interface {
	apply(*Config)
}

type optFunc struct {
	name      string
	applyFunc func(*Config)
}

func (o *optFunc) apply(cfg *Config) { o.applyFunc(cfg) }

func newOptFunc(name string, f func(*Config)) *optFunc {
	return &optFunc{name: name, applyFunc: f}
}

// WithLogger sets the logger for diagnostics. A nil logger keeps the current one.
//
// The default logger is the global logger instance.
func WithLogger(l logger.Logger) Option {
	return newOptFunc("WithLogger", func(cfg *Config) {
		if l != nil {
			cfg.logger = l
		}
	})
}

// WithStrictMarker rejects documents whose first three bytes are not "UNA" with ErrInvalidMarker.
//
// By default the marker is not validated and the nine leading bytes are always treated as the header.
func WithStrictMarker() Option {
	return newOptFunc("WithStrictMarker", func(cfg *Config) {
		cfg.strictMarker = true
	})
}

// WithDefaultHeader accepts documents which don't start with "UNA".
// Such documents are split with the default delimiters and the default header "UNA:+.? '" is
// written as their first line, so the output is a complete document.
//
// It takes precedence over WithStrictMarker.
func WithDefaultHeader() Option {
	return newOptFunc("WithDefaultHeader", func(cfg *Config) {
		cfg.defaultHeader = true
	})
}

// WithRejectTruncated makes Format fail with ErrTruncatedSegment when the final segment has no terminator.
//
// By default the fragment is emitted as is and a warning is logged.
func WithRejectTruncated() Option {
	return newOptFunc("WithRejectTruncated", func(cfg *Config) {
		cfg.rejectTruncated = true
	})
}

// WithLineBreaks sets the line-break bytes which are absorbed between segments and removed inside segments.
// Use WithLineBreaks('\r', '\n') to normalize CRLF documents.
//
// '\n' is always part of the set since it's the line break written after every segment.
func WithLineBreaks(breaks ...byte) Option {
	return newOptFunc("WithLineBreaks", func(cfg *Config) {
		if len(breaks) == 0 {
			return
		}

		cfg.lineBreaks = slices.Clone(breaks)
		if !slices.Contains(cfg.lineBreaks, lineBreak) {
			cfg.lineBreaks = append(cfg.lineBreaks, lineBreak)
		}
	})
}
