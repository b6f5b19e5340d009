package golgr

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labelgen/go-lgr/ruleset"
	"github.com/labelgen/go-lgr/unidb"
)

// Option configures merge and label validation behavior.
type Option func(*setConfig) error

// setConfig holds all pipeline configuration.
type setConfig struct {
	mode           Mode
	setName        string
	keepComments   bool
	skipValidation bool
	docValidator   ruleset.DocumentValidator
	db             *unidb.Database
	timeout        time.Duration
	httpClient     *http.Client
	cache          RulesetCache

	// logger is the structured logger for debug/info output.
	// If nil, logging is disabled (silent mode).
	//
	// Design decision: We use *slog.Logger (Go 1.21+ stdlib) rather than a custom
	// interface because slog provides frontend/backend separation by design.
	// Users can plug in any backend (zap, zerolog, etc.) via slog handlers.
	// See: https://go.dev/blog/slog
	logger *slog.Logger
}

// DefaultOptions returns options with safe defaults. These enable label
// eligibility checks, advisory schema validation, and a conservative HTTP
// timeout.
func DefaultOptions() []Option {
	return []Option{
		WithValidation(true),
		WithDocumentValidator(ruleset.NewValidator()),
		WithTimeout(15 * time.Second),
	}
}

// WithMode sets strict or lenient handling of bad labels.
func WithMode(m Mode) Option {
	return func(c *setConfig) error {
		c.mode = m
		return nil
	}
}

// WithSetName sets the name assigned to the merged ruleset.
func WithSetName(name string) Option {
	return func(c *setConfig) error {
		c.setName = name
		return nil
	}
}

// WithKeepComments makes raw label reading yield whole-line comments instead
// of dropping them. It has no effect on set validation, which never treats
// comments as labels.
func WithKeepComments(keep bool) Option {
	return func(c *setConfig) error {
		c.keepComments = keep
		return nil
	}
}

// WithValidation enables or disables eligibility and collision checks when
// reading a label set. Disabled, every parseable label is accepted as-is.
func WithValidation(validate bool) Option {
	return func(c *setConfig) error {
		c.skipValidation = !validate
		return nil
	}
}

// WithDocumentValidator sets a schema validator run against each member
// document before parsing. Its diagnostics are advisory and only logged.
func WithDocumentValidator(v ruleset.DocumentValidator) Option {
	return func(c *setConfig) error {
		c.docValidator = v
		return nil
	}
}

// WithUnicodeDatabase sets the Unicode database attached to each parsed
// ruleset. If not set, a default database is built.
func WithUnicodeDatabase(db *unidb.Database) Option {
	return func(c *setConfig) error {
		c.db = db
		return nil
	}
}

// WithTimeout sets the HTTP request timeout for remote sources.
func WithTimeout(d time.Duration) Option {
	return func(c *setConfig) error {
		c.timeout = d
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client for remote sources.
func WithHTTPClient(client *http.Client) Option {
	return func(c *setConfig) error {
		c.httpClient = client
		return nil
	}
}

// WithCache sets an external cache for fetched LGR documents.
func WithCache(cache RulesetCache) Option {
	return func(c *setConfig) error {
		c.cache = cache
		return nil
	}
}

// WithLogger sets a structured logger for pipeline diagnostics.
// If not set, logging is disabled (silent mode).
//
// The library uses log/slog (Go 1.21+) which supports any backend via handlers.
// For example, zap users can use: slog.New(zapslog.NewHandler(zapCore, nil))
//
// Example:
//
//	// Use default logger
//	MergeSet(ctx, sources, WithLogger(slog.Default()))
//
//	// Use custom logger with attributes
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With("component", "lgr")
//	MergeSet(ctx, sources, WithLogger(logger))
func WithLogger(l *slog.Logger) Option {
	return func(c *setConfig) error {
		c.logger = l
		return nil
	}
}

// validate checks the configuration for logical consistency.
func (c *setConfig) validate() error {
	// timeout must be positive if set
	if c.timeout < 0 {
		return errors.New("timeout must be positive")
	}

	return nil
}

// log returns the configured logger, or a no-op logger if none was set.
// This allows internal code to call logging methods without nil checks.
//
// Design: Libraries should be silent by default. Users opt-in to logging
// via WithLogger(). This avoids surprising output and respects the principle
// that libraries shouldn't write to stdout/stderr without explicit consent.
func (c *setConfig) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	// Return a logger that discards all output
	return slog.New(discardHandler{})
}

// database returns the configured Unicode database, building a default one
// when none was supplied.
func (c *setConfig) database() *unidb.Database {
	if c.db != nil {
		return c.db
	}
	return unidb.New()
}

// discardHandler is a slog.Handler that discards all log records.
// This is used when no logger is configured to avoid nil checks throughout the code.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// newSetConfig creates a new pipeline configuration by applying the given
// options and validating the result.
func newSetConfig(opts ...Option) (*setConfig, error) {
	// Create config with zero values
	c := &setConfig{}

	// Apply all options
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	// Validate the configuration
	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}
