package element

import (
	"io"
	"log/slog"

	"github.com/microcosm-cc/bluemonday"
)

// Option configures a Renderer.
type Option func(*config)

type config struct {
	logger    *slog.Logger
	raw       bool
	allow     func(name string) bool
	sanitizer *bluemonday.Policy
}

// WithLogger routes diagnostics (recovered coercion failures, sanitizer
// rewrites) to logger. The default logger discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithRawAttributes disables HTML escaping of attribute values. Only use it
// when every attribute value handed to the renderer is already safe markup.
func WithRawAttributes() Option {
	return func(cfg *config) {
		cfg.raw = true
	}
}

// WithAttributeFilter drops attributes whose name allow rejects.
func WithAttributeFilter(allow func(name string) bool) Option {
	return func(cfg *config) {
		cfg.allow = allow
	}
}

// WithSanitizer passes every emitted fragment through policy before it is
// written. Hidden inputs are exempt so they are always emitted. The policy
// serializes tags its own way, so `<br />` comes out as `<br/>`.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		cfg.sanitizer = policy
	}
}

func defaultConfig() config {
	return config{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
