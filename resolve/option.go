package resolve

import "log/slog"

// Option configures a [Resolver].
type Option func(*config)

type config struct {
	provider   SourceProvider
	cache      *Cache
	issueLimit int
	logger     *slog.Logger
}

func defaultConfig() *config {
	return &config{
		issueLimit: 100,
		logger:     slog.New(slog.DiscardHandler),
	}
}

func applyOptions(cfg *config, opts []Option) {
	for _, opt := range opts {
		opt(cfg)
	}
}

// WithSourceProvider supplies the reader used to load imported documents.
// Required unless the document being resolved has no imports.
func WithSourceProvider(p SourceProvider) Option {
	return func(c *config) { c.provider = p }
}

// WithCache supplies a [Cache] to reuse across analyze calls. If omitted, a
// fresh one is created per Resolve call.
func WithCache(cache *Cache) Option {
	return func(c *config) { c.cache = cache }
}

// WithIssueLimit caps the number of diagnostics collected during
// resolution. Zero means unlimited. Default is 100.
func WithIssueLimit(limit int) Option {
	return func(c *config) { c.issueLimit = limit }
}

// WithLogger supplies a structured logger for import-graph tracing. If
// omitted, logging is discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}
