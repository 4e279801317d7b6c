package mon

import (
	"log/slog"

	"github.com/mycel-lang/mon/resolve"
)

// Option configures an [Analyze] call.
type Option func(*config)

type config struct {
	moduleRoot string
	provider   resolve.SourceProvider
	cache      *resolve.Cache
	issueLimit int
	logger     *slog.Logger
	indent     string
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

// WithModuleRoot sandboxes every relative import beneath root instead of
// the entry document's own directory. Ignored if a [resolve.SourceProvider]
// is supplied via WithSourceProvider.
func WithModuleRoot(root string) Option {
	return func(c *config) { c.moduleRoot = root }
}

// WithSourceProvider overrides the default filesystem-backed
// [resolve.SourceProvider], e.g. for analyzing in-memory sources in tests
// or an embedder's own virtual filesystem.
func WithSourceProvider(p resolve.SourceProvider) Option {
	return func(c *config) { c.provider = p }
}

// WithCache supplies a [resolve.Cache] to reuse across Analyze calls —
// useful for an embedder (an LSP server, a long-running build tool) that
// reanalyzes the same import graph repeatedly. If omitted, a fresh cache
// is created per call.
func WithCache(cache *resolve.Cache) Option {
	return func(c *config) { c.cache = cache }
}

// WithIssueLimit caps the number of diagnostics collected across parsing,
// resolution, and type validation combined. Zero means unlimited. Default
// is 100.
func WithIssueLimit(limit int) Option {
	return func(c *config) { c.issueLimit = limit }
}

// WithLogger supplies a structured logger for pipeline tracing. If
// omitted, logging is discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithIndent sets the indentation [ResolvedDocument.ToJSON] uses by
// default. The zero value produces compact output.
func WithIndent(indent string) Option {
	return func(c *config) { c.indent = indent }
}
