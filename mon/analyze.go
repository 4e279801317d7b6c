// Package mon is the public entry point: parse, resolve, and type-validate
// a MON document, following its imports, and project the result to
// canonical JSON.
package mon

import (
	"fmt"
	"path/filepath"

	"github.com/mycel-lang/mon/diag"
	"github.com/mycel-lang/mon/immutable"
	"github.com/mycel-lang/mon/internal/source"
	"github.com/mycel-lang/mon/location"
	"github.com/mycel-lang/mon/parse"
	"github.com/mycel-lang/mon/resolve"
	"github.com/mycel-lang/mon/serialize"
	"github.com/mycel-lang/mon/types"
)

// ResolvedDocument is the successful output of [Analyze]: a fully resolved
// and type-validated value tree, ready for canonical JSON projection.
type ResolvedDocument struct {
	doc    *resolve.Document
	root   immutable.Value
	indent string
}

// Root returns the resolved, type-validated value tree.
func (d *ResolvedDocument) Root() immutable.Value {
	return d.root
}

// Document returns the underlying resolver output — type declarations,
// namespaces, and validation sites — for callers that need more than the
// projected value tree (tooling, LSP-style introspection).
func (d *ResolvedDocument) Document() *resolve.Document {
	return d.doc
}

// ToJSON renders the document as canonical JSON. opts are appended after
// the indentation configured on the originating [Analyze] call via
// [WithIndent], if any, so a caller-supplied [serialize.WithIndent] here
// still wins.
func (d *ResolvedDocument) ToJSON(opts ...serialize.Option) ([]byte, error) {
	if d.indent != "" {
		opts = append([]serialize.Option{serialize.WithIndent(d.indent)}, opts...)
	}
	return serialize.Marshal(d.root, opts...)
}

// Analyze parses, resolves, and type-validates text — the document named
// by originPath — following any imports it declares. originPath need not
// exist on disk: it identifies the document in diagnostics and, unless
// overridden by [WithModuleRoot] or [WithSourceProvider], anchors the
// default filesystem [resolve.SourceProvider] at its containing directory.
//
// Diagnostics from every pipeline stage (parsing, resolution, type
// validation) are merged into a single [diag.Result]. Per spec, a
// ResolvedDocument and a failing Result are mutually exclusive. Parsing and
// resolution always both run; if either collects a Fatal or Error
// diagnostic, Analyze skips type validation and returns a nil
// ResolvedDocument, as it also does when type validation reports one — a
// half-resolved or half-validated tree is not a useful result to hand
// back, and spec.md's analyze signature already models this as
// `Result<ResolvedDocument, Diagnostics>` rather than returning both.
func Analyze(text, originPath string, opts ...Option) (*ResolvedDocument, diag.Result, error) {
	cfg := defaultConfig()
	applyOptions(cfg, opts)

	sourceID, canonicalPath := entrySourceID(originPath)

	registry := source.NewRegistry()
	if err := registry.Register(sourceID, []byte(text)); err != nil {
		return nil, diag.Result{}, fmt.Errorf("mon: register %q: %w", originPath, err)
	}

	coll := diag.NewCollector(cfg.issueLimit)

	cfg.logger.Debug("parsing document", "path", canonicalPath)
	doc := parse.NewParser(sourceID, text, registry, coll).Parse()

	provider, closeProvider, err := cfg.resolveProvider(canonicalPath)
	if err != nil {
		return nil, diag.Result{}, fmt.Errorf("mon: %w", err)
	}
	if closeProvider != nil {
		defer closeProvider()
	}

	cache := cfg.cache
	if cache == nil {
		cache = resolve.NewCache()
	}

	r := resolve.New(
		resolve.WithSourceProvider(provider),
		resolve.WithCache(cache),
		resolve.WithIssueLimit(cfg.issueLimit),
		resolve.WithLogger(cfg.logger),
	)

	resolvedDoc, resolveResult := r.Resolve(doc, sourceID, canonicalPath)
	coll.Merge(resolveResult)

	if coll.HasErrors() {
		return nil, coll.Result(), nil
	}

	cfg.logger.Debug("validating types", "path", canonicalPath, "types", len(resolvedDoc.TypeDecls))
	validator := types.NewValidator(resolvedDoc, coll)
	root := validator.Validate()

	if coll.HasErrors() {
		return nil, coll.Result(), nil
	}

	return &ResolvedDocument{doc: resolvedDoc, root: root, indent: cfg.indent}, coll.Result(), nil
}

// resolveProvider picks the SourceProvider for this Analyze call: an
// explicit override, or a filesystem provider sandboxed beneath
// cfg.moduleRoot (or canonicalPath's own directory, if unset). The
// returned close func is nil when the provider was supplied by the caller,
// since Analyze does not own its lifetime.
func (cfg *config) resolveProvider(canonicalPath string) (resolve.SourceProvider, func(), error) {
	if cfg.provider != nil {
		return cfg.provider, nil, nil
	}
	root := cfg.moduleRoot
	if root == "" {
		root = filepath.Dir(canonicalPath)
	}
	fp, err := newFSProvider(root)
	if err != nil {
		return nil, nil, err
	}
	return fp, func() { _ = fp.Close() }, nil
}

// entrySourceID builds the SourceID and canonical path for the entry
// document. Mirrors resolve package's own sourceIDForPath: a real,
// absolute originPath produces a file-backed SourceID; anything else
// (relative paths, scheme-prefixed synthetic identifiers used in tests)
// falls back to a synthetic one. A synthetic entry has no directory of its
// own, so resolving its relative imports requires WithModuleRoot or
// WithSourceProvider.
func entrySourceID(originPath string) (location.SourceID, string) {
	if id, err := location.SourceIDFromAbsolutePath(originPath); err == nil {
		cp, _ := id.CanonicalPath()
		return id, cp.String()
	}
	return location.NewSourceID(originPath), originPath
}
