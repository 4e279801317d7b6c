package resolve

import (
	"fmt"
	"strings"

	"github.com/mycel-lang/mon/ast"
	"github.com/mycel-lang/mon/diag"
	"github.com/mycel-lang/mon/immutable"
	"github.com/mycel-lang/mon/internal/source"
	"github.com/mycel-lang/mon/location"
	"github.com/mycel-lang/mon/parse"
)

// Resolver turns parsed documents into [Document]s, following imports
// transitively. A Resolver is single-use: create one per top-level
// [Resolver.Resolve] call. Its [Cache], if supplied via [WithCache], may be
// shared and reused across many Resolvers and is itself concurrency-safe.
type Resolver struct {
	cfg       *config
	cache     *Cache
	registry  *source.Registry
	collector *diag.Collector

	// stack is the DFS gray set: canonical paths currently being resolved,
	// in visitation order, so a cycle can be reported with its full chain.
	stack []stackFrame
}

type stackFrame struct {
	canonicalPath string
	importSpan    location.Span
}

// New creates a Resolver. Resolving any document with imports requires
// [WithSourceProvider].
func New(opts ...Option) *Resolver {
	cfg := defaultConfig()
	applyOptions(cfg, opts)
	cache := cfg.cache
	if cache == nil {
		cache = NewCache()
	}
	return &Resolver{
		cfg:       cfg,
		cache:     cache,
		registry:  source.NewRegistry(),
		collector: diag.NewCollector(cfg.issueLimit),
	}
}

// Resolve resolves doc (already parsed from the content at canonicalPath,
// identified by sourceID) and every document it transitively imports.
func (r *Resolver) Resolve(doc ast.Document, sourceID location.SourceID, canonicalPath string) (*Document, diag.Result) {
	resultDoc := r.resolveDocument(doc, sourceID, canonicalPath)
	return resultDoc, r.collector.Result()
}

func (r *Resolver) resolveDocument(doc ast.Document, sourceID location.SourceID, canonicalPath string) *Document {
	if cached, ok := r.cache.Get(canonicalPath); ok {
		return cached
	}

	r.cfg.logger.Debug("resolving document", "path", canonicalPath)

	table := newAnchorTable()
	namespaces := make(map[string]*Document)
	var localTypes []TypeDeclEntry
	var validations []ValidationSite

	r.stack = append(r.stack, stackFrame{canonicalPath: canonicalPath})
	defer func() { r.stack = r.stack[:len(r.stack)-1] }()

	for _, imp := range doc.Imports {
		r.resolveImport(imp, canonicalPath, table, namespaces)
	}

	hoistAnchors(doc.Root, table, &localTypes, r.collector)

	ctx := &resolverCtx{anchors: table, coll: r.collector, validations: &validations}
	root := materializeObject(ctx, doc.Root, "$")
	r.materializeFieldDefaults(table, localTypes)

	resultDoc := &Document{
		SourceID:    sourceID,
		Root:        root,
		TypeDecls:   localTypes,
		Namespaces:  namespaces,
		Validations: validations,
		Anchors:     r.exportAnchors(table),
	}

	r.cache.Store(canonicalPath, resultDoc)
	return resultDoc
}

// exportAnchors re-derives the resolved value of every anchor visible in
// table, so a document that imports from this one can pull them out of
// [Document.Anchors]. Validation sites are not recorded during this pass:
// an anchor never appears in Root, so a site keyed to its synthetic path
// would never correspond to anything the type validator walks.
func (r *Resolver) exportAnchors(table *anchorTable) map[string]immutable.Value {
	if len(table.slots) == 0 {
		return nil
	}
	ctx := &resolverCtx{anchors: table, coll: r.collector}
	out := make(map[string]immutable.Value, len(table.slots))
	for name := range table.slots {
		val, ok := materializeAliasByName(ctx, name, location.Span{}, "&"+name)
		if ok {
			out[name] = val
		}
	}
	return out
}

// materializeFieldDefaults resolves the anchor references a struct field's
// default value may contain, storing the result on each TypeDeclEntry. This
// runs against the fully-hoisted table so a default may reference any
// anchor in the document, not just ones declared before it. Defaults
// produce no ValidationSite entries of their own: a default is trusted
// correct at declaration time and is never itself annotated with "::".
func (r *Resolver) materializeFieldDefaults(table *anchorTable, types []TypeDeclEntry) {
	ctx := &resolverCtx{anchors: table, coll: r.collector}
	for i := range types {
		entry := &types[i]
		if entry.Decl.Kind != ast.StructDecl {
			continue
		}
		for _, f := range entry.Decl.Fields {
			if f.Default == nil {
				continue
			}
			if entry.Defaults == nil {
				entry.Defaults = make(map[string]immutable.Value, len(entry.Decl.Fields))
			}
			path := fmt.Sprintf("#%s.%s", entry.Name, f.Name)
			entry.Defaults[f.Name] = materializeValue(ctx, *f.Default, path)
		}
	}
}

func (r *Resolver) resolveImport(imp ast.ImportStmt, basePath string, table *anchorTable, namespaces map[string]*Document) {
	if r.cfg.provider == nil {
		r.collector.Collect(diag.NewIssue(diag.Error, diag.E0023ImportNotFound,
			fmt.Sprintf("cannot resolve import %q: no source provider configured", imp.Path)).
			WithSpan(imp.Span).
			Build())
		return
	}

	targetPath, err := r.cfg.provider.Canonicalize(basePath, imp.Path)
	if err != nil {
		r.collector.Collect(diag.NewIssue(diag.Error, diag.E0023ImportNotFound,
			fmt.Sprintf("cannot resolve import %q: %s", imp.Path, err)).
			WithSpan(imp.Span).
			Build())
		return
	}

	targetDoc := r.loadAndResolve(targetPath, imp.Span)
	if targetDoc == nil {
		return
	}

	switch imp.Kind {
	case ast.NamespaceImport:
		namespaces[imp.AsName] = targetDoc
	case ast.NamedImport:
		for _, spec := range imp.Specs {
			r.resolveNamedImportSpec(spec, imp.Path, targetDoc, table)
		}
	}
}

func (r *Resolver) resolveNamedImportSpec(spec ast.ImportSpec, importPath string, targetDoc *Document, table *anchorTable) {
	if spec.IsAnchor {
		val, ok := targetDoc.Anchors[spec.Name]
		if !ok {
			r.collector.Collect(diag.NewIssue(diag.Error, diag.E0024ImportMemberNotFound,
				fmt.Sprintf("anchor %q not found in %q", spec.Name, importPath)).
				WithSpan(spec.Span).
				Build())
			return
		}
		table.declareImported(spec.Name, val)
		return
	}

	rootMap, ok := targetDoc.Root.Map()
	if ok {
		if val, ok := rootMap.Get(spec.Name); ok {
			table.declareImported(spec.Name, val)
			return
		}
	}
	r.collector.Collect(diag.NewIssue(diag.Error, diag.E0024ImportMemberNotFound,
		fmt.Sprintf("key %q not found in %q", spec.Name, importPath)).
		WithSpan(spec.Span).
		Build())
}

// loadAndResolve reads, parses, and resolves the document at targetPath,
// detecting import cycles against the current DFS stack. Returns nil (with
// a diagnostic already collected) if the document could not be read or
// forms a cycle.
func (r *Resolver) loadAndResolve(targetPath string, importSpan location.Span) *Document {
	if cached, ok := r.cache.Get(targetPath); ok {
		return cached
	}

	for _, frame := range r.stack {
		if frame.canonicalPath == targetPath {
			r.reportCycle(targetPath, importSpan)
			return nil
		}
	}

	content, err := r.cfg.provider.Read(targetPath)
	if err != nil {
		r.collector.Collect(diag.NewIssue(diag.Error, diag.E0023ImportNotFound,
			fmt.Sprintf("cannot read %q: %s", targetPath, err)).
			WithSpan(importSpan).
			Build())
		return nil
	}

	targetSourceID := sourceIDForPath(targetPath)
	if regErr := r.registry.Register(targetSourceID, content); regErr != nil {
		r.collector.Collect(diag.NewIssue(diag.Error, diag.E0023ImportNotFound,
			fmt.Sprintf("cannot register %q: %s", targetPath, regErr)).
			WithSpan(importSpan).
			Build())
		return nil
	}

	parser := parse.NewParser(targetSourceID, string(content), r.registry, r.collector)
	targetAST := parser.Parse()

	r.stack[len(r.stack)-1].importSpan = importSpan
	return r.resolveDocument(targetAST, targetSourceID, targetPath)
}

func (r *Resolver) reportCycle(targetPath string, importSpan location.Span) {
	var chain []string
	for _, frame := range r.stack {
		chain = append(chain, frame.canonicalPath)
	}
	chain = append(chain, targetPath)

	var related []location.RelatedInfo
	for _, frame := range r.stack {
		if !frame.importSpan.IsZero() {
			related = append(related, location.RelatedInfo{
				Span:    frame.importSpan,
				Message: "imports " + frame.canonicalPath,
			})
		}
	}

	r.collector.Collect(diag.NewIssue(diag.Error, diag.E0022CircularDependency,
		fmt.Sprintf("circular import: %s", strings.Join(chain, " -> "))).
		WithSpan(importSpan).
		WithRelated(related...).
		Build())
}

// sourceIDForPath builds a SourceID for a canonical import path. Real
// filesystem providers hand back absolute paths; test providers are free
// to use scheme-prefixed synthetic identifiers (e.g. "test://a.mon")
// instead, which SourceIDFromAbsolutePath would reject.
func sourceIDForPath(p string) location.SourceID {
	if id, err := location.SourceIDFromAbsolutePath(p); err == nil {
		return id
	}
	return location.NewSourceID(p)
}
