package resolve

// SourceProvider abstracts reading an imported document's content and
// turning an import path into a canonical one, so the resolver never
// touches the filesystem directly. The default filesystem-backed
// implementation lives in package mon, sandboxed beneath the entry
// document's directory.
type SourceProvider interface {
	// Read returns the content at path.
	Read(path string) ([]byte, error)

	// Canonicalize resolves rel (as written in an import statement)
	// against base (the importing document's canonical path) and returns
	// a canonical path suitable for use as a Cache key.
	Canonicalize(base, rel string) (string, error)
}
