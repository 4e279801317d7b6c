package mon

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mycel-lang/mon/location"
)

// fsProvider is the default filesystem-backed resolve.SourceProvider. It
// sandboxes every import read beneath root using os.Root, so an import
// path cannot escape the module root via "../" segments or symlinks —
// kernel-enforced, avoiding the TOCTOU races a string-prefix check would
// leave open.
type fsProvider struct {
	root     *os.Root
	rootPath string // canonical, slash-normalized; Read relativizes against this
}

// newFSProvider sandboxes imports beneath moduleRoot.
//
// The root path is canonicalized the same way Canonicalize canonicalizes
// an import target — absolute, clean, NFC-normalized, forward-slashed,
// but not symlink-resolved — rather than via
// [location.CanonicalizePathForSourceID]'s stricter (existence-requiring,
// symlink-resolving) canonicalization. Mixing the two would let a
// symlinked root and an unresolved import target disagree about the
// root's own path and misfire the escape check in Read.
func newFSProvider(moduleRoot string) (*fsProvider, error) {
	canonicalRoot, err := canonicalizeImportPath(moduleRoot)
	if err != nil {
		return nil, fmt.Errorf("canonicalize module root %q: %w", moduleRoot, err)
	}
	root, err := os.OpenRoot(filepath.FromSlash(canonicalRoot))
	if err != nil {
		return nil, fmt.Errorf("open module root %q: %w", moduleRoot, err)
	}
	return &fsProvider{root: root, rootPath: canonicalRoot}, nil
}

// Close releases the underlying os.Root handle.
func (p *fsProvider) Close() error {
	if err := p.root.Close(); err != nil {
		return fmt.Errorf("close module root: %w", err)
	}
	return nil
}

// Canonicalize resolves rel (as written in an import statement) against
// base (the importing document's canonical path) and returns a canonical
// path string suitable as a [resolve.Cache] key. It never touches the
// filesystem — the target may not exist yet, and existence is Read's
// concern — so a bad import path surfaces as a read error, not a
// canonicalization error.
func (p *fsProvider) Canonicalize(base, rel string) (string, error) {
	var target string
	if strings.HasPrefix(rel, "./") || strings.HasPrefix(rel, "../") {
		target = filepath.Join(filepath.Dir(filepath.FromSlash(base)), filepath.FromSlash(rel))
	} else {
		target = filepath.Join(filepath.FromSlash(p.rootPath), filepath.FromSlash(rel))
	}
	canonical, err := canonicalizeImportPath(target)
	if err != nil {
		return "", fmt.Errorf("canonicalize import %q: %w", rel, err)
	}
	return canonical, nil
}

// canonicalizeImportPath turns p into an absolute, clean, NFC-normalized,
// forward-slashed path without requiring it to exist or resolving
// symlinks, via the same machinery [location.SourceIDFromAbsolutePath]
// uses internally.
func canonicalizeImportPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", p, err)
	}
	id, err := location.SourceIDFromAbsolutePath(abs)
	if err != nil {
		return "", err
	}
	cp, _ := id.CanonicalPath()
	return cp.String(), nil
}

// Read returns the content at canonicalPath, which must lie beneath the
// configured module root.
func (p *fsProvider) Read(canonicalPath string) ([]byte, error) {
	rel, err := filepath.Rel(filepath.FromSlash(p.rootPath), filepath.FromSlash(canonicalPath))
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil, &pathEscapeError{path: canonicalPath}
	}
	rel = filepath.Clean(rel)

	f, err := p.root.Open(rel)
	if err != nil {
		return nil, p.handleOpenError(err, canonicalPath)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read import %q: %w", canonicalPath, err)
	}
	return content, nil
}

// handleOpenError converts os.Root's escape signal into a *pathEscapeError
// so Analyze can report it distinctly from an ordinary missing-file error.
func (p *fsProvider) handleOpenError(err error, requestedPath string) error {
	if errors.Is(err, fs.ErrInvalid) {
		return &pathEscapeError{path: requestedPath}
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) && pathErr.Err != nil && strings.Contains(pathErr.Err.Error(), "escapes") {
		return &pathEscapeError{path: requestedPath}
	}
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("import file %q not found", requestedPath)
	}
	return fmt.Errorf("open import file %q: %w", requestedPath, err)
}

// pathEscapeError indicates an import path attempted to escape the module
// root.
type pathEscapeError struct {
	path string
}

func (e *pathEscapeError) Error() string {
	return fmt.Sprintf("import path %q escapes module root", e.path)
}
