package mon_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mycel-lang/mon/mon"
)

// memoryProvider is an in-memory resolve.SourceProvider for tests:
// canonical paths are just the map keys, and Canonicalize ignores base
// since every test path is written out in full.
type memoryProvider struct {
	files map[string]string
}

func (p *memoryProvider) Read(path string) ([]byte, error) {
	content, ok := p.files[path]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", path)
	}
	return []byte(content), nil
}

func (p *memoryProvider) Canonicalize(base, rel string) (string, error) {
	if _, ok := p.files[rel]; !ok {
		return "", fmt.Errorf("no such file: %s", rel)
	}
	return rel, nil
}

func TestAnalyze_NoImports(t *testing.T) {
	doc, res, err := mon.Analyze(`{ a: 1, b: "x" }`, "string://entry.mon")
	require.NoError(t, err)
	require.True(t, res.OK(), "%v", res.IssuesSlice())
	require.NotNil(t, doc)

	out, err := doc.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":"x"}`, string(out))
}

func TestAnalyze_ParseErrorYieldsNoDocument(t *testing.T) {
	doc, res, err := mon.Analyze(`{ a: `, "string://broken.mon")
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Nil(t, doc)
}

func TestAnalyze_TypeMismatchYieldsNoDocument(t *testing.T) {
	doc, res, err := mon.Analyze(`{
		Config: #struct { port(Number) },
		c :: Config = { port: "not a number" },
	}`, "string://cfg.mon")
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Nil(t, doc)
}

func TestAnalyze_WithIndent(t *testing.T) {
	doc, res, err := mon.Analyze(`{ a: [1, 2] }`, "string://indent.mon", mon.WithIndent("  "))
	require.NoError(t, err)
	require.True(t, res.OK(), "%v", res.IssuesSlice())

	out, err := doc.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": [\n    1,\n    2\n  ]\n}", string(out))
}

func TestAnalyze_CustomSourceProviderResolvesImport(t *testing.T) {
	provider := &memoryProvider{files: map[string]string{
		"lib.mon": `{ &theme: { mode: "dark" }, version: 2 }`,
	}}

	doc, res, err := mon.Analyze(`import { version, &theme } from "lib.mon" {
		v: *version,
		t: *theme,
	}`, "app.mon", mon.WithSourceProvider(provider))
	require.NoError(t, err)
	require.True(t, res.OK(), "%v", res.IssuesSlice())

	out, err := doc.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"v":2,"t":{"mode":"dark"}}`, string(out))
}

func TestAnalyze_ImportNotFoundIsReported(t *testing.T) {
	provider := &memoryProvider{files: map[string]string{}}

	doc, res, err := mon.Analyze(`import { x } from "missing.mon" { a: 1 }`, "app.mon",
		mon.WithSourceProvider(provider))
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Nil(t, doc)
}

func TestAnalyze_DefaultFilesystemProviderReadsRelativeImport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.mon"), []byte(`{ &shared: { region: "us-east" } }`), 0o644))

	entryPath := filepath.Join(dir, "app.mon")
	text := `import { &shared } from "./lib.mon" { cfg: *shared }`

	doc, res, err := mon.Analyze(text, entryPath)
	require.NoError(t, err)
	require.True(t, res.OK(), "%v", res.IssuesSlice())

	out, err := doc.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"cfg":{"region":"us-east"}}`, string(out))
}

func TestAnalyze_DefaultFilesystemProviderRejectsEscape(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "proj")
	require.NoError(t, os.Mkdir(root, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.mon"), []byte(`{ x: 1 }`), 0o644))

	entryPath := filepath.Join(root, "app.mon")
	text := `import { x } from "../secret.mon" { a: 1 }`

	doc, res, err := mon.Analyze(text, entryPath)
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Nil(t, doc)
}
