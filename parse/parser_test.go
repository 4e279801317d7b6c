package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mycel-lang/mon/ast"
	"github.com/mycel-lang/mon/diag"
	"github.com/mycel-lang/mon/internal/source"
	"github.com/mycel-lang/mon/location"
)

func parseSrc(t *testing.T, src string) (ast.Document, *diag.Collector) {
	t.Helper()
	reg := source.NewRegistry()
	sourceID := location.MustNewSourceID("string://test")
	require.NoError(t, reg.Register(sourceID, []byte(src)))

	coll := diag.NewCollectorUnlimited()
	p := NewParser(sourceID, src, reg, coll)
	doc := p.Parse()
	return doc, coll
}

func findPair(t *testing.T, members []ast.Member, key string) *ast.Pair {
	t.Helper()
	for _, m := range members {
		if m.Kind == ast.PairMember && m.Pair.Key.Name == key {
			return m.Pair
		}
	}
	t.Fatalf("no pair with key %q", key)
	return nil
}

func TestParser_S1_PrimitivesAndComments(t *testing.T) {
	doc, coll := parseSrc(t, "{ a: \"x\", // note\n b: on, c: null }")
	assert.True(t, coll.OK())
	require.Equal(t, ast.Object, doc.Root.Kind)
	require.Len(t, doc.Root.Members, 3)

	a := findPair(t, doc.Root.Members, "a")
	assert.Equal(t, ast.StringVal, a.Value.Kind)
	assert.Equal(t, "x", a.Value.Str)

	b := findPair(t, doc.Root.Members, "b")
	assert.Equal(t, ast.BoolVal, b.Value.Kind)
	assert.True(t, b.Value.Bool)

	c := findPair(t, doc.Root.Members, "c")
	assert.Equal(t, ast.NullVal, c.Value.Kind)
}

func TestParser_AnchorAliasRoundTrip(t *testing.T) {
	doc, coll := parseSrc(t, `{ &base: { theme: "dark" }, a: *base, b: *base }`)
	assert.True(t, coll.OK())

	base := findPair(t, doc.Root.Members, "base")
	assert.Equal(t, "base", base.Value.Anchor)
	assert.Equal(t, ast.Object, base.Value.Kind)

	a := findPair(t, doc.Root.Members, "a")
	assert.Equal(t, ast.AliasRef, a.Value.Kind)
	assert.Equal(t, "base", a.Value.Alias)
}

func TestParser_ObjectSpread(t *testing.T) {
	doc, coll := parseSrc(t, `{ prod: { ...*d, p: 2, q: 3 } }`)
	assert.True(t, coll.OK())

	prod := findPair(t, doc.Root.Members, "prod")
	require.Len(t, prod.Value.Members, 3)
	assert.Equal(t, ast.SpreadMember, prod.Value.Members[0].Kind)
	assert.Equal(t, "d", prod.Value.Members[0].Spread.AliasName)
}

func TestParser_ArraySpread(t *testing.T) {
	doc, coll := parseSrc(t, `{ admin: ["LOGIN", ...*base, "DELETE"] }`)
	assert.True(t, coll.OK())

	admin := findPair(t, doc.Root.Members, "admin")
	require.Len(t, admin.Value.Elements, 3)
	assert.Equal(t, ast.ValueElem, admin.Value.Elements[0].Kind)
	assert.Equal(t, ast.SpreadElem, admin.Value.Elements[1].Kind)
	assert.Equal(t, "base", admin.Value.Elements[1].Spread.AliasName)
	assert.Equal(t, ast.ValueElem, admin.Value.Elements[2].Kind)
}

func TestParser_ValidatedPair(t *testing.T) {
	doc, coll := parseSrc(t, `{ u :: User = { id: 1 } }`)
	assert.True(t, coll.OK())

	u := findPair(t, doc.Root.Members, "u")
	require.NotNil(t, u.Validation)
	assert.Equal(t, ast.NamedType, u.Validation.Kind)
	assert.Equal(t, "User", u.Validation.Name)
	assert.Equal(t, ast.Validated, u.Sep)
}

func TestParser_StructAndEnumDecl(t *testing.T) {
	doc, coll := parseSrc(t, `{
		User: #struct { id(Number), name(String), active(Boolean) = true },
		Role: #enum { Admin, Member }
	}`)
	assert.True(t, coll.OK())

	user := findPair(t, doc.Root.Members, "User")
	require.Equal(t, ast.TypeDefVal, user.Value.Kind)
	require.NotNil(t, user.Value.TypeDef)
	assert.Equal(t, ast.StructDecl, user.Value.TypeDef.Kind)
	require.Len(t, user.Value.TypeDef.Fields, 3)
	assert.Equal(t, "active", user.Value.TypeDef.Fields[2].Name)
	require.NotNil(t, user.Value.TypeDef.Fields[2].Default)

	role := findPair(t, doc.Root.Members, "Role")
	require.Equal(t, ast.EnumDecl, role.Value.TypeDef.Kind)
	assert.Equal(t, []string{"Admin", "Member"}, role.Value.TypeDef.Variants)
}

func TestParser_EnumRef(t *testing.T) {
	doc, coll := parseSrc(t, `{ r: $Role.Admin }`)
	assert.True(t, coll.OK())

	r := findPair(t, doc.Root.Members, "r")
	require.Equal(t, ast.EnumRefVal, r.Value.Kind)
	assert.Equal(t, "Role", r.Value.EnumRef.EnumName)
	assert.Equal(t, "Admin", r.Value.EnumRef.Variant)
	assert.False(t, r.Value.EnumRef.IsQualified())
}

func TestParser_NamespacedEnumRef(t *testing.T) {
	doc, coll := parseSrc(t, `{ r: $ns.Role.Admin }`)
	assert.True(t, coll.OK())

	r := findPair(t, doc.Root.Members, "r")
	assert.Equal(t, "ns", r.Value.EnumRef.Namespace)
	assert.Equal(t, "Role", r.Value.EnumRef.EnumName)
	assert.Equal(t, "Admin", r.Value.EnumRef.Variant)
	assert.True(t, r.Value.EnumRef.IsQualified())
}

func TestParser_NamespaceImport(t *testing.T) {
	doc, coll := parseSrc(t, `import * as ns from "other.mon" { x: 1 }`)
	assert.True(t, coll.OK())
	require.Len(t, doc.Imports, 1)
	assert.Equal(t, ast.NamespaceImport, doc.Imports[0].Kind)
	assert.Equal(t, "ns", doc.Imports[0].AsName)
	assert.Equal(t, "other.mon", doc.Imports[0].Path)
}

func TestParser_NamedImportWithAnchor(t *testing.T) {
	doc, coll := parseSrc(t, `import { X, &Y } from "lib.mon" { x: 1 }`)
	assert.True(t, coll.OK())
	require.Len(t, doc.Imports, 1)
	specs := doc.Imports[0].Specs
	require.Len(t, specs, 2)
	assert.Equal(t, "X", specs[0].Name)
	assert.False(t, specs[0].IsAnchor)
	assert.Equal(t, "Y", specs[1].Name)
	assert.True(t, specs[1].IsAnchor)
}

func TestParser_TrailingCommaAccepted(t *testing.T) {
	doc, coll := parseSrc(t, `{ a: 1, b: 2, }`)
	assert.True(t, coll.OK())
	require.Len(t, doc.Root.Members, 2)
}

func TestParser_CollectionPattern(t *testing.T) {
	doc, coll := parseSrc(t, `{ u :: [String, Any...] = ["x", 1, 2] }`)
	assert.True(t, coll.OK())
	u := findPair(t, doc.Root.Members, "u")
	require.Equal(t, ast.CollectionType, u.Validation.Kind)
	require.Len(t, u.Validation.Elements, 2)
	assert.False(t, u.Validation.Elements[0].Variadic)
	assert.True(t, u.Validation.Elements[1].Variadic)
}

func TestParser_S8_ErrorTolerantMissingComma(t *testing.T) {
	doc, coll := parseSrc(t, `{ host: "local" port: 8080 }`)
	assert.False(t, coll.OK())
	require.Len(t, doc.Root.Members, 2)
	host := findPair(t, doc.Root.Members, "host")
	assert.Equal(t, "local", host.Value.Str)
	port := findPair(t, doc.Root.Members, "port")
	assert.Equal(t, 8080.0, port.Value.Num.Value)
}

func TestParser_ParseIsTotalNeverPanics(t *testing.T) {
	inputs := []string{
		``,
		`{`,
		`}`,
		`{{{{`,
		`{ a: }`,
		`{ a:: b }`,
		`{ &: 1 }`,
		`{ ...*x }`,
		`import`,
		`{ a: [1, 2`,
		`"unterminated`,
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			parseSrc(t, in)
		}, "input: %q", in)
	}
}
