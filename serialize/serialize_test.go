package serialize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mycel-lang/mon/diag"
	"github.com/mycel-lang/mon/internal/source"
	"github.com/mycel-lang/mon/location"
	"github.com/mycel-lang/mon/parse"
	"github.com/mycel-lang/mon/resolve"
	"github.com/mycel-lang/mon/serialize"
	"github.com/mycel-lang/mon/types"
)

func resolveSrc(t *testing.T, path, src string) *resolve.Document {
	t.Helper()
	reg := source.NewRegistry()
	sourceID := location.MustNewSourceID("string://" + path)
	require.NoError(t, reg.Register(sourceID, []byte(src)))

	coll := diag.NewCollectorUnlimited()
	doc := parse.NewParser(sourceID, src, reg, coll).Parse()
	require.True(t, coll.OK(), "fixture must parse cleanly: %v", coll.Result().IssuesSlice())

	r := resolve.New()
	resolved, res := r.Resolve(doc, sourceID, path)
	require.True(t, res.OK(), "fixture must resolve cleanly: %v", res.IssuesSlice())
	return resolved
}

func TestMarshal_StripsTemplatesAndPreservesOrder(t *testing.T) {
	doc := resolveSrc(t, "basic.mon", `{
		&base: { region: "us-east" },
		b: 1,
		a: 2,
		opts: *base,
	}`)

	out, err := serialize.Marshal(doc.Root)
	require.NoError(t, err)
	assert.Equal(t, `{"b":1,"a":2,"opts":{"region":"us-east"}}`, string(out))
}

func TestMarshal_Indent(t *testing.T) {
	doc := resolveSrc(t, "indent.mon", `{ a: 1, b: [1, 2] }`)

	out, err := serialize.Marshal(doc.Root, serialize.WithIndent("  "))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": [\n    1,\n    2\n  ]\n}", string(out))
}

func TestMarshal_WholeNumberHasNoDecimalPoint(t *testing.T) {
	doc := resolveSrc(t, "numbers.mon", `{ whole: 42, frac: 1.5 }`)

	out, err := serialize.Marshal(doc.Root)
	require.NoError(t, err)
	assert.Equal(t, `{"whole":42,"frac":1.5}`, string(out))
}

func TestMarshal_StringEscaping(t *testing.T) {
	doc := resolveSrc(t, "strings.mon", `{ s: "line1\nline2\t\"quoted\"" }`)

	out, err := serialize.Marshal(doc.Root)
	require.NoError(t, err)
	assert.Equal(t, `{"s":"line1\nline2\t\"quoted\""}`, string(out))
}

func TestMarshal_EnumRendersAsVariantName(t *testing.T) {
	doc := resolveSrc(t, "enum.mon", `{
		Role: #enum { Admin, Member },
		r :: Role = $Role.Admin,
	}`)

	coll := diag.NewCollectorUnlimited()
	result := types.NewValidator(doc, coll).Validate()
	require.True(t, coll.OK(), "%v", coll.Result().IssuesSlice())

	out, err := serialize.Marshal(result)
	require.NoError(t, err)
	assert.Equal(t, `{"r":"Admin"}`, string(out))
}

func TestMarshal_DefaultInjectedFieldRoundTrips(t *testing.T) {
	doc := resolveSrc(t, "defaulted.mon", `{
		Config: #struct { name(String), region(String) = "us-east" },
		c :: Config = { name: "prod" },
	}`)

	coll := diag.NewCollectorUnlimited()
	result := types.NewValidator(doc, coll).Validate()
	require.True(t, coll.OK(), "%v", coll.Result().IssuesSlice())

	out, err := serialize.Marshal(result)
	require.NoError(t, err)
	assert.Equal(t, `{"c":{"name":"prod","region":"us-east"}}`, string(out))
}

func TestMarshal_EmptyObjectAndArray(t *testing.T) {
	doc := resolveSrc(t, "empty.mon", `{ o: {}, a: [] }`)

	out, err := serialize.Marshal(doc.Root)
	require.NoError(t, err)
	assert.Equal(t, `{"o":{},"a":[]}`, string(out))
}

func TestMarshal_Null(t *testing.T) {
	doc := resolveSrc(t, "null.mon", `{ n: null }`)

	out, err := serialize.Marshal(doc.Root)
	require.NoError(t, err)
	assert.Equal(t, `{"n":null}`, string(out))
}
