package diag

// Detail provides key-value context for diagnostic issues.
//
// Details are used to add structured information to issues that can be
// programmatically inspected by tools. Use the standard detail key constants
// to ensure consistent key naming across the codebase.
type Detail struct {
	Key   string
	Value string
}

// Standard detail keys for consistent diagnostic metadata.
//
// Use these constants to avoid stringly-typed drift and enable programmatic
// inspection of diagnostic details. Custom detail keys are permitted for
// domain-specific diagnostics; use lower_snake_case for custom keys.
const (
	// DetailKeyExpected is the expected value or type.
	DetailKeyExpected = "expected"

	// DetailKeyGot is the actual value or type received.
	DetailKeyGot = "got"

	// DetailKeyTypeName is the struct/enum type name involved in the diagnostic.
	DetailKeyTypeName = "type"

	// DetailKeyFieldName is the struct field name involved.
	DetailKeyFieldName = "field"

	// DetailKeyAnchorName is the anchor name involved (duplicate or unresolved alias).
	DetailKeyAnchorName = "anchor"

	// DetailKeyEnumName is the enum type name (for enum variant diagnostics).
	DetailKeyEnumName = "enum"

	// DetailKeyVariantName is the enum variant name.
	DetailKeyVariantName = "variant"

	// DetailKeyReason is the failure reason discriminant.
	// Used with E0025SpreadNotObject/E0026SpreadNotArray ("alias_kind_mismatch")
	// and E0023ImportNotFound ("io_error", "escapes_root").
	DetailKeyReason = "reason"

	// DetailKeyImportPath is the literal import path string as written.
	DetailKeyImportPath = "path"

	// DetailKeyCanonicalPath is the canonicalized absolute import path.
	DetailKeyCanonicalPath = "canonical_path"

	// DetailKeyAlias is the import alias (namespace or named-import binding).
	DetailKeyAlias = "alias"

	// DetailKeyMemberName is the named-import member that could not be found.
	DetailKeyMemberName = "member"

	// DetailKeyCycle is the cycle participants as a JSON array of canonical paths
	// (for E0022CircularDependency).
	DetailKeyCycle = "cycle"

	// DetailKeyIOError is the underlying filesystem error text (for E0023ImportNotFound).
	DetailKeyIOError = "io_error"

	// DetailKeyPattern is the collection type pattern string (for E0035InvalidCollectionPattern).
	DetailKeyPattern = "pattern"
)

// ExpectedGot creates a pair of details for type mismatch diagnostics.
//
// This is the standard pattern for reporting "expected X, got Y" errors.
func ExpectedGot(expected, got string) []Detail {
	return []Detail{
		{Key: DetailKeyExpected, Value: expected},
		{Key: DetailKeyGot, Value: got},
	}
}

// TypeField creates detail entries for struct field diagnostics.
//
// Use for diagnostics like E0032MissingField and E0033UnexpectedField.
func TypeField(typeName, fieldName string) []Detail {
	return []Detail{
		{Key: DetailKeyTypeName, Value: typeName},
		{Key: DetailKeyFieldName, Value: fieldName},
	}
}

// EnumVariant creates detail entries for enum variant diagnostics.
//
// Use for E0034EnumVariantUnknown.
func EnumVariant(enumName, variantName string) []Detail {
	return []Detail{
		{Key: DetailKeyEnumName, Value: enumName},
		{Key: DetailKeyVariantName, Value: variantName},
	}
}

// ImportAlias creates detail entries for import resolution diagnostics.
//
// Use for E0023ImportNotFound and E0024ImportMemberNotFound.
func ImportAlias(path, alias string) []Detail {
	return []Detail{
		{Key: DetailKeyImportPath, Value: path},
		{Key: DetailKeyAlias, Value: alias},
	}
}
