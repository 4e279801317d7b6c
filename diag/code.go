package diag

// CodeCategory represents the semantic domain of an error code.
//
// Categories represent the pipeline stage that emits an error, not
// necessarily the package it lives in. Most codes are emitted exclusively by
// their category's stage, but a few (notably E_INTERNAL) are cross-cutting.
type CodeCategory uint8

const (
	// CategorySentinel is for sentinel codes like E_LIMIT_REACHED and E_INTERNAL.
	CategorySentinel CodeCategory = iota

	// CategoryLexical is for tokenizer-level errors.
	CategoryLexical

	// CategorySyntactic is for parser-level errors.
	CategorySyntactic

	// CategoryResolution is for import/anchor/alias/spread resolution errors.
	CategoryResolution

	// CategoryTyping is for struct/enum validation errors.
	CategoryTyping
)

// String returns a human-readable label for the category.
func (c CodeCategory) String() string {
	switch c {
	case CategorySentinel:
		return "sentinel"
	case CategoryLexical:
		return "lexical"
	case CategorySyntactic:
		return "syntactic"
	case CategoryResolution:
		return "resolution"
	case CategoryTyping:
		return "typing"
	default:
		return "unknown"
	}
}

// Code is a stable programmatic identifier for an Issue.
//
// Error codes are stable identifiers that tools can match on, even when
// message text changes. The Code type uses unexported fields to enforce
// a closed set of valid codes—only codes defined in this package are valid.
//
// Code.String() values are globally unique across all categories. The
// CodeCategory is informational metadata for filtering and grouping.
type Code struct {
	value string
	cat   CodeCategory
}

// String returns the code's string representation (e.g., "E0001").
func (c Code) String() string {
	return c.value
}

// Category returns the programmatic category for this code.
func (c Code) Category() CodeCategory {
	return c.cat
}

// IsZero reports whether the code is unset.
func (c Code) IsZero() bool {
	return c.value == ""
}

// code is the unexported constructor—callers cannot create arbitrary codes.
func code(value string, cat CodeCategory) Code {
	return Code{value: value, cat: cat}
}

// Sentinel codes.
var (
	// E_LIMIT_REACHED is a sentinel code for explicit limit notification.
	// It does not automatically trigger Result.LimitReached(); use
	// Collector.LimitReached() to check limit status. Callers may inject
	// this code manually when desired.
	E_LIMIT_REACHED = code("E_LIMIT_REACHED", CategorySentinel)

	// E_INTERNAL indicates an unexpected invariant failure (internal bug indicator).
	// Use for conditions that should never occur in correct code.
	E_INTERNAL = code("E_INTERNAL", CategorySentinel)
)

// Lexical codes (spec §7, "Lexical" row).
var (
	// E0001UnterminatedString indicates a string literal ran to EOF without a closing quote.
	E0001UnterminatedString = code("E0001", CategoryLexical)

	// E0002InvalidNumber indicates a malformed numeric literal.
	E0002InvalidNumber = code("E0002", CategoryLexical)

	// E0003InvalidEscape indicates an unrecognized escape sequence inside a string.
	E0003InvalidEscape = code("E0003", CategoryLexical)

	// E0004UnexpectedChar indicates a byte that starts no valid token.
	E0004UnexpectedChar = code("E0004", CategoryLexical)
)

// Syntactic codes (spec §7, "Syntactic" row).
var (
	// E0010UnexpectedToken indicates the parser found a token other than what the grammar expected.
	E0010UnexpectedToken = code("E0010", CategorySyntactic)

	// E0011MissingImportPath indicates an import statement lacks its source path string.
	E0011MissingImportPath = code("E0011", CategorySyntactic)

	// E0012InvalidSpreadContext indicates `...` appeared somewhere other than as an object member or array element.
	E0012InvalidSpreadContext = code("E0012", CategorySyntactic)

	// E0013InvalidAnchorTarget indicates `&`/`*` was not immediately followed by an identifier.
	E0013InvalidAnchorTarget = code("E0013", CategorySyntactic)
)

// Resolution codes (spec §7, "Resolution" row).
var (
	// E0020UnknownAlias indicates `*name` has no visible anchor `name`.
	E0020UnknownAlias = code("E0020", CategoryResolution)

	// E0021DuplicateAnchor indicates the same anchor name was declared twice in one document.
	E0021DuplicateAnchor = code("E0021", CategoryResolution)

	// E0022CircularDependency indicates the import graph contains a cycle.
	E0022CircularDependency = code("E0022", CategoryResolution)

	// E0023ImportNotFound indicates an imported path could not be read.
	E0023ImportNotFound = code("E0023", CategoryResolution)

	// E0024ImportMemberNotFound indicates a named import referenced a key or anchor absent from the target document.
	E0024ImportMemberNotFound = code("E0024", CategoryResolution)

	// E0025SpreadNotObject indicates an object spread's alias resolved to a non-object value.
	E0025SpreadNotObject = code("E0025", CategoryResolution)

	// E0026SpreadNotArray indicates an array spread's alias resolved to a non-array value.
	E0026SpreadNotArray = code("E0026", CategoryResolution)
)

// Typing codes (spec §7, "Typing" row).
var (
	// E0030UnknownType indicates a `::` annotation referenced an undeclared type name.
	E0030UnknownType = code("E0030", CategoryTyping)

	// E0031TypeMismatch indicates a value's shape does not match its declared type.
	E0031TypeMismatch = code("E0031", CategoryTyping)

	// E0032MissingField indicates a struct-typed value omitted a field with no default.
	E0032MissingField = code("E0032", CategoryTyping)

	// E0033UnexpectedField indicates a struct-typed value carried a field absent from the struct declaration.
	E0033UnexpectedField = code("E0033", CategoryTyping)

	// E0034EnumVariantUnknown indicates an `$Enum.Variant` reference named a variant the enum doesn't declare.
	E0034EnumVariantUnknown = code("E0034", CategoryTyping)

	// E0035InvalidCollectionPattern indicates a collection type declared more than one variadic element.
	E0035InvalidCollectionPattern = code("E0035", CategoryTyping)

	// E0036ShadowedImport indicates a local type declaration shadows an imported name of the same name (warning-level, continues).
	E0036ShadowedImport = code("E0036", CategoryTyping)

	// E0037DuplicateTypeDecl indicates a document declares two struct/enum types under the same name.
	E0037DuplicateTypeDecl = code("E0037", CategoryTyping)
)

// allCodes contains all defined codes for AllCodes() and uniqueness verification.
var allCodes = []Code{
	// Sentinel
	E_LIMIT_REACHED,
	E_INTERNAL,
	// Lexical
	E0001UnterminatedString,
	E0002InvalidNumber,
	E0003InvalidEscape,
	E0004UnexpectedChar,
	// Syntactic
	E0010UnexpectedToken,
	E0011MissingImportPath,
	E0012InvalidSpreadContext,
	E0013InvalidAnchorTarget,
	// Resolution
	E0020UnknownAlias,
	E0021DuplicateAnchor,
	E0022CircularDependency,
	E0023ImportNotFound,
	E0024ImportMemberNotFound,
	E0025SpreadNotObject,
	E0026SpreadNotArray,
	// Typing
	E0030UnknownType,
	E0031TypeMismatch,
	E0032MissingField,
	E0033UnexpectedField,
	E0034EnumVariantUnknown,
	E0035InvalidCollectionPattern,
	E0036ShadowedImport,
	E0037DuplicateTypeDecl,
}

// AllCodes returns all defined codes.
//
// This function is useful for tooling and testing. The returned slice is a
// copy; modifications do not affect the original.
func AllCodes() []Code {
	result := make([]Code, len(allCodes))
	copy(result, allCodes)
	return result
}

// CodesByCategory returns codes in the given category.
//
// The returned slice is a new allocation; modifications do not affect
// internal state.
func CodesByCategory(cat CodeCategory) []Code {
	var result []Code
	for _, c := range allCodes {
		if c.cat == cat {
			result = append(result, c)
		}
	}
	return result
}
