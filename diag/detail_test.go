package diag

import "testing"

func TestDetailKeyConstants(t *testing.T) {
	// Verify all standard detail keys are non-empty and follow naming conventions
	keys := []struct {
		name  string
		value string
	}{
		{"DetailKeyExpected", DetailKeyExpected},
		{"DetailKeyGot", DetailKeyGot},
		{"DetailKeyTypeName", DetailKeyTypeName},
		{"DetailKeyFieldName", DetailKeyFieldName},
		{"DetailKeyAnchorName", DetailKeyAnchorName},
		{"DetailKeyEnumName", DetailKeyEnumName},
		{"DetailKeyVariantName", DetailKeyVariantName},
		{"DetailKeyReason", DetailKeyReason},
		{"DetailKeyImportPath", DetailKeyImportPath},
		{"DetailKeyCanonicalPath", DetailKeyCanonicalPath},
		{"DetailKeyAlias", DetailKeyAlias},
		{"DetailKeyMemberName", DetailKeyMemberName},
		{"DetailKeyCycle", DetailKeyCycle},
		{"DetailKeyIOError", DetailKeyIOError},
		{"DetailKeyPattern", DetailKeyPattern},
	}

	for _, k := range keys {
		t.Run(k.name, func(t *testing.T) {
			if k.value == "" {
				t.Errorf("%s is empty", k.name)
			}
			// Verify lower_snake_case (no uppercase letters)
			for _, r := range k.value {
				if r >= 'A' && r <= 'Z' {
					t.Errorf("%s contains uppercase: %q", k.name, k.value)
					break
				}
			}
		})
	}
}

func TestDetailKeyConstants_Uniqueness(t *testing.T) {
	keys := []string{
		DetailKeyExpected,
		DetailKeyGot,
		DetailKeyTypeName,
		DetailKeyFieldName,
		DetailKeyAnchorName,
		DetailKeyEnumName,
		DetailKeyVariantName,
		DetailKeyReason,
		DetailKeyImportPath,
		DetailKeyCanonicalPath,
		DetailKeyAlias,
		DetailKeyMemberName,
		DetailKeyCycle,
		DetailKeyIOError,
		DetailKeyPattern,
	}

	seen := make(map[string]bool)
	for _, k := range keys {
		if seen[k] {
			t.Errorf("duplicate key: %q", k)
		}
		seen[k] = true
	}
}

func TestExpectedGot(t *testing.T) {
	details := ExpectedGot("string", "int")

	if len(details) != 2 {
		t.Fatalf("ExpectedGot returned %d details; want 2", len(details))
	}

	if details[0].Key != DetailKeyExpected {
		t.Errorf("first detail key = %q; want %q", details[0].Key, DetailKeyExpected)
	}
	if details[0].Value != "string" {
		t.Errorf("first detail value = %q; want %q", details[0].Value, "string")
	}

	if details[1].Key != DetailKeyGot {
		t.Errorf("second detail key = %q; want %q", details[1].Key, DetailKeyGot)
	}
	if details[1].Value != "int" {
		t.Errorf("second detail value = %q; want %q", details[1].Value, "int")
	}
}

func TestEnumVariant(t *testing.T) {
	details := EnumVariant("Status", "Pending")

	if len(details) != 2 {
		t.Fatalf("EnumVariant returned %d details; want 2", len(details))
	}

	if details[0].Key != DetailKeyEnumName {
		t.Errorf("first detail key = %q; want %q", details[0].Key, DetailKeyEnumName)
	}
	if details[0].Value != "Status" {
		t.Errorf("first detail value = %q; want %q", details[0].Value, "Status")
	}

	if details[1].Key != DetailKeyVariantName {
		t.Errorf("second detail key = %q; want %q", details[1].Key, DetailKeyVariantName)
	}
	if details[1].Value != "Pending" {
		t.Errorf("second detail value = %q; want %q", details[1].Value, "Pending")
	}
}

func TestImportAlias(t *testing.T) {
	details := ImportAlias("lib.mon", "lib")

	if len(details) != 2 {
		t.Fatalf("ImportAlias returned %d details; want 2", len(details))
	}

	if details[0].Key != DetailKeyImportPath {
		t.Errorf("first detail key = %q; want %q", details[0].Key, DetailKeyImportPath)
	}
	if details[0].Value != "lib.mon" {
		t.Errorf("first detail value = %q; want %q", details[0].Value, "lib.mon")
	}

	if details[1].Key != DetailKeyAlias {
		t.Errorf("second detail key = %q; want %q", details[1].Key, DetailKeyAlias)
	}
	if details[1].Value != "lib" {
		t.Errorf("second detail value = %q; want %q", details[1].Value, "lib")
	}
}

func TestTypeField_UnexpectedField(t *testing.T) {
	details := TypeField("Config", "extra")

	if len(details) != 2 {
		t.Fatalf("TypeField returned %d details; want 2", len(details))
	}

	if details[0].Key != DetailKeyTypeName {
		t.Errorf("first detail key = %q; want %q", details[0].Key, DetailKeyTypeName)
	}
	if details[0].Value != "Config" {
		t.Errorf("first detail value = %q; want %q", details[0].Value, "Config")
	}

	if details[1].Key != DetailKeyFieldName {
		t.Errorf("second detail key = %q; want %q", details[1].Key, DetailKeyFieldName)
	}
	if details[1].Value != "extra" {
		t.Errorf("second detail value = %q; want %q", details[1].Value, "extra")
	}
}

func TestTypeField(t *testing.T) {
	details := TypeField("Car", "invalidField")

	if len(details) != 2 {
		t.Fatalf("TypeField returned %d details; want 2", len(details))
	}

	if details[0].Key != DetailKeyTypeName {
		t.Errorf("first detail key = %q; want %q", details[0].Key, DetailKeyTypeName)
	}
	if details[0].Value != "Car" {
		t.Errorf("first detail value = %q; want %q", details[0].Value, "Car")
	}

	if details[1].Key != DetailKeyFieldName {
		t.Errorf("second detail key = %q; want %q", details[1].Key, DetailKeyFieldName)
	}
	if details[1].Value != "invalidField" {
		t.Errorf("second detail value = %q; want %q", details[1].Value, "invalidField")
	}
}

func TestImportAlias_Namespace(t *testing.T) {
	details := ImportAlias("./shared/base.mon", "base")

	if len(details) != 2 {
		t.Fatalf("ImportAlias returned %d details; want 2", len(details))
	}

	if details[0].Key != DetailKeyImportPath {
		t.Errorf("first detail key = %q; want %q", details[0].Key, DetailKeyImportPath)
	}
	if details[0].Value != "./shared/base.mon" {
		t.Errorf("first detail value = %q; want %q", details[0].Value, "./shared/base.mon")
	}

	if details[1].Key != DetailKeyAlias {
		t.Errorf("second detail key = %q; want %q", details[1].Key, DetailKeyAlias)
	}
	if details[1].Value != "base" {
		t.Errorf("second detail value = %q; want %q", details[1].Value, "base")
	}
}

func TestDetail_ZeroValue(t *testing.T) {
	var d Detail
	if d.Key != "" {
		t.Errorf("zero Detail.Key = %q; want empty", d.Key)
	}
	if d.Value != "" {
		t.Errorf("zero Detail.Value = %q; want empty", d.Value)
	}
}
