package textlit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeString(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		out     string
		wantErr bool
		errAt   int
	}{
		{name: "plain", in: `plain`, out: "plain"},
		{name: "empty", in: ``, out: ""},
		{name: "escaped newline", in: `with\nnewline`, out: "with\nnewline"},
		{name: "escaped tab", in: `tab\tend`, out: "tab\tend"},
		{name: "escaped quote", in: `quote\"inner`, out: `quote"inner`},
		{name: "escaped backslash", in: `backslash\\inner`, out: `backslash\inner`},
		{name: "escaped solidus", in: `a\/b`, out: "a/b"},
		{name: "escaped backspace", in: `\b`, out: "\b"},
		{name: "escaped form feed", in: `\f`, out: "\f"},
		{name: "escaped carriage return", in: `\r`, out: "\r"},
		{name: "unicode escape", in: "\\u0041", out: "A"},
		{name: "unicode escape lowercase hex", in: "\\u00e9", out: "é"},
		{name: "mixed escapes", in: `mixed\"quote\n`, out: "mixed\"quote\n"},
		{name: "single char", in: `a`, out: "a"},
		{
			name:    "invalid escape",
			in:      `bad\qend`,
			out:     `bad\qend`,
			wantErr: true,
			errAt:   3,
		},
		{
			name:    "dangling escape",
			in:      `trailing\`,
			out:     `trailing\`,
			wantErr: true,
			errAt:   8,
		},
		{
			name:    "truncated unicode escape",
			in:      `\u12`,
			out:     `\u12`,
			wantErr: true,
			errAt:   0,
		},
		{
			name:    "invalid unicode hex",
			in:      `\uZZZZ`,
			out:     `\uZZZZ`,
			wantErr: true,
			errAt:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOffset, err := DecodeString(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.errAt, errOffset)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, -1, errOffset)
			}
			assert.Equal(t, tt.out, out)
		})
	}
}
