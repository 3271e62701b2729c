package util

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
)

// JSON is the encoder configuration shared by the CLI and the server:
// stdlib-compatible, but <, > and & are kept intact.
var JSON = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// MarshalNoEscape behaves like json.Marshal but keeps <, >, & intact.
func MarshalNoEscape(v any, indent bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := JSON.NewEncoder(&buf)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil // drop trailing newline
}
