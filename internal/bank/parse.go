package bank

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/mesh-intelligence/quizimport/pkg/types"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseFile reads the file at path and returns the elements of its top-level
// JSON array, unconverted. It fails with types.ErrMalformedJSON when the
// contents are not UTF-8 JSON and types.ErrNotArray for any other top-level
// shape.
func ParseFile(path string) ([]gjson.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse is ParseFile on in-memory contents.
func Parse(data []byte) ([]gjson.Result, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: invalid UTF-8", types.ErrMalformedJSON)
	}
	if !gjson.ValidBytes(data) {
		return nil, types.ErrMalformedJSON
	}

	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w, got %s", types.ErrNotArray, describe(root))
	}
	return root.Array(), nil
}

// describe names the JSON kind of r for error messages.
func describe(r gjson.Result) string {
	switch {
	case r.IsObject():
		return "object"
	case r.IsArray():
		return "array"
	}
	switch r.Type {
	case gjson.String:
		return "string"
	case gjson.Number:
		return "number"
	case gjson.True, gjson.False:
		return "boolean"
	default:
		return "null"
	}
}
