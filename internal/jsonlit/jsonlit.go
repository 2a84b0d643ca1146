// Package jsonlit encodes JSON string literals for generated TypeScript.
package jsonlit

import (
	"bytes"
	"strconv"

	gojson "github.com/goccy/go-json"
)

// Quote returns s as a JSON string literal. <, > and & are written as is.
func Quote(s string) []byte {
	var buf bytes.Buffer
	enc := gojson.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return []byte(strconv.Quote(s))
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}
