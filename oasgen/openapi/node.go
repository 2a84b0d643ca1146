package openapi

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/arienkock/codified-architecture/internal/jsonlit"
)

// deref follows document and alias nodes to the value they stand for.
func deref(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

// pair is one key/value entry of a mapping node.
type pair struct {
	Key   string
	Value *yaml.Node
}

// pairs returns the entries of a mapping node in document order. Non-mapping
// nodes yield nothing.
func pairs(n *yaml.Node) []pair {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	out := make([]pair, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		out = append(out, pair{Key: n.Content[i].Value, Value: n.Content[i+1]})
	}
	return out
}

// lookup returns the value stored under key in a mapping node, or nil.
func lookup(n *yaml.Node, key string) *yaml.Node {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

func isMapping(n *yaml.Node) bool {
	n = deref(n)
	return n != nil && n.Kind == yaml.MappingNode
}

func scalarString(n *yaml.Node) (string, bool) {
	n = deref(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return "", false
	}
	return n.Value, true
}

func scalarBool(n *yaml.Node) (bool, bool) {
	n = deref(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag != "!!bool" {
		return false, false
	}
	b, err := strconv.ParseBool(n.Value)
	if err != nil {
		var v bool
		if n.Decode(&v) != nil {
			return false, false
		}
		return v, true
	}
	return b, true
}

func scalarNumber(n *yaml.Node) (decimal.Decimal, bool) {
	n = deref(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		return decimal.Decimal{}, false
	}
	if n.Tag != "!!int" && n.Tag != "!!float" {
		return decimal.Decimal{}, false
	}
	return parseNumber(n)
}

// numberPtr returns the numeric value of n, or nil when n is not a number.
func numberPtr(n *yaml.Node) *decimal.Decimal {
	d, ok := scalarNumber(n)
	if !ok {
		return nil
	}
	return &d
}

func parseNumber(n *yaml.Node) (decimal.Decimal, bool) {
	if d, err := decimal.NewFromString(n.Value); err == nil {
		return d, true
	}
	// YAML allows forms decimal does not parse, such as 0x1F or 1_000.
	var f float64
	if err := n.Decode(&f); err != nil {
		return decimal.Decimal{}, false
	}
	return decimal.NewFromFloat(f), true
}

func stringList(n *yaml.Node) []string {
	n = deref(n)
	if n == nil {
		return nil
	}
	if s, ok := scalarString(n); ok {
		return []string{s}
	}
	if n.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]string, 0, len(n.Content))
	for _, c := range n.Content {
		if s, ok := scalarString(c); ok {
			out = append(out, s)
		}
	}
	return out
}

// literalOf converts a node into a Literal.
func literalOf(n *yaml.Node) (Literal, error) {
	n = deref(n)
	if n == nil {
		return NullLiteral(), nil
	}
	if n.Kind == yaml.ScalarNode {
		switch n.Tag {
		case "!!null":
			return NullLiteral(), nil
		case "!!bool":
			b, _ := scalarBool(n)
			return BoolLiteral(b), nil
		case "!!int", "!!float":
			if d, ok := parseNumber(n); ok {
				return NumberLiteral(d), nil
			}
		}
		return StringLiteral(n.Value), nil
	}
	raw, err := encodeJSON(n)
	if err != nil {
		return Literal{}, err
	}
	return Literal{Kind: LiteralJSON, Raw: raw}, nil
}

// encodeJSON renders a node as compact JSON, keeping mapping order.
func encodeJSON(n *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, n, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// maxJSONDepth bounds alias expansion in documents whose anchors refer to
// themselves.
const maxJSONDepth = 512

func writeJSON(buf *bytes.Buffer, n *yaml.Node, depth int) error {
	if depth > maxJSONDepth {
		return fmt.Errorf("document nesting exceeds %d levels", maxJSONDepth)
	}
	n = deref(n)
	if n == nil {
		buf.WriteString("null")
		return nil
	}
	switch n.Kind {
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i, p := range pairs(n) {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(quoteString(p.Key))
			buf.WriteByte(':')
			if err := writeJSON(buf, p.Value, depth+1); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, c, depth+1); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			buf.WriteString("null")
		case "!!bool":
			b, _ := scalarBool(n)
			buf.WriteString(strconv.FormatBool(b))
		case "!!int", "!!float":
			if d, ok := parseNumber(n); ok {
				buf.WriteString(d.String())
				return nil
			}
			buf.Write(quoteString(n.Value))
		default:
			buf.Write(quoteString(n.Value))
		}
	default:
		return fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}
	return nil
}

func quoteString(s string) []byte { return jsonlit.Quote(s) }
