package openapi

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// LiteralKind identifies the JSON type of a Literal.
type LiteralKind int

const (
	LiteralNull LiteralKind = iota
	LiteralBool
	LiteralNumber
	LiteralString
	// LiteralJSON holds a structured value (array or object) as raw JSON.
	LiteralJSON
)

// Literal is a JSON value used by enum and const.
type Literal struct {
	Kind   LiteralKind
	Bool   bool
	Number decimal.Decimal
	String string
	Raw    json.RawMessage
}

// NullLiteral returns the null literal.
func NullLiteral() Literal { return Literal{Kind: LiteralNull} }

// BoolLiteral returns a boolean literal.
func BoolLiteral(b bool) Literal { return Literal{Kind: LiteralBool, Bool: b} }

// NumberLiteral returns a numeric literal.
func NumberLiteral(d decimal.Decimal) Literal { return Literal{Kind: LiteralNumber, Number: d} }

// StringLiteral returns a string literal.
func StringLiteral(s string) Literal { return Literal{Kind: LiteralString, String: s} }
