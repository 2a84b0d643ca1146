// Package ir defines the validator expression tree produced by schema
// synthesis and consumed by renderers.
//
// Expressions are immutable. Combinators and With* methods return new
// values and never modify their receiver or arguments.
package ir

import (
	"encoding/json"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/arienkock/codified-architecture/internal/jsonlit"
)

// Expr is a node of the validator expression tree.
type Expr interface {
	Kind() Kind
	isExpr()
}

type exprBase struct{}

func (exprBase) isExpr() {}

// AnyExpr accepts every value.
type AnyExpr struct{ exprBase }

// Kind returns KindAny.
func (*AnyExpr) Kind() Kind { return KindAny }

// UndefinedExpr accepts only an absent value.
type UndefinedExpr struct{ exprBase }

// Kind returns KindUndefined.
func (*UndefinedExpr) Kind() Kind { return KindUndefined }

// NullExpr accepts only null.
type NullExpr struct{ exprBase }

// Kind returns KindNull.
func (*NullExpr) Kind() Kind { return KindNull }

// BooleanExpr accepts true and false.
type BooleanExpr struct{ exprBase }

// Kind returns KindBoolean.
func (*BooleanExpr) Kind() Kind { return KindBoolean }

// StringExpr accepts strings, optionally refined.
type StringExpr struct {
	exprBase
	Email     bool
	MinLength *decimal.Decimal
	MaxLength *decimal.Decimal
	// Pattern is a regular expression applied verbatim; empty means none.
	Pattern string
}

// Kind returns KindString.
func (*StringExpr) Kind() Kind { return KindString }

// WithEmail returns a copy constrained to email-shaped strings.
func (e *StringExpr) WithEmail() *StringExpr {
	c := *e
	c.Email = true
	return &c
}

// WithMinLength returns a copy with a minimum length.
func (e *StringExpr) WithMinLength(n decimal.Decimal) *StringExpr {
	c := *e
	c.MinLength = &n
	return &c
}

// WithMaxLength returns a copy with a maximum length.
func (e *StringExpr) WithMaxLength(n decimal.Decimal) *StringExpr {
	c := *e
	c.MaxLength = &n
	return &c
}

// WithPattern returns a copy that must match pattern.
func (e *StringExpr) WithPattern(pattern string) *StringExpr {
	c := *e
	c.Pattern = pattern
	return &c
}

// NumberExpr accepts numbers, optionally refined.
type NumberExpr struct {
	exprBase
	Integer bool
	// Minimum and Maximum are inclusive bounds.
	Minimum *decimal.Decimal
	Maximum *decimal.Decimal
	// ExclusiveMinimum and ExclusiveMaximum are strict bounds.
	ExclusiveMinimum *decimal.Decimal
	ExclusiveMaximum *decimal.Decimal
}

// Kind returns KindNumber.
func (*NumberExpr) Kind() Kind { return KindNumber }

// Int returns a copy restricted to whole numbers.
func (e *NumberExpr) Int() *NumberExpr {
	c := *e
	c.Integer = true
	return &c
}

// WithMinimum returns a copy with an inclusive lower bound.
func (e *NumberExpr) WithMinimum(d decimal.Decimal) *NumberExpr {
	c := *e
	c.Minimum = &d
	return &c
}

// WithMaximum returns a copy with an inclusive upper bound.
func (e *NumberExpr) WithMaximum(d decimal.Decimal) *NumberExpr {
	c := *e
	c.Maximum = &d
	return &c
}

// WithExclusiveMinimum returns a copy with a strict lower bound.
func (e *NumberExpr) WithExclusiveMinimum(d decimal.Decimal) *NumberExpr {
	c := *e
	c.ExclusiveMinimum = &d
	return &c
}

// WithExclusiveMaximum returns a copy with a strict upper bound.
func (e *NumberExpr) WithExclusiveMaximum(d decimal.Decimal) *NumberExpr {
	c := *e
	c.ExclusiveMaximum = &d
	return &c
}

// LiteralExpr accepts exactly one JSON value.
type LiteralExpr struct {
	exprBase
	// Value is the compact JSON encoding of the literal.
	Value json.RawMessage
}

// Kind returns KindLiteral.
func (*LiteralExpr) Kind() Kind { return KindLiteral }

// IsNull reports whether the literal is null.
func (e *LiteralExpr) IsNull() bool { return string(e.Value) == "null" }

// EnumExpr accepts one of a fixed, ordered set of strings.
type EnumExpr struct {
	exprBase
	Values []string
}

// Kind returns KindEnum.
func (*EnumExpr) Kind() Kind { return KindEnum }

// Closing controls how an object treats keys it does not declare.
type Closing int

const (
	// ClosingStrip drops undeclared keys. It is the default.
	ClosingStrip Closing = iota
	// ClosingStrict rejects undeclared keys.
	ClosingStrict
	// ClosingPassthrough keeps undeclared keys unvalidated.
	ClosingPassthrough
	// ClosingCatchall validates undeclared keys against Catchall.
	ClosingCatchall
)

// Field is a named member of an object expression.
type Field struct {
	Name  string
	Value Expr
}

// ObjectExpr accepts objects with the given fields, in declaration order.
type ObjectExpr struct {
	exprBase
	Fields   []Field
	Closing  Closing
	Catchall Expr
}

// Kind returns KindObject.
func (*ObjectExpr) Kind() Kind { return KindObject }

// Strict returns a copy that rejects undeclared keys.
func (e *ObjectExpr) Strict() *ObjectExpr {
	c := *e
	c.Closing, c.Catchall = ClosingStrict, nil
	return &c
}

// Passthrough returns a copy that keeps undeclared keys.
func (e *ObjectExpr) Passthrough() *ObjectExpr {
	c := *e
	c.Closing, c.Catchall = ClosingPassthrough, nil
	return &c
}

// WithCatchall returns a copy that validates undeclared keys against x.
func (e *ObjectExpr) WithCatchall(x Expr) *ObjectExpr {
	c := *e
	c.Closing, c.Catchall = ClosingCatchall, x
	return &c
}

// ArrayExpr accepts arrays whose items match Items.
type ArrayExpr struct {
	exprBase
	Items    Expr
	MinItems *decimal.Decimal
	MaxItems *decimal.Decimal
}

// Kind returns KindArray.
func (*ArrayExpr) Kind() Kind { return KindArray }

// WithMinItems returns a copy with a minimum item count.
func (e *ArrayExpr) WithMinItems(n decimal.Decimal) *ArrayExpr {
	c := *e
	c.MinItems = &n
	return &c
}

// WithMaxItems returns a copy with a maximum item count.
func (e *ArrayExpr) WithMaxItems(n decimal.Decimal) *ArrayExpr {
	c := *e
	c.MaxItems = &n
	return &c
}

// NamedExpr refers to a validator defined outside the generated code.
type NamedExpr struct {
	exprBase
	Namespace string
	Name      string
}

// Kind returns KindNamed.
func (*NamedExpr) Kind() Kind { return KindNamed }

// LazyExpr defers evaluation of Inner.
type LazyExpr struct {
	exprBase
	Inner Expr
}

// Kind returns KindLazy.
func (*LazyExpr) Kind() Kind { return KindLazy }

// OptionalExpr additionally accepts an absent value.
type OptionalExpr struct {
	exprBase
	Inner Expr
}

// Kind returns KindOptional.
func (*OptionalExpr) Kind() Kind { return KindOptional }

// NullableExpr additionally accepts null.
type NullableExpr struct {
	exprBase
	Inner Expr
}

// Kind returns KindNullable.
func (*NullableExpr) Kind() Kind { return KindNullable }

// UnionExpr accepts a value matching any member.
type UnionExpr struct {
	exprBase
	Members []Expr
}

// Kind returns KindUnion.
func (*UnionExpr) Kind() Kind { return KindUnion }

// IntersectionExpr accepts a value matching both sides.
type IntersectionExpr struct {
	exprBase
	Left  Expr
	Right Expr
}

// Kind returns KindIntersection.
func (*IntersectionExpr) Kind() Kind { return KindIntersection }

// DescribeExpr attaches a description to Inner.
type DescribeExpr struct {
	exprBase
	Inner Expr
	Text  string
}

// Kind returns KindDescribe.
func (*DescribeExpr) Kind() Kind { return KindDescribe }

// DefaultExpr substitutes Value when the input is absent.
type DefaultExpr struct {
	exprBase
	Inner Expr
	// Value is the compact JSON encoding of the default.
	Value json.RawMessage
}

// Kind returns KindDefault.
func (*DefaultExpr) Kind() Kind { return KindDefault }

// Any returns an expression accepting everything.
func Any() *AnyExpr { return &AnyExpr{} }

// Permissive is the fallback for schema shapes the synthesizer does not
// recognize. It accepts everything.
func Permissive() Expr { return Any() }

// CycleFallback stands in for a reference that is already being expanded.
// It accepts everything and does not validate the recursive type.
func CycleFallback() Expr { return &LazyExpr{Inner: Any()} }

// Undefined returns an expression accepting only an absent value.
func Undefined() *UndefinedExpr { return &UndefinedExpr{} }

// Null returns an expression accepting only null.
func Null() *NullExpr { return &NullExpr{} }

// Boolean returns a boolean expression.
func Boolean() *BooleanExpr { return &BooleanExpr{} }

// String returns an unrefined string expression.
func String() *StringExpr { return &StringExpr{} }

// Number returns an unrefined number expression.
func Number() *NumberExpr { return &NumberExpr{} }

// Literal returns a literal of an already encoded JSON value.
func Literal(raw json.RawMessage) *LiteralExpr {
	return &LiteralExpr{Value: slices.Clone(raw)}
}

// LiteralNull returns the null literal.
func LiteralNull() *LiteralExpr { return Literal(json.RawMessage("null")) }

// LiteralBool returns a boolean literal.
func LiteralBool(b bool) *LiteralExpr {
	if b {
		return Literal(json.RawMessage("true"))
	}
	return Literal(json.RawMessage("false"))
}

// LiteralNumber returns a numeric literal.
func LiteralNumber(d decimal.Decimal) *LiteralExpr {
	return Literal(json.RawMessage(d.String()))
}

// LiteralString returns a string literal.
func LiteralString(s string) *LiteralExpr {
	return Literal(QuoteString(s))
}

// Enum returns a string enumeration that keeps the order of values.
func Enum(values ...string) *EnumExpr {
	return &EnumExpr{Values: slices.Clone(values)}
}

// Object returns an object expression with the default closing.
func Object(fields ...Field) *ObjectExpr {
	return &ObjectExpr{Fields: slices.Clone(fields)}
}

// Array returns an array expression. A nil items expression accepts any
// item.
func Array(items Expr) *ArrayExpr {
	if items == nil {
		items = Any()
	}
	return &ArrayExpr{Items: items}
}

// Named returns a reference to namespace.name.
func Named(namespace, name string) *NamedExpr {
	return &NamedExpr{Namespace: namespace, Name: name}
}

// Optional wraps e so an absent value is accepted.
func Optional(e Expr) Expr {
	if e.Kind() == KindOptional {
		return e
	}
	return &OptionalExpr{Inner: e}
}

// Nullable wraps e so null is accepted. An expression that already accepts
// null is returned unchanged, so a value never carries two nullable wraps.
func Nullable(e Expr) Expr {
	if IsNullable(e) {
		return e
	}
	return &NullableExpr{Inner: e}
}

// IsNullable reports whether e accepts null through a nullable wrap, a
// null expression or a null literal.
func IsNullable(e Expr) bool {
	switch x := e.(type) {
	case *NullableExpr, *NullExpr:
		return true
	case *LiteralExpr:
		return x.IsNull()
	case *OptionalExpr:
		return IsNullable(x.Inner)
	case *DescribeExpr:
		return IsNullable(x.Inner)
	case *DefaultExpr:
		return IsNullable(x.Inner)
	}
	return false
}

// Union returns an expression accepting any member. A single member is
// returned as is; no members yields the permissive fallback.
func Union(members ...Expr) Expr {
	switch len(members) {
	case 0:
		return Permissive()
	case 1:
		return members[0]
	}
	return &UnionExpr{Members: slices.Clone(members)}
}

// Intersection folds members left to right into nested pairwise
// intersections. No members yields the permissive fallback.
func Intersection(members ...Expr) Expr {
	if len(members) == 0 {
		return Permissive()
	}
	acc := members[0]
	for _, m := range members[1:] {
		acc = &IntersectionExpr{Left: acc, Right: m}
	}
	return acc
}

// Describe attaches text to e. Empty text leaves e unchanged.
func Describe(e Expr, text string) Expr {
	if text == "" {
		return e
	}
	return &DescribeExpr{Inner: e, Text: text}
}

// WithDefault attaches an encoded JSON default to e. A nil value leaves e
// unchanged.
func WithDefault(e Expr, value json.RawMessage) Expr {
	if value == nil {
		return e
	}
	return &DefaultExpr{Inner: e, Value: slices.Clone(value)}
}

// QuoteString encodes s as a JSON string without escaping HTML characters.
func QuoteString(s string) json.RawMessage {
	return jsonlit.Quote(s)
}
