package ir

import (
	"encoding/json"

	gojson "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// JSON serialization for debugging output.
// Every node includes a "kind" field for type discrimination.

type kindOnly struct {
	Kind string `json:"kind"`
}

// MarshalJSON implements json.Marshaler for AnyExpr.
func (e *AnyExpr) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(kindOnly{Kind: KindAny.String()})
}

// MarshalJSON implements json.Marshaler for UndefinedExpr.
func (e *UndefinedExpr) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(kindOnly{Kind: KindUndefined.String()})
}

// MarshalJSON implements json.Marshaler for NullExpr.
func (e *NullExpr) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(kindOnly{Kind: KindNull.String()})
}

// MarshalJSON implements json.Marshaler for BooleanExpr.
func (e *BooleanExpr) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(kindOnly{Kind: KindBoolean.String()})
}

// MarshalJSON implements json.Marshaler for StringExpr.
func (e *StringExpr) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(&struct {
		Kind      string           `json:"kind"`
		Email     bool             `json:"email,omitempty"`
		MinLength *decimal.Decimal `json:"minLength,omitempty"`
		MaxLength *decimal.Decimal `json:"maxLength,omitempty"`
		Pattern   string           `json:"pattern,omitempty"`
	}{
		Kind:      KindString.String(),
		Email:     e.Email,
		MinLength: e.MinLength,
		MaxLength: e.MaxLength,
		Pattern:   e.Pattern,
	})
}

// MarshalJSON implements json.Marshaler for NumberExpr.
func (e *NumberExpr) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(&struct {
		Kind             string           `json:"kind"`
		Integer          bool             `json:"integer,omitempty"`
		Minimum          *decimal.Decimal `json:"minimum,omitempty"`
		Maximum          *decimal.Decimal `json:"maximum,omitempty"`
		ExclusiveMinimum *decimal.Decimal `json:"exclusiveMinimum,omitempty"`
		ExclusiveMaximum *decimal.Decimal `json:"exclusiveMaximum,omitempty"`
	}{
		Kind:             KindNumber.String(),
		Integer:          e.Integer,
		Minimum:          e.Minimum,
		Maximum:          e.Maximum,
		ExclusiveMinimum: e.ExclusiveMinimum,
		ExclusiveMaximum: e.ExclusiveMaximum,
	})
}

// MarshalJSON implements json.Marshaler for LiteralExpr.
func (e *LiteralExpr) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(&struct {
		Kind  string          `json:"kind"`
		Value json.RawMessage `json:"value"`
	}{
		Kind:  KindLiteral.String(),
		Value: e.Value,
	})
}

// MarshalJSON implements json.Marshaler for EnumExpr.
func (e *EnumExpr) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(&struct {
		Kind   string   `json:"kind"`
		Values []string `json:"values"`
	}{
		Kind:   KindEnum.String(),
		Values: e.Values,
	})
}

// MarshalJSON implements json.Marshaler for Field.
func (f Field) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(&struct {
		Name  string `json:"name"`
		Value Expr   `json:"value"`
	}{
		Name:  f.Name,
		Value: f.Value,
	})
}

var closingNames = [...]string{
	ClosingStrip:       "strip",
	ClosingStrict:      "strict",
	ClosingPassthrough: "passthrough",
	ClosingCatchall:    "catchall",
}

// MarshalJSON implements json.Marshaler for ObjectExpr.
func (e *ObjectExpr) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(&struct {
		Kind     string  `json:"kind"`
		Fields   []Field `json:"fields"`
		Closing  string  `json:"closing"`
		Catchall Expr    `json:"catchall,omitempty"`
	}{
		Kind:     KindObject.String(),
		Fields:   e.Fields,
		Closing:  closingNames[e.Closing],
		Catchall: e.Catchall,
	})
}

// MarshalJSON implements json.Marshaler for ArrayExpr.
func (e *ArrayExpr) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(&struct {
		Kind     string           `json:"kind"`
		Items    Expr             `json:"items"`
		MinItems *decimal.Decimal `json:"minItems,omitempty"`
		MaxItems *decimal.Decimal `json:"maxItems,omitempty"`
	}{
		Kind:     KindArray.String(),
		Items:    e.Items,
		MinItems: e.MinItems,
		MaxItems: e.MaxItems,
	})
}

// MarshalJSON implements json.Marshaler for NamedExpr.
func (e *NamedExpr) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(&struct {
		Kind      string `json:"kind"`
		Namespace string `json:"namespace,omitempty"`
		Name      string `json:"name"`
	}{
		Kind:      KindNamed.String(),
		Namespace: e.Namespace,
		Name:      e.Name,
	})
}

type wrapped struct {
	Kind  string `json:"kind"`
	Inner Expr   `json:"inner"`
}

// MarshalJSON implements json.Marshaler for LazyExpr.
func (e *LazyExpr) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(&wrapped{Kind: KindLazy.String(), Inner: e.Inner})
}

// MarshalJSON implements json.Marshaler for OptionalExpr.
func (e *OptionalExpr) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(&wrapped{Kind: KindOptional.String(), Inner: e.Inner})
}

// MarshalJSON implements json.Marshaler for NullableExpr.
func (e *NullableExpr) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(&wrapped{Kind: KindNullable.String(), Inner: e.Inner})
}

// MarshalJSON implements json.Marshaler for UnionExpr.
func (e *UnionExpr) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(&struct {
		Kind    string `json:"kind"`
		Members []Expr `json:"members"`
	}{
		Kind:    KindUnion.String(),
		Members: e.Members,
	})
}

// MarshalJSON implements json.Marshaler for IntersectionExpr.
func (e *IntersectionExpr) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(&struct {
		Kind  string `json:"kind"`
		Left  Expr   `json:"left"`
		Right Expr   `json:"right"`
	}{
		Kind:  KindIntersection.String(),
		Left:  e.Left,
		Right: e.Right,
	})
}

// MarshalJSON implements json.Marshaler for DescribeExpr.
func (e *DescribeExpr) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(&struct {
		Kind  string `json:"kind"`
		Inner Expr   `json:"inner"`
		Text  string `json:"text"`
	}{
		Kind:  KindDescribe.String(),
		Inner: e.Inner,
		Text:  e.Text,
	})
}

// MarshalJSON implements json.Marshaler for DefaultExpr.
func (e *DefaultExpr) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(&struct {
		Kind  string          `json:"kind"`
		Inner Expr            `json:"inner"`
		Value json.RawMessage `json:"value"`
	}{
		Kind:  KindDefault.String(),
		Inner: e.Inner,
		Value: e.Value,
	})
}
