package openapi

import (
	"encoding/json"
	"slices"

	"github.com/shopspring/decimal"
)

// SchemaKind discriminates the shape of a Schema. It is computed once when
// the schema is constructed.
type SchemaKind int

const (
	// SchemaUnknown is a node with no recognizable shape.
	SchemaUnknown SchemaKind = iota
	SchemaReference
	SchemaPrimitive
	SchemaEnum
	SchemaConst
	SchemaObject
	SchemaArray
	// SchemaUnion covers anyOf, oneOf and implicit type-array unions.
	SchemaUnion
	SchemaIntersection
)

// String returns a lowercase name for the kind.
func (k SchemaKind) String() string {
	switch k {
	case SchemaReference:
		return "reference"
	case SchemaPrimitive:
		return "primitive"
	case SchemaEnum:
		return "enum"
	case SchemaConst:
		return "const"
	case SchemaObject:
		return "object"
	case SchemaArray:
		return "array"
	case SchemaUnion:
		return "union"
	case SchemaIntersection:
		return "intersection"
	default:
		return "unknown"
	}
}

// Primitive type names as they appear in the "type" keyword.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeObject  = "object"
	TypeArray   = "array"
	TypeNull    = "null"
)

// Property is a named entry of an object schema. Properties keep their
// declaration order.
type Property struct {
	Name   string
	Schema *Schema
}

// AdditionalProperties holds the additionalProperties keyword, which is
// either a boolean or a schema.
type AdditionalProperties struct {
	Allowed bool
	Schema  *Schema
}

// Schema is a read-only JSON Schema node. Build schemas with NewSchema or
// through Decode so that Kind is set.
type Schema struct {
	kind    SchemaKind
	members []*Schema

	// Ref is the pointer of a reference node. A reference never carries
	// constraints; other keywords next to $ref are dropped.
	Ref string

	// NamedTypeAlias makes synthesis emit a reference to an externally
	// defined type instead of the node's shape.
	NamedTypeAlias string

	Types    []string
	Format   string
	Nullable bool

	Enum         []Literal
	EnumDeclared bool
	Const        *Literal

	Properties           []Property
	PropertiesDeclared   bool
	Required             []string
	AdditionalProperties *AdditionalProperties
	Items                *Schema

	AnyOf []*Schema
	OneOf []*Schema
	AllOf []*Schema

	MinLength        *decimal.Decimal
	MaxLength        *decimal.Decimal
	Pattern          string
	Minimum          *decimal.Decimal
	Maximum          *decimal.Decimal
	ExclusiveMinimum *decimal.Decimal
	ExclusiveMaximum *decimal.Decimal
	MinItems         *decimal.Decimal
	MaxItems         *decimal.Decimal

	Description string
	// Default is the compact JSON encoding of the default value, or nil.
	Default json.RawMessage
}

// NewSchema finalizes s by computing its kind and returns it.
func NewSchema(s Schema) *Schema {
	s.kind, s.members = classify(&s)
	return &s
}

// Ref returns a reference schema pointing at pointer.
func Ref(pointer string) *Schema {
	return NewSchema(Schema{Ref: pointer})
}

// Kind returns the schema's shape discriminant.
func (s *Schema) Kind() SchemaKind { return s.kind }

// Members returns the members of a union or intersection schema.
// Implicit type-array unions yield one clone of the node per non-null type.
func (s *Schema) Members() []*Schema { return s.members }

// TypeHint returns the first declared non-null type, or "".
func (s *Schema) TypeHint() string {
	for _, t := range s.Types {
		if t != TypeNull {
			return t
		}
	}
	return ""
}

// NonNullTypes returns the declared types excluding "null".
func (s *Schema) NonNullTypes() []string {
	var out []string
	for _, t := range s.Types {
		if t != TypeNull {
			out = append(out, t)
		}
	}
	return out
}

// DeclaresNullType reports whether "null" is one of the declared types.
func (s *Schema) DeclaresNullType() bool {
	return slices.Contains(s.Types, TypeNull)
}

// ConstIsNull reports whether the node is const: null.
func (s *Schema) ConstIsNull() bool {
	return s.Const != nil && s.Const.Kind == LiteralNull
}

// IsRequired reports whether name appears in the required list.
func (s *Schema) IsRequired(name string) bool {
	return slices.Contains(s.Required, name)
}

// IsNullOnly reports whether the node accepts nothing but null: a type of
// exactly "null" or const: null. Union nodes are handled by the caller.
func (s *Schema) IsNullOnly() bool {
	if s.ConstIsNull() {
		return true
	}
	return len(s.Types) > 0 && len(s.NonNullTypes()) == 0
}

// withSingleType returns a copy of s narrowed to one type. Annotations and
// the nullable flag are left to the enclosing node.
func (s *Schema) withSingleType(t string) *Schema {
	c := *s
	c.Types = []string{t}
	c.Nullable = false
	c.Description = ""
	c.Default = nil
	c.NamedTypeAlias = ""
	return NewSchema(c)
}

func classify(s *Schema) (SchemaKind, []*Schema) {
	if s.Ref != "" {
		return SchemaReference, nil
	}
	if len(s.AnyOf) > 0 {
		return SchemaUnion, s.AnyOf
	}
	if len(s.OneOf) > 0 {
		return SchemaUnion, s.OneOf
	}
	if len(s.AllOf) > 0 {
		return SchemaIntersection, s.AllOf
	}
	if s.EnumDeclared {
		return SchemaEnum, nil
	}
	if s.Const != nil {
		return SchemaConst, nil
	}

	if nonNull := s.NonNullTypes(); len(nonNull) > 1 {
		members := make([]*Schema, len(nonNull))
		for i, t := range nonNull {
			members[i] = s.withSingleType(t)
		}
		return SchemaUnion, members
	}

	hint := s.TypeHint()
	switch hint {
	case TypeString, TypeNumber, TypeInteger, TypeBoolean:
		return SchemaPrimitive, nil
	case TypeArray:
		return SchemaArray, nil
	case "":
		if s.Pattern != "" && !s.PropertiesDeclared {
			return SchemaPrimitive, nil
		}
	}
	if hint == TypeObject || s.PropertiesDeclared || s.opensObject() {
		return SchemaObject, nil
	}
	return SchemaUnknown, nil
}

// opensObject reports whether additionalProperties alone marks the node as
// an object: true or a schema, but not false.
func (s *Schema) opensObject() bool {
	ap := s.AdditionalProperties
	return ap != nil && (ap.Allowed || ap.Schema != nil)
}

// PrimitiveType returns the primitive type a SchemaPrimitive node stands
// for. A pattern without a type is a string.
func (s *Schema) PrimitiveType() string {
	if hint := s.TypeHint(); hint != "" {
		return hint
	}
	return TypeString
}
