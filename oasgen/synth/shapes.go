package synth

import (
	"github.com/arienkock/codified-architecture/oasgen/ir"
	"github.com/arienkock/codified-architecture/oasgen/openapi"
)

const formatEmail = "email"

func primitive(node *openapi.Schema) ir.Expr {
	switch t := node.PrimitiveType(); t {
	case openapi.TypeInteger, openapi.TypeNumber:
		e := ir.Number()
		if t == openapi.TypeInteger {
			e = e.Int()
		}
		if node.Minimum != nil {
			e = e.WithMinimum(*node.Minimum)
		}
		if node.Maximum != nil {
			e = e.WithMaximum(*node.Maximum)
		}
		if node.ExclusiveMinimum != nil {
			e = e.WithExclusiveMinimum(*node.ExclusiveMinimum)
		}
		if node.ExclusiveMaximum != nil {
			e = e.WithExclusiveMaximum(*node.ExclusiveMaximum)
		}
		return e
	case openapi.TypeBoolean:
		return ir.Boolean()
	default:
		e := ir.String()
		if node.Format == formatEmail {
			e = e.WithEmail()
		}
		if node.MinLength != nil {
			e = e.WithMinLength(*node.MinLength)
		}
		if node.MaxLength != nil {
			e = e.WithMaxLength(*node.MaxLength)
		}
		if node.Pattern != "" {
			e = e.WithPattern(node.Pattern)
		}
		return e
	}
}

// enum emits a string enumeration when every value is a string and a
// union of literals otherwise.
func enum(values []openapi.Literal) ir.Expr {
	if len(values) == 0 {
		return ir.Permissive()
	}

	allStrings := true
	for _, v := range values {
		if v.Kind != openapi.LiteralString {
			allStrings = false
			break
		}
	}
	if allStrings {
		strs := make([]string, len(values))
		for i, v := range values {
			strs[i] = v.String
		}
		return ir.Enum(strs...)
	}

	literals := make([]ir.Expr, len(values))
	for i, v := range values {
		literals[i] = literal(v)
	}
	return ir.Union(literals...)
}

func literal(l openapi.Literal) *ir.LiteralExpr {
	switch l.Kind {
	case openapi.LiteralBool:
		return ir.LiteralBool(l.Bool)
	case openapi.LiteralNumber:
		return ir.LiteralNumber(l.Number)
	case openapi.LiteralString:
		return ir.LiteralString(l.String)
	case openapi.LiteralJSON:
		return ir.Literal(l.Raw)
	default:
		return ir.LiteralNull()
	}
}

func (c *context) array(node *openapi.Schema) (ir.Expr, error) {
	var items ir.Expr
	if node.Items != nil {
		var err error
		if items, err = c.synthesize(node.Items); err != nil {
			return nil, err
		}
	}
	e := ir.Array(items)
	if node.MinItems != nil {
		e = e.WithMinItems(*node.MinItems)
	}
	if node.MaxItems != nil {
		e = e.WithMaxItems(*node.MaxItems)
	}
	return e, nil
}

// object keeps property declaration order. Properties not listed in
// required are optional. Without additionalProperties the object keeps the
// default closing, which strips undeclared keys.
func (c *context) object(node *openapi.Schema) (ir.Expr, error) {
	fields := make([]ir.Field, 0, len(node.Properties))
	for _, p := range node.Properties {
		e, err := c.synthesize(p.Schema)
		if err != nil {
			return nil, err
		}
		if !node.IsRequired(p.Name) {
			e = ir.Optional(e)
		}
		fields = append(fields, ir.Field{Name: p.Name, Value: e})
	}

	obj := ir.Object(fields...)
	switch ap := node.AdditionalProperties; {
	case ap == nil:
	case ap.Schema != nil:
		catchall, err := c.synthesize(ap.Schema)
		if err != nil {
			return nil, err
		}
		obj = obj.WithCatchall(catchall)
	case ap.Allowed:
		obj = obj.Passthrough()
	default:
		obj = obj.Strict()
	}
	return obj, nil
}
