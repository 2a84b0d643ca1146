package synth

import (
	"github.com/arienkock/codified-architecture/oasgen/ir"
	"github.com/arienkock/codified-architecture/oasgen/openapi"
)

// union partitions members into null and non-null. Null members only
// contribute nullability: no non-null members gives null, one gives that
// member alone, more give a union.
func (c *context) union(members []*openapi.Schema) (ir.Expr, error) {
	var (
		nonNull      []*openapi.Schema
		includesNull bool
	)
	for _, m := range members {
		isNull, err := c.representsNull(m, map[string]bool{})
		if err != nil {
			return nil, err
		}
		if isNull {
			includesNull = true
			continue
		}
		nonNull = append(nonNull, m)
	}

	if len(nonNull) == 0 {
		return ir.Null(), nil
	}

	exprs := make([]ir.Expr, 0, len(nonNull))
	for _, m := range nonNull {
		e, err := c.synthesize(m)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}

	expr := ir.Union(exprs...)
	if includesNull {
		expr = ir.Nullable(expr)
	}
	return expr, nil
}

// representsNull reports whether a union member accepts nothing but null:
// a null type, const null, or a union whose members all represent null.
// References are followed; seen guards against reference cycles.
func (c *context) representsNull(node *openapi.Schema, seen map[string]bool) (bool, error) {
	switch node.Kind() {
	case openapi.SchemaReference:
		if seen[node.Ref] {
			return false, nil
		}
		seen[node.Ref] = true
		resolved, err := c.resolver.Schema(node.Ref)
		if err != nil {
			return false, err
		}
		return c.representsNull(resolved, seen)
	case openapi.SchemaUnion:
		members := node.Members()
		for _, m := range members {
			isNull, err := c.representsNull(m, seen)
			if err != nil || !isNull {
				return false, err
			}
		}
		return len(members) > 0, nil
	}
	return node.IsNullOnly(), nil
}

func (c *context) intersection(members []*openapi.Schema) (ir.Expr, error) {
	exprs := make([]ir.Expr, 0, len(members))
	for _, m := range members {
		e, err := c.synthesize(m)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return ir.Intersection(exprs...), nil
}
