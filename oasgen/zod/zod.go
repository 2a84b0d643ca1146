// Package zod renders validator expressions as Zod source text.
package zod

import (
	"fmt"
	"strings"

	"github.com/arienkock/codified-architecture/oasgen/ir"
)

// Renderer turns ir expressions into Zod code.
type Renderer struct {
	// Indent is the indentation of nested object fields and union members
	// (default: two spaces).
	Indent string
}

// Render renders e with the default renderer.
func Render(e ir.Expr) string {
	return (&Renderer{}).Render(e)
}

// Render returns the Zod code for e. Multi-line results have no trailing
// newline and their first line is not indented.
func (r *Renderer) Render(e ir.Expr) string {
	var b strings.Builder
	r.write(&b, e)
	return b.String()
}

func (r *Renderer) indent() string {
	if r.Indent == "" {
		return "  "
	}
	return r.Indent
}

func (r *Renderer) write(b *strings.Builder, e ir.Expr) {
	switch x := e.(type) {
	case *ir.AnyExpr:
		b.WriteString("z.any()")
	case *ir.UndefinedExpr:
		b.WriteString("z.undefined()")
	case *ir.NullExpr:
		b.WriteString("z.null()")
	case *ir.BooleanExpr:
		b.WriteString("z.boolean()")
	case *ir.StringExpr:
		b.WriteString("z.string()")
		if x.Email {
			b.WriteString(".email()")
		}
		if x.MinLength != nil {
			fmt.Fprintf(b, ".min(%s)", x.MinLength.String())
		}
		if x.MaxLength != nil {
			fmt.Fprintf(b, ".max(%s)", x.MaxLength.String())
		}
		if x.Pattern != "" {
			fmt.Fprintf(b, ".regex(new RegExp(%s))", ir.QuoteString(x.Pattern))
		}
	case *ir.NumberExpr:
		b.WriteString("z.number()")
		if x.Integer {
			b.WriteString(".int()")
		}
		if x.Minimum != nil {
			fmt.Fprintf(b, ".min(%s)", x.Minimum.String())
		}
		if x.Maximum != nil {
			fmt.Fprintf(b, ".max(%s)", x.Maximum.String())
		}
		if x.ExclusiveMinimum != nil {
			fmt.Fprintf(b, ".gt(%s)", x.ExclusiveMinimum.String())
		}
		if x.ExclusiveMaximum != nil {
			fmt.Fprintf(b, ".lt(%s)", x.ExclusiveMaximum.String())
		}
	case *ir.LiteralExpr:
		fmt.Fprintf(b, "z.literal(%s)", x.Value)
	case *ir.EnumExpr:
		quoted := make([]string, len(x.Values))
		for i, v := range x.Values {
			quoted[i] = string(ir.QuoteString(v))
		}
		fmt.Fprintf(b, "z.enum([%s])", strings.Join(quoted, ", "))
	case *ir.ObjectExpr:
		r.writeObject(b, x)
	case *ir.ArrayExpr:
		b.WriteString("z.array(")
		r.write(b, x.Items)
		b.WriteString(")")
		if x.MinItems != nil {
			fmt.Fprintf(b, ".min(%s)", x.MinItems.String())
		}
		if x.MaxItems != nil {
			fmt.Fprintf(b, ".max(%s)", x.MaxItems.String())
		}
	case *ir.NamedExpr:
		if x.Namespace != "" {
			b.WriteString(x.Namespace)
			b.WriteByte('.')
		}
		b.WriteString(x.Name)
	case *ir.LazyExpr:
		b.WriteString("z.lazy(() => ")
		r.write(b, x.Inner)
		b.WriteString(")")
	case *ir.OptionalExpr:
		r.write(b, x.Inner)
		b.WriteString(".optional()")
	case *ir.NullableExpr:
		r.write(b, x.Inner)
		b.WriteString(".nullable()")
	case *ir.UnionExpr:
		members := make([]string, len(x.Members))
		for i, m := range x.Members {
			members[i] = r.Render(m)
		}
		b.WriteString("z.union([\n")
		b.WriteString(r.block(members))
		b.WriteString("\n])")
	case *ir.IntersectionExpr:
		b.WriteString("z.intersection(")
		r.write(b, x.Left)
		b.WriteString(", ")
		r.write(b, x.Right)
		b.WriteString(")")
	case *ir.DescribeExpr:
		r.write(b, x.Inner)
		fmt.Fprintf(b, ".describe(%s)", ir.QuoteString(x.Text))
	case *ir.DefaultExpr:
		r.write(b, x.Inner)
		fmt.Fprintf(b, ".default(%s)", x.Value)
	default:
		panic(fmt.Sprintf("zod: unhandled expression %T", e))
	}
}

func (r *Renderer) writeObject(b *strings.Builder, x *ir.ObjectExpr) {
	if len(x.Fields) == 0 {
		b.WriteString("z.object({})")
	} else {
		lines := make([]string, len(x.Fields))
		for i, f := range x.Fields {
			lines[i] = string(ir.QuoteString(f.Name)) + ": " + r.Render(f.Value)
		}
		b.WriteString("z.object({\n")
		b.WriteString(r.block(lines))
		b.WriteString("\n})")
	}

	switch x.Closing {
	case ir.ClosingStrict:
		b.WriteString(".strict()")
	case ir.ClosingPassthrough:
		b.WriteString(".passthrough()")
	case ir.ClosingCatchall:
		b.WriteString(".catchall(")
		r.write(b, x.Catchall)
		b.WriteString(")")
	}
}

// block indents every line of items and joins them with ",\n".
func (r *Renderer) block(items []string) string {
	ind := r.indent()
	for i, item := range items {
		items[i] = ind + strings.ReplaceAll(item, "\n", "\n"+ind)
	}
	return strings.Join(items, ",\n")
}

// ObjectEntry renders `key: value,` for an object literal at the given
// indentation. Continuation lines of a multi-line value are indented to
// the same level as the key.
func ObjectEntry(key, value, indent string) string {
	return indent + key + ": " + strings.ReplaceAll(value, "\n", "\n"+indent) + ","
}
