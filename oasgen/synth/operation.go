package synth

import (
	"fmt"
	"strings"

	"github.com/arienkock/codified-architecture/oasgen/ir"
	"github.com/arienkock/codified-architecture/oasgen/naming"
	"github.com/arienkock/codified-architecture/oasgen/openapi"
)

// Operation is everything generated for one operation: its validators,
// its derived names and the non-fatal issues found while building it.
type Operation struct {
	Method      string // lowercase, e.g. "post"
	Path        string
	OperationID string
	Summary     string
	Description string
	Handler     naming.Handler

	PathParams   ir.Expr
	QueryParams  ir.Expr
	HeaderParams ir.Expr
	CookieParams ir.Expr
	RequestBody  ir.Expr
	Responses    []Response

	Warnings []string
}

// HTTPMethod returns the uppercase method name.
func (o *Operation) HTTPMethod() string { return strings.ToUpper(o.Method) }

// Operation builds the model of one operation declared on path.
func (s *Synthesizer) Operation(path string, item *openapi.PathItem, mo openapi.MethodOperation) (*Operation, error) {
	op := mo.Operation
	out := &Operation{
		Method:      mo.Method,
		Path:        path,
		OperationID: op.OperationID,
		Summary:     op.Summary,
		Description: op.Description,
		Handler:     naming.ForOperation(op.OperationID, mo.Method, path),
	}
	wrap := func(err error) error {
		return fmt.Errorf("%s %s: %w", out.HTTPMethod(), path, err)
	}

	params, err := s.parameters(item, op)
	if err != nil {
		return nil, wrap(err)
	}
	for _, p := range params {
		if p.Schema == nil {
			out.warnf("%s parameter %q has no schema", p.In, p.Name)
		}
	}
	locations := []struct {
		loc  openapi.Location
		dest *ir.Expr
	}{
		{openapi.InPath, &out.PathParams},
		{openapi.InQuery, &out.QueryParams},
		{openapi.InHeader, &out.HeaderParams},
		{openapi.InCookie, &out.CookieParams},
	}
	for _, l := range locations {
		if *l.dest, err = s.Parameters(params, l.loc); err != nil {
			return nil, wrap(err)
		}
	}

	var body *openapi.RequestBody
	if op.RequestBody != nil {
		if body, err = s.resolver.RequestBody(*op.RequestBody); err != nil {
			return nil, wrap(fmt.Errorf("request body: %w", err))
		}
		if body != nil && len(body.Content) > 0 {
			if _, ok := body.Content.Get(openapi.JSONMediaType); !ok {
				out.warnf("request body has no %s content and is generated as absent", openapi.JSONMediaType)
			}
		}
	}
	if out.RequestBody, err = s.RequestBody(body); err != nil {
		return nil, wrap(err)
	}

	if out.Responses, err = s.Responses(op); err != nil {
		return nil, wrap(err)
	}

	if !naming.IsIdentifier(out.Handler.Name) {
		out.warnf("handler name %q is not a valid TypeScript identifier", out.Handler.Name)
	}
	return out, nil
}

// parameters returns the path item's parameters followed by the
// operation's, with references resolved.
func (s *Synthesizer) parameters(item *openapi.PathItem, op *openapi.Operation) ([]*openapi.Parameter, error) {
	items := make([]openapi.Item[openapi.Parameter], 0, len(item.Parameters)+len(op.Parameters))
	items = append(items, item.Parameters...)
	items = append(items, op.Parameters...)

	out := make([]*openapi.Parameter, 0, len(items))
	for _, it := range items {
		p, err := s.resolver.Parameter(it)
		if err != nil {
			return nil, fmt.Errorf("parameter: %w", err)
		}
		if p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (o *Operation) warnf(format string, args ...any) {
	o.Warnings = append(o.Warnings, fmt.Sprintf(format, args...))
}

// Operations builds every operation of doc in document order: paths as
// declared, methods in the order of openapi.Methods. The first error
// aborts the walk.
func (s *Synthesizer) Operations(doc *openapi.Document) ([]*Operation, error) {
	var out []*Operation
	for _, entry := range doc.Paths {
		for _, mo := range entry.Item.Operations {
			op, err := s.Operation(entry.Path, entry.Item, mo)
			if err != nil {
				return nil, err
			}
			out = append(out, op)
		}
	}
	return out, nil
}
