package synth

import (
	"fmt"
	"sort"

	"github.com/arienkock/codified-architecture/oasgen/ir"
	"github.com/arienkock/codified-architecture/oasgen/openapi"
)

// Parameters builds the closed object validating the parameters carried at
// loc. Path parameters are always required. With no parameters at loc the
// result is an empty closed object.
func (s *Synthesizer) Parameters(params []*openapi.Parameter, loc openapi.Location) (ir.Expr, error) {
	var fields []ir.Field
	for _, p := range params {
		if p.In != loc {
			continue
		}
		e, err := s.Synthesize(p.Schema)
		if err != nil {
			return nil, fmt.Errorf("%s parameter %q: %w", loc, p.Name, err)
		}
		if loc != openapi.InPath && !p.Required {
			e = ir.Optional(e)
		}
		fields = append(fields, ir.Field{Name: p.Name, Value: ir.Describe(e, p.Description)})
	}
	return ir.Object(fields...).Strict(), nil
}

// RequestBody builds the body validator. A missing body, or one without
// JSON content, must be absent.
func (s *Synthesizer) RequestBody(body *openapi.RequestBody) (ir.Expr, error) {
	if body == nil {
		return ir.Undefined(), nil
	}
	mt, ok := body.Content.Get(openapi.JSONMediaType)
	if !ok || mt.Schema == nil {
		return ir.Undefined(), nil
	}
	e, err := s.Synthesize(mt.Schema)
	if err != nil {
		return nil, fmt.Errorf("request body: %w", err)
	}
	if !body.Required {
		e = ir.Optional(e)
	}
	return ir.Describe(e, body.Description), nil
}

// Response is the validator of one response status.
type Response struct {
	Status string
	Schema ir.Expr
}

// DefaultStatus is the status key of the catch-all response.
const DefaultStatus = "default"

// Responses builds one validator per declared status, sorted by plain
// string comparison of the status keys: "100" sorts before "99" and
// "default" after every numeric code. An operation without responses gets
// a single "default" entry that must be absent.
func (s *Synthesizer) Responses(op *openapi.Operation) ([]Response, error) {
	out := make([]Response, 0, len(op.Responses))
	for _, sr := range op.Responses {
		resp, err := s.resolver.Response(sr.Response)
		if err != nil {
			return nil, fmt.Errorf("response %s: %w", sr.Status, err)
		}
		e, err := s.response(resp)
		if err != nil {
			return nil, fmt.Errorf("response %s: %w", sr.Status, err)
		}
		out = append(out, Response{Status: sr.Status, Schema: e})
	}

	if len(out) == 0 {
		out = append(out, Response{Status: DefaultStatus, Schema: ir.Undefined()})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out, nil
}

func (s *Synthesizer) response(resp *openapi.Response) (ir.Expr, error) {
	if resp == nil {
		return ir.Undefined(), nil
	}
	if mt, ok := resp.Content.Get(openapi.JSONMediaType); ok && mt.Schema != nil {
		return s.Synthesize(mt.Schema)
	}
	return ir.Describe(ir.Undefined(), resp.Description), nil
}
