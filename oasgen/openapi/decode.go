package openapi

import (
	"gopkg.in/yaml.v3"
)

// Decoding is lenient: keywords with an unexpected shape are skipped rather
// than reported, so malformed input degrades to permissive output.

func decodePathItem(n *yaml.Node) *PathItem {
	item := &PathItem{Parameters: decodeParameterItems(lookup(n, "parameters"))}
	for _, method := range Methods {
		opNode := lookup(n, method)
		if !isMapping(opNode) {
			continue
		}
		item.Operations = append(item.Operations, MethodOperation{
			Method:    method,
			Operation: decodeOperation(opNode),
		})
	}
	return item
}

func decodeOperation(n *yaml.Node) *Operation {
	op := &Operation{
		Parameters: decodeParameterItems(lookup(n, "parameters")),
	}
	op.OperationID, _ = scalarString(lookup(n, "operationId"))
	op.Summary, _ = scalarString(lookup(n, "summary"))
	op.Description, _ = scalarString(lookup(n, "description"))

	if body := lookup(n, "requestBody"); isMapping(body) {
		item := Item[RequestBody]{}
		if ref, ok := refOf(body); ok {
			item.Ref = ref
		} else {
			item.Value = DecodeRequestBody(body)
		}
		op.RequestBody = &item
	}

	for _, p := range pairs(lookup(n, "responses")) {
		item := Item[Response]{}
		if ref, ok := refOf(p.Value); ok {
			item.Ref = ref
		} else {
			item.Value = DecodeResponse(p.Value)
		}
		op.Responses = append(op.Responses, StatusResponse{Status: p.Key, Response: item})
	}
	return op
}

func decodeParameterItems(n *yaml.Node) []Item[Parameter] {
	n = deref(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	var out []Item[Parameter]
	for _, c := range n.Content {
		if !isMapping(c) {
			continue
		}
		if ref, ok := refOf(c); ok {
			out = append(out, Item[Parameter]{Ref: ref})
			continue
		}
		out = append(out, Item[Parameter]{Value: DecodeParameter(c)})
	}
	return out
}

// DecodeParameter decodes a parameter object.
func DecodeParameter(n *yaml.Node) *Parameter {
	p := &Parameter{}
	p.Name, _ = scalarString(lookup(n, "name"))
	in, _ := scalarString(lookup(n, "in"))
	p.In = Location(in)
	p.Required, _ = scalarBool(lookup(n, "required"))
	p.Description, _ = scalarString(lookup(n, "description"))
	if s := lookup(n, "schema"); isMapping(s) {
		p.Schema = DecodeSchema(s)
	}
	return p
}

// DecodeRequestBody decodes a request body object.
func DecodeRequestBody(n *yaml.Node) *RequestBody {
	b := &RequestBody{Content: decodeContent(lookup(n, "content"))}
	b.Required, _ = scalarBool(lookup(n, "required"))
	b.Description, _ = scalarString(lookup(n, "description"))
	return b
}

// DecodeResponse decodes a response object.
func DecodeResponse(n *yaml.Node) *Response {
	r := &Response{Content: decodeContent(lookup(n, "content"))}
	r.Description, _ = scalarString(lookup(n, "description"))
	return r
}

func decodeContent(n *yaml.Node) Content {
	var c Content
	for _, p := range pairs(n) {
		var mt MediaType
		if s := lookup(p.Value, "schema"); isMapping(s) {
			mt.Schema = DecodeSchema(s)
		}
		c = append(c, ContentEntry{MediaType: p.Key, Value: mt})
	}
	return c
}

func refOf(n *yaml.Node) (string, bool) {
	ref, ok := scalarString(lookup(n, "$ref"))
	return ref, ok && ref != ""
}

// DecodeSchema decodes a schema node. A node carrying $ref becomes a
// reference and its other keywords are ignored.
func DecodeSchema(n *yaml.Node) *Schema {
	if ref, ok := refOf(n); ok {
		return Ref(ref)
	}

	var s Schema
	for _, p := range pairs(n) {
		v := p.Value
		switch p.Key {
		case "schemaName", "x-schema-name":
			s.NamedTypeAlias, _ = scalarString(v)
		case "type":
			s.Types = stringList(v)
		case "format":
			s.Format, _ = scalarString(v)
		case "nullable":
			s.Nullable, _ = scalarBool(v)
		case "enum":
			if vn := deref(v); vn != nil && vn.Kind == yaml.SequenceNode {
				s.EnumDeclared = true
				for _, c := range vn.Content {
					if lit, err := literalOf(c); err == nil {
						s.Enum = append(s.Enum, lit)
					}
				}
			}
		case "const":
			if lit, err := literalOf(v); err == nil {
				s.Const = &lit
			}
		case "properties":
			if !isMapping(v) {
				continue
			}
			s.PropertiesDeclared = true
			for _, prop := range pairs(v) {
				if !isMapping(prop.Value) {
					continue
				}
				s.Properties = append(s.Properties, Property{Name: prop.Key, Schema: DecodeSchema(prop.Value)})
			}
		case "required":
			s.Required = stringList(v)
		case "additionalProperties":
			if b, ok := scalarBool(v); ok {
				s.AdditionalProperties = &AdditionalProperties{Allowed: b}
			} else if isMapping(v) {
				s.AdditionalProperties = &AdditionalProperties{Allowed: true, Schema: DecodeSchema(v)}
			}
		case "items":
			if isMapping(v) {
				s.Items = DecodeSchema(v)
			}
		case "anyOf":
			s.AnyOf = decodeSchemaList(v)
		case "oneOf":
			s.OneOf = decodeSchemaList(v)
		case "allOf":
			s.AllOf = decodeSchemaList(v)
		case "minLength":
			s.MinLength = numberPtr(v)
		case "maxLength":
			s.MaxLength = numberPtr(v)
		case "pattern":
			s.Pattern, _ = scalarString(v)
		case "minimum":
			s.Minimum = numberPtr(v)
		case "maximum":
			s.Maximum = numberPtr(v)
		case "exclusiveMinimum":
			s.ExclusiveMinimum = numberPtr(v)
		case "exclusiveMaximum":
			s.ExclusiveMaximum = numberPtr(v)
		case "minItems":
			s.MinItems = numberPtr(v)
		case "maxItems":
			s.MaxItems = numberPtr(v)
		case "description":
			s.Description, _ = scalarString(v)
		case "default":
			if raw, err := encodeJSON(v); err == nil {
				s.Default = raw
			}
		}
	}

	// OpenAPI 3.0 spells exclusive bounds as booleans next to minimum and
	// maximum.
	if b, ok := scalarBool(lookup(n, "exclusiveMinimum")); ok && b && s.Minimum != nil {
		s.ExclusiveMinimum, s.Minimum = s.Minimum, nil
	}
	if b, ok := scalarBool(lookup(n, "exclusiveMaximum")); ok && b && s.Maximum != nil {
		s.ExclusiveMaximum, s.Maximum = s.Maximum, nil
	}

	return NewSchema(s)
}

func decodeSchemaList(n *yaml.Node) []*Schema {
	n = deref(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]*Schema, 0, len(n.Content))
	for _, c := range n.Content {
		if isMapping(c) {
			out = append(out, DecodeSchema(c))
		}
	}
	return out
}
