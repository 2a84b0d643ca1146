package openapi

import (
	"strconv"
	"strings"

	"github.com/go-openapi/jsonpointer"
	"gopkg.in/yaml.v3"
)

// Resolver follows local JSON pointers ("#/components/schemas/User")
// against a document. It keeps no state between calls.
type Resolver struct {
	root *yaml.Node
}

// Resolve returns the node addressed by pointer. "#" addresses the document
// root. Pointers that are not of the "#" or "#/..." form fail with
// CodeUnsupportedReferenceKind; a segment that does not exist fails with
// CodeUnresolvableReference.
func (r *Resolver) Resolve(pointer string) (*yaml.Node, error) {
	if pointer != "#" && !strings.HasPrefix(pointer, "#/") {
		return nil, unsupported(pointer)
	}
	ptr, err := jsonpointer.New(pointer[1:])
	if err != nil {
		return nil, unsupported(pointer)
	}

	current := r.root
	for _, segment := range ptr.DecodedTokens() {
		next := child(current, segment)
		if next == nil {
			return nil, unresolvable(pointer, segment)
		}
		current = next
	}
	return deref(current), nil
}

func child(n *yaml.Node, segment string) *yaml.Node {
	n = deref(n)
	if n == nil {
		return nil
	}
	switch n.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].Value == segment {
				return n.Content[i+1]
			}
		}
	case yaml.SequenceNode:
		idx, err := strconv.Atoi(segment)
		if err == nil && idx >= 0 && idx < len(n.Content) {
			return n.Content[idx]
		}
	}
	return nil
}

// Schema resolves pointer and decodes the target as a schema.
func (r *Resolver) Schema(pointer string) (*Schema, error) {
	n, err := r.Resolve(pointer)
	if err != nil {
		return nil, err
	}
	return DecodeSchema(n), nil
}

// Parameter returns the parameter an item stands for, following a
// reference when needed. Chains of references are followed.
func (r *Resolver) Parameter(item Item[Parameter]) (*Parameter, error) {
	n, err := r.follow(item.Ref)
	if err != nil || n == nil {
		return item.Value, err
	}
	return DecodeParameter(n), nil
}

// RequestBody returns the request body an item stands for.
func (r *Resolver) RequestBody(item Item[RequestBody]) (*RequestBody, error) {
	n, err := r.follow(item.Ref)
	if err != nil || n == nil {
		return item.Value, err
	}
	return DecodeRequestBody(n), nil
}

// Response returns the response an item stands for.
func (r *Resolver) Response(item Item[Response]) (*Response, error) {
	n, err := r.follow(item.Ref)
	if err != nil || n == nil {
		return item.Value, err
	}
	return DecodeResponse(n), nil
}

// follow resolves ref and any further $ref the target holds. It returns a
// nil node for an empty ref.
func (r *Resolver) follow(ref string) (*yaml.Node, error) {
	if ref == "" {
		return nil, nil
	}
	seen := map[string]bool{}
	for {
		if seen[ref] {
			return nil, unresolvable(ref, "$ref")
		}
		seen[ref] = true
		n, err := r.Resolve(ref)
		if err != nil {
			return nil, err
		}
		next, ok := refOf(n)
		if !ok {
			return n, nil
		}
		ref = next
	}
}
