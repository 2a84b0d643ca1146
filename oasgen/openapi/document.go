// Package openapi is the read-only document model consumed by the
// generator: paths, operations, parameters, bodies, responses and JSON
// Schema nodes, decoded from YAML or JSON with declaration order preserved.
package openapi

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Methods lists the HTTP methods an operation can be declared under, in
// the order operations are visited within a path item.
var Methods = []string{"get", "put", "post", "delete", "patch", "options", "head", "trace"}

// Location is where a parameter is carried.
type Location string

const (
	InPath   Location = "path"
	InQuery  Location = "query"
	InHeader Location = "header"
	InCookie Location = "cookie"
)

// JSONMediaType is the only content type bodies are synthesized from.
const JSONMediaType = "application/json"

// Item is either an inline value or a local reference to one.
type Item[T any] struct {
	Ref   string
	Value *T
}

// IsRef reports whether the item is a reference.
func (i Item[T]) IsRef() bool { return i.Ref != "" }

// Parameter is an operation input carried outside the body.
type Parameter struct {
	Name        string
	In          Location
	Required    bool
	Description string
	Schema      *Schema
}

// MediaType is one entry of a content map.
type MediaType struct {
	Schema *Schema
}

// Content maps media type names to their definitions, in document order.
type Content []ContentEntry

// ContentEntry is one media type of a Content map.
type ContentEntry struct {
	MediaType string
	Value     MediaType
}

// Get returns the entry for mediaType.
func (c Content) Get(mediaType string) (MediaType, bool) {
	for _, e := range c {
		if e.MediaType == mediaType {
			return e.Value, true
		}
	}
	return MediaType{}, false
}

// RequestBody describes an operation's body.
type RequestBody struct {
	Required    bool
	Description string
	Content     Content
}

// Response describes one status of an operation.
type Response struct {
	Description string
	Content     Content
}

// StatusResponse pairs a status key ("200", "4XX", "default") with its
// response, in document order.
type StatusResponse struct {
	Status   string
	Response Item[Response]
}

// Operation is a single HTTP method on a path.
type Operation struct {
	OperationID string
	Summary     string
	Description string
	Parameters  []Item[Parameter]
	RequestBody *Item[RequestBody]
	Responses   []StatusResponse
}

// MethodOperation pairs a lowercase method name with its operation.
type MethodOperation struct {
	Method    string
	Operation *Operation
}

// PathItem holds the operations of one route template.
type PathItem struct {
	Parameters []Item[Parameter]
	Operations []MethodOperation
}

// PathEntry is one route of the paths map.
type PathEntry struct {
	Path string
	Item *PathItem
}

// Document is a decoded API description. The raw tree is kept for pointer
// resolution.
type Document struct {
	root  *yaml.Node
	Paths []PathEntry
}

// Decode parses a YAML or JSON document.
func Decode(content []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	node := deref(&root)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse document: top level must be a mapping")
	}
	doc := &Document{root: node}
	for _, p := range pairs(lookup(node, "paths")) {
		doc.Paths = append(doc.Paths, PathEntry{Path: p.Key, Item: decodePathItem(p.Value)})
	}
	return doc, nil
}

// Resolver returns a resolver over the document's tree.
func (d *Document) Resolver() *Resolver {
	return &Resolver{root: d.root}
}

// ComponentSchemaNames lists the keys of components.schemas in order.
func (d *Document) ComponentSchemaNames() []string {
	var names []string
	for _, p := range pairs(lookup(lookup(d.root, "components"), "schemas")) {
		names = append(names, p.Key)
	}
	return names
}

// JSON returns the whole document as compact JSON with key order kept.
func (d *Document) JSON() ([]byte, error) {
	return encodeJSON(d.root)
}

// OperationCount returns how many operations the document declares.
func (d *Document) OperationCount() int {
	n := 0
	for _, p := range d.Paths {
		n += len(p.Item.Operations)
	}
	return n
}
