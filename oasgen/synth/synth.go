// Package synth translates OpenAPI schema nodes into validator expressions
// and assembles the per-operation parameter, body and response models.
package synth

import (
	"github.com/arienkock/codified-architecture/oasgen/ir"
	"github.com/arienkock/codified-architecture/oasgen/openapi"
)

// DefaultNamespace is the namespace named type aliases are emitted under.
const DefaultNamespace = "DomainSeamTypes"

// Synthesizer converts schemas of one document. It holds no state between
// calls and can be shared.
type Synthesizer struct {
	resolver  *openapi.Resolver
	namespace string
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithNamespace sets the namespace of named type alias references.
func WithNamespace(ns string) Option {
	return func(s *Synthesizer) {
		if ns != "" {
			s.namespace = ns
		}
	}
}

// New returns a Synthesizer resolving references with r.
func New(r *openapi.Resolver, opts ...Option) *Synthesizer {
	s := &Synthesizer{resolver: r, namespace: DefaultNamespace}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize converts node into a validator expression. Each call starts
// with an empty set of in-progress references. A nil node yields the
// undefined expression.
func (s *Synthesizer) Synthesize(node *openapi.Schema) (ir.Expr, error) {
	c := &context{
		resolver:   s.resolver,
		namespace:  s.namespace,
		inProgress: make(map[string]bool),
	}
	return c.synthesize(node)
}

// context is the state of one top-level synthesis. inProgress holds the
// pointers being expanded on the current call stack.
type context struct {
	resolver   *openapi.Resolver
	namespace  string
	inProgress map[string]bool
}

func (c *context) synthesize(node *openapi.Schema) (ir.Expr, error) {
	if node == nil {
		return ir.Undefined(), nil
	}
	if node.Kind() == openapi.SchemaReference {
		return c.reference(node.Ref)
	}
	if node.NamedTypeAlias != "" {
		return ir.Named(c.namespace, node.NamedTypeAlias), nil
	}

	expr, err := c.shape(node)
	if err != nil {
		return nil, err
	}
	if node.Nullable || node.DeclaresNullType() || node.ConstIsNull() {
		expr = ir.Nullable(expr)
	}
	expr = ir.Describe(expr, node.Description)
	return ir.WithDefault(expr, node.Default), nil
}

// reference expands pointer unless it is already being expanded higher up
// the stack, in which case the cycle is cut with a permissive expression.
func (c *context) reference(pointer string) (ir.Expr, error) {
	if c.inProgress[pointer] {
		return ir.CycleFallback(), nil
	}
	c.inProgress[pointer] = true
	defer delete(c.inProgress, pointer)

	resolved, err := c.resolver.Schema(pointer)
	if err != nil {
		return nil, err
	}
	return c.synthesize(resolved)
}

func (c *context) shape(node *openapi.Schema) (ir.Expr, error) {
	switch node.Kind() {
	case openapi.SchemaUnion:
		return c.union(node.Members())
	case openapi.SchemaIntersection:
		return c.intersection(node.Members())
	case openapi.SchemaEnum:
		return enum(node.Enum), nil
	case openapi.SchemaConst:
		return literal(*node.Const), nil
	case openapi.SchemaPrimitive:
		return primitive(node), nil
	case openapi.SchemaArray:
		return c.array(node)
	case openapi.SchemaObject:
		return c.object(node)
	default:
		return ir.Permissive(), nil
	}
}
