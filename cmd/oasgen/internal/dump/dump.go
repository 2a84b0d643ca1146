// Package dump prints the validator model of every operation as JSON.
package dump

import (
	"context"
	"fmt"

	gojson "github.com/goccy/go-json"

	"github.com/arienkock/codified-architecture/cmd/oasgen/internal/settings"
	"github.com/arienkock/codified-architecture/oasgen"
	"github.com/arienkock/codified-architecture/oasgen/ir"
	"github.com/arienkock/codified-architecture/oasgen/synth"
)

type Cmd struct {
	Document  settings.Source `embed:""`
	Namespace string          `help:"Import alias of the domain types module." short:"n"`
	Operation string          `help:"Only dump the operation with this handler name or operationId." short:"O"`
}

type response struct {
	Status string  `json:"status"`
	Schema ir.Expr `json:"schema"`
}

type operation struct {
	Method       string     `json:"method"`
	Path         string     `json:"path"`
	OperationID  string     `json:"operationId,omitempty"`
	Handler      string     `json:"handler"`
	File         string     `json:"file"`
	PathParams   ir.Expr    `json:"pathParams"`
	QueryParams  ir.Expr    `json:"queryParams"`
	HeaderParams ir.Expr    `json:"headerParams"`
	CookieParams ir.Expr    `json:"cookieParams"`
	RequestBody  ir.Expr    `json:"requestBody"`
	Responses    []response `json:"responses"`
	Warnings     []string   `json:"warnings,omitempty"`
}

func (c *Cmd) Run(g *settings.Globals) error {
	src := c.Document.Resolve(g.Env)
	if src == "" {
		src = oasgen.DefaultSource
	}
	doc, _, err := oasgen.LoadDocument(context.Background(), src)
	if err != nil {
		return err
	}
	ns := c.Namespace
	if ns == "" {
		ns = g.Env.DomainNamespace
	}
	ops, err := synth.New(doc.Resolver(), synth.WithNamespace(ns)).Operations(doc)
	if err != nil {
		return err
	}

	out := make([]operation, 0, len(ops))
	for _, op := range ops {
		if c.Operation != "" && c.Operation != op.Handler.Name && c.Operation != op.OperationID {
			continue
		}
		out = append(out, convert(op))
	}
	if c.Operation != "" && len(out) == 0 {
		return fmt.Errorf("no operation %q in %s", c.Operation, src)
	}

	data, err := gojson.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	_, err = fmt.Fprintln(g.Stdout, string(data))
	return err
}

func convert(op *synth.Operation) operation {
	responses := make([]response, len(op.Responses))
	for i, r := range op.Responses {
		responses[i] = response{Status: r.Status, Schema: r.Schema}
	}
	return operation{
		Method:       op.HTTPMethod(),
		Path:         op.Path,
		OperationID:  op.OperationID,
		Handler:      op.Handler.Name,
		File:         op.Handler.FileName(),
		PathParams:   op.PathParams,
		QueryParams:  op.QueryParams,
		HeaderParams: op.HeaderParams,
		CookieParams: op.CookieParams,
		RequestBody:  op.RequestBody,
		Responses:    responses,
		Warnings:     op.Warnings,
	}
}
