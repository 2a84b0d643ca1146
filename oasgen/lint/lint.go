// Package lint validates an API document without generating output.
// Besides running synthesis it cross-checks the document with libopenapi
// and compiles its component schemas with a JSON Schema compiler.
package lint

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"

	"github.com/go-openapi/jsonpointer"
	"github.com/pb33f/libopenapi"
	"github.com/pb33f/libopenapi/index"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/arienkock/codified-architecture/oasgen/openapi"
	"github.com/arienkock/codified-architecture/oasgen/synth"
)

// Severity grades a Problem.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Problem is one finding.
type Problem struct {
	Severity Severity
	// Source names the check that found the problem.
	Source  string
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s [%s] %s", p.Severity, p.Source, p.Message)
}

// Report collects the findings of Check.
type Report struct {
	Problems   []Problem
	Operations int
}

// Errors returns the number of error-level problems.
func (r *Report) Errors() int {
	n := 0
	for _, p := range r.Problems {
		if p.Severity == SeverityError {
			n++
		}
	}
	return n
}

// OK reports whether the document has no error-level problems.
func (r *Report) OK() bool { return r.Errors() == 0 }

func (r *Report) add(sev Severity, source, format string, args ...any) {
	r.Problems = append(r.Problems, Problem{Severity: sev, Source: source, Message: fmt.Sprintf(format, args...)})
}

// Check runs every check on the document. content is the raw document the
// model was decoded from.
func Check(content []byte, doc *openapi.Document, syn *synth.Synthesizer) *Report {
	r := &Report{}
	checkSynthesis(r, doc, syn)
	checkModel(r, content)
	checkSchemas(r, doc)
	return r
}

// checkSynthesis runs the generator's own pipeline. Resolution failures are
// errors; operation warnings are passed through.
func checkSynthesis(r *Report, doc *openapi.Document, syn *synth.Synthesizer) {
	ops, err := syn.Operations(doc)
	if err != nil {
		r.add(SeverityError, "synth", "%v", err)
		return
	}
	r.Operations = len(ops)
	for _, op := range ops {
		for _, w := range op.Warnings {
			r.add(SeverityWarning, "synth", "%s %s: %s", op.HTTPMethod(), op.Path, w)
		}
	}
}

// checkModel builds the libopenapi v3 model. Circular references are only
// warnings because synthesis cuts cycles.
func checkModel(r *Report, content []byte) {
	d, err := libopenapi.NewDocument(content)
	if err != nil {
		r.add(SeverityError, "libopenapi", "failed to read document: %v", err)
		return
	}
	model, modelErrors := d.BuildV3Model()

	seen := map[string]bool{}
	report := func(err error) {
		msg := err.Error()
		if seen[msg] {
			return
		}
		seen[msg] = true
		var re *index.ResolvingError
		if errors.As(err, &re) && re.CircularReference != nil {
			r.add(SeverityWarning, "libopenapi", "circular reference: %s", msg)
			return
		}
		r.add(SeverityError, "libopenapi", "%s", msg)
	}

	for _, err := range modelErrors {
		report(err)
	}
	if model == nil {
		if len(modelErrors) == 0 {
			r.add(SeverityError, "libopenapi", "failed to build model")
		}
		return
	}
	for _, re := range model.Index.GetResolver().Resolve() {
		report(re)
	}
}

const documentURL = "oasgen:///document.json"

// checkSchemas compiles each components.schemas entry as JSON Schema
// 2020-12. OpenAPI 3.0 schema dialects differ from JSON Schema in places,
// so failures are warnings.
func checkSchemas(r *Report, doc *openapi.Document) {
	names := doc.ComponentSchemaNames()
	if len(names) == 0 {
		return
	}
	raw, err := doc.JSON()
	if err != nil {
		r.add(SeverityError, "jsonschema", "encode document: %v", err)
		return
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(documentURL, bytes.NewReader(raw)); err != nil {
		r.add(SeverityError, "jsonschema", "load document: %v", err)
		return
	}
	for _, name := range names {
		fragment := "/components/schemas/" + url.PathEscape(jsonpointer.Escape(name))
		if _, err := compiler.Compile(documentURL + "#" + fragment); err != nil {
			r.add(SeverityWarning, "jsonschema", "schema %q: %v", name, err)
		}
	}
}
