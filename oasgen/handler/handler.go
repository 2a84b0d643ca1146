// Package handler emits one TypeScript handler module per operation and
// the index that re-exports them.
package handler

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/arienkock/codified-architecture/oasgen/ir"
	"github.com/arienkock/codified-architecture/oasgen/synth"
	"github.com/arienkock/codified-architecture/oasgen/zod"
)

//go:embed templates/domain-handler.ts.tmpl
var defaultTemplate string

// DefaultTemplate returns the built-in handler template.
func DefaultTemplate() string { return defaultTemplate }

// IndexFile is the name of the generated index module.
const IndexFile = "index.ts"

// Options configures an Emitter.
type Options struct {
	// Namespace is the import alias of the domain types module.
	Namespace string
	// DomainImport is the module specifier of the domain types, relative to
	// the output directory. Empty omits the import.
	DomainImport string
	// ZodImport is the module specifier zod is imported from (default: "zod").
	ZodImport string
	// Frontmatter is written at the top of every handler file.
	Frontmatter string
	// Template replaces the built-in template when set.
	Template string
}

// Emitter renders handler files from operation models.
type Emitter struct {
	opts     Options
	tpl      *template.Template
	renderer *zod.Renderer
}

// New parses the handler template and returns an Emitter.
func New(opts Options) (*Emitter, error) {
	if opts.Namespace == "" {
		opts.Namespace = synth.DefaultNamespace
	}
	if opts.ZodImport == "" {
		opts.ZodImport = "zod"
	}
	text := opts.Template
	if text == "" {
		text = defaultTemplate
	}
	tpl, err := template.New("handler").Funcs(funcMap()).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse handler template: %w", err)
	}
	return &Emitter{opts: opts, tpl: tpl, renderer: &zod.Renderer{}}, nil
}

func funcMap() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["jsString"] = func(s string) string { return string(ir.QuoteString(s)) }
	return funcs
}

// Data returns the values the template is filled with.
func (e *Emitter) Data(op *synth.Operation) map[string]any {
	imports := ""
	if e.opts.DomainImport != "" {
		imports = fmt.Sprintf("import * as %s from '%s';", e.opts.Namespace, e.opts.DomainImport)
	}
	return map[string]any{
		"FRONTMATTER":               e.opts.Frontmatter,
		"ZOD_IMPORT":                e.opts.ZodImport,
		"ADDITIONAL_IMPORTS":        imports,
		"PATH_PARAMS_SCHEMA":        e.renderer.Render(op.PathParams),
		"QUERY_PARAMS_SCHEMA":       e.renderer.Render(op.QueryParams),
		"HEADER_PARAMS_SCHEMA":      e.renderer.Render(op.HeaderParams),
		"COOKIE_PARAMS_SCHEMA":      e.renderer.Render(op.CookieParams),
		"REQUEST_BODY_SCHEMA":       e.renderer.Render(op.RequestBody),
		"RESPONSE_SCHEMAS":          ResponseSchemas(e.renderer, op.Responses),
		"HANDLER_RESPONSE_TYPE_MAP": ResponseTypeMap(op.Responses),
		"HANDLER_RESPONSE_UNION":    ResponseUnion(op.Responses, op.Handler.Name),
		"HANDLER_NAME":              op.Handler.Name,
		"HANDLER_VAR_NAME":          op.Handler.VarName,
		"HTTP_METHOD":               op.HTTPMethod(),
		"PATH":                      op.Path,
		"DOC_COMMENT":               DocComment(op.Summary, op.Description),
	}
}

// DocComment renders summary and description as a JSDoc block, or "" when
// both are empty.
func DocComment(summary, description string) string {
	var paras []string
	for _, p := range []string{summary, description} {
		if p = strings.TrimSpace(p); p != "" {
			paras = append(paras, p)
		}
	}
	if len(paras) == 0 {
		return ""
	}
	text := strings.ReplaceAll(strings.Join(paras, "\n\n"), "*/", "*\\/")
	var b strings.Builder
	b.WriteString("/**\n")
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimRight(line, " \t"); line == "" {
			b.WriteString(" *\n")
		} else {
			b.WriteString(" * " + line + "\n")
		}
	}
	b.WriteString(" */")
	return b.String()
}

// Render fills the template for op.
func (e *Emitter) Render(op *synth.Operation) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.tpl.Execute(&buf, e.Data(op)); err != nil {
		return nil, fmt.Errorf("render %s: %w", op.Handler.Name, err)
	}
	return buf.Bytes(), nil
}

const entryIndent = "  "

// ResponseSchemas renders the status to validator map entries, one per
// line, in the order given.
func ResponseSchemas(r *zod.Renderer, responses []synth.Response) string {
	lines := make([]string, len(responses))
	for i, resp := range responses {
		lines[i] = zod.ObjectEntry(string(ir.QuoteString(resp.Status)), r.Render(resp.Schema), entryIndent)
	}
	return strings.Join(lines, "\n")
}

// ResponseTypeMap renders one inferred body type per status.
func ResponseTypeMap(responses []synth.Response) string {
	lines := make([]string, len(responses))
	for i, resp := range responses {
		status := string(ir.QuoteString(resp.Status))
		lines[i] = fmt.Sprintf("%s%s: z.infer<(typeof responseSchemas)[%s]>;", entryIndent, status, status)
	}
	return strings.Join(lines, "\n")
}

// ResponseUnion renders the discriminated status/body union. A single
// status yields its shape without a union.
func ResponseUnion(responses []synth.Response, handlerName string) string {
	if len(responses) == 0 {
		return "{ status: number; body: unknown }"
	}
	members := make([]string, len(responses))
	for i, resp := range responses {
		status := string(ir.QuoteString(resp.Status))
		members[i] = fmt.Sprintf("{ status: %s; body: %sResponseBodies[%s] }", status, handlerName, status)
	}
	return strings.Join(members, " | ")
}

// Index renders the module re-exporting every handler, sorted by handler
// name.
func Index(ops []*synth.Operation) []byte {
	sorted := make([]*synth.Operation, len(ops))
	copy(sorted, ops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Handler.Name < sorted[j].Handler.Name
	})

	var buf bytes.Buffer
	for _, op := range sorted {
		fmt.Fprintf(&buf, "export * from './%s.js';\n", op.Handler.FileStem)
	}
	return buf.Bytes()
}

var extension = regexp.MustCompile(`\.[^/.]+$`)

// ImportPath returns the module specifier for target as imported from a
// file in fromDir: slash separated, starting with "." and without the file
// extension.
func ImportPath(fromDir, target string) (string, error) {
	absFrom, err := filepath.Abs(fromDir)
	if err != nil {
		return "", err
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absFrom, absTarget)
	if err != nil {
		return "", fmt.Errorf("import path from %s to %s: %w", fromDir, target, err)
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}
	return extension.ReplaceAllString(rel, ""), nil
}
