// Package oasgen generates TypeScript handler modules with Zod validators
// from an OpenAPI 3 document.
//
// The fluent API mirrors the CLI:
//
//	res, err := oasgen.FromFile("openapi.yaml").
//	    DomainTypes("src/domain-seam/types.ts", "DomainSeamTypes").
//	    ToDir(ctx, "src/webServer/generated/handlers")
package oasgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/arienkock/codified-architecture/internal/fetch"
	"github.com/arienkock/codified-architecture/oasgen/handler"
	"github.com/arienkock/codified-architecture/oasgen/openapi"
	"github.com/arienkock/codified-architecture/oasgen/sink"
	"github.com/arienkock/codified-architecture/oasgen/synth"
)

// ErrDuplicateHandler is returned when two operations derive the same file
// name.
var ErrDuplicateHandler = errors.New("duplicate handler")

// DuplicateHandlerError names the file stem and the two operations that
// share it.
type DuplicateHandlerError struct {
	FileStem string
	First    string // "METHOD /path"
	Second   string
}

func (e *DuplicateHandlerError) Error() string {
	return fmt.Sprintf("duplicate handler %q: %s and %s", e.FileStem, e.First, e.Second)
}

func (e *DuplicateHandlerError) Is(target error) bool { return target == ErrDuplicateHandler }

// GeneratedFile describes one handler file of a run.
type GeneratedFile struct {
	HandlerName string
	FileStem    string
	Method      string
	Path        string
}

// GenerateResult summarizes a generation run.
type GenerateResult struct {
	// OutDir is the directory the files were written to. Empty when the
	// output went to a caller supplied sink.
	OutDir string
	// Files lists handler files in document order. index.ts is not listed.
	Files []GeneratedFile
	// Warnings are the non-fatal issues of all operations, each prefixed
	// with "METHOD /path: ".
	Warnings []string
}

// Generator provides a fluent API for code generation.
// Create with FromFile or FromDocument and finish with ToDir or ToSink.
type Generator struct {
	doc *openapi.Document
	cfg Config
}

// FromFile creates a Generator reading the document at src, a local path
// or any source go-getter understands.
func FromFile(src string) *Generator {
	return &Generator{cfg: Config{Source: src}}
}

// FromDocument creates a Generator for an already decoded document.
func FromDocument(doc *openapi.Document) *Generator {
	return &Generator{doc: doc}
}

// WithConfig replaces the whole configuration. The document source set by
// FromFile is kept when cfg has none.
func (g *Generator) WithConfig(cfg Config) *Generator {
	if cfg.Source == "" {
		cfg.Source = g.cfg.Source
	}
	g.cfg = cfg
	return g
}

// DomainTypes sets the module holding named domain types and the namespace
// they are imported under.
func (g *Generator) DomainTypes(module, namespace string) *Generator {
	g.cfg.DomainTypesModule = module
	g.cfg.DomainNamespace = namespace
	return g
}

// ZodImport sets the module specifier zod is imported from.
func (g *Generator) ZodImport(specifier string) *Generator {
	g.cfg.ZodImport = specifier
	return g
}

// Template replaces the built-in handler template with the file at path.
func (g *Generator) Template(path string) *Generator {
	g.cfg.TemplatePath = path
	return g
}

// Frontmatter is written at the top of each handler file.
func (g *Generator) Frontmatter(content string) *Generator {
	g.cfg.Frontmatter = content
	return g
}

// Logger sets the logger of the run.
func (g *Generator) Logger(l *slog.Logger) *Generator {
	g.cfg.Logger = l
	return g
}

// Clean controls whether ToDir replaces the output directory entirely.
func (g *Generator) Clean(clean bool) *Generator {
	g.cfg.Clean = &clean
	return g
}

// ToDir generates into dir. This is a terminal operation that writes files
// to disk.
func (g *Generator) ToDir(ctx context.Context, dir string) (*GenerateResult, error) {
	g.cfg.OutDir = dir
	return Generate(ctx, g.doc, &g.cfg)
}

// ToSink generates into out instead of the output directory. OutDir is
// still used to compute the domain types import path.
func (g *Generator) ToSink(ctx context.Context, out sink.OutputSink) (*GenerateResult, error) {
	if err := applyConfigDefaults(&g.cfg); err != nil {
		return nil, err
	}
	files, res, err := render(ctx, g.doc, &g.cfg)
	if err != nil {
		return nil, err
	}
	if err := files.FlushTo(ctx, out); err != nil {
		return nil, err
	}
	res.OutDir = ""
	return res, nil
}

// Generate runs a complete generation. doc may be nil, in which case the
// document is fetched from cfg.Source. Every file is rendered before the
// first write, so a failing operation leaves the output untouched.
func Generate(ctx context.Context, doc *openapi.Document, cfg *Config) (*GenerateResult, error) {
	if err := applyConfigDefaults(cfg); err != nil {
		return nil, err
	}
	files, res, err := render(ctx, doc, cfg)
	if err != nil {
		return nil, err
	}
	if err := write(ctx, files, cfg); err != nil {
		return nil, err
	}
	cfg.Logger.Info("generated handlers",
		slog.Int("handlers", len(res.Files)),
		slog.String("dir", cfg.OutDir),
		slog.Int("warnings", len(res.Warnings)),
	)
	return res, nil
}

// LoadDocument fetches and decodes the document at src.
func LoadDocument(ctx context.Context, src string) (*openapi.Document, []byte, error) {
	content, err := fetch.Fetch(ctx, src, fetch.Options{})
	if err != nil {
		return nil, nil, err
	}
	doc, err := openapi.Decode(content)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", src, err)
	}
	return doc, content, nil
}

// render synthesizes every operation and renders all files into memory.
func render(ctx context.Context, doc *openapi.Document, cfg *Config) (*sink.MemorySink, *GenerateResult, error) {
	log := cfg.Logger.With(slog.String("run_id", uuid.NewString()))

	if doc == nil {
		var err error
		if doc, _, err = LoadDocument(ctx, cfg.Source); err != nil {
			return nil, nil, err
		}
	}

	syn := synth.New(doc.Resolver(), synth.WithNamespace(cfg.DomainNamespace))
	ops, err := syn.Operations(doc)
	if err != nil {
		return nil, nil, err
	}
	if err := checkDuplicates(ops); err != nil {
		return nil, nil, err
	}

	domainImport, err := handler.ImportPath(cfg.OutDir, cfg.DomainTypesModule)
	if err != nil {
		return nil, nil, err
	}
	tpl, err := cfg.loadTemplate()
	if err != nil {
		return nil, nil, err
	}
	emitter, err := handler.New(handler.Options{
		Namespace:    cfg.DomainNamespace,
		DomainImport: domainImport,
		ZodImport:    cfg.ZodImport,
		Frontmatter:  cfg.Frontmatter,
		Template:     tpl,
	})
	if err != nil {
		return nil, nil, err
	}

	files := sink.NewMemorySink()
	res := &GenerateResult{OutDir: cfg.OutDir}
	for _, op := range ops {
		content, err := emitter.Render(op)
		if err != nil {
			return nil, nil, err
		}
		name := op.Handler.FileName()
		if err := files.WriteFile(ctx, name, content); err != nil {
			return nil, nil, err
		}
		log.Debug("rendered handler",
			slog.String("method", op.HTTPMethod()),
			slog.String("path", op.Path),
			slog.String("handler", op.Handler.Name),
			slog.String("file", name),
		)
		for _, w := range op.Warnings {
			log.Warn(w, slog.String("method", op.HTTPMethod()), slog.String("path", op.Path))
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s %s: %s", op.HTTPMethod(), op.Path, w))
		}
		res.Files = append(res.Files, GeneratedFile{
			HandlerName: op.Handler.Name,
			FileStem:    op.Handler.FileStem,
			Method:      op.HTTPMethod(),
			Path:        op.Path,
		})
	}
	if err := files.WriteFile(ctx, handler.IndexFile, handler.Index(ops)); err != nil {
		return nil, nil, err
	}
	return files, res, nil
}

func checkDuplicates(ops []*synth.Operation) error {
	seen := make(map[string]*synth.Operation, len(ops))
	for _, op := range ops {
		stem := op.Handler.FileStem
		if prev, ok := seen[stem]; ok {
			return &DuplicateHandlerError{
				FileStem: stem,
				First:    prev.HTTPMethod() + " " + prev.Path,
				Second:   op.HTTPMethod() + " " + op.Path,
			}
		}
		seen[stem] = op
	}
	return nil
}

// write moves the rendered files to cfg.OutDir.
func write(ctx context.Context, files *sink.MemorySink, cfg *Config) error {
	if !*cfg.Clean {
		return files.FlushTo(ctx, sink.NewFilesystemSink(cfg.OutDir))
	}
	staged, err := sink.NewStagedDir(cfg.OutDir)
	if err != nil {
		return err
	}
	if err := files.FlushTo(ctx, staged); err != nil {
		_ = staged.Discard()
		return err
	}
	if err := staged.Commit(); err != nil {
		_ = staged.Discard()
		return err
	}
	if dir := staged.Leftover(); dir != "" {
		cfg.Logger.Warn("failed to remove previous output", slog.String("dir", dir))
	}
	return nil
}
