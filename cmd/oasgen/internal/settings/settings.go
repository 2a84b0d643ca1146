// Package settings merges command-line flags, environment variables and
// defaults into an oasgen.Config.
package settings

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/stoewer/go-strcase"

	"github.com/arienkock/codified-architecture/oasgen"
)

// AppName is the name environment variables are prefixed with.
const AppName = "oasgen"

// Prefix returns the environment variable prefix, e.g. "OASGEN_".
func Prefix() string {
	return strcase.UpperSnakeCase(AppName) + "_"
}

// Env holds the environment fallbacks of every flag.
type Env struct {
	Source            string `env:"SOURCE"`
	OutDir            string `env:"OUT_DIR"`
	DomainTypesModule string `env:"DOMAIN_TYPES_MODULE"`
	DomainNamespace   string `env:"DOMAIN_NAMESPACE"`
	ZodImport         string `env:"ZOD_IMPORT"`
	TemplatePath      string `env:"TEMPLATE"`
	Frontmatter       string `env:"FRONTMATTER"`
	Clean             bool   `env:"CLEAN" envDefault:"true"`
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadEnv reads the process environment.
func LoadEnv() (Env, error) {
	return LoadEnvFrom(nil)
}

// LoadEnvFrom reads environ instead of the process environment when it is
// not nil.
func LoadEnvFrom(environ map[string]string) (Env, error) {
	var e Env
	opts := env.Options{Prefix: Prefix()}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&e, opts); err != nil {
		return Env{}, fmt.Errorf("environment: %w", err)
	}
	return e, nil
}

// Source selects the API document.
type Source struct {
	Source string `arg:"" optional:"" help:"OpenAPI document: local path or URL (default: openapi.yaml)."`
}

// Resolve returns the flag value, then the environment value.
func (s Source) Resolve(e Env) string {
	return first(s.Source, e.Source)
}

// Flags are the options of the gen command. Empty values fall back to the
// environment and then to the defaults of oasgen.Config.
type Flags struct {
	Document Source `embed:""`

	Out         string `help:"Output directory (default: src/webServer/generated/handlers)." short:"o"`
	DomainTypes string `help:"TypeScript module holding named domain types (default: src/domain-seam/types.ts)." name:"domain-types"`
	Namespace   string `help:"Import alias of the domain types module (default: DomainSeamTypes)." short:"n"`
	ZodImport   string `help:"Module specifier zod is imported from (default: zod)." name:"zod-import"`
	Template    string `help:"Custom handler template." type:"existingfile" short:"t"`
	Frontmatter string `help:"Text written at the top of every handler file."`
	NoClean     bool   `help:"Write over the output directory instead of replacing it." name:"no-clean"`
}

// Config merges f over e. Fields left empty are defaulted by oasgen.
func (f Flags) Config(e Env) oasgen.Config {
	clean := e.Clean && !f.NoClean
	return oasgen.Config{
		Source:            f.Document.Resolve(e),
		OutDir:            first(f.Out, e.OutDir),
		DomainTypesModule: first(f.DomainTypes, e.DomainTypesModule),
		DomainNamespace:   first(f.Namespace, e.DomainNamespace),
		ZodImport:         first(f.ZodImport, e.ZodImport),
		TemplatePath:      first(f.Template, e.TemplatePath),
		Frontmatter:       first(f.Frontmatter, e.Frontmatter),
		Clean:             &clean,
	}
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", name)
	}
	return level, nil
}

// NewLogger returns a text logger writing to w at the named level.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// Globals is bound into every command's Run method.
type Globals struct {
	Logger *slog.Logger
	Env    Env
	Stdout io.Writer
	Stderr io.Writer
}
