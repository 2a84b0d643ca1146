package oasgen

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config holds all options of a generation run.
type Config struct {
	// Source is the API document: a local path or a go-getter URL.
	// Default: "openapi.yaml".
	Source string `validate:"required"`

	// OutDir receives one file per operation plus index.ts.
	// Default: "src/webServer/generated/handlers".
	OutDir string `validate:"required"`

	// DomainTypesModule is the TypeScript module holding the types named by
	// schemaName. Handler files import it relative to OutDir.
	// Default: "src/domain-seam/types.ts".
	DomainTypesModule string `validate:"required"`

	// DomainNamespace is the import alias of DomainTypesModule.
	// Default: "DomainSeamTypes".
	DomainNamespace string `validate:"required,excludesall=. -/"`

	// ZodImport is the module specifier zod is imported from.
	// Default: "zod".
	ZodImport string `validate:"required"`

	// TemplatePath replaces the built-in handler template.
	TemplatePath string `validate:"omitempty,file"`

	// Frontmatter is written at the top of every handler file.
	Frontmatter string

	// Clean replaces OutDir entirely so files of removed operations do not
	// linger. When false, files are written over the existing directory.
	// Default: true.
	Clean *bool

	// Logger receives progress and warnings. Default: slog.Default().
	Logger *slog.Logger `validate:"-"`
}

// Defaults used when a Config field is empty.
const (
	DefaultSource            = "openapi.yaml"
	DefaultOutDir            = "src/webServer/generated/handlers"
	DefaultDomainTypesModule = "src/domain-seam/types.ts"
	DefaultZodImport         = "zod"
)

// applyConfigDefaults fills in default values for empty fields and
// validates the result.
func applyConfigDefaults(cfg *Config) error {
	if cfg.Source == "" {
		cfg.Source = DefaultSource
	}
	if cfg.OutDir == "" {
		cfg.OutDir = DefaultOutDir
	}
	if cfg.DomainTypesModule == "" {
		cfg.DomainTypesModule = DefaultDomainTypesModule
	}
	if cfg.DomainNamespace == "" {
		cfg.DomainNamespace = "DomainSeamTypes"
	}
	if cfg.ZodImport == "" {
		cfg.ZodImport = DefaultZodImport
	}
	if cfg.Clean == nil {
		clean := true
		cfg.Clean = &clean
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return validateConfig(cfg)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateConfig reports every invalid field in one error.
func validateConfig(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	messages := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		messages = append(messages, ve.Field()+": "+formatValidationError(ve))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(messages, "; "))
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "file":
		return "must be an existing file"
	case "excludesall":
		return fmt.Sprintf("must not contain any of %q", ve.Param())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}

// loadTemplate returns the custom template text, or "" for the built-in.
func (cfg *Config) loadTemplate() (string, error) {
	if cfg.TemplatePath == "" {
		return "", nil
	}
	b, err := os.ReadFile(cfg.TemplatePath)
	if err != nil {
		return "", fmt.Errorf("read template: %w", err)
	}
	return string(b), nil
}
