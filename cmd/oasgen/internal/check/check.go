package check

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/arienkock/codified-architecture/cmd/oasgen/internal/settings"
	"github.com/arienkock/codified-architecture/oasgen"
	"github.com/arienkock/codified-architecture/oasgen/lint"
	"github.com/arienkock/codified-architecture/oasgen/synth"
)

type Cmd struct {
	Document  settings.Source `embed:""`
	Namespace string          `help:"Import alias of the domain types module." short:"n"`
	Strict    bool            `help:"Fail on warnings too."`
}

func (c *Cmd) Run(g *settings.Globals) error {
	src := c.Document.Resolve(g.Env)
	if src == "" {
		src = oasgen.DefaultSource
	}
	doc, content, err := oasgen.LoadDocument(context.Background(), src)
	if err != nil {
		return err
	}

	ns := c.Namespace
	if ns == "" {
		ns = g.Env.DomainNamespace
	}
	syn := synth.New(doc.Resolver(), synth.WithNamespace(ns))
	report := lint.Check(content, doc, syn)

	errColor := color.New(color.FgRed)
	warnColor := color.New(color.FgYellow)
	for _, p := range report.Problems {
		if p.Severity == lint.SeverityError {
			errColor.Fprintf(g.Stdout, "✗ %s\n", p)
		} else {
			warnColor.Fprintf(g.Stdout, "! %s\n", p)
		}
	}

	warnings := len(report.Problems) - report.Errors()
	switch {
	case !report.OK():
		return fmt.Errorf("%s: %d error(s), %d warning(s)", src, report.Errors(), warnings)
	case c.Strict && warnings > 0:
		return fmt.Errorf("%s: %d warning(s)", src, warnings)
	}
	color.New(color.FgGreen).Fprint(g.Stdout, "✓ ")
	fmt.Fprintf(g.Stdout, "%s: %d operation(s), %d warning(s)\n", src, report.Operations, warnings)
	return nil
}
