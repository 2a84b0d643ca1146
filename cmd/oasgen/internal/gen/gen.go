package gen

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/arienkock/codified-architecture/cmd/oasgen/internal/settings"
	"github.com/arienkock/codified-architecture/oasgen"
)

type Cmd struct {
	Flags settings.Flags `embed:""`
}

func (c *Cmd) Run(g *settings.Globals) error {
	cfg := c.Flags.Config(g.Env)
	cfg.Logger = g.Logger

	res, err := oasgen.Generate(context.Background(), nil, &cfg)
	if err != nil {
		return err
	}

	warn := color.New(color.FgYellow)
	for _, w := range res.Warnings {
		warn.Fprintf(g.Stderr, "! %s\n", w)
	}
	color.New(color.FgGreen).Fprint(g.Stdout, "✓ ")
	fmt.Fprintf(g.Stdout, "Generated %d handler(s) in %s\n", len(res.Files), res.OutDir)
	return nil
}
