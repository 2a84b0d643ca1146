package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/arienkock/codified-architecture/cmd/oasgen/internal/check"
	"github.com/arienkock/codified-architecture/cmd/oasgen/internal/dump"
	"github.com/arienkock/codified-architecture/cmd/oasgen/internal/gen"
	"github.com/arienkock/codified-architecture/cmd/oasgen/internal/settings"
)

type CLI struct {
	LogLevel string `help:"Log level: debug, info, warn or error (env: OASGEN_LOG_LEVEL)." name:"log-level"`

	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate handler modules and index.ts from an OpenAPI document."`
	Check   check.Cmd  `cmd:"" help:"Validate an OpenAPI document without generating files."`
	Dump    dump.Cmd   `cmd:"" help:"Print the validator model of every operation as JSON."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run(g *settings.Globals) error {
	fmt.Fprintf(g.Stdout, "oasgen %s (%s)\n", Version(), runtime.Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name(settings.AppName),
		kong.Description("Generate Zod validated TypeScript handlers from OpenAPI documents."),
		kong.UsageOnError(),
	)

	env, err := settings.LoadEnv()
	ctx.FatalIfErrorf(err)
	level := cli.LogLevel
	if level == "" {
		level = env.LogLevel
	}
	logger, err := settings.NewLogger(os.Stderr, level)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(&settings.Globals{
		Logger: logger,
		Env:    env,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(1)
	}
}
