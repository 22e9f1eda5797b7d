// Arkfall is a seeded survival game: steer a colony ark and its crew from
// sector to sector until they find a world to settle or fall apart.
// Usage: arkfall [--version] [--plain] [--script <file>] [--trace] [--seed <n>] [--content <dir>]
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"

	"github.com/nathoo/arkfall/cli"
	"github.com/nathoo/arkfall/config"
	"github.com/nathoo/arkfall/content"
	"github.com/nathoo/arkfall/engine"
	"github.com/nathoo/arkfall/engine/command"
	"github.com/nathoo/arkfall/loader"
	"github.com/nathoo/arkfall/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: arkfall [--version] [--plain] [--script <file>] [--trace] [--seed <n>] [--content <dir>]"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading configuration: %v\n", err)
		os.Exit(1)
	}

	trace := false
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("arkfall %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			cfg.Plain = true
		case "--trace":
			trace = true
		case "--script":
			scriptFile = flagValue(args, &i)
		case "--content":
			cfg.ContentDir = flagValue(args, &i)
		case "--seed":
			seed, err := strconv.ParseInt(flagValue(args, &i), 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "--seed requires an integer: %v\n", err)
				os.Exit(1)
			}
			cfg.Seed = seed
		default:
			fmt.Fprintf(os.Stderr, "Unknown argument %q\n%s\n", args[i], usage)
			os.Exit(1)
		}
	}

	if cfg.Seed == 0 {
		seed, err := engine.NewSeed()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg.Seed = seed
	}

	// Load and compile Lua encounter content.
	var tables loader.Tables
	if cfg.ContentDir != "" {
		tables, err = loader.Load(cfg.ContentDir)
	} else {
		tables, err = loader.LoadFS(content.FS, ".")
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading content: %v\n", err)
		os.Exit(1)
	}

	eng := engine.New(engine.Options{
		Seed:       cfg.Seed,
		MaxSalvage: cfg.MaxSalvage,
		MaxRations: cfg.MaxRations,
		BarkDelay:  cfg.BarkDelay,
		Tables:     tables,
	})
	sess := command.NewSession(eng)

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		fmt.Printf("Arkfall %s, seed %d\n\n", version, cfg.Seed)
		c := cli.New(sess)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Run()
		return
	}

	// Use plain CLI if asked to or stdout is not a terminal.
	if cfg.Plain || !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Printf("Arkfall %s, seed %d\n\n", version, cfg.Seed)
		c := cli.New(sess)
		c.Trace = trace
		c.Run()
		return
	}

	if err := tui.Run(sess); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// flagValue returns the argument after args[*i] and advances past it.
func flagValue(args []string, i *int) string {
	if *i+1 >= len(args) {
		fmt.Fprintf(os.Stderr, "%s requires a value\n%s\n", args[*i], usage)
		os.Exit(1)
	}
	*i++
	return args[*i]
}
