package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"go.tinyc.dev/pkg"
)

func main() {
	os.Exit(run())
}

// run returns the process exit status so that deferred cleanup happens
// before main exits.
func run() int {
	configPath := flag.String("config", "", "YAML config file")
	trace := flag.Bool("trace", false, "log function calls to stderr")
	dumpAST := flag.Bool("ast", false, "print the parsed syntax tree as YAML and exit")
	maxDepth := flag.Int("max-depth", -1, "maximum call depth of the interpreted program (0 = unlimited)")
	noColor := flag.Bool("no-color", false, "disable colored diagnostics")
	flag.Parse()

	logger := log.New(os.Stderr, "tinyc: ", 0)

	cfg := tinyc.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = tinyc.LoadConfig(*configPath); err != nil {
			logger.Print(err)
			return 1
		}
	}

	if *trace {
		cfg.Trace = true
	}
	if *maxDepth >= 0 {
		cfg.MaxCallDepth = *maxDepth
	}
	if *noColor {
		cfg.NoColor = true
	}

	if cfg.Trace {
		tracer := gologadapter.New()
		tracer.SetTraceLevel(tracing.LevelDebug)
		gtrace.InterpreterTracer = tracer
	}

	var input io.Reader = os.Stdin
	if path := flag.Arg(0); path != "" {
		f, err := os.Open(path)
		if err != nil {
			logger.Print(err)
			return 1
		}
		defer f.Close()

		input = f
	}

	interp := tinyc.NewInterpreter(cfg, os.Stdout)

	if *dumpAST {
		prog, _, err := interp.Load(input)
		if err != nil {
			printError(err, cfg)
			return 1
		}

		if err := tinyc.DumpYAML(os.Stdout, prog); err != nil {
			logger.Print(err)
			return 1
		}

		return 0
	}

	if err := interp.Run(input); err != nil {
		printError(err, cfg)
		return 1
	}

	return 0
}

func printError(err error, cfg tinyc.Config) {
	label := "error"

	var parseErr *tinyc.ParseError
	var runtimeErr *tinyc.RuntimeError
	switch {
	case errors.As(err, &parseErr):
		label = "parse error"
	case errors.As(err, &runtimeErr):
		label = "runtime error"
	}

	msg := fmt.Sprintf("%s: %s", label, err)
	if !cfg.NoColor {
		errStyle := lipgloss.NewRenderer(os.Stderr).NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
		msg = errStyle.Render(msg)
	}

	fmt.Fprintln(os.Stderr, msg)
}
