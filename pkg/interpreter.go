package tinyc

import (
	"bufio"
	"io"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global interpreter tracer
func T() tracing.Trace {
	return gtrace.InterpreterTracer
}

type Interpreter struct {
	cfg Config
	out io.Writer
}

// NewInterpreter writes program output to out. Function calls are traced to
// T() when cfg.Trace is set.
func NewInterpreter(cfg Config, out io.Writer) *Interpreter {
	return &Interpreter{
		cfg: cfg,
		out: out,
	}
}

// Run reads the input count, the integers and the program text from r, then
// executes the program.
func (i *Interpreter) Run(reader io.Reader) error {
	prog, feed, err := i.Load(reader)
	if err != nil {
		return err
	}

	return i.Execute(prog, feed)
}

// Load reads the integer feed and parses the program that follows it.
func (i *Interpreter) Load(reader io.Reader) (*Program, *IntFeed, error) {
	br := bufio.NewReader(reader)

	feed, err := ReadFeed(br)
	if err != nil {
		return nil, nil, err
	}

	prog, err := i.Parse(br)
	if err != nil {
		return nil, nil, err
	}

	return prog, feed, nil
}

func (i *Interpreter) Parse(reader io.Reader) (*Program, error) {
	return NewParser(NewLexer(reader)).Run()
}

func (i *Interpreter) Execute(prog *Program, feed Feed) error {
	e := NewEvaluator(prog, feed, i.out)
	e.MaxCallDepth = i.cfg.MaxCallDepth
	if i.cfg.Trace {
		if t := T(); t != nil {
			e.Trace = t
		}
	}

	_, err := e.Run()
	return err
}
