package tinyc

import (
	"errors"
	"fmt"
	"io"

	"github.com/npillmayer/schuko/tracing"
)

// DefaultMaxCallDepth keeps deeply recursive programs inside the Go stack
// limit. Each interpreted call costs a few dozen Go frames.
const DefaultMaxCallDepth = 10000

// Evaluator walks a parsed Program. It is single use and not safe for
// concurrent calls.
type Evaluator struct {
	prog     *Program
	bindings *Bindings
	feed     Feed
	out      io.Writer

	// Trace, when set, receives a debug line per function entry and exit.
	Trace tracing.Trace
	// MaxCallDepth limits nested calls; zero means unlimited.
	MaxCallDepth int

	returning bool
	depth     int
}

func NewEvaluator(prog *Program, feed Feed, out io.Writer) *Evaluator {
	return &Evaluator{
		prog:         prog,
		bindings:     NewBindings(),
		feed:         feed,
		out:          out,
		MaxCallDepth: DefaultMaxCallDepth,
	}
}

func (e *Evaluator) Bindings() *Bindings {
	return e.bindings
}

// Run binds the globals and calls main. main's result is returned but has no
// effect on the program's output.
func (e *Evaluator) Run() (int32, error) {
	var globals scope
	defer globals.release(e.bindings)

	for _, decl := range e.prog.Decls {
		if def, ok := decl.(*VarDef); ok {
			if err := globals.declare(e.bindings, def); err != nil {
				return 0, &RuntimeError{Func: "<global>", Err: err}
			}
		}
	}

	return e.Call("main")
}

// Call invokes a function of the program by name.
func (e *Evaluator) Call(name string, args ...int32) (int32, error) {
	fn, ok := e.prog.Functions[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUndefinedFunction, name)
	}

	return e.callFunction(fn, args)
}

func (e *Evaluator) callFunction(fn Callable, args []int32) (int32, error) {
	switch f := fn.(type) {
	case *Builtin:
		if len(args) != f.Arity {
			return 0, &ArityError{Name: f.Name, Want: f.Arity, Got: len(args)}
		}

		return f.Fn(e, args)
	case *FuncDef:
		return e.callDef(f, args)
	default:
		panic(fmt.Sprintf("tinyc: unexpected callable %T", fn))
	}
}

func (e *Evaluator) callDef(def *FuncDef, args []int32) (int32, error) {
	if len(args) != len(def.Params) {
		return 0, &ArityError{Name: def.Name, Want: len(def.Params), Got: len(args)}
	}

	if e.MaxCallDepth > 0 && e.depth >= e.MaxCallDepth {
		return 0, &RuntimeError{Func: def.Name, Err: fmt.Errorf("%w (%d)", ErrCallDepth, e.MaxCallDepth)}
	}

	e.depth++
	defer func() { e.depth-- }()

	if e.Trace != nil {
		e.Trace.Debugf("call %s%v depth=%d", def.Name, args, e.depth)
	}

	var params scope
	for i, name := range def.Params {
		params.bind(e.bindings, name, &Scalar{V: args[i]})
	}

	ret, err := e.execBlock(def.Body)
	params.release(e.bindings)
	e.returning = false

	if err != nil {
		var rerr *RuntimeError
		if errors.As(err, &rerr) {
			return 0, err
		}

		return 0, &RuntimeError{Func: def.Name, Err: err}
	}

	if e.Trace != nil {
		e.Trace.Debugf("return %s = %d", def.Name, ret)
	}

	return ret, nil
}

func (e *Evaluator) execBlock(b *Block) (int32, error) {
	return e.execStmts(b.Stmts)
}

// execStmts runs stmts in a fresh scope and stops at the first return. The
// scope's bindings are popped on every exit path.
func (e *Evaluator) execStmts(stmts []Stmt) (int32, error) {
	var sc scope
	defer sc.release(e.bindings)

	for _, stmt := range stmts {
		var ret int32
		var err error

		switch s := stmt.(type) {
		case *VarDef:
			err = sc.declare(e.bindings, s)
		case *IfStmt:
			ret, err = e.execIf(s)
		case *ForStmt:
			ret, err = e.execFor(s)
		case *WhileStmt:
			ret, err = e.execWhile(s)
		case *ReturnStmt:
			ret, err = e.execReturn(s)
		case *Block:
			ret, err = e.execBlock(s)
		case *ExprStmt:
			_, err = e.evalExpr(s.X)
		default:
			panic(fmt.Sprintf("tinyc: unexpected statement %T", stmt))
		}

		if err != nil {
			return 0, err
		}

		if e.returning {
			return ret, nil
		}
	}

	return 0, nil
}

// execBody runs the single statement governed by if, for or while. A lone
// declaration there is scoped to the statement itself.
func (e *Evaluator) execBody(s Stmt) (int32, error) {
	if b, ok := s.(*Block); ok {
		return e.execBlock(b)
	}

	return e.execStmts([]Stmt{s})
}

func (e *Evaluator) execIf(s *IfStmt) (int32, error) {
	cond, err := e.evalExpr(s.Cond)
	if err != nil {
		return 0, err
	}

	if cond != 0 {
		return e.execBody(s.Then)
	}

	if s.Else != nil {
		return e.execBody(s.Else)
	}

	return 0, nil
}

func (e *Evaluator) execFor(s *ForStmt) (int32, error) {
	var sc scope
	defer sc.release(e.bindings)

	switch init := s.Init.(type) {
	case nil:
	case *VarDef:
		if err := sc.declare(e.bindings, init); err != nil {
			return 0, err
		}
	case *ExprStmt:
		if _, err := e.evalExpr(init.X); err != nil {
			return 0, err
		}
	}

	for {
		if s.Cond != nil {
			cond, err := e.evalExpr(s.Cond)
			if err != nil {
				return 0, err
			}

			if cond == 0 {
				return 0, nil
			}
		}

		ret, err := e.execBody(s.Body)
		if err != nil {
			return 0, err
		}

		if e.returning {
			return ret, nil
		}

		if s.Step != nil {
			if _, err := e.evalExpr(s.Step); err != nil {
				return 0, err
			}
		}
	}
}

func (e *Evaluator) execWhile(s *WhileStmt) (int32, error) {
	for {
		cond, err := e.evalExpr(s.Cond)
		if err != nil {
			return 0, err
		}

		if cond == 0 {
			return 0, nil
		}

		ret, err := e.execBody(s.Body)
		if err != nil {
			return 0, err
		}

		if e.returning {
			return ret, nil
		}
	}
}

func (e *Evaluator) execReturn(s *ReturnStmt) (int32, error) {
	ret, err := e.evalExpr(s.Value)
	if err != nil {
		return 0, err
	}

	if e.returning {
		panic("tinyc: return executed while another return is unwinding")
	}

	e.returning = true
	return ret, nil
}
