package tinyc

// FunctionTable maps a function name to its definition or to a built-in.
type FunctionTable map[string]Callable

// Callable is a *FuncDef or a *Builtin.
type Callable interface {
	callable()
}

type builtinFunc = func(e *Evaluator, args []int32) (int32, error)

type Builtin struct {
	Name  string
	Arity int
	Fn    builtinFunc
}

func (*FuncDef) callable() {}
func (*Builtin) callable() {}

func defineBuiltins(t FunctionTable) {
	defineBuiltinFunc(t, "putchar", 1, builtinPutchar)
}

func defineBuiltinFunc(t FunctionTable, name string, arity int, fn builtinFunc) {
	t[name] = &Builtin{
		Name:  name,
		Arity: arity,
		Fn:    fn,
	}
}

func builtinPutchar(e *Evaluator, args []int32) (int32, error) {
	if _, err := e.out.Write([]byte{byte(args[0])}); err != nil {
		return 0, err
	}

	return 0, nil
}
