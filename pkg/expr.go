package tinyc

import (
	"fmt"
	"strconv"
)

type operandKind uint8

const (
	operandValue operandKind = iota
	operandCell
	operandCin
	operandCout
	operandEndl
)

// operand is the result of evaluating one expression level: a plain value,
// an assignable storage cell, or one of the stream intrinsics.
type operand struct {
	kind  operandKind
	value int32
	cell  *int32
}

func valueOperand(v int32) operand {
	return operand{kind: operandValue, value: v}
}

func (o operand) get() (int32, error) {
	switch o.kind {
	case operandValue:
		return o.value, nil
	case operandCell:
		return *o.cell, nil
	default:
		return 0, ErrNotAValue
	}
}

func (o operand) target() (*int32, error) {
	if o.kind != operandCell {
		return nil, ErrNotAssignable
	}

	return o.cell, nil
}

// evalExpr evaluates a full expression to an integer. A bare cin or cout
// evaluates to 0.
func (e *Evaluator) evalExpr(x Expr) (int32, error) {
	if s, ok := x.(*StreamExpr); ok {
		return e.evalStream(s)
	}

	o, err := e.eval(x)
	if err != nil {
		return 0, err
	}

	if o.kind == operandCin || o.kind == operandCout {
		return 0, nil
	}

	return o.get()
}

func (e *Evaluator) evalStream(x *StreamExpr) (int32, error) {
	lhs, err := e.eval(x.Operands[0])
	if err != nil {
		return 0, err
	}

	switch lhs.kind {
	case operandCin:
		return 0, e.streamIn(x.Operands[1:])
	case operandCout:
		return 0, e.streamOut(x.Operands[1:])
	}

	v, err := lhs.get()
	if err != nil {
		return 0, err
	}

	for i, op := range x.Ops {
		rhs, err := e.evalValue(x.Operands[i+1])
		if err != nil {
			return 0, err
		}

		if v, err = shift(op, v, rhs); err != nil {
			return 0, err
		}
	}

	return v, nil
}

func (e *Evaluator) streamIn(targets []Expr) error {
	for _, x := range targets {
		o, err := e.eval(x)
		if err != nil {
			return err
		}

		cell, err := o.target()
		if err != nil {
			return err
		}

		if *cell, err = e.feed.Next(); err != nil {
			return err
		}
	}

	return nil
}

func (e *Evaluator) streamOut(items []Expr) error {
	for _, x := range items {
		o, err := e.eval(x)
		if err != nil {
			return err
		}

		var text string
		if o.kind == operandEndl {
			text = "\n"
		} else {
			v, err := o.get()
			if err != nil {
				return err
			}

			text = strconv.FormatInt(int64(v), 10)
		}

		if _, err := e.out.Write([]byte(text)); err != nil {
			return err
		}
	}

	return nil
}

func (e *Evaluator) evalValue(x Expr) (int32, error) {
	o, err := e.eval(x)
	if err != nil {
		return 0, err
	}

	return o.get()
}

func (e *Evaluator) eval(x Expr) (operand, error) {
	switch n := x.(type) {
	case *StreamExpr:
		v, err := e.evalStream(n)
		return valueOperand(v), err
	case *AssignExpr:
		return e.evalAssign(n)
	case *BinaryExpr:
		v, err := e.evalBinary(n)
		return valueOperand(v), err
	case *UnaryExpr:
		v, err := e.evalUnary(n)
		return valueOperand(v), err
	case *ParenExpr:
		v, err := e.evalExpr(n.X)
		return valueOperand(v), err
	case *LiteralExpr:
		return valueOperand(n.Value), nil
	case *Identifier:
		return e.evalIdentifier(n)
	case *IndexExpr:
		return e.evalIndex(n)
	case *FuncCall:
		v, err := e.evalCall(n)
		return valueOperand(v), err
	case *CinExpr:
		return operand{kind: operandCin}, nil
	case *CoutExpr:
		return operand{kind: operandCout}, nil
	case *EndlExpr:
		return operand{kind: operandEndl}, nil
	default:
		panic(fmt.Sprintf("tinyc: unexpected expression %T", x))
	}
}

// evalAssign evaluates every operand left to right, then stores the value of
// the last one into each of the others. The first target is the result.
func (e *Evaluator) evalAssign(x *AssignExpr) (operand, error) {
	ops := make([]operand, len(x.Operands))
	for i, operandExpr := range x.Operands {
		o, err := e.eval(operandExpr)
		if err != nil {
			return operand{}, err
		}

		ops[i] = o
	}

	v, err := ops[len(ops)-1].get()
	if err != nil {
		return operand{}, err
	}

	for _, o := range ops[:len(ops)-1] {
		cell, err := o.target()
		if err != nil {
			return operand{}, err
		}

		*cell = v
	}

	return ops[0], nil
}

func (e *Evaluator) evalBinary(x *BinaryExpr) (int32, error) {
	v, err := e.evalValue(x.Operands[0])
	if err != nil {
		return 0, err
	}

	// Both sides are always evaluated; && and || do not short-circuit.
	for i, op := range x.Ops {
		rhs, err := e.evalValue(x.Operands[i+1])
		if err != nil {
			return 0, err
		}

		if v, err = binary(op, v, rhs); err != nil {
			return 0, err
		}
	}

	return v, nil
}

func (e *Evaluator) evalUnary(x *UnaryExpr) (int32, error) {
	v, err := e.evalValue(x.Operand)
	if err != nil {
		return 0, err
	}

	for i := len(x.Ops) - 1; i >= 0; i-- {
		switch x.Ops[i] {
		case UnaryNegative:
			v = -v
		case UnaryNot:
			v = boolInt(v == 0)
		}
	}

	return v, nil
}

func (e *Evaluator) evalIdentifier(x *Identifier) (operand, error) {
	val, ok := e.bindings.Get(x.Name)
	if !ok {
		return operand{}, fmt.Errorf("%s: %w: %s", x.Loc, ErrUndefinedVariable, x.Name)
	}

	s, ok := val.(*Scalar)
	if !ok {
		return operand{}, fmt.Errorf("%s: %w: %s used without indices", x.Loc, ErrDimensionMismatch, x.Name)
	}

	return operand{kind: operandCell, cell: &s.V}, nil
}

func (e *Evaluator) evalIndex(x *IndexExpr) (operand, error) {
	index := make([]int32, len(x.Indices))
	for i, ix := range x.Indices {
		v, err := e.evalExpr(ix)
		if err != nil {
			return operand{}, err
		}

		index[i] = v
	}

	val, ok := e.bindings.Get(x.Name)
	if !ok {
		return operand{}, fmt.Errorf("%s: %w: %s", x.Loc, ErrUndefinedVariable, x.Name)
	}

	arr, ok := val.(*Array)
	if !ok {
		return operand{}, fmt.Errorf("%s: %w: %s is not an array", x.Loc, ErrDimensionMismatch, x.Name)
	}

	cell, err := arr.Element(index)
	if err != nil {
		return operand{}, fmt.Errorf("%s: %s: %w", x.Loc, x.Name, err)
	}

	return operand{kind: operandCell, cell: cell}, nil
}

func (e *Evaluator) evalCall(x *FuncCall) (int32, error) {
	args := make([]int32, len(x.Args))
	for i, arg := range x.Args {
		v, err := e.evalExpr(arg)
		if err != nil {
			return 0, err
		}

		args[i] = v
	}

	fn, ok := e.prog.Functions[x.Name]
	if !ok {
		return 0, fmt.Errorf("%s: %w: %s", x.Loc, ErrUndefinedFunction, x.Name)
	}

	return e.callFunction(fn, args)
}

func binary(op BinaryOp, a, b int32) (int32, error) {
	switch op {
	case BinaryMultiplication:
		return a * b, nil
	case BinaryDivision:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	case BinaryModulo:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a % b, nil
	case BinaryAddition:
		return a + b, nil
	case BinarySubtraction:
		return a - b, nil
	case BinaryLess:
		return boolInt(a < b), nil
	case BinaryLessEqual:
		return boolInt(a <= b), nil
	case BinaryGreater:
		return boolInt(a > b), nil
	case BinaryGreaterEqual:
		return boolInt(a >= b), nil
	case BinaryEqual:
		return boolInt(a == b), nil
	case BinaryNotEqual:
		return boolInt(a != b), nil
	case BinaryXor:
		return a ^ b, nil
	case BinaryAnd:
		return boolInt(a != 0 && b != 0), nil
	case BinaryOr:
		return boolInt(a != 0 || b != 0), nil
	default:
		panic("tinyc: unexpected binary operator " + string(op))
	}
}

func shift(op StreamOp, a, b int32) (int32, error) {
	if b < 0 {
		return 0, ErrNegativeShift
	}

	if op == StreamLeft {
		return a << uint(b), nil
	}

	return a >> uint(b), nil
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}

	return 0
}
