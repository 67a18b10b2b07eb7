package tinyc

import (
	"fmt"
	"strconv"
)

var header = []string{
	"#", "include", "<", "iostream", ">",
	"#", "include", "<", "cstdio", ">",
	"using", "namespace", "std", ";",
}

// Operators of the left-associative binary levels, indexed by level.
var binaryLevels = [...][]BinaryOp{
	2: {BinaryMultiplication, BinaryDivision, BinaryModulo},
	3: {BinaryAddition, BinarySubtraction},
	4: {BinaryLess, BinaryLessEqual, BinaryGreater, BinaryGreaterEqual},
	5: {BinaryEqual, BinaryNotEqual},
	6: {BinaryXor},
	7: {BinaryAnd},
	8: {BinaryOr},
}

// MaxNesting bounds how deeply statements and expressions may nest, which in
// turn bounds the recursion of both the parser and the evaluator.
const MaxNesting = 1000

type Parser struct {
	tokenizer Tokenizer
	functions FunctionTable
	nesting   int
}

func NewParser(tokenizer Tokenizer) *Parser {
	return &Parser{
		tokenizer: tokenizer,
		functions: make(FunctionTable),
	}
}

// Run parses a whole program. No partial tree is returned on failure, and a
// read error fails the parse even when the text read so far was complete.
func (p *Parser) Run() (*Program, error) {
	prog, err := p.program()
	if ioErr := p.tokenizer.Err(); ioErr != nil {
		return nil, fmt.Errorf("reading source: %w", ioErr)
	}

	if err != nil {
		return nil, err
	}

	return prog, nil
}

func (p *Parser) peek() Token {
	return p.tokenizer.Peek()
}

func (p *Parser) next() Token {
	return p.tokenizer.Next()
}

func (p *Parser) check(lexeme string) bool {
	return p.peek().Value == lexeme
}

func (p *Parser) match(expected string) error {
	if tok := p.next(); tok.Value != expected {
		return p.errorf(tok, "%q", expected)
	}

	return nil
}

func (p *Parser) enter() error {
	p.nesting++
	if p.nesting > MaxNesting {
		return p.errorf(p.peek(), "at most %d levels of nesting", MaxNesting)
	}

	return nil
}

func (p *Parser) leave() {
	p.nesting--
}

func (p *Parser) errorf(found Token, format string, args ...interface{}) error {
	return &ParseError{
		Loc:      found.Loc,
		Expected: fmt.Sprintf(format, args...),
		Found:    found,
	}
}

func (p *Parser) program() (*Program, error) {
	for _, lexeme := range header {
		if err := p.match(lexeme); err != nil {
			return nil, err
		}
	}

	prog := &Program{Functions: p.functions}
	for !p.peek().IsEOF() {
		if err := p.match("int"); err != nil {
			return nil, err
		}

		name, err := p.name()
		if err != nil {
			return nil, err
		}

		if p.check("(") {
			def, err := p.funcDef(name)
			if err != nil {
				return nil, err
			}

			prog.Decls = append(prog.Decls, def)
			continue
		}

		def, err := p.varDef(name.Value)
		if err != nil {
			return nil, err
		}

		if err := p.match(";"); err != nil {
			return nil, err
		}

		prog.Decls = append(prog.Decls, def)
	}

	// putchar is bound last and so wins over a user definition of the same name.
	defineBuiltins(p.functions)

	return prog, nil
}

func (p *Parser) name() (Token, error) {
	tok := p.next()
	if tok.Class != ClassAlpha {
		return tok, p.errorf(tok, "identifier")
	}

	return tok, nil
}

func (p *Parser) intLiteral() (int32, error) {
	tok := p.next()
	if tok.Class != ClassDigit {
		return 0, p.errorf(tok, "integer literal")
	}

	v, err := strconv.ParseInt(tok.Value, 10, 32)
	if err != nil {
		return 0, p.errorf(tok, "integer literal within 32 bits")
	}

	return int32(v), nil
}

func (p *Parser) funcDef(name Token) (*FuncDef, error) {
	def := &FuncDef{
		Name: name.Value,
		Loc:  name.Loc,
	}
	p.functions[def.Name] = def

	if err := p.match("("); err != nil {
		return nil, err
	}

	for first := true; !p.check(")"); first = false {
		if !first {
			if err := p.match(","); err != nil {
				return nil, err
			}
		}

		if err := p.match("int"); err != nil {
			return nil, err
		}

		param, err := p.name()
		if err != nil {
			return nil, err
		}

		def.Params = append(def.Params, param.Value)
	}

	p.next() // Skip the closing parenthesis

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	def.Body = body
	return def, nil
}

// varDef parses the declarator list after "int" and the first name, stopping
// in front of the terminating semicolon.
func (p *Parser) varDef(first string) (*VarDef, error) {
	def := &VarDef{Vars: []*VarDecl{{Name: first}}}

	for !p.check(";") {
		if p.check("[") {
			last := def.Vars[len(def.Vars)-1]
			for p.check("[") {
				p.next()

				dim, err := p.intLiteral()
				if err != nil {
					return nil, err
				}

				if err := p.match("]"); err != nil {
					return nil, err
				}

				last.Dims = append(last.Dims, int(dim))
			}

			continue
		}

		if err := p.match(","); err != nil {
			return nil, err
		}

		name, err := p.name()
		if err != nil {
			return nil, err
		}

		def.Vars = append(def.Vars, &VarDecl{Name: name.Value})
	}

	return def, nil
}

func (p *Parser) block() (*Block, error) {
	if err := p.match("{"); err != nil {
		return nil, err
	}

	b := &Block{}
	for !p.check("}") {
		if tok := p.peek(); tok.IsEOF() {
			return nil, p.errorf(tok, "%q", "}")
		}

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}

		b.Stmts = append(b.Stmts, stmt)
	}

	p.next() // Skip the closing brace

	return b, nil
}

func (p *Parser) statement() (Stmt, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch p.peek().Value {
	case "int":
		p.next()

		name, err := p.name()
		if err != nil {
			return nil, err
		}

		def, err := p.varDef(name.Value)
		if err != nil {
			return nil, err
		}

		return def, p.match(";")
	case "if":
		p.next()
		return p.ifStmt()
	case "for":
		p.next()
		return p.forStmt()
	case "while":
		p.next()
		return p.whileStmt()
	case "return":
		p.next()

		x, err := p.expr()
		if err != nil {
			return nil, err
		}

		return &ReturnStmt{Value: x}, p.match(";")
	case "{":
		return p.block()
	default:
		x, err := p.expr()
		if err != nil {
			return nil, err
		}

		return &ExprStmt{X: x}, p.match(";")
	}
}

func (p *Parser) condition() (Expr, error) {
	if err := p.match("("); err != nil {
		return nil, err
	}

	cond, err := p.expr()
	if err != nil {
		return nil, err
	}

	return cond, p.match(")")
}

func (p *Parser) ifStmt() (Stmt, error) {
	cond, err := p.condition()
	if err != nil {
		return nil, err
	}

	then, err := p.statement()
	if err != nil {
		return nil, err
	}

	stmt := &IfStmt{Cond: cond, Then: then}
	if p.check("else") {
		p.next()

		if stmt.Else, err = p.statement(); err != nil {
			return nil, err
		}
	}

	return stmt, nil
}

func (p *Parser) forStmt() (Stmt, error) {
	if err := p.match("("); err != nil {
		return nil, err
	}

	stmt := &ForStmt{}
	switch {
	case p.check(";"):
	case p.check("int"):
		p.next()

		name, err := p.name()
		if err != nil {
			return nil, err
		}

		if stmt.Init, err = p.varDef(name.Value); err != nil {
			return nil, err
		}
	default:
		x, err := p.expr()
		if err != nil {
			return nil, err
		}

		stmt.Init = &ExprStmt{X: x}
	}

	if err := p.match(";"); err != nil {
		return nil, err
	}

	var err error
	if !p.check(";") {
		if stmt.Cond, err = p.expr(); err != nil {
			return nil, err
		}
	}

	if err := p.match(";"); err != nil {
		return nil, err
	}

	if !p.check(")") {
		if stmt.Step, err = p.expr(); err != nil {
			return nil, err
		}
	}

	if err := p.match(")"); err != nil {
		return nil, err
	}

	if stmt.Body, err = p.statement(); err != nil {
		return nil, err
	}

	return stmt, nil
}

func (p *Parser) whileStmt() (Stmt, error) {
	cond, err := p.condition()
	if err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	return &WhileStmt{Cond: cond, Body: body}, nil
}

func (p *Parser) expr() (Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	lhs, err := p.assignExpr()
	if err != nil {
		return nil, err
	}

	x := &StreamExpr{Operands: []Expr{lhs}}
	for p.check(string(StreamLeft)) || p.check(string(StreamRight)) {
		op := StreamOp(p.next().Value)

		rhs, err := p.assignExpr()
		if err != nil {
			return nil, err
		}

		x.Ops = append(x.Ops, op)
		x.Operands = append(x.Operands, rhs)
	}

	if len(x.Ops) == 0 {
		return lhs, nil
	}

	return x, nil
}

func (p *Parser) assignExpr() (Expr, error) {
	lhs, err := p.binaryExpr(8)
	if err != nil {
		return nil, err
	}

	x := &AssignExpr{Operands: []Expr{lhs}}
	for p.check("=") {
		p.next()

		rhs, err := p.binaryExpr(8)
		if err != nil {
			return nil, err
		}

		x.Operands = append(x.Operands, rhs)
	}

	if len(x.Operands) == 1 {
		return lhs, nil
	}

	return x, nil
}

func (p *Parser) binaryExpr(level int) (Expr, error) {
	operand := func() (Expr, error) {
		if level == 2 {
			return p.unaryExpr()
		}

		return p.binaryExpr(level - 1)
	}

	lhs, err := operand()
	if err != nil {
		return nil, err
	}

	x := &BinaryExpr{Level: level, Operands: []Expr{lhs}}
	for {
		op, ok := p.binaryOp(level)
		if !ok {
			break
		}

		p.next()

		rhs, err := operand()
		if err != nil {
			return nil, err
		}

		x.Ops = append(x.Ops, op)
		x.Operands = append(x.Operands, rhs)
	}

	if len(x.Ops) == 0 {
		return lhs, nil
	}

	return x, nil
}

func (p *Parser) binaryOp(level int) (BinaryOp, bool) {
	lexeme := p.peek().Value
	for _, op := range binaryLevels[level] {
		if string(op) == lexeme {
			return op, true
		}
	}

	return "", false
}

func (p *Parser) unaryExpr() (Expr, error) {
	var ops []UnaryOp
	for {
		switch op := UnaryOp(p.peek().Value); op {
		case UnaryPlus, UnaryNegative, UnaryNot:
			p.next()
			ops = append(ops, op)
			continue
		}

		break
	}

	operand, err := p.primary()
	if err != nil {
		return nil, err
	}

	if len(ops) == 0 {
		return operand, nil
	}

	return &UnaryExpr{Ops: ops, Operand: operand}, nil
}

func (p *Parser) primary() (Expr, error) {
	switch tok := p.peek(); {
	case tok.Value == "cin":
		p.next()
		return &CinExpr{}, nil
	case tok.Value == "cout":
		p.next()
		return &CoutExpr{}, nil
	case tok.Value == "endl":
		p.next()
		return &EndlExpr{}, nil
	case tok.Value == "(":
		p.next()

		x, err := p.expr()
		if err != nil {
			return nil, err
		}

		return &ParenExpr{X: x}, p.match(")")
	case tok.Class == ClassDigit:
		v, err := p.intLiteral()
		if err != nil {
			return nil, err
		}

		return &LiteralExpr{Value: v}, nil
	case tok.Class == ClassAlpha && !tok.IsEOF():
		p.next()

		if p.check("(") {
			return p.funcCall(tok)
		}

		return p.reference(tok)
	default:
		p.next() // Skip errored token
		return nil, p.errorf(tok, "expression")
	}
}

func (p *Parser) funcCall(name Token) (Expr, error) {
	p.next() // Skip the opening parenthesis

	call := &FuncCall{Name: name.Value, Loc: name.Loc}
	for first := true; !p.check(")"); first = false {
		if !first {
			if err := p.match(","); err != nil {
				return nil, err
			}
		}

		arg, err := p.expr()
		if err != nil {
			return nil, err
		}

		call.Args = append(call.Args, arg)
	}

	p.next() // Skip the closing parenthesis

	return call, nil
}

func (p *Parser) reference(name Token) (Expr, error) {
	if !p.check("[") {
		return &Identifier{Name: name.Value, Loc: name.Loc}, nil
	}

	x := &IndexExpr{Name: name.Value, Loc: name.Loc}
	for p.check("[") {
		p.next()

		index, err := p.expr()
		if err != nil {
			return nil, err
		}

		if err := p.match("]"); err != nil {
			return nil, err
		}

		x.Indices = append(x.Indices, index)
	}

	return x, nil
}
