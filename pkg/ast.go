package tinyc

// Program is the parsed translation unit. Decls keeps global variable and
// function definitions in source order.
type Program struct {
	Decls     []Decl
	Functions FunctionTable
}

type Decl interface {
	decl()
}

type Stmt interface {
	stmt()
}

type Expr interface {
	expr()
}

type FuncDef struct {
	Name   string
	Params []string
	Body   *Block
	Loc    *Location
}

// VarDecl is one declared name. A non-empty Dims makes it an array.
type VarDecl struct {
	Name string
	Dims []int
}

func (v *VarDecl) IsArray() bool {
	return len(v.Dims) != 0
}

type VarDef struct {
	Vars []*VarDecl
}

type Block struct {
	Stmts []Stmt
}

// IfStmt has a nil Else when no else branch was written.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt
}

// ForStmt clauses are nil when omitted. Init is either a *VarDef or an *ExprStmt.
type ForStmt struct {
	Init Stmt
	Cond Expr
	Step Expr
	Body Stmt
}

type WhileStmt struct {
	Cond Expr
	Body Stmt
}

type ReturnStmt struct {
	Value Expr
}

type ExprStmt struct {
	X Expr
}

type StreamOp string

const (
	StreamLeft  StreamOp = "<<"
	StreamRight StreamOp = ">>"
)

// StreamExpr is the loosest binding level. Ops[i] sits between Operands[i]
// and Operands[i+1]; with cin or cout on the left the operators are stream
// insertions and extractions, otherwise shifts.
type StreamExpr struct {
	Operands []Expr
	Ops      []StreamOp
}

// AssignExpr is an assignment chain. Every operand but the last is a target
// and all targets receive the value of the last operand.
type AssignExpr struct {
	Operands []Expr
}

type BinaryOp string

const (
	BinaryMultiplication BinaryOp = "*"
	BinaryDivision       BinaryOp = "/"
	BinaryModulo         BinaryOp = "%"
	BinaryAddition       BinaryOp = "+"
	BinarySubtraction    BinaryOp = "-"
	BinaryLess           BinaryOp = "<"
	BinaryLessEqual      BinaryOp = "<="
	BinaryGreater        BinaryOp = ">"
	BinaryGreaterEqual   BinaryOp = ">="
	BinaryEqual          BinaryOp = "=="
	BinaryNotEqual       BinaryOp = "!="
	BinaryXor            BinaryOp = "^"
	BinaryAnd            BinaryOp = "&&"
	BinaryOr             BinaryOp = "||"
)

// BinaryExpr folds Operands left to right through Ops. Level is the
// precedence level it was parsed at, from 2 (multiplicative) to 8 (||).
type BinaryExpr struct {
	Level    int
	Operands []Expr
	Ops      []BinaryOp
}

type UnaryOp string

const (
	UnaryPlus     UnaryOp = "+"
	UnaryNegative UnaryOp = "-"
	UnaryNot      UnaryOp = "!"
)

// UnaryExpr applies Ops to Operand from the innermost (last) outwards.
type UnaryExpr struct {
	Ops     []UnaryOp
	Operand Expr
}

type ParenExpr struct {
	X Expr
}

type LiteralExpr struct {
	Value int32
}

type Identifier struct {
	Name string
	Loc  *Location
}

type IndexExpr struct {
	Name    string
	Indices []Expr
	Loc     *Location
}

type FuncCall struct {
	Name string
	Args []Expr
	Loc  *Location
}

type CinExpr struct{}
type CoutExpr struct{}
type EndlExpr struct{}

func (*FuncDef) decl() {}
func (*VarDef) decl()  {}

func (*VarDef) stmt()     {}
func (*Block) stmt()      {}
func (*IfStmt) stmt()     {}
func (*ForStmt) stmt()    {}
func (*WhileStmt) stmt()  {}
func (*ReturnStmt) stmt() {}
func (*ExprStmt) stmt()   {}

func (*StreamExpr) expr()  {}
func (*AssignExpr) expr()  {}
func (*BinaryExpr) expr()  {}
func (*UnaryExpr) expr()   {}
func (*ParenExpr) expr()   {}
func (*LiteralExpr) expr() {}
func (*Identifier) expr()  {}
func (*IndexExpr) expr()   {}
func (*FuncCall) expr()    {}
func (*CinExpr) expr()     {}
func (*CoutExpr) expr()    {}
func (*EndlExpr) expr()    {}
