package tinyc

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DumpYAML writes the syntax tree as YAML, one mapping per node keyed by kind.
func DumpYAML(w io.Writer, prog *Program) error {
	root := seq()
	for _, decl := range prog.Decls {
		root.Content = append(root.Content, dumpDecl(decl))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return err
	}

	return enc.Close()
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func intScalar(v int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)}
}

func seq(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Content: items}
}

// node builds {kind: {k1: v1, ...}}. Nil values are dropped.
func node(kind string, pairs ...interface{}) *yaml.Node {
	body := &yaml.Node{Kind: yaml.MappingNode}
	for i := 0; i+1 < len(pairs); i += 2 {
		v, _ := pairs[i+1].(*yaml.Node)
		if v == nil {
			continue
		}

		body.Content = append(body.Content, scalar(pairs[i].(string)), v)
	}

	if len(body.Content) == 0 {
		return scalar(kind)
	}

	return &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{scalar(kind), body}}
}

func dumpDecl(d Decl) *yaml.Node {
	switch n := d.(type) {
	case *FuncDef:
		params := seq()
		for _, p := range n.Params {
			params.Content = append(params.Content, scalar(p))
		}

		return node("funcdef", "name", scalar(n.Name), "params", params, "body", dumpStmt(n.Body))
	case *VarDef:
		return dumpStmt(n)
	default:
		panic(fmt.Sprintf("tinyc: unexpected declaration %T", d))
	}
}

func dumpStmt(s Stmt) *yaml.Node {
	switch n := s.(type) {
	case nil:
		return nil
	case *VarDef:
		vars := seq()
		for _, v := range n.Vars {
			if !v.IsArray() {
				vars.Content = append(vars.Content, scalar(v.Name))
				continue
			}

			dims := seq()
			for _, d := range v.Dims {
				dims.Content = append(dims.Content, intScalar(d))
			}

			vars.Content = append(vars.Content, node("array", "name", scalar(v.Name), "dims", dims))
		}

		return node("vardef", "vars", vars)
	case *Block:
		stmts := seq()
		for _, st := range n.Stmts {
			stmts.Content = append(stmts.Content, dumpStmt(st))
		}

		return node("block", "stmts", stmts)
	case *IfStmt:
		return node("if", "cond", dumpExpr(n.Cond), "then", dumpStmt(n.Then), "else", dumpStmt(n.Else))
	case *ForStmt:
		return node("for", "init", dumpStmt(n.Init), "cond", dumpExpr(n.Cond), "step", dumpExpr(n.Step), "body", dumpStmt(n.Body))
	case *WhileStmt:
		return node("while", "cond", dumpExpr(n.Cond), "body", dumpStmt(n.Body))
	case *ReturnStmt:
		return node("return", "value", dumpExpr(n.Value))
	case *ExprStmt:
		return node("expr", "x", dumpExpr(n.X))
	default:
		panic(fmt.Sprintf("tinyc: unexpected statement %T", s))
	}
}

func dumpExprs(xs []Expr) *yaml.Node {
	items := seq()
	for _, x := range xs {
		items.Content = append(items.Content, dumpExpr(x))
	}

	return items
}

func dumpOps[T ~string](ops []T) *yaml.Node {
	items := seq()
	for _, op := range ops {
		items.Content = append(items.Content, scalar(string(op)))
	}

	return items
}

func dumpExpr(x Expr) *yaml.Node {
	switch n := x.(type) {
	case nil:
		return nil
	case *StreamExpr:
		return node("stream", "ops", dumpOps(n.Ops), "operands", dumpExprs(n.Operands))
	case *AssignExpr:
		return node("assign", "operands", dumpExprs(n.Operands))
	case *BinaryExpr:
		return node("binary", "level", intScalar(n.Level), "ops", dumpOps(n.Ops), "operands", dumpExprs(n.Operands))
	case *UnaryExpr:
		return node("unary", "ops", dumpOps(n.Ops), "operand", dumpExpr(n.Operand))
	case *ParenExpr:
		return node("paren", "x", dumpExpr(n.X))
	case *LiteralExpr:
		return node("literal", "value", intScalar(int(n.Value)))
	case *Identifier:
		return node("var", "name", scalar(n.Name))
	case *IndexExpr:
		return node("index", "name", scalar(n.Name), "indices", dumpExprs(n.Indices))
	case *FuncCall:
		return node("call", "name", scalar(n.Name), "args", dumpExprs(n.Args))
	case *CinExpr:
		return scalar("cin")
	case *CoutExpr:
		return scalar("cout")
	case *EndlExpr:
		return scalar("endl")
	default:
		panic(fmt.Sprintf("tinyc: unexpected expression %T", x))
	}
}
