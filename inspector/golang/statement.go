package golang

import (
	"go/ast"
	"go/token"

	"github.com/viant/hotedit/inspector/graph"
)

func (b *fileBuilder) statements(parent graph.NodeID, list []ast.Stmt) {
	for _, stmt := range list {
		b.statement(parent, stmt)
	}
}

// statement adds a body statement; blocks of compound statements become nested statements
func (b *fileBuilder) statement(parent graph.NodeID, stmt ast.Stmt) {
	if _, ok := stmt.(*ast.EmptyStmt); ok {
		return
	}
	node := graph.Node{Kind: graph.KindStatement, Name: localName(stmt)}
	node.Span, node.Text = b.span(stmt.Pos(), stmt.End())
	id := b.builder.Add(parent, node)
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		b.statements(id, s.List)
	case *ast.IfStmt:
		b.header(id, s.Init, s.Cond)
		b.statements(id, s.Body.List)
		if s.Else != nil {
			b.statement(id, s.Else)
		}
	case *ast.ForStmt:
		b.header(id, s.Init, s.Cond, s.Post)
		b.statements(id, s.Body.List)
	case *ast.RangeStmt:
		b.header(id, s.X)
		b.statements(id, s.Body.List)
	case *ast.SwitchStmt:
		b.header(id, s.Init, s.Tag)
		b.statements(id, s.Body.List)
	case *ast.TypeSwitchStmt:
		b.header(id, s.Init, s.Assign)
		b.statements(id, s.Body.List)
	case *ast.SelectStmt:
		b.statements(id, s.Body.List)
	case *ast.CaseClause:
		b.statements(id, s.Body)
	case *ast.CommClause:
		b.statements(id, s.Body)
	case *ast.LabeledStmt:
		b.statement(id, s.Stmt)
	default:
		b.lambdas(id, stmt)
	}
}

// header adds lambdas declared in the non block parts of a compound statement
func (b *fileBuilder) header(parent graph.NodeID, nodes ...ast.Node) {
	for _, node := range nodes {
		if node == nil {
			continue
		}
		b.lambdas(parent, node)
	}
}

// lambdas adds function literals found in node; their bodies are nested
func (b *fileBuilder) lambdas(parent graph.NodeID, node ast.Node) {
	ast.Inspect(node, func(n ast.Node) bool {
		lit, ok := n.(*ast.FuncLit)
		if !ok {
			return true
		}
		lambda := graph.Node{Kind: graph.KindLambda}
		lambda.Span, lambda.Text = b.span(lit.Pos(), lit.End())
		lambda.BodySpan, lambda.Body = b.span(lit.Body.Pos(), lit.Body.End())
		id := b.builder.Add(parent, lambda)
		b.statements(id, lit.Body.List)
		return false
	})
}

// localName returns the first variable a statement declares
func localName(stmt ast.Stmt) string {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		if s.Tok != token.DEFINE {
			return ""
		}
		for _, lhs := range s.Lhs {
			if ident, ok := lhs.(*ast.Ident); ok && ident.Name != "_" {
				return ident.Name
			}
		}
	case *ast.DeclStmt:
		if decl, ok := s.Decl.(*ast.GenDecl); ok && len(decl.Specs) > 0 {
			if spec, ok := decl.Specs[0].(*ast.ValueSpec); ok && len(spec.Names) > 0 {
				return spec.Names[0].Name
			}
		}
	}
	return ""
}
