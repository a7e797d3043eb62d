package java

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/hotedit/inspector/graph"
)

// nestedFields name the statement bodies of compound statements
var nestedFields = map[string][]string{
	"if_statement":                 {"consequence", "alternative"},
	"for_statement":                {"body"},
	"enhanced_for_statement":       {"body"},
	"while_statement":              {"body"},
	"do_statement":                 {"body"},
	"synchronized_statement":       {"body"},
	"try_statement":                {"body"},
	"try_with_resources_statement": {"body"},
}

// statements adds the statements of a block, constructor body or switch group
func (b *fileBuilder) statements(parent graph.NodeID, block *sitter.Node) {
	for j := 0; j < int(block.NamedChildCount()); j++ {
		child := block.NamedChild(j)
		switch child.Type() {
		case "line_comment", "block_comment", "comment", "switch_label":
			continue
		}
		b.statement(parent, child)
	}
}

func (b *fileBuilder) statement(parent graph.NodeID, stmt *sitter.Node) {
	node := graph.Node{Kind: graph.KindStatement}
	if stmt.Type() == "local_variable_declaration" {
		if declarator := stmt.ChildByFieldName("declarator"); declarator != nil {
			node.Name = b.content(declarator.ChildByFieldName("name"))
		}
	}
	node.Span, node.Text = b.span(stmt)
	id := b.builder.Add(parent, node)
	switch stmt.Type() {
	case "block", "constructor_body", "switch_block_statement_group":
		b.statements(id, stmt)
		return
	case "switch_expression", "switch_statement":
		if body := stmt.ChildByFieldName("body"); body != nil {
			b.statements(id, body)
		}
		return
	case "switch_rule":
		b.statements(id, stmt)
		return
	case "labeled_statement":
		for j := 0; j < int(stmt.NamedChildCount()); j++ {
			if child := stmt.NamedChild(j); child.Type() != "identifier" {
				b.statement(id, child)
			}
		}
		return
	}
	fields, ok := nestedFields[stmt.Type()]
	if !ok {
		b.lambdas(id, stmt)
		return
	}
	for _, field := range fields {
		if child := stmt.ChildByFieldName(field); child != nil {
			b.nested(id, child)
		}
	}
	for j := 0; j < int(stmt.NamedChildCount()); j++ {
		child := stmt.NamedChild(j)
		switch child.Type() {
		case "catch_clause", "finally_clause":
			for k := 0; k < int(child.NamedChildCount()); k++ {
				if block := child.NamedChild(k); block.Type() == "block" {
					b.nested(id, block)
				}
			}
		}
	}
}

// nested adds the statements of a block directly under parent, or the single statement itself
func (b *fileBuilder) nested(parent graph.NodeID, stmt *sitter.Node) {
	if stmt.Type() == "block" {
		b.statements(parent, stmt)
		return
	}
	b.statement(parent, stmt)
}

// lambdas adds lambda expressions found under node
func (b *fileBuilder) lambdas(parent graph.NodeID, node *sitter.Node) {
	for j := 0; j < int(node.NamedChildCount()); j++ {
		child := node.NamedChild(j)
		if child.Type() != "lambda_expression" {
			b.lambdas(parent, child)
			continue
		}
		lambda := graph.Node{Kind: graph.KindLambda}
		lambda.Span, lambda.Text = b.span(child)
		body := child.ChildByFieldName("body")
		if body != nil {
			lambda.BodySpan, lambda.Body = b.span(body)
		}
		id := b.builder.Add(parent, lambda)
		if body == nil {
			continue
		}
		if body.Type() == "block" {
			b.statements(id, body)
			continue
		}
		b.lambdas(id, body)
	}
}
