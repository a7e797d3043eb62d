// Package rude decides which declaration edits the runtime cannot apply.
package rude

import (
	"context"

	"github.com/viant/hotedit/analyzer/capability"
	"github.com/viant/hotedit/analyzer/edit"
	"github.com/viant/hotedit/analyzer/match"
	"github.com/viant/hotedit/inspector/graph"
)

// Result holds rude diagnostics of a document and the edits that remain applicable
type Result struct {
	Diagnostics []Diagnostic
	Edits       []*edit.Edit
	rude        map[*graph.Node]bool
}

// IsRude reports whether the node or any enclosing declaration was edited rudely
func (r *Result) IsRude(node *graph.Node) bool {
	for ; node != nil; node = node.Parent() {
		if r.rude[node] {
			return true
		}
	}
	return false
}

// HasDiagnostics reports whether any rude edit was found
func (r *Result) HasDiagnostics() bool {
	return len(r.Diagnostics) > 0
}

type checker struct {
	caps  capability.Set
	match *match.Match
}

// Analyze applies the rule table to every edit of a script
func Analyze(ctx context.Context, m *match.Match, script *edit.Script, caps capability.Set) (*Result, error) {
	c := &checker{caps: caps, match: m}
	result := &Result{rude: map[*graph.Node]bool{}}
	bag := &Bag{}
	for _, e := range script.Edits {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, apply := range table[ruleKey{decl: e.DeclKind(), edit: e.Kind}] {
			diagnostic, ok := apply(c, e)
			if !ok {
				continue
			}
			bag.Add(diagnostic)
			result.mark(m, e)
		}
	}
	for _, e := range script.Edits {
		if result.IsRude(e.Old) || result.IsRude(e.New) {
			continue
		}
		result.Edits = append(result.Edits, e)
	}
	result.Diagnostics = bag.Finalize()
	return result, nil
}

// Mark excludes the declaration owning the node, on both sides, from synthesis
func (r *Result) Mark(m *match.Match, node *graph.Node) {
	if node == nil {
		return
	}
	owner := owner(node)
	r.rude[owner] = true
	if counterpart := m.NewOf(owner); counterpart != nil {
		r.rude[counterpart] = true
	}
	if counterpart := m.OldOf(owner); counterpart != nil {
		r.rude[counterpart] = true
	}
}

func (r *Result) mark(m *match.Match, e *edit.Edit) {
	r.Mark(m, e.Old)
	r.Mark(m, e.New)
}

func owner(node *graph.Node) *graph.Node {
	if member := node.ContainingMember(); member != nil {
		return member
	}
	if node.Kind == graph.KindParameter || node.Kind == graph.KindTypeParameter {
		if parent := node.Parent(); parent != nil {
			return parent
		}
	}
	return node
}

// diagnostic locates a diagnostic in the new document; deletes point at the surviving parent
func (c *checker) diagnostic(kind Kind, e *edit.Edit, extra ...string) Diagnostic {
	node := e.Node()
	args := append([]string{node.Describe()}, extra...)
	if e.Kind == edit.Delete && e.NewParent != nil {
		return Diagnostic{Kind: kind, Path: e.NewParent.Path(), Span: e.NewParent.Span, Arguments: args}
	}
	return Diagnostic{Kind: kind, Path: node.Path(), Span: node.Span, Arguments: args}
}

// topmostInsert reports whether no enclosing type or member of node is itself new
func (c *checker) topmostInsert(node *graph.Node) bool {
	for parent := node.Parent(); parent != nil && !isScope(parent); parent = parent.Parent() {
		if isNew(c.match, parent) {
			return false
		}
	}
	return true
}

// topmostDelete reports whether no enclosing type or member of node was deleted as well
func (c *checker) topmostDelete(node *graph.Node) bool {
	for parent := node.Parent(); parent != nil && !isScope(parent); parent = parent.Parent() {
		if isGone(c.match, parent) {
			return false
		}
	}
	return true
}

func isScope(node *graph.Node) bool {
	return node.Kind == graph.KindNamespace || node.Kind == graph.KindCompilationUnit
}
