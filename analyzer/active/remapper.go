package active

import (
	"context"
	"sort"

	"github.com/viant/hotedit/analyzer/match"
	"github.com/viant/hotedit/analyzer/rude"
	"github.com/viant/hotedit/inspector/graph"
)

// Remap computes new spans of active statements. Statements in deleted code or in
// rudely edited members become unrecoverable and produce rude diagnostics.
func Remap(ctx context.Context, m *match.Match, analyzed *rude.Result, statements []Statement) ([]Statement, []rude.Diagnostic, error) {
	bag := &rude.Bag{}
	result := make([]Statement, 0, len(statements))
	bodies := map[*graph.Node]*match.BodyMatch{}
	for _, statement := range statements {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		remapped, diagnostic := remap(m, analyzed, bodies, statement)
		if diagnostic != nil {
			bag.Add(*diagnostic)
		}
		result = append(result, remapped)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, bag.Finalize(), nil
}

func remap(m *match.Match, analyzed *rude.Result, bodies map[*graph.Node]*match.BodyMatch, statement Statement) (Statement, *rude.Diagnostic) {
	statement.NewPath, statement.NewSpan = statement.Path, statement.OldSpan
	oldTree := m.OldTree(statement.Path)
	if oldTree == nil {
		return statement, nil
	}
	member := oldTree.Innermost(statement.OldSpan, func(node *graph.Node) bool { return node.Kind.IsMember() })
	if member == nil {
		return statement, nil
	}
	newMember := m.NewOf(member)
	if newMember == nil {
		statement.Unrecoverable = true
		return statement, deleted(m, member, statement)
	}
	if analyzed != nil && (analyzed.IsRude(newMember) || analyzed.IsRude(member)) {
		statement.Unrecoverable = true
		d := rude.Diagnostic{Kind: rude.ActiveStatementInRudeMember, Path: newMember.Path(), Span: newMember.Span, Arguments: []string{newMember.Describe()}}
		return statement, &d
	}
	body, ok := bodies[newMember]
	if !ok {
		body = match.Bodies(member, newMember)
		bodies[newMember] = body
	}
	statement.NewPath = newMember.Path()
	old := innermostStatement(member, statement.OldSpan)
	if old == nil {
		statement.NewSpan = statement.OldSpan.Shift(anchor(member, newMember, statement.OldSpan))
		return statement, nil
	}
	updated := body.NewOf(old)
	if updated == nil {
		statement.Unrecoverable = true
		d := rude.Diagnostic{Kind: rude.DeleteActiveStatement, Path: newMember.Path(), Span: newMember.Span, Arguments: []string{newMember.Describe()}}
		return statement, &d
	}
	if old.Span == statement.OldSpan {
		statement.NewSpan = updated.Span
	} else {
		statement.NewSpan = statement.OldSpan.Shift(int64(updated.Span.Start) - int64(old.Span.Start))
	}
	if !statement.IsLeaf && old.Hashes().Subtree != updated.Hashes().Subtree {
		d := rude.Diagnostic{Kind: rude.UpdateActiveStatement, Path: updated.Path(), Span: updated.Span, Arguments: []string{newMember.Describe()}}
		return statement, &d
	}
	return statement, nil
}

// deleted reports an active statement whose member no longer exists at the surviving parent
func deleted(m *match.Match, member *graph.Node, statement Statement) *rude.Diagnostic {
	d := rude.Diagnostic{Kind: rude.DeleteActiveStatement, Path: statement.Path, Arguments: []string{member.Describe()}}
	for parent := member.Parent(); parent != nil; parent = parent.Parent() {
		if counterpart := m.NewOf(parent); counterpart != nil {
			d.Path, d.Span = counterpart.Path(), counterpart.Span
			break
		}
	}
	return &d
}

// innermostStatement returns the deepest statement or lambda of member containing span
func innermostStatement(member *graph.Node, span graph.Span) *graph.Node {
	var result *graph.Node
	nodes := member.BodyNodes()
	for len(nodes) > 0 {
		var next []*graph.Node
		for _, node := range nodes {
			if node.Span.Contains(span) {
				result = node
				next = node.BodyNodes()
				break
			}
		}
		nodes = next
	}
	return result
}

// anchor returns the offset delta of the body, initializer or declaration enclosing span
func anchor(old, new *graph.Node, span graph.Span) int64 {
	switch {
	case !old.BodySpan.IsEmpty() && old.BodySpan.Contains(span):
		return int64(new.BodySpan.Start) - int64(old.BodySpan.Start)
	case !old.InitializerSpan.IsEmpty() && old.InitializerSpan.Contains(span):
		return int64(new.InitializerSpan.Start) - int64(old.InitializerSpan.Start)
	}
	return int64(new.Span.Start) - int64(old.Span.Start)
}
