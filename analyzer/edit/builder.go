package edit

import (
	"context"
	"fmt"
	"sort"

	"github.com/viant/hotedit/analyzer/match"
	"github.com/viant/hotedit/inspector/graph"
)

// Script holds edits of a single document: insert, update, move and reorder edits in new-tree
// preorder followed by deletes in old-tree preorder
type Script struct {
	Path  string
	Edits []*Edit
}

// Len returns number of edits
func (s *Script) Len() int {
	return len(s.Edits)
}

// Build derives per-document edit scripts from a match. Every unmatched declaration appears in
// exactly one Insert or Delete and no declaration appears in two edits.
func Build(ctx context.Context, m *match.Match) ([]*Script, error) {
	b := &builder{
		match:   m,
		scripts: map[string]*Script{},
		seen:    map[*graph.Node]bool{},
	}
	for _, tree := range m.New() {
		if err := b.forward(ctx, tree); err != nil {
			return nil, err
		}
	}
	for _, tree := range m.Old() {
		if err := b.backward(ctx, tree); err != nil {
			return nil, err
		}
	}
	paths := make([]string, 0, len(b.scripts))
	for path := range b.scripts {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	result := make([]*Script, 0, len(paths))
	for _, path := range paths {
		result = append(result, b.scripts[path])
	}
	return result, nil
}

type builder struct {
	match   *match.Match
	scripts map[string]*Script
	seen    map[*graph.Node]bool
	deletes []*graph.Node // old nodes of split cross-document pairs
}

func (b *builder) script(path string) *Script {
	ret, ok := b.scripts[path]
	if !ok {
		ret = &Script{Path: path}
		b.scripts[path] = ret
	}
	return ret
}

func (b *builder) emit(e *Edit) error {
	for _, node := range []*graph.Node{e.Old, e.New} {
		if node == nil {
			continue
		}
		if b.seen[node] {
			return &match.InvariantError{Path: node.Path(), Reason: fmt.Sprintf("%v appears in two edits", node)}
		}
		b.seen[node] = true
	}
	script := b.script(e.Path())
	script.Edits = append(script.Edits, e)
	return nil
}

func (b *builder) forward(ctx context.Context, tree *graph.Tree) error {
	reordered := b.reordered(tree)
	for _, node := range tree.Nodes() {
		if node.Kind.IsBody() || node.Kind == graph.KindCompilationUnit {
			continue
		}
		if node.Kind.IsMember() || node.Kind.IsContainer() {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		parent := node.Parent()
		old := b.match.OldOf(node)
		if old == nil {
			if err := b.emit(&Edit{Kind: Insert, New: node, NewParent: parent, OldParent: b.match.OldOf(parent)}); err != nil {
				return err
			}
			continue
		}
		if splitsAcrossDocuments(old, node) {
			b.deletes = append(b.deletes, old)
			if err := b.emit(&Edit{Kind: Insert, New: node, NewParent: parent, OldParent: b.match.OldOf(parent)}); err != nil {
				return err
			}
			continue
		}
		changes := Diff(old, node)
		e := &Edit{Old: old, New: node, OldParent: old.Parent(), NewParent: parent, Changes: changes}
		switch {
		case b.match.IsRelocated(old, node):
			e.Kind = Move
			if err := b.checkCycle(old, node); err != nil {
				return err
			}
		case reordered[node]:
			e.Kind = Reorder
		case changes != 0:
			e.Kind = Update
		default:
			continue
		}
		if err := b.emit(e); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) backward(ctx context.Context, tree *graph.Tree) error {
	split := map[*graph.Node]bool{}
	for _, node := range b.deletes {
		split[node] = true
	}
	for _, node := range tree.Nodes() {
		if node.Kind.IsBody() || node.Kind == graph.KindCompilationUnit {
			continue
		}
		if node.Kind.IsMember() || node.Kind.IsContainer() {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if b.match.NewOf(node) != nil && !split[node] {
			continue
		}
		parent := node.Parent()
		if err := b.emit(&Edit{Kind: Delete, Old: node, OldParent: parent, NewParent: b.match.NewOf(parent)}); err != nil {
			return err
		}
	}
	return nil
}

// splitsAcrossDocuments reports a cross-document pair whose runtime identity traits differ; such a
// pair is reported as Delete plus Insert
func splitsAcrossDocuments(old, new *graph.Node) bool {
	if old.Path() == new.Path() {
		return false
	}
	return old.IsStatic() != new.IsStatic() ||
		old.Arity() != new.Arity() ||
		old.Signature.ExplicitInterface != new.Signature.ExplicitInterface
}

// checkCycle rejects a move of a node into its own old subtree
func (b *builder) checkCycle(old, new *graph.Node) error {
	parent := new.Parent()
	if parent == nil {
		return nil
	}
	oldParent := b.match.OldOf(parent)
	if oldParent != nil && (oldParent == old || old.IsAncestorOf(oldParent)) {
		return &match.InvariantError{Path: new.Path(), Reason: fmt.Sprintf("cyclic move of %v", new)}
	}
	return nil
}

// reordered returns matched declarations whose relative order among siblings kept under the same
// parent changed; the longest increasing run of old positions stays in place
func (b *builder) reordered(tree *graph.Tree) map[*graph.Node]bool {
	result := map[*graph.Node]bool{}
	for _, parent := range tree.Nodes() {
		oldParent := b.match.OldOf(parent)
		if oldParent == nil || parent.Kind.IsBody() {
			continue
		}
		var kept []*graph.Node
		var positions []int
		for _, child := range parent.Declarations() {
			old := b.match.OldOf(child)
			if old == nil || old.Parent() != oldParent {
				continue
			}
			kept = append(kept, child)
			positions = append(positions, old.Index())
		}
		stable := longestIncreasing(positions)
		for i, child := range kept {
			if !stable[i] {
				result[child] = true
			}
		}
	}
	return result
}

// longestIncreasing marks the members of a longest strictly increasing subsequence
func longestIncreasing(values []int) []bool {
	result := make([]bool, len(values))
	if len(values) == 0 {
		return result
	}
	tails := []int{}
	previous := make([]int, len(values))
	for i, value := range values {
		index := sort.Search(len(tails), func(k int) bool { return values[tails[k]] >= value })
		if index > 0 {
			previous[i] = tails[index-1]
		} else {
			previous[i] = -1
		}
		if index == len(tails) {
			tails = append(tails, i)
		} else {
			tails[index] = i
		}
	}
	for i := tails[len(tails)-1]; i >= 0; i = previous[i] {
		result[i] = true
	}
	return result
}
