// Package match aligns declarations of an old and a new forest of declaration trees.
package match

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/viant/hotedit/inspector/graph"
)

// ErrInvariant reports a violated matching or edit invariant
var ErrInvariant = errors.New("invariant violated")

// InvariantError carries the document where an invariant failed
type InvariantError struct {
	Path   string
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrInvariant, e.Path, e.Reason)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}

// Entity groups the declarations of one logical container (namespace or partial type)
// across documents
type Entity struct {
	Key string
	Old []*graph.Node
	New []*graph.Node
}

// Match is a partial bijection between old and new declaration nodes
type Match struct {
	oldTrees []*graph.Tree
	newTrees []*graph.Tree
	oldToNew map[*graph.Node]*graph.Node
	newToOld map[*graph.Node]*graph.Node
	entities map[*graph.Node]*Entity
	err      error
}

// Old returns old trees ordered by path
func (m *Match) Old() []*graph.Tree {
	return m.oldTrees
}

// New returns new trees ordered by path
func (m *Match) New() []*graph.Tree {
	return m.newTrees
}

// OldTree returns the old tree for a path
func (m *Match) OldTree(path string) *graph.Tree {
	return lookupTree(m.oldTrees, path)
}

// NewTree returns the new tree for a path
func (m *Match) NewTree(path string) *graph.Tree {
	return lookupTree(m.newTrees, path)
}

func lookupTree(trees []*graph.Tree, path string) *graph.Tree {
	index := sort.Search(len(trees), func(i int) bool { return trees[i].Path >= path })
	if index < len(trees) && trees[index].Path == path {
		return trees[index]
	}
	return nil
}

// NewOf returns the new counterpart of an old node
func (m *Match) NewOf(old *graph.Node) *graph.Node {
	return m.oldToNew[old]
}

// OldOf returns the old counterpart of a new node
func (m *Match) OldOf(new *graph.Node) *graph.Node {
	return m.newToOld[new]
}

// Len returns number of matched pairs
func (m *Match) Len() int {
	return len(m.oldToNew)
}

// Entity returns the logical entity a namespace or partial type part belongs to
func (m *Match) Entity(node *graph.Node) *Entity {
	return m.entities[node]
}

// Parts returns all declarations of the logical entity of node on the node's side
func (m *Match) Parts(node *graph.Node) []*graph.Node {
	entity := m.entities[node]
	if entity == nil {
		return []*graph.Node{node}
	}
	for _, part := range entity.Old {
		if part == node {
			return entity.Old
		}
	}
	return entity.New
}

// Counterparts returns the declarations of the logical entity of node on the opposite side
func (m *Match) Counterparts(node *graph.Node) []*graph.Node {
	entity := m.entities[node]
	if entity == nil {
		if counterpart := m.oldToNew[node]; counterpart != nil {
			return []*graph.Node{counterpart}
		}
		if counterpart := m.newToOld[node]; counterpart != nil {
			return []*graph.Node{counterpart}
		}
		return nil
	}
	for _, part := range entity.Old {
		if part == node {
			return entity.New
		}
	}
	return entity.Old
}

// IsRelocated reports whether a matched pair changed logical parent
func (m *Match) IsRelocated(old, new *graph.Node) bool {
	oldParent, newParent := logicalParent(old), logicalParent(new)
	if oldParent == nil || newParent == nil {
		return oldParent != newParent
	}
	if m.oldToNew[oldParent] == newParent {
		return false
	}
	return oldParent.QualifiedName() != newParent.QualifiedName() || oldParent.Kind != newParent.Kind
}

// logicalParent skips compilation units that are merged into the global namespace
func logicalParent(node *graph.Node) *graph.Node {
	parent := node.Parent()
	if parent != nil && parent.Kind == graph.KindCompilationUnit {
		return nil
	}
	return parent
}

// Pairs returns matched pairs in new preorder (document path, then ordinal)
func (m *Match) Pairs() [][2]*graph.Node {
	var result [][2]*graph.Node
	for _, tree := range m.newTrees {
		for _, node := range tree.Nodes() {
			if old := m.newToOld[node]; old != nil {
				result = append(result, [2]*graph.Node{old, node})
			}
		}
	}
	return result
}

func (m *Match) add(old, new *graph.Node) bool {
	if existing, ok := m.oldToNew[old]; ok {
		if existing != new && m.err == nil {
			m.err = &InvariantError{Path: old.Path(), Reason: fmt.Sprintf("%v matched twice", old)}
		}
		return false
	}
	if existing, ok := m.newToOld[new]; ok {
		if existing != old && m.err == nil {
			m.err = &InvariantError{Path: new.Path(), Reason: fmt.Sprintf("%v matched twice", new)}
		}
		return false
	}
	if old.Kind != new.Kind {
		if m.err == nil {
			m.err = &InvariantError{Path: new.Path(), Reason: fmt.Sprintf("kind mismatch %v <-> %v", old, new)}
		}
		return false
	}
	m.oldToNew[old] = new
	m.newToOld[new] = old
	return true
}

func (m *Match) matched(node *graph.Node, old bool) bool {
	if old {
		_, ok := m.oldToNew[node]
		return ok
	}
	_, ok := m.newToOld[node]
	return ok
}

// Compute matches the old forest against the new forest.
// Trees are paired by document path; declarations of namespaces and partial types are merged
// across documents before their members are matched.
func Compute(ctx context.Context, old, new []*graph.Tree) (*Match, error) {
	m := &Match{
		oldTrees: sortedTrees(old),
		newTrees: sortedTrees(new),
		oldToNew: map[*graph.Node]*graph.Node{},
		newToOld: map[*graph.Node]*graph.Node{},
		entities: map[*graph.Node]*Entity{},
	}
	var oldRoots, newRoots []*graph.Node
	for _, tree := range m.oldTrees {
		if root := tree.Root(); root != nil {
			oldRoots = append(oldRoots, root)
		}
	}
	for _, tree := range m.newTrees {
		if root := tree.Root(); root != nil {
			newRoots = append(newRoots, root)
		}
	}
	if err := m.matchEntity(ctx, "", oldRoots, newRoots); err != nil {
		return nil, err
	}
	if err := m.relocate(ctx); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	return m, nil
}

func sortedTrees(trees []*graph.Tree) []*graph.Tree {
	result := make([]*graph.Tree, 0, len(trees))
	for _, tree := range trees {
		if tree != nil {
			result = append(result, tree)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Path < result[j].Path })
	return result
}
