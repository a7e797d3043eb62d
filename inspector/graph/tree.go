package graph

import "fmt"

// Tree is the declaration tree of a single document; it owns its node arena
type Tree struct {
	Path     string
	Language string
	nodes    []*Node // arena, indexed by NodeID
	preorder []*Node
}

// Root returns the compilation unit node
func (t *Tree) Root() *Node {
	if len(t.nodes) == 0 {
		return nil
	}
	return t.nodes[0]
}

// Node returns the node with the given id
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// Len returns number of nodes
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Nodes returns all nodes in preorder
func (t *Tree) Nodes() []*Node {
	return t.preorder
}

// Walk visits nodes in preorder; returning false skips the node's children
func (t *Tree) Walk(visit func(node *Node) bool) {
	if root := t.Root(); root != nil {
		walk(root, visit)
	}
}

func walk(node *Node, visit func(node *Node) bool) {
	if !visit(node) {
		return
	}
	for _, child := range node.children {
		walk(child, visit)
	}
}

// Innermost returns the deepest node whose span contains span and satisfies the predicate
func (t *Tree) Innermost(span Span, predicate func(node *Node) bool) *Node {
	var result *Node
	t.Walk(func(node *Node) bool {
		if !node.Span.Contains(span) {
			return false
		}
		if predicate == nil || predicate(node) {
			result = node
		}
		return true
	})
	return result
}

// Builder assembles a tree; nodes are appended under an existing parent
type Builder struct {
	tree  *Tree
	built bool
}

// NewBuilder creates a builder with a compilation unit root spanning the document
func NewBuilder(path string, text string) *Builder {
	tree := &Tree{Path: path}
	root := &Node{
		Kind:   KindCompilationUnit,
		Span:   Span{Start: 0, End: uint32(len(text))},
		Text:   text,
		tree:   tree,
		id:     0,
		parent: NoNode,
	}
	tree.nodes = append(tree.nodes, root)
	return &Builder{tree: tree}
}

// SetLanguage records the source language of the tree
func (b *Builder) SetLanguage(language string) *Builder {
	b.tree.Language = language
	return b
}

// Root returns the root id
func (b *Builder) Root() NodeID {
	return 0
}

// Node returns a node added so far
func (b *Builder) Node(id NodeID) *Node {
	return b.tree.Node(id)
}

// Add appends a copy of node as the last child of parent and returns its id
func (b *Builder) Add(parent NodeID, node Node) NodeID {
	if b.built {
		panic("graph: Add called after Build")
	}
	owner := b.tree.Node(parent)
	if owner == nil {
		panic(fmt.Sprintf("graph: unknown parent %d", parent))
	}
	added := node
	added.tree = b.tree
	added.id = NodeID(len(b.tree.nodes))
	added.parent = parent
	added.children = nil
	added.index = len(owner.children)
	b.tree.nodes = append(b.tree.nodes, &added)
	owner.children = append(owner.children, &added)
	return added.id
}

// Build finalizes the tree: assigns preorder ordinals and computes hashes
func (b *Builder) Build() *Tree {
	if b.built {
		return b.tree
	}
	b.built = true
	tree := b.tree
	tree.preorder = make([]*Node, 0, len(tree.nodes))
	tree.Walk(func(node *Node) bool {
		node.ordinal = len(tree.preorder)
		tree.preorder = append(tree.preorder, node)
		return true
	})
	for i := len(tree.preorder) - 1; i >= 0; i-- {
		tree.preorder[i].computeHashes()
	}
	return tree
}
