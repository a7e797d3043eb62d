package graph

import (
	"strconv"
	"strings"
)

// NodeID identifies a node within its tree arena
type NodeID int32

// NoNode is the parent id of a root node
const NoNode NodeID = -1

// Node represents a declaration (or body element) of a document.
// Nodes are owned by their Tree and must not be modified once the tree is built.
type Node struct {
	Kind            Kind
	TypeKind        TypeKind
	Name            string
	Modifiers       Modifiers
	Attributes      Attributes
	Signature       Signature
	Span            Span   // full declaration span
	Text            string // raw declaration text
	Body            string // member body text, empty for abstract or bodiless members
	BodySpan        Span
	Initializer     string // field, property or enum member initializer expression
	InitializerSpan Span

	tree     *Tree
	id       NodeID
	parent   NodeID
	children []*Node
	index    int // position among siblings
	ordinal  int // preorder position within the tree
	hashes   Hashes
}

// ID returns the arena id
func (n *Node) ID() NodeID {
	return n.id
}

// Tree returns the owning tree
func (n *Node) Tree() *Tree {
	return n.tree
}

// Path returns the document path of the owning tree
func (n *Node) Path() string {
	if n.tree == nil {
		return ""
	}
	return n.tree.Path
}

// Parent returns the parent node or nil for the root
func (n *Node) Parent() *Node {
	if n.parent == NoNode || n.tree == nil {
		return nil
	}
	return n.tree.nodes[n.parent]
}

// Children returns ordered children
func (n *Node) Children() []*Node {
	return n.children
}

// Index returns the position among siblings
func (n *Node) Index() int {
	return n.index
}

// Ordinal returns the preorder position in the tree
func (n *Node) Ordinal() int {
	return n.ordinal
}

// Hashes returns the node digests
func (n *Node) Hashes() Hashes {
	return n.hashes
}

// Declarations returns children that are declarations
func (n *Node) Declarations() []*Node {
	var result []*Node
	for _, child := range n.children {
		if !child.Kind.IsBody() {
			result = append(result, child)
		}
	}
	return result
}

// BodyNodes returns children that are statements or lambdas
func (n *Node) BodyNodes() []*Node {
	var result []*Node
	for _, child := range n.children {
		if child.Kind.IsBody() {
			result = append(result, child)
		}
	}
	return result
}

// ChildrenOf returns children of the given kind
func (n *Node) ChildrenOf(kind Kind) []*Node {
	var result []*Node
	for _, child := range n.children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// Arity returns the number of type parameters
func (n *Node) Arity() int {
	count := 0
	for _, child := range n.children {
		if child.Kind == KindTypeParameter {
			count++
		}
	}
	return count
}

// ParameterTypes returns the ordered parameter types
func (n *Node) ParameterTypes() []string {
	var result []string
	for _, child := range n.children {
		if child.Kind == KindParameter {
			result = append(result, child.Signature.Type)
		}
	}
	return result
}

// IsStatic reports whether the member belongs to the type rather than to instances
func (n *Node) IsStatic() bool {
	return n.Modifiers.Any(Static | Const)
}

// IsGeneric reports whether the node or any enclosing type declares type parameters
func (n *Node) IsGeneric() bool {
	for node := n; node != nil; node = node.Parent() {
		if (node.Kind == KindType || node.Kind.IsMethodLike()) && node.Arity() > 0 {
			return true
		}
	}
	return false
}

// Ancestor returns the nearest strict ancestor matching the predicate
func (n *Node) Ancestor(predicate func(node *Node) bool) *Node {
	for node := n.Parent(); node != nil; node = node.Parent() {
		if predicate(node) {
			return node
		}
	}
	return nil
}

// ContainingType returns the nearest enclosing type declaration
func (n *Node) ContainingType() *Node {
	return n.Ancestor(func(node *Node) bool { return node.Kind == KindType })
}

// ContainingMember returns the node itself or the nearest enclosing member
func (n *Node) ContainingMember() *Node {
	if n.Kind.IsMember() {
		return n
	}
	return n.Ancestor(func(node *Node) bool { return node.Kind.IsMember() })
}

// IsAncestorOf reports whether n encloses other
func (n *Node) IsAncestorOf(other *Node) bool {
	if other == nil || n.tree != other.tree {
		return false
	}
	for node := other.Parent(); node != nil; node = node.Parent() {
		if node == n {
			return true
		}
	}
	return false
}

// LocalName returns the simple name with generic arity suffix
func (n *Node) LocalName() string {
	arity := 0
	if n.Kind == KindType || n.Kind.IsMethodLike() {
		arity = n.Arity()
	}
	if arity == 0 {
		return n.Name
	}
	return n.Name + "`" + strconv.Itoa(arity)
}

// ContainerName returns the qualified name of the enclosing namespaces and types
func (n *Node) ContainerName() string {
	var names []string
	for node := n.Parent(); node != nil; node = node.Parent() {
		switch node.Kind {
		case KindNamespace, KindType:
			names = append(names, node.LocalName())
		case KindMethod, KindConstructor, KindProperty, KindIndexer, KindEvent, KindOperator, KindDestructor:
			names = append(names, node.LocalName())
		}
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, ".")
}

// QualifiedName returns the container name joined with the local name
func (n *Node) QualifiedName() string {
	container := n.ContainerName()
	if container == "" {
		return n.LocalName()
	}
	if n.LocalName() == "" {
		return container
	}
	return container + "." + n.LocalName()
}

// DisplayName returns a human readable name used in diagnostics
func (n *Node) DisplayName() string {
	switch {
	case n.Kind == KindConstructor || n.Kind == KindDestructor || n.Kind == KindTopLevelStatement:
		if owner := n.ContainingType(); owner != nil {
			return owner.Name
		}
		return n.Kind.String()
	case n.Name == "":
		return n.Kind.String()
	}
	return n.Name
}

// Describe returns "<kind> <name>" for diagnostics
func (n *Node) Describe() string {
	kind := n.Kind.String()
	if n.Kind == KindType && n.TypeKind != TypeKindNone {
		kind = n.TypeKind.String()
	}
	if n.Kind == KindTopLevelStatement {
		return kind
	}
	return kind + " '" + n.DisplayName() + "'"
}

func (n *Node) String() string {
	return n.Path() + ":" + n.Kind.String() + ":" + n.QualifiedName()
}
