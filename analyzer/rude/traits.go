package rude

import (
	"strings"

	"github.com/viant/hotedit/analyzer/match"
	"github.com/viant/hotedit/inspector/graph"
)

// interopAttributes change metadata flags or marshalling rather than custom attribute blobs
var interopAttributes = map[string]bool{
	"DllImport":            true,
	"StructLayout":         true,
	"FieldOffset":          true,
	"MarshalAs":            true,
	"ComImport":            true,
	"Guid":                 true,
	"In":                   true,
	"Out":                  true,
	"Optional":             true,
	"PreserveSig":          true,
	"MethodImpl":           true,
	"Serializable":         true,
	"NonSerialized":        true,
	"ThreadStatic":         true,
	"SpecialName":          true,
	"TypeForwardedTo":      true,
	"UnmanagedCallersOnly": true,
}

// IsInteropAttribute reports whether the attribute belongs to an interop family
func IsInteropAttribute(attr graph.Attribute) bool {
	return interopAttributes[attr.ShortName()]
}

// hasLayout reports whether instance field order is observable
func hasLayout(typ *graph.Node) bool {
	if typ == nil {
		return false
	}
	if typ.TypeKind == graph.TypeKindStruct {
		return true
	}
	for _, attr := range typ.Attributes {
		if attr.ShortName() != "StructLayout" {
			continue
		}
		if strings.Contains(attr.Arguments, "Sequential") || strings.Contains(attr.Arguments, "Explicit") {
			return true
		}
	}
	return false
}

// hasStorage reports whether the member declares instance or static storage
func hasStorage(node *graph.Node) bool {
	switch node.Kind {
	case graph.KindField, graph.KindEnumMember:
		return true
	case graph.KindEvent:
		return len(node.ChildrenOf(graph.KindAccessor)) == 0
	case graph.KindProperty:
		return IsAutoProperty(node)
	}
	return false
}

// IsAutoProperty reports a property backed by a compiler generated field
func IsAutoProperty(node *graph.Node) bool {
	if node.Kind != graph.KindProperty || node.Body != "" {
		return false
	}
	accessors := node.ChildrenOf(graph.KindAccessor)
	if len(accessors) == 0 {
		return node.Initializer != ""
	}
	for _, accessor := range accessors {
		if accessor.Body != "" {
			return false
		}
	}
	return node.ContainingType() == nil || node.ContainingType().TypeKind != graph.TypeKindInterface
}

func isVirtual(node *graph.Node) bool {
	return node.Modifiers.Any(graph.Virtual | graph.Abstract | graph.Override)
}

func isInterface(node *graph.Node) bool {
	return node != nil && node.Kind == graph.KindType && node.TypeKind == graph.TypeKindInterface
}

// isNew reports a declaration that has no counterpart in the old forest, including partial parts
func isNew(m *match.Match, node *graph.Node) bool {
	if node == nil || m.OldOf(node) != nil {
		return false
	}
	return len(m.Counterparts(node)) == 0
}

// isGone reports an old declaration that has no counterpart in the new forest
func isGone(m *match.Match, node *graph.Node) bool {
	if node == nil || m.NewOf(node) != nil {
		return false
	}
	return len(m.Counterparts(node)) == 0
}

// initializersWithLambdas reports whether instance (or static) member initializers of any part of
// the type contain lambdas
func initializersWithLambdas(m *match.Match, typ *graph.Node, static bool) bool {
	if typ == nil {
		return false
	}
	for _, part := range m.Parts(typ) {
		for _, member := range part.Declarations() {
			if member.Initializer == "" || member.IsStatic() != static {
				continue
			}
			if len(member.ChildrenOf(graph.KindLambda)) > 0 {
				return true
			}
		}
	}
	return false
}

// hasTopLevelStatements reports whether any tree declares top-level statements
func hasTopLevelStatements(trees []*graph.Tree) bool {
	for _, tree := range trees {
		if root := tree.Root(); root != nil && len(root.ChildrenOf(graph.KindTopLevelStatement)) > 0 {
			return true
		}
	}
	return false
}
