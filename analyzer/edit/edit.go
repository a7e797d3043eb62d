// Package edit classifies matched and unmatched declarations into an ordered edit list.
package edit

import (
	"slices"
	"strings"

	"github.com/viant/hotedit/inspector/graph"
)

// Kind is a declaration edit kind
type Kind uint8

const (
	Insert Kind = iota + 1
	Delete
	Update
	Move
	Reorder
)

func (k Kind) String() string {
	switch k {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Update:
		return "update"
	case Move:
		return "move"
	case Reorder:
		return "reorder"
	}
	return "unknown"
}

// Change flags what differs between a matched pair
type Change uint32

const (
	ChangeName Change = 1 << iota
	ChangeModifiers
	ChangeAccessibility
	ChangePartial
	ChangeAttributes
	ChangeType
	ChangeParameters
	ChangeDefault
	ChangeBases
	ChangeExplicitInterface
	ChangeVariance
	ChangeConstraints
	ChangeTypeKind
	ChangeBody
	ChangeInitializer
)

var changeNames = []string{
	"name", "modifiers", "accessibility", "partial", "attributes", "type", "parameters", "default",
	"bases", "explicit-interface", "variance", "constraints", "type-kind", "body", "initializer",
}

// Has reports whether any of the flags is set
func (c Change) Has(flags Change) bool {
	return c&flags != 0
}

// Only reports whether c has no flags outside of flags
func (c Change) Only(flags Change) bool {
	return c != 0 && c&^flags == 0
}

func (c Change) String() string {
	var parts []string
	for i, name := range changeNames {
		if c&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, ",")
}

// Edit describes a single declaration change
type Edit struct {
	Kind      Kind
	Old       *graph.Node
	New       *graph.Node
	OldParent *graph.Node
	NewParent *graph.Node
	Changes   Change
}

// Node returns the new node, or the old one for deletes
func (e *Edit) Node() *graph.Node {
	if e.New != nil {
		return e.New
	}
	return e.Old
}

// Path returns the document the edit is attributed to
func (e *Edit) Path() string {
	return e.Node().Path()
}

// DeclKind returns the kind of the edited declaration
func (e *Edit) DeclKind() graph.Kind {
	return e.Node().Kind
}

func (e *Edit) String() string {
	builder := strings.Builder{}
	builder.WriteString(e.Kind.String())
	builder.WriteString(" ")
	builder.WriteString(e.Node().Kind.String())
	builder.WriteString(" ")
	builder.WriteString(e.Node().QualifiedName())
	if e.Changes != 0 {
		builder.WriteString(" [")
		builder.WriteString(e.Changes.String())
		builder.WriteString("]")
	}
	return builder.String()
}

// Diff computes change flags between a matched pair
func Diff(old, new *graph.Node) Change {
	var result Change
	if old.Name != new.Name {
		result |= ChangeName
	}
	if delta := old.Modifiers ^ new.Modifiers; delta != 0 {
		if delta.Any(graph.AccessMask) {
			result |= ChangeAccessibility
		}
		if delta.Any(graph.Partial) {
			result |= ChangePartial
		}
		if delta.Without(graph.AccessMask|graph.Partial) != 0 {
			result |= ChangeModifiers
		}
	}
	if !old.Attributes.Equal(new.Attributes) {
		result |= ChangeAttributes
	}
	if old.TypeKind != new.TypeKind {
		result |= ChangeTypeKind
	}
	oldSig, newSig := old.Signature, new.Signature
	if oldSig.Type != newSig.Type {
		result |= ChangeType
	}
	if oldSig.Default != newSig.Default {
		result |= ChangeDefault
	}
	if !slices.Equal(oldSig.Bases, newSig.Bases) {
		result |= ChangeBases
	}
	if oldSig.ExplicitInterface != newSig.ExplicitInterface {
		result |= ChangeExplicitInterface
	}
	if oldSig.Variance != newSig.Variance {
		result |= ChangeVariance
	}
	if !slices.Equal(oldSig.Constraints, newSig.Constraints) {
		result |= ChangeConstraints
	}
	if !slices.Equal(old.ParameterTypes(), new.ParameterTypes()) || len(old.ChildrenOf(graph.KindParameter)) != len(new.ChildrenOf(graph.KindParameter)) {
		result |= ChangeParameters
	}
	oldHash, newHash := old.Hashes(), new.Hashes()
	if oldHash.Body != newHash.Body {
		result |= ChangeBody
	}
	if oldHash.Initializer != newHash.Initializer {
		result |= ChangeInitializer
	}
	return result
}
