// Package syntactic implements a symbol model derived from declaration trees alone.
package syntactic

import (
	"context"
	"fmt"
	"sort"

	"github.com/viant/hotedit/analyzer/symbol"
	"github.com/viant/hotedit/inspector/graph"
)

// Model resolves declarations of one snapshot by their documentation identifiers
type Model struct {
	byID   map[string][]*graph.Node
	errors map[string][]string
	entry  *graph.Node
}

// New indexes declarations of the snapshot trees
func New(trees ...*graph.Tree) *Model {
	ret := &Model{byID: map[string][]*graph.Node{}, errors: map[string][]string{}}
	for _, tree := range trees {
		tree.Walk(func(node *graph.Node) bool {
			switch {
			case node.Kind.IsBody():
				return false
			case node.Kind == graph.KindParameter || node.Kind == graph.KindTypeParameter || node.Kind == graph.KindImport:
				return false
			}
			if id, ok := ID(node); ok {
				ret.byID[id] = append(ret.byID[id], node)
			}
			return true
		})
	}
	ids := make([]string, 0, len(ret.byID))
	for id := range ret.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		nodes := ret.byID[id]
		if len(nodes) > 1 && !shared(nodes[0].Kind) {
			for _, node := range nodes[1:] {
				ret.errors[node.Path()] = append(ret.errors[node.Path()], fmt.Sprintf("duplicate definition of %v", id))
			}
		}
		if id != EntryPointID && ret.entry == nil && isMain(nodes[0]) {
			ret.entry = nodes[0]
		}
	}
	return ret
}

// shared reports whether several declarations may contribute to one symbol
func shared(kind graph.Kind) bool {
	switch kind {
	case graph.KindNamespace, graph.KindType, graph.KindTopLevelStatement:
		return true
	}
	return false
}

func isMain(node *graph.Node) bool {
	if node.Kind != graph.KindMethod {
		return false
	}
	switch node.Name {
	case "Main":
		return node.IsStatic()
	case "main":
		parent := node.Parent()
		return parent != nil && parent.Kind == graph.KindNamespace && parent.Name == "main"
	}
	return false
}

// Symbol resolves a type or member declaration
func (m *Model) Symbol(ctx context.Context, node *graph.Node) (*symbol.Symbol, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, ok := ID(node)
	if !ok {
		return nil, fmt.Errorf("%w: %v", symbol.ErrUnresolved, node)
	}
	candidates := m.byID[id]
	if !contains(candidates, node) {
		return nil, fmt.Errorf("%w: %v", symbol.ErrUnresolved, node)
	}
	if len(candidates) > 1 && !shared(node.Kind) {
		return nil, fmt.Errorf("%w: %v has %d definitions", symbol.ErrAmbiguous, id, len(candidates))
	}
	if node.Kind == graph.KindTopLevelStatement {
		return &symbol.Symbol{ID: EntryPointID, Kind: graph.KindMethod, Name: "<Main>$", Static: true, Implicit: true}, nil
	}
	return newSymbol(id, node), nil
}

func newSymbol(id string, node *graph.Node) *symbol.Symbol {
	return &symbol.Symbol{
		ID:        id,
		Kind:      node.Kind,
		Name:      node.DisplayName(),
		Container: node.ContainerName(),
		Static:    node.IsStatic(),
	}
}

// Constructors returns declared constructors of all type parts; implicit ones when none is declared
func (m *Model) Constructors(ctx context.Context, container *graph.Node, static bool) ([]*symbol.Symbol, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if container.Kind != graph.KindType {
		if !static {
			return nil, nil
		}
		name := join(container.QualifiedName(), moduleInit)
		return []*symbol.Symbol{{ID: "M:" + name, Kind: graph.KindConstructor, Name: moduleInit, Container: container.QualifiedName(), Static: true, Implicit: true}}, nil
	}
	typeID, _ := ID(container)
	parts := m.byID[typeID]
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: %v", symbol.ErrUnresolved, container)
	}
	var result []*symbol.Symbol
	initialized := false
	for _, part := range parts {
		for _, child := range part.Children() {
			if child.Kind == graph.KindConstructor && child.IsStatic() == static {
				id, _ := ID(child)
				result = append(result, newSymbol(id, child))
			}
			if child.Initializer != "" && child.IsStatic() == static && !child.Modifiers.Has(graph.Const) {
				initialized = true
			}
		}
	}
	if len(result) > 0 {
		sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
		return result, nil
	}
	if !hasImplicitConstructor(container, static, initialized) {
		return nil, nil
	}
	name := constructor
	if static {
		name = staticInit
	}
	return []*symbol.Symbol{{
		ID:        "M:" + join(container.QualifiedName(), name),
		Kind:      graph.KindConstructor,
		Name:      container.Name,
		Container: container.QualifiedName(),
		Static:    static,
		Implicit:  true,
	}}, nil
}

func hasImplicitConstructor(typ *graph.Node, static bool, initialized bool) bool {
	switch typ.TypeKind {
	case graph.TypeKindInterface, graph.TypeKindEnum, graph.TypeKindDelegate:
		return false
	}
	if static {
		return initialized
	}
	return !typ.Modifiers.Any(graph.Static | graph.Abstract)
}

// EntryPoint returns the synthesized top-level entry point, or a declared main method
func (m *Model) EntryPoint(ctx context.Context) (*symbol.Symbol, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(m.byID[EntryPointID]) > 0 {
		return m.Symbol(ctx, m.byID[EntryPointID][0])
	}
	if m.entry != nil {
		return m.Symbol(ctx, m.entry)
	}
	return nil, fmt.Errorf("%w: entry point", symbol.ErrUnresolved)
}

// Errors returns duplicate definitions found in the document
func (m *Model) Errors(ctx context.Context, path string) []string {
	return m.errors[path]
}

func contains(nodes []*graph.Node, node *graph.Node) bool {
	for _, candidate := range nodes {
		if candidate == node {
			return true
		}
	}
	return false
}
