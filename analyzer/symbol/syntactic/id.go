package syntactic

import (
	"strings"

	"github.com/viant/hotedit/inspector/graph"
)

const (
	// EntryPointID identifies the method synthesized for top-level statements
	EntryPointID   = "M:<Program>$.<Main>$"
	constructor    = "#ctor"
	staticInit     = "#cctor"
	moduleInit     = "init"
	indexerName    = "Item"
	destructorName = "Finalize"
)

// ID returns a documentation comment style identifier of a type or member declaration
func ID(node *graph.Node) (string, bool) {
	switch node.Kind {
	case graph.KindNamespace:
		return "N:" + node.QualifiedName(), true
	case graph.KindType:
		return "T:" + node.QualifiedName(), true
	case graph.KindField, graph.KindEnumMember:
		return "F:" + node.QualifiedName(), true
	case graph.KindProperty:
		return "P:" + node.QualifiedName(), true
	case graph.KindIndexer:
		return "P:" + join(node.ContainerName(), indexerName) + parameters(node), true
	case graph.KindEvent:
		return "E:" + node.QualifiedName(), true
	case graph.KindMethod, graph.KindOperator:
		return "M:" + node.QualifiedName() + parameters(node), true
	case graph.KindConstructor:
		name := constructor
		if node.IsStatic() {
			name = staticInit
		}
		return "M:" + join(node.ContainerName(), name) + parameters(node), true
	case graph.KindDestructor:
		return "M:" + join(node.ContainerName(), destructorName), true
	case graph.KindAccessor:
		return accessorID(node)
	case graph.KindTopLevelStatement:
		return EntryPointID, true
	}
	return "", false
}

// accessorID names an accessor after its owner: get_P, set_Item(int)
func accessorID(node *graph.Node) (string, bool) {
	owner := node.Parent()
	if owner == nil {
		return "", false
	}
	name := owner.Name
	suffix := ""
	if owner.Kind == graph.KindIndexer {
		name = indexerName
		suffix = parameters(owner)
	}
	return "M:" + join(owner.ContainerName(), node.Name+"_"+name) + suffix, true
}

func parameters(node *graph.Node) string {
	types := node.ParameterTypes()
	if len(types) == 0 {
		return ""
	}
	return "(" + strings.Join(types, ",") + ")"
}

func join(container, name string) string {
	if container == "" {
		return name
	}
	return container + "." + name
}
