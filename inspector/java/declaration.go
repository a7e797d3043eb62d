package java

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/hotedit/inspector/graph"
)

// fileBuilder converts a tree-sitter Java syntax tree into a declaration tree
type fileBuilder struct {
	config  *graph.Config
	src     []byte
	builder *graph.Builder
}

var typeKinds = map[string]graph.TypeKind{
	"class_declaration":           graph.TypeKindClass,
	"interface_declaration":       graph.TypeKindInterface,
	"enum_declaration":            graph.TypeKindEnum,
	"record_declaration":          graph.TypeKindRecord,
	"annotation_type_declaration": graph.TypeKindInterface,
}

func (b *fileBuilder) program(root *sitter.Node) {
	parent := b.builder.Root()
	for j := 0; j < int(root.NamedChildCount()); j++ {
		child := root.NamedChild(j)
		switch child.Type() {
		case "package_declaration":
			node := graph.Node{Kind: graph.KindNamespace, Name: b.content(child.NamedChild(0))}
			node.Span = graph.Span{Start: child.StartByte(), End: root.EndByte()}
			node.Text = b.slice(node.Span)
			parent = b.builder.Add(b.builder.Root(), node)
		case "import_declaration":
			node := graph.Node{Kind: graph.KindImport}
			text := strings.TrimSuffix(strings.TrimPrefix(b.content(child), "import"), ";")
			if strings.Contains(text, "static ") {
				node.Modifiers = graph.Static
				text = strings.Replace(text, "static ", "", 1)
			}
			node.Name = strings.TrimSpace(text)
			node.Span, node.Text = b.span(child)
			b.builder.Add(parent, node)
		default:
			if _, ok := typeKinds[child.Type()]; ok {
				b.typeDeclaration(parent, child)
			}
		}
	}
}

func (b *fileBuilder) typeDeclaration(parent graph.NodeID, decl *sitter.Node) {
	modifiers, attributes := b.modifiers(decl)
	if !b.included(modifiers) {
		return
	}
	node := graph.Node{
		Kind:       graph.KindType,
		TypeKind:   typeKinds[decl.Type()],
		Name:       b.content(decl.ChildByFieldName("name")),
		Modifiers:  modifiers,
		Attributes: attributes,
	}
	node.Span, node.Text = b.span(decl)
	if superclass := decl.ChildByFieldName("superclass"); superclass != nil {
		node.Signature.Bases = append(node.Signature.Bases, b.types(superclass)...)
	}
	if interfaces := decl.ChildByFieldName("interfaces"); interfaces != nil && interfaces.Type() != "extends_interfaces" {
		node.Signature.Bases = append(node.Signature.Bases, b.types(interfaces)...)
	}
	for j := 0; j < int(decl.NamedChildCount()); j++ {
		if child := decl.NamedChild(j); child.Type() == "extends_interfaces" {
			node.Signature.Bases = append(node.Signature.Bases, b.types(child)...)
		}
	}
	id := b.builder.Add(parent, node)
	b.typeParameters(id, decl.ChildByFieldName("type_parameters"))
	if decl.Type() == "record_declaration" {
		b.recordComponents(id, decl.ChildByFieldName("parameters"))
	}
	if body := decl.ChildByFieldName("body"); body != nil {
		b.body(id, body)
	}
}

// body adds the members of a class, interface, enum or record body
func (b *fileBuilder) body(parent graph.NodeID, body *sitter.Node) {
	for j := 0; j < int(body.NamedChildCount()); j++ {
		child := body.NamedChild(j)
		switch child.Type() {
		case "field_declaration", "constant_declaration":
			b.field(parent, child)
		case "method_declaration", "annotation_type_element_declaration":
			b.method(parent, child, graph.KindMethod)
		case "constructor_declaration", "compact_constructor_declaration":
			b.method(parent, child, graph.KindConstructor)
		case "static_initializer":
			b.staticInitializer(parent, child)
		case "enum_constant":
			b.enumConstant(parent, child)
		case "enum_body_declarations":
			b.body(parent, child)
		default:
			if _, ok := typeKinds[child.Type()]; ok {
				b.typeDeclaration(parent, child)
			}
		}
	}
}

func (b *fileBuilder) field(parent graph.NodeID, decl *sitter.Node) {
	modifiers, attributes := b.modifiers(decl)
	owner := b.builder.Node(parent)
	if owner.TypeKind == graph.TypeKindInterface {
		modifiers |= graph.Public | graph.Static | graph.Sealed
	}
	if !b.included(modifiers) {
		return
	}
	if modifiers.Has(graph.Sealed) {
		modifiers = modifiers.Without(graph.Sealed) | graph.ReadOnly
	}
	typ := b.content(decl.ChildByFieldName("type"))
	for j := 0; j < int(decl.NamedChildCount()); j++ {
		declarator := decl.NamedChild(j)
		if declarator.Type() != "variable_declarator" {
			continue
		}
		node := graph.Node{
			Kind:       graph.KindField,
			Name:       b.content(declarator.ChildByFieldName("name")),
			Modifiers:  modifiers,
			Attributes: attributes,
			Signature:  graph.Signature{Type: typ + b.content(declarator.ChildByFieldName("dimensions"))},
		}
		node.Span, node.Text = b.span(decl)
		value := declarator.ChildByFieldName("value")
		if value != nil {
			node.InitializerSpan, node.Initializer = b.span(value)
		}
		id := b.builder.Add(parent, node)
		if value != nil && !b.config.SkipBodies {
			b.lambdas(id, value)
		}
	}
}

func (b *fileBuilder) method(parent graph.NodeID, decl *sitter.Node, kind graph.Kind) {
	modifiers, attributes := b.modifiers(decl)
	owner := b.builder.Node(parent)
	if owner.TypeKind == graph.TypeKindInterface && !modifiers.Has(graph.Private) {
		modifiers |= graph.Public
	}
	if !b.included(modifiers) {
		return
	}
	node := graph.Node{
		Kind:       kind,
		Name:       b.content(decl.ChildByFieldName("name")),
		Modifiers:  modifiers,
		Attributes: attributes,
	}
	if kind == graph.KindConstructor {
		node.Name = ".ctor"
	} else {
		node.Signature.Type = b.content(decl.ChildByFieldName("type")) + b.content(decl.ChildByFieldName("dimensions"))
		if value := decl.ChildByFieldName("value"); value != nil {
			node.Signature.Default = b.content(value)
		}
	}
	body := decl.ChildByFieldName("body")
	if owner.TypeKind == graph.TypeKindInterface && body == nil && !modifiers.Has(graph.Static) {
		node.Modifiers |= graph.Abstract
	}
	node.Span, node.Text = b.span(decl)
	if body != nil {
		node.BodySpan, node.Body = b.span(body)
	}
	id := b.builder.Add(parent, node)
	b.typeParameters(id, decl.ChildByFieldName("type_parameters"))
	b.parameters(id, decl.ChildByFieldName("parameters"))
	if body != nil && !b.config.SkipBodies {
		b.statements(id, body)
	}
}

func (b *fileBuilder) staticInitializer(parent graph.NodeID, decl *sitter.Node) {
	node := graph.Node{Kind: graph.KindConstructor, Name: ".cctor", Modifiers: graph.Static}
	node.Span, node.Text = b.span(decl)
	block := decl.NamedChild(0)
	if block != nil {
		node.BodySpan, node.Body = b.span(block)
	}
	id := b.builder.Add(parent, node)
	if block != nil && !b.config.SkipBodies {
		b.statements(id, block)
	}
}

func (b *fileBuilder) enumConstant(parent graph.NodeID, decl *sitter.Node) {
	_, attributes := b.modifiers(decl)
	node := graph.Node{
		Kind:       graph.KindEnumMember,
		Name:       b.content(decl.ChildByFieldName("name")),
		Modifiers:  graph.Public | graph.Static | graph.Const,
		Attributes: attributes,
	}
	if arguments := decl.ChildByFieldName("arguments"); arguments != nil {
		node.Signature.Default = b.content(arguments)
	}
	node.Span, node.Text = b.span(decl)
	if body := decl.ChildByFieldName("body"); body != nil {
		node.BodySpan, node.Body = b.span(body)
	}
	b.builder.Add(parent, node)
}

func (b *fileBuilder) recordComponents(parent graph.NodeID, parameters *sitter.Node) {
	if parameters == nil {
		return
	}
	for j := 0; j < int(parameters.NamedChildCount()); j++ {
		component := parameters.NamedChild(j)
		if component.Type() != "formal_parameter" {
			continue
		}
		node := graph.Node{
			Kind:      graph.KindField,
			Name:      b.content(component.ChildByFieldName("name")),
			Modifiers: graph.Private | graph.ReadOnly,
			Signature: graph.Signature{Type: b.content(component.ChildByFieldName("type"))},
		}
		node.Span, node.Text = b.span(component)
		b.builder.Add(parent, node)
	}
}

func (b *fileBuilder) typeParameters(parent graph.NodeID, list *sitter.Node) {
	if list == nil {
		return
	}
	for j := 0; j < int(list.NamedChildCount()); j++ {
		param := list.NamedChild(j)
		if param.Type() != "type_parameter" {
			continue
		}
		node := graph.Node{Kind: graph.KindTypeParameter}
		for k := 0; k < int(param.NamedChildCount()); k++ {
			child := param.NamedChild(k)
			switch child.Type() {
			case "type_identifier", "identifier":
				node.Name = b.content(child)
			case "type_bound":
				node.Signature.Constraints = b.types(child)
			}
		}
		node.Span, node.Text = b.span(param)
		b.builder.Add(parent, node)
	}
}

func (b *fileBuilder) parameters(parent graph.NodeID, list *sitter.Node) {
	if list == nil {
		return
	}
	for j := 0; j < int(list.NamedChildCount()); j++ {
		param := list.NamedChild(j)
		node := graph.Node{Kind: graph.KindParameter}
		modifiers, attributes := b.modifiers(param)
		node.Modifiers, node.Attributes = modifiers&graph.Sealed, attributes
		switch param.Type() {
		case "formal_parameter":
			node.Name = b.content(param.ChildByFieldName("name"))
			node.Signature.Type = b.content(param.ChildByFieldName("type")) + b.content(param.ChildByFieldName("dimensions"))
		case "spread_parameter":
			node.Modifiers |= graph.Params
			for k := 0; k < int(param.NamedChildCount()); k++ {
				child := param.NamedChild(k)
				switch child.Type() {
				case "modifiers":
				case "variable_declarator":
					node.Name = b.content(child.ChildByFieldName("name"))
				default:
					if node.Signature.Type == "" {
						node.Signature.Type = b.content(child)
					}
				}
			}
		default:
			continue
		}
		node.Span, node.Text = b.span(param)
		b.builder.Add(parent, node)
	}
}

// modifiers collects keyword modifiers and annotations; @Override maps to the override modifier
func (b *fileBuilder) modifiers(decl *sitter.Node) (graph.Modifiers, graph.Attributes) {
	var modifiers graph.Modifiers
	var attributes graph.Attributes
	for j := 0; j < int(decl.NamedChildCount()); j++ {
		list := decl.NamedChild(j)
		if list.Type() != "modifiers" {
			continue
		}
		for k := 0; k < int(list.ChildCount()); k++ {
			child := list.Child(k)
			switch child.Type() {
			case "marker_annotation", "annotation":
				attr := graph.Attribute{Name: b.content(child.ChildByFieldName("name"))}
				if arguments := child.ChildByFieldName("arguments"); arguments != nil {
					attr.Arguments = strings.TrimSuffix(strings.TrimPrefix(b.content(arguments), "("), ")")
				}
				if attr.Name == "Override" {
					modifiers |= graph.Override
					continue
				}
				attributes = append(attributes, attr)
			default:
				if flag, ok := graph.ParseModifier(child.Type()); ok {
					modifiers |= flag
				}
			}
		}
	}
	return modifiers, attributes
}

func (b *fileBuilder) included(modifiers graph.Modifiers) bool {
	return b.config.IncludeUnexported || modifiers.Any(graph.Public|graph.Protected)
}

// types returns the type names listed under a superclass, interface list or bound node
func (b *fileBuilder) types(node *sitter.Node) []string {
	var result []string
	for j := 0; j < int(node.NamedChildCount()); j++ {
		child := node.NamedChild(j)
		if child.Type() == "type_list" {
			result = append(result, b.types(child)...)
			continue
		}
		result = append(result, b.content(child))
	}
	return result
}

func (b *fileBuilder) span(node *sitter.Node) (graph.Span, string) {
	span := graph.Span{Start: node.StartByte(), End: node.EndByte()}
	return span, b.slice(span)
}

func (b *fileBuilder) slice(span graph.Span) string {
	if span.IsEmpty() || int(span.End) > len(b.src) {
		return ""
	}
	return string(b.src[span.Start:span.End])
}

// content returns the whitespace normalized text of a node; nil nodes yield an empty string
func (b *fileBuilder) content(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return strings.Join(strings.Fields(node.Content(b.src)), " ")
}
