// Package graphtest builds declaration trees from a compact declarative description.
// Text and spans are rendered so that parents always enclose their children.
package graphtest

import (
	"strings"

	"github.com/viant/hotedit/inspector/graph"
)

// Decl describes a node and its children
type Decl struct {
	node     graph.Node
	children []*Decl
	body     []*Decl
	hasBody  bool
	init     string
	lambdas  []*Decl
	hasInit  bool
}

// Document describes a single document
type Document struct {
	Path  string
	Decls []*Decl
}

// Doc creates a document description
func Doc(path string, decls ...*Decl) *Document {
	return &Document{Path: path, Decls: decls}
}

// Trees builds trees for documents
func Trees(docs ...*Document) []*graph.Tree {
	var result []*graph.Tree
	for _, doc := range docs {
		result = append(result, doc.Tree())
	}
	return result
}

func decl(kind graph.Kind, name string, children ...*Decl) *Decl {
	return &Decl{node: graph.Node{Kind: kind, Name: name}, children: children}
}

func typeDecl(typeKind graph.TypeKind, name string, members ...*Decl) *Decl {
	ret := decl(graph.KindType, name, members...)
	ret.node.TypeKind = typeKind
	return ret
}

func Namespace(name string, members ...*Decl) *Decl {
	return decl(graph.KindNamespace, name, members...)
}

func Import(name string) *Decl {
	return decl(graph.KindImport, name)
}

func Class(name string, members ...*Decl) *Decl {
	return typeDecl(graph.TypeKindClass, name, members...)
}

func Struct(name string, members ...*Decl) *Decl {
	return typeDecl(graph.TypeKindStruct, name, members...)
}

func Interface(name string, members ...*Decl) *Decl {
	return typeDecl(graph.TypeKindInterface, name, members...)
}

func Enum(name string, members ...*Decl) *Decl {
	return typeDecl(graph.TypeKindEnum, name, members...)
}

func EnumMember(name, value string) *Decl {
	ret := decl(graph.KindEnumMember, name)
	ret.node.Signature.Default = value
	return ret
}

// Method declares a method; children are parameters, type parameters and nested declarations
func Method(name, returns string, children ...*Decl) *Decl {
	ret := decl(graph.KindMethod, name, children...)
	ret.node.Signature.Type = returns
	return ret
}

func Constructor(children ...*Decl) *Decl {
	return decl(graph.KindConstructor, ".ctor", children...)
}

// StaticConstructor declares a type initializer
func StaticConstructor() *Decl {
	ret := decl(graph.KindConstructor, ".cctor")
	ret.node.Modifiers = graph.Static
	return ret
}

func Field(name, typ string) *Decl {
	ret := decl(graph.KindField, name)
	ret.node.Signature.Type = typ
	return ret
}

func Property(name, typ string, accessors ...*Decl) *Decl {
	ret := decl(graph.KindProperty, name, accessors...)
	ret.node.Signature.Type = typ
	return ret
}

func Event(name, typ string) *Decl {
	ret := decl(graph.KindEvent, name)
	ret.node.Signature.Type = typ
	return ret
}

// Accessor declares a property accessor such as get or set
func Accessor(name string) *Decl {
	return decl(graph.KindAccessor, name)
}

func Param(name, typ string) *Decl {
	ret := decl(graph.KindParameter, name)
	ret.node.Signature.Type = typ
	return ret
}

func TypeParam(name string, constraints ...string) *Decl {
	ret := decl(graph.KindTypeParameter, name)
	ret.node.Signature.Constraints = constraints
	return ret
}

// TopLevel declares a top-level statement
func TopLevel(text string) *Decl {
	ret := decl(graph.KindTopLevelStatement, "")
	ret.hasBody = true
	ret.body = []*Decl{Stmt(text)}
	return ret
}

// Stmt declares a body statement; nested holds inner statements and lambdas
func Stmt(text string, nested ...*Decl) *Decl {
	ret := decl(graph.KindStatement, "", nested...)
	ret.node.Text = text
	return ret
}

// Local declares a local variable declaration statement
func Local(name, text string, nested ...*Decl) *Decl {
	ret := Stmt(text, nested...)
	ret.node.Name = name
	return ret
}

func Lambda(stmts ...*Decl) *Decl {
	ret := decl(graph.KindLambda, "", stmts...)
	ret.node.Text = "=>"
	return ret
}

// With adds modifiers
func (d *Decl) With(modifiers graph.Modifiers) *Decl {
	d.node.Modifiers |= modifiers
	return d
}

// Attr adds an attribute
func (d *Decl) Attr(name, arguments string) *Decl {
	d.node.Attributes = append(d.node.Attributes, graph.Attribute{Name: name, Arguments: arguments})
	return d
}

func (d *Decl) Bases(bases ...string) *Decl {
	d.node.Signature.Bases = append(d.node.Signature.Bases, bases...)
	return d
}

func (d *Decl) Explicit(iface string) *Decl {
	d.node.Signature.ExplicitInterface = iface
	return d
}

func (d *Decl) Default(value string) *Decl {
	d.node.Signature.Default = value
	return d
}

func (d *Decl) Variance(variance graph.Variance) *Decl {
	d.node.Signature.Variance = variance
	return d
}

// Init sets an initializer expression; lambdas are nested in the initializer
func (d *Decl) Init(expr string, lambdas ...*Decl) *Decl {
	d.hasInit = true
	d.init = expr
	d.lambdas = lambdas
	return d
}

// Body sets member body statements
func (d *Decl) Body(stmts ...*Decl) *Decl {
	d.hasBody = true
	d.body = stmts
	return d
}

// Add appends child declarations
func (d *Decl) Add(children ...*Decl) *Decl {
	d.children = append(d.children, children...)
	return d
}

type layout struct {
	span        graph.Span
	bodySpan    graph.Span
	initSpan    graph.Span
	headerStart int
}

type renderer struct {
	buf     strings.Builder
	layouts map[*Decl]*layout
}

// Tree renders the document and builds its tree
func (d *Document) Tree() *graph.Tree {
	r := &renderer{layouts: map[*Decl]*layout{}}
	for _, child := range d.Decls {
		r.render(child)
	}
	text := r.buf.String()
	builder := graph.NewBuilder(d.Path, text).SetLanguage("test")
	for _, child := range d.Decls {
		r.add(builder, builder.Root(), child, text)
	}
	return builder.Build()
}

func (r *renderer) offset() uint32 {
	return uint32(r.buf.Len())
}

func (r *renderer) render(d *Decl) {
	l := &layout{}
	r.layouts[d] = l
	l.span.Start = r.offset()
	r.buf.WriteString(header(d))
	for _, child := range d.children {
		r.render(child)
	}
	if d.hasInit {
		r.buf.WriteString(" = ")
		l.initSpan.Start = r.offset()
		r.buf.WriteString(d.init)
		for _, lambda := range d.lambdas {
			r.render(lambda)
		}
		l.initSpan.End = r.offset()
	}
	if d.hasBody {
		l.bodySpan.Start = r.offset()
		r.buf.WriteString("{")
		for _, stmt := range d.body {
			r.render(stmt)
		}
		r.buf.WriteString("}")
		l.bodySpan.End = r.offset()
	}
	if !d.node.Kind.IsBody() {
		r.buf.WriteString(";\n")
	}
	l.span.End = r.offset()
}

func header(d *Decl) string {
	node := d.node
	if node.Kind.IsBody() {
		return node.Text
	}
	parts := []string{}
	for _, attr := range node.Attributes {
		parts = append(parts, "["+attr.String()+"]")
	}
	if node.Modifiers != 0 {
		parts = append(parts, node.Modifiers.String())
	}
	kind := node.Kind.String()
	if node.TypeKind != graph.TypeKindNone {
		kind = node.TypeKind.String()
	}
	parts = append(parts, kind, node.Name)
	if sig := node.Signature.String(); sig != "|||||" {
		parts = append(parts, "<"+sig+">")
	}
	return strings.Join(parts, " ") + " "
}

func (r *renderer) add(builder *graph.Builder, parent graph.NodeID, d *Decl, text string) {
	l := r.layouts[d]
	node := d.node
	node.Span = l.span
	node.Text = text[l.span.Start:l.span.End]
	if d.hasBody {
		node.BodySpan = l.bodySpan
		node.Body = text[l.bodySpan.Start:l.bodySpan.End]
	}
	if d.hasInit {
		node.InitializerSpan = l.initSpan
		node.Initializer = text[l.initSpan.Start:l.initSpan.End]
	}
	id := builder.Add(parent, node)
	for _, child := range d.children {
		r.add(builder, id, child, text)
	}
	for _, lambda := range d.lambdas {
		r.add(builder, id, lambda, text)
	}
	for _, stmt := range d.body {
		r.add(builder, id, stmt, text)
	}
}
