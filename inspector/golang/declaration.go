package golang

import (
	"go/ast"
	"go/token"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/viant/hotedit/inspector/graph"
)

// fileBuilder converts one parsed Go file into a declaration tree.
// Go types are marked partial since their methods may be declared in any file of the package.
type fileBuilder struct {
	config  *graph.Config
	fset    *token.FileSet
	file    *ast.File
	src     []byte
	builder *graph.Builder
	types   map[string]graph.NodeID
	extents map[string]graph.Span // receiver type name to the span covering its declarations
	err     error
}

func newFileBuilder(config *graph.Config, fset *token.FileSet, file *ast.File, path string, src []byte) *fileBuilder {
	return &fileBuilder{
		config:  config,
		fset:    fset,
		file:    file,
		src:     src,
		builder: graph.NewBuilder(path, string(src)).SetLanguage(Language),
		types:   map[string]graph.NodeID{},
		extents: map[string]graph.Span{},
	}
}

func (b *fileBuilder) build() (*graph.Tree, error) {
	namespace := b.namespace()
	b.collectExtents()
	for _, decl := range b.file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			if ts, ok := spec.(*ast.TypeSpec); ok && b.included(ts.Name) {
				b.typeSpec(namespace, genDecl, ts)
			}
		}
	}
	for _, decl := range b.file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok == token.VAR || d.Tok == token.CONST {
				b.values(namespace, d)
			}
		case *ast.FuncDecl:
			if b.included(d.Name) {
				b.function(namespace, d)
			}
		}
	}
	if b.err != nil {
		return nil, b.err
	}
	return b.builder.Build(), nil
}

func (b *fileBuilder) namespace() graph.NodeID {
	span, text := b.span(b.file.Package, b.file.End())
	id := b.builder.Add(b.builder.Root(), graph.Node{
		Kind: graph.KindNamespace,
		Name: b.file.Name.Name,
		Span: span,
		Text: text,
	})
	for _, spec := range b.file.Imports {
		node := graph.Node{Kind: graph.KindImport}
		node.Name, _ = strconv.Unquote(spec.Path.Value)
		if spec.Name != nil {
			node.Signature.Type = spec.Name.Name
		}
		node.Span, node.Text = b.span(spec.Pos(), spec.End())
		b.builder.Add(id, node)
	}
	return id
}

// collectExtents computes, per receiver type, the span covering the type and all its methods
func (b *fileBuilder) collectExtents() {
	for _, decl := range b.file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				if ts, ok := spec.(*ast.TypeSpec); ok {
					b.extend(ts.Name.Name, b.specStart(d, ts), ts.End())
				}
			}
		case *ast.FuncDecl:
			if name := receiverName(d); name != "" {
				b.extend(name, d.Pos(), d.End())
			}
		}
	}
}

func (b *fileBuilder) extend(name string, pos, end token.Pos) {
	span, _ := b.span(pos, end)
	if existing, ok := b.extents[name]; ok {
		span = existing.Cover(span)
	}
	b.extents[name] = span
}

func (b *fileBuilder) specStart(decl *ast.GenDecl, spec ast.Spec) token.Pos {
	if len(decl.Specs) == 1 {
		return decl.Pos()
	}
	return spec.Pos()
}

func (b *fileBuilder) typeSpec(parent graph.NodeID, decl *ast.GenDecl, spec *ast.TypeSpec) {
	node := graph.Node{
		Kind:      graph.KindType,
		Name:      spec.Name.Name,
		Modifiers: graph.Partial | access(spec.Name),
	}
	node.Span = b.extents[spec.Name.Name]
	node.Text = b.slice(node.Span)
	var fields, methods []*ast.Field
	switch t := spec.Type.(type) {
	case *ast.StructType:
		node.TypeKind = graph.TypeKindStruct
		for _, field := range t.Fields.List {
			if len(field.Names) == 0 {
				node.Signature.Bases = append(node.Signature.Bases, b.text(field.Type))
				continue
			}
			fields = append(fields, field)
		}
	case *ast.InterfaceType:
		node.TypeKind = graph.TypeKindInterface
		for _, field := range t.Methods.List {
			if len(field.Names) == 0 {
				node.Signature.Bases = append(node.Signature.Bases, b.text(field.Type))
				continue
			}
			methods = append(methods, field)
		}
	case *ast.FuncType:
		node.TypeKind = graph.TypeKindDelegate
		node.Signature.Type = b.text(t)
	default:
		node.TypeKind = graph.TypeKindClass
		node.Signature.Type = b.text(spec.Type)
	}
	if spec.Assign.IsValid() {
		node.Signature.Type = "= " + b.text(spec.Type)
	}
	id := b.builder.Add(parent, node)
	b.types[spec.Name.Name] = id
	b.typeParams(id, spec.TypeParams)
	for _, field := range fields {
		b.field(id, field)
	}
	for _, method := range methods {
		b.interfaceMethod(id, method)
	}
}

func (b *fileBuilder) field(parent graph.NodeID, field *ast.Field) {
	for _, name := range field.Names {
		if !b.included(name) || name.Name == "_" {
			continue
		}
		node := graph.Node{
			Kind:      graph.KindField,
			Name:      name.Name,
			Modifiers: access(name),
			Signature: graph.Signature{Type: b.text(field.Type)},
		}
		if field.Tag != nil {
			tag, err := strconv.Unquote(field.Tag.Value)
			if err != nil {
				tag = field.Tag.Value
			}
			node.Attributes = graph.Attributes{{Name: "tag", Arguments: tag}}
		}
		node.Span, node.Text = b.span(field.Pos(), field.End())
		b.builder.Add(parent, node)
	}
}

func (b *fileBuilder) interfaceMethod(parent graph.NodeID, field *ast.Field) {
	fn, ok := field.Type.(*ast.FuncType)
	if !ok {
		return
	}
	for _, name := range field.Names {
		node := graph.Node{
			Kind:      graph.KindMethod,
			Name:      name.Name,
			Modifiers: graph.Abstract | access(name),
			Signature: graph.Signature{Type: b.results(fn)},
		}
		node.Span, node.Text = b.span(field.Pos(), field.End())
		id := b.builder.Add(parent, node)
		b.params(id, fn.Params)
	}
}

func (b *fileBuilder) typeParams(parent graph.NodeID, list *ast.FieldList) {
	if list == nil {
		return
	}
	for _, field := range list.List {
		for _, name := range field.Names {
			node := graph.Node{Kind: graph.KindTypeParameter, Name: name.Name}
			node.Signature.Constraints = []string{b.text(field.Type)}
			node.Span, node.Text = b.span(name.Pos(), field.End())
			b.builder.Add(parent, node)
		}
	}
}

func (b *fileBuilder) params(parent graph.NodeID, list *ast.FieldList) {
	if list == nil {
		return
	}
	position := 0
	for _, field := range list.List {
		typ := field.Type
		var modifiers graph.Modifiers
		if ellipsis, ok := typ.(*ast.Ellipsis); ok {
			modifiers |= graph.Params
			typ = ellipsis.Elt
		}
		names := field.Names
		if len(names) == 0 {
			names = []*ast.Ident{nil}
		}
		for _, name := range names {
			node := graph.Node{
				Kind:      graph.KindParameter,
				Modifiers: modifiers,
				Signature: graph.Signature{Type: b.text(typ)},
			}
			start := field.Pos()
			if name != nil {
				node.Name = name.Name
				start = name.Pos()
			}
			if node.Name == "" || node.Name == "_" {
				node.Name = "p" + strconv.Itoa(position)
			}
			node.Span, node.Text = b.span(start, field.End())
			b.builder.Add(parent, node)
			position++
		}
	}
}

func (b *fileBuilder) results(fn *ast.FuncType) string {
	if fn.Results == nil {
		return ""
	}
	var results []string
	for _, field := range fn.Results.List {
		typ := b.text(field.Type)
		count := len(field.Names)
		if count == 0 {
			count = 1
		}
		for j := 0; j < count; j++ {
			results = append(results, typ)
		}
	}
	if len(results) == 1 {
		return results[0]
	}
	return "(" + strings.Join(results, ", ") + ")"
}

// function adds a package function or a method; methods nest under their receiver type
func (b *fileBuilder) function(namespace graph.NodeID, decl *ast.FuncDecl) {
	parent := namespace
	node := graph.Node{
		Kind:      graph.KindMethod,
		Name:      decl.Name.Name,
		Modifiers: access(decl.Name),
		Signature: graph.Signature{Type: b.results(decl.Type)},
	}
	if name := receiverName(decl); name != "" {
		if _, ok := decl.Recv.List[0].Type.(*ast.StarExpr); ok {
			node.Modifiers |= graph.Ref
		}
		parent = b.receiverType(namespace, name)
	} else {
		node.Modifiers |= graph.Static
	}
	node.Span, node.Text = b.span(decl.Pos(), decl.End())
	if decl.Body != nil {
		node.BodySpan, node.Body = b.span(decl.Body.Pos(), decl.Body.End())
	}
	id := b.builder.Add(parent, node)
	b.typeParams(id, decl.Type.TypeParams)
	b.params(id, decl.Type.Params)
	if decl.Body != nil && !b.config.SkipBodies {
		b.statements(id, decl.Body.List)
	}
}

// receiverType returns the type node of a receiver, adding a partial part when the type is
// declared in another file
func (b *fileBuilder) receiverType(namespace graph.NodeID, name string) graph.NodeID {
	if id, ok := b.types[name]; ok {
		return id
	}
	node := graph.Node{
		Kind:      graph.KindType,
		Name:      name,
		Modifiers: graph.Partial | accessOf(name),
		Span:      b.extents[name],
	}
	node.Text = b.slice(node.Span)
	id := b.builder.Add(namespace, node)
	b.types[name] = id
	return id
}

// values adds package level variables and constants as static fields of the package
func (b *fileBuilder) values(namespace graph.NodeID, decl *ast.GenDecl) {
	for _, spec := range decl.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		for j, name := range vs.Names {
			if name.Name == "_" || !b.included(name) {
				continue
			}
			node := graph.Node{Kind: graph.KindField, Name: name.Name, Modifiers: access(name)}
			if decl.Tok == token.CONST {
				node.Modifiers |= graph.Const
			} else {
				node.Modifiers |= graph.Static
			}
			if vs.Type != nil {
				node.Signature.Type = b.text(vs.Type)
			}
			var value ast.Expr
			if j < len(vs.Values) {
				value = vs.Values[j]
				node.InitializerSpan, node.Initializer = b.span(value.Pos(), value.End())
			}
			node.Span, node.Text = b.span(b.specStart(decl, vs), vs.End())
			id := b.builder.Add(namespace, node)
			if value != nil && !b.config.SkipBodies {
				b.lambdas(id, value)
			}
		}
	}
}

func (b *fileBuilder) included(name *ast.Ident) bool {
	return b.config.IncludeUnexported || name.IsExported()
}

func access(name *ast.Ident) graph.Modifiers {
	return accessOf(name.Name)
}

func accessOf(name string) graph.Modifiers {
	if token.IsExported(name) {
		return graph.Public
	}
	return graph.Internal
}

// receiverName returns the base type name of a method receiver
func receiverName(decl *ast.FuncDecl) string {
	if decl.Recv == nil || len(decl.Recv.List) == 0 {
		return ""
	}
	expr := decl.Recv.List[0].Type
	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X
		case *ast.ParenExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.Ident:
			return e.Name
		default:
			return ""
		}
	}
}

func (b *fileBuilder) offset(pos token.Pos) uint32 {
	value, err := safecast.Conv[uint32](b.fset.Position(pos).Offset)
	if err != nil && b.err == nil {
		b.err = err
	}
	return value
}

func (b *fileBuilder) span(pos, end token.Pos) (graph.Span, string) {
	span := graph.Span{Start: b.offset(pos), End: b.offset(end)}
	return span, b.slice(span)
}

func (b *fileBuilder) slice(span graph.Span) string {
	if span.IsEmpty() || int(span.End) > len(b.src) {
		return ""
	}
	return string(b.src[span.Start:span.End])
}

// text returns the normalized source text of an expression
func (b *fileBuilder) text(node ast.Node) string {
	_, text := b.span(node.Pos(), node.End())
	return strings.Join(strings.Fields(text), " ")
}
