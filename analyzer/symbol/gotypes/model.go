// Package gotypes implements a symbol model backed by go/types package information.
package gotypes

import (
	"context"
	"fmt"
	"go/ast"
	"go/types"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viant/hotedit/analyzer/symbol"
	"github.com/viant/hotedit/inspector/graph"
	"golang.org/x/tools/go/packages"
)

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedSyntax

// Model resolves Go declarations to type checker objects
type Model struct {
	dir    string
	files  map[string]*packages.Package
	errors map[string][]string
	main   *packages.Package
}

// Load type checks packages matching patterns (./... by default) under dir
func Load(ctx context.Context, dir string, patterns ...string) (*Model, error) {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}
	cfg := &packages.Config{Context: ctx, Dir: dir, Mode: loadMode, Tests: false}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages from %v: %w", dir, err)
	}
	return New(dir, pkgs), nil
}

// New indexes loaded packages by document path relative to dir
func New(dir string, pkgs []*packages.Package) *Model {
	ret := &Model{dir: dir, files: map[string]*packages.Package{}, errors: map[string][]string{}}
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		if !ret.local(pkg) {
			return
		}
		for _, file := range append(append([]string{}, pkg.GoFiles...), pkg.CompiledGoFiles...) {
			ret.files[ret.relative(file)] = pkg
		}
		for _, e := range pkg.Errors {
			location := e.Pos
			if index := strings.Index(location, ":"); index != -1 {
				location = location[:index]
			}
			key := ret.relative(location)
			ret.errors[key] = append(ret.errors[key], e.Msg)
		}
		if pkg.Name == "main" && pkg.Types != nil && ret.main == nil {
			ret.main = pkg
		}
	})
	return ret
}

func (m *Model) local(pkg *packages.Package) bool {
	for _, file := range pkg.GoFiles {
		if !strings.HasPrefix(m.relative(file), "..") {
			return true
		}
	}
	return false
}

func (m *Model) relative(file string) string {
	if file == "" || !filepath.IsAbs(file) {
		return filepath.ToSlash(file)
	}
	rel, err := filepath.Rel(m.dir, file)
	if err != nil {
		return filepath.ToSlash(file)
	}
	return filepath.ToSlash(rel)
}

func (m *Model) packageOf(path string) (*packages.Package, error) {
	pkg, ok := m.files[m.relative(path)]
	if !ok || pkg.Types == nil {
		return nil, fmt.Errorf("%w: no package for %v", symbol.ErrUnresolved, path)
	}
	return pkg, nil
}

// Symbol resolves a Go package, type, function, method, variable or struct field
func (m *Model) Symbol(ctx context.Context, node *graph.Node) (*symbol.Symbol, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pkg, err := m.packageOf(node.Path())
	if err != nil {
		return nil, err
	}
	if node.Kind == graph.KindNamespace {
		return &symbol.Symbol{ID: "N:" + pkg.PkgPath, Kind: node.Kind, Name: pkg.Name}, nil
	}
	object, err := m.lookup(pkg, node)
	if err != nil {
		return nil, err
	}
	return newSymbol(pkg, node, object), nil
}

func (m *Model) lookup(pkg *packages.Package, node *graph.Node) (types.Object, error) {
	scope := pkg.Types.Scope()
	owner := node.ContainingType()
	if owner == nil {
		if node.Kind == graph.KindMethod && node.Name == "init" {
			return initFunc(pkg, node)
		}
		object := scope.Lookup(node.Name)
		if object == nil || !compatible(node.Kind, object) {
			return nil, fmt.Errorf("%w: %v", symbol.ErrUnresolved, node)
		}
		return object, nil
	}
	typeName, ok := scope.Lookup(owner.Name).(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("%w: %v", symbol.ErrUnresolved, owner)
	}
	if node.Kind == graph.KindType {
		return nil, fmt.Errorf("%w: nested type %v", symbol.ErrUnresolved, node)
	}
	object, index, _ := types.LookupFieldOrMethod(typeName.Type(), true, pkg.Types, node.Name)
	if object == nil {
		if index != nil {
			return nil, fmt.Errorf("%w: %v promoted at depth %d", symbol.ErrAmbiguous, node, len(index))
		}
		return nil, fmt.Errorf("%w: %v", symbol.ErrUnresolved, node)
	}
	if !compatible(node.Kind, object) {
		return nil, fmt.Errorf("%w: %v resolved to %v", symbol.ErrUnresolved, node, object)
	}
	return object, nil
}

// initFunc resolves a package init func; init is never declared in the package scope
func initFunc(pkg *packages.Package, node *graph.Node) (types.Object, error) {
	if pkg.TypesInfo == nil {
		return nil, fmt.Errorf("%w: %v", symbol.ErrUnresolved, node)
	}
	var result []types.Object
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv != nil || fn.Name.Name != "init" {
				continue
			}
			if object := pkg.TypesInfo.Defs[fn.Name]; object != nil {
				result = append(result, object)
			}
		}
	}
	switch len(result) {
	case 0:
		return nil, fmt.Errorf("%w: %v", symbol.ErrUnresolved, node)
	case 1:
		return result[0], nil
	}
	return nil, fmt.Errorf("%w: %v has %d definitions", symbol.ErrAmbiguous, node, len(result))
}

func compatible(kind graph.Kind, object types.Object) bool {
	switch object.(type) {
	case *types.TypeName:
		return kind == graph.KindType
	case *types.Func:
		return kind == graph.KindMethod
	case *types.Var, *types.Const:
		return kind == graph.KindField
	}
	return false
}

func newSymbol(pkg *packages.Package, node *graph.Node, object types.Object) *symbol.Symbol {
	container := pkg.PkgPath
	if owner := node.ContainingType(); owner != nil {
		container += "." + owner.Name
	}
	prefix := "F:"
	switch object.(type) {
	case *types.TypeName:
		prefix = "T:"
	case *types.Func:
		prefix = "M:"
	}
	_, isConst := object.(*types.Const)
	variable, isVar := object.(*types.Var)
	return &symbol.Symbol{
		ID:        prefix + container + "." + object.Name(),
		Kind:      node.Kind,
		Name:      object.Name(),
		Container: container,
		Static:    isConst || (isVar && !variable.IsField()),
	}
}

// Constructors returns the package initializer for static storage; Go types have no constructors
func (m *Model) Constructors(ctx context.Context, container *graph.Node, static bool) ([]*symbol.Symbol, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !static {
		return nil, nil
	}
	pkg, err := m.packageOf(container.Path())
	if err != nil {
		return nil, err
	}
	return []*symbol.Symbol{{
		ID:        "M:" + pkg.PkgPath + ".init",
		Kind:      graph.KindConstructor,
		Name:      "init",
		Container: pkg.PkgPath,
		Static:    true,
		Implicit:  true,
	}}, nil
}

// EntryPoint returns func main of the main package
func (m *Model) EntryPoint(ctx context.Context) (*symbol.Symbol, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.main == nil {
		return nil, fmt.Errorf("%w: no main package", symbol.ErrUnresolved)
	}
	if _, ok := m.main.Types.Scope().Lookup("main").(*types.Func); !ok {
		return nil, fmt.Errorf("%w: func main", symbol.ErrUnresolved)
	}
	return &symbol.Symbol{ID: "M:" + m.main.PkgPath + ".main", Kind: graph.KindMethod, Name: "main", Container: m.main.PkgPath, Static: true}, nil
}

// Errors returns type checker errors reported for the document
func (m *Model) Errors(ctx context.Context, path string) []string {
	result := append([]string{}, m.errors[m.relative(path)]...)
	sort.Strings(result)
	return result
}
