package gotypes_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/hotedit/analyzer/symbol"
	"github.com/viant/hotedit/analyzer/symbol/gotypes"
	"github.com/viant/hotedit/inspector/graph"
)

const source = `package main

var counter = 1

type Service struct {
	Name string
}

func (s *Service) Run() {}

type Left struct {
	ID int
}

type Right struct {
	ID int
}

type Pair struct {
	Left
	Right
}

func init() {
	counter = 2
}

func main() {}
`

func writeModule(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/app\n\ngo 1.21\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte(source), 0o644))
	return dir
}

// declarations mirrors the shape produced by the Go inspector
func declarations() (*graph.Tree, map[string]*graph.Node) {
	builder := graph.NewBuilder("main.go", source)
	pkg := builder.Add(builder.Root(), graph.Node{Kind: graph.KindNamespace, Name: "main"})
	builder.Add(pkg, graph.Node{Kind: graph.KindField, Name: "counter", Modifiers: graph.Static})
	typ := builder.Add(pkg, graph.Node{Kind: graph.KindType, TypeKind: graph.TypeKindStruct, Name: "Service", Modifiers: graph.Partial})
	builder.Add(typ, graph.Node{Kind: graph.KindField, Name: "Name"})
	builder.Add(typ, graph.Node{Kind: graph.KindMethod, Name: "Run"})
	builder.Add(typ, graph.Node{Kind: graph.KindMethod, Name: "Missing"})
	pair := builder.Add(pkg, graph.Node{Kind: graph.KindType, TypeKind: graph.TypeKindStruct, Name: "Pair", Modifiers: graph.Partial})
	builder.Add(pair, graph.Node{Kind: graph.KindField, Name: "ID"})
	builder.Add(pkg, graph.Node{Kind: graph.KindMethod, Name: "init", Modifiers: graph.Static})
	builder.Add(pkg, graph.Node{Kind: graph.KindMethod, Name: "main", Modifiers: graph.Static})
	tree := builder.Build()
	nodes := map[string]*graph.Node{}
	for _, node := range tree.Nodes() {
		nodes[node.Name] = node
	}
	return tree, nodes
}

func TestModel(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}
	ctx := context.Background()
	model, err := gotypes.Load(ctx, writeModule(t))
	require.NoError(t, err)
	_, nodes := declarations()

	var testCases = []struct {
		description string
		name        string
		expect      string
		static      bool
	}{
		{description: "package variable", name: "counter", expect: "F:example.com/app.counter", static: true},
		{description: "type", name: "Service", expect: "T:example.com/app.Service"},
		{description: "struct field", name: "Name", expect: "F:example.com/app.Service.Name"},
		{description: "method", name: "Run", expect: "M:example.com/app.Service.Run"},
		{description: "function", name: "main", expect: "M:example.com/app.main"},
		{description: "package init", name: "init", expect: "M:example.com/app.init"},
	}
	for _, testCase := range testCases {
		actual, err := model.Symbol(ctx, nodes[testCase.name])
		require.NoError(t, err, testCase.description)
		assert.EqualValues(t, testCase.expect, actual.ID, testCase.description)
		assert.EqualValues(t, testCase.static, actual.Static, testCase.description)
	}

	_, err = model.Symbol(ctx, nodes["Missing"])
	assert.ErrorIs(t, err, symbol.ErrUnresolved)
	_, err = model.Symbol(ctx, nodes["ID"])
	assert.ErrorIs(t, err, symbol.ErrAmbiguous)

	ctors, err := model.Constructors(ctx, nodes["main"].Parent(), true)
	require.NoError(t, err)
	require.Len(t, ctors, 1)
	assert.EqualValues(t, "M:example.com/app.init", ctors[0].ID)
	assert.True(t, ctors[0].Implicit)

	entry, err := model.EntryPoint(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, "M:example.com/app.main", entry.ID)
	assert.Empty(t, model.Errors(ctx, "main.go"))
}
