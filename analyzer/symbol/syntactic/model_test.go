package syntactic_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/hotedit/analyzer/symbol"
	"github.com/viant/hotedit/analyzer/symbol/syntactic"
	"github.com/viant/hotedit/inspector/graph"
	gt "github.com/viant/hotedit/inspector/graph/graphtest"
)

func find(tree *graph.Tree, kind graph.Kind, name string) *graph.Node {
	for _, node := range tree.Nodes() {
		if node.Kind == kind && node.Name == name {
			return node
		}
	}
	return nil
}

func TestID(t *testing.T) {
	tree := gt.Doc("a.cs", gt.Namespace("N",
		gt.Class("C",
			gt.Field("f", "int"),
			gt.Method("M", "void", gt.Param("a", "int"), gt.Param("b", "string")),
			gt.Method("G", "void", gt.TypeParam("T")),
			gt.Constructor(gt.Param("a", "int")),
			gt.StaticConstructor(),
			gt.Property("P", "int", gt.Accessor("get"), gt.Accessor("set")),
			gt.Event("E", "Action"),
		),
	)).Tree()

	var testCases = []struct {
		description string
		kind        graph.Kind
		name        string
		expect      string
	}{
		{description: "type", kind: graph.KindType, name: "C", expect: "T:N.C"},
		{description: "field", kind: graph.KindField, name: "f", expect: "F:N.C.f"},
		{description: "method", kind: graph.KindMethod, name: "M", expect: "M:N.C.M(int,string)"},
		{description: "generic method", kind: graph.KindMethod, name: "G", expect: "M:N.C.G`1"},
		{description: "constructor", kind: graph.KindConstructor, name: ".ctor", expect: "M:N.C.#ctor(int)"},
		{description: "static constructor", kind: graph.KindConstructor, name: ".cctor", expect: "M:N.C.#cctor"},
		{description: "property", kind: graph.KindProperty, name: "P", expect: "P:N.C.P"},
		{description: "accessor", kind: graph.KindAccessor, name: "set", expect: "M:N.C.set_P"},
		{description: "event", kind: graph.KindEvent, name: "E", expect: "E:N.C.E"},
		{description: "namespace", kind: graph.KindNamespace, name: "N", expect: "N:N"},
	}
	for _, testCase := range testCases {
		node := find(tree, testCase.kind, testCase.name)
		require.NotNil(t, node, testCase.description)
		actual, ok := syntactic.ID(node)
		assert.True(t, ok, testCase.description)
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
	_, ok := syntactic.ID(find(tree, graph.KindParameter, "a"))
	assert.False(t, ok)
}

func TestModel_Symbol(t *testing.T) {
	ctx := context.Background()
	trees := gt.Trees(
		gt.Doc("a.cs", gt.Class("C", gt.Method("M", "void")).With(graph.Partial)),
		gt.Doc("b.cs", gt.Class("C", gt.Field("f", "int")).With(graph.Partial)),
		gt.Doc("c.cs", gt.Class("D", gt.Method("M", "void"), gt.Method("M", "void"))),
	)
	model := syntactic.New(trees...)

	partA := find(trees[0], graph.KindType, "C")
	partB := find(trees[1], graph.KindType, "C")
	first, err := model.Symbol(ctx, partA)
	require.NoError(t, err)
	second, err := model.Symbol(ctx, partB)
	require.NoError(t, err)
	assert.EqualValues(t, first.ID, second.ID)

	field, err := model.Symbol(ctx, find(trees[1], graph.KindField, "f"))
	require.NoError(t, err)
	assert.EqualValues(t, "F:C.f", field.ID)
	assert.EqualValues(t, "C", field.Container)

	_, err = model.Symbol(ctx, find(trees[2], graph.KindMethod, "M"))
	assert.ErrorIs(t, err, symbol.ErrAmbiguous)
	assert.Len(t, model.Errors(ctx, "c.cs"), 1)
	assert.Empty(t, model.Errors(ctx, "a.cs"))

	foreign := gt.Doc("x.cs", gt.Class("X")).Tree()
	_, err = model.Symbol(ctx, find(foreign, graph.KindType, "X"))
	assert.ErrorIs(t, err, symbol.ErrUnresolved)
}

func TestModel_Constructors(t *testing.T) {
	ctx := context.Background()
	trees := gt.Trees(gt.Doc("a.cs",
		gt.Class("Implicit", gt.Field("f", "int").Init("1")),
		gt.Class("Explicit", gt.Constructor(), gt.Constructor(gt.Param("a", "int"))),
		gt.Class("Static", gt.Field("s", "int").With(graph.Static).Init("1")),
		gt.Interface("I"),
		gt.Class("Holder").With(graph.Static),
	))
	model := syntactic.New(trees...)
	tree := trees[0]

	var testCases = []struct {
		description string
		typeName    string
		static      bool
		expect      []string
		implicit    bool
	}{
		{description: "implicit instance constructor", typeName: "Implicit", expect: []string{"M:Implicit.#ctor"}, implicit: true},
		{description: "declared constructors", typeName: "Explicit", expect: []string{"M:Explicit.#ctor", "M:Explicit.#ctor(int)"}},
		{description: "implicit static constructor", typeName: "Static", static: true, expect: []string{"M:Static.#cctor"}, implicit: true},
		{description: "no static constructor without initializers", typeName: "Implicit", static: true},
		{description: "interface", typeName: "I"},
		{description: "static class", typeName: "Holder"},
	}
	for _, testCase := range testCases {
		symbols, err := model.Constructors(ctx, find(tree, graph.KindType, testCase.typeName), testCase.static)
		require.NoError(t, err, testCase.description)
		var ids []string
		for _, s := range symbols {
			ids = append(ids, s.ID)
			assert.EqualValues(t, testCase.implicit, s.Implicit, testCase.description)
		}
		assert.EqualValues(t, testCase.expect, ids, testCase.description)
	}
}

func TestModel_EntryPoint(t *testing.T) {
	ctx := context.Background()
	withStatements := syntactic.New(gt.Trees(gt.Doc("p.cs", gt.TopLevel("run();")))...)
	entry, err := withStatements.EntryPoint(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, syntactic.EntryPointID, entry.ID)
	assert.True(t, entry.Implicit)

	withMain := syntactic.New(gt.Trees(gt.Doc("p.cs", gt.Class("Program", gt.Method("Main", "void").With(graph.Static))))...)
	entry, err = withMain.EntryPoint(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, "M:Program.Main", entry.ID)

	_, err = syntactic.New(gt.Trees(gt.Doc("p.cs", gt.Class("C")))...).EntryPoint(ctx)
	assert.ErrorIs(t, err, symbol.ErrUnresolved)
}
