package match_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/hotedit/analyzer/match"
	"github.com/viant/hotedit/inspector/graph"
	gt "github.com/viant/hotedit/inspector/graph/graphtest"
)

func find(tree *graph.Tree, qualified string, kind graph.Kind) *graph.Node {
	for _, node := range tree.Nodes() {
		if node.Kind == kind && node.QualifiedName() == qualified {
			return node
		}
	}
	return nil
}

func declarations(tree *graph.Tree) int {
	count := 0
	for _, node := range tree.Nodes() {
		if !node.Kind.IsBody() {
			count++
		}
	}
	return count
}

func TestCompute_Identity(t *testing.T) {
	doc := func() *gt.Document {
		return gt.Doc("a.cs",
			gt.Import("System"),
			gt.Namespace("N",
				gt.Class("C",
					gt.Field("x", "int").Init("1"),
					gt.Method("M", "void", gt.Param("a", "int")).Body(gt.Stmt("a++;")),
					gt.Method("M", "void", gt.Param("s", "string")).Body(gt.Stmt("print(s);")),
					gt.Property("P", "int", gt.Accessor("get").Body(gt.Stmt("return x;"))),
				),
			),
		)
	}
	old, new := doc().Tree(), doc().Tree()
	m, err := match.Compute(context.Background(), []*graph.Tree{old}, []*graph.Tree{new})
	require.NoError(t, err)
	assert.Equal(t, declarations(old), m.Len())
	for _, pair := range m.Pairs() {
		assert.Equal(t, pair[0].Ordinal(), pair[1].Ordinal())
		assert.False(t, m.IsRelocated(pair[0], pair[1]))
	}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name   string
		old    []*gt.Document
		new    []*gt.Document
		verify func(t *testing.T, m *match.Match)
	}{
		{
			name: "body change keeps method matched",
			old:  []*gt.Document{gt.Doc("a.cs", gt.Class("C", gt.Method("M", "void").Body(gt.Stmt("a();"))))},
			new:  []*gt.Document{gt.Doc("a.cs", gt.Class("C", gt.Method("M", "void").Body(gt.Stmt("b();"))))},
			verify: func(t *testing.T, m *match.Match) {
				old := find(m.Old()[0], "C.M", graph.KindMethod)
				new := find(m.New()[0], "C.M", graph.KindMethod)
				assert.Equal(t, new, m.NewOf(old))
			},
		},
		{
			name: "parameter insert matches method by name",
			old:  []*gt.Document{gt.Doc("a.cs", gt.Class("C", gt.Method("M", "void", gt.Param("a", "int"))))},
			new:  []*gt.Document{gt.Doc("a.cs", gt.Class("C", gt.Method("M", "void", gt.Param("a", "int"), gt.Param("b", "string"))))},
			verify: func(t *testing.T, m *match.Match) {
				old := find(m.Old()[0], "C.M", graph.KindMethod)
				new := find(m.New()[0], "C.M", graph.KindMethod)
				assert.Equal(t, new, m.NewOf(old))
				assert.Equal(t, find(m.New()[0], "C.M.a", graph.KindParameter), m.NewOf(find(m.Old()[0], "C.M.a", graph.KindParameter)))
				assert.Nil(t, m.OldOf(find(m.New()[0], "C.M.b", graph.KindParameter)))
			},
		},
		{
			name: "renamed parameter matches by position",
			old:  []*gt.Document{gt.Doc("a.cs", gt.Class("C", gt.Method("M", "void", gt.Param("a", "int"))))},
			new:  []*gt.Document{gt.Doc("a.cs", gt.Class("C", gt.Method("M", "void", gt.Param("b", "int"))))},
			verify: func(t *testing.T, m *match.Match) {
				assert.Equal(t, find(m.New()[0], "C.M.b", graph.KindParameter), m.NewOf(find(m.Old()[0], "C.M.a", graph.KindParameter)))
			},
		},
		{
			name: "overloads match by parameter types",
			old: []*gt.Document{gt.Doc("a.cs", gt.Class("C",
				gt.Method("M", "void", gt.Param("a", "int")),
				gt.Method("M", "void", gt.Param("a", "string")),
			))},
			new: []*gt.Document{gt.Doc("a.cs", gt.Class("C",
				gt.Method("M", "void", gt.Param("a", "string")),
				gt.Method("M", "void", gt.Param("a", "int")),
			))},
			verify: func(t *testing.T, m *match.Match) {
				oldMethods := find(m.Old()[0], "C", graph.KindType).ChildrenOf(graph.KindMethod)
				newMethods := find(m.New()[0], "C", graph.KindType).ChildrenOf(graph.KindMethod)
				assert.Equal(t, newMethods[1], m.NewOf(oldMethods[0]))
				assert.Equal(t, newMethods[0], m.NewOf(oldMethods[1]))
			},
		},
		{
			name: "type moved out of namespace is relocated",
			old:  []*gt.Document{gt.Doc("a.cs", gt.Namespace("N", gt.Class("C", gt.Method("M", "void"))))},
			new:  []*gt.Document{gt.Doc("a.cs", gt.Class("C", gt.Method("M", "void")))},
			verify: func(t *testing.T, m *match.Match) {
				old := find(m.Old()[0], "N.C", graph.KindType)
				new := find(m.New()[0], "C", graph.KindType)
				require.Equal(t, new, m.NewOf(old))
				assert.True(t, m.IsRelocated(old, new))
				assert.NotNil(t, m.NewOf(find(m.Old()[0], "N.C.M", graph.KindMethod)))
				assert.Nil(t, m.NewOf(find(m.Old()[0], "N", graph.KindNamespace)))
			},
		},
		{
			name: "type relocated between documents keeps scope",
			old: []*gt.Document{
				gt.Doc("a.cs", gt.Namespace("N", gt.Class("C"))),
				gt.Doc("b.cs", gt.Namespace("N")),
			},
			new: []*gt.Document{
				gt.Doc("a.cs", gt.Namespace("N")),
				gt.Doc("b.cs", gt.Namespace("N", gt.Class("C"))),
			},
			verify: func(t *testing.T, m *match.Match) {
				old := find(m.Old()[0], "N.C", graph.KindType)
				new := find(m.New()[1], "N.C", graph.KindType)
				require.Equal(t, new, m.NewOf(old))
				assert.False(t, m.IsRelocated(old, new))
			},
		},
		{
			name: "partial members match across documents",
			old: []*gt.Document{
				gt.Doc("a.cs", gt.Class("C", gt.Method("M", "void"), gt.Field("f", "int")).With(graph.Partial)),
			},
			new: []*gt.Document{
				gt.Doc("a.cs", gt.Class("C", gt.Field("f", "int")).With(graph.Partial)),
				gt.Doc("b.cs", gt.Class("C", gt.Method("M", "void")).With(graph.Partial)),
			},
			verify: func(t *testing.T, m *match.Match) {
				old := find(m.Old()[0], "C.M", graph.KindMethod)
				new := find(m.New()[1], "C.M", graph.KindMethod)
				assert.Equal(t, new, m.NewOf(old))
				oldType := find(m.Old()[0], "C", graph.KindType)
				entity := m.Entity(oldType)
				require.NotNil(t, entity)
				assert.Len(t, entity.Old, 1)
				assert.Len(t, entity.New, 2)
				assert.Len(t, m.Counterparts(oldType), 2)
				assert.Nil(t, m.OldOf(find(m.New()[1], "C", graph.KindType)))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := match.Compute(context.Background(), gt.Trees(tc.old...), gt.Trees(tc.new...))
			require.NoError(t, err)
			tc.verify(t, m)
		})
	}
}

func TestCompute_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	doc := gt.Doc("a.cs", gt.Class("C"))
	_, err := match.Compute(ctx, gt.Trees(doc), gt.Trees(doc))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestBodies(t *testing.T) {
	old := gt.Doc("a.cs", gt.Class("C", gt.Method("M", "void").Body(
		gt.Stmt("a();"),
		gt.Stmt("b();"),
		gt.Stmt("if (x)", gt.Stmt("c();")),
	))).Tree()
	new := gt.Doc("a.cs", gt.Class("C", gt.Method("M", "void").Body(
		gt.Stmt("a();"),
		gt.Stmt("inserted();"),
		gt.Stmt("b();"),
		gt.Stmt("if (x)", gt.Stmt("d();")),
	))).Tree()
	oldMethod := find(old, "C.M", graph.KindMethod)
	newMethod := find(new, "C.M", graph.KindMethod)

	bodies := match.Bodies(oldMethod, newMethod)
	oldStmts, newStmts := oldMethod.BodyNodes(), newMethod.BodyNodes()
	assert.Equal(t, newStmts[0], bodies.NewOf(oldStmts[0]))
	assert.Equal(t, newStmts[2], bodies.NewOf(oldStmts[1]))
	assert.Equal(t, newStmts[3], bodies.NewOf(oldStmts[2]))
	assert.Equal(t, newStmts[3].BodyNodes()[0], bodies.NewOf(oldStmts[2].BodyNodes()[0]))
	assert.Nil(t, bodies.OldOf(newStmts[1]))
	assert.True(t, bodies.BodyChanged())

	syntaxMap := bodies.SyntaxMap()
	path, mapped, ok := syntaxMap.Old(newMethod.Path(), newStmts[2].Span)
	require.True(t, ok)
	assert.Equal(t, oldMethod.Path(), path)
	assert.Equal(t, oldStmts[1].Span, mapped)
	_, mapped, ok = syntaxMap.Old(newMethod.Path(), newStmts[1].Span)
	require.True(t, ok)
	assert.True(t, oldMethod.BodySpan.Contains(mapped))
	_, _, ok = syntaxMap.Old("other.cs", newStmts[2].Span)
	assert.False(t, ok)
}
