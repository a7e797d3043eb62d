package semantic_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/hotedit/analyzer/capability"
	"github.com/viant/hotedit/analyzer/edit"
	"github.com/viant/hotedit/analyzer/match"
	"github.com/viant/hotedit/analyzer/rude"
	"github.com/viant/hotedit/analyzer/semantic"
	"github.com/viant/hotedit/analyzer/symbol"
	"github.com/viant/hotedit/analyzer/symbol/syntactic"
	"github.com/viant/hotedit/inspector/graph"
	gt "github.com/viant/hotedit/inspector/graph/graphtest"
)

// summary is a path independent rendering of a semantic edit
type summary struct {
	Kind     semantic.Kind
	ID       string
	Preserve bool
	Partial  string
}

func synthesize(t *testing.T, old, new []*gt.Document, caps capability.Set) ([]*semantic.Edit, error) {
	t.Helper()
	ctx := context.Background()
	oldTrees, newTrees := gt.Trees(old...), gt.Trees(new...)
	m, err := match.Compute(ctx, oldTrees, newTrees)
	require.NoError(t, err)
	scripts, err := edit.Build(ctx, m)
	require.NoError(t, err)
	correlator := symbol.NewCorrelator(syntactic.New(oldTrees...), syntactic.New(newTrees...))
	var lists [][]*semantic.Edit
	for _, script := range scripts {
		analyzed, err := rude.Analyze(ctx, m, script, caps)
		require.NoError(t, err)
		require.Empty(t, analyzed.Diagnostics, "%v", analyzed.Diagnostics)
		edits, err := semantic.Synthesize(ctx, m, analyzed, script.Path, correlator)
		if err != nil {
			return nil, err
		}
		lists = append(lists, edits)
	}
	return semantic.Merge(lists...), nil
}

func summarize(edits []*semantic.Edit) []summary {
	var result []summary
	for _, e := range edits {
		result = append(result, summary{Kind: e.Kind, ID: e.Symbol().ID, Preserve: e.PreserveLocalVariables, Partial: e.PartialType})
	}
	return result
}

func doc(decls ...*gt.Decl) []*gt.Document {
	return []*gt.Document{gt.Doc("a.cs", decls...)}
}

func TestSynthesize(t *testing.T) {
	var testCases = []struct {
		description string
		old         []*gt.Document
		new         []*gt.Document
		caps        capability.Set
		expect      []summary
	}{
		{
			description: "body update preserves locals",
			old:         doc(gt.Class("C", gt.Method("M", "int").Body(gt.Stmt("return 1;")))),
			new:         doc(gt.Class("C", gt.Method("M", "int").Body(gt.Stmt("return 2;")))),
			caps:        capability.Baseline,
			expect:      []summary{{Kind: semantic.Update, ID: "M:C.M", Preserve: true}},
		},
		{
			description: "field initializer updates every constructor",
			old:         doc(gt.Class("C", gt.Field("a", "int"), gt.Constructor(), gt.Constructor(gt.Param("x", "int")))),
			new:         doc(gt.Class("C", gt.Field("a", "int").Init("1"), gt.Constructor(), gt.Constructor(gt.Param("x", "int")))),
			caps:        capability.Baseline,
			expect: []summary{
				{Kind: semantic.Update, ID: "M:C.#ctor", Preserve: true},
				{Kind: semantic.Update, ID: "M:C.#ctor(int)", Preserve: true},
			},
		},
		{
			description: "field initializer updates implicit constructor",
			old:         doc(gt.Class("C", gt.Field("a", "int"))),
			new:         doc(gt.Class("C", gt.Field("a", "int").Init("1"))),
			caps:        capability.Baseline,
			expect:      []summary{{Kind: semantic.Update, ID: "M:C.#ctor", Preserve: true}},
		},
		{
			description: "inserted members precede constructor updates",
			old:         doc(gt.Class("C", gt.Method("M", "void"))),
			new:         doc(gt.Class("C", gt.Field("f", "int").Init("1"), gt.Method("M", "void"), gt.Method("N", "void"))),
			caps:        capability.All,
			expect: []summary{
				{Kind: semantic.Insert, ID: "F:C.f"},
				{Kind: semantic.Insert, ID: "M:C.N"},
				{Kind: semantic.Update, ID: "M:C.#ctor", Preserve: true},
			},
		},
		{
			description: "static initializer inserts type initializer",
			old:         doc(gt.Class("C")),
			new:         doc(gt.Class("C", gt.Field("s", "int").With(graph.Static).Init("1"))),
			caps:        capability.All,
			expect: []summary{
				{Kind: semantic.Insert, ID: "F:C.s"},
				{Kind: semantic.Insert, ID: "M:C.#cctor"},
			},
		},
		{
			description: "inserted type folds its members",
			old:         doc(gt.Namespace("N", gt.Class("C"))),
			new:         doc(gt.Namespace("N", gt.Class("C"), gt.Class("D", gt.Method("M", "void"), gt.Field("f", "int").Init("1")))),
			caps:        capability.All,
			expect:      []summary{{Kind: semantic.Insert, ID: "T:N.D"}},
		},
		{
			description: "declared parameterless constructor replaces implicit one",
			old:         doc(gt.Class("C")),
			new:         doc(gt.Class("C", gt.Constructor().Body(gt.Stmt("init();")))),
			caps:        capability.All,
			expect:      []summary{{Kind: semantic.Update, ID: "M:C.#ctor", Preserve: true}},
		},
		{
			description: "accessors are updated with their property",
			old:         doc(gt.Class("C", gt.Property("P", "int", gt.Accessor("get"), gt.Accessor("set")))),
			new:         doc(gt.Class("C", gt.Property("P", "int", gt.Accessor("get"), gt.Accessor("set")).Attr("Obsolete", ""))),
			caps:        capability.All,
			expect: []summary{
				{Kind: semantic.Update, ID: "P:C.P"},
				{Kind: semantic.Update, ID: "M:C.get_P"},
				{Kind: semantic.Update, ID: "M:C.set_P"},
			},
		},
		{
			description: "parameter rename updates the method",
			old:         doc(gt.Class("C", gt.Method("M", "void", gt.Param("a", "int")))),
			new:         doc(gt.Class("C", gt.Method("M", "void", gt.Param("b", "int")))),
			caps:        capability.All,
			expect:      []summary{{Kind: semantic.Update, ID: "M:C.M(int)"}},
		},
		{
			description: "method delete",
			old:         doc(gt.Class("C", gt.Method("M", "void"), gt.Method("N", "void"))),
			new:         doc(gt.Class("C", gt.Method("M", "void"))),
			caps:        capability.All,
			expect:      []summary{{Kind: semantic.Delete, ID: "M:C.N"}},
		},
		{
			description: "top-level statements update the entry point",
			old:         doc(gt.TopLevel("a();")),
			new:         doc(gt.TopLevel("b();")),
			caps:        capability.Baseline,
			expect:      []summary{{Kind: semantic.Update, ID: syntactic.EntryPointID, Preserve: true}},
		},
		{
			description: "member relocated between partial parts",
			old: []*gt.Document{
				gt.Doc("a.cs", gt.Class("C", gt.Method("M", "void").Body(gt.Stmt("a();"))).With(graph.Partial)),
				gt.Doc("b.cs", gt.Class("C", gt.Field("f", "int")).With(graph.Partial)),
			},
			new: []*gt.Document{
				gt.Doc("a.cs", gt.Class("C").With(graph.Partial)),
				gt.Doc("b.cs", gt.Class("C", gt.Field("f", "int"), gt.Method("M", "void").Body(gt.Stmt("a();"))).With(graph.Partial)),
			},
			caps: capability.Baseline,
		},
	}
	for _, testCase := range testCases {
		edits, err := synthesize(t, testCase.old, testCase.new, testCase.caps)
		require.NoError(t, err, testCase.description)
		assert.EqualValues(t, testCase.expect, summarize(edits), testCase.description)
	}
}

func TestSynthesize_BodySyntaxMap(t *testing.T) {
	edits, err := synthesize(t,
		doc(gt.Class("C", gt.Method("M", "int").Body(gt.Stmt("a();"), gt.Stmt("return 1;")))),
		doc(gt.Class("C", gt.Method("M", "int").Body(gt.Stmt("b();"), gt.Stmt("a();"), gt.Stmt("return 1;")))),
		capability.Baseline)
	require.NoError(t, err)
	require.Len(t, edits, 1)
	syntaxMap := edits[0].SyntaxMap
	require.NotNil(t, syntaxMap)
	assert.True(t, syntaxMap.Len() >= 3)
	for _, pair := range syntaxMap.Pairs {
		path, old, ok := syntaxMap.Old(pair.NewPath, pair.New)
		assert.True(t, ok)
		assert.EqualValues(t, pair.OldPath, path)
		assert.EqualValues(t, pair.Old, old)
	}
}

func TestSynthesize_PartialSplitInvariance(t *testing.T) {
	whole := func(body string) []*gt.Document {
		return []*gt.Document{gt.Doc("a.cs", gt.Class("C",
			gt.Method("M", "void").Body(gt.Stmt(body)),
			gt.Field("f", "int"),
		).With(graph.Partial))}
	}
	split := func(body string) []*gt.Document {
		return []*gt.Document{
			gt.Doc("a.cs", gt.Class("C", gt.Method("M", "void").Body(gt.Stmt(body))).With(graph.Partial)),
			gt.Doc("b.cs", gt.Class("C", gt.Field("f", "int")).With(graph.Partial)),
		}
	}
	merged, err := synthesize(t, whole("a();"), whole("b();"), capability.Baseline)
	require.NoError(t, err)
	splitted, err := synthesize(t, split("a();"), split("b();"), capability.Baseline)
	require.NoError(t, err)
	assert.EqualValues(t, summarize(merged), summarize(splitted))
	assert.EqualValues(t, []summary{{Kind: semantic.Update, ID: "M:C.M", Preserve: true, Partial: "C"}}, summarize(merged))
}

func TestSynthesize_PartialInitializerInvariance(t *testing.T) {
	fields := func(a, b string) (*gt.Decl, *gt.Decl) {
		return gt.Field("a", "int").Init(a), gt.Field("b", "int").Init(b)
	}
	whole := func(a, b string) []*gt.Document {
		first, second := fields(a, b)
		return []*gt.Document{gt.Doc("a.cs", gt.Class("C", first, second).With(graph.Partial))}
	}
	split := func(a, b string) []*gt.Document {
		first, second := fields(a, b)
		return []*gt.Document{
			gt.Doc("a.cs", gt.Class("C", first).With(graph.Partial)),
			gt.Doc("b.cs", gt.Class("C", second).With(graph.Partial)),
		}
	}
	merged, err := synthesize(t, whole("1", "2"), whole("3", "4"), capability.Baseline)
	require.NoError(t, err)
	splitted, err := synthesize(t, split("1", "2"), split("3", "4"), capability.Baseline)
	require.NoError(t, err)

	expect := []summary{{Kind: semantic.Update, ID: "M:C.#ctor", Preserve: true, Partial: "C"}}
	assert.EqualValues(t, expect, summarize(merged))
	assert.EqualValues(t, expect, summarize(splitted))
	assert.EqualValues(t, merged[0].SyntaxMap.Len(), splitted[0].SyntaxMap.Len())
	assert.EqualValues(t, 2, splitted[0].SyntaxMap.Len())
	assert.EqualValues(t, []string{"a.cs", "b.cs"}, splitted[0].SyntaxMap.Paths())
	for _, pair := range splitted[0].SyntaxMap.Pairs {
		path, old, ok := splitted[0].SyntaxMap.Old(pair.NewPath, pair.New)
		assert.True(t, ok)
		assert.EqualValues(t, pair.NewPath, path)
		assert.EqualValues(t, pair.Old, old)
	}
}

func TestSynthesize_SemanticErrors(t *testing.T) {
	_, err := synthesize(t,
		doc(gt.Class("C", gt.Method("M", "void"), gt.Method("M", "void"))),
		doc(gt.Class("C", gt.Method("M", "void").Body(gt.Stmt("a();")), gt.Method("M", "void"))),
		capability.All)
	assert.ErrorIs(t, err, symbol.ErrSemantic)
}

func TestKind_Text(t *testing.T) {
	for _, kind := range []semantic.Kind{semantic.Insert, semantic.Update, semantic.Delete} {
		text, err := kind.MarshalText()
		require.NoError(t, err)
		var decoded semantic.Kind
		require.NoError(t, decoded.UnmarshalText(text))
		assert.EqualValues(t, kind, decoded)
	}
	var decoded semantic.Kind
	assert.Error(t, decoded.UnmarshalText([]byte("rename")))
}
