package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/hotedit/analyzer/match"
	"github.com/viant/hotedit/analyzer/rude"
	"github.com/viant/hotedit/inspector/graph"
	gt "github.com/viant/hotedit/inspector/graph/graphtest"
)

func TestAnalyzer_InvariantViolation(t *testing.T) {
	input := &Input{
		Old: gt.Trees(gt.Doc("a.cs", gt.Class("C")), gt.Doc("b.cs", gt.Class("D"))),
		New: gt.Trees(gt.Doc("a.cs", gt.Class("C")), gt.Doc("b.cs", gt.Class("D"))),
	}
	broken := func(ctx context.Context, old, new []*graph.Tree) (*match.Match, error) {
		return nil, &match.InvariantError{Path: "a.cs", Reason: "C matched twice"}
	}

	var testCases = []struct {
		description string
		strict      bool
		expectErr   bool
	}{
		{description: "strict run fails", strict: true, expectErr: true},
		{description: "lenient run reports every document", strict: false},
	}
	for _, testCase := range testCases {
		a := New(WithStrictInvariants(testCase.strict))
		a.compute = broken
		result, err := a.Analyze(context.Background(), input)
		if testCase.expectErr {
			require.Error(t, err, testCase.description)
			assert.ErrorIs(t, err, match.ErrInvariant, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		require.Len(t, result.Documents, 2, testCase.description)
		for _, document := range result.Documents {
			require.Len(t, document.Diagnostics, 1, testCase.description)
			diagnostic := document.Diagnostics[0]
			assert.EqualValues(t, rude.InternalError, diagnostic.Kind, testCase.description)
			assert.EqualValues(t, document.Path, diagnostic.Path, testCase.description)
			assert.Contains(t, diagnostic.Arguments[1], "matched twice", testCase.description)
			assert.Empty(t, document.Edits, testCase.description)
		}
		assert.True(t, result.HasRudeEdits(), testCase.description)
	}
}

func TestDocumentPaths(t *testing.T) {
	input := &Input{
		Old: gt.Trees(gt.Doc("b.cs"), gt.Doc("a.cs")),
		New: []*graph.Tree{gt.Doc("c.cs").Tree(), nil},
	}
	assert.EqualValues(t, []string{"a.cs", "b.cs", "c.cs"}, documentPaths(input, nil))
}
