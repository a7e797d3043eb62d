// Package analyzer runs the hot edit pipeline over old and new declaration trees.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"

	"github.com/google/uuid"
	"github.com/viant/hotedit/analyzer/active"
	"github.com/viant/hotedit/analyzer/capability"
	"github.com/viant/hotedit/analyzer/edit"
	"github.com/viant/hotedit/analyzer/match"
	"github.com/viant/hotedit/analyzer/rude"
	"github.com/viant/hotedit/analyzer/semantic"
	"github.com/viant/hotedit/analyzer/symbol"
	"github.com/viant/hotedit/analyzer/symbol/syntactic"
	"github.com/viant/hotedit/inspector/graph"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Analyzer decides which changes can be applied to a running program and synthesizes symbol edits
type Analyzer struct {
	logger       *zap.Logger
	capabilities capability.Set
	strict       bool
	concurrency  int
	compute      func(ctx context.Context, old, new []*graph.Tree) (*match.Match, error)
}

// Input holds both snapshots of the analyzed documents
type Input struct {
	Old []*graph.Tree
	New []*graph.Tree
	// OldModel and NewModel default to models derived from the trees
	OldModel         symbol.Model
	NewModel         symbol.Model
	ActiveStatements []active.Statement
}

// New creates an analyzer
func New(options ...Option) *Analyzer {
	ret := &Analyzer{
		logger:       zap.NewNop(),
		capabilities: capability.Baseline,
		concurrency:  runtime.GOMAXPROCS(0),
		compute:      match.Compute,
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Capabilities returns the configured capability set
func (a *Analyzer) Capabilities() capability.Set {
	return a.capabilities
}

// Analyze matches the snapshots once, then analyzes every document in parallel
func (a *Analyzer) Analyze(ctx context.Context, input *Input) (*Result, error) {
	result := &Result{RunID: uuid.NewString(), Capabilities: a.capabilities}
	logger := a.logger.With(zap.String("run", result.RunID))
	oldModel, newModel := input.OldModel, input.NewModel
	if oldModel == nil {
		oldModel = syntactic.New(input.Old...)
	}
	if newModel == nil {
		newModel = syntactic.New(input.New...)
	}

	statements := map[string][]active.Statement{}
	for _, statement := range input.ActiveStatements {
		statements[statement.Path] = append(statements[statement.Path], statement)
	}
	paths := documentPaths(input, statements)

	m, scripts, err := a.diff(ctx, input)
	if err != nil {
		if !errors.Is(err, match.ErrInvariant) || a.strict {
			return nil, err
		}
		logger.Warn("match invariant violated", zap.Error(err))
		result.Documents = internalError(paths, err)
		return result, nil
	}
	byPath := map[string]*edit.Script{}
	for _, script := range scripts {
		byPath[script.Path] = script
	}

	result.Documents = make([]*DocumentResult, len(paths))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(a.concurrency)
	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			task := &document{
				analyzer:   a,
				logger:     logger.With(zap.String("path", path)),
				match:      m,
				script:     byPath[path],
				statements: statements[path],
				correlator: symbol.NewCorrelator(oldModel, newModel),
			}
			if task.script == nil {
				task.script = &edit.Script{Path: path}
			}
			documentResult, err := task.analyze(groupCtx)
			if err != nil {
				return fmt.Errorf("failed to analyze %v: %w", path, err)
			}
			result.Documents[i] = documentResult
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	logger.Debug("analysis completed",
		zap.Int("documents", len(result.Documents)),
		zap.Int("diagnostics", len(result.Diagnostics())),
		zap.Int("edits", len(result.Edits())))
	return result, nil
}

func (a *Analyzer) diff(ctx context.Context, input *Input) (*match.Match, []*edit.Script, error) {
	m, err := a.compute(ctx, input.Old, input.New)
	if err != nil {
		return nil, nil, err
	}
	scripts, err := edit.Build(ctx, m)
	if err != nil {
		return nil, nil, err
	}
	return m, scripts, nil
}

// documentPaths returns sorted paths of all old, new and active statement documents
func documentPaths(input *Input, statements map[string][]active.Statement) []string {
	unique := map[string]bool{}
	for _, trees := range [][]*graph.Tree{input.Old, input.New} {
		for _, tree := range trees {
			if tree != nil {
				unique[tree.Path] = true
			}
		}
	}
	for path := range statements {
		unique[path] = true
	}
	result := make([]string, 0, len(unique))
	for path := range unique {
		result = append(result, path)
	}
	sort.Strings(result)
	return result
}

func internalError(paths []string, err error) []*DocumentResult {
	result := make([]*DocumentResult, 0, len(paths))
	for _, path := range paths {
		result = append(result, &DocumentResult{
			Path:        path,
			Diagnostics: []rude.Diagnostic{{Kind: rude.InternalError, Path: path, Arguments: []string{path, err.Error()}}},
		})
	}
	return result
}

// document runs the per document stages in sequence
type document struct {
	analyzer   *Analyzer
	logger     *zap.Logger
	match      *match.Match
	script     *edit.Script
	statements []active.Statement
	correlator *symbol.Correlator
}

func (d *document) analyze(ctx context.Context) (*DocumentResult, error) {
	ret := &DocumentResult{Path: d.script.Path}
	analyzed, err := rude.Analyze(ctx, d.match, d.script, d.analyzer.capabilities)
	if err != nil {
		return nil, err
	}
	remapped, activeDiagnostics, err := active.Remap(ctx, d.match, analyzed, d.statements)
	if err != nil {
		return nil, err
	}
	ret.ActiveStatements = remapped
	bag := &rude.Bag{}
	for _, diagnostic := range append(analyzed.Diagnostics, activeDiagnostics...) {
		bag.Add(diagnostic)
	}
	ret.Diagnostics = bag.Finalize()
	if len(ret.Diagnostics) > 0 {
		d.logger.Debug("rude edits found", zap.Int("diagnostics", len(ret.Diagnostics)))
		return ret, nil
	}
	if len(analyzed.Edits) == 0 {
		return ret, nil
	}
	edits, err := semantic.Synthesize(ctx, d.match, analyzed, d.script.Path, d.correlator)
	if err != nil {
		if !degraded(err) {
			return nil, err
		}
		d.logger.Warn("document skipped", zap.Error(err))
		ret.Skipped, ret.Reason = true, err.Error()
		return ret, nil
	}
	ret.Edits = edits
	d.logger.Debug("document analyzed", zap.Int("edits", len(edits)), zap.Int("declarationEdits", d.script.Len()))
	return ret, nil
}

// degraded reports correlation failures that leave a document without edits
func degraded(err error) bool {
	return errors.Is(err, symbol.ErrUnresolved) || errors.Is(err, symbol.ErrAmbiguous) || errors.Is(err, symbol.ErrSemantic)
}
