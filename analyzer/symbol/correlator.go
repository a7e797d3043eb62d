package symbol

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/hotedit/inspector/graph"
)

// Correlator resolves old and new declarations against their snapshot models
type Correlator struct {
	old   Model
	new   Model
	cache map[*graph.Node]*Symbol
}

// NewCorrelator creates a correlator; it is not safe for concurrent use
func NewCorrelator(old, new Model) *Correlator {
	return &Correlator{old: old, new: new, cache: map[*graph.Node]*Symbol{}}
}

// Check fails with ErrSemantic when either snapshot reports errors for the document
func (c *Correlator) Check(ctx context.Context, path string) error {
	var problems []string
	problems = append(problems, c.old.Errors(ctx, path)...)
	problems = append(problems, c.new.Errors(ctx, path)...)
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s: %s", ErrSemantic, path, strings.Join(problems, "; "))
}

// Old resolves an old declaration
func (c *Correlator) Old(ctx context.Context, node *graph.Node) (*Symbol, error) {
	return c.resolve(ctx, c.old, node)
}

// New resolves a new declaration
func (c *Correlator) New(ctx context.Context, node *graph.Node) (*Symbol, error) {
	return c.resolve(ctx, c.new, node)
}

func (c *Correlator) resolve(ctx context.Context, model Model, node *graph.Node) (*Symbol, error) {
	if cached, ok := c.cache[node]; ok {
		return cached, nil
	}
	symbol, err := model.Symbol(ctx, node)
	if err != nil {
		return nil, err
	}
	if symbol == nil {
		return nil, fmt.Errorf("%w: %v", ErrUnresolved, node)
	}
	c.cache[node] = symbol
	return symbol, nil
}

// Constructors returns constructors of a new type or namespace level container
func (c *Correlator) Constructors(ctx context.Context, container *graph.Node, static bool) ([]*Symbol, error) {
	return c.new.Constructors(ctx, container, static)
}

// OldConstructors returns constructors of an old type or namespace level container
func (c *Correlator) OldConstructors(ctx context.Context, container *graph.Node, static bool) ([]*Symbol, error) {
	return c.old.Constructors(ctx, container, static)
}

// EntryPoint returns the new snapshot entry point
func (c *Correlator) EntryPoint(ctx context.Context) (*Symbol, error) {
	return c.new.EntryPoint(ctx)
}
