// Package symbol resolves declarations to runtime symbols of a program snapshot.
package symbol

import (
	"context"
	"errors"

	"github.com/viant/hotedit/inspector/graph"
)

var (
	// ErrUnresolved is returned when a declaration has no symbol in the model
	ErrUnresolved = errors.New("symbol unresolved")
	// ErrAmbiguous is returned when a declaration resolves to several symbols
	ErrAmbiguous = errors.New("symbol ambiguous")
	// ErrSemantic is returned when a document has pre-existing semantic errors
	ErrSemantic = errors.New("document has semantic errors")
)

// Symbol identifies a runtime entity
type Symbol struct {
	ID        string     `json:"id" yaml:"id" msgpack:"id"`
	Kind      graph.Kind `json:"kind" yaml:"kind" msgpack:"kind"`
	Name      string     `json:"name" yaml:"name" msgpack:"name"`
	Container string     `json:"container,omitempty" yaml:"container,omitempty" msgpack:"container,omitempty"`
	Static    bool       `json:"static,omitempty" yaml:"static,omitempty" msgpack:"static,omitempty"`
	Implicit  bool       `json:"implicit,omitempty" yaml:"implicit,omitempty" msgpack:"implicit,omitempty"`
}

func (s *Symbol) String() string {
	if s == nil {
		return "<nil>"
	}
	return s.ID
}

// Model exposes the semantic view of one program snapshot
type Model interface {
	// Symbol resolves a type or member declaration
	Symbol(ctx context.Context, node *graph.Node) (*Symbol, error)
	// Constructors returns instance or static constructors of a type (or namespace level
	// initializer), including implicitly declared ones
	Constructors(ctx context.Context, container *graph.Node, static bool) ([]*Symbol, error)
	// EntryPoint returns the symbol synthesized for top-level statements
	EntryPoint(ctx context.Context) (*Symbol, error)
	// Errors returns pre-existing semantic errors of a document
	Errors(ctx context.Context, path string) []string
}
