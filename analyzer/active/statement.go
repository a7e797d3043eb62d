// Package active projects tracked execution points through a declaration match.
package active

import (
	"fmt"

	"github.com/viant/hotedit/inspector/graph"
)

// Statement is a span of an instruction currently executing in a live process
type Statement struct {
	ID            int        `json:"id" yaml:"id" msgpack:"id"`
	Path          string     `json:"path" yaml:"path" msgpack:"path"`
	OldSpan       graph.Span `json:"oldSpan" yaml:"oldSpan" msgpack:"oldSpan"`
	NewSpan       graph.Span `json:"newSpan" yaml:"newSpan" msgpack:"newSpan"`
	NewPath       string     `json:"newPath,omitempty" yaml:"newPath,omitempty" msgpack:"newPath,omitempty"`
	IsLeaf        bool       `json:"isLeaf" yaml:"isLeaf" msgpack:"isLeaf"`
	Unrecoverable bool       `json:"unrecoverable,omitempty" yaml:"unrecoverable,omitempty" msgpack:"unrecoverable,omitempty"`
}

func (s *Statement) String() string {
	if s.Unrecoverable {
		return fmt.Sprintf("#%d %v%v -> unrecoverable", s.ID, s.Path, s.OldSpan)
	}
	return fmt.Sprintf("#%d %v%v -> %v%v", s.ID, s.Path, s.OldSpan, s.NewPath, s.NewSpan)
}
