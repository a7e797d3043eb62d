package rude

import (
	"fmt"
	"sort"
	"strings"

	"github.com/viant/hotedit/inspector/graph"
)

// Diagnostic reports an edit the runtime cannot apply
type Diagnostic struct {
	Kind      Kind       `json:"kind" yaml:"kind" msgpack:"kind"`
	Path      string     `json:"path" yaml:"path" msgpack:"path"`
	Span      graph.Span `json:"span" yaml:"span" msgpack:"span"`
	Arguments []string   `json:"arguments,omitempty" yaml:"arguments,omitempty" msgpack:"arguments,omitempty"`
}

// New creates a diagnostic located at the node span
func New(kind Kind, node *graph.Node, args ...string) Diagnostic {
	return Diagnostic{Kind: kind, Path: node.Path(), Span: node.Span, Arguments: args}
}

// Code returns the diagnostic code
func (d Diagnostic) Code() string {
	return d.Kind.Code()
}

// Message renders the diagnostic message
func (d Diagnostic) Message() string {
	return d.Kind.Format(d.Arguments...)
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s%s: %s: %s", d.Path, d.Span, d.Code(), d.Message())
}

func (d Diagnostic) key() string {
	return d.Path + "|" + d.Span.String() + "|" + d.Code() + "|" + strings.Join(d.Arguments, "|")
}

// Bag collects diagnostics
type Bag struct {
	items []Diagnostic
}

// Add appends a diagnostic
func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

// Merge appends diagnostics of other
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns collected diagnostics; do not modify the returned slice
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Sort orders diagnostics by path, start, end, code and arguments
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Span.Start != dj.Span.Start {
			return di.Span.Start < dj.Span.Start
		}
		if di.Span.End != dj.Span.End {
			return di.Span.End < dj.Span.End
		}
		if di.Kind != dj.Kind {
			return di.Kind < dj.Kind
		}
		return strings.Join(di.Arguments, "|") < strings.Join(dj.Arguments, "|")
	})
}

// Dedup removes diagnostics with identical kind, location and arguments
func (b *Bag) Dedup() {
	seen := make(map[string]bool)
	items := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := d.key()
		if seen[key] {
			continue
		}
		seen[key] = true
		items = append(items, d)
	}
	b.items = items
}

// Finalize sorts and deduplicates diagnostics and returns them
func (b *Bag) Finalize() []Diagnostic {
	b.Sort()
	b.Dedup()
	return b.items
}
