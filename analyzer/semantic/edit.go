// Package semantic expands declaration edits into ordered symbol level edits.
package semantic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/viant/hotedit/analyzer/match"
	"github.com/viant/hotedit/analyzer/symbol"
	"github.com/viant/hotedit/inspector/graph"
)

// Kind is a symbol edit kind
type Kind uint8

const (
	Insert Kind = iota + 1
	Update
	Delete
)

func (k Kind) String() string {
	switch k {
	case Insert:
		return "insert"
	case Update:
		return "update"
	case Delete:
		return "delete"
	}
	return "unknown"
}

// MarshalText encodes the kind name
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes the kind name
func (k *Kind) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "insert":
		*k = Insert
	case "update":
		*k = Update
	case "delete":
		*k = Delete
	default:
		return fmt.Errorf("unknown semantic edit kind: %s", text)
	}
	return nil
}

// Edit is an instruction to insert, update or delete one symbol
type Edit struct {
	Kind                   Kind             `json:"kind" yaml:"kind" msgpack:"kind"`
	Old                    *symbol.Symbol   `json:"old,omitempty" yaml:"old,omitempty" msgpack:"old,omitempty"`
	New                    *symbol.Symbol   `json:"new,omitempty" yaml:"new,omitempty" msgpack:"new,omitempty"`
	PartialType            string           `json:"partialType,omitempty" yaml:"partialType,omitempty" msgpack:"partialType,omitempty"`
	PreserveLocalVariables bool             `json:"preserveLocalVariables,omitempty" yaml:"preserveLocalVariables,omitempty" msgpack:"preserveLocalVariables,omitempty"`
	SyntaxMap              *match.SyntaxMap `json:"syntaxMap,omitempty" yaml:"syntaxMap,omitempty" msgpack:"syntaxMap,omitempty"`
}

// Symbol returns the new symbol, or the old one for deletes
func (e *Edit) Symbol() *symbol.Symbol {
	if e.New != nil {
		return e.New
	}
	return e.Old
}

func (e *Edit) String() string {
	var builder strings.Builder
	builder.WriteString(e.Kind.String())
	builder.WriteString(" ")
	builder.WriteString(e.Symbol().String())
	if e.PreserveLocalVariables {
		builder.WriteString(" preserve")
	}
	if e.SyntaxMap.Len() > 0 {
		builder.WriteString(fmt.Sprintf(" map(%d)", e.SyntaxMap.Len()))
	}
	return builder.String()
}

// rank orders edits so that inserted types and members precede constructors referencing them
func (e *Edit) rank() int {
	constructor := e.Symbol().Kind == graph.KindConstructor
	switch {
	case e.Kind == Delete:
		return 5
	case e.Kind == Insert && e.Symbol().Kind == graph.KindType:
		return 0
	case e.Kind == Insert && !constructor:
		return 1
	case e.Kind == Update && !constructor:
		return 2
	case e.Kind == Insert:
		return 3
	}
	return 4
}

// Merge combines edits of several documents, folding repeated (kind, symbol) edits together with
// their syntax maps, and restores the application order
func Merge(lists ...[]*Edit) []*Edit {
	var result []*Edit
	index := map[editKey]*Edit{}
	for _, edits := range lists {
		for _, e := range edits {
			key := editKey{kind: e.Kind, id: e.Symbol().ID}
			if existing, ok := index[key]; ok {
				existing.PreserveLocalVariables = existing.PreserveLocalVariables || e.PreserveLocalVariables
				existing.SyntaxMap = existing.SyntaxMap.Merge(e.SyntaxMap)
				continue
			}
			copied := *e
			index[key] = &copied
			result = append(result, &copied)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].rank() < result[j].rank() })
	return result
}
