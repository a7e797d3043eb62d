package match

import (
	"sort"

	"github.com/viant/hotedit/inspector/graph"
)

// SpanPair maps a new syntax span to its old counterpart; a merged map may hold pairs of several
// documents when a member's syntax is spread over partial type parts
type SpanPair struct {
	NewPath string     `json:"newPath" yaml:"newPath" msgpack:"newPath"`
	New     graph.Span `json:"new" yaml:"new" msgpack:"new"`
	OldPath string     `json:"oldPath" yaml:"oldPath" msgpack:"oldPath"`
	Old     graph.Span `json:"old" yaml:"old" msgpack:"old"`
}

// SyntaxMap maps body syntax of a new member to the corresponding syntax of the old member
type SyntaxMap struct {
	Pairs []SpanPair `json:"pairs" yaml:"pairs" msgpack:"pairs"`
}

// Old returns the old location for a span of the new document at path; spans inside a mapped
// node are translated by offset
func (s *SyntaxMap) Old(path string, new graph.Span) (string, graph.Span, bool) {
	if s == nil {
		return "", graph.Span{}, false
	}
	var best *SpanPair
	for i := range s.Pairs {
		pair := &s.Pairs[i]
		if pair.NewPath != path || !pair.New.Contains(new) {
			continue
		}
		if best == nil || pair.New.Len() < best.New.Len() {
			best = pair
		}
	}
	if best == nil {
		return "", graph.Span{}, false
	}
	if best.New == new {
		return best.OldPath, best.Old, true
	}
	return best.OldPath, new.Shift(int64(best.Old.Start) - int64(best.New.Start)), true
}

// Len returns number of mapped spans
func (s *SyntaxMap) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Pairs)
}

// Paths returns the sorted new document paths covered by the map
func (s *SyntaxMap) Paths() []string {
	if s == nil {
		return nil
	}
	var result []string
	for i, pair := range s.Pairs {
		if i == 0 || s.Pairs[i-1].NewPath != pair.NewPath {
			result = append(result, pair.NewPath)
		}
	}
	return result
}

// Merge returns a map holding the pairs of both maps; neither receiver nor other is modified
func (s *SyntaxMap) Merge(other *SyntaxMap) *SyntaxMap {
	if other == nil {
		return s
	}
	if s == nil {
		return other
	}
	ret := &SyntaxMap{Pairs: make([]SpanPair, 0, len(s.Pairs)+len(other.Pairs))}
	seen := map[SpanPair]bool{}
	for _, pairs := range [][]SpanPair{s.Pairs, other.Pairs} {
		for _, pair := range pairs {
			if !seen[pair] {
				seen[pair] = true
				ret.Pairs = append(ret.Pairs, pair)
			}
		}
	}
	ret.sort()
	return ret
}

func (s *SyntaxMap) add(old, new *graph.Node, oldSpan, newSpan graph.Span) {
	s.Pairs = append(s.Pairs, SpanPair{NewPath: new.Path(), New: newSpan, OldPath: old.Path(), Old: oldSpan})
}

func (s *SyntaxMap) sort() {
	sort.SliceStable(s.Pairs, func(i, j int) bool {
		left, right := s.Pairs[i], s.Pairs[j]
		if left.NewPath != right.NewPath {
			return left.NewPath < right.NewPath
		}
		if left.New.Start != right.New.Start {
			return left.New.Start < right.New.Start
		}
		return left.New.End > right.New.End
	})
}
