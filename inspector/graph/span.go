package graph

import "fmt"

// Span is a half-open byte range in a document
type Span struct {
	Start uint32 `json:"start" yaml:"start" msgpack:"start"`
	End   uint32 `json:"end" yaml:"end" msgpack:"end"`
}

// Len returns the span length
func (s Span) Len() uint32 {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// IsEmpty reports whether the span covers no bytes
func (s Span) IsEmpty() bool {
	return s.End <= s.Start
}

// Contains reports whether other lies within s
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Cover returns the smallest span covering s and other
func (s Span) Cover(other Span) Span {
	result := s
	if other.Start < result.Start {
		result.Start = other.Start
	}
	if other.End > result.End {
		result.End = other.End
	}
	return result
}

// Shift moves the span by delta bytes; negative offsets clamp at zero
func (s Span) Shift(delta int64) Span {
	return Span{Start: shift(s.Start, delta), End: shift(s.End, delta)}
}

func shift(offset uint32, delta int64) uint32 {
	value := int64(offset) + delta
	if value < 0 {
		return 0
	}
	return uint32(value)
}

func (s Span) String() string {
	return fmt.Sprintf("[%d..%d)", s.Start, s.End)
}
