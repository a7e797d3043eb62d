package graph

import (
	"slices"
	"strings"
)

// Attribute represents a custom attribute or annotation applied to a declaration
type Attribute struct {
	Name      string `json:"name" yaml:"name"`
	Arguments string `json:"arguments,omitempty" yaml:"arguments,omitempty"`
}

// ShortName returns the attribute name without namespace qualifier and Attribute suffix
func (a Attribute) ShortName() string {
	name := a.Name
	if index := strings.LastIndex(name, "."); index != -1 {
		name = name[index+1:]
	}
	if trimmed := strings.TrimSuffix(name, "Attribute"); trimmed != "" {
		name = trimmed
	}
	return name
}

func (a Attribute) String() string {
	if a.Arguments == "" {
		return a.Name
	}
	return a.Name + "(" + a.Arguments + ")"
}

// Attributes is an ordered attribute list
type Attributes []Attribute

// Equal compares attribute lists ignoring declaration order
func (a Attributes) Equal(other Attributes) bool {
	if len(a) != len(other) {
		return false
	}
	return slices.Equal(a.sorted(), other.sorted())
}

// Diff returns attributes present only in a and only in other
func (a Attributes) Diff(other Attributes) (removed, added Attributes) {
	remaining := map[Attribute]int{}
	for _, attr := range other {
		remaining[attr]++
	}
	for _, attr := range a {
		if remaining[attr] > 0 {
			remaining[attr]--
			continue
		}
		removed = append(removed, attr)
	}
	consumed := map[Attribute]int{}
	for _, attr := range a {
		consumed[attr]++
	}
	for _, attr := range other {
		if consumed[attr] > 0 {
			consumed[attr]--
			continue
		}
		added = append(added, attr)
	}
	return removed, added
}

func (a Attributes) sorted() []string {
	result := make([]string, len(a))
	for i, attr := range a {
		result[i] = attr.String()
	}
	slices.Sort(result)
	return result
}

// Signature holds the typed parts of a declaration header
type Signature struct {
	Type              string   // return, field, property or parameter type
	Default           string   // parameter default value or enum member value
	Bases             []string // base type and implemented interfaces in declaration order
	ExplicitInterface string   // interface of an explicit implementation
	Variance          Variance // type parameter variance
	Constraints       []string // type parameter constraints
}

// Equal compares signatures
func (s Signature) Equal(other Signature) bool {
	return s.Type == other.Type &&
		s.Default == other.Default &&
		s.ExplicitInterface == other.ExplicitInterface &&
		s.Variance == other.Variance &&
		slices.Equal(s.Bases, other.Bases) &&
		slices.Equal(s.Constraints, other.Constraints)
}

func (s Signature) String() string {
	builder := strings.Builder{}
	builder.WriteString(s.Type)
	builder.WriteString("|")
	builder.WriteString(s.Default)
	builder.WriteString("|")
	builder.WriteString(strings.Join(s.Bases, ","))
	builder.WriteString("|")
	builder.WriteString(s.ExplicitInterface)
	builder.WriteString("|")
	builder.WriteString(s.Variance.String())
	builder.WriteString("|")
	builder.WriteString(strings.Join(s.Constraints, ","))
	return builder.String()
}
