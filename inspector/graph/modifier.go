package graph

import "strings"

// Modifiers is a declaration modifier bitset
type Modifiers uint32

const (
	Public Modifiers = 1 << iota
	Protected
	Internal
	Private
	Static
	Abstract
	Virtual
	Override
	Sealed
	ReadOnly
	Const
	Extern
	Unsafe
	Partial
	Async
	Default
	Volatile
	New
	Transient
	Synchronized
	Ref
	Out
	In
	Params
)

// AccessMask selects the accessibility modifiers
const AccessMask = Public | Protected | Internal | Private

var modifierNames = []struct {
	flag Modifiers
	name string
}{
	{Public, "public"},
	{Protected, "protected"},
	{Internal, "internal"},
	{Private, "private"},
	{Static, "static"},
	{Abstract, "abstract"},
	{Virtual, "virtual"},
	{Override, "override"},
	{Sealed, "sealed"},
	{ReadOnly, "readonly"},
	{Const, "const"},
	{Extern, "extern"},
	{Unsafe, "unsafe"},
	{Partial, "partial"},
	{Async, "async"},
	{Default, "default"},
	{Volatile, "volatile"},
	{New, "new"},
	{Transient, "transient"},
	{Synchronized, "synchronized"},
	{Ref, "ref"},
	{Out, "out"},
	{In, "in"},
	{Params, "params"},
}

// Has reports whether all flags in m are set
func (m Modifiers) Has(flag Modifiers) bool {
	return m&flag == flag
}

// Any reports whether any flag in m is set
func (m Modifiers) Any(flag Modifiers) bool {
	return m&flag != 0
}

// Access returns the accessibility part of the bitset
func (m Modifiers) Access() Modifiers {
	return m & AccessMask
}

// Without clears flags
func (m Modifiers) Without(flag Modifiers) Modifiers {
	return m &^ flag
}

func (m Modifiers) String() string {
	var parts []string
	for _, candidate := range modifierNames {
		if m&candidate.flag != 0 {
			parts = append(parts, candidate.name)
		}
	}
	return strings.Join(parts, " ")
}

// ParseModifier returns the flag for a modifier keyword
func ParseModifier(keyword string) (Modifiers, bool) {
	for _, candidate := range modifierNames {
		if candidate.name == keyword {
			return candidate.flag, true
		}
	}
	switch keyword {
	case "final":
		return Sealed, true
	case "native":
		return Extern, true
	}
	return 0, false
}
