// Package capability describes what the target runtime can apply to a running program.
package capability

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// ErrUnknown is returned for capability names the runtime does not define
var ErrUnknown = errors.New("unknown capability")

// Set is an immutable capability bitset
type Set uint32

const (
	Baseline Set = 1 << iota
	AddMethodToExistingType
	AddStaticFieldToExistingType
	AddInstanceFieldToExistingType
	NewTypeDefinition
	ChangeCustomAttributes
	UpdateParameters
	AddExplicitInterfaceImplementation
	GenericAddMethodToExistingType
	GenericUpdateMethod
	GenericAddFieldToExistingType
	AddVirtualMember
	AddDefaultInterfaceMember
	last
)

// None is the empty capability set
const None Set = 0

// All enables every capability
const All = last - 1

var names = map[Set]string{
	Baseline:                           "Baseline",
	AddMethodToExistingType:            "AddMethodToExistingType",
	AddStaticFieldToExistingType:       "AddStaticFieldToExistingType",
	AddInstanceFieldToExistingType:     "AddInstanceFieldToExistingType",
	NewTypeDefinition:                  "NewTypeDefinition",
	ChangeCustomAttributes:             "ChangeCustomAttributes",
	UpdateParameters:                   "UpdateParameters",
	AddExplicitInterfaceImplementation: "AddExplicitInterfaceImplementation",
	GenericAddMethodToExistingType:     "GenericAddMethodToExistingType",
	GenericUpdateMethod:                "GenericUpdateMethod",
	GenericAddFieldToExistingType:      "GenericAddFieldToExistingType",
	AddVirtualMember:                   "AddVirtualMember",
	AddDefaultInterfaceMember:          "AddDefaultInterfaceMember",
}

// Of returns a set with the given capabilities
func Of(capabilities ...Set) Set {
	var result Set
	for _, c := range capabilities {
		result |= c
	}
	return result
}

// Has reports whether all capabilities of c are present
func (s Set) Has(c Set) bool {
	return s&c == c
}

// With returns a copy of s extended with c
func (s Set) With(c Set) Set {
	return s | c
}

// Without returns a copy of s with c removed
func (s Set) Without(c Set) Set {
	return s &^ c
}

// Len returns number of capabilities
func (s Set) Len() int {
	return bits.OnesCount32(uint32(s))
}

// List returns the individual capabilities in declaration order
func (s Set) List() []Set {
	var result []Set
	for c := Baseline; c < last; c <<= 1 {
		if s&c != 0 {
			result = append(result, c)
		}
	}
	return result
}

// Names returns capability names in declaration order
func (s Set) Names() []string {
	var result []string
	for _, c := range s.List() {
		result = append(result, names[c])
	}
	return result
}

func (s Set) String() string {
	if s == None {
		return "None"
	}
	return strings.Join(s.Names(), "|")
}

// Parse converts capability names into a set; names are case insensitive and may be separated by
// commas, pipes or whitespace
func Parse(values ...string) (Set, error) {
	var result Set
	for _, value := range values {
		for _, name := range strings.FieldsFunc(value, func(r rune) bool {
			return r == ',' || r == '|' || r == ' ' || r == '\t' || r == '\n'
		}) {
			c, err := lookup(name)
			if err != nil {
				return None, err
			}
			result |= c
		}
	}
	return result, nil
}

func lookup(name string) (Set, error) {
	switch strings.ToLower(name) {
	case "none":
		return None, nil
	case "all":
		return All, nil
	}
	for c, candidate := range names {
		if strings.EqualFold(candidate, name) {
			return c, nil
		}
	}
	return None, fmt.Errorf("%w: %s", ErrUnknown, name)
}

// MarshalText renders the set as a comma separated list
func (s Set) MarshalText() ([]byte, error) {
	return []byte(strings.Join(s.Names(), ",")), nil
}

// UnmarshalText parses a comma separated list
func (s *Set) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
