package graph

import "fmt"

// Kind identifies the syntactic category of a declaration node
type Kind uint8

const (
	KindUnknown Kind = iota
	KindCompilationUnit
	KindNamespace
	KindImport
	KindType
	KindMethod
	KindConstructor
	KindDestructor
	KindOperator
	KindField
	KindEnumMember
	KindProperty
	KindEvent
	KindIndexer
	KindAccessor
	KindParameter
	KindTypeParameter
	KindTopLevelStatement
	KindStatement // statement inside a member body
	KindLambda    // lambda or function literal inside a body or initializer
)

var kindNames = [...]string{
	KindUnknown:           "unknown",
	KindCompilationUnit:   "compilation unit",
	KindNamespace:         "namespace",
	KindImport:            "import",
	KindType:              "type",
	KindMethod:            "method",
	KindConstructor:       "constructor",
	KindDestructor:        "destructor",
	KindOperator:          "operator",
	KindField:             "field",
	KindEnumMember:        "enum member",
	KindProperty:          "property",
	KindEvent:             "event",
	KindIndexer:           "indexer",
	KindAccessor:          "accessor",
	KindParameter:         "parameter",
	KindTypeParameter:     "type parameter",
	KindTopLevelStatement: "top-level statement",
	KindStatement:         "statement",
	KindLambda:            "lambda",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

// MarshalText encodes the kind name
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name
func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown kind: %s", text)
}

// IsBody reports whether the kind belongs to member bodies rather than declarations
func (k Kind) IsBody() bool {
	return k == KindStatement || k == KindLambda
}

// IsMember reports whether the kind declares a type member or an entry point statement
func (k Kind) IsMember() bool {
	switch k {
	case KindMethod, KindConstructor, KindDestructor, KindOperator, KindField, KindEnumMember,
		KindProperty, KindEvent, KindIndexer, KindAccessor, KindTopLevelStatement:
		return true
	}
	return false
}

// IsMethodLike reports whether the kind compiles to a method body
func (k Kind) IsMethodLike() bool {
	switch k {
	case KindMethod, KindConstructor, KindDestructor, KindOperator, KindAccessor:
		return true
	}
	return false
}

// IsContainer reports whether the kind scopes other declarations
func (k Kind) IsContainer() bool {
	return k == KindCompilationUnit || k == KindNamespace || k == KindType
}

// IsPositional reports whether nodes of this kind are identified by position
func (k Kind) IsPositional() bool {
	return k == KindParameter || k == KindTypeParameter || k == KindTopLevelStatement
}

// TypeKind refines KindType declarations
type TypeKind uint8

const (
	TypeKindNone TypeKind = iota
	TypeKindClass
	TypeKindStruct
	TypeKindInterface
	TypeKindEnum
	TypeKindRecord
	TypeKindDelegate
)

var typeKindNames = [...]string{
	TypeKindNone:      "",
	TypeKindClass:     "class",
	TypeKindStruct:    "struct",
	TypeKindInterface: "interface",
	TypeKindEnum:      "enum",
	TypeKindRecord:    "record",
	TypeKindDelegate:  "delegate",
}

func (k TypeKind) String() string {
	if int(k) < len(typeKindNames) {
		return typeKindNames[k]
	}
	return ""
}

// Variance describes generic parameter variance
type Variance uint8

const (
	Invariant Variance = iota
	Covariant
	Contravariant
)

func (v Variance) String() string {
	switch v {
	case Covariant:
		return "out"
	case Contravariant:
		return "in"
	}
	return ""
}
