package rude

import (
	"fmt"
	"strings"
)

// Kind is a closed set of rude edit diagnostics
type Kind uint16

const (
	InternalError Kind = iota + 1
	Insert
	Delete
	Move
	Rename
	ModifiersUpdate
	ChangingAccessibility
	TypeUpdate
	ChangingTypeKind
	BaseTypeOrInterfaceUpdate
	ExplicitInterfaceUpdate
	InsertIntoGenericType
	InsertGenericMethod
	GenericMethodUpdate
	InsertIntoStruct
	InsertIntoClassWithLayout
	InsertIntoInterface
	InsertVirtual
	InsertExplicitInterfaceMember
	InsertExtern
	InsertParameter
	DeleteParameter
	RenameParameter
	ChangingParameterTypes
	ChangeParameterDefault
	ReorderParameter
	InsertTypeParameter
	DeleteTypeParameter
	RenameTypeParameter
	ReorderTypeParameter
	VarianceUpdate
	ChangingConstraints
	ChangingAttributes
	ChangingInteropAttributes
	ReorderInLayoutType
	ChangeConstant
	InsertConstructorToTypeWithInitializersWithLambdas
	InsertTopLevelStatements
	DeleteTopLevelStatements
	UpdateActiveStatement
	DeleteActiveStatement
	ActiveStatementInRudeMember
)

type descriptor struct {
	code     string
	template string
}

var descriptors = map[Kind]descriptor{
	InternalError:                 {"HE0001", "An internal error occurred while analyzing the change to {0}: {1}"},
	Insert:                        {"HE1001", "Adding {0} requires restarting the application"},
	Delete:                        {"HE1002", "Deleting {0} requires restarting the application"},
	Move:                          {"HE1003", "Moving {0} to a different scope requires restarting the application"},
	Rename:                        {"HE1004", "Renaming {0} requires restarting the application"},
	ModifiersUpdate:               {"HE1005", "Updating the modifiers of {0} requires restarting the application"},
	ChangingAccessibility:         {"HE1006", "Changing the accessibility of {0} requires restarting the application"},
	TypeUpdate:                    {"HE1007", "Changing the type of {0} requires restarting the application"},
	ChangingTypeKind:              {"HE1008", "Changing the kind of {0} requires restarting the application"},
	BaseTypeOrInterfaceUpdate:     {"HE1009", "Changing the base type or interfaces of {0} requires restarting the application"},
	ExplicitInterfaceUpdate:       {"HE1010", "Changing the implemented interface of {0} requires restarting the application"},
	InsertIntoGenericType:         {"HE1011", "Adding {0} into a generic type requires restarting the application"},
	InsertGenericMethod:           {"HE1012", "Adding generic {0} requires restarting the application"},
	GenericMethodUpdate:           {"HE1013", "Updating {0} within a generic type or method requires restarting the application"},
	InsertIntoStruct:              {"HE1014", "Adding {0} into struct {1} requires restarting the application"},
	InsertIntoClassWithLayout:     {"HE1015", "Adding {0} into {1} with explicit or sequential layout requires restarting the application"},
	InsertIntoInterface:           {"HE1016", "Adding {0} into an interface requires restarting the application"},
	InsertVirtual:                 {"HE1017", "Adding abstract, virtual or override {0} requires restarting the application"},
	InsertExplicitInterfaceMember: {"HE1018", "Adding explicit interface implementation {0} requires restarting the application"},
	InsertExtern:                  {"HE1019", "Adding extern {0} requires restarting the application"},
	InsertParameter:               {"HE1020", "Adding parameter {0} requires restarting the application"},
	DeleteParameter:               {"HE1021", "Deleting parameter {0} requires restarting the application"},
	RenameParameter:               {"HE1022", "Renaming parameter {0} requires restarting the application"},
	ChangingParameterTypes:        {"HE1023", "Changing parameter types of {0} requires restarting the application"},
	ChangeParameterDefault:        {"HE1024", "Changing the default value of parameter {0} requires restarting the application"},
	ReorderParameter:              {"HE1025", "Reordering parameter {0} requires restarting the application"},
	InsertTypeParameter:           {"HE1026", "Adding type parameter {0} requires restarting the application"},
	DeleteTypeParameter:           {"HE1027", "Deleting type parameter {0} requires restarting the application"},
	RenameTypeParameter:           {"HE1028", "Renaming type parameter {0} requires restarting the application"},
	ReorderTypeParameter:          {"HE1029", "Reordering type parameter {0} requires restarting the application"},
	VarianceUpdate:                {"HE1030", "Changing the variance of type parameter {0} requires restarting the application"},
	ChangingConstraints:           {"HE1031", "Changing the constraints of type parameter {0} requires restarting the application"},
	ChangingAttributes:            {"HE1032", "Changing attribute {1} of {0} requires restarting the application"},
	ChangingInteropAttributes:     {"HE1033", "Changing interop attribute {1} of {0} requires restarting the application"},
	ReorderInLayoutType:           {"HE1034", "Reordering {0} in a type with explicit or sequential layout requires restarting the application"},
	ChangeConstant:                {"HE1035", "Changing the value of constant {0} requires restarting the application"},
	InsertConstructorToTypeWithInitializersWithLambdas: {"HE1036", "Adding a constructor to {0} whose field or property initializers contain lambdas requires restarting the application"},
	InsertTopLevelStatements:    {"HE1037", "Introducing top-level statements requires restarting the application"},
	DeleteTopLevelStatements:    {"HE1038", "Removing all top-level statements requires restarting the application"},
	UpdateActiveStatement:       {"HE2001", "Updating an active statement in {0} requires restarting the application"},
	DeleteActiveStatement:       {"HE2002", "Deleting {0} that contains an active statement requires restarting the application"},
	ActiveStatementInRudeMember: {"HE2003", "An active statement in {0} cannot be remapped because the member was edited rudely"},
}

// Code returns the stable diagnostic code
func (k Kind) Code() string {
	if d, ok := descriptors[k]; ok {
		return d.code
	}
	return "HE0000"
}

// Format renders the message template with arguments
func (k Kind) Format(args ...string) string {
	d, ok := descriptors[k]
	if !ok {
		return fmt.Sprintf("unknown rude edit %d", k)
	}
	message := d.template
	for i, arg := range args {
		message = strings.ReplaceAll(message, fmt.Sprintf("{%d}", i), arg)
	}
	return message
}

func (k Kind) String() string {
	return k.Code()
}

// Kinds returns all defined kinds in declaration order
func Kinds() []Kind {
	result := make([]Kind, 0, len(descriptors))
	for k := InternalError; k <= ActiveStatementInRudeMember; k++ {
		result = append(result, k)
	}
	return result
}

// MarshalText encodes the kind as its diagnostic code
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.Code()), nil
}

// UnmarshalText decodes a diagnostic code
func (k *Kind) UnmarshalText(text []byte) error {
	for candidate, d := range descriptors {
		if d.code == string(text) {
			*k = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown rude edit code: %s", text)
}
