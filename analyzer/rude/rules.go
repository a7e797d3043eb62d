package rude

import (
	"github.com/viant/hotedit/analyzer/capability"
	"github.com/viant/hotedit/analyzer/edit"
	"github.com/viant/hotedit/inspector/graph"
)

// rule inspects one edit and yields at most one diagnostic
type rule func(c *checker, e *edit.Edit) (Diagnostic, bool)

type ruleKey struct {
	decl graph.Kind
	edit edit.Kind
}

var (
	memberKinds = []graph.Kind{
		graph.KindMethod, graph.KindConstructor, graph.KindDestructor, graph.KindOperator,
		graph.KindField, graph.KindEnumMember, graph.KindProperty, graph.KindEvent,
		graph.KindIndexer, graph.KindAccessor,
	}
	signatureKinds = append([]graph.Kind{graph.KindType}, memberKinds...)
	updateKinds    = []edit.Kind{edit.Update, edit.Move, edit.Reorder}
)

var table = map[ruleKey][]rule{}

func register(decls []graph.Kind, edits []edit.Kind, rules ...rule) {
	for _, decl := range decls {
		for _, e := range edits {
			key := ruleKey{decl: decl, edit: e}
			table[key] = append(table[key], rules...)
		}
	}
}

func init() {
	register([]graph.Kind{graph.KindType}, []edit.Kind{edit.Insert}, insertType)
	register([]graph.Kind{graph.KindType}, []edit.Kind{edit.Delete}, deleteType)
	register([]graph.Kind{graph.KindType, graph.KindNamespace}, []edit.Kind{edit.Move}, moveDeclaration)
	register(memberKinds, []edit.Kind{edit.Insert}, insertMember, insertConstructorWithLambdaInitializers)
	register(memberKinds, []edit.Kind{edit.Delete}, deleteMember)
	register(memberKinds, []edit.Kind{edit.Reorder}, reorderInLayout)

	register([]graph.Kind{graph.KindParameter}, []edit.Kind{edit.Insert}, childOfExisting(InsertParameter))
	register([]graph.Kind{graph.KindParameter}, []edit.Kind{edit.Delete}, childOfExisting(DeleteParameter))
	register([]graph.Kind{graph.KindParameter}, []edit.Kind{edit.Reorder}, always(ReorderParameter))
	register([]graph.Kind{graph.KindParameter}, updateKinds, renameParameter, parameterType, parameterDefault)
	register([]graph.Kind{graph.KindTypeParameter}, []edit.Kind{edit.Insert}, childOfExisting(InsertTypeParameter))
	register([]graph.Kind{graph.KindTypeParameter}, []edit.Kind{edit.Delete}, childOfExisting(DeleteTypeParameter))
	register([]graph.Kind{graph.KindTypeParameter}, []edit.Kind{edit.Reorder}, always(ReorderTypeParameter))
	register([]graph.Kind{graph.KindTypeParameter}, updateKinds,
		changed(edit.ChangeName, RenameTypeParameter),
		changed(edit.ChangeVariance, VarianceUpdate),
		changed(edit.ChangeConstraints, ChangingConstraints),
		attributes,
	)

	register(signatureKinds, updateKinds,
		changed(edit.ChangeAccessibility, ChangingAccessibility),
		modifiers,
		attributes,
		changed(edit.ChangeTypeKind, ChangingTypeKind),
		changed(edit.ChangeType, TypeUpdate),
		changed(edit.ChangeBases, BaseTypeOrInterfaceUpdate),
		changed(edit.ChangeExplicitInterface, ExplicitInterfaceUpdate),
		constantValue,
		genericBody,
	)
	register([]graph.Kind{graph.KindTopLevelStatement}, []edit.Kind{edit.Insert}, insertTopLevel)
	register([]graph.Kind{graph.KindTopLevelStatement}, []edit.Kind{edit.Delete}, deleteTopLevel)
}

func always(kind Kind) rule {
	return func(c *checker, e *edit.Edit) (Diagnostic, bool) {
		return c.diagnostic(kind, e), true
	}
}

func changed(flags edit.Change, kind Kind) rule {
	return func(c *checker, e *edit.Edit) (Diagnostic, bool) {
		if !e.Changes.Has(flags) {
			return Diagnostic{}, false
		}
		return c.diagnostic(kind, e), true
	}
}

// childOfExisting reports parameter and type parameter edits of surviving declarations
func childOfExisting(kind Kind) rule {
	return func(c *checker, e *edit.Edit) (Diagnostic, bool) {
		if e.Kind == edit.Insert && e.OldParent == nil {
			return Diagnostic{}, false
		}
		if e.Kind == edit.Delete && e.NewParent == nil {
			return Diagnostic{}, false
		}
		return c.diagnostic(kind, e), true
	}
}

// insertType gates top-level types on NewTypeDefinition; a type nested into an existing
// type is free unless the container is generic
func insertType(c *checker, e *edit.Edit) (Diagnostic, bool) {
	if !c.topmostInsert(e.New) {
		return Diagnostic{}, false
	}
	if owner := e.New.ContainingType(); owner != nil {
		if owner.IsGeneric() && !c.caps.Has(capability.GenericAddMethodToExistingType) {
			return c.diagnostic(InsertIntoGenericType, e), true
		}
		return Diagnostic{}, false
	}
	if c.caps.Has(capability.NewTypeDefinition) {
		return Diagnostic{}, false
	}
	return c.diagnostic(Insert, e), true
}

func deleteType(c *checker, e *edit.Edit) (Diagnostic, bool) {
	if !c.topmostDelete(e.Old) || c.caps.Has(capability.NewTypeDefinition) {
		return Diagnostic{}, false
	}
	return c.diagnostic(Delete, e), true
}

func moveDeclaration(c *checker, e *edit.Edit) (Diagnostic, bool) {
	if c.caps.Has(capability.NewTypeDefinition) {
		return Diagnostic{}, false
	}
	return c.diagnostic(Move, e), true
}

func insertMember(c *checker, e *edit.Edit) (Diagnostic, bool) {
	node := e.New
	if !c.topmostInsert(node) {
		return Diagnostic{}, false
	}
	owner := node.ContainingType()
	switch {
	case isInterface(owner):
		if node.Kind.IsMethodLike() && node.Body != "" && c.caps.Has(capability.AddDefaultInterfaceMember) {
			return Diagnostic{}, false
		}
		return c.diagnostic(InsertIntoInterface, e), true
	case node.Modifiers.Has(graph.Extern):
		return c.diagnostic(InsertExtern, e), true
	case isVirtual(node) && !c.caps.Has(capability.AddVirtualMember):
		return c.diagnostic(InsertVirtual, e), true
	case node.Signature.ExplicitInterface != "" && !c.caps.Has(capability.AddExplicitInterfaceImplementation):
		return c.diagnostic(InsertExplicitInterfaceMember, e), true
	}
	if hasStorage(node) {
		return c.insertStorage(e, owner)
	}
	if owner != nil && owner.IsGeneric() && !c.caps.Has(capability.GenericAddMethodToExistingType) {
		return c.diagnostic(InsertIntoGenericType, e), true
	}
	if node.Kind.IsMethodLike() && node.Arity() > 0 && !c.caps.Has(capability.GenericAddMethodToExistingType) {
		return c.diagnostic(InsertGenericMethod, e), true
	}
	if !c.caps.Has(capability.AddMethodToExistingType) {
		return c.diagnostic(Insert, e), true
	}
	return Diagnostic{}, false
}

func (c *checker) insertStorage(e *edit.Edit, owner *graph.Node) (Diagnostic, bool) {
	node := e.New
	static := node.IsStatic() || node.Kind == graph.KindEnumMember
	if !static && owner != nil {
		if owner.TypeKind == graph.TypeKindStruct {
			return c.diagnostic(InsertIntoStruct, e, owner.DisplayName()), true
		}
		if hasLayout(owner) {
			return c.diagnostic(InsertIntoClassWithLayout, e, owner.DisplayName()), true
		}
	}
	if owner != nil && owner.IsGeneric() && !c.caps.Has(capability.GenericAddFieldToExistingType) {
		return c.diagnostic(InsertIntoGenericType, e), true
	}
	required := capability.AddInstanceFieldToExistingType
	if static {
		required = capability.AddStaticFieldToExistingType
	}
	if !c.caps.Has(required) {
		return c.diagnostic(Insert, e), true
	}
	return Diagnostic{}, false
}

func insertConstructorWithLambdaInitializers(c *checker, e *edit.Edit) (Diagnostic, bool) {
	node := e.New
	if node.Kind != graph.KindConstructor || !c.topmostInsert(node) {
		return Diagnostic{}, false
	}
	owner := node.ContainingType()
	if !initializersWithLambdas(c.match, owner, node.IsStatic()) {
		return Diagnostic{}, false
	}
	if owner == nil {
		return Diagnostic{}, false
	}
	return c.diagnostic(InsertConstructorToTypeWithInitializersWithLambdas, e, owner.DisplayName()), true
}

func deleteMember(c *checker, e *edit.Edit) (Diagnostic, bool) {
	node := e.Old
	if !c.topmostDelete(node) {
		return Diagnostic{}, false
	}
	owner := node.ContainingType()
	switch {
	case hasStorage(node), isInterface(owner), isVirtual(node), node.Modifiers.Has(graph.Extern),
		node.Signature.ExplicitInterface != "":
		return c.diagnostic(Delete, e), true
	case owner != nil && owner.IsGeneric() && !c.caps.Has(capability.GenericAddMethodToExistingType):
		return c.diagnostic(Delete, e), true
	case !c.caps.Has(capability.AddMethodToExistingType):
		return c.diagnostic(Delete, e), true
	}
	return Diagnostic{}, false
}

func reorderInLayout(c *checker, e *edit.Edit) (Diagnostic, bool) {
	node := e.New
	if !hasStorage(node) || node.IsStatic() {
		return Diagnostic{}, false
	}
	owner := node.ContainingType()
	if node.Kind == graph.KindEnumMember {
		if node.Signature.Default == "" {
			return c.diagnostic(ChangeConstant, e), true
		}
		return Diagnostic{}, false
	}
	if !hasLayout(owner) {
		return Diagnostic{}, false
	}
	return c.diagnostic(ReorderInLayoutType, e), true
}

func renameParameter(c *checker, e *edit.Edit) (Diagnostic, bool) {
	if !e.Changes.Has(edit.ChangeName) || c.caps.Has(capability.UpdateParameters) {
		return Diagnostic{}, false
	}
	return c.diagnostic(RenameParameter, e), true
}

func parameterType(c *checker, e *edit.Edit) (Diagnostic, bool) {
	if !e.Changes.Has(edit.ChangeType | edit.ChangeModifiers) {
		return Diagnostic{}, false
	}
	return c.diagnostic(ChangingParameterTypes, e, e.New.Parent().DisplayName()), true
}

func parameterDefault(c *checker, e *edit.Edit) (Diagnostic, bool) {
	if !e.Changes.Has(edit.ChangeDefault) {
		return Diagnostic{}, false
	}
	return c.diagnostic(ChangeParameterDefault, e), true
}

// modifiers reports modifier changes other than accessibility, partial and hiding
func modifiers(c *checker, e *edit.Edit) (Diagnostic, bool) {
	if !e.Changes.Has(edit.ChangeModifiers) {
		return Diagnostic{}, false
	}
	delta := (e.Old.Modifiers ^ e.New.Modifiers).Without(graph.AccessMask | graph.Partial | graph.New)
	if delta == 0 {
		return Diagnostic{}, false
	}
	return c.diagnostic(ModifiersUpdate, e), true
}

func attributes(c *checker, e *edit.Edit) (Diagnostic, bool) {
	if !e.Changes.Has(edit.ChangeAttributes) {
		return Diagnostic{}, false
	}
	removed, added := e.Old.Attributes.Diff(e.New.Attributes)
	changes := append(removed, added...)
	for _, attr := range changes {
		if IsInteropAttribute(attr) {
			return c.diagnostic(ChangingInteropAttributes, e, attr.Name), true
		}
	}
	if c.caps.Has(capability.ChangeCustomAttributes) || len(changes) == 0 {
		return Diagnostic{}, false
	}
	return c.diagnostic(ChangingAttributes, e, changes[0].Name), true
}

func constantValue(c *checker, e *edit.Edit) (Diagnostic, bool) {
	node := e.New
	switch {
	case node.Kind == graph.KindEnumMember && e.Changes.Has(edit.ChangeDefault|edit.ChangeInitializer):
		return c.diagnostic(ChangeConstant, e), true
	case node.Modifiers.Has(graph.Const) && e.Changes.Has(edit.ChangeInitializer):
		return c.diagnostic(ChangeConstant, e), true
	}
	return Diagnostic{}, false
}

// genericBody reports code changes inside generic types or methods
func genericBody(c *checker, e *edit.Edit) (Diagnostic, bool) {
	if !e.Changes.Has(edit.ChangeBody|edit.ChangeInitializer) || c.caps.Has(capability.GenericUpdateMethod) {
		return Diagnostic{}, false
	}
	if e.New.Kind == graph.KindType || e.New.Modifiers.Has(graph.Const) || e.New.Kind == graph.KindEnumMember {
		return Diagnostic{}, false
	}
	if !e.New.IsGeneric() || !e.Old.IsGeneric() {
		return Diagnostic{}, false
	}
	return c.diagnostic(GenericMethodUpdate, e), true
}

func insertTopLevel(c *checker, e *edit.Edit) (Diagnostic, bool) {
	if hasTopLevelStatements(c.match.Old()) || c.caps.Has(capability.NewTypeDefinition) {
		return Diagnostic{}, false
	}
	return c.diagnostic(InsertTopLevelStatements, e), true
}

func deleteTopLevel(c *checker, e *edit.Edit) (Diagnostic, bool) {
	if hasTopLevelStatements(c.match.New()) {
		return Diagnostic{}, false
	}
	return c.diagnostic(DeleteTopLevelStatements, e), true
}
