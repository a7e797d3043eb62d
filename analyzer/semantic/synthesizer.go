package semantic

import (
	"context"
	"sort"

	"github.com/viant/hotedit/analyzer/edit"
	"github.com/viant/hotedit/analyzer/match"
	"github.com/viant/hotedit/analyzer/rude"
	"github.com/viant/hotedit/analyzer/symbol"
	"github.com/viant/hotedit/inspector/graph"
)

type editKey struct {
	kind Kind
	id   string
}

// initialization collects initializer changes of one type (or namespace) per storage class
type initialization struct {
	container *graph.Node
	static    bool
	maps      []*match.SyntaxMap
}

type initKey struct {
	container *graph.Node
	static    bool
}

type synthesizer struct {
	match      *match.Match
	correlator *symbol.Correlator
	edits      []*Edit
	index      map[editKey]*Edit
	inserted   map[*graph.Node]bool
	deleted    map[*graph.Node]bool
	inits      map[initKey]*initialization
	initOrder  []initKey
	entry      *Edit
	entryMaps  []*match.SyntaxMap
}

// Synthesize expands the applicable edits of a document into ordered symbol edits.
// It fails with a symbol error when the document cannot be correlated.
func Synthesize(ctx context.Context, m *match.Match, analyzed *rude.Result, path string, correlator *symbol.Correlator) ([]*Edit, error) {
	if err := correlator.Check(ctx, path); err != nil {
		return nil, err
	}
	s := &synthesizer{
		match:      m,
		correlator: correlator,
		index:      map[editKey]*Edit{},
		inserted:   map[*graph.Node]bool{},
		deleted:    map[*graph.Node]bool{},
		inits:      map[initKey]*initialization{},
	}
	for _, e := range analyzed.Edits {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.edit(ctx, e); err != nil {
			return nil, err
		}
	}
	if err := s.constructors(ctx); err != nil {
		return nil, err
	}
	if err := s.entryPoint(ctx); err != nil {
		return nil, err
	}
	sort.SliceStable(s.edits, func(i, j int) bool {
		return s.edits[i].rank() < s.edits[j].rank()
	})
	return s.edits, nil
}

func (s *synthesizer) edit(ctx context.Context, e *edit.Edit) error {
	switch e.Node().Kind {
	case graph.KindNamespace, graph.KindImport, graph.KindCompilationUnit:
		return nil
	case graph.KindParameter, graph.KindTypeParameter:
		return s.parameter(ctx, e)
	case graph.KindTopLevelStatement:
		s.topLevel(e)
		return nil
	case graph.KindType:
		return s.typeEdit(ctx, e)
	}
	return s.member(ctx, e)
}

func (s *synthesizer) typeEdit(ctx context.Context, e *edit.Edit) error {
	switch e.Kind {
	case edit.Insert:
		return s.insertType(ctx, e.New)
	case edit.Delete:
		return s.deleteType(ctx, e.Old)
	case edit.Move:
		if err := s.deleteType(ctx, e.Old); err != nil {
			return err
		}
		return s.insertType(ctx, e.New)
	}
	if e.Changes&^(edit.ChangePartial|edit.ChangeName) == 0 {
		return nil
	}
	return s.update(ctx, e.Old, e.New, false)
}

func (s *synthesizer) insertType(ctx context.Context, node *graph.Node) error {
	if s.folded(node, s.inserted) {
		s.inserted[node] = true
		return nil
	}
	if e := s.match.Entity(node); e != nil && len(s.match.Counterparts(node)) > 0 {
		return nil
	}
	s.inserted[node] = true
	newSymbol, err := s.correlator.New(ctx, node)
	if err != nil {
		return err
	}
	s.add(&Edit{Kind: Insert, New: newSymbol})
	return nil
}

func (s *synthesizer) deleteType(ctx context.Context, node *graph.Node) error {
	if s.folded(node, s.deleted) {
		s.deleted[node] = true
		return nil
	}
	if e := s.match.Entity(node); e != nil && len(s.match.Counterparts(node)) > 0 {
		return nil
	}
	s.deleted[node] = true
	oldSymbol, err := s.correlator.Old(ctx, node)
	if err != nil {
		return err
	}
	s.add(&Edit{Kind: Delete, Old: oldSymbol})
	return nil
}

func (s *synthesizer) member(ctx context.Context, e *edit.Edit) error {
	switch e.Kind {
	case edit.Insert:
		return s.insertMember(ctx, e.New)
	case edit.Delete:
		return s.deleteMember(ctx, e.Old)
	case edit.Move:
		if err := s.deleteMember(ctx, e.Old); err != nil {
			return err
		}
		return s.insertMember(ctx, e.New)
	}
	changes := e.Changes &^ edit.ChangePartial
	if changes.Has(edit.ChangeInitializer) && (initializedStorage(e.Old) || initializedStorage(e.New)) {
		s.initialize(s.container(e.New), e.New.IsStatic(), match.Bodies(e.Old, e.New).SyntaxMap())
		changes &^= edit.ChangeInitializer
	}
	if changes == 0 {
		return nil
	}
	if err := s.update(ctx, e.Old, e.New, changes.Has(edit.ChangeBody|edit.ChangeInitializer)); err != nil {
		return err
	}
	switch e.New.Kind {
	case graph.KindProperty, graph.KindIndexer, graph.KindEvent:
		for _, accessor := range e.New.ChildrenOf(graph.KindAccessor) {
			if old := s.match.OldOf(accessor); old != nil {
				if err := s.update(ctx, old, accessor, accessor.Body != "" || old.Body != ""); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *synthesizer) insertMember(ctx context.Context, node *graph.Node) error {
	if s.folded(node, s.inserted) {
		return nil
	}
	newSymbol, err := s.correlator.New(ctx, node)
	if err != nil {
		return err
	}
	if replaced, err := s.replacesImplicit(ctx, node, newSymbol); err != nil || replaced != nil {
		if replaced != nil {
			s.add(&Edit{Kind: Update, Old: replaced, New: newSymbol, PartialType: partialType(node), PreserveLocalVariables: true})
		}
		return err
	}
	s.add(&Edit{Kind: Insert, New: newSymbol, PartialType: partialType(node)})
	if initializedStorage(node) {
		s.initialize(s.container(node), node.IsStatic(), nil)
	}
	return nil
}

func (s *synthesizer) deleteMember(ctx context.Context, node *graph.Node) error {
	if s.folded(node, s.deleted) {
		return nil
	}
	oldSymbol, err := s.correlator.Old(ctx, node)
	if err != nil {
		return err
	}
	if implicit, err := s.becomesImplicit(ctx, node, oldSymbol); err != nil || implicit != nil {
		if implicit != nil {
			s.add(&Edit{Kind: Update, Old: oldSymbol, New: implicit, PartialType: partialType(node)})
		}
		return err
	}
	s.add(&Edit{Kind: Delete, Old: oldSymbol, PartialType: partialType(node)})
	if initializedStorage(node) {
		if container := s.newCounterpart(s.container(node)); container != nil {
			s.initialize(container, node.IsStatic(), nil)
		}
	}
	return nil
}

// parameter changes update the owning member or type
func (s *synthesizer) parameter(ctx context.Context, e *edit.Edit) error {
	var oldOwner, newOwner *graph.Node
	if e.New != nil {
		newOwner = e.New.Parent()
		oldOwner = s.match.OldOf(newOwner)
	} else {
		oldOwner = e.Old.Parent()
		newOwner = s.match.NewOf(oldOwner)
	}
	if oldOwner == nil || newOwner == nil || s.folded(newOwner, s.inserted) {
		return nil
	}
	return s.update(ctx, oldOwner, newOwner, false)
}

func (s *synthesizer) update(ctx context.Context, old, new *graph.Node, body bool) error {
	oldSymbol, err := s.correlator.Old(ctx, old)
	if err != nil {
		return err
	}
	newSymbol, err := s.correlator.New(ctx, new)
	if err != nil {
		return err
	}
	ret := &Edit{Kind: Update, Old: oldSymbol, New: newSymbol, PartialType: partialType(new)}
	if body {
		ret.PreserveLocalVariables = true
		ret.SyntaxMap = match.Bodies(old, new).SyntaxMap()
	}
	s.add(ret)
	return nil
}

// replacesImplicit returns the implicit old constructor a declared parameterless constructor replaces
func (s *synthesizer) replacesImplicit(ctx context.Context, node *graph.Node, newSymbol *symbol.Symbol) (*symbol.Symbol, error) {
	if !parameterlessConstructor(node) {
		return nil, nil
	}
	oldType := s.oldCounterpart(node.ContainingType())
	if oldType == nil {
		return nil, nil
	}
	candidates, err := s.correlator.OldConstructors(ctx, oldType, node.IsStatic())
	if err != nil {
		return nil, err
	}
	return implicitWithID(candidates, newSymbol.ID), nil
}

// becomesImplicit returns the implicit new constructor that replaces a deleted parameterless constructor
func (s *synthesizer) becomesImplicit(ctx context.Context, node *graph.Node, oldSymbol *symbol.Symbol) (*symbol.Symbol, error) {
	if !parameterlessConstructor(node) {
		return nil, nil
	}
	newType := s.newCounterpart(node.ContainingType())
	if newType == nil {
		return nil, nil
	}
	candidates, err := s.correlator.Constructors(ctx, newType, node.IsStatic())
	if err != nil {
		return nil, err
	}
	return implicitWithID(candidates, oldSymbol.ID), nil
}

func implicitWithID(candidates []*symbol.Symbol, id string) *symbol.Symbol {
	for _, candidate := range candidates {
		if candidate.Implicit && candidate.ID == id {
			return candidate
		}
	}
	return nil
}

func parameterlessConstructor(node *graph.Node) bool {
	return node.Kind == graph.KindConstructor && len(node.ParameterTypes()) == 0 && node.ContainingType() != nil
}

// initialize schedules updates of every constructor running the container's initializers
func (s *synthesizer) initialize(container *graph.Node, static bool, syntaxMap *match.SyntaxMap) {
	if container == nil || s.folded(container, s.inserted) || s.inserted[container] {
		return
	}
	if container.Kind == graph.KindType {
		container = s.match.Parts(container)[0]
	}
	key := initKey{container: container, static: static}
	item, ok := s.inits[key]
	if !ok {
		item = &initialization{container: container, static: static}
		s.inits[key] = item
		s.initOrder = append(s.initOrder, key)
	}
	if syntaxMap.Len() > 0 {
		item.maps = append(item.maps, syntaxMap)
	}
}

func (s *synthesizer) constructors(ctx context.Context) error {
	for _, key := range s.initOrder {
		item := s.inits[key]
		symbols, err := s.correlator.Constructors(ctx, item.container, item.static)
		if err != nil {
			return err
		}
		var syntaxMap *match.SyntaxMap
		for _, m := range item.maps {
			syntaxMap = syntaxMap.Merge(m)
		}
		var oldSymbols []*symbol.Symbol
		if item.static {
			if oldContainer := s.oldCounterpart(item.container); oldContainer != nil {
				if oldSymbols, err = s.correlator.OldConstructors(ctx, oldContainer, true); err != nil {
					return err
				}
			}
		}
		for _, constructor := range symbols {
			ret := &Edit{Kind: Update, Old: constructor, New: constructor, PreserveLocalVariables: true, SyntaxMap: syntaxMap}
			if item.container.Kind == graph.KindType && item.container.Modifiers.Has(graph.Partial) {
				ret.PartialType = item.container.QualifiedName()
			}
			if item.static && constructor.Implicit && len(oldSymbols) == 0 {
				ret.Kind, ret.Old, ret.PreserveLocalVariables, ret.SyntaxMap = Insert, nil, false, nil
			}
			s.add(ret)
		}
	}
	return nil
}

// topLevel collects changes of top-level statements; they all update the entry point
func (s *synthesizer) topLevel(e *edit.Edit) {
	if s.entry == nil {
		s.entry = &Edit{Kind: Update, PreserveLocalVariables: true}
	}
	if e.Old != nil && e.New != nil {
		s.entryMaps = append(s.entryMaps, match.Bodies(e.Old, e.New).SyntaxMap())
	}
}

func (s *synthesizer) entryPoint(ctx context.Context) error {
	if s.entry == nil {
		return nil
	}
	entry, err := s.correlator.EntryPoint(ctx)
	if err != nil {
		return err
	}
	s.entry.Old, s.entry.New = entry, entry
	for _, m := range s.entryMaps {
		s.entry.SyntaxMap = s.entry.SyntaxMap.Merge(m)
	}
	s.add(s.entry)
	return nil
}

// add appends an edit, merging it into an earlier edit of the same kind and symbol
func (s *synthesizer) add(e *Edit) {
	key := editKey{kind: e.Kind, id: e.Symbol().ID}
	if existing, ok := s.index[key]; ok {
		existing.PreserveLocalVariables = existing.PreserveLocalVariables || e.PreserveLocalVariables
		existing.SyntaxMap = existing.SyntaxMap.Merge(e.SyntaxMap)
		return
	}
	s.index[key] = e
	s.edits = append(s.edits, e)
}

// folded reports whether an enclosing type is inserted (or deleted) as a whole
func (s *synthesizer) folded(node *graph.Node, types map[*graph.Node]bool) bool {
	for parent := node.Parent(); parent != nil; parent = parent.Parent() {
		if types[parent] {
			return true
		}
	}
	return false
}

// container returns the type, or namespace level scope, whose initializers run node's initializer
func (s *synthesizer) container(node *graph.Node) *graph.Node {
	if typ := node.ContainingType(); typ != nil {
		return typ
	}
	return node.Parent()
}

func (s *synthesizer) oldCounterpart(node *graph.Node) *graph.Node {
	if node == nil {
		return nil
	}
	if old := s.match.OldOf(node); old != nil {
		return old
	}
	if parts := s.match.Counterparts(node); len(parts) > 0 {
		return parts[0]
	}
	return nil
}

func (s *synthesizer) newCounterpart(node *graph.Node) *graph.Node {
	if node == nil {
		return nil
	}
	if updated := s.match.NewOf(node); updated != nil {
		return updated
	}
	if parts := s.match.Counterparts(node); len(parts) > 0 {
		return parts[0]
	}
	return nil
}

// initializedStorage reports a field, auto-property or field-like event with an initializer
func initializedStorage(node *graph.Node) bool {
	if node == nil || node.Initializer == "" {
		return false
	}
	switch node.Kind {
	case graph.KindField:
		return !node.Modifiers.Has(graph.Const)
	case graph.KindProperty:
		return rude.IsAutoProperty(node)
	case graph.KindEvent:
		return len(node.ChildrenOf(graph.KindAccessor)) == 0
	}
	return false
}

func partialType(node *graph.Node) string {
	owner := node.ContainingType()
	if owner == nil || !owner.Modifiers.Has(graph.Partial) {
		return ""
	}
	return owner.QualifiedName()
}
