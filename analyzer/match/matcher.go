package match

import (
	"context"
	"sort"

	"github.com/viant/hotedit/inspector/graph"
)

// matchEntity pairs the parts of one logical container and matches their pooled members
func (m *Match) matchEntity(ctx context.Context, key string, olds, news []*graph.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entity := &Entity{Key: key, Old: olds, New: news}
	if len(olds)+len(news) > 1 || isMergeable(olds) || isMergeable(news) {
		for _, part := range olds {
			m.entities[part] = entity
		}
		for _, part := range news {
			m.entities[part] = entity
		}
	}
	m.pairParts(olds, news)
	var oldMembers, newMembers []*graph.Node
	for _, part := range olds {
		oldMembers = append(oldMembers, part.Declarations()...)
	}
	for _, part := range news {
		newMembers = append(newMembers, part.Declarations()...)
	}
	return m.matchPool(ctx, oldMembers, newMembers)
}

func isMergeable(parts []*graph.Node) bool {
	for _, part := range parts {
		if part.Kind != graph.KindType || part.Modifiers.Has(graph.Partial) {
			return true
		}
	}
	return false
}

// pairParts matches entity parts declared in the same document; a lone part on each side
// pairs even across documents
func (m *Match) pairParts(olds, news []*graph.Node) {
	used := map[*graph.Node]bool{}
	var unpairedOld []*graph.Node
	for _, old := range olds {
		paired := false
		for _, new := range news {
			if used[new] || new.Path() != old.Path() {
				continue
			}
			if m.add(old, new) {
				used[new] = true
				paired = true
				break
			}
		}
		if !paired {
			unpairedOld = append(unpairedOld, old)
		}
	}
	var unpairedNew []*graph.Node
	for _, new := range news {
		if !used[new] {
			unpairedNew = append(unpairedNew, new)
		}
	}
	if len(olds) == 1 && len(news) == 1 && len(unpairedOld) == 1 && len(unpairedNew) == 1 {
		m.add(unpairedOld[0], unpairedNew[0])
	}
}

// matchPool matches a pool of sibling declarations that may come from several documents
func (m *Match) matchPool(ctx context.Context, olds, news []*graph.Node) error {
	olds = m.pending(olds, true)
	news = m.pending(news, false)
	groups := map[string]*Entity{}
	var keys []string
	partial := map[string]bool{}
	for _, node := range append(append([]*graph.Node{}, olds...), news...) {
		if node.Kind == graph.KindType && node.Modifiers.Has(graph.Partial) {
			partial[entityKey(node)] = true
		}
	}
	isEntity := func(node *graph.Node) bool {
		switch node.Kind {
		case graph.KindNamespace:
			return true
		case graph.KindType:
			return partial[entityKey(node)]
		}
		return false
	}
	group := func(node *graph.Node) *Entity {
		key := entityKey(node)
		entity, ok := groups[key]
		if !ok {
			entity = &Entity{Key: key}
			groups[key] = entity
			keys = append(keys, key)
		}
		return entity
	}
	var plainOld, plainNew []*graph.Node
	for _, node := range olds {
		if isEntity(node) {
			entity := group(node)
			entity.Old = append(entity.Old, node)
			continue
		}
		plainOld = append(plainOld, node)
	}
	for _, node := range news {
		if isEntity(node) {
			entity := group(node)
			entity.New = append(entity.New, node)
			continue
		}
		plainNew = append(plainNew, node)
	}
	for _, key := range keys {
		entity := groups[key]
		if err := m.matchEntity(ctx, qualify(entity), entity.Old, entity.New); err != nil {
			return err
		}
	}
	return m.matchSiblings(ctx, plainOld, plainNew)
}

func (m *Match) pending(nodes []*graph.Node, old bool) []*graph.Node {
	result := make([]*graph.Node, 0, len(nodes))
	for _, node := range nodes {
		if !m.matched(node, old) {
			result = append(result, node)
		}
	}
	return result
}

func qualify(entity *Entity) string {
	if len(entity.New) > 0 {
		return entity.New[0].QualifiedName()
	}
	if len(entity.Old) > 0 {
		return entity.Old[0].QualifiedName()
	}
	return entity.Key
}

// matchSiblings aligns plain declarations and recurses into matched pairs
func (m *Match) matchSiblings(ctx context.Context, olds, news []*graph.Node) error {
	var pairs [][2]*graph.Node
	collect := func(old, new *graph.Node) {
		if m.add(old, new) {
			pairs = append(pairs, [2]*graph.Node{old, new})
		}
	}
	var positionalOld, positionalNew []*graph.Node
	var keyedOld, keyedNew []*graph.Node
	for _, node := range olds {
		if node.Kind.IsPositional() {
			positionalOld = append(positionalOld, node)
		} else {
			keyedOld = append(keyedOld, node)
		}
	}
	for _, node := range news {
		if node.Kind.IsPositional() {
			positionalNew = append(positionalNew, node)
		} else {
			keyedNew = append(keyedNew, node)
		}
	}
	m.matchKeyed(keyedOld, keyedNew, collect)
	m.matchPositional(positionalOld, positionalNew, collect)
	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.matchPool(ctx, pair[0].Declarations(), pair[1].Declarations()); err != nil {
			return err
		}
	}
	return nil
}

func (m *Match) matchKeyed(olds, news []*graph.Node, collect func(old, new *graph.Node)) {
	oldByKey := map[string][]*graph.Node{}
	for _, node := range olds {
		key := Key(node)
		oldByKey[key] = append(oldByKey[key], node)
	}
	newByKey := map[string][]*graph.Node{}
	var order []string
	for _, node := range news {
		key := Key(node)
		if _, ok := newByKey[key]; !ok {
			order = append(order, key)
		}
		newByKey[key] = append(newByKey[key], node)
	}
	for _, key := range order {
		pairCandidates(oldByKey[key], newByKey[key], collect)
	}

	// relaxed pass: a unique leftover (kind, name) pair is a signature change
	oldByName := map[string][]*graph.Node{}
	for _, node := range olds {
		if key := relaxedKey(node); key != "" && !m.matched(node, true) {
			oldByName[key] = append(oldByName[key], node)
		}
	}
	newByName := map[string][]*graph.Node{}
	order = order[:0]
	for _, node := range news {
		if key := relaxedKey(node); key != "" && !m.matched(node, false) {
			if _, ok := newByName[key]; !ok {
				order = append(order, key)
			}
			newByName[key] = append(newByName[key], node)
		}
	}
	for _, key := range order {
		if len(oldByName[key]) == 1 && len(newByName[key]) == 1 {
			collect(oldByName[key][0], newByName[key][0])
		}
	}
}

// pairCandidates pairs same-key nodes: identical subtrees first, then the smallest distance,
// ties broken by declaration order
func pairCandidates(olds, news []*graph.Node, collect func(old, new *graph.Node)) {
	if len(olds) == 0 || len(news) == 0 {
		return
	}
	usedOld := make([]bool, len(olds))
	usedNew := make([]bool, len(news))
	for j, new := range news {
		for i, old := range olds {
			if usedOld[i] || old.Hashes().Subtree != new.Hashes().Subtree {
				continue
			}
			usedOld[i], usedNew[j] = true, true
			collect(old, new)
			break
		}
	}
	type candidate struct {
		i, j, distance int
	}
	var candidates []candidate
	for j, new := range news {
		if usedNew[j] {
			continue
		}
		for i, old := range olds {
			if usedOld[i] {
				continue
			}
			candidates = append(candidates, candidate{i: i, j: j, distance: distance(old, new)})
		}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].distance != candidates[b].distance {
			return candidates[a].distance < candidates[b].distance
		}
		if candidates[a].j != candidates[b].j {
			return candidates[a].j < candidates[b].j
		}
		return candidates[a].i < candidates[b].i
	})
	for _, c := range candidates {
		if usedOld[c.i] || usedNew[c.j] {
			continue
		}
		usedOld[c.i], usedNew[c.j] = true, true
		collect(olds[c.i], news[c.j])
	}
}

// matchPositional matches parameters and type parameters by name then by position, and
// top-level statements by content then by position
func (m *Match) matchPositional(olds, news []*graph.Node, collect func(old, new *graph.Node)) {
	for _, kind := range []graph.Kind{graph.KindParameter, graph.KindTypeParameter, graph.KindTopLevelStatement} {
		oldOfKind := filterKind(olds, kind)
		newOfKind := filterKind(news, kind)
		if len(oldOfKind) == 0 || len(newOfKind) == 0 {
			continue
		}
		for _, new := range newOfKind {
			for _, old := range oldOfKind {
				if m.matched(old, true) {
					continue
				}
				same := old.Name != "" && old.Name == new.Name
				if kind == graph.KindTopLevelStatement {
					same = old.Hashes().Subtree == new.Hashes().Subtree
				}
				if same {
					collect(old, new)
					break
				}
			}
		}
		var restOld, restNew []*graph.Node
		for _, old := range oldOfKind {
			if !m.matched(old, true) {
				restOld = append(restOld, old)
			}
		}
		for _, new := range newOfKind {
			if !m.matched(new, false) {
				restNew = append(restNew, new)
			}
		}
		for _, old := range restOld {
			for _, new := range restNew {
				if m.matched(new, false) || position(newOfKind, new) != position(oldOfKind, old) {
					continue
				}
				collect(old, new)
				break
			}
		}
	}
}

func position(nodes []*graph.Node, node *graph.Node) int {
	for i, candidate := range nodes {
		if candidate == node {
			return i
		}
	}
	return -1
}

func filterKind(nodes []*graph.Node, kind graph.Kind) []*graph.Node {
	var result []*graph.Node
	for _, node := range nodes {
		if node.Kind == kind {
			result = append(result, node)
		}
	}
	return result
}

// relocate pairs leftover types and namespaces that moved to another scope
func (m *Match) relocate(ctx context.Context) error {
	for {
		olds := m.unmatched(m.oldTrees, true)
		news := m.unmatched(m.newTrees, false)
		oldByKey := map[string][]*graph.Node{}
		for _, node := range olds {
			oldByKey[Key(node)] = append(oldByKey[Key(node)], node)
		}
		newByKey := map[string][]*graph.Node{}
		var order []string
		for _, node := range news {
			key := Key(node)
			if _, ok := newByKey[key]; !ok {
				order = append(order, key)
			}
			newByKey[key] = append(newByKey[key], node)
		}
		var pairs [][2]*graph.Node
		for _, key := range order {
			if len(oldByKey[key]) == 1 && len(newByKey[key]) == 1 {
				old, new := oldByKey[key][0], newByKey[key][0]
				if m.add(old, new) {
					pairs = append(pairs, [2]*graph.Node{old, new})
				}
			}
		}
		if len(pairs) == 0 {
			return nil
		}
		for _, pair := range pairs {
			if err := m.matchPool(ctx, pair[0].Declarations(), pair[1].Declarations()); err != nil {
				return err
			}
		}
	}
}

func (m *Match) unmatched(trees []*graph.Tree, old bool) []*graph.Node {
	var result []*graph.Node
	for _, tree := range trees {
		for _, node := range tree.Nodes() {
			if node.Kind != graph.KindType && node.Kind != graph.KindNamespace {
				continue
			}
			if entity := m.entities[node]; entity != nil && len(entity.Old) > 0 && len(entity.New) > 0 {
				continue
			}
			if !m.matched(node, old) {
				result = append(result, node)
			}
		}
	}
	return result
}
