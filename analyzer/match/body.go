package match

import (
	"github.com/viant/hotedit/inspector/graph"
)

// BodyMatch aligns statements and lambdas of a matched member pair
type BodyMatch struct {
	Old      *graph.Node
	New      *graph.Node
	oldToNew map[*graph.Node]*graph.Node
	newToOld map[*graph.Node]*graph.Node
}

// Bodies matches body nodes of old and new members
func Bodies(old, new *graph.Node) *BodyMatch {
	ret := &BodyMatch{
		Old:      old,
		New:      new,
		oldToNew: map[*graph.Node]*graph.Node{},
		newToOld: map[*graph.Node]*graph.Node{},
	}
	if old != nil && new != nil {
		ret.align(old.BodyNodes(), new.BodyNodes())
	}
	return ret
}

// NewOf returns the new counterpart of an old statement
func (b *BodyMatch) NewOf(old *graph.Node) *graph.Node {
	return b.oldToNew[old]
}

// OldOf returns the old counterpart of a new statement
func (b *BodyMatch) OldOf(new *graph.Node) *graph.Node {
	return b.newToOld[new]
}

// Len returns number of matched body nodes
func (b *BodyMatch) Len() int {
	return len(b.oldToNew)
}

// BodyChanged reports whether body or initializer text differs
func (b *BodyMatch) BodyChanged() bool {
	oldHash, newHash := b.Old.Hashes(), b.New.Hashes()
	return oldHash.Body != newHash.Body || oldHash.Initializer != newHash.Initializer
}

// SyntaxMap returns span pairs for the body, the initializer and every matched body node
func (b *BodyMatch) SyntaxMap() *SyntaxMap {
	ret := &SyntaxMap{}
	if !b.Old.BodySpan.IsEmpty() && !b.New.BodySpan.IsEmpty() {
		ret.add(b.Old, b.New, b.Old.BodySpan, b.New.BodySpan)
	}
	if !b.Old.InitializerSpan.IsEmpty() && !b.New.InitializerSpan.IsEmpty() {
		ret.add(b.Old, b.New, b.Old.InitializerSpan, b.New.InitializerSpan)
	}
	var visit func(nodes []*graph.Node)
	visit = func(nodes []*graph.Node) {
		for _, node := range nodes {
			if old := b.newToOld[node]; old != nil {
				ret.add(old, node, old.Span, node.Span)
			}
			visit(node.BodyNodes())
		}
	}
	visit(b.New.BodyNodes())
	ret.sort()
	return ret
}

func (b *BodyMatch) pair(old, new *graph.Node) {
	b.oldToNew[old] = new
	b.newToOld[new] = old
}

// align pairs identical statements along the longest common subsequence, fills the gaps
// between anchors by kind and local name, then recurses into nested statements
func (b *BodyMatch) align(olds, news []*graph.Node) {
	anchors := lcs(len(olds), len(news), func(i, j int) bool {
		return olds[i].Kind == news[j].Kind && olds[i].Hashes().Subtree == news[j].Hashes().Subtree
	})
	var pairs [][2]*graph.Node
	prevOld, prevNew := 0, 0
	fill := func(oldEnd, newEnd int) {
		next := prevOld
		for j := prevNew; j < newEnd; j++ {
			for i := next; i < oldEnd; i++ {
				if olds[i].Kind != news[j].Kind || olds[i].Name != news[j].Name {
					continue
				}
				pairs = append(pairs, [2]*graph.Node{olds[i], news[j]})
				next = i + 1
				break
			}
		}
	}
	for _, anchor := range anchors {
		fill(anchor[0], anchor[1])
		pairs = append(pairs, [2]*graph.Node{olds[anchor[0]], news[anchor[1]]})
		prevOld, prevNew = anchor[0]+1, anchor[1]+1
	}
	fill(len(olds), len(news))
	for _, pair := range pairs {
		b.pair(pair[0], pair[1])
		b.align(pair[0].BodyNodes(), pair[1].BodyNodes())
	}
}

// lcs returns index pairs of a longest common subsequence
func lcs(n, m int, equal func(i, j int) bool) [][2]int {
	if n == 0 || m == 0 {
		return nil
	}
	table := make([][]int, n+1)
	for i := range table {
		table[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			switch {
			case equal(i, j):
				table[i][j] = table[i+1][j+1] + 1
			case table[i+1][j] >= table[i][j+1]:
				table[i][j] = table[i+1][j]
			default:
				table[i][j] = table[i][j+1]
			}
		}
	}
	var result [][2]int
	for i, j := 0, 0; i < n && j < m; {
		switch {
		case equal(i, j):
			result = append(result, [2]int{i, j})
			i++
			j++
		case table[i+1][j] >= table[i][j+1]:
			i++
		default:
			j++
		}
	}
	return result
}
