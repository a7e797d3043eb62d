package match

import (
	"strconv"
	"strings"

	"github.com/viant/hotedit/inspector/graph"
)

// Key identifies a declaration among its siblings: kind, name, arity, parameter types and
// explicit interface target
func Key(node *graph.Node) string {
	builder := strings.Builder{}
	builder.WriteString(strconv.Itoa(int(node.Kind)))
	builder.WriteByte('|')
	builder.WriteString(node.Signature.ExplicitInterface)
	builder.WriteByte('|')
	builder.WriteString(node.LocalName())
	if node.Kind.IsMethodLike() || node.Kind == graph.KindIndexer {
		builder.WriteByte('(')
		builder.WriteString(strings.Join(node.ParameterTypes(), ","))
		builder.WriteByte(')')
	}
	return builder.String()
}

// relaxedKey ignores arity and signature so that a lone renamed-signature pair still matches
func relaxedKey(node *graph.Node) string {
	if node.Name == "" {
		return ""
	}
	return strconv.Itoa(int(node.Kind)) + "|" + node.Name
}

// entityKey identifies logical containers merged across documents
func entityKey(node *graph.Node) string {
	return strconv.Itoa(int(node.Kind)) + "|" + node.LocalName()
}

// distance estimates how different two same-key nodes are
func distance(old, new *graph.Node) int {
	oldHash, newHash := old.Hashes(), new.Hashes()
	result := 0
	if oldHash.Header != newHash.Header {
		result += 4
	}
	if oldHash.Body != newHash.Body {
		result += 2
	}
	if oldHash.Initializer != newHash.Initializer {
		result++
	}
	children := map[uint64]int{}
	for _, child := range old.Children() {
		children[child.Hashes().Subtree]++
	}
	for _, child := range new.Children() {
		hash := child.Hashes().Subtree
		if children[hash] > 0 {
			children[hash]--
			continue
		}
		result++
	}
	for _, remaining := range children {
		result += remaining
	}
	return result
}
