package graph

import (
	"encoding/binary"
	"hash"

	"github.com/minio/highwayhash"
)

// key is the fixed 256-bit highwayhash key; digests are compared across trees of one process only
var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Hashes holds the content digests of a node
type Hashes struct {
	Header      uint64 // kind, name, modifiers, attributes and signature
	Body        uint64
	Initializer uint64
	Subtree     uint64 // header, body, initializer and all children
}

type hasher struct {
	hash.Hash64
	buf [8]byte
}

func newHasher() *hasher {
	h, err := highwayhash.New64(key)
	if err != nil { // key length is fixed
		panic(err)
	}
	return &hasher{Hash64: h}
}

func (h *hasher) text(values ...string) *hasher {
	for _, value := range values {
		h.number(uint64(len(value)))
		_, _ = h.Write([]byte(value))
	}
	return h
}

func (h *hasher) number(value uint64) *hasher {
	binary.LittleEndian.PutUint64(h.buf[:], value)
	_, _ = h.Write(h.buf[:])
	return h
}

func digest(values ...string) uint64 {
	return newHasher().text(values...).Sum64()
}

func (n *Node) computeHashes() {
	header := newHasher()
	header.number(uint64(n.Kind)).number(uint64(n.TypeKind)).number(uint64(n.Modifiers))
	header.text(n.Name, n.Signature.String())
	for _, attr := range n.Attributes {
		header.text(attr.String())
	}
	n.hashes.Header = header.Sum64()
	if n.Body != "" {
		n.hashes.Body = digest(n.Body)
	}
	if n.Initializer != "" {
		n.hashes.Initializer = digest(n.Initializer)
	}
	subtree := newHasher()
	subtree.number(n.hashes.Header).number(n.hashes.Body).number(n.hashes.Initializer)
	if n.Kind.IsBody() {
		subtree.text(n.Text)
	}
	for _, child := range n.children {
		subtree.number(child.hashes.Subtree)
	}
	n.hashes.Subtree = subtree.Sum64()
}
