// Package scenetree maintains the hierarchical, path-addressed store of
// persisted scene commands. It knows nothing about the wire format or the
// network; nodes hold the already-encoded bytes handed to them.
package scenetree

import (
	"sort"
	"strings"
)

// DefaultRoot is the segment that relative paths are resolved under.
const DefaultRoot = "scenecast"

// Separator splits raw paths into segments.
const Separator = "/"

// Node holds the persisted commands for one path. A node exists only while
// reachable from the tree root; deleting it discards its whole subtree.
type Node struct {
	object     []byte
	transform  []byte
	properties map[string][]byte
	children   map[string]*Node
}

func newNode() *Node {
	return &Node{}
}

// SetObject replaces the node's persisted object command.
func (n *Node) SetObject(data []byte) { n.object = data }

// Object returns the persisted object command, or nil.
func (n *Node) Object() []byte { return n.object }

// SetTransform replaces the node's persisted transform command.
func (n *Node) SetTransform(data []byte) { n.transform = data }

// Transform returns the persisted transform command, or nil.
func (n *Node) Transform() []byte { return n.transform }

// SetProperty stores a persisted property command keyed by property name.
// Distinct names never clobber each other or the object command.
func (n *Node) SetProperty(name string, data []byte) {
	if n.properties == nil {
		n.properties = make(map[string][]byte)
	}
	n.properties[name] = data
}

// Property returns the persisted command for the named property, or nil.
func (n *Node) Property(name string) []byte { return n.properties[name] }

// Normalize splits a raw path on the separator, discarding every empty
// segment produced by leading, trailing, or repeated separators. An absolute
// path (leading separator) addresses from the tree root; a relative path is
// prefixed with the default root segment. Normalization never fails: two
// paths are equivalent iff their normalized segment sequences are equal.
func Normalize(path string) []string {
	segments := make([]string, 0, 8)
	absolute := strings.HasPrefix(path, Separator)
	if !absolute {
		segments = append(segments, DefaultRoot)
	}
	for _, segment := range strings.Split(path, Separator) {
		if segment == "" {
			continue
		}
		segments = append(segments, segment)
	}
	return segments
}

// FullPath returns the canonical absolute spelling of a raw path.
func FullPath(path string) string {
	return Separator + strings.Join(Normalize(path), Separator)
}

// Tree is a namespace mapping normalized paths to nodes.
type Tree struct {
	root *Node
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{root: newNode()}
}

// FindOrCreate returns the node at the normalized path, creating any missing
// intermediate nodes. It is total and never errors.
func (t *Tree) FindOrCreate(path string) *Node {
	node := t.root
	for _, segment := range Normalize(path) {
		child, ok := node.children[segment]
		if !ok {
			child = newNode()
			if node.children == nil {
				node.children = make(map[string]*Node)
			}
			node.children[segment] = child
		}
		node = child
	}
	return node
}

// Find returns the node at the normalized path without creating anything.
func (t *Tree) Find(path string) (*Node, bool) {
	node := t.root
	for _, segment := range Normalize(path) {
		child, ok := node.children[segment]
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}

// Has reports whether a node exists at the normalized path.
func (t *Tree) Has(path string) bool {
	_, ok := t.Find(path)
	return ok
}

// Delete detaches the node at the normalized path, discarding its subtree
// and every persisted command within it. Deleting a nonexistent path is a
// no-op. The empty relative path targets the default root itself; the
// absolute root path "/" clears the entire tree.
func (t *Tree) Delete(path string) {
	segments := Normalize(path)
	if len(segments) == 0 {
		t.root = newNode()
		return
	}
	node := t.root
	for _, segment := range segments[:len(segments)-1] {
		child, ok := node.children[segment]
		if !ok {
			return
		}
		node = child
	}
	delete(node.children, segments[len(segments)-1])
}

// Walk visits every persisted command in the tree in a stable total order:
// depth-first, a node's object then transform then properties (lexicographic
// by name), then its children in lexicographic segment order. Two walks over
// identical tree content yield byte-identical sequences.
func (t *Tree) Walk(fn func(data []byte)) {
	walkNode(t.root, fn)
}

func walkNode(node *Node, fn func(data []byte)) {
	if node.object != nil {
		fn(node.object)
	}
	if node.transform != nil {
		fn(node.transform)
	}
	for _, name := range sortedKeys(node.properties) {
		fn(node.properties[name])
	}
	for _, segment := range sortedKeys(node.children) {
		walkNode(node.children[segment], fn)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
