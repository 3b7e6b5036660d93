package search

import "slices"

// sentinelIndex anchors every parent chain; it never holds a real article.
const sentinelIndex = 0

type node struct {
	identifier string
	parent     int
}

// Registry is an append-only arena of discovered articles. Each node
// records the index of the article whose page first linked to it, so
// the registry forms an implicit forest rooted at the sentinel. Parent
// indices are always smaller than child indices. The registry is owned
// by a single search and needs no locking.
type Registry struct {
	nodes []node
	index map[string]int
}

// NewRegistry creates a registry holding the sentinel at index 0 and
// the start article at index 1.
func NewRegistry(start string) *Registry {
	return &Registry{
		nodes: []node{{}, {identifier: start, parent: sentinelIndex}},
		index: map[string]int{start: 1},
	}
}

// InsertIfNew appends the identifier with the given parent edge and
// returns its index. If the identifier is already registered nothing is
// mutated and ok is false; the first-seen parent always wins.
func (r *Registry) InsertIfNew(identifier string, parent int) (idx int, ok bool) {
	if _, seen := r.index[identifier]; seen {
		return 0, false
	}

	r.nodes = append(r.nodes, node{identifier: identifier, parent: parent})
	idx = len(r.nodes) - 1
	r.index[identifier] = idx
	return idx, true
}

// Identifier returns the article name stored at the given index.
func (r *Registry) Identifier(idx int) string {
	return r.nodes[idx].identifier
}

// Len returns the number of nodes, sentinel included.
func (r *Registry) Len() int {
	return len(r.nodes)
}

// PathTo walks parent edges from idx back to the start article and
// returns the identifiers in start-to-target order. idx must name a
// real node, never the sentinel.
func (r *Registry) PathTo(idx int) []string {
	var path []string
	for cur := idx; cur != sentinelIndex; cur = r.nodes[cur].parent {
		path = append(path, r.nodes[cur].identifier)
	}
	slices.Reverse(path)
	return path
}
