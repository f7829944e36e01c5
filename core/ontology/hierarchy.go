package ontology

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"
)

// hierarchy is a subsumption graph over entities identified by a string key.
// Edges point from the subsumed entity to the subsuming one in up, and the
// other way in down.
type hierarchy[T any] struct {
	ids   map[string]int64
	keys  []string
	items []T
	up    *simple.DirectedGraph
	down  *simple.DirectedGraph
}

func newHierarchy[T any]() *hierarchy[T] {
	return &hierarchy[T]{
		ids:  make(map[string]int64),
		up:   simple.NewDirectedGraph(),
		down: simple.NewDirectedGraph(),
	}
}

// node returns the id of key, adding it to both graphs on first use.
func (h *hierarchy[T]) node(key string, item T) int64 {
	if id, ok := h.ids[key]; ok {
		return id
	}
	id := int64(len(h.keys))
	h.ids[key] = id
	h.keys = append(h.keys, key)
	h.items = append(h.items, item)
	h.up.AddNode(simple.Node(id))
	h.down.AddNode(simple.Node(id))
	return id
}

// addSub records that sub is subsumed by super.
func (h *hierarchy[T]) addSub(subKey string, sub T, superKey string, super T) {
	from := h.node(subKey, sub)
	to := h.node(superKey, super)
	if from == to {
		return
	}
	h.up.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
	h.down.SetEdge(simple.Edge{F: simple.Node(to), T: simple.Node(from)})
}

// addEquivalent records mutual subsumption between a and b.
func (h *hierarchy[T]) addEquivalent(aKey string, a T, bKey string, b T) {
	h.addSub(aKey, a, bKey, b)
	h.addSub(bKey, b, aKey, a)
}

func (h *hierarchy[T]) reachable(g *simple.DirectedGraph, key string) []int64 {
	id, ok := h.ids[key]
	if !ok {
		return nil
	}
	var ids []int64
	bf := traverse.BreadthFirst{
		Visit: func(n graph.Node) {
			if n.ID() != id {
				ids = append(ids, n.ID())
			}
		},
	}
	bf.Walk(g, simple.Node(id), nil)
	return ids
}

// ancestors returns every entity subsuming key, sorted by key.
func (h *hierarchy[T]) ancestors(key string) []T {
	return h.collect(h.reachable(h.up, key))
}

// descendants returns every entity subsumed by key, sorted by key.
func (h *hierarchy[T]) descendants(key string) []T {
	return h.collect(h.reachable(h.down, key))
}

// equivalents returns the entities that both subsume and are subsumed by key.
func (h *hierarchy[T]) equivalents(key string) []T {
	below := make(map[int64]bool)
	for _, id := range h.reachable(h.down, key) {
		below[id] = true
	}
	var ids []int64
	for _, id := range h.reachable(h.up, key) {
		if below[id] {
			ids = append(ids, id)
		}
	}
	return h.collect(ids)
}

// cycles returns the strongly connected groups of more than one entity.
func (h *hierarchy[T]) cycles() [][]T {
	var groups [][]int64
	for _, component := range topo.TarjanSCC(h.up) {
		if len(component) < 2 {
			continue
		}
		ids := make([]int64, len(component))
		for i, n := range component {
			ids[i] = n.ID()
		}
		sort.Slice(ids, func(i, j int) bool { return h.keys[ids[i]] < h.keys[ids[j]] })
		groups = append(groups, ids)
	}
	sort.Slice(groups, func(i, j int) bool { return h.keys[groups[i][0]] < h.keys[groups[j][0]] })
	out := make([][]T, len(groups))
	for i, ids := range groups {
		out[i] = h.collect(ids)
	}
	return out
}

func (h *hierarchy[T]) collect(ids []int64) []T {
	sort.Slice(ids, func(i, j int) bool { return h.keys[ids[i]] < h.keys[ids[j]] })
	out := make([]T, len(ids))
	for i, id := range ids {
		out[i] = h.items[id]
	}
	return out
}

// item returns the entity stored under key.
func (h *hierarchy[T]) item(key string) (T, bool) {
	id, ok := h.ids[key]
	if !ok {
		var zero T
		return zero, false
	}
	return h.items[id], true
}
