// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/eqsat/blob/master/LICENSE.txt.

package eqsat

import "slices"

// Canonicalize returns n with every child id resolved to the canonical id of
// its e-class.
func (g *EGraph) Canonicalize(n ENode) ENode {
	return n.mapChildren(g.uf.Find)
}

// Lookup canonicalizes n and hash-cons looks it up. It returns the canonical
// id of the owning e-class, or false if the node is not in the e-graph.
func (g *EGraph) Lookup(n ENode) (Id, bool) {
	id, ok := g.memo[g.Canonicalize(n).key()]
	if !ok {
		return 0, false
	}
	return g.uf.Find(id), true
}

// Add inserts n into the e-graph and returns the id of its e-class. Adding a
// node that is already hash-consed returns the existing class without
// mutating the graph.
func (g *EGraph) Add(n ENode) Id {
	n = g.Canonicalize(n)
	if id, ok := g.memo[n.key()]; ok {
		return g.uf.Find(id)
	}

	id := g.uf.MakeSet()
	g.nodes[id] = n
	g.memo[n.key()] = id
	for _, child := range n.Children {
		parent := g.classes[child]
		parent.Parents = append(parent.Parents, id)
	}
	g.classes[id] = &EClass{ID: id, Nodes: []ENode{n}}
	g.addClassByOp(n.Op, id)
	g.log.Debug("added e-node", "node", n, "class", id)
	return id
}

// AddExpr inserts the term bottom-up and returns the e-class of its root.
func (g *EGraph) AddExpr(e *Expr) Id {
	children := make([]Id, 0, len(e.Children))
	for _, child := range e.Children {
		children = append(children, g.AddExpr(child))
	}
	return g.Add(ENode{Op: e.Op, Children: children})
}

// Union merges the e-class of b into the e-class of a and returns the
// surviving canonical id. Congruence repair is deferred: the e-graph is in a
// broken state (stale memo keys, unsorted node lists) until [EGraph.Rebuild]
// is called.
func (g *EGraph) Union(a, b Id) Id {
	ra, rb := g.uf.FindMut(a), g.uf.FindMut(b)
	if ra == rb {
		return ra
	}
	g.uf.Union(ra, rb)

	from := g.classes[rb]
	to := g.classes[ra]
	delete(g.classes, rb)
	to.Nodes = append(to.Nodes, from.Nodes...)
	to.Parents = append(to.Parents, from.Parents...)
	for _, n := range from.Nodes {
		if set, ok := g.classesByOp[n.Op]; ok {
			delete(set, rb)
		}
		g.addClassByOp(n.Op, ra)
	}
	g.pending = append(g.pending, ra)
	g.log.Debug("unioned e-classes", "to", ra, "from", rb)
	return ra
}

// Rebuild restores the e-graph invariants after a batch of unions: memo
// entries and class node lists are re-canonicalized, congruent parents are
// merged upward, and the per-operator index is refreshed. It returns the
// number of congruence unions performed.
func (g *EGraph) Rebuild() int {
	var unions int
	for len(g.pending) > 0 {
		todo := g.pending
		g.pending = nil
		seen := make(map[Id]struct{}, len(todo))
		for _, id := range todo {
			id = g.uf.FindMut(id)
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			unions += g.repair(id)
		}
	}
	g.rebuildClasses()
	return unions
}

// repair re-canonicalizes every e-node referencing the class and fixes its
// memo entry. Two referring nodes collapsing to the same shape witness a
// congruence; their classes are unioned, which may queue further repairs.
func (g *EGraph) repair(id Id) int {
	c := g.classes[id]
	if c == nil {
		// The class was absorbed by a congruence union queued earlier in
		// the same pass.
		return 0
	}

	oldParents := c.Parents
	c.Parents = nil

	var unions int
	byKey := make(map[string]Id, len(oldParents))
	parents := make([]Id, 0, len(oldParents))
	for _, p := range oldParents {
		n := g.nodes[p]
		oldKey := n.key()
		n = n.mapChildren(g.uf.FindMut)
		g.nodes[p] = n
		newKey := n.key()
		if prev, ok := byKey[newKey]; ok {
			// Keep the entry the first occurrence re-inserted.
			if oldKey != newKey {
				delete(g.memo, oldKey)
			}
			if prev != p && g.uf.FindMut(prev) != g.uf.FindMut(p) {
				g.Union(prev, p)
				unions++
			}
			continue
		}
		delete(g.memo, oldKey)
		byKey[newKey] = p
		g.memo[newKey] = p
		parents = append(parents, p)
	}

	// Congruence unions above may have merged this class away or grown it,
	// so re-resolve before writing the deduplicated parent list back.
	cur := g.classes[g.uf.FindMut(id)]
	cur.Parents = append(cur.Parents, parents...)
	return unions
}

// rebuildClasses canonicalizes, sorts and dedupes every class node list and
// recomputes the per-operator index.
func (g *EGraph) rebuildClasses() {
	g.classesByOp = make(map[string]map[Id]struct{}, len(g.classesByOp))
	for id, c := range g.classes {
		for i := range c.Nodes {
			c.Nodes[i] = c.Nodes[i].mapChildren(g.uf.FindMut)
		}
		slices.SortFunc(c.Nodes, ENode.Compare)
		c.Nodes = slices.CompactFunc(c.Nodes, ENode.Equal)
		for _, n := range c.Nodes {
			g.addClassByOp(n.Op, id)
		}
	}
}

func (g *EGraph) addClassByOp(op string, id Id) {
	set, ok := g.classesByOp[op]
	if !ok {
		set = make(map[Id]struct{})
		g.classesByOp[op] = set
	}
	set[id] = struct{}{}
}
