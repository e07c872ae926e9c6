// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/eqsat/blob/master/LICENSE.txt.

package eqsat

import (
	"fmt"
	"math"
	"strings"
)

// Expr is a concrete term, as produced by extraction or [ParseExpr].
type Expr struct {
	Op       string
	Children []*Expr
}

// Size returns the number of constructors in the term.
func (e *Expr) Size() uint64 {
	size := uint64(1)
	for _, child := range e.Children {
		size += child.Size()
	}
	return size
}

// String renders the term in s-expression form.
func (e *Expr) String() string {
	if len(e.Children) == 0 {
		return e.Op
	}
	sb := new(strings.Builder)
	sb.WriteByte('(')
	sb.WriteString(e.Op)
	for _, child := range e.Children {
		sb.WriteByte(' ')
		sb.WriteString(child.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

const infiniteCost = uint64(math.MaxUint64)

// CostFunction assigns a cost to an e-node given the best known cost of each
// child e-class. Extraction requires the cost to grow strictly with children
// so that best terms are finite.
type CostFunction interface {
	Cost(n ENode, cost func(Id) uint64) uint64
}

// AstSize costs a term by its number of constructors.
type AstSize struct{}

// Cost implements [CostFunction].
func (AstSize) Cost(n ENode, cost func(Id) uint64) uint64 {
	total := uint64(1)
	for _, child := range n.Children {
		total += cost(child)
	}
	return total
}

type extractEntry struct {
	cost uint64
	node ENode
}

// Extractor computes, for every e-class, the cheapest extractable e-node
// under a cost function. Classes without a finite, cycle-free term get no
// entry. The cost table is a snapshot: mutating the e-graph invalidates the
// extractor.
type Extractor struct {
	g     *EGraph
	cf    CostFunction
	costs map[Id]extractEntry
}

// NewExtractor computes the cost table for g under cf.
func NewExtractor(g *EGraph, cf CostFunction) *Extractor {
	e := &Extractor{g: g, cf: cf, costs: make(map[Id]extractEntry, len(g.classes))}
	e.run()
	return e
}

func (e *Extractor) run() {
	for changed := true; changed; {
		changed = false
		for id, c := range e.g.classes {
			for _, n := range c.Nodes {
				cost, ok := e.nodeCost(n)
				if !ok {
					continue
				}
				entry, exists := e.costs[id]
				if !exists || cost < entry.cost {
					e.costs[id] = extractEntry{cost: cost, node: n}
					changed = true
				}
			}
		}
	}
}

// nodeCost returns the total cost of n, or false while any child class has no
// finite cost yet.
func (e *Extractor) nodeCost(n ENode) (uint64, bool) {
	for _, child := range n.Children {
		if _, ok := e.costs[e.g.uf.Find(child)]; !ok {
			return 0, false
		}
	}
	cost := e.cf.Cost(n, func(id Id) uint64 {
		entry, ok := e.costs[e.g.uf.Find(id)]
		if !ok {
			return infiniteCost
		}
		return entry.cost
	})
	return cost, true
}

// Cost returns the best known cost of the e-class of id, or false if the
// class has no extractable term.
func (e *Extractor) Cost(id Id) (uint64, bool) {
	entry, ok := e.costs[e.g.uf.Find(id)]
	if !ok {
		return 0, false
	}
	return entry.cost, true
}

// FindBest returns the lowest cost term extractable from the e-class of root,
// along with its cost. It returns [ErrNotExtractable] when the class has no
// finite, cycle-free term.
func (e *Extractor) FindBest(root Id) (uint64, *Expr, error) {
	root = e.g.uf.Find(root)
	entry, ok := e.costs[root]
	if !ok {
		return 0, nil, fmt.Errorf("%w: e-class %d", ErrNotExtractable, root)
	}
	return entry.cost, e.buildExpr(entry.node), nil
}

// buildExpr reconstructs the best term below n. Recursion terminates because
// chosen child entries have strictly smaller costs than their parents.
func (e *Extractor) buildExpr(n ENode) *Expr {
	expr := &Expr{Op: n.Op}
	for _, child := range n.Children {
		entry := e.costs[e.g.uf.Find(child)]
		expr.Children = append(expr.Children, e.buildExpr(entry.node))
	}
	return expr
}
