// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/eqsat/blob/master/LICENSE.txt.

package eqsat

import (
	"iter"

	"github.com/tigerwill90/eqsat/internal/iterutil"
)

// Classes returns a range iterator over the canonical e-classes, in
// unspecified order. The iterator observes the live e-graph; mutating it
// while iterating is undefined.
func (g *EGraph) Classes() iter.Seq2[Id, *EClass] {
	return func(yield func(Id, *EClass) bool) {
		for id, c := range g.classes {
			if !yield(id, c) {
				return
			}
		}
	}
}

// ClassIDs returns a range iterator over the canonical e-class ids, in
// unspecified order.
func (g *EGraph) ClassIDs() iter.Seq[Id] {
	return iterutil.Left(g.Classes())
}

// EClasses returns a range iterator over the canonical e-classes, in
// unspecified order.
func (g *EGraph) EClasses() iter.Seq[*EClass] {
	return iterutil.Right(g.Classes())
}

// ClassesByOp returns a range iterator over the ids of e-classes containing
// at least one e-node with the given operator, in unspecified order.
func (g *EGraph) ClassesByOp(op string) iter.Seq[Id] {
	return func(yield func(Id) bool) {
		for id := range g.classesByOp[op] {
			if !yield(id) {
				return
			}
		}
	}
}

// Nodes returns a range iterator over every (class id, e-node) pair of the
// e-graph, in unspecified order.
func (g *EGraph) Nodes() iter.Seq2[Id, ENode] {
	return func(yield func(Id, ENode) bool) {
		for id, c := range g.classes {
			for _, n := range c.Nodes {
				if !yield(id, n) {
					return
				}
			}
		}
	}
}
