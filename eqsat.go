// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/eqsat/blob/master/LICENSE.txt.

// Package eqsat implements a small equality-saturation engine: an e-graph with
// hash-consing, deferred congruence repair, pattern matching and size-based
// extraction. Unusually, it also supports rewrite retraction, the ability to
// undo a previously applied rewrite while keeping every root term extractable
// (see [EGraph.UndoRewrites]).
package eqsat

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/tigerwill90/eqsat/internal/iterutil"
)

// Id is an opaque dense identity for e-classes and e-nodes. Ids address
// arena slots and are never reused within a single e-graph instance.
type Id uint32

// EGraph represents a congruence closure of terms, where equivalence classes
// of subterms are shared. The zero value is not usable; use [New].
//
// An EGraph is not safe for concurrent use. Mutating operations take exclusive
// ownership for their duration and are immediately visible to subsequent
// steps.
type EGraph struct {
	uf          UnionFind
	classes     map[Id]*EClass
	memo        map[string]Id
	classesByOp map[string]map[Id]struct{}
	// nodes maps every allocated e-node id to its last canonicalized shape.
	// Rebuild keeps it in sync with memo.
	nodes   map[Id]ENode
	pending []Id
	log     *slog.Logger
	explain bool
}

// New returns a ready to use e-graph.
func New(opts ...Option) *EGraph {
	g := &EGraph{
		classes:     make(map[Id]*EClass),
		memo:        make(map[string]Id),
		classesByOp: make(map[string]map[Id]struct{}),
		nodes:       make(map[Id]ENode),
		log:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt.applyGraph(g)
	}
	return g
}

// AreExplanationsEnabled reports whether the e-graph tracks explanations.
// Explanation tracking is not implemented by this engine; the flag exists so
// integrations depending on it fail loudly (see [WithExplanations]).
func (g *EGraph) AreExplanationsEnabled() bool {
	return g.explain
}

// Find resolves id to the canonical id of its e-class.
func (g *EGraph) Find(id Id) Id {
	return g.uf.Find(id)
}

// Class returns the e-class owning id, resolving id through the union-find
// first. It returns nil if the class has been garbage collected.
func (g *EGraph) Class(id Id) *EClass {
	return g.classes[g.uf.Find(id)]
}

// NumClasses returns the number of canonical e-classes.
func (g *EGraph) NumClasses() int {
	return len(g.classes)
}

// NumNodes returns the total number of e-nodes across all e-classes.
func (g *EGraph) NumNodes() int {
	return iterutil.Len2(g.Nodes())
}

// MemoSize returns the number of hash-cons entries.
func (g *EGraph) MemoSize() int {
	return len(g.memo)
}

// Dump renders the e-graph in a compact human readable form, one e-class per
// line in ascending id order. Intended for trace logging and debugging.
func (g *EGraph) Dump() string {
	ids := slices.Sorted(maps.Keys(g.classes))
	sb := new(strings.Builder)
	for _, id := range ids {
		c := g.classes[id]
		fmt.Fprintf(sb, "%d: %v parents=%v\n", id, c.Nodes, c.Parents)
	}
	return sb.String()
}
