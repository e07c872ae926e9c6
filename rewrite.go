// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/eqsat/blob/master/LICENSE.txt.

package eqsat

import "fmt"

// Applier produces the right-hand side of a rewrite. Appliers that cannot
// surface their pattern AST (e.g. programmatic appliers) return nil; the undo
// engine rejects such rewrites.
type Applier interface {
	PatternAST() []ENodeOrVar
}

// Rewrite is a named searcher/applier pair. Applying it introduces new
// e-nodes and/or unifies e-classes.
type Rewrite struct {
	Name     string
	Searcher *Pattern
	Applier  Applier
}

// NewRewrite compiles both sides of a rewrite from s-expression form.
func NewRewrite(name, lhs, rhs string) (*Rewrite, error) {
	searcher, err := ParsePattern(lhs)
	if err != nil {
		return nil, fmt.Errorf("rewrite %s: %w", name, err)
	}
	applier, err := ParsePattern(rhs)
	if err != nil {
		return nil, fmt.Errorf("rewrite %s: %w", name, err)
	}
	return &Rewrite{Name: name, Searcher: searcher, Applier: applier}, nil
}

// MustNewRewrite is like [NewRewrite] but panics on error.
func MustNewRewrite(name, lhs, rhs string) *Rewrite {
	rw, err := NewRewrite(name, lhs, rhs)
	if err != nil {
		panic(err)
	}
	return rw
}

// RewriteMatches pairs a rewrite with the substitutions that triggered it, in
// match order. [EGraph.UndoRewrites] consumes it to retract the rewrite.
type RewriteMatches struct {
	Rewrite *Rewrite
	Substs  []Subst
}

// Apply searches the e-graph for the rewrite's left-hand side, instantiates
// the right-hand side for every match and unions it with the matched class,
// then rebuilds. It returns the matches it applied, ready to hand back to
// [EGraph.UndoRewrites].
func (rw *Rewrite) Apply(g *EGraph) (RewriteMatches, error) {
	rm := RewriteMatches{Rewrite: rw}
	if rw.Applier == nil {
		return rm, fmt.Errorf("%w: rewrite %s", ErrUnsupportedApplier, rw.Name)
	}
	ast := rw.Applier.PatternAST()
	if ast == nil {
		return rm, fmt.Errorf("%w: rewrite %s", ErrUnsupportedApplier, rw.Name)
	}

	for _, m := range rw.Searcher.Search(g) {
		for _, subst := range m.Substs {
			id, err := instantiateAST(g, ast, subst)
			if err != nil {
				return rm, fmt.Errorf("rewrite %s: %w", rw.Name, err)
			}
			g.Union(m.EClass, id)
			rm.Substs = append(rm.Substs, subst)
		}
	}
	g.Rebuild()
	g.log.Debug("applied rewrite", "rewrite", rw.Name, "matches", len(rm.Substs))
	return rm, nil
}
