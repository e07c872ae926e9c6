// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/eqsat/blob/master/LICENSE.txt.

package eqsat

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Var is a pattern variable, spelled with a leading question mark, e.g. "?x".
type Var string

// Subst binds pattern variables to e-class ids.
type Subst map[Var]Id

func (s Subst) String() string {
	vars := slices.Sorted(maps.Keys(s))
	sb := new(strings.Builder)
	sb.WriteByte('{')
	for i, v := range vars {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(sb, "%s: %d", v, s[v])
	}
	sb.WriteByte('}')
	return sb.String()
}

// ENodeOrVar is one element of a pattern AST: either a pattern variable or a
// concrete constructor whose child slots index earlier AST positions.
type ENodeOrVar struct {
	Var   Var
	ENode *ENode
}

// IsVar reports whether the element binds a pattern variable.
func (ev ENodeOrVar) IsVar() bool {
	return ev.ENode == nil
}

// Pattern is a compiled pattern: a topologically sorted sequence of
// [ENodeOrVar] where each constructor's child slots index earlier positions
// and the last element is the root. Build one with [ParsePattern].
type Pattern struct {
	ast  []ENodeOrVar
	str  string
	vars []Var
}

// AST returns the pattern elements in topological order, root last. The
// returned slice must not be mutated.
func (p *Pattern) AST() []ENodeOrVar {
	return p.ast
}

// PatternAST implements [Applier].
func (p *Pattern) PatternAST() []ENodeOrVar {
	return p.ast
}

// Vars returns the pattern variables in first occurrence order.
func (p *Pattern) Vars() []Var {
	return p.vars
}

func (p *Pattern) String() string {
	return p.str
}

// Matches records the substitutions found for a pattern in one e-class.
type Matches struct {
	EClass Id
	Substs []Subst
}

// Search finds every e-class matching p and returns the consistent
// substitutions per class, in ascending class id order.
func (p *Pattern) Search(g *EGraph) []Matches {
	if len(p.ast) == 0 {
		return nil
	}
	root := p.ast[len(p.ast)-1]
	var candidates []Id
	if root.IsVar() {
		candidates = slices.Sorted(maps.Keys(g.classes))
	} else {
		candidates = slices.Sorted(maps.Keys(g.classesByOp[root.ENode.Op]))
	}

	var out []Matches
	for _, id := range candidates {
		substs := dedupSubsts(g.match(p.ast, len(p.ast)-1, id, Subst{}))
		if len(substs) > 0 {
			out = append(out, Matches{EClass: id, Substs: substs})
		}
	}
	return out
}

// match enumerates the substitutions under which AST element idx matches the
// given e-class, extending base. Bindings are copy-on-write: base is never
// mutated.
func (g *EGraph) match(ast []ENodeOrVar, idx int, class Id, base Subst) []Subst {
	class = g.uf.Find(class)
	ev := ast[idx]
	if ev.IsVar() {
		if bound, ok := base[ev.Var]; ok {
			if g.uf.Find(bound) == class {
				return []Subst{base}
			}
			return nil
		}
		next := maps.Clone(base)
		next[ev.Var] = class
		return []Subst{next}
	}

	c := g.classes[class]
	if c == nil {
		return nil
	}
	var out []Subst
	for _, n := range c.Nodes {
		if n.Op != ev.ENode.Op || len(n.Children) != len(ev.ENode.Children) {
			continue
		}
		substs := []Subst{base}
		for i, slot := range ev.ENode.Children {
			var next []Subst
			for _, s := range substs {
				next = append(next, g.match(ast, int(slot), n.Children[i], s)...)
			}
			substs = next
			if len(substs) == 0 {
				break
			}
		}
		out = append(out, substs...)
	}
	return out
}

func dedupSubsts(substs []Subst) []Subst {
	if len(substs) < 2 {
		return substs
	}
	seen := make(map[string]struct{}, len(substs))
	out := substs[:0]
	for _, s := range substs {
		k := s.String()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Instantiate adds the pattern to the e-graph bottom-up under subst and
// returns the e-class of its root. Every variable of the pattern must be
// bound.
func (p *Pattern) Instantiate(g *EGraph, subst Subst) (Id, error) {
	return instantiateAST(g, p.ast, subst)
}

func instantiateAST(g *EGraph, ast []ENodeOrVar, subst Subst) (Id, error) {
	if len(ast) == 0 {
		return 0, ErrEmptyPattern
	}
	ids := make([]Id, len(ast))
	for i, ev := range ast {
		if ev.IsVar() {
			id, ok := subst[ev.Var]
			if !ok {
				return 0, fmt.Errorf("%w: %s", ErrMissingBinding, ev.Var)
			}
			ids[i] = id
			continue
		}
		n := ev.ENode.mapChildren(func(slot Id) Id { return ids[slot] })
		ids[i] = g.Add(n)
	}
	return ids[len(ids)-1], nil
}
