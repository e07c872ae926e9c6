// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/eqsat/blob/master/LICENSE.txt.

package eqsat

import (
	"fmt"
	"slices"
	"time"
)

// UndoRewrites retracts previously applied rewrites by removing the top level
// e-node each substitution introduced, when doing so is safe: the owning
// e-class must keep at least one finite, cycle-free term. The first
// substitution of every rewrite is deliberately retained, preserving one
// witness of the rewrite in the graph. Afterwards, e-classes and hash-cons
// entries no longer reachable from roots are garbage collected.
//
// Every rewrite's applier must surface a pattern AST and explanation tracking
// must be disabled. On error the e-graph keeps the mutations performed up to
// the failure point; there is no rollback.
func (g *EGraph) UndoRewrites(rewrites []RewriteMatches, roots []Id, opts ...UndoOption) error {
	if g.AreExplanationsEnabled() {
		return ErrExplanationsUnsupported
	}
	var cfg undoConfig
	for _, opt := range opts {
		opt.applyUndo(&cfg)
	}

	g.log.Info("undoing rewrites", "roots", roots)
	g.trace("e-graph before undoing", "dump", g.Dump())

	var removed int
	for _, rm := range rewrites {
		rw := rm.Rewrite
		var ast []ENodeOrVar
		if rw.Applier != nil {
			ast = rw.Applier.PatternAST()
		}
		if ast == nil {
			return fmt.Errorf("%w: rewrite %s", ErrUnsupportedApplier, rw.Name)
		}

		if cfg.sizeGuard && rw.Searcher != nil && len(ast) <= len(rw.Searcher.ast) {
			// The right-hand side may be contained in the left-hand side;
			// retracting it can strip a term of its leaves.
			g.log.Warn("skipping rewrite, right-hand side is not longer than the left-hand side", "rewrite", rw.Name)
			continue
		}

		g.log.Info("undoing rewrite", "rewrite", rw.Name, "matches", len(rm.Substs))
		start := time.Now()

		substs := rm.Substs
		if len(substs) > 0 {
			substs = substs[1:]
		}
		for _, subst := range substs {
			ok, err := g.removeTopENode(ast, subst)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			removed++

			// Every root must still have a best term.
			for _, root := range roots {
				g.log.Debug("checking root", "root", root)
				if _, _, err := NewExtractor(g, AstSize{}).FindBest(root); err != nil {
					if cfg.strictRoots {
						return fmt.Errorf("undoing rewrite %s: root %d: %w", rw.Name, root, err)
					}
					g.log.Warn("root lost its best term", "root", root, "rewrite", rw.Name)
				}
			}
		}

		g.log.Info("finished undoing rewrite", "rewrite", rw.Name, "elapsed", time.Since(start), "matches", len(rm.Substs))
	}
	g.log.Info("removed e-nodes", "count", removed)

	dropped := g.RemoveUnreachable(roots...)
	g.log.Info("removed e-classes", "count", dropped)
	g.trace("e-graph after undoing", "dump", g.Dump())
	return nil
}

// removeTopENode resolves the concrete e-node at the pattern's root under
// subst and removes it from its e-class and the hash-cons. It reports false,
// without mutating the graph, when there is nothing to retract: a subterm or
// the top node no longer exists, the root is a bare variable (the rewrite
// only unioned two classes), or removal would leave the class without a
// ground term.
func (g *EGraph) removeTopENode(ast []ENodeOrVar, subst Subst) (bool, error) {
	if len(ast) == 0 {
		return false, ErrEmptyPattern
	}
	top, children := ast[len(ast)-1], ast[:len(ast)-1]

	idBuf := make([]Id, len(children))
	for i, ev := range children {
		if ev.IsVar() {
			id, ok := subst[ev.Var]
			if !ok {
				return false, fmt.Errorf("%w: %s", ErrMissingBinding, ev.Var)
			}
			idBuf[i] = id
			continue
		}
		id, ok := g.Lookup(ev.ENode.mapChildren(func(slot Id) Id { return idBuf[slot] }))
		if !ok {
			// The subterm is gone, so the top e-node cannot exist either.
			g.log.Debug("not removing e-node, a subterm no longer exists")
			return false, nil
		}
		idBuf[i] = id
	}

	if top.IsVar() {
		// The rewrite's right-hand side is a single variable: it did not
		// introduce an e-node, only a union, and unions are not retracted.
		g.log.Debug("not removing e-node, right-hand side is a variable")
		return false, nil
	}
	topNode := g.Canonicalize(top.ENode.mapChildren(func(slot Id) Id { return idBuf[slot] }))
	classId, ok := g.Lookup(topNode)
	if !ok {
		g.log.Debug("not removing e-node, top e-node no longer exists", "node", topNode)
		return false, nil
	}

	class := g.classes[classId]
	if !g.grounded(class, topNode) {
		g.log.Debug("not removing e-node, class would lose its last ground term", "node", topNode, "class", classId)
		return false, nil
	}

	if idx, found := slices.BinarySearchFunc(class.Nodes, topNode, ENode.Compare); found {
		class.Nodes = slices.Delete(class.Nodes, idx, idx+1)
		key := topNode.key()
		if id, ok := g.memo[key]; ok {
			delete(g.memo, key)
			delete(g.nodes, id)
			if g.uf.Find(id) != classId {
				g.log.Error("memo entry resolved to an unexpected class", "node", topNode, "memo", id, "class", classId)
			}
		}
		g.log.Debug("removed e-node", "node", topNode, "class", classId)
	} else {
		// Already removed by a previous retraction.
		g.log.Debug("top e-node already removed", "node", topNode, "class", classId)
	}
	return true, nil
}

// grounded reports whether class still contains a finite, cycle-free term
// once excluded is ignored. Exclusion is by structural equality and applies
// in every class visited. A term that needs to re-enter a class to ground
// itself is by definition infinite, so visited classes fail the path.
func (g *EGraph) grounded(class *EClass, excluded ENode) bool {
	return g.groundedIn(class, excluded, make(map[Id]struct{}))
}

func (g *EGraph) groundedIn(class *EClass, excluded ENode, visited map[Id]struct{}) bool {
	if _, ok := visited[class.ID]; ok {
		return false
	}
	for _, n := range class.Nodes {
		if n.IsLeaf() && !n.Equal(excluded) {
			return true
		}
	}
	visited[class.ID] = struct{}{}
	for _, n := range class.Nodes {
		if n.IsLeaf() || n.Equal(excluded) {
			continue
		}
		grounded := true
		for _, child := range n.Children {
			if !g.groundedIn(g.classes[g.uf.Find(child)], excluded, visited) {
				grounded = false
				break
			}
		}
		if grounded {
			return true
		}
	}
	return false
}

// RemoveUnreachable drops every e-class not reachable from roots through
// children edges, removes their e-nodes from the hash-cons, and trims
// surviving parent lists to reachable e-nodes. It returns the number of
// e-classes dropped. Calling it twice in a row returns 0 on the second call.
func (g *EGraph) RemoveUnreachable(roots ...Id) int {
	visitedClasses := make(map[Id]struct{})
	visitedNodes := make(map[Id]struct{})

	type item struct {
		class Id
		node  ENode
	}
	var stack []item
	for _, root := range roots {
		id := g.uf.Find(root)
		for _, n := range g.classes[id].Nodes {
			stack = append(stack, item{class: id, node: n})
		}
	}

	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visitedClasses[it.class] = struct{}{}
		if id, ok := g.memo[it.node.key()]; ok {
			visitedNodes[id] = struct{}{}
		}
		for _, child := range it.node.Children {
			child = g.uf.Find(child)
			if _, ok := visitedClasses[child]; ok {
				continue
			}
			for _, n := range g.classes[child].Nodes {
				stack = append(stack, item{class: child, node: n})
			}
		}
	}

	var dropped int
	for id, class := range g.classes {
		if _, ok := visitedClasses[id]; ok {
			class.Parents = slices.DeleteFunc(class.Parents, func(p Id) bool {
				_, ok := visitedNodes[p]
				return !ok
			})
			continue
		}
		for _, n := range class.Nodes {
			g.log.Debug("removing e-node in unreachable e-class", "node", n, "class", id)
			key := n.key()
			if nodeId, ok := g.memo[key]; ok {
				delete(g.nodes, nodeId)
			}
			delete(g.memo, key)
		}
		delete(g.classes, id)
		dropped++
		g.log.Debug("removing unreachable e-class", "class", id, "nodes", len(class.Nodes))
	}
	for _, set := range g.classesByOp {
		for id := range set {
			if _, ok := visitedClasses[id]; !ok {
				delete(set, id)
			}
		}
	}
	return dropped
}
