// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/eqsat/blob/master/LICENSE.txt.

package eqsat

import "slices"

// EClass is an equivalence class of e-nodes.
type EClass struct {
	// ID is the canonical id of the class.
	ID Id
	// Nodes holds the class members sorted by [ENode.Compare], unique,
	// with canonical child ids. The order enables binary search.
	// Union temporarily breaks the invariant until the next Rebuild.
	Nodes []ENode
	// Parents holds the node ids of e-nodes referencing this class through
	// a child slot.
	Parents []Id
}

// Len returns the number of e-nodes in the class.
func (c *EClass) Len() int {
	return len(c.Nodes)
}

// Contains reports whether the class holds a node structurally equal to n.
// The class node list must be sorted (i.e. the e-graph rebuilt).
func (c *EClass) Contains(n ENode) bool {
	_, found := slices.BinarySearchFunc(c.Nodes, n, ENode.Compare)
	return found
}

// Leaves returns the leaf e-nodes of the class.
func (c *EClass) Leaves() []ENode {
	var leaves []ENode
	for _, n := range c.Nodes {
		if n.IsLeaf() {
			leaves = append(leaves, n)
		}
	}
	return leaves
}
