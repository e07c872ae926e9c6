// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/eqsat/blob/master/LICENSE.txt.

package eqsat

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"slices"
	"strings"
)

// ENode is a term constructor applied to child e-class ids. Equality is
// structural over the operator and children; code comparing nodes stored in
// an e-graph must canonicalize child ids first (see [EGraph.Canonicalize]).
type ENode struct {
	Op       string
	Children []Id
}

// Leaf returns an e-node with no children.
func Leaf(op string) ENode {
	return ENode{Op: op}
}

// Node returns an e-node applying op to the given child e-classes.
func Node(op string, children ...Id) ENode {
	return ENode{Op: op, Children: children}
}

// IsLeaf reports whether the node has no children.
func (n ENode) IsLeaf() bool {
	return len(n.Children) == 0
}

// Compare orders nodes by operator, then lexicographically by children.
func (n ENode) Compare(other ENode) int {
	if c := cmp.Compare(n.Op, other.Op); c != 0 {
		return c
	}
	return slices.Compare(n.Children, other.Children)
}

// Equal reports structural equality of two nodes.
func (n ENode) Equal(other ENode) bool {
	return n.Compare(other) == 0
}

func (n ENode) String() string {
	if n.IsLeaf() {
		return n.Op
	}
	sb := new(strings.Builder)
	sb.WriteByte('(')
	sb.WriteString(n.Op)
	for _, c := range n.Children {
		fmt.Fprintf(sb, " $%d", c)
	}
	sb.WriteByte(')')
	return sb.String()
}

// mapChildren returns a copy of n with f applied to every child slot.
func (n ENode) mapChildren(f func(Id) Id) ENode {
	if len(n.Children) == 0 {
		return n
	}
	children := make([]Id, len(n.Children))
	for i, c := range n.Children {
		children[i] = f(c)
	}
	return ENode{Op: n.Op, Children: children}
}

// key encodes the node for hash-cons lookup. The operator is length-prefixed
// so distinct (op, children) pairs cannot collide.
func (n ENode) key() string {
	b := make([]byte, 0, len(n.Op)+1+5*len(n.Children))
	b = binary.AppendUvarint(b, uint64(len(n.Op)))
	b = append(b, n.Op...)
	for _, c := range n.Children {
		b = binary.AppendUvarint(b, uint64(c))
	}
	return string(b)
}
