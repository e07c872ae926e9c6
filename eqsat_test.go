// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/eqsat/blob/master/LICENSE.txt.

package eqsat

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOptions(t *testing.T) {
	g := New()
	assert.False(t, g.AreExplanationsEnabled())

	g = New(WithExplanations())
	assert.True(t, g.AreExplanationsEnabled())

	// A nil handler keeps the default discard logger.
	g = New(WithLogger(nil))
	require.NotNil(t, g.log)
}

func TestNewPrettyHandler(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	g := New(WithLogger(NewPrettyHandler(buf)))
	g.Add(Leaf("x"))
	g.trace("dumping", "dump", g.Dump())

	out := buf.String()
	assert.Contains(t, out, "[EQSAT]")
	assert.Contains(t, out, "added e-node")
	assert.Contains(t, out, "TRACE")
}

func TestENodeCompare(t *testing.T) {
	assert.Equal(t, 0, Leaf("x").Compare(Leaf("x")))
	assert.Negative(t, Leaf("a").Compare(Leaf("b")))
	assert.Negative(t, Node("f", 1).Compare(Node("f", 2)))
	assert.Negative(t, Node("f", 1).Compare(Node("f", 1, 2)))
	assert.Positive(t, Node("g", 0).Compare(Node("f", 9)))
	assert.True(t, Node("f", 1, 2).Equal(Node("f", 1, 2)))
	assert.False(t, Node("f", 1, 2).Equal(Node("f", 2, 1)))
}

func TestENodeString(t *testing.T) {
	assert.Equal(t, "x", Leaf("x").String())
	assert.Equal(t, "(f $1 $2)", Node("f", 1, 2).String())
}

func TestENodeKeyUnambiguous(t *testing.T) {
	// Operator bytes must not bleed into child encoding.
	assert.NotEqual(t, Leaf("ab").key(), Node("a", 'b').key())
	assert.NotEqual(t, Node("f", 1, 2).key(), Node("f", 1).key())
	assert.Equal(t, Node("f", 1, 2).key(), Node("f", 1, 2).key())
}

func TestEClassLeaves(t *testing.T) {
	c := &EClass{ID: 0, Nodes: []ENode{Node("f", 1), Leaf("x"), Leaf("y")}}
	assert.Equal(t, []ENode{Leaf("x"), Leaf("y")}, c.Leaves())
}

func TestSubstString(t *testing.T) {
	s := Subst{"?x": 1, "?a": 0}
	assert.Equal(t, "{?a: 0, ?x: 1}", s.String())
}

func TestDump(t *testing.T) {
	g := New()
	x := g.Add(Leaf("x"))
	g.Add(Node("f", x))

	dump := g.Dump()
	assert.Contains(t, dump, "0: [x]")
	assert.Contains(t, dump, "1: [(f $0)]")
}
