// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/eqsat/blob/master/LICENSE.txt.

package eqsat

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(us ...int) []Id {
	out := make([]Id, 0, len(us))
	for _, u := range us {
		out = append(out, Id(u))
	}
	return out
}

func TestUnionFindPathCompression(t *testing.T) {
	const n = 10
	uf := new(UnionFind)
	for range n {
		uf.MakeSet()
	}

	// Initial condition, everyone in their own set.
	assert.Equal(t, ids(0, 1, 2, 3, 4, 5, 6, 7, 8, 9), uf.parents)

	// Build up one set.
	uf.Union(0, 1)
	uf.Union(0, 2)
	uf.Union(0, 3)

	// Build up another set.
	uf.Union(6, 7)
	uf.Union(6, 8)
	uf.Union(6, 9)

	// This should compress all paths.
	for i := range n {
		uf.FindMut(Id(i))
	}

	assert.Equal(t, ids(0, 0, 0, 0, 4, 5, 6, 6, 6, 6), uf.parents)
	assert.Equal(t, n, uf.Size())
}

func TestUnionFindDelete(t *testing.T) {
	uf := new(UnionFind)
	for range 10 {
		uf.MakeSet()
	}

	uf.Union(0, 1)
	uf.Union(0, 2)
	uf.Union(0, 3)

	uf.Union(6, 7)
	uf.Union(7, 8)
	uf.Union(8, 9)

	require.Equal(t, ids(0, 0, 0, 0, 4, 5, 6, 6, 7, 8), uf.parents)

	// Deleting the root of a set promotes the first surviving child; ids
	// above the deleted one shift down.
	uf.Delete(0)
	assert.Equal(t, ids(0, 0, 0, 3, 4, 5, 5, 6, 7), uf.parents)

	uf.Delete(4)
	assert.Equal(t, ids(0, 0, 0, 3, 4, 4, 5, 6), uf.parents)

	uf.Delete(4)
	assert.Equal(t, ids(0, 0, 0, 3, 4, 4, 5), uf.parents)
	assert.Equal(t, 7, uf.Size())
}

func TestUnionFindDeleteKeepsForestAcyclic(t *testing.T) {
	uf := new(UnionFind)
	for range 6 {
		uf.MakeSet()
	}
	uf.Union(2, 3)
	uf.Union(2, 4)
	uf.Delete(2)

	// Every surviving cell must still resolve to a live self-parented root.
	for i := range uf.Size() {
		root := uf.Find(Id(i))
		assert.Equal(t, root, uf.parents[root])
	}
}

func TestSparseUnionFindDelete(t *testing.T) {
	uf := new(SparseUnionFind)
	for range 10 {
		uf.MakeSet()
	}

	uf.Union(0, 1)
	uf.Union(0, 2)
	uf.Union(0, 3)

	uf.Union(6, 7)
	uf.Union(7, 8)
	uf.Union(8, 9)

	require.Equal(t, ids(0, 0, 0, 0, 4, 5, 6, 6, 7, 8), uf.parents)

	uf.Delete(0)
	assert.Equal(t, []Id{tombstone, 1, 1, 1, 4, 5, 6, 6, 7, 8}, uf.parents)
	assert.Equal(t, 9, uf.Size())

	uf.Delete(4)
	assert.Equal(t, []Id{tombstone, 1, 1, 1, tombstone, 5, 6, 6, 7, 8}, uf.parents)

	uf.Delete(6)
	assert.Equal(t, []Id{tombstone, 1, 1, 1, tombstone, 5, tombstone, 7, 7, 8}, uf.parents)
	assert.Equal(t, 7, uf.Size())

	// Deleting a deleted id is a no-op.
	uf.Delete(6)
	assert.Equal(t, 7, uf.Size())
}

func TestSparseUnionFindFindAfterDelete(t *testing.T) {
	uf := new(SparseUnionFind)
	for range 5 {
		uf.MakeSet()
	}
	uf.Union(0, 1)
	uf.Union(0, 2)
	uf.Delete(0)

	_, ok := uf.Find(0)
	assert.False(t, ok)
	_, ok = uf.FindMut(0)
	assert.False(t, ok)
	_, ok = uf.Find(42)
	assert.False(t, ok)

	// Every other previously live id still resolves to a live root.
	for _, id := range ids(1, 2, 3, 4) {
		root, ok := uf.Find(id)
		require.True(t, ok)
		got, ok := uf.Find(root)
		require.True(t, ok)
		assert.Equal(t, root, got)
	}
}

func TestUnionFindFuzzedRoots(t *testing.T) {
	f := fuzz.New().NumElements(100, 500)
	var unions []struct{ A, B uint8 }
	f.Fuzz(&unions)

	const n = 256
	uf := new(UnionFind)
	for range n {
		uf.MakeSet()
	}
	for _, u := range unions {
		ra, rb := uf.FindMut(Id(u.A)), uf.FindMut(Id(u.B))
		if ra != rb {
			uf.Union(ra, rb)
		}
	}

	// After any sequence of MakeSet/Union/FindMut, every element resolves to
	// its set's unique self-parented root.
	for i := range n {
		root := uf.FindMut(Id(i))
		require.Equal(t, root, uf.parents[root])
	}
	for _, u := range unions {
		assert.Equal(t, uf.Find(Id(u.A)), uf.Find(Id(u.B)))
	}
}
