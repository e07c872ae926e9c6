// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/eqsat/blob/master/LICENSE.txt.

package eqsat

import (
	"math"
	"slices"
)

// UnionFind is a disjoint-set forest over dense [Id] indexes. Each cell holds
// a parent pointer; the root of a set is the unique cell pointing at itself.
// The zero value is an empty forest ready for use.
//
// Deletion compacts the backing storage: every id greater than the deleted one
// is renumbered down by one, so callers holding external references must
// re-index them consistently. For stable ids under deletion, use
// [SparseUnionFind].
type UnionFind struct {
	parents []Id
}

// MakeSet allocates a fresh singleton set and returns its id. The id equals
// the cell's position in the backing storage at allocation time.
func (u *UnionFind) MakeSet() Id {
	id := Id(len(u.parents))
	u.parents = append(u.parents, id)
	return id
}

// Size returns the number of cells in the forest.
func (u *UnionFind) Size() int {
	return len(u.parents)
}

// Find walks parent pointers up to the root of the set containing current.
// It performs no path compression; see [UnionFind.FindMut].
func (u *UnionFind) Find(current Id) Id {
	for current != u.parents[current] {
		current = u.parents[current]
	}
	return current
}

// FindMut is like [UnionFind.Find] but applies one-pass path halving: every
// traversed cell is re-parented to its grandparent.
func (u *UnionFind) FindMut(current Id) Id {
	for current != u.parents[current] {
		grandparent := u.parents[u.parents[current]]
		u.parents[current] = grandparent
		current = grandparent
	}
	return current
}

// Union merges the set rooted at root2 into the set rooted at root1 and
// returns root1. Both arguments must be roots; the caller picks which one
// survives. Union by rank is not used.
func (u *UnionFind) Union(root1, root2 Id) Id {
	u.parents[root2] = root1
	return root1
}

// Delete removes query from the forest and compacts the backing storage,
// renumbering every id greater than query down by one. If query was a root,
// the first surviving cell that pointed at it becomes the new root and adopts
// its siblings; otherwise orphaned children are re-parented to query's former
// parent. Re-rooting matches ids as they were before the shift.
func (u *UnionFind) Delete(query Id) {
	parent := u.parents[query]

	u.parents = slices.Delete(u.parents, int(query), int(query)+1)

	newRoot := -1
	for idx := range u.parents {
		if parent == query {
			// The deleted cell was a root, promote the first surviving child.
			if u.parents[idx] == query {
				if newRoot < 0 {
					// Record the child's pre-shift id; the renumbering
					// below moves it to its new position.
					newRoot = idx
					if idx >= int(query) {
						newRoot = idx + 1
					}
				}
				u.parents[idx] = Id(newRoot)
			}
		} else if u.parents[idx] == query {
			u.parents[idx] = parent
		}
		if u.parents[idx] > query {
			u.parents[idx]--
		}
	}
}

// tombstone marks a vacated cell in a [SparseUnionFind].
const tombstone = Id(math.MaxUint32)

// SparseUnionFind is a disjoint-set forest that preserves the ids of
// surviving elements across deletions: vacated cells are tombstoned instead
// of compacted. It trades one sentinel value of the id space ([math.MaxUint32])
// for external id stability.
type SparseUnionFind struct {
	parents []Id
	live    int
}

// MakeSet allocates a fresh singleton set and returns its id.
func (u *SparseUnionFind) MakeSet() Id {
	id := Id(len(u.parents))
	u.parents = append(u.parents, id)
	u.live++
	return id
}

// Size returns the number of live cells, excluding tombstones.
func (u *SparseUnionFind) Size() int {
	return u.live
}

// Find walks parent pointers up to the root of the set containing current.
// It reports false if current is out of range or has been deleted.
func (u *SparseUnionFind) Find(current Id) (Id, bool) {
	if int(current) >= len(u.parents) || u.parents[current] == tombstone {
		return 0, false
	}
	for current != u.parents[current] {
		current = u.parents[current]
	}
	return current, true
}

// FindMut is like [SparseUnionFind.Find] but applies one-pass path halving.
func (u *SparseUnionFind) FindMut(current Id) (Id, bool) {
	if int(current) >= len(u.parents) || u.parents[current] == tombstone {
		return 0, false
	}
	for current != u.parents[current] {
		grandparent := u.parents[u.parents[current]]
		u.parents[current] = grandparent
		current = grandparent
	}
	return current, true
}

// Union merges the set rooted at root2 into the set rooted at root1 and
// returns root1. Both arguments must be live roots.
func (u *SparseUnionFind) Union(root1, root2 Id) Id {
	u.parents[root2] = root1
	return root1
}

// Delete vacates query without renumbering survivors. If query was a root,
// the first surviving cell that pointed at it becomes the new root and adopts
// its siblings; otherwise orphaned children are re-parented to query's former
// parent. Deleting an already deleted or out-of-range id is a no-op.
func (u *SparseUnionFind) Delete(query Id) {
	if int(query) >= len(u.parents) || u.parents[query] == tombstone {
		return
	}
	parent := u.parents[query]
	u.parents[query] = tombstone
	u.live--

	newRoot := -1
	for idx := range u.parents {
		if u.parents[idx] != query {
			continue
		}
		if parent == query {
			if newRoot < 0 {
				newRoot = idx
			}
			u.parents[idx] = Id(newRoot)
		} else {
			u.parents[idx] = parent
		}
	}
}
