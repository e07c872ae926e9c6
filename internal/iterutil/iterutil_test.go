package iterutil

import (
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func pairs(kv map[string]int) iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		for k, v := range kv {
			if !yield(k, v) {
				return
			}
		}
	}
}

func TestLeft(t *testing.T) {
	got := slices.Sorted(Left(pairs(map[string]int{"a": 1, "b": 2, "c": 3})))
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestRight(t *testing.T) {
	got := slices.Sorted(Right(pairs(map[string]int{"a": 1, "b": 2, "c": 3})))
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestLen2(t *testing.T) {
	assert.Equal(t, 3, Len2(pairs(map[string]int{"a": 1, "b": 2, "c": 3})))
	assert.Equal(t, 0, Len2(pairs(nil)))
}

func TestEarlyBreak(t *testing.T) {
	var n int
	for range Left(pairs(map[string]int{"a": 1, "b": 2, "c": 3})) {
		n++
		break
	}
	assert.Equal(t, 1, n)
}
