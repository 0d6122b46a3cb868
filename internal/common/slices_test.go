package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []int{2, 4}, Map([]int{1, 2}, func(i int) int { return i * 2 }))
	assert.Nil(t, Map([]int(nil), func(i int) int { return i }))
}

func TestSortedKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(map[string]int{"c": 1, "a": 2, "b": 3}))
}

func TestSortedUnique(t *testing.T) {
	in := []int{3, 1, 3, 2, 1}
	assert.Equal(t, []int{1, 2, 3}, SortedUnique(in))
	assert.Equal(t, []int{3, 1, 3, 2, 1}, in)
}
