package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopoSort_Order(t *testing.T) {
	order, err := TopoSort(3, func(i int) []int {
		switch i {
		case 0:
			return []int{2}
		case 1:
			return []int{0}
		default:
			return nil
		}
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 1}, order)
}

func TestTopoSort_PicksSmallestReady(t *testing.T) {
	order, err := TopoSort(4, func(i int) []int {
		if i == 0 {
			return []int{3}
		}

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 0}, order)
}

func TestTopoSort_Cycle(t *testing.T) {
	stuck, err := TopoSort(3, func(i int) []int {
		switch i {
		case 0:
			return []int{1}
		case 1:
			return []int{0}
		default:
			return nil
		}
	})
	require.ErrorIs(t, err, ErrCycle)
	assert.Equal(t, []int{0, 1}, stuck)
}

func TestTopoSort_OutOfRange(t *testing.T) {
	_, err := TopoSort(1, func(int) []int { return []int{5} })
	assert.Error(t, err)
}

func TestTopoSort_Empty(t *testing.T) {
	order, err := TopoSort(0, nil)
	require.NoError(t, err)
	assert.Nil(t, order)
}
