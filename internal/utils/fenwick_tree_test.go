package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tokenforge/image-pool-go/internal/utils"
)

func TestFenwickTree_AddQuery(t *testing.T) {
	ft := utils.NewFenwickTree(5)

	ft.Add(0, 1)
	ft.Add(2, 1)
	ft.Add(4, 1)

	assert.Equal(t, int64(1), ft.Query(0))
	assert.Equal(t, int64(1), ft.Query(1))
	assert.Equal(t, int64(2), ft.Query(2))
	assert.Equal(t, int64(2), ft.Query(3))
	assert.Equal(t, int64(3), ft.Query(4))

	// Remove the middle unit
	ft.Add(2, -1)
	assert.Equal(t, int64(1), ft.Query(2))
	assert.Equal(t, int64(2), ft.Query(4))
}

func TestFenwickTree_Find(t *testing.T) {
	ft := utils.NewFenwickTree(4)
	ft.Add(1, 1)
	ft.Add(3, 1)

	// Cumulative sums: [0, 1, 1, 2]
	assert.Equal(t, 1, ft.Find(1))
	assert.Equal(t, 3, ft.Find(2))
	assert.Equal(t, -1, ft.Find(3))
}

func TestFenwickTree_OutOfRange(t *testing.T) {
	ft := utils.NewFenwickTree(2)
	ft.Add(-1, 5)
	ft.Add(2, 5)
	assert.Equal(t, int64(0), ft.Query(1))
	assert.Equal(t, int64(0), ft.Query(-1))
	assert.Equal(t, int64(0), ft.Query(5))
}
