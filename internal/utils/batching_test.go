package utils_test

import (
	"testing"

	"github.com/spacesedan/decisions/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestBatches(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}

	batches := utils.Batches(ids, 2)
	require.Equal(t, [][]string{{"a", "b"}, {"c", "d"}, {"e"}}, batches)

	require.Equal(t, [][]string{ids}, utils.Batches(ids, 100))
	require.Nil(t, utils.Batches([]string{}, 2))
}

func TestBatchesDoNotOverwriteEachOther(t *testing.T) {
	ids := []int{1, 2, 3, 4}
	batches := utils.Batches(ids, 2)

	batches[0] = append(batches[0], 99)
	require.Equal(t, []int{3, 4}, batches[1])
}

func TestBatchesClampsSize(t *testing.T) {
	require.Len(t, utils.Batches([]int{1, 2, 3}, 0), 3)
}
