// SPDX-License-Identifier: MIT
package ensemble

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithWorkers_Validation(t *testing.T) {
	assert.Panics(t, func() { WithWorkers(0) })
	assert.NotPanics(t, func() { WithWorkers(1) })
}

func TestForEachBlock_VisitsAll(t *testing.T) {
	for _, workers := range []int{1, 4} {
		var visited int64
		err := forEachBlock(100, workers, func(i int) error {
			atomic.AddInt64(&visited, 1)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, int64(100), visited, "workers=%d", workers)
	}
}

func TestForEachBlock_PropagatesError(t *testing.T) {
	sentinel := errors.New("block failure")
	for _, workers := range []int{1, 4} {
		err := forEachBlock(10, workers, func(i int) error {
			if i == 7 {
				return sentinel
			}
			return nil
		})
		assert.ErrorIs(t, err, sentinel, "workers=%d", workers)
	}
}
