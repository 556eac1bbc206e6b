package identifier_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genkan-app/genkan/internal/identifier"
)

func TestAllocate(t *testing.T) {
	t.Run("returns a 4-digit suffix", func(t *testing.T) {
		got, err := identifier.Allocate(nil)
		require.NoError(t, err)
		assert.Len(t, got, 4)
	})

	t.Run("never returns a taken suffix", func(t *testing.T) {
		used := make([]string, 0, identifier.Limit-1)
		for n := 0; n < identifier.Limit-1; n++ {
			used = append(used, fmt.Sprintf("%04d", n))
		}

		// only one suffix remains
		got, err := identifier.Allocate(used)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("%04d", identifier.Limit-1), got)
	})

	t.Run("fails when the name is exhausted", func(t *testing.T) {
		used := make([]string, 0, identifier.Limit)
		for n := 0; n < identifier.Limit; n++ {
			used = append(used, fmt.Sprintf("%04d", n))
		}

		_, err := identifier.Allocate(used)
		assert.ErrorIs(t, err, identifier.ErrExhausted)
	})

	t.Run("ignores unparsable entries", func(t *testing.T) {
		got, err := identifier.Allocate([]string{"garbage", ""})
		require.NoError(t, err)
		assert.Len(t, got, 4)
	})
}
