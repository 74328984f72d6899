package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssertInvariant(t *testing.T) {
	t.Run("holds", func(t *testing.T) {
		assert.NotPanics(t, func() { AssertInvariant(true, "never raised") })
	})

	t.Run("violated", func(t *testing.T) {
		assert.PanicsWithValue(t, "invariant violated - guild id required", func() {
			AssertInvariant(false, "guild id required")
		})
	})
}
