package id

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProducesUniqueSortedIDs(t *testing.T) {
	const n = 1000
	ids := make([]string, n)
	seen := make(map[string]bool, n)

	for i := 0; i < n; i++ {
		ids[i] = New()
		assert.Len(t, ids[i], 26)
		assert.False(t, seen[ids[i]], "duplicate id %s", ids[i])
		seen[ids[i]] = true
	}

	// Monotonic entropy keeps generation order and lexicographic order in
	// agreement, which is what makes id-ascending a creation-order tiebreak.
	assert.True(t, sort.StringsAreSorted(ids))
}
