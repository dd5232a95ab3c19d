package words

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	words := List()

	require.Greater(t, len(words), 25)

	seen := make(map[string]bool, len(words))
	for _, word := range words {
		key := strings.ToLower(word)
		assert.False(t, seen[key], "duplicate word %q", word)
		seen[key] = true
	}
}

func TestSample(t *testing.T) {
	t.Run("Draws distinct words", func(t *testing.T) {
		// Given: a seeded random source
		rnd := rand.New(rand.NewPCG(1, 2))

		// When: sampling a board's worth of words
		sample, err := Sample(rnd, 25)

		// Then: 25 distinct words come back
		require.NoError(t, err)
		require.Len(t, sample, 25)

		seen := make(map[string]bool)
		for _, word := range sample {
			assert.False(t, seen[word])
			seen[word] = true
		}
	})

	t.Run("Fails when the vocabulary is too small", func(t *testing.T) {
		_, err := Sample(rand.New(rand.NewPCG(1, 2)), len(List())+1)

		require.ErrorIs(t, err, ErrNotEnoughWords)
	})
}
