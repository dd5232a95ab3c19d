// Package words holds the embedded board vocabulary.
package words

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

//go:embed wordlist.txt
var wordlist string

var ErrNotEnoughWords = errors.New("not enough words")

// List returns the embedded vocabulary, one entry per non-empty line.
func List() []string {
	lines := strings.Split(wordlist, "\n")
	words := make([]string, 0, len(lines))
	for _, line := range lines {
		if word := strings.TrimSpace(line); word != "" {
			words = append(words, word)
		}
	}
	return words
}

// Sample draws n distinct words from the vocabulary.
func Sample(rnd *rand.Rand, n int) ([]string, error) {
	all := List()
	if n > len(all) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrNotEnoughWords, n, len(all))
	}

	for i := range n {
		j := i + rnd.IntN(len(all)-i)
		all[i], all[j] = all[j], all[i]
	}

	return all[:n], nil
}
