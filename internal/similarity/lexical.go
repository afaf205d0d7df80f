package similarity

import (
	"context"
	"strings"

	"github.com/resumatch/resumatch/internal/tokenize"
)

// Lexical scores text pairs by Jaccard overlap of their lowercased token
// sets. It needs no network backend, which makes it a deterministic fallback
// when no embeddings endpoint is configured. Identical phrases score 1.0;
// disjoint phrases score 0.0.
type Lexical struct{}

func (Lexical) Score(_ context.Context, a, b string) (float64, error) {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0, nil
	}

	inter := 0
	for tok := range setA {
		if setB[tok] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union), nil
}

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range tokenize.Words(strings.ToLower(text)) {
		set[tok] = true
	}
	return set
}
