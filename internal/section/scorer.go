package section

import (
	"context"
	"fmt"
	"strings"
)

// Provider scores the semantic similarity of two text snippets in [0,1].
// Implementations must be stateless and safe for concurrent use; segmentation
// of independent documents runs providers from multiple goroutines.
type Provider interface {
	Score(ctx context.Context, a, b string) (float64, error)
}

// Classification is the scorer's verdict for one candidate heading line.
type Classification struct {
	Category Category
	// Score is the best similarity found across the whole vocabulary,
	// preserved even when the category was forced to Other because the
	// score fell below the base threshold.
	Score float64
}

// Scorer finds the best-matching category for a candidate heading line by
// scoring it against every synonym in the vocabulary.
type Scorer struct {
	provider Provider
	vocab    Vocabulary
	base     float64
}

// NewScorer builds a scorer. The caller is responsible for validating the
// vocabulary and threshold; NewSegmenter does both.
func NewScorer(p Provider, vocab Vocabulary, baseThreshold float64) *Scorer {
	return &Scorer{provider: p, vocab: vocab, base: baseThreshold}
}

// Classify scores the lowercased line against the full (category, synonym)
// cross-product and returns the best category with its score. Ties keep the
// first maximum in vocabulary order. A best score below the base threshold
// forces the category to Other, keeping the raw score for diagnostics.
func (s *Scorer) Classify(ctx context.Context, line string) (Classification, error) {
	lowered := strings.ToLower(line)

	best := Classification{Category: Other, Score: 0}
	for _, entry := range s.vocab.Entries {
		for _, syn := range entry.Synonyms {
			score, err := s.provider.Score(ctx, lowered, syn)
			if err != nil {
				return Classification{}, &ProviderError{Line: line, Err: err}
			}
			if score < 0 || score > 1 {
				return Classification{}, &ProviderError{
					Line: line,
					Err:  fmt.Errorf("score %v out of range [0,1]", score),
				}
			}
			if score > best.Score {
				best.Score = score
				best.Category = entry.Category
			}
		}
	}

	if best.Score < s.base {
		return Classification{Category: Other, Score: best.Score}, nil
	}
	return best, nil
}
