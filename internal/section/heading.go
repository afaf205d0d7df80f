package section

import (
	"strings"
	"unicode"
)

// HeuristicConfig controls heading-shape detection. The thresholds are
// tunable per document style rather than hardcoded.
type HeuristicConfig struct {
	MaxHeadingWords int     // Lines with at most this many words count as headings.
	UppercaseRatio  float64 // Longer lines count when uppercase/alpha ratio meets this.
}

// DefaultHeuristic returns the stock thresholds.
func DefaultHeuristic() HeuristicConfig {
	return HeuristicConfig{
		MaxHeadingWords: 5,
		UppercaseRatio:  0.7,
	}
}

// IsHeadingShaped reports whether a line looks like a section title, judged
// by text shape alone: short lines are assumed to be titles, and longer
// lines still qualify when they are mostly uppercase (e.g. "PROFESSIONAL
// EXPERIENCE AND ACHIEVEMENTS"). Blank lines never qualify, and neither do
// long lines with no alphabetic characters at all.
func IsHeadingShaped(line string, cfg HeuristicConfig) bool {
	stripped := strings.TrimSpace(line)
	if stripped == "" {
		return false
	}

	if len(strings.Fields(stripped)) <= cfg.MaxHeadingWords {
		return true
	}

	var upper, alpha int
	for _, r := range stripped {
		if unicode.IsLetter(r) {
			alpha++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if alpha == 0 {
		return false
	}
	return float64(upper)/float64(alpha) >= cfg.UppercaseRatio
}
