// Package section implements the résumé section segmentation engine: a
// line-by-line pass that detects heading-shaped lines, scores them against a
// category vocabulary with a pluggable similarity provider, and assigns every
// line of the document to exactly one of the fixed categories.
//
// The central policy is two thresholds: a base confidence (default 0.65)
// required to classify a heading at all, and a stricter override confidence
// (default 0.75) required before a heading may interrupt an already-active
// section. The gap between them tolerates vocabulary overlap (the word
// "experience" inside an education blurb) without flapping between sections.
package section

import (
	"context"
	"fmt"
	"strings"
)

// Config carries every tunable of the segmentation engine.
type Config struct {
	Heuristic         HeuristicConfig
	BaseThreshold     float64 // Minimum similarity to classify a heading at all.
	OverrideThreshold float64 // Minimum similarity to switch away from the current section.
	Vocabulary        Vocabulary
}

// DefaultConfig returns the stock thresholds and built-in vocabulary.
func DefaultConfig() Config {
	return Config{
		Heuristic:         DefaultHeuristic(),
		BaseThreshold:     0.65,
		OverrideThreshold: 0.75,
		Vocabulary:        DefaultVocabulary(),
	}
}

// Segmenter is the public entry point: it splits raw document text into
// lines and drives the section assigner. Safe for concurrent use across
// documents; each Segment call carries its own state.
type Segmenter struct {
	cfg    Config
	scorer *Scorer
}

// NewSegmenter validates the configuration eagerly and builds the engine.
// Invalid thresholds or an empty vocabulary fail here, not per line.
func NewSegmenter(p Provider, cfg Config) (*Segmenter, error) {
	if p == nil {
		return nil, &ConfigurationError{Reason: "similarity provider is nil"}
	}
	if cfg.BaseThreshold < 0 || cfg.BaseThreshold > 1 {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("base threshold %v outside [0,1]", cfg.BaseThreshold)}
	}
	if cfg.OverrideThreshold < 0 || cfg.OverrideThreshold > 1 {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("override threshold %v outside [0,1]", cfg.OverrideThreshold)}
	}
	if cfg.OverrideThreshold < cfg.BaseThreshold {
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("override threshold %v below base threshold %v", cfg.OverrideThreshold, cfg.BaseThreshold),
		}
	}
	if cfg.Heuristic.MaxHeadingWords <= 0 {
		return nil, &ConfigurationError{Reason: "max heading words must be positive"}
	}
	if cfg.Heuristic.UppercaseRatio < 0 || cfg.Heuristic.UppercaseRatio > 1 {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("uppercase ratio %v outside [0,1]", cfg.Heuristic.UppercaseRatio)}
	}
	if err := cfg.Vocabulary.Validate(); err != nil {
		return nil, err
	}
	return &Segmenter{
		cfg:    cfg,
		scorer: NewScorer(p, cfg.Vocabulary, cfg.BaseThreshold),
	}, nil
}

// Segment splits text on line breaks (blank lines preserved as empty lines)
// and returns the category -> text map. Every category key is present in the
// result; per-category text is joined in original line order and trimmed of
// leading/trailing whitespace only at the ends.
func (s *Segmenter) Segment(ctx context.Context, text string) (SectionMap, error) {
	lines := strings.Split(text, "\n")

	a := &assigner{
		scorer:    s.scorer,
		heuristic: s.cfg.Heuristic,
		override:  s.cfg.OverrideThreshold,
	}
	buckets, err := a.assign(ctx, lines)
	if err != nil {
		return nil, err
	}

	out := make(SectionMap, len(buckets))
	for cat, collected := range buckets {
		out[cat] = strings.TrimSpace(strings.Join(collected, "\n"))
	}
	return out, nil
}
