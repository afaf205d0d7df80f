package section

import (
	"context"
	"errors"
	"testing"
)

// exactProvider scores 1.0 for exact string equality and 0.0 otherwise,
// standing in for a real embedding backend.
type exactProvider struct{}

func (exactProvider) Score(_ context.Context, a, b string) (float64, error) {
	if a == b {
		return 1.0, nil
	}
	return 0.0, nil
}

// scriptedProvider returns fixed scores for known (a, b) pairs and 0.0 for
// everything else.
type scriptedProvider map[[2]string]float64

func (p scriptedProvider) Score(_ context.Context, a, b string) (float64, error) {
	return p[[2]string{a, b}], nil
}

type failingProvider struct{ err error }

func (p failingProvider) Score(context.Context, string, string) (float64, error) {
	return 0, p.err
}

type outOfRangeProvider struct{ score float64 }

func (p outOfRangeProvider) Score(context.Context, string, string) (float64, error) {
	return p.score, nil
}

func smallVocab() Vocabulary {
	return Vocabulary{Entries: []VocabEntry{
		{Category: Education, Synonyms: []string{"education"}},
		{Category: Experience, Synonyms: []string{"experience"}},
		{Category: Skills, Synonyms: []string{"skills"}},
	}}
}

func TestScorer_ExactMatch(t *testing.T) {
	s := NewScorer(exactProvider{}, smallVocab(), 0.65)

	cls, err := s.Classify(context.Background(), "EXPERIENCE")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if cls.Category != Experience {
		t.Errorf("expected experience, got %s", cls.Category)
	}
	if cls.Score != 1.0 {
		t.Errorf("expected score 1.0, got %v", cls.Score)
	}
}

func TestScorer_BelowBaseForcedToOther(t *testing.T) {
	p := scriptedProvider{
		{"summer internships", "experience"}: 0.60,
	}
	s := NewScorer(p, smallVocab(), 0.65)

	cls, err := s.Classify(context.Background(), "Summer Internships")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if cls.Category != Other {
		t.Errorf("expected other below base threshold, got %s", cls.Category)
	}
	// The raw best score is preserved for diagnostics.
	if cls.Score != 0.60 {
		t.Errorf("expected preserved score 0.60, got %v", cls.Score)
	}
}

func TestScorer_TieKeepsFirstSeen(t *testing.T) {
	// Education iterates before skills in the vocabulary, so an equal
	// maximum must resolve to education.
	p := scriptedProvider{
		{"background", "education"}: 0.80,
		{"background", "skills"}:    0.80,
	}
	s := NewScorer(p, smallVocab(), 0.65)

	cls, err := s.Classify(context.Background(), "Background")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if cls.Category != Education {
		t.Errorf("tie should keep first-seen category education, got %s", cls.Category)
	}
}

func TestScorer_LowercasesLine(t *testing.T) {
	p := scriptedProvider{
		{"work history", "experience"}: 0.90,
	}
	s := NewScorer(p, smallVocab(), 0.65)

	cls, err := s.Classify(context.Background(), "WORK HISTORY")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if cls.Category != Experience {
		t.Errorf("expected experience from lowercased match, got %s", cls.Category)
	}
}

func TestScorer_ProviderFailurePropagates(t *testing.T) {
	base := errors.New("embedding backend unavailable")
	s := NewScorer(failingProvider{err: base}, smallVocab(), 0.65)

	_, err := s.Classify(context.Background(), "EDUCATION")
	if err == nil {
		t.Fatal("expected error from failing provider")
	}
	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %T", err)
	}
	if !errors.Is(err, base) {
		t.Error("expected wrapped provider error to unwrap to the cause")
	}
}

func TestScorer_OutOfRangeScoreIsProviderError(t *testing.T) {
	for _, score := range []float64{-0.2, 1.5} {
		s := NewScorer(outOfRangeProvider{score: score}, smallVocab(), 0.65)
		_, err := s.Classify(context.Background(), "EDUCATION")
		if err == nil {
			t.Fatalf("expected error for out-of-range score %v", score)
		}
		var provErr *ProviderError
		if !errors.As(err, &provErr) {
			t.Errorf("expected ProviderError for score %v, got %T", score, err)
		}
	}
}
