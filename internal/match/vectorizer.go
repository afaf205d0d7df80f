// Package match turns section text into TF-IDF vectors and ranks job
// postings against a résumé by cosine similarity. It consumes the section
// engine's output as independent text fields; it knows nothing about how the
// partitioning was made.
package match

import (
	"fmt"
	"math"
	"strings"

	"github.com/resumatch/resumatch/internal/tokenize"
)

// stopwords are common English words that add noise to term matching.
var stopwords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"about": true, "which": true, "what": true, "who": true, "how": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"more": true, "than": true, "into": true, "has": true, "its": true,
	"was": true, "were": true, "been": true, "each": true, "new": true,
	"such": true, "per": true, "a": true, "an": true,
	"in": true, "on": true, "of": true, "to": true, "as": true, "at": true,
	"is": true, "be": true, "or": true, "by": true, "we": true, "it": true,
}

// Vectorizer maps documents into a fixed term space with TF-IDF weights.
// Fit once on the full corpus, then Transform any text.
type Vectorizer struct {
	index map[string]int // term -> dimension
	terms []string
	idf   []float64
}

// NewVectorizer returns an unfitted vectorizer.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{index: make(map[string]int)}
}

// terms extracts the lowercased, stopword-free tokens of a document.
func docTerms(text string) []string {
	var out []string
	for _, tok := range tokenize.Words(strings.ToLower(text)) {
		if len(tok) < 2 || stopwords[tok] {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Fit builds the term index and inverse document frequencies from a corpus.
// Calling Fit again refits from scratch.
func (v *Vectorizer) Fit(texts []string) {
	v.index = make(map[string]int)
	v.terms = v.terms[:0]

	df := []int{}
	for _, text := range texts {
		seen := map[int]bool{}
		for _, term := range docTerms(text) {
			i, ok := v.index[term]
			if !ok {
				i = len(v.terms)
				v.index[term] = i
				v.terms = append(v.terms, term)
				df = append(df, 0)
			}
			if !seen[i] {
				df[i]++
				seen[i] = true
			}
		}
	}

	// Smoothed idf, so terms present in every document still carry weight.
	n := float64(len(texts))
	v.idf = make([]float64, len(df))
	for i, d := range df {
		v.idf[i] = math.Log((1+n)/(1+float64(d))) + 1
	}
}

// Fitted reports whether Fit has been called with a non-empty corpus.
func (v *Vectorizer) Fitted() bool {
	return len(v.terms) > 0
}

// Vector transforms one document into an L2-normalized TF-IDF vector in the
// fitted term space. Unknown terms are ignored.
func (v *Vectorizer) Vector(text string) ([]float64, error) {
	if !v.Fitted() {
		return nil, fmt.Errorf("vectorizer not fitted")
	}

	vec := make([]float64, len(v.terms))
	for _, term := range docTerms(text) {
		if i, ok := v.index[term]; ok {
			vec[i] += v.idf[i]
		}
	}

	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

// Transform vectorizes a batch of documents.
func (v *Vectorizer) Transform(texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, t := range texts {
		vec, err := v.Vector(t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}
