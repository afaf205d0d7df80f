package match

import (
	"math"
	"testing"
)

func TestVectorizer_FitAndVector(t *testing.T) {
	corpus := []string{
		"Senior Data Engineer building ETL pipelines",
		"Data Scientist with machine learning experience",
		"Frontend Engineer working on dashboards",
	}
	v := NewVectorizer()
	v.Fit(corpus)

	if !v.Fitted() {
		t.Fatal("vectorizer should be fitted")
	}

	vec, err := v.Vector(corpus[0])
	if err != nil {
		t.Fatalf("Vector: %v", err)
	}

	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	if math.Abs(norm-1) > 1e-9 {
		t.Errorf("vector not L2-normalized, |v|^2 = %v", norm)
	}

	// A document about its own corpus entry must score itself highest.
	vecs, err := v.Transform(corpus)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	self := Cosine(vec, vecs[0])
	for i := 1; i < len(vecs); i++ {
		if Cosine(vec, vecs[i]) >= self {
			t.Errorf("document %d scored >= the document itself", i)
		}
	}
}

func TestVectorizer_UnknownTermsIgnored(t *testing.T) {
	v := NewVectorizer()
	v.Fit([]string{"go sql kubernetes"})

	vec, err := v.Vector("rust haskell erlang")
	if err != nil {
		t.Fatalf("Vector: %v", err)
	}
	for i, x := range vec {
		if x != 0 {
			t.Errorf("dimension %d = %v, want all zeros for out-of-vocabulary text", i, x)
		}
	}
}

func TestVectorizer_NotFitted(t *testing.T) {
	v := NewVectorizer()
	if _, err := v.Vector("anything"); err == nil {
		t.Fatal("expected error from unfitted vectorizer")
	}
}

func TestVectorizer_StopwordsDropped(t *testing.T) {
	v := NewVectorizer()
	v.Fit([]string{"the and for with engineer"})
	if len(v.terms) != 1 || v.terms[0] != "engineer" {
		t.Errorf("expected only content terms indexed, got %v", v.terms)
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0},
		{"dimension mismatch", []float64{1}, []float64{1, 0}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cosine(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cosine = %v, want %v", got, tt.want)
			}
		})
	}
}
