package match

import (
	"math"
	"sort"
	"sync"
)

// Cosine computes the cosine similarity between two vectors. It returns 0
// when either vector is zero-length or the dimensions disagree.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// JobVector pairs a posting ID with its vector representation.
type JobVector struct {
	ID     string
	Vector []float64
}

// Match is one ranked result.
type Match struct {
	JobID string  `json:"job_id"`
	Score float64 `json:"score"`
}

// Ranker scores a résumé vector against posting vectors and returns the top
// matches. Results are optionally cached per résumé ID so repeated queries
// for the same résumé skip the recompute.
type Ranker struct {
	mu    sync.Mutex
	cache map[string][]Match
}

func NewRanker() *Ranker {
	return &Ranker{cache: make(map[string][]Match)}
}

// TopN ranks jobs against the résumé vector, descending by score, and
// returns the first n. A non-empty resumeID stores and reuses the full
// ranking across calls.
func (r *Ranker) TopN(resumeID string, resume []float64, jobs []JobVector, n int) []Match {
	if resumeID != "" {
		r.mu.Lock()
		cached, ok := r.cache[resumeID]
		r.mu.Unlock()
		if ok {
			return head(cached, n)
		}
	}

	scores := make([]Match, 0, len(jobs))
	for _, j := range jobs {
		scores = append(scores, Match{JobID: j.ID, Score: Cosine(resume, j.Vector)})
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })

	if resumeID != "" {
		r.mu.Lock()
		r.cache[resumeID] = scores
		r.mu.Unlock()
	}
	return head(scores, n)
}

// Invalidate drops a résumé's cached ranking, e.g. after the posting set
// changed.
func (r *Ranker) Invalidate(resumeID string) {
	r.mu.Lock()
	delete(r.cache, resumeID)
	r.mu.Unlock()
}

func head(m []Match, n int) []Match {
	if n <= 0 || n > len(m) {
		n = len(m)
	}
	return m[:n]
}
