package api

import (
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/resumatch/resumatch/internal/clean"
	"github.com/resumatch/resumatch/internal/ingest"
)

// StoredPosting is a cleaned, categorized posting with a stable ID.
type StoredPosting struct {
	ID string `json:"id"`
	ingest.Categorized
}

// PostingStore is the in-memory posting registry. Postings are cleaned and
// deduplicated on insert; a posting already seen in a previous batch is
// dropped.
type PostingStore struct {
	mu       sync.Mutex
	postings []StoredPosting
	seen     map[string]bool
}

func NewPostingStore() *PostingStore {
	return &PostingStore{seen: make(map[string]bool)}
}

// Add cleans, deduplicates and stores a batch of postings. It returns how
// many were actually added.
func (s *PostingStore) Add(postings []ingest.Posting) int {
	cleaned := clean.Deduplicate(clean.Postings(postings))

	s.mu.Lock()
	defer s.mu.Unlock()
	added := 0
	for _, p := range cleaned {
		h := clean.Hash(p)
		if s.seen[h] {
			continue
		}
		s.seen[h] = true
		s.postings = append(s.postings, StoredPosting{
			ID:          ulid.Make().String(),
			Categorized: ingest.Categorize(p),
		})
		added++
	}
	return added
}

// All returns a copy of the stored postings.
func (s *PostingStore) All() []StoredPosting {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StoredPosting, len(s.postings))
	copy(out, s.postings)
	return out
}

func (s *PostingStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.postings)
}
