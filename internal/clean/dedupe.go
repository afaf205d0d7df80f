package clean

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"github.com/resumatch/resumatch/internal/ingest"
)

// Hash fingerprints a posting by its identifying fields, lowercased and
// trimmed, so cosmetic differences don't defeat deduplication.
func Hash(p ingest.Posting) string {
	fields := []string{p.Title, p.Company, p.Location, p.Description}
	for i, f := range fields {
		fields[i] = strings.ToLower(strings.TrimSpace(f))
	}
	sum := md5.Sum([]byte(strings.Join(fields, "||")))
	return hex.EncodeToString(sum[:])
}

// Deduplicate drops postings whose hash was already seen, keeping the first
// occurrence and preserving order.
func Deduplicate(postings []ingest.Posting) []ingest.Posting {
	seen := make(map[string]bool, len(postings))
	out := make([]ingest.Posting, 0, len(postings))
	for _, p := range postings {
		h := Hash(p)
		if seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, p)
	}
	return out
}
