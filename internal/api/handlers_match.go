package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/resumatch/resumatch/internal/match"
	"github.com/resumatch/resumatch/internal/pipeline"
	"github.com/resumatch/resumatch/internal/section"
)

type matchRequest struct {
	JobID string `json:"job_id"` // résumé job to match
	TopN  int    `json:"top_n"`
}

type matchResult struct {
	Posting StoredPosting `json:"posting"`
	Score   float64       `json:"score"`
}

// handleMatch ranks the stored postings against a processed résumé using
// TF-IDF cosine similarity. The vectorizer is fitted on the current posting
// set plus the résumé, so scores are comparable within one response only.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.JobID == "" {
		jsonError(w, "job_id is required", http.StatusBadRequest)
		return
	}
	if req.TopN <= 0 {
		req.TopN = s.cfg.MatchTopN
	}

	job := s.orchestrator.GetJob(req.JobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	if snap.Result == nil {
		jsonError(w, "résumé is not processed yet (status: "+string(snap.Status)+")", http.StatusConflict)
		return
	}
	resumeText := resumeMatchText(snap)
	if resumeText == "" {
		jsonError(w, "résumé has no text to match", http.StatusUnprocessableEntity)
		return
	}

	stored := s.postings.All()
	if len(stored) == 0 {
		jsonError(w, "no postings loaded; fetch postings first", http.StatusConflict)
		return
	}

	corpus := make([]string, 0, len(stored)+1)
	for _, p := range stored {
		corpus = append(corpus, p.Posting.Title+" "+p.Posting.Description)
	}
	corpus = append(corpus, resumeText)

	v := match.NewVectorizer()
	v.Fit(corpus)

	jobVecs := make([]match.JobVector, 0, len(stored))
	byID := make(map[string]StoredPosting, len(stored))
	for i, p := range stored {
		vec, err := v.Vector(corpus[i])
		if err != nil {
			jsonError(w, "vectorizing postings: "+err.Error(), http.StatusInternalServerError)
			return
		}
		jobVecs = append(jobVecs, match.JobVector{ID: p.ID, Vector: vec})
		byID[p.ID] = p
	}
	resumeVec, err := v.Vector(resumeText)
	if err != nil {
		jsonError(w, "vectorizing résumé: "+err.Error(), http.StatusInternalServerError)
		return
	}

	s.matchMu.Lock()
	ranker := s.ranker
	s.matchMu.Unlock()

	matches := ranker.TopN(req.JobID, resumeVec, jobVecs, req.TopN)

	results := make([]matchResult, 0, len(matches))
	for _, m := range matches {
		p, ok := byID[m.JobID]
		if !ok {
			continue
		}
		results = append(results, matchResult{Posting: p, Score: m.Score})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":  req.JobID,
		"matches": results,
	})
}

// resumeMatchText flattens a processed résumé into one matching document.
// The skills and experience sections carry most of the signal, but every
// classified section participates.
func resumeMatchText(snap pipeline.Snapshot) string {
	var parts []string
	for _, cat := range section.Categories() {
		if text := snap.Result.Sections[cat]; text != "" {
			parts = append(parts, text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
