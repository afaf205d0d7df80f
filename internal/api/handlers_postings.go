package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/resumatch/resumatch/internal/clean"
	"github.com/resumatch/resumatch/internal/ingest"
	"github.com/resumatch/resumatch/internal/match"
)

type fetchRequest struct {
	Source  string `json:"source"` // "adzuna" or "jooble"
	What    string `json:"what"`
	Where   string `json:"where"`
	Pages   int    `json:"pages"`
	PerPage int    `json:"per_page"`
}

func (s *Server) handleFetchPostings(w http.ResponseWriter, r *http.Request) {
	var req fetchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.What == "" {
		jsonError(w, "what is required", http.StatusBadRequest)
		return
	}
	if req.Pages <= 0 {
		req.Pages = 1
	}
	if req.PerPage <= 0 {
		req.PerPage = 20
	}

	src, err := s.jobSource(req.Source)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	postings, err := src.Fetch(r.Context(), ingest.Query{
		What:    req.What,
		Where:   req.Where,
		Pages:   req.Pages,
		PerPage: req.PerPage,
	})
	if err != nil {
		s.log.Error("posting fetch failed", "source", src.Name(), "error", err)
		jsonError(w, "fetch failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	added := s.postings.Add(postings)
	if added > 0 {
		// Cached rankings are stale once the posting set grows.
		s.matchMu.Lock()
		s.ranker = match.NewRanker()
		s.matchMu.Unlock()
	}

	s.log.Info("postings fetched", "source", src.Name(), "fetched", len(postings), "added", added)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"source":  src.Name(),
		"fetched": len(postings),
		"added":   added,
		"total":   s.postings.Len(),
	})
}

func (s *Server) jobSource(name string) (ingest.Source, error) {
	switch name {
	case "adzuna", "":
		if s.cfg.AdzunaAppID == "" || s.cfg.AdzunaAppKey == "" {
			return nil, fmt.Errorf("adzuna is not configured (ADZUNA_APP_ID, ADZUNA_APP_KEY)")
		}
		return ingest.NewAdzunaClient(s.cfg.AdzunaAppID, s.cfg.AdzunaAppKey, s.cfg.AdzunaCountry), nil
	case "jooble":
		if s.cfg.JoobleAPIKey == "" {
			return nil, fmt.Errorf("jooble is not configured (JOOBLE_API_KEY)")
		}
		return ingest.NewJoobleClient(s.cfg.JoobleAPIKey), nil
	default:
		return nil, fmt.Errorf("unknown source %q", name)
	}
}

func (s *Server) handleListPostings(w http.ResponseWriter, r *http.Request) {
	stored := s.postings.All()

	// The filter helpers work on Categorized values; the hash maps each
	// survivor back to its stored record. Hashes are unique here because
	// the store dedupes on insert.
	cats := make([]ingest.Categorized, len(stored))
	byHash := make(map[string]StoredPosting, len(stored))
	for i, p := range stored {
		cats[i] = p.Categorized
		byHash[clean.Hash(p.Posting)] = p
	}

	q := r.URL.Query()
	if loc := q.Get("location"); loc != "" {
		cats = ingest.FilterByLocation(cats, loc)
	}
	if rem := q.Get("remote"); rem != "" {
		remote, err := strconv.ParseBool(rem)
		if err != nil {
			jsonError(w, "remote must be true or false", http.StatusBadRequest)
			return
		}
		cats = ingest.FilterByRemote(cats, remote)
	}
	minSalary, _ := strconv.Atoi(q.Get("min_salary"))
	maxSalary, _ := strconv.Atoi(q.Get("max_salary"))
	if minSalary > 0 || maxSalary > 0 {
		cats = ingest.FilterBySalaryRange(cats, minSalary, maxSalary)
	}
	if ind := q.Get("industry"); ind != "" {
		cats = ingest.FilterByIndustry(cats, ind)
	}

	out := make([]StoredPosting, 0, len(cats))
	for _, c := range cats {
		if p, ok := byHash[clean.Hash(c.Posting)]; ok {
			out = append(out, p)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"postings": out,
		"count":    len(out),
	})
}
