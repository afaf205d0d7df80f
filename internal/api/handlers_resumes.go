package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/resumatch/resumatch/internal/extractor"
	"github.com/resumatch/resumatch/internal/pipeline"
)

func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readResumeUpload(w, r)
	if !ok {
		return
	}

	job, err := s.orchestrator.Submit(filename, data)
	if err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/resumes/%s", job.ID),
	})
}

func (s *Server) handleResumeStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

// handleResumeSync processes a résumé inline and returns the finished job.
// It takes either the same multipart form as the async endpoint or a raw
// text body.
func (s *Server) handleResumeSync(w http.ResponseWriter, r *http.Request) {
	var (
		filename string
		data     []byte
		ok       bool
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		filename, data, ok = s.readResumeUpload(w, r)
	} else {
		filename, data, ok = s.readRawText(w, r)
	}
	if !ok {
		return
	}

	job := s.orchestrator.ProcessSync(r.Context(), filename, data)
	snap := job.Snapshot()

	w.Header().Set("Content-Type", "application/json")
	if snap.Status == pipeline.StatusFailed {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	json.NewEncoder(w).Encode(snap)
}

// readResumeUpload parses the multipart form shared by the async and sync
// upload endpoints. On failure it writes the error response and returns
// ok=false.
func (s *Server) readResumeUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !extractor.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return "", nil, false
	}

	data, ok := s.readLimited(w, file)
	if !ok {
		return "", nil, false
	}
	return filename, data, true
}

// readRawText treats the request body as plain résumé text.
func (s *Server) readRawText(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, "failed to read body: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}
	if len(data) == 0 {
		jsonError(w, "empty body", http.StatusBadRequest)
		return "", nil, false
	}
	return "resume.txt", data, true
}

func (s *Server) readLimited(w http.ResponseWriter, file multipart.File) ([]byte, bool) {
	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return nil, false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return nil, false
	}
	return data, true
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
