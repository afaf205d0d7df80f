// Package similarity provides implementations of the section engine's
// similarity capability: a score in [0,1] for a pair of text snippets.
// All providers are stateless from the caller's point of view and safe for
// concurrent use across documents.
package similarity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"sync"
	"time"
)

// Embedding scores text pairs by cosine similarity of dense vectors fetched
// from an OpenAI-compatible /embeddings endpoint. Synonym-side vectors can be
// precomputed once per run; the cache is read-mostly afterwards and shared
// across parallel document workers behind a read-write lock.
type Embedding struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client

	mu    sync.RWMutex
	cache map[string][]float64
}

// NewEmbedding builds an embedding-backed provider. The timeout bounds each
// embeddings call; a stalled backend surfaces as an error to the caller
// rather than hanging the segmentation pass.
func NewEmbedding(endpoint, apiKey, model string, timeout time.Duration) *Embedding {
	return &Embedding{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache: make(map[string][]float64),
	}
}

// Precompute fetches and caches vectors for the given texts (typically the
// vocabulary synonyms) so later Score calls only embed the document side.
func (e *Embedding) Precompute(ctx context.Context, texts []string) error {
	if len(texts) == 0 {
		return nil
	}
	vectors, err := e.embed(ctx, texts)
	if err != nil {
		return err
	}
	e.mu.Lock()
	for i, t := range texts {
		e.cache[t] = vectors[i]
	}
	e.mu.Unlock()
	return nil
}

// Score embeds both snippets (using the cache where warm) and returns their
// cosine similarity clamped to [0,1].
func (e *Embedding) Score(ctx context.Context, a, b string) (float64, error) {
	va, err := e.vector(ctx, a)
	if err != nil {
		return 0, err
	}
	vb, err := e.vector(ctx, b)
	if err != nil {
		return 0, err
	}

	var dot, normA, normB float64
	if len(va) != len(vb) {
		return 0, fmt.Errorf("embedding dimensions differ: %d vs %d", len(va), len(vb))
	}
	for i := range va {
		dot += va[i] * vb[i]
		normA += va[i] * va[i]
		normB += vb[i] * vb[i]
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))

	// Anti-correlated text is as much of a non-match as orthogonal text.
	if cos < 0 {
		return 0, nil
	}
	if cos > 1 {
		cos = 1 // float drift on near-identical vectors
	}
	return cos, nil
}

func (e *Embedding) vector(ctx context.Context, text string) ([]float64, error) {
	e.mu.RLock()
	v, ok := e.cache[text]
	e.mu.RUnlock()
	if ok {
		return v, nil
	}

	vectors, err := e.embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

type embeddingRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (e *Embedding) embed(ctx context.Context, texts []string) ([][]float64, error) {
	body, err := json.Marshal(embeddingRequest{Input: texts, Model: e.model})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("embeddings api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embeddings api status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var apiResp embeddingResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if apiResp.Error != nil {
		return nil, fmt.Errorf("embeddings error: %s: %s", apiResp.Error.Type, apiResp.Error.Message)
	}
	if len(apiResp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(apiResp.Data))
	}

	// The API may return entries out of order; Index is authoritative.
	vectors := make([][]float64, len(texts))
	for _, d := range apiResp.Data {
		if d.Index < 0 || d.Index >= len(texts) {
			return nil, fmt.Errorf("embedding index %d out of range", d.Index)
		}
		if len(d.Embedding) == 0 {
			return nil, fmt.Errorf("empty embedding at index %d", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	for i, v := range vectors {
		if v == nil {
			return nil, fmt.Errorf("missing embedding for input %d", i)
		}
	}
	return vectors, nil
}

// Close releases idle connections.
func (e *Embedding) Close() {
	e.httpClient.CloseIdleConnections()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
