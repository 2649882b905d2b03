package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Embedder converts text into a fixed-dimension vector. The model runs
// out-of-process; implementations are treated as a black box that may be slow
// or unavailable.
type Embedder interface {
	// Embed returns the vector for the given text. Must be deterministic for
	// the same input and model version.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the dimensionality of produced vectors, e.g. 384
	// for all-MiniLM-L6-v2.
	Dimensions() int
}

// HTTPEmbedder calls a remote embedding service over HTTP. Every call is
// bounded by the configured timeout; expiry surfaces as a regular error so
// callers can apply their degraded-cache fallback.
type HTTPEmbedder struct {
	endpoint   string
	dimensions int
	client     *http.Client
}

// NewHTTPEmbedder builds an embedder for the service at endpoint producing
// vectors of the given dimension.
func NewHTTPEmbedder(endpoint string, dimensions int, timeout time.Duration) *HTTPEmbedder {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPEmbedder{
		endpoint:   endpoint,
		dimensions: dimensions,
		client:     &http.Client{Timeout: timeout},
	}
}

type embedRequest struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

func (e *HTTPEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embedRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("encode embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call embedding service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding service returned status %d", resp.StatusCode)
	}

	var out embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode embed response: %w", err)
	}
	if len(out.Embedding) != e.dimensions {
		return nil, fmt.Errorf("embedding service returned %d dimensions, expected %d", len(out.Embedding), e.dimensions)
	}

	return out.Embedding, nil
}

func (e *HTTPEmbedder) Dimensions() int {
	return e.dimensions
}
