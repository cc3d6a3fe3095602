package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// GatewayConfig locates the external inference gateway. An empty BaseURL
// means no model-backed path is available.
type GatewayConfig struct {
	BaseURL        string
	APIKey         string
	SentimentModel string
	EmbeddingModel string
}

type gatewayClient struct {
	cfg  GatewayConfig
	http *http.Client
}

func newGatewayClient(cfg GatewayConfig) *gatewayClient {
	return &gatewayClient{
		cfg:  cfg,
		http: &http.Client{Timeout: 12 * time.Second},
	}
}

func (c *gatewayClient) ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("gateway health check: status %d", resp.StatusCode)
	}
	return nil
}

// Classify labels a block of text. Response: {"label": "...", "score": 0.97}.
func (c *gatewayClient) Classify(text string) (string, float64, error) {
	body := map[string]any{
		"model": c.cfg.SentimentModel,
		"text":  text,
	}
	var out struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	if err := c.post("/v1/sentiment", body, &out); err != nil {
		return "", 0, err
	}
	return out.Label, out.Score, nil
}

// EmbedText runs the transcript through the embedding model.
func (c *gatewayClient) EmbedText(text string) ([]float64, error) {
	body := map[string]any{
		"model": c.cfg.EmbeddingModel,
		"input": text,
	}
	var out struct {
		Embedding []float64 `json:"embedding"`
	}
	if err := c.post("/v1/embeddings", body, &out); err != nil {
		return nil, err
	}
	if len(out.Embedding) == 0 {
		return nil, fmt.Errorf("gateway returned empty embedding")
	}
	return out.Embedding, nil
}

func (c *gatewayClient) post(path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	operation := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
		defer cancel()
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(data))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.cfg.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		raw, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			return fmt.Errorf("gateway server error: %s", string(raw))
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("gateway rejected request: %s", string(raw)))
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return backoff.Permanent(fmt.Errorf("unexpected gateway response: %w", err))
		}
		return nil
	}
	return backoff.Retry(operation, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3))
}
