package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// APIClient calls the scoring oracle over HTTP.
type APIClient struct {
	httpClient *http.Client
	BaseURL    string
	apiKey     string
}

// Ensure APIClient implements the Oracle interface.
var _ Oracle = (*APIClient)(nil)

// NewClient creates a new scoring oracle client.
func NewClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		BaseURL:    baseURL,
		apiKey:     apiKey,
	}
}

type analyzeRequest struct {
	MediaRef string `json:"media_ref"`
}

// Analyze submits a match recording reference for scoring and returns the
// score pair with the oracle's confidence.
func (c *APIClient) Analyze(ctx context.Context, mediaRef string) (*AnalysisResult, error) {
	payload, err := json.Marshal(analyzeRequest{MediaRef: mediaRef})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analyze request: %w", err)
	}

	url := c.BaseURL + "/v1/analyze"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	log.Debug("Requesting analysis from scoring oracle", "url", url, "mediaRef", mediaRef)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from scoring oracle", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	var result AnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}
