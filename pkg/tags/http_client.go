// Package tags provides tag data clients for the board engine: an HTTP
// client for live historian/SCADA gateways and an in-memory mock for demos
// and tests.
package tags

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	board "github.com/gridboard/go-gridboard/components/board"
)

// HTTPConfig configures the HTTP tag client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient reads tag values from a remote gateway via REST endpoints.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ board.TagService = (*HTTPClient)(nil)

// NewHTTPClient builds a client capable of hitting a live tag gateway.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("tags: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

// ReadTag fetches a single tag value.
func (c *HTTPClient) ReadTag(ctx context.Context, id string) (board.TagReading, error) {
	if id == "" {
		return board.TagReading{}, fmt.Errorf("tags: tag id is required")
	}
	readings, err := c.ReadTags(ctx, []string{id})
	if err != nil {
		return board.TagReading{}, err
	}
	if len(readings) == 0 {
		return board.TagReading{}, fmt.Errorf("tags: tag %s not found", id)
	}
	return readings[0], nil
}

// ReadTags fetches a batch of tags in one round trip, so latency is bounded
// by a single request regardless of how many tags a widget binds.
func (c *HTTPClient) ReadTags(ctx context.Context, ids []string) ([]board.TagReading, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	req := readRequest{IDs: ids}
	var resp readResponse
	if err := c.do(ctx, http.MethodPost, "/tags/read", req, &resp); err != nil {
		return nil, err
	}
	return resp.toReadings(), nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("tags: encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("tags: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("tags: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("tags: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("tags: decode response: %w", err)
	}
	return nil
}

type readRequest struct {
	IDs []string `json:"ids"`
}

type tagValue struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Unit        string    `json:"unit"`
	Value       float64   `json:"value"`
	Raw         string    `json:"raw"`
	Status      string    `json:"status"`
	LastUpdated time.Time `json:"last_updated"`
}

type readResponse struct {
	Tags []tagValue `json:"tags"`
}

func (r readResponse) toReadings() []board.TagReading {
	readings := make([]board.TagReading, len(r.Tags))
	for i, tag := range r.Tags {
		readings[i] = board.TagReading{
			ID:          tag.ID,
			Name:        tag.Name,
			Unit:        tag.Unit,
			Value:       tag.Value,
			Raw:         tag.Raw,
			Status:      tag.Status,
			LastUpdated: tag.LastUpdated,
		}
	}
	return readings
}
