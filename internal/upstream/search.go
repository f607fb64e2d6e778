package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrNoResults marks a well-formed search response whose "resultado"
// field is missing or not an array. The feed service treats it differently
// from transport failures: no results falls back to the local feed,
// transport failures go straight to the placeholder set.
var ErrNoResults = errors.New("search: response carries no result array")

// SearchClient queries the remote video search API. Results are passed
// through untouched, so entries keep whatever extra fields the API sends.
type SearchClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewSearchClient(endpoint, apiKey string, timeout time.Duration) *SearchClient {
	return &SearchClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *SearchClient) Search(ctx context.Context, query string) ([]map[string]interface{}, error) {
	searchURL := fmt.Sprintf("%s?query=%s&apikey=%s",
		c.endpoint, url.QueryEscape(query), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach search API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("search API returned status %d", resp.StatusCode)
	}

	var envelope struct {
		Resultado json.RawMessage `json:"resultado"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	if len(envelope.Resultado) == 0 {
		return nil, ErrNoResults
	}

	var results []map[string]interface{}
	if err := json.Unmarshal(envelope.Resultado, &results); err != nil {
		return nil, ErrNoResults
	}
	if results == nil {
		return nil, ErrNoResults
	}

	return results, nil
}
