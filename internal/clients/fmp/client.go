// Package fmp provides ESG data fetching from the Financial Modeling Prep API.
package fmp

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/verdant-labs/verdant/internal/clientdata"
)

// Scores holds the raw provider sub-scores before normalization.
type Scores struct {
	Environmental float64 `json:"environmentalScore"`
	Social        float64 `json:"socialScore"`
	Governance    float64 `json:"governanceScore"`
}

// Client for financialmodelingprep.com
type Client struct {
	baseURL   string
	apiKey    string
	client    *http.Client
	log       zerolog.Logger
	cacheRepo *clientdata.Repository
}

// NewClient creates a new Financial Modeling Prep client.
// cacheRepo is optional - if nil, caching is disabled.
func NewClient(apiKey string, cacheRepo *clientdata.Repository, log zerolog.Logger) *Client {
	return &Client{
		baseURL:   "https://financialmodelingprep.com/api/v4/esg-environmental-social-governance-data",
		apiKey:    apiKey,
		client:    &http.Client{Timeout: 10 * time.Second},
		log:       log.With().Str("client", "fmp").Logger(),
		cacheRepo: cacheRepo,
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// Configured reports whether a real API key is present. The free "demo" key
// cannot access the ESG endpoint, so the live tier is skipped without it.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.apiKey != "demo"
}

// KeyPreview returns a redacted form of the API key for diagnostics.
func (c *Client) KeyPreview() string {
	if !c.Configured() {
		return "not set"
	}
	if len(c.apiKey) < 8 {
		return "****"
	}
	return c.apiKey[:4] + "..." + c.apiKey[len(c.apiKey)-4:]
}

// KeyLength returns the configured key length for diagnostics.
func (c *Client) KeyLength() int {
	if !c.Configured() {
		return 0
	}
	return len(c.apiKey)
}

// GetESG fetches raw ESG sub-scores for a symbol, cache-first.
// Any failure (missing key, network, non-2xx, empty payload) is returned as
// an error; the caller decides how to degrade.
func (c *Client) GetESG(symbol string) (Scores, error) {
	if !c.Configured() {
		return Scores{}, fmt.Errorf("no FMP API key configured")
	}

	if c.cacheRepo != nil {
		data, err := c.cacheRepo.GetIfFresh("fmp_esg", symbol)
		if err == nil && data != nil {
			var cached Scores
			if err := json.Unmarshal(data, &cached); err == nil {
				c.log.Debug().Str("symbol", symbol).Msg("Cache hit")
				return cached, nil
			}
		}
	}

	status, body, err := c.rawQuery(symbol)
	if err != nil {
		return Scores{}, fmt.Errorf("API request failed: %w", err)
	}
	if status != http.StatusOK {
		return Scores{}, fmt.Errorf("API returned status %d", status)
	}

	var records []Scores
	if err := json.Unmarshal(body, &records); err != nil {
		return Scores{}, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(records) == 0 {
		return Scores{}, fmt.Errorf("no ESG data for %s", symbol)
	}

	scores := records[0]
	if c.cacheRepo != nil {
		if err := c.cacheRepo.Store("fmp_esg", symbol, scores, clientdata.TTLESG); err != nil {
			c.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to cache ESG scores")
		}
	}

	c.log.Info().
		Str("symbol", symbol).
		Float64("environmental", scores.Environmental).
		Float64("social", scores.Social).
		Float64("governance", scores.Governance).
		Msg("Fetched ESG scores")
	return scores, nil
}

// TestCall performs one uncached live request and returns the raw provider
// response for inspection. Used by the diagnostic endpoint.
func (c *Client) TestCall(symbol string) (int, json.RawMessage, error) {
	status, body, err := c.rawQuery(symbol)
	if err != nil {
		return 0, nil, err
	}
	if !json.Valid(body) {
		return status, nil, fmt.Errorf("provider returned non-JSON body")
	}
	return status, json.RawMessage(body), nil
}

func (c *Client) rawQuery(symbol string) (int, []byte, error) {
	reqURL := fmt.Sprintf("%s?symbol=%s&apikey=%s",
		c.baseURL, url.QueryEscape(symbol), url.QueryEscape(c.apiKey))

	resp, err := c.client.Get(reqURL)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}
