// Package alphavantage provides stock quote fetching from the Alpha Vantage API.
package alphavantage

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/verdant-labs/verdant/internal/clientdata"
)

// Client for alphavantage.co
type Client struct {
	baseURL   string
	apiKey    string
	client    *http.Client
	log       zerolog.Logger
	cacheRepo *clientdata.Repository
}

// NewClient creates a new Alpha Vantage client.
// cacheRepo is optional - if nil, caching is disabled.
func NewClient(apiKey string, cacheRepo *clientdata.Repository, log zerolog.Logger) *Client {
	return &Client{
		baseURL:   "https://www.alphavantage.co/query",
		apiKey:    apiKey,
		client:    &http.Client{Timeout: 10 * time.Second},
		log:       log.With().Str("client", "alphavantage").Logger(),
		cacheRepo: cacheRepo,
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// cachedQuote is the structure stored in the cache
type cachedQuote struct {
	Price float64 `json:"price"`
}

// globalQuoteResponse matches the GLOBAL_QUOTE payload shape. A valid
// response carries a non-empty "Global Quote" object with an "05. price"
// field; rate-limit notices arrive as 200s with a "Note" field instead.
type globalQuoteResponse struct {
	GlobalQuote map[string]string `json:"Global Quote"`
	Note        string            `json:"Note"`
}

// GetQuote fetches the current price for a symbol, cache-first.
// Any failure (network, non-2xx, malformed or empty payload) is returned as
// an error; the caller decides how to degrade.
func (c *Client) GetQuote(symbol string) (float64, error) {
	// Check persistent cache for fresh data
	if c.cacheRepo != nil {
		data, err := c.cacheRepo.GetIfFresh("alphavantage_quote", symbol)
		if err == nil && data != nil {
			var cached cachedQuote
			if err := json.Unmarshal(data, &cached); err == nil {
				c.log.Debug().Str("symbol", symbol).Float64("price", cached.Price).Msg("Cache hit")
				return cached.Price, nil
			}
		}
	}

	reqURL := fmt.Sprintf("%s?function=GLOBAL_QUOTE&symbol=%s&apikey=%s",
		c.baseURL, url.QueryEscape(symbol), url.QueryEscape(c.apiKey))

	resp, err := c.client.Get(reqURL)
	if err != nil {
		return 0, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var result globalQuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to parse response: %w", err)
	}

	if result.Note != "" {
		c.log.Warn().Str("symbol", symbol).Msg("Alpha Vantage rate limit reached")
		return 0, fmt.Errorf("rate limited: %s", result.Note)
	}

	priceStr, ok := result.GlobalQuote["05. price"]
	if !ok || priceStr == "" {
		return 0, fmt.Errorf("no quote data for %s", symbol)
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q for %s: %w", priceStr, symbol, err)
	}

	if c.cacheRepo != nil {
		if err := c.cacheRepo.Store("alphavantage_quote", symbol, cachedQuote{Price: price}, clientdata.TTLQuote); err != nil {
			c.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to cache quote")
		}
	}

	c.log.Info().Str("symbol", symbol).Float64("price", price).Msg("Fetched quote")
	return price, nil
}
