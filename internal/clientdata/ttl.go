package clientdata

import "time"

// TTL constants for different data types.
// These are added to time.Now() when storing to calculate expires_at.
const (
	// Quotes move constantly; a short TTL keeps repeated lookups within a
	// session from burning the rate-limited Alpha Vantage quota.
	TTLQuote = time.Minute

	// ESG ratings are updated on provider filing cycles, not intraday.
	TTLESG = 24 * time.Hour
)
