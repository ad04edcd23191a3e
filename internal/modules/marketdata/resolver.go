package marketdata

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/verdant-labs/verdant/internal/clients/fmp"
	"github.com/verdant-labs/verdant/internal/metrics"
	"github.com/verdant-labs/verdant/internal/modules/rating"
)

// QuoteClient is the live price provider contract needed by the resolver.
type QuoteClient interface {
	GetQuote(symbol string) (float64, error)
}

// ESGClient is the live ESG provider contract needed by the resolver.
type ESGClient interface {
	Configured() bool
	GetESG(symbol string) (fmp.Scores, error)
}

// QuoteSource attempts a price lookup and reports which fallback tier it is.
type QuoteSource interface {
	Name() string
	Tier() string
	Quote(symbol string) (Quote, error)
}

// ESGSource attempts an ESG lookup and reports which fallback tier it is.
type ESGSource interface {
	Name() string
	Tier() string
	ESG(symbol string) (ESGRecord, error)
}

// Resolver walks an ordered source chain and returns the first usable
// result. The final tier generates data, so resolution always succeeds;
// only the provenance label tells real data from placeholders.
type Resolver struct {
	quoteSources []QuoteSource
	esgSources   []ESGSource
	metrics      *metrics.Metrics
	log          zerolog.Logger
}

// NewResolver builds the standard three-tier chain for both data kinds.
// metrics may be nil (tests).
func NewResolver(quoteClient QuoteClient, esgClient ESGClient, gen *Generator, m *metrics.Metrics, log zerolog.Logger) *Resolver {
	return &Resolver{
		quoteSources: []QuoteSource{
			&liveQuoteSource{client: quoteClient},
			curatedQuoteSource{},
			syntheticQuoteSource{gen: gen},
		},
		esgSources: []ESGSource{
			&liveESGSource{client: esgClient},
			curatedESGSource{},
			syntheticESGSource{gen: gen},
		},
		metrics: m,
		log:     log.With().Str("service", "marketdata").Logger(),
	}
}

// ResolvePrice returns a price for the symbol from the first source that
// has one. Provider failures are logged and absorbed, never returned.
func (r *Resolver) ResolvePrice(symbol string) Quote {
	symbol = strings.ToUpper(symbol)

	for _, src := range r.quoteSources {
		quote, err := src.Quote(symbol)
		if err != nil {
			r.countProviderError(src.Name())
			r.log.Warn().
				Err(err).
				Str("symbol", symbol).
				Str("source", src.Name()).
				Msg("Price source failed, falling through")
			continue
		}
		r.countResolution("price", src.Tier())
		return quote
	}

	// Unreachable: the synthetic tier cannot fail. Kept so the chain stays
	// an ordinary loop over sources.
	panic("marketdata: price source chain exhausted")
}

// ResolveESG returns an ESG record for the symbol from the first source
// that has one.
func (r *Resolver) ResolveESG(symbol string) ESGRecord {
	symbol = strings.ToUpper(symbol)

	for _, src := range r.esgSources {
		record, err := src.ESG(symbol)
		if err != nil {
			r.countProviderError(src.Name())
			r.log.Warn().
				Err(err).
				Str("symbol", symbol).
				Str("source", src.Name()).
				Msg("ESG source failed, falling through")
			continue
		}
		r.countResolution("esg", src.Tier())
		return record
	}

	panic("marketdata: ESG source chain exhausted")
}

func (r *Resolver) countResolution(kind, tier string) {
	if r.metrics != nil {
		r.metrics.ResolutionsTotal.WithLabelValues(kind, tier).Inc()
	}
}

func (r *Resolver) countProviderError(provider string) {
	if r.metrics != nil {
		r.metrics.ProviderErrors.WithLabelValues(provider).Inc()
	}
}

// --- price sources ---

type liveQuoteSource struct {
	client QuoteClient
}

func (s *liveQuoteSource) Name() string { return SourceAlphaVantage }
func (s *liveQuoteSource) Tier() string { return TierLive }

func (s *liveQuoteSource) Quote(symbol string) (Quote, error) {
	if s.client == nil {
		return Quote{}, fmt.Errorf("no quote client configured")
	}
	price, err := s.client.GetQuote(symbol)
	if err != nil {
		return Quote{}, err
	}
	return Quote{Symbol: symbol, Price: price, Source: SourceAlphaVantage}, nil
}

type curatedQuoteSource struct{}

func (curatedQuoteSource) Name() string { return SourceCurated }
func (curatedQuoteSource) Tier() string { return TierCurated }

func (curatedQuoteSource) Quote(symbol string) (Quote, error) {
	price, ok := CuratedPrice(symbol)
	if !ok {
		return Quote{}, fmt.Errorf("symbol %s not in curated table", symbol)
	}
	return Quote{Symbol: symbol, Price: price, Source: SourceCurated}, nil
}

type syntheticQuoteSource struct {
	gen *Generator
}

func (syntheticQuoteSource) Name() string { return SourceGenerated }
func (syntheticQuoteSource) Tier() string { return TierGenerated }

func (s syntheticQuoteSource) Quote(symbol string) (Quote, error) {
	return Quote{Symbol: symbol, Price: s.gen.Price(), Source: SourceGenerated}, nil
}

// --- ESG sources ---

type liveESGSource struct {
	client ESGClient
}

func (s *liveESGSource) Name() string { return SourceFMP }
func (s *liveESGSource) Tier() string { return TierLive }

func (s *liveESGSource) ESG(symbol string) (ESGRecord, error) {
	if s.client == nil || !s.client.Configured() {
		return ESGRecord{}, fmt.Errorf("no ESG provider configured")
	}
	scores, err := s.client.GetESG(symbol)
	if err != nil {
		return ESGRecord{}, err
	}
	return normalizeESG(symbol, scores), nil
}

// normalizeESG converts raw provider sub-scores into a record: sub-scores
// rounded to the nearest integer, composite = rounded mean of the raw
// values clamped to at most 100, letter grade from the unrounded mean.
func normalizeESG(symbol string, scores fmp.Scores) ESGRecord {
	mean := (scores.Environmental + scores.Social + scores.Governance) / 3
	composite := int(math.Round(mean))
	if composite > 100 {
		composite = 100
	}

	return ESGRecord{
		Symbol:             symbol,
		ESGScore:           composite,
		EnvironmentalScore: int(math.Round(scores.Environmental)),
		SocialScore:        int(math.Round(scores.Social)),
		GovernanceScore:    int(math.Round(scores.Governance)),
		ESGRating:          rating.Classify(mean),
		Source:             SourceFMP,
	}
}

type curatedESGSource struct{}

func (curatedESGSource) Name() string { return SourceCurated }
func (curatedESGSource) Tier() string { return TierCurated }

func (curatedESGSource) ESG(symbol string) (ESGRecord, error) {
	record, ok := CuratedESG(symbol)
	if !ok {
		return ESGRecord{}, fmt.Errorf("symbol %s not in curated table", symbol)
	}
	return record, nil
}

type syntheticESGSource struct {
	gen *Generator
}

func (syntheticESGSource) Name() string { return SourceGenerated }
func (syntheticESGSource) Tier() string { return TierGenerated }

func (s syntheticESGSource) ESG(symbol string) (ESGRecord, error) {
	return s.gen.ESG(symbol), nil
}
