package marketdata

import (
	"math"
	"math/rand"
	"sync"

	"github.com/verdant-labs/verdant/internal/modules/rating"
)

// Synthetic generation bands.
const (
	syntheticPriceMin  = 50.0
	syntheticPriceSpan = 450.0 // prices land in [50, 500)
	syntheticESGMin    = 50
	syntheticESGSpan   = 40 // sub-scores land in 50..89
)

// Generator produces plausible placeholder values for symbols no other
// source knows about. The random source is injected so tests can pin it.
// A mutex guards the rand.Rand: refresh operations call the generator from
// concurrent per-position goroutines.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a generator backed by the given random source.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Price returns a uniformly distributed placeholder price rounded to cents.
func (g *Generator) Price() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	price := syntheticPriceMin + g.rng.Float64()*syntheticPriceSpan
	return math.Round(price*100) / 100
}

// ESG returns placeholder E/S/G sub-scores with the composite set to their
// rounded arithmetic mean. The letter grade classifies the rounded
// composite, not the raw mean, so the record is always self-consistent.
func (g *Generator) ESG(symbol string) ESGRecord {
	g.mu.Lock()
	env := syntheticESGMin + g.rng.Intn(syntheticESGSpan)
	soc := syntheticESGMin + g.rng.Intn(syntheticESGSpan)
	gov := syntheticESGMin + g.rng.Intn(syntheticESGSpan)
	g.mu.Unlock()

	mean := float64(env+soc+gov) / 3
	composite := int(math.Round(mean))

	return ESGRecord{
		Symbol:             symbol,
		ESGScore:           composite,
		EnvironmentalScore: env,
		SocialScore:        soc,
		GovernanceScore:    gov,
		ESGRating:          rating.Classify(float64(composite)),
		Source:             SourceGenerated,
	}
}
