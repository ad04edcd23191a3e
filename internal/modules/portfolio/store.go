package portfolio

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Sentinel errors for handler status mapping.
var (
	ErrFundNotFound     = errors.New("fund not found")
	ErrInsufficientCash = errors.New("insufficient cash in fund")
)

// defaultFunds are seeded once at first run.
var defaultFunds = []struct {
	id   string
	name string
	tier RiskTier
}{
	{"aggressive", "Aggressive Growth Fund", TierAggressive},
	{"medium", "Balanced Fund", TierMedium},
	{"conservative", "Conservative Fund", TierConservative},
}

// Store is the in-memory collection of funds. All mutations go through its
// methods, which enforce the cash accounting rules. A mutex guards the
// slice: the HTTP layer and the background refresh job both touch it, even
// though there is a single logical owner.
type Store struct {
	mu    sync.RWMutex
	funds []Fund
	log   zerolog.Logger
}

// NewStore creates an empty store.
func NewStore(log zerolog.Logger) *Store {
	return &Store{log: log.With().Str("component", "fund_store").Logger()}
}

// SeedDefaults populates the store with the three fixed risk tiers, each
// allocated the same initial cash. Only used when no snapshot exists.
func (s *Store) SeedDefaults(initialCash float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.funds = make([]Fund, 0, len(defaultFunds))
	for _, def := range defaultFunds {
		s.funds = append(s.funds, Fund{
			ID:          def.id,
			Name:        def.name,
			RiskTier:    def.tier,
			InitialCash: initialCash,
			Cash:        initialCash,
			Positions:   []Position{},
		})
	}
	s.log.Info().Int("funds", len(s.funds)).Float64("initial_cash", initialCash).Msg("Seeded default funds")
}

// SetFunds replaces the whole collection. Used when loading a snapshot.
func (s *Store) SetFunds(funds []Fund) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.funds = cloneFunds(funds)
}

// Funds returns a deep copy of all funds in display order.
func (s *Store) Funds() []Fund {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneFunds(s.funds)
}

// FundByID returns a deep copy of one fund.
func (s *Store) FundByID(fundID string) (Fund, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.funds {
		if s.funds[i].ID == fundID {
			return cloneFund(s.funds[i]), nil
		}
	}
	return Fund{}, fmt.Errorf("%w: %s", ErrFundNotFound, fundID)
}

// AddPosition appends the position to the fund and debits its cost basis
// from the fund's cash. The cash check and the append are one critical
// section so concurrent adds cannot drive cash negative.
func (s *Store) AddPosition(fundID string, pos Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fund := s.findFund(fundID)
	if fund == nil {
		return fmt.Errorf("%w: %s", ErrFundNotFound, fundID)
	}

	cost := pos.CostBasis()
	if fund.Cash < cost {
		return fmt.Errorf("%w: need %.2f, have %.2f", ErrInsufficientCash, cost, fund.Cash)
	}

	fund.Positions = append(fund.Positions, pos)
	recalcCash(fund)

	s.log.Info().
		Str("fund", fundID).
		Str("symbol", pos.Symbol).
		Float64("shares", pos.Shares).
		Float64("cost_basis", cost).
		Float64("cash_remaining", fund.Cash).
		Msg("Position added")
	return nil
}

// RemovePosition deletes the position and credits its cost basis back to
// the fund's cash. A missing position is a no-op; a missing fund is an
// error.
func (s *Store) RemovePosition(fundID, positionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fund := s.findFund(fundID)
	if fund == nil {
		return fmt.Errorf("%w: %s", ErrFundNotFound, fundID)
	}

	for i, pos := range fund.Positions {
		if pos.ID != positionID {
			continue
		}
		fund.Positions = append(fund.Positions[:i], fund.Positions[i+1:]...)
		recalcCash(fund)

		s.log.Info().
			Str("fund", fundID).
			Str("symbol", pos.Symbol).
			Float64("refund", pos.CostBasis()).
			Msg("Position removed")
		return nil
	}

	s.log.Debug().Str("fund", fundID).Str("position", positionID).Msg("Remove of unknown position ignored")
	return nil
}

// ReplacePositions swaps the fund's position collection in one structural
// update. Refresh operations collect their per-position results first and
// merge them here so readers never observe a partially updated fund.
func (s *Store) ReplacePositions(fundID string, positions []Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fund := s.findFund(fundID)
	if fund == nil {
		return fmt.Errorf("%w: %s", ErrFundNotFound, fundID)
	}

	fund.Positions = clonePositions(positions)
	return nil
}

// recalcCash rederives cash from the cost bases instead of adjusting it
// incrementally. Summing the same terms in both directions makes the
// add-then-remove round trip restore cash bit-for-bit.
func recalcCash(fund *Fund) {
	committed := 0.0
	for _, pos := range fund.Positions {
		committed += pos.CostBasis()
	}
	fund.Cash = fund.InitialCash - committed
}

// findFund must be called with the lock held.
func (s *Store) findFund(fundID string) *Fund {
	for i := range s.funds {
		if s.funds[i].ID == fundID {
			return &s.funds[i]
		}
	}
	return nil
}

func cloneFunds(funds []Fund) []Fund {
	out := make([]Fund, len(funds))
	for i, fund := range funds {
		out[i] = cloneFund(fund)
	}
	return out
}

func cloneFund(fund Fund) Fund {
	fund.Positions = clonePositions(fund.Positions)
	return fund
}

func clonePositions(positions []Position) []Position {
	out := make([]Position, len(positions))
	copy(out, positions)
	return out
}
