package portfolio

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/verdant-labs/verdant/internal/events"
	"github.com/verdant-labs/verdant/internal/metrics"
	"github.com/verdant-labs/verdant/internal/modules/marketdata"
)

// ErrInvalidInput marks user-input validation failures.
var ErrInvalidInput = errors.New("invalid input")

// MarketDataResolver is the resolver contract needed by the service.
// Resolution never fails; data quality is carried in the source labels.
type MarketDataResolver interface {
	ResolvePrice(symbol string) marketdata.Quote
	ResolveESG(symbol string) marketdata.ESGRecord
}

// SnapshotStore is the persistence contract needed by the service.
type SnapshotStore interface {
	Save(funds []Fund) error
	Load() ([]Fund, error)
}

// Service orchestrates store mutations: it resolves market data before
// committing, persists a snapshot after every mutation, and emits events
// for reactive consumers. bus and appMetrics may be nil (tests).
type Service struct {
	store      *Store
	resolver   MarketDataResolver
	snapshots  SnapshotStore
	bus        *events.Bus
	appMetrics *metrics.Metrics
	log        zerolog.Logger
}

// NewService creates a new portfolio service.
func NewService(
	store *Store,
	resolver MarketDataResolver,
	snapshots SnapshotStore,
	bus *events.Bus,
	appMetrics *metrics.Metrics,
	log zerolog.Logger,
) *Service {
	return &Service{
		store:      store,
		resolver:   resolver,
		snapshots:  snapshots,
		bus:        bus,
		appMetrics: appMetrics,
		log:        log.With().Str("service", "portfolio").Logger(),
	}
}

// Init loads the persisted snapshot into the store, seeding the three
// default funds when none exists.
func (s *Service) Init(initialCash float64) error {
	funds, err := s.snapshots.Load()
	if err != nil {
		return fmt.Errorf("failed to load portfolio snapshot: %w", err)
	}

	if funds == nil {
		s.store.SeedDefaults(initialCash)
		s.persist()
		return nil
	}

	s.store.SetFunds(funds)
	s.log.Info().Int("funds", len(funds)).Msg("Portfolio loaded from snapshot")
	return nil
}

// Funds returns all funds in display order.
func (s *Service) Funds() []Fund {
	return s.store.Funds()
}

// FundByID returns one fund.
func (s *Service) FundByID(fundID string) (Fund, error) {
	return s.store.FundByID(fundID)
}

// PortfolioSummary returns the portfolio-wide aggregates.
func (s *Service) PortfolioSummary() PortfolioMetrics {
	return ComputePortfolioMetrics(s.store.Funds())
}

// AddPosition validates the input, resolves current price and ESG data,
// then commits the position and debits the fund's cash. Insufficient cash
// rejects the add explicitly; cash never goes negative.
func (s *Service) AddPosition(fundID, symbol string, shares, purchasePrice float64) (Position, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return Position{}, fmt.Errorf("%w: symbol is required", ErrInvalidInput)
	}
	if shares <= 0 {
		return Position{}, fmt.Errorf("%w: shares must be positive", ErrInvalidInput)
	}
	if purchasePrice <= 0 {
		return Position{}, fmt.Errorf("%w: purchase price must be positive", ErrInvalidInput)
	}
	// Fail fast on unknown funds before spending resolver calls.
	if _, err := s.store.FundByID(fundID); err != nil {
		return Position{}, err
	}

	quote := s.resolver.ResolvePrice(symbol)
	esg := s.resolver.ResolveESG(symbol)
	now := time.Now().UTC()

	pos := Position{
		ID:                 uuid.NewString(),
		Symbol:             symbol,
		Shares:             shares,
		PurchasePrice:      purchasePrice,
		CurrentPrice:       &quote.Price,
		ESGScore:           &esg.ESGScore,
		EnvironmentalScore: &esg.EnvironmentalScore,
		SocialScore:        &esg.SocialScore,
		GovernanceScore:    &esg.GovernanceScore,
		ESGRating:          &esg.ESGRating,
		DataSource:         &quote.Source,
		LastUpdate:         &now,
	}

	if err := s.store.AddPosition(fundID, pos); err != nil {
		return Position{}, err
	}

	s.persist()
	s.emit(events.PositionAdded, map[string]interface{}{
		"fund":   fundID,
		"symbol": symbol,
		"shares": shares,
	})
	return pos, nil
}

// RemovePosition removes the position and refunds its cost basis.
// Unknown positions are a no-op.
func (s *Service) RemovePosition(fundID, positionID string) error {
	if err := s.store.RemovePosition(fundID, positionID); err != nil {
		return err
	}

	s.persist()
	s.emit(events.PositionRemoved, map[string]interface{}{
		"fund":     fundID,
		"position": positionID,
	})
	return nil
}

// RefreshFund re-resolves the current price for every position in the fund
// (and ESG data for positions that lack it). Per-position lookups run
// concurrently and are joined before the fund is updated in one structural
// replacement, so readers never see a half-refreshed fund. The resolver
// cannot fail, so a refresh degrades to placeholder data rather than
// erroring.
func (s *Service) RefreshFund(fundID string) (Fund, error) {
	fund, err := s.store.FundByID(fundID)
	if err != nil {
		return Fund{}, err
	}

	start := time.Now()
	updated := make([]Position, len(fund.Positions))

	var wg sync.WaitGroup
	for i, pos := range fund.Positions {
		wg.Add(1)
		go func(i int, pos Position) {
			defer wg.Done()
			updated[i] = s.refreshPosition(pos)
		}(i, pos)
	}
	wg.Wait()

	if err := s.store.ReplacePositions(fundID, updated); err != nil {
		return Fund{}, err
	}

	if s.appMetrics != nil {
		s.appMetrics.RefreshDur.Observe(time.Since(start).Seconds())
	}

	s.persist()
	s.emit(events.PricesRefreshed, map[string]interface{}{
		"fund":      fundID,
		"positions": len(updated),
	})

	return s.store.FundByID(fundID)
}

// RefreshAll refreshes every fund. Used by the background scheduler job.
func (s *Service) RefreshAll() error {
	for _, fund := range s.store.Funds() {
		if len(fund.Positions) == 0 {
			continue
		}
		if _, err := s.RefreshFund(fund.ID); err != nil {
			return fmt.Errorf("failed to refresh fund %s: %w", fund.ID, err)
		}
	}
	return nil
}

// refreshPosition returns an updated copy: price always re-resolved, ESG
// only filled in when absent.
func (s *Service) refreshPosition(pos Position) Position {
	quote := s.resolver.ResolvePrice(pos.Symbol)
	now := time.Now().UTC()

	pos.CurrentPrice = &quote.Price
	pos.DataSource = &quote.Source
	pos.LastUpdate = &now

	if pos.ESGScore == nil {
		esg := s.resolver.ResolveESG(pos.Symbol)
		pos.ESGScore = &esg.ESGScore
		pos.EnvironmentalScore = &esg.EnvironmentalScore
		pos.SocialScore = &esg.SocialScore
		pos.GovernanceScore = &esg.GovernanceScore
		pos.ESGRating = &esg.ESGRating
	}
	return pos
}

// persist writes the snapshot after a mutation. Persistence is advisory:
// failures are logged and counted, not propagated.
func (s *Service) persist() {
	if err := s.snapshots.Save(s.store.Funds()); err != nil {
		s.log.Error().Err(err).Msg("Failed to save portfolio snapshot")
		if s.appMetrics != nil {
			s.appMetrics.SnapshotErrs.Inc()
		}
		return
	}
	if s.appMetrics != nil {
		s.appMetrics.SnapshotSaves.Inc()
	}
}

func (s *Service) emit(eventType events.EventType, data map[string]interface{}) {
	if s.bus != nil {
		s.bus.Emit(eventType, "portfolio", data)
	}
}
