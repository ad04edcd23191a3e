package scheduler

// PriceRefresher is implemented by the portfolio service.
type PriceRefresher interface {
	RefreshAll() error
}

// RefreshPricesJob periodically re-resolves market data for every position
// so valuations do not go stale between user-triggered refreshes.
type RefreshPricesJob struct {
	refresher PriceRefresher
}

// NewRefreshPricesJob creates the periodic price refresh job
func NewRefreshPricesJob(refresher PriceRefresher) *RefreshPricesJob {
	return &RefreshPricesJob{refresher: refresher}
}

// Name returns the job name
func (j *RefreshPricesJob) Name() string {
	return "refresh_prices"
}

// Run refreshes all funds
func (j *RefreshPricesJob) Run() error {
	return j.refresher.RefreshAll()
}
