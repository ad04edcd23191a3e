package clientdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdant-labs/verdant/internal/database"
)

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := database.New(database.Config{
		Path:    "file:clientdata_test?mode=memory&cache=shared",
		Profile: database.ProfileCache,
		Name:    "client_data",
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(db.Conn())
}

func TestStoreAndGetIfFresh(t *testing.T) {
	repo := setupTestRepo(t)

	err := repo.Store("alphavantage_quote", "AAPL", map[string]float64{"price": 178.20}, TTLQuote)
	require.NoError(t, err)

	data, err := repo.GetIfFresh("alphavantage_quote", "AAPL")
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":178.20}`, string(data))
}

func TestGetIfFreshMiss(t *testing.T) {
	repo := setupTestRepo(t)

	data, err := repo.GetIfFresh("alphavantage_quote", "MISSING")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestGetIfFreshExpired(t *testing.T) {
	repo := setupTestRepo(t)

	// Store with a TTL already in the past
	err := repo.Store("fmp_esg", "TSLA", map[string]int{"esgScore": 72}, -time.Minute)
	require.NoError(t, err)

	data, err := repo.GetIfFresh("fmp_esg", "TSLA")
	require.NoError(t, err)
	assert.Nil(t, data, "expired entries must not be returned as fresh")

	// Stale read still sees it
	stale, err := repo.Get("fmp_esg", "TSLA")
	require.NoError(t, err)
	assert.NotNil(t, stale)
}

func TestInvalidTableRejected(t *testing.T) {
	repo := setupTestRepo(t)

	err := repo.Store("positions; DROP TABLE fmp_esg", "X", 1, TTLQuote)
	assert.Error(t, err)

	_, err = repo.Get("unknown_table", "X")
	assert.Error(t, err)
}

func TestDeleteExpired(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Store("alphavantage_quote", "OLD", 1, -time.Hour))
	require.NoError(t, repo.Store("alphavantage_quote", "NEW", 2, time.Hour))

	removed, err := repo.DeleteExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	data, err := repo.Get("alphavantage_quote", "NEW")
	require.NoError(t, err)
	assert.NotNil(t, data)
}
