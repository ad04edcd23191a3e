package portfolio

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdant-labs/verdant/internal/database"
)

func setupSnapshotRepo(t *testing.T) *SnapshotRepository {
	t.Helper()

	db, err := database.New(database.Config{
		Path: "file:snapshot_test?mode=memory&cache=shared",
		Name: "portfolio",
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	return NewSnapshotRepository(db.Conn(), zerolog.Nop())
}

func TestLoadWithoutSnapshot(t *testing.T) {
	repo := setupSnapshotRepo(t)

	funds, err := repo.Load()
	require.NoError(t, err)
	assert.Nil(t, funds, "first run has no snapshot")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo := setupSnapshotRepo(t)

	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	funds := []Fund{
		{
			ID: "aggressive", Name: "Aggressive Growth Fund", RiskTier: TierAggressive,
			InitialCash: 100000, Cash: 97515,
			Positions: []Position{
				{
					ID: "p1", Symbol: "TSLA", Shares: 10, PurchasePrice: 248.50,
					CurrentPrice: floatPtr(260.10), ESGScore: intPtr(72),
					EnvironmentalScore: intPtr(85), SocialScore: intPtr(65), GovernanceScore: intPtr(66),
					ESGRating: strPtr("B"), DataSource: strPtr("Demo Data"), LastUpdate: &now,
				},
			},
		},
		{ID: "medium", Name: "Balanced Fund", RiskTier: TierMedium, InitialCash: 100000, Cash: 100000, Positions: []Position{}},
	}

	require.NoError(t, repo.Save(funds))

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, funds[0].ID, loaded[0].ID)
	assert.Equal(t, funds[0].Cash, loaded[0].Cash)
	require.Len(t, loaded[0].Positions, 1)
	assert.Equal(t, "TSLA", loaded[0].Positions[0].Symbol)
	require.NotNil(t, loaded[0].Positions[0].CurrentPrice)
	assert.Equal(t, 260.10, *loaded[0].Positions[0].CurrentPrice)
	require.NotNil(t, loaded[0].Positions[0].LastUpdate)
	assert.True(t, now.Equal(*loaded[0].Positions[0].LastUpdate))
	assert.Empty(t, loaded[1].Positions)
}

func TestSaveOverwritesWholesale(t *testing.T) {
	repo := setupSnapshotRepo(t)

	require.NoError(t, repo.Save([]Fund{{ID: "aggressive"}, {ID: "medium"}}))
	require.NoError(t, repo.Save([]Fund{{ID: "conservative"}}))

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1, "one fixed key, last write wins")
	assert.Equal(t, "conservative", loaded[0].ID)
}
