//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/waterfall-backend/internal/adapter/payload"
	"github.com/simaogato/waterfall-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/waterfall-backend/internal/domain"
	"github.com/simaogato/waterfall-backend/internal/usecase/scenario"
	"github.com/simaogato/waterfall-backend/internal/usecase/waterfall"
)

var db *postgres.DB

// TestMain sets up the test environment
func TestMain(m *testing.M) {
	dbConnStr := getDBConnectionString()
	var err error
	db, err = postgres.NewDB(dbConnStr)
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}
	defer db.Close()

	code := m.Run()

	os.Exit(code)
}

// getDBConnectionString returns the database connection string from environment or defaults
func getDBConnectionString() string {
	connStr := os.Getenv("DB_CONN_STR")
	if connStr != "" {
		return connStr
	}

	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "localhost"
	}

	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}

	user := os.Getenv("DB_USER")
	if user == "" {
		user = "postgres"
	}

	password := os.Getenv("DB_PASSWORD")
	if password == "" {
		password = "postgres"
	}

	dbname := os.Getenv("DB_NAME")
	if dbname == "" {
		dbname = "waterfall"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
}

// baseScenarioDocument is a realistic 3-tier deal: a capital call, a partial
// preferred-return distribution, and a sale-sized final distribution
func baseScenarioDocument() []byte {
	return []byte(`
version: 2
name: "Base case"
hurdle_method: IRR
lp_ownership: 0.9
tiers:
  - irr_hurdle: 0.08
    return_of_capital: SEQUENTIAL_LP_FIRST
  - irr_hurdle: 0.12
    promote_percent: 0.2
  - lp_split: 0.6
    gp_split: 0.4
periods:
  - date: "2020-01-01"
    net_cash_flow: -1000
  - date: "2020-12-31"
    net_cash_flow: 500
  - date: "2021-12-31"
    net_cash_flow: 2000
`)
}

// TestEndToEndFlow exercises the full pipeline: payload normalization,
// batch execution, and snapshot persistence with retrieval
func TestEndToEndFlow(t *testing.T) {
	ctx := context.Background()

	// Step A: Normalize the raw scenario document
	input, err := payload.Normalize(baseScenarioDocument())
	require.NoError(t, err, "Normalize should accept a canonical document")

	// Step B: Run the scenario through the batch runner
	engine := waterfall.NewService()
	batch := scenario.NewService(engine, 2)

	results, err := batch.RunBatch(ctx, []scenario.Scenario{input.Scenario})
	require.NoError(t, err, "RunBatch should succeed")

	result, ok := results[input.Scenario.ID]
	require.True(t, ok, "result should be keyed by scenario ID")
	require.Len(t, result.Records, 9, "3 periods x 3 tiers")

	// Cash conservation: everything distributable was distributed
	total := result.Summary.LP.Distributions.Add(result.Summary.GP.Distributions)
	assert.True(t, total.Equal(decimal.NewFromInt(2500)),
		"2500 of cash was distributable, got %s", total)
	assert.True(t, result.Summary.LP.Contributions.Equal(decimal.NewFromInt(900)))
	assert.True(t, result.Summary.GP.Contributions.Equal(decimal.NewFromInt(100)))

	// Step C: Persist the run snapshot
	repo := postgres.NewRunResultRepository(db)
	snapshot := &domain.RunSnapshot{
		ID:         uuid.New(),
		ProjectID:  input.ProjectID,
		ScenarioID: input.Scenario.ID,
		CreatedAt:  time.Now().UTC(),
		Result:     result,
	}
	require.NoError(t, repo.Save(ctx, snapshot), "Save should succeed")

	// Step D: Retrieve and verify the snapshot round-trips
	loaded, err := repo.GetLatest(ctx, input.ProjectID, input.Scenario.ID)
	require.NoError(t, err, "GetLatest should find the saved snapshot")

	assert.Equal(t, snapshot.ID, loaded.ID)
	require.Len(t, loaded.Result.Records, len(result.Records))
	for i, record := range result.Records {
		got := loaded.Result.Records[i]
		assert.Equal(t, record.PeriodIndex, got.PeriodIndex)
		assert.Equal(t, record.TierOrdinal, got.TierOrdinal)
		assert.True(t, got.LPAmount.Equal(record.LPAmount),
			"record %d LP amount: got %s, expected %s", i, got.LPAmount, record.LPAmount)
		assert.True(t, got.GPAmount.Equal(record.GPAmount),
			"record %d GP amount: got %s, expected %s", i, got.GPAmount, record.GPAmount)
	}

	loadedTotal := loaded.Result.Summary.LP.Distributions.Add(loaded.Result.Summary.GP.Distributions)
	assert.True(t, loadedTotal.Equal(total), "summary totals should round-trip")
	assert.InDelta(t, result.Summary.DealIRR, loaded.Result.Summary.DealIRR, 1e-9)
	assert.InDelta(t, result.Summary.DealEquityMultiple, loaded.Result.Summary.DealEquityMultiple, 1e-9)
}

// TestGetLatestPicksNewestSnapshot verifies that successive saves for the
// same project/scenario pair shadow each other
func TestGetLatestPicksNewestSnapshot(t *testing.T) {
	ctx := context.Background()

	input, err := payload.Normalize(baseScenarioDocument())
	require.NoError(t, err)

	result, err := waterfall.NewService().Run(input.Scenario.Periods, input.Scenario.Settings)
	require.NoError(t, err)

	repo := postgres.NewRunResultRepository(db)

	first := &domain.RunSnapshot{
		ID:         uuid.New(),
		ProjectID:  input.ProjectID,
		ScenarioID: input.Scenario.ID,
		CreatedAt:  time.Now().UTC().Add(-time.Hour),
		Result:     result,
	}
	require.NoError(t, repo.Save(ctx, first))

	second := &domain.RunSnapshot{
		ID:         uuid.New(),
		ProjectID:  input.ProjectID,
		ScenarioID: input.Scenario.ID,
		CreatedAt:  time.Now().UTC(),
		Result:     result,
	}
	require.NoError(t, repo.Save(ctx, second))

	loaded, err := repo.GetLatest(ctx, input.ProjectID, input.Scenario.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, loaded.ID, "the newer snapshot wins")
}

// TestGetLatestUnknownScenario verifies the not-found path
func TestGetLatestUnknownScenario(t *testing.T) {
	repo := postgres.NewRunResultRepository(db)

	_, err := repo.GetLatest(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err, "GetLatest with unknown IDs should return an error")
}
