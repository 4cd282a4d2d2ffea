package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/simaogato/waterfall-backend/internal/adapter/payload"
	"github.com/simaogato/waterfall-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/waterfall-backend/internal/domain"
	"github.com/simaogato/waterfall-backend/internal/usecase/scenario"
	"github.com/simaogato/waterfall-backend/internal/usecase/waterfall"
)

const defaultConcurrency = 4

func main() {
	scenarioPath := flag.String("scenario", "", "path to the scenario document (YAML or JSON)")
	shadowPath := flag.String("shadow", "", "optional shadow scenario to compare against")
	persist := flag.Bool("persist", false, "store the run snapshot in Postgres")
	flag.Parse()

	if *scenarioPath == "" {
		log.Fatal("usage: waterfall -scenario <file> [-shadow <file>] [-persist]")
	}

	// Load .env if present; env vars take precedence either way
	_ = godotenv.Load()

	base, err := loadScenario(*scenarioPath)
	if err != nil {
		log.Fatalf("Failed to load scenario: %v", err)
	}

	scenarios := []scenario.Scenario{base.Scenario}

	var shadow *payload.Input
	if *shadowPath != "" {
		shadow, err = loadScenario(*shadowPath)
		if err != nil {
			log.Fatalf("Failed to load shadow scenario: %v", err)
		}
		scenarios = append(scenarios, shadow.Scenario)
	}

	engine := waterfall.NewService()
	batch := scenario.NewService(engine, defaultConcurrency)

	ctx := context.Background()
	results, err := batch.RunBatch(ctx, scenarios)
	if err != nil {
		// A failed run produces no partial output: a single error line is
		// all the caller gets
		log.Fatalf("Waterfall run failed: %v", err)
	}

	baseResult := results[base.Scenario.ID]
	printRecords(baseResult)
	printSummary(base.Scenario.Name, baseResult)

	if shadow != nil {
		shadowResult := results[shadow.Scenario.ID]
		printSummary(shadow.Scenario.Name, shadowResult)
		printDiff(scenario.Compare(baseResult, shadowResult))
	}

	if *persist {
		if err := persistSnapshot(ctx, base, baseResult); err != nil {
			log.Fatalf("Failed to persist snapshot: %v", err)
		}
		log.Println("Run snapshot persisted")
	}
}

// loadScenario reads and normalizes a scenario document
func loadScenario(path string) (*payload.Input, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return payload.Normalize(raw)
}

// printRecords renders the full distribution table
func printRecords(result *domain.RunResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "PERIOD\tTIER\tLP\tGP\tREMAINING\t")
	for _, record := range result.Records {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t\n",
			record.PeriodIndex,
			record.TierOrdinal,
			record.LPAmount.StringFixed(2),
			record.GPAmount.StringFixed(2),
			record.CashRemaining.StringFixed(2),
		)
	}
	w.Flush()
}

// printSummary renders a run's final metrics
func printSummary(name string, result *domain.RunResult) {
	summary := result.Summary
	fmt.Printf("\n%s\n", name)
	fmt.Printf("  LP: contributed %s, distributed %s, IRR %.4f, EMx %.4f\n",
		summary.LP.Contributions.StringFixed(2), summary.LP.Distributions.StringFixed(2),
		summary.LP.IRR, summary.LP.EquityMultiple)
	fmt.Printf("  GP: contributed %s, distributed %s, IRR %.4f, EMx %.4f\n",
		summary.GP.Contributions.StringFixed(2), summary.GP.Distributions.StringFixed(2),
		summary.GP.IRR, summary.GP.EquityMultiple)
	fmt.Printf("  Deal: IRR %.4f, EMx %.4f\n", summary.DealIRR, summary.DealEquityMultiple)
}

// printDiff renders the shadow-scenario comparison (shadow minus base)
func printDiff(diff scenario.Diff) {
	fmt.Println("\nShadow vs base")
	fmt.Printf("  LP distributions %s, IRR %+.4f, EMx %+.4f\n",
		diff.LP.Distributions.StringFixed(2), diff.LP.IRR, diff.LP.EquityMultiple)
	fmt.Printf("  GP distributions %s, IRR %+.4f, EMx %+.4f\n",
		diff.GP.Distributions.StringFixed(2), diff.GP.IRR, diff.GP.EquityMultiple)
	fmt.Printf("  Deal IRR %+.4f, EMx %+.4f\n", diff.DealIRR, diff.DealEquityMultiple)
}

// persistSnapshot stores the run result keyed by project/scenario ID
func persistSnapshot(ctx context.Context, input *payload.Input, result *domain.RunResult) error {
	db, err := postgres.NewDB(connectionString())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	repo := postgres.NewRunResultRepository(db)
	return repo.Save(ctx, &domain.RunSnapshot{
		ID:         uuid.New(),
		ProjectID:  input.ProjectID,
		ScenarioID: input.Scenario.ID,
		CreatedAt:  time.Now().UTC(),
		Result:     result,
	})
}

// connectionString builds the Postgres connection string from DB_CONN_STR or
// from individual vars (Docker friendly)
func connectionString() string {
	if connStr := os.Getenv("DB_CONN_STR"); connStr != "" {
		return connStr
	}

	host := envOrDefault("DB_HOST", "localhost")
	port := envOrDefault("DB_PORT", "5432")
	user := envOrDefault("DB_USER", "postgres")
	password := envOrDefault("DB_PASSWORD", "postgres")
	dbname := envOrDefault("DB_NAME", "waterfall")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
