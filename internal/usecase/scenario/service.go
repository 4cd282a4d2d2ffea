package scenario

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/simaogato/waterfall-backend/internal/domain"
	"github.com/simaogato/waterfall-backend/internal/usecase/waterfall"
)

// Scenario is one independent waterfall run: its own period series and
// settings, no state shared with any other scenario
type Scenario struct {
	ID       uuid.UUID
	Name     string
	Periods  []domain.Period
	Settings domain.WaterfallSettings
}

// Service runs scenario batches. Each run owns an isolated ledger, so runs
// are the natural unit of parallelism for sensitivity and stress batches.
type Service struct {
	engine      *waterfall.Service
	concurrency int
}

// NewService creates a new Service instance. concurrency caps how many runs
// execute at once; values < 1 mean no cap.
func NewService(engine *waterfall.Service, concurrency int) *Service {
	return &Service{
		engine:      engine,
		concurrency: concurrency,
	}
}

// RunBatch executes every scenario and returns results keyed by scenario ID.
// The batch is all-or-nothing: the first failing scenario aborts the batch
// with an error naming it. Cancellation applies between runs, never mid-run
// (a single run is bounded by its finite period count).
func (s *Service) RunBatch(ctx context.Context, scenarios []Scenario) (map[uuid.UUID]*domain.RunResult, error) {
	results := make([]*domain.RunResult, len(scenarios))

	g, ctx := errgroup.WithContext(ctx)
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}

	for i := range scenarios {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			sc := &scenarios[i]
			result, err := s.engine.Run(sc.Periods, sc.Settings)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", sc.Name, err)
			}

			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*domain.RunResult, len(scenarios))
	for i := range scenarios {
		byID[scenarios[i].ID] = results[i]
	}
	return byID, nil
}

// PartyDiff holds one party's final-metric deltas (shadow minus base)
type PartyDiff struct {
	Distributions  decimal.Decimal
	IRR            float64
	EquityMultiple float64
}

// Diff holds the final-metric deltas between two runs
type Diff struct {
	LP                 PartyDiff
	GP                 PartyDiff
	DealIRR            float64
	DealEquityMultiple float64
}

// Compare diffs the final metrics of a shadow run against a base run.
// Positive values mean the shadow scenario pays or returns more.
func Compare(base, shadow *domain.RunResult) Diff {
	return Diff{
		LP:                 compareParty(base.Summary.LP, shadow.Summary.LP),
		GP:                 compareParty(base.Summary.GP, shadow.Summary.GP),
		DealIRR:            shadow.Summary.DealIRR - base.Summary.DealIRR,
		DealEquityMultiple: shadow.Summary.DealEquityMultiple - base.Summary.DealEquityMultiple,
	}
}

func compareParty(base, shadow domain.PartySummary) PartyDiff {
	return PartyDiff{
		Distributions:  shadow.Distributions.Sub(base.Distributions),
		IRR:            shadow.IRR - base.IRR,
		EquityMultiple: shadow.EquityMultiple - base.EquityMultiple,
	}
}
