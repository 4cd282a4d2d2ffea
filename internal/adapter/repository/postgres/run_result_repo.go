package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/waterfall-backend/internal/domain"
)

// runResultRepository implements domain.RunResultRepository
type runResultRepository struct {
	db *DB
}

// NewRunResultRepository creates a new run result repository
func NewRunResultRepository(db *DB) domain.RunResultRepository {
	return &runResultRepository{db: db}
}

// Save stores a run snapshot (header + summary + all distribution records)
// in a single database transaction, so a snapshot is never half-written
func (r *runResultRepository) Save(ctx context.Context, snapshot *domain.RunSnapshot) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	insertRunQuery := `
		INSERT INTO waterfall_runs (
			id, project_id, scenario_id, created_at,
			lp_contributions, lp_distributions, lp_irr, lp_equity_multiple,
			gp_contributions, gp_distributions, gp_irr, gp_equity_multiple,
			deal_irr, deal_equity_multiple
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	summary := snapshot.Result.Summary
	_, err = dbTx.ExecContext(ctx, insertRunQuery,
		snapshot.ID,
		snapshot.ProjectID,
		snapshot.ScenarioID,
		snapshot.CreatedAt,
		summary.LP.Contributions.String(),
		summary.LP.Distributions.String(),
		summary.LP.IRR,
		summary.LP.EquityMultiple,
		summary.GP.Contributions.String(),
		summary.GP.Distributions.String(),
		summary.GP.IRR,
		summary.GP.EquityMultiple,
		summary.DealIRR,
		summary.DealEquityMultiple,
	)
	if err != nil {
		return fmt.Errorf("failed to insert waterfall run: %w", err)
	}

	insertRecordQuery := `
		INSERT INTO distribution_records (run_id, period_index, tier_ordinal, lp_amount, gp_amount, cash_remaining)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, record := range snapshot.Result.Records {
		_, err = dbTx.ExecContext(ctx, insertRecordQuery,
			snapshot.ID,
			record.PeriodIndex,
			record.TierOrdinal,
			record.LPAmount.String(),
			record.GPAmount.String(),
			record.CashRemaining.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert distribution record: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetLatest retrieves the most recent snapshot for a project/scenario pair
func (r *runResultRepository) GetLatest(ctx context.Context, projectID, scenarioID uuid.UUID) (*domain.RunSnapshot, error) {
	runQuery := `
		SELECT id, project_id, scenario_id, created_at,
			lp_contributions, lp_distributions, lp_irr, lp_equity_multiple,
			gp_contributions, gp_distributions, gp_irr, gp_equity_multiple,
			deal_irr, deal_equity_multiple
		FROM waterfall_runs
		WHERE project_id = $1 AND scenario_id = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	snapshot := domain.RunSnapshot{Result: &domain.RunResult{}}
	summary := &snapshot.Result.Summary

	var lpContrib, lpDist, gpContrib, gpDist string

	err := r.db.QueryRowContext(ctx, runQuery, projectID, scenarioID).Scan(
		&snapshot.ID,
		&snapshot.ProjectID,
		&snapshot.ScenarioID,
		&snapshot.CreatedAt,
		&lpContrib,
		&lpDist,
		&summary.LP.IRR,
		&summary.LP.EquityMultiple,
		&gpContrib,
		&gpDist,
		&summary.GP.IRR,
		&summary.GP.EquityMultiple,
		&summary.DealIRR,
		&summary.DealEquityMultiple,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no snapshot found for project %s scenario %s: %w", projectID, scenarioID, err)
		}
		return nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}

	if summary.LP.Contributions, err = decimal.NewFromString(lpContrib); err != nil {
		return nil, fmt.Errorf("failed to parse lp_contributions: %w", err)
	}
	if summary.LP.Distributions, err = decimal.NewFromString(lpDist); err != nil {
		return nil, fmt.Errorf("failed to parse lp_distributions: %w", err)
	}
	if summary.GP.Contributions, err = decimal.NewFromString(gpContrib); err != nil {
		return nil, fmt.Errorf("failed to parse gp_contributions: %w", err)
	}
	if summary.GP.Distributions, err = decimal.NewFromString(gpDist); err != nil {
		return nil, fmt.Errorf("failed to parse gp_distributions: %w", err)
	}

	records, err := r.loadRecords(ctx, snapshot.ID)
	if err != nil {
		return nil, err
	}
	snapshot.Result.Records = records

	return &snapshot, nil
}

// loadRecords fetches a run's distribution records in period/tier order
func (r *runResultRepository) loadRecords(ctx context.Context, runID uuid.UUID) ([]domain.DistributionRecord, error) {
	recordsQuery := `
		SELECT period_index, tier_ordinal, lp_amount, gp_amount, cash_remaining
		FROM distribution_records
		WHERE run_id = $1
		ORDER BY period_index, tier_ordinal
	`

	rows, err := r.db.QueryContext(ctx, recordsQuery, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query distribution records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.DistributionRecord, 0)
	for rows.Next() {
		var record domain.DistributionRecord
		var lpAmount, gpAmount, cashRemaining string

		if err := rows.Scan(&record.PeriodIndex, &record.TierOrdinal, &lpAmount, &gpAmount, &cashRemaining); err != nil {
			return nil, fmt.Errorf("failed to scan distribution record: %w", err)
		}

		if record.LPAmount, err = decimal.NewFromString(lpAmount); err != nil {
			return nil, fmt.Errorf("failed to parse lp_amount: %w", err)
		}
		if record.GPAmount, err = decimal.NewFromString(gpAmount); err != nil {
			return nil, fmt.Errorf("failed to parse gp_amount: %w", err)
		}
		if record.CashRemaining, err = decimal.NewFromString(cashRemaining); err != nil {
			return nil, fmt.Errorf("failed to parse cash_remaining: %w", err)
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate distribution records: %w", err)
	}

	return records, nil
}
