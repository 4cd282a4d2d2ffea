package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RunSnapshot is a persisted waterfall run result, keyed by project and
// scenario so the UI and the shadow-scenario comparison can retrieve it
type RunSnapshot struct {
	ID         uuid.UUID
	ProjectID  uuid.UUID
	ScenarioID uuid.UUID
	CreatedAt  time.Time
	Result     *RunResult
}

// RunResultRepository defines the interface for run snapshot persistence
type RunResultRepository interface {
	// Save stores a complete run snapshot (header, summary, and all
	// distribution records)
	Save(ctx context.Context, snapshot *RunSnapshot) error

	// GetLatest retrieves the most recent snapshot for a project/scenario pair
	GetLatest(ctx context.Context, projectID, scenarioID uuid.UUID) (*RunSnapshot, error)
}
