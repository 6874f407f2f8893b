package stats

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go lootroll/internal/services/stats Service

import "context"

// Service defines the interface for the participant statistics ledger
type Service interface {
	// RecordOutcome applies one decided-session outcome to a participant's
	// counters. Each call is a real event, not an upsert; callers must call
	// it exactly once per participant per finalized session.
	RecordOutcome(ctx context.Context, input *RecordOutcomeInput) (*RecordOutcomeOutput, error)

	// GetStats returns one participant's counters, or none if never recorded
	GetStats(ctx context.Context, input *GetStatsInput) (*GetStatsOutput, error)

	// GetAllStats returns every tracked participant's counters, sorted by
	// wins descending with participant identifier as the tie-break
	GetAllStats(ctx context.Context, input *GetAllStatsInput) (*GetAllStatsOutput, error)
}
