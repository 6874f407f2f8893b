package query

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go lootroll/internal/services/query Service

import "context"

// Service defines the interface for read-only derived views over the
// ledgers. Nothing here mutates state.
type Service interface {
	// GetHistory returns finalized roll records, most recently ended
	// first, narrowed by the optional filters
	GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error)

	// GetLeaderboard joins every tracked participant's win counters with
	// their attendance rate into a priority-scored ranking
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error)
}
