package sdk

import (
	"context"

	"github.com/arcaid/arcaid-go/bridge"
)

const (
	typeSubmitGameStats = "SUBMIT_GAME_STATS"
	typeGetLeaderboard  = "GET_LEADERBOARD"
)

// Stats reports game results and reads leaderboards.
type Stats struct {
	bridge *bridge.Bridge
}

// SubmitScore reports a finished game's score with optional metadata.
func (s *Stats) SubmitScore(ctx context.Context, score float64, metadata map[string]any) (map[string]any, error) {
	payload := map[string]any{"score": score}
	if metadata != nil {
		payload["metadata"] = metadata
	}
	return s.bridge.Request(ctx, typeSubmitGameStats, payload)
}

// GetLeaderboard fetches up to limit leaderboard entries; limit <= 0
// leaves the cut-off to the platform.
func (s *Stats) GetLeaderboard(ctx context.Context, limit int) (map[string]any, error) {
	payload := map[string]any{}
	if limit > 0 {
		payload["limit"] = limit
	}
	return s.bridge.Request(ctx, typeGetLeaderboard, payload)
}
