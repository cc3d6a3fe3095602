package store

import (
	"context"
	"fmt"

	"sales-insights-go/internal/types"
)

// AgentLeaderboard aggregates per-agent call stats, best sentiment first.
// Calls without computed analytics are excluded.
func (s *Store) AgentLeaderboard(ctx context.Context) ([]types.AgentAnalytics, error) {
	rows := []types.AgentAnalytics{}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT
			agent_id,
			COUNT(*) AS total_calls,
			AVG(customer_sentiment_score) AS avg_sentiment,
			AVG(agent_talk_ratio) AS avg_talk_ratio
		FROM calls
		WHERE agent_talk_ratio IS NOT NULL
		  AND customer_sentiment_score IS NOT NULL
		GROUP BY agent_id
		ORDER BY avg_sentiment DESC, total_calls DESC`)
	if err != nil {
		return nil, fmt.Errorf("agent leaderboard: %w", err)
	}
	for i := range rows {
		rows[i].Name = "Agent " + rows[i].AgentID
	}
	return rows, nil
}
