package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"sales-insights-go/internal/types"
)

// CreateCall inserts a call with its derived analytics already computed.
func (s *Store) CreateCall(ctx context.Context, call *types.Call) error {
	if call.ID == "" {
		call.ID = uuid.New().String()
	}
	if call.Language == "" {
		call.Language = "en"
	}
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO calls (
			id, call_id, agent_id, customer_id, language, start_time,
			duration_seconds, transcript, agent_talk_ratio,
			customer_sentiment_score, embedding
		) VALUES (
			:id, :call_id, :agent_id, :customer_id, :language, :start_time,
			:duration_seconds, :transcript, :agent_talk_ratio,
			:customer_sentiment_score, :embedding
		)`, call)
	if err != nil {
		return fmt.Errorf("insert call %s: %w", call.CallID, err)
	}
	return nil
}

// GetCall fetches a call by its external call_id.
func (s *Store) GetCall(ctx context.Context, callID string) (*types.Call, error) {
	var call types.Call
	err := s.db.GetContext(ctx, &call, `SELECT * FROM calls WHERE call_id = $1`, callID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get call %s: %w", callID, err)
	}
	return &call, nil
}

// ListCalls returns a filtered page of calls plus the unpaginated total.
func (s *Store) ListCalls(ctx context.Context, filter types.CallFilter) ([]types.Call, int, error) {
	where := []string{"1=1"}
	args := []any{}

	add := func(clause string, value any) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if filter.AgentID != "" {
		add("agent_id = $%d", filter.AgentID)
	}
	if filter.FromDate != nil {
		add("start_time >= $%d", *filter.FromDate)
	}
	if filter.ToDate != nil {
		add("start_time <= $%d", *filter.ToDate)
	}
	if filter.MinSentiment != nil {
		add("customer_sentiment_score >= $%d", *filter.MinSentiment)
	}
	if filter.MaxSentiment != nil {
		add("customer_sentiment_score <= $%d", *filter.MaxSentiment)
	}

	cond := strings.Join(where, " AND ")

	var total int
	if err := s.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM calls WHERE "+cond, args...); err != nil {
		return nil, 0, fmt.Errorf("count calls: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, filter.Offset)
	query := fmt.Sprintf(
		"SELECT * FROM calls WHERE %s ORDER BY start_time DESC LIMIT $%d OFFSET $%d",
		cond, len(args)-1, len(args))

	calls := []types.Call{}
	if err := s.db.SelectContext(ctx, &calls, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list calls: %w", err)
	}
	return calls, total, nil
}

// UpdateCallAnalytics rewrites the derived fields for one call.
func (s *Store) UpdateCallAnalytics(ctx context.Context, callID string, talkRatio, sentiment float64, embedding string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE calls
		SET agent_talk_ratio = $1,
		    customer_sentiment_score = $2,
		    embedding = $3,
		    updated_at = now()
		WHERE call_id = $4`,
		talkRatio, sentiment, embedding, callID)
	if err != nil {
		return fmt.Errorf("update analytics for %s: %w", callID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// CallEmbedding is one row of the similarity corpus.
type CallEmbedding struct {
	CallID    string `db:"call_id"`
	Embedding string `db:"embedding"`
}

// ListEmbeddings returns every stored embedding in a deterministic order, so
// similarity tie-breaks are stable across requests.
func (s *Store) ListEmbeddings(ctx context.Context) ([]CallEmbedding, error) {
	rows := []CallEmbedding{}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT call_id, embedding FROM calls
		WHERE embedding IS NOT NULL
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list embeddings: %w", err)
	}
	return rows, nil
}

// ListCallIDs returns every call_id, for batch recomputation.
func (s *Store) ListCallIDs(ctx context.Context) ([]string, error) {
	ids := []string{}
	if err := s.db.SelectContext(ctx, &ids, `SELECT call_id FROM calls ORDER BY created_at, id`); err != nil {
		return nil, fmt.Errorf("list call ids: %w", err)
	}
	return ids, nil
}
