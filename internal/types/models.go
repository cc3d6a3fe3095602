package types

import "time"

// Call is a persisted sales call with its derived analytics fields.
// AgentTalkRatio, CustomerSentimentScore and Embedding are computed once at
// ingestion and only rewritten wholesale by the recompute job.
type Call struct {
	ID              string    `json:"id" db:"id"`
	CallID          string    `json:"call_id" db:"call_id"`
	AgentID         string    `json:"agent_id" db:"agent_id"`
	CustomerID      string    `json:"customer_id" db:"customer_id"`
	Language        string    `json:"language" db:"language"`
	StartTime       time.Time `json:"start_time" db:"start_time"`
	DurationSeconds int       `json:"duration_seconds" db:"duration_seconds"`
	Transcript      string    `json:"transcript" db:"transcript"`

	AgentTalkRatio         *float64 `json:"agent_talk_ratio,omitempty" db:"agent_talk_ratio"`
	CustomerSentimentScore *float64 `json:"customer_sentiment_score,omitempty" db:"customer_sentiment_score"`
	Embedding              *string  `json:"embedding,omitempty" db:"embedding"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CallCreate is the ingestion payload for a raw call.
type CallCreate struct {
	CallID          string    `json:"call_id" binding:"required"`
	AgentID         string    `json:"agent_id" binding:"required"`
	CustomerID      string    `json:"customer_id" binding:"required"`
	Language        string    `json:"language"`
	StartTime       time.Time `json:"start_time" binding:"required"`
	DurationSeconds int       `json:"duration_seconds" binding:"required"`
	Transcript      string    `json:"transcript" binding:"required"`
}

// CallFilter narrows a call listing.
type CallFilter struct {
	AgentID      string
	FromDate     *time.Time
	ToDate       *time.Time
	MinSentiment *float64
	MaxSentiment *float64
	Limit        int
	Offset       int
}

type CallListResponse struct {
	Calls  []Call `json:"calls"`
	Total  int    `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

type CallRecommendation struct {
	CallID            string  `json:"call_id"`
	SimilarityScore   float64 `json:"similarity_score"`
	TranscriptPreview string  `json:"transcript_preview"`
}

type CoachingNudge struct {
	Title      string `json:"title"`
	Suggestion string `json:"suggestion"`
}

type CallRecommendationsResponse struct {
	SimilarCalls   []CallRecommendation `json:"similar_calls"`
	CoachingNudges []CoachingNudge      `json:"coaching_nudges"`
}

// AgentAnalytics is one leaderboard row.
type AgentAnalytics struct {
	AgentID      string  `json:"agent_id" db:"agent_id"`
	Name         string  `json:"name" db:"-"`
	TotalCalls   int     `json:"total_calls" db:"total_calls"`
	AvgSentiment float64 `json:"avg_sentiment" db:"avg_sentiment"`
	AvgTalkRatio float64 `json:"avg_talk_ratio" db:"avg_talk_ratio"`
}

type AgentAnalyticsResponse struct {
	Agents []AgentAnalytics `json:"agents"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
