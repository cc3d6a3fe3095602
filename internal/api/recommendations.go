package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sales-insights-go/internal/insights"
	"sales-insights-go/internal/store"
	"sales-insights-go/internal/types"
)

const (
	recommendationCount = 5
	previewLength       = 100
	recommendationTTL   = 5 * time.Minute
)

func (s *Server) handleRecommendations(c *gin.Context) {
	callID := c.Param("call_id")
	ctx := c.Request.Context()
	cacheKey := "reco:" + callID

	var cached types.CallRecommendationsResponse
	if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, cached)
		return
	}

	call, err := s.store.GetCall(ctx, callID)
	if errors.Is(err, store.ErrNotFound) {
		fail(c, http.StatusNotFound, "call with ID "+callID+" not found")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("get call failed")
		fail(c, http.StatusInternalServerError, "error retrieving call")
		return
	}

	similar, err := s.similarCalls(c, call)
	if err != nil {
		// A malformed stored embedding must be diagnosable, not a silent
		// zero-score ranking.
		var decodeErr *insights.DecodeError
		if errors.As(err, &decodeErr) {
			s.log.WithError(err).WithField("call_id", callID).Error("stored embedding is malformed")
			fail(c, http.StatusInternalServerError, decodeErr.Error())
			return
		}
		s.log.WithError(err).Error("similarity ranking failed")
		fail(c, http.StatusInternalServerError, "error computing recommendations")
		return
	}

	resp := types.CallRecommendationsResponse{
		SimilarCalls:   similar,
		CoachingNudges: coachingNudges(call),
	}
	_ = s.cache.SetJSON(ctx, cacheKey, resp, recommendationTTL)
	c.Header("Cache-Control", "private, max-age=60")
	c.JSON(http.StatusOK, resp)
}

// similarCalls ranks every other stored embedding against the target call.
// A target without an embedding yields an empty list rather than an error.
func (s *Server) similarCalls(c *gin.Context, call *types.Call) ([]types.CallRecommendation, error) {
	ctx := c.Request.Context()
	recommendations := []types.CallRecommendation{}
	if call.Embedding == nil || *call.Embedding == "" {
		return recommendations, nil
	}

	target, err := insights.Deserialize(*call.Embedding)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.ListEmbeddings(ctx)
	if err != nil {
		return nil, err
	}
	candidates := make([]insights.Candidate, 0, len(rows))
	for _, row := range rows {
		embedding, err := insights.Deserialize(row.Embedding)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, insights.Candidate{ID: row.CallID, Embedding: embedding})
	}

	ranked := insights.TopSimilar(call.CallID, target, candidates, recommendationCount)
	for _, result := range ranked {
		similar, err := s.store.GetCall(ctx, result.CandidateID)
		if err != nil {
			return nil, err
		}
		recommendations = append(recommendations, types.CallRecommendation{
			CallID:            result.CandidateID,
			SimilarityScore:   result.Score,
			TranscriptPreview: preview(similar.Transcript),
		})
	}
	return recommendations, nil
}

func preview(transcript string) string {
	if len(transcript) > previewLength {
		return transcript[:previewLength] + "..."
	}
	return transcript
}
