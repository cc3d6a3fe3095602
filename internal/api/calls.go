package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"sales-insights-go/internal/store"
	"sales-insights-go/internal/types"
)

func (s *Server) handleListCalls(c *gin.Context) {
	filter, err := parseCallFilter(c)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	calls, total, err := s.store.ListCalls(c.Request.Context(), filter)
	if err != nil {
		s.log.WithError(err).Error("list calls failed")
		fail(c, http.StatusInternalServerError, "error retrieving calls")
		return
	}

	c.Header("Cache-Control", "private, max-age=30")
	c.JSON(http.StatusOK, types.CallListResponse{
		Calls:  calls,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

func (s *Server) handleGetCall(c *gin.Context) {
	callID := c.Param("call_id")
	call, err := s.store.GetCall(c.Request.Context(), callID)
	if errors.Is(err, store.ErrNotFound) {
		fail(c, http.StatusNotFound, "call with ID "+callID+" not found")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("get call failed")
		fail(c, http.StatusInternalServerError, "error retrieving call")
		return
	}
	c.JSON(http.StatusOK, call)
}

func (s *Server) handleCreateCall(c *gin.Context) {
	var req types.CallCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid call payload: "+err.Error())
		return
	}

	talkRatio, sentiment, embedding, err := s.proc.Process(req.Transcript)
	if err != nil {
		s.log.WithError(err).Error("analytics processing failed")
		fail(c, http.StatusInternalServerError, "error processing transcript")
		return
	}

	call := &types.Call{
		CallID:                 req.CallID,
		AgentID:                req.AgentID,
		CustomerID:             req.CustomerID,
		Language:               req.Language,
		StartTime:              req.StartTime,
		DurationSeconds:        req.DurationSeconds,
		Transcript:             req.Transcript,
		AgentTalkRatio:         &talkRatio,
		CustomerSentimentScore: &sentiment,
		Embedding:              &embedding,
	}
	if err := s.store.CreateCall(c.Request.Context(), call); err != nil {
		s.log.WithError(err).Error("create call failed")
		fail(c, http.StatusInternalServerError, "error storing call")
		return
	}

	// New data changes rankings and leaderboards.
	_ = s.cache.DeleteByPrefix(c.Request.Context(), "reco:")
	_ = s.cache.DeleteByPrefix(c.Request.Context(), "leaderboard")

	c.JSON(http.StatusCreated, call)
}

func parseCallFilter(c *gin.Context) (types.CallFilter, error) {
	filter := types.CallFilter{Limit: 50, Offset: 0}

	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			return filter, errors.New("limit must be between 1 and 100")
		}
		filter.Limit = n
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return filter, errors.New("offset must be >= 0")
		}
		filter.Offset = n
	}
	filter.AgentID = c.Query("agent_id")

	if v := c.Query("from_date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return filter, errors.New("from_date must be an RFC 3339 timestamp")
		}
		filter.FromDate = &t
	}
	if v := c.Query("to_date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return filter, errors.New("to_date must be an RFC 3339 timestamp")
		}
		filter.ToDate = &t
	}
	if v := c.Query("min_sentiment"); v != "" {
		f, err := parseSentiment(v)
		if err != nil {
			return filter, err
		}
		filter.MinSentiment = &f
	}
	if v := c.Query("max_sentiment"); v != "" {
		f, err := parseSentiment(v)
		if err != nil {
			return filter, err
		}
		filter.MaxSentiment = &f
	}
	return filter, nil
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

func parseSentiment(v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < -1 || f > 1 {
		return 0, errors.New("sentiment bounds must be between -1 and 1")
	}
	return f, nil
}
