package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type redditRequest struct {
	Subreddit  string `json:"subreddit" binding:"required"`
	Query      string `json:"query" binding:"required"`
	TimeFilter string `json:"time_filter" binding:"omitempty,oneof=hour day week month year all"`
	Limit      int    `json:"limit" binding:"min=0"`
}

type redditMultiRequest struct {
	Subreddits []string `json:"subreddits" binding:"required,min=1,dive,required"`
	Query      string   `json:"query" binding:"required"`
	TimeFilter string   `json:"time_filter" binding:"omitempty,oneof=hour day week month year all"`
	Limit      int      `json:"limit" binding:"min=0"`
}

func (s *Server) redditReady(c *gin.Context) bool {
	if s.reddit != nil {
		return true
	}
	msg := "reddit analyzer is not configured"
	if s.redditErr != nil {
		msg = s.redditErr.Error()
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": msg})
	return false
}

func (s *Server) redditAnalyze(c *gin.Context) {
	var req redditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if !s.redditReady(c) {
		return
	}
	rep, err := s.reddit.Analyze(c.Request.Context(), req.Subreddit, req.Query, req.TimeFilter, req.Limit)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (s *Server) redditAnalyzeMulti(c *gin.Context) {
	var req redditMultiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if !s.redditReady(c) {
		return
	}
	rep, err := s.reddit.AnalyzeMulti(c.Request.Context(), req.Subreddits, req.Query, req.TimeFilter, req.Limit)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rep)
}
