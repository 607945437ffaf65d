// Package api serves the transcript and Reddit analyzers over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	cfg "github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/config"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/orchestrator"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/reddit"
)

// RedditAnalyzer is implemented by *reddit.Analyzer.
type RedditAnalyzer interface {
	Analyze(ctx context.Context, subreddit, query, timeFilter string, limit int) (*reddit.Report, error)
	AnalyzeMulti(ctx context.Context, subreddits []string, query, timeFilter string, limit int) (*reddit.Report, error)
}

type Server struct {
	cfg      *cfg.Root
	pipeline *orchestrator.Pipeline
	reddit   RedditAnalyzer
	// redditErr explains why reddit is nil, e.g. missing credentials.
	redditErr error
	engine    *gin.Engine
}

// NewServer wires the routes. ra may be nil, in which case the Reddit
// endpoints answer 503 with redditErr.
func NewServer(c *cfg.Root, p *orchestrator.Pipeline, ra RedditAnalyzer, redditErr error) *Server {
	s := &Server{cfg: c, pipeline: p, reddit: ra, redditErr: redditErr}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger(), corsMiddleware(c.Server.CORSOrigins))

	r.GET("/health", s.health)
	api := r.Group("/api")
	{
		api.POST("/analyze_transcripts", s.analyzeTranscripts)
		api.POST("/regenerate_plot", s.regeneratePlot)

		rd := api.Group("/reddit")
		rd.POST("/analyze", s.redditAnalyze)
		rd.POST("/analyze_multi", s.redditAnalyzeMulti)
	}
	s.engine = r
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListenAndServe serves on the configured port until ctx is cancelled,
// then drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: cfg.DurSeconds(10),
	}
	errc := make(chan error, 1)
	go func() {
		logrus.WithField("addr", srv.Addr).Info("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.DurSeconds(30))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
