package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/api"
	cfg "github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/config"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/logging"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/orchestrator"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/reddit"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/sentiment"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/tabular"
)

var configPath string

// flagKeys maps config keys to the flags that override them.
var flagKeys = map[string]string{
	"pipeline.log_level":         "log-level",
	"pipeline.log_format":        "log-format",
	"pipeline.save_intermediate": "save-intermediate",
	"paths.input":                "input-dir",
	"paths.outputs":              "output-dir",
	"sentiment.backend":          "backend",
	"analysis.subject":           "subject",
	"server.port":                "port",
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "yucg-verse",
		Short:        "Interview transcript and Reddit sentiment analysis",
		SilenceUsage: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default config/$CONFIG_ENV/config.yaml)")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("log-format", "", "log format (text or json)")

	root.AddCommand(newRunCmd(), newServeCmd(), newPlotCmd(), newRedditCmd())
	return root
}

// loadConfig resolves the config file, .env secrets, YUCG_* variables and
// changed flags, in that order of increasing precedence.
func loadConfig(cmd *cobra.Command) (*cfg.Root, error) {
	c, err := cfg.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := c.LoadSecrets(".env", "backend/.env"); err != nil {
		return nil, err
	}
	v := cfg.NewViper()
	if err := cfg.BindFlags(v, cmd.Flags(), flagKeys); err != nil {
		return nil, err
	}
	c.Overlay(v)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := logging.Setup(c.Pipeline.LogLvl, c.Pipeline.LogFormat); err != nil {
		return nil, err
	}
	return c, nil
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Analyze every transcript in the input directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			p, err := orchestrator.NewPipeline(c)
			if err != nil {
				return err
			}
			res, err := p.Run(cmd.Context(), c.Paths.Input, c.Paths.Outputs)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "session %s: %d sentences, %d word groups -> %s\n",
				res.SessionID, len(res.Sentences), len(res.Groups), c.Paths.Outputs)
			return nil
		},
	}
	f := cmd.Flags()
	f.String("input-dir", "", "directory of .docx/.txt transcripts")
	f.String("output-dir", "", "directory for plots, CSVs and session bundles")
	f.Bool("save-intermediate", false, "write per-stage CSVs")
	f.String("backend", "", "sentiment backend (lexicon or classifier)")
	f.String("subject", "", "service the interviews are about")
	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			p, err := orchestrator.NewPipeline(c)
			if err != nil {
				return err
			}
			var ra api.RedditAnalyzer
			a, redditErr := reddit.FromConfig(c)
			if redditErr != nil {
				logging.Stage("serve").WithError(redditErr).Warn("reddit endpoints disabled")
			} else {
				ra = a
			}
			return api.NewServer(c, p, ra, redditErr).ListenAndServe(cmd.Context())
		},
	}
	cmd.Flags().Int("port", 0, "listen port")
	cmd.Flags().String("backend", "", "sentiment backend (lexicon or classifier)")
	cmd.Flags().String("subject", "", "service the interviews are about")
	return cmd
}

func newPlotCmd() *cobra.Command {
	var (
		wordStats, sentences string
		labels               orchestrator.PlotLabels
	)
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Redraw plots from saved word stats and sentence sentiment CSVs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			t, err := tabular.ReadFile(wordStats, tabular.WordStatHeader...)
			if err != nil {
				return err
			}
			stats, err := tabular.WordStats(t)
			if err != nil {
				return fmt.Errorf("%s: %w", wordStats, err)
			}

			var scored []sentiment.Scored
			if sentences != "" {
				st, err := tabular.ReadFile(sentences, "sentence", "hf_compound")
				if err != nil {
					return err
				}
				th := sentiment.Thresholds{Pos: c.Sentiment.PosThreshold, Neg: c.Sentiment.NegThreshold}
				if scored, err = tabular.Scored(st, th); err != nil {
					return fmt.Errorf("%s: %w", sentences, err)
				}
			}

			// replotting never scores or splits
			p := orchestrator.NewPipelineWith(c, nil, nil)
			plots, err := p.Replot(stats, scored, labels)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(c.Paths.Outputs, 0o755); err != nil {
				return err
			}
			logging.Stage("plot").WithFields(logrus.Fields{"words": len(stats), "sentences": len(scored)}).Info("replotting")
			return p.SavePlots(c.Paths.Outputs, plots)
		},
	}
	f := cmd.Flags()
	f.StringVar(&wordStats, "word-stats", "", "word stats CSV (word,count,avg_hf_compound)")
	f.StringVar(&sentences, "sentiment", "", "optional sentence sentiment CSV for the histogram and box plot")
	f.String("output-dir", "", "directory for the PNGs")
	f.StringVar(&labels.Title, "title", "", "scatter plot title")
	f.StringVar(&labels.XLabel, "xlabel", "", "scatter plot x axis label")
	f.StringVar(&labels.YLabel, "ylabel", "", "scatter plot y axis label")
	_ = cmd.MarkFlagRequired("word-stats")
	return cmd
}

func newRedditCmd() *cobra.Command {
	var (
		subreddits []string
		query      string
		timeFilter string
		limit      int
		csvOut     string
	)
	cmd := &cobra.Command{
		Use:   "reddit",
		Short: "Scrape and score subreddit search results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			a, err := reddit.FromConfig(c)
			if err != nil {
				return err
			}

			var rep *reddit.Report
			if len(subreddits) == 1 {
				rep, err = a.Analyze(cmd.Context(), subreddits[0], query, timeFilter, limit)
			} else {
				rep, err = a.AnalyzeMulti(cmd.Context(), subreddits, query, timeFilter, limit)
			}
			if err != nil {
				return err
			}
			if !rep.Success {
				return errors.New("no posts could be scraped")
			}

			if csvOut != "" {
				if err := os.WriteFile(csvOut, []byte(rep.CSVData), 0o644); err != nil {
					return err
				}
				logging.Stage("reddit").WithField("path", csvOut).Info("saved posts")
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rep.Summary)
		},
	}
	f := cmd.Flags()
	f.StringSliceVar(&subreddits, "subreddit", nil, "subreddit(s) to search, comma separated")
	f.StringVar(&query, "query", "", "search query")
	f.StringVar(&timeFilter, "time-filter", "", "hour, day, week, month, year or all")
	f.IntVar(&limit, "limit", 0, "max posts per subreddit (0 means every page the listing returns)")
	f.StringVar(&csvOut, "out", "", "write the posts CSV here")
	_ = cmd.MarkFlagRequired("subreddit")
	_ = cmd.MarkFlagRequired("query")
	return cmd
}
