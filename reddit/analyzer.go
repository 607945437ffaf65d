// Package reddit scrapes subreddit search results and summarizes their
// sentiment.
package reddit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/analysis"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/clients"
	cfg "github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/config"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/sentiment"
)

var ErrMissingCredentials = errors.New("REDDIT_CLIENT_ID and REDDIT_CLIENT_SECRET must be set")

// Searcher runs a subreddit search.
type Searcher interface {
	Search(ctx context.Context, p clients.SearchParams) ([]clients.RedditPost, error)
}

// Polarity returns a compound score in [-1, 1]; empty text scores 0.
type Polarity interface {
	Compound(text string) float64
}

type Options struct {
	DaysBack    int
	Sort        string
	TimeFilter  string
	KeynessTopN int
	TopPosts    int
	Thresholds  sentiment.Thresholds
}

type Analyzer struct {
	search   Searcher
	polarity Polarity
	detect   Detector
	stop     analysis.StopSet
	ref      *analysis.Reference
	opts     Options
	now      func() time.Time
}

func NewAnalyzer(s Searcher, pol Polarity, det Detector, ref *analysis.Reference, opts Options) *Analyzer {
	return &Analyzer{
		search:   s,
		polarity: pol,
		detect:   det,
		stop:     analysis.NewStopSet(analysis.EnglishStopwords()),
		ref:      ref,
		opts:     opts,
		now:      time.Now,
	}
}

// FromConfig wires the Reddit API client, the VADER lexicon, whatlanggo
// and the configured keyness reference table, or the built-in one.
func FromConfig(c *cfg.Root) (*Analyzer, error) {
	rc, err := clients.NewReddit(clients.RedditConfig{
		ClientID:     c.Secrets.RedditClientID,
		ClientSecret: c.Secrets.RedditClientSecret,
		UserAgent:    c.Services.Reddit.UserAgent,
		TokenURL:     c.Services.Reddit.TokenURL,
		BaseURL:      c.Services.Reddit.URL,
	})
	if errors.Is(err, clients.ErrRedditCredentials) {
		return nil, ErrMissingCredentials
	}
	if err != nil {
		return nil, err
	}

	ref := analysis.DefaultReference()
	if path := c.Reddit.Reference; path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("keyness reference: %w", err)
		}
		defer f.Close()
		if ref, err = analysis.LoadReference(f); err != nil {
			return nil, fmt.Errorf("keyness reference %s: %w", path, err)
		}
	}

	th := sentiment.Thresholds{Pos: c.Sentiment.PosThreshold, Neg: c.Sentiment.NegThreshold}
	return NewAnalyzer(rc, sentiment.NewLexicon(th), Whatlang{}, ref, Options{
		DaysBack:    c.Reddit.DaysBack,
		Sort:        c.Reddit.Sort,
		TimeFilter:  c.Reddit.TimeFilter,
		KeynessTopN: c.Reddit.KeynessTopN,
		TopPosts:    c.Reddit.TopPosts,
		Thresholds:  th,
	}), nil
}

// Scrape returns the English posts of the last DaysBack days matching
// query, each id once. Bodies whose language cannot be detected are
// skipped; empty bodies are kept.
func (a *Analyzer) Scrape(ctx context.Context, subreddit, query, timeFilter string, limit int) ([]Post, error) {
	if timeFilter == "" {
		timeFilter = a.opts.TimeFilter
	}
	raw, err := a.search.Search(ctx, clients.SearchParams{
		Subreddit:  subreddit,
		Query:      query,
		Sort:       a.opts.Sort,
		TimeFilter: timeFilter,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("scraping subreddit %s: %w", subreddit, err)
	}

	cutoff := a.now().UTC().AddDate(0, 0, -a.opts.DaysBack)
	seen := map[string]struct{}{}
	var out []Post
	for _, r := range raw {
		created := r.Created()
		if created.Before(cutoff) {
			continue
		}
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}

		if r.SelfText != "" {
			en, err := a.detect.IsEnglish(r.SelfText)
			if err != nil || !en {
				continue
			}
		}
		out = append(out, Post{
			ID:          r.ID,
			CreatedUTC:  created.Format("2006-01-02T15:04:05-07:00"),
			Year:        created.Year(),
			Month:       int(created.Month()),
			Subreddit:   r.Subreddit,
			Title:       r.Title,
			Text:        r.SelfText,
			Permalink:   "https://www.reddit.com" + r.Permalink,
			Score:       r.Score,
			NumComments: r.NumComments,
		})
	}
	logrus.WithFields(logrus.Fields{"subreddit": subreddit, "fetched": len(raw), "kept": len(out)}).Info("scraped")
	return out, nil
}

// Score fills in title, text and combined sentiment. The combined score
// weights the body 0.7 and the title 0.3, or is the title score alone when
// there is no body.
func (a *Analyzer) Score(posts []Post) {
	for i := range posts {
		p := &posts[i]
		p.TitleSentiment = a.polarity.Compound(p.Title)
		p.TextSentiment = a.polarity.Compound(p.Text)
		if p.Text != "" {
			p.CombinedSentiment = p.TitleSentiment*0.3 + p.TextSentiment*0.7
		} else {
			p.CombinedSentiment = p.TitleSentiment
		}
		p.SentimentLabel = a.opts.Thresholds.Label(p.CombinedSentiment)
	}
}

func (a *Analyzer) fill(r *Report, posts []Post) error {
	r.Summary = Summarize(posts)
	r.MonthlyTrend = MonthlyTrend(posts)
	texts := make([]string, len(posts))
	for i, p := range posts {
		texts[i] = p.Text
	}
	r.TopKeywords = analysis.Keyness(texts, a.stop, a.ref, a.opts.KeynessTopN)
	r.Posts = TopPosts(posts, a.opts.TopPosts)
	csv, err := CSV(posts)
	if err != nil {
		return err
	}
	r.CSVData = csv
	return nil
}

func emptyReport() Report {
	return Report{
		Summary:      Summarize(nil),
		MonthlyTrend: []MonthlyPoint{},
		TopKeywords:  []analysis.Keyword{},
		Posts:        []Post{},
	}
}

// Analyze scrapes one subreddit and summarizes it. A scrape failure is
// returned as an error.
func (a *Analyzer) Analyze(ctx context.Context, subreddit, query, timeFilter string, limit int) (*Report, error) {
	posts, err := a.Scrape(ctx, subreddit, query, timeFilter, limit)
	if err != nil {
		return nil, err
	}
	r := emptyReport()
	r.Success, r.Subreddit, r.Query = true, subreddit, query
	if len(posts) == 0 {
		return &r, nil
	}
	a.Score(posts)
	if err := a.fill(&r, posts); err != nil {
		return nil, err
	}
	if r.TopKeywords == nil {
		r.TopKeywords = []analysis.Keyword{}
	}
	return &r, nil
}

// AnalyzeMulti scrapes several subreddits. Per-subreddit failures are
// collected in Errors; Success is false only when no posts were found at
// all.
func (a *Analyzer) AnalyzeMulti(ctx context.Context, subreddits []string, query, timeFilter string, limit int) (*Report, error) {
	r := emptyReport()
	r.Subreddits, r.Query = subreddits, query
	r.Errors = []ScrapeError{}

	var all []Post
	seen := map[string]struct{}{}
	for _, sub := range subreddits {
		sub = strings.TrimSpace(sub)
		posts, err := a.Scrape(ctx, sub, query, timeFilter, limit)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logrus.WithError(err).WithField("subreddit", sub).Warn("scrape failed")
			r.Errors = append(r.Errors, ScrapeError{Subreddit: sub, Error: err.Error()})
			continue
		}
		for _, p := range posts {
			if _, dup := seen[p.ID]; dup {
				continue
			}
			seen[p.ID] = struct{}{}
			all = append(all, p)
		}
	}
	if len(all) == 0 {
		return &r, nil
	}

	r.Success = true
	a.Score(all)
	if err := a.fill(&r, all); err != nil {
		return nil, err
	}
	if r.TopKeywords == nil {
		r.TopKeywords = []analysis.Keyword{}
	}

	var order []string
	bySub := map[string][]Post{}
	for _, p := range all {
		if _, ok := bySub[p.Subreddit]; !ok {
			order = append(order, p.Subreddit)
		}
		bySub[p.Subreddit] = append(bySub[p.Subreddit], p)
	}
	for _, s := range order {
		r.Breakdown = append(r.Breakdown, SubredditSummary{Summary: Summarize(bySub[s]), Subreddit: s})
	}
	return &r, nil
}
