package reddit

import (
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/analysis"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/sentiment"
)

// Post is one scraped submission with its sentiment.
type Post struct {
	ID          string `json:"id"`
	CreatedUTC  string `json:"created_utc"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Subreddit   string `json:"subreddit"`
	Title       string `json:"title"`
	Text        string `json:"text"`
	Permalink   string `json:"permalink"`
	Score       int    `json:"score"`
	NumComments int    `json:"num_comments"`

	TitleSentiment    float64         `json:"title_sentiment"`
	TextSentiment     float64         `json:"text_sentiment"`
	CombinedSentiment float64         `json:"combined_sentiment"`
	SentimentLabel    sentiment.Label `json:"sentiment_label"`
}

type Summary struct {
	TotalPosts           int                         `json:"total_posts"`
	AvgTitleSentiment    float64                     `json:"avg_title_sentiment"`
	AvgTextSentiment     float64                     `json:"avg_text_sentiment"`
	AvgCombinedSentiment float64                     `json:"avg_combined_sentiment"`
	Distribution         map[sentiment.Label]int     `json:"sentiment_distribution"`
	Percentages          map[sentiment.Label]float64 `json:"sentiment_percentages"`
}

type SubredditSummary struct {
	Summary
	Subreddit string `json:"subreddit"`
}

type MonthlyPoint struct {
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	AvgSentiment float64 `json:"avg_sentiment"`
	PostCount    int     `json:"post_count"`
}

type ScrapeError struct {
	Subreddit string `json:"subreddit"`
	Error     string `json:"error"`
}

// Report is the response of a single- or multi-subreddit analysis.
type Report struct {
	Success    bool     `json:"success"`
	Subreddit  string   `json:"subreddit,omitempty"`
	Subreddits []string `json:"subreddits,omitempty"`
	Query      string   `json:"query"`
	// Errors is set only by multi-subreddit analysis.
	Errors       []ScrapeError      `json:"errors,omitempty"`
	Summary      Summary            `json:"summary"`
	Breakdown    []SubredditSummary `json:"subreddit_breakdown,omitempty"`
	MonthlyTrend []MonthlyPoint     `json:"monthly_trend"`
	TopKeywords  []analysis.Keyword `json:"top_keywords"`
	Posts        []Post             `json:"posts"`
	CSVData      string             `json:"csv_data"`
}
