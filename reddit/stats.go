package reddit

import (
	"bytes"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/sentiment"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/tabular"
)

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	return stat.Mean(vs, nil)
}

func emptyCounts() (map[sentiment.Label]int, map[sentiment.Label]float64) {
	return map[sentiment.Label]int{sentiment.Positive: 0, sentiment.Neutral: 0, sentiment.Negative: 0},
		map[sentiment.Label]float64{sentiment.Positive: 0, sentiment.Neutral: 0, sentiment.Negative: 0}
}

// Summarize computes averages rounded to 4 places and label shares as
// percentages rounded to 1 place.
func Summarize(posts []Post) Summary {
	dist, pct := emptyCounts()
	s := Summary{Distribution: dist, Percentages: pct}
	if len(posts) == 0 {
		return s
	}
	title := make([]float64, len(posts))
	text := make([]float64, len(posts))
	comb := make([]float64, len(posts))
	for i, p := range posts {
		title[i], text[i], comb[i] = p.TitleSentiment, p.TextSentiment, p.CombinedSentiment
		dist[p.SentimentLabel]++
	}
	n := float64(len(posts))
	s.TotalPosts = len(posts)
	s.AvgTitleSentiment = round(mean(title), 4)
	s.AvgTextSentiment = round(mean(text), 4)
	s.AvgCombinedSentiment = round(mean(comb), 4)
	for l, c := range dist {
		pct[l] = round(float64(c)/n*100, 1)
	}
	return s
}

// MonthlyTrend averages combined sentiment per calendar month, oldest first.
func MonthlyTrend(posts []Post) []MonthlyPoint {
	type ym struct{ y, m int }
	sums := map[ym][]float64{}
	for _, p := range posts {
		k := ym{p.Year, p.Month}
		sums[k] = append(sums[k], p.CombinedSentiment)
	}
	out := make([]MonthlyPoint, 0, len(sums))
	for k, vs := range sums {
		out = append(out, MonthlyPoint{Year: k.y, Month: k.m, AvgSentiment: mean(vs), PostCount: len(vs)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// TopPosts returns up to n posts with the highest score; equal scores keep
// their scrape order.
func TopPosts(posts []Post, n int) []Post {
	out := append([]Post(nil), posts...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

var csvHeader = []string{
	"id", "created_utc", "year", "month", "subreddit", "title", "text", "permalink",
	"score", "num_comments", "title_sentiment", "text_sentiment", "combined_sentiment", "sentiment_label",
}

func CSV(posts []Post) (string, error) {
	rows := make([][]string, 0, len(posts))
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for _, p := range posts {
		rows = append(rows, []string{
			p.ID, p.CreatedUTC, strconv.Itoa(p.Year), strconv.Itoa(p.Month), p.Subreddit,
			p.Title, p.Text, p.Permalink, strconv.Itoa(p.Score), strconv.Itoa(p.NumComments),
			f(p.TitleSentiment), f(p.TextSentiment), f(p.CombinedSentiment), string(p.SentimentLabel),
		})
	}
	var buf bytes.Buffer
	if err := tabular.Write(&buf, csvHeader, rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}
